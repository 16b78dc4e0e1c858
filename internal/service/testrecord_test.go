package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/roundtrip/internal/model"
	"github.com/deppfellow/roundtrip/internal/repository"
	"github.com/deppfellow/roundtrip/internal/server"
	"github.com/deppfellow/roundtrip/internal/sqlerr"
	"github.com/deppfellow/roundtrip/internal/validation"
)

type failingStore struct {
	err     error
	upserts int
}

func (f *failingStore) Upsert(context.Context, model.TestRecord) error {
	f.upserts++
	return f.err
}

func (f *failingStore) Get(context.Context) (*model.TestRecord, error) {
	return nil, f.err
}

func (f *failingStore) Ping(context.Context) error {
	return f.err
}

func newTestService() (*TestRecordService, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	return NewTestRecordService(&server.Server{}, store), store
}

func field(s string) *string { return &s }

func TestFetch_EmptyStore(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got.InputValue != model.NoValue || got.ErrorMessage == nil || *got.ErrorMessage != model.NoRecordMessage {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestSubmitThenFetch(t *testing.T) {
	cases := []struct {
		name      string
		method    string
		field     *string
		wantText  string
		wantValue int
		wantError *string
	}{
		{"accepted", http.MethodPost, field(`{"UploadValue": "1234"}`), model.SuccessText, 1234, nil},
		{"lower bound", http.MethodPost, field(`{"UploadValue": 0}`), model.SuccessText, 0, nil},
		{"missing field", http.MethodPost, nil, validation.MsgKeyMissing, model.NoValue, field(validation.MsgKeyMissing)},
		{"out of range", http.MethodPost, field(`{"UploadValue": 10000}`), validation.MsgOutOfRange, model.NoValue, field(validation.MsgOutOfRange)},
		{"wrong method", http.MethodGet, field(`{"UploadValue": 5}`), validation.MsgWrongMethod, model.NoValue, field(validation.MsgWrongMethod)},
	}

	for _, c := range cases {
		svc, _ := newTestService()
		ctx := context.Background()

		outcome, err := svc.Submit(ctx, c.method, c.field)
		if err != nil {
			t.Fatalf("%s: submit: %v", c.name, err)
		}
		if outcome.ResponseText() != c.wantText {
			t.Errorf("%s: response = %q, want %q", c.name, outcome.ResponseText(), c.wantText)
		}

		got, err := svc.Fetch(ctx)
		if err != nil {
			t.Fatalf("%s: fetch: %v", c.name, err)
		}
		if got.InputValue != c.wantValue {
			t.Errorf("%s: inputValue = %d, want %d", c.name, got.InputValue, c.wantValue)
		}
		switch {
		case c.wantError == nil && got.ErrorMessage != nil:
			t.Errorf("%s: expected null errorMessage, got %q", c.name, *got.ErrorMessage)
		case c.wantError != nil && (got.ErrorMessage == nil || *got.ErrorMessage != *c.wantError):
			t.Errorf("%s: errorMessage = %v, want %q", c.name, got.ErrorMessage, *c.wantError)
		}
	}
}

func TestSubmit_LastWriteWins(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _ = svc.Submit(ctx, http.MethodPost, field(`{"UploadValue": "abc"}`))
	_, _ = svc.Submit(ctx, http.MethodPost, field(`{"UploadValue": 77}`))

	got, _ := svc.Fetch(ctx)
	if got.InputValue != 77 || got.ErrorMessage != nil {
		t.Fatalf("expected the second submission to win, got %+v", got)
	}
}

func TestSubmit_Idempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _ = svc.Submit(ctx, http.MethodPost, field(`{"UploadValue": 12}`))
	first, _ := svc.Fetch(ctx)
	_, _ = svc.Submit(ctx, http.MethodPost, field(`{"UploadValue": 12}`))
	second, _ := svc.Fetch(ctx)

	if first.InputValue != second.InputValue || (first.ErrorMessage == nil) != (second.ErrorMessage == nil) {
		t.Fatalf("expected identical state, got %+v then %+v", first, second)
	}
}

func TestSubmit_StorageFailure(t *testing.T) {
	store := &failingStore{err: sqlerr.Wrap("upsert test record", errors.New("connection refused"))}
	svc := NewTestRecordService(&server.Server{}, store)

	_, err := svc.Submit(context.Background(), http.MethodPost, field(`{"UploadValue": 1}`))
	if !sqlerr.IsStoreError(err) {
		t.Fatalf("expected store error, got=%v", err)
	}
	if store.upserts != 1 {
		t.Fatalf("expected exactly one attempt, got=%d", store.upserts)
	}
}

func TestFetch_StorageFailure(t *testing.T) {
	store := &failingStore{err: sqlerr.Wrap("get test record", errors.New("connection refused"))}
	svc := NewTestRecordService(&server.Server{}, store)

	if _, err := svc.Fetch(context.Background()); !sqlerr.IsStoreError(err) {
		t.Fatalf("expected store error, got=%v", err)
	}
}
