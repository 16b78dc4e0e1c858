package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/deppfellow/roundtrip/internal/model"
)

func TestMemoryStore_GetBeforeUpsert(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background())
	if !errors.Is(err, ErrTestRecordNotFound) {
		t.Fatalf("expected ErrTestRecordNotFound, got=%v", err)
	}
}

func TestMemoryStore_UpsertOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, model.Valid(42).Record()); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.Upsert(ctx, model.Invalid(model.FailureOutOfRange, "too big").Record()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != model.TestRecordID || got.Value != model.NoValue {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.ErrorMessage == nil || *got.ErrorMessage != "too big" {
		t.Fatalf("unexpected error message: %v", got.ErrorMessage)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatalf("expected updated_at to be set")
	}

	if err := store.Upsert(ctx, model.Valid(7).Record()); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, _ = store.Get(ctx)
	if got.Value != 7 || got.ErrorMessage != nil {
		t.Fatalf("expected cleared error, got %+v", got)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Upsert(ctx, model.Invalid(model.FailureNotNumeric, "original").Record())

	got, _ := store.Get(ctx)
	*got.ErrorMessage = "mutated"
	got.Value = 5

	again, _ := store.Get(ctx)
	if *again.ErrorMessage != "original" || again.Value != model.NoValue {
		t.Fatalf("stored record was mutated: %+v", again)
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Upsert(ctx, model.Valid(1).Record()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got=%v", err)
	}
}

func TestMemoryStore_ConcurrentUpserts(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			_ = store.Upsert(ctx, model.Valid(v).Record())
			_, _ = store.Get(ctx)
		}(i)
	}
	wg.Wait()

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Valid() || got.Value < 0 || got.Value >= 50 {
		t.Fatalf("unexpected record after concurrent writes: %+v", got)
	}
}
