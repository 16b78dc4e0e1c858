package repository

import (
	"context"
	"sync"
	"time"

	"github.com/deppfellow/roundtrip/internal/model"
)

// MemoryStore keeps the record in process memory. State is lost on restart.
type MemoryStore struct {
	mu  sync.Mutex
	rec *model.TestRecord
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Upsert(ctx context.Context, rec model.TestRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := rec
	stored.ID = model.TestRecordID
	stored.UpdatedAt = s.now()
	if rec.ErrorMessage != nil {
		msg := *rec.ErrorMessage
		stored.ErrorMessage = &msg
	}

	s.mu.Lock()
	s.rec = &stored
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context) (*model.TestRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec == nil {
		return nil, ErrTestRecordNotFound
	}
	out := *s.rec
	if s.rec.ErrorMessage != nil {
		msg := *s.rec.ErrorMessage
		out.ErrorMessage = &msg
	}
	return &out, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
