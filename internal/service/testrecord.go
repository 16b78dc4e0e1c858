package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/deppfellow/roundtrip/internal/metrics"
	"github.com/deppfellow/roundtrip/internal/model"
	"github.com/deppfellow/roundtrip/internal/repository"
	"github.com/deppfellow/roundtrip/internal/server"
	"github.com/deppfellow/roundtrip/internal/validation"
	"github.com/rs/zerolog"
)

// TestRecordService validates submissions and reads back the stored record.
type TestRecordService struct {
	server *server.Server
	store  repository.TestRecordStore
}

func NewTestRecordService(s *server.Server, store repository.TestRecordStore) *TestRecordService {
	return &TestRecordService{server: s, store: store}
}

// Submit validates the UploadValue field of one request and stores the
// result, valid or not. field is nil when the request body lacked it.
//
// The returned Outcome is meaningful only when err is nil; a non-nil err is a
// storage failure and nothing was stored.
func (s *TestRecordService) Submit(ctx context.Context, method string, field *string) (model.Outcome, error) {
	var outcome model.Outcome
	if method != http.MethodPost {
		outcome = validation.WrongMethod()
	} else {
		outcome = validation.ValidateUpload(field)
	}

	logger := zerolog.Ctx(ctx).With().
		Str("operation", "submit_test_record").
		Str("outcome", outcome.Label()).
		Logger()

	if err := s.store.Upsert(ctx, outcome.Record()); err != nil {
		logger.Error().Err(err).Msg("failed to store test record")
		return model.Outcome{}, err
	}

	metrics.RecordSubmission(outcome.Label())

	if outcome.IsValid() {
		logger.Info().Int("value", outcome.Value()).Msg("test record stored")
	} else {
		logger.Info().Str("reason", outcome.Reason()).Msg("rejected submission stored")
	}

	return outcome, nil
}

// Fetch returns the stored record, or the "no value" response when nothing
// was ever submitted.
func (s *TestRecordService) Fetch(ctx context.Context) (model.FetchResponse, error) {
	rec, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrTestRecordNotFound) {
			return model.EmptyFetchResponse(), nil
		}
		zerolog.Ctx(ctx).Error().Err(err).Str("operation", "fetch_test_record").Msg("failed to read test record")
		return model.FetchResponse{}, err
	}
	return model.NewFetchResponse(*rec), nil
}

// Ping checks the store.
func (s *TestRecordService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
