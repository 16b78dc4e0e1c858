package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/deppfellow/roundtrip/internal/model"
	"github.com/deppfellow/roundtrip/internal/sqlerr"
	"github.com/redis/go-redis/v9"
)

// TestRecordKey is the hash holding the record.
var TestRecordKey = "roundtrip:test_record:" + strconv.Itoa(model.TestRecordID)

const (
	fieldValue        = "value"
	fieldErrorMessage = "error_message"
	fieldUpdatedAt    = "updated_at"
)

// RedisStore keeps the record in a single redis hash.
type RedisStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

// Upsert replaces the hash fields inside MULTI/EXEC, dropping error_message
// for accepted values.
func (s *RedisStore) Upsert(ctx context.Context, rec model.TestRecord) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, TestRecordKey,
			fieldValue, rec.Value,
			fieldUpdatedAt, s.now().UTC().Format(time.RFC3339Nano),
		)
		if rec.ErrorMessage != nil {
			pipe.HSet(ctx, TestRecordKey, fieldErrorMessage, *rec.ErrorMessage)
		} else {
			pipe.HDel(ctx, TestRecordKey, fieldErrorMessage)
		}
		return nil
	})
	return sqlerr.Wrap("upsert test record", err)
}

func (s *RedisStore) Get(ctx context.Context) (*model.TestRecord, error) {
	fields, err := s.client.HGetAll(ctx, TestRecordKey).Result()
	if err != nil {
		return nil, sqlerr.Wrap("get test record", err)
	}
	if len(fields) == 0 {
		return nil, ErrTestRecordNotFound
	}

	value, err := strconv.Atoi(fields[fieldValue])
	if err != nil {
		return nil, sqlerr.Wrap("decode test record value", err)
	}

	rec := &model.TestRecord{ID: model.TestRecordID, Value: value}
	if msg, ok := fields[fieldErrorMessage]; ok {
		rec.ErrorMessage = &msg
	}
	if ts, ok := fields[fieldUpdatedAt]; ok {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.UpdatedAt = t
		}
	}
	return rec, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return sqlerr.Wrap("ping redis", s.client.Ping(ctx).Err())
}
