package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/deppfellow/roundtrip/internal/model"
	"github.com/deppfellow/roundtrip/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// These tests run against real backends when the matching variable is set:
//
//	ROUNDTRIP_TEST_DATABASE_DSN=postgres://... (schema already migrated)
//	ROUNDTRIP_TEST_REDIS_ADDR=localhost:6379

func exerciseStore(t *testing.T, store TestRecordStore) {
	t.Helper()
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	if err := store.Upsert(ctx, model.Invalid(model.FailureNotNumeric, "Input value must be numeric: abc").Record()); err != nil {
		t.Fatalf("upsert invalid: %v", err)
	}
	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Value != model.NoValue || got.ErrorMessage == nil || *got.ErrorMessage != "Input value must be numeric: abc" {
		t.Fatalf("unexpected record: %+v", got)
	}

	if err := store.Upsert(ctx, model.Valid(1234).Record()); err != nil {
		t.Fatalf("upsert valid: %v", err)
	}
	got, err = store.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Value != 1234 || got.ErrorMessage != nil {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("ROUNDTRIP_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("ROUNDTRIP_TEST_DATABASE_DSN not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)

	store := NewPostgresStore(pool)
	exerciseStore(t, store)

	// The table's check constraint rejects a value outside the range
	// without an error message.
	err = store.Upsert(context.Background(), model.TestRecord{ID: model.TestRecordID, Value: 10000})
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || sqlerr.MapCode(pgErr.Code) != sqlerr.CheckViolation {
		t.Fatalf("expected check violation, got=%v", err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("ROUNDTRIP_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ROUNDTRIP_TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	if err := client.Del(ctx, TestRecordKey).Err(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	store := NewRedisStore(client)
	if _, err := store.Get(ctx); !errors.Is(err, ErrTestRecordNotFound) {
		t.Fatalf("expected ErrTestRecordNotFound, got=%v", err)
	}
	exerciseStore(t, store)
}

func TestRedisStore_UnreachableIsStoreError(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	_, err := NewRedisStore(client).Get(context.Background())
	if !sqlerr.IsStoreError(err) {
		t.Fatalf("expected store error, got=%v", err)
	}
}
