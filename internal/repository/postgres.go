package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/roundtrip/internal/model"
	"github.com/deppfellow/roundtrip/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertTestRecordSQL = `
INSERT INTO test_records (id, data_value, error_message, updated_at)
VALUES (@id, @data_value, @error_message, now())
ON CONFLICT (id) DO UPDATE
SET data_value = EXCLUDED.data_value,
    error_message = EXCLUDED.error_message,
    updated_at = EXCLUDED.updated_at`

const selectTestRecordSQL = `
SELECT id, data_value, error_message, updated_at
FROM test_records
WHERE id = @id`

// PostgresStore keeps the record in the test_records table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Upsert writes rec in one statement on a connection held only for this call.
func (s *PostgresStore) Upsert(ctx context.Context, rec model.TestRecord) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return sqlerr.Wrap("acquire connection", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, upsertTestRecordSQL, pgx.NamedArgs{
		"id":            model.TestRecordID,
		"data_value":    rec.Value,
		"error_message": rec.ErrorMessage,
	})
	// A check violation stays reachable as *pgconn.PgError through the wrap.
	return sqlerr.Wrap("upsert test record", err)
}

func (s *PostgresStore) Get(ctx context.Context) (*model.TestRecord, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, sqlerr.Wrap("acquire connection", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, selectTestRecordSQL, pgx.NamedArgs{"id": model.TestRecordID})
	if err != nil {
		return nil, sqlerr.Wrap("select test record", err)
	}

	rec, err := pgx.CollectExactlyOneRow(rows, scanTestRecord)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestRecordNotFound
		}
		return nil, sqlerr.Wrap("scan test record", err)
	}
	return &rec, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return sqlerr.Wrap("ping postgres", s.pool.Ping(ctx))
}

func scanTestRecord(row pgx.CollectableRow) (model.TestRecord, error) {
	var rec model.TestRecord
	err := row.Scan(&rec.ID, &rec.Value, &rec.ErrorMessage, &rec.UpdatedAt)
	return rec, err
}
