// Package repository handles all interactions with the record stores.
//
// It holds the queries and commands that read and write the single
// TestRecord, keeping storage details away from the service layer.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/roundtrip/internal/model"
)

// ErrTestRecordNotFound is returned by Get before anything was submitted.
var ErrTestRecordNotFound = errors.New("test record not found")

// TestRecordStore persists the fixed-identity TestRecord.
//
// Upsert overwrites the row unconditionally. Get returns
// ErrTestRecordNotFound when the row does not exist. Any other error is a
// storage failure wrapped by sqlerr.Wrap.
type TestRecordStore interface {
	Upsert(ctx context.Context, rec model.TestRecord) error
	Get(ctx context.Context) (*model.TestRecord, error)
	Ping(ctx context.Context) error
}
