package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/roundtrip/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	return httpErr
}

func TestHandleError_CheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23514",
		Message:        `new row for relation "test_records" violates check constraint`,
		TableName:      "test_records",
		ConstraintName: "test_records_value_check",
	}

	got := asHTTPError(t, HandleError(fmt.Errorf("upsert: %w", pgErr)))
	if got.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got=%d", got.Status)
	}
	if got.Code != "TEST_RECORD_INVALID" {
		t.Fatalf("unexpected code %q", got.Code)
	}
	if got.Message != "The Test Record does not meet required conditions" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}

func TestHandleError_UniqueViolationNamesColumn(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", TableName: "test_records", ConstraintName: "test_records_id_key"}

	got := asHTTPError(t, HandleError(pgErr))
	if got.Code != "TEST_RECORD_ALREADY_EXISTS" {
		t.Fatalf("unexpected code %q", got.Code)
	}
	if got.Message != "A Test Record with this Id already exists" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}

func TestHandleError_OtherPgErrorIsStorageFailure(t *testing.T) {
	pgErr := &pgconn.PgError{Severity: "FATAL", Code: "57P01", Message: "terminating connection due to administrator command"}

	got := asHTTPError(t, HandleError(pgErr))
	if got.Status != http.StatusInternalServerError || got.Code != errs.StorageFailureCode {
		t.Fatalf("unexpected error: %+v", got)
	}
}

func TestHandleError_StoreError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	got := asHTTPError(t, HandleError(Wrap("get test record", cause)))
	if got.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got=%d", got.Status)
	}
	if got.Message != "Connection failed: dial tcp: connection refused" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}

func TestHandleError_NoRows(t *testing.T) {
	got := asHTTPError(t, HandleError(pgx.ErrNoRows))
	if got.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got=%d", got.Status)
	}
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	in := errs.NewNotFoundError("Route not found", false, nil)
	if out := HandleError(in); out != error(in) {
		t.Fatalf("expected the same error back")
	}
}

func TestHandleError_UnknownIsGeneric500(t *testing.T) {
	got := asHTTPError(t, HandleError(errors.New("boom")))
	if got.Status != http.StatusInternalServerError || got.Message != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("unexpected error: %+v", got)
	}
}

func TestMapCode(t *testing.T) {
	cases := map[string]Code{
		"23502": NotNullViolation,
		"23503": ForeignKeyViolation,
		"23505": UniqueViolation,
		"23514": CheckViolation,
		"08006": ConnectionFailure,
		"42P01": Other,
	}
	for in, want := range cases {
		if got := MapCode(in); got != want {
			t.Errorf("MapCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap("op", nil) != nil {
		t.Fatalf("expected nil")
	}
	if !IsStoreError(Wrap("op", errors.New("x"))) {
		t.Fatalf("expected store error")
	}
}

func TestHandleError_WrappedCheckViolationStaysBadRequest(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514", TableName: "test_records"}

	got := asHTTPError(t, HandleError(Wrap("upsert test record", pgErr)))
	if got.Status != http.StatusBadRequest || got.Code != "TEST_RECORD_INVALID" {
		t.Fatalf("expected the pg error to win over the store wrapper, got=%+v", got)
	}
}
