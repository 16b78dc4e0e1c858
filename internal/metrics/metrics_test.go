package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSubmission(t *testing.T) {
	before := testutil.ToFloat64(submissions.WithLabelValues("out_of_range"))

	RecordSubmission("out_of_range")
	RecordSubmission("out_of_range")

	after := testutil.ToFloat64(submissions.WithLabelValues("out_of_range"))
	if after-before != 2 {
		t.Fatalf("expected 2 new submissions, got=%v", after-before)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/response", "200"))

	RecordHTTPRequest(http.MethodGet, "/response", http.StatusOK, 3*time.Millisecond)

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/response", "200"))
	if after-before != 1 {
		t.Fatalf("expected 1 new request, got=%v", after-before)
	}
}

func TestRegisterMetricsIsIdempotent(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()
}
