package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGlobalHelpers(t *testing.T) {
	// The global manager is wired to the custom registry in init.
	RecordQuoteSubmitted()
	RecordSubmissionError("validation")
	UpdateHistorySize(3)
	RecordStoreAppendLatency("csv", 1.5)
	RecordStoreReadLatency("sheets", 12)
	RecordStoreError("sheets", "append")
	RecordHTTPRequest("quotes", "POST", "201")
	RecordHTTPRequestDuration("quotes", "POST", "201", 3)
	RecordErrorByEndpoint("quotes", "POST", "validation")
	UpdateSystemMemoryUsage(1 << 20)
	UpdateSystemGoroutineCount(10)
	RecordSystemGCPauseTime(0.4)

	if got := testutil.ToFloat64(globalManager.historySize); got != 3 {
		t.Errorf("history size gauge = %v, want 3", got)
	}
	if got := testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("sheets", "append")); got < 1 {
		t.Errorf("store errors counter = %v, want >= 1", got)
	}

	families, err := GetRegistry().Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	found := false
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "quoteboard_service_quotes_submitted") {
			found = true
		}
	}
	if !found {
		t.Error("expected quotes_submitted metric in custom registry")
	}
}

func TestNewManagerWithOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewManager(
		WithNamespace("qb"),
		WithSubsystem("test"),
		WithHistogramBuckets([]float64{1, 10, 100}),
		WithPrometheusRegistry(reg),
	)
	if m == nil {
		t.Fatal("manager is nil")
	}
	m.quotesSubmitted.Inc()
	if got := testutil.ToFloat64(m.quotesSubmitted); got != 1 {
		t.Errorf("counter = %v, want 1", got)
	}
}
