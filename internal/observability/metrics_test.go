package observability

import (
	"strings"
	"testing"
	"time"

	"github.com/capframe/capframe-backend/internal/platform/logger"
)

func TestInitDisabledByDefault(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "")
	if m := Init(nil); m != nil {
		t.Fatalf("Init: want nil when METRICS_ENABLED is unset, got %v", m)
	}

	// Every recorder is a no-op on the nil receiver.
	var m *Metrics
	m.ObserveAPI("GET", "/healthcheck", "200", time.Millisecond)
	m.ObserveImport("research_file", "ok", time.Millisecond)
	m.AddImportRows("domain", 1, 2, 3)
	m.AddVendorsRegistered(1)
	m.IncRename("ok")
	m.ApiInflightInc()
	m.ApiInflightDec()
	if err := m.WritePrometheus(&strings.Builder{}); err != nil {
		t.Fatalf("WritePrometheus on nil: %v", err)
	}
}

func TestMetricsExposition(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "true")
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	m := Init(log)
	if m == nil {
		t.Fatalf("Init: want metrics instance, got nil")
	}

	m.ObserveAPI("POST", "/api/capabilities/:id/imports/research", "200", 30*time.Millisecond)
	m.ObserveImport("research_file", "ok", 40*time.Millisecond)
	m.AddImportRows("domain", 2, 1, 3)
	m.AddImportRows("attribute", 0, 0, 5)
	m.AddVendorsRegistered(2)
	m.IncRename("ok")
	m.ApiInflightInc()

	var b strings.Builder
	if err := m.WritePrometheus(&b); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := b.String()

	wantLines := []string{
		"# TYPE cf_api_requests_total counter",
		`cf_api_requests_total{method="POST",route="/api/capabilities/:id/imports/research",status="200"} 1.000000`,
		`cf_api_request_duration_seconds_count{method="POST",route="/api/capabilities/:id/imports/research",status="200"} 1`,
		`cf_imports_total{format="research_file",status="ok"} 1.000000`,
		`cf_import_rows_total{kind="domain",outcome="new"} 2.000000`,
		`cf_import_rows_total{kind="domain",outcome="updated"} 1.000000`,
		`cf_import_rows_total{kind="attribute",outcome="skipped"} 5.000000`,
		"cf_vendors_registered_total 2.000000",
		`cf_domain_renames_total{status="ok"} 1.000000`,
		"cf_api_inflight_requests 1.000000",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Fatalf("exposition missing %q:\n%s", line, out)
		}
	}

	// Rows with zero outcomes never materialize a series.
	if strings.Contains(out, `cf_import_rows_total{kind="attribute",outcome="new"}`) {
		t.Fatalf("zero outcome should not be exported:\n%s", out)
	}
}

func TestHistogramBuckets(t *testing.T) {
	h := NewHistogramVec("cf_test_hist", "test histogram", []string{"k"}, []float64{0.1, 1})
	h.Observe(0.05, "a")
	h.Observe(0.5, "a")
	h.Observe(5, "a")

	var b strings.Builder
	if err := h.WritePrometheus(&b); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := b.String()

	wantLines := []string{
		`cf_test_hist_bucket{k="a",le="0.1"} 1`,
		`cf_test_hist_bucket{k="a",le="1"} 2`,
		`cf_test_hist_bucket{k="a",le="+Inf"} 3`,
		`cf_test_hist_count{k="a"} 3`,
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Fatalf("exposition missing %q:\n%s", line, out)
		}
	}
}
