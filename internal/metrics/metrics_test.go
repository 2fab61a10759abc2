package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// findMetric は指定名・ラベルに一致するメトリクスを返す。
func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsMatch(m, labels) {
				return m
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return nil
}

func labelsMatch(m *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, lp := range m.GetLabel() {
		if v, ok := labels[lp.GetName()]; ok && v == lp.GetValue() {
			matched++
		}
	}
	return matched == len(labels)
}

func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	if c := NewCollector(reg); c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

func TestCollector_ImplementsMetricsCollector(t *testing.T) {
	var _ MetricsCollector = NewCollector(prometheus.NewRegistry())
	var _ MetricsCollector = Nop{}
}

func TestRecordUpstreamRequest_CountsAndObserves(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstreamRequest("bill_list", "ok", 120*time.Millisecond)
	c.RecordUpstreamRequest("bill_list", "ok", 80*time.Millisecond)
	c.RecordUpstreamRequest("bill_list", "timeout", 10*time.Second)

	ok := findMetric(t, reg, "legiswatch_upstream_requests_total", map[string]string{"endpoint": "bill_list", "result": "ok"})
	if got := ok.GetCounter().GetValue(); got != 2 {
		t.Errorf("upstream_requests_total{ok} = %v, want 2", got)
	}
	timeout := findMetric(t, reg, "legiswatch_upstream_requests_total", map[string]string{"endpoint": "bill_list", "result": "timeout"})
	if got := timeout.GetCounter().GetValue(); got != 1 {
		t.Errorf("upstream_requests_total{timeout} = %v, want 1", got)
	}
	hist := findMetric(t, reg, "legiswatch_upstream_request_duration_seconds", map[string]string{"endpoint": "bill_list"})
	if got := hist.GetHistogram().GetSampleCount(); got != 3 {
		t.Errorf("sample count = %d, want 3", got)
	}
}

func TestRecordFallback_IncrementsByReason(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordFallback("state", "no_members")

	m := findMetric(t, reg, "legiswatch_fallbacks_total", map[string]string{"search_type": "state", "reason": "no_members"})
	if got := m.GetCounter().GetValue(); got != 1 {
		t.Errorf("fallbacks_total = %v, want 1", got)
	}
}

func TestRecordSummaryExportHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSummary("huggingface", "no_credential")
	c.RecordExport("csv")
	c.RecordExport("csv")
	c.RecordHTTPRequest("POST", 400)

	if got := findMetric(t, reg, "legiswatch_summaries_total", map[string]string{"provider": "huggingface", "result": "no_credential"}).GetCounter().GetValue(); got != 1 {
		t.Errorf("summaries_total = %v, want 1", got)
	}
	if got := findMetric(t, reg, "legiswatch_exports_total", map[string]string{"format": "csv"}).GetCounter().GetValue(); got != 2 {
		t.Errorf("exports_total = %v, want 2", got)
	}
	if got := findMetric(t, reg, "legiswatch_http_requests_total", map[string]string{"method": "POST", "status": "400"}).GetCounter().GetValue(); got != 1 {
		t.Errorf("http_requests_total = %v, want 1", got)
	}
}
