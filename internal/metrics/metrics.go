// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// Congress.govクライアント、集約層、要約、エクスポート、HTTP層から利用する。
type MetricsCollector interface {
	RecordUpstreamRequest(endpoint, result string, duration time.Duration)
	RecordFallback(searchType, reason string)
	RecordSummary(provider, result string)
	RecordExport(format string)
	RecordHTTPRequest(method string, statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	fallbacks        *prometheus.CounterVec
	summaries        *prometheus.CounterVec
	exports          *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "legiswatch_upstream_requests_total",
			Help: "Congress.gov API呼び出しの合計数（エンドポイント・結果別）",
		}, []string{"endpoint", "result"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "legiswatch_upstream_request_duration_seconds",
			Help:    "Congress.gov API呼び出しのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "legiswatch_fallbacks_total",
			Help: "モックデータへ切り替えた検索の合計数",
		}, []string{"search_type", "reason"}),
		summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "legiswatch_summaries_total",
			Help: "AI要約の生成結果別の合計数",
		}, []string{"provider", "result"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "legiswatch_exports_total",
			Help: "エクスポートの形式別の合計数",
		}, []string{"format"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "legiswatch_http_requests_total",
			Help: "受信HTTPリクエストのメソッド・ステータス別の合計数",
		}, []string{"method", "status"}),
	}

	reg.MustRegister(
		c.upstreamRequests,
		c.upstreamLatency,
		c.fallbacks,
		c.summaries,
		c.exports,
		c.httpRequests,
	)

	return c
}

// RecordUpstreamRequest は上流API呼び出しの結果とレイテンシを記録する。
func (c *Collector) RecordUpstreamRequest(endpoint, result string, duration time.Duration) {
	c.upstreamRequests.WithLabelValues(endpoint, result).Inc()
	c.upstreamLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordFallback はモックデータへの切り替えを記録する。
func (c *Collector) RecordFallback(searchType, reason string) {
	c.fallbacks.WithLabelValues(searchType, reason).Inc()
}

// RecordSummary はAI要約の結果を記録する。
func (c *Collector) RecordSummary(provider, result string) {
	c.summaries.WithLabelValues(provider, result).Inc()
}

// RecordExport はエクスポートを記録する。
func (c *Collector) RecordExport(format string) {
	c.exports.WithLabelValues(format).Inc()
}

// RecordHTTPRequest は受信HTTPリクエストを記録する。
func (c *Collector) RecordHTTPRequest(method string, statusCode int) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
}

// Nop は何も記録しないMetricsCollector。テストやCLIの単発実行で使用する。
type Nop struct{}

func (Nop) RecordUpstreamRequest(string, string, time.Duration) {}
func (Nop) RecordFallback(string, string)                       {}
func (Nop) RecordSummary(string, string)                        {}
func (Nop) RecordExport(string)                                 {}
func (Nop) RecordHTTPRequest(string, int)                       {}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
