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
// ハンドラーやコレクターから利用する。
type MetricsCollector interface {
	RecordScrapeSuccess(siteName string)
	RecordScrapeFailure(siteName string, reason string)
	RecordHTTPStatus(statusCode int)
	RecordRenderLatency(duration time.Duration)
	RecordStoreError(op string)
	RecordProductsUpserted(count int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	scrapeSuccess    *prometheus.CounterVec
	scrapeFail       *prometheus.CounterVec
	httpStatus       *prometheus.CounterVec
	renderLatency    prometheus.Histogram
	storeErrors      *prometheus.CounterVec
	productsUpserted prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		scrapeSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "komeprice_scrape_success_total",
			Help: "サイト別のスクレイプ成功の合計数",
		}, []string{"site"}),
		scrapeFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "komeprice_scrape_fail_total",
			Help: "サイト・要因別のスクレイプ失敗の合計数",
		}, []string{"site", "reason"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "komeprice_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		renderLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "komeprice_render_latency_seconds",
			Help:    "カタログページ生成のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "komeprice_store_errors_total",
			Help: "ストア操作別のエラー合計数",
		}, []string{"op"}),
		productsUpserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "komeprice_products_upserted_total",
			Help: "アップサートされた商品の合計数",
		}),
	}

	reg.MustRegister(
		c.scrapeSuccess,
		c.scrapeFail,
		c.httpStatus,
		c.renderLatency,
		c.storeErrors,
		c.productsUpserted,
	)

	return c
}

// RecordScrapeSuccess はスクレイプ成功を記録する。
func (c *Collector) RecordScrapeSuccess(siteName string) {
	c.scrapeSuccess.WithLabelValues(siteName).Inc()
}

// RecordScrapeFailure はスクレイプ失敗を記録する。reasonは"fetch"または"ingest"。
func (c *Collector) RecordScrapeFailure(siteName string, reason string) {
	c.scrapeFail.WithLabelValues(siteName, reason).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRenderLatency はカタログページ生成のレイテンシを記録する。
func (c *Collector) RecordRenderLatency(duration time.Duration) {
	c.renderLatency.Observe(duration.Seconds())
}

// RecordStoreError はストア操作のエラーを記録する。opは"count"または"list"。
func (c *Collector) RecordStoreError(op string) {
	c.storeErrors.WithLabelValues(op).Inc()
}

// RecordProductsUpserted はアップサートされた商品数を記録する。
func (c *Collector) RecordProductsUpserted(count int) {
	c.productsUpserted.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
// ルーターが/metricsにマウントする。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
