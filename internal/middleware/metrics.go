package middleware

import (
	"net/http"

	"github.com/hitoshi/komeprice/internal/metrics"
)

// NewMetricsMiddleware はレスポンスのステータスコードを
// メトリクスとして記録するミドルウェアを返す。
func NewMetricsMiddleware(m metrics.MetricsCollector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			m.RecordHTTPStatus(rec.statusCode)
		})
	}
}
