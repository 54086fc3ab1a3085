package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/komeprice/internal/catalog"
	"github.com/hitoshi/komeprice/internal/metrics"
	"github.com/hitoshi/komeprice/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// カタログ
	CatalogService CatalogServiceInterface
	QueryConfig    catalog.QueryConfig

	// ヘルスチェック
	HealthChecker HealthChecker

	// ミドルウェア依存
	Logger      *slog.Logger
	RateLimiter *middleware.RateLimiter

	// メトリクス（どちらもnil可）
	Metrics         metrics.MetricsCollector
	MetricsGatherer prometheus.Gatherer
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → RequestID → Logging → Metrics
//
// レート制限はカタログルートだけに適用する。/health と /metrics は
// 監視系からの定期アクセスを想定して制限の外に置く。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}

	catalogHandler := NewCatalogHandler(deps.CatalogService, deps.QueryConfig, deps.Metrics)
	healthHandler := NewHealthHandler(deps.HealthChecker)

	// --- 監視系ルート（レート制限なし） ---

	r.Get("/health", healthHandler.Check)

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// --- カタログルート ---

	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		r.Get("/", catalogHandler.ShowCatalog)
	})

	return r
}
