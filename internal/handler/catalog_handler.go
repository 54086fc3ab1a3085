// Package handler はHTTPハンドラーとルーティングを提供する。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/komeprice/internal/catalog"
	"github.com/hitoshi/komeprice/internal/metrics"
	"github.com/hitoshi/komeprice/internal/middleware"
	"github.com/hitoshi/komeprice/internal/model"
	"github.com/hitoshi/komeprice/internal/view"
)

// storeFailureMessage はストア障害時にエラードキュメントへ表示するメッセージ。
const storeFailureMessage = "現在カタログを表示できません。時間をおいて再度お試しください。"

// CatalogServiceInterface はカタログハンドラーが必要とするサービスインターフェース。
type CatalogServiceInterface interface {
	// FetchPage はクエリに対応するカタログ1ページ分の射影を返す。
	FetchPage(ctx context.Context, q catalog.Query) (*model.PageView, error)
}

// CatalogHandler はカタログページのHTTPハンドラー。
type CatalogHandler struct {
	service  CatalogServiceInterface
	queryCfg catalog.QueryConfig
	metrics  metrics.MetricsCollector
}

// NewCatalogHandler はCatalogHandlerを生成する。metricsはnilでもよい。
func NewCatalogHandler(service CatalogServiceInterface, queryCfg catalog.QueryConfig, m metrics.MetricsCollector) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		queryCfg: queryCfg,
		metrics:  m,
	}
}

// ShowCatalog はカタログページを表示する。
// GET /?page=N&sort=KEY&limit=M
//
// クエリパラメータの不正値はデフォルト値に置換されるため、このハンドラーが
// 4xxを返すことはない。ストア障害もここで吸収し、HTTP 200で自己完結した
// エラードキュメントを返す（生の5xxボディをユーザーに見せない）。
func (h *CatalogHandler) ShowCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q := catalog.ParseQuery(r.URL.Query(), h.queryCfg)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	pv, err := h.service.FetchPage(r.Context(), q)
	if err != nil {
		h.handleStoreFailure(r.Context(), w, err)
		return
	}

	doc := view.RenderCatalog(pv)

	if h.metrics != nil {
		h.metrics.RecordRenderLatency(time.Since(start))
	}

	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// handleStoreFailure はストア障害をログとメトリクスに記録し、
// エラードキュメントをレンダリングする。
func (h *CatalogHandler) handleStoreFailure(ctx context.Context, w http.ResponseWriter, err error) {
	attrs := []any{slog.Any("error", err)}
	if reqID, idErr := middleware.RequestIDFromContext(ctx); idErr == nil {
		attrs = append(attrs, slog.String("request_id", reqID))
	}
	slog.Error("カタログの取得に失敗しました", attrs...)

	if h.metrics != nil {
		var storeErr *model.StoreError
		op := "unknown"
		if errors.As(err, &storeErr) {
			op = storeErr.Op
		}
		h.metrics.RecordStoreError(op)
	}

	w.WriteHeader(http.StatusOK)
	w.Write(view.RenderError(storeFailureMessage))
}
