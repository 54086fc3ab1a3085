package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/komeprice/internal/catalog"
	"github.com/hitoshi/komeprice/internal/metrics"
	"github.com/hitoshi/komeprice/internal/middleware"
	"github.com/hitoshi/komeprice/internal/model"
)

// newTestRouter はモック依存でルーターを構築する。
func newTestRouter(t *testing.T, svc CatalogServiceInterface) http.Handler {
	t.Helper()
	return NewRouter(&RouterDeps{
		CatalogService: svc,
		QueryConfig:    catalog.DefaultQueryConfig(),
		HealthChecker:  &mockHealthChecker{},
	})
}

func emptyPageService() *mockCatalogService {
	return okService(&model.PageView{
		CurrentPage: 1,
		TotalPages:  0,
		Sort:        model.SortPriceAsc,
		PageSize:    20,
	})
}

// TestRouter_CatalogRoute はルートパスがカタログページを返すことをテストする。
func TestRouter_CatalogRoute(t *testing.T) {
	router := newTestRouter(t, emptyPageService())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		t.Errorf("Content-Type = %q, want text/html", resp.Header.Get("Content-Type"))
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set by the middleware chain")
	}
}

// TestRouter_HealthRoute は/healthが応答することをテストする。
func TestRouter_HealthRoute(t *testing.T) {
	router := newTestRouter(t, emptyPageService())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
}

// TestRouter_MetricsRoute は/metricsがPrometheus形式で応答することをテストする。
func TestRouter_MetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	router := NewRouter(&RouterDeps{
		CatalogService:  emptyPageService(),
		QueryConfig:     catalog.DefaultQueryConfig(),
		HealthChecker:   &mockHealthChecker{},
		Metrics:         collector,
		MetricsGatherer: reg,
	})

	// カタログへのアクセスでステータスメトリクスが記録される
	catalogReq := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(httptest.NewRecorder(), catalogReq)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "komeprice_http_status_total") {
		t.Error("expected http status metric in /metrics output")
	}
}

// TestRouter_RateLimitAppliesToCatalogOnly はレート制限がカタログルートにだけ
// 適用されることをテストする。
func TestRouter_RateLimitAppliesToCatalogOnly(t *testing.T) {
	rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:            1,
		Burst:           1,
		CleanupInterval: time.Minute,
	})
	defer rl.Stop()

	router := NewRouter(&RouterDeps{
		CatalogService: emptyPageService(),
		QueryConfig:    catalog.DefaultQueryConfig(),
		HealthChecker:  &mockHealthChecker{},
		RateLimiter:    rl,
	})

	// 1回目は通る
	req1 := httptest.NewRequest(http.MethodGet, "/", nil)
	req1.RemoteAddr = "192.0.2.50:1234"
	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, req1)

	// 2回目のカタログアクセスは429
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.RemoteAddr = "192.0.2.50:1234"
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)

	if w2.Result().StatusCode != http.StatusTooManyRequests {
		t.Errorf("catalog status = %d, want %d", w2.Result().StatusCode, http.StatusTooManyRequests)
	}

	// /healthは制限の外
	reqH := httptest.NewRequest(http.MethodGet, "/health", nil)
	reqH.RemoteAddr = "192.0.2.50:1234"
	wH := httptest.NewRecorder()
	router.ServeHTTP(wH, reqH)

	if wH.Result().StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want %d", wH.Result().StatusCode, http.StatusOK)
	}
}

// TestRouter_PanicRecovered はハンドラーのpanicが500に変換されることをテストする。
func TestRouter_PanicRecovered(t *testing.T) {
	svc := &mockCatalogService{
		fetchPageFn: func(ctx context.Context, q catalog.Query) (*model.PageView, error) {
			panic("unexpected")
		},
	}
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusInternalServerError)
	}
}
