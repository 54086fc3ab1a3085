package collector

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/komeprice/internal/config"
	"github.com/hitoshi/komeprice/internal/metrics"
)

// staleDeleter はWorkerが必要とする削除操作。
type staleDeleter interface {
	DeleteStale(ctx context.Context, olderThan time.Time) (int64, error)
}

// Worker は定期的に全サイトを収集し、保持期間を過ぎた商品を削除する。
type Worker struct {
	cfg      *config.Config
	scraper  *Scraper
	ingester *Ingester
	repo     staleDeleter
	metrics  metrics.MetricsCollector
}

// NewWorker は新しいWorkerを生成する。metricsはnilでもよい。
func NewWorker(cfg *config.Config, scraper *Scraper, ingester *Ingester, repo staleDeleter, m metrics.MetricsCollector) *Worker {
	return &Worker{
		cfg:      cfg,
		scraper:  scraper,
		ingester: ingester,
		repo:     repo,
		metrics:  m,
	}
}

// Run は起動直後に1回収集し、以降はScrapeInterval間隔で収集を繰り返す。
// コンテキストのキャンセルで停止する。
func (w *Worker) Run(ctx context.Context) error {
	w.RunOnce(ctx)

	ticker := time.NewTicker(w.cfg.ScrapeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce は全サイトの収集と古い商品の削除を1回実行する。
// 1サイトの失敗は他のサイトの収集を妨げない。
func (w *Worker) RunOnce(ctx context.Context) {
	for _, site := range w.scraper.Sites() {
		if ctx.Err() != nil {
			return
		}

		products, err := w.scraper.ScrapeSite(ctx, site)
		if err != nil {
			slog.Error("サイトの収集に失敗しました",
				slog.String("site", site.Name),
				slog.Any("error", err),
			)
			if w.metrics != nil {
				w.metrics.RecordScrapeFailure(site.Name, "fetch")
			}
			continue
		}

		stored, err := w.ingester.Ingest(ctx, products)
		if err != nil {
			slog.Error("商品の保存が中断されました",
				slog.String("site", site.Name),
				slog.Any("error", err),
			)
			if w.metrics != nil {
				w.metrics.RecordScrapeFailure(site.Name, "ingest")
			}
			return
		}

		slog.Info("サイトの収集が完了しました",
			slog.String("site", site.Name),
			slog.Int("scraped", len(products)),
			slog.Int("stored", stored),
		)
		if w.metrics != nil {
			w.metrics.RecordScrapeSuccess(site.Name)
		}
	}

	w.cleanupStale(ctx)
}

// cleanupStale は保持期間を過ぎて再収集されていない商品を削除する。
func (w *Worker) cleanupStale(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -w.cfg.ProductRetentionDays)

	deleted, err := w.repo.DeleteStale(ctx, cutoff)
	if err != nil {
		slog.Error("古い商品の削除に失敗しました", slog.Any("error", err))
		return
	}

	if deleted > 0 {
		slog.Info("古い商品を削除しました",
			slog.Int64("deleted", deleted),
			slog.Time("cutoff", cutoff),
		)
	}
}
