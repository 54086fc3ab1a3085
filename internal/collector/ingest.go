package collector

import (
	"context"
	"log/slog"

	"github.com/hitoshi/komeprice/internal/metrics"
	"github.com/hitoshi/komeprice/internal/model"
	"github.com/hitoshi/komeprice/internal/security"
)

// productUpserter はIngesterが必要とする書き込み操作。
type productUpserter interface {
	Upsert(ctx context.Context, product *model.Product) error
}

// Ingester は収集した商品をサニタイズ・検証してストアに保存する。
type Ingester struct {
	repo      productUpserter
	sanitizer security.NameSanitizerService
	guard     security.URLGuardService
	metrics   metrics.MetricsCollector
}

// NewIngester は新しいIngesterを生成する。metricsはnilでもよい。
func NewIngester(repo productUpserter, sanitizer security.NameSanitizerService, guard security.URLGuardService, m metrics.MetricsCollector) *Ingester {
	return &Ingester{
		repo:      repo,
		sanitizer: sanitizer,
		guard:     guard,
		metrics:   m,
	}
}

// Ingest は商品リストを1件ずつ保存し、保存できた件数を返す。
// 商品名が空になるもの・商品URLが危険なものはスキップする。
// 画像URL・アフィリエイトURLが危険な場合はそのフィールドだけ落として保存する。
// 個別の保存失敗は記録して続行し、コンテキストのキャンセルだけがエラーになる。
func (i *Ingester) Ingest(ctx context.Context, products []model.Product) (int, error) {
	stored := 0

	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return stored, err
		}

		p.Name = i.sanitizer.Sanitize(p.Name)
		p.SiteName = i.sanitizer.Sanitize(p.SiteName)
		if p.Name == "" {
			slog.Warn("商品名が空のためスキップします",
				slog.String("product_id", p.ID),
				slog.String("product_url", p.ProductURL),
			)
			continue
		}

		if err := i.guard.ValidateURL(p.ProductURL); err != nil {
			slog.Warn("商品URLが安全でないためスキップします",
				slog.String("product_id", p.ID),
				slog.String("product_url", p.ProductURL),
				slog.Any("error", err),
			)
			continue
		}

		if p.ImageURL != "" {
			if err := i.guard.ValidateURL(p.ImageURL); err != nil {
				slog.Warn("画像URLが安全でないため除外します",
					slog.String("product_id", p.ID),
					slog.Any("error", err),
				)
				p.ImageURL = ""
			}
		}

		if p.AffiliateURL != "" {
			if err := i.guard.ValidateURL(p.AffiliateURL); err != nil {
				slog.Warn("アフィリエイトURLが安全でないため除外します",
					slog.String("product_id", p.ID),
					slog.Any("error", err),
				)
				p.AffiliateURL = ""
			}
		}

		if err := i.repo.Upsert(ctx, &p); err != nil {
			slog.Error("商品の保存に失敗しました",
				slog.String("product_id", p.ID),
				slog.Any("error", err),
			)
			continue
		}

		stored++
	}

	if i.metrics != nil && stored > 0 {
		i.metrics.RecordProductsUpserted(stored)
	}

	return stored, nil
}
