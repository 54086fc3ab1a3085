package collector

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/hitoshi/komeprice/internal/config"
	"github.com/hitoshi/komeprice/internal/model"
	"github.com/hitoshi/komeprice/internal/security"
)

// Scraper はcollyを使って収集対象サイトから商品情報を抽出する。
type Scraper struct {
	cfg   *config.Config
	sites []SiteConfig

	// transport は収集リクエストに使うトランスポート。
	// 通常はguardのSSRF防止クライアントから取り、テストではモックに差し替える。
	transport http.RoundTripper
}

// NewScraper は新しいScraperを生成する。
// guardが指定された場合、すべての収集リクエストはSSRF防止クライアントの
// トランスポートを経由する（リダイレクト先がプライベートIPに解決される場合も遮断される）。
func NewScraper(cfg *config.Config, sites []SiteConfig, guard security.URLGuardService) *Scraper {
	s := &Scraper{
		cfg:   cfg,
		sites: sites,
	}
	if guard != nil {
		s.transport = guard.NewSafeClient(cfg.ScrapeTimeout).Transport
	}
	return s
}

// Sites は収集対象サイトの一覧を返す。
func (s *Scraper) Sites() []SiteConfig {
	return s.sites
}

// ScrapeSite は1サイトの商品一覧ページを収集し、抽出できた商品を返す。
// 1件も抽出できなかった場合は空スライスを返す（エラーではない）。
func (s *Scraper) ScrapeSite(ctx context.Context, site SiteConfig) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := url.Parse(site.StartURL)
	if err != nil {
		return nil, fmt.Errorf("サイトURLのパースに失敗しました: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("サイトURLにホストがありません: %s", site.StartURL)
	}

	c := colly.NewCollector(
		colly.AllowedDomains(parsed.Host),
		colly.UserAgent(s.cfg.ScrapeUserAgent),
	)
	c.SetRequestTimeout(s.cfg.ScrapeTimeout)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: s.cfg.ScrapeParallelism,
		Delay:       s.cfg.ScrapeDelay,
	}); err != nil {
		return nil, fmt.Errorf("レート制限の設定に失敗しました: %w", err)
	}

	if s.transport != nil {
		c.WithTransport(s.transport)
	}

	var (
		mu        sync.Mutex
		products  []model.Product
		visitErr  error
		scrapedAt = time.Now()
	)

	c.OnHTML(site.ItemSelector, func(e *colly.HTMLElement) {
		p := extractProduct(e, site, scrapedAt)
		if p == nil {
			return
		}
		mu.Lock()
		products = append(products, *p)
		mu.Unlock()
	})

	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		slog.Error("サイトの取得に失敗しました",
			slog.String("site", site.Name),
			slog.Int("status", status),
			slog.Any("error", err),
		)
		mu.Lock()
		if visitErr == nil {
			visitErr = err
		}
		mu.Unlock()
	})

	if err := c.Visit(site.StartURL); err != nil {
		return nil, fmt.Errorf("サイトへのアクセスに失敗しました: %w", err)
	}
	c.Wait()

	if visitErr != nil {
		return nil, fmt.Errorf("サイトの取得に失敗しました: %w", visitErr)
	}

	slog.Info("サイトの収集が完了しました",
		slog.String("site", site.Name),
		slog.Int("products", len(products)),
	)

	return products, nil
}

// extractProduct は商品要素1件から商品情報を抽出する。
// 商品名またはリンクが取れない要素は広告枠などのノイズとしてスキップする。
func extractProduct(e *colly.HTMLElement, site SiteConfig, scrapedAt time.Time) *model.Product {
	name := strings.TrimSpace(e.ChildText(site.NameSelector))
	if name == "" {
		return nil
	}

	href := e.ChildAttr(site.LinkSelector, "href")
	if href == "" {
		return nil
	}
	productURL := e.Request.AbsoluteURL(href)
	if productURL == "" {
		return nil
	}

	price := ParsePrice(e.ChildText(site.PriceSelector))

	imageURL := ""
	if src := e.ChildAttr(site.ImageSelector, "src"); src != "" {
		imageURL = e.Request.AbsoluteURL(src)
	}

	return &model.Product{
		ID:            ProductID(site.Name, productURL),
		Name:          name,
		Price:         price,
		ProductURL:    productURL,
		ImageURL:      imageURL,
		SiteName:      site.Name,
		LastScrapedAt: scrapedAt,
	}
}
