// Package collector はECサイトからのお米商品情報の収集を提供する。
package collector

// SiteConfig は収集対象サイトの定義。
// 商品一覧ページのCSSセレクタで各フィールドの抽出位置を指定する。
type SiteConfig struct {
	Name          string // サイト表示名（例: 楽天市場）
	StartURL      string // 商品一覧ページのURL
	ItemSelector  string // 商品1件に対応する要素
	NameSelector  string // ItemSelector配下の商品名要素
	PriceSelector string // ItemSelector配下の価格要素
	LinkSelector  string // ItemSelector配下の商品リンク要素（href属性）
	ImageSelector string // ItemSelector配下の商品画像要素（src属性）
}

// DefaultSites は既定の収集対象サイトを返す。
// セレクタは各サイトの検索結果ページの構造に対応する。
func DefaultSites() []SiteConfig {
	return []SiteConfig{
		{
			Name:          "楽天市場",
			StartURL:      "https://search.rakuten.co.jp/search/mall/米/",
			ItemSelector:  "div.searchresultitem",
			NameSelector:  "div.title a",
			PriceSelector: "div.price",
			LinkSelector:  "div.title a",
			ImageSelector: "div.image img",
		},
		{
			Name:          "Amazon",
			StartURL:      "https://www.amazon.co.jp/s?k=米",
			ItemSelector:  "div.s-result-item[data-component-type=s-search-result]",
			NameSelector:  "h2 a span",
			PriceSelector: "span.a-price span.a-offscreen",
			LinkSelector:  "h2 a",
			ImageSelector: "img.s-image",
		},
	}
}
