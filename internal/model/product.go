// Package model はドメインモデルを定義する。
package model

import "time"

// Product はECサイトから収集した商品を表す。
// カタログ側からは読み取り専用であり、書き込みはコレクターのみが行う。
type Product struct {
	ID            string     // コレクターが (site_name, product_url) から決定的に割り当てるID
	Name          string
	Price         *int64     // 円単位。収集元のデータが不完全な場合はnil
	ProductURL    string
	AffiliateURL  string     // 空の場合はProductURLがリンク先のフォールバックになる
	ImageURL      string
	SiteName      string
	LastScrapedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LinkTarget は商品リンクの遷移先URLを返す。
// アフィリエイトURLが設定されていればそれを優先し、なければ商品URLを返す。
func (p *Product) LinkTarget() string {
	if p.AffiliateURL != "" {
		return p.AffiliateURL
	}
	return p.ProductURL
}

// SortKey はカタログの並び順を表す閉じた列挙型。
type SortKey string

const (
	// SortPriceAsc は価格の安い順。未知の入力に対するデフォルト。
	SortPriceAsc SortKey = "price_asc"
	// SortPriceDesc は価格の高い順。
	SortPriceDesc SortKey = "price_desc"
	// SortUpdatedDesc は更新日時の新しい順。
	SortUpdatedDesc SortKey = "updated_desc"
)

// ParseSortKey は生の入力文字列をSortKeyに解決する。
// 未知の値（空文字列を含む）はエラーにせずSortPriceAscに倒す。
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortUpdatedDesc:
		return SortKey(s)
	default:
		return SortPriceAsc
	}
}

// PageView はリクエストごとに構築されるカタログ1ページ分の射影。
// レンダリング後に破棄され、永続状態を一切持たない。
type PageView struct {
	Items         []Product // 長さは最大PageSize
	CurrentPage   int
	TotalPages    int
	TotalProducts int
	Sort          SortKey
	PageSize      int
}
