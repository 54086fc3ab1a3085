// Package catalog はカタログの問い合わせエンジンを提供する。
// クライアントが指定した (sort, page, pageSize) をバリデーション済みクエリに解決し、
// ストアへの問い合わせ結果をページネーションメタデータ付きのPageViewにまとめる。
package catalog

import (
	"net/url"
	"strconv"

	"github.com/hitoshi/komeprice/internal/model"
)

// QueryConfig はクエリパラメータのデフォルト値と上限を保持する。
type QueryConfig struct {
	DefaultPageSize int // page size未指定・不正時のデフォルト
	MaxPageSize     int // limitパラメータの上限（0以下なら無制限）
}

// DefaultQueryConfig はデフォルトのクエリ設定を返す。
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
}

// Query はバリデーション済みのカタログ問い合わせパラメータ。
// ParseQueryを通して生成され、常に有効な値のみを持つ。
type Query struct {
	Sort     model.SortKey
	Page     int // 1以上
	PageSize int // 1以上
}

// ParseQuery は生のクエリパラメータをQueryに解決する全域関数。
// どのような入力（欠落・非数値・範囲外）に対してもエラーにならず、
// デフォルト値への置換で回復する:
//   - sort: price_asc / price_desc / updated_desc 以外はprice_asc
//   - page: 正の整数以外は1
//   - limit（旧pageSize）: 正の整数以外はDefaultPageSize、MaxPageSizeを超える値は切り詰め
func ParseQuery(values url.Values, cfg QueryConfig) Query {
	q := Query{
		Sort:     model.ParseSortKey(values.Get("sort")),
		Page:     1,
		PageSize: cfg.DefaultPageSize,
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		q.Page = page
	}

	rawSize := values.Get("limit")
	if rawSize == "" {
		rawSize = values.Get("pageSize")
	}
	if size, err := strconv.Atoi(rawSize); err == nil && size >= 1 {
		q.PageSize = size
	}
	if cfg.MaxPageSize > 0 && q.PageSize > cfg.MaxPageSize {
		q.PageSize = cfg.MaxPageSize
	}

	return q
}

// Offset はストアに渡すオフセットを返す。offset = (page - 1) * pageSize。
func (q Query) Offset() int {
	return (q.Page - 1) * q.PageSize
}
