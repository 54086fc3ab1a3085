// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/komeprice/internal/model"
)

// ProductRepository は商品データの永続化インターフェース。
// カタログ側は読み取り（Count/ListPage）のみ、書き込み（Upsert/DeleteStale）は
// コレクターのみが使用する。
type ProductRepository interface {
	// Count は商品の総件数を返す。
	Count(ctx context.Context) (int, error)

	// ListPage は指定された並び順で商品の1ページ分を取得する。
	// 同値の並び替えはid昇順で安定化される。
	// offsetが総件数を超える場合は空のスライスを返す。
	ListPage(ctx context.Context, sort model.SortKey, limit, offset int) ([]model.Product, error)

	// Upsert は商品を冪等にUPSERTする。
	// 既存IDの場合はname/price/affiliate_url/image_url/last_scraped_at/updated_atを
	// 上書きし、created_atは維持する。
	Upsert(ctx context.Context, product *model.Product) error

	// DeleteStale はlast_scraped_atがolderThanより古い商品を削除し、削除件数を返す。
	DeleteStale(ctx context.Context, olderThan time.Time) (int64, error)
}
