package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/komeprice/internal/model"
)

// PostgresProductRepo はPostgreSQLを使用した商品リポジトリ。
type PostgresProductRepo struct {
	db *sql.DB
}

// NewPostgresProductRepo はPostgresProductRepoを生成する。
func NewPostgresProductRepo(db *sql.DB) *PostgresProductRepo {
	return &PostgresProductRepo{db: db}
}

// productColumns はSELECT句で使用するカラムリスト。
const productColumns = `id, name, price, product_url, affiliate_url, image_url, site_name,
	        last_scraped_at, created_at, updated_at`

// orderClause はSortKeyをORDER BY句に解決する。
// 価格はNULLを末尾に寄せ、同値はid昇順で安定化する（ページネーションの決定性のため）。
// 未知のキーはSortPriceAscと同じ順序になる。
func orderClause(sort model.SortKey) string {
	switch sort {
	case model.SortPriceDesc:
		return "price DESC NULLS LAST, id ASC"
	case model.SortUpdatedDesc:
		return "updated_at DESC, id ASC"
	default:
		return "price ASC NULLS LAST, id ASC"
	}
}

// Count は商品の総件数を返す。
func (r *PostgresProductRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("商品件数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// ListPage は指定された並び順で商品の1ページ分を取得する。
func (r *PostgresProductRepo) ListPage(ctx context.Context, sort model.SortKey, limit, offset int) ([]model.Product, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM products ORDER BY %s LIMIT $1 OFFSET $2`,
		productColumns, orderClause(sort),
	)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("商品一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("商品行の読み取りに失敗しました: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("商品一覧の走査に失敗しました: %w", err)
	}

	return products, nil
}

// Upsert は商品を冪等にUPSERTする。
// 重複判定はid（コレクターが site_name と product_url から決定的に生成）で行い、
// 既存行のcreated_atは維持する。
func (r *PostgresProductRepo) Upsert(ctx context.Context, product *model.Product) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, name, price, product_url, affiliate_url, image_url,
		                       site_name, last_scraped_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now(), now())
		 ON CONFLICT (id) DO UPDATE SET
		     name = excluded.name,
		     price = excluded.price,
		     affiliate_url = excluded.affiliate_url,
		     image_url = excluded.image_url,
		     site_name = excluded.site_name,
		     last_scraped_at = now(),
		     updated_at = now()`,
		product.ID, product.Name, nullInt64(product.Price), product.ProductURL,
		nullString(product.AffiliateURL), nullString(product.ImageURL),
		nullString(product.SiteName),
	)
	if err != nil {
		return fmt.Errorf("商品のUPSERTに失敗しました: %w", err)
	}
	return nil
}

// DeleteStale はlast_scraped_atがolderThanより古い商品を削除し、削除件数を返す。
func (r *PostgresProductRepo) DeleteStale(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE last_scraped_at < $1`,
		olderThan,
	)
	if err != nil {
		return 0, fmt.Errorf("古い商品の削除に失敗しました: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除件数の取得に失敗しました: %w", err)
	}

	return affected, nil
}

// scanProduct は1行分の商品をスキャンする。
func scanProduct(row *sql.Rows) (*model.Product, error) {
	p := &model.Product{}
	var price sql.NullInt64
	var affiliateURL, imageURL, siteName sql.NullString

	if err := row.Scan(
		&p.ID, &p.Name, &price, &p.ProductURL, &affiliateURL, &imageURL, &siteName,
		&p.LastScrapedAt, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if price.Valid {
		v := price.Int64
		p.Price = &v
	}
	p.AffiliateURL = nullStringValue(affiliateURL)
	p.ImageURL = nullStringValue(imageURL)
	p.SiteName = nullStringValue(siteName)

	return p, nil
}

// nullString は空文字列をsql.NullStringのNULLに変換する。
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullStringValue はsql.NullStringを文字列に変換する。NULLは空文字列になる。
func nullStringValue(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// nullInt64 はnilポインタをsql.NullInt64のNULLに変換する。
func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// compile-time interface check
var _ ProductRepository = (*PostgresProductRepo)(nil)
