package repository

import (
	"database/sql"
	"testing"

	"github.com/hitoshi/komeprice/internal/model"
)

// TestPostgresProductRepo_ImplementsInterface はPostgresProductRepoがProductRepositoryを実装することを検証する。
func TestPostgresProductRepo_ImplementsInterface(t *testing.T) {
	// コンパイル時チェック：PostgresProductRepoがProductRepositoryを満たすことを検証
	var _ ProductRepository = (*PostgresProductRepo)(nil)
}

// TestOrderClause はSortKeyごとのORDER BY句の対応を検証する。
// 同値の並び替えはid昇順で安定化される（ページネーションの決定性のため）。
func TestOrderClause(t *testing.T) {
	tests := []struct {
		sort model.SortKey
		want string
	}{
		{model.SortPriceAsc, "price ASC NULLS LAST, id ASC"},
		{model.SortPriceDesc, "price DESC NULLS LAST, id ASC"},
		{model.SortUpdatedDesc, "updated_at DESC, id ASC"},
		// 未知のキーはprice_ascと同じ順序
		{model.SortKey("bogus"), "price ASC NULLS LAST, id ASC"},
	}
	for _, tt := range tests {
		if got := orderClause(tt.sort); got != tt.want {
			t.Errorf("orderClause(%q) = %q, want %q", tt.sort, got, tt.want)
		}
	}
}

// TestNullString は空文字列とNULLの相互変換を検証する。
func TestNullString(t *testing.T) {
	if ns := nullString(""); ns.Valid {
		t.Error("nullString(\"\") should be NULL")
	}
	if ns := nullString("x"); !ns.Valid || ns.String != "x" {
		t.Errorf("nullString(\"x\") = %+v, want valid \"x\"", ns)
	}

	if v := nullStringValue(sql.NullString{}); v != "" {
		t.Errorf("nullStringValue(NULL) = %q, want empty string", v)
	}
	if v := nullStringValue(sql.NullString{String: "y", Valid: true}); v != "y" {
		t.Errorf("nullStringValue(\"y\") = %q, want %q", v, "y")
	}
}

// TestNullInt64 は価格ポインタとNULLの変換を検証する。
// 価格が取得できなかった商品はNULLとして保存される。
func TestNullInt64(t *testing.T) {
	if ni := nullInt64(nil); ni.Valid {
		t.Error("nullInt64(nil) should be NULL")
	}

	price := int64(1980)
	ni := nullInt64(&price)
	if !ni.Valid || ni.Int64 != 1980 {
		t.Errorf("nullInt64(&1980) = %+v, want valid 1980", ni)
	}
}
