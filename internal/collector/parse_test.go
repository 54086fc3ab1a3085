package collector

import "testing"

// TestProductID_Deterministic は同一入力から常に同じIDが生成されることを検証する。
func TestProductID_Deterministic(t *testing.T) {
	a := ProductID("楽天市場", "https://item.rakuten.co.jp/shop/rice-5kg/")
	b := ProductID("楽天市場", "https://item.rakuten.co.jp/shop/rice-5kg/")

	if a != b {
		t.Errorf("ProductID is not deterministic: %q != %q", a, b)
	}
	if len(a) != productIDLength {
		t.Errorf("len(ProductID) = %d, want %d", len(a), productIDLength)
	}
}

// TestProductID_DiffersBySiteAndURL はサイトまたはURLが違えばIDが変わることを検証する。
func TestProductID_DiffersBySiteAndURL(t *testing.T) {
	base := ProductID("楽天市場", "https://example.com/item/1")

	if base == ProductID("Amazon", "https://example.com/item/1") {
		t.Error("different site should yield different ID")
	}
	if base == ProductID("楽天市場", "https://example.com/item/2") {
		t.Error("different URL should yield different ID")
	}
}

// TestParsePrice は価格表示テキストの正規化を検証する。
func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
		isNil bool
	}{
		{"数字のみ", "2980", 2980, false},
		{"円記号付き", "¥2,980", 2980, false},
		{"全角円記号付き", "￥12,800", 12800, false},
		{"円単位付き", "1,980円", 1980, false},
		{"税込表記付き", "2,480円（税込）", 2480, false},
		{"全角数字", "１９８０円", 1980, false},
		{"前後に説明文", "特価 ¥980 送料無料", 980, false},
		{"数字なし", "価格はお問い合わせください", 0, true},
		{"空文字列", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.input)
			if tt.isNil {
				if got != nil {
					t.Errorf("ParsePrice(%q) = %d, want nil", tt.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParsePrice(%q) = nil, want %d", tt.input, tt.want)
			}
			if *got != tt.want {
				t.Errorf("ParsePrice(%q) = %d, want %d", tt.input, *got, tt.want)
			}
		})
	}
}

// TestParsePrice_StopsAtFirstNumber は複数の数字列がある場合に
// 最初の数字列だけを価格として扱うことを検証する。
func TestParsePrice_StopsAtFirstNumber(t *testing.T) {
	got := ParsePrice("2,980円 (598円/kg)")
	if got == nil || *got != 2980 {
		t.Errorf("ParsePrice should stop at the first number, got %v", got)
	}
}
