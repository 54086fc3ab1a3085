package view

import "testing"

// TestFormatPrice_ThousandsSeparator は3桁ごとの桁区切りを検証する。
func TestFormatPrice_ThousandsSeparator(t *testing.T) {
	tests := []struct {
		price int64
		want  string
	}{
		{0, "¥0"},
		{500, "¥500"},
		{1980, "¥1,980"},
		{12800, "¥12,800"},
		{1000000, "¥1,000,000"},
	}
	for _, tt := range tests {
		p := tt.price
		if got := FormatPrice(&p); got != tt.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

// TestFormatPrice_NilPrice は価格不明の商品がクラッシュせず固定表示になることを検証する。
func TestFormatPrice_NilPrice(t *testing.T) {
	got := FormatPrice(nil)
	if got != priceUnavailable {
		t.Errorf("FormatPrice(nil) = %q, want %q", got, priceUnavailable)
	}

	// 決定性: 同一入力に対して常に同一出力
	if again := FormatPrice(nil); again != got {
		t.Errorf("FormatPrice(nil) is not deterministic: %q != %q", again, got)
	}
}
