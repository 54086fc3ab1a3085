package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// priceUnavailable は価格が取得できなかった商品の表示テキスト。
const priceUnavailable = "価格情報なし"

// jpPrinter は日本語ロケールの数値フォーマッタ。3桁ごとの桁区切りを適用する。
var jpPrinter = message.NewPrinter(language.Japanese)

// FormatPrice は円単位の価格を表示用文字列にフォーマットする。
// 1980 → "¥1,980"。nil（価格不明）は固定のプレースホルダーになり、
// 同一入力に対して常に同一出力を返す。
func FormatPrice(price *int64) string {
	if price == nil {
		return priceUnavailable
	}
	return jpPrinter.Sprintf("¥%d", *price)
}
