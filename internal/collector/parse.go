package collector

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
)

// productIDLength は商品IDの桁数。
const productIDLength = 16

// ProductID はサイト名と商品URLから決定的な商品IDを生成する。
// 同一サイト・同一URLの商品は常に同じIDになるため、再収集がUPSERTとして機能する。
func ProductID(siteName, productURL string) string {
	sum := md5.Sum([]byte(siteName + "_" + productURL))
	return hex.EncodeToString(sum[:])[:productIDLength]
}

// ParsePrice は価格表示テキストから円単位の価格を抽出する。
// 通貨記号・桁区切り・単位（円）・全角数字を許容し、最初の数字列を価格として返す。
// 数字が見つからない場合はnilを返す（価格不明として保存される）。
func ParsePrice(text string) *int64 {
	var digits strings.Builder
	started := false

	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			started = true
			digits.WriteRune(r)
		case r >= '０' && r <= '９':
			// 全角数字を半角へ
			started = true
			digits.WriteRune(r - '０' + '0')
		case (r == ',' || r == '，') && started:
			// 桁区切りは読み飛ばす
		default:
			if started {
				// 最初の数字列の終端で打ち切る
				return parseDigits(digits.String())
			}
		}
	}

	return parseDigits(digits.String())
}

func parseDigits(s string) *int64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
