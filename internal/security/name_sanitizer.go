package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// NameSanitizerService は商品名などのスクレイプ由来テキストの
// サニタイズ機能のインターフェースを定義する。保存前に使用する。
type NameSanitizerService interface {
	// Sanitize はテキストからHTMLマークアップを全て除去してプレーンテキストを返す。
	// 前後の空白も除去する。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// nameSanitizer はNameSanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type nameSanitizer struct {
	policy *bluemonday.Policy
}

// NewNameSanitizer はNameSanitizerServiceの新しいインスタンスを生成する。
// 商品名はプレーンテキストとして保存するため、タグを一切許可しない
// StrictPolicyを使用する。タグ除去後のエンティティ（&amp;等）は
// デコードして元の文字に戻す。表示時のエスケープはビュー層が行う。
func NewNameSanitizer() *nameSanitizer {
	return &nameSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize はテキストからHTMLマークアップを除去してプレーンテキストを返す。
func (s *nameSanitizer) Sanitize(raw string) string {
	stripped := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
