// Package model はドメインモデルを定義する。
package model

import "fmt"

// StoreError はストアへの問い合わせ失敗（接続断・クエリ失敗・不正なデータ）を表す。
// 境界（HTTPハンドラー）で捕捉され、汎用エラードキュメントに変換される。
// コア側ではリトライせず、そのまま呼び出し元へ伝播させる。
type StoreError struct {
	Op  string // 失敗したストア操作（"count" または "list"）
	Err error  // 原因となったエラー
}

// Error はerrorインターフェースを実装する。
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

// Unwrap はerrors.Is / errors.As による原因の検査を可能にする。
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError はストアエラーを生成する。
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
