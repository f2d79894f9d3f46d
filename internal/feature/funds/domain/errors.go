// Package domain はfundsフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrFundNotFound は指定されたIDのファンドが存在しないことを示します。
	ErrFundNotFound = errors.New("fund not found")
)
