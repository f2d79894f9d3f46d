// Package entity はfundsフィーチャーのドメインモデルを定義します。
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fund はカタログに掲載されたファンドを表します。
// シード投入後に更新されることはありません。
type Fund struct {
	ID            string          // 一意な識別子（例: "1", "demo-1"）
	Code          string          // 銘柄コード（例: "510300"）
	Name          string          // 表示名
	Manager       *string         // ファンドマネージャー（任意）
	Type          string          // 種別（例: "宽基指数ETF"）
	Nav           decimal.Decimal // 現在の基準価額（常に > 0）
	DayChange     decimal.Decimal // 前日比（%）
	YtdReturn     decimal.Decimal // 年初来リターン（%）
	RiskLevel     int             // リスクレベル 1（低）〜 5（高）
	InceptionDate time.Time       // UTC 0時の日付
	Description   *string         // 説明（任意）
}

// FundFilter はファンド一覧の絞り込み条件です。ゼロ値は条件なしを表します。
type FundFilter struct {
	Keyword string // 名称またはコードの部分一致（大文字小文字を区別しない）
	Type    string // 種別の完全一致
}
