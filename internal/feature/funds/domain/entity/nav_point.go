package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// NavPoint はファンドの日次基準価額の1点です。
// (FundID, Date) は一意です。
type NavPoint struct {
	FundID        string
	Date          time.Time       // UTC 0時の日付
	Nav           decimal.Decimal // 小数4桁
	ChangePercent decimal.Decimal // 前日比の騰落率（%、小数2桁）
	IsPatched     bool            // 設定日以前の補完データの場合 true
	PatchFundID   string          // 補完元の代替ファンドID（補完でなければ空）
}

// CivilDate は t を UTC 0時の日付に切り詰めます。
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
