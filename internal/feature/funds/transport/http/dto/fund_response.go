// Package dto はfundsエンドポイントのレスポンス形式を定義します。
package dto

import (
	"time"

	"fundnav/internal/feature/funds/domain/entity"
)

// FundResponse はファンドの外部表現です（camelCase）。
type FundResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Manager       *string `json:"manager"`
	Type          string  `json:"type"`
	Nav           float64 `json:"nav"`
	DayChange     float64 `json:"dayChange"`
	YtdReturn     float64 `json:"ytdReturn"`
	RiskLevel     int     `json:"riskLevel"`
	InceptionDate string  `json:"inceptionDate"` // YYYY-MM-DD
	Description   *string `json:"description"`
}

// HistoryPointResponse は基準価額チャートの1点です。
type HistoryPointResponse struct {
	Date        string  `json:"date"`       // YYYY-MM-DD
	NavActual   float64 `json:"nav_actual"` // 基準価額（小数4桁）
	Change      float64 `json:"change"`     // 騰落率（%、小数2桁）
	IsPatched   bool    `json:"is_patched"`
	PatchFundID *string `json:"patch_fund_id"`
}

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewFundResponse はドメインのファンドをレスポンスDTOに変換します。
func NewFundResponse(f entity.Fund) FundResponse {
	return FundResponse{
		ID:            f.ID,
		Code:          f.Code,
		Name:          f.Name,
		Manager:       f.Manager,
		Type:          f.Type,
		Nav:           f.Nav.InexactFloat64(),
		DayChange:     f.DayChange.InexactFloat64(),
		YtdReturn:     f.YtdReturn.InexactFloat64(),
		RiskLevel:     f.RiskLevel,
		InceptionDate: f.InceptionDate.Format(time.DateOnly),
		Description:   f.Description,
	}
}

// NewHistoryPointResponse はドメインの履歴点をレスポンスDTOに変換します。
func NewHistoryPointResponse(p entity.NavPoint) HistoryPointResponse {
	out := HistoryPointResponse{
		Date:      p.Date.Format(time.DateOnly),
		NavActual: p.Nav.InexactFloat64(),
		Change:    p.ChangePercent.InexactFloat64(),
		IsPatched: p.IsPatched,
	}
	if p.PatchFundID != "" {
		id := p.PatchFundID
		out.PatchFundID = &id
	}
	return out
}
