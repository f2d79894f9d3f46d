// Package handler はfundsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"fundnav/internal/feature/funds/domain"
	"fundnav/internal/feature/funds/domain/entity"
	"fundnav/internal/feature/funds/transport/http/dto"
)

// FundUsecase はハンドラーが利用する参照系ユースケースのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type FundUsecase interface {
	ListFunds(ctx context.Context, keyword, fundType string) ([]entity.Fund, error)
	GetFund(ctx context.Context, id string) (*entity.Fund, error)
	GetHistory(ctx context.Context, fundID string, days int) ([]entity.NavPoint, error)
	ListFundTypes(ctx context.Context) ([]string, error)
}

// FundHandler は /api/funds 系のHTTPリクエストを処理します。
type FundHandler struct {
	uc FundUsecase
}

// NewFundHandler は指定されたusecaseでFundHandlerの新しいインスタンスを生成します。
func NewFundHandler(uc FundUsecase) *FundHandler {
	return &FundHandler{uc: uc}
}

// List は任意の keyword と type で絞り込んだファンド一覧をJSONで返します。
//
// GET /api/funds?keyword=300&type=宽基指数ETF
func (h *FundHandler) List(c *gin.Context) {
	var params dto.ListFundsParams
	query := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "keyword", query, &params.Keyword); err != nil {
		badRequest(c, "keyword", err)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "type", query, &params.Type); err != nil {
		badRequest(c, "type", err)
		return
	}

	funds, err := h.uc.ListFunds(c.Request.Context(), deref(params.Keyword), deref(params.Type))
	if err != nil {
		internalError(c, "failed to list funds", err)
		return
	}

	out := make([]dto.FundResponse, 0, len(funds))
	for _, f := range funds {
		out = append(out, dto.NewFundResponse(f))
	}
	c.JSON(http.StatusOK, out)
}

// Get は1件のファンドを返し、存在しなければ404を返します。
//
// GET /api/funds/:fundId
func (h *FundHandler) Get(c *gin.Context) {
	fundID, ok := bindFundID(c)
	if !ok {
		return
	}

	fund, err := h.uc.GetFund(c.Request.Context(), fundID)
	if err != nil {
		if errors.Is(err, domain.ErrFundNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: domain.ErrFundNotFound.Error()})
			return
		}
		internalError(c, "failed to get fund", err, "fund_id", fundID)
		return
	}
	c.JSON(http.StatusOK, dto.NewFundResponse(*fund))
}

// History はファンドの直近の基準価額履歴を古い順に返します。
// 存在しないファンドの場合は空配列を返します。
//
// GET /api/funds/:fundId/history?days=365
func (h *FundHandler) History(c *gin.Context) {
	fundID, ok := bindFundID(c)
	if !ok {
		return
	}
	var params dto.HistoryParams
	if err := runtime.BindQueryParameter("form", true, false, "days", c.Request.URL.Query(), &params.Days); err != nil {
		badRequest(c, "days", err)
		return
	}
	days := 0 // 未指定の場合はusecase側でデフォルト値を使用
	if params.Days != nil {
		days = *params.Days
	}

	points, err := h.uc.GetHistory(c.Request.Context(), fundID, days)
	if err != nil {
		internalError(c, "failed to get fund history", err, "fund_id", fundID)
		return
	}

	out := make([]dto.HistoryPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.NewHistoryPointResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

// Types はファンド種別の一覧を返します。
//
// GET /api/fund-types
func (h *FundHandler) Types(c *gin.Context) {
	types, err := h.uc.ListFundTypes(c.Request.Context())
	if err != nil {
		internalError(c, "failed to list fund types", err)
		return
	}
	if types == nil {
		types = []string{}
	}
	c.JSON(http.StatusOK, types)
}

func bindFundID(c *gin.Context) (string, bool) {
	var fundID string
	err := runtime.BindStyledParameterWithOptions("simple", "fundId", c.Param("fundId"), &fundID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		badRequest(c, "fundId", err)
		return "", false
	}
	return fundID, true
}

func badRequest(c *gin.Context, param string, err error) {
	slog.Warn("invalid request parameter", "param", param, "error", err, "path", c.Request.URL.Path)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid parameter " + param})
}

// internalError は原因をログに出力し、クライアントには汎用的な500を返します。
func internalError(c *gin.Context, msg string, err error, attrs ...any) {
	slog.Error(msg, append([]any{"error", err}, attrs...)...)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
