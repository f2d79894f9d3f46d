package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fundnav/internal/feature/funds/domain"
	"fundnav/internal/feature/funds/domain/entity"
	"fundnav/internal/feature/funds/transport/handler"
)

// mockFundUsecase はFundUsecaseインターフェースのモック実装です。
type mockFundUsecase struct {
	ListFundsFunc     func(ctx context.Context, keyword, fundType string) ([]entity.Fund, error)
	GetFundFunc       func(ctx context.Context, id string) (*entity.Fund, error)
	GetHistoryFunc    func(ctx context.Context, fundID string, days int) ([]entity.NavPoint, error)
	ListFundTypesFunc func(ctx context.Context) ([]string, error)
}

func (m *mockFundUsecase) ListFunds(ctx context.Context, keyword, fundType string) ([]entity.Fund, error) {
	return m.ListFundsFunc(ctx, keyword, fundType)
}

func (m *mockFundUsecase) GetFund(ctx context.Context, id string) (*entity.Fund, error) {
	return m.GetFundFunc(ctx, id)
}

func (m *mockFundUsecase) GetHistory(ctx context.Context, fundID string, days int) ([]entity.NavPoint, error) {
	return m.GetHistoryFunc(ctx, fundID, days)
}

func (m *mockFundUsecase) ListFundTypes(ctx context.Context) ([]string, error) {
	return m.ListFundTypesFunc(ctx)
}

func newRouter(uc handler.FundUsecase) *gin.Engine {
	h := handler.NewFundHandler(uc)
	r := gin.New()
	r.GET("/api/funds", h.List)
	r.GET("/api/funds/:fundId", h.Get)
	r.GET("/api/funds/:fundId/history", h.History)
	r.GET("/api/fund-types", h.Types)
	return r
}

func sampleFund() entity.Fund {
	manager := "柳军"
	return entity.Fund{
		ID:            "1",
		Code:          "510300",
		Name:          "华泰柏瑞沪深300ETF",
		Manager:       &manager,
		Type:          "宽基指数ETF",
		Nav:           decimal.RequireFromString("4.023"),
		DayChange:     decimal.RequireFromString("0.85"),
		YtdReturn:     decimal.RequireFromString("4.5"),
		RiskLevel:     3,
		InceptionDate: time.Date(2012, 5, 4, 0, 0, 0, 0, time.UTC),
	}
}

const sampleFundJSON = `{"id":"1","code":"510300","name":"华泰柏瑞沪深300ETF","manager":"柳军","type":"宽基指数ETF",` +
	`"nav":4.023,"dayChange":0.85,"ytdReturn":4.5,"riskLevel":3,"inceptionDate":"2012-05-04","description":null}`

func TestFundHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		mockList       func(ctx context.Context, keyword, fundType string) ([]entity.Fund, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: no filters",
			url:  "/api/funds",
			mockList: func(ctx context.Context, keyword, fundType string) ([]entity.Fund, error) {
				assert.Empty(t, keyword)
				assert.Empty(t, fundType)
				return []entity.Fund{sampleFund()}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "[" + sampleFundJSON + "]",
		},
		{
			name: "success: keyword and type are forwarded",
			url:  "/api/funds?keyword=300&type=" + url.QueryEscape("宽基指数ETF"),
			mockList: func(ctx context.Context, keyword, fundType string) ([]entity.Fund, error) {
				assert.Equal(t, "300", keyword)
				assert.Equal(t, "宽基指数ETF", fundType)
				return []entity.Fund{}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "success: nil result renders empty array",
			url:  "/api/funds",
			mockList: func(ctx context.Context, keyword, fundType string) ([]entity.Fund, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "error: usecase failure is a generic 500",
			url:  "/api/funds",
			mockList: func(ctx context.Context, keyword, fundType string) ([]entity.Fund, error) {
				return nil, errors.New("dial tcp 127.0.0.1:3306: connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockFundUsecase{ListFundsFunc: tt.mockList})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestFundHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		mockGet        func(ctx context.Context, id string) (*entity.Fund, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: fund found",
			url:  "/api/funds/1",
			mockGet: func(ctx context.Context, id string) (*entity.Fund, error) {
				assert.Equal(t, "1", id)
				f := sampleFund()
				return &f, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   sampleFundJSON,
		},
		{
			name: "error: not found",
			url:  "/api/funds/nonexistent-id",
			mockGet: func(ctx context.Context, id string) (*entity.Fund, error) {
				return nil, domain.ErrFundNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"fund not found"}`,
		},
		{
			name: "error: wrapped not found is still 404",
			url:  "/api/funds/x",
			mockGet: func(ctx context.Context, id string) (*entity.Fund, error) {
				return nil, errors.Join(errors.New("lookup"), domain.ErrFundNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"fund not found"}`,
		},
		{
			name: "error: storage failure",
			url:  "/api/funds/1",
			mockGet: func(ctx context.Context, id string) (*entity.Fund, error) {
				return nil, errors.New("query failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockFundUsecase{GetFundFunc: tt.mockGet})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestFundHandler_History(t *testing.T) {
	gin.SetMode(gin.TestMode)

	points := []entity.NavPoint{
		{
			FundID:        "demo-1",
			Date:          time.Date(2024, 11, 26, 0, 0, 0, 0, time.UTC),
			Nav:           decimal.RequireFromString("0.9987"),
			ChangePercent: decimal.RequireFromString("-0.31"),
			IsPatched:     true,
			PatchFundID:   "1",
		},
		{
			FundID:        "demo-1",
			Date:          time.Date(2024, 11, 27, 0, 0, 0, 0, time.UTC),
			Nav:           decimal.RequireFromString("1"),
			ChangePercent: decimal.RequireFromString("0.05"),
		},
	}

	tests := []struct {
		name           string
		url            string
		mockHistory    func(ctx context.Context, fundID string, days int) ([]entity.NavPoint, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: days forwarded and points rendered",
			url:  "/api/funds/demo-1/history?days=2",
			mockHistory: func(ctx context.Context, fundID string, days int) ([]entity.NavPoint, error) {
				assert.Equal(t, "demo-1", fundID)
				assert.Equal(t, 2, days)
				return points, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `[` +
				`{"date":"2024-11-26","nav_actual":0.9987,"change":-0.31,"is_patched":true,"patch_fund_id":"1"},` +
				`{"date":"2024-11-27","nav_actual":1,"change":0.05,"is_patched":false,"patch_fund_id":null}]`,
		},
		{
			name: "success: missing days passes zero to usecase",
			url:  "/api/funds/1/history",
			mockHistory: func(ctx context.Context, fundID string, days int) ([]entity.NavPoint, error) {
				assert.Equal(t, 0, days)
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "error: non-numeric days",
			url:  "/api/funds/1/history?days=abc",
			mockHistory: func(ctx context.Context, fundID string, days int) ([]entity.NavPoint, error) {
				t.Error("usecase should not be called")
				return nil, nil
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid parameter days"}`,
		},
		{
			name: "error: usecase failure",
			url:  "/api/funds/1/history?days=30",
			mockHistory: func(ctx context.Context, fundID string, days int) ([]entity.NavPoint, error) {
				return nil, errors.New("query failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockFundUsecase{GetHistoryFunc: tt.mockHistory})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestFundHandler_Types(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		mockTypes      func(ctx context.Context) ([]string, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: returns types",
			mockTypes: func(ctx context.Context) ([]string, error) {
				return []string{"宽基指数ETF", "跨境ETF"}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `["宽基指数ETF","跨境ETF"]`,
		},
		{
			name: "success: nil renders empty array",
			mockTypes: func(ctx context.Context) ([]string, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "error: usecase failure",
			mockTypes: func(ctx context.Context) ([]string, error) {
				return nil, errors.New("boom")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&mockFundUsecase{ListFundTypesFunc: tt.mockTypes})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/fund-types", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
