package router

import (
	"github.com/gin-gonic/gin"

	fundhandler "fundnav/internal/feature/funds/transport/handler"
	platformhandler "fundnav/internal/platform/http/handler"
	"fundnav/internal/platform/http/middleware"
)

// NewRouter は API のルーティングとミドルウェアを設定した gin.Engine を返します。
func NewRouter(funds *fundhandler.FundHandler, health *platformhandler.HealthHandler,
	allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(allowedOrigins))

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)

	// 参照系API（認証なし）
	api := r.Group("/api")
	{
		api.GET("/funds", funds.List)
		api.GET("/funds/:fundId", funds.Get)
		api.GET("/funds/:fundId/history", funds.History)
		api.GET("/fund-types", funds.Types)
	}

	return r
}
