// Package di はアプリケーションのコンポーネントを組み立てるDIファクトリを提供します。
package di

import (
	"gorm.io/gorm"

	fundadapters "fundnav/internal/feature/funds/adapters"
	fundhandler "fundnav/internal/feature/funds/transport/handler"
	fundusecase "fundnav/internal/feature/funds/usecase"
)

// NewFundHandler はリポジトリ、ユースケース、HTTPハンドラーを組み立てます。
func NewFundHandler(db *gorm.DB) *fundhandler.FundHandler {
	repo := fundadapters.NewFundRepository(db)
	uc := fundusecase.NewFundUsecase(repo)
	return fundhandler.NewFundHandler(uc)
}
