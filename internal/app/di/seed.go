package di

import (
	"time"

	"gorm.io/gorm"

	"fundnav/internal/feature/seed/adapters"
	"fundnav/internal/feature/seed/generator"
	"fundnav/internal/feature/seed/usecase"
	"fundnav/internal/platform/config"
)

// NewSeedUsecase は cfg から生成した Generator と GORM ストアで SeedUsecase を組み立てます。
func NewSeedUsecase(db *gorm.DB, cfg config.SeedConfig, now func() time.Time) *usecase.SeedUsecase {
	gen := generator.NewSeeded(cfg.RandomSeed, cfg.PatchRules)
	store := adapters.NewSeedStore(db)
	return usecase.NewSeedUsecase(store, gen, cfg.HorizonDays, now)
}
