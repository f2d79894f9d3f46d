package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fundnav/internal/app/di"
	"fundnav/internal/feature/seed/catalog"
	"fundnav/internal/platform/config"
	"fundnav/internal/platform/db"
)

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

// run はカタログと合成履歴をデータベースへ投入します。
func run() error {
	// 設定読み込み（.env → 環境変数）
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	gdb, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	uc := di.NewSeedUsecase(gdb, cfg.Seed, time.Now)
	sum, err := uc.Seed(ctx, catalog.Funds())
	if err != nil {
		return err
	}
	slog.Info("seed ok",
		"funds", sum.Funds,
		"points", sum.Points,
		"patched", sum.Patched,
		"horizon_days", cfg.Seed.HorizonDays,
	)
	return nil
}
