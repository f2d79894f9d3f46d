// Package config はプロセス起動時に環境変数と .env から設定を読み込みます。
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"fundnav/internal/feature/seed/generator"
	"fundnav/internal/platform/db"
)

// DefaultAllowedOrigins はローカル開発用フロントエンドのオリジンです。
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://localhost:3002",
	"http://localhost:3003",
	"http://localhost:3004",
	"http://localhost:3005",
	"http://127.0.0.1:3000",
}

// Config はアプリケーション全体の設定です。
type Config struct {
	Server   ServerConfig
	DB       db.Config
	Seed     SeedConfig
	LogLevel slog.Level
}

// ServerConfig は API サーバーの設定です。
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// SeedConfig はシードジョブの設定です。
type SeedConfig struct {
	HorizonDays int
	RandomSeed  uint64 // 0 のときは起動時刻から決める
	PatchRules  []generator.PatchRule
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_DRIVER", db.DriverMySQL)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "wms")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("INSTANCE_CONNECTION_NAME", "")
	v.SetDefault("DB_PATH", "fundnav.db")
	v.SetDefault("DB_CONNECT_TIMEOUT", "60s")
	v.SetDefault("RUN_MIGRATIONS", false)
	v.SetDefault("SERVER_ADDR", ":8001")
	v.SetDefault("CORS_ALLOWED_ORIGINS", strings.Join(DefaultAllowedOrigins, ","))
	v.SetDefault("SEED_HORIZON_DAYS", 500)
	v.SetDefault("SEED_RANDOM_SEED", 0)
	v.SetDefault("PATCH_RULES", "demo-1=1")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load は envFile（通常は ".env"）を読み込んだ後、環境変数から設定を組み立てます。
// envFile が存在しない場合はシステムの環境変数のみを使います。
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			slog.Info(".env not found; using system environment variables", "path", envFile)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	driver := strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER")))
	switch driver {
	case db.DriverMySQL, db.DriverPostgres, db.DriverSQLite:
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q", driver)
	}

	timeout, err := cast.ToDurationE(v.Get("DB_CONNECT_TIMEOUT"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT %q", v.GetString("DB_CONNECT_TIMEOUT"))
	}

	horizon, err := cast.ToIntE(v.Get("SEED_HORIZON_DAYS"))
	if err != nil || horizon <= 0 {
		return nil, fmt.Errorf("invalid SEED_HORIZON_DAYS %q", v.GetString("SEED_HORIZON_DAYS"))
	}

	seed, err := cast.ToUint64E(v.Get("SEED_RANDOM_SEED"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_RANDOM_SEED %q: %w", v.GetString("SEED_RANDOM_SEED"), err)
	}

	rules, err := ParsePatchRules(v.GetString("PATCH_RULES"))
	if err != nil {
		return nil, err
	}

	origins := splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS is empty")
	}
	for _, o := range origins {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return nil, fmt.Errorf("invalid CORS origin %q", o)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v.GetString("LOG_LEVEL"), err)
	}

	return &Config{
		Server: ServerConfig{
			Addr:           v.GetString("SERVER_ADDR"),
			AllowedOrigins: origins,
		},
		DB: db.Config{
			Driver:         driver,
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			Name:           v.GetString("DB_NAME"),
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			InstanceName:   v.GetString("INSTANCE_CONNECTION_NAME"),
			Path:           v.GetString("DB_PATH"),
			ConnectTimeout: timeout,
			RunMigrations:  v.GetBool("RUN_MIGRATIONS"),
		},
		Seed: SeedConfig{
			HorizonDays: horizon,
			RandomSeed:  seed,
			PatchRules:  rules,
		},
		LogLevel: level,
	}, nil
}

// ParsePatchRules は "target=proxy[@YYYY-MM-DD/YYYY-MM-DD]" をカンマ区切りで並べた文字列を解釈します。
// 期間の片側は省略できます（例: "demo-1=1@/2024-11-26"）。"none" はルールなしを表します。
func ParsePatchRules(s string) ([]generator.PatchRule, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}

	var rules []generator.PatchRule
	for _, item := range splitList(s) {
		mapping, window, hasWindow := strings.Cut(item, "@")
		target, proxy, ok := strings.Cut(mapping, "=")
		target, proxy = strings.TrimSpace(target), strings.TrimSpace(proxy)
		if !ok || target == "" || proxy == "" {
			return nil, fmt.Errorf("invalid PATCH_RULES entry %q: want target=proxy", item)
		}
		rule := generator.PatchRule{TargetFundID: target, ProxyFundID: proxy}

		if hasWindow {
			start, end, ok := strings.Cut(window, "/")
			if !ok {
				return nil, fmt.Errorf("invalid PATCH_RULES window %q: want START/END", window)
			}
			var err error
			if rule.Start, err = parseDate(start); err != nil {
				return nil, fmt.Errorf("invalid PATCH_RULES start in %q: %w", item, err)
			}
			if rule.End, err = parseDate(end); err != nil {
				return nil, fmt.Errorf("invalid PATCH_RULES end in %q: %w", item, err)
			}
			if !rule.Start.IsZero() && !rule.End.IsZero() && rule.End.Before(rule.Start) {
				return nil, fmt.Errorf("invalid PATCH_RULES window in %q: end before start", item)
			}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
