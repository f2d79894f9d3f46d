// Package usecase はファンドカタログと合成履歴をストレージへ投入します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fundnav/internal/feature/funds/domain/entity"
)

// DefaultHorizonDays はファンドごとに生成する履歴の日数です。
const DefaultHorizonDays = 500

// ErrInvalidCatalog はカタログのレコードが投入できない場合に返されます。
var ErrInvalidCatalog = errors.New("invalid fund catalog")

var minusHundred = decimal.NewFromInt(-100)

// FundSeries はファンドと生成済み履歴（新しい順）の組です。
type FundSeries struct {
	Fund    entity.Fund
	History []entity.NavPoint
}

// SeedStore は保存済みのファンドと履歴を1回の原子的な処理で置き換えます。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SeedStore interface {
	ReplaceAll(ctx context.Context, series []FundSeries) error
}

// HistoryGenerator はファンドの基準価額系列を生成します。
type HistoryGenerator interface {
	Generate(f entity.Fund, horizonDays int, today time.Time) []entity.NavPoint
}

// Summary はシード処理で書き込んだ件数です。
type Summary struct {
	Funds   int
	Points  int
	Patched int
}

// SeedUsecase はカタログを検証し、全ファンドの履歴を生成して
// ストアに渡します。
type SeedUsecase struct {
	store   SeedStore
	gen     HistoryGenerator
	horizon int
	now     func() time.Time
}

// NewSeedUsecase は SeedUsecase を生成します。horizon が0以下なら
// DefaultHorizonDays を、now が nil なら time.Now を使います。
func NewSeedUsecase(store SeedStore, gen HistoryGenerator, horizon int, now func() time.Time) *SeedUsecase {
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}
	if now == nil {
		now = time.Now
	}
	return &SeedUsecase{store: store, gen: gen, horizon: horizon, now: now}
}

// Seed はストレージの内容を funds とその生成履歴で置き換えます。
// カタログが不正な場合やストアが失敗した場合は何も書き込みません。
func (u *SeedUsecase) Seed(ctx context.Context, funds []entity.Fund) (Summary, error) {
	if err := ValidateCatalog(funds); err != nil {
		return Summary{}, err
	}

	today := entity.CivilDate(u.now())
	series := make([]FundSeries, 0, len(funds))
	var sum Summary
	for _, f := range funds {
		f.InceptionDate = entity.CivilDate(f.InceptionDate)
		history := u.gen.Generate(f, u.horizon, today)
		for _, p := range history {
			if p.IsPatched {
				sum.Patched++
			}
		}
		sum.Funds++
		sum.Points += len(history)
		series = append(series, FundSeries{Fund: f, History: history})

		slog.Debug("generated fund history", "fund_id", f.ID, "points", len(history))
	}

	if err := u.store.ReplaceAll(ctx, series); err != nil {
		return Summary{}, fmt.Errorf("replace funds: %w", err)
	}
	return sum, nil
}

// ValidateCatalog はストレージに触れる前に全レコードを検証します。
func ValidateCatalog(funds []entity.Fund) error {
	if len(funds) == 0 {
		return fmt.Errorf("%w: catalog is empty", ErrInvalidCatalog)
	}
	seen := make(map[string]struct{}, len(funds))
	for i, f := range funds {
		var problems []string
		if strings.TrimSpace(f.ID) == "" {
			problems = append(problems, "empty id")
		}
		if strings.TrimSpace(f.Code) == "" {
			problems = append(problems, "empty code")
		}
		if strings.TrimSpace(f.Name) == "" {
			problems = append(problems, "empty name")
		}
		if strings.TrimSpace(f.Type) == "" {
			problems = append(problems, "empty type")
		}
		if !f.Nav.IsPositive() {
			problems = append(problems, "nav must be positive")
		}
		if !f.DayChange.GreaterThan(minusHundred) {
			problems = append(problems, "day change must be above -100")
		}
		if f.RiskLevel < 1 || f.RiskLevel > 5 {
			problems = append(problems, fmt.Sprintf("risk level %d out of range 1-5", f.RiskLevel))
		}
		if f.InceptionDate.IsZero() {
			problems = append(problems, "missing inception date")
		}
		if _, dup := seen[f.ID]; dup {
			problems = append(problems, "duplicate id")
		}
		seen[f.ID] = struct{}{}

		if len(problems) > 0 {
			return fmt.Errorf("%w: record %d (id %q): %s", ErrInvalidCatalog, i, f.ID, strings.Join(problems, ", "))
		}
	}
	return nil
}
