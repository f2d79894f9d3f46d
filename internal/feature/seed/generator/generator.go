// Package generator はファンドの日次基準価額の履歴をシミュレーションします。
//
// 基準日から過去に向かってランダムウォークします。各ステップで現在の基準価額を
// (1 + 騰落率/100) で割るため、記録した騰落率を古い順に適用し直すと
// 記録したすべての基準価額が再現されます。
package generator

import (
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"fundnav/internal/feature/funds/domain/entity"
)

var (
	// リスクレベル1あたりのボラティリティ（比率）
	volatilityPerRisk = decimal.RequireFromString("0.008")
	// 1日あたりの一定の上昇トレンド（比率）
	trend   = decimal.RequireFromString("0.0002")
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// PatchRule は対象ファンドに設定日以前のデータ点を持たせ、
// その出所を代替ファンドとして記録するルールです。Start と End は適用期間で、
// ゼロ値の側は無制限になります。
type PatchRule struct {
	TargetFundID string
	ProxyFundID  string
	Start        time.Time
	End          time.Time
}

// Covers は日付 d がルールの適用期間に含まれるかを返します。
func (r PatchRule) Covers(d time.Time) bool {
	d = entity.CivilDate(d)
	if !r.Start.IsZero() && d.Before(entity.CivilDate(r.Start)) {
		return false
	}
	if !r.End.IsZero() && d.After(entity.CivilDate(r.End)) {
		return false
	}
	return true
}

// DefaultPatchRules はデモファンドをファンド "1" 由来のデータで補完するルールを返します。
func DefaultPatchRules() []PatchRule {
	return []PatchRule{{TargetFundID: "demo-1", ProxyFundID: "1"}}
}

// Generator は合成の基準価額系列を生成します。並行利用には対応していません。
type Generator struct {
	rng   *rand.Rand
	rules []PatchRule
}

// New は src から乱数を引く Generator を生成します。
func New(src rand.Source, rules []PatchRule) *Generator {
	return &Generator{
		rng:   rand.New(src),
		rules: rules,
	}
}

// NewSeeded は PCG ソースを使う Generator を生成します。seed が 0 の場合は現在時刻から決めます。
func NewSeeded(seed uint64, rules []PatchRule) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), rules)
}

// Generate は today から過去に向かって最大 horizonDays 件のデータ点を新しい順に返します。
//
// f.InceptionDate より前でパッチルールが適用されない最初の日で生成を打ち切ります。
// 最新の点は f.DayChange を使い、それより古い点は f.RiskLevel に比例した
// 範囲の乱数で騰落率を決めます。
// 騰落率が -100% 以下の点からはそれ以前の基準価額を求められないため、その点で打ち切ります。
func (g *Generator) Generate(f entity.Fund, horizonDays int, today time.Time) []entity.NavPoint {
	if horizonDays <= 0 {
		return nil
	}
	today = entity.CivilDate(today)
	inception := entity.CivilDate(f.InceptionDate)

	risk := int64(f.RiskLevel)
	if risk < 0 {
		risk = 0
	}
	volatility := volatilityPerRisk.Mul(decimal.NewFromInt(risk))

	points := make([]entity.NavPoint, 0, horizonDays)
	current := f.Nav
	for i := 0; i < horizonDays; i++ {
		d := today.AddDate(0, 0, -i)

		p := entity.NavPoint{FundID: f.ID, Date: d}
		if d.Before(inception) {
			rule, ok := g.ruleFor(f.ID, d)
			if !ok {
				break
			}
			p.IsPatched = true
			p.PatchFundID = rule.ProxyFundID
		}

		var change decimal.Decimal
		if i == 0 {
			change = f.DayChange
		} else {
			u := decimal.NewFromFloat(g.rng.Float64())
			change = u.Mul(volatility).Mul(two).Sub(volatility).Add(trend).Mul(hundred)
		}

		p.Nav = current.Round(4)
		p.ChangePercent = change.Round(2)
		points = append(points, p)

		// 記録した（丸め後の）騰落率で1日戻す
		divisor := decimal.NewFromInt(1).Add(p.ChangePercent.Div(hundred))
		if !divisor.IsPositive() {
			break
		}
		current = current.Div(divisor)
	}
	return points
}

func (g *Generator) ruleFor(fundID string, d time.Time) (PatchRule, bool) {
	for _, r := range g.rules {
		if r.TargetFundID == fundID && r.Covers(d) {
			return r, true
		}
	}
	return PatchRule{}, false
}
