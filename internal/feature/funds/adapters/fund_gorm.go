// Package adapters はfundsフィーチャーのGORMリポジトリを提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"fundnav/internal/feature/funds/domain"
	"fundnav/internal/feature/funds/domain/entity"
	"fundnav/internal/feature/funds/usecase"
)

// fundGorm はGORMを使って usecase.FundRepository を実装します。
// MySQL / PostgreSQL / SQLite のいずれでも動作します。
type fundGorm struct {
	db *gorm.DB
}

var _ usecase.FundRepository = (*fundGorm)(nil)

// NewFundRepository は db を使うファンドリポジトリを生成します。
func NewFundRepository(db *gorm.DB) *fundGorm {
	return &fundGorm{db: db}
}

// List は filter に一致するファンドをID順で返します。
func (r *fundGorm) List(ctx context.Context, filter entity.FundFilter) ([]entity.Fund, error) {
	q := r.db.WithContext(ctx).Model(&FundModel{})
	if filter.Keyword != "" {
		// 照合順序に関係なく大文字小文字を区別しないよう両辺を LOWER にする
		pattern := "%" + escapeLike(strings.ToLower(filter.Keyword)) + "%"
		q = q.Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(code) LIKE ? ESCAPE '!'", pattern, pattern)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var rows []FundModel
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Fund, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}

// FindByID は該当するファンドがない場合 domain.ErrFundNotFound を返します。
func (r *fundGorm) FindByID(ctx context.Context, id string) (*entity.Fund, error) {
	var m FundModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFundNotFound
		}
		return nil, err
	}
	f := m.ToEntity()
	return &f, nil
}

// RecentHistory は fundID の履歴を日付の降順で最大 limit 件返します。
// limit が 0 の場合は全件を返します。
func (r *fundGorm) RecentHistory(ctx context.Context, fundID string, limit int) ([]entity.NavPoint, error) {
	q := r.db.WithContext(ctx).
		Where("fund_id = ?", fundID).
		Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []NavHistoryModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.NavPoint, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}

// ListTypes は重複を除いたファンド種別を昇順で返します。
func (r *fundGorm) ListTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := r.db.WithContext(ctx).
		Model(&FundModel{}).
		Distinct().
		Order("type ASC").
		Pluck("type", &types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// likeEscaper はキーワード中の LIKE メタ文字をエスケープします。
// MySQL ではバックスラッシュが文字列リテラル内でも解釈されるため、エスケープ文字には '!' を使います。
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
