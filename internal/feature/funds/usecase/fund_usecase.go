// Package usecase はfundsフィーチャーの参照系ビジネスロジックを実装します。
package usecase

import (
	"context"
	"strings"

	"fundnav/internal/feature/funds/domain/entity"
)

const (
	// DefaultHistoryDays は件数が指定されない場合に返す履歴の件数です。
	DefaultHistoryDays = 365
	// MaxHistoryDays は1回で返す履歴の最大件数です。
	MaxHistoryDays = 5000
)

// FundRepository はファンドデータの読み取りレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type FundRepository interface {
	// List は条件に一致するファンドを返します。
	List(ctx context.Context, filter entity.FundFilter) ([]entity.Fund, error)
	// FindByID は存在しないIDの場合 domain.ErrFundNotFound を返します。
	FindByID(ctx context.Context, id string) (*entity.Fund, error)
	// RecentHistory はファンドの履歴を新しい順に最大 limit 件返します。
	RecentHistory(ctx context.Context, fundID string, limit int) ([]entity.NavPoint, error)
	// ListTypes は重複を除いたファンド種別を昇順で返します。
	ListTypes(ctx context.Context) ([]string, error)
}

// FundUsecase はAPIが公開する参照系の操作を提供します。
type FundUsecase struct {
	repo FundRepository
}

// NewFundUsecase は指定されたリポジトリでFundUsecaseの新しいインスタンスを生成します。
func NewFundUsecase(repo FundRepository) *FundUsecase {
	return &FundUsecase{repo: repo}
}

// ListFunds は名称またはコードに keyword を含み、種別が fundType に一致するファンドを返します。
// 空文字の引数はその条件を無効にします。
func (u *FundUsecase) ListFunds(ctx context.Context, keyword, fundType string) ([]entity.Fund, error) {
	return u.repo.List(ctx, entity.FundFilter{
		Keyword: strings.TrimSpace(keyword),
		Type:    strings.TrimSpace(fundType),
	})
}

// GetFund は1件のファンドを返します。
func (u *FundUsecase) GetFund(ctx context.Context, id string) (*entity.Fund, error) {
	return u.repo.FindByID(ctx, id)
}

// GetHistory はファンドの直近 days 件の履歴を古い順に返します。
func (u *FundUsecase) GetHistory(ctx context.Context, fundID string, days int) ([]entity.NavPoint, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	if days > MaxHistoryDays {
		days = MaxHistoryDays
	}

	points, err := u.repo.RecentHistory(ctx, fundID, days)
	if err != nil {
		return nil, err
	}

	// ストレージは新しい順なので古い順に並べ替える
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

// ListFundTypes は登録済みのファンド種別を返します。
func (u *FundUsecase) ListFundTypes(ctx context.Context) ([]string, error) {
	return u.repo.ListTypes(ctx)
}
