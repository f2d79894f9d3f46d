// Package adapters はseedフィーチャーのGORMストアを提供します。
package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	fundadapters "fundnav/internal/feature/funds/adapters"
	"fundnav/internal/feature/seed/usecase"
)

const historyBatchSize = 500 // INSERT 1回あたりの行数
type seedGorm struct {
	db *gorm.DB
}

var _ usecase.SeedStore = (*seedGorm)(nil)

// NewSeedStore は db を使うシードストアを生成します。
func NewSeedStore(db *gorm.DB) *seedGorm {
	return &seedGorm{db: db}
}

// ReplaceAll は1つのトランザクション内で両テーブルを空にして series を書き込みます。
// 履歴をファンドより先に削除するため、外部キー制約を外す必要はありません。
func (s *seedGorm) ReplaceAll(ctx context.Context, series []usecase.FundSeries) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&fundadapters.NavHistoryModel{}).Error; err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		if err := all.Delete(&fundadapters.FundModel{}).Error; err != nil {
			return fmt.Errorf("clear funds: %w", err)
		}

		for _, fs := range series {
			fund := fundadapters.FundModelFromEntity(fs.Fund)
			if err := tx.Create(&fund).Error; err != nil {
				return fmt.Errorf("insert fund %s: %w", fs.Fund.ID, err)
			}
			if len(fs.History) == 0 {
				continue
			}
			rows := make([]fundadapters.NavHistoryModel, 0, len(fs.History))
			for _, p := range fs.History {
				rows = append(rows, fundadapters.NavHistoryModelFromEntity(p))
			}
			if err := tx.CreateInBatches(&rows, historyBatchSize).Error; err != nil {
				return fmt.Errorf("insert history of %s: %w", fs.Fund.ID, err)
			}
		}
		return nil
	})
}
