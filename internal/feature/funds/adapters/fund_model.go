package adapters

import (
	"time"

	"github.com/shopspring/decimal"

	"fundnav/internal/feature/funds/domain/entity"
)

// FundModel は funds テーブルのGORMモデルです。
type FundModel struct {
	ID            string          `gorm:"primaryKey;size:64"`
	Code          string          `gorm:"size:32;not null;index"`
	Name          string          `gorm:"size:255;not null"`
	Manager       *string         `gorm:"size:128"`
	Type          string          `gorm:"size:64;not null;index"`
	Nav           decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	DayChange     decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	YtdReturn     decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	RiskLevel     int             `gorm:"not null"`
	InceptionDate time.Time       `gorm:"type:date;not null"`
	Description   *string         `gorm:"type:text"`

	History []NavHistoryModel `gorm:"foreignKey:FundID;constraint:OnDelete:CASCADE"`
}

// TableName はGORMが使用するテーブル名を返します。
func (FundModel) TableName() string {
	return "funds"
}

// NavHistoryModel は fund_nav_history テーブルのGORMモデルです。
type NavHistoryModel struct {
	FundID        string          `gorm:"primaryKey;size:64"`
	Date          time.Time       `gorm:"primaryKey;type:date"`
	Nav           decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	ChangePercent decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	IsPatched     bool            `gorm:"not null"`
	PatchFundID   *string         `gorm:"size:64"`
}

// TableName はGORMが使用するテーブル名を返します。
func (NavHistoryModel) TableName() string {
	return "fund_nav_history"
}

// ToEntity はGORMモデルをドメインエンティティに変換します。
func (m *FundModel) ToEntity() entity.Fund {
	return entity.Fund{
		ID:            m.ID,
		Code:          m.Code,
		Name:          m.Name,
		Manager:       m.Manager,
		Type:          m.Type,
		Nav:           m.Nav,
		DayChange:     m.DayChange,
		YtdReturn:     m.YtdReturn,
		RiskLevel:     m.RiskLevel,
		InceptionDate: entity.CivilDate(m.InceptionDate),
		Description:   m.Description,
	}
}

// FundModelFromEntity はドメインエンティティをGORMモデルに変換します。
func FundModelFromEntity(f entity.Fund) FundModel {
	return FundModel{
		ID:            f.ID,
		Code:          f.Code,
		Name:          f.Name,
		Manager:       f.Manager,
		Type:          f.Type,
		Nav:           f.Nav,
		DayChange:     f.DayChange,
		YtdReturn:     f.YtdReturn,
		RiskLevel:     f.RiskLevel,
		InceptionDate: entity.CivilDate(f.InceptionDate),
		Description:   f.Description,
	}
}

// ToEntity はGORMモデルをドメインエンティティに変換します。
func (m *NavHistoryModel) ToEntity() entity.NavPoint {
	p := entity.NavPoint{
		FundID:        m.FundID,
		Date:          entity.CivilDate(m.Date),
		Nav:           m.Nav,
		ChangePercent: m.ChangePercent,
		IsPatched:     m.IsPatched,
	}
	if m.PatchFundID != nil {
		p.PatchFundID = *m.PatchFundID
	}
	return p
}

// NavHistoryModelFromEntity はドメインエンティティをGORMモデルに変換します。
// 空の PatchFundID は NULL として保存します。
func NavHistoryModelFromEntity(p entity.NavPoint) NavHistoryModel {
	m := NavHistoryModel{
		FundID:        p.FundID,
		Date:          entity.CivilDate(p.Date),
		Nav:           p.Nav,
		ChangePercent: p.ChangePercent,
		IsPatched:     p.IsPatched,
	}
	if p.PatchFundID != "" {
		id := p.PatchFundID
		m.PatchFundID = &id
	}
	return m
}
