// Package catalog はシードジョブが投入する固定のファンド一覧を保持します。
package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"fundnav/internal/feature/funds/domain/entity"
)

// DemoFundID はデモ用ファンドのIDです。設定日からの期間が短いため、
// パッチルールで設定日以前を補完し、長期間のチャートも描画できるようにします。
const DemoFundID = "demo-1"

// Funds はカタログの新しいコピーを返します。
func Funds() []entity.Fund {
	return []entity.Fund{
		{
			ID:            "1",
			Code:          "510300",
			Name:          "华泰柏瑞沪深300ETF",
			Manager:       ptr("柳军"),
			Type:          "宽基指数ETF",
			Nav:           decimal.RequireFromString("4.023"),
			DayChange:     decimal.RequireFromString("0.85"),
			YtdReturn:     decimal.RequireFromString("4.5"),
			RiskLevel:     3,
			InceptionDate: day("2012-05-04"),
			Description:   ptr("A股市场规模最大的权益类ETF，紧密跟踪沪深300指数，覆盖A股核心资产。"),
		},
		{
			ID:            "2",
			Code:          "510310",
			Name:          "易方达沪深300ETF",
			Manager:       ptr("余海燕"),
			Type:          "宽基指数ETF",
			Nav:           decimal.RequireFromString("1.985"),
			DayChange:     decimal.RequireFromString("0.82"),
			YtdReturn:     decimal.RequireFromString("4.3"),
			RiskLevel:     3,
			InceptionDate: day("2013-03-06"),
			Description:   ptr("费率低廉，跟踪误差小，是机构投资者配置沪深300指数的重要工具。"),
		},
		{
			ID:            "3",
			Code:          "588000",
			Name:          "华夏上证科创板50ETF",
			Manager:       ptr("张弘弢"),
			Type:          "行业主题ETF",
			Nav:           decimal.RequireFromString("0.892"),
			DayChange:     decimal.RequireFromString("1.56"),
			YtdReturn:     decimal.RequireFromString("-5.2"),
			RiskLevel:     5,
			InceptionDate: day("2020-09-28"),
			Description:   ptr("紧密跟踪科创50指数，聚焦科创板核心科技企业，具有高弹性特征。"),
		},
		{
			ID:            "4",
			Code:          "510050",
			Name:          "华夏上证50ETF",
			Manager:       ptr("张弘弢"),
			Type:          "宽基指数ETF",
			Nav:           decimal.RequireFromString("2.856"),
			DayChange:     decimal.RequireFromString("0.45"),
			YtdReturn:     decimal.RequireFromString("6.8"),
			RiskLevel:     3,
			InceptionDate: day("2004-12-30"),
			Description:   ptr("国内首只ETF，跟踪上证50指数，代表上海证券市场最具代表性的超大盘蓝筹股。"),
		},
		{
			ID:            "5",
			Code:          "159919",
			Name:          "嘉实沪深300ETF",
			Manager:       ptr("何如"),
			Type:          "宽基指数ETF",
			Nav:           decimal.RequireFromString("4.102"),
			DayChange:     decimal.RequireFromString("0.84"),
			YtdReturn:     decimal.RequireFromString("4.4"),
			RiskLevel:     3,
			InceptionDate: day("2012-05-07"),
			Description:   ptr("深市规模领先的沪深300ETF，流动性良好，适合长期配置。"),
		},
		{
			ID:            "6",
			Code:          "510500",
			Name:          "南方中证500ETF",
			Manager:       ptr("罗文杰"),
			Type:          "宽基指数ETF",
			Nav:           decimal.RequireFromString("5.670"),
			DayChange:     decimal.RequireFromString("1.10"),
			YtdReturn:     decimal.RequireFromString("2.1"),
			RiskLevel:     4,
			InceptionDate: day("2013-02-06"),
			Description:   ptr("跟踪中证500指数，代表A股市场中盘成长股风格，行业分布均衡。"),
		},
		{
			ID:            "7",
			Code:          "159915",
			Name:          "易方达创业板ETF",
			Manager:       ptr("成曦"),
			Type:          "行业主题ETF",
			Nav:           decimal.RequireFromString("2.340"),
			DayChange:     decimal.RequireFromString("1.85"),
			YtdReturn:     decimal.RequireFromString("-2.5"),
			RiskLevel:     5,
			InceptionDate: day("2011-09-20"),
			Description:   ptr("跟踪创业板指，聚焦新兴产业和高新技术企业，成长性强但波动较大。"),
		},
		{
			ID:            "8",
			Code:          "510330",
			Name:          "华夏沪深300ETF",
			Manager:       ptr("赵宗庭"),
			Type:          "宽基指数ETF",
			Nav:           decimal.RequireFromString("3.950"),
			DayChange:     decimal.RequireFromString("0.83"),
			YtdReturn:     decimal.RequireFromString("4.2"),
			RiskLevel:     3,
			InceptionDate: day("2012-12-25"),
			Description:   ptr("华夏基金旗下的沪深300ETF，管理经验丰富，跟踪效果稳定。"),
		},
		{
			ID:            "9",
			Code:          "512880",
			Name:          "国泰中证全指证券公司ETF",
			Manager:       ptr("艾小军"),
			Type:          "行业主题ETF",
			Nav:           decimal.RequireFromString("1.050"),
			DayChange:     decimal.RequireFromString("2.10"),
			YtdReturn:     decimal.RequireFromString("8.5"),
			RiskLevel:     5,
			InceptionDate: day("2016-07-26"),
			Description:   ptr("跟踪证券公司指数，被誉为“牛市旗手”，是博取市场贝塔收益的利器。"),
		},
		{
			ID:            "10",
			Code:          "513180",
			Name:          "华夏恒生科技ETF(QDII)",
			Manager:       ptr("徐猛"),
			Type:          "跨境ETF",
			Nav:           decimal.RequireFromString("0.650"),
			DayChange:     decimal.RequireFromString("3.20"),
			YtdReturn:     decimal.RequireFromString("12.5"),
			RiskLevel:     5,
			InceptionDate: day("2024-05-18"),
			Description:   ptr("投资于港股恒生科技指数，覆盖互联网巨头及新兴科技企业。"),
		},
		{
			ID:            "demo-1",
			Code:          "DEMO001",
			Name:          "多源补齐演示ETF",
			Manager:       ptr("演示账号"),
			Type:          "策略ETF",
			Nav:           decimal.RequireFromString("1.000"),
			DayChange:     decimal.RequireFromString("0.05"),
			YtdReturn:     decimal.RequireFromString("0.5"),
			RiskLevel:     3,
			InceptionDate: day("2024-11-27"),
			Description:   ptr("这是一个用于演示多源数据补齐功能的虚拟基金。成立仅30天，查看近3月数据时会自动展示补齐效果。"),
		},
	}
}

func ptr(s string) *string { return &s }

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}
