package service

import (
	"math"
	"sort"

	"github.com/xxx-ad-poster/internal/constants"
	"github.com/xxx-ad-poster/internal/models"
	"github.com/xxx-ad-poster/internal/repository"

	"github.com/shopspring/decimal"
)

// DerivedMetrics 派生指标。
// CTR = 点击/展示×100，CR = 成交/点击×100，EPC = 收入/点击；
// 分母为零时对应指标为零。线索数只记录，不参与任何比率。
type DerivedMetrics struct {
	CTR float64      `json:"ctr"`
	CR  float64      `json:"cr"`
	EPC models.Money `json:"epc"`
}

// ComputeDerivedMetrics 计算单组计数的派生指标
func ComputeDerivedMetrics(impressions, clicks, sales int64, revenue models.Money) DerivedMetrics {
	metrics := DerivedMetrics{EPC: models.MoneyZero()}
	if impressions > 0 {
		metrics.CTR = roundRate(float64(clicks) / float64(impressions) * 100)
	}
	if clicks > 0 {
		metrics.CR = roundRate(float64(sales) / float64(clicks) * 100)
		metrics.EPC = models.NewMoneyFromDecimal(revenue.Decimal.Div(decimal.NewFromInt(clicks)))
	}
	return metrics
}

func roundRate(value float64) float64 {
	return math.Round(value*100) / 100
}

// SourceSummary 按流量来源汇总的一行
type SourceSummary struct {
	TrafficSource string         `json:"traffic_source"`
	Impressions   int64          `json:"impressions"`
	Clicks        int64          `json:"clicks"`
	Leads         int64          `json:"leads"`
	Sales         int64          `json:"sales"`
	Revenue       models.Money   `json:"revenue"`
	Metrics       DerivedMetrics `json:"metrics"`
}

// SummarizeBySource 按流量来源聚合创意行，空来源归入 Unknown 桶，按来源名排序
func SummarizeBySource(rows []repository.AdMetricsRow) []SourceSummary {
	type bucket struct {
		impressions int64
		clicks      int64
		leads       int64
		sales       int64
		revenue     decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	for _, row := range rows {
		source := row.TrafficSource
		if source == "" {
			source = constants.TrafficSourceUnknown
		}
		b, ok := buckets[source]
		if !ok {
			b = &bucket{}
			buckets[source] = b
		}
		b.impressions += row.Impressions
		b.clicks += row.Clicks
		b.leads += row.Leads
		b.sales += row.Sales
		b.revenue = b.revenue.Add(row.Revenue.Decimal)
	}

	sources := make([]string, 0, len(buckets))
	for source := range buckets {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	summaries := make([]SourceSummary, 0, len(sources))
	for _, source := range sources {
		b := buckets[source]
		revenue := models.NewMoneyFromDecimal(b.revenue)
		summaries = append(summaries, SourceSummary{
			TrafficSource: source,
			Impressions:   b.impressions,
			Clicks:        b.clicks,
			Leads:         b.leads,
			Sales:         b.sales,
			Revenue:       revenue,
			Metrics:       ComputeDerivedMetrics(b.impressions, b.clicks, b.sales, revenue),
		})
	}
	return summaries
}

// metricValue 取对比指标的数值表示
func metricValue(metric string, m DerivedMetrics) decimal.Decimal {
	switch metric {
	case constants.CompareMetricCTR:
		return decimal.NewFromFloat(m.CTR)
	case constants.CompareMetricCR:
		return decimal.NewFromFloat(m.CR)
	default:
		return m.EPC.Decimal
	}
}
