package service

import (
	"github.com/xxx-ad-poster/internal/constants"
	"github.com/xxx-ad-poster/internal/models"
	"github.com/xxx-ad-poster/internal/repository"
)

// PerformanceService 投放数据服务
type PerformanceService struct {
	perfRepo repository.AdPerformanceRepository
	adRepo   repository.AdCreativeRepository
	webhook  *WebhookService
}

// NewPerformanceService 创建投放数据服务
func NewPerformanceService(
	perfRepo repository.AdPerformanceRepository,
	adRepo repository.AdCreativeRepository,
	webhook *WebhookService,
) *PerformanceService {
	return &PerformanceService{
		perfRepo: perfRepo,
		adRepo:   adRepo,
		webhook:  webhook,
	}
}

// PerformanceResponse 单条创意的计数与派生指标
type PerformanceResponse struct {
	AdID        uint           `json:"ad_id"`
	Impressions int64          `json:"impressions"`
	Clicks      int64          `json:"clicks"`
	Leads       int64          `json:"leads"`
	Sales       int64          `json:"sales"`
	Revenue     models.Money   `json:"revenue"`
	Metrics     DerivedMetrics `json:"metrics"`
}

// Get 获取创意投放数据，计数行缺失时按全零返回
func (s *PerformanceService) Get(adID uint) (*PerformanceResponse, error) {
	ad, err := s.adRepo.GetByID(adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}

	perf, err := s.perfRepo.GetByAdID(adID)
	if err != nil {
		return nil, err
	}
	if perf == nil {
		perf = &models.AdPerformance{AdID: adID, Revenue: models.MoneyZero()}
	}
	return buildPerformanceResponse(perf), nil
}

// UpdatePerformanceInput 投放数据整行更新入参
type UpdatePerformanceInput struct {
	Impressions int64        `json:"impressions"`
	Clicks      int64        `json:"clicks"`
	Leads       int64        `json:"leads"`
	Sales       int64        `json:"sales"`
	Revenue     models.Money `json:"revenue"`
}

// Update 以 ad_id 为键整行覆盖投放数据（后写覆盖先写）
func (s *PerformanceService) Update(adID uint, input UpdatePerformanceInput) (*PerformanceResponse, error) {
	if input.Impressions < 0 || input.Clicks < 0 || input.Leads < 0 || input.Sales < 0 ||
		input.Revenue.IsNegative() {
		return nil, ErrCounterNegative
	}

	ad, err := s.adRepo.GetByID(adID)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}

	perf := &models.AdPerformance{
		AdID:        adID,
		Impressions: input.Impressions,
		Clicks:      input.Clicks,
		Leads:       input.Leads,
		Sales:       input.Sales,
		Revenue:     input.Revenue,
	}
	if err := s.perfRepo.Upsert(perf); err != nil {
		return nil, err
	}

	s.webhook.Notify(constants.WebhookEventPerformanceUpdated, map[string]interface{}{
		"ad_id":       adID,
		"impressions": input.Impressions,
		"clicks":      input.Clicks,
		"leads":       input.Leads,
		"sales":       input.Sales,
		"revenue":     input.Revenue.String(),
	})

	return buildPerformanceResponse(perf), nil
}

func buildPerformanceResponse(perf *models.AdPerformance) *PerformanceResponse {
	return &PerformanceResponse{
		AdID:        perf.AdID,
		Impressions: perf.Impressions,
		Clicks:      perf.Clicks,
		Leads:       perf.Leads,
		Sales:       perf.Sales,
		Revenue:     perf.Revenue,
		Metrics:     ComputeDerivedMetrics(perf.Impressions, perf.Clicks, perf.Sales, perf.Revenue),
	}
}

// SummaryBySource 按流量来源聚合全部创意
func (s *PerformanceService) SummaryBySource() ([]SourceSummary, error) {
	rows, _, err := s.adRepo.ListWithMetrics(repository.AdListFilter{})
	if err != nil {
		return nil, err
	}
	return SummarizeBySource(rows), nil
}

// CompareInput 创意对比入参
type CompareInput struct {
	AdIDs  []uint `json:"ad_ids"`
	Metric string `json:"metric"`
}

// CompareItem 对比结果中的一项
type CompareItem struct {
	AdID          uint           `json:"ad_id"`
	Title         string         `json:"title"`
	ProgramName   string         `json:"program_name"`
	TrafficSource string         `json:"traffic_source"`
	Impressions   int64          `json:"impressions"`
	Clicks        int64          `json:"clicks"`
	Leads         int64          `json:"leads"`
	Sales         int64          `json:"sales"`
	Revenue       models.Money   `json:"revenue"`
	Metrics       DerivedMetrics `json:"metrics"`
}

// CompareResult 创意对比结果
type CompareResult struct {
	Metric string        `json:"metric"`
	Items  []CompareItem `json:"items"`
	Winner *CompareItem  `json:"winner"`
}

// Compare 在选中的创意之间按指标对比。
// 并列取最先出现者，保证同样输入永远给出同一个优胜者。
func (s *PerformanceService) Compare(input CompareInput) (*CompareResult, error) {
	if !isCompareMetric(input.Metric) {
		return nil, ErrCompareMetricBad
	}

	seen := make(map[uint]bool, len(input.AdIDs))
	ids := make([]uint, 0, len(input.AdIDs))
	for _, id := range input.AdIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) < 2 {
		return nil, ErrCompareTooFew
	}

	rows, _, err := s.adRepo.ListWithMetrics(repository.AdListFilter{})
	if err != nil {
		return nil, err
	}
	rowByID := make(map[uint]repository.AdMetricsRow, len(rows))
	for _, row := range rows {
		rowByID[row.ID] = row
	}

	result := &CompareResult{Metric: input.Metric, Items: make([]CompareItem, 0, len(ids))}
	winnerIdx := -1
	for _, id := range ids {
		row, ok := rowByID[id]
		if !ok {
			return nil, ErrAdNotFound
		}
		item := CompareItem{
			AdID:          row.ID,
			Title:         row.Title,
			ProgramName:   row.ProgramName,
			TrafficSource: row.TrafficSource,
			Impressions:   row.Impressions,
			Clicks:        row.Clicks,
			Leads:         row.Leads,
			Sales:         row.Sales,
			Revenue:       row.Revenue,
			Metrics:       ComputeDerivedMetrics(row.Impressions, row.Clicks, row.Sales, row.Revenue),
		}
		result.Items = append(result.Items, item)

		idx := len(result.Items) - 1
		if winnerIdx < 0 {
			winnerIdx = idx
			continue
		}
		current := metricValue(input.Metric, result.Items[winnerIdx].Metrics)
		candidate := metricValue(input.Metric, item.Metrics)
		if candidate.GreaterThan(current) {
			winnerIdx = idx
		}
	}
	result.Winner = &result.Items[winnerIdx]
	return result, nil
}

func isCompareMetric(metric string) bool {
	switch metric {
	case constants.CompareMetricCTR, constants.CompareMetricCR, constants.CompareMetricEPC:
		return true
	}
	return false
}
