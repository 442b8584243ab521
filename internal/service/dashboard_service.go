package service

import (
	"context"
	"time"

	"github.com/xxx-ad-poster/internal/cache"
	"github.com/xxx-ad-poster/internal/repository"
)

const dashboardCacheTTL = 45 * time.Second

// DashboardService 仪表盘服务
// 说明：聚合首页核心投放数据。
type DashboardService struct {
	programRepo repository.ProgramRepository
	adRepo      repository.AdCreativeRepository
	perfRepo    repository.AdPerformanceRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(
	programRepo repository.ProgramRepository,
	adRepo repository.AdCreativeRepository,
	perfRepo repository.AdPerformanceRepository,
) *DashboardService {
	return &DashboardService{
		programRepo: programRepo,
		adRepo:      adRepo,
		perfRepo:    perfRepo,
	}
}

// DashboardSnapshot 仪表盘快照
type DashboardSnapshot struct {
	Programs int64                        `json:"programs"`
	Ads      int64                        `json:"ads"`
	Totals   repository.PerformanceTotals `json:"totals"`
	Metrics  DerivedMetrics               `json:"metrics"`
}

// GetSnapshot 获取仪表盘快照（短期缓存，force_refresh 可跳过）
func (s *DashboardService) GetSnapshot(ctx context.Context, forceRefresh bool) (*DashboardSnapshot, error) {
	const cacheKey = "dashboard:snapshot"
	if !forceRefresh {
		var cached DashboardSnapshot
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	programs, err := s.programRepo.Count()
	if err != nil {
		return nil, err
	}
	ads, err := s.adRepo.Count()
	if err != nil {
		return nil, err
	}
	totals, err := s.perfRepo.SumTotals()
	if err != nil {
		return nil, err
	}

	snapshot := &DashboardSnapshot{
		Programs: programs,
		Ads:      ads,
		Totals:   totals,
		Metrics:  ComputeDerivedMetrics(totals.Impressions, totals.Clicks, totals.Sales, totals.Revenue),
	}

	_ = cache.SetJSON(ctx, cacheKey, snapshot, dashboardCacheTTL)
	return snapshot, nil
}
