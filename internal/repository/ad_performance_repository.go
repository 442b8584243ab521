package repository

import (
	"errors"

	"github.com/xxx-ad-poster/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdPerformanceRepository 投放数据访问接口
type AdPerformanceRepository interface {
	// GetByAdID 不存在时返回 (nil, nil)，调用方按全零处理
	GetByAdID(adID uint) (*models.AdPerformance, error)
	// Upsert 以 ad_id 为键整行覆盖
	Upsert(perf *models.AdPerformance) error
	SumTotals() (PerformanceTotals, error)
}

// GormAdPerformanceRepository GORM 实现
type GormAdPerformanceRepository struct {
	db *gorm.DB
}

// NewAdPerformanceRepository 创建投放数据仓库
func NewAdPerformanceRepository(db *gorm.DB) *GormAdPerformanceRepository {
	return &GormAdPerformanceRepository{db: db}
}

// GetByAdID 根据创意 ID 获取投放数据
func (r *GormAdPerformanceRepository) GetByAdID(adID uint) (*models.AdPerformance, error) {
	var perf models.AdPerformance
	if err := r.db.Where("ad_id = ?", adID).First(&perf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &perf, nil
}

// Upsert 写入投放数据（存在则整行覆盖，后写覆盖先写）
func (r *GormAdPerformanceRepository) Upsert(perf *models.AdPerformance) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ad_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"impressions", "clicks", "leads", "sales", "revenue", "updated_at",
		}),
	}).Create(perf).Error
}

// SumTotals 汇总全部投放计数
func (r *GormAdPerformanceRepository) SumTotals() (PerformanceTotals, error) {
	var totals PerformanceTotals
	err := r.db.Model(&models.AdPerformance{}).
		Select("COALESCE(SUM(impressions), 0) AS impressions, COALESCE(SUM(clicks), 0) AS clicks, COALESCE(SUM(leads), 0) AS leads, COALESCE(SUM(sales), 0) AS sales, COALESCE(SUM(revenue), 0) AS revenue").
		Scan(&totals).Error
	if err != nil {
		return PerformanceTotals{}, err
	}
	return totals, nil
}
