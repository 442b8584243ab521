package repository

import (
	"errors"
	"strings"

	"github.com/xxx-ad-poster/internal/models"

	"gorm.io/gorm"
)

// AdCreativeRepository 广告创意数据访问接口
type AdCreativeRepository interface {
	// Create 创建创意，并在同一事务内初始化全零投放计数行
	Create(ad *models.AdCreative) error
	List(filter AdListFilter) ([]models.AdCreative, int64, error)
	// ListWithMetrics 联查项目名与投放计数，缺失计数按零返回
	ListWithMetrics(filter AdListFilter) ([]AdMetricsRow, int64, error)
	GetByID(id uint) (*models.AdCreative, error)
	Count() (int64, error)
}

// GormAdCreativeRepository GORM 实现
type GormAdCreativeRepository struct {
	db *gorm.DB
}

// NewAdCreativeRepository 创建广告创意仓库
func NewAdCreativeRepository(db *gorm.DB) *GormAdCreativeRepository {
	return &GormAdCreativeRepository{db: db}
}

// Create 创建创意与全零计数行
func (r *GormAdCreativeRepository) Create(ad *models.AdCreative) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ad).Error; err != nil {
			return err
		}
		zero := models.AdPerformance{
			AdID:    ad.ID,
			Revenue: models.MoneyZero(),
		}
		return tx.Create(&zero).Error
	})
}

func applyAdFilter(query *gorm.DB, filter AdListFilter) *gorm.DB {
	if filter.ProgramID > 0 {
		query = query.Where("ad_creatives.program_id = ?", filter.ProgramID)
	}
	if filter.TrafficSource != "" {
		query = query.Where("ad_creatives.traffic_source = ?", filter.TrafficSource)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("ad_creatives.title LIKE ? OR ad_creatives.headline LIKE ?", like, like)
	}
	return query
}

// List 创意列表（按创建时间倒序）
func (r *GormAdCreativeRepository) List(filter AdListFilter) ([]models.AdCreative, int64, error) {
	ads := make([]models.AdCreative, 0)
	query := applyAdFilter(r.db.Model(&models.AdCreative{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("ad_creatives.created_at DESC, ad_creatives.id DESC").Find(&ads).Error; err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

// ListWithMetrics 创意联查列表
func (r *GormAdCreativeRepository) ListWithMetrics(filter AdListFilter) ([]AdMetricsRow, int64, error) {
	rows := make([]AdMetricsRow, 0)
	query := applyAdFilter(r.db.Model(&models.AdCreative{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.
		Select(strings.Join([]string{
			"ad_creatives.id",
			"ad_creatives.program_id",
			"COALESCE(affiliate_programs.name, '') AS program_name",
			"ad_creatives.title",
			"ad_creatives.angle",
			"ad_creatives.headline",
			"ad_creatives.body",
			"ad_creatives.call_to_action",
			"ad_creatives.placement_type",
			"ad_creatives.traffic_source",
			"ad_creatives.campaign_notes",
			"ad_creatives.created_at",
			"COALESCE(ad_performance.impressions, 0) AS impressions",
			"COALESCE(ad_performance.clicks, 0) AS clicks",
			"COALESCE(ad_performance.leads, 0) AS leads",
			"COALESCE(ad_performance.sales, 0) AS sales",
			"COALESCE(ad_performance.revenue, 0) AS revenue",
		}, ", ")).
		Joins("LEFT JOIN affiliate_programs ON affiliate_programs.id = ad_creatives.program_id").
		Joins("LEFT JOIN ad_performance ON ad_performance.ad_id = ad_creatives.id")

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("ad_creatives.created_at DESC, ad_creatives.id DESC").Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetByID 根据 ID 获取创意
func (r *GormAdCreativeRepository) GetByID(id uint) (*models.AdCreative, error) {
	var ad models.AdCreative
	if err := r.db.First(&ad, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

// Count 统计创意数量
func (r *GormAdCreativeRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.AdCreative{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
