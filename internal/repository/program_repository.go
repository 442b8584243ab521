package repository

import (
	"errors"
	"strings"

	"github.com/xxx-ad-poster/internal/models"

	"gorm.io/gorm"
)

// ProgramRepository 联盟项目数据访问接口
type ProgramRepository interface {
	Create(program *models.AffiliateProgram) error
	List(filter ProgramListFilter) ([]models.AffiliateProgram, int64, error)
	GetByID(id uint) (*models.AffiliateProgram, error)
	Count() (int64, error)
}

// GormProgramRepository GORM 实现
type GormProgramRepository struct {
	db *gorm.DB
}

// NewProgramRepository 创建联盟项目仓库
func NewProgramRepository(db *gorm.DB) *GormProgramRepository {
	return &GormProgramRepository{db: db}
}

// Create 创建联盟项目
func (r *GormProgramRepository) Create(program *models.AffiliateProgram) error {
	return r.db.Create(program).Error
}

// List 联盟项目列表（按创建时间倒序）
func (r *GormProgramRepository) List(filter ProgramListFilter) ([]models.AffiliateProgram, int64, error) {
	programs := make([]models.AffiliateProgram, 0)
	query := r.db.Model(&models.AffiliateProgram{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR niche LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&programs).Error; err != nil {
		return nil, 0, err
	}
	return programs, total, nil
}

// GetByID 根据 ID 获取联盟项目
func (r *GormProgramRepository) GetByID(id uint) (*models.AffiliateProgram, error) {
	var program models.AffiliateProgram
	if err := r.db.First(&program, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &program, nil
}

// Count 统计联盟项目数量
func (r *GormProgramRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.AffiliateProgram{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
