package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xxx-ad-poster/internal/models"

	"github.com/shopspring/decimal"
)

// MemoryStore 内存存储（database.driver 为 memory 时使用，进程退出即丢失）。
// 四个仓储接口共享同一把锁与同一份数据，保持与数据库实现相同的关联语义。
type MemoryStore struct {
	mu            sync.Mutex
	admins        map[uint]models.Admin
	programs      map[uint]models.AffiliateProgram
	ads           map[uint]models.AdCreative
	perfByAd      map[uint]models.AdPerformance
	nextAdminID   uint
	nextProgramID uint
	nextAdID      uint
	nextPerfID    uint
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		admins:   make(map[uint]models.Admin),
		programs: make(map[uint]models.AffiliateProgram),
		ads:      make(map[uint]models.AdCreative),
		perfByAd: make(map[uint]models.AdPerformance),
	}
}

// Admins 账号仓储视图
func (s *MemoryStore) Admins() AdminRepository { return &memoryAdminRepository{store: s} }

// Programs 联盟项目仓储视图
func (s *MemoryStore) Programs() ProgramRepository { return &memoryProgramRepository{store: s} }

// Ads 广告创意仓储视图
func (s *MemoryStore) Ads() AdCreativeRepository { return &memoryAdCreativeRepository{store: s} }

// Performance 投放数据仓储视图
func (s *MemoryStore) Performance() AdPerformanceRepository {
	return &memoryAdPerformanceRepository{store: s}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func paginateRange(total, page, pageSize int) (int, int) {
	if pageSize <= 0 {
		return 0, total
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= total {
		return 0, 0
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

type memoryAdminRepository struct {
	store *MemoryStore
}

func (r *memoryAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, admin := range r.store.admins {
		if admin.Username == username {
			found := admin
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryAdminRepository) GetByID(id uint) (*models.Admin, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	admin, ok := r.store.admins[id]
	if !ok {
		return nil, nil
	}
	found := admin
	return &found, nil
}

func (r *memoryAdminRepository) Count() (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.admins)), nil
}

func (r *memoryAdminRepository) Create(admin *models.Admin) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextAdminID++
	admin.ID = r.store.nextAdminID
	admin.CreatedAt = time.Now()
	r.store.admins[admin.ID] = *admin
	return nil
}

func (r *memoryAdminRepository) Update(admin *models.Admin) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.admins[admin.ID] = *admin
	return nil
}

type memoryProgramRepository struct {
	store *MemoryStore
}

func (r *memoryProgramRepository) Create(program *models.AffiliateProgram) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextProgramID++
	program.ID = r.store.nextProgramID
	now := time.Now()
	program.CreatedAt = now
	program.UpdatedAt = now
	r.store.programs[program.ID] = *program
	return nil
}

func (r *memoryProgramRepository) List(filter ProgramListFilter) ([]models.AffiliateProgram, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	programs := make([]models.AffiliateProgram, 0, len(r.store.programs))
	for _, program := range r.store.programs {
		if filter.Status != "" && program.Status != filter.Status {
			continue
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			if !containsFold(program.Name, search) && !containsFold(program.Niche, search) {
				continue
			}
		}
		programs = append(programs, program)
	}
	sort.Slice(programs, func(i, j int) bool { return programs[i].ID > programs[j].ID })
	total := int64(len(programs))
	start, end := paginateRange(len(programs), filter.Page, filter.PageSize)
	return programs[start:end], total, nil
}

func (r *memoryProgramRepository) GetByID(id uint) (*models.AffiliateProgram, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	program, ok := r.store.programs[id]
	if !ok {
		return nil, nil
	}
	found := program
	return &found, nil
}

func (r *memoryProgramRepository) Count() (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.programs)), nil
}

type memoryAdCreativeRepository struct {
	store *MemoryStore
}

func (r *memoryAdCreativeRepository) Create(ad *models.AdCreative) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextAdID++
	ad.ID = r.store.nextAdID
	now := time.Now()
	ad.CreatedAt = now
	ad.UpdatedAt = now
	r.store.ads[ad.ID] = *ad

	r.store.nextPerfID++
	r.store.perfByAd[ad.ID] = models.AdPerformance{
		ID:        r.store.nextPerfID,
		AdID:      ad.ID,
		Revenue:   models.MoneyZero(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (r *memoryAdCreativeRepository) matchLocked(filter AdListFilter) []models.AdCreative {
	ads := make([]models.AdCreative, 0, len(r.store.ads))
	for _, ad := range r.store.ads {
		if filter.ProgramID > 0 && ad.ProgramID != filter.ProgramID {
			continue
		}
		if filter.TrafficSource != "" && ad.TrafficSource != filter.TrafficSource {
			continue
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			if !containsFold(ad.Title, search) && !containsFold(ad.Headline, search) {
				continue
			}
		}
		ads = append(ads, ad)
	}
	sort.Slice(ads, func(i, j int) bool { return ads[i].ID > ads[j].ID })
	return ads
}

func (r *memoryAdCreativeRepository) List(filter AdListFilter) ([]models.AdCreative, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ads := r.matchLocked(filter)
	total := int64(len(ads))
	start, end := paginateRange(len(ads), filter.Page, filter.PageSize)
	return ads[start:end], total, nil
}

func (r *memoryAdCreativeRepository) ListWithMetrics(filter AdListFilter) ([]AdMetricsRow, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ads := r.matchLocked(filter)
	total := int64(len(ads))
	start, end := paginateRange(len(ads), filter.Page, filter.PageSize)

	rows := make([]AdMetricsRow, 0, end-start)
	for _, ad := range ads[start:end] {
		row := AdMetricsRow{
			ID:            ad.ID,
			ProgramID:     ad.ProgramID,
			Title:         ad.Title,
			Angle:         ad.Angle,
			Headline:      ad.Headline,
			Body:          ad.Body,
			CallToAction:  ad.CallToAction,
			PlacementType: ad.PlacementType,
			TrafficSource: ad.TrafficSource,
			CampaignNotes: ad.CampaignNotes,
			CreatedAt:     ad.CreatedAt,
			Revenue:       models.MoneyZero(),
		}
		if program, ok := r.store.programs[ad.ProgramID]; ok {
			row.ProgramName = program.Name
		}
		if perf, ok := r.store.perfByAd[ad.ID]; ok {
			row.Impressions = perf.Impressions
			row.Clicks = perf.Clicks
			row.Leads = perf.Leads
			row.Sales = perf.Sales
			row.Revenue = perf.Revenue
		}
		rows = append(rows, row)
	}
	return rows, total, nil
}

func (r *memoryAdCreativeRepository) GetByID(id uint) (*models.AdCreative, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ad, ok := r.store.ads[id]
	if !ok {
		return nil, nil
	}
	found := ad
	return &found, nil
}

func (r *memoryAdCreativeRepository) Count() (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.ads)), nil
}

type memoryAdPerformanceRepository struct {
	store *MemoryStore
}

func (r *memoryAdPerformanceRepository) GetByAdID(adID uint) (*models.AdPerformance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	perf, ok := r.store.perfByAd[adID]
	if !ok {
		return nil, nil
	}
	found := perf
	return &found, nil
}

func (r *memoryAdPerformanceRepository) Upsert(perf *models.AdPerformance) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	if existing, ok := r.store.perfByAd[perf.AdID]; ok {
		perf.ID = existing.ID
		perf.CreatedAt = existing.CreatedAt
	} else {
		r.store.nextPerfID++
		perf.ID = r.store.nextPerfID
		perf.CreatedAt = now
	}
	perf.UpdatedAt = now
	r.store.perfByAd[perf.AdID] = *perf
	return nil
}

func (r *memoryAdPerformanceRepository) SumTotals() (PerformanceTotals, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	totals := PerformanceTotals{Revenue: models.MoneyZero()}
	revenue := decimal.Zero
	for _, perf := range r.store.perfByAd {
		totals.Impressions += perf.Impressions
		totals.Clicks += perf.Clicks
		totals.Leads += perf.Leads
		totals.Sales += perf.Sales
		revenue = revenue.Add(perf.Revenue.Decimal)
	}
	totals.Revenue = models.NewMoneyFromDecimal(revenue)
	return totals, nil
}
