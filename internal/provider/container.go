package provider

import (
	"strings"

	"github.com/xxx-ad-poster/internal/cache"
	"github.com/xxx-ad-poster/internal/config"
	"github.com/xxx-ad-poster/internal/logger"
	"github.com/xxx-ad-poster/internal/models"
	"github.com/xxx-ad-poster/internal/queue"
	"github.com/xxx-ad-poster/internal/repository"
	"github.com/xxx-ad-poster/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo   repository.AdminRepository
	ProgramRepo repository.ProgramRepository
	AdRepo      repository.AdCreativeRepository
	PerfRepo    repository.AdPerformanceRepository

	// Services
	AuthService        *service.AuthService
	ProgramService     *service.ProgramService
	AdService          *service.AdService
	PerformanceService *service.PerformanceService
	DashboardService   *service.DashboardService
	AIGenService       *service.AIGenService
	WebhookService     *service.WebhookService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	// 3. 引导默认运营者账号
	if err := c.ensureDefaultAdmin(); err != nil {
		logger.Errorw("provider_ensure_default_admin_failed", "error", err)
	}

	return c
}

func (c *Container) initRepositories() {
	if strings.EqualFold(strings.TrimSpace(c.Config.Database.Driver), "memory") {
		store := repository.NewMemoryStore()
		c.AdminRepo = store.Admins()
		c.ProgramRepo = store.Programs()
		c.AdRepo = store.Ads()
		c.PerfRepo = store.Performance()
		return
	}

	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.ProgramRepo = repository.NewProgramRepository(db)
	c.AdRepo = repository.NewAdCreativeRepository(db)
	c.PerfRepo = repository.NewAdPerformanceRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.AIGenService = service.NewAIGenService(&c.Config.AIGen)
	c.WebhookService = service.NewWebhookService(&c.Config.Webhook, c.QueueClient)
	c.ProgramService = service.NewProgramService(c.ProgramRepo)
	c.AdService = service.NewAdService(c.AdRepo, c.ProgramRepo, c.AIGenService, c.WebhookService)
	c.PerformanceService = service.NewPerformanceService(c.PerfRepo, c.AdRepo, c.WebhookService)
	c.DashboardService = service.NewDashboardService(c.ProgramRepo, c.AdRepo, c.PerfRepo)
}

// ensureDefaultAdmin 首次启动时创建默认账号
func (c *Container) ensureDefaultAdmin() error {
	count, err := c.AdminRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := strings.TrimSpace(c.Config.Auth.DefaultAdminUsername)
	if username == "" {
		username = "admin"
	}
	password := c.Config.Auth.DefaultAdminPassword
	if password == "" {
		password = "admin123"
	}

	hash, err := c.AuthService.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.Admin{
		Username:     username,
		PasswordHash: hash,
	}
	if err := c.AdminRepo.Create(admin); err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}
	return nil
}
