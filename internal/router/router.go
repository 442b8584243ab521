package router

import (
	"fmt"
	"strings"

	"github.com/xxx-ad-poster/internal/cache"
	"github.com/xxx-ad-poster/internal/config"
	adminhandlers "github.com/xxx-ad-poster/internal/http/handlers/admin"
	"github.com/xxx-ad-poster/internal/logger"
	"github.com/xxx-ad-poster/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "xap"
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		adminGroup := apiV1.Group("/admin")
		{
			adminGroup.POST("/login", RateLimitMiddleware(cache.Client(), adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 管理端接口（需鉴权）
			authorized := adminGroup.Group("")
			authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				authorized.GET("/dashboard/snapshot", adminHandler.GetDashboardSnapshot)

				authorized.GET("/programs", adminHandler.GetPrograms)
				authorized.POST("/programs", adminHandler.CreateProgram)
				authorized.GET("/programs/:id", adminHandler.GetProgram)

				authorized.GET("/ads", adminHandler.GetAds)
				authorized.POST("/ads", adminHandler.CreateAd)
				authorized.GET("/ads/:id", adminHandler.GetAd)
				authorized.GET("/ads/:id/copy-block", adminHandler.GetAdCopyBlock)
				authorized.GET("/ads/:id/performance", adminHandler.GetAdPerformance)
				authorized.PUT("/ads/:id/performance", adminHandler.UpdateAdPerformance)

				authorized.GET("/performance/by-source", adminHandler.GetPerformanceBySource)
				authorized.POST("/performance/compare", adminHandler.ComparePerformance)

				authorized.GET("/export/programs.csv", adminHandler.ExportProgramsCSV)
				authorized.GET("/export/ads.csv", adminHandler.ExportAdsCSV)
			}
		}
	}

	return r
}
