package main

import (
	"github.com/xxx-ad-poster/internal/config"
	"github.com/xxx-ad-poster/internal/constants"
	"github.com/xxx-ad-poster/internal/logger"
	"github.com/xxx-ad-poster/internal/models"
	"github.com/xxx-ad-poster/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if cfg.Database.Driver == "memory" {
		stdLog.Fatalf("memory 驱动的数据随进程销毁，种子数据请使用 sqlite 或 postgres")
	}
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加联盟项目
	programs := []models.AffiliateProgram{
		{
			Name:      "CrakRevenue",
			Niche:     "cams",
			GeoFocus:  "US/CA",
			SignupURL: "https://www.crakrevenue.com/",
			Status:    constants.ProgramStatusApproved,
			Notes:     "RevShare + PPL, weekly payouts",
		},
		{
			Name:      "LoveHoney Affiliates",
			Niche:     "toys",
			GeoFocus:  "UK/EU",
			SignupURL: "https://www.lovehoney.co.uk/affiliates/",
			Status:    constants.ProgramStatusApplied,
			Notes:     "Strong brand, seasonal promos",
		},
		{
			Name:      "DatingGold",
			Niche:     "dating",
			GeoFocus:  "US",
			SignupURL: "https://datinggold.com/",
			Status:    constants.ProgramStatusResearching,
			Notes:     "",
		},
	}
	for i := range programs {
		var existing models.AffiliateProgram
		if err := models.DB.Where("name = ?", programs[i].Name).First(&existing).Error; err == nil {
			programs[i] = existing
			continue
		}
		if err := models.DB.Create(&programs[i]).Error; err != nil {
			stdLog.Fatalf("Failed to seed program %s: %v", programs[i].Name, err)
		}
	}

	// 添加广告创意（内置规则生成文案）
	briefs := []struct {
		program *models.AffiliateProgram
		title   string
		brief   service.AdBrief
		source  string
	}{
		{
			program: &programs[0],
			title:   "Cams US prelander A",
			brief: service.AdBrief{
				OfferName: "CrakRevenue",
				OfferType: "cams",
				Audience:  "single men over 30",
				Promise:   "meet performers who actually reply",
				HookStyle: constants.HookStyleCuriosity,
			},
			source: "push",
		},
		{
			program: &programs[1],
			title:   "Toys UK spring promo",
			brief: service.AdBrief{
				OfferName: "LoveHoney",
				OfferType: "toys",
				Audience:  "couples in the UK",
				Promise:   "spice things up discreetly",
				HookStyle: constants.HookStyleDiscreet,
			},
			source: "native",
		},
	}
	for _, item := range briefs {
		copyOut := service.GenerateAdFromBrief(item.brief)
		ad := models.AdCreative{
			ProgramID:     item.program.ID,
			Title:         item.title,
			Angle:         item.brief.HookStyle,
			Headline:      copyOut.Headline,
			Body:          copyOut.Body,
			CallToAction:  copyOut.CTA,
			PlacementType: "banner",
			TrafficSource: item.source,
		}
		var existing models.AdCreative
		if err := models.DB.Where("title = ?", ad.Title).First(&existing).Error; err == nil {
			continue
		}
		if err := models.DB.Create(&ad).Error; err != nil {
			stdLog.Fatalf("Failed to seed ad %s: %v", ad.Title, err)
		}
		perf := models.AdPerformance{
			AdID:        ad.ID,
			Impressions: 12500,
			Clicks:      310,
			Leads:       42,
			Sales:       9,
			Revenue:     models.NewMoneyFromDecimal(decimal.NewFromFloat(187.50)),
		}
		if err := models.DB.Create(&perf).Error; err != nil {
			stdLog.Fatalf("Failed to seed performance for ad %s: %v", ad.Title, err)
		}
	}

	stdLog.Printf("Seed data inserted")
}
