package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xxx-ad-poster/internal/config"
	"github.com/xxx-ad-poster/internal/constants"
	"github.com/xxx-ad-poster/internal/models"
	"github.com/xxx-ad-poster/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type adTestEnv struct {
	db          *gorm.DB
	adRepo      repository.AdCreativeRepository
	programRepo repository.ProgramRepository
	perfRepo    repository.AdPerformanceRepository
	adService   *AdService
	perfService *PerformanceService
}

func newAdTestEnv(t *testing.T, webhook *WebhookService, aigen *AIGenService) *adTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:ad_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.AffiliateProgram{},
		&models.AdCreative{},
		&models.AdPerformance{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	if webhook == nil {
		webhook = NewWebhookService(&config.WebhookConfig{}, nil)
	}

	adRepo := repository.NewAdCreativeRepository(db)
	programRepo := repository.NewProgramRepository(db)
	perfRepo := repository.NewAdPerformanceRepository(db)
	return &adTestEnv{
		db:          db,
		adRepo:      adRepo,
		programRepo: programRepo,
		perfRepo:    perfRepo,
		adService:   NewAdService(adRepo, programRepo, aigen, webhook),
		perfService: NewPerformanceService(perfRepo, adRepo, webhook),
	}
}

func (env *adTestEnv) seedProgram(t *testing.T, name string) *models.AffiliateProgram {
	t.Helper()
	program := &models.AffiliateProgram{
		Name:      name,
		Niche:     "cams",
		SignupURL: "https://example.com/signup",
		Status:    constants.ProgramStatusApproved,
	}
	if err := env.programRepo.Create(program); err != nil {
		t.Fatalf("seed program failed: %v", err)
	}
	return program
}

func TestCreateAdAutoGenerate(t *testing.T) {
	env := newAdTestEnv(t, nil, nil)
	program := env.seedProgram(t, "CrakRevenue")

	result, err := env.adService.Create(context.Background(), CreateAdInput{
		ProgramID:    program.ID,
		Title:        "Push US test",
		AutoGenerate: true,
		Brief: AdBrief{
			OfferType: "cams",
			Audience:  "single men",
			Promise:   "have more fun",
			HookStyle: constants.HookStyleCuriosity,
		},
		TrafficSource: "push",
	})
	if err != nil {
		t.Fatalf("create ad failed: %v", err)
	}
	if result.CopySource != constants.CopySourceBuiltin {
		t.Fatalf("copy source want builtin got %s", result.CopySource)
	}
	if len(result.Ads) != 1 {
		t.Fatalf("ad count want 1 got %d", len(result.Ads))
	}

	ad := result.Ads[0]
	if ad.Headline != "This Cams Offer Is Making Adults Smile" {
		t.Fatalf("unexpected headline: %q", ad.Headline)
	}
	// 简报未填 offer_name 时使用项目名
	if !strings.Contains(strings.ReplaceAll(ad.Body, "\n", " "), "CrakRevenue is for single men") {
		t.Fatalf("body should fall back to program name: %q", ad.Body)
	}

	// 创建创意时同步写入全零计数行
	perf, err := env.perfRepo.GetByAdID(ad.ID)
	if err != nil {
		t.Fatalf("get performance failed: %v", err)
	}
	if perf == nil {
		t.Fatalf("zero performance row should exist after ad create")
	}
	if perf.Impressions != 0 || perf.Clicks != 0 || perf.Revenue.String() != "0.00" {
		t.Fatalf("performance row should start at zero: %+v", perf)
	}
}

func TestCreateAdManualCopy(t *testing.T) {
	env := newAdTestEnv(t, nil, nil)
	program := env.seedProgram(t, "LoveHoney")

	result, err := env.adService.Create(context.Background(), CreateAdInput{
		ProgramID:    program.ID,
		Title:        "Manual banner",
		Headline:     "Hand-written headline",
		Body:         "Hand-written body",
		CallToAction: "Click now",
	})
	if err != nil {
		t.Fatalf("create manual ad failed: %v", err)
	}
	if result.CopySource != constants.CopySourceManual {
		t.Fatalf("copy source want manual got %s", result.CopySource)
	}
	if result.Ads[0].Headline != "Hand-written headline" {
		t.Fatalf("manual headline should be kept, got %q", result.Ads[0].Headline)
	}
}

func TestCreateAdValidation(t *testing.T) {
	env := newAdTestEnv(t, nil, nil)
	program := env.seedProgram(t, "DatingGold")

	cases := []struct {
		name  string
		input CreateAdInput
		want  error
	}{
		{
			name:  "missing title",
			input: CreateAdInput{ProgramID: program.ID, AutoGenerate: true},
			want:  ErrAdTitleRequired,
		},
		{
			name:  "manual without body",
			input: CreateAdInput{ProgramID: program.ID, Title: "t", Headline: "h"},
			want:  ErrAdCopyIncomplete,
		},
		{
			name:  "variants without auto generate",
			input: CreateAdInput{ProgramID: program.ID, Title: "t", Variants: 3},
			want:  ErrVariantsNeedAutoCopy,
		},
		{
			name:  "too many variants",
			input: CreateAdInput{ProgramID: program.ID, Title: "t", AutoGenerate: true, Variants: 6},
			want:  ErrVariantCountInvalid,
		},
		{
			name:  "missing program",
			input: CreateAdInput{ProgramID: program.ID + 999, Title: "t", AutoGenerate: true},
			want:  ErrProgramNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.adService.Create(context.Background(), tc.input); err != tc.want {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}
}

func TestCreateAdMixVariants(t *testing.T) {
	env := newAdTestEnv(t, nil, nil)
	program := env.seedProgram(t, "CrakRevenue")

	result, err := env.adService.Create(context.Background(), CreateAdInput{
		ProgramID:    program.ID,
		Title:        "Mix batch",
		AutoGenerate: true,
		Variants:     4,
		Brief: AdBrief{
			OfferType: "cams",
			HookStyle: constants.HookStyleMix,
		},
	})
	if err != nil {
		t.Fatalf("create mix variants failed: %v", err)
	}
	if len(result.Ads) != 4 {
		t.Fatalf("ad count want 4 got %d", len(result.Ads))
	}
	if result.CopySource != constants.CopySourceBuiltin {
		t.Fatalf("multi variants always use builtin copy, got %s", result.CopySource)
	}

	wantAngles := []string{
		constants.HookStyleCuriosity,
		constants.HookStyleDiscreet,
		constants.HookStyleLimitedTime,
		constants.HookStyleAudienceFocused,
	}
	for i, ad := range result.Ads {
		if ad.Angle != wantAngles[i] {
			t.Fatalf("variant %d angle want %q got %q", i, wantAngles[i], ad.Angle)
		}
		if !strings.HasPrefix(ad.Title, "Mix batch – ") {
			t.Fatalf("variant %d title should carry the hook suffix: %q", i, ad.Title)
		}
	}
}

func TestCreateAdAIFailureFallsBackToBuiltin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	aigen := NewAIGenService(&config.AIGenConfig{
		OpenAI: config.AIGenProviderConfig{BaseURL: server.URL, Model: "gpt-4o-mini"},
	})
	env := newAdTestEnv(t, nil, aigen)
	program := env.seedProgram(t, "CrakRevenue")

	result, err := env.adService.Create(context.Background(), CreateAdInput{
		ProgramID:    program.ID,
		Title:        "AI attempt",
		AutoGenerate: true,
		Brief:        AdBrief{OfferType: "cams", HookStyle: constants.HookStyleCuriosity},
		AI:           &AIGenRequest{Provider: constants.AIGenProviderOpenAI, APIKey: "sk-test"},
	})
	if err != nil {
		t.Fatalf("create should survive provider failure: %v", err)
	}
	if result.CopySource != constants.CopySourceBuiltin {
		t.Fatalf("failed provider should fall back to builtin, got %s", result.CopySource)
	}
	if result.Ads[0].Headline != "This Cams Offer Is Making Adults Smile" {
		t.Fatalf("fallback should use builtin copy: %q", result.Ads[0].Headline)
	}
}

func TestCreateAdWebhookFailureDoesNotBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	webhook := NewWebhookService(&config.WebhookConfig{Enabled: true, URL: server.URL}, nil)
	env := newAdTestEnv(t, webhook, nil)
	program := env.seedProgram(t, "CrakRevenue")

	result, err := env.adService.Create(context.Background(), CreateAdInput{
		ProgramID:    program.ID,
		Title:        "Webhook test",
		AutoGenerate: true,
		Brief:        AdBrief{OfferType: "cams"},
	})
	if err != nil {
		t.Fatalf("webhook failure must not block persist: %v", err)
	}

	stored, err := env.adRepo.GetByID(result.Ads[0].ID)
	if err != nil {
		t.Fatalf("get stored ad failed: %v", err)
	}
	if stored == nil {
		t.Fatalf("ad should be persisted despite webhook failure")
	}
}

func TestAdServiceGetMissing(t *testing.T) {
	env := newAdTestEnv(t, nil, nil)
	if _, err := env.adService.Get(12345); err != ErrAdNotFound {
		t.Fatalf("want ErrAdNotFound got %v", err)
	}
}

func TestCopyBlockFormat(t *testing.T) {
	env := newAdTestEnv(t, nil, nil)
	program := env.seedProgram(t, "CrakRevenue")

	result, err := env.adService.Create(context.Background(), CreateAdInput{
		ProgramID:     program.ID,
		Title:         "Push US",
		Headline:      "Headline here",
		Body:          "Body here",
		CallToAction:  "Tap now",
		TrafficSource: "push",
		CampaignNotes: "test run",
	})
	if err != nil {
		t.Fatalf("create ad failed: %v", err)
	}

	block, err := env.adService.CopyBlock(result.Ads[0].ID)
	if err != nil {
		t.Fatalf("copy block failed: %v", err)
	}

	want := strings.Join([]string{
		"[CrakRevenue] – Push US",
		"",
		"TRAFFIC / CAMPAIGN:",
		"Source: push",
		"Notes: test run",
		"",
		"HEADLINE:",
		"Headline here",
		"",
		"BODY:",
		"Body here",
		"",
		"CTA:",
		"Tap now",
	}, "\n")
	if block != want {
		t.Fatalf("copy block mismatch\nwant:\n%s\ngot:\n%s", want, block)
	}
}

func TestCopyBlockFallbacks(t *testing.T) {
	env := newAdTestEnv(t, nil, nil)
	program := env.seedProgram(t, "CrakRevenue")

	result, err := env.adService.Create(context.Background(), CreateAdInput{
		ProgramID: program.ID,
		Title:     "Bare ad",
		Headline:  "h",
		Body:      "b",
	})
	if err != nil {
		t.Fatalf("create ad failed: %v", err)
	}

	block, err := env.adService.CopyBlock(result.Ads[0].ID)
	if err != nil {
		t.Fatalf("copy block failed: %v", err)
	}
	if !strings.Contains(block, "Source: N/A") {
		t.Fatalf("empty source should render N/A:\n%s", block)
	}
	if !strings.Contains(block, "Notes: n/a") {
		t.Fatalf("empty notes should render n/a:\n%s", block)
	}
}
