package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxx-ad-poster/internal/constants"
	"github.com/xxx-ad-poster/internal/logger"
	"github.com/xxx-ad-poster/internal/models"
	"github.com/xxx-ad-poster/internal/repository"
)

const (
	minVariants = 1
	maxVariants = 5
)

// AdService 广告创意服务
type AdService struct {
	adRepo      repository.AdCreativeRepository
	programRepo repository.ProgramRepository
	aigen       *AIGenService
	webhook     *WebhookService
}

// NewAdService 创建广告创意服务
func NewAdService(
	adRepo repository.AdCreativeRepository,
	programRepo repository.ProgramRepository,
	aigen *AIGenService,
	webhook *WebhookService,
) *AdService {
	return &AdService{
		adRepo:      adRepo,
		programRepo: programRepo,
		aigen:       aigen,
		webhook:     webhook,
	}
}

// CreateAdInput 创建创意的入参
type CreateAdInput struct {
	ProgramID     uint          `json:"program_id"`
	Title         string        `json:"title"`
	Brief         AdBrief       `json:"brief"`
	AutoGenerate  bool          `json:"auto_generate"`
	Headline      string        `json:"headline"`
	Body          string        `json:"body"`
	CallToAction  string        `json:"call_to_action"`
	PlacementType string        `json:"placement_type"`
	TrafficSource string        `json:"traffic_source"`
	CampaignNotes string        `json:"campaign_notes"`
	Variants      int           `json:"variants"`
	AI            *AIGenRequest `json:"ai"`
}

// CreateAdResult 创建创意的结果
type CreateAdResult struct {
	Ads        []models.AdCreative `json:"ads"`
	CopySource string              `json:"copy_source"`
}

// Create 依据简报创建一条或多条创意。
// 外部生成失败只降级为规则生成，已通过校验的写入总会落库。
func (s *AdService) Create(ctx context.Context, input CreateAdInput) (*CreateAdResult, error) {
	variants := input.Variants
	if variants == 0 {
		variants = 1
	}
	if variants < minVariants || variants > maxVariants {
		return nil, ErrVariantCountInvalid
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrAdTitleRequired
	}

	program, err := s.programRepo.GetByID(input.ProgramID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}

	brief := input.Brief
	if strings.TrimSpace(brief.OfferName) == "" {
		brief.OfferName = program.Name
	}

	copySource := constants.CopySourceManual
	var planned []AdVariant

	if variants == 1 {
		variant := AdVariant{Title: title, Angle: brief.HookStyle}
		if input.AutoGenerate {
			variant.Copy, copySource = s.generateCopy(ctx, brief, input.AI)
			// 手填字段优先于生成结果
			if manual := strings.TrimSpace(input.Headline); manual != "" {
				variant.Copy.Headline = manual
			}
			if manual := strings.TrimSpace(input.Body); manual != "" {
				variant.Copy.Body = manual
			}
			if manual := strings.TrimSpace(input.CallToAction); manual != "" {
				variant.Copy.CTA = manual
			}
		} else {
			headline := strings.TrimSpace(input.Headline)
			body := strings.TrimSpace(input.Body)
			if headline == "" || body == "" {
				return nil, ErrAdCopyIncomplete
			}
			variant.Copy = AdCopy{
				Headline: headline,
				Body:     body,
				CTA:      strings.TrimSpace(input.CallToAction),
			}
		}
		planned = []AdVariant{variant}
	} else {
		if !input.AutoGenerate {
			return nil, ErrVariantsNeedAutoCopy
		}
		copySource = constants.CopySourceBuiltin
		planned = GenerateVariants(title, brief, variants)
		if manualCTA := strings.TrimSpace(input.CallToAction); manualCTA != "" {
			for i := range planned {
				planned[i].Copy.CTA = manualCTA
			}
		}
	}

	ads := make([]models.AdCreative, 0, len(planned))
	for _, variant := range planned {
		ad := models.AdCreative{
			ProgramID:     program.ID,
			Title:         variant.Title,
			Angle:         strings.TrimSpace(variant.Angle),
			Headline:      variant.Copy.Headline,
			Body:          variant.Copy.Body,
			CallToAction:  variant.Copy.CTA,
			PlacementType: strings.TrimSpace(input.PlacementType),
			TrafficSource: strings.TrimSpace(input.TrafficSource),
			CampaignNotes: strings.TrimSpace(input.CampaignNotes),
		}
		if err := s.adRepo.Create(&ad); err != nil {
			return nil, err
		}
		ads = append(ads, ad)

		s.webhook.Notify(constants.WebhookEventAdCreated, map[string]interface{}{
			"ad_id":      ad.ID,
			"program_id": ad.ProgramID,
			"title":      ad.Title,
			"angle":      ad.Angle,
		})
	}

	return &CreateAdResult{Ads: ads, CopySource: copySource}, nil
}

// generateCopy 优先走外部提供方，失败回退规则生成器
func (s *AdService) generateCopy(ctx context.Context, brief AdBrief, ai *AIGenRequest) (AdCopy, string) {
	if ai != nil && strings.TrimSpace(ai.Provider) != "" && s.aigen != nil {
		generated, err := s.aigen.Generate(ctx, brief, *ai)
		if err == nil {
			return generated, strings.ToLower(strings.TrimSpace(ai.Provider))
		}
		logger.Warnw("aigen_fallback_to_builtin",
			"provider", ai.Provider,
			"error", err,
		)
	}
	return GenerateAdFromBrief(brief), constants.CopySourceBuiltin
}

// List 创意列表（联查项目名与投放计数）
func (s *AdService) List(filter repository.AdListFilter) ([]repository.AdMetricsRow, int64, error) {
	return s.adRepo.ListWithMetrics(filter)
}

// Get 获取单条创意
func (s *AdService) Get(id uint) (*models.AdCreative, error) {
	ad, err := s.adRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrAdNotFound
	}
	return ad, nil
}

// CopyBlock 生成可直接粘贴到投放平台的文本块
func (s *AdService) CopyBlock(id uint) (string, error) {
	ad, err := s.Get(id)
	if err != nil {
		return "", err
	}

	programName := "Unknown Program"
	program, err := s.programRepo.GetByID(ad.ProgramID)
	if err != nil {
		return "", err
	}
	if program != nil {
		programName = program.Name
	}

	source := ad.TrafficSource
	if source == "" {
		source = "N/A"
	}
	notes := ad.CampaignNotes
	if notes == "" {
		notes = "n/a"
	}

	lines := []string{
		fmt.Sprintf("[%s] – %s", programName, ad.Title),
		"",
		"TRAFFIC / CAMPAIGN:",
		fmt.Sprintf("Source: %s", source),
		fmt.Sprintf("Notes: %s", notes),
		"",
		"HEADLINE:",
		ad.Headline,
		"",
		"BODY:",
		ad.Body,
		"",
		"CTA:",
		ad.CallToAction,
	}
	return strings.Join(lines, "\n"), nil
}
