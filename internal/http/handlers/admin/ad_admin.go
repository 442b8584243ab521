package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/xxx-ad-poster/internal/http/handlers/shared"
	"github.com/xxx-ad-poster/internal/http/response"
	"github.com/xxx-ad-poster/internal/repository"
	"github.com/xxx-ad-poster/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateAdRequest 创建广告创意请求
type CreateAdRequest struct {
	ProgramID     uint                  `json:"program_id" binding:"required"`
	Title         string                `json:"title" binding:"required"`
	Brief         service.AdBrief       `json:"brief"`
	AutoGenerate  bool                  `json:"auto_generate"`
	Headline      string                `json:"headline"`
	Body          string                `json:"body"`
	CallToAction  string                `json:"call_to_action"`
	PlacementType string                `json:"placement_type"`
	TrafficSource string                `json:"traffic_source"`
	CampaignNotes string                `json:"campaign_notes"`
	Variants      int                   `json:"variants"`
	AI            *service.AIGenRequest `json:"ai"`
}

// CreateAd 创建广告创意，支持自动生成文案与多变体
func (h *Handler) CreateAd(c *gin.Context) {
	var req CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	result, err := h.AdService.Create(c.Request.Context(), service.CreateAdInput{
		ProgramID:     req.ProgramID,
		Title:         req.Title,
		Brief:         req.Brief,
		AutoGenerate:  req.AutoGenerate,
		Headline:      req.Headline,
		Body:          req.Body,
		CallToAction:  req.CallToAction,
		PlacementType: req.PlacementType,
		TrafficSource: req.TrafficSource,
		CampaignNotes: req.CampaignNotes,
		Variants:      req.Variants,
		AI:            req.AI,
	})
	if err != nil {
		if errors.Is(err, service.ErrAdTitleRequired) {
			respondError(c, response.CodeBadRequest, "创意标题不能为空", nil)
			return
		}
		if errors.Is(err, service.ErrVariantCountInvalid) {
			respondError(c, response.CodeBadRequest, "变体数量超出范围", nil)
			return
		}
		if errors.Is(err, service.ErrVariantsNeedAutoCopy) {
			respondError(c, response.CodeBadRequest, "多变体创建必须开启自动生成", nil)
			return
		}
		if errors.Is(err, service.ErrAdCopyIncomplete) {
			respondError(c, response.CodeBadRequest, "手动文案必须包含标题与正文", nil)
			return
		}
		if errors.Is(err, service.ErrProgramNotFound) {
			respondError(c, response.CodeNotFound, "项目不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "创意创建失败", err)
		return
	}

	response.Success(c, result)
}

// GetAds 获取广告创意列表（含投放指标）
func (h *Handler) GetAds(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	programID, _ := strconv.ParseUint(c.Query("program_id"), 10, 32)

	ads, total, err := h.AdService.List(repository.AdListFilter{
		Page:          page,
		PageSize:      pageSize,
		ProgramID:     uint(programID),
		TrafficSource: c.Query("traffic_source"),
		Search:        c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "创意列表获取失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, ads, pagination)
}

// GetAd 获取广告创意详情
func (h *Handler) GetAd(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ad, err := h.AdService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrAdNotFound) {
			respondError(c, response.CodeNotFound, "创意不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "创意获取失败", err)
		return
	}

	response.Success(c, ad)
}

// GetAdCopyBlock 获取可直接粘贴到流量平台的文案块
func (h *Handler) GetAdCopyBlock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	block, err := h.AdService.CopyBlock(id)
	if err != nil {
		if errors.Is(err, service.ErrAdNotFound) {
			respondError(c, response.CodeNotFound, "创意不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "文案块生成失败", err)
		return
	}

	response.Success(c, gin.H{"block": block})
}
