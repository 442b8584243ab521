package admin

import (
	"errors"

	"github.com/xxx-ad-poster/internal/http/response"
	"github.com/xxx-ad-poster/internal/models"
	"github.com/xxx-ad-poster/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdPerformance 获取单条创意的投放数据与派生指标
func (h *Handler) GetAdPerformance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	perf, err := h.PerformanceService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrAdNotFound) {
			respondError(c, response.CodeNotFound, "创意不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "投放数据获取失败", err)
		return
	}

	response.Success(c, perf)
}

// UpdatePerformanceRequest 更新投放数据请求
type UpdatePerformanceRequest struct {
	Impressions int64        `json:"impressions"`
	Clicks      int64        `json:"clicks"`
	Leads       int64        `json:"leads"`
	Sales       int64        `json:"sales"`
	Revenue     models.Money `json:"revenue"`
}

// UpdateAdPerformance 以整行覆盖的方式更新创意投放数据
func (h *Handler) UpdateAdPerformance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdatePerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	perf, err := h.PerformanceService.Update(id, service.UpdatePerformanceInput{
		Impressions: req.Impressions,
		Clicks:      req.Clicks,
		Leads:       req.Leads,
		Sales:       req.Sales,
		Revenue:     req.Revenue,
	})
	if err != nil {
		if errors.Is(err, service.ErrCounterNegative) {
			respondError(c, response.CodeBadRequest, "投放数据不允许为负数", nil)
			return
		}
		if errors.Is(err, service.ErrAdNotFound) {
			respondError(c, response.CodeNotFound, "创意不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "投放数据保存失败", err)
		return
	}

	response.Success(c, perf)
}

// GetPerformanceBySource 按流量来源汇总投放数据
func (h *Handler) GetPerformanceBySource(c *gin.Context) {
	summary, err := h.PerformanceService.SummaryBySource()
	if err != nil {
		respondError(c, response.CodeInternal, "来源汇总获取失败", err)
		return
	}

	response.Success(c, summary)
}

// ComparePerformanceRequest 创意对比请求
type ComparePerformanceRequest struct {
	AdIDs  []uint `json:"ad_ids" binding:"required"`
	Metric string `json:"metric"`
}

// ComparePerformance 按指定指标对比多条创意
func (h *Handler) ComparePerformance(c *gin.Context) {
	var req ComparePerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	result, err := h.PerformanceService.Compare(service.CompareInput{
		AdIDs:  req.AdIDs,
		Metric: req.Metric,
	})
	if err != nil {
		if errors.Is(err, service.ErrCompareTooFew) {
			respondError(c, response.CodeBadRequest, "至少需要两条创意参与对比", nil)
			return
		}
		if errors.Is(err, service.ErrCompareMetricBad) {
			respondError(c, response.CodeBadRequest, "对比指标不合法", nil)
			return
		}
		if errors.Is(err, service.ErrAdNotFound) {
			respondError(c, response.CodeNotFound, "创意不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "创意对比失败", err)
		return
	}

	response.Success(c, result)
}
