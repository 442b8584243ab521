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

// CreateProgramRequest 创建联盟项目请求
type CreateProgramRequest struct {
	Name      string `json:"name" binding:"required"`
	Niche     string `json:"niche"`
	GeoFocus  string `json:"geo_focus"`
	SignupURL string `json:"signup_url" binding:"required"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

// CreateProgram 创建联盟项目
func (h *Handler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	program, err := h.ProgramService.Create(service.CreateProgramInput{
		Name:      req.Name,
		Niche:     req.Niche,
		GeoFocus:  req.GeoFocus,
		SignupURL: req.SignupURL,
		Status:    req.Status,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrProgramNameRequired) {
			respondError(c, response.CodeBadRequest, "项目名称不能为空", nil)
			return
		}
		if errors.Is(err, service.ErrProgramSignupRequired) {
			respondError(c, response.CodeBadRequest, "注册链接不能为空", nil)
			return
		}
		if errors.Is(err, service.ErrProgramStatusInvalid) {
			respondError(c, response.CodeBadRequest, "项目状态不合法", nil)
			return
		}
		respondError(c, response.CodeInternal, "项目创建失败", err)
		return
	}

	response.Success(c, program)
}

// GetPrograms 获取联盟项目列表
func (h *Handler) GetPrograms(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	programs, total, err := h.ProgramService.List(repository.ProgramListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "项目列表获取失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, programs, pagination)
}

// GetProgram 获取联盟项目详情
func (h *Handler) GetProgram(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	program, err := h.ProgramService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			respondError(c, response.CodeNotFound, "项目不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "项目获取失败", err)
		return
	}

	response.Success(c, program)
}
