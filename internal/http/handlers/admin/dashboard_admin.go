package admin

import (
	"github.com/xxx-ad-poster/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardSnapshot 获取仪表盘汇总快照
func (h *Handler) GetDashboardSnapshot(c *gin.Context) {
	forceRefresh := c.Query("force_refresh") == "true" || c.Query("force_refresh") == "1"

	snapshot, err := h.DashboardService.GetSnapshot(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "仪表盘数据获取失败", err)
		return
	}

	response.Success(c, snapshot)
}
