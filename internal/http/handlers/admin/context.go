package admin

import (
	"strconv"

	handlershared "github.com/xxx-ad-poster/internal/http/handlers/shared"
	"github.com/xxx-ad-poster/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "admin_id")
}

// parseIDParam 解析路径里的 :id
func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "ID 不合法", err)
		return 0, false
	}
	return uint(id), true
}
