package public

import (
	"github.com/chowline/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetMenu 菜单（启用的分类、菜品与加料）
func (h *Handler) GetMenu(c *gin.Context) {
	categories, err := h.MenuService.GetMenu()
	if err != nil {
		respondError(c, response.CodeInternal, "error.menu_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}
