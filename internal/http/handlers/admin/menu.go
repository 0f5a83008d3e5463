package admin

import (
	handlershared "github.com/chowline/internal/http/handlers/shared"
	"github.com/chowline/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UpdateMenuItemPriceRequest 菜品改价请求，价格为十进制字符串（如 "5.99"）
type UpdateMenuItemPriceRequest struct {
	Price string `json:"price" binding:"required"`
}

// UpdateMenuItemPrice 修改菜品价格，已下单的订单行保留快照价格
func (h *Handler) UpdateMenuItemPrice(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateMenuItemPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.MenuService.UpdateItemPrice(id, req.Price)
	if err != nil {
		handlershared.RespondMappedError(c, err, menuErrorRules, response.CodeInternal, "error.menu_update_failed")
		return
	}
	requestLog(c).Infow("menu_item_price_updated",
		"menu_item_id", item.ID,
		"price_cents", item.PriceCents,
		"operator", operatorName(c),
	)
	response.Success(c, item)
}
