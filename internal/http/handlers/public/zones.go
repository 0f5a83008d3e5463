package public

import (
	"github.com/chowline/internal/http/response"
	"github.com/chowline/internal/service"

	"github.com/gin-gonic/gin"
)

// ListDeliveryZones 启用的配送区域列表
func (h *Handler) ListDeliveryZones(c *gin.Context) {
	zones, err := h.ZoneService.ListActiveZones(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.zone_fetch_failed", err)
		return
	}
	response.Success(c, zones)
}

// CheckDeliveryZone 校验地址是否可配送
func (h *Handler) CheckDeliveryZone(c *gin.Context) {
	var req service.EligibilityCandidate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.ZoneService.CheckEligibility(c.Request.Context(), req)
	if err != nil {
		respondError(c, response.CodeInternal, "error.zone_check_failed", err)
		return
	}
	response.Success(c, result)
}
