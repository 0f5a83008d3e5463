package admin

import (
	"strings"

	handlershared "github.com/chowline/internal/http/handlers/shared"
	"github.com/chowline/internal/http/response"
	"github.com/chowline/internal/repository"
	"github.com/chowline/internal/service"

	"github.com/gin-gonic/gin"
)

// ListZones 配送区域列表
func (h *Handler) ListZones(c *gin.Context) {
	zones, err := h.ZoneService.ListZones(repository.ZoneListFilter{
		OnlyActive: c.Query("active") == "true",
		Kind:       strings.ToUpper(strings.TrimSpace(c.Query("kind"))),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.zone_fetch_failed", err)
		return
	}
	response.Success(c, zones)
}

// GetZone 配送区域详情
func (h *Handler) GetZone(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	zone, err := h.ZoneService.GetZone(id)
	if err != nil {
		handlershared.RespondMappedError(c, err, zoneErrorRules, response.CodeInternal, "error.zone_fetch_failed")
		return
	}
	response.Success(c, zone)
}

// CreateZone 新建配送区域
func (h *Handler) CreateZone(c *gin.Context) {
	var req service.ZoneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	zone, err := h.ZoneService.CreateZone(c.Request.Context(), req)
	if err != nil {
		handlershared.RespondMappedError(c, err, zoneErrorRules, response.CodeInternal, "error.zone_save_failed")
		return
	}
	requestLog(c).Infow("zone_created", "zone_id", zone.ID, "kind", zone.Kind, "operator", operatorName(c))
	response.Success(c, zone)
}

// UpdateZone 更新配送区域
func (h *Handler) UpdateZone(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req service.ZoneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	zone, err := h.ZoneService.UpdateZone(c.Request.Context(), id, req)
	if err != nil {
		handlershared.RespondMappedError(c, err, zoneErrorRules, response.CodeInternal, "error.zone_save_failed")
		return
	}
	requestLog(c).Infow("zone_updated", "zone_id", zone.ID, "operator", operatorName(c))
	response.Success(c, zone)
}

// DeleteZone 删除配送区域
func (h *Handler) DeleteZone(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ZoneService.DeleteZone(c.Request.Context(), id); err != nil {
		handlershared.RespondMappedError(c, err, zoneErrorRules, response.CodeInternal, "error.zone_save_failed")
		return
	}
	requestLog(c).Infow("zone_deleted", "zone_id", id, "operator", operatorName(c))
	response.Success(c, nil)
}
