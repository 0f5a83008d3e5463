package public

import (
	"strconv"
	"strings"

	handlershared "github.com/chowline/internal/http/handlers/shared"
	"github.com/chowline/internal/http/response"

	"github.com/gin-gonic/gin"
)

const defaultSearchLimit = 5

// ReverseGeocode 坐标反查地址
func (h *Handler) ReverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(c.Query("lat")), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(c.Query("lng")), 64)
	if latErr != nil || lngErr != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	place, err := h.GeocodeService.ReverseGeocode(c.Request.Context(), lat, lng)
	if err != nil {
		handlershared.RespondMappedError(c, err, geocodeErrorRules, response.CodeInternal, "error.geocode_failed")
		return
	}
	response.Success(c, place)
}

// SearchAddress 地址搜索
func (h *Handler) SearchAddress(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSearchLimit)))
	if err != nil || limit <= 0 || limit > 20 {
		limit = defaultSearchLimit
	}

	places, err := h.GeocodeService.SearchAddress(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		handlershared.RespondMappedError(c, err, geocodeErrorRules, response.CodeInternal, "error.geocode_failed")
		return
	}
	response.Success(c, places)
}
