package admin

import (
	handlershared "github.com/chowline/internal/http/handlers/shared"
	"github.com/chowline/internal/http/response"
	"github.com/chowline/internal/service"

	"github.com/gin-gonic/gin"
)

// GetStoreSettings 获取门店配置
func (h *Handler) GetStoreSettings(c *gin.Context) {
	setting, err := h.SettingService.GetStoreSetting()
	if err != nil {
		respondError(c, response.CodeInternal, "error.settings_fetch_failed", err)
		return
	}
	response.Success(c, setting)
}

// UpdateStoreSettings 更新门店配置，配送费以十进制字符串提交
func (h *Handler) UpdateStoreSettings(c *gin.Context) {
	var req service.StoreSettingPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	setting, err := h.SettingService.UpdateStoreSetting(req)
	if err != nil {
		handlershared.RespondMappedError(c, err, settingErrorRules, response.CodeInternal, "error.settings_save_failed")
		return
	}
	requestLog(c).Infow("store_setting_updated",
		"delivery_fee_cents", setting.DeliveryFeeCents,
		"currency", setting.Currency,
		"operator", operatorName(c),
	)
	response.Success(c, setting)
}
