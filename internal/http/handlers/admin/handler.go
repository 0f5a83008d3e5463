package admin

import "github.com/chowline/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：该处理器仅用于管理端 API（配送区域、订单、门店设置、菜单价格、后台账号）。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
