package public

import "github.com/chowline/internal/provider"

// Handler 前台/公开接口处理器入口
// 说明：该处理器仅用于顾客侧 API（配送区域、菜单、下单、账号、地址查询）。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
