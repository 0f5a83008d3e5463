package constants

// 订单状态常量
const (
	OrderStatusPlaced         = "PLACED"
	OrderStatusPreparing      = "PREPARING"
	OrderStatusReadyForPickup = "READY_FOR_PICKUP"
	OrderStatusOutForDelivery = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      = "DELIVERED"
	OrderStatusCancelled      = "CANCELLED"
)

// 履约方式常量
const (
	FulfillmentTypeDelivery = "DELIVERY"
	FulfillmentTypePickup   = "PICKUP"
)

// 订单类型常量
const (
	OrderTypeNormal = "NORMAL"
	OrderTypeDeal   = "DEAL"
)

// 支付方式常量（当前仅支持货到付款）
const (
	PaymentMethodCash = "cash"
)

// 配送区域类型常量
const (
	ZoneKindPrefix = "PREFIX"
	ZoneKindCircle = "CIRCLE"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 管理员角色常量
const (
	AdminRoleSuper    = "super_admin"
	AdminRoleOperator = "operator"
	AdminRoleViewer   = "viewer"
)

// 队列与任务常量
const (
	QueueDefault           = "default"
	TaskOrderStatusChanged = "order:status_changed"
)

// 系统设置键常量
const (
	SettingKeyStoreConfig        = "store_config"
	SettingFieldDeliveryFeeCents = "delivery_fee_cents"
	SettingFieldCurrency         = "currency"
	SettingFieldStoreName        = "store_name"
)

// 缓存键常量
const (
	CacheKeyActiveZones = "delivery_zones:active"
	CacheKeyGeocodeSlot = "geocode:slot"
)

// OrderStatuses 全部合法订单状态
var OrderStatuses = []string{
	OrderStatusPlaced,
	OrderStatusPreparing,
	OrderStatusReadyForPickup,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}
