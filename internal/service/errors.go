package service

import "errors"

// 校验类错误
var (
	ErrUnsupportedPaymentMethod  = errors.New("unsupported payment method")
	ErrEmptyCart                 = errors.New("cart is empty")
	ErrInvalidItemOrAddOn        = errors.New("invalid item/add-on")
	ErrAddOnNotApplicable        = errors.New("add-on not applicable to item")
	ErrInvalidQuantity           = errors.New("quantity must be a positive integer")
	ErrPriceOverflow             = errors.New("order amount out of range")
	ErrDeliveryAddressRequired   = errors.New("delivery address required")
	ErrDeliveryAddressIncomplete = errors.New("delivery address incomplete")
	ErrInvalidFulfillmentType    = errors.New("invalid fulfillment type")
	ErrInvalidOrderType          = errors.New("invalid order type")
	ErrInvalidOrderStatus        = errors.New("invalid order status")
	ErrZoneInvalid               = errors.New("invalid delivery zone")
	ErrInvalidPrice              = errors.New("invalid price")
	ErrInvalidCoordinates        = errors.New("invalid coordinates")
	ErrInvalidAdminRole          = errors.New("invalid admin role")
	ErrSettingInvalid            = errors.New("invalid store setting")
	ErrEmailInvalid              = errors.New("invalid email")
	ErrPasswordTooShort          = errors.New("password must be at least 8 characters")
)

// 资源不存在
var (
	ErrZoneNotFound     = errors.New("delivery zone not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrPlaceNotFound    = errors.New("no address found for location")
)

// 冲突
var (
	ErrEmailExists    = errors.New("email already registered")
	ErrUsernameExists = errors.New("username already exists")
)

// 认证
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("account disabled")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
)

// 外部地理编码服务
var (
	ErrGeocoderUnavailable = errors.New("geocoding service unavailable")
	ErrGeocoderBusy        = errors.New("geocoding service busy, retry later")
)

// 内部错误
var (
	ErrOrderCreateFailed = errors.New("order create failed")
	ErrOrderUpdateFailed = errors.New("order update failed")
	ErrZoneSaveFailed    = errors.New("delivery zone save failed")
)

// ZoneRejectedError 配送地址不在任何配送区域内
type ZoneRejectedError struct {
	Reason string
}

func (e *ZoneRejectedError) Error() string {
	return e.Reason
}
