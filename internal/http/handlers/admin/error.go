package admin

import (
	handlershared "github.com/chowline/internal/http/handlers/shared"
	"github.com/chowline/internal/http/response"
	"github.com/chowline/internal/service"
)

var zoneErrorRules = []handlershared.MappedError{
	{Target: service.ErrZoneInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrZoneNotFound, Code: response.CodeNotFound, Key: "error.zone_not_found"},
}

var orderErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidOrderStatus, Code: response.CodeBadRequest},
	{Target: service.ErrInvalidFulfillmentType, Code: response.CodeBadRequest},
	{Target: service.ErrInvalidOrderType, Code: response.CodeBadRequest},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
}

var settingErrorRules = []handlershared.MappedError{
	{Target: service.ErrSettingInvalid, Code: response.CodeBadRequest},
}

var menuErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidPrice, Code: response.CodeBadRequest},
	{Target: service.ErrMenuItemNotFound, Code: response.CodeNotFound, Key: "error.menu_item_not_found"},
}

var adminAccountErrorRules = []handlershared.MappedError{
	{Target: service.ErrPasswordTooShort, Code: response.CodeBadRequest},
	{Target: service.ErrInvalidAdminRole, Code: response.CodeBadRequest},
	{Target: service.ErrInvalidCredentials, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrUsernameExists, Code: response.CodeConflict, Key: "error.username_exists"},
}

var loginErrorRules = []handlershared.MappedError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
}
