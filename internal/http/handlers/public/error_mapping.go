package public

import (
	"errors"

	handlershared "github.com/chowline/internal/http/handlers/shared"
	"github.com/chowline/internal/http/response"
	"github.com/chowline/internal/service"

	"github.com/gin-gonic/gin"
)

var orderValidationErrorRules = []handlershared.MappedError{
	{Target: service.ErrUnsupportedPaymentMethod, Code: response.CodeBadRequest},
	{Target: service.ErrEmptyCart, Code: response.CodeBadRequest},
	{Target: service.ErrInvalidItemOrAddOn, Code: response.CodeBadRequest},
	{Target: service.ErrAddOnNotApplicable, Code: response.CodeBadRequest},
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest},
	{Target: service.ErrPriceOverflow, Code: response.CodeBadRequest},
	{Target: service.ErrDeliveryAddressRequired, Code: response.CodeBadRequest},
	{Target: service.ErrDeliveryAddressIncomplete, Code: response.CodeBadRequest},
	{Target: service.ErrInvalidFulfillmentType, Code: response.CodeBadRequest},
	{Target: service.ErrInvalidOrderType, Code: response.CodeBadRequest},
	{Target: service.ErrInvalidOrderStatus, Code: response.CodeBadRequest},
	{Target: service.ErrInvalidCoordinates, Code: response.CodeBadRequest},
}

var orderLookupErrorRules = []handlershared.MappedError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

var userAuthErrorRules = []handlershared.MappedError{
	{Target: service.ErrEmailInvalid, Code: response.CodeBadRequest},
	{Target: service.ErrPasswordTooShort, Code: response.CodeBadRequest},
	{Target: service.ErrDeliveryAddressIncomplete, Code: response.CodeBadRequest},
	{Target: service.ErrInvalidCoordinates, Code: response.CodeBadRequest},
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

var geocodeErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidCoordinates, Code: response.CodeBadRequest},
	{Target: service.ErrPlaceNotFound, Code: response.CodeNotFound, Key: "error.place_not_found"},
	{Target: service.ErrGeocoderBusy, Code: response.CodeServiceUnavailable, Key: "error.geocoder_busy"},
	{Target: service.ErrGeocoderUnavailable, Code: response.CodeServiceUnavailable, Key: "error.geocoder_unavailable"},
}

// respondOrderError 下单相关错误响应，区域拒绝时返回匹配器给出的原因
func respondOrderError(c *gin.Context, err error, fallbackKey string) {
	var rejected *service.ZoneRejectedError
	if errors.As(err, &rejected) {
		respondErrorWithMsg(c, response.CodeBadRequest, rejected.Reason, nil)
		return
	}
	rules := handlershared.ConcatMappedErrors(orderValidationErrorRules, orderLookupErrorRules)
	handlershared.RespondMappedError(c, err, rules, response.CodeInternal, fallbackKey)
}
