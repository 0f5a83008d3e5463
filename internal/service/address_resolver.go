package service

import (
	"strings"

	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/models"
)

// AddressInput 下单时提交的配送地址
type AddressInput struct {
	Line1        string   `json:"line1"`
	Line2        string   `json:"line2"`
	City         string   `json:"city"`
	Postcode     string   `json:"postcode"`
	Instructions string   `json:"instructions"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// ResolveDeliveryAddress 解析订单配送地址
// 自提订单返回 nil；外卖订单优先使用请求地址，其次使用登录用户的常用地址
func ResolveDeliveryAddress(fulfillmentType string, input *AddressInput, user *models.User) (*models.Address, error) {
	if fulfillmentType != constants.FulfillmentTypeDelivery {
		return nil, nil
	}

	var address *models.Address
	switch {
	case input != nil:
		address = normalizeAddressInput(*input)
	case user != nil && user.HasSavedAddress():
		address = normalizeAddressInput(AddressInput{
			Line1:        user.AddressLine1,
			Line2:        user.AddressLine2,
			City:         user.AddressCity,
			Postcode:     user.AddressPostcode,
			Instructions: user.AddressInstructions,
			Latitude:     user.AddressLat,
			Longitude:    user.AddressLng,
		})
	default:
		return nil, ErrDeliveryAddressRequired
	}

	if address.Line1 == "" || address.City == "" || address.Postcode == "" {
		return nil, ErrDeliveryAddressIncomplete
	}
	return address, nil
}

func normalizeAddressInput(input AddressInput) *models.Address {
	address := &models.Address{
		Line1:        strings.TrimSpace(input.Line1),
		Line2:        strings.TrimSpace(input.Line2),
		City:         strings.TrimSpace(input.City),
		Postcode:     displayPostcode(input.Postcode),
		Instructions: strings.TrimSpace(input.Instructions),
	}
	if input.Latitude != nil && input.Longitude != nil {
		address.Latitude = floatPtr(*input.Latitude)
		address.Longitude = floatPtr(*input.Longitude)
	}
	return address
}

// eligibilityCandidateFromAddress 地址转换为配送资格校验参数
func eligibilityCandidateFromAddress(address *models.Address) EligibilityCandidate {
	return EligibilityCandidate{
		City:      address.City,
		Postcode:  address.Postcode,
		Latitude:  address.Latitude,
		Longitude: address.Longitude,
	}
}
