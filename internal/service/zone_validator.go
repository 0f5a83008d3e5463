package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/models"
)

// ZoneInput 配送区域写入参数，指针为空表示保留原值
type ZoneInput struct {
	Name             *string   `json:"name"`
	Kind             *string   `json:"kind"`
	City             *string   `json:"city"`
	PostcodePrefixes *[]string `json:"postcode_prefixes"`
	CenterLat        *float64  `json:"center_lat"`
	CenterLng        *float64  `json:"center_lng"`
	RadiusMeters     *float64  `json:"radius_meters"`
	IsActive         *bool     `json:"is_active"`
}

// mergeZoneInput 将输入合并到已有区域（新建时 base 为空记录）
func mergeZoneInput(base models.DeliveryZone, input ZoneInput) models.DeliveryZone {
	merged := base
	if input.Name != nil {
		merged.Name = strings.TrimSpace(*input.Name)
	}
	if input.Kind != nil {
		merged.Kind = strings.ToUpper(strings.TrimSpace(*input.Kind))
	}
	if input.City != nil {
		merged.City = strings.TrimSpace(*input.City)
	}
	if input.PostcodePrefixes != nil {
		merged.PostcodePrefixes = models.StringArray(NormalizePrefixes(*input.PostcodePrefixes))
	} else {
		merged.PostcodePrefixes = models.StringArray(NormalizePrefixes(base.PostcodePrefixes))
	}
	if input.CenterLat != nil {
		merged.CenterLat = floatPtr(*input.CenterLat)
	}
	if input.CenterLng != nil {
		merged.CenterLng = floatPtr(*input.CenterLng)
	}
	if input.RadiusMeters != nil {
		merged.RadiusMeters = floatPtr(*input.RadiusMeters)
	}
	if input.IsActive != nil {
		merged.IsActive = *input.IsActive
	}
	return merged
}

// ValidateZone 校验配送区域结构约束
func ValidateZone(zone *models.DeliveryZone) error {
	if zone == nil {
		return ErrZoneInvalid
	}
	if strings.TrimSpace(zone.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrZoneInvalid)
	}
	switch zone.Kind {
	case constants.ZoneKindPrefix:
		if NormalizeCity(zone.City) == "" && len(NormalizePrefixes(zone.PostcodePrefixes)) == 0 {
			return fmt.Errorf("%w: prefix zone needs a city or at least one postcode prefix", ErrZoneInvalid)
		}
	case constants.ZoneKindCircle:
		if zone.CenterLat == nil || zone.CenterLng == nil || zone.RadiusMeters == nil {
			return fmt.Errorf("%w: circle zone needs center_lat, center_lng and radius_meters", ErrZoneInvalid)
		}
		lat, lng, radius := *zone.CenterLat, *zone.CenterLng, *zone.RadiusMeters
		if math.IsNaN(lat) || lat < -90 || lat > 90 {
			return fmt.Errorf("%w: center_lat out of range", ErrZoneInvalid)
		}
		if math.IsNaN(lng) || lng < -180 || lng > 180 {
			return fmt.Errorf("%w: center_lng out of range", ErrZoneInvalid)
		}
		if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
			return fmt.Errorf("%w: radius_meters must be positive", ErrZoneInvalid)
		}
	default:
		return fmt.Errorf("%w: kind must be PREFIX or CIRCLE", ErrZoneInvalid)
	}
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}
