package service

import (
	"math"
	"strings"

	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/models"
)

const earthRadiusMeters = 6371000.0

const (
	reasonOpenDelivery = "no delivery zones configured; delivery is open to all addresses"
	reasonOutsideZones = "address is outside all delivery zones"
)

// EligibilityCandidate 待校验的配送地址
type EligibilityCandidate struct {
	City      string   `json:"city"`
	Postcode  string   `json:"postcode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// MatchedZone 命中的配送区域
type MatchedZone struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// EligibilityResult 配送资格校验结果
type EligibilityResult struct {
	Deliverable bool         `json:"deliverable"`
	Reason      string       `json:"reason"`
	MatchedZone *MatchedZone `json:"matched_zone"`
}

// HaversineMeters 计算两点之间的大圆距离（米）
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// MatchZones 按给定顺序逐个判断区域，返回第一个命中的区域
// zones 需已按创建时间升序排列且仅包含启用区域
func MatchZones(zones []models.DeliveryZone, candidate EligibilityCandidate) EligibilityResult {
	if len(zones) == 0 {
		return EligibilityResult{
			Deliverable: true,
			Reason:      reasonOpenDelivery,
		}
	}

	postcode := NormalizePostcode(candidate.Postcode)
	city := NormalizeCity(candidate.City)
	for i := range zones {
		zone := &zones[i]
		if zoneMatches(zone, postcode, city, candidate.Latitude, candidate.Longitude) {
			return EligibilityResult{
				Deliverable: true,
				Reason:      "delivery available in zone " + zone.Name,
				MatchedZone: &MatchedZone{
					ID:   zone.ID,
					Name: zone.Name,
					Kind: zone.Kind,
				},
			}
		}
	}
	return EligibilityResult{
		Deliverable: false,
		Reason:      reasonOutsideZones,
	}
}

func zoneMatches(zone *models.DeliveryZone, postcode, city string, lat, lng *float64) bool {
	if zone.Kind == constants.ZoneKindCircle && withinRadius(zone, lat, lng) {
		return true
	}
	if postcode != "" {
		for _, prefix := range zone.PostcodePrefixes {
			normalized := NormalizePostcode(prefix)
			if normalized != "" && strings.HasPrefix(postcode, normalized) {
				return true
			}
		}
	}
	zoneCity := NormalizeCity(zone.City)
	return city != "" && zoneCity != "" && city == zoneCity
}

func withinRadius(zone *models.DeliveryZone, lat, lng *float64) bool {
	if lat == nil || lng == nil {
		return false
	}
	if zone.CenterLat == nil || zone.CenterLng == nil || zone.RadiusMeters == nil {
		return false
	}
	distance := HaversineMeters(*lat, *lng, *zone.CenterLat, *zone.CenterLng)
	return distance <= *zone.RadiusMeters
}
