package cache

import (
	"context"
	"time"

	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/models"
)

const activeZonesTTL = 5 * time.Minute

// GetActiveZones 读取启用配送区域缓存，未命中返回 false
func GetActiveZones(ctx context.Context) ([]models.DeliveryZone, bool, error) {
	var zones []models.DeliveryZone
	hit, err := GetJSON(ctx, constants.CacheKeyActiveZones, &zones)
	if err != nil || !hit {
		return nil, false, err
	}
	return zones, true, nil
}

// SetActiveZones 写入启用配送区域缓存
func SetActiveZones(ctx context.Context, zones []models.DeliveryZone) error {
	if zones == nil {
		zones = []models.DeliveryZone{}
	}
	return SetJSON(ctx, constants.CacheKeyActiveZones, zones, activeZonesTTL)
}

// InvalidateActiveZones 清除启用配送区域缓存
func InvalidateActiveZones(ctx context.Context) error {
	return Del(ctx, constants.CacheKeyActiveZones)
}
