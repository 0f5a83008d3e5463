package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chowline/internal/cache"
	"github.com/chowline/internal/logger"
	"github.com/chowline/internal/metrics"
	"github.com/chowline/internal/models"
	"github.com/chowline/internal/repository"
)

// ZoneService 配送区域服务
type ZoneService struct {
	zoneRepo repository.ZoneRepository
}

// NewZoneService 创建配送区域服务
func NewZoneService(zoneRepo repository.ZoneRepository) *ZoneService {
	return &ZoneService{zoneRepo: zoneRepo}
}

// ListActiveZones 按创建时间升序获取启用区域
func (s *ZoneService) ListActiveZones(ctx context.Context) ([]models.DeliveryZone, error) {
	if zones, hit, err := cache.GetActiveZones(ctx); err != nil {
		logger.Warnw("zone_cache_get_failed", "error", err)
	} else if hit {
		return zones, nil
	}

	zones, err := s.zoneRepo.List(repository.ZoneListFilter{OnlyActive: true})
	if err != nil {
		return nil, err
	}
	if err := cache.SetActiveZones(ctx, zones); err != nil {
		logger.Warnw("zone_cache_set_failed", "error", err)
	}
	return zones, nil
}

// ListZones 管理端获取全部区域
func (s *ZoneService) ListZones(filter repository.ZoneListFilter) ([]models.DeliveryZone, error) {
	return s.zoneRepo.List(filter)
}

// GetZone 获取单个区域
func (s *ZoneService) GetZone(id uint) (*models.DeliveryZone, error) {
	zone, err := s.zoneRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, ErrZoneNotFound
	}
	return zone, nil
}

// CheckEligibility 校验地址是否可配送
func (s *ZoneService) CheckEligibility(ctx context.Context, candidate EligibilityCandidate) (*EligibilityResult, error) {
	zones, err := s.ListActiveZones(ctx)
	if err != nil {
		return nil, err
	}
	result := MatchZones(zones, candidate)
	metrics.ObserveEligibility(result.Deliverable)
	return &result, nil
}

// CreateZone 新建配送区域
func (s *ZoneService) CreateZone(ctx context.Context, input ZoneInput) (*models.DeliveryZone, error) {
	zone := mergeZoneInput(models.DeliveryZone{IsActive: true}, input)
	if err := ValidateZone(&zone); err != nil {
		return nil, err
	}
	if err := s.zoneRepo.Create(&zone); err != nil {
		logger.Errorw("zone_create_failed", "name", zone.Name, "error", err)
		return nil, ErrZoneSaveFailed
	}
	s.invalidate(ctx)
	return &zone, nil
}

// UpdateZone 更新配送区域，未提供的字段保留原值后整体校验
func (s *ZoneService) UpdateZone(ctx context.Context, id uint, input ZoneInput) (*models.DeliveryZone, error) {
	existing, err := s.zoneRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrZoneNotFound
	}
	merged := mergeZoneInput(*existing, input)
	if err := ValidateZone(&merged); err != nil {
		return nil, err
	}
	if err := s.zoneRepo.Update(&merged); err != nil {
		logger.Errorw("zone_update_failed", "zone_id", id, "error", err)
		return nil, ErrZoneSaveFailed
	}
	s.invalidate(ctx)
	return &merged, nil
}

// DeleteZone 删除配送区域
func (s *ZoneService) DeleteZone(ctx context.Context, id uint) error {
	affected, err := s.zoneRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("delete zone %d: %w", id, err)
	}
	if affected == 0 {
		return ErrZoneNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *ZoneService) invalidate(ctx context.Context) {
	if err := cache.InvalidateActiveZones(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warnw("zone_cache_invalidate_failed", "error", err)
	}
}
