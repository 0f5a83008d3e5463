package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/chowline/internal/geocode"
	"github.com/chowline/internal/logger"
)

// GeocodeService 地址反查与搜索，仅用于前端预填地址，不参与配送资格判断
type GeocodeService struct {
	provider geocode.Provider
}

// NewGeocodeService 创建地理编码服务
func NewGeocodeService(provider geocode.Provider) *GeocodeService {
	return &GeocodeService{provider: provider}
}

// ReverseGeocode 坐标反查地址
func (s *GeocodeService) ReverseGeocode(ctx context.Context, lat, lng float64) (*geocode.Place, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrInvalidCoordinates
	}
	if s == nil || s.provider == nil {
		return nil, ErrGeocoderUnavailable
	}
	place, err := s.provider.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return nil, mapGeocodeError(err)
	}
	return place, nil
}

// SearchAddress 地址搜索
func (s *GeocodeService) SearchAddress(ctx context.Context, query string, limit int) ([]geocode.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []geocode.Place{}, nil
	}
	if s == nil || s.provider == nil {
		return nil, ErrGeocoderUnavailable
	}
	places, err := s.provider.Search(ctx, query, limit)
	if err != nil {
		return nil, mapGeocodeError(err)
	}
	return places, nil
}

func mapGeocodeError(err error) error {
	switch {
	case errors.Is(err, geocode.ErrBusy):
		return ErrGeocoderBusy
	case errors.Is(err, geocode.ErrNotFound):
		return ErrPlaceNotFound
	default:
		logger.Warnw("geocode_request_failed", "error", err)
		return ErrGeocoderUnavailable
	}
}
