package geocode

import (
	"context"
	"errors"
	"strings"

	"github.com/chowline/internal/config"
)

// 地理编码错误
var (
	ErrUnavailable = errors.New("geocoder unavailable")
	ErrBusy        = errors.New("geocoder busy")
	ErrNotFound    = errors.New("no geocoding result")
)

// Place 地理编码结果
type Place struct {
	DisplayName string   `json:"display_name"`
	Line1       string   `json:"line1"`
	City        string   `json:"city"`
	Postcode    string   `json:"postcode"`
	State       string   `json:"state"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

// Provider 地理编码服务
type Provider interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (*Place, error)
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}

// Limiter 调用频率限制
type Limiter interface {
	Wait(ctx context.Context) error
}

// New 按配置创建地理编码服务
func New(cfg config.GeocodeConfig, limiter Limiter) Provider {
	var provider Provider
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "nominatim":
		provider = NewNominatim(cfg)
	default:
		provider = disabledProvider{}
	}
	if limiter == nil {
		return provider
	}
	return NewLimited(provider, limiter)
}

type disabledProvider struct{}

func (disabledProvider) ReverseGeocode(context.Context, float64, float64) (*Place, error) {
	return nil, ErrUnavailable
}

func (disabledProvider) Search(context.Context, string, int) ([]Place, error) {
	return nil, ErrUnavailable
}
