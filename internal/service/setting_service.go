package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/chowline/internal/config"
	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/models"
	"github.com/chowline/internal/repository"
)

// StoreSetting 门店配置
type StoreSetting struct {
	DeliveryFeeCents int64  `json:"delivery_fee_cents"`
	Currency         string `json:"currency"`
	StoreName        string `json:"store_name"`
}

// StoreSettingPatch 门店配置更新参数，配送费以十进制字符串输入（如 "2.50"）
type StoreSettingPatch struct {
	DeliveryFee *string `json:"delivery_fee"`
	Currency    *string `json:"currency"`
	StoreName   *string `json:"store_name"`
}

// SettingService 设置业务服务
type SettingService struct {
	repo     repository.SettingRepository
	defaults StoreSetting
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository, defaults config.StoreConfig) *SettingService {
	return &SettingService{
		repo: repo,
		defaults: StoreSetting{
			DeliveryFeeCents: defaults.DeliveryFeeCents,
			Currency:         normalizeCurrency(defaults.Currency),
			StoreName:        strings.TrimSpace(defaults.Name),
		},
	}
}

// GetStoreSetting 获取门店配置（合并默认值）
func (s *SettingService) GetStoreSetting() (StoreSetting, error) {
	result := s.defaults
	setting, err := s.repo.GetByKey(constants.SettingKeyStoreConfig)
	if err != nil {
		return result, err
	}
	if setting == nil {
		return result, nil
	}
	return mergeStoreSetting(result, setting.ValueJSON), nil
}

// UpdateStoreSetting 更新门店配置
func (s *SettingService) UpdateStoreSetting(patch StoreSettingPatch) (StoreSetting, error) {
	current, err := s.GetStoreSetting()
	if err != nil {
		return current, err
	}
	if patch.DeliveryFee != nil {
		cents, err := models.ParseCents(*patch.DeliveryFee)
		if err != nil {
			return current, fmt.Errorf("%w: %v", ErrSettingInvalid, err)
		}
		current.DeliveryFeeCents = cents
	}
	if patch.Currency != nil {
		currency := normalizeCurrency(*patch.Currency)
		if len(currency) != 3 {
			return current, fmt.Errorf("%w: currency must be a 3-letter code", ErrSettingInvalid)
		}
		current.Currency = currency
	}
	if patch.StoreName != nil {
		current.StoreName = strings.TrimSpace(*patch.StoreName)
	}

	value := models.JSON{
		constants.SettingFieldDeliveryFeeCents: current.DeliveryFeeCents,
		constants.SettingFieldCurrency:         current.Currency,
		constants.SettingFieldStoreName:        current.StoreName,
	}
	if _, err := s.repo.Upsert(constants.SettingKeyStoreConfig, value); err != nil {
		return current, err
	}
	return current, nil
}

// EnsureStoreSetting 首次启动时写入默认门店配置
func (s *SettingService) EnsureStoreSetting() error {
	setting, err := s.repo.GetByKey(constants.SettingKeyStoreConfig)
	if err != nil {
		return err
	}
	if setting != nil {
		return nil
	}
	_, err = s.repo.Upsert(constants.SettingKeyStoreConfig, models.JSON{
		constants.SettingFieldDeliveryFeeCents: s.defaults.DeliveryFeeCents,
		constants.SettingFieldCurrency:         s.defaults.Currency,
		constants.SettingFieldStoreName:        s.defaults.StoreName,
	})
	return err
}

func mergeStoreSetting(base StoreSetting, raw models.JSON) StoreSetting {
	if raw == nil {
		return base
	}
	if fee, ok := parseSettingInt(raw[constants.SettingFieldDeliveryFeeCents]); ok && fee >= 0 {
		base.DeliveryFeeCents = fee
	}
	if currency, ok := raw[constants.SettingFieldCurrency].(string); ok && strings.TrimSpace(currency) != "" {
		base.Currency = normalizeCurrency(currency)
	}
	if name, ok := raw[constants.SettingFieldStoreName].(string); ok {
		base.StoreName = strings.TrimSpace(name)
	}
	return base
}

// parseSettingInt JSON 反序列化后的数字可能是 float64、json.Number 或字符串
func parseSettingInt(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	case fmt.Stringer:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v.String()), 10, 64)
		return parsed, err == nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func normalizeCurrency(raw string) string {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	if currency == "" {
		return "GBP"
	}
	return currency
}
