package repository

import (
	"github.com/chowline/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 订单地址数据访问接口
type AddressRepository interface {
	Create(address *models.Address, withGeo bool) error
	WithTx(tx *gorm.DB) AddressRepository
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAddressRepository) WithTx(tx *gorm.DB) AddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// Create 写入地址；withGeo 为 false 时不写经纬度列
func (r *GormAddressRepository) Create(address *models.Address, withGeo bool) error {
	if withGeo {
		return r.db.Create(address).Error
	}
	return r.db.Omit("Latitude", "Longitude").Create(address).Error
}
