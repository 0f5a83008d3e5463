package repository

import (
	"strings"

	"github.com/chowline/internal/models"

	"gorm.io/gorm"
)

// ZoneRepository 配送区域数据访问接口
type ZoneRepository interface {
	List(filter ZoneListFilter) ([]models.DeliveryZone, error)
	GetByID(id uint) (*models.DeliveryZone, error)
	Create(zone *models.DeliveryZone) error
	Update(zone *models.DeliveryZone) error
	Delete(id uint) (int64, error)
	CountActive() (int64, error)
	WithTx(tx *gorm.DB) ZoneRepository
}

// GormZoneRepository GORM 实现
type GormZoneRepository struct {
	db *gorm.DB
}

// NewZoneRepository 创建配送区域仓库
func NewZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// WithTx 绑定事务
func (r *GormZoneRepository) WithTx(tx *gorm.DB) ZoneRepository {
	if tx == nil {
		return r
	}
	return &GormZoneRepository{db: tx}
}

// List 按创建时间升序返回区域，匹配顺序依赖该排序
func (r *GormZoneRepository) List(filter ZoneListFilter) ([]models.DeliveryZone, error) {
	var zones []models.DeliveryZone
	query := r.db.Model(&models.DeliveryZone{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if kind := strings.ToUpper(strings.TrimSpace(filter.Kind)); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Order("created_at ASC, id ASC").Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// GetByID 根据 ID 获取区域
func (r *GormZoneRepository) GetByID(id uint) (*models.DeliveryZone, error) {
	return firstOrNil[models.DeliveryZone](r.db, id)
}

// Create 创建区域
func (r *GormZoneRepository) Create(zone *models.DeliveryZone) error {
	return r.db.Create(zone).Error
}

// Update 更新区域（整行保存，空值字段同样写入）
func (r *GormZoneRepository) Update(zone *models.DeliveryZone) error {
	return r.db.Save(zone).Error
}

// Delete 删除区域，返回受影响行数
func (r *GormZoneRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&models.DeliveryZone{}, id)
	return result.RowsAffected, result.Error
}

// CountActive 统计启用中的区域
func (r *GormZoneRepository) CountActive() (int64, error) {
	var total int64
	if err := r.db.Model(&models.DeliveryZone{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
