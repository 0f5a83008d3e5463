package repository

import (
	"github.com/chowline/internal/models"

	"gorm.io/gorm"
)

// MenuRepository 菜单数据访问接口
type MenuRepository interface {
	ListActiveCategories() ([]models.MenuCategory, error)
	ListActiveAddOns() ([]models.AddOn, error)
	ListItemsByIDs(ids []uint, onlyActive bool) ([]models.MenuItem, error)
	ListAddOnsByIDs(ids []uint, onlyActive bool) ([]models.AddOn, error)
	GetItemByID(id uint) (*models.MenuItem, error)
	UpdateItemPrice(id uint, priceCents int64) error
}

// GormMenuRepository GORM 实现
type GormMenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository 创建菜单仓库
func NewMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// ListActiveCategories 获取上架分类及其上架菜品
func (r *GormMenuRepository) ListActiveCategories() ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	err := r.db.Model(&models.MenuCategory{}).
		Where("is_active = ?", true).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order DESC, id ASC")
		}).
		Order("sort_order DESC, id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// ListActiveAddOns 获取全部启用的加料
func (r *GormMenuRepository) ListActiveAddOns() ([]models.AddOn, error) {
	var addOns []models.AddOn
	if err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&addOns).Error; err != nil {
		return nil, err
	}
	return addOns, nil
}

// ListItemsByIDs 批量获取菜品
func (r *GormMenuRepository) ListItemsByIDs(ids []uint, onlyActive bool) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return []models.MenuItem{}, nil
	}
	var items []models.MenuItem
	query := r.db.Where("id IN ?", ids)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListAddOnsByIDs 批量获取加料
func (r *GormMenuRepository) ListAddOnsByIDs(ids []uint, onlyActive bool) ([]models.AddOn, error) {
	if len(ids) == 0 {
		return []models.AddOn{}, nil
	}
	var addOns []models.AddOn
	query := r.db.Where("id IN ?", ids)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&addOns).Error; err != nil {
		return nil, err
	}
	return addOns, nil
}

// GetItemByID 根据 ID 获取菜品
func (r *GormMenuRepository) GetItemByID(id uint) (*models.MenuItem, error) {
	items, err := r.ListItemsByIDs([]uint{id}, false)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// UpdateItemPrice 更新菜品价格
func (r *GormMenuRepository) UpdateItemPrice(id uint, priceCents int64) error {
	return r.db.Model(&models.MenuItem{}).Where("id = ?", id).Update("price_cents", priceCents).Error
}
