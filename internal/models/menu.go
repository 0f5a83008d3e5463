package models

import (
	"time"
)

// MenuCategory 菜单分类表
type MenuCategory struct {
	ID        uint      `gorm:"primarykey" json:"id"`                   // 主键
	Name      string    `gorm:"type:varchar(120);not null" json:"name"` // 分类名称
	SortOrder int       `gorm:"default:0;index" json:"sort_order"`      // 排序权重
	IsActive  bool      `gorm:"not null;index" json:"is_active"`        // 是否上架
	CreatedAt time.Time `gorm:"index" json:"created_at"`                // 创建时间

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"` // 分类下菜品
}

// TableName 指定表名
func (MenuCategory) TableName() string {
	return "menu_categories"
}

// MenuItem 菜品表
type MenuItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                      // 主键
	CategoryID  uint      `gorm:"index;not null" json:"category_id"`                         // 分类ID
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`                    // 菜品名称
	Description string    `gorm:"type:varchar(1000);not null;default:''" json:"description"` // 菜品描述
	PriceCents  int64     `gorm:"not null" json:"price_cents"`                               // 单价（分）
	IsActive    bool      `gorm:"not null;index" json:"is_active"`                           // 是否上架
	SortOrder   int       `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                                // 更新时间

	AddOns []AddOn `gorm:"-" json:"add_ons,omitempty"` // 可选加料（查询时填充）
}

// TableName 指定表名
func (MenuItem) TableName() string {
	return "menu_items"
}

// AddOn 加料表，MenuItemID/CategoryID 都为空表示全局可用
type AddOn struct {
	ID         uint      `gorm:"primarykey" json:"id"`                   // 主键
	Name       string    `gorm:"type:varchar(200);not null" json:"name"` // 加料名称
	PriceCents int64     `gorm:"not null" json:"price_cents"`            // 价格（分）
	MenuItemID *uint     `gorm:"index" json:"menu_item_id,omitempty"`    // 适用菜品
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`     // 适用分类
	IsActive   bool      `gorm:"not null;index" json:"is_active"`        // 是否启用
	CreatedAt  time.Time `json:"created_at"`                             // 创建时间
}

// TableName 指定表名
func (AddOn) TableName() string {
	return "add_ons"
}

// AppliesTo 判断加料是否适用于指定菜品
func (a AddOn) AppliesTo(item MenuItem) bool {
	if a.MenuItemID == nil && a.CategoryID == nil {
		return true
	}
	if a.MenuItemID != nil && *a.MenuItemID == item.ID {
		return true
	}
	if a.CategoryID != nil && *a.CategoryID == item.CategoryID {
		return true
	}
	return false
}
