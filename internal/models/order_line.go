package models

import (
	"time"
)

// OrderLine 订单行快照表
type OrderLine struct {
	ID             uint        `gorm:"primarykey" json:"id"`                                      // 主键
	OrderID        uint        `gorm:"index;not null" json:"order_id"`                            // 订单ID
	MenuItemID     uint        `gorm:"index;not null" json:"menu_item_id"`                        // 菜品ID
	Name           string      `gorm:"type:varchar(200);not null" json:"name"`                    // 菜品名称快照
	Description    string      `gorm:"type:varchar(1000);not null;default:''" json:"description"` // 菜品描述快照
	BasePriceCents int64       `gorm:"not null" json:"base_price_cents"`                          // 菜品单价快照（分）
	Quantity       int         `gorm:"not null" json:"quantity"`                                  // 数量
	Removals       StringArray `gorm:"type:json" json:"removals"`                                 // 忌口/去除项
	LineTotalCents int64       `gorm:"not null" json:"line_total_cents"`                          // 行小计（分）
	CreatedAt      time.Time   `json:"created_at"`                                                // 创建时间

	AddOns []LineAddOn `gorm:"foreignKey:OrderLineID" json:"add_ons"` // 加料快照
}

// TableName 指定表名
func (OrderLine) TableName() string {
	return "order_lines"
}

// LineAddOn 订单行加料快照表
type LineAddOn struct {
	ID          uint   `gorm:"primarykey" json:"id"`                   // 主键
	OrderLineID uint   `gorm:"index;not null" json:"order_line_id"`    // 订单行ID
	AddOnID     uint   `gorm:"index;not null" json:"add_on_id"`        // 加料ID
	Name        string `gorm:"type:varchar(200);not null" json:"name"` // 加料名称快照
	PriceCents  int64  `gorm:"not null" json:"price_cents"`            // 加料价格快照（分）
}

// TableName 指定表名
func (LineAddOn) TableName() string {
	return "order_line_add_ons"
}
