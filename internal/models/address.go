package models

import "time"

// Address 订单配送地址表（每个订单独立一行，创建后不再修改）
type Address struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                      // 主键
	Line1        string    `gorm:"type:varchar(255);not null" json:"line1"`                   // 地址行 1
	Line2        string    `gorm:"type:varchar(255);not null;default:''" json:"line2"`        // 地址行 2
	City         string    `gorm:"type:varchar(120);not null" json:"city"`                    // 城市
	Postcode     string    `gorm:"type:varchar(32);not null;index" json:"postcode"`           // 邮编
	Instructions string    `gorm:"type:varchar(500);not null;default:''" json:"instructions"` // 配送备注
	Latitude     *float64  `json:"latitude,omitempty"`                                        // 纬度
	Longitude    *float64  `json:"longitude,omitempty"`                                       // 经度
	CreatedAt    time.Time `json:"created_at"`                                                // 创建时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
