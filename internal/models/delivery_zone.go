package models

import (
	"time"
)

// DeliveryZone 配送区域表
type DeliveryZone struct {
	ID               uint        `gorm:"primarykey" json:"id"`                              // 主键
	Name             string      `gorm:"type:varchar(120);not null" json:"name"`            // 区域名称
	Kind             string      `gorm:"type:varchar(16);not null;index" json:"kind"`       // 区域类型 PREFIX/CIRCLE
	City             string      `gorm:"type:varchar(120);not null;default:''" json:"city"` // 城市（可为空）
	PostcodePrefixes StringArray `gorm:"type:json" json:"postcode_prefixes"`                // 邮编前缀（已规范化去重）
	CenterLat        *float64    `json:"center_lat"`                                        // 圆心纬度
	CenterLng        *float64    `json:"center_lng"`                                        // 圆心经度
	RadiusMeters     *float64    `json:"radius_meters"`                                     // 半径（米）
	IsActive         bool        `gorm:"not null;index" json:"is_active"`                   // 是否启用
	CreatedAt        time.Time   `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt        time.Time   `json:"updated_at"`                                        // 更新时间
}

// TableName 指定表名
func (DeliveryZone) TableName() string {
	return "delivery_zones"
}
