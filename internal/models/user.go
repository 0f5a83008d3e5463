package models

import (
	"time"

	"gorm.io/gorm"
)

// User 顾客表
type User struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                     // 主键
	Email               string         `gorm:"uniqueIndex;not null" json:"email"`                        // 邮箱
	PasswordHash        string         `gorm:"not null" json:"-"`                                        // 密码哈希（不返回给前端）
	DisplayName         string         `gorm:"default:''" json:"display_name"`                           // 昵称
	Phone               string         `gorm:"type:varchar(64);default:''" json:"phone"`                 // 联系电话
	Status              string         `gorm:"default:'active'" json:"status"`                           // 账号状态
	AddressLine1        string         `gorm:"type:varchar(255);default:''" json:"address_line1"`        // 常用地址行 1
	AddressLine2        string         `gorm:"type:varchar(255);default:''" json:"address_line2"`        // 常用地址行 2
	AddressCity         string         `gorm:"type:varchar(120);default:''" json:"address_city"`         // 常用地址城市
	AddressPostcode     string         `gorm:"type:varchar(32);default:''" json:"address_postcode"`      // 常用地址邮编
	AddressInstructions string         `gorm:"type:varchar(500);default:''" json:"address_instructions"` // 常用配送备注
	AddressLat          *float64       `json:"address_lat"`                                              // 常用地址纬度
	AddressLng          *float64       `json:"address_lng"`                                              // 常用地址经度
	LastLoginAt         *time.Time     `json:"last_login_at"`                                            // 最后登录时间
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt           time.Time      `gorm:"index" json:"updated_at"`                                  // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// HasSavedAddress 是否保存了常用地址
func (u *User) HasSavedAddress() bool {
	if u == nil {
		return false
	}
	return u.AddressLine1 != "" || u.AddressCity != "" || u.AddressPostcode != ""
}
