package models

import (
	"time"
)

// Order 订单表
type Order struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                               // 主键
	OrderNo          string    `gorm:"uniqueIndex;not null" json:"order_no"`                               // 订单编号
	UserID           *uint     `gorm:"index" json:"user_id,omitempty"`                                     // 用户ID（游客订单为空）
	Status           string    `gorm:"type:varchar(32);index;not null" json:"status"`                      // 订单状态
	PaymentMethod    string    `gorm:"type:varchar(32);not null" json:"payment_method"`                    // 支付方式
	FulfillmentType  string    `gorm:"type:varchar(16);index;not null" json:"fulfillment_type"`            // 履约方式
	OrderType        string    `gorm:"type:varchar(16);index;not null;default:'NORMAL'" json:"order_type"` // 订单类型
	Currency         string    `gorm:"type:varchar(8);not null" json:"currency"`                           // 币种
	SubtotalCents    int64     `gorm:"not null;default:0" json:"subtotal_cents"`                           // 商品小计（分）
	DeliveryFeeCents int64     `gorm:"not null;default:0" json:"delivery_fee_cents"`                       // 配送费（分）
	TotalCents       int64     `gorm:"not null;default:0" json:"total_cents"`                              // 应付总额（分）
	CustomerName     string    `gorm:"type:varchar(120);not null;default:''" json:"customer_name"`         // 联系人快照
	CustomerEmail    string    `gorm:"type:varchar(255);not null;default:''" json:"customer_email"`        // 联系邮箱快照
	CustomerPhone    string    `gorm:"type:varchar(64);not null;default:''" json:"customer_phone"`         // 联系电话快照
	AddressID        *uint     `gorm:"index" json:"address_id,omitempty"`                                  // 配送地址ID
	Notes            string    `gorm:"type:varchar(1000);not null;default:''" json:"notes"`                // 订单备注
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                                            // 创建时间
	UpdatedAt        time.Time `gorm:"index" json:"updated_at"`                                            // 更新时间

	Address *Address    `gorm:"foreignKey:AddressID" json:"address,omitempty"` // 配送地址
	Lines   []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`     // 订单行
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
