package models

import "time"

// OrderStatusLog 订单状态变更记录表
type OrderStatusLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                  // 主键
	OrderID    uint      `gorm:"index;not null" json:"order_id"`                        // 订单ID
	FromStatus string    `gorm:"type:varchar(32);not null" json:"from_status"`          // 变更前状态
	ToStatus   string    `gorm:"type:varchar(32);not null" json:"to_status"`            // 变更后状态
	Operator   string    `gorm:"type:varchar(120);not null;default:''" json:"operator"` // 操作人
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                               // 记录时间
}

// TableName 指定表名
func (OrderStatusLog) TableName() string {
	return "order_status_logs"
}
