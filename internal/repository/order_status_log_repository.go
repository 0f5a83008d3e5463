package repository

import (
	"github.com/chowline/internal/models"

	"gorm.io/gorm"
)

// OrderStatusLogRepository 订单状态记录数据访问接口
type OrderStatusLogRepository interface {
	Create(log *models.OrderStatusLog) error
	ListByOrder(orderID uint) ([]models.OrderStatusLog, error)
}

// GormOrderStatusLogRepository GORM 实现
type GormOrderStatusLogRepository struct {
	db *gorm.DB
}

// NewOrderStatusLogRepository 创建订单状态记录仓库
func NewOrderStatusLogRepository(db *gorm.DB) *GormOrderStatusLogRepository {
	return &GormOrderStatusLogRepository{db: db}
}

// Create 写入状态记录
func (r *GormOrderStatusLogRepository) Create(log *models.OrderStatusLog) error {
	return r.db.Create(log).Error
}

// ListByOrder 按时间顺序列出订单的状态记录
func (r *GormOrderStatusLogRepository) ListByOrder(orderID uint) ([]models.OrderStatusLog, error) {
	var logs []models.OrderStatusLog
	if err := r.db.Where("order_id = ?", orderID).Order("created_at ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
