package service

import (
	"strings"
	"time"

	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/logger"
	"github.com/chowline/internal/models"
	"github.com/chowline/internal/queue"
)

// IsKnownOrderStatus 判断是否为合法订单状态
func IsKnownOrderStatus(status string) bool {
	for _, known := range constants.OrderStatuses {
		if status == known {
			return true
		}
	}
	return false
}

// UpdateOrderStatus 管理端更新订单状态
// 不限制状态流转方向，任意已知状态都可以直接设置
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string, operator string) (*models.Order, error) {
	target := strings.ToUpper(strings.TrimSpace(targetStatus))
	if !IsKnownOrderStatus(target) {
		return nil, ErrInvalidOrderStatus
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	now := time.Now()
	if err := s.orderRepo.UpdateStatus(order.ID, target, map[string]interface{}{"updated_at": now}); err != nil {
		logger.Errorw("order_status_update_failed", "order_id", order.ID, "to_status", target, "error", err)
		return nil, ErrOrderUpdateFailed
	}
	payload := queue.OrderStatusChangedPayload{
		OrderID:    order.ID,
		FromStatus: order.Status,
		ToStatus:   target,
		Operator:   strings.TrimSpace(operator),
		ChangedAt:  now.Unix(),
	}
	s.dispatchStatusChange(payload)

	order.Status = target
	order.UpdatedAt = now
	return order, nil
}

// dispatchStatusChange 队列可用时异步写状态记录，否则同步写入
func (s *OrderService) dispatchStatusChange(payload queue.OrderStatusChangedPayload) {
	if s.queueClient != nil && s.queueClient.Enabled() {
		err := s.queueClient.EnqueueOrderStatusChanged(payload)
		if err == nil {
			return
		}
		logger.Warnw("order_status_changed_enqueue_failed", "order_id", payload.OrderID, "error", err)
	}
	if err := s.RecordStatusChange(payload); err != nil {
		logger.Warnw("order_status_log_write_failed", "order_id", payload.OrderID, "error", err)
	}
}

// RecordStatusChange 写入订单状态变更记录
func (s *OrderService) RecordStatusChange(payload queue.OrderStatusChangedPayload) error {
	entry := &models.OrderStatusLog{
		OrderID:    payload.OrderID,
		FromStatus: payload.FromStatus,
		ToStatus:   payload.ToStatus,
		Operator:   payload.Operator,
	}
	if payload.ChangedAt > 0 {
		entry.CreatedAt = time.Unix(payload.ChangedAt, 0)
	}
	return s.statusLogRepo.Create(entry)
}
