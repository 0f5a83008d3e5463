package worker

import (
	"context"
	"strings"

	"github.com/chowline/internal/logger"
	"github.com/chowline/internal/provider"
	"github.com/chowline/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusChanged, c.handleOrderStatusChanged)
}

func (c *Consumer) handleOrderStatusChanged(_ context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_order_status_changed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderStatusChangedPayload(task)
	if err != nil {
		logger.Warnw("worker_order_status_changed_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || strings.TrimSpace(payload.ToStatus) == "" {
		logger.Debugw("worker_order_status_changed_skip_invalid_payload", "order_id", payload.OrderID, "to_status", payload.ToStatus)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_status_changed_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderService.RecordStatusChange(payload); err != nil {
		logger.Warnw("worker_order_status_changed_record_failed", "order_id", payload.OrderID, "to_status", payload.ToStatus, "error", err)
		return err
	}
	return nil
}
