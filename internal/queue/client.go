package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chowline/internal/config"
	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault

	statusTaskMaxRetry  = 5
	statusTaskTimeout   = 30 * time.Second
	statusTaskRetention = 24 * time.Hour
	defaultConcurrency  = 10
	shutdownTimeout     = 8 * time.Second
)

// Client 队列客户端封装，未启用时所有投递都是空操作
type Client struct {
	client *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{client: asynq.NewClient(buildRedisOpt(cfg))}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderStatusChanged 推送订单状态变更任务
// 以订单、目标状态与变更时间作为任务 ID，重复投递会被队列去重
func (c *Client) EnqueueOrderStatusChanged(payload OrderStatusChangedPayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderStatusChangedTask(payload)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(context.Background(), task,
		asynq.Queue(DefaultQueue),
		asynq.MaxRetry(statusTaskMaxRetry),
		asynq.Timeout(statusTaskTimeout),
		asynq.Retention(statusTaskRetention),
		asynq.TaskID(StatusChangeTaskID(payload)),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// StatusChangeTaskID 订单状态变更任务的去重 ID
func StatusChangeTaskID(payload OrderStatusChangedPayload) string {
	return fmt.Sprintf("order-status:%d:%s:%d", payload.OrderID, payload.ToStatus, payload.ChangedAt)
}

// BuildServerConfig 生成 worker 服务配置，日志与任务失败统一走 zap
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := defaultConcurrency
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency:     concurrency,
		Queues:          queues,
		ShutdownTimeout: shutdownTimeout,
		Logger:          logger.S(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Warnw("queue_task_failed",
				"type", task.Type(),
				"retried", retried,
				"max_retry", maxRetry,
				"error", err,
			)
		}),
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
