package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowCounter 固定窗口计数器，返回窗口内累计次数与剩余时长
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

var windowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

type redisWindowCounter struct {
	client *redis.Client
}

// NewWindowCounter 返回基于 Redis 的计数器，Redis 未启用时返回 nil
func NewWindowCounter() WindowCounter {
	if !Enabled() {
		return nil
	}
	return &redisWindowCounter{client: redisClient}
}

// Hit 计数一次，首次命中时设置窗口过期
func (c *redisWindowCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	seconds := int64(window / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	values, err := windowScript.Run(ctx, c.client, []string{buildKey(key)}, seconds).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(values) < 2 {
		return 0, 0, fmt.Errorf("unexpected rate window reply: %v", values)
	}
	return values[0], time.Duration(values[1]) * time.Second, nil
}
