package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chowline/internal/constants"
)

// ErrSlotWaitExceeded 在上下文结束前未能获取调用槽位
var ErrSlotWaitExceeded = errors.New("call slot wait exceeded")

const slotPollInterval = 50 * time.Millisecond

// SlotLimiter 全局调用间隔限制器
// 每个 interval 内最多放行一次调用，基于 Redis SET NX PX 在多进程间共享
type SlotLimiter struct {
	key      string
	interval time.Duration
	local    *LocalSlotLimiter
}

// NewSlotLimiter 创建限制器，Redis 未启用时退化为进程内限制
func NewSlotLimiter(key string, interval time.Duration) *SlotLimiter {
	if key == "" {
		key = constants.CacheKeyGeocodeSlot
	}
	return &SlotLimiter{
		key:      key,
		interval: interval,
		local:    NewLocalSlotLimiter(interval),
	}
}

// Wait 阻塞直到获取槽位或 ctx 结束
func (l *SlotLimiter) Wait(ctx context.Context) error {
	if l.interval <= 0 {
		return nil
	}
	if !Enabled() {
		return l.local.Wait(ctx)
	}
	for {
		ok, err := redisClient.SetNX(ctx, buildKey(l.key), time.Now().UnixMilli(), l.interval).Result()
		if err != nil {
			if ctx.Err() != nil {
				return ErrSlotWaitExceeded
			}
			return err
		}
		if ok {
			return nil
		}
		wait := slotPollInterval
		if ttl, err := redisClient.PTTL(ctx, buildKey(l.key)).Result(); err == nil && ttl > 0 && ttl < wait {
			wait = ttl
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ErrSlotWaitExceeded
		case <-timer.C:
		}
	}
}

// LocalSlotLimiter 进程内调用间隔限制器
type LocalSlotLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
	now      func() time.Time
}

// NewLocalSlotLimiter 创建进程内限制器
func NewLocalSlotLimiter(interval time.Duration) *LocalSlotLimiter {
	return &LocalSlotLimiter{
		interval: interval,
		now:      time.Now,
	}
}

// Wait 预约下一个槽位并等待到达，ctx 提前结束时归还预约
func (l *LocalSlotLimiter) Wait(ctx context.Context) error {
	if l.interval <= 0 {
		return nil
	}
	l.mu.Lock()
	now := l.now()
	slot := l.next
	if slot.Before(now) {
		slot = now
	}
	l.next = slot.Add(l.interval)
	l.mu.Unlock()

	delay := slot.Sub(now)
	if delay <= 0 {
		return nil
	}
	if deadline, ok := ctx.Deadline(); ok && deadline.Before(slot) {
		l.release(slot)
		return ErrSlotWaitExceeded
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		l.release(slot)
		return ErrSlotWaitExceeded
	case <-timer.C:
		return nil
	}
}

func (l *LocalSlotLimiter) release(slot time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.next.Equal(slot.Add(l.interval)) {
		l.next = slot
	}
}
