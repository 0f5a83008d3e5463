package geocode

import (
	"context"
	"fmt"
)

// Limited 在每次调用前等待限流槽位
type Limited struct {
	next    Provider
	limiter Limiter
}

// NewLimited 包装地理编码服务
func NewLimited(next Provider, limiter Limiter) *Limited {
	return &Limited{next: next, limiter: limiter}
}

// ReverseGeocode 坐标反查地址
func (l *Limited) ReverseGeocode(ctx context.Context, lat, lng float64) (*Place, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.ReverseGeocode(ctx, lat, lng)
}

// Search 地址搜索
func (l *Limited) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Search(ctx, query, limit)
}

func (l *Limited) wait(ctx context.Context) error {
	if _, disabled := l.next.(disabledProvider); disabled {
		return nil
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrBusy, err)
	}
	return nil
}
