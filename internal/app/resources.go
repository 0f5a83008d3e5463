package app

import (
	"context"

	"github.com/chowline/internal/cache"
	"github.com/chowline/internal/provider"
)

// resourceService 在退出时释放 Redis 与队列客户端连接
type resourceService struct {
	container *provider.Container
}

func newResourceService(c *provider.Container) *resourceService {
	return &resourceService{container: c}
}

func (s *resourceService) Name() string {
	return "resources"
}

func (s *resourceService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (s *resourceService) Stop(context.Context) error {
	if s.container != nil && s.container.QueueClient != nil {
		if err := s.container.QueueClient.Close(); err != nil {
			return err
		}
	}
	return cache.Close()
}
