package service

import (
	"github.com/chowline/internal/models"
	"github.com/chowline/internal/repository"
)

// GetOrder 获取订单详情；用户订单仅对下单用户可见，游客订单可凭 ID 查询
func (s *OrderService) GetOrder(id uint, viewerUserID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != nil && *order.UserID != viewerUserID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderForAdmin 管理端获取订单详情
func (s *OrderService) GetOrderForAdmin(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return []models.Order{}, 0, nil
	}
	return s.orderRepo.ListByUser(filter)
}

// ListOrdersForAdmin 管理端订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// ListStatusLogs 订单状态变更记录
func (s *OrderService) ListStatusLogs(orderID uint) ([]models.OrderStatusLog, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.statusLogRepo.ListByOrder(orderID)
}
