package service

import (
	"fmt"

	"github.com/chowline/internal/models"
	"github.com/chowline/internal/repository"
)

// MenuService 菜单服务
type MenuService struct {
	menuRepo repository.MenuRepository
}

// NewMenuService 创建菜单服务
func NewMenuService(menuRepo repository.MenuRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// GetMenu 获取上架菜单，并为每个菜品挂载可用加料
func (s *MenuService) GetMenu() ([]models.MenuCategory, error) {
	categories, err := s.menuRepo.ListActiveCategories()
	if err != nil {
		return nil, err
	}
	addOns, err := s.menuRepo.ListActiveAddOns()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		items := categories[i].Items
		for j := range items {
			applicable := make([]models.AddOn, 0)
			for _, addOn := range addOns {
				if addOn.AppliesTo(items[j]) {
					applicable = append(applicable, addOn)
				}
			}
			items[j].AddOns = applicable
		}
	}
	return categories, nil
}

// UpdateItemPrice 管理端调整菜品价格，已有订单的快照不受影响
func (s *MenuService) UpdateItemPrice(itemID uint, price string) (*models.MenuItem, error) {
	cents, err := models.ParseCents(price)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}
	item, err := s.menuRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	if err := s.menuRepo.UpdateItemPrice(itemID, cents); err != nil {
		return nil, err
	}
	item.PriceCents = cents
	return item, nil
}
