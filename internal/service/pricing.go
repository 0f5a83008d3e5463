package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/models"
	"github.com/chowline/internal/repository"
)

// OrderItemInput 下单菜品输入
type OrderItemInput struct {
	MenuItemID uint     `json:"menu_item_id"`
	Quantity   int      `json:"quantity"`
	Removals   []string `json:"removals"`
	AddOnIDs   []uint   `json:"add_on_ids"`
}

// PricedOrder 计价结果
type PricedOrder struct {
	Lines            []models.OrderLine
	SubtotalCents    int64
	DeliveryFeeCents int64
	TotalCents       int64
}

// catalogSnapshot 一次下单涉及的菜品与加料
type catalogSnapshot struct {
	items  map[uint]models.MenuItem
	addOns map[uint]models.AddOn
}

// loadCatalog 批量读取菜品与加料，任一 ID 无法解析时返回校验错误
func loadCatalog(menuRepo repository.MenuRepository, inputs []OrderItemInput) (*catalogSnapshot, error) {
	itemIDs := make([]uint, 0, len(inputs))
	addOnIDs := make([]uint, 0)
	for _, input := range inputs {
		itemIDs = append(itemIDs, input.MenuItemID)
		addOnIDs = append(addOnIDs, input.AddOnIDs...)
	}
	itemIDs = uniqueIDs(itemIDs)
	addOnIDs = uniqueIDs(addOnIDs)

	items, err := menuRepo.ListItemsByIDs(itemIDs, true)
	if err != nil {
		return nil, err
	}
	snapshot := &catalogSnapshot{
		items:  make(map[uint]models.MenuItem, len(items)),
		addOns: make(map[uint]models.AddOn),
	}
	for _, item := range items {
		snapshot.items[item.ID] = item
	}
	if len(snapshot.items) != len(itemIDs) {
		return nil, ErrInvalidItemOrAddOn
	}

	if len(addOnIDs) > 0 {
		addOns, err := menuRepo.ListAddOnsByIDs(addOnIDs, true)
		if err != nil {
			return nil, err
		}
		for _, addOn := range addOns {
			snapshot.addOns[addOn.ID] = addOn
		}
		if len(snapshot.addOns) != len(addOnIDs) {
			return nil, ErrInvalidItemOrAddOn
		}
	}
	return snapshot, nil
}

// PriceLines 根据菜品快照计算订单金额并生成订单行快照
func PriceLines(catalog *catalogSnapshot, inputs []OrderItemInput, fulfillmentType string, deliveryFeeCents int64) (*PricedOrder, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyCart
	}
	result := &PricedOrder{
		Lines: make([]models.OrderLine, 0, len(inputs)),
	}
	for _, input := range inputs {
		if input.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		item, ok := catalog.items[input.MenuItemID]
		if !ok {
			return nil, ErrInvalidItemOrAddOn
		}

		unitCents := item.PriceCents
		lineAddOns := make([]models.LineAddOn, 0, len(input.AddOnIDs))
		for _, addOnID := range input.AddOnIDs {
			addOn, ok := catalog.addOns[addOnID]
			if !ok {
				return nil, ErrInvalidItemOrAddOn
			}
			if !addOn.AppliesTo(item) {
				return nil, fmt.Errorf("%w: %s on %s", ErrAddOnNotApplicable, addOn.Name, item.Name)
			}
			sum, ok := addCents(unitCents, addOn.PriceCents)
			if !ok {
				return nil, ErrPriceOverflow
			}
			unitCents = sum
			lineAddOns = append(lineAddOns, models.LineAddOn{
				AddOnID:    addOn.ID,
				Name:       addOn.Name,
				PriceCents: addOn.PriceCents,
			})
		}

		lineTotal, ok := mulCents(unitCents, int64(input.Quantity))
		if !ok {
			return nil, ErrPriceOverflow
		}
		subtotal, ok := addCents(result.SubtotalCents, lineTotal)
		if !ok {
			return nil, ErrPriceOverflow
		}
		result.SubtotalCents = subtotal
		result.Lines = append(result.Lines, models.OrderLine{
			MenuItemID:     item.ID,
			Name:           item.Name,
			Description:    item.Description,
			BasePriceCents: item.PriceCents,
			Quantity:       input.Quantity,
			Removals:       models.StringArray(normalizeRemovals(input.Removals)),
			LineTotalCents: lineTotal,
			AddOns:         lineAddOns,
		})
	}

	if fulfillmentType == constants.FulfillmentTypeDelivery {
		result.DeliveryFeeCents = deliveryFeeCents
	}
	total, ok := addCents(result.SubtotalCents, result.DeliveryFeeCents)
	if !ok {
		return nil, ErrPriceOverflow
	}
	result.TotalCents = total
	return result, nil
}

func addCents(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func mulCents(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return product, true
}

func normalizeRemovals(raw []string) []string {
	result := make([]string, 0, len(raw))
	for _, item := range raw {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		result = append(result, trimmed)
	}
	return result
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
