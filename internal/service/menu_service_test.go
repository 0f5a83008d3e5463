package service

import (
	"errors"
	"testing"
)

func TestGetMenuAttachesApplicableAddOns(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)

	categories, err := fx.menu.GetMenu()
	if err != nil {
		t.Fatalf("get menu failed: %v", err)
	}
	if len(categories) != 1 || len(categories[0].Items) != 2 {
		t.Fatalf("unexpected menu shape: %+v", categories)
	}
	for _, item := range categories[0].Items {
		names := map[string]bool{}
		for _, addOn := range item.AddOns {
			names[addOn.Name] = true
		}
		switch item.ID {
		case menu.burger.ID:
			if !names["Extra Cheese"] || !names["Bacon"] {
				t.Fatalf("burger add-ons unexpected: %v", names)
			}
		case menu.fries.ID:
			if !names["Extra Cheese"] || names["Bacon"] {
				t.Fatalf("fries add-ons unexpected: %v", names)
			}
		}
	}
}

func TestUpdateItemPrice(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)

	item, err := fx.menu.UpdateItemPrice(menu.fries.ID, "2.99")
	if err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	if item.PriceCents != 299 {
		t.Fatalf("price want 299 got %d", item.PriceCents)
	}
	if _, err := fx.menu.UpdateItemPrice(menu.fries.ID, "-1"); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if _, err := fx.menu.UpdateItemPrice(9999, "1.00"); !errors.Is(err, ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
}
