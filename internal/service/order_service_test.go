package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/chowline/internal/config"
	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/models"
	"github.com/chowline/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type orderServiceFixture struct {
	db       *gorm.DB
	orders   *OrderService
	zones    *ZoneService
	menu     *MenuService
	settings *SettingService
}

func setupOrderServiceTest(t *testing.T) *orderServiceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.DeliveryZone{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.AddOn{},
		&models.Address{},
		&models.Order{},
		&models.OrderLine{},
		&models.LineAddOn{},
		&models.OrderStatusLog{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	models.SetCapabilities(models.Capabilities{AddressGeoColumns: true})

	menuRepo := repository.NewMenuRepository(db)
	zoneSvc := NewZoneService(repository.NewZoneRepository(db))
	settingSvc := NewSettingService(repository.NewSettingRepository(db), config.StoreConfig{
		DeliveryFeeCents: 250,
		Currency:         "GBP",
		Name:             "Chowline Test Kitchen",
	})
	orderSvc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewAddressRepository(db),
		menuRepo,
		repository.NewUserRepository(db),
		repository.NewOrderStatusLogRepository(db),
		zoneSvc,
		settingSvc,
		nil,
	)
	return &orderServiceFixture{
		db:       db,
		orders:   orderSvc,
		zones:    zoneSvc,
		menu:     NewMenuService(menuRepo),
		settings: settingSvc,
	}
}

type seededMenu struct {
	burger models.MenuItem
	fries  models.MenuItem
	cheese models.AddOn
	bacon  models.AddOn
}

func seedOrderMenu(t *testing.T, db *gorm.DB) seededMenu {
	t.Helper()
	category := models.MenuCategory{Name: "Burgers", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	burger := models.MenuItem{CategoryID: category.ID, Name: "Classic Burger", Description: "beef patty", PriceCents: 599, IsActive: true}
	fries := models.MenuItem{CategoryID: category.ID, Name: "Fries", PriceCents: 250, IsActive: true}
	if err := db.Create(&burger).Error; err != nil {
		t.Fatalf("create burger failed: %v", err)
	}
	if err := db.Create(&fries).Error; err != nil {
		t.Fatalf("create fries failed: %v", err)
	}
	burgerID := burger.ID
	cheese := models.AddOn{Name: "Extra Cheese", PriceCents: 99, IsActive: true}
	bacon := models.AddOn{Name: "Bacon", PriceCents: 150, MenuItemID: &burgerID, IsActive: true}
	if err := db.Create(&cheese).Error; err != nil {
		t.Fatalf("create cheese failed: %v", err)
	}
	if err := db.Create(&bacon).Error; err != nil {
		t.Fatalf("create bacon failed: %v", err)
	}
	return seededMenu{burger: burger, fries: fries, cheese: cheese, bacon: bacon}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var total int64
	if err := db.Model(model).Count(&total).Error; err != nil {
		t.Fatalf("count rows failed: %v", err)
	}
	return total
}

func assertNoOrderRows(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, model := range []interface{}{&models.Order{}, &models.OrderLine{}, &models.LineAddOn{}, &models.Address{}} {
		if total := countRows(t, db, model); total != 0 {
			t.Fatalf("expected no rows in %T, got %d", model, total)
		}
	}
}

func deliveryAddress() *AddressInput {
	return &AddressInput{
		Line1:    "1 Piccadilly",
		City:     "Manchester",
		Postcode: "m1 1ae",
	}
}

func TestCreateOrderDeliveryTotals(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)

	order, err := fx.orders.CreateOrder(context.Background(), CreateOrderInput{
		PaymentMethod:   "CASH",
		FulfillmentType: "delivery",
		CustomerName:    "Sam",
		Address:         deliveryAddress(),
		Items: []OrderItemInput{
			{MenuItemID: menu.burger.ID, Quantity: 2, AddOnIDs: []uint{menu.cheese.ID}, Removals: []string{" onion ", ""}},
		},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPlaced {
		t.Fatalf("status want PLACED got %s", order.Status)
	}
	if order.OrderType != constants.OrderTypeNormal {
		t.Fatalf("order type want NORMAL got %s", order.OrderType)
	}
	if order.SubtotalCents != 1396 || order.DeliveryFeeCents != 250 || order.TotalCents != 1646 {
		t.Fatalf("unexpected totals subtotal=%d fee=%d total=%d", order.SubtotalCents, order.DeliveryFeeCents, order.TotalCents)
	}
	if len(order.Lines) != 1 {
		t.Fatalf("lines want 1 got %d", len(order.Lines))
	}
	line := order.Lines[0]
	if line.LineTotalCents != 1396 || line.BasePriceCents != 599 {
		t.Fatalf("unexpected line snapshot: %+v", line)
	}
	if len(line.AddOns) != 1 || line.AddOns[0].PriceCents != 99 || line.AddOns[0].Name != "Extra Cheese" {
		t.Fatalf("unexpected add-on snapshot: %+v", line.AddOns)
	}
	if len(line.Removals) != 1 || line.Removals[0] != "onion" {
		t.Fatalf("unexpected removals: %v", line.Removals)
	}
	if order.Address == nil || order.Address.Postcode != "M1 1AE" {
		t.Fatalf("unexpected address: %+v", order.Address)
	}
	if order.Currency != "GBP" {
		t.Fatalf("currency want GBP got %s", order.Currency)
	}
}

func TestCreateOrderPickupSkipsFeeAndAddress(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)

	order, err := fx.orders.CreateOrder(context.Background(), CreateOrderInput{
		PaymentMethod:   "cash",
		FulfillmentType: constants.FulfillmentTypePickup,
		OrderType:       "deal",
		Items: []OrderItemInput{
			{MenuItemID: menu.fries.ID, Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("create pickup order failed: %v", err)
	}
	if order.DeliveryFeeCents != 0 || order.TotalCents != 750 {
		t.Fatalf("unexpected pickup totals fee=%d total=%d", order.DeliveryFeeCents, order.TotalCents)
	}
	if order.AddressID != nil {
		t.Fatalf("pickup order should not carry an address")
	}
	if order.OrderType != constants.OrderTypeDeal {
		t.Fatalf("order type want DEAL got %s", order.OrderType)
	}
	if total := countRows(t, fx.db, &models.Address{}); total != 0 {
		t.Fatalf("pickup order should not persist address, got %d", total)
	}
}

func TestCreateOrderDeliveryAddressRequired(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)

	_, err := fx.orders.CreateOrder(context.Background(), CreateOrderInput{
		PaymentMethod:   "cash",
		FulfillmentType: constants.FulfillmentTypeDelivery,
		Items:           []OrderItemInput{{MenuItemID: menu.burger.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrDeliveryAddressRequired) {
		t.Fatalf("expected ErrDeliveryAddressRequired, got %v", err)
	}
	if err.Error() != "delivery address required" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	assertNoOrderRows(t, fx.db)
}

func TestCreateOrderUnknownMenuItem(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)

	_, err := fx.orders.CreateOrder(context.Background(), CreateOrderInput{
		PaymentMethod:   "cash",
		FulfillmentType: constants.FulfillmentTypePickup,
		Items: []OrderItemInput{
			{MenuItemID: menu.burger.ID, Quantity: 1},
			{MenuItemID: 9999, Quantity: 1},
		},
	})
	if !errors.Is(err, ErrInvalidItemOrAddOn) {
		t.Fatalf("expected ErrInvalidItemOrAddOn, got %v", err)
	}
	if err.Error() != "invalid item/add-on" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	assertNoOrderRows(t, fx.db)
}

func TestCreateOrderValidationErrors(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)

	cases := []struct {
		name  string
		input CreateOrderInput
		want  error
	}{
		{
			name:  "card payment",
			input: CreateOrderInput{PaymentMethod: "card", FulfillmentType: "PICKUP", Items: []OrderItemInput{{MenuItemID: menu.burger.ID, Quantity: 1}}},
			want:  ErrUnsupportedPaymentMethod,
		},
		{
			name:  "empty cart",
			input: CreateOrderInput{PaymentMethod: "cash", FulfillmentType: "PICKUP"},
			want:  ErrEmptyCart,
		},
		{
			name:  "unknown fulfillment",
			input: CreateOrderInput{PaymentMethod: "cash", FulfillmentType: "DRONE", Items: []OrderItemInput{{MenuItemID: menu.burger.ID, Quantity: 1}}},
			want:  ErrInvalidFulfillmentType,
		},
		{
			name:  "unknown order type",
			input: CreateOrderInput{PaymentMethod: "cash", FulfillmentType: "PICKUP", OrderType: "VIP", Items: []OrderItemInput{{MenuItemID: menu.burger.ID, Quantity: 1}}},
			want:  ErrInvalidOrderType,
		},
		{
			name:  "zero quantity",
			input: CreateOrderInput{PaymentMethod: "cash", FulfillmentType: "PICKUP", Items: []OrderItemInput{{MenuItemID: menu.burger.ID, Quantity: 0}}},
			want:  ErrInvalidQuantity,
		},
		{
			name:  "add-on for another item",
			input: CreateOrderInput{PaymentMethod: "cash", FulfillmentType: "PICKUP", Items: []OrderItemInput{{MenuItemID: menu.fries.ID, Quantity: 1, AddOnIDs: []uint{menu.bacon.ID}}}},
			want:  ErrAddOnNotApplicable,
		},
		{
			name:  "unknown add-on",
			input: CreateOrderInput{PaymentMethod: "cash", FulfillmentType: "PICKUP", Items: []OrderItemInput{{MenuItemID: menu.fries.ID, Quantity: 1, AddOnIDs: []uint{4242}}}},
			want:  ErrInvalidItemOrAddOn,
		},
		{
			name: "incomplete address",
			input: CreateOrderInput{PaymentMethod: "cash", FulfillmentType: "DELIVERY", Address: &AddressInput{Line1: "1 Piccadilly", City: "Manchester"},
				Items: []OrderItemInput{{MenuItemID: menu.burger.ID, Quantity: 1}}},
			want: ErrDeliveryAddressIncomplete,
		},
	}
	for _, tc := range cases {
		_, err := fx.orders.CreateOrder(context.Background(), tc.input)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	assertNoOrderRows(t, fx.db)
}

func TestCreateOrderRejectedOutsideZones(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)
	if _, err := fx.zones.CreateZone(context.Background(), ZoneInput{
		Name:             strPtr("Manchester"),
		Kind:             strPtr(constants.ZoneKindPrefix),
		City:             strPtr("Manchester"),
		PostcodePrefixes: &[]string{"M"},
	}); err != nil {
		t.Fatalf("create zone failed: %v", err)
	}

	_, err := fx.orders.CreateOrder(context.Background(), CreateOrderInput{
		PaymentMethod:   "cash",
		FulfillmentType: constants.FulfillmentTypeDelivery,
		Address:         &AddressInput{Line1: "10 Downing St", City: "London", Postcode: "SW1A 2AA"},
		Items:           []OrderItemInput{{MenuItemID: menu.burger.ID, Quantity: 1}},
	})
	var rejected *ZoneRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected ZoneRejectedError, got %v", err)
	}
	if rejected.Reason != reasonOutsideZones {
		t.Fatalf("unexpected reason: %s", rejected.Reason)
	}
	assertNoOrderRows(t, fx.db)

	order, err := fx.orders.CreateOrder(context.Background(), CreateOrderInput{
		PaymentMethod:   "cash",
		FulfillmentType: constants.FulfillmentTypeDelivery,
		Address:         deliveryAddress(),
		Items:           []OrderItemInput{{MenuItemID: menu.burger.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order inside zone failed: %v", err)
	}
	if order.ID == 0 {
		t.Fatalf("expected persisted order")
	}
}

func TestCreateOrderUsesSavedUserAddress(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)
	user := models.User{
		Email:           "saved@example.com",
		PasswordHash:    "hash",
		DisplayName:     "Saved User",
		Phone:           "07000000000",
		Status:          constants.UserStatusActive,
		AddressLine1:    "5 Deansgate",
		AddressCity:     "Manchester",
		AddressPostcode: "M3 2BW",
	}
	if err := fx.db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	order, err := fx.orders.CreateOrder(context.Background(), CreateOrderInput{
		UserID:          user.ID,
		PaymentMethod:   "cash",
		FulfillmentType: constants.FulfillmentTypeDelivery,
		Items:           []OrderItemInput{{MenuItemID: menu.fries.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Address == nil || order.Address.Line1 != "5 Deansgate" {
		t.Fatalf("expected saved address, got %+v", order.Address)
	}
	if order.UserID == nil || *order.UserID != user.ID {
		t.Fatalf("order should belong to user")
	}
	if order.CustomerName != "Saved User" || order.CustomerEmail != "saved@example.com" || order.CustomerPhone != "07000000000" {
		t.Fatalf("unexpected customer snapshot: %+v", order)
	}

	if _, err := fx.orders.GetOrder(order.ID, user.ID+1); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other users must not see the order, got %v", err)
	}
	rows, total, err := fx.orders.ListOrdersByUser(repository.OrderListFilter{UserID: user.ID, Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list user orders failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("user orders want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestOrderMoneyInvariant(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)

	inputs := [][]OrderItemInput{
		{{MenuItemID: menu.burger.ID, Quantity: 1}},
		{{MenuItemID: menu.burger.ID, Quantity: 3, AddOnIDs: []uint{menu.cheese.ID, menu.bacon.ID}}, {MenuItemID: menu.fries.ID, Quantity: 2}},
		{{MenuItemID: menu.fries.ID, Quantity: 5, AddOnIDs: []uint{menu.cheese.ID}}},
	}
	for i, items := range inputs {
		for _, fulfillment := range []string{constants.FulfillmentTypeDelivery, constants.FulfillmentTypePickup} {
			input := CreateOrderInput{PaymentMethod: "cash", FulfillmentType: fulfillment, Items: items}
			if fulfillment == constants.FulfillmentTypeDelivery {
				input.Address = deliveryAddress()
			}
			order, err := fx.orders.CreateOrder(context.Background(), input)
			if err != nil {
				t.Fatalf("case %d %s: create order failed: %v", i, fulfillment, err)
			}
			if order.TotalCents != order.SubtotalCents+order.DeliveryFeeCents {
				t.Fatalf("case %d: total %d != subtotal %d + fee %d", i, order.TotalCents, order.SubtotalCents, order.DeliveryFeeCents)
			}
			var sum int64
			for _, line := range order.Lines {
				unit := line.BasePriceCents
				for _, addOn := range line.AddOns {
					unit += addOn.PriceCents
				}
				if line.LineTotalCents != unit*int64(line.Quantity) {
					t.Fatalf("case %d: line total %d != %d * %d", i, line.LineTotalCents, unit, line.Quantity)
				}
				sum += line.LineTotalCents
			}
			if sum != order.SubtotalCents {
				t.Fatalf("case %d: subtotal %d != sum of lines %d", i, order.SubtotalCents, sum)
			}
		}
	}
}

func TestOrderSnapshotSurvivesPriceChange(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)

	order, err := fx.orders.CreateOrder(context.Background(), CreateOrderInput{
		PaymentMethod:   "cash",
		FulfillmentType: constants.FulfillmentTypePickup,
		Items:           []OrderItemInput{{MenuItemID: menu.burger.ID, Quantity: 2, AddOnIDs: []uint{menu.cheese.ID}}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := fx.menu.UpdateItemPrice(menu.burger.ID, "12.00"); err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	if err := fx.db.Model(&models.AddOn{}).Where("id = ?", menu.cheese.ID).Update("price_cents", 500).Error; err != nil {
		t.Fatalf("update add-on price failed: %v", err)
	}

	reloaded, err := fx.orders.GetOrderForAdmin(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Lines[0].LineTotalCents != 1396 || reloaded.Lines[0].BasePriceCents != 599 {
		t.Fatalf("snapshot changed after price edit: %+v", reloaded.Lines[0])
	}
	if reloaded.Lines[0].AddOns[0].PriceCents != 99 {
		t.Fatalf("add-on snapshot changed: %+v", reloaded.Lines[0].AddOns[0])
	}
	if reloaded.TotalCents != 1396 {
		t.Fatalf("order total changed: %d", reloaded.TotalCents)
	}
}

func TestCreateOrderRollsBackOnWriteFailure(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)
	if err := fx.db.Migrator().DropTable(&models.LineAddOn{}); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	_, err := fx.orders.CreateOrder(context.Background(), CreateOrderInput{
		PaymentMethod:   "cash",
		FulfillmentType: constants.FulfillmentTypeDelivery,
		Address:         deliveryAddress(),
		Items:           []OrderItemInput{{MenuItemID: menu.burger.ID, Quantity: 1, AddOnIDs: []uint{menu.cheese.ID}}},
	})
	if !errors.Is(err, ErrOrderCreateFailed) {
		t.Fatalf("expected ErrOrderCreateFailed, got %v", err)
	}
	for _, model := range []interface{}{&models.Order{}, &models.OrderLine{}, &models.Address{}} {
		if total := countRows(t, fx.db, model); total != 0 {
			t.Fatalf("expected rollback of %T, got %d rows", model, total)
		}
	}
}

func TestCreateOrderWithoutGeoColumns(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)
	models.SetCapabilities(models.Capabilities{AddressGeoColumns: false})
	t.Cleanup(func() { models.SetCapabilities(models.Capabilities{AddressGeoColumns: true}) })

	address := deliveryAddress()
	address.Latitude = floatPtr(53.4808)
	address.Longitude = floatPtr(-2.2426)
	order, err := fx.orders.CreateOrder(context.Background(), CreateOrderInput{
		PaymentMethod:   "cash",
		FulfillmentType: constants.FulfillmentTypeDelivery,
		Address:         address,
		Items:           []OrderItemInput{{MenuItemID: menu.fries.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	var stored models.Address
	if err := fx.db.First(&stored, *order.AddressID).Error; err != nil {
		t.Fatalf("load address failed: %v", err)
	}
	if stored.Latitude != nil || stored.Longitude != nil {
		t.Fatalf("coordinates should not be written without geo columns")
	}
}

func TestUpdateOrderStatusWritesLogInline(t *testing.T) {
	fx := setupOrderServiceTest(t)
	menu := seedOrderMenu(t, fx.db)
	order, err := fx.orders.CreateOrder(context.Background(), CreateOrderInput{
		PaymentMethod:   "cash",
		FulfillmentType: constants.FulfillmentTypePickup,
		Items:           []OrderItemInput{{MenuItemID: menu.fries.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	updated, err := fx.orders.UpdateOrderStatus(order.ID, "preparing", "admin")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusPreparing {
		t.Fatalf("status want PREPARING got %s", updated.Status)
	}
	// 状态流转不限方向
	if _, err := fx.orders.UpdateOrderStatus(order.ID, constants.OrderStatusPlaced, "admin"); err != nil {
		t.Fatalf("reverse status update failed: %v", err)
	}

	logs, err := fx.orders.ListStatusLogs(order.ID)
	if err != nil {
		t.Fatalf("list status logs failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("status logs want 2 got %d", len(logs))
	}
	if logs[0].FromStatus != constants.OrderStatusPlaced || logs[0].ToStatus != constants.OrderStatusPreparing || logs[0].Operator != "admin" {
		t.Fatalf("unexpected first log: %+v", logs[0])
	}

	if _, err := fx.orders.UpdateOrderStatus(order.ID, "LOST", "admin"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
	if _, err := fx.orders.UpdateOrderStatus(order.ID+100, constants.OrderStatusDelivered, "admin"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func strPtr(v string) *string {
	return &v
}
