package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.DeliveryZone{},
		&models.Address{},
		&models.Order{},
		&models.OrderLine{},
		&models.LineAddOn{},
		&models.OrderStatusLog{},
		&models.Setting{},
		&models.User{},
		&models.Admin{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func createTestOrder(t *testing.T, repo *GormOrderRepository, orderNo string, userID *uint, status string, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:         orderNo,
		UserID:          userID,
		Status:          status,
		PaymentMethod:   constants.PaymentMethodCash,
		FulfillmentType: constants.FulfillmentTypePickup,
		OrderType:       constants.OrderTypeNormal,
		Currency:        "GBP",
		SubtotalCents:   1396,
		TotalCents:      1396,
		CreatedAt:       createdAt,
		Lines: []models.OrderLine{
			{
				MenuItemID:     1,
				Name:           "Burger",
				BasePriceCents: 599,
				Quantity:       2,
				Removals:       models.StringArray{"onion"},
				LineTotalCents: 1396,
				AddOns: []models.LineAddOn{
					{AddOnID: 7, Name: "Cheese", PriceCents: 99},
				},
			},
		},
	}
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderRepositoryCreateAndDetail(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewOrderRepository(db)
	order := createTestOrder(t, repo, "CL-REPO-1", nil, constants.OrderStatusPlaced, time.Now())

	loaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if loaded == nil || len(loaded.Lines) != 1 || len(loaded.Lines[0].AddOns) != 1 {
		t.Fatalf("order detail not loaded: %+v", loaded)
	}
	if loaded.Lines[0].Removals[0] != "onion" || loaded.Lines[0].AddOns[0].Name != "Cheese" {
		t.Fatalf("unexpected line snapshot: %+v", loaded.Lines[0])
	}

	missing, err := repo.GetByID(order.ID + 100)
	if err != nil || missing != nil {
		t.Fatalf("missing order should return nil, nil; got %+v %v", missing, err)
	}
}

func TestOrderRepositoryListFilters(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewOrderRepository(db)
	userID := uint(5)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	createTestOrder(t, repo, "CL-A", &userID, constants.OrderStatusPlaced, base)
	createTestOrder(t, repo, "CL-B", &userID, constants.OrderStatusDelivered, base.Add(time.Hour))
	createTestOrder(t, repo, "CL-C", nil, constants.OrderStatusPlaced, base.Add(2*time.Hour))

	rows, total, err := repo.ListByUser(OrderListFilter{UserID: userID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 2 || len(rows) != 2 || rows[0].OrderNo != "CL-B" {
		t.Fatalf("unexpected user orders total=%d rows=%v", total, rows)
	}

	rows, total, err = repo.ListAdmin(OrderListFilter{Status: "placed", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 2 || rows[0].OrderNo != "CL-C" {
		t.Fatalf("unexpected placed orders total=%d rows=%v", total, rows)
	}

	from := base.Add(30 * time.Minute)
	rows, total, err = repo.ListAdmin(OrderListFilter{CreatedFrom: &from, Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("list admin paged failed: %v", err)
	}
	if total != 2 || len(rows) != 1 {
		t.Fatalf("pagination want total=2 len=1 got total=%d len=%d", total, len(rows))
	}

	if err := repo.UpdateStatus(rows[0].ID, constants.OrderStatusCancelled, nil); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	updated, _ := repo.GetByID(rows[0].ID)
	if updated.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want CANCELLED got %s", updated.Status)
	}
}

func TestOrderRepositoryTransactionRollback(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewOrderRepository(db)
	err := db.Transaction(func(tx *gorm.DB) error {
		createTestOrder(t, repo.WithTx(tx).(*GormOrderRepository), "CL-TX", nil, constants.OrderStatusPlaced, time.Now())
		return fmt.Errorf("abort")
	})
	if err == nil {
		t.Fatalf("expected transaction error")
	}
	var total int64
	db.Model(&models.OrderLine{}).Count(&total)
	if total != 0 {
		t.Fatalf("order lines should roll back, got %d", total)
	}
}

func TestZoneRepositoryOrdering(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewZoneRepository(db)
	late := &models.DeliveryZone{Name: "late", Kind: constants.ZoneKindPrefix, City: "Leeds", IsActive: true, CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	early := &models.DeliveryZone{Name: "early", Kind: constants.ZoneKindPrefix, City: "York", IsActive: true, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	off := &models.DeliveryZone{Name: "off", Kind: constants.ZoneKindPrefix, City: "Hull", IsActive: false}
	for _, zone := range []*models.DeliveryZone{late, early, off} {
		if err := repo.Create(zone); err != nil {
			t.Fatalf("create zone failed: %v", err)
		}
	}

	zones, err := repo.List(ZoneListFilter{OnlyActive: true})
	if err != nil {
		t.Fatalf("list zones failed: %v", err)
	}
	if len(zones) != 2 || zones[0].Name != "early" || zones[1].Name != "late" {
		t.Fatalf("unexpected zone order: %+v", zones)
	}
	active, err := repo.CountActive()
	if err != nil || active != 2 {
		t.Fatalf("count active want 2 got %d err=%v", active, err)
	}
	affected, err := repo.Delete(off.ID)
	if err != nil || affected != 1 {
		t.Fatalf("delete zone want 1 affected got %d err=%v", affected, err)
	}
}

func TestAddressRepositoryWithoutGeo(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewAddressRepository(db)
	lat, lng := 53.48, -2.24
	address := &models.Address{Line1: "1 Piccadilly", City: "Manchester", Postcode: "M1 1AE", Latitude: &lat, Longitude: &lng}
	if err := repo.Create(address, false); err != nil {
		t.Fatalf("create address failed: %v", err)
	}
	var stored models.Address
	if err := db.First(&stored, address.ID).Error; err != nil {
		t.Fatalf("load address failed: %v", err)
	}
	if stored.Latitude != nil || stored.Longitude != nil {
		t.Fatalf("geo columns should be skipped")
	}
}

func TestSettingRepositoryUpsert(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewSettingRepository(db)
	if _, err := repo.Upsert("store_config", models.JSON{"currency": "GBP"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if _, err := repo.Upsert("store_config", models.JSON{"currency": "EUR"}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	setting, err := repo.GetByKey("store_config")
	if err != nil || setting == nil {
		t.Fatalf("get setting failed: %v", err)
	}
	if setting.ValueJSON["currency"] != "EUR" {
		t.Fatalf("currency want EUR got %v", setting.ValueJSON["currency"])
	}
	missing, err := repo.GetByKey("nope")
	if err != nil || missing != nil {
		t.Fatalf("missing key should return nil, nil")
	}
}

func TestOrderStatusLogRepositoryOrdering(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewOrderStatusLogRepository(db)
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []models.OrderStatusLog{
		{OrderID: 1, FromStatus: "PREPARING", ToStatus: "DELIVERED", CreatedAt: at.Add(time.Minute)},
		{OrderID: 1, FromStatus: "PLACED", ToStatus: "PREPARING", CreatedAt: at},
		{OrderID: 2, FromStatus: "PLACED", ToStatus: "CANCELLED", CreatedAt: at},
	}
	for i := range entries {
		if err := repo.Create(&entries[i]); err != nil {
			t.Fatalf("create log failed: %v", err)
		}
	}
	logs, err := repo.ListByOrder(1)
	if err != nil {
		t.Fatalf("list logs failed: %v", err)
	}
	if len(logs) != 2 || logs[0].ToStatus != "PREPARING" {
		t.Fatalf("unexpected logs: %+v", logs)
	}
}

func TestUserRepositoryEmailLookupIgnoresCase(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewUserRepository(db)
	if err := repo.Create(&models.User{Email: "mixed@example.com", PasswordHash: "hash"}); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	user, err := repo.GetByEmail("MIXED@example.com")
	if err != nil || user == nil {
		t.Fatalf("lookup by email failed: %v", err)
	}
	missing, err := repo.GetByEmail("nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("missing email should return nil,nil got %+v err=%v", missing, err)
	}
	blank, err := repo.GetByEmail("   ")
	if err != nil || blank != nil {
		t.Fatalf("blank email should return nil,nil got %+v err=%v", blank, err)
	}
}

func TestAdminRepositoryLastLogin(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewAdminRepository(db)
	admin := &models.Admin{Username: "ops", PasswordHash: "hash", Role: "operator"}
	if err := repo.Create(admin); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.UpdateLastLogin(admin.ID, at); err != nil {
		t.Fatalf("update last login failed: %v", err)
	}
	got, err := repo.GetByUsername(" ops ")
	if err != nil || got == nil {
		t.Fatalf("lookup by username failed: %v", err)
	}
	if got.LastLoginAt == nil || !got.LastLoginAt.Equal(at) {
		t.Fatalf("last login want %v got %v", at, got.LastLoginAt)
	}
	if got.Role != "operator" {
		t.Fatalf("role should be untouched, got %s", got.Role)
	}
	none, err := repo.GetByID(admin.ID + 100)
	if err != nil || none != nil {
		t.Fatalf("unknown admin should return nil,nil got %+v err=%v", none, err)
	}
	list, err := repo.List()
	if err != nil || len(list) != 1 {
		t.Fatalf("list admins want 1 got %d err=%v", len(list), err)
	}
}
