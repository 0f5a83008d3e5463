package main

import (
	"context"
	"log"
	"os"

	"github.com/chowline/internal/config"
	"github.com/chowline/internal/constants"
	"github.com/chowline/internal/logger"
	"github.com/chowline/internal/models"
	"github.com/chowline/internal/repository"
	"github.com/chowline/internal/service"
)

type seedItem struct {
	Name        string
	Description string
	Price       string
	SortOrder   int
}

type seedCategory struct {
	Name      string
	SortOrder int
	Items     []seedItem
}

type seedAddOn struct {
	Name     string
	Price    string
	Category string // 为空表示全局加料
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}
	models.DetectCapabilities(models.DB, cfg.Database.GeoColumns)

	// 门店配置
	settingService := service.NewSettingService(repository.NewSettingRepository(models.DB), cfg.Store)
	if err := settingService.EnsureStoreSetting(); err != nil {
		stdLog.Printf("Failed to write store setting: %v", err)
	}

	// 管理员
	if err := models.InitDefaultAdmin(os.Getenv("CHOWLINE_ADMIN_USERNAME"), os.Getenv("CHOWLINE_ADMIN_PASSWORD")); err != nil {
		stdLog.Printf("Failed to create default admin: %v", err)
	}

	seedZones(stdLog)
	categoryIDs := seedMenu(stdLog)
	seedAddOns(stdLog, categoryIDs)

	stdLog.Printf("Seed completed")
}

func seedZones(stdLog *log.Logger) {
	zoneService := service.NewZoneService(repository.NewZoneRepository(models.DB))
	text := func(v string) *string { return &v }
	number := func(v float64) *float64 { return &v }

	zones := []service.ZoneInput{
		{
			Name:             text("Manchester City Centre"),
			Kind:             text(constants.ZoneKindPrefix),
			City:             text("Manchester"),
			PostcodePrefixes: &[]string{"M1", "M2", "M3", "M4", "M15"},
		},
		{
			Name:         text("Piccadilly 3km"),
			Kind:         text(constants.ZoneKindCircle),
			City:         text("Manchester"),
			CenterLat:    number(53.4808),
			CenterLng:    number(-2.2426),
			RadiusMeters: number(3000),
		},
	}

	for _, input := range zones {
		var count int64
		if err := models.DB.Model(&models.DeliveryZone{}).Where("name = ?", *input.Name).Count(&count).Error; err != nil {
			stdLog.Printf("Failed to check zone %s: %v", *input.Name, err)
			continue
		}
		if count > 0 {
			stdLog.Printf("Zone already exists: %s", *input.Name)
			continue
		}
		if _, err := zoneService.CreateZone(context.Background(), input); err != nil {
			stdLog.Printf("Failed to create zone %s: %v", *input.Name, err)
			continue
		}
		stdLog.Printf("Created zone: %s", *input.Name)
	}
}

func seedMenu(stdLog *log.Logger) map[string]uint {
	categories := []seedCategory{
		{
			Name:      "Burgers",
			SortOrder: 10,
			Items: []seedItem{
				{Name: "Classic Burger", Description: "Beef patty, cheddar, pickles", Price: "8.99", SortOrder: 10},
				{Name: "Chicken Burger", Description: "Buttermilk fried chicken, slaw", Price: "8.49", SortOrder: 20},
				{Name: "Veggie Burger", Description: "Halloumi, roasted peppers", Price: "7.99", SortOrder: 30},
			},
		},
		{
			Name:      "Sides",
			SortOrder: 20,
			Items: []seedItem{
				{Name: "Fries", Description: "Skin-on fries", Price: "2.99", SortOrder: 10},
				{Name: "Onion Rings", Description: "Beer battered", Price: "3.49", SortOrder: 20},
			},
		},
		{
			Name:      "Drinks",
			SortOrder: 30,
			Items: []seedItem{
				{Name: "Cola", Description: "330ml can", Price: "1.50", SortOrder: 10},
				{Name: "Lemonade", Description: "House made", Price: "2.20", SortOrder: 20},
			},
		},
	}

	categoryIDs := make(map[string]uint, len(categories))
	for _, cat := range categories {
		var existing models.MenuCategory
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			// 不存在则创建
			existing = models.MenuCategory{Name: cat.Name, SortOrder: cat.SortOrder, IsActive: true}
			if err := models.DB.Create(&existing).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
				continue
			}
			stdLog.Printf("Created category: %s", cat.Name)
		} else {
			stdLog.Printf("Category already exists: %s", cat.Name)
		}
		categoryIDs[cat.Name] = existing.ID

		for _, item := range cat.Items {
			cents, err := models.ParseCents(item.Price)
			if err != nil {
				stdLog.Printf("Invalid price for %s: %v", item.Name, err)
				continue
			}
			var count int64
			if err := models.DB.Model(&models.MenuItem{}).
				Where("category_id = ? AND name = ?", existing.ID, item.Name).
				Count(&count).Error; err != nil {
				stdLog.Printf("Failed to check menu item %s: %v", item.Name, err)
				continue
			}
			if count > 0 {
				stdLog.Printf("Menu item already exists: %s", item.Name)
				continue
			}
			record := models.MenuItem{
				CategoryID:  existing.ID,
				Name:        item.Name,
				Description: item.Description,
				PriceCents:  cents,
				IsActive:    true,
				SortOrder:   item.SortOrder,
			}
			if err := models.DB.Create(&record).Error; err != nil {
				stdLog.Printf("Failed to create menu item %s: %v", item.Name, err)
				continue
			}
			stdLog.Printf("Created menu item: %s (%s)", item.Name, models.FormatCents(cents))
		}
	}
	return categoryIDs
}

func seedAddOns(stdLog *log.Logger, categoryIDs map[string]uint) {
	addOns := []seedAddOn{
		{Name: "Extra Cheese", Price: "0.80", Category: "Burgers"},
		{Name: "Bacon", Price: "1.20", Category: "Burgers"},
		{Name: "Garlic Mayo", Price: "0.50"},
	}

	for _, addOn := range addOns {
		cents, err := models.ParseCents(addOn.Price)
		if err != nil {
			stdLog.Printf("Invalid price for add-on %s: %v", addOn.Name, err)
			continue
		}
		var count int64
		if err := models.DB.Model(&models.AddOn{}).Where("name = ?", addOn.Name).Count(&count).Error; err != nil {
			stdLog.Printf("Failed to check add-on %s: %v", addOn.Name, err)
			continue
		}
		if count > 0 {
			stdLog.Printf("Add-on already exists: %s", addOn.Name)
			continue
		}
		record := models.AddOn{Name: addOn.Name, PriceCents: cents, IsActive: true}
		if addOn.Category != "" {
			categoryID, ok := categoryIDs[addOn.Category]
			if !ok {
				stdLog.Printf("Skip add-on %s: category %s missing", addOn.Name, addOn.Category)
				continue
			}
			record.CategoryID = &categoryID
		}
		if err := models.DB.Create(&record).Error; err != nil {
			stdLog.Printf("Failed to create add-on %s: %v", addOn.Name, err)
			continue
		}
		stdLog.Printf("Created add-on: %s", addOn.Name)
	}
}
