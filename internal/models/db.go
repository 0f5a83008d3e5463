package models

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite" // 纯 Go SQLite 驱动（基于 modernc.org/sqlite）
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// DBPoolConfig 数据库连接池配置
type DBPoolConfig struct {
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeSeconds int
	ConnMaxIdleTimeSeconds int
}

// Capabilities 启动时探测到的数据库能力
type Capabilities struct {
	AddressGeoColumns bool // addresses 表是否具备经纬度列
}

var caps = Capabilities{AddressGeoColumns: true}

// InitDB 初始化数据库连接
func InitDB(driver, dsn string, pool DBPoolConfig) error {
	var err error
	normalized := strings.ToLower(strings.TrimSpace(driver))
	var dialector gorm.Dialector
	switch normalized {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	applyDBPool(sqlDB, pool)
	return nil
}

func applyDBPool(sqlDB *sql.DB, pool DBPoolConfig) {
	if sqlDB == nil {
		return
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeSeconds) * time.Second)
	}
}

// AutoMigrate 自动迁移所有数据库表
func AutoMigrate() error {
	return DB.AutoMigrate(
		&Admin{},
		&User{},
		&DeliveryZone{},
		&MenuCategory{},
		&MenuItem{},
		&AddOn{},
		&Address{},
		&Order{},
		&OrderLine{},
		&LineAddOn{},
		&OrderStatusLog{},
		&Setting{},
	)
}

// DetectCapabilities 探测数据库能力，geoEnabled 为配置开关
func DetectCapabilities(db *gorm.DB, geoEnabled bool) Capabilities {
	detected := Capabilities{}
	if db != nil && geoEnabled {
		migrator := db.Migrator()
		detected.AddressGeoColumns = migrator.HasColumn(&Address{}, "latitude") &&
			migrator.HasColumn(&Address{}, "longitude")
	}
	caps = detected
	return detected
}

// CurrentCapabilities 返回当前生效的数据库能力
func CurrentCapabilities() Capabilities {
	return caps
}

// SetCapabilities 覆盖数据库能力（测试与启动流程使用）
func SetCapabilities(c Capabilities) {
	caps = c
}
