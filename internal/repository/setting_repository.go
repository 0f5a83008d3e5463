package repository

import (
	"github.com/chowline/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository 店铺设置键值存储
type SettingRepository interface {
	GetByKey(key string) (*models.Setting, error)
	Upsert(key string, value models.JSON) (*models.Setting, error)
}

// GormSettingRepository GORM 实现
type GormSettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 创建设置仓库
func NewSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// settingKeyColumn key 是 MySQL 保留字，统一经 clause 引用
var settingKeyColumn = clause.Column{Name: "key"}

// GetByKey 不存在时返回 (nil, nil)
func (r *GormSettingRepository) GetByKey(key string) (*models.Setting, error) {
	return firstOrNil[models.Setting](r.db.Where(clause.Eq{Column: settingKeyColumn, Value: key}))
}

// Upsert 按 key 覆盖写入
func (r *GormSettingRepository) Upsert(key string, value models.JSON) (*models.Setting, error) {
	row := &models.Setting{Key: key, ValueJSON: value}
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{settingKeyColumn},
		DoUpdates: clause.AssignmentColumns([]string{"value_json", "updated_at"}),
	}
	if err := r.db.Clauses(onConflict).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
