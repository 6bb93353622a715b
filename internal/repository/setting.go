package repository

import (
	"context"

	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (*entity.Setting, error)
	GetEncryptedKeys(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, setting *entity.Setting) error
}

type settingRepository struct{}

func NewSettingRepository() *settingRepository {
	return &settingRepository{}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*entity.Setting, error) {
	result := &entity.Setting{}
	if err := xcontext.DB(ctx).Take(result, "`key`=?", key).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *settingRepository) GetEncryptedKeys(ctx context.Context) ([]string, error) {
	result := []string{}
	err := xcontext.DB(ctx).
		Model(&entity.Setting{}).
		Where("is_encrypted=?", true).
		Pluck("key", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *settingRepository) Upsert(ctx context.Context, setting *entity.Setting) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"value", "is_encrypted", "updated_at",
			}),
		}).Create(setting).Error
}
