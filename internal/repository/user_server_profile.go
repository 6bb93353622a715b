package repository

import (
	"context"

	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserServerProfileRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserServerProfile, error)
	Upsert(ctx context.Context, profile *entity.UserServerProfile) error
}

type userServerProfileRepository struct{}

func NewUserServerProfileRepository() *userServerProfileRepository {
	return &userServerProfileRepository{}
}

func (r *userServerProfileRepository) Get(
	ctx context.Context, userID string,
) (*entity.UserServerProfile, error) {
	result := &entity.UserServerProfile{}
	if err := xcontext.DB(ctx).Take(result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userServerProfileRepository) Upsert(
	ctx context.Context, profile *entity.UserServerProfile,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"server_url", "server_token", "updated_at",
			}),
		}).Create(profile).Error
}
