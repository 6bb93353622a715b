package repository

import (
	"context"

	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type RewardRepository interface {
	Create(ctx context.Context, reward *entity.Reward) error
	GetActive(ctx context.Context) ([]entity.Reward, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Reward, error)

	// Grant inserts a user-reward row and reports whether it was newly
	// created. The (user_id, reward_id) primary key makes the grant
	// idempotent at the storage layer; there is deliberately no
	// check-then-insert here.
	Grant(ctx context.Context, userID, rewardID string) (bool, error)
}

type rewardRepository struct{}

func NewRewardRepository() *rewardRepository {
	return &rewardRepository{}
}

func (r *rewardRepository) Create(ctx context.Context, reward *entity.Reward) error {
	return xcontext.DB(ctx).Create(reward).Error
}

func (r *rewardRepository) GetActive(ctx context.Context) ([]entity.Reward, error) {
	result := []entity.Reward{}
	if err := xcontext.DB(ctx).Find(&result, "is_active=?", true).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *rewardRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Reward, error) {
	result := []entity.Reward{}
	err := xcontext.DB(ctx).
		Joins("join user_rewards on user_rewards.reward_id = rewards.id").
		Where("user_rewards.user_id = ?", userID).
		Order("user_rewards.created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *rewardRepository) Grant(ctx context.Context, userID, rewardID string) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.UserReward{UserID: userID, RewardID: rewardID})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}
