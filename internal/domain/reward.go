package domain

import (
	"context"

	"github.com/questhive/backend/internal/model"
	"github.com/questhive/backend/internal/repository"
	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/xcontext"
)

type RewardDomain interface {
	GetMyRewards(ctx context.Context, req *model.GetMyRewardsRequest) (*model.GetMyRewardsResponse, error)
}

type rewardDomain struct {
	rewardRepo repository.RewardRepository
}

func NewRewardDomain(rewardRepo repository.RewardRepository) *rewardDomain {
	return &rewardDomain{rewardRepo: rewardRepo}
}

func (d *rewardDomain) GetMyRewards(
	ctx context.Context, req *model.GetMyRewardsRequest,
) (*model.GetMyRewardsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	rewards, err := d.rewardRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rewards: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMyRewardsResponse{Rewards: []model.Reward{}}
	for _, reward := range rewards {
		resp.Rewards = append(resp.Rewards, model.Reward{
			ID:          reward.ID,
			Name:        reward.Name,
			Description: reward.Description,
			ImageURL:    reward.ImageURL,
		})
	}

	return resp, nil
}
