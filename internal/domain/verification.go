package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/questhive/backend/internal/domain/questreward"
	"github.com/questhive/backend/internal/domain/questverify"
	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/internal/model"
	"github.com/questhive/backend/internal/repository"
	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type VerificationDomain interface {
	Verify(ctx context.Context, req *model.VerifyQuestRequest) (*model.VerifyQuestResponse, error)
}

type verificationDomain struct {
	questRepo    repository.QuestRepository
	progressRepo repository.QuestProgressRepository

	verifierFactory questverify.Factory
	rewardEvaluator questreward.Evaluator
}

func NewVerificationDomain(
	questRepo repository.QuestRepository,
	progressRepo repository.QuestProgressRepository,
	verifierFactory questverify.Factory,
	rewardEvaluator questreward.Evaluator,
) *verificationDomain {
	return &verificationDomain{
		questRepo:       questRepo,
		progressRepo:    progressRepo,
		verifierFactory: verifierFactory,
		rewardEvaluator: rewardEvaluator,
	}
}

func (d *verificationDomain) Verify(
	ctx context.Context, req *model.VerifyQuestRequest,
) (*model.VerifyQuestResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "User is not authenticated")
	}

	quest, err := d.questRepo.GetBySlug(ctx, req.QuestSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if quest.Status != entity.QuestActive {
		return nil, errorx.New(errorx.Unavailable, "Quest is not active")
	}

	if err := d.checkPrerequisite(ctx, userID, quest); err != nil {
		return nil, err
	}

	verifier, err := questverify.New(ctx, d.verifierFactory, *quest)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create verifier of quest %s: %v", quest.Slug, err)
		return nil, errorx.New(errorx.Internal, "Quest is misconfigured")
	}

	result, err := verifier.Verify(ctx, req.Data)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot verify quest %s: %v", quest.Slug, err)
		return nil, errorx.Unknown
	}

	if !result.Valid {
		return &model.VerifyQuestResponse{
			Success: false,
			Message: result.Message,
			Data:    result.Data,
		}, nil
	}

	rewards, err := d.recordCompletion(ctx, userID, quest, req.Data)
	if err != nil {
		return nil, err
	}

	return &model.VerifyQuestResponse{
		Success: true,
		Message: result.Message,
		Rewards: rewards,
		Data:    result.Data,
	}, nil
}

// checkPrerequisite runs before the verifier, so a claim against a locked
// quest never triggers any outbound call.
func (d *verificationDomain) checkPrerequisite(
	ctx context.Context, userID string, quest *entity.Quest,
) error {
	if !quest.PrerequisiteQuestID.Valid {
		return nil
	}

	progress, err := d.progressRepo.Get(ctx, userID, quest.PrerequisiteQuestID.String)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.PrerequisiteNotMet,
				"Complete the prerequisite quest before attempting this one")
		}

		xcontext.Logger(ctx).Errorf("Cannot get prerequisite progress: %v", err)
		return errorx.Unknown
	}

	if progress.Status != entity.ProgressCompleted {
		return errorx.New(errorx.PrerequisiteNotMet,
			"Complete the prerequisite quest before attempting this one")
	}

	return nil
}

// recordCompletion writes the progress row and grants any rewards the
// completion unlocked inside a single transaction; either both land or
// neither does.
func (d *verificationDomain) recordCompletion(
	ctx context.Context, userID string, quest *entity.Quest, claim map[string]any,
) ([]model.Reward, error) {
	now := time.Now()
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.progressRepo.Upsert(ctx, &entity.QuestProgress{
		UserID:      userID,
		QuestID:     quest.ID,
		Status:      entity.ProgressCompleted,
		CompletedAt: sql.NullTime{Valid: true, Time: now},
		Metadata:    questverify.SanitizeClaimMetadata(claim, quest.VerificationType, now),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record progress: %v", err)
		return nil, errorx.Unknown
	}

	granted, err := d.rewardEvaluator.Evaluate(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot evaluate rewards: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	rewards := make([]model.Reward, 0, len(granted))
	for _, reward := range granted {
		rewards = append(rewards, model.Reward{
			ID:          reward.ID,
			Name:        reward.Name,
			Description: reward.Description,
			ImageURL:    reward.ImageURL,
		})
	}

	return rewards, nil
}
