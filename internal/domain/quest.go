package domain

import (
	"context"
	"errors"

	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/internal/model"
	"github.com/questhive/backend/internal/repository"
	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type QuestDomain interface {
	Get(ctx context.Context, req *model.GetQuestRequest) (*model.GetQuestResponse, error)
	GetList(ctx context.Context, req *model.GetListQuestRequest) (*model.GetListQuestResponse, error)
}

type questDomain struct {
	questRepo    repository.QuestRepository
	progressRepo repository.QuestProgressRepository
}

func NewQuestDomain(
	questRepo repository.QuestRepository,
	progressRepo repository.QuestProgressRepository,
) *questDomain {
	return &questDomain{questRepo: questRepo, progressRepo: progressRepo}
}

func (d *questDomain) Get(
	ctx context.Context, req *model.GetQuestRequest,
) (*model.GetQuestResponse, error) {
	quest, err := d.questRepo.GetBySlug(ctx, req.QuestSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	completed, err := d.completedQuestSet(ctx)
	if err != nil {
		return nil, err
	}

	return &model.GetQuestResponse{Quest: convertQuest(quest, completed)}, nil
}

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetListQuestRequest,
) (*model.GetListQuestResponse, error) {
	var quests []entity.Quest
	var err error
	if req.ChapterID != "" {
		quests, err = d.questRepo.GetByChapterID(ctx, req.ChapterID)
	} else {
		quests, err = d.questRepo.GetActive(ctx)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quests: %v", err)
		return nil, errorx.Unknown
	}

	completed, err := d.completedQuestSet(ctx)
	if err != nil {
		return nil, err
	}

	resp := &model.GetListQuestResponse{Quests: []model.Quest{}}
	for i := range quests {
		resp.Quests = append(resp.Quests, convertQuest(&quests[i], completed))
	}

	return resp, nil
}

// completedQuestSet is empty for anonymous requests; every quest with a
// prerequisite then shows as locked.
func (d *questDomain) completedQuestSet(ctx context.Context) (map[string]bool, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, nil
	}

	ids, err := d.progressRepo.GetCompletedQuestIDs(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get completed quests: %v", err)
		return nil, errorx.Unknown
	}

	completed := make(map[string]bool, len(ids))
	for _, id := range ids {
		completed[id] = true
	}

	return completed, nil
}

func convertQuest(quest *entity.Quest, completed map[string]bool) model.Quest {
	status := entity.ProgressAvailable
	switch {
	case completed[quest.ID]:
		status = entity.ProgressCompleted

	case quest.PrerequisiteQuestID.Valid && !completed[quest.PrerequisiteQuestID.String]:
		status = entity.ProgressLocked
	}

	return model.Quest{
		ID:               quest.ID,
		Slug:             quest.Slug,
		Title:            quest.Title,
		ChapterID:        quest.ChapterID.String,
		VerificationType: string(quest.VerificationType),
		PrerequisiteID:   quest.PrerequisiteQuestID.String,
		ProgressStatus:   string(status),
	}
}
