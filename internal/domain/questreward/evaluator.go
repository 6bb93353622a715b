package questreward

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/internal/repository"
	"github.com/questhive/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

// Evaluator checks every active reward against a user's completed quests and
// grants the ones whose condition is now satisfied. Granting is idempotent;
// Evaluate only returns the rewards this call newly granted.
type Evaluator interface {
	Evaluate(ctx context.Context, userID string) ([]entity.Reward, error)
}

type evaluator struct {
	questRepo    repository.QuestRepository
	chapterRepo  repository.ChapterRepository
	progressRepo repository.QuestProgressRepository
	rewardRepo   repository.RewardRepository
}

func NewEvaluator(
	questRepo repository.QuestRepository,
	chapterRepo repository.ChapterRepository,
	progressRepo repository.QuestProgressRepository,
	rewardRepo repository.RewardRepository,
) *evaluator {
	return &evaluator{
		questRepo:    questRepo,
		chapterRepo:  chapterRepo,
		progressRepo: progressRepo,
		rewardRepo:   rewardRepo,
	}
}

func (e *evaluator) Evaluate(ctx context.Context, userID string) ([]entity.Reward, error) {
	rewards, err := e.rewardRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	if len(rewards) == 0 {
		return nil, nil
	}

	completedIDs, err := e.progressRepo.GetCompletedQuestIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed := make(map[string]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	var granted []entity.Reward
	for _, reward := range rewards {
		met, err := e.checkCondition(ctx, reward.Condition, completed)
		if err != nil {
			// A broken condition must not block the other rewards.
			xcontext.Logger(ctx).Errorf("Cannot check condition of reward %s: %v", reward.ID, err)
			continue
		}

		if !met {
			continue
		}

		newlyGranted, err := e.rewardRepo.Grant(ctx, userID, reward.ID)
		if err != nil {
			return nil, err
		}

		if newlyGranted {
			granted = append(granted, reward)
		}
	}

	return granted, nil
}

func (e *evaluator) checkCondition(
	ctx context.Context, condition entity.RewardCondition, completed map[string]bool,
) (bool, error) {
	switch condition.Type {
	case entity.QuestRewardCondition:
		return e.checkQuestCondition(condition.Data, completed)

	case entity.ChapterRewardCondition:
		return e.checkChapterCondition(ctx, condition.Data, completed)

	case entity.BookRewardCondition:
		return e.checkBookCondition(ctx, condition.Data, completed)

	case entity.QuestSetRewardCondition:
		return e.checkQuestSetCondition(condition.Data, completed)

	default:
		return false, fmt.Errorf("invalid condition type %s", condition.Type)
	}
}

func (e *evaluator) checkQuestCondition(
	data entity.Map, completed map[string]bool,
) (bool, error) {
	var condition struct {
		QuestID string `mapstructure:"quest_id"`
	}

	if err := mapstructure.Decode(data, &condition); err != nil {
		return false, err
	}

	if condition.QuestID == "" {
		return false, fmt.Errorf("quest condition without quest_id")
	}

	return completed[condition.QuestID], nil
}

func (e *evaluator) checkChapterCondition(
	ctx context.Context, data entity.Map, completed map[string]bool,
) (bool, error) {
	var condition struct {
		ChapterID string `mapstructure:"chapter_id"`
	}

	if err := mapstructure.Decode(data, &condition); err != nil {
		return false, err
	}

	quests, err := e.questRepo.GetByChapterID(ctx, condition.ChapterID)
	if err != nil {
		return false, err
	}

	return allQuestsCompleted(quests, completed), nil
}

func (e *evaluator) checkBookCondition(
	ctx context.Context, data entity.Map, completed map[string]bool,
) (bool, error) {
	var condition struct {
		BookID string `mapstructure:"book_id"`
	}

	if err := mapstructure.Decode(data, &condition); err != nil {
		return false, err
	}

	chapters, err := e.chapterRepo.GetByBookID(ctx, condition.BookID)
	if err != nil {
		return false, err
	}

	if len(chapters) == 0 {
		return false, nil
	}

	chapterIDs := make([]string, 0, len(chapters))
	for _, chapter := range chapters {
		chapterIDs = append(chapterIDs, chapter.ID)
	}

	quests, err := e.questRepo.GetByChapterIDs(ctx, chapterIDs)
	if err != nil {
		return false, err
	}

	return allQuestsCompleted(quests, completed), nil
}

func (e *evaluator) checkQuestSetCondition(
	data entity.Map, completed map[string]bool,
) (bool, error) {
	var condition struct {
		QuestIDs []string `mapstructure:"quest_ids"`
		Op       string   `mapstructure:"op"`
	}

	if err := mapstructure.Decode(data, &condition); err != nil {
		return false, err
	}

	if len(condition.QuestIDs) == 0 {
		return false, fmt.Errorf("quest_set condition without quest_ids")
	}

	switch entity.RewardConditionOp(condition.Op) {
	case entity.AllOf:
		return !slices.ContainsFunc(condition.QuestIDs, func(id string) bool {
			return !completed[id]
		}), nil

	case entity.AnyOf:
		return slices.ContainsFunc(condition.QuestIDs, func(id string) bool {
			return completed[id]
		}), nil

	default:
		return false, fmt.Errorf("invalid condition op %s", condition.Op)
	}
}

// allQuestsCompleted is false for an empty quest list. A container with no
// quests yet must not hand out its reward.
func allQuestsCompleted(quests []entity.Quest, completed map[string]bool) bool {
	if len(quests) == 0 {
		return false
	}

	for _, quest := range quests {
		if !completed[quest.ID] {
			return false
		}
	}

	return true
}
