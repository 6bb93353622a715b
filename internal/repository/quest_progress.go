package repository

import (
	"context"

	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type QuestProgressRepository interface {
	Get(ctx context.Context, userID, questID string) (*entity.QuestProgress, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.QuestProgress, error)
	GetCompletedQuestIDs(ctx context.Context, userID string) ([]string, error)
	Upsert(ctx context.Context, progress *entity.QuestProgress) error
}

type questProgressRepository struct{}

func NewQuestProgressRepository() *questProgressRepository {
	return &questProgressRepository{}
}

func (r *questProgressRepository) Get(
	ctx context.Context, userID, questID string,
) (*entity.QuestProgress, error) {
	result := &entity.QuestProgress{}
	if err := xcontext.DB(ctx).Take(result, "user_id=? AND quest_id=?", userID, questID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questProgressRepository) GetByUserID(
	ctx context.Context, userID string,
) ([]entity.QuestProgress, error) {
	result := []entity.QuestProgress{}
	if err := xcontext.DB(ctx).Find(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questProgressRepository) GetCompletedQuestIDs(
	ctx context.Context, userID string,
) ([]string, error) {
	result := []string{}
	err := xcontext.DB(ctx).
		Model(&entity.QuestProgress{}).
		Where("user_id=? AND status=?", userID, entity.ProgressCompleted).
		Pluck("quest_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Upsert is an atomic insert-or-update on the (user_id, quest_id) key, so
// two concurrent verifications of the same quest never create two rows.
func (r *questProgressRepository) Upsert(ctx context.Context, progress *entity.QuestProgress) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "quest_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "completed_at", "metadata", "updated_at",
			}),
		}).Create(progress).Error
}
