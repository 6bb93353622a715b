package repository

import (
	"context"

	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/pkg/xcontext"
)

type QuestRepository interface {
	Create(ctx context.Context, quest *entity.Quest) error
	GetByID(ctx context.Context, id string) (*entity.Quest, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Quest, error)
	GetByChapterID(ctx context.Context, chapterID string) ([]entity.Quest, error)
	GetByChapterIDs(ctx context.Context, chapterIDs []string) ([]entity.Quest, error)
	GetActive(ctx context.Context) ([]entity.Quest, error)
}

type questRepository struct{}

func NewQuestRepository() *questRepository {
	return &questRepository{}
}

func (r *questRepository) Create(ctx context.Context, quest *entity.Quest) error {
	return xcontext.DB(ctx).Create(quest).Error
}

func (r *questRepository) GetByID(ctx context.Context, id string) (*entity.Quest, error) {
	result := &entity.Quest{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) GetBySlug(ctx context.Context, slug string) (*entity.Quest, error) {
	result := &entity.Quest{}
	if err := xcontext.DB(ctx).Take(result, "slug=?", slug).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) GetByChapterID(ctx context.Context, chapterID string) ([]entity.Quest, error) {
	result := []entity.Quest{}
	err := xcontext.DB(ctx).
		Where("chapter_id=?", chapterID).
		Order("`index` ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) GetByChapterIDs(ctx context.Context, chapterIDs []string) ([]entity.Quest, error) {
	result := []entity.Quest{}
	if err := xcontext.DB(ctx).Find(&result, "chapter_id IN (?)", chapterIDs).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) GetActive(ctx context.Context) ([]entity.Quest, error) {
	result := []entity.Quest{}
	err := xcontext.DB(ctx).
		Where("status=?", entity.QuestActive).
		Order("`index` ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
