package repository

import (
	"context"

	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/pkg/xcontext"
)

type ChapterRepository interface {
	Create(ctx context.Context, chapter *entity.Chapter) error
	GetByBookID(ctx context.Context, bookID string) ([]entity.Chapter, error)
}

type chapterRepository struct{}

func NewChapterRepository() *chapterRepository {
	return &chapterRepository{}
}

func (r *chapterRepository) Create(ctx context.Context, chapter *entity.Chapter) error {
	return xcontext.DB(ctx).Create(chapter).Error
}

func (r *chapterRepository) GetByBookID(ctx context.Context, bookID string) ([]entity.Chapter, error) {
	result := []entity.Chapter{}
	if err := xcontext.DB(ctx).Find(&result, "book_id=?", bookID).Error; err != nil {
		return nil, err
	}

	return result, nil
}
