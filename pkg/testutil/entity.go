package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/pkg/xcontext"
)

func CreateUser(ctx context.Context, user *entity.User) *entity.User {
	if user == nil {
		user = &entity.User{}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if user.Name == "" {
		user.Name = "user-" + user.ID
	}

	if err := xcontext.DB(ctx).Create(user).Error; err != nil {
		panic(err)
	}

	return user
}

func CreateChapter(ctx context.Context, chapter *entity.Chapter) *entity.Chapter {
	if chapter == nil {
		chapter = &entity.Chapter{}
	}

	if chapter.ID == "" {
		chapter.ID = uuid.NewString()
	}

	if err := xcontext.DB(ctx).Create(chapter).Error; err != nil {
		panic(err)
	}

	return chapter
}

func CreateQuest(ctx context.Context, quest *entity.Quest) *entity.Quest {
	if quest == nil {
		quest = &entity.Quest{}
	}

	if quest.ID == "" {
		quest.ID = uuid.NewString()
	}

	if quest.Slug == "" {
		quest.Slug = "quest-" + quest.ID
	}

	if quest.Status == "" {
		quest.Status = entity.QuestActive
	}

	if quest.VerificationType == "" {
		quest.VerificationType = entity.VerifyManual
	}

	if err := xcontext.DB(ctx).Create(quest).Error; err != nil {
		panic(err)
	}

	return quest
}

func CreateReward(ctx context.Context, reward *entity.Reward) *entity.Reward {
	if reward == nil {
		reward = &entity.Reward{}
	}

	if reward.ID == "" {
		reward.ID = uuid.NewString()
	}

	if reward.Name == "" {
		reward.Name = "reward-" + reward.ID
	}

	reward.IsActive = true
	if err := xcontext.DB(ctx).Create(reward).Error; err != nil {
		panic(err)
	}

	return reward
}
