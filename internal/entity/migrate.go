package entity

import (
	"context"

	"github.com/questhive/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Book{},
		&Chapter{},
		&Quest{},
		&QuestProgress{},
		&UserServerProfile{},
		&Reward{},
		&UserReward{},
		&Setting{},
	)
}
