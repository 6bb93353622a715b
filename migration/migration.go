package migration

import (
	"context"

	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/pkg/xcontext"
)

func Migrate(ctx context.Context) error {
	if err := entity.MigrateTable(ctx); err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Database schema is up to date")
	return nil
}
