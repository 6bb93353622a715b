package middleware

import (
	"context"

	"github.com/questhive/backend/internal/repository"
	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/router"
	"github.com/questhive/backend/pkg/xcontext"
)

func MustAdmin(userRepo repository.UserRepository) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		userID := xcontext.RequestUserID(ctx)
		if userID == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		user, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}

		if !user.IsAdmin {
			return nil, errorx.New(errorx.PermissionDenied, "Only admin can call this API")
		}

		return ctx, nil
	}
}
