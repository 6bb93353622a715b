package middleware

import (
	"context"
	"strings"

	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/router"
	"github.com/questhive/backend/pkg/xcontext"
)

// AuthVerifier resolves the request user from the Authorization header if
// one is present. It never fails on its own; Authenticate is the middleware
// that enforces a resolved user.
func AuthVerifier() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req := xcontext.Request(ctx)
		if req == nil {
			return ctx, nil
		}

		token := strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			return ctx, nil
		}

		accessToken, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return ctx, nil
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}
