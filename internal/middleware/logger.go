package middleware

import (
	"context"

	"github.com/questhive/backend/pkg/errorx"
	"github.com/questhive/backend/pkg/router"
	"github.com/questhive/backend/pkg/xcontext"
)

// Logger is a closer that records every finished request with its resolved
// error code.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.Request(ctx)
		if req == nil {
			return
		}

		code := 0
		if err := xcontext.Error(ctx); err != nil {
			if errx, ok := err.(errorx.Error); ok {
				code = int(errx.Code)
			} else {
				code = int(errorx.Unknown.Code)
			}
		}

		xcontext.Logger(ctx).Infof("%s | %s | %d", req.Method, req.URL.Path, code)
	}
}
