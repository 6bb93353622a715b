package domain

import (
	"context"
	"database/sql"

	"github.com/questhive/backend/pkg/xcontext"
)

func withUser(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}

func nullString(s string) sql.NullString {
	return sql.NullString{Valid: true, String: s}
}
