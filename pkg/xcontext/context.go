// Package xcontext stores the per-request dependencies (configs, logger,
// database, http client, token engine) inside a context.Context and exposes
// typed accessors for them.
package xcontext

import (
	"context"
	"net/http"

	"github.com/questhive/backend/config"
	"github.com/questhive/backend/internal/model"
	"github.com/questhive/backend/pkg/authenticator"
	"github.com/questhive/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	txKey          struct{}
	httpClientKey  struct{}
	tokenEngineKey struct{}
	userIDKey      struct{}
	requestKey     struct{}
)

func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

// Request returns the inbound *http.Request, or nil outside a request scope.
func Request(ctx context.Context) *http.Request {
	if r, ok := ctx.Value(requestKey{}).(*http.Request); ok {
		return r
	}

	return nil
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	if cfg, ok := ctx.Value(configsKey{}).(config.Configs); ok {
		return cfg
	}

	return config.Configs{}
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger(logger.SILENCE)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction begun by WithDBTransaction if one is active on
// this context, otherwise the root database handle.
func DB(ctx context.Context) *gorm.DB {
	if h, ok := ctx.Value(txKey{}).(*txHolder); ok && !h.done {
		return h.tx
	}

	if db, ok := ctx.Value(dbKey{}).(*gorm.DB); ok {
		return db
	}

	panic("no database in context")
}

type txHolder struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a transaction and returns a context whose DB()
// resolves to it. The caller pairs it with a deferred
// WithRollbackDBTransaction and a WithCommitDBTransaction on the success
// path; whichever runs first wins.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txHolder{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) {
	if h, ok := ctx.Value(txKey{}).(*txHolder); ok && !h.done {
		h.tx.Commit()
		h.done = true
	}
}

func WithRollbackDBTransaction(ctx context.Context) {
	if h, ok := ctx.Value(txKey{}).(*txHolder); ok && !h.done {
		h.tx.Rollback()
		h.done = true
	}
}

func WithHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

func HTTPClient(ctx context.Context) *http.Client {
	if client, ok := ctx.Value(httpClientKey{}).(*http.Client); ok {
		return client
	}

	return http.DefaultClient
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	engine, _ := ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
	return engine
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// RequestUserID returns the authenticated user id resolved by the auth
// middleware, or an empty string for anonymous requests.
func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}

	return ""
}
