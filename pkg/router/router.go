package router

import (
	"context"
	"net/http"

	"github.com/questhive/backend/config"
	"github.com/questhive/backend/internal/model"
	"github.com/questhive/backend/pkg/authenticator"
	"github.com/questhive/backend/pkg/logger"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// Handlers receive a plain context.Context carrying the request
// dependencies via xcontext.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

type MiddlewareFunc func(ctx context.Context) (context.Context, error)
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	cfg         config.Configs
	logger      logger.Logger
	db          *gorm.DB
	tokenEngine authenticator.TokenEngine[model.AccessToken]

	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, l logger.Logger) *Router {
	return &Router{
		mux:         http.NewServeMux(),
		cfg:         cfg,
		logger:      l,
		db:          db,
		tokenEngine: authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.TokenSecret),
	}
}

// Branch returns a router sharing the same mux but with independent
// middleware chains, so route groups can require different middleware.
func (r *Router) Branch() *Router {
	branch := *r
	branch.befores = make([]MiddlewareFunc, len(r.befores))
	copy(branch.befores, r.befores)
	branch.closers = make([]CloserFunc, len(r.closers))
	copy(branch.closers, r.closers)
	return &branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	if len(r.cfg.ApiServer.AllowCORS) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins:   r.cfg.ApiServer.AllowCORS,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		})
		return c.Handler(r.mux)
	}

	return r.mux
}
