package main

import (
	"context"
	"net/http"

	"github.com/questhive/backend/internal/middleware"
	"github.com/questhive/backend/migration"
	"github.com/questhive/backend/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()

	root := router.New(s.db, s.configs, s.logger)
	root.AddCloser(middleware.Logger())
	root.Before(middleware.AuthVerifier())

	router.GET(root, "/getQuest", s.questDomain.Get)
	router.GET(root, "/getListQuest", s.questDomain.GetList)
	router.GET(root, "/health", s.health)

	authRouter := root.Branch()
	authRouter.Before(middleware.Authenticate())
	router.POST(authRouter, "/verifyQuest", s.verificationDomain.Verify)
	router.POST(authRouter, "/updateServerProfile", s.userServerDomain.UpdateProfile)
	router.GET(authRouter, "/getServerProfile", s.userServerDomain.GetProfile)
	router.GET(authRouter, "/getMyRewards", s.rewardDomain.GetMyRewards)

	adminRouter := root.Branch()
	adminRouter.Before(middleware.MustAdmin(s.userRepo))
	router.POST(adminRouter, "/upsertSetting", s.settingDomain.Upsert)
	router.GET(adminRouter, "/getSetting", s.settingDomain.Get)

	s.logger.Infof("Starting API server on %s", s.configs.ApiServer.Address())
	httpSrv := &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: root.Handler(),
	}

	return httpSrv.ListenAndServe()
}

func (s *srv) migrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	return migration.Migrate(s.ctx)
}

type healthRequest struct{}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *srv) health(ctx context.Context, req *healthRequest) (*healthResponse, error) {
	return &healthResponse{Status: "ok"}, nil
}
