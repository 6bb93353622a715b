package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/questhive/backend/config"
	"github.com/questhive/backend/internal/domain"
	"github.com/questhive/backend/internal/domain/questreward"
	"github.com/questhive/backend/internal/domain/questverify"
	"github.com/questhive/backend/internal/repository"
	"github.com/questhive/backend/pkg/api"
	"github.com/questhive/backend/pkg/crypto"
	"github.com/questhive/backend/pkg/logger"
	"github.com/questhive/backend/pkg/xcontext"
	"github.com/questhive/backend/pkg/xredis"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB
	redis   xredis.Client

	userRepo          repository.UserRepository
	questRepo         repository.QuestRepository
	chapterRepo       repository.ChapterRepository
	progressRepo      repository.QuestProgressRepository
	serverProfileRepo repository.UserServerProfileRepository
	rewardRepo        repository.RewardRepository
	settingRepo       repository.SettingRepository

	questDomain        domain.QuestDomain
	verificationDomain domain.VerificationDomain
	userServerDomain   domain.UserServerDomain
	rewardDomain       domain.RewardDomain
	settingDomain      domain.SettingDomain
}

func (s *srv) loadConfig() {
	s.configs = config.Configs{
		Env: getEnv("ENV", "local"),
		ApiServer: config.ServerConfigs{
			Host:      getEnv("HOST", "localhost"),
			Port:      getEnv("PORT", "8080"),
			AllowCORS: strings.Fields(getEnv("ALLOW_CORS", "")),
		},
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "questhive"),
			User:     getEnv("MYSQL_USER", "questhive"),
			Password: getEnv("MYSQL_PASSWORD", "questhive"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: parseDuration("ACCESS_TOKEN_DURATION", time.Hour*24),
			},
		},
		Crypto: config.CryptoConfigs{
			SecretBoxBaseSecret: os.Getenv("SECRET_BOX_BASE_SECRET"),
		},
		Payment: config.PaymentConfigs{
			APIDomain:       getEnv("PAYMENT_API_DOMAIN", "https://api.stripe.com"),
			SecretKeyPrefix: getEnv("PAYMENT_KEY_PREFIX", "sk_"),
			CallTimeout:     parseDuration("PAYMENT_CALL_TIMEOUT", 10*time.Second),
		},
		Quest: config.QuestConfigs{
			WebhookTimeout:       parseDuration("WEBHOOK_TIMEOUT", 10*time.Second),
			ServerStatusTimeout:  parseDuration("SERVER_STATUS_TIMEOUT", 15*time.Second),
			ServerStatusPath:     getEnv("SERVER_STATUS_PATH", "/.well-known/questhive/status"),
			ResponseMaxStaleness: parseDuration("RESPONSE_MAX_STALENESS", 300*time.Second),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), s.configs)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

// loadRedis is optional. Without redis the server-status verifier falls back
// to timestamp freshness alone.
func (s *srv) loadRedis() {
	if s.configs.Redis.Addr == "" {
		s.logger.Warnf("Redis is not configured, replay cache is disabled")
		return
	}

	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redis = redisClient
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.questRepo = repository.NewQuestRepository()
	s.chapterRepo = repository.NewChapterRepository()
	s.progressRepo = repository.NewQuestProgressRepository()
	s.serverProfileRepo = repository.NewUserServerProfileRepository()
	s.rewardRepo = repository.NewRewardRepository()
	s.settingRepo = repository.NewSettingRepository()
}

func (s *srv) loadDomains() {
	secretBox, err := crypto.NewSecretBox(s.configs.Crypto.SecretBoxBaseSecret)
	if err != nil {
		panic("SECRET_BOX_BASE_SECRET must be configured: " + err.Error())
	}

	verifierFactory := questverify.NewFactory(
		s.serverProfileRepo, secretBox, api.NewGenerator(), s.redis)
	rewardEvaluator := questreward.NewEvaluator(
		s.questRepo, s.chapterRepo, s.progressRepo, s.rewardRepo)

	s.questDomain = domain.NewQuestDomain(s.questRepo, s.progressRepo)
	s.verificationDomain = domain.NewVerificationDomain(
		s.questRepo, s.progressRepo, verifierFactory, rewardEvaluator)
	s.userServerDomain = domain.NewUserServerDomain(s.serverProfileRepo, secretBox)
	s.rewardDomain = domain.NewRewardDomain(s.rewardRepo)
	s.settingDomain = domain.NewSettingDomain(s.settingRepo, secretBox)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		panic("invalid duration in " + key + ": " + err.Error())
	}

	return d
}
