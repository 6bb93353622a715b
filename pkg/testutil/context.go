package testutil

import (
	"context"
	"time"

	"github.com/questhive/backend/config"
	"github.com/questhive/backend/internal/entity"
	"github.com/questhive/backend/pkg/logger"
	"github.com/questhive/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockContext returns a context carrying test configs and a fresh in-memory
// database with the full schema migrated.
func MockContext() context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, testConfigs())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	ctx = xcontext.WithDB(ctx, db)
	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}

func testConfigs() config.Configs {
	return config.Configs{
		Env: "testing",
		ApiServer: config.ServerConfigs{
			Host: "localhost",
			Port: "8080",
		},
		Auth: config.AuthConfigs{
			TokenSecret: "token-secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Crypto: config.CryptoConfigs{
			SecretBoxBaseSecret: "base-secret-for-testing",
		},
		Payment: config.PaymentConfigs{
			APIDomain:       "https://payment.example.com",
			SecretKeyPrefix: "sk_",
			CallTimeout:     10 * time.Second,
		},
		Quest: config.QuestConfigs{
			WebhookTimeout:       10 * time.Second,
			ServerStatusTimeout:  15 * time.Second,
			ServerStatusPath:     "/.well-known/questhive/status",
			ResponseMaxStaleness: 300 * time.Second,
		},
	}
}
