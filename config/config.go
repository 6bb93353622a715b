package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	ApiServer ServerConfigs
	Database  DatabaseConfigs
	Redis     RedisConfigs
	Auth      AuthConfigs
	Crypto    CryptoConfigs
	Payment   PaymentConfigs
	Quest     QuestConfigs
}

type ServerConfigs struct {
	Host      string
	Port      string
	AllowCORS []string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

// CryptoConfigs carries the process-wide base secret every at-rest
// encryption key is derived from. The server refuses to start without it.
type CryptoConfigs struct {
	SecretBoxBaseSecret string
}

type PaymentConfigs struct {
	APIDomain       string
	SecretKeyPrefix string
	CallTimeout     time.Duration
}

type QuestConfigs struct {
	WebhookTimeout       time.Duration
	ServerStatusTimeout  time.Duration
	ServerStatusPath     string
	ResponseMaxStaleness time.Duration
}
