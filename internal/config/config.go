package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v6"
)

const (
	TokenStorePostgres = "postgres"
	TokenStoreRedis    = "redis"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE"`
	Secret     string `env:"SECRET,required"`
	Port       int    `env:"PORT" envDefault:"8000"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL"`

	// TokenStore selects where auth tokens live: "postgres" keeps them next
	// to the users, "redis" moves them to the key-value store.
	TokenStore string `env:"TOKEN_STORE" envDefault:"postgres"`

	BcryptHasherCost                  int `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDurationMinutes int `env:"PASSWORD_RESET_VALID_DURATION_MINUTES" envDefault:"30"`

	SiteName      string  `env:"SITE_NAME" envDefault:"User Auth"`
	PublicBaseURL url.URL `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8000"`

	AwsRegion      string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY"`
	AwsEmailSender string `env:"AWS_EMAIL_SENDER"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if config.TokenStore != TokenStorePostgres && config.TokenStore != TokenStoreRedis {
		return nil, fmt.Errorf("invalid TOKEN_STORE value: %q", config.TokenStore)
	}
	if config.TokenStore == TokenStoreRedis && config.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL must be set when TOKEN_STORE is %q", TokenStoreRedis)
	}
	return config, nil
}
