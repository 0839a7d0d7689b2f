package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL string `env:"DATABASE_URL" envDefault:"host=localhost user=freshmarket dbname=freshmarket sslmode=disable"`

	RedisHost     string `env:"REDIS_HOST"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	ElasticURL      string `env:"ELASTIC_URL"`
	ElasticUser     string `env:"ELASTIC_USER"`
	ElasticPassword string `env:"ELASTIC_PASSWORD"`

	MinIO MinIO `envPrefix:"MINIO_"`
	SMTP  SMTP  `envPrefix:"SMTP_"`

	SessionSecret string `env:"SESSION_SECRET"`
	JWTSecret     string `env:"JWT_SECRET" envDefault:"freshmarket-dev-secret"`

	PaymentProvider string `env:"PAYMENT_PROVIDER" envDefault:"simulated"`
	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
}

type MinIO struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"freshmarket-images"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

type SMTP struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"noreply@freshmarket.dev"`
}

// C is the process-wide configuration, populated by Load.
var C Config

func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}
	if err := env.Parse(&C); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
}
