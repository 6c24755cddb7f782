package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	DatabaseDSN       string `mapstructure:"DATABASE_DSN"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	FrontendURL       string `mapstructure:"FRONTEND_URL"`

	// Redis configuration (webhook dedup cache).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Payment gateway.
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`

	// External collaborators.
	CloudinaryURL           string `mapstructure:"CLOUDINARY_URL"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Lifecycle tuning. The deadlines are correctness-bearing; the sweep
	// intervals are only how often they are enforced.
	SigningTokenTTLMin  int    `mapstructure:"SIGNING_TOKEN_TTL_MIN"`
	SigningDeadlineMin  int    `mapstructure:"SIGNING_DEADLINE_MIN"`
	PaymentDeadlineMin  int    `mapstructure:"PAYMENT_DEADLINE_MIN"`
	AutoCancelEvery     string `mapstructure:"AUTO_CANCEL_EVERY"`
	RestoreAvailability string `mapstructure:"RESTORE_AVAILABILITY_EVERY"`
}

var AppConfig Config

func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_DSN", "carrent:carrent@tcp(localhost:3306)/carrent?charset=utf8mb4&parseTime=True&loc=UTC")
	viper.SetDefault("JWT_SECRET", "local_dev_secret")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("SIGNING_TOKEN_TTL_MIN", 60)
	viper.SetDefault("SIGNING_DEADLINE_MIN", 15)
	viper.SetDefault("PAYMENT_DEADLINE_MIN", 15)
	viper.SetDefault("AUTO_CANCEL_EVERY", "10m")
	viper.SetDefault("RESTORE_AVAILABILITY_EVERY", "1h")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SigningTokenTTL returns the signing-token lifetime as a duration.
func (c Config) SigningTokenTTL() time.Duration {
	return time.Duration(c.SigningTokenTTLMin) * time.Minute
}

// SigningDeadline returns how long an unsigned rental may stay PENDING.
func (c Config) SigningDeadline() time.Duration {
	return time.Duration(c.SigningDeadlineMin) * time.Minute
}

// PaymentDeadline returns how long a signed rental may stay unpaid.
func (c Config) PaymentDeadline() time.Duration {
	return time.Duration(c.PaymentDeadlineMin) * time.Minute
}
