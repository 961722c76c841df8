package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage backend: "memory" (default) or "mongo".
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DatabaseName   string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`
	CacheEnabled         bool   `mapstructure:"CACHE_ENABLED"`
	RemindersEnabled     bool   `mapstructure:"REMINDERS_ENABLED"`
	ReminderLeadMinutes  int    `mapstructure:"REMINDER_LEAD_MINUTES"`

	// Broker dispatch loop.
	DispatchIntervalMS int `mapstructure:"DISPATCH_INTERVAL_MS"`
	DeliveryTimeoutMS  int `mapstructure:"DELIVERY_TIMEOUT_MS"`

	// Payment gateways: "mock", "test" or "production".
	PaymentEnv        string `mapstructure:"PAYMENT_ENV"`
	StripeKey         string `mapstructure:"STRIPE_KEY"`
	YooKassaShopID    string `mapstructure:"YOOKASSA_SHOP_ID"`
	YooKassaSecretKey string `mapstructure:"YOOKASSA_SECRET_KEY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("STORAGE_BACKEND", "memory")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "photostudio")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("REMINDERS_ENABLED", false)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)
	viper.SetDefault("DISPATCH_INTERVAL_MS", 500)
	viper.SetDefault("DELIVERY_TIMEOUT_MS", 5000)
	viper.SetDefault("PAYMENT_ENV", "mock")

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
