package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	MongoDBName string `mapstructure:"MONGO_DB_NAME"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Slot lock configuration. Backend is "memory" for a single instance or
	// "redis" when more than one replica serves bookings.
	LockBackend    string `mapstructure:"LOCK_BACKEND"`
	LockTTLMinutes int    `mapstructure:"LOCK_TTL_MINUTES"`

	// Background job configuration.
	GCIntervalMinutes         int  `mapstructure:"GC_INTERVAL_MINUTES"`
	ReconcileIntervalMinutes  int  `mapstructure:"RECONCILE_INTERVAL_MINUTES"`
	AutoCancelIntervalMinutes int  `mapstructure:"AUTO_CANCEL_INTERVAL_MINUTES"`
	AutoCancelGraceMinutes    int  `mapstructure:"AUTO_CANCEL_GRACE_MINUTES"`
	NotifyClientsOnNoShow     bool `mapstructure:"NOTIFY_CLIENTS_ON_NO_SHOW"`
	NotifyVendorsOnNoShow     bool `mapstructure:"NOTIFY_VENDORS_ON_NO_SHOW"`
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
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB_NAME", "slotserve")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LOCK_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("LOCK_BACKEND", "memory")
	viper.SetDefault("LOCK_TTL_MINUTES", 30)
	viper.SetDefault("GC_INTERVAL_MINUTES", 10)
	viper.SetDefault("RECONCILE_INTERVAL_MINUTES", 30)
	viper.SetDefault("AUTO_CANCEL_INTERVAL_MINUTES", 15)
	viper.SetDefault("AUTO_CANCEL_GRACE_MINUTES", 15)
	viper.SetDefault("NOTIFY_CLIENTS_ON_NO_SHOW", true)
	viper.SetDefault("NOTIFY_VENDORS_ON_NO_SHOW", true)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// LockTTL returns the configured slot lock lifetime.
func (c Config) LockTTL() time.Duration {
	return time.Duration(c.LockTTLMinutes) * time.Minute
}

// AutoCancelGrace returns the configured no-show grace period.
func (c Config) AutoCancelGrace() time.Duration {
	return time.Duration(c.AutoCancelGraceMinutes) * time.Minute
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
