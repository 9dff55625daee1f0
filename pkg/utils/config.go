package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	Redis    RedisConfig
	Queue    QueueConfig
	Booking  BookingConfig
	Reaper   ReaperConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// RedisConfig drives the token-bucket rate limiter on the hold/checkout
// routes. Leaving Addr empty disables the limiter entirely.
type RedisConfig struct {
	Addr             string
	Password         string
	DB               int
	RateLimitBurst   int
	RateLimitPerMin  int
	RateLimitTTLSecs int
}

// QueueConfig points at RabbitMQ for the booking.confirmed receipt events.
// Leaving URL empty disables publishing and the consumer worker.
type QueueConfig struct {
	URL string
}

type BookingConfig struct {
	PendingExpiryMinutes int
	DefaultHoldMinutes   int
}

type ReaperConfig struct {
	Enabled         bool
	IntervalMinutes int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_RATE_BURST", 20)
	viper.SetDefault("REDIS_RATE_PER_MIN", 60)
	viper.SetDefault("REDIS_RATE_TTL_SECS", 120)
	viper.SetDefault("BOOKING_EXPIRY_MINUTES", 15)
	viper.SetDefault("DEFAULT_HOLD_MINUTES", 5)
	viper.SetDefault("REAPER_ENABLED", false)
	viper.SetDefault("REAPER_INTERVAL_MINUTES", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Redis: RedisConfig{
			Addr:             viper.GetString("REDIS_ADDR"),
			Password:         viper.GetString("REDIS_PASSWORD"),
			DB:               viper.GetInt("REDIS_DB"),
			RateLimitBurst:   viper.GetInt("REDIS_RATE_BURST"),
			RateLimitPerMin:  viper.GetInt("REDIS_RATE_PER_MIN"),
			RateLimitTTLSecs: viper.GetInt("REDIS_RATE_TTL_SECS"),
		},
		Queue: QueueConfig{
			URL: viper.GetString("AMQP_URL"),
		},
		Booking: BookingConfig{
			PendingExpiryMinutes: viper.GetInt("BOOKING_EXPIRY_MINUTES"),
			DefaultHoldMinutes:   viper.GetInt("DEFAULT_HOLD_MINUTES"),
		},
		Reaper: ReaperConfig{
			Enabled:         viper.GetBool("REAPER_ENABLED"),
			IntervalMinutes: viper.GetInt("REAPER_INTERVAL_MINUTES"),
		},
	}

	return config, nil
}
