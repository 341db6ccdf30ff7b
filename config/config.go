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
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Mongo configuration (booking-audit records).
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Collaborator credentials.
	GeminiAPIKey      string `mapstructure:"GEMINI_API_KEY"`
	StripeKey         string `mapstructure:"STRIPE_KEY"`
	GoogleCredentials string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	CalendarID        string `mapstructure:"CALENDAR_ID"`

	// Booking policy.
	BookingAppURL       string `mapstructure:"BOOKING_APP_URL"`
	BusinessStartHour   int    `mapstructure:"BUSINESS_START_HOUR"`
	BusinessEndHour     int    `mapstructure:"BUSINESS_END_HOUR"`
	BusinessTimezone    string `mapstructure:"BUSINESS_TIMEZONE"`
	SlotDurationMinutes int    `mapstructure:"SLOT_DURATION_MINUTES"`
	BookingWindowDays   int    `mapstructure:"BOOKING_WINDOW_DAYS"`

	// Mailbox poller.
	MailPollIntervalSeconds int `mapstructure:"MAIL_POLL_INTERVAL_SECONDS"`

	// Admin API.
	AdminToken string `mapstructure:"ADMIN_TOKEN"`
}

var AppConfig Config

// LoadConfig initializes Viper to load config values from env, file, or defaults.
func LoadConfig() {
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
	viper.SetDefault("DATABASE_NAME", "medibook")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("CALENDAR_ID", "primary")
	viper.SetDefault("BOOKING_APP_URL", "http://localhost:3000/book")
	viper.SetDefault("BUSINESS_START_HOUR", 9)
	viper.SetDefault("BUSINESS_END_HOUR", 17)
	viper.SetDefault("BUSINESS_TIMEZONE", "America/New_York")
	viper.SetDefault("SLOT_DURATION_MINUTES", 30)
	viper.SetDefault("BOOKING_WINDOW_DAYS", 14)
	viper.SetDefault("MAIL_POLL_INTERVAL_SECONDS", 60)
	viper.SetDefault("ADMIN_TOKEN", "")

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

// MailPollInterval returns the mailbox poll cadence as a duration.
func MailPollInterval() time.Duration {
	return time.Duration(AppConfig.MailPollIntervalSeconds) * time.Second
}
