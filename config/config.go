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
	PublicDir         string `mapstructure:"PUBLIC_DIR"`

	// Business identity, used by notifications and the chat assistant.
	CompanyName  string `mapstructure:"COMPANY_NAME"`
	CompanyPhone string `mapstructure:"COMPANY_PHONE"`
	ServiceArea  string `mapstructure:"SERVICE_AREA"`

	// Scheduling.
	Timezone       string `mapstructure:"TIMEZONE"`
	ApptSpanHours  int    `mapstructure:"APPT_SPAN_HOURS"`
	BlockStore     string `mapstructure:"BLOCK_STORE"` // "file" or "mongo"
	BlockStoreFile string `mapstructure:"BLOCK_STORE_FILE"`

	// MongoDB; empty DATABASE_URL disables the records repository and the
	// mongo block store.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisChatDB   int    `mapstructure:"REDIS_CHAT_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Outbound email.
	SMTPHost    string `mapstructure:"SMTP_HOST"`
	SMTPPort    string `mapstructure:"SMTP_PORT"`
	SMTPFrom    string `mapstructure:"SMTP_FROM"`
	NotifyEmail string `mapstructure:"NOTIFY_EMAIL"`

	// Partner webhook; empty disables delivery.
	PartnerWebhookURL string `mapstructure:"PARTNER_WEBHOOK_URL"`

	// Google Calendar integration.
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string `mapstructure:"GOOGLE_REDIRECT_URI"`
	GoogleTokenFile    string `mapstructure:"GOOGLE_TOKEN_FILE"`
	// When true and the calendar is connected, the calendar is consulted
	// as the authority at reservation time instead of the block store.
	CalendarAuthority bool `mapstructure:"CALENDAR_AUTHORITY"`

	// Chat assistant.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
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
	viper.SetDefault("PUBLIC_DIR", "./public")
	viper.SetDefault("COMPANY_NAME", "M. Jacob Company")
	viper.SetDefault("COMPANY_PHONE", "")
	viper.SetDefault("SERVICE_AREA", "the greater Pittsburgh area")
	viper.SetDefault("TIMEZONE", "America/New_York")
	viper.SetDefault("APPT_SPAN_HOURS", 2)
	viper.SetDefault("BLOCK_STORE", "file")
	viper.SetDefault("BLOCK_STORE_FILE", "./data/blocked.json")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CHAT_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", "25")
	viper.SetDefault("SMTP_FROM", "")
	viper.SetDefault("NOTIFY_EMAIL", "")
	viper.SetDefault("PARTNER_WEBHOOK_URL", "")
	viper.SetDefault("GOOGLE_TOKEN_FILE", "./data/google-token.json")
	viper.SetDefault("CALENDAR_AUTHORITY", false)

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
