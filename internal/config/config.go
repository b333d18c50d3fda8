// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Social      SocialConfig
	AI          AIConfig
	Realtime    RealtimeConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds the optional snapshot store configuration. An
// empty URL disables persistence entirely.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MinIdleConns int
	MaxLifetime  time.Duration
}

// Enabled reports whether a snapshot database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// SocialConfig holds platform credentials and default accounts. A
// platform whose credential is absent serves placeholder data.
type SocialConfig struct {
	TwitterBearerToken    string
	TwitterConsumerKey    string
	TwitterConsumerSecret string
	TwitterAccessToken    string
	TwitterAccessSecret   string
	LinkedInAccessToken   string
	InstagramAccessToken  string

	DefaultTwitterAccount   string
	DefaultLinkedInAccount  string
	DefaultInstagramAccount string

	RequestTimeout time.Duration
}

// AIConfig holds the content analyzer configuration
type AIConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// Enabled reports whether an AI credential is configured.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// RealtimeConfig holds broadcast loop configuration
type RealtimeConfig struct {
	AnalyticsInterval time.Duration
	TrackingInterval  time.Duration
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MinIdleConns: getEnvAsInt("DB_MIN_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Social: SocialConfig{
			TwitterBearerToken:    getEnv("TWITTER_BEARER_TOKEN", ""),
			TwitterConsumerKey:    getEnv("TWITTER_CONSUMER_KEY", ""),
			TwitterConsumerSecret: getEnv("TWITTER_CONSUMER_SECRET", ""),
			TwitterAccessToken:    getEnv("TWITTER_ACCESS_TOKEN", ""),
			TwitterAccessSecret:   getEnv("TWITTER_ACCESS_SECRET", ""),
			LinkedInAccessToken:   getEnv("LINKEDIN_ACCESS_TOKEN", ""),
			InstagramAccessToken:  getEnv("INSTAGRAM_ACCESS_TOKEN", ""),

			DefaultTwitterAccount:   getEnv("SOCIAL_DEFAULT_TWITTER", "contentanalytics"),
			DefaultLinkedInAccount:  getEnv("SOCIAL_DEFAULT_LINKEDIN", "content-analytics-platform"),
			DefaultInstagramAccount: getEnv("SOCIAL_DEFAULT_INSTAGRAM", "contentanalytics"),

			RequestTimeout: getEnvAsDuration("SOCIAL_REQUEST_TIMEOUT", 10*time.Second),
		},
		AI: AIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			APIURL:  getEnv("OPENAI_API_URL", "https://api.openai.com/v1"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
			Timeout: getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
		},
		Realtime: RealtimeConfig{
			AnalyticsInterval: getEnvAsDuration("REALTIME_ANALYTICS_INTERVAL", 30*time.Second),
			TrackingInterval:  getEnvAsDuration("REALTIME_TRACKING_INTERVAL", 10*time.Second),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Realtime.AnalyticsInterval <= 0 {
		return fmt.Errorf("analytics interval must be positive")
	}
	if config.Realtime.TrackingInterval <= 0 {
		return fmt.Errorf("tracking interval must be positive")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
