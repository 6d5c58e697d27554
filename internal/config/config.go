package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	MetricsAPI MetricsAPIConfig
	Analytics  AnalyticsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// MetricsAPIConfig holds the remote aggregates API configuration. An empty
// BaseURL disables the authoritative source; every snapshot is then computed
// locally.
type MetricsAPIConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// AnalyticsConfig holds aggregation engine tuning
type AnalyticsConfig struct {
	CacheTTL        time.Duration
	CacheSize       int
	TrendDays       int
	RefreshInterval time.Duration
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "worklens"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Metrics API configuration
	metricsTimeout, err := time.ParseDuration(getEnv("METRICS_API_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_API_TIMEOUT: %w", err)
	}
	metricsRetries, err := strconv.Atoi(getEnv("METRICS_API_MAX_RETRIES", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_API_MAX_RETRIES: %w", err)
	}

	config.MetricsAPI = MetricsAPIConfig{
		BaseURL:    getEnv("METRICS_API_BASE_URL", ""),
		APIKey:     getEnv("METRICS_API_KEY", ""),
		Timeout:    metricsTimeout,
		MaxRetries: metricsRetries,
	}

	// Analytics configuration
	cacheTTL, err := time.ParseDuration(getEnv("ANALYTICS_CACHE_TTL", "3m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_CACHE_TTL: %w", err)
	}
	cacheSize, err := strconv.Atoi(getEnv("ANALYTICS_CACHE_SIZE", "256"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_CACHE_SIZE: %w", err)
	}
	trendDays, err := strconv.Atoi(getEnv("ANALYTICS_TREND_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_TREND_DAYS: %w", err)
	}
	refreshInterval, err := time.ParseDuration(getEnv("ANALYTICS_REFRESH_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_REFRESH_INTERVAL: %w", err)
	}

	config.Analytics = AnalyticsConfig{
		CacheTTL:        cacheTTL,
		CacheSize:       cacheSize,
		TrendDays:       trendDays,
		RefreshInterval: refreshInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.MetricsAPI.BaseURL != "" && c.MetricsAPI.APIKey == "" {
		return fmt.Errorf("METRICS_API_KEY is required when METRICS_API_BASE_URL is set")
	}
	if c.Analytics.TrendDays <= 0 {
		return fmt.Errorf("ANALYTICS_TREND_DAYS must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
