package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	MinIO    MinIOConfig
	Local    LocalStorageConfig
	SMS      SMSConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host              string
	Port              int
	User              string
	Password          string
	Database          string
	SSLMode           string
	MaxConns          int
	MinConns          int
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	ConnectTimeout    time.Duration
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint       string // minio:9000
	PublicEndpoint string // host clients can reach, e.g. localhost:9000
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
}

// LocalStorageConfig configures the filesystem fallback for cover uploads.
type LocalStorageConfig struct {
	Path    string // directory for uploaded files
	BaseURL string // public base URL serving that directory
}

type SMSConfig struct {
	APIURL        string
	APIKey        string
	CountryPrefix string // prepended to numbers without one
	TrunkPrefix   string // national trunk digit rewritten to CountryPrefix
	Timeout       time.Duration
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Book Catalog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              getEnvInt("DB_PORT", 5432),
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			Database:          getEnv("DB_NAME", "book_catalog"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          getEnvInt("DB_MAX_CONNS", 25),
			MinConns:          getEnvInt("DB_MIN_CONNS", 5),
			MaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", time.Minute),
			HealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
			MaxRetries:        getEnvInt("DB_MAX_RETRIES", 5),
			RetryDelay:        getEnvDuration("DB_RETRY_DELAY", time.Second),
			ConnectTimeout:    getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
			PublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", "localhost:9000"),
			AccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:         getEnv("MINIO_BUCKET", "book-covers"),
			UseSSL:         getEnvBool("MINIO_USE_SSL", false),
		},
		Local: LocalStorageConfig{
			Path:    getEnv("LOCAL_STORAGE_PATH", "uploads/covers"),
			BaseURL: getEnv("LOCAL_STORAGE_BASE_URL", "/uploads/covers"),
		},
		SMS: SMSConfig{
			APIURL:        getEnv("SMS_API_URL", "https://smspilot.ru/api.php"),
			APIKey:        getEnv("SMS_API_KEY", ""),
			CountryPrefix: getEnv("SMS_COUNTRY_PREFIX", "+7"),
			TrunkPrefix:   getEnv("SMS_TRUNK_PREFIX", "8"),
			Timeout:       getEnvDuration("SMS_TIMEOUT", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks critical config values.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.SMS.APIKey == "" {
			fmt.Println("WARNING: SMS_API_KEY not set - subscriber notifications will not be delivered")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
