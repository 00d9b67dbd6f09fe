package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "coldmail/job-application-helper/internal/errors"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreValkey = "valkey"
)

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Storage StorageConfig
	Session SessionConfig
	Valkey  ValkeyConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	RateLimitMax int
}

type GeminiConfig struct {
	APIKey        string
	Model         string
	MaxConcurrent int64
	// SecretsFile is read only when GEMINI_API_KEY is not set in the environment.
	SecretsFile string
}

type StorageConfig struct {
	MaxFileSize int64
}

type SessionConfig struct {
	Store      string
	TTL        time.Duration
	CookieName string
}

type ValkeyConfig struct {
	Addr     string
	Password string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			Env:          getEnv("ENV", "development"),
			RateLimitMax: getEnvAsInt("RATE_LIMIT_MAX", 30),
		},
		Gemini: GeminiConfig{
			APIKey:        getEnv("GEMINI_API_KEY", ""),
			Model:         getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			MaxConcurrent: getEnvAsInt64("MAX_CONCURRENT_COMPLETIONS", 4),
			SecretsFile:   getEnv("SECRETS_FILE", ".secrets.env"),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Session: SessionConfig{
			Store:      strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
			TTL:        getEnvAsDuration("SESSION_TTL", "2h"),
			CookieName: getEnv("SESSION_COOKIE", "coldmail_session"),
		},
		Valkey: ValkeyConfig{
			Addr:     getEnv("VALKEY_ADDR", "localhost:6379"),
			Password: getEnv("VALKEY_PASSWORD", ""),
		},
	}

	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = readSecret(cfg.Gemini.SecretsFile, "GEMINI_API_KEY")
	}

	return cfg
}

// Validate reports the first setting that keeps the process from starting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return apperrors.NewConfig("GEMINI_API_KEY", "GEMINI_API_KEY is not set in the environment or "+c.Gemini.SecretsFile)
	}
	if c.Gemini.Model == "" {
		return apperrors.NewConfig("GEMINI_MODEL", "GEMINI_MODEL must not be empty")
	}
	if c.Gemini.MaxConcurrent <= 0 {
		return apperrors.NewConfig("MAX_CONCURRENT_COMPLETIONS", "MAX_CONCURRENT_COMPLETIONS must be positive")
	}
	if c.Storage.MaxFileSize <= 0 {
		return apperrors.NewConfig("MAX_FILE_SIZE", "MAX_FILE_SIZE must be positive")
	}
	switch c.Session.Store {
	case SessionStoreMemory:
	case SessionStoreValkey:
		if c.Valkey.Addr == "" {
			return apperrors.NewConfig("VALKEY_ADDR", "VALKEY_ADDR is required when SESSION_STORE=valkey")
		}
	default:
		return apperrors.NewConfig("SESSION_STORE", "SESSION_STORE must be memory or valkey, got "+c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return apperrors.NewConfig("SESSION_TTL", "SESSION_TTL must be positive")
	}
	return nil
}

func readSecret(path, key string) string {
	if path == "" {
		return ""
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return ""
	}
	return values[key]
}

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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
