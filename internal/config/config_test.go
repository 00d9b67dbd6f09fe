package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "coldmail/job-application-helper/internal/errors"
)

// isolate runs Load from an empty directory so no stray .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{
		"PORT", "ENV", "GEMINI_API_KEY", "GEMINI_MODEL", "SECRETS_FILE", "MAX_FILE_SIZE",
		"MAX_CONCURRENT_COMPLETIONS", "SESSION_STORE", "SESSION_TTL", "SESSION_COOKIE",
		"VALKEY_ADDR", "VALKEY_PASSWORD", "RATE_LIMIT_MAX",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.RateLimitMax)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, int64(4), cfg.Gemini.MaxConcurrent)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "coldmail_session", cfg.Session.CookieName)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("GEMINI_MODEL", "gemini-pro")
	t.Setenv("SESSION_STORE", "Valkey")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("MAX_CONCURRENT_COMPLETIONS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
	assert.Equal(t, SessionStoreValkey, cfg.Session.Store)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, int64(4), cfg.Gemini.MaxConcurrent)
}

func TestLoad_SecretsFileFallback(t *testing.T) {
	dir := isolate(t)
	secrets := filepath.Join(dir, "secrets.env")
	require.NoError(t, os.WriteFile(secrets, []byte("GEMINI_API_KEY=file-key\n"), 0o600))
	t.Setenv("SECRETS_FILE", secrets)

	cfg := Load()

	assert.Equal(t, "file-key", cfg.Gemini.APIKey)
}

func TestLoad_EnvironmentWinsOverSecretsFile(t *testing.T) {
	dir := isolate(t)
	secrets := filepath.Join(dir, "secrets.env")
	require.NoError(t, os.WriteFile(secrets, []byte("GEMINI_API_KEY=file-key\n"), 0o600))
	t.Setenv("SECRETS_FILE", secrets)
	t.Setenv("GEMINI_API_KEY", "env-key")

	assert.Equal(t, "env-key", Load().Gemini.APIKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Gemini:  GeminiConfig{APIKey: "k", Model: "m", MaxConcurrent: 1, SecretsFile: ".secrets.env"},
			Storage: StorageConfig{MaxFileSize: 1},
			Session: SessionConfig{Store: SessionStoreMemory, TTL: time.Hour},
			Valkey:  ValkeyConfig{Addr: "localhost:6379"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"missing api key", func(c *Config) { c.Gemini.APIKey = " " }, "GEMINI_API_KEY"},
		{"empty model", func(c *Config) { c.Gemini.Model = "" }, "GEMINI_MODEL"},
		{"zero concurrency", func(c *Config) { c.Gemini.MaxConcurrent = 0 }, "MAX_CONCURRENT_COMPLETIONS"},
		{"zero file size", func(c *Config) { c.Storage.MaxFileSize = 0 }, "MAX_FILE_SIZE"},
		{"unknown store", func(c *Config) { c.Session.Store = "redis" }, "SESSION_STORE"},
		{"valkey without addr", func(c *Config) { c.Session.Store = SessionStoreValkey; c.Valkey.Addr = "" }, "VALKEY_ADDR"},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, "SESSION_TTL"},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrConfig))
			assert.Equal(t, tt.key, apperrors.As(err).Details["key"])
		})
	}
}
