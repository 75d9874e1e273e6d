package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DSN", "postgres://rc:rc@localhost:5432/rc?sslmode=disable")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 50.0, cfg.Parser.NoiseThreshold)
	assert.Equal(t, 0, cfg.Records.RetentionDays)
	assert.Equal(t, time.Hour, cfg.Records.PurgeInterval)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("PARSER_NOISE_THRESHOLD", "65.5")
	t.Setenv("RECORDS_RETENTION_DAYS", "30")
	t.Setenv("RECORDS_PURGE_INTERVAL", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, 65.5, cfg.Parser.NoiseThreshold)
	assert.Equal(t, 30, cfg.Records.RetentionDays)
	assert.Equal(t, 15*time.Minute, cfg.Records.PurgeInterval)
}

func TestLoadConfigFile(t *testing.T) {
	setRequired(t)
	path := filepath.Join(t.TempDir(), "rc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_port: \"7000\"\nlog_level: debug\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.HTTP.Port)
	assert.Equal(t, "warn", cfg.Log.Level, "environment wins over the file")
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing dsn", map[string]string{"DB_DSN": "", "JWT_SECRET": "s"}},
		{"missing secret", map[string]string{"DB_DSN": "dsn", "JWT_SECRET": ""}},
		{"threshold out of range", map[string]string{"DB_DSN": "dsn", "JWT_SECRET": "s", "PARSER_NOISE_THRESHOLD": "120"}},
		{"negative retention", map[string]string{"DB_DSN": "dsn", "JWT_SECRET": "s", "RECORDS_RETENTION_DAYS": "-1"}},
		{"retention without interval", map[string]string{"DB_DSN": "dsn", "JWT_SECRET": "s", "RECORDS_RETENTION_DAYS": "7", "RECORDS_PURGE_INTERVAL": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadSourcePriority(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	yamlPath := filepath.Join(dir, "rc.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("http_port: \"2222\"\n"), 0o600))
	dotenv := "HTTP_PORT=1111\nLOG_LEVEL=debug\nRECORDS_RETENTION_DAYS=14\nDB_DSN=postgres://dotenv\nJWT_SECRET=dotenv-secret\nCONFIG_FILE=" + yamlPath + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600))
	// empty variables count as unset, so host values cannot interfere
	for _, key := range []string{"HTTP_PORT", "LOG_LEVEL", "DB_DSN", "JWT_SECRET", "CONFIG_FILE"} {
		t.Setenv(key, "")
	}
	t.Setenv("RECORDS_RETENTION_DAYS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2222", cfg.HTTP.Port, "config file wins over .env")
	assert.Equal(t, "debug", cfg.Log.Level, ".env wins over defaults")
	assert.Equal(t, 3, cfg.Records.RetentionDays, "environment wins over .env")
	assert.Equal(t, "postgres://dotenv", cfg.DB.DSN)
	assert.Equal(t, "dotenv-secret", cfg.Auth.JWTSecret)
	assert.Empty(t, os.Getenv("LOG_LEVEL"), ".env is not copied into the process environment")
}
