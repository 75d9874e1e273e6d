package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP    HTTPConfig
	DB      DBConfig
	Auth    AuthConfig
	Log     LogConfig
	Parser  ParserConfig
	Records RecordsConfig
}

type HTTPConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

type DBConfig struct {
	DSN string
}

type AuthConfig struct {
	JWTSecret string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

type ParserConfig struct {
	NoiseThreshold float64
}

type RecordsConfig struct {
	RetentionDays int
	PurgeInterval time.Duration
}

var defaults = map[string]any{
	"HTTP_PORT":              "8080",
	"CORS_ALLOWED_ORIGINS":   "*",
	"LOG_LEVEL":              "info",
	"LOG_PRETTY":             false,
	"PARSER_NOISE_THRESHOLD": 50.0,
	"RECORDS_RETENTION_DAYS": 0,
	"RECORDS_PURGE_INTERVAL": "1h",
}

// Load builds the configuration from, in increasing priority: built-in
// defaults, an optional .env file, an optional YAML file named by
// CONFIG_FILE and the process environment.
func Load() (*Config, error) {
	dotenv, err := godotenv.Read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	// .env values only replace defaults; the file and environment win.
	for key, value := range dotenv {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Port:               v.GetString("HTTP_PORT"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN: v.GetString("DB_DSN"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
		Parser: ParserConfig{
			NoiseThreshold: v.GetFloat64("PARSER_NOISE_THRESHOLD"),
		},
		Records: RecordsConfig{
			RetentionDays: v.GetInt("RECORDS_RETENTION_DAYS"),
			PurgeInterval: v.GetDuration("RECORDS_PURGE_INTERVAL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DB.DSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Parser.NoiseThreshold < 0 || c.Parser.NoiseThreshold > 100 {
		return fmt.Errorf("PARSER_NOISE_THRESHOLD must be within 0..100, got %v", c.Parser.NoiseThreshold)
	}
	if c.Records.RetentionDays < 0 {
		return fmt.Errorf("RECORDS_RETENTION_DAYS must not be negative, got %d", c.Records.RetentionDays)
	}
	if c.Records.RetentionDays > 0 && c.Records.PurgeInterval <= 0 {
		return errors.New("RECORDS_PURGE_INTERVAL must be positive when retention is enabled")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
