package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port          string        `mapstructure:"port"`
	DBUrl         string        `mapstructure:"database_url"`
	DBAutoMigrate bool          `mapstructure:"db_auto_migrate"`
	LogLevel      string        `mapstructure:"log_level"`
	FrontendURL   string        `mapstructure:"frontend_url"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	AccessTTL     time.Duration `mapstructure:"access_token_ttl"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`
	// Upload limits for PDF resumes / cover letters
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
	// OpenAI settings for cover letter feedback
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	OpenAIModel  string `mapstructure:"openai_model"`
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int `mapstructure:"rate_limit_window_seconds"`
	RateLimitAuthThreshold   int `mapstructure:"rate_limit_auth_threshold"`
	RateLimitGlobalThreshold int `mapstructure:"rate_limit_global_threshold"`
}

func LoadConfig() (*Config, error) {
	// .env is optional; in production the variables come from the environment
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_auto_migrate", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("frontend_url", "http://localhost:3000")
	v.SetDefault("access_token_ttl", 24*time.Hour)
	v.SetDefault("cookie_secure", false)
	v.SetDefault("max_upload_bytes", 5<<20)
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("rate_limit_window_seconds", 60)
	v.SetDefault("rate_limit_auth_threshold", 10)
	v.SetDefault("rate_limit_global_threshold", 100)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"port":                        "PORT",
		"database_url":                "DATABASE_URL",
		"db_auto_migrate":             "DB_AUTO_MIGRATE",
		"log_level":                   "LOG_LEVEL",
		"frontend_url":                "FRONTEND_URL",
		"jwt_secret":                  "JWT_SECRET",
		"access_token_ttl":            "ACCESS_TOKEN_TTL",
		"cookie_secure":               "COOKIE_SECURE",
		"max_upload_bytes":            "MAX_UPLOAD_BYTES",
		"openai_api_key":              "OPENAI_API_KEY",
		"openai_model":                "OPENAI_MODEL",
		"rate_limit_window_seconds":   "RATE_LIMIT_WINDOW_SECONDS",
		"rate_limit_auth_threshold":   "RATE_LIMIT_AUTH_THRESHOLD",
		"rate_limit_global_threshold": "RATE_LIMIT_GLOBAL_THRESHOLD",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}
	return nil
}

func validate(cfg Config) error {
	if cfg.DBUrl == "" {
		return errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if cfg.AccessTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	if cfg.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	if cfg.RateLimitWindowSeconds <= 0 {
		return errors.New("RATE_LIMIT_WINDOW_SECONDS must be positive")
	}
	return nil
}
