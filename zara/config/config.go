package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultJWTSecret     = "super-secret-key-change-me"
	DefaultTokenLifetime = 30 * 24 * time.Hour
)

type Config struct {
	Port   string
	LogDir string

	// SQLite is used unless DatabaseURL or DBHost is set.
	DBPath      string
	DatabaseURL string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string

	JWTSecret     string
	TokenLifetime time.Duration

	ProviderAPIKey  string
	ProviderBaseURL string
	ProviderTimeout time.Duration
	PersonaFile     string

	SupabaseURL string
	SupabaseKey string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	MirrorTimeout time.Duration
}

// UsesPostgres reports whether a PostgreSQL target is configured.
func (c Config) UsesPostgres() bool {
	return c.DatabaseURL != "" || c.DBHost != ""
}

// ProviderConfigured reports whether a completion API key is present.
func (c Config) ProviderConfigured() bool {
	return c.ProviderAPIKey != ""
}

func (c Config) SupabaseEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

func (c Config) MinIOEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOBucket != ""
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "5000")
	v.SetDefault("LOG_DIR", "./logs")
	v.SetDefault("DB_PATH", "zara.db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("JWT_SECRET_KEY", DefaultJWTSecret)
	v.SetDefault("PROVIDER_BASE_URL", "https://api.cerebras.ai/v1")
	v.SetDefault("PROVIDER_TIMEOUT", "60s")
	v.SetDefault("MINIO_BUCKET", "zara-mirror")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MIRROR_TIMEOUT", "10s")
	v.AutomaticEnv()

	lifetime, err := parseLifetime(v.GetString("JWT_ACCESS_TOKEN_EXPIRES"))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_ACCESS_TOKEN_EXPIRES: %w", err)
	}
	providerTimeout, err := time.ParseDuration(v.GetString("PROVIDER_TIMEOUT"))
	if err != nil {
		return Config{}, fmt.Errorf("PROVIDER_TIMEOUT: %w", err)
	}
	mirrorTimeout, err := time.ParseDuration(v.GetString("MIRROR_TIMEOUT"))
	if err != nil {
		return Config{}, fmt.Errorf("MIRROR_TIMEOUT: %w", err)
	}

	return Config{
		Port:            v.GetString("PORT"),
		LogDir:          v.GetString("LOG_DIR"),
		DBPath:          v.GetString("DB_PATH"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		DBUser:          v.GetString("DB_USER"),
		DBPassword:      v.GetString("DB_PASSWORD"),
		DBHost:          v.GetString("DB_HOST"),
		DBPort:          v.GetString("DB_PORT"),
		DBName:          v.GetString("DB_NAME"),
		JWTSecret:       v.GetString("JWT_SECRET_KEY"),
		TokenLifetime:   lifetime,
		ProviderAPIKey:  strings.TrimSpace(v.GetString("CEREBRAS_API_KEY")),
		ProviderBaseURL: v.GetString("PROVIDER_BASE_URL"),
		ProviderTimeout: providerTimeout,
		PersonaFile:     v.GetString("PERSONA_FILE"),
		SupabaseURL:     strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		SupabaseKey:     v.GetString("SUPABASE_KEY"),
		MinIOEndpoint:   v.GetString("MINIO_ENDPOINT"),
		MinIOAccessKey:  v.GetString("MINIO_ACCESS_KEY"),
		MinIOSecretKey:  v.GetString("MINIO_SECRET_KEY"),
		MinIOBucket:     v.GetString("MINIO_BUCKET"),
		MinIOUseSSL:     v.GetBool("MINIO_USE_SSL"),
		MirrorTimeout:   mirrorTimeout,
	}, nil
}

// parseLifetime accepts a plain number of seconds or a Go duration string.
func parseLifetime(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultTokenLifetime, nil
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("must be positive, got %d", secs)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
