package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Backend  BackendConfig
	Admin    AdminConfig
	Site     SiteConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values for the backend's relational store.
type PostgresConfig struct {
	DSN             string
	ApplicationName string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// BackendConfig points at the hosted auth + tables backend.
type BackendConfig struct {
	URL            string
	ServiceRoleKey string
	JWTSecret      string
	TimeoutSeconds int
}

// AdminConfig controls staff account creation.
type AdminConfig struct {
	CreationToken             string
	DefaultRole               string
	PasswordMinLength         int
	PermissionCacheTTLSeconds int
}

// SiteConfig holds defaults for visitor preferences.
type SiteConfig struct {
	DefaultLanguage  string
	DefaultTheme     string
	CookieSecure     bool
	CookieMaxAgeDays int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "astro-booking"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:             os.Getenv("POSTGRES_DSN"),
			ApplicationName: getEnv("APP_NAME", "astro-booking"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Backend: BackendConfig{
			URL:            os.Getenv("BACKEND_URL"),
			ServiceRoleKey: os.Getenv("BACKEND_SERVICE_ROLE_KEY"),
			JWTSecret:      os.Getenv("BACKEND_JWT_SECRET"),
			TimeoutSeconds: getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 10),
		},
		Admin: AdminConfig{
			CreationToken:             os.Getenv("ADMIN_CREATION_TOKEN"),
			DefaultRole:               getEnv("ADMIN_DEFAULT_ROLE", "admin"),
			PasswordMinLength:         getEnvAsInt("ADMIN_PASSWORD_MIN_LENGTH", 8),
			PermissionCacheTTLSeconds: getEnvAsInt("ADMIN_PERMISSION_CACHE_TTL_SECONDS", 300),
		},
		Site: SiteConfig{
			DefaultLanguage:  getEnv("SITE_DEFAULT_LANGUAGE", "en"),
			DefaultTheme:     getEnv("SITE_DEFAULT_THEME", "light"),
			CookieSecure:     getEnvAsBool("SITE_COOKIE_SECURE", false),
			CookieMaxAgeDays: getEnvAsInt("SITE_COOKIE_MAX_AGE_DAYS", 365),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout bounds a single call to the backend.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// PermissionCacheTTL returns how long role permissions stay cached.
func (a AdminConfig) PermissionCacheTTL() time.Duration {
	if a.PermissionCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(a.PermissionCacheTTLSeconds) * time.Second
}

// CookieMaxAge returns the preference cookie lifetime in seconds.
func (s SiteConfig) CookieMaxAge() int {
	if s.CookieMaxAgeDays <= 0 {
		return 0
	}
	return s.CookieMaxAgeDays * 24 * 60 * 60
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
