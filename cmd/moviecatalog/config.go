package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig

	AllowedOrigins []string
	SeedDemo       bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL             string
	Driver          string // pgx or postgres (lib/pq)
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string
	Port int
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// loadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func loadConfig() (Config, error) {
	_ = godotenv.Load(envOrDefault("ENV_FILE", ".env"))

	var (
		cfg      Config
		problems []string
	)

	cfg.Database.URL = databaseURL()
	cfg.Database.Driver = envOrDefault("DB_DRIVER", "pgx")
	cfg.Database.MaxOpenConns = intEnv("DB_MAX_OPEN_CONNS", 10, &problems)
	cfg.Database.MaxIdleConns = intEnv("DB_MAX_IDLE_CONNS", 5, &problems)
	cfg.Database.ConnMaxLifetime = durationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute, &problems)

	cfg.Server.Host = envOrDefault("HOST", "")
	cfg.Server.Port = intEnv("PORT", 8080, &problems)

	cfg.Logging.Level = strings.ToLower(envOrDefault("LOG_LEVEL", "info"))
	cfg.Logging.Format = strings.ToLower(envOrDefault("LOG_FORMAT", "json"))

	cfg.AllowedOrigins = parseAllowedOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	seed, err := strconv.ParseBool(envOrDefault("SEED_DEMO", "false"))
	if err != nil {
		problems = append(problems, "SEED_DEMO must be a boolean")
	}
	cfg.SeedDemo = seed

	problems = append(problems, cfg.validate()...)
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}

	return cfg, nil
}

func (c Config) validate() []string {
	var problems []string

	if c.Database.URL == "" {
		problems = append(problems, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}
	if c.Database.Driver != "pgx" && c.Database.Driver != "postgres" {
		problems = append(problems, "DB_DRIVER must be one of: pgx, postgres")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		problems = append(problems, "LOG_FORMAT must be one of: json, text")
	}

	return problems
}

// databaseURL prefers DATABASE_URL and otherwise assembles one from the
// individual DB_* variables.
func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := envOrDefault("DB_HOST", "localhost")
	user := os.Getenv("DB_USER")
	name := os.Getenv("DB_NAME")
	if user == "" || name == "" {
		return ""
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, os.Getenv("DB_PASSWORD")),
		Host:     fmt.Sprintf("%s:%s", host, envOrDefault("DB_PORT", "5432")),
		Path:     "/" + name,
		RawQuery: "sslmode=" + envOrDefault("DB_SSLMODE", "disable"),
	}
	return u.String()
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int, problems *[]string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s must be an integer", key))
		return fallback
	}
	return v
}

func durationEnv(key string, fallback time.Duration, problems *[]string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s must be a duration such as 30m", key))
		return fallback
	}
	return v
}

func parseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
