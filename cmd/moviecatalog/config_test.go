package main

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// clearEnv resets every variable loadConfig reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"DB_DRIVER", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
		"HOST", "PORT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "SEED_DEMO",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("ENV_FILE", t.TempDir()+"/missing.env")
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://movies@localhost/movies")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Database.Driver != "pgx" {
		t.Fatalf("expected pgx driver, got %q", cfg.Database.Driver)
	}
	if cfg.Database.MaxOpenConns != 10 || cfg.Database.MaxIdleConns != 5 {
		t.Fatalf("unexpected pool settings: %+v", cfg.Database)
	}
	if cfg.Database.ConnMaxLifetime != 30*time.Minute {
		t.Fatalf("unexpected conn lifetime: %v", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Server.Addr() != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr())
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.SeedDemo {
		t.Fatal("demo seed should be off by default")
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://localhost:5173"}) {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigAssemblesDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "catalog")
	t.Setenv("DB_PASSWORD", "p@ss")
	t.Setenv("DB_NAME", "movies")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("PORT", "9090")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SEED_DEMO", "true")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	want := "postgres://catalog:p%40ss@db:6543/movies?sslmode=disable"
	if cfg.Database.URL != want {
		t.Fatalf("got URL %q, want %q", cfg.Database.URL, want)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("unexpected driver %q", cfg.Database.Driver)
	}
	if cfg.Server.Addr() != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr())
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if !cfg.SeedDemo {
		t.Fatal("expected demo seed to be enabled")
	}
}

func TestLoadConfigCollectsProblems(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("PORT", "eighty")
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("DB_CONN_MAX_LIFETIME", "forever")

	_, err := loadConfig()
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := err.Error()
	for _, fragment := range []string{
		"DATABASE_URL is required",
		"DB_DRIVER must be one of",
		"PORT must be an integer",
		"LOG_LEVEL must be one of",
		"DB_CONN_MAX_LIFETIME must be a duration",
	} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("expected %q in error:\n%s", fragment, msg)
		}
	}
}
