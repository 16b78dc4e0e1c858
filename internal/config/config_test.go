package config

import (
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ROUNDTRIP_PRIMARY.ENV", "development")
	t.Setenv("ROUNDTRIP_SERVER.PORT", "8080")
	t.Setenv("ROUNDTRIP_SERVER.READ_TIMEOUT", "30")
	t.Setenv("ROUNDTRIP_SERVER.WRITE_TIMEOUT", "30")
	t.Setenv("ROUNDTRIP_SERVER.IDLE_TIMEOUT", "60")
	t.Setenv("ROUNDTRIP_STORE.DRIVER", "memory")
}

func TestLoadConfig_MemoryDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ROUNDTRIP_SERVER.CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected port 8080, got=%q", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30 {
		t.Fatalf("expected read timeout 30, got=%d", cfg.Server.ReadTimeout)
	}
	if got := cfg.Server.CORSAllowedOrigins; len(got) != 2 || got[1] != "http://b.test" {
		t.Fatalf("unexpected cors origins: %#v", got)
	}
	if cfg.Store.Driver != StoreDriverMemory {
		t.Fatalf("expected memory driver, got=%q", cfg.Store.Driver)
	}
	if cfg.Observability == nil {
		t.Fatalf("expected default observability config")
	}
	if cfg.Observability.ServiceName != ServiceName {
		t.Fatalf("expected service name %q, got=%q", ServiceName, cfg.Observability.ServiceName)
	}
	if cfg.Observability.Environment != "development" {
		t.Fatalf("expected environment from primary.env, got=%q", cfg.Observability.Environment)
	}
	if cfg.Observability.NewRelicEnabled() {
		t.Fatalf("expected New Relic disabled without licence key")
	}
}

func TestLoadConfig_ObservabilityOverridesKeepDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ROUNDTRIP_OBSERVABILITY.LOGGING.LEVEL", "debug")
	t.Setenv("ROUNDTRIP_OBSERVABILITY.LOGGING.SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Observability.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got=%q", cfg.Observability.Logging.Level)
	}
	if cfg.Observability.Logging.SlowQueryThreshold != 250*time.Millisecond {
		t.Fatalf("expected 250ms threshold, got=%s", cfg.Observability.Logging.SlowQueryThreshold)
	}
	if cfg.Observability.Logging.Format != "json" {
		t.Fatalf("expected default json format to survive, got=%q", cfg.Observability.Logging.Format)
	}
	if cfg.Observability.HealthChecks.Timeout != 5*time.Second {
		t.Fatalf("expected default health timeout, got=%s", cfg.Observability.HealthChecks.Timeout)
	}
}

func TestLoadConfig_PostgresDriverRequiresDatabaseBlock(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ROUNDTRIP_STORE.DRIVER", "postgres")

	_, err := LoadConfig()
	if err == nil {
		t.Fatalf("expected error for missing database block")
	}
	if !strings.Contains(err.Error(), "database block is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadConfig_PostgresDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ROUNDTRIP_STORE.DRIVER", "postgres")
	t.Setenv("ROUNDTRIP_DATABASE.HOST", "localhost")
	t.Setenv("ROUNDTRIP_DATABASE.PORT", "5432")
	t.Setenv("ROUNDTRIP_DATABASE.USER", "demo")
	t.Setenv("ROUNDTRIP_DATABASE.PASSWORD", "p@ss:word")
	t.Setenv("ROUNDTRIP_DATABASE.NAME", "demo")
	t.Setenv("ROUNDTRIP_DATABASE.SSL_MODE", "disable")
	t.Setenv("ROUNDTRIP_DATABASE.MAX_OPEN_CONNS", "4")
	t.Setenv("ROUNDTRIP_DATABASE.MAX_IDLE_CONNS", "2")
	t.Setenv("ROUNDTRIP_DATABASE.CONN_MAX_LIFETIME", "300")
	t.Setenv("ROUNDTRIP_DATABASE.CONN_MAX_IDLE_TIME", "60")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Database == nil || cfg.Database.Port != 5432 {
		t.Fatalf("unexpected database block: %#v", cfg.Database)
	}
	if cfg.Database.Password != "p@ss:word" {
		t.Fatalf("unexpected password: %q", cfg.Database.Password)
	}
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ROUNDTRIP_STORE.DRIVER", "sqlite")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for unknown store driver")
	}
}

func TestObservabilityValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *ObservabilityConfig)
		ok     bool
	}{
		{"defaults", func(*ObservabilityConfig) {}, true},
		{"bad level", func(c *ObservabilityConfig) { c.Logging.Level = "inf" }, false},
		{"negative threshold", func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, false},
		{"metrics path", func(c *ObservabilityConfig) { c.Metrics.Path = "metrics" }, false},
		{"metrics disabled ignores path", func(c *ObservabilityConfig) { c.Metrics.Enabled = false; c.Metrics.Path = "" }, true},
	}
	for _, c := range cases {
		cfg := DefaultObservabilityConfig()
		c.mutate(cfg)
		err := cfg.Validate()
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestGetLogLevel_DefaultsByEnvironment(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	if got := cfg.GetLogLevel(); got != "info" {
		t.Fatalf("production: expected info, got=%q", got)
	}
	cfg.Environment = "development"
	if got := cfg.GetLogLevel(); got != "debug" {
		t.Fatalf("development: expected debug, got=%q", got)
	}
}
