package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg == nil {
		t.Fatal("Config should not be nil")
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DatabasePath != "./tracewatch.db" {
		t.Errorf("Expected default database path './tracewatch.db', got %s", cfg.DatabasePath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level 'info', got %s", cfg.LogLevel)
	}
	if cfg.TopologyCacheTTLSec != 30 {
		t.Errorf("Expected default topology cache TTL 30, got %d", cfg.TopologyCacheTTLSec)
	}
	if cfg.ApplicationCacheSize != 4096 {
		t.Errorf("Expected default application cache size 4096, got %d", cfg.ApplicationCacheSize)
	}
}

func TestLoadEnvironmentVariables(t *testing.T) {
	os.Setenv("TRACEWATCH_PORT", "9000")
	os.Setenv("TRACEWATCH_DATABASE_PATH", "/tmp/test.db")
	os.Setenv("TRACEWATCH_LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("TRACEWATCH_PORT")
		os.Unsetenv("TRACEWATCH_DATABASE_PATH")
		os.Unsetenv("TRACEWATCH_LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Expected port 9000 from env, got %d", cfg.Port)
	}
	if cfg.DatabasePath != "/tmp/test.db" {
		t.Errorf("Expected database path '/tmp/test.db' from env, got %s", cfg.DatabasePath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level 'debug' from env, got %s", cfg.LogLevel)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load should not error when config file is missing: %v", err)
	}
	if cfg == nil {
		t.Fatal("Config should not be nil even without config file")
	}
}
