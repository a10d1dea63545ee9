package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every variable Load reads so tests see a known baseline.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"CONFIG_FILE", "DATABASE_URL", "SERVER_PORT", "FRONTEND_URL",
		"OPENAI_API_KEY", "AI_BASE_URL", "AI_MODEL", "AI_MAX_TOKENS",
		"AI_TEMPERATURE", "AI_TIMEOUT_SECONDS", "REDIS_URL", "RATE_LIMIT",
		"RABBITMQ_URL", "RABBITMQ_PREFETCH", "SERVER_DEBUG_MODE",
		"WORKER_DEBUG_MODE", "OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/taskmaster")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.ServerPort)
	}
	if cfg.AIMaxTokens != 2000 {
		t.Errorf("Expected default max tokens 2000, got %d", cfg.AIMaxTokens)
	}
	if cfg.AITemperature != 0.1 {
		t.Errorf("Expected default temperature 0.1, got %v", cfg.AITemperature)
	}
	if cfg.AITimeoutSeconds != 30 {
		t.Errorf("Expected default timeout 30s, got %d", cfg.AITimeoutSeconds)
	}
	if cfg.RateLimit != "5-S" {
		t.Errorf("Expected default rate limit 5-S, got %q", cfg.RateLimit)
	}
	if cfg.RabbitMQPrefetch != 1 {
		t.Errorf("Expected default prefetch 1, got %d", cfg.RabbitMQPrefetch)
	}
	if cfg.OpenAIKey != "" {
		t.Errorf("Expected no API key by default, got %q", cfg.OpenAIKey)
	}
	// Redis and RabbitMQ are optional; unset URLs stay empty so the server
	// can disable the dependent features instead of dialing nowhere.
	if cfg.RedisURL != "" {
		t.Errorf("Expected no default Redis URL, got %q", cfg.RedisURL)
	}
	if cfg.RabbitMQURL != "" {
		t.Errorf("Expected no default RabbitMQ URL, got %q", cfg.RabbitMQURL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://db.internal/app")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AI_MAX_TOKENS", "4096")
	t.Setenv("AI_TEMPERATURE", "0.7")
	t.Setenv("SERVER_DEBUG_MODE", "true")
	t.Setenv("OTEL_ENABLED", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DatabaseURL != "postgres://db.internal/app" {
		t.Errorf("Unexpected database URL %q", cfg.DatabaseURL)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("Expected port 9090, got %q", cfg.ServerPort)
	}
	if cfg.AIMaxTokens != 4096 {
		t.Errorf("Expected max tokens 4096, got %d", cfg.AIMaxTokens)
	}
	if cfg.AITemperature != 0.7 {
		t.Errorf("Expected temperature 0.7, got %v", cfg.AITemperature)
	}
	if !cfg.ServerDebugMode {
		t.Error("Expected server debug mode enabled")
	}
	if !cfg.OTELEnabled {
		t.Error("Expected OTEL enabled")
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("Expected error when DATABASE_URL is unset")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("database_url: postgres://file.example/app\nserver_port: \"7070\"\nai_model: gpt-4o-mini\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	// Environment still wins over the file.
	t.Setenv("SERVER_PORT", "6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DatabaseURL != "postgres://file.example/app" {
		t.Errorf("Expected database URL from file, got %q", cfg.DatabaseURL)
	}
	if cfg.AIModel != "gpt-4o-mini" {
		t.Errorf("Expected model from file, got %q", cfg.AIModel)
	}
	if cfg.ServerPort != "6060" {
		t.Errorf("Expected env to override file port, got %q", cfg.ServerPort)
	}
}

func TestLoad_ConfigFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("DATABASE_URL", "postgres://localhost/app")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for unreadable config file")
	}
}
