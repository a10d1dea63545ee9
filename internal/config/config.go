package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	DatabaseURL      string  `yaml:"database_url"`
	ServerPort       string  `yaml:"server_port"`
	FrontendURL      string  `yaml:"frontend_url"`
	OpenAIKey        string  `yaml:"openai_api_key"`
	AIBaseURL        string  `yaml:"ai_base_url"`
	AIModel          string  `yaml:"ai_model"`
	AIMaxTokens      int     `yaml:"ai_max_tokens"`
	AITemperature    float64 `yaml:"ai_temperature"`
	AITimeoutSeconds int     `yaml:"ai_timeout_seconds"`
	RedisURL         string  `yaml:"redis_url"`
	RateLimit        string  `yaml:"rate_limit"`
	RabbitMQURL      string  `yaml:"rabbitmq_url"`
	RabbitMQPrefetch int     `yaml:"rabbitmq_prefetch"`
	ServerDebugMode  bool    `yaml:"server_debug_mode"`
	WorkerDebugMode  bool    `yaml:"worker_debug_mode"`
	OTELEnabled      bool    `yaml:"otel_enabled"`
	OTELEndpoint     string  `yaml:"otel_endpoint"`
}

// Load builds configuration from an optional YAML file (CONFIG_FILE) with
// environment variables taking precedence over file values.
//
// Only DATABASE_URL is required. REDIS_URL, RABBITMQ_URL, and the AI key are
// optional: the server runs without them with the corresponding feature
// (rate limiting, background summarization, the model path) disabled.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:       "8080",
		FrontendURL:      "http://localhost:3000",
		AIMaxTokens:      2000,
		AITemperature:    0.1,
		AITimeoutSeconds: 30,
		RateLimit:        "5-S",
		RabbitMQPrefetch: 1,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.FrontendURL = getEnv("FRONTEND_URL", cfg.FrontendURL)
	cfg.OpenAIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIKey)
	cfg.AIBaseURL = getEnv("AI_BASE_URL", cfg.AIBaseURL)
	cfg.AIModel = getEnv("AI_MODEL", cfg.AIModel)
	cfg.AIMaxTokens = getEnvInt("AI_MAX_TOKENS", cfg.AIMaxTokens)
	cfg.AITemperature = getEnvFloat("AI_TEMPERATURE", cfg.AITemperature)
	cfg.AITimeoutSeconds = getEnvInt("AI_TIMEOUT_SECONDS", cfg.AITimeoutSeconds)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.RateLimit = getEnv("RATE_LIMIT", cfg.RateLimit)
	cfg.RabbitMQURL = getEnv("RABBITMQ_URL", cfg.RabbitMQURL)
	cfg.RabbitMQPrefetch = getEnvInt("RABBITMQ_PREFETCH", cfg.RabbitMQPrefetch)
	cfg.ServerDebugMode = getEnvBool("SERVER_DEBUG_MODE", cfg.ServerDebugMode)
	cfg.WorkerDebugMode = getEnvBool("WORKER_DEBUG_MODE", cfg.WorkerDebugMode)
	cfg.OTELEnabled = getEnvBool("OTEL_ENABLED", cfg.OTELEnabled)
	cfg.OTELEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTELEndpoint)

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
