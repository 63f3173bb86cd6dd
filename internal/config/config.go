package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Anthropic AnthropicConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"exportiq"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type HTTPConfig struct {
	Host   string `envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port   int    `envconfig:"HTTP_PORT" default:"8080"`
	APIKey string `envconfig:"API_KEY"`
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Path string `envconfig:"DATABASE_PATH" default:"data/exportiq.db"`
}

type AnthropicConfig struct {
	APIKey    string `envconfig:"ANTHROPIC_API_KEY" required:"true"`
	Model     string `envconfig:"ANTHROPIC_MODEL" default:"claude-sonnet-4-20250514"`
	MaxTokens int    `envconfig:"ANTHROPIC_MAX_TOKENS" default:"4096"`
}

type TelemetryConfig struct {
	// OTLP HTTP endpoint, e.g. http://localhost:4318. Tracing is disabled
	// when empty.
	Endpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
