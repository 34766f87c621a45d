// Package config loads and validates burrow.yml, the tool's configuration:
// where the state store lives, which platform API to talk to, and which
// generation service synthesizes blueprints from prompts. Secrets never
// live in the file itself; the file names the environment variables that
// hold them, and a local .env is honored for development.
package config

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level burrow.yml configuration.
type Config struct {
	Version   string          `yaml:"version"`
	Workspace string          `yaml:"workspace,omitempty"` // Default workspace id
	Redis     RedisConfig     `yaml:"redis"`
	Platform  PlatformConfig  `yaml:"platform"`
	Generator GeneratorConfig `yaml:"generator,omitempty"`
}

// RedisConfig locates the state store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

// PlatformConfig locates the remote platform API. TokenEnv names the
// environment variable holding the bot token.
type PlatformConfig struct {
	BaseURL  string `yaml:"base_url"`
	TokenEnv string `yaml:"token_env"`
}

// GeneratorConfig locates the text-generation service. Optional: builds
// from a blueprint file and edits from explicit actions work without it.
type GeneratorConfig struct {
	BaseURL   string `yaml:"base_url,omitempty"`
	Model     string `yaml:"model,omitempty"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
}

// Validate performs strict validation on the configuration.
func (c *Config) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}
	if err := c.Redis.Validate(); err != nil {
		return err
	}
	if err := c.Platform.Validate(); err != nil {
		return err
	}
	return c.Generator.Validate()
}

// Validate validates the Redis configuration.
func (c *RedisConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.DB, validation.Min(0)),
	)
}

// Validate validates the platform configuration.
func (c *PlatformConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.TokenEnv, validation.Required),
	)
}

// Validate validates the generator configuration. The section is optional,
// but when a base URL is given a model is required too.
func (c *GeneratorConfig) Validate() error {
	if c.BaseURL == "" {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, is.URL),
		validation.Field(&c.Model, validation.Required),
	)
}

// Token reads the platform bot token from the configured environment
// variable.
func (c *PlatformConfig) Token() (string, error) {
	token := os.Getenv(c.TokenEnv)
	if token == "" {
		return "", fmt.Errorf("platform token not set: export %s", c.TokenEnv)
	}
	return token, nil
}

// APIKey reads the generator API key from the configured environment
// variable. An empty name means the service needs no key.
func (c *GeneratorConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

// Enabled reports whether a generation service is configured.
func (c *GeneratorConfig) Enabled() bool {
	return c.BaseURL != ""
}

// Load reads and validates burrow.yml from the specified path. A local
// .env file, if present, is loaded first so token_env/api_key_env names
// resolve during development.
func Load(path string) (*Config, error) {
	// Missing .env is fine; it only exists in development checkouts.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
