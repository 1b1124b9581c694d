package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration. It is built once at startup
// from an optional YAML file overlaid with environment variables, and must
// not be mutated afterwards.
type Config struct {
	Env string `yaml:"env" env:"APP_ENV"`

	Server struct {
		Port string `yaml:"port" env:"PORT"`
	} `yaml:"server"`

	Database struct {
		URL string `yaml:"url" env:"DATABASE_URL"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret" env:"SECRET"`
	} `yaml:"jwt"`

	CORS struct {
		Origin string `yaml:"origin" env:"CORS_ORIGIN"`
	} `yaml:"cors"`

	Shield struct {
		URL            string `yaml:"url" env:"SHIELD_URL"`
		APIKey         string `yaml:"api_key" env:"SHIELD_API_KEY"`
		TimeoutSeconds int    `yaml:"timeout_seconds" env:"SHIELD_TIMEOUT"`
	} `yaml:"shield"`
}

// LoadConfig reads configuration from the specified YAML file, then applies
// environment variable overrides. A missing config file is not an error so
// the server can run from environment alone.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	config.Env = "development"
	config.Server.Port = "8080"
	config.CORS.Origin = "*"
	config.Shield.TimeoutSeconds = 2

	file, err := os.Open(configPath)
	if err == nil {
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return config, nil
}

// IsProduction reports whether the server runs in production mode. It drives
// the Secure cookie attribute and the default-secret startup warning.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
