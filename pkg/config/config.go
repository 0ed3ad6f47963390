// Package config defines and loads the service configuration.
package config

import (
	"fmt"
	"time"

	"github.com/jscharber/textclinic/pkg/analysis"
	"github.com/jscharber/textclinic/pkg/logger"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. TEXTCLINIC_SERVER_PORT.
const EnvPrefix = "TEXTCLINIC"

// Config is the root configuration for the analysis server.
type Config struct {
	Server   ServerConfig           `yaml:"server" json:"server"`
	Logging  logger.Config          `yaml:"logging" json:"logging"`
	Analysis analysis.ServiceConfig `yaml:"analysis" json:"analysis"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `yaml:"host" json:"host"`
	Port            int           `yaml:"port" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	Debug           bool          `yaml:"debug" json:"debug"`
}

// Address returns the host:port listen address.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Default returns a complete configuration with sane defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging:  *logger.DefaultConfig(),
		Analysis: *analysis.DefaultServiceConfig(),
	}
}

// Load builds the configuration from defaults, an optional file, and
// environment overrides.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if err := NewLoader(EnvPrefix).Load(configPath, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Analysis.MaxConcurrentAnalyses <= 0 {
		return fmt.Errorf("max_concurrent_analyses must be positive, got %d", c.Analysis.MaxConcurrentAnalyses)
	}
	if c.Analysis.MaxBatchSize <= 0 {
		return fmt.Errorf("max_batch_size must be positive, got %d", c.Analysis.MaxBatchSize)
	}
	if c.Analysis.DefaultTimeout <= 0 {
		return fmt.Errorf("default_timeout must be positive, got %s", c.Analysis.DefaultTimeout)
	}
	return nil
}
