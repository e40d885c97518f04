// Package config loads kubenum defaults from the environment.
// Command-line flags override every value loaded here.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/NVIDIA/kubenum/pkg/defaults"
)

// Config holds environment-provided defaults.
type Config struct {
	LogLevel              string        `env:"LOG_LEVEL" envDefault:"info"`
	Timeout               time.Duration `env:"KUBENUM_TIMEOUT" envDefault:"60s"`
	InsecureSkipTLSVerify bool          `env:"KUBENUM_INSECURE_SKIP_TLS_VERIFY" envDefault:"false"`
	QPS                   float64       `env:"KUBENUM_QPS" envDefault:"0"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.DumpTimeout
	}
	if cfg.QPS < 0 {
		return nil, fmt.Errorf("KUBENUM_QPS must not be negative, got %v", cfg.QPS)
	}
	return &cfg, nil
}

// TimeoutSeconds returns the timeout rounded down to whole seconds, at least 1.
func (c *Config) TimeoutSeconds() int {
	s := int(c.Timeout / time.Second)
	if s < 1 {
		return 1
	}
	return s
}
