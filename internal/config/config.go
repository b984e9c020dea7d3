// Package config содержит логику чтения конфигурации витрины RentCarX.
package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultRunAddress     = "localhost:8080"
	defaultBackendAddress = "http://localhost:5113/api/v1"
	defaultAssetsAddress  = "http://localhost:5113"
	defaultSessionTTL     = 24 * time.Hour
	defaultRequestTimeout = 10 * time.Second
	defaultApplyDelay     = 250 * time.Millisecond
	defaultLogLevel       = "info"
)

// Config содержит параметры конфигурации витрины.
type Config struct {
	RunAddress     string        `env:"RUN_ADDRESS"`
	BackendAddress string        `env:"BACKEND_ADDRESS"`
	AssetsAddress  string        `env:"ASSETS_ADDRESS"`
	DatabaseURI    string        `env:"DATABASE_URI"`
	SessionSecret  string        `env:"SESSION_SECRET"`
	SessionTTL     time.Duration `env:"SESSION_TTL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	ApplyDelay     time.Duration `env:"APPLY_DELAY"`
	LogLevel       string        `env:"LOG_LEVEL"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Значения из окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envCfg := *cfg

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.BackendAddress, "b", defaultBackendAddress, "backend API base address")
	flag.StringVar(&cfg.AssetsAddress, "p", defaultAssetsAddress, "base address for car photos")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI for session storage")
	flag.StringVar(&cfg.SessionSecret, "s", "", "secret used to sign session cookies")
	flag.DurationVar(&cfg.SessionTTL, "t", defaultSessionTTL, "session lifetime")
	flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

	flag.Parse()

	if envCfg.RunAddress != "" {
		cfg.RunAddress = envCfg.RunAddress
	}
	if envCfg.BackendAddress != "" {
		cfg.BackendAddress = envCfg.BackendAddress
	}
	if envCfg.AssetsAddress != "" {
		cfg.AssetsAddress = envCfg.AssetsAddress
	}
	if envCfg.DatabaseURI != "" {
		cfg.DatabaseURI = envCfg.DatabaseURI
	}
	if envCfg.SessionSecret != "" {
		cfg.SessionSecret = envCfg.SessionSecret
	}
	if envCfg.SessionTTL != 0 {
		cfg.SessionTTL = envCfg.SessionTTL
	}
	if envCfg.LogLevel != "" {
		cfg.LogLevel = envCfg.LogLevel
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.RunAddress == "" {
		c.RunAddress = defaultRunAddress
	}
	if c.BackendAddress == "" {
		c.BackendAddress = defaultBackendAddress
	}
	if c.AssetsAddress == "" {
		c.AssetsAddress = defaultAssetsAddress
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = defaultSessionTTL
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.ApplyDelay <= 0 {
		c.ApplyDelay = defaultApplyDelay
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}

	c.BackendAddress = withScheme(strings.TrimRight(c.BackendAddress, "/"))
	c.AssetsAddress = withScheme(strings.TrimRight(c.AssetsAddress, "/"))
}

func withScheme(addr string) string {
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return addr
	}
	return "http://" + addr
}
