// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config aggregates application configuration values.
type Config struct {
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	Server  ServerConfig  `envPrefix:"SERVER_"`
	Log     LogConfig     `envPrefix:"LOG_"`
	Whois   WhoisConfig   `envPrefix:"WHOIS_"`
	CT      CTConfig      `envPrefix:"CT_"`
	HTTP    HTTPConfig    `envPrefix:"HTTP_"`
	Metrics MetricsConfig `envPrefix:"METRICS_"`
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LookupTimeout   time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"30s"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// WhoisConfig controls the port-43 WHOIS client.
// An empty Server starts each lookup at the registry for the name's TLD.
type WhoisConfig struct {
	Server         string        `env:"SERVER"`
	DialTimeout    time.Duration `env:"DIAL_TIMEOUT" envDefault:"10s"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	FollowReferral bool          `env:"FOLLOW_REFERRAL" envDefault:"true"`
	MaxReferrals   int           `env:"MAX_REFERRALS" envDefault:"2"`
}

// CTConfig points the certificate lookups at a crt.sh deployment.
type CTConfig struct {
	BaseURL   string  `env:"BASE_URL" envDefault:"https://crt.sh"`
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"0"`
}

type HTTPConfig struct {
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
}

type MetricsConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"true"`
}

// Load parses the environment into a Config, applying defaults.
// PORT is honoured as a fallback for SERVER_PORT to match common hosting platforms.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if port, ok := lookupPort(); ok {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that would make the service unusable.
func (c Config) Validate() error {
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if c.CT.RateLimit < 0 {
		return fmt.Errorf("CT_RATE_LIMIT must not be negative, got %v", c.CT.RateLimit)
	}
	if c.Whois.MaxReferrals < 0 {
		return fmt.Errorf("WHOIS_MAX_REFERRALS must not be negative, got %d", c.Whois.MaxReferrals)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Server.Port
}

func lookupPort() (string, bool) {
	if _, ok := os.LookupEnv("SERVER_PORT"); ok {
		return "", false
	}
	port := os.Getenv("PORT")
	return port, port != ""
}
