package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "chargenet/libs/config"
)

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Port string `yaml:"port" env:"HTTP_PORT"`
}

// DatabaseConfig holds the Postgres connection string.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN"`
}

// RedisConfig holds the revocation-store connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret           string `yaml:"secret" env:"JWT_SECRET"`
	ExpiresInMinutes int    `yaml:"expiresInMinutes" env:"JWT_EXPIRES_MINUTES"`
}

// TariffConfig holds the fixed per-kWh session rate.
type TariffConfig struct {
	RatePerKWh float64 `yaml:"ratePerKwh" env:"TARIFF_RATE_PER_KWH"`
}

// Config represents service configuration loaded from YAML/env.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Tariff   TariffConfig   `yaml:"tariff"`
}

const defaultRatePerKWh = 8.5

// Load reads configuration using the shared loader and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP:   HTTPConfig{Port: "8080"},
		JWT:    JWTConfig{ExpiresInMinutes: 60},
		Tariff: TariffConfig{RatePerKWh: defaultRatePerKWh},
	}

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("config: jwt secret is required")
	}
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		return nil, errors.New("config: redis addr is required")
	}
	if cfg.JWT.ExpiresInMinutes <= 0 {
		cfg.JWT.ExpiresInMinutes = 60
	}
	if cfg.Tariff.RatePerKWh <= 0 {
		cfg.Tariff.RatePerKWh = defaultRatePerKWh
	}

	return cfg, nil
}

// HTTPAddress returns a host:port formatted listen address.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// JWTExpiration converts the configured expiry to a duration.
func (c *Config) JWTExpiration() time.Duration {
	if c.JWT.ExpiresInMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.JWT.ExpiresInMinutes) * time.Minute
}
