package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr   string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath     string        `env:"DB_PATH" envDefault:"data/globetrotter.db"`
	RedisURL   string        `env:"REDIS_URL"` // empty disables the catalog cache
	CatalogTTL time.Duration `env:"CATALOG_TTL" envDefault:"5m"`
	LogLevel   slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`

	// Bootstrap credentials for the catalog admin. Both empty skips the seed.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
