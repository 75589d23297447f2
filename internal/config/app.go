package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/aiden/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"AIDEN_RUNTIME_PATH" envDefault:".aiden"`

	// HTTP listen address for the REST and WebSocket API
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":5000"`

	// Storage driver: "sqlite" or "memory"
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`

	// Context Management
	ContextWindowSize int `env:"CONTEXT_WINDOW_SIZE" envDefault:"10"`

	// Session expiry. Zero disables the sweeper and sessions live forever.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"0"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "aiden.db")
}
