package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/aiden/internal/config"
	"github.com/sandevgo/aiden/internal/core"
	"github.com/sandevgo/aiden/internal/providers/llm"
	"github.com/sandevgo/aiden/internal/service/chat"
	"github.com/sandevgo/aiden/internal/service/flows"
	"github.com/sandevgo/aiden/internal/service/lifecycle"
	"github.com/sandevgo/aiden/internal/storage/memstore"
	"github.com/sandevgo/aiden/internal/storage/sqlite"
	"github.com/sandevgo/aiden/internal/transport/httpapi"
	"github.com/sandevgo/aiden/pkg/log"
	"github.com/sandevgo/aiden/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)

	// 2. Storage
	store, flowsRepo, reaper, cleanup, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	if cleanup != nil {
		services = append(services, srv.NewCleanup(cleanup))
	}

	// 3. Generation backend
	generator, err := llm.NewProvider(ctx, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Session Coordinator
	coord := chat.NewCoordinator(store, generator, appCfg.ContextWindowSize)

	// 5. Onboarding flows
	flowsSvc := flows.NewService(flowsRepo)

	// 6. Session expiry policy (idle when SESSION_TTL is zero)
	services = append(services, lifecycle.NewSweeper(reaper, appCfg.SessionTTL))

	// 7. HTTP transport (REST + WebSocket)
	services = append(services, httpapi.NewServer(appCfg.ListenAddr, coord, store, flowsSvc))

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (core.SessionStore, core.FlowsRepository, core.SessionReaper, func() error, error) {
	switch cfg.StorageDriver {
	case "memory":
		st := memstore.New()
		return st, st, st, nil, nil
	case "sqlite":
		db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
		if err != nil {
			return nil, nil, nil, nil, err
		}
		sessions := sqlite.NewSessionsRepo(db)
		return sessions, sqlite.NewFlowsRepo(db), sessions, db.Close, nil
	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
