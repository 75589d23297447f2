// Package lifecycle holds the session expiry policy. It is deliberately a
// separate service: the store's append contract stays free of eviction
// logic, and a zero TTL keeps sessions forever.
package lifecycle

import (
	"context"
	"time"

	"github.com/sandevgo/aiden/internal/core"
	"github.com/sandevgo/aiden/pkg/log"
)

const sweepInterval = 5 * time.Minute

type Sweeper struct {
	reaper   core.SessionReaper
	ttl      time.Duration
	interval time.Duration
}

func NewSweeper(reaper core.SessionReaper, ttl time.Duration) *Sweeper {
	return &Sweeper{reaper: reaper, ttl: ttl, interval: sweepInterval}
}

func (s *Sweeper) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	if s.ttl <= 0 {
		logger.Info().Msg("session ttl disabled, sweeper idle")
		return nil
	}

	logger.Info().Dur("ttl", s.ttl).Msg("starting session sweeper")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cutoff := time.Now().UTC().Add(-s.ttl)
			count, err := s.reaper.DeleteIdle(ctx, cutoff)
			if err != nil {
				logger.Error().Err(err).Msg("session sweep failed")
				continue
			}
			if count > 0 {
				logger.Info().Int64("sessions", count).Msg("expired idle sessions")
			}
		}
	}
}

func (s *Sweeper) Shutdown(ctx context.Context) error {
	return nil
}
