package workers

import (
	"context"
	"fmt"

	"github.com/okoval/notekeeper/internal/config"
	"github.com/okoval/notekeeper/internal/logger"
	"github.com/okoval/notekeeper/internal/store"
)

type Workers struct {
	workers []Worker

	logger *logger.Logger
}

// NewWorkers assembles the background workers enabled by cfg. A zero sweep
// interval leaves the sweeper out entirely.
func NewWorkers(users store.UserRepository, authCfg config.Auth, cfg config.Workers, logger *logger.Logger) (*Workers, error) {
	w := &Workers{logger: logger}

	if cfg.SweepInterval > 0 {
		sweeper, err := NewSessionSweeper(users, authCfg, cfg.SweepInterval, logger)
		if err != nil {
			return nil, fmt.Errorf("creating session sweeper: %w", err)
		}
		w.workers = append(w.workers, sweeper)
	}

	return w, nil
}

// Run launches every worker in its own goroutine. The workers stop when ctx
// is cancelled; Run itself returns immediately.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		go worker.Run(ctx)
	}
}
