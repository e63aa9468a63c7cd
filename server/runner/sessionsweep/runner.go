// Package sessionsweep periodically removes expired login sessions.
package sessionsweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/moodroute/moodroute/store"
)

type Runner struct {
	store    *store.Store
	interval time.Duration
}

// NewRunner creates a session sweep runner.
func NewRunner(store *store.Store) *Runner {
	return &Runner{
		store:    store,
		interval: time.Hour,
	}
}

// Run starts the background task.
func (r *Runner) Run(ctx context.Context) {
	// Sweep once on startup
	r.sweep(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep(ctx)
		case <-ctx.Done():
			slog.Info("session sweep runner stopped")
			return
		}
	}
}

// RunOnce sweeps once (for manual trigger).
func (r *Runner) RunOnce(ctx context.Context) {
	r.sweep(ctx)
}

func (r *Runner) sweep(ctx context.Context) {
	deleted, err := r.store.DeleteExpiredSessions(ctx, time.Now().Unix())
	if err != nil {
		slog.Error("failed to delete expired sessions", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("deleted expired sessions", "count", deleted)
	}
}
