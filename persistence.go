package main

import (
	"context"
	"fmt"
	"time"

	"rushly/internal/daily"
	"rushly/internal/ledger"
)

// pruner is implemented by stores that can drop old records.
type pruner interface {
	Prune(now time.Time, maxAge time.Duration) (int, error)
}

// openLedger opens the configured backend and wraps it in a Ledger.
func openLedger(cfg Config, clock daily.Clock) (ledger.ClosableStore, *ledger.Ledger, error) {
	store, err := ledger.Open(cfg.LedgerBackend, cfg.LedgerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s ledger at %q: %w", cfg.LedgerBackend, cfg.LedgerPath, err)
	}
	logInfo("Using %s ledger at %q", cfg.LedgerBackend, cfg.LedgerPath)
	return store, ledger.New(store, clock), nil
}

// pruneLedger drops records older than the retention window, when the
// backend supports it. Only today's records gate play.
func (app *App) pruneLedger() (int, error) {
	p, ok := app.Store.(pruner)
	if !ok || app.Config.LedgerRetention <= 0 {
		return 0, nil
	}
	return p.Prune(app.Clock.Now(), app.Config.LedgerRetention)
}

// runMaintenance sweeps idle sessions, stale limiters and old ledger
// records every interval until ctx is done.
func (app *App) runMaintenance(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.maintain()
		}
	}
}

func (app *App) maintain() {
	app.sweepSessions(app.Config.SessionTimeout)
	if n := app.sweepLimiters(app.Config.SessionTimeout); n > 0 {
		logInfo("Forgot %d idle rate limiters", n)
	}
	if _, err := app.pruneLedger(); err != nil {
		logWarn("Ledger prune failed: %v", err)
	}
}
