package main

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rushly/internal/daily"
	"rushly/internal/ledger"
)

func TestOpenLedgerBackends(t *testing.T) {
	clock := daily.FixedClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
	for _, backend := range []string{ledger.BackendMemory, ledger.BackendFile, ledger.BackendBolt, ledger.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig()
			cfg.LedgerBackend = backend
			cfg.LedgerPath = filepath.Join(t.TempDir(), "ledger")
			store, l, err := openLedger(cfg, clock)
			if err != nil {
				t.Fatalf("openLedger(%s) failed: %v", backend, err)
			}
			defer store.Close()

			ctx := context.Background()
			if err := l.RecordResult(ctx, "color", testDate, true); err != nil {
				t.Fatalf("RecordResult failed: %v", err)
			}
			if !l.HasPlayed(ctx, "color", testDate) {
				t.Error("HasPlayed = false after RecordResult")
			}
		})
	}
}

func TestOpenLedgerUnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.LedgerBackend = "redis"
	if _, _, err := openLedger(cfg, daily.FixedClock(time.Now())); err == nil {
		t.Error("expected error for unknown backend")
	}
}

// recordFile is where the unscoped file ledger keeps gameID on date.
func recordFile(dir, gameID string, date daily.DateKey) string {
	return filepath.Join(dir, url.PathEscape(ledger.Key(gameID, date))+".json")
}

func touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	if err := os.Chtimes(path, at, at); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
}

func TestPruneLedger(t *testing.T) {
	dir := t.TempDir()
	store, err := ledger.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	app, clock, _ := testAppWithStore(store)
	ctx := context.Background()

	if err := app.Ledger.RecordResult(ctx, "color", "Mon Oct 12 2026", true); err != nil {
		t.Fatalf("RecordResult failed: %v", err)
	}
	if err := app.Ledger.RecordResult(ctx, "color", testDate, false); err != nil {
		t.Fatalf("RecordResult failed: %v", err)
	}
	touch(t, recordFile(dir, "color", "Mon Oct 12 2026"), clock.Now().Add(-72*time.Hour))
	touch(t, recordFile(dir, "color", testDate), clock.Now())

	removed, err := app.pruneLedger()
	if err != nil {
		t.Fatalf("pruneLedger failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("pruneLedger removed %d, want 1", removed)
	}
	if !app.Ledger.HasPlayed(ctx, "color", testDate) {
		t.Error("today's record must survive pruning")
	}
}

func TestPruneLedgerKeepsTodayAtMinimumRetention(t *testing.T) {
	dir := t.TempDir()
	store, err := ledger.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	app, clock, _ := testAppWithStore(store)
	app.Config.LedgerRetention = MinLedgerRetention
	ctx := context.Background()

	// Played right after midnight, pruned just before the next one.
	clock.Add(-9 * time.Hour)
	if err := app.Ledger.RecordResult(ctx, "word", testDate, true); err != nil {
		t.Fatalf("RecordResult failed: %v", err)
	}
	touch(t, recordFile(dir, "word", testDate), clock.Now())
	clock.Add(24*time.Hour - time.Second)
	if got := daily.Today(clock); got != testDate {
		t.Fatalf("clock left the day: %s", got)
	}

	if removed, err := app.pruneLedger(); err != nil || removed != 0 {
		t.Errorf("pruneLedger = %d, %v; want 0, nil", removed, err)
	}
	if !app.Ledger.HasPlayed(ctx, "word", testDate) {
		t.Error("a record of the current day was pruned")
	}
}

func TestPruneLedgerSkipsStoresWithoutPrune(t *testing.T) {
	app, _, _ := testApp()
	removed, err := app.pruneLedger()
	if err != nil || removed != 0 {
		t.Errorf("pruneLedger on memory store = %d, %v; want 0, nil", removed, err)
	}
}

func TestMaintainSweepsIdleState(t *testing.T) {
	app, clock, _ := testApp()
	app.getPlayerSession(context.Background(), "p1")
	app.getLimiter("192.0.2.1")

	clock.Add(2 * time.Hour)
	app.maintain()

	if len(app.Sessions) != 0 {
		t.Errorf("sessions left after maintain: %d", len(app.Sessions))
	}
	if len(app.LimiterMap) != 0 {
		t.Errorf("limiters left after maintain: %d", len(app.LimiterMap))
	}
}
