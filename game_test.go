package main

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"rushly/internal/daily"
	"rushly/internal/game"
	"rushly/internal/ledger"
)

// testClock is a settable clock shared by a test app and its ledger.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() Config {
	return Config{
		Port:            "0",
		Env:             "test",
		SessionTimeout:  time.Hour,
		CookieMaxAge:    time.Hour,
		StaticCacheAge:  time.Minute,
		RateLimitRPS:    100,
		RateLimitBurst:  100,
		LedgerBackend:   ledger.BackendMemory,
		LedgerRetention: 48 * time.Hour,
	}
}

// testAppWithStore builds an App over store at 09:00 UTC on 2026-10-15.
func testAppWithStore(store ledger.ClosableStore) (*App, *testClock, *game.ManualScheduler) {
	clock := &testClock{now: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	sched := game.NewManualScheduler()
	app := newApp(testConfig(), clock, sched, store, ledger.New(store, clock))
	app.Stylesheet = []byte("body{}")
	return app, clock, sched
}

func testApp() (*App, *testClock, *game.ManualScheduler) {
	return testAppWithStore(ledger.NewMemoryStore())
}

const testDate = daily.DateKey("Thu Oct 15 2026")

func TestGetPlayerSessionReusesSameDay(t *testing.T) {
	app, clock, _ := testApp()
	ctx := context.Background()

	first := app.getPlayerSession(ctx, "p1")
	if first.Date != testDate {
		t.Fatalf("session date = %q, want %q", first.Date, testDate)
	}
	clock.Add(time.Hour)
	second := app.getPlayerSession(ctx, "p1")
	if first != second {
		t.Error("expected the same session within one day")
	}
	if !second.LastAccessTime.Equal(clock.Now()) {
		t.Errorf("LastAccessTime = %v, want %v", second.LastAccessTime, clock.Now())
	}
	if other := app.getPlayerSession(ctx, "p2"); other == first {
		t.Error("players must not share a session")
	}
}

func TestGetPlayerSessionRollsOverAtMidnight(t *testing.T) {
	app, clock, sched := testApp()
	ctx := context.Background()

	old := app.getPlayerSession(ctx, "p1")
	old.Word.Start()
	if sched.Pending() == 0 {
		t.Fatal("word game should have a pending tick")
	}

	clock.Add(15 * time.Hour)
	fresh := app.getPlayerSession(ctx, "p1")
	if fresh == old {
		t.Fatal("expected a new session on a new day")
	}
	if fresh.Date != "Fri Oct 16 2026" {
		t.Errorf("new session date = %q", fresh.Date)
	}
	if sched.Pending() != 0 {
		t.Errorf("old session timers still pending: %d", sched.Pending())
	}
	if fresh.Word.State() != game.StateReady {
		t.Errorf("new day word state = %s, want ready", fresh.Word.State())
	}
}

func TestPlayerLedgerIsolation(t *testing.T) {
	app, _, _ := testApp()
	ctx := context.Background()

	p1 := app.getPlayerSession(ctx, "p1")
	p1.Color.SubmitHex(ctx, "#000000")
	if p1.Color.State() != game.StateFailed && p1.Color.State() != game.StateCompleted {
		t.Fatalf("color state = %s after submit", p1.Color.State())
	}

	// A fresh session for the same player sees the stored attempt.
	app.Sessions = make(map[string]*PlayerSession)
	again := app.getPlayerSession(ctx, "p1")
	if again.Color.State() != game.StateAlreadyPlayed {
		t.Errorf("p1 color state = %s, want already-played", again.Color.State())
	}
	if snap := again.Color.Snapshot(); snap.Prior == nil {
		t.Error("already-played snapshot should carry the prior record")
	}

	p2 := app.getPlayerSession(ctx, "p2")
	if p2.Color.State() != game.StatePlaying {
		t.Errorf("p2 color state = %s, want playing", p2.Color.State())
	}

	key := ledger.PlayerScope("p1") + ledger.Key(string(game.ColorID), testDate)
	if ok, _ := app.Store.Exists(ctx, key); !ok {
		t.Errorf("expected ledger key %q", key)
	}
}

func TestSweepSessions(t *testing.T) {
	app, clock, _ := testApp()
	ctx := context.Background()

	app.getPlayerSession(ctx, "idle")
	clock.Add(50 * time.Minute)
	app.getPlayerSession(ctx, "active")
	clock.Add(20 * time.Minute)

	if removed := app.sweepSessions(time.Hour); removed != 1 {
		t.Errorf("sweepSessions removed %d, want 1", removed)
	}
	if _, ok := app.Sessions["idle"]; ok {
		t.Error("idle session should be gone")
	}
	if _, ok := app.Sessions["active"]; !ok {
		t.Error("active session should remain")
	}
}

func TestTodayViewRefreshAfter(t *testing.T) {
	app, _, sched := testApp()
	session := app.getPlayerSession(context.Background(), "p1")
	seq := daily.DailyMelody(testDate)

	if got := session.todayView().RefreshAfter(); got != 0 {
		t.Errorf("RefreshAfter before any input = %d, want 0", got)
	}

	// The page plays the melody itself, so it waits for the whole playback.
	session.Melody.Playback()
	want := int(math.Ceil((time.Duration(len(seq)) * (game.NoteSlot + game.NoteGap)).Seconds()))
	if got := session.todayView().RefreshAfter(); got != want {
		t.Errorf("RefreshAfter during playback = %d, want %d", got, want)
	}

	sched.Advance(time.Minute)
	if got := session.todayView().RefreshAfter(); got != 0 {
		t.Errorf("RefreshAfter after playback = %d, want 0", got)
	}

	session.Word.Start()
	if got := session.todayView().RefreshAfter(); got != 1 {
		t.Errorf("RefreshAfter during a word round = %d, want 1", got)
	}
}
