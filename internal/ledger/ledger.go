package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"rushly/internal/daily"
)

// Record is one day's stored outcome for one game.
type Record struct {
	GameID    string        `json:"-"`
	Date      daily.DateKey `json:"date"`
	Success   bool          `json:"success"`
	Timestamp time.Time     `json:"timestamp"`
}

// Key is the store key for gameID on date.
func Key(gameID string, date daily.DateKey) string {
	return "game_" + gameID + "_" + string(date)
}

// Ledger answers "was this game played on this day" and stores the outcome
// at most once. Read failures and malformed values read as "no record".
type Ledger struct {
	store Store
	clock daily.Clock
	mu    *sync.Mutex
}

// New creates a ledger over store, stamping records with clock.
func New(store Store, clock daily.Clock) *Ledger {
	return &Ledger{store: store, clock: clock, mu: &sync.Mutex{}}
}

// Scoped returns a ledger whose keys live under prefix. Scoped ledgers
// share the parent's write lock.
func (l *Ledger) Scoped(prefix string) *Ledger {
	return &Ledger{store: Prefixed(l.store, prefix), clock: l.clock, mu: l.mu}
}

// PlayerScope is the key prefix holding one player's records.
func PlayerScope(playerID string) string {
	return "player:" + playerID + ":"
}

// HasPlayed reports whether a record exists for gameID on date.
func (l *Ledger) HasPlayed(ctx context.Context, gameID string, date daily.DateKey) bool {
	ok, err := l.store.Exists(ctx, Key(gameID, date))
	if err != nil {
		log.Printf("[WARN] ledger: exists %s: %v", Key(gameID, date), err)
		return false
	}
	return ok
}

// RecordResult stores the outcome of gameID on date. A record that already
// exists is left untouched.
func (l *Ledger) RecordResult(ctx context.Context, gameID string, date daily.DateKey, success bool) error {
	key := Key(gameID, date)

	l.mu.Lock()
	defer l.mu.Unlock()

	if ok, err := l.store.Exists(ctx, key); err == nil && ok {
		log.Printf("[WARN] ledger: ignoring duplicate result for %s", key)
		return nil
	}

	payload, err := json.Marshal(Record{
		Date:      date,
		Success:   success,
		Timestamp: l.clock.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := l.store.Set(ctx, key, payload); err != nil {
		return fmt.Errorf("store record %s: %w", key, err)
	}
	return nil
}

// GetResult reads back the stored outcome of gameID on date.
func (l *Ledger) GetResult(ctx context.Context, gameID string, date daily.DateKey) (Record, bool) {
	key := Key(gameID, date)
	data, err := l.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[WARN] ledger: get %s: %v", key, err)
		}
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Printf("[WARN] ledger: malformed record %s: %v", key, err)
		return Record{}, false
	}
	rec.GameID = gameID
	if rec.Date == "" {
		rec.Date = date
	}
	return rec, true
}
