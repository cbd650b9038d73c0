// Package game holds the once-a-day state machines behind the color,
// melody and word challenges.
package game

import (
	"context"
	"log"
	"sync"
	"time"

	"rushly/internal/daily"
	"rushly/internal/ledger"
)

// ID names a game in the ledger.
type ID string

const (
	ColorID ID = "color"
	MusicID ID = "music"
	WordID  ID = "word"
)

// IDs lists the games in display order.
var IDs = []ID{ColorID, MusicID, WordID}

// State is a game's position in its lifecycle.
type State string

const (
	StateReady         State = "ready"
	StatePlaying       State = "playing"
	StateCompleted     State = "completed"
	StateFailed        State = "failed"
	StateAlreadyPlayed State = "already-played"
)

// Terminal reports whether no further transitions leave s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateAlreadyPlayed
}

// Verdict is a judge's ruling on one input.
type Verdict int

const (
	Advance Verdict = iota
	Complete
	Fail
)

func (v Verdict) String() string {
	switch v {
	case Advance:
		return "advance"
	case Complete:
		return "complete"
	default:
		return "fail"
	}
}

// Judge rules on input given at position of challenge.
type Judge[C, I any] func(challenge C, position int, input I) Verdict

// Ledger is the slice of the attempt ledger the games need.
type Ledger interface {
	HasPlayed(ctx context.Context, gameID string, date daily.DateKey) bool
	RecordResult(ctx context.Context, gameID string, date daily.DateKey, success bool) error
	GetResult(ctx context.Context, gameID string, date daily.DateKey) (ledger.Record, bool)
}

// Game is what every state machine exposes to its owner.
type Game interface {
	ID() ID
	State() State
	Close()
}

// machine is the state core shared by the three games. Every field is
// guarded by mu; timer callbacks take mu and drop themselves when gen moved
// on since they were scheduled.
type machine[C, I any] struct {
	mu        sync.Mutex
	ctx       context.Context
	id        ID
	date      daily.DateKey
	challenge C
	judge     Judge[C, I]
	ledger    Ledger
	sched     Scheduler
	state     State
	position  int
	prior     *ledger.Record
	gen       uint64
	timers    []Timer
}

func newMachine[C, I any](ctx context.Context, id ID, date daily.DateKey, challenge C, judge Judge[C, I], l Ledger, sched Scheduler, start State) *machine[C, I] {
	if sched == nil {
		sched = RealScheduler{}
	}
	m := &machine[C, I]{
		ctx:       context.WithoutCancel(ctx),
		id:        id,
		date:      date,
		challenge: challenge,
		judge:     judge,
		ledger:    l,
		sched:     sched,
		state:     start,
	}
	if l.HasPlayed(ctx, string(id), date) {
		m.state = StateAlreadyPlayed
		if rec, ok := l.GetResult(ctx, string(id), date); ok {
			m.prior = &rec
		}
		log.Printf("[INFO] %s game for %s already played", id, date)
	}
	return m
}

// step judges input at the current position and applies the verdict.
// Caller holds mu and has checked the machine is playing.
func (m *machine[C, I]) step(ctx context.Context, input I) Verdict {
	v := m.judge(m.challenge, m.position, input)
	switch v {
	case Advance:
		m.advance()
	case Complete:
		m.position++
		m.finish(ctx, true)
	default:
		m.finish(ctx, false)
	}
	return v
}

// advance moves to the next position, dropping callbacks of the previous one.
func (m *machine[C, I]) advance() {
	m.cancel()
	m.position++
}

// finish enters Completed or Failed and writes the ledger once.
func (m *machine[C, I]) finish(ctx context.Context, success bool) {
	if m.state.Terminal() {
		return
	}
	m.cancel()
	m.state = StateFailed
	if success {
		m.state = StateCompleted
	}
	log.Printf("[INFO] %s game for %s ended: %s", m.id, m.date, m.state)
	if err := m.ledger.RecordResult(ctx, string(m.id), m.date, success); err != nil {
		log.Printf("[WARN] %s game: record result: %v", m.id, err)
	}
}

// cancel invalidates every pending callback.
func (m *machine[C, I]) cancel() {
	m.gen++
	for _, t := range m.timers {
		t.Stop()
	}
	m.timers = nil
}

// after runs f with mu held once d elapses, unless the machine moved on.
func (m *machine[C, I]) after(d time.Duration, f func()) {
	gen := m.gen
	t := m.sched.AfterFunc(d, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.gen != gen {
			return
		}
		f()
	})
	m.timers = append(m.timers, t)
}

func (m *machine[C, I]) ID() ID { return m.id }

func (m *machine[C, I]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Close drops all pending callbacks. The game keeps its state.
func (m *machine[C, I]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancel()
}

// Header is shared by every snapshot.
type Header struct {
	Game  ID             `json:"game"`
	Date  daily.DateKey  `json:"date"`
	State State          `json:"state"`
	Prior *ledger.Record `json:"prior,omitempty"`
}

// header reads the common fields. Caller holds mu.
func (m *machine[C, I]) header() Header {
	return Header{Game: m.id, Date: m.date, State: m.state, Prior: m.prior}
}
