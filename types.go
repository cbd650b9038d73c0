package main

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"rushly/internal/daily"
	"rushly/internal/game"
	"rushly/internal/ledger"
)

// App holds the server's shared state.
type App struct {
	Config       Config
	IsProduction bool
	StartTime    time.Time

	Clock     daily.Clock
	Scheduler game.Scheduler
	Tones     game.TonePlayer
	Store     ledger.ClosableStore
	Ledger    *ledger.Ledger

	Sessions     map[string]*PlayerSession
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*limiterEntry
	LimiterMutex sync.Mutex

	Stylesheet []byte
}

// PlayerSession is one player's games for one day. It is never persisted;
// only the outcomes reach the ledger.
type PlayerSession struct {
	PlayerID       string
	Date           daily.DateKey
	Color          *game.ColorGame
	Melody         *game.MelodyGame
	Word           *game.WordGame
	LastAccessTime time.Time
}

// Close cancels every pending timer of the session's games.
func (s *PlayerSession) Close() {
	for _, g := range s.games() {
		g.Close()
	}
}

func (s *PlayerSession) games() []game.Game {
	return []game.Game{s.Color, s.Melody, s.Word}
}

// TodayView is everything a client needs to render the three games.
type TodayView struct {
	Date   daily.DateKey       `json:"date"`
	Color  game.ColorSnapshot  `json:"color"`
	Music  game.MelodySnapshot `json:"music"`
	Word   game.WordSnapshot   `json:"word"`
	Notes  []daily.Note        `json:"notes"`
	Colors []daily.NamedColor  `json:"colors"`
}

// RefreshAfter is how many seconds the page may stay as rendered before
// the state behind it moves on without input, or 0 when it never does.
// A running word round ticks every second; a playback is sounded by the
// page itself, so it only needs a reload once it is over.
func (v TodayView) RefreshAfter() int {
	if v.Word.State == game.StatePlaying {
		return 1
	}
	if left := v.Music.PlaybackLeft(); left > 0 {
		return int(math.Ceil(left.Seconds()))
	}
	return 0
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}
