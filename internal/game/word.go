package game

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"rushly/internal/daily"
)

// Each round gives the player RoundBudget ticks of TickInterval.
const (
	RoundBudget  = 5
	TickInterval = time.Second
)

// SameColorName compares color names ignoring case and surrounding space.
func SameColorName(a, b string) bool {
	// A Caser keeps state between calls, so each comparison gets its own.
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}

func judgeWord(rounds daily.WordChallenge, pos int, name string) Verdict {
	if pos >= len(rounds) || !SameColorName(name, rounds[pos].Ink().Name) {
		return Fail
	}
	if pos+1 == len(rounds) {
		return Complete
	}
	return Advance
}

// WordGame shows color words printed in a different ink; the player names
// the ink. A wrong name fails the game, a timeout just moves on.
type WordGame struct {
	*machine[daily.WordChallenge, string]
	score    int
	timeLeft int
}

// WordView is one round as shown to the player. Answer is only filled in
// on the final reveal.
type WordView struct {
	Word   string `json:"word"`
	Ink    string `json:"ink"`
	Answer string `json:"answer,omitempty"`
}

// WordSnapshot is the renderable state of a WordGame.
type WordSnapshot struct {
	Header
	Round    int        `json:"round"`
	Rounds   int        `json:"rounds"`
	Score    int        `json:"score"`
	TimeLeft int        `json:"timeLeft"`
	Current  *WordView  `json:"current,omitempty"`
	Sequence []WordView `json:"sequence,omitempty"`
}

// NewWordGame prepares date's word game in Ready, or opens it already played.
func NewWordGame(ctx context.Context, date daily.DateKey, l Ledger, sched Scheduler) *WordGame {
	return newWordGame(ctx, date, daily.DailyWords(date), l, sched)
}

func newWordGame(ctx context.Context, date daily.DateKey, rounds daily.WordChallenge, l Ledger, sched Scheduler) *WordGame {
	return &WordGame{
		machine:  newMachine[daily.WordChallenge, string](ctx, WordID, date, rounds, judgeWord, l, sched, StateReady),
		timeLeft: RoundBudget,
	}
}

// Start begins the first round. Ignored unless the game is Ready.
func (g *WordGame) Start() WordSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateReady {
		return g.snapshot()
	}
	g.cancel()
	g.state = StatePlaying
	g.position = 0
	g.score = 0
	g.beginRound()
	return g.snapshot()
}

// Choose answers the current round with a color name.
func (g *WordGame) Choose(ctx context.Context, name string) WordSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StatePlaying {
		return g.snapshot()
	}
	switch g.step(ctx, name) {
	case Advance:
		g.score++
		g.beginRound()
	case Complete:
		g.score++
	}
	return g.snapshot()
}

// beginRound resets the countdown. Caller holds mu.
func (g *WordGame) beginRound() {
	g.timeLeft = RoundBudget
	g.after(TickInterval, g.tick)
}

// tick runs with mu held from the scheduler.
func (g *WordGame) tick() {
	g.timeLeft--
	if g.timeLeft > 0 {
		g.after(TickInterval, g.tick)
		return
	}
	if g.position+1 < len(g.challenge) {
		g.advance()
		g.beginRound()
		return
	}
	// Running out the clock on the last round still completes the game.
	g.finish(g.ctx, true)
}

// Snapshot returns the current state.
func (g *WordGame) Snapshot() WordSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// Score is the number of rounds answered correctly.
func (g *WordGame) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

func (g *WordGame) snapshot() WordSnapshot {
	s := WordSnapshot{
		Header:   g.header(),
		Round:    g.position,
		Rounds:   len(g.challenge),
		Score:    g.score,
		TimeLeft: g.timeLeft,
	}
	if g.state == StatePlaying && g.position < len(g.challenge) {
		p := g.challenge[g.position]
		s.Current = &WordView{Word: p.Word().Name, Ink: p.Ink().Hex}
	}
	if g.state.Terminal() {
		s.Sequence = lo.Map(g.challenge, func(p daily.WordPair, _ int) WordView {
			return WordView{Word: p.Word().Name, Ink: p.Ink().Hex, Answer: p.Ink().Name}
		})
	}
	return s
}
