package game

import (
	"context"
	"log"

	"rushly/internal/daily"
)

// ColorTolerance is the largest per-channel difference still judged a match.
const ColorTolerance = 5

// Matches reports whether got is within ColorTolerance of want on every channel.
func Matches(want, got daily.Color) bool {
	return near(want.R, got.R) && near(want.G, got.G) && near(want.B, got.B)
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -ColorTolerance && d <= ColorTolerance
}

func judgeColor(target daily.Color, _ int, got daily.Color) Verdict {
	if Matches(target, got) {
		return Complete
	}
	return Fail
}

// ColorGame asks the player to reproduce the day's color in one submission.
type ColorGame struct {
	*machine[daily.Color, daily.Color]
	choice    daily.Color
	submitted bool
}

// ColorSnapshot is the renderable state of a ColorGame.
type ColorSnapshot struct {
	Header
	Target string `json:"target"`
	Choice string `json:"choice,omitempty"`
}

// NewColorGame starts date's color game, or opens it already played.
func NewColorGame(ctx context.Context, date daily.DateKey, l Ledger) *ColorGame {
	return &ColorGame{
		machine: newMachine[daily.Color, daily.Color](ctx, ColorID, date, daily.DailyColor(date), judgeColor, l, nil, StatePlaying),
	}
}

// Submit judges the player's color. Ignored outside Playing.
func (g *ColorGame) Submit(ctx context.Context, c daily.Color) ColorSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StatePlaying {
		return g.snapshot()
	}
	g.choice, g.submitted = c, true
	g.step(ctx, c)
	return g.snapshot()
}

// SubmitHex judges a "#rrggbb" submission. Text that is not a color counts
// as a wrong answer.
func (g *ColorGame) SubmitHex(ctx context.Context, hex string) ColorSnapshot {
	c, err := daily.ParseHex(hex)
	if err == nil {
		return g.Submit(ctx, c)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StatePlaying {
		log.Printf("[WARN] color game: unreadable submission: %v", err)
		g.finish(ctx, false)
	}
	return g.snapshot()
}

// Snapshot returns the current state.
func (g *ColorGame) Snapshot() ColorSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *ColorGame) snapshot() ColorSnapshot {
	s := ColorSnapshot{Header: g.header(), Target: g.challenge.Hex()}
	if g.submitted {
		s.Choice = g.choice.Hex()
	}
	return s
}
