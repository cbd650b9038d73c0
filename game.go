package main

import (
	"context"

	"rushly/internal/daily"
	"rushly/internal/game"
	"rushly/internal/ledger"
)

// newPlayerSession derives today's challenges and opens each game against
// the player's slice of the ledger.
func (app *App) newPlayerSession(ctx context.Context, playerID string, today daily.DateKey) *PlayerSession {
	l := app.Ledger.Scoped(ledger.PlayerScope(playerID))
	session := &PlayerSession{
		PlayerID:       playerID,
		Date:           today,
		Color:          game.NewColorGame(ctx, today, l),
		Melody:         game.NewMelodyGame(ctx, today, l, app.Scheduler, app.Tones),
		Word:           game.NewWordGame(ctx, today, l, app.Scheduler),
		LastAccessTime: app.Clock.Now(),
	}
	logInfoCtx(ctx, "Started %s games for player %s", today, playerID)
	return session
}

// todayView snapshots all three games of a session.
func (s *PlayerSession) todayView() TodayView {
	return TodayView{
		Date:   s.Date,
		Color:  s.Color.Snapshot(),
		Music:  s.Melody.Snapshot(),
		Word:   s.Word.Snapshot(),
		Notes:  daily.Notes,
		Colors: daily.Colors,
	}
}

// colorInput falls back to black for an empty picker value.
func colorInput(raw string) string {
	if raw == "" {
		return DefaultColorInput
	}
	return raw
}
