package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"rushly/internal/daily"
)

// getOrCreateSession retrieves the player ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	playerID, err := c.Cookie(SessionCookieName)
	if err != nil || uuid.Validate(playerID) != nil {
		playerID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(SessionCookieName, playerID, int(app.Config.CookieMaxAge.Seconds()), "/", "", app.IsProduction, true)
		logInfoCtx(c.Request.Context(), "Created new player: %s", playerID)
	}
	return playerID
}

// getPlayerSession returns the player's games for today, starting them if
// the player has none yet or the day rolled over.
func (app *App) getPlayerSession(ctx context.Context, playerID string) *PlayerSession {
	today := daily.Today(app.Clock)
	now := app.Clock.Now()

	app.SessionMutex.RLock()
	session, exists := app.Sessions[playerID]
	app.SessionMutex.RUnlock()
	if exists && session.Date == today {
		app.SessionMutex.Lock()
		session.LastAccessTime = now
		app.SessionMutex.Unlock()
		return session
	}

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	if session, exists = app.Sessions[playerID]; exists {
		if session.Date == today {
			session.LastAccessTime = now
			return session
		}
		logInfoCtx(ctx, "Day changed for player %s (%s -> %s)", playerID, session.Date, today)
		session.Close()
	}
	session = app.newPlayerSession(ctx, playerID, today)
	app.Sessions[playerID] = session
	return session
}

// sweepSessions drops sessions idle for longer than maxIdle or left over
// from an earlier day, and returns how many were dropped.
func (app *App) sweepSessions(maxIdle time.Duration) int {
	now := app.Clock.Now()
	today := daily.Today(app.Clock)

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	stale := lo.PickBy(app.Sessions, func(_ string, s *PlayerSession) bool {
		return s.Date != today || now.Sub(s.LastAccessTime) > maxIdle
	})
	for id, s := range stale {
		s.Close()
		delete(app.Sessions, id)
	}
	if len(stale) > 0 {
		logInfo("Session sweep removed %d sessions, %d remain", len(stale), len(app.Sessions))
	}
	return len(stale)
}
