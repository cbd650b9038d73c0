package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"rushly/internal/daily"
)

// homeHandler renders the page with all three of today's games.
func (app *App) homeHandler(c *gin.Context) {
	session := app.sessionFor(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":      "Rushly - Daily Challenges",
		"view":       session.todayView(),
		"stylesheet": RouteStylesheet,
	})
}

// todayHandler returns the snapshots of today's games as JSON.
func (app *App) todayHandler(c *gin.Context) {
	session := app.sessionFor(c)
	c.JSON(http.StatusOK, session.todayView())
}

// colorSubmitHandler submits the picked color. An empty picker value is
// judged as black.
func (app *App) colorSubmitHandler(c *gin.Context) {
	session := app.sessionFor(c)
	hex := colorInput(strings.TrimSpace(c.PostForm("color")))
	snap := session.Color.SubmitHex(c.Request.Context(), hex)
	logInfoCtx(c.Request.Context(), "Player %s submitted color %s: %s", session.PlayerID, hex, snap.State)
	app.respond(c, session)
}

// musicNoteHandler presses one key of the melody keyboard.
func (app *App) musicNoteHandler(c *gin.Context) {
	session := app.sessionFor(c)
	note, err := strconv.Atoi(strings.TrimSpace(c.PostForm("note")))
	if err != nil {
		logWarnCtx(c.Request.Context(), "Player %s sent invalid note %q", session.PlayerID, c.PostForm("note"))
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorInvalidNote})
		return
	}
	session.Melody.Press(c.Request.Context(), note)
	app.respond(c, session)
}

// musicPlaybackHandler starts replaying the melody.
func (app *App) musicPlaybackHandler(c *gin.Context) {
	session := app.sessionFor(c)
	if !session.Melody.Playback() {
		logInfoCtx(c.Request.Context(), "Playback ignored for player %s", session.PlayerID)
	}
	app.respond(c, session)
}

// wordStartHandler begins the word game's first round.
func (app *App) wordStartHandler(c *gin.Context) {
	session := app.sessionFor(c)
	session.Word.Start()
	app.respond(c, session)
}

// wordChooseHandler answers the current word round with a color name.
func (app *App) wordChooseHandler(c *gin.Context) {
	session := app.sessionFor(c)
	session.Word.Choose(c.Request.Context(), c.PostForm("color"))
	app.respond(c, session)
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	app.SessionMutex.RLock()
	sessions := len(app.Sessions)
	app.SessionMutex.RUnlock()
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"env":            app.Config.EnvName(),
		"date":           daily.Today(app.Clock),
		"ledger_backend": app.Config.LedgerBackend,
		"sessions":       sessions,
		"uptime":         formatUptime(time.Since(app.StartTime)),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

// sessionFor resolves the calling player's games for today.
func (app *App) sessionFor(c *gin.Context) *PlayerSession {
	playerID := app.getOrCreateSession(c)
	return app.getPlayerSession(c.Request.Context(), playerID)
}

// respond answers a form post: JSON for scripted clients, otherwise a
// redirect back to the page.
func (app *App) respond(c *gin.Context, session *PlayerSession) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, session.todayView())
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

func wantsJSON(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true" ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}
