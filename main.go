package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	"rushly/internal/daily"
	"rushly/internal/game"
	"rushly/internal/ledger"
)

const maintenanceInterval = 10 * time.Minute

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logFatal("Failed to load config: %v", err)
	}
	logInfo("Starting Rushly in %s mode", cfg.EnvName())

	loc, err := cfg.Location()
	if err != nil {
		logFatal("Failed to resolve time zone: %v", err)
	}
	clock := daily.SystemClock{Location: loc}

	store, l, err := openLedger(cfg, clock)
	if err != nil {
		logFatal("Failed to open ledger: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logWarn("Failed to close ledger: %v", err)
		}
	}()

	stylesheet, err := loadStylesheet(cfg.IsProduction())
	if err != nil {
		logFatal("Failed to load stylesheet: %v", err)
	}

	app := newApp(cfg, clock, game.RealScheduler{}, store, l)
	app.Stylesheet = stylesheet
	logInfo("Today is %s", daily.Today(clock))

	router, err := setupRouter(app)
	if err != nil {
		logFatal("Failed to set up router: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go app.runMaintenance(ctx, maintenanceInterval)

	startServer(router, cfg.Port)
}

// newApp wires an App around its clock, scheduler and ledger.
func newApp(cfg Config, clock daily.Clock, sched game.Scheduler, store ledger.ClosableStore, l *ledger.Ledger) *App {
	return &App{
		Config:       cfg,
		IsProduction: cfg.IsProduction(),
		StartTime:    time.Now(),
		Clock:        clock,
		Scheduler:    sched,
		Tones:        game.SilentTones{},
		Store:        store,
		Ledger:       l,
		Sessions:     make(map[string]*PlayerSession),
		LimiterMap:   make(map[string]*limiterEntry),
	}
}

// setupRouter builds the gin engine with middleware and every route.
func setupRouter(app *App) (*gin.Engine, error) {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(requestIDMiddleware())
	router.Use(func(c *gin.Context) {
		applyCacheHeaders(c, app.IsProduction, app.Config.StaticCacheAge)
	})

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	router.GET(RouteHome, app.homeHandler)
	router.GET(RouteToday, app.todayHandler)
	router.GET(RouteStylesheet, app.stylesheetHandler)
	router.GET(RouteHealthz, app.healthzHandler)

	limited := router.Group("/", app.rateLimitMiddleware())
	limited.POST(RouteColorSubmit, app.colorSubmitHandler)
	limited.POST(RouteMusicNote, app.musicNoteHandler)
	limited.POST(RouteMusicPlay, app.musicPlaybackHandler)
	limited.POST(RouteWordStart, app.wordStartHandler)
	limited.POST(RouteWordChoose, app.wordChooseHandler)

	return router, nil
}

func startServer(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}

// applyCacheHeaders lets browsers cache the stylesheet in production and
// keeps every game response fresh.
func applyCacheHeaders(c *gin.Context, production bool, staticAge time.Duration) {
	if production && strings.HasPrefix(c.Request.URL.Path, "/static/") {
		cachecontrol.New(cachecontrol.Config{
			Public: true,
			MaxAge: cachecontrol.Duration(staticAge),
		})(c)
		c.Header("Vary", "Accept-Encoding")
		return
	}
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}
