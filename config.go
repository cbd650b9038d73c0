package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is read from the environment, after an optional .env file.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE"`
	Env             string        `env:"ENV" envDefault:"development"`
	SessionTimeout  time.Duration `env:"SESSION_TIMEOUT" envDefault:"2h"`
	CookieMaxAge    time.Duration `env:"COOKIE_MAX_AGE" envDefault:"720h"`
	StaticCacheAge  time.Duration `env:"STATIC_CACHE_AGE" envDefault:"5m"`
	RateLimitRPS    int           `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
	LedgerBackend   string        `env:"LEDGER_BACKEND" envDefault:"file"`
	LedgerPath      string        `env:"LEDGER_PATH" envDefault:"data/ledger"`
	LedgerRetention time.Duration `env:"LEDGER_RETENTION" envDefault:"48h"`
	TimeZone        string        `env:"TZ_NAME"`
}

// MinLedgerRetention keeps pruning away from records of the current day,
// which may be as long as 25 hours across a DST change.
const MinLedgerRetention = 25 * time.Hour

// loadConfig loads .env when present and parses the environment.
func loadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logInfo("No .env file loaded: %v", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate rejects settings that would break single-attempt gating.
// A zero LEDGER_RETENTION disables pruning.
func (c Config) validate() error {
	if c.LedgerRetention < 0 || (c.LedgerRetention > 0 && c.LedgerRetention < MinLedgerRetention) {
		return fmt.Errorf("LEDGER_RETENTION %v is below the minimum %v", c.LedgerRetention, MinLedgerRetention)
	}
	return nil
}

// IsProduction reports whether the server runs in release mode.
func (c Config) IsProduction() bool {
	return c.GinMode == "release" || strings.EqualFold(c.Env, "production")
}

// EnvName is the human-readable environment label.
func (c Config) EnvName() string {
	return map[bool]string{true: "production", false: "development"}[c.IsProduction()]
}

// Location resolves the time zone that decides where a day starts.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
