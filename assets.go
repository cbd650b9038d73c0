package main

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"

	"rushly/internal/daily"
	"rushly/internal/game"
)

//go:embed templates/*.html static/app.css
var assets embed.FS

var templateFuncs = template.FuncMap{
	"noteName": func(id int) string {
		if id < 0 || id >= len(daily.Notes) {
			return "?"
		}
		return daily.Notes[id].Name
	},
	"keyAnimation": keyAnimation,
	"inc": func(i int) int { return i + 1 },
}

// keyAnimation lights key id once for every playback step that plays it.
func keyAnimation(steps []game.PlaybackStep, id int) string {
	var parts []string
	for _, s := range steps {
		if s.Note == id {
			parts = append(parts, fmt.Sprintf("key-lit %dms linear %dms", s.SlotMs, s.OffsetMs))
		}
	}
	return strings.Join(parts, ", ")
}

// loadTemplates parses the embedded page templates.
func loadTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// loadStylesheet reads the embedded stylesheet, minified on request.
func loadStylesheet(minified bool) ([]byte, error) {
	raw, err := assets.ReadFile("static/app.css")
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	if !minified {
		return raw, nil
	}
	out, err := minifyCSS(string(raw))
	if err != nil {
		return nil, err
	}
	logInfo("Minified stylesheet from %d to %d bytes", len(raw), len(out))
	return []byte(out), nil
}

func minifyCSS(src string) (string, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	out, err := m.String("text/css", src)
	if err != nil {
		return "", fmt.Errorf("minify stylesheet: %w", err)
	}
	return out, nil
}

// stylesheetHandler serves the stylesheet loaded at startup.
func (app *App) stylesheetHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/css; charset=utf-8", app.Stylesheet)
}
