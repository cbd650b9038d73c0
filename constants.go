package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome         = "/"
	RouteToday        = "/api/today"
	RouteColorSubmit  = "/color/submit"
	RouteMusicNote    = "/music/note"
	RouteMusicPlay    = "/music/playback"
	RouteWordStart    = "/word/start"
	RouteWordChoose   = "/word/choose"
	RouteHealthz      = "/healthz"
	RouteStylesheet   = "/static/app.css"
	DefaultColorInput = "#000000"
)

// Error message constants
const (
	ErrorInvalidNote  = "Note must be a number."
	ErrorTooManyCalls = "Too many requests. Please slow down."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

type contextKey string
