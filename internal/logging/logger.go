// Package logging configures the process-wide zerolog logger and exposes the
// per-request logger installed by the server middleware.
package logging

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ContextKey is where the request-scoped logger lives in an echo.Context.
const ContextKey = "logger"

// Init sets the global logger. Development gets a console writer; everything
// else gets JSON with caller information.
func Init(serviceName string, development bool, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if development {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Str("service", serviceName).
			Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Caller().
			Str("service", serviceName).
			Logger()
	}

	// zerolog.Ctx falls back to the global logger for contexts without one.
	zerolog.DefaultContextLogger = &log.Logger
}

// FromEcho returns the request logger stored by the middleware, or the global
// logger if none was set.
func FromEcho(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(ContextKey).(*zerolog.Logger); ok && l != nil {
		return l
	}
	return &log.Logger
}
