package server

import (
	"net/http"
	"strings"

	"BioPatch_V1/internal/auth"
	"BioPatch_V1/internal/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

func (s *Server) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(LoggerMiddleware)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l := logging.FromEcho(c)
			ev := l.Info()
			if v.Error != nil {
				ev = l.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: !allowsAnyOrigin(s.cfg.CORSOrigins),
		MaxAge:           300,
	}))

	api := e.Group("/api")

	// Public routes
	api.GET("/", s.rootHandler)
	api.GET("/health", s.healthHandler)
	api.POST("/status", s.createStatusCheckHandler)
	api.GET("/status", s.listStatusChecksHandler)

	// Patient routes, token-protected when JWT_SECRET is set
	protected := api.Group("")
	if s.cfg.JWTSecret != "" {
		protected.Use(auth.JwtAuthMiddleware(s.cfg.JWTSecret))
	} else {
		log.Warn().Msg("JWT_SECRET not set, patient routes are unauthenticated")
	}
	s.patients.RegisterRoutes(protected)

	return e
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}

func (s *Server) rootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Hello World"})
}

// LoggerMiddleware attaches a request-scoped logger carrying the request id,
// both to the echo context and to the request context.
func LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)

		logger := log.With().Str("request_id", requestID).Logger()

		c.Set(logging.ContextKey, &logger)
		c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context())))

		return next(c)
	}
}
