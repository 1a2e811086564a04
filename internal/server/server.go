/*
Package server implements the application's network transport layer.
It builds the HTTP server, configures timeouts, and wires the router to the
store and the recommendation engine.
*/
package server

import (
	"fmt"
	"net/http"
	"time"

	"BioPatch_V1/internal/config"
	"BioPatch_V1/internal/database"
	"BioPatch_V1/internal/patient"
	"BioPatch_V1/internal/utility"
	"github.com/labstack/echo/v4"
)

// Server defines the configuration and dependencies for the HTTP service.
type Server struct {
	cfg config.Config

	// db provides access to the document store and its health.
	db database.Service

	patients *patient.Handler

	startedAt time.Time

	// Echo is the underlying web framework instance.
	*echo.Echo
}

// New assembles the Server and its routes.
func New(cfg config.Config, db database.Service, rec patient.Recommender) (*Server, error) {
	h, err := patient.NewHandler(db, rec, utility.NewHub(), cfg.ProfileCacheSz,
		patient.WithProfileCacheTTL(cfg.ProfileTTL))
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		db:        db,
		patients:  h,
		startedAt: time.Now(),
	}
	s.Echo = s.RegisterRoutes()
	return s, nil
}

// NewServer returns a configured *http.Server for s.
func NewServer(cfg config.Config, db database.Service, rec patient.Recommender) (*http.Server, error) {
	s, err := New(cfg, db, rec)
	if err != nil {
		return nil, err
	}

	// Generation may wait on the model for the full Gemini timeout.
	writeTimeout := cfg.GeminiTimeout + 30*time.Second

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
	}, nil
}
