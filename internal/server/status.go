package server

import (
	"net/http"

	"BioPatch_V1/internal/database"
	"BioPatch_V1/internal/logging"
	"github.com/labstack/echo/v4"
)

const statusListLimit = 1000

type StatusCheckRequest struct {
	ClientName string `json:"client_name"`
}

// createStatusCheckHandler records a client heartbeat.
func (s *Server) createStatusCheckHandler(c echo.Context) error {
	var req StatusCheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.ClientName == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "client_name is required"})
	}

	sc := database.StatusCheck{ClientName: req.ClientName, Timestamp: s.now()}
	id, err := s.db.InsertStatusCheck(c.Request().Context(), sc)
	if err != nil {
		logging.FromEcho(c).Error().Err(err).Msg("Failed to create status check")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create status check"})
	}
	sc.ID = id
	return c.JSON(http.StatusOK, sc)
}

func (s *Server) listStatusChecksHandler(c echo.Context) error {
	checks, err := s.db.ListStatusChecks(c.Request().Context(), statusListLimit)
	if err != nil {
		logging.FromEcho(c).Error().Err(err).Msg("Failed to list status checks")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list status checks"})
	}
	return c.JSON(http.StatusOK, checks)
}
