package patient

import (
	"net/http"
	"strconv"
	"time"

	"BioPatch_V1/internal/database"
	"BioPatch_V1/internal/logging"
	"BioPatch_V1/internal/utility"
	"github.com/labstack/echo/v4"
)

// Chart samples recorded after a completed session.
const (
	postTherapyEMG          = 35.2
	postTherapyTemperature  = 36.8
	postTherapyInflammation = "low"
)

type TherapySessionRequest struct {
	UserID      string         `json:"user_id"`
	SessionType string         `json:"session_type"`
	StartTime   *time.Time     `json:"start_time"`
	Settings    map[string]any `json:"settings"`
}

// CreateTherapySessionHandler opens a new TENS or microcurrent session.
func (h *Handler) CreateTherapySessionHandler(c echo.Context) error {
	var req TherapySessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if !ownsUser(c, req.UserID) {
		return forbidden(c)
	}
	req.UserID = utility.ResolveUserID(c, req.UserID)
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}
	if req.SessionType != database.SessionTypeTENS && req.SessionType != database.SessionTypeMicrocurrent {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "session_type must be TENS or Microcurrent"})
	}

	start := h.now()
	if req.StartTime != nil {
		start = req.StartTime.UTC()
	}
	if req.Settings == nil {
		req.Settings = map[string]any{}
	}

	id, err := h.store.InsertTherapySession(c.Request().Context(), database.TherapySession{
		UserID:      req.UserID,
		SessionType: req.SessionType,
		StartTime:   start,
		Settings:    req.Settings,
	})
	if err != nil {
		return internalError(c, err, "Failed to create session")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Therapy session created",
		"id":      id,
	})
}

// GetTherapySessionsHandler lists a user's sessions in creation order.
func (h *Handler) GetTherapySessionsHandler(c echo.Context) error {
	sessions, err := h.store.ListTherapySessions(c.Request().Context(), c.Param("user_id"), 100)
	if err != nil {
		return internalError(c, err, "Failed to get sessions")
	}
	return c.JSON(http.StatusOK, sessions)
}

// CompleteTherapySessionHandler closes a session, records post-therapy chart
// samples and tells open dashboards to refresh.
func (h *Handler) CompleteTherapySessionHandler(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	var effectiveness *int
	if raw := c.QueryParam("effectiveness"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 100 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "effectiveness must be an integer between 0 and 100"})
		}
		effectiveness = &n
	}

	session, err := h.store.GetTherapySession(ctx, sessionID)
	if isNotFound(err) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Session not found"})
	}
	if err != nil {
		return internalError(c, err, "Failed to complete session")
	}
	if !ownsUser(c, session.UserID) {
		return forbidden(c)
	}

	end := h.now()
	minutes := int(end.Sub(session.StartTime).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	session.Completed = true
	session.EndTime = &end
	session.Duration = &minutes
	session.Effectiveness = effectiveness

	if err := h.store.UpdateTherapySession(ctx, session); err != nil {
		if isNotFound(err) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Session not found"})
		}
		return internalError(c, err, "Failed to complete session")
	}

	if err := h.recordPostTherapySamples(c, session, end); err != nil {
		return internalError(c, err, "Failed to update analytics")
	}
	h.hub.Notify(session.UserID)

	logging.FromEcho(c).Info().
		Str("session_id", session.ID).
		Str("user_id", session.UserID).
		Int("duration_min", minutes).
		Msg("Therapy session completed")

	return c.JSON(http.StatusOK, map[string]any{
		"message":       "Therapy session completed successfully",
		"session_id":    session.ID,
		"effectiveness": effectiveness,
	})
}

func (h *Handler) recordPostTherapySamples(c echo.Context, session database.TherapySession, at time.Time) error {
	ctx := c.Request().Context()
	label := at.Format("15:04")

	if _, err := h.store.InsertEMGPoint(ctx, database.EMGPoint{
		UserID:    session.UserID,
		Time:      label,
		Value:     postTherapyEMG,
		Peak:      false,
		SessionID: session.ID,
		Timestamp: at,
	}); err != nil {
		return err
	}

	_, err := h.store.InsertTemperaturePoint(ctx, database.TemperaturePoint{
		UserID:       session.UserID,
		Time:         label,
		Temperature:  postTherapyTemperature,
		Inflammation: postTherapyInflammation,
		SessionID:    session.ID,
		Timestamp:    at,
	})
	return err
}
