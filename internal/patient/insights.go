package patient

import (
	"net/http"
	"time"

	"BioPatch_V1/internal/database"
	"BioPatch_V1/internal/logging"
	"BioPatch_V1/internal/utility"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

const (
	analyticsVitalsLimit   = 24
	analyticsSessionsLimit = 10
	insightsLimit          = 20
)

type RecoveryData struct {
	CurrentScore     int    `json:"current_score"`
	DailyImprovement int    `json:"daily_improvement"`
	Status           string `json:"status"`
}

type AnalyticsResponse struct {
	RecoveryData   RecoveryData              `json:"recovery_data"`
	RecentVitals   []database.VitalSigns     `json:"recent_vitals"`
	RecentSessions []database.TherapySession `json:"recent_sessions"`
	LastUpdated    string                    `json:"last_updated"`
}

type InsightsResponse struct {
	EMGData         []database.EMGPoint         `json:"emg_data"`
	TemperatureData []database.TemperaturePoint `json:"temperature_data"`
	ActivityData    []database.TherapySession   `json:"activity_data"`
	LastUpdated     string                      `json:"last_updated"`
}

// GetAnalyticsHandler assembles the dashboard summary.
func (h *Handler) GetAnalyticsHandler(c echo.Context) error {
	userID := c.Param("user_id")
	res := AnalyticsResponse{
		// TODO: derive the recovery figures from vitals and pain history once
		// the scoring model is agreed with the clinical team.
		RecoveryData: RecoveryData{CurrentScore: 78, DailyImprovement: 15, Status: "improving"},
	}

	g, grpCtx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		v, err := h.store.RecentVitalSigns(grpCtx, userID, analyticsVitalsLimit)
		res.RecentVitals = v
		return err
	})
	g.Go(func() error {
		s, err := h.store.RecentTherapySessions(grpCtx, userID, analyticsSessionsLimit)
		res.RecentSessions = s
		return err
	})
	if err := g.Wait(); err != nil {
		return internalError(c, err, "Failed to get analytics")
	}

	res.LastUpdated = h.now().Format(time.RFC3339)
	return c.JSON(http.StatusOK, res)
}

// GetInsightsHandler returns the chart series oldest first.
func (h *Handler) GetInsightsHandler(c echo.Context) error {
	userID := c.Param("user_id")
	var res InsightsResponse

	// Each goroutine writes a distinct field.
	g, grpCtx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		emg, err := h.store.RecentEMGPoints(grpCtx, userID, insightsLimit)
		res.EMGData = reversed(emg)
		return err
	})
	g.Go(func() error {
		temp, err := h.store.RecentTemperaturePoints(grpCtx, userID, insightsLimit)
		res.TemperatureData = reversed(temp)
		return err
	})
	g.Go(func() error {
		sessions, err := h.store.RecentTherapySessions(grpCtx, userID, insightsLimit)
		res.ActivityData = reversed(sessions)
		return err
	})
	if err := g.Wait(); err != nil {
		return internalError(c, err, "Failed to get insights data")
	}

	res.LastUpdated = h.now().Format(time.RFC3339)
	return c.JSON(http.StatusOK, res)
}

// InsightsSocketHandler keeps a dashboard connection open and pushes REFRESH
// whenever the user's insight data changes.
func (h *Handler) InsightsSocketHandler(c echo.Context) error {
	userID := c.Param("user_id")

	ws, err := utility.Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logging.FromEcho(c).Warn().Err(err).Str("user_id", userID).Msg("WebSocket upgrade failed")
		return nil
	}
	defer ws.Close()

	h.hub.Register(userID, ws)
	defer h.hub.Unregister(userID, ws)

	// Clients never send anything; reading detects the disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return nil
		}
	}
}
