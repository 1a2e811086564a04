package patient

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the patient endpoints on g.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	// Device readings
	g.POST("/vitals", h.RecordVitalSignsHandler)
	g.GET("/vitals/latest/:user_id", h.GetLatestVitalSignsHandler)

	// Therapy sessions
	g.POST("/sessions", h.CreateTherapySessionHandler)
	g.GET("/sessions/:user_id", h.GetTherapySessionsHandler)
	g.POST("/sessions/:session_id/complete", h.CompleteTherapySessionHandler)

	// AI recommendations
	g.POST("/recommendations/:user_id", h.GenerateRecommendationsHandler)
	g.GET("/recommendations/:user_id/history", h.GetRecommendationHistoryHandler)

	// Profile & pain
	g.GET("/profile/:user_id", h.GetProfileHandler)
	g.POST("/profile", h.UpsertProfileHandler)
	g.POST("/profile/pain-level", h.UpdatePainLevelHandler)
	g.GET("/profile/:user_id/pain-history", h.GetPainHistoryHandler)

	// Dashboards
	g.GET("/analytics/:user_id", h.GetAnalyticsHandler)
	g.GET("/insights/:user_id", h.GetInsightsHandler)
	g.GET("/ws/insights/:user_id", h.InsightsSocketHandler)
}
