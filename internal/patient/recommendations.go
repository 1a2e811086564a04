package patient

import (
	"net/http"

	"BioPatch_V1/internal/database"
	"BioPatch_V1/internal/logging"
	"BioPatch_V1/internal/recommendation"
	"github.com/labstack/echo/v4"
)

const recommendationHistoryLimit = 20

// GenerateRecommendationsHandler builds a snapshot from the request body,
// asks the recommender for a bundle and keeps a copy with its inputs.
func (h *Handler) GenerateRecommendationsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("user_id")

	var snap recommendation.Snapshot
	if err := c.Bind(&snap); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	snap.UserID = userID
	snap = snap.WithRequestDefaults()

	bundle := h.recommender.Generate(ctx, snap)

	_, err := h.store.InsertRecommendation(ctx, database.RecommendationRecord{
		UserID:           userID,
		Timestamp:        h.now(),
		Recommendations:  bundle,
		UserDataSnapshot: snap,
	})
	if err != nil {
		return internalError(c, err, "Failed to generate recommendations")
	}

	logging.FromEcho(c).Info().
		Str("user_id", userID).
		Int("recommendations", len(bundle.Recommendations)).
		Int("alerts", len(bundle.Alerts)).
		Msg("Recommendations generated")

	return c.JSON(http.StatusOK, bundle)
}

// GetRecommendationHistoryHandler returns the most recent stored bundles.
func (h *Handler) GetRecommendationHistoryHandler(c echo.Context) error {
	records, err := h.store.RecentRecommendations(c.Request().Context(), c.Param("user_id"), recommendationHistoryLimit)
	if err != nil {
		return internalError(c, err, "Failed to get recommendation history")
	}
	return c.JSON(http.StatusOK, records)
}
