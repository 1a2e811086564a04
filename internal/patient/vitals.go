package patient

import (
	"net/http"
	"time"

	"BioPatch_V1/internal/database"
	"BioPatch_V1/internal/utility"
	"github.com/labstack/echo/v4"
)

type VitalSignsRequest struct {
	UserID      string     `json:"user_id"`
	EMGRMS      float64    `json:"emg_rms"`
	HeartRate   int        `json:"heart_rate"`
	HRV         float64    `json:"hrv"`
	EDAPeaks    int        `json:"eda_peaks"`
	Temperature float64    `json:"temperature"`
	Timestamp   *time.Time `json:"timestamp"`
}

// RecordVitalSignsHandler stores one reading uploaded by a device.
func (h *Handler) RecordVitalSignsHandler(c echo.Context) error {
	var req VitalSignsRequest
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

	ts := h.now()
	if req.Timestamp != nil {
		ts = req.Timestamp.UTC()
	}

	id, err := h.store.InsertVitalSigns(c.Request().Context(), database.VitalSigns{
		UserID:      req.UserID,
		EMGRMS:      req.EMGRMS,
		HeartRate:   req.HeartRate,
		HRV:         req.HRV,
		EDAPeaks:    req.EDAPeaks,
		Temperature: req.Temperature,
		Timestamp:   ts,
	})
	if err != nil {
		return internalError(c, err, "Failed to record vital signs")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Vital signs recorded successfully",
		"id":      id,
	})
}

// GetLatestVitalSignsHandler returns the newest reading for a user.
func (h *Handler) GetLatestVitalSignsHandler(c echo.Context) error {
	userID := c.Param("user_id")

	v, err := h.store.LatestVitalSigns(c.Request().Context(), userID)
	if isNotFound(err) {
		return c.JSON(http.StatusOK, map[string]string{"message": "No vital signs found"})
	}
	if err != nil {
		return internalError(c, err, "Failed to get vital signs")
	}
	return c.JSON(http.StatusOK, v)
}
