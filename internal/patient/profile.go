package patient

import (
	"net/http"
	"time"

	"BioPatch_V1/internal/database"
	"BioPatch_V1/internal/utility"
	"github.com/labstack/echo/v4"
)

const (
	painHistoryLimit = 30
	painTypeManual   = "manual_input"
)

// defaultProfile is served to users who have not saved a profile yet.
func defaultProfile(userID string, now time.Time) database.UserProfile {
	return database.UserProfile{
		UserID:         userID,
		FullName:       "Người dùng BioPatch",
		Age:            35,
		Gender:         "Nam",
		Height:         170,
		Weight:         70,
		Conditions:     []string{"Đau cổ mãn tính"},
		PainLocation:   "Cổ và vai",
		PainLevel:      5,
		TherapyProfile: "Đau cổ do stress",
		ProfileSettings: map[string]any{
			"tens": map[string]any{
				"frequency":   85,
				"intensity":   65,
				"pulse_width": 250,
				"duration":    25,
			},
			"microcurrent": map[string]any{
				"frequency": 0.5,
				"intensity": 500,
				"duration":  60,
			},
		},
		LastUpdated: now,
	}
}

// GetProfileHandler returns the stored profile or the default one.
func (h *Handler) GetProfileHandler(c echo.Context) error {
	userID := c.Param("user_id")

	if p, ok := h.profiles.Get(userID); ok {
		return c.JSON(http.StatusOK, p)
	}

	version := h.profileVersion(userID)
	p, err := h.store.GetProfile(c.Request().Context(), userID)
	if isNotFound(err) {
		return c.JSON(http.StatusOK, defaultProfile(userID, h.now()))
	}
	if err != nil {
		return internalError(c, err, "Failed to get profile")
	}

	h.cacheProfile(userID, p, version)
	return c.JSON(http.StatusOK, p)
}

// UpsertProfileHandler creates or replaces a user's profile.
func (h *Handler) UpsertProfileHandler(c echo.Context) error {
	var p database.UserProfile
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if !ownsUser(c, p.UserID) {
		return forbidden(c)
	}
	p.UserID = utility.ResolveUserID(c, p.UserID)
	if p.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}
	if p.PainLevel < 0 || p.PainLevel > 10 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "pain_level must be between 0 and 10"})
	}
	if p.LastUpdated.IsZero() {
		p.LastUpdated = h.now()
	}
	if p.Conditions == nil {
		p.Conditions = []string{}
	}

	modified, err := h.store.UpsertProfile(c.Request().Context(), p)
	if err != nil {
		return internalError(c, err, "Failed to update profile")
	}
	h.invalidateProfile(p.UserID)

	return c.JSON(http.StatusOK, map[string]any{
		"message":        "Profile updated successfully",
		"modified_count": modified,
	})
}

type PainLevelRequest struct {
	UserID    string     `json:"user_id"`
	PainLevel *int       `json:"pain_level"`
	Timestamp *time.Time `json:"timestamp"`
}

// UpdatePainLevelHandler records a self-reported pain level on the profile
// and in the pain history.
func (h *Handler) UpdatePainLevelHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var req PainLevelRequest
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
	if req.PainLevel == nil || *req.PainLevel < 0 || *req.PainLevel > 10 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "pain_level must be between 0 and 10"})
	}

	at := h.now()
	if req.Timestamp != nil {
		at = req.Timestamp.UTC()
	}

	if err := h.store.SetPainLevel(ctx, req.UserID, *req.PainLevel, at); err != nil {
		return internalError(c, err, "Failed to update pain level")
	}
	h.invalidateProfile(req.UserID)

	if _, err := h.store.InsertPainRecord(ctx, database.PainRecord{
		UserID:    req.UserID,
		PainLevel: *req.PainLevel,
		Timestamp: at,
		Type:      painTypeManual,
	}); err != nil {
		return internalError(c, err, "Failed to update pain level")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":    "Pain level updated successfully",
		"pain_level": *req.PainLevel,
		"timestamp":  at.Format(time.RFC3339),
	})
}

// GetPainHistoryHandler returns recent pain entries, newest first.
func (h *Handler) GetPainHistoryHandler(c echo.Context) error {
	records, err := h.store.RecentPainRecords(c.Request().Context(), c.Param("user_id"), painHistoryLimit)
	if err != nil {
		return internalError(c, err, "Failed to get pain history")
	}
	return c.JSON(http.StatusOK, records)
}
