// Package patient serves the BioPatch companion app: device readings, therapy
// sessions, profiles, dashboards and AI recommendations.
package patient

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"BioPatch_V1/internal/database"
	"BioPatch_V1/internal/logging"
	"BioPatch_V1/internal/recommendation"
	"BioPatch_V1/internal/utility"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
)

// Recommender produces a recommendation bundle for a snapshot. It must always
// return a usable bundle.
type Recommender interface {
	Generate(ctx context.Context, s recommendation.Snapshot) recommendation.Bundle
}

// DefaultProfileCacheTTL bounds how long another instance's profile write can
// go unseen.
const DefaultProfileCacheTTL = 30 * time.Second

// Handler holds the dependencies of the patient-facing endpoints.
type Handler struct {
	store       database.Store
	recommender Recommender
	hub         *utility.Hub
	now         func() time.Time

	profiles   *expirable.LRU[string, database.UserProfile]
	profileTTL time.Duration

	// profileMu guards profileVersions and orders cache fills against
	// invalidations.
	profileMu       sync.Mutex
	profileVersions map[string]uint64
}

type Option func(*Handler)

// WithClock overrides the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithProfileCacheTTL sets how long a cached profile is served.
func WithProfileCacheTTL(ttl time.Duration) Option {
	return func(h *Handler) { h.profileTTL = ttl }
}

// NewHandler wires a Handler. cacheSize bounds the number of stored profiles
// kept in memory.
func NewHandler(store database.Store, rec Recommender, hub *utility.Hub, cacheSize int, opts ...Option) (*Handler, error) {
	if store == nil {
		return nil, errors.New("patient: store is required")
	}
	if cacheSize <= 0 {
		cacheSize = 128
	}
	if hub == nil {
		hub = utility.NewHub()
	}

	h := &Handler{
		store:           store,
		recommender:     rec,
		hub:             hub,
		now:             func() time.Time { return time.Now().UTC() },
		profileTTL:      DefaultProfileCacheTTL,
		profileVersions: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.profileTTL <= 0 {
		h.profileTTL = DefaultProfileCacheTTL
	}
	h.profiles = expirable.NewLRU[string, database.UserProfile](cacheSize, nil, h.profileTTL)
	return h, nil
}

// profileVersion returns the write generation of userID's profile. Take it
// before reading the store and hand it to cacheProfile.
func (h *Handler) profileVersion(userID string) uint64 {
	h.profileMu.Lock()
	defer h.profileMu.Unlock()
	return h.profileVersions[userID]
}

// cacheProfile stores p unless a write landed since version was taken, in
// which case p may already be stale.
func (h *Handler) cacheProfile(userID string, p database.UserProfile, version uint64) bool {
	h.profileMu.Lock()
	defer h.profileMu.Unlock()
	if h.profileVersions[userID] != version {
		return false
	}
	h.profiles.Add(userID, p)
	return true
}

// invalidateProfile drops the cached profile and fences off reads that
// started before the write. Call it after the store write succeeds.
func (h *Handler) invalidateProfile(userID string) {
	h.profileMu.Lock()
	defer h.profileMu.Unlock()
	h.profileVersions[userID]++
	h.profiles.Remove(userID)
}

// Hub returns the websocket hub notified when insight data changes.
func (h *Handler) Hub() *utility.Hub {
	return h.hub
}

// ownsUser reports whether the caller may act on userID. Without a token
// every caller may; with one only its own user. An empty userID is filled in
// from the token later.
func ownsUser(c echo.Context, userID string) bool {
	tokenUser, err := utility.GetUserIDFromContext(c)
	if err != nil || userID == "" {
		return true
	}
	return tokenUser == userID
}

func forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, map[string]string{"error": "Access to another user's data is not allowed"})
}

// internalError logs err against the request and answers 500 with msg.
func internalError(c echo.Context, err error, msg string) error {
	logging.FromEcho(c).Error().Err(err).Str("path", c.Path()).Msg(msg)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": msg})
}

func isNotFound(err error) bool {
	return errors.Is(err, database.ErrNotFound)
}

func reversed[T any](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
