package database

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by id or user matches nothing.
var ErrNotFound = errors.New("record not found")

// Collection names. Each one is a table in Postgres and a slice in memory.
const (
	CollStatusChecks      = "status_checks"
	CollVitalSigns        = "vital_signs"
	CollTherapySessions   = "therapy_sessions"
	CollAIRecommendations = "ai_recommendations"
	CollUserProfiles      = "user_profiles"
	CollPainHistory       = "pain_history"
	CollEMGData           = "emg_data"
	CollTemperatureData   = "temperature_data"
)

var collections = []string{
	CollStatusChecks,
	CollVitalSigns,
	CollTherapySessions,
	CollAIRecommendations,
	CollUserProfiles,
	CollPainHistory,
	CollEMGData,
	CollTemperatureData,
}

// Store is the document persistence used by the HTTP handlers. Insert methods
// assign an id when the record has none and return it. "Recent" methods
// return newest first.
type Store interface {
	InsertStatusCheck(ctx context.Context, s StatusCheck) (string, error)
	ListStatusChecks(ctx context.Context, limit int) ([]StatusCheck, error)

	InsertVitalSigns(ctx context.Context, v VitalSigns) (string, error)
	LatestVitalSigns(ctx context.Context, userID string) (VitalSigns, error)
	RecentVitalSigns(ctx context.Context, userID string, limit int) ([]VitalSigns, error)

	InsertTherapySession(ctx context.Context, s TherapySession) (string, error)
	GetTherapySession(ctx context.Context, id string) (TherapySession, error)
	UpdateTherapySession(ctx context.Context, s TherapySession) error
	// ListTherapySessions returns sessions in insertion order.
	ListTherapySessions(ctx context.Context, userID string, limit int) ([]TherapySession, error)
	// RecentTherapySessions orders by start time, newest first.
	RecentTherapySessions(ctx context.Context, userID string, limit int) ([]TherapySession, error)

	InsertRecommendation(ctx context.Context, r RecommendationRecord) (string, error)
	RecentRecommendations(ctx context.Context, userID string, limit int) ([]RecommendationRecord, error)

	GetProfile(ctx context.Context, userID string) (UserProfile, error)
	// UpsertProfile returns 1 when an existing profile was replaced and 0 when
	// a new one was created.
	UpsertProfile(ctx context.Context, p UserProfile) (int64, error)
	// SetPainLevel updates only pain_level and last_updated, creating a
	// minimal profile if the user has none.
	SetPainLevel(ctx context.Context, userID string, level int, at time.Time) error
	InsertPainRecord(ctx context.Context, p PainRecord) (string, error)
	RecentPainRecords(ctx context.Context, userID string, limit int) ([]PainRecord, error)

	InsertEMGPoint(ctx context.Context, p EMGPoint) (string, error)
	RecentEMGPoints(ctx context.Context, userID string, limit int) ([]EMGPoint, error)
	InsertTemperaturePoint(ctx context.Context, p TemperaturePoint) (string, error)
	RecentTemperaturePoints(ctx context.Context, userID string, limit int) ([]TemperaturePoint, error)
}
