package database

import (
	"time"

	"BioPatch_V1/internal/recommendation"
)

// StatusCheck is a client heartbeat record.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// VitalSigns is one reading uploaded by a BioPatch device.
type VitalSigns struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	EMGRMS      float64   `json:"emg_rms"`
	HeartRate   int       `json:"heart_rate"`
	HRV         float64   `json:"hrv"`
	EDAPeaks    int       `json:"eda_peaks"`
	Temperature float64   `json:"temperature"`
	Timestamp   time.Time `json:"timestamp"`
}

// Therapy session modalities.
const (
	SessionTypeTENS         = "TENS"
	SessionTypeMicrocurrent = "Microcurrent"
)

// TherapySession is one TENS or microcurrent treatment.
type TherapySession struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	SessionType   string         `json:"session_type"`
	StartTime     time.Time      `json:"start_time"`
	EndTime       *time.Time     `json:"end_time"`
	Duration      *int           `json:"duration"` // minutes
	Settings      map[string]any `json:"settings"`
	Effectiveness *int           `json:"effectiveness"` // 0-100
	Completed     bool           `json:"completed"`
}

// RecommendationRecord keeps a generated bundle next to the inputs that
// produced it.
type RecommendationRecord struct {
	ID               string                  `json:"id"`
	UserID           string                  `json:"user_id"`
	Timestamp        time.Time               `json:"timestamp"`
	Recommendations  recommendation.Bundle   `json:"recommendations"`
	UserDataSnapshot recommendation.Snapshot `json:"user_data_snapshot"`
}

// UserProfile is a patient's demographic and therapy profile. One per user.
type UserProfile struct {
	UserID          string         `json:"user_id"`
	FullName        string         `json:"full_name"`
	Age             int            `json:"age"`
	Gender          string         `json:"gender"`
	Height          int            `json:"height"`
	Weight          int            `json:"weight"`
	Conditions      []string       `json:"conditions"`
	PainLocation    string         `json:"pain_location"`
	PainLevel       int            `json:"pain_level"`
	TherapyProfile  string         `json:"therapy_profile"`
	ProfileSettings map[string]any `json:"profile_settings"`
	LastUpdated     time.Time      `json:"last_updated"`
}

// PainRecord is one entry of a patient's self-reported pain history.
type PainRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PainLevel int       `json:"pain_level"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
}

// EMGPoint is a chart sample of muscle activity.
type EMGPoint struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Time      string    `json:"time"` // HH:MM label for charts
	Value     float64   `json:"value"`
	Peak      bool      `json:"peak"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

// TemperaturePoint is a chart sample of skin temperature at the pain site.
type TemperaturePoint struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Time         string    `json:"time"`
	Temperature  float64   `json:"temperature"`
	Inflammation string    `json:"inflammation"`
	SessionID    string    `json:"session_id"`
	Timestamp    time.Time `json:"timestamp"`
}
