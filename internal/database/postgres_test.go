package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPostgresService connects to TEST_DATABASE_URL (or DATABASE_URL) and
// skips when neither is set.
func newPostgresService(t *testing.T) Service {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	svc, err := NewService(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

// uniqueUser keeps runs against a shared database independent.
func uniqueUser(t *testing.T) string {
	return t.Name() + "-" + uuid.NewString()
}

func TestPostgres_HealthReportsPool(t *testing.T) {
	svc := newPostgresService(t)
	h := svc.Health()
	assert.Equal(t, "postgres", h["driver"])
	assert.Equal(t, "up", h["status"])
}

func TestPostgres_UpsertProfileThenUpdate(t *testing.T) {
	svc := newPostgresService(t)
	ctx := context.Background()
	userID := uniqueUser(t)
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	n, err := svc.UpsertProfile(ctx, UserProfile{UserID: userID, FullName: "Lan", PainLevel: 4, LastUpdated: at})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = svc.UpsertProfile(ctx, UserProfile{UserID: userID, FullName: "Lan Nguyen", PainLevel: 5, LastUpdated: at.Add(time.Hour)})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	p, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Lan Nguyen", p.FullName)
	assert.Equal(t, 5, p.PainLevel)

	_, err = svc.GetProfile(ctx, uniqueUser(t))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgres_SetPainLevel(t *testing.T) {
	svc := newPostgresService(t)
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	// New user: a minimal profile is created.
	fresh := uniqueUser(t)
	require.NoError(t, svc.SetPainLevel(ctx, fresh, 3, at))
	p, err := svc.GetProfile(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, fresh, p.UserID)
	assert.Equal(t, 3, p.PainLevel)
	assert.True(t, at.Equal(p.LastUpdated))

	// Existing user: other fields survive the merge.
	existing := uniqueUser(t)
	_, err = svc.UpsertProfile(ctx, UserProfile{
		UserID:     existing,
		FullName:   "Trần Minh",
		Conditions: []string{"Đau lưng"},
		PainLevel:  7,
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetPainLevel(ctx, existing, 2, at))

	p, err = svc.GetProfile(ctx, existing)
	require.NoError(t, err)
	assert.Equal(t, "Trần Minh", p.FullName)
	assert.Equal(t, []string{"Đau lưng"}, p.Conditions)
	assert.Equal(t, 2, p.PainLevel)
	assert.True(t, at.Equal(p.LastUpdated))
}

func TestPostgres_RecentOrderingAndSessions(t *testing.T) {
	svc := newPostgresService(t)
	ctx := context.Background()
	userID := uniqueUser(t)
	t0 := time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC)

	_, err := svc.InsertVitalSigns(ctx, VitalSigns{UserID: userID, HeartRate: 80, Timestamp: t0.Add(time.Hour)})
	require.NoError(t, err)
	_, err = svc.InsertVitalSigns(ctx, VitalSigns{UserID: userID, HeartRate: 70, Timestamp: t0})
	require.NoError(t, err)

	latest, err := svc.LatestVitalSigns(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 80, latest.HeartRate)

	id, err := svc.InsertTherapySession(ctx, TherapySession{UserID: userID, SessionType: SessionTypeTENS, StartTime: t0})
	require.NoError(t, err)
	s, err := svc.GetTherapySession(ctx, id)
	require.NoError(t, err)
	s.Completed = true
	require.NoError(t, svc.UpdateTherapySession(ctx, s))

	list, err := svc.ListTherapySessions(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Completed)

	assert.ErrorIs(t, svc.UpdateTherapySession(ctx, TherapySession{ID: uuid.NewString()}), ErrNotFound)
}
