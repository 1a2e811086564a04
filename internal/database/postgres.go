package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgStore keeps every collection as a JSONB document table. The id, user_id
// and ts columns are copies of document fields used for lookups and ordering.
type pgStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*pgStore)(nil)

func (s *pgStore) insert(ctx context.Context, coll, id, userID string, ts time.Time, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", coll, err)
	}
	sql := fmt.Sprintf(`INSERT INTO %s (id, user_id, ts, doc) VALUES ($1, $2, $3, $4::jsonb)`, coll)
	if _, err := s.pool.Exec(ctx, sql, id, userID, ts, string(raw)); err != nil {
		return fmt.Errorf("insert into %s: %w", coll, err)
	}
	return nil
}

func queryDocs[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args ...any) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func queryDoc[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args ...any) (T, error) {
	var v T
	var raw []byte
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return v, ErrNotFound
		}
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode document: %w", err)
	}
	return v, nil
}

func recentSQL(coll string) string {
	return fmt.Sprintf(`SELECT doc FROM %s WHERE user_id = $1 ORDER BY ts DESC, seq DESC LIMIT $2`, coll)
}

/* ====================================================================
                          Status checks
==================================================================== */

func (s *pgStore) InsertStatusCheck(ctx context.Context, sc StatusCheck) (string, error) {
	sc.ID = newID(sc.ID)
	return sc.ID, s.insert(ctx, CollStatusChecks, sc.ID, "", sc.Timestamp, sc)
}

func (s *pgStore) ListStatusChecks(ctx context.Context, limit int) ([]StatusCheck, error) {
	return queryDocs[StatusCheck](ctx, s.pool,
		`SELECT doc FROM status_checks ORDER BY seq LIMIT $1`, limit)
}

/* ====================================================================
                          Vital signs
==================================================================== */

func (s *pgStore) InsertVitalSigns(ctx context.Context, v VitalSigns) (string, error) {
	v.ID = newID(v.ID)
	return v.ID, s.insert(ctx, CollVitalSigns, v.ID, v.UserID, v.Timestamp, v)
}

func (s *pgStore) LatestVitalSigns(ctx context.Context, userID string) (VitalSigns, error) {
	return queryDoc[VitalSigns](ctx, s.pool, recentSQL(CollVitalSigns), userID, 1)
}

func (s *pgStore) RecentVitalSigns(ctx context.Context, userID string, limit int) ([]VitalSigns, error) {
	return queryDocs[VitalSigns](ctx, s.pool, recentSQL(CollVitalSigns), userID, limit)
}

/* ====================================================================
                          Therapy sessions
==================================================================== */

func (s *pgStore) InsertTherapySession(ctx context.Context, ts TherapySession) (string, error) {
	ts.ID = newID(ts.ID)
	return ts.ID, s.insert(ctx, CollTherapySessions, ts.ID, ts.UserID, ts.StartTime, ts)
}

func (s *pgStore) GetTherapySession(ctx context.Context, id string) (TherapySession, error) {
	return queryDoc[TherapySession](ctx, s.pool, `SELECT doc FROM therapy_sessions WHERE id = $1`, id)
}

func (s *pgStore) UpdateTherapySession(ctx context.Context, ts TherapySession) error {
	raw, err := json.Marshal(ts)
	if err != nil {
		return fmt.Errorf("encode therapy session: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE therapy_sessions SET doc = $2::jsonb, ts = $3 WHERE id = $1`,
		ts.ID, string(raw), ts.StartTime)
	if err != nil {
		return fmt.Errorf("update therapy session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) ListTherapySessions(ctx context.Context, userID string, limit int) ([]TherapySession, error) {
	return queryDocs[TherapySession](ctx, s.pool,
		`SELECT doc FROM therapy_sessions WHERE user_id = $1 ORDER BY seq LIMIT $2`, userID, limit)
}

func (s *pgStore) RecentTherapySessions(ctx context.Context, userID string, limit int) ([]TherapySession, error) {
	return queryDocs[TherapySession](ctx, s.pool, recentSQL(CollTherapySessions), userID, limit)
}

/* ====================================================================
                          AI recommendations
==================================================================== */

func (s *pgStore) InsertRecommendation(ctx context.Context, r RecommendationRecord) (string, error) {
	r.ID = newID(r.ID)
	return r.ID, s.insert(ctx, CollAIRecommendations, r.ID, r.UserID, r.Timestamp, r)
}

func (s *pgStore) RecentRecommendations(ctx context.Context, userID string, limit int) ([]RecommendationRecord, error) {
	return queryDocs[RecommendationRecord](ctx, s.pool, recentSQL(CollAIRecommendations), userID, limit)
}

/* ====================================================================
                          Profiles & pain history
==================================================================== */

func (s *pgStore) GetProfile(ctx context.Context, userID string) (UserProfile, error) {
	return queryDoc[UserProfile](ctx, s.pool, `SELECT doc FROM user_profiles WHERE id = $1`, userID)
}

func (s *pgStore) UpsertProfile(ctx context.Context, p UserProfile) (int64, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("encode profile: %w", err)
	}

	// xmax is non-zero only when the row existed and was updated.
	var updated bool
	err = s.pool.QueryRow(ctx, `
INSERT INTO user_profiles (id, user_id, ts, doc) VALUES ($1, $1, $2, $3::jsonb)
ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, ts = EXCLUDED.ts
RETURNING (xmax <> 0)`, p.UserID, p.LastUpdated, string(raw)).Scan(&updated)
	if err != nil {
		return 0, fmt.Errorf("upsert profile: %w", err)
	}
	if updated {
		return 1, nil
	}
	return 0, nil
}

func (s *pgStore) SetPainLevel(ctx context.Context, userID string, level int, at time.Time) error {
	seed, err := json.Marshal(map[string]any{
		"user_id":      userID,
		"pain_level":   level,
		"last_updated": at,
	})
	if err != nil {
		return fmt.Errorf("encode pain level: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
INSERT INTO user_profiles (id, user_id, ts, doc) VALUES ($1, $1, $2, $3::jsonb)
ON CONFLICT (id) DO UPDATE SET doc = user_profiles.doc || EXCLUDED.doc, ts = EXCLUDED.ts`,
		userID, at, string(seed))
	if err != nil {
		return fmt.Errorf("update pain level: %w", err)
	}
	return nil
}

func (s *pgStore) InsertPainRecord(ctx context.Context, p PainRecord) (string, error) {
	p.ID = newID(p.ID)
	return p.ID, s.insert(ctx, CollPainHistory, p.ID, p.UserID, p.Timestamp, p)
}

func (s *pgStore) RecentPainRecords(ctx context.Context, userID string, limit int) ([]PainRecord, error) {
	return queryDocs[PainRecord](ctx, s.pool, recentSQL(CollPainHistory), userID, limit)
}

/* ====================================================================
                          Chart series
==================================================================== */

func (s *pgStore) InsertEMGPoint(ctx context.Context, p EMGPoint) (string, error) {
	p.ID = newID(p.ID)
	return p.ID, s.insert(ctx, CollEMGData, p.ID, p.UserID, p.Timestamp, p)
}

func (s *pgStore) RecentEMGPoints(ctx context.Context, userID string, limit int) ([]EMGPoint, error) {
	return queryDocs[EMGPoint](ctx, s.pool, recentSQL(CollEMGData), userID, limit)
}

func (s *pgStore) InsertTemperaturePoint(ctx context.Context, p TemperaturePoint) (string, error) {
	p.ID = newID(p.ID)
	return p.ID, s.insert(ctx, CollTemperatureData, p.ID, p.UserID, p.Timestamp, p)
}

func (s *pgStore) RecentTemperaturePoints(ctx context.Context, userID string, limit int) ([]TemperaturePoint, error) {
	return queryDocs[TemperaturePoint](ctx, s.pool, recentSQL(CollTemperatureData), userID, limit)
}
