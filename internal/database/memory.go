package database

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
)

// memoryService is a Store held entirely in process memory. Records are
// stored by value.
type memoryService struct {
	mu sync.RWMutex

	statusChecks    []StatusCheck
	vitals          []VitalSigns
	sessions        []TherapySession
	recommendations []RecommendationRecord
	profiles        map[string]UserProfile
	pain            []PainRecord
	emg             []EMGPoint
	temperature     []TemperaturePoint
}

var _ Service = (*memoryService)(nil)

// NewMemoryService returns an empty in-memory Service.
func NewMemoryService() Service {
	return &memoryService{profiles: make(map[string]UserProfile)}
}

func (m *memoryService) Health() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]string{
		"status":   "up",
		"driver":   "memory",
		"profiles": strconv.Itoa(len(m.profiles)),
		"vitals":   strconv.Itoa(len(m.vitals)),
	}
}

func (m *memoryService) Close() {}

// recent filters items by user and returns at most limit of them, newest
// first according to at. Ties keep the later insertion first.
func recent[T any](items []T, userID string, limit int, owner func(T) string, at func(T) time.Time) []T {
	out := []T{}
	for i := len(items) - 1; i >= 0; i-- {
		if owner(items[i]) == userID {
			out = append(out, items[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return at(out[i]).After(at(out[j])) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *memoryService) InsertStatusCheck(_ context.Context, s StatusCheck) (string, error) {
	s.ID = newID(s.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusChecks = append(m.statusChecks, s)
	return s.ID, nil
}

func (m *memoryService) ListStatusChecks(_ context.Context, limit int) ([]StatusCheck, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.statusChecks)
	if limit > 0 && n > limit {
		n = limit
	}
	return append([]StatusCheck{}, m.statusChecks[:n]...), nil
}

func (m *memoryService) InsertVitalSigns(_ context.Context, v VitalSigns) (string, error) {
	v.ID = newID(v.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vitals = append(m.vitals, v)
	return v.ID, nil
}

func (m *memoryService) LatestVitalSigns(ctx context.Context, userID string) (VitalSigns, error) {
	list, _ := m.RecentVitalSigns(ctx, userID, 1)
	if len(list) == 0 {
		return VitalSigns{}, ErrNotFound
	}
	return list[0], nil
}

func (m *memoryService) RecentVitalSigns(_ context.Context, userID string, limit int) ([]VitalSigns, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return recent(m.vitals, userID, limit,
		func(v VitalSigns) string { return v.UserID },
		func(v VitalSigns) time.Time { return v.Timestamp }), nil
}

func (m *memoryService) InsertTherapySession(_ context.Context, s TherapySession) (string, error) {
	s.ID = newID(s.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, s)
	return s.ID, nil
}

func (m *memoryService) GetTherapySession(_ context.Context, id string) (TherapySession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return TherapySession{}, ErrNotFound
}

func (m *memoryService) UpdateTherapySession(_ context.Context, s TherapySession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sessions {
		if m.sessions[i].ID == s.ID {
			m.sessions[i] = s
			return nil
		}
	}
	return ErrNotFound
}

func (m *memoryService) ListTherapySessions(_ context.Context, userID string, limit int) ([]TherapySession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []TherapySession{}
	for _, s := range m.sessions {
		if s.UserID != userID {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memoryService) RecentTherapySessions(_ context.Context, userID string, limit int) ([]TherapySession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return recent(m.sessions, userID, limit,
		func(s TherapySession) string { return s.UserID },
		func(s TherapySession) time.Time { return s.StartTime }), nil
}

func (m *memoryService) InsertRecommendation(_ context.Context, r RecommendationRecord) (string, error) {
	r.ID = newID(r.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recommendations = append(m.recommendations, r)
	return r.ID, nil
}

func (m *memoryService) RecentRecommendations(_ context.Context, userID string, limit int) ([]RecommendationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return recent(m.recommendations, userID, limit,
		func(r RecommendationRecord) string { return r.UserID },
		func(r RecommendationRecord) time.Time { return r.Timestamp }), nil
}

func (m *memoryService) GetProfile(_ context.Context, userID string) (UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return UserProfile{}, ErrNotFound
	}
	return p, nil
}

func (m *memoryService) UpsertProfile(_ context.Context, p UserProfile) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, existed := m.profiles[p.UserID]
	m.profiles[p.UserID] = p
	if existed {
		return 1, nil
	}
	return 0, nil
}

func (m *memoryService) SetPainLevel(_ context.Context, userID string, level int, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		p = UserProfile{UserID: userID}
	}
	p.PainLevel = level
	p.LastUpdated = at
	m.profiles[userID] = p
	return nil
}

func (m *memoryService) InsertPainRecord(_ context.Context, p PainRecord) (string, error) {
	p.ID = newID(p.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pain = append(m.pain, p)
	return p.ID, nil
}

func (m *memoryService) RecentPainRecords(_ context.Context, userID string, limit int) ([]PainRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return recent(m.pain, userID, limit,
		func(p PainRecord) string { return p.UserID },
		func(p PainRecord) time.Time { return p.Timestamp }), nil
}

func (m *memoryService) InsertEMGPoint(_ context.Context, p EMGPoint) (string, error) {
	p.ID = newID(p.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emg = append(m.emg, p)
	return p.ID, nil
}

func (m *memoryService) RecentEMGPoints(_ context.Context, userID string, limit int) ([]EMGPoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return recent(m.emg, userID, limit,
		func(p EMGPoint) string { return p.UserID },
		func(p EMGPoint) time.Time { return p.Timestamp }), nil
}

func (m *memoryService) InsertTemperaturePoint(_ context.Context, p TemperaturePoint) (string, error) {
	p.ID = newID(p.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.temperature = append(m.temperature, p)
	return p.ID, nil
}

func (m *memoryService) RecentTemperaturePoints(_ context.Context, userID string, limit int) ([]TemperaturePoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return recent(m.temperature, userID, limit,
		func(p TemperaturePoint) string { return p.UserID },
		func(p TemperaturePoint) time.Time { return p.Timestamp }), nil
}
