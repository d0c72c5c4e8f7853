package monitor

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mindscape/be/internal/mood"
	"mindscape/be/internal/user"
)

type fakeRepository struct {
	mu            sync.Mutex
	roles         map[uuid.UUID]string
	relationships map[uuid.UUID]Relationship
	alerts        map[uuid.UUID]Alert
	alertErr      error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		roles:         make(map[uuid.UUID]string),
		relationships: make(map[uuid.UUID]Relationship),
		alerts:        make(map[uuid.UUID]Alert),
	}
}

func (f *fakeRepository) GetRole(_ context.Context, userID uuid.UUID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[userID]
	if !ok {
		return "", ErrNotFound
	}
	return role, nil
}

func (f *fakeRepository) SetRole(_ context.Context, userID uuid.UUID, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[userID] = role
	return nil
}

func (f *fakeRepository) CreateRelationship(_ context.Context, rel *Relationship) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.relationships {
		if r.MonitorID == rel.MonitorID && r.MonitoredUserID == rel.MonitoredUserID {
			return ErrDuplicate
		}
	}
	rel.CreatedAt = time.Now()
	f.relationships[rel.ID] = *rel
	return nil
}

func (f *fakeRepository) GetRelationship(_ context.Context, id uuid.UUID) (Relationship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rel, ok := f.relationships[id]
	if !ok {
		return Relationship{}, ErrNotFound
	}
	return rel, nil
}

func (f *fakeRepository) ListPending(_ context.Context, monitoredUserID uuid.UUID) ([]PendingRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []PendingRequest{}
	for _, r := range f.relationships {
		if r.MonitoredUserID == monitoredUserID && !r.Approved {
			out = append(out, PendingRequest{Relationship: r})
		}
	}
	return out, nil
}

func (f *fakeRepository) Approve(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rel, ok := f.relationships[id]
	if !ok {
		return ErrNotFound
	}
	rel.Approved = true
	f.relationships[id] = rel
	return nil
}

func (f *fakeRepository) DeleteRelationship(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.relationships[id]; !ok {
		return ErrNotFound
	}
	delete(f.relationships, id)
	return nil
}

func (f *fakeRepository) ListMonitored(_ context.Context, monitorID uuid.UUID) ([]MonitoredUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []MonitoredUser{}
	for _, r := range f.relationships {
		if r.MonitorID == monitorID && r.Approved {
			out = append(out, MonitoredUser{RelationshipID: r.ID, UserID: r.MonitoredUserID, RelationshipType: r.RelationshipType})
		}
	}
	return out, nil
}

func (f *fakeRepository) ListMonitors(_ context.Context, monitoredUserID uuid.UUID) ([]ActiveMonitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []ActiveMonitor{}
	for _, r := range f.relationships {
		if r.MonitoredUserID == monitoredUserID && r.Approved {
			out = append(out, ActiveMonitor{Relationship: r, MonitorRole: f.roles[r.MonitorID]})
		}
	}
	return out, nil
}

func (f *fakeRepository) IsApprovedMonitor(_ context.Context, monitorID, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.relationships {
		if r.MonitorID == monitorID && r.MonitoredUserID == userID && r.Approved {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) CreateAlert(_ context.Context, alert *Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.alertErr != nil {
		return f.alertErr
	}
	alert.CreatedAt = time.Now()
	f.alerts[alert.ID] = *alert
	return nil
}

func (f *fakeRepository) GetAlert(_ context.Context, id uuid.UUID) (Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	alert, ok := f.alerts[id]
	if !ok {
		return Alert{}, ErrNotFound
	}
	return alert, nil
}

func (f *fakeRepository) ListUnresolvedAlerts(_ context.Context, userID uuid.UUID) ([]Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Alert{}
	for _, a := range f.alerts {
		if a.UserID == userID && !a.Resolved {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepository) ResolveAlert(_ context.Context, id, resolvedBy uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	alert, ok := f.alerts[id]
	if !ok || alert.Resolved {
		return ErrAlreadyClosed
	}
	alert.Resolved = true
	alert.ResolvedBy = uuid.NullUUID{UUID: resolvedBy, Valid: true}
	alert.ResolvedAt = &at
	f.alerts[id] = alert
	return nil
}

// fakeMoods stores moods newest first.
type fakeMoods struct {
	moods []mood.Mood
}

func (f *fakeMoods) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]mood.Mood, error) {
	out := []mood.Mood{}
	for _, m := range f.moods {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeUsers map[string]uuid.UUID

func (f fakeUsers) GetUser(_ context.Context, req user.GetUserRequest) (*user.GetUserResponse, error) {
	id, ok := f[strings.ToLower(req.Email)]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &user.GetUserResponse{ID: id, Email: req.Email}, nil
}
