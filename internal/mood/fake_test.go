package mood

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type fakeRepository struct {
	mu    sync.Mutex
	moods []Mood
	clock time.Time
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{clock: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func (f *fakeRepository) Create(_ context.Context, mood *Mood) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(time.Hour)
	mood.CreatedAt = f.clock
	f.moods = append(f.moods, *mood)
	return nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]Mood, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Mood{}
	for _, m := range f.moods {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
