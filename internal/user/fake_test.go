package user

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type fakeRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[uuid.UUID]User)}
}

func (f *fakeRepository) GetById(_ context.Context, id uuid.UUID) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeRepository) GetByEmail(_ context.Context, email string) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeRepository) Create(_ context.Context, user *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrAlreadyExists
		}
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeRepository) UpdateDisplayName(_ context.Context, id uuid.UUID, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.DisplayName = displayName
	f.users[id] = u
	return nil
}
