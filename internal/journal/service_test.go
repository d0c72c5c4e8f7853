package journal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscape/be/internal/logger"
	"mindscape/be/internal/session"
)

type fakeRepository struct {
	mu       sync.Mutex
	journals []Journal
}

func (f *fakeRepository) Create(_ context.Context, journal *Journal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.journals = append([]Journal{*journal}, f.journals...)
	return nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]Journal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Journal{}
	for _, j := range f.journals {
		if j.UserID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, j := range f.journals {
		if j.ID == id && j.UserID == userID {
			f.journals = append(f.journals[:i], f.journals[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type recordingFlagger struct {
	texts []string
}

func (r *recordingFlagger) Scan(_ context.Context, _ uuid.UUID, contentType, text string) error {
	r.texts = append(r.texts, contentType+":"+text)
	return nil
}

func TestServiceImpl_CreateScansEntry(t *testing.T) {
	flagger := &recordingFlagger{}
	svc := NewServiceImpl(&fakeRepository{}, flagger, logger.Nop())
	userID := uuid.New()

	journal, err := svc.Create(context.Background(), userID, &CreateJournalRequest{Title: "Monday", Content: " rough day "})
	require.NoError(t, err)
	assert.Equal(t, "rough day", journal.Content)
	assert.Equal(t, []string{"journal:Monday\nrough day"}, flagger.texts)

	_, err = svc.Create(context.Background(), userID, &CreateJournalRequest{Title: " ", Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, flagger.texts, 1)
}

func TestServiceImpl_DeleteOwnOnly(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewServiceImpl(repo, nil, logger.Nop())
	owner, other := uuid.New(), uuid.New()

	journal, err := svc.Create(context.Background(), owner, &CreateJournalRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), other, journal.ID), ErrNotFound)
	require.NoError(t, svc.Delete(context.Background(), owner, journal.ID))

	journals, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, journals)
}

func TestControllerImpl_DeleteJournal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	repo := &fakeRepository{}
	svc := NewServiceImpl(repo, nil, logger.Nop())
	journal, err := svc.Create(context.Background(), userID, &CreateJournalRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	router := gin.New()
	router.Use(func(c *gin.Context) { session.Attach(c, session.Session{UserID: userID}) })
	NewControllerImpl(svc).RegisterRoutes(router)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"bad id", "/v1/journals/not-a-uuid", http.StatusBadRequest},
		{"unknown", "/v1/journals/" + uuid.NewString(), http.StatusNotFound},
		{"own entry", "/v1/journals/" + journal.ID.String(), http.StatusNoContent},
		{"already gone", "/v1/journals/" + journal.ID.String(), http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, tt.path, nil))
		assert.Equal(t, tt.want, w.Code, tt.name)
	}
}
