package inspiration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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
	mu    sync.Mutex
	items []Item
}

func (f *fakeRepository) Create(_ context.Context, item *Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]Item{*item}, f.items...)
	return nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Item{}
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeRepository) ToggleFavorite(_ context.Context, userID, id uuid.UUID) (*Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items[i].IsFavorite = !f.items[i].IsFavorite
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func TestServiceImpl_Create(t *testing.T) {
	svc := NewServiceImpl(&fakeRepository{}, logger.Nop())
	userID := uuid.New()

	item, err := svc.Create(context.Background(), userID, &CreateItemRequest{
		ImageURL: " https://images.example.com/sunrise.jpg ",
		Title:    " Sunrise ",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/sunrise.jpg", item.ImageURL)
	assert.Equal(t, "Sunrise", item.Title)
	assert.False(t, item.IsFavorite)

	_, err = svc.Create(context.Background(), userID, &CreateItemRequest{ImageURL: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestServiceImpl_ListSearch(t *testing.T) {
	svc := NewServiceImpl(&fakeRepository{}, logger.Nop())
	userID := uuid.New()
	for _, req := range []CreateItemRequest{
		{ImageURL: "https://example.com/1.jpg", Title: "Mountain lake"},
		{ImageURL: "https://example.com/2.jpg", Notes: "calm LAKE at dawn"},
		{ImageURL: "https://example.com/3.jpg", Title: "City lights"},
	} {
		_, err := svc.Create(context.Background(), userID, &req)
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), uuid.New(), &CreateItemRequest{ImageURL: "https://example.com/x.jpg", Title: "lake"})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), userID, "  ")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "City lights", all[0].Title)

	lakes, err := svc.List(context.Background(), userID, "Lake")
	require.NoError(t, err)
	require.Len(t, lakes, 2)
	assert.Equal(t, "https://example.com/2.jpg", lakes[0].ImageURL)
	assert.Equal(t, "https://example.com/1.jpg", lakes[1].ImageURL)

	none, err := svc.List(context.Background(), userID, "forest")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestControllerImpl_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	svc := NewServiceImpl(&fakeRepository{}, logger.Nop())

	router := gin.New()
	router.Use(func(c *gin.Context) { session.Attach(c, session.Session{UserID: userID}) })
	NewControllerImpl(svc).RegisterRoutes(router)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/v1/inspiration", `{"image_url":"https://example.com/a.jpg","title":"Ocean"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/v1/inspiration", `{"title":"no image"}`).Code)
	for _, bad := range []string{"sunrise.jpg", "ftp://example.com/a.jpg", "not a url"} {
		assert.Equal(t, http.StatusBadRequest,
			do(http.MethodPost, "/v1/inspiration", `{"image_url":"`+bad+`"}`).Code, bad)
	}

	favorite := "/v1/inspiration/" + created.ID.String() + "/favorite"
	w = do(http.MethodPatch, favorite, "")
	require.Equal(t, http.StatusOK, w.Code)
	var toggled Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.True(t, toggled.IsFavorite)

	w = do(http.MethodPatch, favorite, "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.False(t, toggled.IsFavorite)

	assert.Equal(t, http.StatusNotFound, do(http.MethodPatch, "/v1/inspiration/"+uuid.NewString()+"/favorite", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPatch, "/v1/inspiration/nope/favorite", "").Code)

	w = do(http.MethodGet, "/v1/inspiration?q=ocean", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed []Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}
