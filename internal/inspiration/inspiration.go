package inspiration

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item is one image pinned to a user's inspiration board.
type Item struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	ImageURL   string    `json:"image_url" db:"image_url"`
	Title      string    `json:"title" db:"title"`
	Notes      string    `json:"notes" db:"notes"`
	IsFavorite bool      `json:"is_favorite" db:"is_favorite"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Matches reports whether query occurs in the title or the notes, ignoring
// case. An empty query matches everything.
func (i Item) Matches(query string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(i.Title), query) ||
		strings.Contains(strings.ToLower(i.Notes), query)
}
