package mood

import (
	"time"

	"github.com/google/uuid"
)

type Mood struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Mood      string    `json:"mood" db:"mood"`
	Note      string    `json:"note" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
