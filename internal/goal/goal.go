package goal

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Progress  int       `json:"progress" db:"progress"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// apply merges an update into g. Progress is clamped to 0..100 and
// reaching 100 marks the goal completed.
func (g *Goal) apply(req *UpdateGoalRequest) {
	if req.Completed != nil {
		g.Completed = *req.Completed
		if g.Completed {
			g.Progress = 100
		}
	}
	if req.Progress != nil {
		g.Progress = min(max(*req.Progress, 0), 100)
		if req.Completed == nil {
			g.Completed = g.Progress == 100
		}
	}
	if g.Progress == 100 {
		g.Completed = true
	}
}
