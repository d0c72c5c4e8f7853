package conversation

import (
	"time"

	"github.com/google/uuid"
)

// WelcomeMessage opens every new transcript.
const WelcomeMessage = "Hello! I'm your MindScape AI assistant. How can I support your wellness journey today?"

type Message struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	Role      string    `json:"role" db:"role"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
