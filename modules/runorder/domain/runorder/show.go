package runorder

import (
	"time"

	"github.com/google/uuid"
)

// Show is the top-level container for a running order. Position defines the
// display order among shows.
type Show struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
