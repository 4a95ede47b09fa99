package runorder

import "github.com/google/uuid"

// ImportCompleted is published after a batch import finishes, regardless of
// how many records failed.
type ImportCompleted struct {
	ShowID    uuid.UUID
	Kind      ImportKind
	Succeeded int
	Failed    int
}

// ShowDeleted is published after a show and its dependents are removed.
type ShowDeleted struct {
	ShowID uuid.UUID
	Title  string
}
