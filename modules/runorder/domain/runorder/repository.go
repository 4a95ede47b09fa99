package runorder

import (
	"context"

	"github.com/google/uuid"
)

// PositionUpdate pairs an entity id with its new zero-based position.
type PositionUpdate struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

type ShowRepository interface {
	GetAll(ctx context.Context) ([]Show, error)
	GetByID(ctx context.Context, id uuid.UUID) (Show, error)
	Create(ctx context.Context, show Show) (Show, error)
	Update(ctx context.Context, show Show) (Show, error)
	UpdatePosition(ctx context.Context, id uuid.UUID, position int) error
	// Delete removes the show row only; cascading is orchestrated by the
	// service inside one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type SketchRepository interface {
	// GetByShow returns the show's sketches ordered by position, with
	// character performers and tech details hydrated.
	GetByShow(ctx context.Context, showID uuid.UUID) ([]Sketch, error)
	GetByID(ctx context.Context, id uuid.UUID) (Sketch, error)
	CountByShow(ctx context.Context, showID uuid.UUID) (int, error)
	Create(ctx context.Context, sketch Sketch) (Sketch, error)
	Update(ctx context.Context, sketch Sketch) (Sketch, error)
	UpdatePosition(ctx context.Context, id uuid.UUID, position int) error
	SetLocked(ctx context.Context, id uuid.UUID, locked bool) error
	SetCasted(ctx context.Context, id uuid.UUID, casted int) error
	// Delete removes the sketch and its dependent rows; the caller is
	// responsible for wrapping it in a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByShow(ctx context.Context, showID uuid.UUID) error
}

type CharacterPerformerRepository interface {
	GetBySketch(ctx context.Context, sketchID uuid.UUID) ([]CharacterPerformer, error)
	Create(ctx context.Context, cp CharacterPerformer) (CharacterPerformer, error)
	UpdatePerformer(ctx context.Context, id uuid.UUID, performerName string) (CharacterPerformer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountBySketch(ctx context.Context, sketchID uuid.UUID) (int, error)
}

type TechDetailsRepository interface {
	GetBySketch(ctx context.Context, sketchID uuid.UUID) (SketchTechDetails, error)
	// Upsert inserts the row or, on sketch_id conflict, updates it in place.
	// updated_at is bumped unconditionally.
	Upsert(ctx context.Context, details SketchTechDetails) (SketchTechDetails, error)
}
