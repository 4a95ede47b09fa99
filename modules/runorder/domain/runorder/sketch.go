package runorder

import (
	"time"

	"github.com/google/uuid"
)

// Sketch belongs to exactly one Show. Position is a show-scoped ordering
// index: comparison-ordered, not required contiguous. Locked sketches are
// excluded from automated reordering by the external optimizer.
//
// Chars is the authored character count; Casted is the number of resolved
// character→performer pairs and is recomputed on every write, never set
// independently.
type Sketch struct {
	ID              uuid.UUID `json:"id"`
	ShowID          uuid.UUID `json:"show_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Chars           int       `json:"chars"`
	Casted          int       `json:"casted"`
	Locked          bool      `json:"locked"`
	Position        int       `json:"position"`
	RawData         string    `json:"raw_data,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	CharacterPerformers []CharacterPerformer `json:"character_performers,omitempty"`
	TechDetails         *SketchTechDetails   `json:"tech_details,omitempty"`
}

// CharacterPerformer resolves one authored character to one performer. A
// performer may play multiple characters; no name-level uniqueness is
// enforced, and duplicates across repeated imports are tolerated.
type CharacterPerformer struct {
	ID            uuid.UUID `json:"id"`
	SketchID      uuid.UUID `json:"sketch_id"`
	CharacterName string    `json:"character_name"`
	PerformerName string    `json:"performer_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SketchTechDetails holds the technical metadata for a sketch. At most one
// row per sketch (sketch_id is unique); created lazily and updated in place.
type SketchTechDetails struct {
	ID            uuid.UUID `json:"id"`
	SketchID      uuid.UUID `json:"sketch_id"`
	Cues          string    `json:"cues,omitempty"`
	Props         string    `json:"props,omitempty"`
	Costume       string    `json:"costume,omitempty"`
	StageDressing string    `json:"stage_dressing,omitempty"`
	Chairs        int       `json:"chairs"`
	Stools        int       `json:"stools"`
	OtherProps    string    `json:"other_props,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
