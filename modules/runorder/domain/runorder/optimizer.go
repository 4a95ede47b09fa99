package runorder

import "github.com/google/uuid"

// Payload shapes for the external running-order optimizer. The optimization
// itself (cast-overlap minimization) is delegated; this module only shapes
// the request and response.

type OptimizerSketch struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Cast  []string  `json:"cast"`
}

type AnchoredSketch struct {
	SketchID uuid.UUID `json:"sketch_id"`
	Position int       `json:"position"`
}

type PrecedenceRule struct {
	Before uuid.UUID `json:"before"`
	After  uuid.UUID `json:"after"`
}

type OptimizationConstraints struct {
	Anchored   []AnchoredSketch `json:"anchored,omitempty"`
	Precedence []PrecedenceRule `json:"precedence,omitempty"`
}

type OptimizationRequest struct {
	Sketches    []OptimizerSketch       `json:"sketches"`
	Constraints OptimizationConstraints `json:"constraints"`
}

type OptimizedSlot struct {
	Position int       `json:"position"`
	SketchID uuid.UUID `json:"sketch_id"`
	Title    string    `json:"title"`
}

type OptimizationMetrics struct {
	CastOverlaps int `json:"cast_overlaps"`
}

type OptimizationResult struct {
	Success bool                `json:"success"`
	Order   []OptimizedSlot     `json:"order"`
	Metrics OptimizationMetrics `json:"metrics"`
	Error   string              `json:"error,omitempty"`
}
