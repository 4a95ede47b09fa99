package runorder

// ImportKind selects which reconciliation path a batch follows. The two
// kinds are mutually exclusive per call.
type ImportKind string

const (
	ImportKindSketches    ImportKind = "sketches"
	ImportKindTechDetails ImportKind = "techDetails"
)

func (k ImportKind) Valid() bool {
	return k == ImportKindSketches || k == ImportKindTechDetails
}

// PairImport is one extracted character→performer candidate.
type PairImport struct {
	CharacterName string `json:"character_name"`
	PerformerName string `json:"performer_name"`
}

// SketchImport is the canonical import record produced by the row
// normalizer. Chars and Casted both equal len(Pairs): the authored-vs-resolved
// distinction in the raw sheet is intentionally collapsed for import purposes.
type SketchImport struct {
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	DurationMinutes int          `json:"duration_minutes"`
	Chars           int          `json:"chars"`
	Casted          int          `json:"casted"`
	Pairs           []PairImport `json:"character_performers,omitempty"`

	Cues          string `json:"cues,omitempty"`
	Props         string `json:"props,omitempty"`
	Costume       string `json:"costume,omitempty"`
	StageDressing string `json:"stage_dressing,omitempty"`

	// RawData is the original row mapping, retained verbatim as opaque
	// provenance and persisted alongside the normalized fields.
	RawData string `json:"raw_data,omitempty"`
}

// HasTechSignal reports whether the record carries anything worth a tech
// details row.
func (s SketchImport) HasTechSignal() bool {
	return s.StageDressing != "" || s.Cues != "" || s.Props != "" || s.Costume != ""
}

// TechImport is one incoming tech-detail row, matched to a persisted sketch
// by title.
type TechImport struct {
	SketchTitle   string `json:"sketch"`
	Cues          string `json:"cues,omitempty"`
	Props         string `json:"props,omitempty"`
	Costume       string `json:"costume,omitempty"`
	StageDressing string `json:"stage_dressing,omitempty"`
}

// ImportOutcome is the per-record result of a batch import. The caller always
// receives the full outcome sequence regardless of individual failures.
type ImportOutcome struct {
	Success bool   `json:"success"`
	Title   string `json:"title"`
	Error   string `json:"error,omitempty"`
}
