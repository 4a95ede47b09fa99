package importing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
)

// Column vocabularies vary by source spreadsheet. Headers outside this set
// are treated as performer columns.
var knownMetadataHeaders = map[string]struct{}{
	"title":          {},
	"sketch name":    {},
	"description":    {},
	"chars":          {},
	"casted":         {},
	"time":           {},
	"duration":       {},
	"cues":           {},
	"props":          {},
	"costume":        {},
	"stage dressing": {},
	"notes":          {},
}

var titleAliases = []string{"title", "sketch name"}

// Summary/statistics rows exported alongside the data; never imported.
var summaryLabels = map[string]struct{}{
	"total":             {},
	"actors":            {},
	"chars/actor":       {},
	"min number":        {},
	"people with extra": {},
}

const legacyDurationFallback = 5

// KnownMetadataHeaders returns a copy of the fixed known-header set.
func KnownMetadataHeaders() map[string]struct{} {
	out := make(map[string]struct{}, len(knownMetadataHeaders))
	for k := range knownMetadataHeaders {
		out[k] = struct{}{}
	}
	return out
}

// PerformerColumns computes which headers are performer columns: everything
// not in the known set. Pure over the header slice, independent of any row.
func PerformerColumns(headers []string, known map[string]struct{}) []string {
	var out []string
	for _, h := range headers {
		if _, ok := known[h]; !ok {
			out = append(out, h)
		}
	}
	return out
}

// legacyPerformerColumns implements the older spreadsheet layout: the
// "casted" column marks a boundary and every column strictly after it holds
// cast data.
func legacyPerformerColumns(headers []string) []string {
	for i, h := range headers {
		if h == "casted" {
			return headers[i+1:]
		}
	}
	return nil
}

// ParseDurationMinutes accepts "MM:SS" (fractional minutes) or a bare
// integer string, always rounding up to the nearest whole minute.
// Missing or unparseable input yields the fallback.
func ParseDurationMinutes(value string, fallback int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}

	if mm, ss, ok := strings.Cut(value, ":"); ok {
		minutes, errM := strconv.Atoi(strings.TrimSpace(mm))
		seconds, errS := strconv.Atoi(strings.TrimSpace(ss))
		if errM != nil || errS != nil || minutes < 0 || seconds < 0 {
			return fallback
		}
		return int(math.Ceil(float64(minutes) + float64(seconds)/60))
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// NormalizeRows maps raw row mappings into canonical sketch-import records,
// one per distinct non-blank, non-summary title. Rows sharing a title are
// merged, last seen wins, keeping the position of the first occurrence.
func NormalizeRows(rows []RawRow) []runorder.SketchImport {
	merged := make(map[string]int)
	var out []runorder.SketchImport

	for _, row := range rows {
		record, ok := normalizeRow(row)
		if !ok {
			continue
		}
		if idx, seen := merged[record.Title]; seen {
			out[idx] = record
			continue
		}
		merged[record.Title] = len(out)
		out = append(out, record)
	}

	return out
}

func normalizeRow(row RawRow) (runorder.SketchImport, bool) {
	title := rowTitle(row)
	if title == "" {
		return runorder.SketchImport{}, false
	}
	if _, summary := summaryLabels[strings.ToLower(title)]; summary {
		return runorder.SketchImport{}, false
	}

	charsRaw := row.Get("chars")
	charsAuthored, err := strconv.Atoi(charsRaw)
	if err != nil || charsAuthored <= 0 {
		return runorder.SketchImport{}, false
	}

	performerCols := PerformerColumns(row.Headers, knownMetadataHeaders)
	legacy := false
	if len(performerCols) == 0 && row.Has("casted") {
		performerCols = legacyPerformerColumns(row.Headers)
		legacy = true
	}

	var pairs []runorder.PairImport
	for _, col := range performerCols {
		if character := row.Get(col); character != "" {
			pairs = append(pairs, runorder.PairImport{
				CharacterName: character,
				PerformerName: col,
			})
		}
	}

	fallback := 0
	if legacy {
		fallback = legacyDurationFallback
	}
	durationRaw := row.Get("time")
	if durationRaw == "" {
		durationRaw = row.Get("duration")
	}

	description := row.Get("description")
	if description == "" {
		description = "Characters: " + charsRaw
	}

	rawData, _ := json.Marshal(row.Fields)

	return runorder.SketchImport{
		Title:           title,
		Description:     description,
		DurationMinutes: ParseDurationMinutes(durationRaw, fallback),
		Chars:           len(pairs),
		Casted:          len(pairs),
		Pairs:           pairs,
		Cues:            row.Get("cues"),
		Props:           row.Get("props"),
		Costume:         row.Get("costume"),
		StageDressing:   row.Get("stage dressing"),
		RawData:         string(rawData),
	}, true
}

func rowTitle(row RawRow) string {
	for _, alias := range titleAliases {
		if v := row.Get(alias); v != "" {
			return v
		}
	}
	return ""
}

// NormalizeTechRows maps raw rows into tech-detail import records. The target
// sketch is named by the "sketch" column (alias "title"); rows without one
// are dropped.
func NormalizeTechRows(rows []RawRow) []runorder.TechImport {
	var out []runorder.TechImport
	for _, row := range rows {
		title := row.Get("sketch")
		if title == "" {
			title = rowTitle(row)
		}
		if title == "" {
			continue
		}
		out = append(out, runorder.TechImport{
			SketchTitle:   title,
			Cues:          row.Get("cues"),
			Props:         row.Get("props"),
			Costume:       row.Get("costume"),
			StageDressing: row.Get("stage dressing"),
		})
	}
	return out
}
