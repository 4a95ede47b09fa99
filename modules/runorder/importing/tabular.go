package importing

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// RawRow is one parsed data row: the header set it was parsed against, in
// column order, plus the header→value mapping. Header order matters for the
// legacy casted-boundary layout.
type RawRow struct {
	Headers []string
	Fields  map[string]string
}

// Get returns the trimmed value under the given header, or "" when the
// column is absent.
func (r RawRow) Get(header string) string {
	return strings.TrimSpace(r.Fields[header])
}

// Has reports whether the row was parsed against the given header.
func (r RawRow) Has(header string) bool {
	_, ok := r.Fields[header]
	return ok
}

// TabularResult carries the parsed rows in input order plus the number of
// malformed rows that were dropped, so callers can detect lossy parses.
type TabularResult struct {
	Rows    []RawRow
	Skipped int
}

// ParseTabular turns raw delimited text into an ordered sequence of
// header-keyed row mappings.
//
// The first non-blank line is the header row; headers are trimmed and
// lower-cased for lookup-key stability. Rows shorter than the header are
// padded with empty strings. Blank lines are dropped. Rows the csv reader
// rejects (unbalanced quoting and the like) are dropped and counted in
// Skipped rather than aborting the parse.
func ParseTabular(text string) TabularResult {
	text = strings.TrimPrefix(text, "\uFEFF")

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var out TabularResult
	var headers []string

	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				out.Skipped++
				continue
			}
			// Non-parse errors from a strings.Reader do not occur; treat
			// anything else as end of input.
			break
		}
		if isBlankRecord(rec) {
			continue
		}

		if headers == nil {
			headers = make([]string, len(rec))
			for i, h := range rec {
				headers[i] = strings.ToLower(strings.TrimSpace(h))
			}
			continue
		}

		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				fields[h] = strings.TrimSpace(rec[i])
			} else {
				fields[h] = ""
			}
		}
		out.Rows = append(out.Rows, RawRow{Headers: headers, Fields: fields})
	}

	return out
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
