package importing

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of an xlsx workbook into the same raw row
// shape the tabular parser produces, so spreadsheet exports that were never
// saved as CSV flow through the same normalizer.
func ReadXLSX(r io.Reader) (TabularResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return TabularResult{}, err
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return TabularResult{}, nil
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return TabularResult{}, err
	}

	var out TabularResult
	var headers []string
	for _, rec := range records {
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

	return out, nil
}
