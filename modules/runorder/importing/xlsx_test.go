package importing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadXLSX(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"Title", "Chars", "alice"},
		{"Opener", 2, "Waiter"},
		{},
		{"Closer", 1, ""},
	})

	result, err := ReadXLSX(buf)
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	require.Equal(t, []string{"title", "chars", "alice"}, result.Rows[0].Headers)
	require.Equal(t, "Opener", result.Rows[0].Get("title"))
	require.Equal(t, "2", result.Rows[0].Get("chars"))
	require.Equal(t, "", result.Rows[1].Get("alice"))
}

func TestReadXLSX_FeedsNormalizer(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"title", "chars", "time", "bob"},
		{"Diner", 1, "2:15", "Chef"},
	})

	result, err := ReadXLSX(buf)
	require.NoError(t, err)
	records := NormalizeRows(result.Rows)
	require.Len(t, records, 1)
	require.Equal(t, "Diner", records[0].Title)
	require.Equal(t, 3, records[0].DurationMinutes)
	require.Equal(t, "Chef", records[0].Pairs[0].CharacterName)
}

func TestReadXLSX_NotAWorkbook(t *testing.T) {
	_, err := ReadXLSX(strings.NewReader("title,chars\nplain,1\n"))
	require.Error(t, err)
}
