package importing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTabular_HeadersLowercasedAndTrimmed(t *testing.T) {
	result := ParseTabular("Title , CHARS\nOpener,3\n")

	require.Len(t, result.Rows, 1)
	require.Equal(t, 0, result.Skipped)
	require.Equal(t, []string{"title", "chars"}, result.Rows[0].Headers)
	require.Equal(t, "Opener", result.Rows[0].Get("title"))
	require.Equal(t, "3", result.Rows[0].Get("chars"))
}

func TestParseTabular_ShortRowsPadded(t *testing.T) {
	result := ParseTabular("title,chars,notes\nOpener,3\n")

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	require.True(t, row.Has("notes"))
	require.Equal(t, "", row.Get("notes"))
}

func TestParseTabular_LongRowsIgnoreExtraFields(t *testing.T) {
	result := ParseTabular("title,chars\nOpener,3,stray,fields\n")

	require.Len(t, result.Rows, 1)
	require.Len(t, result.Rows[0].Fields, 2)
}

func TestParseTabular_BlankLinesDropped(t *testing.T) {
	result := ParseTabular("\n\ntitle,chars\n\nOpener,3\n   ,  \nCloser,2\n")

	require.Len(t, result.Rows, 2)
	require.Equal(t, "Opener", result.Rows[0].Get("title"))
	require.Equal(t, "Closer", result.Rows[1].Get("title"))
}

func TestParseTabular_MalformedRowsCountedNotFatal(t *testing.T) {
	result := ParseTabular("title,chars\nOpener,3\nBro\"ken,2\nCloser,2\n")

	require.Len(t, result.Rows, 2)
	require.Equal(t, "Opener", result.Rows[0].Get("title"))
	require.Equal(t, "Closer", result.Rows[1].Get("title"))
	require.Equal(t, 1, result.Skipped)
}

func TestParseTabular_BOMStripped(t *testing.T) {
	result := ParseTabular("\uFEFFtitle,chars\nOpener,3\n")

	require.Len(t, result.Rows, 1)
	require.Equal(t, []string{"title", "chars"}, result.Rows[0].Headers)
}

func TestParseTabular_Empty(t *testing.T) {
	result := ParseTabular("")

	require.Empty(t, result.Rows)
	require.Equal(t, 0, result.Skipped)
}
