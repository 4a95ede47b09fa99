package importing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStageDressing(t *testing.T) {
	cases := []struct {
		name string
		text string
		want StageDressing
	}{
		{"empty", "", StageDressing{}},
		{"digits", "3 chairs", StageDressing{Chairs: 3}},
		{"spelled", "two chairs and one stool", StageDressing{Chairs: 2, Stools: 1, OtherProps: "and"}},
		{"mixed with props", "2 chairs, one stool, a lamp", StageDressing{Chairs: 2, Stools: 1, OtherProps: "a lamp"}},
		{"singular nouns", "1 chair, 1 stool", StageDressing{Chairs: 1, Stools: 1}},
		{"case insensitive", "Two CHAIRS, TEN stools", StageDressing{Chairs: 2, Stools: 10}},
		{"props only", "a table, a lamp", StageDressing{OtherProps: "a table, a lamp"}},
		{"no space before noun", "4chairs", StageDressing{Chairs: 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ParseStageDressing(tc.text))
		})
	}
}

func TestWordToNumber(t *testing.T) {
	require.Equal(t, 1, WordToNumber("one"))
	require.Equal(t, 10, WordToNumber("Ten"))
	require.Equal(t, 0, WordToNumber("eleven"))
	require.Equal(t, 0, WordToNumber(""))
}

func TestFormatStageDressing(t *testing.T) {
	require.Equal(t, "none", FormatStageDressing(0, 0, ""))
	require.Equal(t, "1 chair", FormatStageDressing(1, 0, ""))
	require.Equal(t, "2 chairs, 1 stool", FormatStageDressing(2, 1, ""))
	require.Equal(t, "3 chairs, 2 stools, a lamp", FormatStageDressing(3, 2, "a lamp"))
	require.Equal(t, "a lamp", FormatStageDressing(0, 0, "a lamp"))
}

// Formatting a parsed string and parsing it again must preserve the
// structured counts and leftover props.
func TestStageDressingRoundTrip(t *testing.T) {
	inputs := []string{
		"2 chairs, one stool, a lamp",
		"1 chair",
		"three stools",
		"a table, a lamp",
		"none",
	}
	for _, input := range inputs {
		first := ParseStageDressing(input)
		formatted := FormatStageDressing(first.Chairs, first.Stools, first.OtherProps)
		second := ParseStageDressing(formatted)
		require.Equal(t, first, second, "input %q", input)
	}
}
