package importing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// StageDressing is the structured form of a free-text stage dressing note.
type StageDressing struct {
	Chairs     int
	Stools     int
	OtherProps string
}

var (
	chairRe = regexp.MustCompile(`(?i)(\d+|one|two|three|four|five|six|seven|eight|nine|ten)\s*chairs?`)
	stoolRe = regexp.MustCompile(`(?i)(\d+|one|two|three|four|five|six|seven|eight|nine|ten)\s*stools?`)

	multiSpaceRe   = regexp.MustCompile(`\s+`)
	spelledNumbers = map[string]int{
		"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
		"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	}
)

// WordToNumber maps a spelled number one..ten to its value. Unrecognized
// words map to 0, treated as absent rather than an error.
func WordToNumber(word string) int {
	return spelledNumbers[strings.ToLower(word)]
}

// ParseStageDressing extracts chair and stool counts from a descriptive
// string. The matched substrings are removed and whatever text remains is
// whitespace/comma-normalized into OtherProps.
func ParseStageDressing(text string) StageDressing {
	if text == "" {
		return StageDressing{}
	}

	var out StageDressing
	remainder := text

	if m := chairRe.FindStringSubmatch(remainder); m != nil {
		out.Chairs = countFromToken(m[1])
		remainder = strings.Replace(remainder, m[0], "", 1)
	}
	if m := stoolRe.FindStringSubmatch(remainder); m != nil {
		out.Stools = countFromToken(m[1])
		remainder = strings.Replace(remainder, m[0], "", 1)
	}

	var kept []string
	for _, part := range strings.Split(remainder, ",") {
		part = strings.TrimSpace(multiSpaceRe.ReplaceAllString(part, " "))
		if part != "" {
			kept = append(kept, part)
		}
	}
	out.OtherProps = strings.Join(kept, ", ")

	return out
}

func countFromToken(token string) int {
	if n, err := strconv.Atoi(token); err == nil {
		return n
	}
	return WordToNumber(token)
}

// FormatStageDressing is the inverse of ParseStageDressing: it renders the
// structured counts back into a display string, pluralizing only when a
// count differs from one. When nothing contributes it renders "none".
func FormatStageDressing(chairs, stools int, otherProps string) string {
	var parts []string
	if chairs > 0 {
		parts = append(parts, fmt.Sprintf("%d chair%s", chairs, plural(chairs)))
	}
	if stools > 0 {
		parts = append(parts, fmt.Sprintf("%d stool%s", stools, plural(stools)))
	}
	if otherProps != "" {
		parts = append(parts, otherProps)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
