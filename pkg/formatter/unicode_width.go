package formatter

import (
	"strings"

	"golang.org/x/text/width"
)

// RuneWidth returns the display width of a rune.
// East Asian wide and fullwidth characters take two cells.
func RuneWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// PadString right-pads a string with spaces to the specified display width
func PadString(s string, w int) string {
	current := StringWidth(s)
	if current >= w {
		return s
	}
	return s + strings.Repeat(" ", w-current)
}

// Truncate shortens s to at most max display cells, ending with "…" when cut
func Truncate(s string, max int) string {
	if StringWidth(s) <= max {
		return s
	}

	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := RuneWidth(r)
		if used+rw > max-1 {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	b.WriteString("…")
	return b.String()
}
