// Package components provides ANSI-aware text primitives shared by the
// list, preview and brand-mark renderers.
package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleLen returns the visible width of s in terminal cells. ANSI escape
// sequences are ignored and wide characters (CJK, emoji) count as 2.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate cuts s to at most maxWidth cells, appending tail when anything
// was removed. The tail counts toward maxWidth.
func Truncate(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, tail)
}

// PadRight pads s with trailing spaces to width cells. Wider input is
// returned unchanged.
func PadRight(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vis)
}

// PadCenter centers s within width cells; odd padding goes on the right.
func PadCenter(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	left := (width - vis) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-vis-left)
}

// Snippet collapses all whitespace runs in s to single spaces and truncates
// the result to width cells with an ellipsis. Used for one-line previews of
// multi-line clipboard text.
func Snippet(s string, width int) string {
	return Truncate(strings.Join(strings.Fields(s), " "), width, "…")
}

// Wrap word-wraps s at width cells and returns the lines. Embedded newlines
// are kept as line breaks.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}
