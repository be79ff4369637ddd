package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/components"
)

// HUD renders the copy confirmation box.
func HUD(s Styles, tr Translator) string {
	return s.HUD.Render("✓ " + tr.T("context.copied"))
}

// Overlay draws fg on top of bg centered in a width x height canvas. Both
// may carry ANSI styling; cells of bg outside fg's box are kept.
func Overlay(bg, fg string, width, height int) string {
	fgLines := strings.Split(fg, "\n")
	fgW := lipgloss.Width(fg)
	fgH := len(fgLines)
	x := max((width-fgW)/2, 0)
	y := max((height-fgH)/2, 0)

	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	for dy, line := range fgLines {
		ry := y + dy
		if ry >= len(bgLines) {
			break
		}
		bgLines[ry] = blitLine(bgLines[ry], line, x, fgW)
	}
	return strings.Join(bgLines, "\n")
}

// blitLine replaces the cells [x, x+w) of base with over.
func blitLine(base, over string, x, w int) string {
	base = components.PadRight(base, x+w)
	left := ansi.Truncate(base, x, "")
	right := ansi.TruncateLeft(base, x+w, "")
	return left + components.PadRight(over, w) + right
}
