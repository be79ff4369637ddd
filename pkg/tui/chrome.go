package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/components"
)

// Header renders the top bar: the brand mark on the left, hint on the right.
func Header(brand, hint string, width int, s Styles) string {
	if width <= 0 {
		return ""
	}
	hint = s.Dim.Render(hint)
	gap := width - lipgloss.Width(brand) - lipgloss.Width(hint)
	if gap < 1 {
		return brand
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, brand, strings.Repeat(" ", gap), hint)
}

// StatusBar renders a one-line bar of exactly width cells. A non-empty
// message replaces the hints; errors use the error color.
func StatusBar(msg string, isErr bool, hints string, width int, s Styles) string {
	if width <= 0 {
		return ""
	}
	if msg != "" {
		style := s.Text
		if isErr {
			style = s.Error
		}
		return style.Render(components.PadRight(components.Truncate(msg, width, "…"), width))
	}
	return components.PadRight(components.Truncate(hints, width, ""), width)
}
