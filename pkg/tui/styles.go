// Package tui renders the picker: the brand mark, the date-grouped history
// list, the preview pane and the overlays drawn on top of them. Every
// function here is a pure view over values owned by the app model.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/theme"
)

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Theme theme.Theme

	Text       lipgloss.Style
	Dim        lipgloss.Style
	Accent     lipgloss.Style
	GroupLabel lipgloss.Style
	Selected   lipgloss.Style
	Favorite   lipgloss.Style
	LinkHost   lipgloss.Style
	Error      lipgloss.Style
	Pane       lipgloss.Style
	Fortune    lipgloss.Style
	HUD        lipgloss.Style
	HelpKey    lipgloss.Style
	HelpDesc   lipgloss.Style
}

// NewStyles builds the style set for th.
func NewStyles(th theme.Theme) Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		Theme:      th,
		Text:       fg(th.Foreground),
		Dim:        fg(th.Dim),
		Accent:     fg(th.Accent).Bold(true),
		GroupLabel: fg(th.GroupLabel).Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.SelectedFG)).
			Background(lipgloss.Color(th.SelectedBG)),
		Favorite: fg(th.Favorite),
		LinkHost: fg(th.LinkHost),
		Error:    fg(th.StatusError),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(th.Border)),
		Fortune: lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.FortuneFG)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(th.FortuneBorder)).
			Padding(0, 1),
		HUD: lipgloss.NewStyle().
			Foreground(lipgloss.Color(th.HUD)).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(th.HUD)).
			Padding(1, 3),
		HelpKey:  fg(th.HelpKey),
		HelpDesc: fg(th.HelpDesc),
	}
}

// Translator formats a catalog key in the active locale.
type Translator interface {
	T(key string, args ...any) string
	Locale() string
}
