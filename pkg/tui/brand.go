package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/escalate"
)

// Brand mark faces, one per tier.
const (
	BrandText      = "Recopy"
	NekoFace       = "ฅ^•ﻌ•^ฅ"
	UltimateFace   = "ฅ(=^·ω·^=)ฅ"
	UltimateEars   = "∧ ∧"
	purrMark       = " ~"
	ascensionGhost = "·"
)

// Decorations drawn above the face.
var (
	nekoParticles  = []string{"♥", "✦", "⋆", "🐾", "♥", "✦"}
	ascensionRunes = []string{"✶", "◌", "✦", "☽", "✶", "◍", "✧", "☾"}
)

// BrandFace returns the text of the mark for a state.
func BrandFace(st escalate.State) string {
	switch st.Tier {
	case escalate.TierUltimate, escalate.TierAscension:
		return UltimateFace
	case escalate.TierNeko:
		return NekoFace
	}
	if st.Purring {
		return BrandText + purrMark
	}
	return BrandText
}

// BrandColor returns the theme color of the mark for a state.
func BrandColor(st escalate.State, s Styles) string {
	switch {
	case st.Tier == escalate.TierAscension:
		return s.Theme.BrandAscension
	case st.Tier == escalate.TierUltimate:
		return s.Theme.BrandUltimate
	case st.Tier == escalate.TierNeko:
		return s.Theme.BrandNeko
	case st.Purring:
		return s.Theme.BrandPurr
	}
	return s.Theme.Brand
}

// Brand renders the brand mark as a two-line block: a decoration row
// (particles and ears in ultimate, runes in ascension) above the face.
// The fortune bubble is rendered separately by Fortune.
func Brand(st escalate.State, s Styles) string {
	color := lipgloss.Color(BrandColor(st, s))
	face := lipgloss.NewStyle().Foreground(color).Bold(st.Pulse || st.Tier != escalate.TierIdle)

	core := face.Render(BrandFace(st))
	var top string

	switch st.Tier {
	case escalate.TierUltimate:
		ears := face.Render(UltimateEars)
		particles := s.Favorite.Render(strings.Join(nekoParticles[:3], " ")) + " " +
			ears + " " + s.Favorite.Render(strings.Join(nekoParticles[3:], " "))
		top = particles
	case escalate.TierAscension:
		ghost := s.Dim.Render(ascensionGhost)
		core = ghost + " " + core + " " + ghost
		top = face.Render(strings.Join(ascensionRunes, " "))
	case escalate.TierNeko:
		core = lipgloss.NewStyle().Foreground(color).Render("(") + core +
			lipgloss.NewStyle().Foreground(color).Render(")")
	}

	return lipgloss.JoinVertical(lipgloss.Center, top, core)
}

// Fortune renders the fortune bubble, or "" when none is shown.
func Fortune(st escalate.State, s Styles, maxWidth int) string {
	if !st.HasFortune() {
		return ""
	}
	style := s.Fortune
	if maxWidth > 4 && lipgloss.Width(st.Fortune)+4 > maxWidth {
		style = style.Width(maxWidth - 2)
	}
	return style.Render(st.Fortune)
}
