package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/tui"
)

// minSplitWidth is the narrowest terminal that shows the preview pane
// beside the list.
const minSplitWidth = 70

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}

	st := m.engine.State()
	brand := m.zones.Mark(brandZone, tui.Brand(st, m.styles))

	top := []string{
		tui.Header(brand, m.countHint(), m.width, m.styles),
		m.search.View(),
	}
	if bubble := tui.Fortune(st, m.styles, m.width); bubble != "" {
		top = append(top, bubble)
	}
	header := lipgloss.JoinVertical(lipgloss.Left, top...)

	status := tui.StatusBar(m.status, m.statusErr, m.help.ShortHelpView(m.keys.ShortHelp()), m.width, m.styles)

	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	view := lipgloss.JoinVertical(lipgloss.Left, header, m.renderBody(bodyH), status)

	if m.hudVisible {
		view = tui.Overlay(view, tui.HUD(m.styles, m.tr), m.width, m.height)
	}
	return m.zones.Scan(view)
}

func (m Model) countHint() string {
	hint := fmt.Sprintf("%d", len(m.items))
	if m.search.Value() != "" {
		hint = fmt.Sprintf("%d/%d", len(m.visible), len(m.items))
	}
	if m.Stale() {
		hint = m.tr.T("list.cached") + " · " + hint
	}
	return hint
}

func (m Model) renderBody(height int) string {
	if height <= 0 {
		return ""
	}
	if m.help.ShowAll {
		return lipgloss.NewStyle().Width(m.width).Height(height).
			Render(m.help.FullHelpView(m.keys.FullHelp()))
	}

	now := m.now()
	list := tui.ListView{
		Items:    m.visible,
		Selected: m.selected,
		Loading:  m.loading,
		Query:    m.search.Value(),
		Now:      now,
	}

	// Too short for borders: bare list.
	if height < 3 {
		list.Width, list.Height = m.width, height
		return tui.List(list, m.styles, m.tr)
	}

	innerH := height - 2
	if !m.opts.PreviewEnabled || m.width < minSplitWidth {
		list.Width, list.Height = m.width-2, innerH
		return m.styles.Pane.Render(tui.List(list, m.styles, m.tr))
	}

	listOuter := m.width * 55 / 100
	list.Width, list.Height = listOuter-2, innerH
	preview := tui.PreviewView{
		Detail: m.preview,
		Loaded: m.previewLoaded,
		Now:    now,
		Width:  m.width - listOuter - 2,
		Height: innerH,
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Pane.Render(tui.List(list, m.styles, m.tr)),
		m.styles.Pane.Render(tui.Preview(preview, m.styles, m.tr)),
	)
}
