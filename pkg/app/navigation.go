package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/history"
)

// MoveSelection moves the cursor by delta rows, clamped to the visible list,
// and asks the backend to publish the new selection when it changed.
func (m *Model) MoveSelection(delta int) tea.Cmd {
	return m.setSelected(m.selected + delta)
}

// setSelected clamps i into the visible list. A changed selection returns
// the command that reports it to the backend.
func (m *Model) setSelected(i int) tea.Cmd {
	prev, hadPrev := m.SelectedItem()

	m.selected = clampIndex(i, len(m.visible))

	cur, ok := m.SelectedItem()
	if !ok || (hadPrev && prev.ID == cur.ID) {
		return nil
	}
	return m.selectCmd(cur.ID)
}

// SelectedItem returns the item under the cursor.
func (m Model) SelectedItem() (history.Item, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return history.Item{}, false
	}
	return m.visible[m.selected], true
}

// refilter recomputes the visible list from the search query, keeping the
// cursor on the same item when it survives.
func (m *Model) refilter(resetCursor bool) tea.Cmd {
	prev, hadPrev := m.SelectedItem()
	m.visible = history.Filter(m.items, m.search.Value())

	target := 0
	if hadPrev && !resetCursor {
		target = m.selected
		for i, it := range m.visible {
			if it.ID == prev.ID {
				target = i
				break
			}
		}
	}
	m.selected = clampIndex(target, len(m.visible))

	cur, ok := m.SelectedItem()
	if !ok || (hadPrev && prev.ID == cur.ID) {
		return nil
	}
	return m.selectCmd(cur.ID)
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
