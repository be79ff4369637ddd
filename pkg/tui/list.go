package tui

import (
	"strings"
	"time"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/components"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/history"
)

// ListView is everything needed to draw the history list.
type ListView struct {
	Items    []history.Item
	Selected int
	Loading  bool
	Query    string
	Now      time.Time
	Width    int
	Height   int
}

const (
	cursorMark   = "›"
	favoriteMark = "★"
)

// TypeIcon returns the glyph shown beside an item of type ct.
func TypeIcon(ct history.ContentType) string {
	switch ct {
	case history.RichText:
		return "¶"
	case history.Image:
		return "▣"
	case history.File:
		return "▤"
	case history.Link:
		return "↗"
	default:
		return "≡"
	}
}

// List renders the date-grouped history into exactly v.Height lines,
// scrolled so the selected row is visible.
func List(v ListView, s Styles, tr Translator) string {
	if v.Width <= 0 || v.Height <= 0 {
		return ""
	}

	if len(v.Items) == 0 {
		var lines []string
		switch {
		case v.Loading:
			lines = []string{s.Dim.Render(tr.T("list.loading"))}
		case strings.TrimSpace(v.Query) != "":
			lines = []string{s.Dim.Render(tr.T("list.noMatches", v.Query))}
		default:
			lines = []string{s.Text.Render(tr.T("list.empty")), s.Dim.Render(tr.T("list.emptyHint"))}
		}
		return fitLines(centerLines(lines, v.Width), v.Width, v.Height)
	}

	var (
		lines   []string
		selLine int
	)
	for _, g := range history.GroupByDate(v.Items, v.Now) {
		lines = append(lines, s.GroupLabel.Render(components.Truncate(tr.T(g.Label), v.Width, "…")))
		for _, e := range g.Entries {
			if e.Index == v.Selected {
				selLine = len(lines)
			}
			lines = append(lines, listRow(e.Item, e.Index == v.Selected, v, s, tr))
		}
	}

	start := 0
	if selLine >= v.Height {
		start = selLine - v.Height + 1
	}
	return fitLines(lines[start:], v.Width, v.Height)
}

func listRow(it history.Item, selected bool, v ListView, s Styles, tr Translator) string {
	cursor := " "
	if selected {
		cursor = cursorMark
	}

	meta := history.RelativeTime(it.Updated(), v.Now, tr, tr.Locale())
	if it.Favorite {
		meta = favoriteMark + " " + meta
	}

	text := it.Text()
	if it.ContentType == history.Link {
		if host := it.Hostname(); host != "" {
			text = host + "  " + text
		}
	}

	prefix := cursor + " " + TypeIcon(it.ContentType) + " "
	room := v.Width - components.VisibleLen(prefix) - components.VisibleLen(meta) - 1
	body := components.Snippet(text, max(room, 0))
	gap := v.Width - components.VisibleLen(prefix) - components.VisibleLen(body) - components.VisibleLen(meta)
	if gap < 1 {
		return components.Truncate(prefix+body, v.Width, "…")
	}
	row := prefix + body + strings.Repeat(" ", gap) + meta

	if selected {
		return s.Selected.Render(row)
	}
	return s.Text.Render(prefix+body) + strings.Repeat(" ", gap) + s.Dim.Render(meta)
}

func centerLines(lines []string, width int) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = components.PadCenter(l, width)
	}
	return out
}

// fitLines pads or cuts lines to exactly height rows of width cells.
func fitLines(lines []string, width, height int) string {
	out := make([]string, height)
	for i := range out {
		if i < len(lines) {
			out[i] = components.PadRight(components.Truncate(lines[i], width, ""), width)
		} else {
			out[i] = strings.Repeat(" ", width)
		}
	}
	return strings.Join(out, "\n")
}
