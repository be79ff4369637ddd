package tui

import (
	"strings"
	"time"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/components"
	"gitlab.com/tinyland/lab/recopy-tui/pkg/history"
)

// PreviewView is everything needed to draw the preview pane.
type PreviewView struct {
	Detail *history.Detail
	Loaded bool // at least one poll has answered
	Now    time.Time
	Width  int
	Height int
}

// Preview renders the preview record into exactly v.Height lines.
func Preview(v PreviewView, s Styles, tr Translator) string {
	if v.Width <= 0 || v.Height <= 0 {
		return ""
	}

	switch {
	case !v.Loaded:
		return fitLines([]string{s.Dim.Render(tr.T("preview.loading"))}, v.Width, v.Height)
	case v.Detail == nil:
		return fitLines([]string{s.Dim.Render(tr.T("preview.waiting"))}, v.Width, v.Height)
	}

	d := v.Detail
	var body []string
	switch d.ContentType {
	case history.Image:
		body = append(body, s.Accent.Render(TypeIcon(d.ContentType)+" "+tr.T("preview.image")))
		if d.ImagePath != "" {
			body = append(body, s.Dim.Render(d.ImagePath))
		}
	case history.File:
		name := d.FileName
		if name == "" {
			name = d.PlainText
		}
		body = append(body, s.Accent.Render(TypeIcon(d.ContentType)+" "+tr.T("preview.file")))
		body = append(body, s.Text.Render(name))
		if d.FilePath != "" && d.FilePath != name {
			body = append(body, s.Dim.Render(d.FilePath))
		}
	case history.Link:
		if host := d.Hostname(); host != "" {
			body = append(body, s.LinkHost.Render(TypeIcon(d.ContentType)+" "+host))
		}
		body = append(body, wrapStyled(d.PlainText, v.Width, s)...)
	default:
		body = wrapStyled(d.Text(), v.Width, s)
	}

	footer := previewFooter(d, v.Now, tr)
	room := v.Height - 1
	if len(body) > room {
		body = body[:max(room, 0)]
	}
	for len(body) < room {
		body = append(body, "")
	}
	return fitLines(append(body, s.Dim.Render(components.Truncate(footer, v.Width, "…"))), v.Width, v.Height)
}

func wrapStyled(text string, width int, s Styles) []string {
	text = strings.TrimRight(text, "\n")
	lines := components.Wrap(text, width)
	for i, l := range lines {
		lines[i] = s.Text.Render(l)
	}
	return lines
}

func previewFooter(d *history.Detail, now time.Time, tr Translator) string {
	parts := []string{history.FormatSize(d.SizeBytes)}
	if t := d.Updated(); !t.IsZero() {
		parts = append(parts, history.RelativeTime(t, now, tr, tr.Locale()))
	}
	if d.SourceApp != "" {
		parts = append(parts, d.SourceApp)
	}
	if d.Favorite {
		parts = append(parts, favoriteMark)
	}
	return strings.Join(parts, " · ")
}
