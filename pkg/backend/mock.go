package backend

import (
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/recopy-tui/pkg/history"
)

// SampleItems returns a fixed history spread across every date group,
// newest first, with timestamps relative to now.
func SampleItems(now time.Time) []history.Item {
	at := func(d time.Duration) string {
		return now.Add(-d).UTC().Format(time.RFC3339)
	}
	day := 24 * time.Hour

	return []history.Item{
		{ID: "1", ContentType: history.PlainText, PlainText: "git rebase -i HEAD~3", SizeBytes: 20, UpdatedAt: at(20 * time.Second), SourceApp: "kitty"},
		{ID: "2", ContentType: history.Link, PlainText: "https://pkg.go.dev/github.com/charmbracelet/bubbletea", SizeBytes: 54, UpdatedAt: at(4 * time.Minute), SourceApp: "firefox"},
		{ID: "3", ContentType: history.RichText, PlainText: "Quarterly numbers are in the shared sheet", Preview: "Quarterly numbers are in the shared sheet", SizeBytes: 2310, UpdatedAt: at(3 * time.Hour), Favorite: true, SourceApp: "thunderbird"},
		{ID: "4", ContentType: history.Image, PlainText: "", Preview: "screenshot-2048x1152.png", SizeBytes: 1_482_113, UpdatedAt: at(2 * day), SourceApp: "flameshot"},
		{ID: "5", ContentType: history.File, PlainText: "/home/user/Documents/invoice-0412.pdf", SizeBytes: 88_204, UpdatedAt: at(5 * day), SourceApp: "nautilus"},
		{ID: "6", ContentType: history.PlainText, PlainText: "SELECT id, name\n  FROM users\n WHERE active = true;", SizeBytes: 52, UpdatedAt: at(12 * day), SourceApp: "dbeaver"},
		{ID: "7", ContentType: history.PlainText, PlainText: "ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIB example@host", SizeBytes: 51, UpdatedAt: at(45 * day), Favorite: true},
	}
}

// SampleDetails returns preview records for the rich entries of SampleItems.
func SampleDetails(items []history.Item) []history.Detail {
	var out []history.Detail
	for _, it := range items {
		d := history.Detail{Item: it}
		switch it.ContentType {
		case history.RichText:
			d.RichContent = fmt.Sprintf("<p><b>%s</b></p>", it.PlainText)
		case history.Image:
			d.ImagePath = "/tmp/recopy/" + it.Preview
		case history.File:
			d.FilePath = it.PlainText
			d.FileName = "invoice-0412.pdf"
		default:
			continue
		}
		out = append(out, d)
	}
	return out
}
