package history

import (
	"math"
	"strings"
	"time"
)

// Date group label keys, resolved through the translator.
const (
	GroupToday     = "time.today"
	GroupThisWeek  = "time.thisWeek"
	GroupThisMonth = "time.thisMonth"
	GroupEarlier   = "time.earlier"
)

// Translator formats a catalog key.
type Translator interface {
	T(key string, args ...any) string
}

// Entry is an item together with its position in the flat list.
type Entry struct {
	Item  Item
	Index int
}

// Group is a run of consecutive items sharing a date label.
type Group struct {
	Label   string
	Entries []Entry
}

// DateGroupKey buckets t by calendar days before now, in now's location.
func DateGroupKey(t, now time.Time) string {
	days := calendarDays(t.In(now.Location()), now)
	switch {
	case days <= 0:
		return GroupToday
	case days < 7:
		return GroupThisWeek
	case days < 30:
		return GroupThisMonth
	default:
		return GroupEarlier
	}
}

func calendarDays(t, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	return int(math.Round(today.Sub(day).Hours() / 24))
}

// GroupByDate splits items into consecutive date groups. The list is
// expected newest first; a label that reappears later starts a new group.
func GroupByDate(items []Item, now time.Time) []Group {
	var groups []Group
	for i, it := range items {
		label := DateGroupKey(it.Updated(), now)
		if len(groups) == 0 || groups[len(groups)-1].Label != label {
			groups = append(groups, Group{Label: label})
		}
		g := &groups[len(groups)-1]
		g.Entries = append(g.Entries, Entry{Item: it, Index: i})
	}
	return groups
}

// RelativeTime renders t relative to now ("just now", "5 min ago", ...).
// Beyond a week it falls back to a date in the translator's convention.
func RelativeTime(t, now time.Time, tr Translator, locale string) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return tr.T("time.justNow")
	case diff < time.Hour:
		return tr.T("time.minutesAgo", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return tr.T("time.hoursAgo", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return tr.T("time.daysAgo", int(diff/(24*time.Hour)))
	}
	local := t.In(now.Location())
	if strings.HasPrefix(locale, "zh") {
		return local.Format("2006/1/2")
	}
	return local.Format("Jan 2, 2006")
}
