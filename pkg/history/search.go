package history

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// searchSource adapts items to fuzzy.Source.
type searchSource []Item

func (s searchSource) String(i int) string {
	it := s[i]
	text := strings.Join(strings.Fields(it.Text()), " ")
	if it.SourceApp != "" {
		text += " " + it.SourceApp
	}
	return text
}

func (s searchSource) Len() int { return len(s) }

// Filter returns the items matching query, best match first. An empty
// query returns items unchanged.
func Filter(items []Item, query string) []Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	matches := fuzzy.FindFrom(query, searchSource(items))
	out := make([]Item, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return out
}
