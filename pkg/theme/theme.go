// Package theme defines the color palettes for the clipboard list and the
// brand mark.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme is a complete color palette. Every field is a "#RRGGBB" hex color.
type Theme struct {
	Name string

	// Base colors
	Foreground string
	Dim        string
	Accent     string
	Border     string

	// List colors
	GroupLabel  string // date group headings
	SelectedFG  string
	SelectedBG  string
	Favorite    string
	LinkHost    string
	StatusError string

	// Brand mark, one color per escalation layer
	Brand          string // idle
	BrandPurr      string // pink
	BrandNeko      string // purple
	BrandUltimate  string // violet
	BrandAscension string // ivory

	// Overlays
	FortuneFG     string
	FortuneBorder string
	HUD           string

	// Special
	SearchHighlight string
	HelpKey         string
	HelpDesc        string
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
}

// Get returns a named theme, falling back to default if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Lookup returns a named theme and whether it exists.
func Lookup(name string) (Theme, bool) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := registry[strings.ToLower(name)]
	return t, ok
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds t to the registry under its lowercase name, replacing any
// theme of the same name.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
