package theme

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name    string        `toml:"name"`
	Base    thTOMLBase    `toml:"base"`
	List    thTOMLList    `toml:"list"`
	Brand   thTOMLBrand   `toml:"brand"`
	Overlay thTOMLOverlay `toml:"overlay"`
	Special thTOMLSpecial `toml:"special"`
}

type thTOMLBase struct {
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
	Border     string `toml:"border"`
}

type thTOMLList struct {
	GroupLabel  string `toml:"group_label"`
	SelectedFG  string `toml:"selected_fg"`
	SelectedBG  string `toml:"selected_bg"`
	Favorite    string `toml:"favorite"`
	LinkHost    string `toml:"link_host"`
	StatusError string `toml:"status_error"`
}

type thTOMLBrand struct {
	Idle      string `toml:"idle"`
	Purr      string `toml:"purr"`
	Neko      string `toml:"neko"`
	Ultimate  string `toml:"ultimate"`
	Ascension string `toml:"ascension"`
}

type thTOMLOverlay struct {
	FortuneFG     string `toml:"fortune_fg"`
	FortuneBorder string `toml:"fortune_border"`
	HUD           string `toml:"hud"`
}

type thTOMLSpecial struct {
	SearchHighlight string `toml:"search_highlight"`
	HelpKey         string `toml:"help_key"`
	HelpDesc        string `toml:"help_desc"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a TOML theme definition from raw bytes.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:       tt.Name,
		Foreground: tt.Base.Foreground,
		Dim:        tt.Base.Dim,
		Accent:     tt.Base.Accent,
		Border:     tt.Base.Border,

		GroupLabel:  tt.List.GroupLabel,
		SelectedFG:  tt.List.SelectedFG,
		SelectedBG:  tt.List.SelectedBG,
		Favorite:    tt.List.Favorite,
		LinkHost:    tt.List.LinkHost,
		StatusError: tt.List.StatusError,

		Brand:          tt.Brand.Idle,
		BrandPurr:      tt.Brand.Purr,
		BrandNeko:      tt.Brand.Neko,
		BrandUltimate:  tt.Brand.Ultimate,
		BrandAscension: tt.Brand.Ascension,

		FortuneFG:     tt.Overlay.FortuneFG,
		FortuneBorder: tt.Overlay.FortuneBorder,
		HUD:           tt.Overlay.HUD,

		SearchHighlight: tt.Special.SearchHighlight,
		HelpKey:         tt.Special.HelpKey,
		HelpDesc:        tt.Special.HelpDesc,
	}

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadFile reads and validates a TOML theme file.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	return LoadFromTOML(data)
}

// SaveToTOML serializes a theme to TOML bytes.
func SaveToTOML(t Theme) ([]byte, error) {
	tt := thTOMLTheme{
		Name: t.Name,
		Base: thTOMLBase{
			Foreground: t.Foreground,
			Dim:        t.Dim,
			Accent:     t.Accent,
			Border:     t.Border,
		},
		List: thTOMLList{
			GroupLabel:  t.GroupLabel,
			SelectedFG:  t.SelectedFG,
			SelectedBG:  t.SelectedBG,
			Favorite:    t.Favorite,
			LinkHost:    t.LinkHost,
			StatusError: t.StatusError,
		},
		Brand: thTOMLBrand{
			Idle:      t.Brand,
			Purr:      t.BrandPurr,
			Neko:      t.BrandNeko,
			Ultimate:  t.BrandUltimate,
			Ascension: t.BrandAscension,
		},
		Overlay: thTOMLOverlay{
			FortuneFG:     t.FortuneFG,
			FortuneBorder: t.FortuneBorder,
			HUD:           t.HUD,
		},
		Special: thTOMLSpecial{
			SearchHighlight: t.SearchHighlight,
			HelpKey:         t.HelpKey,
			HelpDesc:        t.HelpDesc,
		},
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tt); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// thColorFields lists every color of t keyed by its TOML field name.
func thColorFields(t Theme) map[string]string {
	return map[string]string{
		"foreground":       t.Foreground,
		"dim":              t.Dim,
		"accent":           t.Accent,
		"border":           t.Border,
		"group_label":      t.GroupLabel,
		"selected_fg":      t.SelectedFG,
		"selected_bg":      t.SelectedBG,
		"favorite":         t.Favorite,
		"link_host":        t.LinkHost,
		"status_error":     t.StatusError,
		"brand.idle":       t.Brand,
		"brand.purr":       t.BrandPurr,
		"brand.neko":       t.BrandNeko,
		"brand.ultimate":   t.BrandUltimate,
		"brand.ascension":  t.BrandAscension,
		"fortune_fg":       t.FortuneFG,
		"fortune_border":   t.FortuneBorder,
		"hud":              t.HUD,
		"search_highlight": t.SearchHighlight,
		"help_key":         t.HelpKey,
		"help_desc":        t.HelpDesc,
	}
}

// thValidateTheme checks that the name is set and every color is valid hex.
func thValidateTheme(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}
	for field, value := range thColorFields(t) {
		if value == "" {
			return fmt.Errorf("theme: missing required field %q", field)
		}
		if !thHexColorRegex.MatchString(value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", value, field)
		}
	}
	return nil
}
