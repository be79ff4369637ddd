package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thDefaultTheme(),
		thLightTheme(),
		thNordTheme(),
		thDraculaTheme(),
	} {
		Register(t)
	}
}

// thDefaultTheme is the dark neutral theme. The brand layers follow the
// pink → purple → violet → ivory ramp.
func thDefaultTheme() Theme {
	return Theme{
		Name:       "default",
		Foreground: "#d4d4d4",
		Dim:        "#6b6b6b",
		Accent:     "#7C3AED",
		Border:     "#3e3e3e",

		GroupLabel:  "#8b8b8b",
		SelectedFG:  "#ffffff",
		SelectedBG:  "#4c1d95",
		Favorite:    "#e5c07b",
		LinkHost:    "#61afef",
		StatusError: "#e06c75",

		Brand:          "#cccccc",
		BrandPurr:      "#f472b6",
		BrandNeko:      "#c084fc",
		BrandUltimate:  "#a78bfa",
		BrandAscension: "#f4f4f5",

		FortuneFG:     "#e5e5e5",
		FortuneBorder: "#52525b",
		HUD:           "#4ade80",

		SearchHighlight: "#f9e2af",
		HelpKey:         "#7C3AED",
		HelpDesc:        "#6b6b6b",
	}
}

// thLightTheme targets light terminal backgrounds.
func thLightTheme() Theme {
	return Theme{
		Name:       "light",
		Foreground: "#27272a",
		Dim:        "#71717a",
		Accent:     "#6d28d9",
		Border:     "#d4d4d8",

		GroupLabel:  "#52525b",
		SelectedFG:  "#18181b",
		SelectedBG:  "#ddd6fe",
		Favorite:    "#b45309",
		LinkHost:    "#1d4ed8",
		StatusError: "#b91c1c",

		Brand:          "#3f3f46",
		BrandPurr:      "#db2777",
		BrandNeko:      "#9333ea",
		BrandUltimate:  "#7c3aed",
		BrandAscension: "#78716c",

		FortuneFG:     "#27272a",
		FortuneBorder: "#a1a1aa",
		HUD:           "#16a34a",

		SearchHighlight: "#a16207",
		HelpKey:         "#6d28d9",
		HelpDesc:        "#71717a",
	}
}

// thNordTheme returns the cool arctic Nord theme.
func thNordTheme() Theme {
	return Theme{
		Name:       "nord",
		Foreground: "#d8dee9",
		Dim:        "#4c566a",
		Accent:     "#88c0d0",
		Border:     "#3b4252",

		GroupLabel:  "#81a1c1",
		SelectedFG:  "#eceff4",
		SelectedBG:  "#434c5e",
		Favorite:    "#ebcb8b",
		LinkHost:    "#8fbcbb",
		StatusError: "#bf616a",

		Brand:          "#e5e9f0",
		BrandPurr:      "#d08770",
		BrandNeko:      "#b48ead",
		BrandUltimate:  "#a3a3e0",
		BrandAscension: "#eceff4",

		FortuneFG:     "#e5e9f0",
		FortuneBorder: "#4c566a",
		HUD:           "#a3be8c",

		SearchHighlight: "#ebcb8b",
		HelpKey:         "#88c0d0",
		HelpDesc:        "#4c566a",
	}
}

// thDraculaTheme returns the dark purple Dracula theme.
func thDraculaTheme() Theme {
	return Theme{
		Name:       "dracula",
		Foreground: "#f8f8f2",
		Dim:        "#6272a4",
		Accent:     "#bd93f9",
		Border:     "#44475a",

		GroupLabel:  "#6272a4",
		SelectedFG:  "#f8f8f2",
		SelectedBG:  "#44475a",
		Favorite:    "#f1fa8c",
		LinkHost:    "#8be9fd",
		StatusError: "#ff5555",

		Brand:          "#f8f8f2",
		BrandPurr:      "#ff79c6",
		BrandNeko:      "#bd93f9",
		BrandUltimate:  "#a78bfa",
		BrandAscension: "#ffffff",

		FortuneFG:     "#f8f8f2",
		FortuneBorder: "#6272a4",
		HUD:           "#50fa7b",

		SearchHighlight: "#f1fa8c",
		HelpKey:         "#bd93f9",
		HelpDesc:        "#6272a4",
	}
}
