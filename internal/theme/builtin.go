package theme

// DefaultName is the theme active in a fresh registry
const DefaultName = "tss-dark"

// Builtin returns fresh copies of the bundled themes
func Builtin() []*Theme {
	return []*Theme{
		{
			Name:       "tss-dark",
			Primary:    "#0178D4",
			Secondary:  "#004578",
			Accent:     "#ffa62b",
			Warning:    "#ffa62b",
			Error:      "#ba3c5b",
			Success:    "#4EBF71",
			Foreground: "#e0e0e0",
			Background: "#121212",
			Surface:    "#1e1e1e",
			Panel:      "#24292f",
			Dark:       true,
		},
		{
			Name:       "tss-light",
			Primary:    "#004578",
			Secondary:  "#0178D4",
			Accent:     "#ffa62b",
			Warning:    "#ffa62b",
			Error:      "#ba3c5b",
			Success:    "#4EBF71",
			Foreground: "#1e1e1e",
			Background: "#e0e0e0",
			Surface:    "#d8d8d8",
			Panel:      "#d0d0d0",
		},
		{
			Name:       "nord",
			Primary:    "#88C0D0",
			Secondary:  "#81A1C1",
			Accent:     "#B48EAD",
			Warning:    "#EBCB8B",
			Error:      "#BF616A",
			Success:    "#A3BE8C",
			Foreground: "#D8DEE9",
			Background: "#2E3440",
			Surface:    "#3B4252",
			Panel:      "#434C5E",
			Dark:       true,
		},
		{
			Name:       "gruvbox",
			Primary:    "#85A598",
			Secondary:  "#A89A85",
			Accent:     "#fabd2f",
			Warning:    "#fe8019",
			Error:      "#fb4934",
			Success:    "#b8bb26",
			Foreground: "#fbf1c7",
			Background: "#282828",
			Surface:    "#3c3836",
			Panel:      "#504945",
			Dark:       true,
		},
		{
			Name:       "dracula",
			Primary:    "#BD93F9",
			Secondary:  "#6272A4",
			Accent:     "#FF79C6",
			Warning:    "#FFB86C",
			Error:      "#FF5555",
			Success:    "#50FA7B",
			Foreground: "#F8F8F2",
			Background: "#282A36",
			Surface:    "#2B2E3B",
			Panel:      "#313442",
			Dark:       true,
		},
	}
}
