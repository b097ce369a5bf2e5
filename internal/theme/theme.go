// Package theme holds named palettes and derives the variables stylesheets
// reference from them.
package theme

import (
	"fmt"
	"maps"

	"bennypowers.dev/tss/internal/values"
)

// Default tunables, used when a theme leaves them at zero
const (
	DefaultLuminositySpread = 0.15
	DefaultTextAlpha        = 0.95
)

// Theme is a named palette of semantic colors. Colors are kept as
// stylesheet color text so theme files can use any color notation.
type Theme struct {
	Name       string `yaml:"name"`
	Primary    string `yaml:"primary"`
	Secondary  string `yaml:"secondary,omitempty"`
	Warning    string `yaml:"warning,omitempty"`
	Error      string `yaml:"error,omitempty"`
	Success    string `yaml:"success,omitempty"`
	Accent     string `yaml:"accent,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Surface    string `yaml:"surface,omitempty"`
	Panel      string `yaml:"panel,omitempty"`
	Boost      string `yaml:"boost,omitempty"`

	Dark bool `yaml:"dark"`
	// LuminositySpread is the Lab lightness range covered by the three
	// lighten and three darken shades
	LuminositySpread float64 `yaml:"luminosity_spread,omitempty"`
	// TextAlpha is the opacity of the generated "-text" contrast colors
	TextAlpha float64 `yaml:"text_alpha,omitempty"`

	// Variables are extra variables, applied after the generated ones
	Variables map[string]string `yaml:"variables,omitempty"`
}

// Slots lists the color slots in generation order
var Slots = []string{
	"primary", "secondary", "warning", "error", "success", "accent",
	"foreground", "background", "surface", "panel", "boost",
}

func (t *Theme) slot(name string) *string {
	switch name {
	case "primary":
		return &t.Primary
	case "secondary":
		return &t.Secondary
	case "warning":
		return &t.Warning
	case "error":
		return &t.Error
	case "success":
		return &t.Success
	case "accent":
		return &t.Accent
	case "foreground":
		return &t.Foreground
	case "background":
		return &t.Background
	case "surface":
		return &t.Surface
	case "panel":
		return &t.Panel
	case "boost":
		return &t.Boost
	}
	return nil
}

// Slot returns the color text of a slot, or "" for unknown slots
func (t *Theme) Slot(name string) string {
	if p := t.slot(name); p != nil {
		return *p
	}
	return ""
}

// SetSlot sets a slot by name, reporting whether the name is a slot
func (t *Theme) SetSlot(name, color string) bool {
	p := t.slot(name)
	if p == nil {
		return false
	}
	*p = color
	return true
}

// Clone returns a deep copy
func (t *Theme) Clone() *Theme {
	c := *t
	c.Variables = maps.Clone(t.Variables)
	return &c
}

// palette is a theme with every slot parsed and filled in
type palette struct {
	colors map[string]values.Color
	spread float64
	alpha  float64
}

// resolve parses the slots and fills the empty ones from the others
func (t *Theme) resolve() (*palette, error) {
	if t.Primary == "" {
		return nil, fmt.Errorf("theme '%s' has no primary color", t.Name)
	}

	p := &palette{
		colors: make(map[string]values.Color, len(Slots)),
		spread: t.LuminositySpread,
		alpha:  t.TextAlpha,
	}
	if p.spread <= 0 {
		p.spread = DefaultLuminositySpread
	}
	if p.alpha <= 0 {
		p.alpha = DefaultTextAlpha
	}

	for _, name := range Slots {
		text := t.Slot(name)
		if text == "" {
			continue
		}
		c, err := values.ParseColor(text)
		if err != nil {
			return nil, fmt.Errorf("theme '%s': %s: %w", t.Name, name, err)
		}
		if c.Mode != values.ModeRGB {
			return nil, fmt.Errorf("theme '%s': %s must be a true color, got '%s'", t.Name, name, text)
		}
		p.colors[name] = c
	}

	fill := func(name string, fn func() values.Color) {
		if _, ok := p.colors[name]; !ok {
			p.colors[name] = fn()
		}
	}
	primary := p.colors["primary"]
	fill("secondary", func() values.Color { return primary })
	fill("accent", func() values.Color { return primary })
	fill("warning", func() values.Color { return values.RGB(0xff, 0xa6, 0x2b) })
	fill("error", func() values.Color { return values.RGB(0xba, 0x3c, 0x5b) })
	fill("success", func() values.Color { return values.RGB(0x4e, 0xbf, 0x71) })
	fill("background", func() values.Color {
		if t.Dark {
			return values.RGB(0x12, 0x12, 0x12)
		}
		return values.RGB(0xef, 0xef, 0xef)
	})
	background := p.colors["background"]
	fill("foreground", func() values.Color { return background.ContrastText(1) })
	fill("surface", func() values.Color {
		if t.Dark {
			return background.Lighten(p.spread / 2)
		}
		return background.Darken(p.spread / 2)
	})
	surface := p.colors["surface"]
	fill("panel", func() values.Color { return surface.Mix(primary, 0.1) })
	fill("boost", func() values.Color { return background.ContrastText(0.04) })

	return p, nil
}

// GenerateVariables derives the full variable set of a theme: every slot,
// three lighter and three darker shades of it, a contrasting text color for
// it, and the deferred "auto" text colors. Names carry no "$".
func GenerateVariables(t *Theme) (map[string]string, error) {
	p, err := t.resolve()
	if err != nil {
		return nil, err
	}

	vars := make(map[string]string, len(Slots)*8+8)
	step := p.spread / 2
	for _, name := range Slots {
		c := p.colors[name]
		vars[name] = c.String()
		for n := 1; n <= 3; n++ {
			vars[fmt.Sprintf("%s-lighten-%d", name, n)] = c.Lighten(step * float64(n)).String()
			vars[fmt.Sprintf("%s-darken-%d", name, n)] = c.Darken(step * float64(n)).String()
		}
		vars[name+"-text"] = c.ContrastText(p.alpha).Over(c).String()
	}

	foreground := p.colors["foreground"]
	vars["foreground-muted"] = foreground.WithAlpha(0.6).String()
	vars["foreground-disabled"] = foreground.WithAlpha(0.38).String()
	vars["text"] = "auto 87%"
	vars["text-muted"] = "auto 60%"
	vars["text-disabled"] = "auto 38%"
	vars["border"] = p.colors["primary"].String()
	vars["border-blurred"] = p.colors["surface"].Darken(step).String()

	maps.Copy(vars, t.Variables)
	return vars, nil
}
