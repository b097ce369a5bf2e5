// Package color converts the structured color values of design tokens
// (the 2025.10 format, with a colorSpace and components) to sRGB hex.
package color

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Structured is a 2025.10 color token value
type Structured struct {
	ColorSpace string
	Components [3]float64
	Alpha      float64
	Hex        string
}

// FromRaw reads a structured color from a decoded token value
func FromRaw(raw map[string]any) (Structured, error) {
	s := Structured{Alpha: 1}

	space, ok := raw["colorSpace"].(string)
	if !ok || space == "" {
		return s, fmt.Errorf("missing or invalid colorSpace field in color object")
	}
	s.ColorSpace = strings.ToLower(space)

	components, ok := raw["components"].([]any)
	if !ok {
		return s, fmt.Errorf("components must be an array")
	}
	if len(components) < 3 {
		return s, fmt.Errorf("invalid number of components: %d", len(components))
	}
	for i := range s.Components {
		s.Components[i] = component(components[i])
	}

	if alpha, ok := raw["alpha"].(float64); ok {
		s.Alpha = math.Max(0, math.Min(1, alpha))
	}
	if hex, ok := raw["hex"].(string); ok {
		s.Hex = hex
	}
	return s, nil
}

// component reads a number; the "none" keyword is zero
func component(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

// ToHex converts the color to "#rrggbb", or "#rrggbbaa" when translucent.
// A hex field, when present, wins over the components.
func (s Structured) ToHex() (string, error) {
	if s.Hex != "" && s.Alpha >= 1 {
		return strings.ToLower(s.Hex), nil
	}

	c, err := s.srgb()
	if err != nil {
		return "", err
	}
	r, g, b := c.Clamped().RGB255()
	if s.Alpha >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, uint8(math.Round(s.Alpha*255))), nil
}

func (s Structured) srgb() (colorful.Color, error) {
	c0, c1, c2 := s.Components[0], s.Components[1], s.Components[2]
	switch s.ColorSpace {
	case "srgb":
		return colorful.Color{R: c0, G: c1, B: c2}, nil
	case "srgb-linear":
		return colorful.LinearRgb(c0, c1, c2), nil
	case "hsl":
		return colorful.Hsl(c0, c1/100, c2/100), nil
	case "hwb":
		return hwb(c0, c1/100, c2/100), nil
	case "lab":
		return colorful.Lab(c0/100, c1/100, c2/100), nil
	case "lch":
		return colorful.Hcl(c2, c1/100, c0/100), nil
	case "oklab":
		return colorful.OkLab(c0, c1, c2), nil
	case "oklch":
		return colorful.OkLch(c0, c1, c2), nil
	case "xyz-d65", "xyz":
		return colorful.Xyz(c0, c1, c2), nil
	}
	return colorful.Color{}, fmt.Errorf("can only convert sRGB-compatible colors to hex, got %s", s.ColorSpace)
}

// hwb mixes the pure hue with white and black
func hwb(h, w, b float64) colorful.Color {
	if w+b >= 1 {
		gray := w / (w + b)
		return colorful.Color{R: gray, G: gray, B: gray}
	}
	pure := colorful.Hsl(h, 1, 0.5)
	scale := 1 - w - b
	return colorful.Color{
		R: pure.R*scale + w,
		G: pure.G*scale + w,
		B: pure.B*scale + w,
	}
}

// ToHex converts a decoded structured token value in one step
func ToHex(raw map[string]any) (string, error) {
	s, err := FromRaw(raw)
	if err != nil {
		return "", err
	}
	return s.ToHex()
}
