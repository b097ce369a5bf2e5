package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// ColorMode distinguishes true colors from palette and deferred colors
type ColorMode int

const (
	// ModeRGB is a 24-bit color with an alpha channel
	ModeRGB ColorMode = iota
	// ModeANSI is an index into the terminal's own palette
	ModeANSI
	// ModeAuto is resolved at paint time to the contrast color of the
	// actual background; A carries the blend opacity
	ModeAuto
)

// Color is a color value.
// The zero value is fully transparent black.
type Color struct {
	R, G, B uint8
	A       float64
	Mode    ColorMode
	Index   uint8
}

var ansiNames = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright_black", "bright_red", "bright_green", "bright_yellow",
	"bright_blue", "bright_magenta", "bright_cyan", "bright_white",
}

// approximate xterm defaults, used when an ANSI color has to be blended
var ansiRGB = [16][3]uint8{
	{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
	{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
	{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

var (
	White       = RGB(255, 255, 255)
	Black       = RGB(0, 0, 0)
	Transparent = Color{}
)

// RGB returns an opaque true color
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a true color with the given alpha in [0,1]
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: clamp01(a)}
}

// ANSI returns a palette color. Indices above 15 are clamped.
func ANSI(index uint8) Color {
	if index > 15 {
		index = 15
	}
	rgb := ansiRGB[index]
	return Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 1, Mode: ModeANSI, Index: index}
}

// Auto returns a deferred contrast color applied with the given opacity
func Auto(alpha float64) Color {
	return Color{A: clamp01(alpha), Mode: ModeAuto}
}

func (c Color) Kind() Kind { return KindColor }

// IsAuto reports whether the color is resolved at paint time
func (c Color) IsAuto() bool { return c.Mode == ModeAuto }

func (c Color) String() string {
	switch c.Mode {
	case ModeANSI:
		return "ansi_" + ansiNames[c.Index]
	case ModeAuto:
		if c.A >= 1 {
			return "auto"
		}
		return fmt.Sprintf("auto %s%%", formatFloat(c.A*100))
	}
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, uint8(math.Round(c.A*255)))
}

// Interpolable is true only between two true colors
func (c Color) Interpolable(to Value) bool {
	other, ok := to.(Color)
	return ok && c.Mode == ModeRGB && other.Mode == ModeRGB
}

// Blend mixes linearly in RGB space, alpha included.
// Palette and auto colors snap at the midpoint.
func (c Color) Blend(to Value, factor float64) Value {
	if factor <= 0 {
		return c
	}
	if factor >= 1 {
		return to
	}
	if !c.Interpolable(to) {
		return Snap(c, to, factor)
	}
	return c.Mix(to.(Color), factor)
}

// Mix is the typed form of Blend for two true colors
func (c Color) Mix(to Color, factor float64) Color {
	if factor <= 0 {
		return c
	}
	if factor >= 1 {
		return to
	}
	return Color{
		R: channel(lerp(float64(c.R), float64(to.R), factor)),
		G: channel(lerp(float64(c.G), float64(to.G), factor)),
		B: channel(lerp(float64(c.B), float64(to.B), factor)),
		A: clamp01(lerp(c.A, to.A, factor)),
	}
}

// Over composites the color onto an opaque background using its alpha
func (c Color) Over(background Color) Color {
	if c.Mode != ModeRGB || c.A >= 1 {
		return c
	}
	bg := background
	bg.A = 1
	bg.Mode = ModeRGB
	mixed := bg.Mix(Color{R: c.R, G: c.G, B: c.B, A: 1}, c.A)
	mixed.A = 1
	return mixed
}

// WithAlpha returns a copy with a new alpha channel
func (c Color) WithAlpha(alpha float64) Color {
	c.A = clamp01(alpha)
	return c
}

// Brightness returns the perceived brightness in [0,1]
func (c Color) Brightness() float64 {
	return (299*float64(c.R) + 587*float64(c.G) + 114*float64(c.B)) / (1000 * 255)
}

// ContrastText returns white or black, whichever reads better on c, with
// the given alpha
func (c Color) ContrastText(alpha float64) Color {
	if c.Brightness() < 0.5 {
		return White.WithAlpha(alpha)
	}
	return Black.WithAlpha(alpha)
}

// Lighten shifts the Lab lightness by amount (negative darkens).
// Alpha is preserved.
func (c Color) Lighten(amount float64) Color {
	l, a, b := c.colorful().Lab()
	shifted := colorful.Lab(l+amount, a, b).Clamped()
	r, g, bl := shifted.RGB255()
	return Color{R: r, G: g, B: bl, A: c.A}
}

// Darken is Lighten with a negated amount
func (c Color) Darken(amount float64) Color {
	return c.Lighten(-amount)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseColor parses a color in any supported notation: hex (#rgb, #rgba,
// #rrggbb, #rrggbbaa), rgb()/rgba(), hsl()/hsla(), named colors, ansi_*
// palette names and auto with an optional opacity. A trailing percentage
// after a concrete color ("red 50%") scales its alpha.
func ParseColor(text string) (Color, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return Color{}, fmt.Errorf("empty color")
	}

	body, alpha, err := splitTrailingPercent(text)
	if err != nil {
		return Color{}, err
	}

	if body == "auto" {
		return Auto(alpha), nil
	}

	if name, ok := strings.CutPrefix(body, "ansi_"); ok {
		for i, n := range ansiNames {
			if n == name {
				return ANSI(uint8(i)), nil
			}
		}
		return Color{}, fmt.Errorf("unknown ANSI color '%s'", body)
	}

	parsed, err := csscolorparser.Parse(body)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color '%s'", body)
	}
	return RGBA(
		channel(parsed.R*255),
		channel(parsed.G*255),
		channel(parsed.B*255),
		parsed.A*alpha,
	), nil
}

// splitTrailingPercent separates "<color> N%" into the color text and the
// opacity factor. Percentages inside function notation are left alone.
func splitTrailingPercent(text string) (string, float64, error) {
	idx := strings.LastIndexByte(text, ' ')
	if idx < 0 || !strings.HasSuffix(text, "%") || strings.HasSuffix(text, ")") {
		return text, 1, nil
	}
	head := strings.TrimSpace(text[:idx])
	if strings.Count(head, "(") != strings.Count(head, ")") {
		return text, 1, nil
	}
	pct, ok := parseFinite(strings.TrimSuffix(text[idx+1:], "%"))
	if !ok {
		return "", 0, fmt.Errorf("invalid opacity '%s'", text[idx+1:])
	}
	return head, clamp01(pct / 100), nil
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
