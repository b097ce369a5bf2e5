// Package paint converts computed styles into the colors and attributes the
// terminal backend draws with. It is stateless and only handles the color
// channel; box model properties belong to layout.
package paint

import (
	"github.com/gdamore/tcell/v2"

	"bennypowers.dev/tss/internal/stylesheet"
	"bennypowers.dev/tss/internal/values"
)

// Colors is the resolved, opaque color pair of one node
type Colors struct {
	Foreground values.Color
	Background values.Color
}

// Resolve composites the style's colors against the background the node is
// drawn over. Translucent backgrounds blend with parentBg, "auto" colors
// become the contrast color of what is underneath them, and opacity fades
// the whole node toward parentBg.
func Resolve(cs *stylesheet.ComputedStyle, parentBg values.Color) Colors {
	bg := cs.Color("background")
	if bg.IsAuto() {
		bg = parentBg.ContrastText(bg.A)
	}
	bg = bg.Over(parentBg)

	fg := cs.Color("color")
	if fg.IsAuto() {
		fg = bg.ContrastText(fg.A)
	}
	fg = fg.Over(bg)

	if tint := cs.Color("tint"); tint.Mode == values.ModeRGB && tint.A > 0 {
		opaque := tint.WithAlpha(1)
		bg = mix(bg, opaque, tint.A)
		fg = mix(fg, opaque, tint.A)
	}

	if textOpacity := cs.Scalar("text-opacity").Fraction(); textOpacity < 1 {
		fg = mix(bg, fg, textOpacity)
	}
	if opacity := cs.Scalar("opacity").Fraction(); opacity < 1 {
		bg = mix(parentBg, bg, opacity)
		fg = mix(parentBg, fg, opacity)
	}

	return Colors{Foreground: fg, Background: bg}
}

// mix blends true colors; palette colors cannot blend and snap instead
func mix(from, to values.Color, factor float64) values.Color {
	if from.Mode != values.ModeRGB || to.Mode != values.ModeRGB {
		return values.Snap(from, to, factor).(values.Color)
	}
	return from.WithAlpha(1).Mix(to.WithAlpha(1), factor)
}

// Color converts a resolved color to a backend color
func Color(c values.Color) tcell.Color {
	switch c.Mode {
	case values.ModeANSI:
		return tcell.PaletteColor(int(c.Index))
	case values.ModeAuto:
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Style converts a computed style to a backend style, drawn over parentBg
func Style(cs *stylesheet.ComputedStyle, parentBg values.Color) tcell.Style {
	colors := Resolve(cs, parentBg)
	flags := cs.Flags("text-style")

	st := tcell.StyleDefault.
		Foreground(Color(colors.Foreground)).
		Background(Color(colors.Background)).
		Bold(flags.Has("bold")).
		Dim(flags.Has("dim")).
		Italic(flags.Has("italic")).
		Reverse(flags.Has("reverse")).
		Blink(flags.Has("blink")).
		StrikeThrough(flags.Has("strike"))
	if flags.Has("underline") {
		st = st.Underline(true)
	}
	return st
}

// Visible reports whether the node is drawn at all
func Visible(cs *stylesheet.ComputedStyle) bool {
	return cs.Keyword("display") != "none" && cs.Keyword("visibility") != "hidden"
}
