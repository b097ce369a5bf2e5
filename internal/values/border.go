package values

import (
	"fmt"
	"strings"
)

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "ascii": true, "blank": true,
	"round": true, "solid": true, "double": true, "dashed": true,
	"heavy": true, "inner": true, "outer": true, "thick": true,
	"hkey": true, "vkey": true, "tall": true, "wide": true, "panel": true,
}

// BorderEdge is one side of a border or outline: a line style and a color
type BorderEdge struct {
	Style string
	Color Color
}

// NoBorder is the edge used when nothing sets a border
var NoBorder = BorderEdge{Style: "none", Color: Transparent}

func (b BorderEdge) Kind() Kind { return KindBorder }

// Visible reports whether the edge draws anything
func (b BorderEdge) Visible() bool {
	return b.Style != "none" && b.Style != "hidden"
}

func (b BorderEdge) String() string {
	if !b.Visible() {
		return b.Style
	}
	return b.Style + " " + b.Color.String()
}

// Interpolable is true when both edges share a style and their colors blend
func (b BorderEdge) Interpolable(to Value) bool {
	other, ok := to.(BorderEdge)
	return ok && b.Style == other.Style && b.Color.Interpolable(other.Color)
}

func (b BorderEdge) Blend(to Value, factor float64) Value {
	if factor <= 0 {
		return b
	}
	if factor >= 1 {
		return to
	}
	if !b.Interpolable(to) {
		return Snap(b, to, factor)
	}
	other := to.(BorderEdge)
	return BorderEdge{Style: b.Style, Color: b.Color.Mix(other.Color, factor)}
}

// ParseBorderEdge parses "style [color]". A visible style without a color
// uses the default foreground placeholder "auto".
func ParseBorderEdge(text string) (BorderEdge, error) {
	text = strings.TrimSpace(text)
	style, colorText, _ := strings.Cut(text, " ")
	style = strings.ToLower(style)
	if !borderStyles[style] {
		return BorderEdge{}, fmt.Errorf("unknown border style '%s'", style)
	}
	edge := BorderEdge{Style: style, Color: Transparent}
	colorText = strings.TrimSpace(colorText)
	if colorText == "" {
		if edge.Visible() {
			edge.Color = Auto(1)
		}
		return edge, nil
	}
	c, err := ParseColor(colorText)
	if err != nil {
		return BorderEdge{}, err
	}
	edge.Color = c
	return edge, nil
}
