package values

import (
	"fmt"
	"sort"
	"strings"
)

// Assignment is one property/value pair produced by parsing a declaration.
// Shorthands such as border expand into several assignments.
type Assignment struct {
	Property string
	Value    Value
}

type property struct {
	parse func(string) (Value, error)
	def   Value
}

func colorProperty(def Color) property {
	return property{
		parse: func(s string) (Value, error) { return ParseColor(s) },
		def:   def,
	}
}

func scalarProperty(def Scalar) property {
	return property{
		parse: func(s string) (Value, error) { return ParseScalar(s) },
		def:   def,
	}
}

func percentProperty() property {
	return property{
		parse: func(s string) (Value, error) { return ParsePercentage(s) },
		def:   Percent(100),
	}
}

func spacingProperty() property {
	return property{
		parse: func(s string) (Value, error) { return ParseSpacing(s) },
		def:   Spacing{},
	}
}

func edgeProperty() property {
	return property{
		parse: func(s string) (Value, error) { return ParseBorderEdge(s) },
		def:   NoBorder,
	}
}

func keywordProperty(allowed ...string) property {
	return property{
		parse: func(s string) (Value, error) { return parseKeyword(s, allowed...) },
		def:   Keyword(allowed[0]),
	}
}

// properties lists every property of the dialect with its default.
// The first keyword of an enumeration is its default.
var properties = map[string]property{
	"color":      colorProperty(Auto(0.87)),
	"background": colorProperty(Transparent),
	"tint":       colorProperty(Transparent),

	"text-style": {
		parse: func(s string) (Value, error) { return ParseFlags(s) },
		def:   Flags{},
	},
	"text-align":   keywordProperty("start", "left", "center", "right", "justify", "end"),
	"display":      keywordProperty("block", "none"),
	"visibility":   keywordProperty("visible", "hidden"),
	"layout":       keywordProperty("vertical", "horizontal", "grid"),
	"dock":         keywordProperty("none", "top", "right", "bottom", "left"),
	"overflow-x":   keywordProperty("hidden", "auto", "scroll"),
	"overflow-y":   keywordProperty("hidden", "auto", "scroll"),
	"opacity":      percentProperty(),
	"text-opacity": percentProperty(),

	"width":      scalarProperty(AutoScalar),
	"height":     scalarProperty(AutoScalar),
	"min-width":  scalarProperty(AutoScalar),
	"max-width":  scalarProperty(AutoScalar),
	"min-height": scalarProperty(AutoScalar),
	"max-height": scalarProperty(AutoScalar),

	"padding": spacingProperty(),
	"margin":  spacingProperty(),

	"border-top":     edgeProperty(),
	"border-right":   edgeProperty(),
	"border-bottom":  edgeProperty(),
	"border-left":    edgeProperty(),
	"outline-top":    edgeProperty(),
	"outline-right":  edgeProperty(),
	"outline-bottom": edgeProperty(),
	"outline-left":   edgeProperty(),
}

// transition validates its property names against the table above, so it
// is registered after the table exists.
func init() {
	properties["transition"] = property{
		parse: func(s string) (Value, error) { return ParseTransitions(s) },
		def:   Transitions{},
	}
}

var edgeShorthands = map[string][]string{
	"border":  {"border-top", "border-right", "border-bottom", "border-left"},
	"outline": {"outline-top", "outline-right", "outline-bottom", "outline-left"},
}

// Known reports whether name is a longhand property
func Known(name string) bool {
	_, ok := properties[name]
	return ok
}

// Names returns all longhand property names, sorted
func Names() []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the value a property has when no rule sets it.
// Unknown properties have no default and return nil.
func Default(name string) Value {
	if p, ok := properties[name]; ok {
		return p.def
	}
	return nil
}

// Expand parses the text of one declaration. Shorthands expand to their
// longhands; everything else yields a single assignment.
func Expand(name, text string) ([]Assignment, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("missing value for '%s'", name)
	}

	if longhands, ok := edgeShorthands[name]; ok {
		edge, err := ParseBorderEdge(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		result := make([]Assignment, len(longhands))
		for i, lh := range longhands {
			result[i] = Assignment{Property: lh, Value: edge}
		}
		return result, nil
	}

	p, ok := properties[name]
	if !ok {
		return nil, fmt.Errorf("unknown property '%s'", name)
	}
	v, err := p.parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return []Assignment{{Property: name, Value: v}}, nil
}
