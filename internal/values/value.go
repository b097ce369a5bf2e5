// Package values implements the typed property values of the stylesheet
// dialect: colors, scalars, spacing, border edges, keywords, flag sets and
// transition lists.
//
// Every value is blendable. Variants that have a meaningful interpolation
// (RGB colors, scalars of the same unit, spacing) blend continuously; the
// rest switch from the start to the end value once the factor reaches 0.5.
package values

// Kind identifies the variant of a Value
type Kind int

const (
	KindColor Kind = iota
	KindScalar
	KindSpacing
	KindBorder
	KindKeyword
	KindFlags
	KindTransitions
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindScalar:
		return "scalar"
	case KindSpacing:
		return "spacing"
	case KindBorder:
		return "border"
	case KindKeyword:
		return "keyword"
	case KindFlags:
		return "flags"
	case KindTransitions:
		return "transitions"
	default:
		return "unknown"
	}
}

// Value is a parsed property value
type Value interface {
	Kind() Kind
	// String renders the value in stylesheet syntax
	String() string
	// Blend returns the value at factor between the receiver (0) and to (1)
	Blend(to Value, factor float64) Value
	// Interpolable reports whether blending towards to is continuous
	Interpolable(to Value) bool
}

// Snap implements the midpoint switch used by non-interpolable values
func Snap(from, to Value, factor float64) Value {
	if factor >= 0.5 {
		return to
	}
	return from
}

// Equal reports whether two values render identically
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind() == b.Kind() && a.String() == b.String()
}

func lerp(a, b, factor float64) float64 {
	return a + (b-a)*factor
}
