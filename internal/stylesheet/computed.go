package stylesheet

import (
	"maps"
	"slices"
	"strings"

	"bennypowers.dev/tss/internal/values"
)

// ComputedStyle is the resolved style of one node at one point in time.
// Properties no rule set fall back to their defaults. A ComputedStyle is
// never modified after construction; With returns a copy.
type ComputedStyle struct {
	props map[string]values.Value

	// AutoColor and AutoBackground mark "auto" colors whose final value
	// depends on the background the node is painted over
	AutoColor      bool
	AutoBackground bool
}

// NewComputedStyle wraps a resolved property map. The map is owned by the
// returned style.
func NewComputedStyle(props map[string]values.Value) *ComputedStyle {
	if props == nil {
		props = make(map[string]values.Value)
	}
	cs := &ComputedStyle{props: props}
	cs.AutoColor = cs.Color("color").IsAuto()
	cs.AutoBackground = cs.Color("background").IsAuto()
	return cs
}

// Lookup returns the value a rule set for name, if any
func (c *ComputedStyle) Lookup(name string) (values.Value, bool) {
	v, ok := c.props[name]
	return v, ok
}

// Get returns the value of name, falling back to the property default.
// Unknown properties return nil.
func (c *ComputedStyle) Get(name string) values.Value {
	if v, ok := c.props[name]; ok {
		return v
	}
	return values.Default(name)
}

// Properties returns the names of the properties set by rules, sorted
func (c *ComputedStyle) Properties() []string {
	return slices.Sorted(maps.Keys(c.props))
}

// Len returns the number of properties set by rules
func (c *ComputedStyle) Len() int {
	return len(c.props)
}

// Color returns a color property
func (c *ComputedStyle) Color(name string) values.Color {
	if v, ok := c.Get(name).(values.Color); ok {
		return v
	}
	return values.Transparent
}

// Scalar returns a dimension property
func (c *ComputedStyle) Scalar(name string) values.Scalar {
	if v, ok := c.Get(name).(values.Scalar); ok {
		return v
	}
	return values.AutoScalar
}

// Spacing returns padding or margin
func (c *ComputedStyle) Spacing(name string) values.Spacing {
	v, _ := c.Get(name).(values.Spacing)
	return v
}

// Border returns one border or outline edge
func (c *ComputedStyle) Border(name string) values.BorderEdge {
	if v, ok := c.Get(name).(values.BorderEdge); ok {
		return v
	}
	return values.NoBorder
}

// Keyword returns an enumerated property
func (c *ComputedStyle) Keyword(name string) values.Keyword {
	v, _ := c.Get(name).(values.Keyword)
	return v
}

// Flags returns a flag-set property such as text-style
func (c *ComputedStyle) Flags(name string) values.Flags {
	v, _ := c.Get(name).(values.Flags)
	return v
}

// Transitions returns the declared transitions
func (c *ComputedStyle) Transitions() values.Transitions {
	v, _ := c.Get("transition").(values.Transitions)
	return v
}

// With returns a copy with overrides applied on top
func (c *ComputedStyle) With(overrides map[string]values.Value) *ComputedStyle {
	if len(overrides) == 0 {
		return c
	}
	props := maps.Clone(c.props)
	maps.Copy(props, overrides)
	return NewComputedStyle(props)
}

// Equal reports whether both styles set the same properties to equal values
func (c *ComputedStyle) Equal(other *ComputedStyle) bool {
	if c == other {
		return true
	}
	if c == nil || other == nil || len(c.props) != len(other.props) {
		return false
	}
	for name, v := range c.props {
		if !values.Equal(v, other.props[name]) {
			return false
		}
	}
	return true
}

// Diff returns the properties whose effective value differs between the
// two styles, defaults included, sorted
func (c *ComputedStyle) Diff(other *ComputedStyle) []string {
	names := make(map[string]struct{}, len(c.props)+len(other.props))
	for name := range c.props {
		names[name] = struct{}{}
	}
	for name := range other.props {
		names[name] = struct{}{}
	}
	var changed []string
	for name := range names {
		if !values.Equal(c.Get(name), other.Get(name)) {
			changed = append(changed, name)
		}
	}
	slices.Sort(changed)
	return changed
}

func (c *ComputedStyle) String() string {
	var b strings.Builder
	for i, name := range c.Properties() {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(name + ": " + c.props[name].String() + ";")
	}
	return b.String()
}
