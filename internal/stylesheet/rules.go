// Package stylesheet holds parsed rules and implements the cascade: for a
// node it collects every declaration of every matching rule and keeps, per
// property, the one with the highest specificity.
package stylesheet

import (
	"fmt"

	"bennypowers.dev/tss/internal/selector"
	"bennypowers.dev/tss/internal/values"
	"bennypowers.dev/tss/internal/widget"
)

// Origin tells built-in widget defaults from user stylesheets
type Origin int

const (
	OriginDefault Origin = iota
	OriginUser
)

func (o Origin) String() string {
	if o == OriginUser {
		return "user"
	}
	return "default"
}

// Declaration is one parsed property assignment
type Declaration struct {
	Property  string
	Value     values.Value
	Important bool
	Line      int
	Column    int
}

func (d Declaration) String() string {
	if d.Important {
		return fmt.Sprintf("%s: %s !important", d.Property, d.Value)
	}
	return fmt.Sprintf("%s: %s", d.Property, d.Value)
}

// RuleSet is a selector group with its declarations. It is immutable once
// parsed.
type RuleSet struct {
	Selectors    []selector.Selector
	SelectorText string
	Declarations []Declaration
	Origin       Origin
	// Order is the position of the rule across every source loaded into a
	// sheet; later rules have higher orders
	Order  int
	Source string
	Line   int
	Column int
}

// Match returns the specificity of the most specific selector of the
// group that matches node, and whether any did
func (r *RuleSet) Match(node widget.Meta, ancestors []widget.Meta) (selector.Specificity, bool) {
	var best selector.Specificity
	matched := false
	for _, sel := range r.Selectors {
		if !sel.Matches(node, ancestors) {
			continue
		}
		if spec := sel.Specificity(); !matched || best.Less(spec) {
			best = spec
		}
		matched = true
	}
	return best, matched
}

// AtRule is an at-rule kept verbatim, for example a @keyframes block
type AtRule struct {
	Name    string
	Prelude string
	// Body is the raw text between the braces; empty for statement
	// at-rules such as @import
	Body   string
	Block  bool
	Source string
	Line   int
	Column int
}

func (a AtRule) String() string {
	s := "@" + a.Name
	if a.Prelude != "" {
		s += " " + a.Prelude
	}
	return s
}

// Specificity ranks a declaration in the cascade. Fields are compared in
// order; the origin outranks everything so user rules always beat widget
// defaults.
type Specificity struct {
	User      bool
	Important bool
	Selector  selector.Specificity
	Order     int
}

// Less reports whether s ranks strictly below other
func (s Specificity) Less(other Specificity) bool {
	if s.User != other.User {
		return !s.User
	}
	if s.Important != other.Important {
		return !s.Important
	}
	if s.Selector != other.Selector {
		return s.Selector.Less(other.Selector)
	}
	return s.Order < other.Order
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d,%d,%d)",
		b2i(s.User), b2i(s.Important), s.Selector.IDs, s.Selector.Classes, s.Selector.Types, s.Order)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
