// Package selector parses and matches the selector dialect: type, class,
// id and pseudo-class compounds joined by descendant or child combinators.
package selector

import (
	"fmt"
	"strings"

	"bennypowers.dev/tss/internal/widget"
)

// Combinator relates two adjacent compounds
type Combinator int

const (
	// Descendant is whitespace: the left compound matches any ancestor
	Descendant Combinator = iota
	// Child is '>': the left compound matches the immediate parent
	Child
)

func (c Combinator) String() string {
	if c == Child {
		return " > "
	}
	return " "
}

// Compound is a run of simple selectors that all apply to the same node
type Compound struct {
	// Type is empty when the compound has no type selector
	Type          string
	Universal     bool
	ID            string
	Classes       []string
	PseudoClasses []string
}

// Matches reports whether the node satisfies every part of the compound
func (c Compound) Matches(node widget.Meta) bool {
	if c.Type != "" && c.Type != node.Type {
		return false
	}
	if c.ID != "" && c.ID != node.ID {
		return false
	}
	for _, class := range c.Classes {
		if !node.HasClass(class) {
			return false
		}
	}
	for _, pseudo := range c.PseudoClasses {
		if !node.HasPseudo(pseudo) {
			return false
		}
	}
	return true
}

func (c Compound) String() string {
	var b strings.Builder
	switch {
	case c.Type != "":
		b.WriteString(c.Type)
	case c.Universal:
		b.WriteByte('*')
	}
	if c.ID != "" {
		b.WriteString("#" + c.ID)
	}
	for _, class := range c.Classes {
		b.WriteString("." + class)
	}
	for _, pseudo := range c.PseudoClasses {
		b.WriteString(":" + pseudo)
	}
	return b.String()
}

// Selector is a chain of compounds. Combinators[i] joins Parts[i] and
// Parts[i+1]; the rightmost part is the subject.
type Selector struct {
	Parts       []Compound
	Combinators []Combinator
}

// Subject returns the rightmost compound, the one the styled node must match
func (s Selector) Subject() Compound {
	return s.Parts[len(s.Parts)-1]
}

func (s Selector) String() string {
	var b strings.Builder
	for i, part := range s.Parts {
		if i > 0 {
			b.WriteString(s.Combinators[i-1].String())
		}
		b.WriteString(part.String())
	}
	return b.String()
}

// Specificity counts the simple selectors of a selector. Pseudo-classes
// count as classes; the universal selector counts as nothing.
type Specificity struct {
	IDs     int
	Classes int
	Types   int
}

// Less reports whether s ranks strictly below other
func (s Specificity) Less(other Specificity) bool {
	if s.IDs != other.IDs {
		return s.IDs < other.IDs
	}
	if s.Classes != other.Classes {
		return s.Classes < other.Classes
	}
	return s.Types < other.Types
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.IDs, s.Classes, s.Types)
}

// Specificity returns the specificity of the whole selector
func (s Selector) Specificity() Specificity {
	var spec Specificity
	for _, part := range s.Parts {
		if part.ID != "" {
			spec.IDs++
		}
		spec.Classes += len(part.Classes) + len(part.PseudoClasses)
		if part.Type != "" {
			spec.Types++
		}
	}
	return spec
}

// Matches reports whether the selector matches node given its ancestors,
// ordered from the root to the immediate parent.
//
// The subject is tested first so most rules are rejected without looking
// at the ancestors at all.
func (s Selector) Matches(node widget.Meta, ancestors []widget.Meta) bool {
	if len(s.Parts) == 0 {
		return false
	}
	last := len(s.Parts) - 1
	if !s.Parts[last].Matches(node) {
		return false
	}
	return s.matchFrom(last-1, ancestors, len(ancestors))
}

// matchFrom matches Parts[:i+1] against ancestors[:end], where Parts[i+1]
// matched the node just below ancestors[end-1]. Descendant combinators
// backtrack: if the nearest matching ancestor leads to a dead end, farther
// ones are tried.
func (s Selector) matchFrom(i int, ancestors []widget.Meta, end int) bool {
	if i < 0 {
		return true
	}
	if s.Combinators[i] == Child {
		if end == 0 {
			return false
		}
		return s.Parts[i].Matches(ancestors[end-1]) && s.matchFrom(i-1, ancestors, end-1)
	}
	for j := end - 1; j >= 0; j-- {
		if s.Parts[i].Matches(ancestors[j]) && s.matchFrom(i-1, ancestors, j) {
			return true
		}
	}
	return false
}

// IndexKey returns the key under which a stylesheet index files the
// selector: "#id", ".class" or the type name of the subject, in that order
// of preference. Selectors whose subject has none of these (a bare "*" or
// pseudo-class) return "" and must be checked against every node.
func (s Selector) IndexKey() string {
	subject := s.Subject()
	switch {
	case subject.ID != "":
		return "#" + subject.ID
	case len(subject.Classes) > 0:
		return "." + subject.Classes[0]
	case subject.Type != "":
		return subject.Type
	}
	return ""
}

// NodeKeys returns the index keys under which rules for node may be filed
func NodeKeys(node widget.Meta) []string {
	keys := make([]string, 0, 2+len(node.Classes))
	if node.Type != "" {
		keys = append(keys, node.Type)
	}
	if node.ID != "" {
		keys = append(keys, "#"+node.ID)
	}
	for class := range node.Classes {
		keys = append(keys, "."+class)
	}
	return keys
}
