// Package widget holds the snapshot of a node's identity taken at query
// time. The style engine only ever sees these value objects, never the live
// widget tree.
package widget

import (
	"fmt"
	"strings"

	"bennypowers.dev/tss/internal/collections"
)

// NodeID identifies a node for caching and animation purposes
type NodeID uint64

// PseudoClasses recognized by the selector dialect
var PseudoClasses = collections.NewSet("focus", "hover", "active", "disabled", "inline")

// Meta is the identity snapshot of one node: the only data selector
// matching needs.
type Meta struct {
	Type          string
	ID            string
	Classes       collections.Set[string]
	PseudoClasses collections.Set[string]
}

// NewMeta creates a snapshot with the given type, id and classes
func NewMeta(typeName, id string, classes ...string) Meta {
	return Meta{
		Type:          typeName,
		ID:            id,
		Classes:       collections.NewSet(classes...),
		PseudoClasses: collections.NewSet[string](),
	}
}

// WithPseudo returns a copy with the given pseudo-classes added
func (m Meta) WithPseudo(pseudo ...string) Meta {
	c := m.clone()
	c.PseudoClasses.Add(pseudo...)
	return c
}

// WithClasses returns a copy with the given classes added
func (m Meta) WithClasses(classes ...string) Meta {
	c := m.clone()
	c.Classes.Add(classes...)
	return c
}

// WithoutClasses returns a copy with the given classes removed
func (m Meta) WithoutClasses(classes ...string) Meta {
	c := m.clone()
	c.Classes.Remove(classes...)
	return c
}

// HasClass reports whether the node carries class
func (m Meta) HasClass(class string) bool {
	return m.Classes != nil && m.Classes.Has(class)
}

// HasPseudo reports whether the node is currently in pseudo-class state
func (m Meta) HasPseudo(pseudo string) bool {
	return m.PseudoClasses != nil && m.PseudoClasses.Has(pseudo)
}

func (m Meta) clone() Meta {
	c := m
	if m.Classes != nil {
		c.Classes = m.Classes.Clone()
	} else {
		c.Classes = collections.NewSet[string]()
	}
	if m.PseudoClasses != nil {
		c.PseudoClasses = m.PseudoClasses.Clone()
	} else {
		c.PseudoClasses = collections.NewSet[string]()
	}
	return c
}

// String renders the snapshot in compound selector syntax, with classes and
// pseudo-classes sorted
func (m Meta) String() string {
	var b strings.Builder
	b.WriteString(m.Type)
	if m.ID != "" {
		b.WriteString("#" + m.ID)
	}
	if m.Classes != nil {
		for _, c := range collections.Sorted(m.Classes) {
			b.WriteString("." + c)
		}
	}
	if m.PseudoClasses != nil {
		for _, p := range collections.Sorted(m.PseudoClasses) {
			b.WriteString(":" + p)
		}
	}
	return b.String()
}

// ParseMeta builds a snapshot from compound selector syntax, for example
// "Button#ok.primary:focus". It is meant for tools and tests.
func ParseMeta(text string) (Meta, error) {
	text = strings.TrimSpace(text)
	m := NewMeta("", "")
	if text == "" {
		return m, fmt.Errorf("empty node description")
	}

	i := 0
	readName := func() string {
		start := i
		for i < len(text) && isNameByte(text[i]) {
			i++
		}
		return text[start:i]
	}

	m.Type = readName()
	for i < len(text) {
		marker := text[i]
		i++
		name := readName()
		if name == "" {
			return m, fmt.Errorf("expected a name after '%c' in %q", marker, text)
		}
		switch marker {
		case '#':
			m.ID = name
		case '.':
			m.Classes.Add(name)
		case ':':
			if !PseudoClasses.Has(name) {
				return m, fmt.Errorf("unknown pseudo-class ':%s'", name)
			}
			m.PseudoClasses.Add(name)
		default:
			return m, fmt.Errorf("unexpected '%c' in %q", marker, text)
		}
	}
	if m.Type == "" {
		return m, fmt.Errorf("node description %q has no type name", text)
	}
	return m, nil
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
