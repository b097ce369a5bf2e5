package selector

import (
	"fmt"
	"strings"

	"bennypowers.dev/tss/internal/widget"
)

// SyntaxError describes a selector that could not be parsed
type SyntaxError struct {
	// Offset is the byte offset of the problem in the parsed text
	Offset int
	Msg    string
	// Unsupported marks valid CSS that the dialect rejects, such as
	// sibling combinators
	Unsupported bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

func syntaxErrorf(offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func unsupportedf(offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...), Unsupported: true}
}

// ParseGroup parses a comma-separated selector group
func ParseGroup(text string) ([]Selector, error) {
	var group []Selector
	start := 0
	for start <= len(text) {
		end := strings.IndexByte(text[start:], ',')
		if end < 0 {
			end = len(text)
		} else {
			end += start
		}
		sel, err := parseAt(text[start:end], start)
		if err != nil {
			return nil, err
		}
		group = append(group, sel)
		start = end + 1
	}
	return group, nil
}

// Parse parses a single selector
func Parse(text string) (Selector, error) {
	if i := strings.IndexByte(text, ','); i >= 0 {
		return Selector{}, syntaxErrorf(i, "expected a single selector, found a group")
	}
	return parseAt(text, 0)
}

// MustParse is like Parse but panics on error. It is meant for tests and
// static defaults.
func MustParse(text string) Selector {
	sel, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("selector.MustParse(%q): %v", text, err))
	}
	return sel
}

type parser struct {
	text string
	pos  int
	base int
}

func parseAt(text string, base int) (Selector, error) {
	p := &parser{text: text, base: base}
	sel, err := p.parse()
	if err != nil {
		return Selector{}, err
	}
	return sel, nil
}

func (p *parser) offset() int {
	return p.base + p.pos
}

func (p *parser) skipSpace() bool {
	skipped := false
	for p.pos < len(p.text) && isSpace(p.text[p.pos]) {
		p.pos++
		skipped = true
	}
	return skipped
}

func (p *parser) parse() (Selector, error) {
	var sel Selector
	p.skipSpace()
	if p.pos >= len(p.text) {
		return sel, syntaxErrorf(p.offset(), "empty selector")
	}

	for {
		part, err := p.parseCompound()
		if err != nil {
			return Selector{}, err
		}
		sel.Parts = append(sel.Parts, part)

		sawSpace := p.skipSpace()
		if p.pos >= len(p.text) {
			return sel, nil
		}

		switch c := p.text[p.pos]; c {
		case '>':
			p.pos++
			p.skipSpace()
			if p.pos >= len(p.text) {
				return Selector{}, syntaxErrorf(p.offset(), "expected a selector after '>'")
			}
			sel.Combinators = append(sel.Combinators, Child)
		case '+', '~':
			return Selector{}, unsupportedf(p.offset(), "sibling combinator '%c' is not supported", c)
		default:
			if !sawSpace {
				return Selector{}, syntaxErrorf(p.offset(), "unexpected '%c'", c)
			}
			sel.Combinators = append(sel.Combinators, Descendant)
		}
	}
}

func (p *parser) parseCompound() (Compound, error) {
	var c Compound
	start := p.pos

	switch {
	case p.pos < len(p.text) && p.text[p.pos] == '*':
		c.Universal = true
		p.pos++
	case p.pos < len(p.text) && isNameStart(p.text[p.pos]):
		c.Type = p.readName()
	}

	for p.pos < len(p.text) {
		marker := p.text[p.pos]
		switch marker {
		case '#', '.', ':':
		case '[':
			return c, unsupportedf(p.offset(), "attribute selectors are not supported")
		case '&':
			return c, unsupportedf(p.offset(), "nesting selectors are not supported")
		default:
			if p.pos == start {
				return c, syntaxErrorf(p.offset(), "unexpected '%c'", marker)
			}
			return c, nil
		}

		at := p.offset()
		p.pos++
		if marker == ':' && p.pos < len(p.text) && p.text[p.pos] == ':' {
			return c, unsupportedf(at, "pseudo-elements are not supported")
		}
		name := p.readName()
		if name == "" {
			return c, syntaxErrorf(p.offset(), "expected a name after '%c'", marker)
		}
		switch marker {
		case '#':
			if c.ID != "" {
				return c, syntaxErrorf(at, "compound selector has two ids")
			}
			c.ID = name
		case '.':
			c.Classes = append(c.Classes, name)
		case ':':
			if !widget.PseudoClasses.Has(name) {
				return c, unsupportedf(at, "unknown pseudo-class ':%s'", name)
			}
			if p.pos < len(p.text) && p.text[p.pos] == '(' {
				return c, unsupportedf(at, "functional pseudo-classes are not supported")
			}
			c.PseudoClasses = append(c.PseudoClasses, name)
		}
	}

	return c, nil
}

func (p *parser) readName() string {
	start := p.pos
	for p.pos < len(p.text) && isNameByte(p.text[p.pos]) {
		p.pos++
	}
	return p.text[start:p.pos]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameStart(c byte) bool {
	return c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isNameByte(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
