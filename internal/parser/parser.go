// Package parser turns a variable-resolved token stream into rule sets.
//
// A malformed rule never stops the parse. Its errors are collected and the
// rule is dropped; every other rule still loads.
package parser

import (
	"errors"
	"strings"

	"bennypowers.dev/tss/internal/log"
	"bennypowers.dev/tss/internal/selector"
	"bennypowers.dev/tss/internal/styleerr"
	"bennypowers.dev/tss/internal/stylesheet"
	"bennypowers.dev/tss/internal/tokenizer"
	"bennypowers.dev/tss/internal/values"
)

// Options describes where the tokens came from
type Options struct {
	// Source names the stylesheet in errors, e.g. a file path
	Source string
	Origin stylesheet.Origin
	// FirstOrder is the Order given to the first rule; rules are numbered
	// consecutively from there
	FirstOrder int
}

// Result holds the rules of one source
type Result struct {
	Rules   []*stylesheet.RuleSet
	AtRules []stylesheet.AtRule
	// Errors are ParseErrors and UnsupportedSelectorErrors for the rules
	// that were dropped
	Errors []error
}

// Err returns the collected errors as a ParseErrors, or nil
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return &styleerr.ParseErrors{Errors: r.Errors}
}

type parser struct {
	opts   Options
	tokens []tokenizer.Token
	pos    int
	result *Result
}

// Parse parses tokens into rules. Variable definition tokens are ignored;
// property values are expected to be substituted already.
func Parse(tokens []tokenizer.Token, opts Options) *Result {
	p := &parser{opts: opts, result: &Result{}}
	for _, tok := range tokens {
		if !tok.Definition {
			p.tokens = append(p.tokens, tok)
		}
	}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		switch tok.Kind {
		case tokenizer.Whitespace, tokenizer.Comment:
			p.pos++
		case tokenizer.AtRule:
			p.parseAtRule()
		case tokenizer.LBrace:
			p.errorf(tok, "missing selector before '{'")
			p.pos++
			p.skipBlock()
		case tokenizer.RBrace:
			p.errorf(tok, "unexpected '}'")
			p.pos++
		case tokenizer.Semicolon:
			p.errorf(tok, "unexpected ';'")
			p.pos++
		default:
			p.parseRule()
		}
	}

	log.Debug("parsed %d rules from %s (%d errors)", len(p.result.Rules), sourceName(opts.Source), len(p.result.Errors))
	return p.result
}

// ParseString tokenizes and parses text that contains no variables
func ParseString(text string, opts Options) *Result {
	return Parse(tokenizer.Tokenize(text), opts)
}

func (p *parser) errorf(at tokenizer.Token, format string, args ...any) {
	p.result.Errors = append(p.result.Errors,
		styleerr.NewParseError(p.opts.Source, at.Line, at.Column, format, args...))
}

func (p *parser) peek() (tokenizer.Token, bool) {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos], true
	}
	return tokenizer.Token{}, false
}

// skipTrivia advances past whitespace and comments
func (p *parser) skipTrivia() {
	for p.pos < len(p.tokens) {
		switch p.tokens[p.pos].Kind {
		case tokenizer.Whitespace, tokenizer.Comment:
			p.pos++
		default:
			return
		}
	}
}

// skipBlock advances past the block whose '{' was just consumed
func (p *parser) skipBlock() {
	depth := 1
	for p.pos < len(p.tokens) && depth > 0 {
		switch p.tokens[p.pos].Kind {
		case tokenizer.LBrace:
			depth++
		case tokenizer.RBrace:
			depth--
		}
		p.pos++
	}
}

func (p *parser) parseRule() {
	first := p.tokens[p.pos]

	// the prelude runs up to '{'; comments inside it are dropped
	var prelude strings.Builder
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.Kind == tokenizer.LBrace || tok.Kind == tokenizer.RBrace || tok.Kind == tokenizer.Semicolon {
			break
		}
		if tok.Kind != tokenizer.Comment {
			prelude.WriteString(tok.Text)
		}
		p.pos++
	}
	selectorText := strings.TrimSpace(prelude.String())

	tok, ok := p.peek()
	if !ok || tok.Kind != tokenizer.LBrace {
		p.errorf(first, "expected '{' after %q", selectorText)
		if ok {
			p.pos++
		}
		return
	}
	open := tok
	p.pos++

	var ruleErrs []error
	selectors, err := selector.ParseGroup(selectorText)
	if err != nil {
		ruleErrs = append(ruleErrs, p.selectorError(first, selectorText, err))
	}

	decls, declErrs := p.parseDeclarations(open)
	ruleErrs = append(ruleErrs, declErrs...)

	if len(ruleErrs) > 0 {
		p.result.Errors = append(p.result.Errors, ruleErrs...)
		log.Debug("%s:%d:%d: dropping rule %q", sourceName(p.opts.Source), first.Line, first.Column, selectorText)
		return
	}

	p.result.Rules = append(p.result.Rules, &stylesheet.RuleSet{
		Selectors:    selectors,
		SelectorText: selectorText,
		Declarations: decls,
		Origin:       p.opts.Origin,
		Order:        p.opts.FirstOrder + len(p.result.Rules),
		Source:       p.opts.Source,
		Line:         first.Line,
		Column:       first.Column,
	})
}

func (p *parser) selectorError(at tokenizer.Token, text string, err error) error {
	var syntax *selector.SyntaxError
	if !errors.As(err, &syntax) {
		return styleerr.NewParseError(p.opts.Source, at.Line, at.Column, "invalid selector %q: %v", text, err)
	}
	offset := min(syntax.Offset, len(text))
	line, col := tokenizer.Advance(at.Line, at.Column, text[:offset])
	if syntax.Unsupported {
		return styleerr.NewUnsupportedSelectorError(p.opts.Source, line, col, text, syntax.Msg)
	}
	return styleerr.NewParseError(p.opts.Source, line, col, "invalid selector %q: %s", text, syntax.Msg)
}

// parseDeclarations consumes a declaration block up to and including its
// closing '}'. A block still open at the end of input is an error reported
// at its '{'.
func (p *parser) parseDeclarations(open tokenizer.Token) ([]stylesheet.Declaration, []error) {
	var decls []stylesheet.Declaration
	var errs []error
	fail := func(at tokenizer.Token, format string, args ...any) {
		errs = append(errs, styleerr.NewParseError(p.opts.Source, at.Line, at.Column, format, args...))
	}

	for {
		p.skipTrivia()
		tok, ok := p.peek()
		if !ok {
			fail(open, "unexpected end of input, expected '}'")
			return decls, errs
		}
		p.pos++

		switch tok.Kind {
		case tokenizer.RBrace:
			return decls, errs
		case tokenizer.Semicolon:
			continue
		case tokenizer.LBrace:
			fail(tok, "nested blocks are not supported")
			p.skipBlock()
			continue
		case tokenizer.PropertyName:
		default:
			fail(tok, "expected a property name, found %q", tok.Text)
			p.skipDeclaration()
			continue
		}

		name := tok
		p.skipTrivia()
		if colon, ok := p.peek(); !ok || colon.Kind != tokenizer.Colon {
			fail(name, "expected ':' after '%s'", name.Text)
			p.skipDeclaration()
			continue
		}
		p.pos++

		var text strings.Builder
	value:
		for p.pos < len(p.tokens) {
			switch t := p.tokens[p.pos]; t.Kind {
			case tokenizer.PropertyValue:
				text.WriteString(t.Text)
			case tokenizer.Whitespace, tokenizer.Comment:
			default:
				break value
			}
			p.pos++
		}

		raw, important := splitImportant(text.String())
		assignments, err := values.Expand(name.Text, raw)
		if err != nil {
			fail(name, "%v", err)
			continue
		}
		for _, a := range assignments {
			decls = append(decls, stylesheet.Declaration{
				Property:  a.Property,
				Value:     a.Value,
				Important: important,
				Line:      name.Line,
				Column:    name.Column,
			})
		}
	}
}

// skipDeclaration advances to the next ';' or to the closing '}'
func (p *parser) skipDeclaration() {
	for p.pos < len(p.tokens) {
		switch p.tokens[p.pos].Kind {
		case tokenizer.Semicolon:
			p.pos++
			return
		case tokenizer.RBrace:
			return
		case tokenizer.LBrace:
			p.pos++
			p.skipBlock()
			continue
		}
		p.pos++
	}
}

func (p *parser) parseAtRule() {
	header := p.tokens[p.pos]
	p.pos++

	name, prelude, _ := strings.Cut(strings.TrimPrefix(header.Text, "@"), " ")
	at := stylesheet.AtRule{
		Name:    strings.TrimSpace(name),
		Prelude: strings.TrimSpace(prelude),
		Source:  p.opts.Source,
		Line:    header.Line,
		Column:  header.Column,
	}
	if at.Name == "" {
		p.errorf(header, "missing at-rule name")
	}

	p.skipTrivia()
	tok, ok := p.peek()
	switch {
	case ok && tok.Kind == tokenizer.LBrace:
		p.pos++
		start := p.pos
		p.skipBlock()
		end := p.pos
		if end > start && p.tokens[end-1].Kind == tokenizer.RBrace {
			end--
		}
		at.Block = true
		at.Body = strings.TrimSpace(tokenizer.Join(p.tokens[start:end]))
	case ok && tok.Kind == tokenizer.Semicolon:
		p.pos++
	}

	if at.Name != "" {
		p.result.AtRules = append(p.result.AtRules, at)
	}
}

// splitImportant strips a trailing "!important"
func splitImportant(text string) (string, bool) {
	text = strings.TrimSpace(text)
	i := strings.LastIndexByte(text, '!')
	if i < 0 {
		return text, false
	}
	if strings.EqualFold(strings.TrimSpace(text[i+1:]), "important") {
		return strings.TrimSpace(text[:i]), true
	}
	return text, false
}

func sourceName(source string) string {
	if source == "" {
		return "<inline>"
	}
	return source
}
