// Package variables extracts "$name: value;" definitions from a token
// stream and substitutes "$name" references inside property values.
//
// Substitution happens once per stylesheet build, never per node. The
// tokens handed back keep their original positions so later parse errors
// still point into the source as written.
package variables

import (
	"maps"
	"strings"

	"bennypowers.dev/tss/internal/log"
	"bennypowers.dev/tss/internal/styleerr"
	"bennypowers.dev/tss/internal/tokenizer"
)

// Reference is one "$name" occurrence inside a value
type Reference struct {
	Name   string
	Line   int
	Column int
}

// Definition is one variable definition extracted from the source
type Definition struct {
	Name   string
	Line   int
	Column int
	// value holds the PropertyValue tokens after the colon
	value []tokenizer.Token
}

// Value returns the unsubstituted value text
func (d Definition) Value() string {
	return strings.TrimSpace(tokenizer.Join(d.value))
}

// References returns every "$name" the value refers to, in order
func (d Definition) References() []Reference {
	var refs []Reference
	for _, tok := range d.value {
		refs = append(refs, References(tok)...)
	}
	return refs
}

// Result is the outcome of resolving one stylesheet source
type Result struct {
	// Tokens are the source tokens without definitions, with every
	// PropertyValue substituted
	Tokens []tokenizer.Token
	// Variables is the final variable set: the base set overlaid with the
	// definitions of this source
	Variables map[string]string
	// Definitions in source order, redefinitions included
	Definitions []Definition
	// Errors are malformed definitions. They are skipped, like malformed
	// rules.
	Errors []error
}

// Text returns the substituted source
func (r *Result) Text() string {
	return tokenizer.Join(r.Tokens)
}

// Resolve walks tokens in source order. Each definition is resolved against
// base and the definitions before it, and each property value is substituted
// with the variables in force at its position. Names in base and in the
// result carry no "$" prefix.
//
// An undefined reference or a reference cycle fails the whole source.
func Resolve(source string, tokens []tokenizer.Token, base map[string]string) (*Result, error) {
	result := &Result{}
	result.Definitions, result.Errors = Extract(source, tokens)

	var graph *DependencyGraph
	resolved := maps.Clone(base)
	if resolved == nil {
		resolved = make(map[string]string, len(result.Definitions))
	}
	seen := make(map[string]Definition, len(result.Definitions))
	next := 0

	result.Tokens = make([]tokenizer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Definition {
			// a definition is stored once its name token is reached
			if tok.Kind != tokenizer.VariableName || next >= len(result.Definitions) {
				continue
			}
			def := result.Definitions[next]
			if def.Line != tok.Line || def.Column != tok.Column {
				// malformed definition, already reported
				continue
			}
			next++

			var b strings.Builder
			for _, vt := range def.value {
				text, err := substitute(source, vt, resolved)
				if err != nil {
					if graph == nil {
						graph = BuildDependencyGraph(result.Definitions)
					}
					if cycle := graph.CycleFrom(def.Name); cycle != nil {
						return nil, styleerr.NewCircularReferenceError(source, cycle)
					}
					return nil, err
				}
				b.WriteString(text)
			}
			if prev, ok := seen[def.Name]; ok {
				log.Warn("%s:%d:%d: $%s redefined, replacing the definition at %d:%d",
					sourceName(source), def.Line, def.Column, def.Name, prev.Line, prev.Column)
			}
			seen[def.Name] = def
			resolved[def.Name] = strings.TrimSpace(b.String())
			log.Debug("$%s = %s", def.Name, resolved[def.Name])
			continue
		}
		if tok.Kind == tokenizer.PropertyValue {
			text, err := substitute(source, tok, resolved)
			if err != nil {
				return nil, err
			}
			tok.Text = text
		}
		result.Tokens = append(result.Tokens, tok)
	}
	result.Variables = resolved

	return result, nil
}

// Substitute tokenizes text, resolves it against base and returns the
// substituted source together with the final variable set
func Substitute(source, text string, base map[string]string) (string, map[string]string, error) {
	result, err := Resolve(source, tokenizer.Tokenize(text), base)
	if err != nil {
		return "", nil, err
	}
	return result.Text(), result.Variables, nil
}

// Extract groups the definition tokens into Definitions, in source order.
// Malformed definitions are returned as errors instead.
func Extract(source string, tokens []tokenizer.Token) ([]Definition, []error) {
	var defs []Definition
	var errs []error

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind != tokenizer.VariableName || !tok.Definition {
			continue
		}
		def := Definition{
			Name:   strings.TrimPrefix(tok.Text, "$"),
			Line:   tok.Line,
			Column: tok.Column,
		}
		sawColon := false
		for i+1 < len(tokens) && tokens[i+1].Definition && tokens[i+1].Kind != tokenizer.VariableName {
			i++
			switch tokens[i].Kind {
			case tokenizer.Colon:
				sawColon = true
			case tokenizer.PropertyValue:
				def.value = append(def.value, tokens[i])
			}
		}
		switch {
		case !sawColon:
			errs = append(errs, styleerr.NewParseError(source, tok.Line, tok.Column, "expected ':' after variable $%s", def.Name))
		case def.Value() == "":
			errs = append(errs, styleerr.NewParseError(source, tok.Line, tok.Column, "missing value for variable $%s", def.Name))
		default:
			defs = append(defs, def)
		}
	}

	return defs, errs
}

// References returns the "$name" references of a PropertyValue token.
// Quoted strings are skipped.
func References(tok tokenizer.Token) []Reference {
	var refs []Reference
	forEachReference(tok.Text, func(start, _ int, name string) {
		line, col := tokenizer.Advance(tok.Line, tok.Column, tok.Text[:start])
		refs = append(refs, Reference{Name: name, Line: line, Column: col})
	})
	return refs
}

func substitute(source string, tok tokenizer.Token, vars map[string]string) (string, error) {
	if !strings.Contains(tok.Text, "$") {
		return tok.Text, nil
	}

	var b strings.Builder
	var err error
	last := 0
	forEachReference(tok.Text, func(start, end int, name string) {
		if err != nil {
			return
		}
		value, ok := vars[name]
		if !ok {
			line, col := tokenizer.Advance(tok.Line, tok.Column, tok.Text[:start])
			err = styleerr.NewUndefinedVariableError(source, name, line, col)
			return
		}
		b.WriteString(tok.Text[last:start])
		b.WriteString(value)
		last = end
	})
	if err != nil {
		return "", err
	}
	b.WriteString(tok.Text[last:])
	return b.String(), nil
}

// forEachReference calls fn with the byte range of every "$name" in text
// that is outside a quoted string. A "$" not followed by a name start, as
// in "$5", is literal text.
func forEachReference(text string, fn func(start, end int, name string)) {
	for i := 0; i < len(text); {
		switch c := text[i]; {
		case c == '"' || c == '\'':
			i = skipQuoted(text, i)
		case c == '$' && i+1 < len(text) && tokenizer.IsNameStart(text[i+1]):
			end := i + 2
			for end < len(text) && tokenizer.IsNameByte(text[end]) {
				end++
			}
			fn(i, end, text[i+1:end])
			i = end
		default:
			i++
		}
	}
}

func skipQuoted(text string, start int) int {
	quote := text[start]
	i := start + 1
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		i++
	}
	return len(text)
}

func sourceName(source string) string {
	if source == "" {
		return "<inline>"
	}
	return source
}
