// Package tokenizer splits stylesheet source into position-tagged tokens.
//
// The tokenizer never fails: every byte of the input ends up in exactly one
// token, so concatenating the token texts reproduces the source. Structural
// problems (a stray brace, a missing colon) surface later in the parser.
//
// The token kind records where a `$name` reference may be substituted: only
// PropertyValue tokens are substitution targets. Comments, selectors,
// property names and at-rule headers keep `$` as inert text.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind is the syntactic role of a token
type Kind int

const (
	Whitespace Kind = iota
	Comment
	Selector
	LBrace
	RBrace
	PropertyName
	Colon
	PropertyValue
	Semicolon
	// AtRule is the header of an at-rule, e.g. "@keyframes pulse"
	AtRule
	// VariableName is the "$name" that opens a variable definition
	VariableName
)

var kindNames = [...]string{
	Whitespace:    "whitespace",
	Comment:       "comment",
	Selector:      "selector",
	LBrace:        "left brace",
	RBrace:        "right brace",
	PropertyName:  "property name",
	Colon:         "colon",
	PropertyValue: "property value",
	Semicolon:     "semicolon",
	AtRule:        "at-rule",
	VariableName:  "variable name",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one slice of the source
type Token struct {
	Kind Kind
	Text string
	// Offset is the byte offset of Text in the source
	Offset int
	// Line and Column are 1-based; Column counts runes
	Line   int
	Column int
	// Definition marks the tokens of a "$name: value;" variable
	// definition. They are extracted by the variable resolver and do not
	// reach the rule parser.
	Definition bool
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Kind, t.Text)
}

// End returns the line and column just past the token
func (t Token) End() (int, int) {
	return Advance(t.Line, t.Column, t.Text)
}

// Advance moves a 1-based line/column position over text
func Advance(line, column int, text string) (int, int) {
	for _, r := range text {
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// Join concatenates token texts
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

type scanner struct {
	src    string
	pos    int
	line   int
	column int
	tokens []Token

	// depth counts open declaration blocks; atDepth counts open at-rule
	// blocks. A '}' closes a declaration block first, so the closing brace
	// of "@keyframes x { 0% { ... } }" is never mistaken for the end of
	// the 0% block.
	depth   int
	atDepth int

	// definition is set while scanning a top-level "$name: value;"
	definition bool
}

// Tokenize splits source into tokens
func Tokenize(source string) []Token {
	s := &scanner{src: source, line: 1, column: 1}
	for s.pos < len(s.src) {
		switch {
		case s.definition:
			s.scanDefinition()
		case s.depth > 0:
			s.scanDeclarations()
		default:
			s.scanTopLevel()
		}
	}
	return s.tokens
}

func (s *scanner) emit(kind Kind, end int) {
	if end <= s.pos {
		return
	}
	text := s.src[s.pos:end]
	s.tokens = append(s.tokens, Token{
		Kind:       kind,
		Text:       text,
		Offset:     s.pos,
		Line:       s.line,
		Column:     s.column,
		Definition: s.definition,
	})
	s.line, s.column = Advance(s.line, s.column, text)
	s.pos = end
}

func (s *scanner) peek(offset int) byte {
	if s.pos+offset < len(s.src) {
		return s.src[s.pos+offset]
	}
	return 0
}

func (s *scanner) atComment() bool {
	return s.peek(0) == '/' && s.peek(1) == '*'
}

// scanTrivia emits whitespace or a comment at the cursor, reporting whether
// it did
func (s *scanner) scanTrivia() bool {
	if isSpace(s.peek(0)) {
		end := s.pos
		for end < len(s.src) && isSpace(s.src[end]) {
			end++
		}
		s.emit(Whitespace, end)
		return true
	}
	if s.atComment() {
		end := strings.Index(s.src[s.pos+2:], "*/")
		if end < 0 {
			s.emit(Comment, len(s.src))
		} else {
			s.emit(Comment, s.pos+2+end+2)
		}
		return true
	}
	return false
}

// scanTopLevel handles the top level and the inside of at-rule blocks
func (s *scanner) scanTopLevel() {
	if s.scanTrivia() {
		return
	}
	switch c := s.peek(0); {
	case c == '{':
		s.emit(LBrace, s.pos+1)
		s.depth++
	case c == '}':
		s.emit(RBrace, s.pos+1)
		if s.atDepth > 0 {
			s.atDepth--
		}
	case c == ';':
		s.emit(Semicolon, s.pos+1)
	case c == '@':
		s.scanAtRule()
	case c == '$' && s.atDepth == 0 && isNameStart(s.peek(1)):
		s.definition = true
		end := s.pos + 1
		for end < len(s.src) && isNameByte(s.src[end]) {
			end++
		}
		s.emit(VariableName, end)
	default:
		s.scanSelector()
	}
}

// scanAtRule emits the header and, when a block follows, opens it
func (s *scanner) scanAtRule() {
	end := s.pos + 1
	for end < len(s.src) {
		c := s.src[end]
		if c == '{' || c == ';' || c == '}' {
			break
		}
		if c == '/' && end+1 < len(s.src) && s.src[end+1] == '*' {
			break
		}
		end++
	}
	end = trimRightSpace(s.src, s.pos, end)
	s.emit(AtRule, end)
	for s.pos < len(s.src) && s.scanTrivia() {
	}
	switch s.peek(0) {
	case '{':
		s.emit(LBrace, s.pos+1)
		s.atDepth++
	case ';':
		s.emit(Semicolon, s.pos+1)
	}
}

// scanSelector emits everything up to the next '{', '}', ';' or comment.
// Trailing whitespace becomes its own token.
func (s *scanner) scanSelector() {
	end := s.pos
	for end < len(s.src) {
		c := s.src[end]
		if c == '{' || c == '}' || c == ';' {
			break
		}
		if c == '/' && end+1 < len(s.src) && s.src[end+1] == '*' {
			break
		}
		end++
	}
	if end == s.pos {
		// a lone '/' that does not open a comment
		end++
	}
	s.emit(Selector, trimRightSpace(s.src, s.pos, end))
}

// scanDeclarations handles the inside of a declaration block
func (s *scanner) scanDeclarations() {
	if s.scanTrivia() {
		return
	}
	switch c := s.peek(0); c {
	case '}':
		s.emit(RBrace, s.pos+1)
		s.depth--
	case '{':
		s.emit(LBrace, s.pos+1)
		s.depth++
	case ';':
		s.emit(Semicolon, s.pos+1)
	case ':':
		s.emit(Colon, s.pos+1)
		s.scanValue()
	default:
		end := s.pos
		for end < len(s.src) {
			c := s.src[end]
			if isSpace(c) || c == ':' || c == ';' || c == '{' || c == '}' {
				break
			}
			if c == '/' && end+1 < len(s.src) && s.src[end+1] == '*' {
				break
			}
			end++
		}
		if end == s.pos {
			end++
		}
		s.emit(PropertyName, end)
	}
}

// scanDefinition handles "$name: value;" after the name was emitted
func (s *scanner) scanDefinition() {
	if s.scanTrivia() {
		return
	}
	switch s.peek(0) {
	case ':':
		s.emit(Colon, s.pos+1)
		s.scanValue()
		if s.peek(0) == ';' {
			s.emit(Semicolon, s.pos+1)
		}
		s.definition = false
	default:
		// malformed definition: hand the rest back to the top level
		s.definition = false
	}
}

// scanValue emits the value after a colon up to ';' or '}' (not consumed).
// Quoted strings are kept intact and comments are split into their own
// tokens so the value text never contains comment bodies.
func (s *scanner) scanValue() {
	for s.pos < len(s.src) {
		if s.atComment() {
			s.scanTrivia()
			continue
		}
		// leading whitespace is trivia, not value
		if isSpace(s.peek(0)) && !s.valueStarted() {
			s.scanTrivia()
			continue
		}
		end := s.pos
		for end < len(s.src) {
			c := s.src[end]
			if c == ';' || c == '}' {
				break
			}
			if c == '/' && end+1 < len(s.src) && s.src[end+1] == '*' {
				break
			}
			if c == '"' || c == '\'' {
				end = skipString(s.src, end)
				continue
			}
			end++
		}
		if end == s.pos {
			return
		}
		s.emit(PropertyValue, end)
	}
}

// valueStarted reports whether a PropertyValue was emitted since the last
// colon
func (s *scanner) valueStarted() bool {
	for i := len(s.tokens) - 1; i >= 0; i-- {
		switch s.tokens[i].Kind {
		case PropertyValue:
			return true
		case Colon:
			return false
		}
	}
	return false
}

// skipString returns the offset just past the quoted string starting at
// start, honouring backslash escapes. An unterminated string runs to the
// end of the line.
func skipString(src string, start int) int {
	quote := src[start]
	i := start + 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		case '\n':
			return i
		}
		i++
	}
	return len(src)
}

func trimRightSpace(src string, start, end int) int {
	for end > start && isSpace(src[end-1]) {
		end--
	}
	if end == start {
		// never emit an empty token
		_, size := utf8.DecodeRuneInString(src[start:])
		return start + size
	}
	return end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameByte(c byte) bool {
	return isNameStart(c) || c == '-' || (c >= '0' && c <= '9')
}

// IsNameStart reports whether c may begin a variable name
func IsNameStart(c byte) bool { return isNameStart(c) }

// IsNameByte reports whether c may continue a variable name
func IsNameByte(c byte) bool { return isNameByte(c) }
