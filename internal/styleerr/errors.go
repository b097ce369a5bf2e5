// Package styleerr defines the error kinds raised while loading stylesheets,
// switching themes and registering animations.
package styleerr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for error type checking
var (
	// ErrParse indicates a malformed rule, selector or declaration
	ErrParse = errors.New("stylesheet parse error")

	// ErrUnsupportedSelector indicates selector syntax outside the dialect
	// (sibling combinators and the like). It is also a parse error.
	ErrUnsupportedSelector = errors.New("unsupported selector")

	// ErrUndefinedVariable indicates a $name reference with no definition
	ErrUndefinedVariable = errors.New("undefined variable")

	// ErrCircularReference indicates variables that reference each other
	ErrCircularReference = errors.New("circular variable reference")

	// ErrThemeNotFound indicates an unknown theme name
	ErrThemeNotFound = errors.New("theme not found")

	// ErrAnimationTarget indicates an animation between values that cannot be
	// interpolated; the animation snaps at its midpoint instead
	ErrAnimationTarget = errors.New("animation target not interpolable")
)

// ParseError represents a malformed rule. It is non-fatal to the stylesheet:
// the offending rule is skipped and loading continues.
type ParseError struct {
	Source  string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", sourceName(e.Source), e.Line, e.Column, e.Message)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// NewParseError creates a new parse error
func NewParseError(source string, line, column int, format string, args ...any) *ParseError {
	return &ParseError{
		Source:  source,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

// UnsupportedSelectorError represents selector syntax the dialect rejects
type UnsupportedSelectorError struct {
	ParseError
	Selector string
}

func (e *UnsupportedSelectorError) Error() string {
	return fmt.Sprintf("%s:%d:%d: unsupported selector %q: %s", sourceName(e.Source), e.Line, e.Column, e.Selector, e.Message)
}

// Unwrap reports both the unsupported-selector kind and the parse kind
func (e *UnsupportedSelectorError) Unwrap() []error {
	return []error{ErrUnsupportedSelector, ErrParse}
}

// NewUnsupportedSelectorError creates a new unsupported selector error
func NewUnsupportedSelectorError(source string, line, column int, selector, reason string) *UnsupportedSelectorError {
	return &UnsupportedSelectorError{
		ParseError: ParseError{Source: source, Line: line, Column: column, Message: reason},
		Selector:   selector,
	}
}

// ParseErrors collects the non-fatal errors of one stylesheet load.
// The rules that parsed cleanly are still installed.
type ParseErrors struct {
	Errors []error
}

func (e *ParseErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d stylesheet errors:\n%s", len(e.Errors), strings.Join(msgs, "\n"))
}

func (e *ParseErrors) Unwrap() []error {
	return e.Errors
}

// UndefinedVariableError represents a reference to a variable that was never
// defined. It is fatal to loading the stylesheet source it occurs in.
type UndefinedVariableError struct {
	Source string
	Name   string
	Line   int
	Column int
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("%s:%d:%d: reference to undefined variable '$%s'\nSuggestion: Define $%s before using it, or check the active theme",
		sourceName(e.Source), e.Line, e.Column, e.Name, e.Name)
}

func (e *UndefinedVariableError) Unwrap() error {
	return ErrUndefinedVariable
}

// NewUndefinedVariableError creates a new undefined variable error
func NewUndefinedVariableError(source, name string, line, column int) error {
	return &UndefinedVariableError{
		Source: source,
		Name:   name,
		Line:   line,
		Column: column,
	}
}

// CircularReferenceError represents a circular reference between variables
type CircularReferenceError struct {
	Source         string
	ReferenceChain []string
}

func (e *CircularReferenceError) Error() string {
	chain := make([]string, len(e.ReferenceChain))
	for i, name := range e.ReferenceChain {
		chain[i] = "$" + name
	}
	return fmt.Sprintf("circular variable reference detected in %s: %s\nSuggestion: Break the circular dependency chain",
		sourceName(e.Source), strings.Join(chain, " → "))
}

func (e *CircularReferenceError) Unwrap() error {
	return ErrCircularReference
}

// NewCircularReferenceError creates a new circular reference error
func NewCircularReferenceError(source string, chain []string) error {
	return &CircularReferenceError{
		Source:         source,
		ReferenceChain: chain,
	}
}

// ThemeNotFoundError represents a request for a theme that is not registered
type ThemeNotFoundError struct {
	Name      string
	Available []string
}

func (e *ThemeNotFoundError) Error() string {
	return fmt.Sprintf("theme '%s' not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

func (e *ThemeNotFoundError) Unwrap() error {
	return ErrThemeNotFound
}

// NewThemeNotFoundError creates a new theme not found error
func NewThemeNotFoundError(name string, available []string) error {
	return &ThemeNotFoundError{
		Name:      name,
		Available: available,
	}
}

// AnimationTargetError describes an animation whose endpoints cannot be
// interpolated. It is reported, never returned from the frame loop.
type AnimationTargetError struct {
	Property string
	From     string
	To       string
}

func (e *AnimationTargetError) Error() string {
	return fmt.Sprintf("cannot interpolate '%s' from %s to %s; value will switch at the midpoint", e.Property, e.From, e.To)
}

func (e *AnimationTargetError) Unwrap() error {
	return ErrAnimationTarget
}

// NewAnimationTargetError creates a new animation target error
func NewAnimationTargetError(property, from, to string) error {
	return &AnimationTargetError{
		Property: property,
		From:     from,
		To:       to,
	}
}

func sourceName(source string) string {
	if source == "" {
		return "<inline>"
	}
	return source
}
