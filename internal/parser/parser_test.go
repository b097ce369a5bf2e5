package parser_test

import (
	"errors"
	"testing"

	"bennypowers.dev/tss/internal/parser"
	"bennypowers.dev/tss/internal/styleerr"
	"bennypowers.dev/tss/internal/stylesheet"
	"bennypowers.dev/tss/internal/tokenizer"
	"bennypowers.dev/tss/internal/values"
	"bennypowers.dev/tss/internal/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules(t *testing.T) {
	result := parser.ParseString(`
Button, Label.title {
    color: red;
    background: #00ff00 !important;
    padding: 1 2;
}

Container > Button:focus { text-style: bold underline; }
`, parser.Options{Source: "app.tss", Origin: stylesheet.OriginUser, FirstOrder: 10})

	require.NoError(t, result.Err())
	require.Len(t, result.Rules, 2)

	t.Run("first rule", func(t *testing.T) {
		rule := result.Rules[0]
		assert.Equal(t, "Button, Label.title", rule.SelectorText)
		assert.Len(t, rule.Selectors, 2)
		assert.Equal(t, stylesheet.OriginUser, rule.Origin)
		assert.Equal(t, 10, rule.Order)
		assert.Equal(t, "app.tss", rule.Source)
		assert.Equal(t, 2, rule.Line)
		assert.Equal(t, 1, rule.Column)

		require.Len(t, rule.Declarations, 3)
		color := rule.Declarations[0]
		assert.Equal(t, "color", color.Property)
		assert.Equal(t, values.RGB(255, 0, 0), color.Value)
		assert.False(t, color.Important)
		assert.Equal(t, 3, color.Line)
		assert.Equal(t, 5, color.Column)

		bg := rule.Declarations[1]
		assert.Equal(t, values.RGB(0, 255, 0), bg.Value)
		assert.True(t, bg.Important)

		assert.Equal(t, values.Spacing{Top: 1, Right: 2, Bottom: 1, Left: 2}, rule.Declarations[2].Value)
	})

	t.Run("second rule", func(t *testing.T) {
		rule := result.Rules[1]
		assert.Equal(t, 11, rule.Order)
		assert.Equal(t, "Container > Button:focus", rule.Selectors[0].String())
		require.Len(t, rule.Declarations, 1)
		flags, ok := rule.Declarations[0].Value.(values.Flags)
		require.True(t, ok)
		assert.True(t, flags.Has("bold"))
		assert.True(t, flags.Has("underline"))
	})
}

func TestParseShorthand(t *testing.T) {
	result := parser.ParseString("Panel { border: heavy red; }", parser.Options{})
	require.NoError(t, result.Err())
	require.Len(t, result.Rules, 1)

	var props []string
	for _, d := range result.Rules[0].Declarations {
		props = append(props, d.Property)
	}
	assert.Equal(t, []string{"border-top", "border-right", "border-bottom", "border-left"}, props)
}

func TestParseComments(t *testing.T) {
	result := parser.ParseString(`
/* leading */
Button /* between */ Label {
    color: red /* note */ ;
    /* whole line */
    background: blue;
}`, parser.Options{})
	require.NoError(t, result.Err())
	require.Len(t, result.Rules, 1)
	assert.Equal(t, "Button  Label", result.Rules[0].SelectorText)
	assert.Equal(t, "Button Label", result.Rules[0].Selectors[0].String())
	assert.Len(t, result.Rules[0].Declarations, 2)
}

func TestParseErrorsSkipRule(t *testing.T) {
	tests := []struct {
		name string
		css  string
	}{
		{"unknown property", "Button { colour: red; }"},
		{"invalid value", "Button { color: notacolor; }"},
		{"missing colon", "Button { color red; }"},
		{"missing value", "Button { color: ; }"},
		{"invalid selector", "Button..x { color: red; }"},
		{"nested block", "Button { Label { color: red; } }"},
		{"missing block", "Button;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.ParseString(tt.css+"\nLabel { color: blue; }", parser.Options{Source: "x.tss"})

			require.NotEmpty(t, result.Errors)
			for _, err := range result.Errors {
				assert.True(t, errors.Is(err, styleerr.ErrParse), "%v should be a parse error", err)
			}
			assert.True(t, errors.Is(result.Err(), styleerr.ErrParse))

			require.Len(t, result.Rules, 1, "the valid rule still loads")
			assert.Equal(t, "Label", result.Rules[0].SelectorText)
			assert.Equal(t, 0, result.Rules[0].Order)
		})
	}
}

func TestParseUnsupportedSelector(t *testing.T) {
	result := parser.ParseString("Button ~ Label { color: red; }\nLabel { color: blue; }", parser.Options{Source: "x.tss"})

	require.Len(t, result.Errors, 1)
	err := result.Errors[0]
	assert.True(t, errors.Is(err, styleerr.ErrUnsupportedSelector))
	assert.True(t, errors.Is(err, styleerr.ErrParse))

	var unsupported *styleerr.UnsupportedSelectorError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "Button ~ Label", unsupported.Selector)
	assert.Equal(t, 1, unsupported.Line)
	assert.Equal(t, 8, unsupported.Column)

	assert.Len(t, result.Rules, 1)
}

func TestParseErrorPosition(t *testing.T) {
	result := parser.ParseString("Label { color: blue; }\nButton {\n  colour: red;\n}", parser.Options{Source: "app.tss"})
	require.Len(t, result.Errors, 1)

	var parseErr *styleerr.ParseError
	require.True(t, errors.As(result.Errors[0], &parseErr))
	assert.Equal(t, "app.tss", parseErr.Source)
	assert.Equal(t, 3, parseErr.Line)
	assert.Equal(t, 3, parseErr.Column)
	assert.Contains(t, parseErr.Error(), "app.tss:3:3")
}

func TestParseUnterminatedBlock(t *testing.T) {
	result := parser.ParseString("Label { color: blue; }\nButton { color: red", parser.Options{Source: "app.tss"})
	require.Len(t, result.Rules, 1)
	assert.Equal(t, "Label", result.Rules[0].SelectorText)

	require.Len(t, result.Errors, 1)
	var parseErr *styleerr.ParseError
	require.True(t, errors.As(result.Errors[0], &parseErr))
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, 8, parseErr.Column, "reported at the opening brace")
	assert.Contains(t, parseErr.Error(), "unexpected end of input")

	t.Run("only rule", func(t *testing.T) {
		result := parser.ParseString("Button { color: red", parser.Options{})
		assert.Empty(t, result.Rules)
		assert.Len(t, result.Errors, 1)
	})
}

func TestParseAtRules(t *testing.T) {
	result := parser.ParseString(`
@import "base.tss";
@keyframes pulse {
    0% { opacity: 0%; }
    100% { opacity: 100%; }
}
Button { color: red; }`, parser.Options{})

	require.NoError(t, result.Err())
	require.Len(t, result.AtRules, 2)

	imp := result.AtRules[0]
	assert.Equal(t, "import", imp.Name)
	assert.Equal(t, `"base.tss"`, imp.Prelude)
	assert.False(t, imp.Block)

	kf := result.AtRules[1]
	assert.Equal(t, "keyframes", kf.Name)
	assert.Equal(t, "pulse", kf.Prelude)
	assert.True(t, kf.Block)
	assert.Contains(t, kf.Body, "0% { opacity: 0%; }")
	assert.Contains(t, kf.Body, "100% { opacity: 100%; }")

	require.Len(t, result.Rules, 1, "keyframe blocks are not rules")
	assert.Equal(t, "Button", result.Rules[0].SelectorText)
}

func TestParseResolvedTokens(t *testing.T) {
	src := "$primary: #ff0000;\nButton { background: $primary; }"
	resolved, err := variables.Resolve("", tokenizer.Tokenize(src), nil)
	require.NoError(t, err)

	result := parser.Parse(resolved.Tokens, parser.Options{})
	require.NoError(t, result.Err())
	require.Len(t, result.Rules, 1)
	bg := result.Rules[0].Declarations[0]
	assert.Equal(t, values.RGB(255, 0, 0), bg.Value)
	assert.Equal(t, 2, bg.Line)

	t.Run("definition tokens are ignored", func(t *testing.T) {
		result := parser.Parse(tokenizer.Tokenize("$x: 1;\nButton { color: red; }"), parser.Options{})
		assert.NoError(t, result.Err())
		assert.Len(t, result.Rules, 1)
	})
}
