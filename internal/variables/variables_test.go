package variables_test

import (
	"errors"
	"testing"

	"bennypowers.dev/tss/internal/styleerr"
	"bennypowers.dev/tss/internal/tokenizer"
	"bennypowers.dev/tss/internal/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	t.Run("simple definition", func(t *testing.T) {
		text, vars, err := variables.Substitute("", "$primary: #ff0000; Button { background: $primary; }", nil)
		require.NoError(t, err)
		assert.Equal(t, " Button { background: #ff0000; }", text)
		assert.Equal(t, "#ff0000", vars["primary"])
	})

	t.Run("chained definitions", func(t *testing.T) {
		src := "$a: red;\n$b: $a;\n$c: $b 50%;\nLabel { color: $c; }"
		text, vars, err := variables.Substitute("", src, nil)
		require.NoError(t, err)
		assert.Equal(t, "red", vars["b"])
		assert.Equal(t, "red 50%", vars["c"])
		assert.Contains(t, text, "color: red 50%;")
	})

	t.Run("a reference to a later definition is undefined", func(t *testing.T) {
		_, _, err := variables.Substitute("", "$b: $a; $a: blue;", nil)
		assert.True(t, errors.Is(err, styleerr.ErrUndefinedVariable))
	})

	t.Run("base variables", func(t *testing.T) {
		base := map[string]string{"accent": "#00ff00"}
		text, vars, err := variables.Substitute("", "Button { color: $accent; }", base)
		require.NoError(t, err)
		assert.Equal(t, "Button { color: #00ff00; }", text)
		assert.Equal(t, "#00ff00", vars["accent"])
	})

	t.Run("definitions override base variables", func(t *testing.T) {
		base := map[string]string{"accent": "#00ff00", "primary": "red"}
		_, vars, err := variables.Substitute("", "$accent: $primary;", base)
		require.NoError(t, err)
		assert.Equal(t, "red", vars["accent"])
		assert.Equal(t, "#00ff00", base["accent"], "base must not be modified")
	})

	t.Run("later definition wins", func(t *testing.T) {
		text, vars, err := variables.Substitute("", "$a: red; $a: blue; Label { color: $a; }", nil)
		require.NoError(t, err)
		assert.Equal(t, "blue", vars["a"])
		assert.Contains(t, text, "color: blue;")
	})

	t.Run("a redefinition does not change earlier values", func(t *testing.T) {
		text, vars, err := variables.Substitute("", "$a: red; $b: $a; $a: blue; Button { color: $b; }", nil)
		require.NoError(t, err)
		assert.Equal(t, "red", vars["b"])
		assert.Equal(t, "blue", vars["a"])
		assert.Contains(t, text, "color: red;")
	})

	t.Run("declarations use the value in force at their position", func(t *testing.T) {
		text, vars, err := variables.Substitute("", "$a: red; Button { color: $a; } $a: blue; Label { color: $a; }", nil)
		require.NoError(t, err)
		assert.Contains(t, text, "Button { color: red; }")
		assert.Contains(t, text, "Label { color: blue; }")
		assert.Equal(t, "blue", vars["a"])
	})

	t.Run("a definition can refer to the theme value it shadows", func(t *testing.T) {
		base := map[string]string{"primary": "#ff0000"}
		text, vars, err := variables.Substitute("", "$primary: $primary; Button { color: $primary; }", base)
		require.NoError(t, err)
		assert.Equal(t, "#ff0000", vars["primary"])
		assert.Contains(t, text, "color: #ff0000;")
	})

	t.Run("several references in one value", func(t *testing.T) {
		text, _, err := variables.Substitute("", "$s: heavy; $c: red; Label { border: $s $c; }", nil)
		require.NoError(t, err)
		assert.Contains(t, text, "border: heavy red;")
	})
}

func TestSubstituteInertContexts(t *testing.T) {
	t.Run("comments", func(t *testing.T) {
		src := "/* $5 and $undefined */ Button { color: red /* $nope */; }"
		text, _, err := variables.Substitute("", src, nil)
		require.NoError(t, err)
		assert.Equal(t, src, text)
	})

	t.Run("quoted strings", func(t *testing.T) {
		src := `Label { content: "$name \" $other"; }`
		text, _, err := variables.Substitute("", src, nil)
		require.NoError(t, err)
		assert.Equal(t, src, text)
	})

	t.Run("dollar digit is literal", func(t *testing.T) {
		text, _, err := variables.Substitute("", "Label { content: $5; }", nil)
		require.NoError(t, err)
		assert.Equal(t, "Label { content: $5; }", text)
	})

	t.Run("selectors and property names", func(t *testing.T) {
		_, _, err := variables.Substitute("", "Button.$x { $y: red; }", nil)
		assert.NoError(t, err)
	})

	t.Run("at-rule headers", func(t *testing.T) {
		_, _, err := variables.Substitute("", "@media $wide { }", nil)
		assert.NoError(t, err)
	})
}

func TestUndefinedVariable(t *testing.T) {
	t.Run("in a property value", func(t *testing.T) {
		_, _, err := variables.Substitute("app.tss", "Button {\n  color: red $missing;\n}", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, styleerr.ErrUndefinedVariable))

		var undefined *styleerr.UndefinedVariableError
		require.True(t, errors.As(err, &undefined))
		assert.Equal(t, "missing", undefined.Name)
		assert.Equal(t, "app.tss", undefined.Source)
		assert.Equal(t, 2, undefined.Line)
		assert.Equal(t, 14, undefined.Column)
	})

	t.Run("in a definition", func(t *testing.T) {
		_, _, err := variables.Substitute("", "$a: $b;", nil)
		var undefined *styleerr.UndefinedVariableError
		require.True(t, errors.As(err, &undefined))
		assert.Equal(t, "b", undefined.Name)
		assert.Equal(t, 1, undefined.Line)
		assert.Equal(t, 5, undefined.Column)
	})
}

func TestCircularReference(t *testing.T) {
	t.Run("two variables", func(t *testing.T) {
		_, _, err := variables.Substitute("", "$a: $b; $b: $a;", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, styleerr.ErrCircularReference))

		var circular *styleerr.CircularReferenceError
		require.True(t, errors.As(err, &circular))
		assert.Equal(t, []string{"a", "b", "a"}, circular.ReferenceChain)
	})

	t.Run("self reference", func(t *testing.T) {
		_, _, err := variables.Substitute("", "$a: $a;", nil)
		assert.True(t, errors.Is(err, styleerr.ErrCircularReference))
	})

	t.Run("self reference after a definition is not a cycle", func(t *testing.T) {
		_, vars, err := variables.Substitute("", "$a: red; $a: $a bold;", nil)
		require.NoError(t, err)
		assert.Equal(t, "red bold", vars["a"])
	})

	t.Run("longer chain", func(t *testing.T) {
		_, _, err := variables.Substitute("", "$a: $b; $b: $c; $c: $a; $d: red;", nil)
		var circular *styleerr.CircularReferenceError
		require.True(t, errors.As(err, &circular))
		assert.Equal(t, []string{"a", "b", "c", "a"}, circular.ReferenceChain)
	})
}

func TestResolve(t *testing.T) {
	src := "$primary: #ff0000;\nButton { background: $primary; }"
	result, err := variables.Resolve("", tokenizer.Tokenize(src), nil)
	require.NoError(t, err)

	t.Run("definitions", func(t *testing.T) {
		require.Len(t, result.Definitions, 1)
		def := result.Definitions[0]
		assert.Equal(t, "primary", def.Name)
		assert.Equal(t, "#ff0000", def.Value())
		assert.Equal(t, 1, def.Line)
		assert.Equal(t, 1, def.Column)
	})

	t.Run("tokens keep their positions", func(t *testing.T) {
		for _, tok := range result.Tokens {
			assert.False(t, tok.Definition)
			if tok.Kind == tokenizer.PropertyValue {
				assert.Equal(t, "#ff0000", tok.Text)
				assert.Equal(t, 2, tok.Line)
				assert.Equal(t, 22, tok.Column)
			}
		}
	})

	t.Run("malformed definitions are reported and skipped", func(t *testing.T) {
		result, err := variables.Resolve("", tokenizer.Tokenize("$a red;\n$b: ;\nButton { color: blue; }"), nil)
		require.NoError(t, err)
		assert.Empty(t, result.Definitions)
		require.Len(t, result.Errors, 2)
		for _, e := range result.Errors {
			assert.True(t, errors.Is(e, styleerr.ErrParse))
		}
	})
}

func TestReferences(t *testing.T) {
	tok := tokenizer.Token{
		Kind:   tokenizer.PropertyValue,
		Text:   `$a "$b" $c-1`,
		Line:   3,
		Column: 10,
	}
	refs := variables.References(tok)
	require.Len(t, refs, 2)
	assert.Equal(t, variables.Reference{Name: "a", Line: 3, Column: 10}, refs[0])
	assert.Equal(t, variables.Reference{Name: "c-1", Line: 3, Column: 18}, refs[1])
}
