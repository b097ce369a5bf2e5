package stylesheet_test

import (
	"testing"

	"bennypowers.dev/tss/internal/parser"
	"bennypowers.dev/tss/internal/selector"
	"bennypowers.dev/tss/internal/stylesheet"
	"bennypowers.dev/tss/internal/values"
	"bennypowers.dev/tss/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sheet builds a stylesheet from default and user sources, numbering
// rules across both the way the style manager does
func sheet(t *testing.T, defaults, user string) *stylesheet.StyleSheet {
	t.Helper()
	d := parser.ParseString(defaults, parser.Options{Source: "defaults", Origin: stylesheet.OriginDefault})
	require.NoError(t, d.Err())
	u := parser.ParseString(user, parser.Options{Source: "user", Origin: stylesheet.OriginUser, FirstOrder: len(d.Rules)})
	require.NoError(t, u.Err())
	rules := append(d.Rules, u.Rules...)
	return stylesheet.New(rules, append(d.AtRules, u.AtRules...))
}

func node(t *testing.T, text string) widget.Meta {
	t.Helper()
	m, err := widget.ParseMeta(text)
	require.NoError(t, err)
	return m
}

func TestResolvePseudoClass(t *testing.T) {
	s := sheet(t, "", "Button { color: red; } Button:focus { color: blue; }")

	focused := s.Compute(node(t, "Button:focus"), nil)
	assert.Equal(t, values.RGB(0, 0, 255), focused.Get("color"))

	plain := s.Compute(node(t, "Button"), nil)
	assert.Equal(t, values.RGB(255, 0, 0), plain.Get("color"))
}

func TestResolveSpecificity(t *testing.T) {
	t.Run("higher specificity wins regardless of order", func(t *testing.T) {
		for _, css := range []string{
			"Button.primary { color: red; } Button { color: blue; }",
			"Button { color: blue; } Button.primary { color: red; }",
		} {
			s := sheet(t, "", css)
			assert.Equal(t, values.RGB(255, 0, 0), s.Compute(node(t, "Button.primary"), nil).Get("color"), css)
		}
	})

	t.Run("id beats any number of classes", func(t *testing.T) {
		s := sheet(t, "", "#ok { color: red; } .a.b.c { color: blue; }")
		assert.Equal(t, values.RGB(255, 0, 0), s.Compute(node(t, "Button#ok.a.b.c"), nil).Get("color"))
	})

	t.Run("equal specificity: later rule wins", func(t *testing.T) {
		s := sheet(t, "", ".a { color: red; } .b { color: blue; }")
		assert.Equal(t, values.RGB(0, 0, 255), s.Compute(node(t, "Button.a.b"), nil).Get("color"))
	})

	t.Run("later declaration in one rule wins", func(t *testing.T) {
		s := sheet(t, "", "Button { color: red; color: blue; }")
		assert.Equal(t, values.RGB(0, 0, 255), s.Compute(node(t, "Button"), nil).Get("color"))
	})

	t.Run("most specific matching selector of a group", func(t *testing.T) {
		s := sheet(t, "", "Button.x, Button#ok { color: red; } Button.y { color: blue; }")
		assert.Equal(t, values.RGB(255, 0, 0), s.Compute(node(t, "Button#ok.y"), nil).Get("color"))
	})

	t.Run("important beats specificity", func(t *testing.T) {
		s := sheet(t, "", "#ok { color: red; } Button { color: blue !important; }")
		assert.Equal(t, values.RGB(0, 0, 255), s.Compute(node(t, "Button#ok"), nil).Get("color"))
	})
}

func TestResolveOrigin(t *testing.T) {
	s := sheet(t, "#x { color: red; background: red; }", ".y { color: blue; }")
	cs := s.Compute(node(t, "Button#x.y"), nil)

	assert.Equal(t, values.RGB(0, 0, 255), cs.Get("color"), "user rule beats a more specific default")
	assert.Equal(t, values.RGB(255, 0, 0), cs.Get("background"), "defaults still apply where users are silent")

	t.Run("user rules beat important defaults", func(t *testing.T) {
		s := sheet(t, "Button { color: red !important; }", "Button { color: blue; }")
		assert.Equal(t, values.RGB(0, 0, 255), s.Compute(node(t, "Button"), nil).Get("color"))
	})
}

func TestResolveCombinators(t *testing.T) {
	descendant := sheet(t, "", "Container Button { color: green; }")
	child := sheet(t, "", "Container > Button { color: green; }")
	button := node(t, "Button")
	green := values.RGB(0, 128, 0)

	direct := []widget.Meta{node(t, "Screen"), node(t, "Container")}
	nested := []widget.Meta{node(t, "Screen"), node(t, "Container"), node(t, "Horizontal")}

	_, ok := descendant.Compute(button, direct).Lookup("color")
	assert.True(t, ok)
	assert.Equal(t, green, descendant.Compute(button, nested).Get("color"))

	assert.Equal(t, green, child.Compute(button, direct).Get("color"))
	_, ok = child.Compute(button, nested).Lookup("color")
	assert.False(t, ok)
}

func TestCandidates(t *testing.T) {
	s := sheet(t, "", `
Button { color: red; }
Label { color: red; }
.primary { color: red; }
#ok { color: red; }
* { color: red; }
:focus { color: red; }
Container Button.primary { color: red; }
`)
	var got []string
	for _, rule := range s.Candidates(node(t, "Button#ok.primary")) {
		got = append(got, rule.SelectorText)
	}
	assert.Equal(t, []string{"Button", ".primary", "#ok", "*", ":focus", "Container Button.primary"}, got,
		"Label is pruned and the rest keep source order")
}

func TestComputedStyle(t *testing.T) {
	s := sheet(t, "", "Button { color: auto 90%; width: 10; transition: color 300ms linear; border: round red; }")
	cs := s.Compute(node(t, "Button"), nil)

	t.Run("flags", func(t *testing.T) {
		assert.True(t, cs.AutoColor)
		assert.False(t, cs.AutoBackground)
	})

	t.Run("defaults", func(t *testing.T) {
		_, ok := cs.Lookup("height")
		assert.False(t, ok)
		assert.Equal(t, values.AutoScalar, cs.Scalar("height"))
		assert.Equal(t, values.Transparent, cs.Color("background"))
		assert.Equal(t, values.Keyword("block"), cs.Keyword("display"))
		assert.Nil(t, cs.Get("no-such-property"))
	})

	t.Run("typed accessors", func(t *testing.T) {
		assert.Equal(t, values.Cells(10), cs.Scalar("width"))
		assert.Equal(t, "round", cs.Border("border-left").Style)
		tr, ok := cs.Transitions().For("color")
		require.True(t, ok)
		assert.Equal(t, "linear", tr.Easing)
	})

	t.Run("with overrides", func(t *testing.T) {
		over := cs.With(map[string]values.Value{"color": values.RGB(1, 2, 3)})
		assert.False(t, over.AutoColor)
		assert.Equal(t, values.RGB(1, 2, 3), over.Get("color"))
		assert.True(t, cs.AutoColor, "original is unchanged")
		assert.Same(t, cs, cs.With(nil))
	})

	t.Run("equal and diff", func(t *testing.T) {
		again := s.Compute(node(t, "Button"), nil)
		assert.True(t, cs.Equal(again))
		other := cs.With(map[string]values.Value{"width": values.Cells(5), "height": values.Cells(1)})
		assert.False(t, cs.Equal(other))
		assert.Equal(t, []string{"height", "width"}, cs.Diff(other))
	})

	t.Run("properties", func(t *testing.T) {
		assert.Contains(t, cs.Properties(), "border-top")
		assert.Contains(t, cs.String(), "width: 10;")
	})
}

func TestSpecificityOrder(t *testing.T) {
	low := stylesheet.Specificity{Selector: selector.Specificity{IDs: 3}, Order: 9}
	user := stylesheet.Specificity{User: true}
	important := stylesheet.Specificity{Important: true}

	assert.True(t, low.Less(user))
	assert.True(t, low.Less(important))
	assert.True(t, important.Less(user))
	assert.True(t, stylesheet.Specificity{Order: 1}.Less(stylesheet.Specificity{Order: 2}))
	assert.False(t, low.Less(low))
	assert.Equal(t, "(1,0,0,0,0,0)", user.String())
}

func TestDump(t *testing.T) {
	s := sheet(t, "Button { color: red; }", "@keyframes pulse { 0% { opacity: 0%; } }\n.primary { color: blue !important; }")
	out := s.Dump()
	assert.Contains(t, out, "stylesheet (2 rules)")
	assert.Contains(t, out, "Button")
	assert.Contains(t, out, "color: #ff0000")
	assert.Contains(t, out, "color: #0000ff !important")
	assert.Contains(t, out, "@keyframes pulse")
	assert.Contains(t, out, "user #1")
}
