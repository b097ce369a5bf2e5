package paint_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"bennypowers.dev/tss/internal/paint"
	"bennypowers.dev/tss/internal/stylesheet"
	"bennypowers.dev/tss/internal/values"
)

func computed(props map[string]values.Value) *stylesheet.ComputedStyle {
	return stylesheet.NewComputedStyle(props)
}

func TestResolve(t *testing.T) {
	parent := values.RGB(10, 20, 30)

	t.Run("opaque colors pass through", func(t *testing.T) {
		c := paint.Resolve(computed(map[string]values.Value{
			"color":      values.RGB(255, 0, 0),
			"background": values.RGB(0, 0, 255),
		}), parent)
		assert.Equal(t, values.RGB(255, 0, 0), c.Foreground)
		assert.Equal(t, values.RGB(0, 0, 255), c.Background)
	})

	t.Run("transparent background shows the parent", func(t *testing.T) {
		c := paint.Resolve(computed(map[string]values.Value{"color": values.White}), parent)
		assert.Equal(t, parent, c.Background)
	})

	t.Run("translucent background composites", func(t *testing.T) {
		c := paint.Resolve(computed(map[string]values.Value{
			"background": values.RGBA(255, 0, 0, 0.5),
		}), values.White)
		assert.Equal(t, values.RGBA(255, 0, 0, 0.5).Over(values.White), c.Background)
	})

	t.Run("auto text contrasts with the resolved background", func(t *testing.T) {
		dark := paint.Resolve(computed(map[string]values.Value{"background": values.Black}), parent)
		assert.Equal(t, values.White.WithAlpha(0.87).Over(values.Black), dark.Foreground)

		light := paint.Resolve(computed(map[string]values.Value{"background": values.White}), parent)
		assert.Equal(t, values.Black.WithAlpha(0.87).Over(values.White), light.Foreground)
	})

	t.Run("auto background contrasts with the parent", func(t *testing.T) {
		c := paint.Resolve(computed(map[string]values.Value{
			"background": values.Auto(0.1),
			"color":      values.White,
		}), values.Black)
		assert.Equal(t, values.White.WithAlpha(0.1).Over(values.Black), c.Background)
	})

	t.Run("opacity fades toward the parent", func(t *testing.T) {
		c := paint.Resolve(computed(map[string]values.Value{
			"color":      values.White,
			"background": values.White,
			"opacity":    values.Percent(0),
		}), values.Black)
		assert.Equal(t, values.Black, c.Foreground)
		assert.Equal(t, values.Black, c.Background)
	})

	t.Run("text opacity fades toward the background", func(t *testing.T) {
		c := paint.Resolve(computed(map[string]values.Value{
			"color":        values.White,
			"background":   values.Black,
			"text-opacity": values.Percent(50),
		}), parent)
		assert.Equal(t, values.Black.Mix(values.White, 0.5), c.Foreground)
		assert.Equal(t, values.Black, c.Background)
	})

	t.Run("palette colors snap instead of blending", func(t *testing.T) {
		c := paint.Resolve(computed(map[string]values.Value{
			"color":        values.ANSI(1),
			"background":   values.ANSI(4),
			"text-opacity": values.Percent(80),
		}), parent)
		assert.Equal(t, values.ANSI(1), c.Foreground)
		assert.Equal(t, values.ANSI(4), c.Background)
	})
}

func TestStyle(t *testing.T) {
	st := paint.Style(computed(map[string]values.Value{
		"color":      values.RGB(255, 0, 0),
		"background": values.ANSI(4),
		"text-style": values.Flags{"bold", "italic"},
	}), values.Black)

	fg, bg, attrs := st.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
	assert.Equal(t, tcell.PaletteColor(4), bg)
	assert.NotZero(t, attrs&tcell.AttrBold)
	assert.NotZero(t, attrs&tcell.AttrItalic)
	assert.Zero(t, attrs&tcell.AttrReverse)

	t.Run("underline", func(t *testing.T) {
		st := paint.Style(computed(map[string]values.Value{
			"text-style": values.Flags{"underline"},
		}), values.Black)
		assert.Equal(t, tcell.UnderlineStyleSolid, st.GetUnderlineStyle())
	})
}

func TestVisible(t *testing.T) {
	assert.True(t, paint.Visible(computed(nil)))
	assert.False(t, paint.Visible(computed(map[string]values.Value{"display": values.Keyword("none")})))
	assert.False(t, paint.Visible(computed(map[string]values.Value{"visibility": values.Keyword("hidden")})))
}
