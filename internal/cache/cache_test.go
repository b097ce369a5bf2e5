package cache_test

import (
	"testing"

	"bennypowers.dev/tss/internal/cache"
	"bennypowers.dev/tss/internal/stylesheet"
	"bennypowers.dev/tss/internal/values"
	"bennypowers.dev/tss/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func style(color values.Color) *stylesheet.ComputedStyle {
	return stylesheet.NewComputedStyle(map[string]values.Value{"color": color})
}

func TestCacheGetPut(t *testing.T) {
	c := cache.New()
	red := style(values.RGB(255, 0, 0))

	_, ok := c.Get(1, 10, 1)
	assert.False(t, ok)

	c.Put(1, red, 10, 1)
	got, ok := c.Get(1, 10, 1)
	require.True(t, ok)
	assert.Same(t, red, got)

	t.Run("ancestor hash mismatch", func(t *testing.T) {
		_, ok := c.Get(1, 11, 1)
		assert.False(t, ok)
	})

	t.Run("theme version mismatch", func(t *testing.T) {
		_, ok := c.Get(1, 10, 2)
		assert.False(t, ok)
	})

	t.Run("stats", func(t *testing.T) {
		assert.Equal(t, cache.Stats{Hits: 1, Misses: 3}, c.Stats())
	})
}

func TestCacheInvalidate(t *testing.T) {
	c := cache.New()
	red := style(values.RGB(255, 0, 0))
	blue := style(values.RGB(0, 0, 255))
	c.Put(1, red, 0, 0)
	c.Put(2, blue, 0, 0)

	c.Invalidate(1)

	_, ok := c.Get(1, 0, 0)
	assert.False(t, ok, "invalidated entry misses")
	sibling, ok := c.Get(2, 0, 0)
	assert.True(t, ok, "other entries are unaffected")
	assert.Same(t, blue, sibling)

	t.Run("stale entry keeps the previous style", func(t *testing.T) {
		e, ok := c.Peek(1)
		require.True(t, ok)
		assert.True(t, e.Stale)
		assert.Same(t, red, e.Computed)
	})

	t.Run("put clears staleness", func(t *testing.T) {
		c.Put(1, blue, 0, 0)
		_, ok := c.Get(1, 0, 0)
		assert.True(t, ok)
	})

	t.Run("invalidating an unknown id is a no-op", func(t *testing.T) {
		c.Invalidate(99)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("remove and clear", func(t *testing.T) {
		c.Remove(1)
		_, ok := c.Peek(1)
		assert.False(t, ok)
		assert.Equal(t, 1, c.Len())
		c.Clear()
		assert.Equal(t, 0, c.Len())
	})
}

func TestAncestorHash(t *testing.T) {
	screen := widget.NewMeta("Screen", "main")
	container := widget.NewMeta("Container", "", "a", "b")

	base := cache.AncestorHash([]widget.Meta{screen, container})

	t.Run("stable", func(t *testing.T) {
		again := cache.AncestorHash([]widget.Meta{
			widget.NewMeta("Screen", "main"),
			widget.NewMeta("Container", "", "b", "a"),
		})
		assert.Equal(t, base, again, "class order does not matter")
	})

	t.Run("order of ancestors matters", func(t *testing.T) {
		assert.NotEqual(t, base, cache.AncestorHash([]widget.Meta{container, screen}))
	})

	t.Run("class change", func(t *testing.T) {
		changed := cache.AncestorHash([]widget.Meta{screen, container.WithClasses("c")})
		assert.NotEqual(t, base, changed)
	})

	t.Run("pseudo-class change", func(t *testing.T) {
		changed := cache.AncestorHash([]widget.Meta{screen, container.WithPseudo("hover")})
		assert.NotEqual(t, base, changed)
	})

	t.Run("field boundaries", func(t *testing.T) {
		a := cache.AncestorHash([]widget.Meta{widget.NewMeta("Ab", "")})
		b := cache.AncestorHash([]widget.Meta{widget.NewMeta("A", "b")})
		assert.NotEqual(t, a, b)
	})

	t.Run("zero meta equals empty sets", func(t *testing.T) {
		assert.Equal(t,
			cache.AncestorHash([]widget.Meta{{Type: "Screen"}}),
			cache.AncestorHash([]widget.Meta{widget.NewMeta("Screen", "")}))
	})
}
