// Package cache memoizes computed styles per node.
//
// An entry is valid while both the theme version and the ancestor hash it
// was computed with still match. Neither is checked eagerly: a theme switch
// or an ancestor's class change is noticed on the next Get for the node.
// Descendants of a changed node therefore stay stale until they are asked
// for, which avoids walking the subtree on every change. Callers that need
// the subtree updated at once invalidate it explicitly.
package cache

import (
	"hash/fnv"
	"io"

	"bennypowers.dev/tss/internal/collections"
	"bennypowers.dev/tss/internal/stylesheet"
	"bennypowers.dev/tss/internal/widget"
)

// Entry is one memoized style
type Entry struct {
	Computed     *stylesheet.ComputedStyle
	AncestorHash uint64
	ThemeVersion uint64
	// Stale is set by Invalidate. A stale entry is never returned by Get
	// but keeps the previous style for starting transitions.
	Stale bool
}

// Stats counts lookups
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Cache maps node ids to entries. It is not safe for concurrent use; the
// style manager owns it on the frame loop.
type Cache struct {
	entries map[widget.NodeID]*Entry
	stats   Stats
}

// New creates an empty cache
func New() *Cache {
	return &Cache{entries: make(map[widget.NodeID]*Entry)}
}

// Get returns the cached style for id if it was computed with the given
// ancestor hash and theme version
func (c *Cache) Get(id widget.NodeID, ancestorHash, themeVersion uint64) (*stylesheet.ComputedStyle, bool) {
	e, ok := c.entries[id]
	if !ok || e.Stale || e.AncestorHash != ancestorHash || e.ThemeVersion != themeVersion {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return e.Computed, true
}

// Peek returns the entry for id whatever its validity, without counting
// a lookup
func (c *Cache) Peek(id widget.NodeID) (*Entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Put stores a freshly computed style
func (c *Cache) Put(id widget.NodeID, computed *stylesheet.ComputedStyle, ancestorHash, themeVersion uint64) {
	c.entries[id] = &Entry{
		Computed:     computed,
		AncestorHash: ancestorHash,
		ThemeVersion: themeVersion,
	}
}

// Invalidate marks the entry for id stale. The next Get misses.
func (c *Cache) Invalidate(id widget.NodeID) {
	if e, ok := c.entries[id]; ok {
		e.Stale = true
	}
}

// Remove drops the entry for id, for nodes that left the tree
func (c *Cache) Remove(id widget.NodeID) {
	delete(c.entries, id)
}

// Clear drops every entry
func (c *Cache) Clear() {
	clear(c.entries)
}

// Len returns the number of entries, stale ones included
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats returns the hit and miss counts
func (c *Cache) Stats() Stats {
	return c.stats
}

// AncestorHash digests the identity of an ancestor chain, root first. Only
// type, id, classes and pseudo-classes take part; classes and
// pseudo-classes are sorted so set order never changes the hash.
func AncestorHash(ancestors []widget.Meta) uint64 {
	h := fnv.New64a()
	for _, a := range ancestors {
		writeField(h, a.Type)
		writeField(h, a.ID)
		writeSet(h, a.Classes)
		writeSet(h, a.PseudoClasses)
		h.Write([]byte{'/'})
	}
	return h.Sum64()
}

// writeField writes s followed by a separator that cannot occur in names,
// so ("ab", "") and ("a", "b") hash differently
func writeField(w io.Writer, s string) {
	w.Write([]byte(s))
	w.Write([]byte{0})
}

func writeSet(w io.Writer, s collections.Set[string]) {
	if s == nil {
		w.Write([]byte{1})
		return
	}
	for _, m := range collections.Sorted(s) {
		writeField(w, m)
	}
	w.Write([]byte{1})
}
