// Package style is the entry point of the engine. A Manager owns the merged
// stylesheet, the theme registry, the per-node style cache and the running
// animations, and answers style queries for the frame loop.
//
// A Manager is single-writer: every method must be called from the goroutine
// that drives the frame loop.
package style

import (
	"maps"
	"time"

	"bennypowers.dev/tss/internal/animation"
	"bennypowers.dev/tss/internal/cache"
	"bennypowers.dev/tss/internal/easing"
	"bennypowers.dev/tss/internal/hotreload"
	"bennypowers.dev/tss/internal/log"
	"bennypowers.dev/tss/internal/stylesheet"
	"bennypowers.dev/tss/internal/theme"
	"bennypowers.dev/tss/internal/values"
	"bennypowers.dev/tss/internal/widget"
)

// Types collaborators work with
type (
	ComputedStyle = stylesheet.ComputedStyle
	StyleSheet    = stylesheet.StyleSheet
	Meta          = widget.Meta
	NodeID        = widget.NodeID
	Value         = values.Value
	Theme         = theme.Theme
	Clock         = animation.Clock
	EasingFunc    = easing.Func
	AnimateOption = animation.Option
	CacheStats    = cache.Stats
)

// Animation options
var (
	WithDelay  = animation.WithDelay
	OnComplete = animation.OnComplete
)

// NewMeta snapshots a node for matching
var NewMeta = widget.NewMeta

// Option configures a Manager
type Option func(*Manager)

// WithClock sets the clock animations read their start time from
func WithClock(clock Clock) Option {
	return func(m *Manager) {
		m.clock = clock
	}
}

// WithDefaultEasing sets the curve used by transitions and animations that
// name none. Unknown names are ignored with a warning.
func WithDefaultEasing(name string) Option {
	return func(m *Manager) {
		if _, ok := easing.Lookup(name); !ok {
			log.Warn("unknown easing '%s', keeping %s", name, m.easing)
			return
		}
		m.easing = name
	}
}

// WithHotReload enables or disables PollHotReload. It is enabled by default.
func WithHotReload(enabled bool) Option {
	return func(m *Manager) {
		m.hotReload = enabled
	}
}

// Manager is the style engine
type Manager struct {
	clock     Clock
	easing    string
	hotReload bool

	themes   *theme.Registry
	sources  *sourceList
	watcher  *hotreload.Watcher
	sheet    *stylesheet.StyleSheet
	vars     map[string]string
	cache    *cache.Cache
	animator *animation.Animator
}

// NewManager creates a manager with the builtin themes, the default theme
// active and no stylesheets
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		clock:     animation.SystemClock{},
		easing:    easing.Default,
		hotReload: true,
		themes:    theme.NewRegistry(),
		sources:   newSourceList(),
		watcher:   hotreload.New(),
		sheet:     stylesheet.Empty(),
		cache:     cache.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.vars = m.themes.Variables()
	m.animator = animation.New(m.clock)
	return m
}

// GetStyle returns the style of node id. The cascade result is cached per
// node and reused while the ancestor chain and the theme version are
// unchanged; running animations are laid over it on every call.
//
// Ancestors are ordered root first. A change to an ancestor is picked up
// through the ancestor hash on the next query of each descendant.
func (m *Manager) GetStyle(id NodeID, meta Meta, ancestors []Meta) *ComputedStyle {
	hash := cache.AncestorHash(ancestors)
	version := m.themes.Version()

	base, ok := m.cache.Get(id, hash, version)
	if !ok {
		base = m.sheet.Compute(meta, ancestors)
		if previous, found := m.cache.Peek(id); found {
			m.startTransitions(id, previous.Computed, base)
		}
		m.cache.Put(id, base, hash, version)
	}
	return base.With(m.animator.Overrides(id))
}

// Tick advances every animation to now
func (m *Manager) Tick(now time.Time) {
	m.animator.Tick(now)
}

// Animate animates property of node id from start to end. A nil ease uses
// the default easing. Values that cannot blend switch halfway through.
func (m *Manager) Animate(id NodeID, property string, start, end Value, duration time.Duration, ease EasingFunc, opts ...AnimateOption) {
	if ease == nil {
		ease = easing.LookupOrDefault(m.easing)
	}
	m.animator.Animate(id, property, start, end, duration, ease, opts...)
}

// IsAnimating reports whether node id has running animations
func (m *Manager) IsAnimating(id NodeID) bool {
	return m.animator.IsAnimating(id)
}

// InvalidateWidget drops the cached style of one node, after its classes,
// id or pseudo-classes change. Descendants are not visited.
func (m *Manager) InvalidateWidget(id NodeID) {
	m.cache.Invalidate(id)
}

// InvalidateAll makes every cached style stale without visiting them
func (m *Manager) InvalidateAll() {
	v := m.themes.Bump()
	log.Debug("invalidated all styles (version %d)", v)
}

// RemoveWidget forgets a node that left the tree
func (m *Manager) RemoveWidget(id NodeID) {
	m.cache.Remove(id)
	m.animator.CancelNode(id)
}

// ThemeVersion returns the version counter cached styles are checked against
func (m *Manager) ThemeVersion() uint64 {
	return m.themes.Version()
}

// StyleSheet returns the merged stylesheet
func (m *Manager) StyleSheet() *StyleSheet {
	return m.sheet
}

// Variables returns the active variable set: the theme's variables and
// every definition of the loaded stylesheets
func (m *Manager) Variables() map[string]string {
	return maps.Clone(m.vars)
}

// CacheStats returns the style cache hit and miss counts
func (m *Manager) CacheStats() CacheStats {
	return m.cache.Stats()
}
