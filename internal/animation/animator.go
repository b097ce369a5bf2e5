// Package animation keeps the running property animations of every node
// and produces the values that override the cascade while they run.
package animation

import (
	"cmp"
	"slices"
	"time"

	"bennypowers.dev/tss/internal/easing"
	"bennypowers.dev/tss/internal/log"
	"bennypowers.dev/tss/internal/styleerr"
	"bennypowers.dev/tss/internal/values"
	"bennypowers.dev/tss/internal/widget"
)

// Animation moves one property of one node from Start to End
type Animation struct {
	Node      widget.NodeID
	Property  string
	Start     values.Value
	End       values.Value
	StartTime time.Time
	Duration  time.Duration
	Easing    easing.Func

	current    values.Value
	onComplete func()
}

// Factor returns the linear progress at now, clamped to [0,1]
func (a *Animation) Factor(now time.Time) float64 {
	if a.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(a.StartTime)
	if elapsed <= 0 {
		return 0
	}
	return min(1, float64(elapsed)/float64(a.Duration))
}

// ValueAt returns the animated value at factor. Interpolable values blend
// along the easing curve; others switch to End once half the time is up.
// A factor of 1 always yields End exactly.
func (a *Animation) ValueAt(factor float64) values.Value {
	switch {
	case factor >= 1:
		return a.End
	case factor <= 0:
		return a.Start
	case a.Start.Interpolable(a.End):
		return a.Start.Blend(a.End, a.Easing(factor))
	default:
		return values.Snap(a.Start, a.End, factor)
	}
}

// Option configures an animation
type Option func(*Animation)

// WithDelay postpones the start of the animation
func WithDelay(d time.Duration) Option {
	return func(a *Animation) {
		a.StartTime = a.StartTime.Add(d)
	}
}

// OnComplete registers a callback fired once, on the tick that finishes
// the animation. Cancelled animations never fire it.
func OnComplete(fn func()) Option {
	return func(a *Animation) {
		a.onComplete = fn
	}
}

type key struct {
	node     widget.NodeID
	property string
}

func compareKeys(a, b key) int {
	if c := cmp.Compare(a.node, b.node); c != 0 {
		return c
	}
	return cmp.Compare(a.property, b.property)
}

// Animator is the registry of active animations. Like the rest of the
// engine it is driven from the frame loop only.
type Animator struct {
	clock  Clock
	active map[key]*Animation
	// finished holds the end values of animations completed by the last
	// tick, so the frame after completion still shows them
	finished map[key]values.Value
}

// New creates an animator reading start times from clock
func New(clock Clock) *Animator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Animator{
		clock:    clock,
		active:   make(map[key]*Animation),
		finished: make(map[key]values.Value),
	}
}

// Animate starts animating property of node from start to end. An
// animation already running for the same property is replaced without
// firing its callback. A nil ease uses the default curve.
func (a *Animator) Animate(node widget.NodeID, property string, start, end values.Value, duration time.Duration, ease easing.Func, opts ...Option) {
	if ease == nil {
		ease = easing.LookupOrDefault(easing.Default)
	}
	if start.Kind() != end.Kind() {
		log.Warn("%v", styleerr.NewAnimationTargetError(property, start.String(), end.String()))
	}

	anim := &Animation{
		Node:      node,
		Property:  property,
		Start:     start,
		End:       end,
		StartTime: a.clock.Now(),
		Duration:  duration,
		Easing:    ease,
		current:   start,
	}
	for _, opt := range opts {
		opt(anim)
	}

	k := key{node, property}
	delete(a.finished, k)
	a.active[k] = anim
	log.Debug("animate node %d %s: %s -> %s over %s", node, property, start, end, duration)
}

// Tick advances every animation to now. Animations that reach their end
// are removed and their callbacks fire after all state is updated.
func (a *Animator) Tick(now time.Time) {
	clear(a.finished)

	keys := make([]key, 0, len(a.active))
	for k := range a.active {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)

	var callbacks []func()
	for _, k := range keys {
		anim := a.active[k]
		factor := anim.Factor(now)
		anim.current = anim.ValueAt(factor)
		if factor < 1 {
			continue
		}
		delete(a.active, k)
		a.finished[k] = anim.End
		if anim.onComplete != nil {
			callbacks = append(callbacks, anim.onComplete)
		}
	}

	for _, fn := range callbacks {
		fn()
	}
}

// Value returns the current animated value of property, if it is animating
// or finished on the last tick
func (a *Animator) Value(node widget.NodeID, property string) (values.Value, bool) {
	k := key{node, property}
	if anim, ok := a.active[k]; ok {
		return anim.current, true
	}
	v, ok := a.finished[k]
	return v, ok
}

// Overrides returns every animated value of node, or nil
func (a *Animator) Overrides(node widget.NodeID) map[string]values.Value {
	var result map[string]values.Value
	set := func(property string, v values.Value) {
		if result == nil {
			result = make(map[string]values.Value)
		}
		result[property] = v
	}
	for k, v := range a.finished {
		if k.node == node {
			set(k.property, v)
		}
	}
	for k, anim := range a.active {
		if k.node == node {
			set(k.property, anim.current)
		}
	}
	return result
}

// Get returns the running animation of property, if any
func (a *Animator) Get(node widget.NodeID, property string) (*Animation, bool) {
	anim, ok := a.active[key{node, property}]
	return anim, ok
}

// Cancel stops one animation without firing its callback
func (a *Animator) Cancel(node widget.NodeID, property string) {
	k := key{node, property}
	delete(a.active, k)
	delete(a.finished, k)
}

// CancelNode stops every animation of node
func (a *Animator) CancelNode(node widget.NodeID) {
	for k := range a.active {
		if k.node == node {
			delete(a.active, k)
		}
	}
	for k := range a.finished {
		if k.node == node {
			delete(a.finished, k)
		}
	}
}

// IsAnimating reports whether node has a running animation
func (a *Animator) IsAnimating(node widget.NodeID) bool {
	for k := range a.active {
		if k.node == node {
			return true
		}
	}
	return false
}

// Active returns the number of running animations
func (a *Animator) Active() int {
	return len(a.active)
}
