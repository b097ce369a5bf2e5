package style

import (
	"cmp"

	"bennypowers.dev/tss/internal/animation"
	"bennypowers.dev/tss/internal/easing"
	"bennypowers.dev/tss/internal/values"
)

// startTransitions animates the properties that changed between two
// cascade results of a node, when the new style declares a transition for
// them. A property already animating continues from its current value.
func (m *Manager) startTransitions(id NodeID, previous, next *ComputedStyle) {
	transitions := next.Transitions()
	if len(transitions) == 0 {
		return
	}
	for _, property := range previous.Diff(next) {
		tr, ok := transitions.For(property)
		if !ok || tr.Duration <= 0 {
			continue
		}

		start := previous.Get(property)
		if current, animating := m.animator.Value(id, property); animating {
			start = current
		}
		end := next.Get(property)
		if values.Equal(start, end) {
			continue
		}

		ease := easing.LookupOrDefault(cmp.Or(tr.Easing, m.easing))
		m.animator.Animate(id, property, start, end, tr.Duration, ease, animation.WithDelay(tr.Delay))
	}
}
