package values

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"bennypowers.dev/tss/internal/easing"
)

// Transition declares that changes to Property animate over Duration
type Transition struct {
	Property string
	Duration time.Duration
	// Easing is empty when the declaration names no curve; the style
	// manager then applies its configured default
	Easing string
	Delay  time.Duration
}

func (t Transition) String() string {
	s := t.Property + " " + formatDuration(t.Duration)
	if t.Easing != "" || t.Delay > 0 {
		s += " " + cmp.Or(t.Easing, easing.Default)
	}
	if t.Delay > 0 {
		s += " " + formatDuration(t.Delay)
	}
	return s
}

// Transitions is the value of the transition property
type Transitions []Transition

func (t Transitions) Kind() Kind { return KindTransitions }

func (t Transitions) String() string {
	if len(t) == 0 {
		return "none"
	}
	parts := make([]string, len(t))
	for i, tr := range t {
		parts[i] = tr.String()
	}
	return strings.Join(parts, ", ")
}

func (t Transitions) Interpolable(Value) bool { return false }

func (t Transitions) Blend(to Value, factor float64) Value {
	return Snap(t, to, factor)
}

// For returns the transition declared for property, if any
func (t Transitions) For(property string) (Transition, bool) {
	for _, tr := range t {
		if tr.Property == property {
			return tr, true
		}
	}
	return Transition{}, false
}

// ParseTransitions parses "prop duration [easing] [delay], ..."
func ParseTransitions(text string) (Transitions, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, "none") {
		return Transitions{}, nil
	}
	var result Transitions
	for _, part := range strings.Split(text, ",") {
		fields := strings.Fields(part)
		if len(fields) < 2 || len(fields) > 4 {
			return nil, fmt.Errorf("invalid transition '%s'; expected <property> <duration> [easing] [delay]", strings.TrimSpace(part))
		}
		if !Known(fields[0]) {
			return nil, fmt.Errorf("cannot transition unknown property '%s'", fields[0])
		}
		duration, err := ParseDuration(fields[1])
		if err != nil {
			return nil, err
		}
		tr := Transition{Property: fields[0], Duration: duration}
		if len(fields) > 2 {
			if _, ok := easing.Lookup(fields[2]); !ok {
				return nil, fmt.Errorf("unknown easing '%s'", fields[2])
			}
			tr.Easing = fields[2]
		}
		if len(fields) > 3 {
			if tr.Delay, err = ParseDuration(fields[3]); err != nil {
				return nil, err
			}
		}
		result = append(result, tr)
	}
	return result, nil
}

// ParseDuration parses "300ms", "1.5s" or a bare number of seconds
func ParseDuration(text string) (time.Duration, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	scale := float64(time.Second)
	number := text
	if n, ok := strings.CutSuffix(text, "ms"); ok {
		number, scale = n, float64(time.Millisecond)
	} else if n, ok := strings.CutSuffix(text, "s"); ok {
		number = n
	}
	v, ok := parseFinite(number)
	if !ok || v < 0 {
		return 0, fmt.Errorf("invalid duration '%s'", text)
	}
	return time.Duration(v * scale), nil
}

func formatDuration(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", d/time.Second)
	}
	return fmt.Sprintf("%dms", d/time.Millisecond)
}
