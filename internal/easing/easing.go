// Package easing provides the named easing curves usable in transitions and
// animations. Every curve maps [0,1] onto a value that starts at 0 and ends
// at 1; intermediate values may overshoot (back, elastic).
package easing

import (
	"math"
	"sort"
)

// Func maps a linear progress factor to an eased one
type Func func(float64) float64

// Default is the easing used when a transition names none
const Default = "in_out_cubic"

const (
	c1 = 1.70158
	c2 = c1 * 1.525
	c3 = c1 + 1
	c4 = (2 * math.Pi) / 3
	c5 = (2 * math.Pi) / 4.5
)

var curves = map[string]Func{
	"none":   func(x float64) float64 { return 1 },
	"round":  func(x float64) float64 { return math.Round(x) },
	"linear": func(x float64) float64 { return x },

	"in_sine":     func(x float64) float64 { return 1 - math.Cos((x*math.Pi)/2) },
	"out_sine":    func(x float64) float64 { return math.Sin((x * math.Pi) / 2) },
	"in_out_sine": func(x float64) float64 { return -(math.Cos(math.Pi*x) - 1) / 2 },

	"in_quad":     func(x float64) float64 { return x * x },
	"out_quad":    func(x float64) float64 { return 1 - (1-x)*(1-x) },
	"in_out_quad": inOutPow(2),

	"in_cubic":     func(x float64) float64 { return x * x * x },
	"out_cubic":    func(x float64) float64 { return 1 - math.Pow(1-x, 3) },
	"in_out_cubic": inOutPow(3),

	"in_quart":     func(x float64) float64 { return math.Pow(x, 4) },
	"out_quart":    func(x float64) float64 { return 1 - math.Pow(1-x, 4) },
	"in_out_quart": inOutPow(4),

	"in_quint":     func(x float64) float64 { return math.Pow(x, 5) },
	"out_quint":    func(x float64) float64 { return 1 - math.Pow(1-x, 5) },
	"in_out_quint": inOutPow(5),

	"in_expo": func(x float64) float64 {
		if x == 0 {
			return 0
		}
		return math.Pow(2, 10*x-10)
	},
	"out_expo": func(x float64) float64 {
		if x == 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*x)
	},
	"in_out_expo": func(x float64) float64 {
		switch {
		case x == 0:
			return 0
		case x == 1:
			return 1
		case x < 0.5:
			return math.Pow(2, 20*x-10) / 2
		default:
			return (2 - math.Pow(2, -20*x+10)) / 2
		}
	},

	"in_circ":  func(x float64) float64 { return 1 - math.Sqrt(1-x*x) },
	"out_circ": func(x float64) float64 { return math.Sqrt(1 - (x-1)*(x-1)) },
	"in_out_circ": func(x float64) float64 {
		if x < 0.5 {
			return (1 - math.Sqrt(1-math.Pow(2*x, 2))) / 2
		}
		return (math.Sqrt(1-math.Pow(-2*x+2, 2)) + 1) / 2
	},

	"in_back":  func(x float64) float64 { return c3*x*x*x - c1*x*x },
	"out_back": func(x float64) float64 { return 1 + c3*math.Pow(x-1, 3) + c1*math.Pow(x-1, 2) },
	"in_out_back": func(x float64) float64 {
		if x < 0.5 {
			return (math.Pow(2*x, 2) * ((c2+1)*2*x - c2)) / 2
		}
		return (math.Pow(2*x-2, 2)*((c2+1)*(x*2-2)+c2) + 2) / 2
	},

	"in_elastic": func(x float64) float64 {
		if x == 0 || x == 1 {
			return x
		}
		return -math.Pow(2, 10*x-10) * math.Sin((x*10-10.75)*c4)
	},
	"out_elastic": func(x float64) float64 {
		if x == 0 || x == 1 {
			return x
		}
		return math.Pow(2, -10*x)*math.Sin((x*10-0.75)*c4) + 1
	},
	"in_out_elastic": func(x float64) float64 {
		switch {
		case x == 0 || x == 1:
			return x
		case x < 0.5:
			return -(math.Pow(2, 20*x-10) * math.Sin((20*x-11.125)*c5)) / 2
		default:
			return (math.Pow(2, -20*x+10)*math.Sin((20*x-11.125)*c5))/2 + 1
		}
	},

	"in_bounce":  func(x float64) float64 { return 1 - outBounce(1-x) },
	"out_bounce": outBounce,
	"in_out_bounce": func(x float64) float64 {
		if x < 0.5 {
			return (1 - outBounce(1-2*x)) / 2
		}
		return (1 + outBounce(2*x-1)) / 2
	},
}

func inOutPow(p float64) Func {
	return func(x float64) float64 {
		if x < 0.5 {
			return math.Pow(2, p-1) * math.Pow(x, p)
		}
		return 1 - math.Pow(-2*x+2, p)/2
	}
}

func outBounce(x float64) float64 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case x < 1/d1:
		return n1 * x * x
	case x < 2/d1:
		x -= 1.5 / d1
		return n1*x*x + 0.75
	case x < 2.5/d1:
		x -= 2.25 / d1
		return n1*x*x + 0.9375
	default:
		x -= 2.625 / d1
		return n1*x*x + 0.984375
	}
}

// Lookup returns the curve registered under name
func Lookup(name string) (Func, bool) {
	f, ok := curves[name]
	return f, ok
}

// LookupOrDefault returns the named curve, or the default curve when the
// name is unknown.
func LookupOrDefault(name string) Func {
	if f, ok := curves[name]; ok {
		return f
	}
	return curves[Default]
}

// Names returns every registered easing name in alphabetical order
func Names() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
