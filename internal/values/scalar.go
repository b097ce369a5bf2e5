package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is the unit of a Scalar
type Unit int

const (
	// UnitCells is a bare number of terminal cells
	UnitCells Unit = iota
	UnitPercent
	UnitFraction
	UnitWidth
	UnitHeight
	UnitViewWidth
	UnitViewHeight
	UnitAuto
)

// checked longest first so "vw" is not read as "w"
var unitSuffixes = []struct {
	suffix string
	unit   Unit
}{
	{"vw", UnitViewWidth},
	{"vh", UnitViewHeight},
	{"fr", UnitFraction},
	{"%", UnitPercent},
	{"w", UnitWidth},
	{"h", UnitHeight},
}

// Scalar is a dimension such as 10, 50%, 1fr, 20vw or auto
type Scalar struct {
	Value float64
	Unit  Unit
}

// AutoScalar is the "auto" dimension
var AutoScalar = Scalar{Unit: UnitAuto}

// Cells returns a cell-count scalar
func Cells(n float64) Scalar { return Scalar{Value: n, Unit: UnitCells} }

// Percent returns a percentage scalar
func Percent(p float64) Scalar { return Scalar{Value: p, Unit: UnitPercent} }

func (s Scalar) Kind() Kind { return KindScalar }

// IsAuto reports whether the scalar is "auto"
func (s Scalar) IsAuto() bool { return s.Unit == UnitAuto }

// Fraction returns a percentage as a factor in [0,1]; other units return
// their raw value
func (s Scalar) Fraction() float64 {
	if s.Unit == UnitPercent {
		return clamp01(s.Value / 100)
	}
	return s.Value
}

func (s Scalar) String() string {
	if s.Unit == UnitAuto {
		return "auto"
	}
	num := formatFloat(s.Value)
	if s.Unit == UnitCells {
		return num
	}
	for _, u := range unitSuffixes {
		if u.unit == s.Unit {
			return num + u.suffix
		}
	}
	return num
}

// Interpolable is true between two non-auto scalars of the same unit
func (s Scalar) Interpolable(to Value) bool {
	other, ok := to.(Scalar)
	return ok && s.Unit == other.Unit && s.Unit != UnitAuto
}

func (s Scalar) Blend(to Value, factor float64) Value {
	if factor <= 0 {
		return s
	}
	if factor >= 1 {
		return to
	}
	if !s.Interpolable(to) {
		return Snap(s, to, factor)
	}
	return Scalar{Value: lerp(s.Value, to.(Scalar).Value, factor), Unit: s.Unit}
}

// ParseScalar parses N, N%, Nfr, Nw, Nh, Nvw, Nvh or auto
func ParseScalar(text string) (Scalar, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "auto" {
		return AutoScalar, nil
	}
	unit := UnitCells
	number := text
	for _, u := range unitSuffixes {
		if strings.HasSuffix(text, u.suffix) {
			unit = u.unit
			number = strings.TrimSuffix(text, u.suffix)
			break
		}
	}
	v, ok := parseFinite(number)
	if !ok {
		return Scalar{}, fmt.Errorf("invalid scalar '%s'", text)
	}
	return Scalar{Value: v, Unit: unit}, nil
}

// ParsePercentage parses an opacity-like value: either N% or a bare number
// in [0,1]. The result is always a percentage scalar.
func ParsePercentage(text string) (Scalar, error) {
	text = strings.TrimSpace(text)
	if pct, ok := strings.CutSuffix(text, "%"); ok {
		v, ok := parseFinite(pct)
		if !ok {
			return Scalar{}, fmt.Errorf("invalid percentage '%s'", text)
		}
		return Percent(v), nil
	}
	v, ok := parseFinite(text)
	if !ok {
		return Scalar{}, fmt.Errorf("invalid percentage '%s'", text)
	}
	return Percent(v * 100), nil
}

// parseFinite parses a number, refusing the NaN and Inf spellings
// strconv accepts
func parseFinite(text string) (float64, bool) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
