package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Spacing holds the four edges of padding or margin, in cells
type Spacing struct {
	Top, Right, Bottom, Left int
}

func (s Spacing) Kind() Kind { return KindSpacing }

func (s Spacing) String() string {
	switch {
	case s.Top == s.Right && s.Right == s.Bottom && s.Bottom == s.Left:
		return strconv.Itoa(s.Top)
	case s.Top == s.Bottom && s.Left == s.Right:
		return fmt.Sprintf("%d %d", s.Top, s.Right)
	default:
		return fmt.Sprintf("%d %d %d %d", s.Top, s.Right, s.Bottom, s.Left)
	}
}

func (s Spacing) Interpolable(to Value) bool {
	_, ok := to.(Spacing)
	return ok
}

// Blend interpolates each edge, rounding to whole cells
func (s Spacing) Blend(to Value, factor float64) Value {
	if factor <= 0 {
		return s
	}
	if factor >= 1 {
		return to
	}
	other, ok := to.(Spacing)
	if !ok {
		return Snap(s, to, factor)
	}
	edge := func(a, b int) int {
		return int(math.Round(lerp(float64(a), float64(b), factor)))
	}
	return Spacing{
		Top:    edge(s.Top, other.Top),
		Right:  edge(s.Right, other.Right),
		Bottom: edge(s.Bottom, other.Bottom),
		Left:   edge(s.Left, other.Left),
	}
}

// ParseSpacing parses the 1, 2 or 4 value shorthand
func ParseSpacing(text string) (Spacing, error) {
	fields := strings.Fields(text)
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Spacing{}, fmt.Errorf("invalid spacing value '%s'", f)
		}
		nums[i] = n
	}
	switch len(nums) {
	case 1:
		return Spacing{nums[0], nums[0], nums[0], nums[0]}, nil
	case 2:
		return Spacing{nums[0], nums[1], nums[0], nums[1]}, nil
	case 4:
		return Spacing{nums[0], nums[1], nums[2], nums[3]}, nil
	default:
		return Spacing{}, fmt.Errorf("spacing requires 1, 2 or 4 values, got %d", len(nums))
	}
}
