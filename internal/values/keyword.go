package values

import (
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/tss/internal/collections"
)

// Keyword is one identifier out of a fixed enumeration
type Keyword string

func (k Keyword) Kind() Kind { return KindKeyword }

func (k Keyword) String() string { return string(k) }

func (k Keyword) Interpolable(Value) bool { return false }

func (k Keyword) Blend(to Value, factor float64) Value {
	return Snap(k, to, factor)
}

func parseKeyword(text string, allowed ...string) (Keyword, error) {
	word := strings.ToLower(strings.TrimSpace(text))
	if !slices.Contains(allowed, word) {
		return "", fmt.Errorf("invalid value '%s'; expected one of %s", text, strings.Join(allowed, ", "))
	}
	return Keyword(word), nil
}

var textStyleFlags = collections.NewSet(
	"bold", "dim", "italic", "underline", "reverse", "strike", "blink",
)

// Flags is a set of text style flags, kept sorted
type Flags []string

func (f Flags) Kind() Kind { return KindFlags }

// Has reports whether flag is set
func (f Flags) Has(flag string) bool {
	_, found := slices.BinarySearch(f, flag)
	return found
}

func (f Flags) String() string {
	if len(f) == 0 {
		return "none"
	}
	return strings.Join(f, " ")
}

func (f Flags) Interpolable(Value) bool { return false }

func (f Flags) Blend(to Value, factor float64) Value {
	return Snap(f, to, factor)
}

// ParseFlags parses space separated text style flags; "none" clears them
func ParseFlags(text string) (Flags, error) {
	set := collections.NewSet[string]()
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if word == "none" {
			continue
		}
		if !textStyleFlags.Has(word) {
			return nil, fmt.Errorf("unknown text style '%s'", word)
		}
		set.Add(word)
	}
	return Flags(collections.Sorted(set)), nil
}
