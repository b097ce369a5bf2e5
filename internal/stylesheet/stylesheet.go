package stylesheet

import (
	"fmt"
	"slices"

	"bennypowers.dev/tss/internal/selector"
	"bennypowers.dev/tss/internal/values"
	"bennypowers.dev/tss/internal/widget"
	"github.com/xlab/treeprint"
)

// StyleSheet is an ordered, indexed collection of rules. It is built once
// and never mutated; a change of variables or theme builds a new one.
type StyleSheet struct {
	rules   []*RuleSet
	atRules []AtRule
	// index maps "Type", ".class" and "#id" to the positions of rules
	// whose selectors have that key on their subject
	index map[string][]int
	// universal holds rules with at least one unkeyed selector
	universal []int
}

// New builds a sheet. Rules are sorted by Order so the index positions
// follow source order.
func New(rules []*RuleSet, atRules []AtRule) *StyleSheet {
	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b *RuleSet) int { return a.Order - b.Order })

	s := &StyleSheet{
		rules:   sorted,
		atRules: slices.Clone(atRules),
		index:   make(map[string][]int),
	}
	for i, rule := range sorted {
		keys := make(map[string]bool)
		for _, sel := range rule.Selectors {
			keys[sel.IndexKey()] = true
		}
		for key := range keys {
			if key == "" {
				s.universal = append(s.universal, i)
			} else {
				s.index[key] = append(s.index[key], i)
			}
		}
	}
	return s
}

// Empty returns a sheet with no rules
func Empty() *StyleSheet {
	return New(nil, nil)
}

// Rules returns the rules in cascade order
func (s *StyleSheet) Rules() []*RuleSet {
	return s.rules
}

// AtRules returns the at-rules in source order
func (s *StyleSheet) AtRules() []AtRule {
	return s.atRules
}

// Candidates returns the rules that may match node, in cascade order
func (s *StyleSheet) Candidates(node widget.Meta) []*RuleSet {
	var positions []int
	seen := make(map[int]bool)
	add := func(list []int) {
		for _, i := range list {
			if !seen[i] {
				seen[i] = true
				positions = append(positions, i)
			}
		}
	}
	for _, key := range selector.NodeKeys(node) {
		add(s.index[key])
	}
	add(s.universal)
	slices.Sort(positions)

	result := make([]*RuleSet, len(positions))
	for i, pos := range positions {
		result[i] = s.rules[pos]
	}
	return result
}

// winner is the current best declaration for one property
type winner struct {
	spec  Specificity
	value values.Value
}

// Resolve runs the cascade for node and returns the winning value of every
// property some matching rule sets
func (s *StyleSheet) Resolve(node widget.Meta, ancestors []widget.Meta) map[string]values.Value {
	winners := make(map[string]winner)
	for _, rule := range s.Candidates(node) {
		selSpec, ok := rule.Match(node, ancestors)
		if !ok {
			continue
		}
		for _, decl := range rule.Declarations {
			spec := Specificity{
				User:      rule.Origin == OriginUser,
				Important: decl.Important,
				Selector:  selSpec,
				Order:     rule.Order,
			}
			// candidates arrive in source order, so an equal rank means a
			// later declaration and replaces the earlier one
			if current, ok := winners[decl.Property]; ok && spec.Less(current.spec) {
				continue
			}
			winners[decl.Property] = winner{spec: spec, value: decl.Value}
		}
	}

	result := make(map[string]values.Value, len(winners))
	for name, w := range winners {
		result[name] = w.value
	}
	return result
}

// Compute resolves node into a ComputedStyle
func (s *StyleSheet) Compute(node widget.Meta, ancestors []widget.Meta) *ComputedStyle {
	return NewComputedStyle(s.Resolve(node, ancestors))
}

// Dump renders the sheet as a tree, one branch per rule
func (s *StyleSheet) Dump() string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("stylesheet (%d rules)", len(s.rules)))
	for _, rule := range s.rules {
		branch := tree.AddMetaBranch(
			fmt.Sprintf("%s #%d %s", rule.Origin, rule.Order, location(rule.Source, rule.Line)),
			rule.SelectorText,
		)
		for _, decl := range rule.Declarations {
			branch.AddNode(decl.String())
		}
	}
	for _, at := range s.atRules {
		tree.AddMetaNode(location(at.Source, at.Line), at.String())
	}
	return tree.String()
}

func location(source string, line int) string {
	if source == "" {
		source = "<inline>"
	}
	return fmt.Sprintf("%s:%d", source, line)
}
