package variables_test

import (
	"testing"

	"bennypowers.dev/tss/internal/tokenizer"
	"bennypowers.dev/tss/internal/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphOf(t *testing.T, src string) *variables.DependencyGraph {
	t.Helper()
	defs, errs := variables.Extract("", tokenizer.Tokenize(src))
	require.Empty(t, errs)
	return variables.BuildDependencyGraph(defs)
}

func TestBuildDependencyGraph(t *testing.T) {
	t.Run("simple dependency graph", func(t *testing.T) {
		graph := graphOf(t, "$base: red; $primary: $base;")
		require.NotNil(t, graph)

		assert.Equal(t, []string{"base"}, graph.GetDependencies("primary"))
		assert.Empty(t, graph.GetDependencies("base"))
		assert.Equal(t, []string{"primary"}, graph.GetDependents("base"))
	})

	t.Run("references to undefined names are not edges", func(t *testing.T) {
		graph := graphOf(t, "$x: $a $b;")
		require.NotNil(t, graph)
		assert.Empty(t, graph.GetDependencies("x"))
	})

	t.Run("chained dependencies", func(t *testing.T) {
		graph := graphOf(t, "$x: red; $y: $x; $z: $y;")
		require.NotNil(t, graph)
		assert.Equal(t, []string{"x"}, graph.GetDependencies("y"))
		assert.Equal(t, []string{"y"}, graph.GetDependencies("z"))
	})
}

func TestFindCycle(t *testing.T) {
	t.Run("acyclic", func(t *testing.T) {
		graph := graphOf(t, "$z: $y; $y: $x; $x: red;")
		assert.Nil(t, graph.FindCycle())
		assert.Nil(t, graph.CycleFrom("z"))
	})

	t.Run("cycle reachable from a name", func(t *testing.T) {
		graph := graphOf(t, "$d: $a; $a: $b; $b: $a;")
		assert.Equal(t, []string{"a", "b", "a"}, graph.FindCycle())
		assert.Equal(t, []string{"a", "b", "a"}, graph.CycleFrom("d"))
	})

	t.Run("self reference", func(t *testing.T) {
		graph := graphOf(t, "$x: red; $a: $a;")
		assert.Nil(t, graph.CycleFrom("x"))
		assert.Equal(t, []string{"a", "a"}, graph.CycleFrom("a"))
	})
}
