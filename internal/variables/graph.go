package variables

import "fmt"

// DependencyGraph represents a directed graph of variable dependencies
type DependencyGraph struct {
	// adjacency list: variable name -> variables its value references
	dependencies map[string][]string
	// reverse lookup: variable name -> variables that reference it
	dependents map[string][]string
	// all defined names, in definition order so traversal is deterministic
	nodes []string
}

// BuildDependencyGraph builds a dependency graph from variable definitions.
// References to names that are not defined here (theme variables, typos)
// are not edges: they cannot take part in a cycle.
func BuildDependencyGraph(defs []Definition) *DependencyGraph {
	graph := &DependencyGraph{
		dependencies: make(map[string][]string),
		dependents:   make(map[string][]string),
	}

	defined := make(map[string]bool)
	for _, def := range defs {
		if !defined[def.Name] {
			graph.nodes = append(graph.nodes, def.Name)
		}
		defined[def.Name] = true
	}

	for _, def := range defs {
		var deps []string
		for _, ref := range def.References() {
			if defined[ref.Name] {
				deps = append(deps, ref.Name)
			}
		}
		// a redefinition replaces the earlier edges
		graph.dependencies[def.Name] = deps
	}
	for _, name := range graph.nodes {
		for _, dep := range graph.dependencies[name] {
			graph.dependents[dep] = append(graph.dependents[dep], name)
		}
	}

	return graph
}

// GetDependencies returns the variables the given variable references
func (g *DependencyGraph) GetDependencies(name string) []string {
	if deps, ok := g.dependencies[name]; ok && deps != nil {
		return deps
	}
	return []string{}
}

// GetDependents returns the variables whose values reference name
func (g *DependencyGraph) GetDependents(name string) []string {
	if deps, ok := g.dependents[name]; ok {
		return deps
	}
	return []string{}
}

// FindCycle returns the cycle path if one exists, or nil if no cycle.
// The path starts and ends with the same name.
func (g *DependencyGraph) FindCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := []string{}

	for _, node := range g.nodes {
		if cycle := g.findCycleDFS(node, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	return nil
}

func (g *DependencyGraph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		cycleStart := -1
		for i, n := range path {
			if n == node {
				cycleStart = i
				break
			}
		}
		if cycleStart == -1 {
			panic(fmt.Sprintf("cycle detection invariant violated: node %q in recStack but not in path %v", node, path))
		}
		cycle := make([]string, 0, len(path)-cycleStart+1)
		cycle = append(cycle, path[cycleStart:]...)
		return append(cycle, node)
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// CycleFrom returns a cycle reachable from name, or nil. A definition that
// cannot be resolved in source order is reported as a cycle only when
// following its references leads back around.
func (g *DependencyGraph) CycleFrom(name string) []string {
	return g.findCycleDFS(name, make(map[string]bool), make(map[string]bool), nil)
}
