// Package branch extracts the neighbourhood of one class: everything above
// it and everything below it.
package branch

import (
	"github.com/matzehuels/ontoview/pkg/ontology"
)

// Extract returns the subgraph of g induced by focal, all of its ancestors
// and all of its descendants. Node and edge order follow g. An unknown focal
// id yields an empty graph. g is never modified, and cyclic graphs terminate
// because every node is visited at most once per direction.
func Extract(g *ontology.Graph, focal string) *ontology.Graph {
	keep := Members(g, focal)
	return g.Subgraph(keep)
}

// Members returns the id set Extract would keep.
func Members(g *ontology.Graph, focal string) map[string]bool {
	keep := make(map[string]bool)
	if !g.Has(focal) {
		return keep
	}
	keep[focal] = true
	for id := range reach(focal, g.Children) {
		keep[id] = true
	}
	for id := range reach(focal, g.Parents) {
		keep[id] = true
	}
	return keep
}

// reach returns every node reachable from start along next, excluding start
// unless it lies on a cycle.
func reach(start string, next func(string) []string) map[string]bool {
	seen := make(map[string]bool)
	queue := append([]string(nil), next(start)...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		queue = append(queue, next(id)...)
	}
	return seen
}
