// Package hierarchy collapses a multi-parent class graph into a rooted
// display tree.
//
// Every node gets exactly one tree parent: the source of the first edge, in
// graph edge order, that names it as target. All other edges are kept on the
// side as secondary edges, so
//
//	tree.Primary() ∪ tree.Secondary() == graph.Edges()
//
// When the graph has several nodes without superclasses, a virtual root
// ([VirtualRootID]) is placed above them. The virtual root is never a node of
// the graph.
package hierarchy

import (
	"github.com/matzehuels/ontoview/pkg/ontology"
)

const (
	// VirtualRootID is the id of the synthetic root placed above several
	// top-level classes.
	VirtualRootID = "OntologyRoot"

	// VirtualRootName is the display name of the virtual root.
	VirtualRootName = "Ontology Root"
)

// Tree is a rooted display tree over an ontology graph.
//
// A Tree is immutable once built and keeps a reference to the graph it was
// derived from for display names.
type Tree struct {
	graph   *ontology.Graph
	root    string
	virtual bool

	order    []string // preorder
	parent   map[string]string
	children map[string][]string
	depth    map[string]int

	primary   []ontology.Edge
	secondary []ontology.Edge
}

// Root returns the root id, or "" for a tree over an empty graph.
func (t *Tree) Root() string { return t.root }

// IsVirtual reports whether the root is the synthetic [VirtualRootID].
func (t *Tree) IsVirtual() bool { return t.virtual }

// Graph returns the graph the tree was built from.
func (t *Tree) Graph() *ontology.Graph { return t.graph }

// Len returns the number of tree nodes, including a virtual root.
func (t *Tree) Len() int { return len(t.order) }

// IDs returns all tree node ids in preorder. Children are visited in the
// order their tree edges were assigned.
func (t *Tree) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Has reports whether id is part of the tree.
func (t *Tree) Has(id string) bool {
	_, ok := t.depth[id]
	return ok
}

// Parent returns the tree parent of id. The root has none.
func (t *Tree) Parent(id string) (string, bool) {
	p, ok := t.parent[id]
	return p, ok
}

// Children returns the tree children of id in order. The slice must not be
// modified.
func (t *Tree) Children(id string) []string { return t.children[id] }

// Depth returns the distance of id from the root, or -1 when id is not in the
// tree.
func (t *Tree) Depth(id string) int {
	d, ok := t.depth[id]
	if !ok {
		return -1
	}
	return d
}

// MaxDepth returns the depth of the deepest node.
func (t *Tree) MaxDepth() int {
	m := 0
	for _, d := range t.depth {
		m = max(m, d)
	}
	return m
}

// Name returns the display name of id.
func (t *Tree) Name(id string) string {
	if t.virtual && id == VirtualRootID {
		return VirtualRootName
	}
	return t.graph.Name(id)
}

// Primary returns the graph edges used as tree edges, in graph edge order.
// Links from a virtual root are not graph edges and are not included.
func (t *Tree) Primary() []ontology.Edge { return append([]ontology.Edge(nil), t.primary...) }

// Secondary returns the graph edges not used as tree edges, in graph edge
// order.
func (t *Tree) Secondary() []ontology.Edge { return append([]ontology.Edge(nil), t.secondary...) }

// Walk visits the tree in preorder. Returning false from fn skips the
// children of the visited node.
func (t *Tree) Walk(fn func(id string, depth int) bool) {
	if t.root == "" {
		return
	}
	var visit func(id string)
	visit = func(id string) {
		if !fn(id, t.depth[id]) {
			return
		}
		for _, c := range t.children[id] {
			visit(c)
		}
	}
	visit(t.root)
}

// Descendants returns every tree-descendant of id, excluding id, in preorder.
func (t *Tree) Descendants(id string) []string {
	var out []string
	var visit func(n string)
	visit = func(n string) {
		for _, c := range t.children[n] {
			out = append(out, c)
			visit(c)
		}
	}
	visit(id)
	return out
}
