package hierarchy

import (
	"slices"
	"testing"

	"github.com/matzehuels/ontoview/pkg/ontology"
)

// newGraph builds a graph from node ids and superclass→subclass pairs.
func newGraph(t *testing.T, ids []string, edges [][2]string) *ontology.Graph {
	t.Helper()
	g := ontology.New("en")
	for _, id := range ids {
		if err := g.AddNode(ontology.ClassNode{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(ontology.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

// checkPartition verifies that primary and secondary edges together are
// exactly the graph's edges.
func checkPartition(t *testing.T, g *ontology.Graph, tree *Tree) {
	t.Helper()
	count := make(map[ontology.Edge]int)
	for _, e := range g.Edges() {
		count[e]++
	}
	for _, e := range append(tree.Primary(), tree.Secondary()...) {
		count[e]--
	}
	for e, n := range count {
		if n != 0 {
			t.Errorf("edge %v: partition off by %d", e, n)
		}
	}
}

func TestBuildDiamond(t *testing.T) {
	g := newGraph(t, []string{"A", "B", "C", "D"}, [][2]string{
		{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"},
	})
	tree := Build(g)

	if tree.Root() != "A" || tree.IsVirtual() {
		t.Fatalf("root = %q (virtual=%v), want A", tree.Root(), tree.IsVirtual())
	}
	if got := tree.Children("A"); !slices.Equal(got, []string{"B", "C"}) {
		t.Errorf("Children(A) = %v, want [B C]", got)
	}
	if p, _ := tree.Parent("D"); p != "B" {
		t.Errorf("Parent(D) = %q, want B", p)
	}
	want := []ontology.Edge{{From: "C", To: "D", Kind: ontology.SubClassOf}}
	if got := tree.Secondary(); !slices.Equal(got, want) {
		t.Errorf("Secondary() = %v, want %v", got, want)
	}
	if got := tree.IDs(); !slices.Equal(got, []string{"A", "B", "D", "C"}) {
		t.Errorf("IDs() = %v", got)
	}
	if tree.Depth("D") != 2 || tree.MaxDepth() != 2 {
		t.Errorf("Depth(D) = %d, MaxDepth() = %d", tree.Depth("D"), tree.MaxDepth())
	}
	checkPartition(t, g, tree)
}

func TestBuildVirtualRoot(t *testing.T) {
	g := newGraph(t, []string{"X", "A", "Y", "B"}, [][2]string{
		{"A", "B"},
	})
	tree := Build(g)

	if tree.Root() != VirtualRootID || !tree.IsVirtual() {
		t.Fatalf("root = %q, want virtual", tree.Root())
	}
	if got := tree.Children(VirtualRootID); !slices.Equal(got, []string{"X", "A", "Y"}) {
		t.Errorf("virtual children = %v, want [X A Y]", got)
	}
	if tree.Name(VirtualRootID) != VirtualRootName {
		t.Errorf("Name(virtual) = %q", tree.Name(VirtualRootID))
	}
	if g.Has(VirtualRootID) {
		t.Error("virtual root leaked into graph")
	}
	checkPartition(t, g, tree)
}

func TestBuildCyclic(t *testing.T) {
	// Every node has a superclass: A→B→C→A.
	g := newGraph(t, []string{"A", "B", "C"}, [][2]string{
		{"A", "B"}, {"B", "C"}, {"C", "A"},
	})
	tree := Build(g)

	if tree.Root() != "A" {
		t.Fatalf("root = %q, want first node A", tree.Root())
	}
	if tree.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tree.Len())
	}
	if got := tree.Secondary(); len(got) != 1 || got[0].From != "C" {
		t.Errorf("Secondary() = %v, want [C→A]", got)
	}
	checkPartition(t, g, tree)
}

func TestBuildDetachedCycle(t *testing.T) {
	// R is the only source; X and Y only reference each other.
	g := newGraph(t, []string{"R", "X", "Y", "S"}, [][2]string{
		{"R", "S"}, {"Y", "X"}, {"X", "Y"},
	})
	tree := Build(g)

	if !tree.IsVirtual() {
		t.Fatalf("root = %q, want virtual root for detached cycle", tree.Root())
	}
	if got := tree.Children(VirtualRootID); !slices.Equal(got, []string{"R", "Y"}) {
		t.Errorf("virtual children = %v, want [R Y]", got)
	}
	for _, id := range g.IDs() {
		if !tree.Has(id) {
			t.Errorf("%s missing from tree", id)
		}
	}
	checkPartition(t, g, tree)
}

func TestBuildSelfLoop(t *testing.T) {
	g := newGraph(t, []string{"A", "B"}, [][2]string{{"A", "B"}, {"B", "B"}})
	tree := Build(g)
	if tree.Root() != "A" || len(tree.Secondary()) != 1 {
		t.Errorf("root = %q, secondary = %v", tree.Root(), tree.Secondary())
	}
	checkPartition(t, g, tree)
}

func TestBuildEmpty(t *testing.T) {
	tree := Build(ontology.New("en"))
	if tree.Root() != "" || tree.Len() != 0 {
		t.Errorf("root = %q, len = %d", tree.Root(), tree.Len())
	}
	called := false
	tree.Walk(func(string, int) bool { called = true; return true })
	if called {
		t.Error("Walk visited a node of an empty tree")
	}
}

func TestBuildDoesNotMutateGraph(t *testing.T) {
	g := newGraph(t, []string{"A", "B", "C"}, [][2]string{{"A", "C"}, {"B", "C"}})
	before := g.Edges()
	_ = Build(g)
	if !slices.Equal(before, g.Edges()) || g.NodeCount() != 3 {
		t.Error("Build mutated its input graph")
	}
}

func TestDescendants(t *testing.T) {
	g := newGraph(t, []string{"A", "B", "C", "D"}, [][2]string{
		{"A", "B"}, {"B", "C"}, {"A", "D"},
	})
	tree := Build(g)
	if got := tree.Descendants("A"); !slices.Equal(got, []string{"B", "C", "D"}) {
		t.Errorf("Descendants(A) = %v", got)
	}
	if got := tree.Descendants("C"); len(got) != 0 {
		t.Errorf("Descendants(C) = %v, want none", got)
	}
}
