package branch

import (
	"slices"
	"testing"

	"github.com/matzehuels/ontoview/pkg/ontology"
)

func newGraph(t *testing.T, ids []string, edges [][2]string) *ontology.Graph {
	t.Helper()
	g := ontology.New("en")
	for _, id := range ids {
		if err := g.AddNode(ontology.ClassNode{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(ontology.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestExtract(t *testing.T) {
	// A
	// ├── B ── D
	// └── C ──┘
	// E (unrelated), F below D
	g := newGraph(t, []string{"A", "B", "C", "D", "E", "F"}, [][2]string{
		{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}, {"D", "F"},
	})

	tests := []struct {
		name      string
		focal     string
		wantNodes []string
		wantEdges int
	}{
		{"multi-parent leaf", "D", []string{"A", "B", "C", "D", "F"}, 5},
		{"inner node", "B", []string{"A", "B", "D", "F"}, 3},
		{"root", "A", []string{"A", "B", "C", "D", "F"}, 5},
		{"isolated", "E", []string{"E"}, 0},
		{"unknown", "Z", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := Extract(g, tt.focal)
			if got := sub.IDs(); !slices.Equal(got, tt.wantNodes) {
				t.Errorf("IDs() = %v, want %v", got, tt.wantNodes)
			}
			if got := sub.EdgeCount(); got != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", got, tt.wantEdges)
			}
		})
	}
	if g.NodeCount() != 6 || g.EdgeCount() != 5 {
		t.Error("Extract mutated its input")
	}
}

func TestExtractIdempotent(t *testing.T) {
	g := newGraph(t, []string{"A", "B", "C", "D"}, [][2]string{
		{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"},
	})
	once := Extract(g, "B")
	twice := Extract(once, "B")
	if !slices.Equal(once.IDs(), twice.IDs()) || !slices.Equal(once.Edges(), twice.Edges()) {
		t.Errorf("Extract not idempotent: %v / %v", once.IDs(), twice.IDs())
	}
}

func TestExtractCycle(t *testing.T) {
	g := newGraph(t, []string{"A", "B", "C"}, [][2]string{
		{"A", "B"}, {"B", "C"}, {"C", "A"},
	})
	sub := Extract(g, "B")
	if sub.NodeCount() != 3 || sub.EdgeCount() != 3 {
		t.Errorf("got %d nodes %d edges, want 3/3", sub.NodeCount(), sub.EdgeCount())
	}
}
