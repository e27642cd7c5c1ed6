package layout

import (
	"math"
	"sort"
	"testing"

	"github.com/matzehuels/ontoview/pkg/hierarchy"
	"github.com/matzehuels/ontoview/pkg/ontology"
)

type classDef struct {
	id, label string
}

func buildTree(t *testing.T, classes []classDef, edges [][2]string) *hierarchy.Tree {
	t.Helper()
	g := ontology.New("en")
	for _, c := range classes {
		n := ontology.ClassNode{ID: c.id}
		if c.label != "" {
			n.Labels = []ontology.Label{{Lang: "en", Text: c.label}}
		}
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(ontology.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return hierarchy.Build(g)
}

func ids(names ...string) []classDef {
	out := make([]classDef, len(names))
	for i, n := range names {
		out[i] = classDef{id: n}
	}
	return out
}

func assertX(t *testing.T, l *Layout, want map[string]float64) {
	t.Helper()
	for id, x := range want {
		p, ok := l.Position(id)
		if !ok {
			t.Errorf("%s: no position", id)
			continue
		}
		if math.Abs(p.X-x) > 1e-9 {
			t.Errorf("%s: x = %v, want %v", id, p.X, x)
		}
	}
}

func TestComputeDiamond(t *testing.T) {
	tree := buildTree(t, ids("A", "B", "C", "D"), [][2]string{
		{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"},
	})
	l := Compute(tree, Options{})

	assertX(t, l, map[string]float64{"A": 0, "B": -50, "C": 50, "D": -50})
	for id, depth := range map[string]int{"A": 0, "B": 1, "C": 1, "D": 2} {
		p, _ := l.Position(id)
		if p.Depth != depth || p.Y != float64(depth)*DefaultLevelHeight {
			t.Errorf("%s: depth %d y %v, want depth %d", id, p.Depth, p.Y, depth)
		}
	}
	if p, _ := l.Position("A"); p.HalfWidth != 14.5 {
		t.Errorf("HalfWidth(A) = %v, want 14.5", p.HalfWidth)
	}
}

func TestComputeCousinSeparation(t *testing.T) {
	tree := buildTree(t, ids("R", "A", "B", "A1", "B1"), [][2]string{
		{"R", "A"}, {"R", "B"}, {"A", "A1"}, {"B", "B1"},
	})
	l := Compute(tree, Options{})
	assertX(t, l, map[string]float64{"R": 0, "A": -100, "B": 100, "A1": -100, "B1": 100})
}

func TestComputeRemovesOverlap(t *testing.T) {
	classes := []classDef{
		{"R", "Root"},
		{"A", "An Extraordinarily Long Class Name"},
		{"B", "Another Very Long Class Label"},
		{"C", "C"},
		{"A1", "Child Of The First Long Class"},
		{"C1", "Leaf"},
		{"C2", "Another Fairly Long Leaf Label"},
	}
	tree := buildTree(t, classes, [][2]string{
		{"R", "A"}, {"R", "B"}, {"R", "C"}, {"A", "A1"}, {"C", "C1"}, {"C", "C2"},
	})
	before := Compute(tree, Options{CharWidth: 0.01, Padding: 0.01})
	l := Compute(tree, Options{})

	byDepth := make(map[int][]Position)
	for _, p := range l.Positions {
		byDepth[p.Depth] = append(byDepth[p.Depth], p)
	}
	for depth, level := range byDepth {
		sort.Slice(level, func(i, j int) bool { return level[i].X < level[j].X })
		for i := 1; i < len(level); i++ {
			gap := level[i].X - level[i-1].X
			if need := level[i].HalfWidth + level[i-1].HalfWidth; gap < need-1e-9 {
				t.Errorf("depth %d: gap %v < %v", depth, gap, need)
			}
		}
	}

	// Subtrees move rigidly: a parent's offset to its children is preserved.
	for _, parent := range []string{"A", "C"} {
		for _, child := range tree.Children(parent) {
			was := before.Positions[child].X - before.Positions[parent].X
			now := l.Positions[child].X - l.Positions[parent].X
			if now < was-1e-9 {
				t.Errorf("%s→%s: offset shrank from %v to %v", parent, child, was, now)
			}
		}
	}
	if p, _ := l.Position("R"); p.X != 0 {
		t.Errorf("root moved to %v", p.X)
	}
}

func TestComputeEmpty(t *testing.T) {
	l := Compute(hierarchy.Build(ontology.New("en")), Options{})
	if len(l.Positions) != 0 {
		t.Errorf("Positions = %v, want none", l.Positions)
	}
}

func TestComputeVirtualRoot(t *testing.T) {
	tree := buildTree(t, ids("X", "Y"), nil)
	l := Compute(tree, Options{})
	p, ok := l.Position(hierarchy.VirtualRootID)
	if !ok || p.X != 0 || p.Y != 0 {
		t.Fatalf("virtual root position = %+v, %v", p, ok)
	}
	want := Options{}.BoxWidth(hierarchy.VirtualRootName) / 2
	if p.HalfWidth != want {
		t.Errorf("HalfWidth = %v, want %v", p.HalfWidth, want)
	}
}

func TestOriented(t *testing.T) {
	l := &Layout{Positions: map[string]Position{"A": {X: 10, Y: 240}}}
	tests := []struct {
		dir    Direction
		wx, wy float64
	}{
		{Vertical, 10, 240},
		{Horizontal, 240, 10},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			x, y, ok := l.Oriented("A", tt.dir)
			if !ok || x != tt.wx || y != tt.wy {
				t.Errorf("Oriented = (%v, %v, %v), want (%v, %v)", x, y, ok, tt.wx, tt.wy)
			}
		})
	}
	if _, _, ok := l.Oriented("missing", Vertical); ok {
		t.Error("Oriented(missing) reported ok")
	}

	l.Direction = Horizontal
	if x, y, _ := l.Screen("A"); x != 240 || y != 10 {
		t.Errorf("Screen = (%v, %v), want (240, 10)", x, y)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"", Vertical, false},
		{"vertical", Vertical, false},
		{"horizontal", Horizontal, false},
		{"diagonal", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestBoxWidthCountsRunes(t *testing.T) {
	if got := (Options{}).BoxWidth("Größe"); got != 5*9+20 {
		t.Errorf("BoxWidth = %v, want %v", got, 5*9+20)
	}
}
