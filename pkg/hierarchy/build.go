package hierarchy

import (
	"github.com/matzehuels/ontoview/pkg/ontology"
)

// Build derives the display tree of g. It never modifies g.
//
// Root selection:
//
//   - exactly one class without superclasses: that class is the root
//   - several: a virtual root whose children are those classes in node order
//   - none (every class sits on a cycle): the first node is the root
//
// Edges are then assigned in graph order. The first edge naming a target
// becomes its tree edge; later ones are secondary. An edge is also secondary
// when its target is the root or when its source already lies below its
// target, which keeps cyclic input from producing a cyclic tree. Classes
// that end up detached because of such edges are hung under the virtual
// root, which is introduced if it does not exist yet.
func Build(g *ontology.Graph) *Tree {
	t := &Tree{
		graph:    g,
		parent:   make(map[string]string),
		children: make(map[string][]string),
		depth:    make(map[string]int),
	}
	ids := g.IDs()
	if len(ids) == 0 {
		return t
	}

	sources := g.Sources()
	switch len(sources) {
	case 0:
		t.root = ids[0]
	case 1:
		t.root = sources[0]
	default:
		t.root = VirtualRootID
		t.virtual = true
		for _, id := range sources {
			t.link(VirtualRootID, id)
		}
	}

	for _, e := range g.Edges() {
		if t.placed(e.To) || t.below(e.From, e.To) {
			t.secondary = append(t.secondary, e)
			continue
		}
		t.link(e.From, e.To)
		t.primary = append(t.primary, e)
	}

	var detached []string
	for _, id := range ids {
		if !t.placed(id) {
			detached = append(detached, id)
		}
	}
	if len(detached) > 0 {
		if !t.virtual {
			top := t.root
			t.root = VirtualRootID
			t.virtual = true
			t.link(VirtualRootID, top)
		}
		for _, id := range detached {
			t.link(VirtualRootID, id)
		}
	}

	t.index()
	return t
}

func (t *Tree) link(parent, child string) {
	t.parent[child] = parent
	t.children[parent] = append(t.children[parent], child)
}

// placed reports whether id is the root or already has a tree parent.
func (t *Tree) placed(id string) bool {
	if id == t.root {
		return true
	}
	_, ok := t.parent[id]
	return ok
}

// below reports whether id is ancestor or one of its tree-descendants.
func (t *Tree) below(id, ancestor string) bool {
	for cur := id; ; {
		if cur == ancestor {
			return true
		}
		p, ok := t.parent[cur]
		if !ok {
			return false
		}
		cur = p
	}
}

// index computes preorder and depths from the root.
func (t *Tree) index() {
	t.order = t.order[:0]
	type frame struct {
		id    string
		depth int
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t.order = append(t.order, f.id)
		t.depth[f.id] = f.depth
		kids := t.children[f.id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], f.depth + 1})
		}
	}
}
