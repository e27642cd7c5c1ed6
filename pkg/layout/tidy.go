package layout

import "github.com/matzehuels/ontoview/pkg/hierarchy"

// tidyNode is the working state of one node during the tidy-tree pass.
// Node references are indices into the walker's node slice; -1 is nil.
type tidyNode struct {
	id       string
	parent   int
	children []int
	index    int // position among siblings

	ancestor int // a: ancestor candidate, initially the node itself
	defAnc   int // A: default ancestor of this node's children
	thread   int // t

	prelim   float64 // z
	modifier float64 // m
	change   float64 // c
	shift    float64 // s
}

type walker struct {
	nodes []tidyNode
}

// tidy returns grid x coordinates (in sibling units) for every tree node.
// The root lands at 0. Adjacent siblings are 1 apart, adjacent non-siblings
// at least 2.
func tidy(tree *hierarchy.Tree) map[string]float64 {
	w := &walker{}
	// Node 0 is a sentinel parent above the root.
	w.nodes = append(w.nodes, tidyNode{parent: -1, ancestor: 0, defAnc: -1, thread: -1})
	root := w.add(tree, tree.Root(), 0, 0)
	w.nodes[0].children = []int{root}

	w.postorder(root, w.firstWalk)
	w.nodes[0].modifier = -w.nodes[root].prelim

	x := make(map[string]float64, len(w.nodes)-1)
	w.preorder(root, func(v int) {
		n := &w.nodes[v]
		p := &w.nodes[n.parent]
		x[n.id] = n.prelim + p.modifier
		n.modifier += p.modifier
	})
	return x
}

func (w *walker) add(tree *hierarchy.Tree, id string, parent, index int) int {
	v := len(w.nodes)
	w.nodes = append(w.nodes, tidyNode{
		id:       id,
		parent:   parent,
		index:    index,
		ancestor: v,
		defAnc:   -1,
		thread:   -1,
	})
	kids := tree.Children(id)
	children := make([]int, 0, len(kids))
	for i, c := range kids {
		children = append(children, w.add(tree, c, v, i))
	}
	w.nodes[v].children = children
	return v
}

func (w *walker) postorder(v int, fn func(int)) {
	for _, c := range w.nodes[v].children {
		w.postorder(c, fn)
	}
	fn(v)
}

func (w *walker) preorder(v int, fn func(int)) {
	fn(v)
	for _, c := range w.nodes[v].children {
		w.preorder(c, fn)
	}
}

func (w *walker) separation(a, b int) float64 {
	if w.nodes[a].parent == w.nodes[b].parent {
		return 1
	}
	return 2
}

func (w *walker) nextLeft(v int) int {
	if c := w.nodes[v].children; len(c) > 0 {
		return c[0]
	}
	return w.nodes[v].thread
}

func (w *walker) nextRight(v int) int {
	if c := w.nodes[v].children; len(c) > 0 {
		return c[len(c)-1]
	}
	return w.nodes[v].thread
}

func (w *walker) firstWalk(v int) {
	n := &w.nodes[v]
	siblings := w.nodes[n.parent].children
	left := -1
	if n.index > 0 {
		left = siblings[n.index-1]
	}

	if len(n.children) > 0 {
		w.executeShifts(v)
		first, last := n.children[0], n.children[len(n.children)-1]
		mid := (w.nodes[first].prelim + w.nodes[last].prelim) / 2
		if left >= 0 {
			n.prelim = w.nodes[left].prelim + w.separation(v, left)
			n.modifier = n.prelim - mid
		} else {
			n.prelim = mid
		}
	} else if left >= 0 {
		n.prelim = w.nodes[left].prelim + w.separation(v, left)
	}

	p := &w.nodes[n.parent]
	anc := p.defAnc
	if anc < 0 {
		anc = siblings[0]
	}
	w.nodes[n.parent].defAnc = w.apportion(v, left, anc)
}

func (w *walker) executeShifts(v int) {
	var shift, change float64
	children := w.nodes[v].children
	for i := len(children) - 1; i >= 0; i-- {
		c := &w.nodes[children[i]]
		c.prelim += shift
		c.modifier += shift
		change += c.change
		shift += c.shift + change
	}
}

func (w *walker) moveSubtree(wm, wp int, shift float64) {
	m, p := &w.nodes[wm], &w.nodes[wp]
	change := shift / float64(p.index-m.index)
	p.change -= change
	p.shift += shift
	m.change += change
	p.prelim += shift
	p.modifier += shift
}

func (w *walker) nextAncestor(vim, v, ancestor int) int {
	a := w.nodes[vim].ancestor
	if w.nodes[a].parent == w.nodes[v].parent {
		return a
	}
	return ancestor
}

// apportion pushes the subtree of v right until it clears every subtree to
// its left, threading contours as it goes.
func (w *walker) apportion(v, left, ancestor int) int {
	if left < 0 {
		return ancestor
	}
	vip, vop := v, v
	vim := left
	vom := w.nodes[w.nodes[v].parent].children[0]
	sip, sop := w.nodes[vip].modifier, w.nodes[vop].modifier
	sim, som := w.nodes[vim].modifier, w.nodes[vom].modifier

	for {
		vim = w.nextRight(vim)
		vip = w.nextLeft(vip)
		if vim < 0 || vip < 0 {
			break
		}
		vom = w.nextLeft(vom)
		vop = w.nextRight(vop)
		w.nodes[vop].ancestor = v
		shift := w.nodes[vim].prelim + sim - w.nodes[vip].prelim - sip + w.separation(vim, vip)
		if shift > 0 {
			w.moveSubtree(w.nextAncestor(vim, v, ancestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += w.nodes[vim].modifier
		sip += w.nodes[vip].modifier
		som += w.nodes[vom].modifier
		sop += w.nodes[vop].modifier
	}

	if vim >= 0 && w.nextRight(vop) < 0 {
		w.nodes[vop].thread = vim
		w.nodes[vop].modifier += sim - sop
	}
	if vip >= 0 && w.nextLeft(vom) < 0 {
		w.nodes[vom].thread = vip
		w.nodes[vom].modifier += sip - som
		ancestor = v
	}
	return ancestor
}
