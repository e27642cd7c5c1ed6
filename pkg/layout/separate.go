package layout

import (
	"slices"

	"github.com/matzehuels/ontoview/pkg/hierarchy"
)

// separate removes label-box overlaps between nodes of the same depth.
//
// Levels are processed top-down. Within a level nodes are ordered by x and
// swept once left to right; a node closer to its left neighbour than the sum
// of their half-widths moves right by exactly the missing distance, and its
// tree-descendants move with it. A level is not revisited after a later
// level has been shifted.
func separate(tree *hierarchy.Tree, pos map[string]Position) {
	levels := make([][]string, tree.MaxDepth()+1)
	// Breadth-first ordering breaks x ties left to right.
	queue := []string{tree.Root()}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		d := pos[id].Depth
		levels[d] = append(levels[d], id)
		queue = append(queue, tree.Children(id)...)
	}

	for _, level := range levels {
		slices.SortStableFunc(level, func(a, b string) int {
			switch xa, xb := pos[a].X, pos[b].X; {
			case xa < xb:
				return -1
			case xa > xb:
				return 1
			}
			return 0
		})
		for i := 1; i < len(level); i++ {
			prev, curr := pos[level[i-1]], pos[level[i]]
			need := prev.HalfWidth + curr.HalfWidth
			if gap := curr.X - prev.X; gap < need {
				shiftSubtree(tree, pos, level[i], need-gap)
			}
		}
	}
}

// shiftSubtree moves id and all of its tree-descendants right by dx.
func shiftSubtree(tree *hierarchy.Tree, pos map[string]Position, id string, dx float64) {
	p := pos[id]
	p.X += dx
	pos[id] = p
	for _, c := range tree.Children(id) {
		shiftSubtree(tree, pos, c, dx)
	}
}
