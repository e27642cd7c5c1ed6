// Package tree draws a positioned class tree as SVG.
//
// Unlike [nodelink], which lets Graphviz place nodes, this renderer draws
// every label box at the coordinates computed by pkg/layout, so the image
// matches the JSON view exactly:
//
//	view := graph.NewView(t, layout.Compute(t, opts))
//	svg := tree.RenderSVG(view, tree.WithFocal("Hammer"))
//
// Tree edges are drawn as curves from parent to child. Secondary
// superclass edges are dashed, and edges from the virtual root are
// dotted.
//
// [nodelink]: github.com/matzehuels/ontoview/pkg/render/nodelink
package tree
