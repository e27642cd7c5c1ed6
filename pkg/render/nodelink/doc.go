// Package nodelink renders class trees as Graphviz node-link diagrams.
//
// # Usage
//
// Convert a positioned view to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(view, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// Graphviz computes its own coordinates. The DOT keeps the tree structure
// of the view: tree edges constrain ranks, secondary superclass edges are
// drawn dashed without constraining, and sibling order is preserved.
// Horizontal views use rankdir=LR.
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
