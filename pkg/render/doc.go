// Package render turns positioned class trees into images.
//
// # Overview
//
// Two renderers share the positioned [graph.View] produced by the layout
// engine:
//
//   - [tree] draws the view as SVG at the computed coordinates: label boxes,
//     tree edges, and dashed secondary superclass edges.
//   - [nodelink] emits Graphviz DOT and lets Graphviz place the nodes.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg).
//
//	svg := tree.RenderSVG(view)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [graph.View]: github.com/matzehuels/ontoview/pkg/graph
// [tree]: github.com/matzehuels/ontoview/pkg/render/tree
// [nodelink]: github.com/matzehuels/ontoview/pkg/render/nodelink
package render
