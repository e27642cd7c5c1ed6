// Package graph provides serialization types for class graphs and
// positioned views.
//
// This package defines the JSON wire format of ontoview, used for exported
// files, API responses and the view cache.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Graph], [View]: serialization types (this package)
//   - pkg/ontology.Graph: internal class graph
//   - pkg/hierarchy.Tree and pkg/layout.Layout: internal display tree and
//     positions
//
// Use [FromOntology]/[ToOntology] and [NewView] to convert between them.
//
// # Graph Serialization
//
// Graphs use a node-link JSON format that keeps document order, which the
// hierarchy builder depends on:
//
//	{
//	  "language": "en",
//	  "nodes": [{"id": "Tool", "label": "Tool"}, {"id": "Hammer", "label": "Hammer"}],
//	  "edges": [{"from": "Tool", "to": "Hammer", "kind": "subclass-of"}]
//	}
//
// Class expressions are encoded in the tagged form of pkg/expr.
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("classes.json")  // File → ontology.Graph
//	graph.WriteGraphFile(g, "classes.json")      // ontology.Graph → File
//	data, _ := graph.MarshalGraph(g)             // ontology.Graph → []byte
//
// # Views
//
// A [View] is a laid-out tree in screen coordinates: nodes with positions,
// tree edges, and the secondary superclass edges the tree left out.
//
//	tree := hierarchy.Build(g)
//	v := graph.NewView(tree, layout.Compute(tree, opts))
//	data, _ := graph.MarshalView(v)
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
