// Package ontology holds the class graph built from an ontology document.
//
// A [Graph] is an id-indexed arena of [ClassNode] values plus an ordered list
// of subclass-of [Edge]s (superclass → subclass). Node insertion order and
// edge order are both significant: the hierarchy builder breaks
// multiple-inheritance ties by edge order, so they are preserved exactly from
// ingestion onward.
//
// # Building
//
// [Build] turns a parsed [owl.Document] into a Graph for one active
// language:
//
//	doc, _ := owl.ParseBytes(data)
//	g, err := ontology.Build(doc, "de")
//
// Class elements without an identifier are skipped, superclass references to
// classes that do not exist are dropped, and repeated declarations of a class
// are merged. None of these is an error.
//
// # Immutability
//
// A built Graph is never modified. Derived views ([Graph.Subgraph],
// branch extraction, the display tree) are new values, so the full graph can
// serve as a stable reference for any number of later queries.
package ontology
