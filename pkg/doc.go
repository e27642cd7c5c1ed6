// Package pkg holds the ontoview libraries.
//
// # Overview
//
// Ontoview reads an OWL ontology in RDF/XML and shows its class hierarchy as
// a tree. The packages form one pipeline:
//
//	RDF/XML document
//	       ↓
//	  [owl] (parse the XML element tree)
//	       ↓
//	  [expr] + [ontology] (class expressions, class graph, labels)
//	       ↓
//	  [branch] (ancestors and descendants of a focal class)
//	       ↓
//	  [hierarchy] (rooted display tree, virtual root)
//	       ↓
//	  [layout] (tidy tree positions plus overlap sweep)
//	       ↓
//	  [render] (SVG, PNG, PDF, DOT)
//
// [session] owns one loaded document and answers queries against it.
// [pipeline] runs load, view and render with caching for the CLI and the
// HTTP API. [graph] defines the JSON formats of class graphs and views.
//
// Supporting packages: [source] fetches documents from files, URLs or the
// built-in sample; [cache] stores fetched documents and renders in a
// directory or Redis; [httputil] retries remote fetches; [iri] shortens
// IRIs to local names; [errors] carries machine-readable error codes;
// [observability] exposes hooks for logging and metrics.
package pkg
