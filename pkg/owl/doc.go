// Package owl reads OWL ontology documents in RDF/XML syntax into a small
// element tree.
//
// The tree keeps every element, attribute and text node of the source in
// document order, which is what the graph builder and the class-expression
// parser need: both dispatch on element shape (local name, identifying
// attribute, direct children) rather than on a fixed schema, because class
// expressions nest arbitrarily.
//
// Element and attribute names are matched by local name only, so documents
// that use non-standard prefixes (or none) for the OWL, RDF and RDFS
// vocabularies are read the same way as canonical ones.
//
// # Usage
//
//	doc, err := owl.ParseBytes(data)
//	if err != nil {
//	    return err
//	}
//	for _, cls := range doc.Classes() {
//	    fmt.Println(cls.About())
//	}
package owl
