package owl

import (
	"encoding/xml"
	"strings"
)

// Vocabulary namespaces. Matching is by local name, these are exported for
// callers that build documents programmatically.
const (
	NamespaceRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceOWL  = "http://www.w3.org/2002/07/owl#"
	NamespaceXML  = "http://www.w3.org/XML/1998/namespace"
)

// Element is one node of the parsed document tree.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Element
	Parent   *Element

	text strings.Builder
}

// Local returns the element's local name without prefix.
func (e *Element) Local() string { return e.Name.Local }

// Is reports whether the element's local name equals local.
func (e *Element) Is(local string) bool { return e != nil && e.Name.Local == local }

// HasSuffix reports whether the element's local name ends with suffix.
func (e *Element) HasSuffix(suffix string) bool {
	return e != nil && strings.HasSuffix(e.Name.Local, suffix)
}

// Attr returns the value of the first attribute with the given local name.
func (e *Element) Attr(local string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name.Local == local && a.Name.Space != "xmlns" {
			return a.Value, true
		}
	}
	return "", false
}

// About returns the element's identifying reference: rdf:about, or rdf:ID
// when rdf:about is absent. Empty for anonymous elements.
func (e *Element) About() string {
	if v, ok := e.Attr("about"); ok && v != "" {
		return v
	}
	if v, ok := e.Attr("ID"); ok && v != "" {
		return "#" + v
	}
	return ""
}

// Resource returns the rdf:resource attribute, or "".
func (e *Element) Resource() string {
	v, _ := e.Attr("resource")
	return v
}

// Lang returns the xml:lang attribute, or "".
func (e *Element) Lang() string {
	if e == nil {
		return ""
	}
	for _, a := range e.Attrs {
		if a.Name.Local == "lang" && (a.Name.Space == NamespaceXML || a.Name.Space == "xml") {
			return a.Value
		}
	}
	return ""
}

// Text returns the trimmed character data of the element and its descendants.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	e.collectText(&b)
	return strings.TrimSpace(b.String())
}

func (e *Element) collectText(b *strings.Builder) {
	b.WriteString(e.text.String())
	for _, c := range e.Children {
		c.collectText(b)
	}
}

// Child returns the first direct child with the given local name.
func (e *Element) Child(local string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name.Local == local {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given local name.
func (e *Element) ChildrenNamed(local string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first direct child element, or nil.
func (e *Element) FirstChild() *Element {
	if e == nil || len(e.Children) == 0 {
		return nil
	}
	return e.Children[0]
}

// Walk visits e and its descendants in document order. Returning false from
// fn skips the children of the visited element.
func (e *Element) Walk(fn func(*Element) bool) {
	if e == nil {
		return
	}
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}
