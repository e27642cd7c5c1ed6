// Package iri maps ontology resource identifiers to the short local names used
// as graph keys and display fallbacks.
//
// Ontology documents reference classes and properties by full IRIs such as
// "http://example.org/onto#Vehicle" or "http://example.org/onto/Vehicle".
// Every other package in ontoview works with the local part ("Vehicle"), so
// all resource references pass through [Resolve] before they become keys.
package iri

import "strings"

// Resolve returns the local name of uri: the text after the last '#', or, if
// there is no '#', the text after the last '/'. A uri containing neither
// separator is returned unchanged.
//
// Resolve is total. A uri ending in a separator yields the empty string,
// which callers treat as "no identifier".
func Resolve(uri string) string {
	if i := strings.LastIndexByte(uri, '#'); i >= 0 {
		return uri[i+1:]
	}
	if i := strings.LastIndexByte(uri, '/'); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

// Inverse formats the display form of an inverse property reference.
func Inverse(property string) string {
	return "inverse(" + property + ")"
}
