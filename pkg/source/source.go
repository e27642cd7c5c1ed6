// Package source locates and reads ontology documents.
//
// A [Source] names where a document comes from: a local file, an http(s)
// URL, in-memory bytes, or the document built into the binary. A [Loader]
// turns a Source into bytes, fetching remote documents with retry and
// caching them.
//
//	loader := source.NewLoader(fileCache, nil, logger)
//	doc, err := loader.Fetch(ctx, source.FromRef("https://example.org/pizza.owl"))
package source

import (
	_ "embed"
	"strings"
)

// Kind is where a document comes from.
type Kind string

const (
	KindFile    Kind = "file"
	KindURL     Kind = "url"
	KindBytes   Kind = "bytes"
	KindBuiltin Kind = "builtin"
)

// BuiltinName is the display name of the built-in document.
const BuiltinName = "domain_ontology.owl"

//go:embed domain_ontology.owl
var builtin []byte

// Source identifies one ontology document.
type Source struct {
	Kind     Kind
	Location string // path, URL or display name
	Data     []byte // KindBytes only
}

// File is a document on the local filesystem.
func File(path string) Source { return Source{Kind: KindFile, Location: path} }

// URL is a document fetched over http(s).
func URL(u string) Source { return Source{Kind: KindURL, Location: u} }

// Bytes is an in-memory document, such as an upload. name is used for
// display only.
func Bytes(name string, data []byte) Source {
	return Source{Kind: KindBytes, Location: name, Data: data}
}

// Builtin is the sample document compiled into the binary.
func Builtin() Source { return Source{Kind: KindBuiltin, Location: BuiltinName} }

// FromRef interprets a user-supplied reference: "" is the built-in
// document, http:// and https:// references are URLs, anything else is a
// file path.
func FromRef(ref string) Source {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return Builtin()
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return URL(ref)
	default:
		return File(ref)
	}
}

// String returns the location for display.
func (s Source) String() string {
	if s.Location == "" {
		return string(s.Kind)
	}
	return s.Location
}

