package owl

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"

	"golang.org/x/net/html/charset"
)

// ErrEmptyDocument is returned by [Parse] when the input holds no root element.
var ErrEmptyDocument = errors.New("document has no root element")

// Document is a parsed ontology document.
type Document struct {
	Root *Element
}

// ParseBytes parses an RDF/XML document held in memory.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// Parse reads an RDF/XML document from r. Non-UTF-8 encodings declared in the
// XML prolog are transcoded, and general entities declared in an internal
// DTD subset are expanded. Any syntax error fails the whole parse.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = map[string]string{}

	var (
		root  *Element
		stack []*Element
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name, Attrs: append([]xml.Attr(nil), t.Attr...)}
			if n := len(stack); n > 0 {
				parent := stack[n-1]
				el.Parent = parent
				parent.Children = append(parent.Children, el)
			} else if root == nil {
				root = el
			} else {
				return nil, fmt.Errorf("parse xml: multiple root elements (%s after %s)", t.Name.Local, root.Name.Local)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if n := len(stack); n > 0 {
				stack[n-1].text.Write(t)
			}
		case xml.Directive:
			if root == nil {
				declareEntities(dec.Entity, t)
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	return &Document{Root: root}, nil
}

var entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%"']+)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// declareEntities adds the internal general entities of a DOCTYPE directive
// to entities. Parameter and external entities are ignored. A value may
// reference entities declared before it.
func declareEntities(entities map[string]string, d xml.Directive) {
	if !bytes.HasPrefix(bytes.TrimSpace(d), []byte("DOCTYPE")) {
		return
	}
	for _, m := range entityDecl.FindAllSubmatch(d, -1) {
		name := string(m[1])
		if _, ok := entities[name]; ok {
			continue
		}
		value := string(m[2])
		if m[3] != nil {
			value = string(m[3])
		}
		entities[name] = expandEntities(value, entities)
	}
}

var entityRef = regexp.MustCompile(`&([^\s&;#]+);`)

func expandEntities(s string, entities map[string]string) string {
	return entityRef.ReplaceAllStringFunc(s, func(ref string) string {
		if v, ok := entities[ref[1:len(ref)-1]]; ok {
			return v
		}
		return ref
	})
}

// Classes returns every element named Class that carries an identifying
// reference, in document order. Nested named references inside class
// expressions are included; anonymous class expressions are not.
func (d *Document) Classes() []*Element {
	return d.named("Class")
}

// ObjectProperties returns every identified ObjectProperty element in
// document order.
func (d *Document) ObjectProperties() []*Element {
	return d.named("ObjectProperty")
}

func (d *Document) named(local string) []*Element {
	if d == nil {
		return nil
	}
	var out []*Element
	d.Root.Walk(func(e *Element) bool {
		if e.Is(local) && e.About() != "" {
			out = append(out, e)
		}
		return true
	})
	return out
}
