package ontology

import (
	"slices"

	"github.com/matzehuels/ontoview/pkg/expr"
	"github.com/matzehuels/ontoview/pkg/iri"
	"github.com/matzehuels/ontoview/pkg/owl"
)

// Build extracts the class graph of doc with display names for lang.
//
// Every identified Class element becomes a node; repeated declarations of one
// id are merged into the first. One edge is added per declared superclass
// reference whose target class exists, in node order then declaration order.
// Build returns [owl.ErrEmptyDocument] only when doc has no root.
func Build(doc *owl.Document, lang string) (*Graph, error) {
	if doc == nil || doc.Root == nil {
		return nil, owl.ErrEmptyDocument
	}
	g := New(NormalizeLanguage(lang))

	var order []string
	decls := make(map[string]*ClassNode)
	for _, el := range doc.Classes() {
		id := iri.Resolve(el.About())
		if id == "" {
			continue
		}
		n, ok := decls[id]
		if !ok {
			n = &ClassNode{ID: id}
			decls[id] = n
			order = append(order, id)
		}
		mergeClass(n, el)
	}

	for _, id := range order {
		if err := g.AddNode(*decls[id]); err != nil {
			return nil, err
		}
	}
	for _, id := range order {
		for _, super := range decls[id].SuperClasses {
			if !g.Has(super) {
				continue
			}
			if err := g.AddEdge(Edge{From: super, To: id, Kind: SubClassOf}); err != nil {
				return nil, err
			}
		}
	}

	for _, el := range doc.ObjectProperties() {
		g.AddProperty(buildProperty(el))
	}
	return g, nil
}

func mergeClass(n *ClassNode, el *owl.Element) {
	n.Labels = appendLabels(n.Labels, el)
	n.Comments = appendComments(n.Comments, el)
	for _, sub := range el.ChildrenNamed("subClassOf") {
		ref := sub.Resource()
		if ref == "" {
			continue
		}
		if id := iri.Resolve(ref); id != "" && !slices.Contains(n.SuperClasses, id) {
			n.SuperClasses = append(n.SuperClasses, id)
		}
	}
	for _, eq := range el.ChildrenNamed("equivalentClass") {
		if e := expr.ParseEquivalent(eq); e != nil {
			n.Equivalents = append(n.Equivalents, e)
		}
	}
	n.Restrictions = append(n.Restrictions, expr.ParseRestrictions(el)...)
}

func buildProperty(el *owl.Element) Property {
	p := Property{ID: iri.Resolve(el.About())}
	p.Labels = appendLabels(nil, el)
	p.Comments = appendComments(nil, el)
	for _, d := range el.ChildrenNamed("domain") {
		if ref := d.Resource(); ref != "" {
			p.Domain = append(p.Domain, iri.Resolve(ref))
		}
	}
	for _, r := range el.ChildrenNamed("range") {
		if ref := r.Resource(); ref != "" {
			p.Range = append(p.Range, iri.Resolve(ref))
		}
	}
	return p
}

// appendLabels adds the direct label children of el. The first label seen for
// a language wins.
func appendLabels(labels []Label, el *owl.Element) []Label {
	for _, l := range el.ChildrenNamed("label") {
		text := l.Text()
		if text == "" {
			continue
		}
		lang := NormalizeLanguage(l.Lang())
		if _, exists := lookupLabel(labels, lang); exists {
			continue
		}
		labels = append(labels, Label{Lang: lang, Text: text})
	}
	return labels
}

func appendComments(comments []string, el *owl.Element) []string {
	for _, c := range el.ChildrenNamed("comment") {
		if text := c.Text(); text != "" && !slices.Contains(comments, text) {
			comments = append(comments, text)
		}
	}
	return comments
}
