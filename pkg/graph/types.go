package graph

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/ontoview/pkg/expr"
	"github.com/matzehuels/ontoview/pkg/ontology"
)

// =============================================================================
// Graph - Class Graph Serialization
// =============================================================================

// Graph is the serialization format of a class graph.
//
// The format is designed for round-trip fidelity: node, edge and property
// order survive export and re-import.
type Graph struct {
	Language   string     `json:"language"`
	Nodes      []Node     `json:"nodes"`
	Edges      []Edge     `json:"edges"`
	Properties []Property `json:"properties,omitempty"`
}

// =============================================================================
// Node - Class
// =============================================================================

// Node is one class.
type Node struct {
	ID           string        `json:"id"`
	Label        string        `json:"label,omitempty"` // display name in the graph language
	Labels       []Label       `json:"labels,omitempty"`
	Comments     []string      `json:"comments,omitempty"`
	SuperClasses []string      `json:"super_classes,omitempty"`
	Equivalents  []Expression  `json:"equivalents,omitempty"`
	Restrictions []Restriction `json:"restrictions,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Label is a language-tagged label.
type Label struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

// Restriction is one property restriction declared on a class.
type Restriction struct {
	Property string      `json:"property"`
	Filler   expr.Filler `json:"filler"`
}

// Expression wraps a class expression for JSON.
type Expression struct{ expr.Expr }

// MarshalJSON implements json.Marshaler.
func (e Expression) MarshalJSON() ([]byte, error) { return expr.Marshal(e.Expr) }

// UnmarshalJSON implements json.Unmarshaler.
func (e *Expression) UnmarshalJSON(data []byte) error {
	x, err := expr.Unmarshal(data)
	if err != nil {
		return err
	}
	e.Expr = x
	return nil
}

// =============================================================================
// Edge - Subclass Relation
// =============================================================================

// Edge points from a superclass to a subclass.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind,omitempty"`
}

// =============================================================================
// Property - Object Property
// =============================================================================

// Property is an object property.
type Property struct {
	ID       string   `json:"id"`
	Labels   []Label  `json:"labels,omitempty"`
	Comments []string `json:"comments,omitempty"`
	Domain   []string `json:"domain,omitempty"`
	Range    []string `json:"range,omitempty"`
}

// =============================================================================
// ontology.Graph ↔ Graph Conversion
// =============================================================================

// FromOntology converts a class graph to its serialization format.
func FromOntology(g *ontology.Graph) Graph {
	out := Graph{
		Language: g.Language(),
		Nodes:    make([]Node, 0, g.NodeCount()),
		Edges:    make([]Edge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, nodeFromOntology(n))
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{From: e.From, To: e.To, Kind: string(e.Kind)})
	}
	for _, id := range g.Properties() {
		p, _ := g.Property(id)
		out.Properties = append(out.Properties, PropertyFromOntology(p))
	}
	return out
}

// PropertyFromOntology converts one object property.
func PropertyFromOntology(p ontology.Property) Property {
	return Property{
		ID:       p.ID,
		Labels:   labelsFromOntology(p.Labels),
		Comments: p.Comments,
		Domain:   p.Domain,
		Range:    p.Range,
	}
}

// ToOntology converts a serialized graph back into a class graph. Edges
// must reference declared nodes.
func ToOntology(gj Graph) (*ontology.Graph, error) {
	g := ontology.New(ontology.NormalizeLanguage(gj.Language))

	for _, nj := range gj.Nodes {
		n := ontology.ClassNode{
			ID:           nj.ID,
			Name:         nj.Label,
			Labels:       labelsToOntology(nj.Labels),
			Comments:     nj.Comments,
			SuperClasses: nj.SuperClasses,
		}
		for _, e := range nj.Equivalents {
			if e.Expr != nil {
				n.Equivalents = append(n.Equivalents, e.Expr)
			}
		}
		for _, r := range nj.Restrictions {
			n.Restrictions = append(n.Restrictions, expr.PropertyFiller{Property: r.Property, Filler: r.Filler})
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", nj.ID, err)
		}
	}

	for _, ej := range gj.Edges {
		e := ontology.Edge{From: ej.From, To: ej.To, Kind: ontology.EdgeKind(ej.Kind)}
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", ej.From, ej.To, err)
		}
	}

	for _, pj := range gj.Properties {
		g.AddProperty(ontology.Property{
			ID:       pj.ID,
			Labels:   labelsToOntology(pj.Labels),
			Comments: pj.Comments,
			Domain:   pj.Domain,
			Range:    pj.Range,
		})
	}
	return g, nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func nodeFromOntology(n ontology.ClassNode) Node {
	out := Node{
		ID:           n.ID,
		Label:        n.Name,
		Labels:       labelsFromOntology(n.Labels),
		Comments:     n.Comments,
		SuperClasses: n.SuperClasses,
	}
	for _, e := range n.Equivalents {
		out.Equivalents = append(out.Equivalents, Expression{e})
	}
	for _, r := range n.Restrictions {
		out.Restrictions = append(out.Restrictions, Restriction{Property: r.Property, Filler: r.Filler})
	}
	return out
}

func labelsFromOntology(ls []ontology.Label) []Label {
	if len(ls) == 0 {
		return nil
	}
	out := make([]Label, len(ls))
	for i, l := range ls {
		out[i] = Label{Lang: l.Lang, Text: l.Text}
	}
	return out
}

func labelsToOntology(ls []Label) []ontology.Label {
	if len(ls) == 0 {
		return nil
	}
	out := make([]ontology.Label, len(ls))
	for i, l := range ls {
		out[i] = ontology.Label{Lang: l.Lang, Text: l.Text}
	}
	return out
}
