package ontology

import (
	"errors"
	"slices"

	"github.com/matzehuels/ontoview/pkg/expr"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// EdgeKind names the relation an edge encodes.
type EdgeKind string

// SubClassOf is the only edge kind: From is the superclass, To the subclass.
const SubClassOf EdgeKind = "subclass-of"

// Label is one language-tagged label of a class or property.
type Label struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

// ClassNode is one named class.
type ClassNode struct {
	ID   string
	Name string // display name in the graph's language

	Labels       []Label  // ordered, at most one per language
	Comments     []string // ordered
	SuperClasses []string // declared superclass ids, source order
	Parents      []string // ids observed as edge sources

	Equivalents  []expr.Expr           // parsed equivalentClass axioms
	Restrictions []expr.PropertyFiller // restrictions under subClassOf
}

// Label returns the label text for lang and whether it exists.
func (n *ClassNode) Label(lang string) (string, bool) {
	return lookupLabel(n.Labels, lang)
}

// Edge is a directed subclass-of relation between two existing nodes.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// Property is a named object property.
type Property struct {
	ID       string
	Labels   []Label
	Comments []string
	Domain   []string
	Range    []string
}

// Graph is the class graph of one ontology document.
//
// The zero value is not usable; create graphs with [New] or [Build].
// A Graph is not safe for concurrent mutation. Built graphs are treated as
// read-only and may be shared freely.
type Graph struct {
	language string

	order    []string
	nodes    map[string]*ClassNode
	edges    []Edge
	outgoing map[string][]string // superclass -> subclasses
	incoming map[string][]string // subclass -> superclasses

	propOrder  []string
	properties map[string]*Property
}

// New creates an empty graph whose display names target language.
func New(language string) *Graph {
	return &Graph{
		language:   language,
		nodes:      make(map[string]*ClassNode),
		outgoing:   make(map[string][]string),
		incoming:   make(map[string][]string),
		properties: make(map[string]*Property),
	}
}

// Language returns the language display names were resolved for.
func (g *Graph) Language() string { return g.language }

// AddNode appends a node. Its display name is derived from its labels when
// Name is empty.
func (g *Graph) AddNode(n ClassNode) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Name == "" {
		n.Name = DisplayName(n.ID, n.Labels, g.language)
	}
	node := &n
	g.nodes[n.ID] = node
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge appends a subclass-of edge between existing nodes and records
// From as an observed parent of To.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	to, ok := g.nodes[e.To]
	if !ok {
		return ErrUnknownTargetNode
	}
	if e.Kind == "" {
		e.Kind = SubClassOf
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	to.Parents = append(to.Parents, e.From)
	return nil
}

// AddProperty records an object property. Later duplicates are ignored.
func (g *Graph) AddProperty(p Property) {
	if p.ID == "" {
		return
	}
	if _, exists := g.properties[p.ID]; exists {
		return
	}
	g.properties[p.ID] = &p
	g.propOrder = append(g.propOrder, p.ID)
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id string) (ClassNode, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return ClassNode{}, false
	}
	return cloneNode(n), true
}

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Name returns the display name of id, or id itself for unknown nodes.
func (g *Graph) Name(id string) string {
	if n, ok := g.nodes[id]; ok {
		return n.Name
	}
	return id
}

// IDs returns node ids in insertion order.
func (g *Graph) IDs() []string { return slices.Clone(g.order) }

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []ClassNode {
	out := make([]ClassNode, len(g.order))
	for i, id := range g.order {
		out[i] = cloneNode(g.nodes[id])
	}
	return out
}

// Edges returns a copy of the edge list in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the direct subclasses of id in edge order. The slice must
// not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the direct superclasses of id in edge order. The slice must
// not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }


// Sources returns ids with no incoming edge, in insertion order.
func (g *Graph) Sources() []string {
	var out []string
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Property returns a copy of the object property with the given id.
func (g *Graph) Property(id string) (Property, bool) {
	p, ok := g.properties[id]
	if !ok {
		return Property{}, false
	}
	out := *p
	out.Labels = slices.Clone(p.Labels)
	out.Comments = slices.Clone(p.Comments)
	out.Domain = slices.Clone(p.Domain)
	out.Range = slices.Clone(p.Range)
	return out, true
}

// Properties returns all object property ids in declaration order.
func (g *Graph) Properties() []string { return slices.Clone(g.propOrder) }

// Subgraph returns a new graph induced by keep: the nodes of g whose ids are
// in keep, and the edges of g whose endpoints both are. Node and edge order
// follow g. Properties are carried over. g is not modified.
func (g *Graph) Subgraph(keep map[string]bool) *Graph {
	out := New(g.language)
	for _, id := range g.order {
		if !keep[id] {
			continue
		}
		n := cloneNode(g.nodes[id])
		n.Parents = nil
		_ = out.AddNode(n)
	}
	for _, e := range g.edges {
		if keep[e.From] && keep[e.To] {
			_ = out.AddEdge(e)
		}
	}
	for _, id := range g.propOrder {
		out.AddProperty(*g.properties[id])
	}
	return out
}

// ResolveLabel returns the label of id for lang, falling back to the base
// language, then [FallbackLanguage], then id itself. Unknown ids resolve to
// themselves.
func (g *Graph) ResolveLabel(id, lang string) string {
	n, ok := g.nodes[id]
	if !ok {
		return id
	}
	return DisplayName(id, n.Labels, lang)
}

// Labeler returns an expr.Labeler resolving ids in the graph's language.
func (g *Graph) Labeler() expr.Labeler {
	return g.Name
}

func cloneNode(n *ClassNode) ClassNode {
	out := *n
	out.Labels = slices.Clone(n.Labels)
	out.Comments = slices.Clone(n.Comments)
	out.SuperClasses = slices.Clone(n.SuperClasses)
	out.Parents = slices.Clone(n.Parents)
	out.Equivalents = slices.Clone(n.Equivalents)
	out.Restrictions = slices.Clone(n.Restrictions)
	return out
}
