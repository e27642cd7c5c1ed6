package session

import (
	"github.com/matzehuels/ontoview/pkg/expr"
	"github.com/matzehuels/ontoview/pkg/ontology"
)

// Axioms is everything declared about one class.
type Axioms struct {
	ID           string
	Name         string
	Labels       []ontology.Label
	Comments     []string
	SuperClasses []string
	// SubClasses are the classes declaring ID as a superclass, in graph
	// order.
	SubClasses  []string
	Equivalents []expr.Expr
	// Restrictions maps each restricted property to its fillers. Properties
	// lists the keys in declaration order.
	Restrictions map[string][]expr.Filler
	Properties   []string
}

// Axioms returns the axioms of classID. Ids that are not classes of the
// graph, such as the virtual root of a display tree, yield an Axioms
// carrying only the id as its name.
func (s *Session) Axioms(classID string) Axioms {
	out := Axioms{ID: classID, Name: classID, Restrictions: map[string][]expr.Filler{}}
	g := s.FullGraph()
	n, ok := g.Node(classID)
	if !ok {
		return out
	}

	out.Name = n.Name
	out.Labels = n.Labels
	out.Comments = n.Comments
	out.SuperClasses = n.SuperClasses
	out.SubClasses = append([]string(nil), g.Children(classID)...)
	out.Equivalents = n.Equivalents
	for _, r := range n.Restrictions {
		if _, seen := out.Restrictions[r.Property]; !seen {
			out.Properties = append(out.Properties, r.Property)
		}
		out.Restrictions[r.Property] = append(out.Restrictions[r.Property], r.Filler)
	}
	return out
}
