package expr

import (
	"github.com/matzehuels/ontoview/pkg/iri"
	"github.com/matzehuels/ontoview/pkg/owl"
)

// Parse converts a class-expression element into an Expr. It returns nil
// when the element's shape is not part of the grammar.
//
// Shapes are tried in this order:
//
//  1. an element named *Class or *Description with its own identifier
//  2. an element with an intersectionOf child
//  3. an element with a unionOf child
//  4. an element with a complementOf child (resource or nested expression)
//  5. an element named *Restriction
func Parse(el *owl.Element) Expr {
	if el == nil {
		return nil
	}
	if (el.HasSuffix("Class") || el.HasSuffix("Description")) && el.About() != "" {
		return Named{ID: iri.Resolve(el.About())}
	}
	if list := el.Child("intersectionOf"); list != nil {
		return Intersection{Operands: parseList(list)}
	}
	if list := el.Child("unionOf"); list != nil {
		return Union{Operands: parseList(list)}
	}
	if c := el.Child("complementOf"); c != nil {
		op := parseValue(c)
		if op == nil {
			return nil
		}
		return Complement{Operand: op}
	}
	if el.HasSuffix("Restriction") {
		return parseRestriction(el)
	}
	return nil
}

// ParseEquivalent parses the content of an equivalentClass element: either a
// resource reference or the first nested class expression.
func ParseEquivalent(el *owl.Element) Expr {
	return parseValue(el)
}

// ParseRestrictions collects the property restrictions declared under a
// class's subClassOf children, in declaration order. Superclass references
// that are not restrictions are ignored.
func ParseRestrictions(class *owl.Element) []PropertyFiller {
	var out []PropertyFiller
	for _, sub := range class.ChildrenNamed("subClassOf") {
		for _, c := range sub.Children {
			if !c.HasSuffix("Restriction") {
				continue
			}
			if r, ok := parseRestriction(c).(Restriction); ok {
				out = append(out, PropertyFiller{
					Property: r.Property,
					Filler:   Filler{Quantifier: r.Quantifier, Value: r.Value},
				})
			}
		}
	}
	return out
}

func parseList(list *owl.Element) []Expr {
	ops := make([]Expr, 0, len(list.Children))
	for _, c := range list.Children {
		if e := Parse(c); e != nil {
			ops = append(ops, e)
		}
	}
	return ops
}

// parseValue reads a slot that holds either an rdf:resource reference or a
// nested class expression.
func parseValue(slot *owl.Element) Expr {
	if res := slot.Resource(); res != "" {
		return Named{ID: iri.Resolve(res)}
	}
	for _, c := range slot.Children {
		if e := Parse(c); e != nil {
			return e
		}
	}
	return nil
}

func parseRestriction(el *owl.Element) Expr {
	props := el.ChildrenNamed("onProperty")
	if len(props) != 1 {
		return nil
	}
	property := parseProperty(props[0])
	if property == "" {
		return nil
	}

	some := el.ChildrenNamed("someValuesFrom")
	all := el.ChildrenNamed("allValuesFrom")

	var (
		slot *owl.Element
		q    Quantifier
	)
	switch {
	case len(some) == 1 && len(all) == 0:
		slot, q = some[0], Some
	case len(all) == 1 && len(some) == 0:
		slot, q = all[0], Only
	default:
		return nil
	}

	value := parseValue(slot)
	if value == nil {
		return nil
	}
	return Restriction{Property: property, Quantifier: q, Value: value}
}

// parseProperty resolves an onProperty slot: a direct resource, a nested
// named property element, or an anonymous description with inverseOf.
func parseProperty(slot *owl.Element) string {
	if res := slot.Resource(); res != "" {
		return iri.Resolve(res)
	}
	for _, c := range slot.Children {
		if inv := c.Child("inverseOf"); inv != nil {
			if p := parseProperty(inv); p != "" {
				return iri.Inverse(p)
			}
			continue
		}
		if about := c.About(); about != "" {
			return iri.Resolve(about)
		}
	}
	return ""
}
