package expr

import (
	"encoding/json"
	"fmt"
)

// Quantifier is the kind of a property restriction.
type Quantifier string

const (
	// Some is an existential restriction (owl:someValuesFrom).
	Some Quantifier = "some"
	// Only is a universal restriction (owl:allValuesFrom).
	Only Quantifier = "only"
)

// Expr is a parsed class expression. The set of implementations is closed:
// Named, Intersection, Union, Complement and Restriction.
type Expr interface {
	isExpr()
}

// Named references a class by local id.
type Named struct {
	ID string
}

// Intersection is the conjunction of its operands, in source order.
type Intersection struct {
	Operands []Expr
}

// Union is the disjunction of its operands, in source order.
type Union struct {
	Operands []Expr
}

// Complement negates its operand.
type Complement struct {
	Operand Expr
}

// Restriction quantifies Property over Value. Property is a local id, or
// "inverse(P)" for an inverse property description.
type Restriction struct {
	Property   string
	Quantifier Quantifier
	Value      Expr
}

func (Named) isExpr()        {}
func (Intersection) isExpr() {}
func (Union) isExpr()        {}
func (Complement) isExpr()   {}
func (Restriction) isExpr()  {}

// Filler is one quantified value of a property restriction, as listed under
// a class's restrictions.
type Filler struct {
	Quantifier Quantifier `json:"quantifier"`
	Value      Expr       `json:"-"`
}

// PropertyFiller pairs a property with a filler, preserving declaration order.
type PropertyFiller struct {
	Property string
	Filler   Filler
}

// Walk calls fn for e and every sub-expression, depth first.
func Walk(e Expr, fn func(Expr)) {
	if e == nil {
		return
	}
	fn(e)
	switch v := e.(type) {
	case Intersection:
		for _, o := range v.Operands {
			Walk(o, fn)
		}
	case Union:
		for _, o := range v.Operands {
			Walk(o, fn)
		}
	case Complement:
		Walk(v.Operand, fn)
	case Restriction:
		Walk(v.Value, fn)
	}
}

// References returns the ids of all named classes in e, in order of first
// appearance.
func References(e Expr) []string {
	var ids []string
	seen := make(map[string]bool)
	Walk(e, func(x Expr) {
		if n, ok := x.(Named); ok && !seen[n.ID] {
			seen[n.ID] = true
			ids = append(ids, n.ID)
		}
	})
	return ids
}

// =============================================================================
// JSON
// =============================================================================

// wireExpr is the tagged JSON form of an Expr.
type wireExpr struct {
	Type       string     `json:"type"`
	ID         string     `json:"id,omitempty"`
	Operands   []wireExpr `json:"operands,omitempty"`
	Operand    *wireExpr  `json:"operand,omitempty"`
	Property   string     `json:"property,omitempty"`
	Quantifier Quantifier `json:"quantifier,omitempty"`
	Value      *wireExpr  `json:"value,omitempty"`
}

// Marshal encodes e as tagged JSON:
//
//	{"type":"restriction","property":"P","quantifier":"some","value":{"type":"named","id":"R"}}
func Marshal(e Expr) ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	return json.Marshal(toWire(e))
}

// Unmarshal decodes tagged JSON produced by [Marshal].
func Unmarshal(data []byte) (Expr, error) {
	var w *wireExpr
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	return fromWire(*w)
}

func toWire(e Expr) wireExpr {
	switch v := e.(type) {
	case Named:
		return wireExpr{Type: "named", ID: v.ID}
	case Intersection:
		return wireExpr{Type: "intersection", Operands: toWireList(v.Operands)}
	case Union:
		return wireExpr{Type: "union", Operands: toWireList(v.Operands)}
	case Complement:
		op := toWire(v.Operand)
		return wireExpr{Type: "complement", Operand: &op}
	case Restriction:
		val := toWire(v.Value)
		return wireExpr{Type: "restriction", Property: v.Property, Quantifier: v.Quantifier, Value: &val}
	default:
		panic(fmt.Sprintf("expr: unknown expression %T", e))
	}
}

func toWireList(es []Expr) []wireExpr {
	out := make([]wireExpr, len(es))
	for i, e := range es {
		out[i] = toWire(e)
	}
	return out
}

func fromWire(w wireExpr) (Expr, error) {
	switch w.Type {
	case "named":
		return Named{ID: w.ID}, nil
	case "intersection", "union":
		ops := make([]Expr, 0, len(w.Operands))
		for _, o := range w.Operands {
			e, err := fromWire(o)
			if err != nil {
				return nil, err
			}
			ops = append(ops, e)
		}
		if w.Type == "union" {
			return Union{Operands: ops}, nil
		}
		return Intersection{Operands: ops}, nil
	case "complement":
		if w.Operand == nil {
			return nil, fmt.Errorf("complement without operand")
		}
		op, err := fromWire(*w.Operand)
		if err != nil {
			return nil, err
		}
		return Complement{Operand: op}, nil
	case "restriction":
		if w.Value == nil {
			return nil, fmt.Errorf("restriction %q without value", w.Property)
		}
		val, err := fromWire(*w.Value)
		if err != nil {
			return nil, err
		}
		return Restriction{Property: w.Property, Quantifier: w.Quantifier, Value: val}, nil
	default:
		return nil, fmt.Errorf("unknown expression type %q", w.Type)
	}
}

// MarshalJSON encodes the filler with its value in tagged form.
func (f Filler) MarshalJSON() ([]byte, error) {
	val, err := Marshal(f.Value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Quantifier Quantifier      `json:"quantifier"`
		Value      json.RawMessage `json:"value"`
	}{f.Quantifier, val})
}

// UnmarshalJSON decodes a filler encoded by [Filler.MarshalJSON].
func (f *Filler) UnmarshalJSON(data []byte) error {
	var w struct {
		Quantifier Quantifier      `json:"quantifier"`
		Value      json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	val, err := Unmarshal(w.Value)
	if err != nil {
		return err
	}
	f.Quantifier, f.Value = w.Quantifier, val
	return nil
}
