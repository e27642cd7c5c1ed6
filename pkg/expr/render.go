package expr

import (
	"fmt"
	"strings"
)

// Labeler maps a class id to its display label.
type Labeler func(id string) string

// IdentityLabeler renders class ids as-is.
func IdentityLabeler(id string) string { return id }

// Render returns a readable rendering of e. A nil labeler renders ids.
//
//	Named        → label
//	Intersection → "A and B"
//	Union        → "(A or B)"
//	Complement   → "(not A)"
//	Restriction  → "(P some V)" / "(P only V)"
func Render(e Expr, label Labeler) string {
	if label == nil {
		label = IdentityLabeler
	}
	var b strings.Builder
	render(&b, e, label)
	return b.String()
}

// RenderFiller renders a restriction filler as "<quantifier> <value>".
func RenderFiller(f Filler, label Labeler) string {
	return string(f.Quantifier) + " " + Render(f.Value, label)
}

func render(b *strings.Builder, e Expr, label Labeler) {
	switch v := e.(type) {
	case nil:
	case Named:
		b.WriteString(label(v.ID))
	case Intersection:
		renderJoined(b, v.Operands, " and ", label)
	case Union:
		b.WriteByte('(')
		renderJoined(b, v.Operands, " or ", label)
		b.WriteByte(')')
	case Complement:
		b.WriteString("(not ")
		render(b, v.Operand, label)
		b.WriteByte(')')
	case Restriction:
		fmt.Fprintf(b, "(%s %s ", v.Property, v.Quantifier)
		render(b, v.Value, label)
		b.WriteByte(')')
	default:
		panic(fmt.Sprintf("expr: unknown expression %T", e))
	}
}

func renderJoined(b *strings.Builder, ops []Expr, sep string, label Labeler) {
	for i, o := range ops {
		if i > 0 {
			b.WriteString(sep)
		}
		render(b, o, label)
	}
}
