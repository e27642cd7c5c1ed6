// Package expr parses OWL class expressions into an immutable AST and renders
// them back to readable text.
//
// An [Expr] is one of five variants:
//
//	Named         a class reference                       Vehicle
//	Intersection  ordered operands joined by "and"         A and B
//	Union         ordered operands joined by "or"          (A or B)
//	Complement    negation of one operand                  (not A)
//	Restriction   property quantified over a value         (hasPart some Wheel)
//
// Restriction values may themselves be restrictions (or any other class
// expression), and restriction properties may be inverse property
// descriptions, so [Parse] recurses on both.
//
// [Parse] never fails. Element shapes it does not recognize yield nil, and
// list-valued variants simply omit nil operands, so one unsupported
// construct (a cardinality restriction, say) does not hide the rest of an
// axiom.
//
// [Render] is a structural fold over the AST with a single type switch. It
// takes a [Labeler] so named classes can be shown in the active language.
package expr
