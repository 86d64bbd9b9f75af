package ast

import (
	"pyrsc/internal/source"
)

// TypeExpr is a syntactic type annotation: a name, optionally with
// subscripted generic arguments (`list[int]`). The type system resolves it
// into a semantic type; the AST records only the shape.
type TypeExpr struct {
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span
	Args     []TypeExprID
	// Subscripted reports whether brackets were written, so `list` and
	// `list[]`-like arity mistakes stay distinguishable from a bare name.
	Subscripted bool
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	return &TypeExprs{Arena: NewArena[TypeExpr](capHint)}
}

func (t *TypeExprs) New(te TypeExpr) TypeExprID {
	return TypeExprID(t.Arena.Allocate(te))
}

func (t *TypeExprs) Get(id TypeExprID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}
