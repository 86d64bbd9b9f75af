package ast

import (
	"pyrsc/internal/source"
)

// ItemKind enumerates top-level item categories. Phase A has only function
// definitions; the closed set leaves room for later item forms.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemFunc
)

// Item is a top-level definition.
type Item struct {
	Kind ItemKind
	Span source.Span
	Fn   FuncData // valid when Kind == ItemFunc
}

// FuncData carries a function definition: name, annotated parameters, return
// annotation and body.
type FuncData struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []ParamID
	// Return is the declared return type annotation, NoTypeExprID when the
	// arrow clause is missing (a strict-mode error reported by the checker).
	Return TypeExprID
	Body   []StmtID
}

// Param is one function parameter. Ann is NoTypeExprID when the annotation
// is missing.
type Param struct {
	Name source.StringID
	Span source.Span
	Ann  TypeExprID
}

type Items struct {
	Arena  *Arena[Item]
	Params *Arena[Param]
}

func NewItems(capHint uint) *Items {
	return &Items{
		Arena:  NewArena[Item](capHint),
		Params: NewArena[Param](capHint),
	}
}

func (it *Items) NewFunc(span source.Span, data FuncData) ItemID {
	return ItemID(it.Arena.Allocate(Item{Kind: ItemFunc, Span: span, Fn: data}))
}

func (it *Items) NewParam(p Param) ParamID {
	return ParamID(it.Params.Allocate(p))
}

func (it *Items) Get(id ItemID) *Item {
	return it.Arena.Get(uint32(id))
}

func (it *Items) Param(id ParamID) *Param {
	return it.Params.Get(uint32(id))
}
