package ast

import (
	"pyrsc/internal/source"
)

// Hints pre-sizes the builder's arenas.
type Hints struct{ Files, Items, Stmts, Exprs, Types uint }

// Builder owns all AST arenas for a compilation plus the string interner
// identifiers refer to.
type Builder struct {
	Files     *Files
	Items     *Items
	Stmts     *Stmts
	Exprs     *Exprs
	TypeExprs *TypeExprs
	Strings   *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 5
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 5
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:     NewFiles(hints.Files),
		Items:     NewItems(hints.Items),
		Stmts:     NewStmts(hints.Stmts),
		Exprs:     NewExprs(hints.Exprs),
		TypeExprs: NewTypeExprs(hints.Types),
		Strings:   strings,
	}
}

// Name resolves an interned identifier back to its text.
func (b *Builder) Name(id source.StringID) string {
	return b.Strings.MustLookup(id)
}
