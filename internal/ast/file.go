package ast

import (
	"pyrsc/internal/source"
)

// File is the root of one parsed module. Items hold function definitions in
// source order; Body holds the remaining module-level statements in source
// order. Function names are visible to the whole module regardless of where
// the definition appears.
type File struct {
	Span  source.Span
	Items []ItemID
	Body  []StmtID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{Arena: NewArena[File](capHint)}
}

func (f *Files) New(span source.Span) FileID {
	return FileID(f.Arena.Allocate(File{Span: span}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
