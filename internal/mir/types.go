package mir

import (
	"pyrsc/internal/source"
	"pyrsc/internal/symbols"
	"pyrsc/internal/types"
)

type FuncID int32
type BlockID int32
type LocalID int32
type GlobalID int32

// ValueID indexes a function's value table. Each value is produced by
// exactly one instruction and never reassigned; mutable variables live in
// named local or global slots with explicit loads and stores instead.
type ValueID int32

const (
	NoFuncID   FuncID   = -1
	NoBlockID  BlockID  = -1
	NoLocalID  LocalID  = -1
	NoGlobalID GlobalID = -1
	NoValueID  ValueID  = -1
)

// Local is a named mutable slot in a function frame. Parameters come
// first, in declaration order; compiler temporaries have no symbol.
type Local struct {
	Sym  symbols.SymbolID
	Name string
	Type types.TypeID
	Span source.Span
}

// Global is a module-level variable. Only the synthetic entry function
// stores to globals; other functions read them.
type Global struct {
	Sym  symbols.SymbolID
	Name string
	Type types.TypeID
	Span source.Span
}
