package mir

import (
	"pyrsc/internal/source"
	"pyrsc/internal/symbols"
	"pyrsc/internal/types"
)

// Func is one lowered function: a CFG of basic blocks over a frame of
// named local slots. Values holds the type of every SSA value, indexed by
// ValueID; the counter is per-function and monotonic.
type Func struct {
	ID   FuncID
	Sym  symbols.SymbolID
	Name string
	Span source.Span

	Params int // leading Locals that are parameters
	Result types.TypeID

	Locals []Local
	Values []types.TypeID
	Blocks []Block
	Entry  BlockID
}

// NewBlock appends an empty block and returns its ID.
func (f *Func) NewBlock() BlockID {
	id := BlockID(len(f.Blocks))
	f.Blocks = append(f.Blocks, Block{ID: id})
	return id
}

// Block returns the block with the given ID, or nil.
func (f *Func) Block(id BlockID) *Block {
	if id < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return &f.Blocks[id]
}

// NewValue allocates the next value ID with the given type.
func (f *Func) NewValue(t types.TypeID) ValueID {
	id := ValueID(len(f.Values))
	f.Values = append(f.Values, t)
	return id
}

// ValueType returns the type recorded for a value.
func (f *Func) ValueType(id ValueID) types.TypeID {
	if id < 0 || int(id) >= len(f.Values) {
		return types.NoTypeID
	}
	return f.Values[id]
}

// NewLocal appends a local slot and returns its ID.
func (f *Func) NewLocal(l Local) LocalID {
	id := LocalID(len(f.Locals))
	f.Locals = append(f.Locals, l)
	return id
}

// Local returns the slot with the given ID, or nil.
func (f *Func) Local(id LocalID) *Local {
	if id < 0 || int(id) >= len(f.Locals) {
		return nil
	}
	return &f.Locals[id]
}
