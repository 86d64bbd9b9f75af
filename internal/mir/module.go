package mir

import "pyrsc/internal/symbols"

// EntryName is the synthetic function holding module-level statements.
const EntryName = "__main__"

// Module is the lowered program: one Func per def plus the synthetic
// entry, and one Global per module-level variable.
type Module struct {
	Funcs       []*Func
	FuncBySym   map[symbols.SymbolID]FuncID
	Globals     []Global
	GlobalBySym map[symbols.SymbolID]GlobalID

	// Entry is the FuncID of the synthetic __main__ function.
	Entry FuncID
}

// Func returns the function with the given ID, or nil.
func (m *Module) Func(id FuncID) *Func {
	if id < 0 || int(id) >= len(m.Funcs) {
		return nil
	}
	return m.Funcs[id]
}

// Global returns the global with the given ID, or nil.
func (m *Module) Global(id GlobalID) *Global {
	if id < 0 || int(id) >= len(m.Globals) {
		return nil
	}
	return &m.Globals[id]
}
