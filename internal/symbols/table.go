package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"pyrsc/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas and shared resources.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
}

// LookupIn searches one scope only.
func (t *Table) LookupIn(scope ScopeID, name source.StringID) (SymbolID, bool) {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return NoSymbolID, false
	}
	id, ok := sc.NameIndex[name]
	return id, ok
}

// Lookup walks the scope chain from innermost to outermost and returns the
// first binding with the given name.
func (t *Table) Lookup(scope ScopeID, name source.StringID) (SymbolID, bool) {
	for scope.IsValid() {
		sc := t.Scopes.Get(scope)
		if sc == nil {
			break
		}
		if id, ok := sc.NameIndex[name]; ok {
			return id, true
		}
		scope = sc.Parent
	}
	return NoSymbolID, false
}

// SymbolName resolves a symbol's interned name back to text.
func (t *Table) SymbolName(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	return t.Strings.MustLookup(sym.Name)
}
