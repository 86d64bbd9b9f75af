package symbols

import (
	"pyrsc/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeBuiltin            // synthetic root holding the prelude
	ScopeModule             // module-level statements and defs
	ScopeFunction           // one per def body; if/while/for share it
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeBuiltin:
		return "builtin"
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy. At most one
// symbol per name per scope; shadowing happens across scopes only.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Span      source.Span
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
