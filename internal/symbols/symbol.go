package symbols

import (
	"pyrsc/internal/ast"
	"pyrsc/internal/source"
	"pyrsc/internal/types"
)

// SymbolKind classifies the semantic meaning of a binding.
type SymbolKind uint8

const (
	SymbolInvalid  SymbolKind = iota
	SymbolParam               // function parameter
	SymbolLocal               // annotated declaration inside a def
	SymbolGlobal              // annotated declaration at module level
	SymbolFunction            // def name, or a prelude builtin
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolParam:
		return "param"
	case SymbolLocal:
		return "local"
	case SymbolGlobal:
		return "global"
	case SymbolFunction:
		return "function"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	SymbolFlagBuiltin SymbolFlags = 1 << iota
	// SymbolFlagUnannotated marks a binding introduced by a plain
	// assignment with no prior declaration. The checker reports exactly one
	// missing-annotation diagnostic at the binding's span.
	SymbolFlagUnannotated
)

// Builtin distinguishes the prelude functions. The checker types their
// calls specially (print is polymorphic over printable types, range takes
// one to three ints, len works on lists and strings).
type Builtin uint8

const (
	BuiltinNone Builtin = iota
	BuiltinPrint
	BuiltinRange
	BuiltinLen
)

func (b Builtin) String() string {
	switch b {
	case BuiltinPrint:
		return "print"
	case BuiltinRange:
		return "range"
	case BuiltinLen:
		return "len"
	default:
		return "none"
	}
}

// SymbolDecl records the AST origin of a binding for diagnostics and for
// the checker to find the declaring node.
type SymbolDecl struct {
	Item  ast.ItemID  // for SymbolFunction
	Param ast.ParamID // for SymbolParam
	Stmt  ast.StmtID  // declaring assign or for statement
}

// Symbol describes a named binding visible in a scope. Type starts as
// types.NoTypeID; the checker fills it in from the declared annotation and
// never changes it afterwards.
type Symbol struct {
	Name    source.StringID
	Kind    SymbolKind
	Scope   ScopeID
	Span    source.Span
	Flags   SymbolFlags
	Builtin Builtin
	Type    types.TypeID
	Decl    SymbolDecl
}

// IsBuiltin reports whether the symbol came from the prelude.
func (s *Symbol) IsBuiltin() bool { return s.Flags&SymbolFlagBuiltin != 0 }
