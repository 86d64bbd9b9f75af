package symbols

import (
	"fmt"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/source"
)

// Options configures resolver construction.
type Options struct {
	Reporter diag.Reporter
	Prelude  []PreludeEntry // nil means the default print/range/len set
	Hints    Hints
}

// Result is the resolver's output: the scope tree, every binding, and the
// per-node resolution maps the checker and lowering consume.
type Result struct {
	Table        *Table
	BuiltinScope ScopeID
	ModuleScope  ScopeID

	// ExprBindings maps every resolved identifier expression to its symbol.
	ExprBindings map[ast.ExprID]SymbolID
	// AssignTargets maps assign statements to the binding they write.
	AssignTargets map[ast.StmtID]SymbolID
	// ForVars maps for statements to their loop-variable binding.
	ForVars map[ast.StmtID]SymbolID
	// FuncSymbols and FuncScopes map each def to its symbol and body scope.
	FuncSymbols map[ast.ItemID]SymbolID
	FuncScopes  map[ast.ItemID]ScopeID
	// ParamSymbols maps each parameter to its binding.
	ParamSymbols map[ast.ParamID]SymbolID
}

// Binding is a convenience accessor over ExprBindings.
func (res *Result) Binding(id ast.ExprID) (SymbolID, bool) {
	sym, ok := res.ExprBindings[id]
	return sym, ok
}

type resolver struct {
	builder  *ast.Builder
	table    *Table
	reporter diag.Reporter
	result   *Result

	stack []ScopeID
	// pending tracks names an annotated declaration or for statement will
	// introduce later in a scope, so earlier references report
	// use-before-definition instead of silently binding outward.
	pending map[ScopeID]map[source.StringID]source.Span
}

func (r *resolver) current() ScopeID {
	return r.stack[len(r.stack)-1]
}

func (r *resolver) enter(kind ScopeKind, span source.Span) ScopeID {
	id := r.table.Scopes.New(kind, r.current(), span)
	r.stack = append(r.stack, id)
	return id
}

func (r *resolver) leave() {
	r.stack = r.stack[:len(r.stack)-1]
}

// declare installs a binding into the current scope. Redeclaration within
// the same scope is reported and the original binding kept.
func (r *resolver) declare(name source.StringID, span source.Span, kind SymbolKind, decl SymbolDecl) SymbolID {
	scopeID := r.current()
	scope := r.table.Scopes.Get(scopeID)
	if prev, ok := scope.NameIndex[name]; ok {
		r.reportRedeclared(name, span, prev)
		return NoSymbolID
	}
	id := r.table.Symbols.New(&Symbol{
		Name:  name,
		Kind:  kind,
		Scope: scopeID,
		Span:  span,
		Decl:  decl,
	})
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[name] = id
	r.clearPending(scopeID, name)
	return id
}

func (r *resolver) markPending(scope ScopeID, name source.StringID, span source.Span) {
	m := r.pending[scope]
	if m == nil {
		m = make(map[source.StringID]source.Span)
		r.pending[scope] = m
	}
	if _, ok := m[name]; !ok {
		m[name] = span
	}
}

func (r *resolver) clearPending(scope ScopeID, name source.StringID) {
	if m := r.pending[scope]; m != nil {
		delete(m, name)
	}
}

func (r *resolver) pendingDecl(scope ScopeID, name source.StringID) (source.Span, bool) {
	m := r.pending[scope]
	if m == nil {
		return source.Span{}, false
	}
	sp, ok := m[name]
	return sp, ok
}

// resolveRef binds a name reference: current scope first, then the
// use-before-definition check, then outer scopes.
func (r *resolver) resolveRef(name source.StringID, span source.Span) SymbolID {
	scopeID := r.current()
	if id, ok := r.table.LookupIn(scopeID, name); ok {
		return id
	}
	if declSpan, ok := r.pendingDecl(scopeID, name); ok {
		r.reportUseBeforeDef(name, span, declSpan)
		return NoSymbolID
	}
	if id, ok := r.table.Lookup(scopeID, name); ok {
		return id
	}
	r.reportUndefined(name, span)
	return NoSymbolID
}

// resolveWrite binds a plain-assignment target. Writes resolve only inside
// the current scope; a name bound outward is read-only from here.
func (r *resolver) resolveWrite(name source.StringID, span source.Span) SymbolID {
	scopeID := r.current()
	if id, ok := r.table.LookupIn(scopeID, name); ok {
		sym := r.table.Symbols.Get(id)
		if sym.Kind == SymbolFunction {
			r.reportAssignToFunc(name, span, sym.Span)
			return NoSymbolID
		}
		return id
	}
	if declSpan, ok := r.pendingDecl(scopeID, name); ok {
		r.reportUseBeforeDef(name, span, declSpan)
		return NoSymbolID
	}
	if id, ok := r.table.Lookup(scopeID, name); ok {
		r.reportWriteToOuter(name, span, r.table.Symbols.Get(id).Span)
		return NoSymbolID
	}
	// First assignment without an annotation: bind it anyway so later uses
	// resolve, and let the checker report the missing annotation once.
	return r.declareUnannotated(name, span)
}

func (r *resolver) declareUnannotated(name source.StringID, span source.Span) SymbolID {
	scopeID := r.current()
	kind := SymbolLocal
	if r.table.Scopes.Get(scopeID).Kind == ScopeModule {
		kind = SymbolGlobal
	}
	id := r.table.Symbols.New(&Symbol{
		Name:  name,
		Kind:  kind,
		Scope: scopeID,
		Span:  span,
		Flags: SymbolFlagUnannotated,
	})
	scope := r.table.Scopes.Get(scopeID)
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[name] = id
	return id
}

func (r *resolver) nameText(name source.StringID) string {
	return r.table.Strings.MustLookup(name)
}

func (r *resolver) reportUndefined(name source.StringID, span source.Span) {
	diag.ReportError(r.reporter, diag.NameUndefined, span,
		fmt.Sprintf("undefined name '%s'", r.nameText(name)))
}

func (r *resolver) reportUseBeforeDef(name source.StringID, span, declSpan source.Span) {
	diag.ReportErrorNote(r.reporter, diag.NameUseBeforeDef, span,
		fmt.Sprintf("name '%s' is used before its declaration", r.nameText(name)),
		declSpan, "declared here")
}

func (r *resolver) reportWriteToOuter(name source.StringID, span, declSpan source.Span) {
	diag.ReportErrorNote(r.reporter, diag.NameWriteToOuter, span,
		fmt.Sprintf("cannot assign to '%s': it is bound in an outer scope", r.nameText(name)),
		declSpan, "outer binding declared here")
}

func (r *resolver) reportAssignToFunc(name source.StringID, span, declSpan source.Span) {
	diag.ReportErrorNote(r.reporter, diag.NameRedeclared, span,
		fmt.Sprintf("cannot assign to function '%s'", r.nameText(name)),
		declSpan, "function defined here")
}

func (r *resolver) reportRedeclared(name source.StringID, span source.Span, prev SymbolID) {
	msg := fmt.Sprintf("redeclaration of '%s'", r.nameText(name))
	if sym := r.table.Symbols.Get(prev); sym != nil {
		diag.ReportErrorNote(r.reporter, diag.NameRedeclared, span, msg,
			sym.Span, "previous declaration here")
		return
	}
	diag.ReportError(r.reporter, diag.NameRedeclared, span, msg)
}

// installPrelude declares builtin entries into the synthetic root scope.
func (r *resolver) installPrelude(scopeID ScopeID, entries []PreludeEntry) {
	scope := r.table.Scopes.Get(scopeID)
	for _, entry := range entries {
		nameID := r.table.Strings.Intern(entry.Name)
		id := r.table.Symbols.New(&Symbol{
			Name:    nameID,
			Kind:    SymbolFunction,
			Scope:   scopeID,
			Flags:   SymbolFlagBuiltin,
			Builtin: entry.Builtin,
		})
		scope.Symbols = append(scope.Symbols, id)
		scope.NameIndex[nameID] = id
	}
}
