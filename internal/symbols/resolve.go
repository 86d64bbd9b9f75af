package symbols

import (
	"pyrsc/internal/ast"
	"pyrsc/internal/source"
)

// Resolve builds the scope tree for one parsed module and binds every name
// reference. Module-level def names are declared in a pre-pass so bodies
// may call functions defined later in the file; everything else resolves
// in program order. Diagnostics go through opts.Reporter; resolution
// continues past errors so the whole module is covered in one pass.
func Resolve(builder *ast.Builder, fileID ast.FileID, opts Options) *Result {
	table := NewTable(opts.Hints, builder.Strings)
	file := builder.Files.Get(fileID)

	r := &resolver{
		builder:  builder,
		table:    table,
		reporter: opts.Reporter,
		result: &Result{
			Table:         table,
			ExprBindings:  make(map[ast.ExprID]SymbolID),
			AssignTargets: make(map[ast.StmtID]SymbolID),
			ForVars:       make(map[ast.StmtID]SymbolID),
			FuncSymbols:   make(map[ast.ItemID]SymbolID),
			FuncScopes:    make(map[ast.ItemID]ScopeID),
			ParamSymbols:  make(map[ast.ParamID]SymbolID),
		},
		pending: make(map[ScopeID]map[source.StringID]source.Span),
	}

	builtinScope := table.Scopes.New(ScopeBuiltin, NoScopeID, source.Span{})
	prelude := opts.Prelude
	if prelude == nil {
		prelude = builtinPreludeEntries()
	}
	r.installPrelude(builtinScope, prelude)

	moduleScope := table.Scopes.New(ScopeModule, builtinScope, file.Span)
	r.result.BuiltinScope = builtinScope
	r.result.ModuleScope = moduleScope
	r.stack = append(r.stack, builtinScope, moduleScope)

	// Pre-pass: hoist def names so module statements and bodies can call
	// functions defined later in the file.
	for _, itemID := range file.Items {
		item := builder.Items.Get(itemID)
		if item.Kind != ast.ItemFunc {
			continue
		}
		sym := r.declare(item.Fn.Name, item.Fn.NameSpan, SymbolFunction, SymbolDecl{Item: itemID})
		r.result.FuncSymbols[itemID] = sym
	}

	r.prescan(moduleScope, file.Body)
	r.resolveStmts(file.Body)

	for _, itemID := range file.Items {
		r.resolveFunc(itemID)
	}

	r.leave() // module
	r.leave() // builtin
	return r.result
}

func (r *resolver) resolveFunc(itemID ast.ItemID) {
	item := r.builder.Items.Get(itemID)
	if item.Kind != ast.ItemFunc {
		return
	}
	scope := r.enter(ScopeFunction, item.Span)
	r.result.FuncScopes[itemID] = scope

	// Parameters count as declared at function entry.
	for _, paramID := range item.Fn.Params {
		param := r.builder.Items.Param(paramID)
		sym := r.declare(param.Name, param.Span, SymbolParam, SymbolDecl{Param: paramID})
		r.result.ParamSymbols[paramID] = sym
	}

	r.prescan(scope, item.Fn.Body)
	r.resolveStmts(item.Fn.Body)
	r.leave()
}

// prescan records every name a later annotated declaration or for loop will
// introduce in this scope. References before the declaring statement then
// report use-before-definition instead of binding to an outer scope.
func (r *resolver) prescan(scope ScopeID, stmts []ast.StmtID) {
	for _, stmtID := range stmts {
		stmt := r.builder.Stmts.Get(stmtID)
		switch stmt.Kind {
		case ast.StmtAssign:
			data, _ := r.builder.Stmts.Assign(stmtID)
			if data.Ann.IsValid() {
				r.markPending(scope, data.Name, data.NameSpan)
			}
		case ast.StmtFor:
			data, _ := r.builder.Stmts.For(stmtID)
			r.markPending(scope, data.Var, data.VarSpan)
			r.prescan(scope, data.Body)
		case ast.StmtIf:
			data, _ := r.builder.Stmts.If(stmtID)
			r.prescan(scope, data.Then)
			r.prescan(scope, data.Else)
		case ast.StmtWhile:
			data, _ := r.builder.Stmts.While(stmtID)
			r.prescan(scope, data.Body)
		}
	}
}

func (r *resolver) resolveStmts(stmts []ast.StmtID) {
	for _, stmtID := range stmts {
		r.resolveStmt(stmtID)
	}
}

func (r *resolver) resolveStmt(stmtID ast.StmtID) {
	stmt := r.builder.Stmts.Get(stmtID)
	switch stmt.Kind {
	case ast.StmtAssign:
		data, _ := r.builder.Stmts.Assign(stmtID)
		// The value resolves before the target so `x: int = x` reports
		// use-before-definition.
		r.resolveExpr(data.Value)
		if data.Ann.IsValid() {
			kind := SymbolLocal
			if r.table.Scopes.Get(r.current()).Kind == ScopeModule {
				kind = SymbolGlobal
			}
			sym := r.declare(data.Name, data.NameSpan, kind, SymbolDecl{Stmt: stmtID})
			r.result.AssignTargets[stmtID] = sym
		} else {
			r.result.AssignTargets[stmtID] = r.resolveWrite(data.Name, data.NameSpan)
		}
	case ast.StmtIndexAssign:
		data, _ := r.builder.Stmts.IndexAssign(stmtID)
		r.resolveExpr(data.Base)
		r.resolveExpr(data.Index)
		r.resolveExpr(data.Value)
	case ast.StmtExpr:
		data, _ := r.builder.Stmts.Expr(stmtID)
		r.resolveExpr(data.Value)
	case ast.StmtReturn:
		data, _ := r.builder.Stmts.Return(stmtID)
		if data.Value.IsValid() {
			r.resolveExpr(data.Value)
		}
	case ast.StmtIf:
		data, _ := r.builder.Stmts.If(stmtID)
		r.resolveExpr(data.Cond)
		r.resolveStmts(data.Then)
		r.resolveStmts(data.Else)
	case ast.StmtWhile:
		data, _ := r.builder.Stmts.While(stmtID)
		r.resolveExpr(data.Cond)
		r.resolveStmts(data.Body)
	case ast.StmtFor:
		data, _ := r.builder.Stmts.For(stmtID)
		for _, arg := range data.Args {
			r.resolveExpr(arg)
		}
		r.result.ForVars[stmtID] = r.bindForVar(stmtID, data)
		r.resolveStmts(data.Body)
	case ast.StmtPass, ast.StmtBreak, ast.StmtContinue:
	}
}

// bindForVar reuses an existing binding in the current scope or declares a
// fresh local. The loop variable is always an int; the checker enforces a
// matching annotation when the binding pre-exists.
func (r *resolver) bindForVar(stmtID ast.StmtID, data *ast.StmtForData) SymbolID {
	scopeID := r.current()
	if id, ok := r.table.LookupIn(scopeID, data.Var); ok {
		sym := r.table.Symbols.Get(id)
		if sym.Kind == SymbolFunction {
			r.reportAssignToFunc(data.Var, data.VarSpan, sym.Span)
			return NoSymbolID
		}
		return id
	}
	if id, ok := r.table.Lookup(scopeID, data.Var); ok {
		r.reportWriteToOuter(data.Var, data.VarSpan, r.table.Symbols.Get(id).Span)
		return NoSymbolID
	}
	kind := SymbolLocal
	if r.table.Scopes.Get(scopeID).Kind == ScopeModule {
		kind = SymbolGlobal
	}
	return r.declare(data.Var, data.VarSpan, kind, SymbolDecl{Stmt: stmtID})
}

func (r *resolver) resolveExpr(exprID ast.ExprID) {
	if !exprID.IsValid() {
		return
	}
	expr := r.builder.Exprs.Get(exprID)
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := r.builder.Exprs.Ident(exprID)
		if sym := r.resolveRef(data.Name, expr.Span); sym.IsValid() {
			r.result.ExprBindings[exprID] = sym
		}
	case ast.ExprUnary:
		data, _ := r.builder.Exprs.Unary(exprID)
		r.resolveExpr(data.Operand)
	case ast.ExprBinary:
		data, _ := r.builder.Exprs.Binary(exprID)
		r.resolveExpr(data.Left)
		r.resolveExpr(data.Right)
	case ast.ExprBoolOp:
		data, _ := r.builder.Exprs.BoolOp(exprID)
		r.resolveExpr(data.Left)
		r.resolveExpr(data.Right)
	case ast.ExprCall:
		data, _ := r.builder.Exprs.Call(exprID)
		r.resolveExpr(data.Callee)
		for _, arg := range data.Args {
			r.resolveExpr(arg)
		}
	case ast.ExprList:
		data, _ := r.builder.Exprs.List(exprID)
		for _, elem := range data.Elems {
			r.resolveExpr(elem)
		}
	case ast.ExprIndex:
		data, _ := r.builder.Exprs.Index(exprID)
		r.resolveExpr(data.Base)
		r.resolveExpr(data.Index)
	case ast.ExprLit:
	}
}
