package sema

import (
	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/symbols"
	"pyrsc/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
	Symbols  *symbols.Result
	Types    *types.Interner
}

// Result stores the checker's artefacts. Every successfully checked
// expression gets exactly one non-error type in ExprTypes and keeps it;
// expressions involved in a type error carry the error sentinel so
// enclosing expressions stay quiet.
type Result struct {
	Types     *types.Interner
	ExprTypes map[ast.ExprID]types.TypeID
	FuncTypes map[ast.ItemID]types.TypeID
}

// Check type-checks one resolved module. Expressions are typed bottom-up,
// statements top-down; the whole module is covered in a single pass and
// all diagnostics accumulate through opts.Reporter.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) *Result {
	interner := opts.Types
	if interner == nil {
		interner = types.NewInterner()
	}
	res := &Result{
		Types:     interner,
		ExprTypes: make(map[ast.ExprID]types.TypeID),
		FuncTypes: make(map[ast.ItemID]types.TypeID),
	}
	tc := &typeChecker{
		builder:  builder,
		fileID:   fileID,
		reporter: opts.Reporter,
		syms:     opts.Symbols,
		types:    interner,
		b:        interner.Builtins(),
		result:   res,
	}
	tc.run()
	return res
}

type typeChecker struct {
	builder  *ast.Builder
	fileID   ast.FileID
	reporter diag.Reporter
	syms     *symbols.Result
	types    *types.Interner
	b        types.Builtins
	result   *Result

	// fnName and fnResult describe the function whose body is being
	// checked; fnName is empty for module-level statements.
	fnName   string
	fnResult types.TypeID
}

func (tc *typeChecker) run() {
	file := tc.builder.Files.Get(tc.fileID)

	tc.reportUnannotated()
	for _, itemID := range file.Items {
		tc.resolveSignature(itemID)
	}

	tc.fnName = ""
	tc.fnResult = types.NoTypeID
	tc.checkStmts(file.Body)

	for _, itemID := range file.Items {
		tc.checkFunc(itemID)
	}
}

// reportUnannotated emits exactly one missing-annotation diagnostic per
// binding the resolver introduced from a plain first assignment, and gives
// it the error sentinel so every later use stays quiet.
func (tc *typeChecker) reportUnannotated() {
	tbl := tc.syms.Table
	for i := 1; i <= tbl.Symbols.Len(); i++ {
		sym := tbl.Symbols.Get(symbols.SymbolID(i))
		if sym.Flags&symbols.SymbolFlagUnannotated == 0 {
			continue
		}
		diag.ReportError(tc.reporter, diag.MissingVarAnnotation, sym.Span,
			"variable '"+tbl.Strings.MustLookup(sym.Name)+"' is declared without a type annotation")
		sym.Type = tc.b.Error
	}
}

// isErr treats both the error sentinel and an unset type as poisoned, so
// one diagnostic never cascades into its consumers.
func (tc *typeChecker) isErr(t types.TypeID) bool {
	return t == types.NoTypeID || t == tc.b.Error
}

func (tc *typeChecker) symbol(id symbols.SymbolID) *symbols.Symbol {
	return tc.syms.Table.Symbols.Get(id)
}
