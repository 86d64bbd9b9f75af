package symbols_test

import (
	"strings"
	"testing"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/parser"
	"pyrsc/internal/source"
	"pyrsc/internal/symbols"
)

func resolve(t *testing.T, input string) (*ast.Builder, *symbols.Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	bag := diag.NewBag(32)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(fs.Get(fileID), builder, parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %+v", input, bag.Items())
	}
	sym := symbols.Resolve(builder, res.File, symbols.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	return builder, sym, bag
}

func resolveOK(t *testing.T, input string) (*ast.Builder, *symbols.Result) {
	t.Helper()
	builder, res, bag := resolve(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected resolve errors for %q: %+v", input, bag.Items())
	}
	return builder, res
}

func wantError(t *testing.T, bag *diag.Bag, code diag.Code) {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("missing diagnostic %s, got %+v", code.ID(), bag.Items())
}

func TestResolveSimpleFunction(t *testing.T) {
	_, res := resolveOK(t, strings.Join([]string{
		"def add(a: int, b: int) -> int:",
		"    return a + b",
		"",
	}, "\n"))
	if got := len(res.FuncSymbols); got != 1 {
		t.Fatalf("FuncSymbols = %d, want 1", got)
	}
	if got := len(res.ParamSymbols); got != 2 {
		t.Fatalf("ParamSymbols = %d, want 2", got)
	}
	// a + b references both parameters.
	if got := len(res.ExprBindings); got != 2 {
		t.Fatalf("ExprBindings = %d, want 2", got)
	}
}

func TestResolveForwardCall(t *testing.T) {
	// Module statements may call a def that appears later in the file.
	resolveOK(t, strings.Join([]string{
		"x: int = twice(2)",
		"",
		"def twice(n: int) -> int:",
		"    return n + n",
		"",
	}, "\n"))
}

func TestResolveUndefined(t *testing.T) {
	_, _, bag := resolve(t, "y: int = nope\n")
	wantError(t, bag, diag.NameUndefined)
}

func TestResolveUseBeforeDef(t *testing.T) {
	_, _, bag := resolve(t, strings.Join([]string{
		"def f() -> int:",
		"    y: int = x + 1",
		"    x: int = 2",
		"    return y",
		"",
	}, "\n"))
	wantError(t, bag, diag.NameUseBeforeDef)
}

func TestResolveUseBeforeDefShadowsOuter(t *testing.T) {
	// A later local declaration makes earlier references errors even when
	// a module-level binding with the same name exists.
	_, _, bag := resolve(t, strings.Join([]string{
		"x: int = 1",
		"",
		"def f() -> int:",
		"    y: int = x",
		"    x: int = 2",
		"    return y",
		"",
	}, "\n"))
	wantError(t, bag, diag.NameUseBeforeDef)
}

func TestResolveWriteToOuter(t *testing.T) {
	_, _, bag := resolve(t, strings.Join([]string{
		"x: int = 1",
		"",
		"def f() -> None:",
		"    x = 2",
		"",
	}, "\n"))
	wantError(t, bag, diag.NameWriteToOuter)
}

func TestResolveReadOuterAllowed(t *testing.T) {
	resolveOK(t, strings.Join([]string{
		"x: int = 1",
		"",
		"def f() -> int:",
		"    return x + 1",
		"",
	}, "\n"))
}

func TestResolveShadowingBindsInnermost(t *testing.T) {
	b, res := resolveOK(t, strings.Join([]string{
		"x: int = 1",
		"",
		"def f() -> str:",
		"    x: str = \"s\"",
		"    return x",
		"",
	}, "\n"))
	var localScope symbols.ScopeID
	for _, sc := range res.FuncScopes {
		localScope = sc
	}
	for exprID, symID := range res.ExprBindings {
		data, ok := b.Exprs.Ident(exprID)
		if !ok || b.Name(data.Name) != "x" {
			continue
		}
		sym := res.Table.Symbols.Get(symID)
		if sym.Scope != localScope {
			t.Fatalf("x resolved to scope %d, want function scope %d", sym.Scope, localScope)
		}
		if sym.Kind != symbols.SymbolLocal {
			t.Fatalf("x kind = %v, want local", sym.Kind)
		}
	}
}

func TestResolveRedeclared(t *testing.T) {
	_, _, bag := resolve(t, strings.Join([]string{
		"def f() -> None:",
		"    x: int = 1",
		"    x: float = 2.0",
		"",
	}, "\n"))
	wantError(t, bag, diag.NameRedeclared)
}

func TestResolveDuplicateDef(t *testing.T) {
	_, _, bag := resolve(t, strings.Join([]string{
		"def f() -> None:",
		"    pass",
		"",
		"def f() -> None:",
		"    pass",
		"",
	}, "\n"))
	wantError(t, bag, diag.NameRedeclared)
}

func TestResolveDuplicateParam(t *testing.T) {
	_, _, bag := resolve(t, strings.Join([]string{
		"def f(a: int, a: int) -> int:",
		"    return a",
		"",
	}, "\n"))
	wantError(t, bag, diag.NameRedeclared)
}

func TestResolveAssignToFunction(t *testing.T) {
	_, _, bag := resolve(t, strings.Join([]string{
		"def f() -> None:",
		"    pass",
		"",
		"f = 1",
		"",
	}, "\n"))
	wantError(t, bag, diag.NameRedeclared)
}

func TestResolvePreludeBindings(t *testing.T) {
	b, res := resolveOK(t, strings.Join([]string{
		"xs: list[int] = [1, 2]",
		"print(len(xs))",
		"for i in range(3):",
		"    print(i)",
		"",
	}, "\n"))
	wantBuiltins := map[string]symbols.Builtin{
		"print": symbols.BuiltinPrint,
		"range": symbols.BuiltinRange,
		"len":   symbols.BuiltinLen,
	}
	seen := map[string]bool{}
	for exprID, symID := range res.ExprBindings {
		data, ok := b.Exprs.Ident(exprID)
		if !ok {
			continue
		}
		name := b.Name(data.Name)
		want, isBuiltin := wantBuiltins[name]
		if !isBuiltin {
			continue
		}
		sym := res.Table.Symbols.Get(symID)
		if !sym.IsBuiltin() || sym.Builtin != want {
			t.Fatalf("%s bound to kind=%v builtin=%v", name, sym.Kind, sym.Builtin)
		}
		seen[name] = true
	}
	for name := range wantBuiltins {
		if !seen[name] {
			t.Fatalf("no binding recorded for builtin %s", name)
		}
	}
}

func TestResolveForVarDeclaresLocal(t *testing.T) {
	_, res := resolveOK(t, strings.Join([]string{
		"def f() -> int:",
		"    total: int = 0",
		"    for i in range(10):",
		"        total = total + i",
		"    return total",
		"",
	}, "\n"))
	if len(res.ForVars) != 1 {
		t.Fatalf("ForVars = %d, want 1", len(res.ForVars))
	}
	for _, symID := range res.ForVars {
		sym := res.Table.Symbols.Get(symID)
		if sym == nil || sym.Kind != symbols.SymbolLocal {
			t.Fatalf("for var binding = %+v, want local", sym)
		}
	}
}

func TestResolveForVarReusesBinding(t *testing.T) {
	_, res := resolveOK(t, strings.Join([]string{
		"def f() -> None:",
		"    i: int = 0",
		"    for i in range(3):",
		"        pass",
		"",
	}, "\n"))
	for stmtID, symID := range res.ForVars {
		sym := res.Table.Symbols.Get(symID)
		if sym == nil {
			t.Fatalf("for stmt %d has no var binding", stmtID)
		}
		if !sym.Decl.Stmt.IsValid() {
			t.Fatalf("for var should reuse the annotated declaration")
		}
	}
}

func TestResolveUnannotatedAssignBinds(t *testing.T) {
	// `x = 5` with no prior declaration resolves (the checker owns the
	// missing-annotation diagnostic), and later reads find the binding.
	_, res := resolveOK(t, strings.Join([]string{
		"def f() -> None:",
		"    x = 5",
		"    y: int = x",
		"",
	}, "\n"))
	found := false
	for _, symID := range res.AssignTargets {
		sym := res.Table.Symbols.Get(symID)
		if sym != nil && sym.Flags&symbols.SymbolFlagUnannotated != 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("no unannotated binding recorded")
	}
}

func TestResolveWholeModuleOnePass(t *testing.T) {
	// Multiple independent errors are all reported.
	_, _, bag := resolve(t, strings.Join([]string{
		"a: int = missing1",
		"b: int = missing2",
		"",
	}, "\n"))
	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.NameUndefined {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("NameUndefined count = %d, want 2", count)
	}
}
