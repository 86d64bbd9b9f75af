package sema_test

import (
	"strings"
	"testing"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/parser"
	"pyrsc/internal/sema"
	"pyrsc/internal/source"
	"pyrsc/internal/symbols"
)

func check(t *testing.T, input string) (*ast.Builder, *sema.Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(fs.Get(fileID), builder, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %+v", input, bag.Items())
	}
	syms := symbols.Resolve(builder, parsed.File, symbols.Options{Reporter: reporter})
	res := sema.Check(builder, parsed.File, sema.Options{Reporter: reporter, Symbols: syms})
	return builder, res, bag
}

func checkOK(t *testing.T, input string) (*ast.Builder, *sema.Result) {
	t.Helper()
	builder, res, bag := check(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors for %q: %+v", input, bag.Items())
	}
	return builder, res
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func src(lines ...string) string {
	return strings.Join(append(lines, ""), "\n")
}

func TestCheckAddFunction(t *testing.T) {
	b, res := checkOK(t,
		src("def add(a: int, b: int) -> int:",
			"    return a + b"))
	intID := res.Types.Builtins().Int
	// The return expression a + b carries int.
	found := false
	for exprID, tid := range res.ExprTypes {
		if b.Exprs.Get(exprID).Kind == ast.ExprBinary && tid == intID {
			found = true
		}
	}
	if !found {
		t.Fatalf("a + b was not typed int: %+v", res.ExprTypes)
	}
}

func TestCheckUntypedLocalExactlyOneError(t *testing.T) {
	_, _, bag := check(t,
		src("def f() -> None:",
			"    x = 5",
			"    y: int = x + 1"))
	if got := countCode(bag, diag.MissingVarAnnotation); got != 1 {
		t.Fatalf("MissingVarAnnotation count = %d, want 1: %+v", got, bag.Items())
	}
	// The poisoned x must not trigger a cascade on x + 1 or the assignment.
	if got := countCode(bag, diag.TypeMismatchOperands); got != 0 {
		t.Fatalf("unexpected operand mismatch: %+v", bag.Items())
	}
	if got := countCode(bag, diag.TypeMismatchAssign); got != 0 {
		t.Fatalf("unexpected assign mismatch: %+v", bag.Items())
	}
}

func TestCheckMismatchNoCascade(t *testing.T) {
	_, _, bag := check(t,
		src("def f(a: int, b: str) -> int:",
			"    return (a + b) * 2"))
	if got := countCode(bag, diag.TypeMismatchOperands); got != 1 {
		t.Fatalf("TypeMismatchOperands count = %d, want 1: %+v", got, bag.Items())
	}
	if got := countCode(bag, diag.TypeMismatchReturn); got != 0 {
		t.Fatalf("error type must suppress the return check: %+v", bag.Items())
	}
}

func TestCheckNoIntFloatWidening(t *testing.T) {
	_, _, bag := check(t, src("x: float = 1 + 2.0"))
	if countCode(bag, diag.TypeMismatchOperands) != 1 {
		t.Fatalf("int + float must be rejected: %+v", bag.Items())
	}
}

func TestCheckDivisionOperators(t *testing.T) {
	checkOK(t, src("a: float = 1.5 / 0.5", "b: int = 7 // 2", "c: int = 7 % 2"))
	_, _, bag := check(t, src("d: float = 1.5 // 0.5"))
	if countCode(bag, diag.TypeMismatchOperands) != 1 {
		t.Fatalf("float // float must be rejected: %+v", bag.Items())
	}
}

func TestCheckConditionMustBeBool(t *testing.T) {
	_, _, bag := check(t,
		src("def f(n: int) -> None:",
			"    if n:",
			"        pass"))
	if countCode(bag, diag.TypeMismatchCondition) != 1 {
		t.Fatalf("non-bool condition must be rejected: %+v", bag.Items())
	}
}

func TestCheckCallArity(t *testing.T) {
	_, _, bag := check(t,
		src("def f(a: int) -> int:",
			"    return a",
			"",
			"x: int = f(1, 2)"))
	if countCode(bag, diag.ArityMismatch) != 1 {
		t.Fatalf("arity mismatch not reported: %+v", bag.Items())
	}
}

func TestCheckCallArgumentType(t *testing.T) {
	_, _, bag := check(t,
		src("def f(a: int) -> int:",
			"    return a",
			"",
			"x: int = f(\"s\")"))
	if countCode(bag, diag.TypeMismatchArgument) != 1 {
		t.Fatalf("argument mismatch not reported: %+v", bag.Items())
	}
}

func TestCheckNotCallable(t *testing.T) {
	_, _, bag := check(t, src("x: int = 1", "y: int = x(2)"))
	if countCode(bag, diag.TypeMismatchNotCallable) != 1 {
		t.Fatalf("calling an int must be rejected: %+v", bag.Items())
	}
}

func TestCheckReturnMismatch(t *testing.T) {
	_, _, bag := check(t,
		src("def f() -> int:",
			"    return \"s\""))
	if countCode(bag, diag.TypeMismatchReturn) != 1 {
		t.Fatalf("return mismatch not reported: %+v", bag.Items())
	}
}

func TestCheckMissingReturnPath(t *testing.T) {
	_, _, bag := check(t,
		src("def f(b: bool) -> int:",
			"    if b:",
			"        return 1"))
	if countCode(bag, diag.UnreachableReturn) != 1 {
		t.Fatalf("fall-off-the-end not reported: %+v", bag.Items())
	}
}

func TestCheckReturnPathBothArms(t *testing.T) {
	checkOK(t,
		src("def f(b: bool) -> int:",
			"    if b:",
			"        return 1",
			"    else:",
			"        return 2"))
}

func TestCheckLoopNeverTerminates(t *testing.T) {
	// A while body returning on every iteration still does not count as a
	// terminating path.
	_, _, bag := check(t,
		src("def f() -> int:",
			"    while True:",
			"        return 1"))
	if countCode(bag, diag.UnreachableReturn) != 1 {
		t.Fatalf("loop must not count as terminating: %+v", bag.Items())
	}
}

func TestCheckNoneFunctionMayFallOff(t *testing.T) {
	checkOK(t,
		src("def f() -> None:",
			"    pass"))
}

func TestCheckMissingParamAnnotation(t *testing.T) {
	_, _, bag := check(t,
		src("def f(a) -> None:",
			"    pass"))
	if countCode(bag, diag.MissingParamAnnotation) != 1 {
		t.Fatalf("missing param annotation not reported: %+v", bag.Items())
	}
}

func TestCheckMissingReturnAnnotation(t *testing.T) {
	_, _, bag := check(t,
		src("def f():",
			"    pass"))
	if countCode(bag, diag.MissingReturnAnnotation) != 1 {
		t.Fatalf("missing return annotation not reported: %+v", bag.Items())
	}
}

func TestCheckShadowedLocalType(t *testing.T) {
	// The inner x: str resolves and types as str, not as the global int.
	checkOK(t,
		src("x: int = 1",
			"",
			"def f() -> str:",
			"    x: str = \"s\"",
			"    return x"))
}

func TestCheckListLiterals(t *testing.T) {
	checkOK(t, src("xs: list[int] = [1, 2, 3]"))
	checkOK(t, src("xs: list[int] = []"))
	checkOK(t, src("m: list[list[int]] = [[1], [2, 3]]"))

	_, _, bag := check(t, src("xs: list[int] = [1, \"s\"]"))
	if countCode(bag, diag.TypeMismatchListElem) != 1 {
		t.Fatalf("mixed list not rejected: %+v", bag.Items())
	}

	_, _, bag = check(t, src("def f() -> None:", "    print([])"))
	if countCode(bag, diag.TypeMismatchListElem) != 1 {
		t.Fatalf("bare empty list not rejected: %+v", bag.Items())
	}
}

func TestCheckIndexing(t *testing.T) {
	checkOK(t,
		src("xs: list[str] = [\"a\"]",
			"s: str = xs[0]",
			"xs[0] = \"b\""))

	_, _, bag := check(t, src("xs: list[int] = [1]", "y: int = xs[\"k\"]"))
	if countCode(bag, diag.TypeMismatchIndex) != 1 {
		t.Fatalf("non-int index not rejected: %+v", bag.Items())
	}

	_, _, bag = check(t, src("x: int = 1", "y: int = x[0]"))
	if countCode(bag, diag.TypeMismatchIndex) != 1 {
		t.Fatalf("indexing an int not rejected: %+v", bag.Items())
	}

	_, _, bag = check(t, src("xs: list[int] = [1]", "xs[0] = \"s\""))
	if countCode(bag, diag.TypeMismatchAssign) != 1 {
		t.Fatalf("element assign mismatch not rejected: %+v", bag.Items())
	}
}

func TestCheckBuiltins(t *testing.T) {
	checkOK(t,
		src("xs: list[int] = [1, 2]",
			"n: int = len(xs)",
			"m: int = len(\"abc\")",
			"print(n)",
			"print(\"done\")"))

	_, _, bag := check(t, src("n: int = len(5)"))
	if countCode(bag, diag.TypeMismatchArgument) != 1 {
		t.Fatalf("len(5) not rejected: %+v", bag.Items())
	}

	_, _, bag = check(t, src("print(1, 2)"))
	if countCode(bag, diag.ArityMismatch) != 1 {
		t.Fatalf("print(1, 2) not rejected: %+v", bag.Items())
	}

	_, _, bag = check(t, src("r: int = range(3)"))
	if countCode(bag, diag.TypeMismatchNotCallable) != 1 {
		t.Fatalf("range outside for not rejected: %+v", bag.Items())
	}
}

func TestCheckForLoop(t *testing.T) {
	checkOK(t,
		src("def f() -> int:",
			"    total: int = 0",
			"    for i in range(1, 10, 2):",
			"        total = total + i",
			"    return total"))

	_, _, bag := check(t, src("for i in range(1.5):", "    pass"))
	if countCode(bag, diag.TypeMismatchArgument) != 1 {
		t.Fatalf("float range bound not rejected: %+v", bag.Items())
	}

	_, _, bag = check(t, src("for i in range(0, 10, 0):", "    pass"))
	if countCode(bag, diag.TypeMismatchArgument) != 1 {
		t.Fatalf("zero step not rejected: %+v", bag.Items())
	}

	checkOK(t, src("for i in range(10, 0, -2):", "    pass"))
}

func TestCheckAssignMismatch(t *testing.T) {
	_, _, bag := check(t,
		src("def f() -> None:",
			"    x: int = 1",
			"    x = \"s\""))
	if countCode(bag, diag.TypeMismatchAssign) != 1 {
		t.Fatalf("reassign mismatch not reported: %+v", bag.Items())
	}
}

func TestCheckReturnAtModuleLevel(t *testing.T) {
	_, _, bag := check(t, src("return 1"))
	if countCode(bag, diag.TypeMismatchReturn) != 1 {
		t.Fatalf("module-level return not rejected: %+v", bag.Items())
	}
}

func TestCheckAllDiagnosticsOnePass(t *testing.T) {
	// Independent errors in separate functions are all reported together.
	_, _, bag := check(t,
		src("def f(a: int) -> int:",
			"    return a + \"s\"",
			"",
			"def g() -> int:",
			"    return 1.5"))
	if countCode(bag, diag.TypeMismatchOperands) != 1 || countCode(bag, diag.TypeMismatchReturn) != 1 {
		t.Fatalf("expected both errors: %+v", bag.Items())
	}
}
