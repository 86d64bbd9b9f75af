package parser_test

import (
	"testing"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/parser"
	"pyrsc/internal/source"
)

func parse(t *testing.T, input string) (*ast.Builder, *ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	bag := diag.NewBag(32)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(fs.Get(fileID), builder, parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	return builder, builder.Files.Get(res.File), bag
}

func parseOK(t *testing.T, input string) (*ast.Builder, *ast.File) {
	t.Helper()
	builder, file, bag := parse(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %+v", input, bag.Items())
	}
	return builder, file
}

func TestParseDef(t *testing.T) {
	b, file := parseOK(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	if len(file.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(file.Items))
	}
	item := b.Items.Get(file.Items[0])
	if item.Kind != ast.ItemFunc {
		t.Fatalf("kind = %v, want ItemFunc", item.Kind)
	}
	if got := b.Name(item.Fn.Name); got != "add" {
		t.Errorf("name = %q", got)
	}
	if len(item.Fn.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(item.Fn.Params))
	}
	if !item.Fn.Return.IsValid() {
		t.Errorf("return annotation missing")
	}
	if len(item.Fn.Body) != 1 {
		t.Fatalf("body = %d stmts, want 1", len(item.Fn.Body))
	}
	if b.Stmts.Get(item.Fn.Body[0]).Kind != ast.StmtReturn {
		t.Errorf("body stmt kind = %v, want StmtReturn", b.Stmts.Get(item.Fn.Body[0]).Kind)
	}
}

func TestParseInlineSuite(t *testing.T) {
	b, file := parseOK(t, "def f(a: int) -> int: return a\n")
	item := b.Items.Get(file.Items[0])
	if len(item.Fn.Body) != 1 {
		t.Fatalf("inline body = %d stmts, want 1", len(item.Fn.Body))
	}
}

func TestParseAnnotatedAssign(t *testing.T) {
	b, file := parseOK(t, "x: int = 1\n")
	if len(file.Body) != 1 {
		t.Fatalf("body = %d, want 1", len(file.Body))
	}
	assign, ok := b.Stmts.Assign(file.Body[0])
	if !ok {
		t.Fatalf("not an assign")
	}
	if !assign.Ann.IsValid() {
		t.Errorf("annotation missing")
	}
	if got := b.Strings.MustLookup(assign.Name); got != "x" {
		t.Errorf("name = %q", got)
	}
}

func TestParsePlainAssignHasNoAnnotation(t *testing.T) {
	b, file := parseOK(t, "x = 1\n")
	assign, ok := b.Stmts.Assign(file.Body[0])
	if !ok {
		t.Fatalf("not an assign")
	}
	if assign.Ann.IsValid() {
		t.Errorf("plain assign should carry no annotation")
	}
}

func TestAnnotationWithoutInitializer(t *testing.T) {
	_, _, bag := parse(t, "x: int\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectedInit {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynExpectedInit, got %+v", bag.Items())
	}
}

func TestElifDesugarsToNestedIf(t *testing.T) {
	b, file := parseOK(t, "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n")
	ifData, ok := b.Stmts.If(file.Body[0])
	if !ok {
		t.Fatalf("not an if")
	}
	if len(ifData.Else) != 1 {
		t.Fatalf("else branch = %d stmts, want 1 (the nested if)", len(ifData.Else))
	}
	nested, ok := b.Stmts.If(ifData.Else[0])
	if !ok {
		t.Fatalf("elif did not desugar to a nested if")
	}
	if len(nested.Else) != 1 {
		t.Errorf("nested else = %d stmts, want 1", len(nested.Else))
	}
}

func TestParseForRange(t *testing.T) {
	b, file := parseOK(t, "for i in range(0, 10):\n    pass\n")
	forData, ok := b.Stmts.For(file.Body[0])
	if !ok {
		t.Fatalf("not a for")
	}
	if len(forData.Args) != 2 {
		t.Errorf("range args = %d, want 2", len(forData.Args))
	}
	if got := b.Strings.MustLookup(forData.Var); got != "i" {
		t.Errorf("loop var = %q", got)
	}
}

func TestForOverNonRange(t *testing.T) {
	_, _, bag := parse(t, "for x in items:\n    pass\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynBadForIterable {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynBadForIterable, got %+v", bag.Items())
	}
}

func TestNestedDefRejected(t *testing.T) {
	_, _, bag := parse(t, "def f() -> int:\n    def g() -> int:\n        return 1\n    return 2\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynNestedDef {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynNestedDef, got %+v", bag.Items())
	}
}

func TestPrecedence(t *testing.T) {
	b, file := parseOK(t, "x = 1 + 2 * 3\n")
	assign, _ := b.Stmts.Assign(file.Body[0])
	bin, ok := b.Exprs.Binary(assign.Value)
	if !ok || bin.Op != ast.BinAdd {
		t.Fatalf("top op should be +")
	}
	right, ok := b.Exprs.Binary(bin.Right)
	if !ok || right.Op != ast.BinMul {
		t.Fatalf("right operand should be the * node")
	}
}

func TestBoolOpPrecedence(t *testing.T) {
	b, file := parseOK(t, "x = a or b and c\n")
	assign, _ := b.Stmts.Assign(file.Body[0])
	boolOp, ok := b.Exprs.BoolOp(assign.Value)
	if !ok || boolOp.Op != ast.BoolOr {
		t.Fatalf("top op should be or")
	}
	if _, ok := b.Exprs.BoolOp(boolOp.Right); !ok {
		t.Fatalf("right operand should be `b and c`")
	}
}

func TestComparisonChainingRejected(t *testing.T) {
	_, _, bag := parse(t, "x = 1 < 2 < 3\n")
	if !bag.HasErrors() {
		t.Fatalf("expected an error for comparison chaining")
	}
}

func TestIndexAssign(t *testing.T) {
	b, file := parseOK(t, "xs[0] = 5\n")
	if _, ok := b.Stmts.IndexAssign(file.Body[0]); !ok {
		t.Fatalf("not an index assign")
	}
}

func TestListLiteralAndIndex(t *testing.T) {
	b, file := parseOK(t, "x = [1, 2, 3][0]\n")
	assign, _ := b.Stmts.Assign(file.Body[0])
	index, ok := b.Exprs.Index(assign.Value)
	if !ok {
		t.Fatalf("value is not an index expr")
	}
	list, ok := b.Exprs.List(index.Base)
	if !ok || len(list.Elems) != 3 {
		t.Fatalf("base is not a 3-element list")
	}
}

func TestTypeAnnotationGeneric(t *testing.T) {
	b, file := parseOK(t, "xs: list[int] = [1]\n")
	assign, _ := b.Stmts.Assign(file.Body[0])
	te := b.TypeExprs.Get(assign.Ann)
	if b.Strings.MustLookup(te.Name) != "list" || !te.Subscripted || len(te.Args) != 1 {
		t.Fatalf("bad type expr: %+v", te)
	}
}

func TestRecoveryKeepsGoing(t *testing.T) {
	_, file, bag := parse(t, "x = = 1\ny: int = 2\n")
	if !bag.HasErrors() {
		t.Fatalf("expected an error on the first line")
	}
	if len(file.Body) != 1 {
		t.Fatalf("parser should recover and parse the second line, body = %d", len(file.Body))
	}
}

func TestBreakOutsideLoop(t *testing.T) {
	_, _, bag := parse(t, "break\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynBreakOutsideLoop {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing break-outside-loop diagnostic: %+v", bag.Items())
	}
}

func TestBreakInsideLoopOK(t *testing.T) {
	_, _, bag := parse(t, "while True:\n    break\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}
