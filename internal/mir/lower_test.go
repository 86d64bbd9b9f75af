package mir_test

import (
	"strings"
	"testing"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/mir"
	"pyrsc/internal/parser"
	"pyrsc/internal/sema"
	"pyrsc/internal/source"
	"pyrsc/internal/symbols"
)

func lower(t *testing.T, input string) (*mir.Module, *sema.Result) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(fs.Get(fileID), builder, parser.Options{Reporter: reporter})
	syms := symbols.Resolve(builder, parsed.File, symbols.Options{Reporter: reporter})
	checked := sema.Check(builder, parsed.File, sema.Options{Reporter: reporter, Symbols: syms})
	if bag.HasErrors() {
		t.Fatalf("pipeline errors for %q: %+v", input, bag.Items())
	}
	mod, err := mir.Lower(builder, parsed.File, syms, checked)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	if err := mir.Validate(mod); err != nil {
		t.Fatalf("Validate failed: %v\n%s", err, mir.Dump(mod, checked.Types))
	}
	return mod, checked
}

func src(lines ...string) string {
	return strings.Join(append(lines, ""), "\n")
}

func findFunc(t *testing.T, mod *mir.Module, name string) *mir.Func {
	t.Helper()
	for _, fn := range mod.Funcs {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("function %q not lowered", name)
	return nil
}

func countInstr(fn *mir.Func, kind mir.InstrKind) int {
	n := 0
	for _, blk := range fn.Blocks {
		for _, in := range blk.Instrs {
			if in.Kind == kind {
				n++
			}
		}
	}
	return n
}

func TestLowerAddFunction(t *testing.T) {
	mod, _ := lower(t,
		src("def add(a: int, b: int) -> int:",
			"    return a + b"))
	fn := findFunc(t, mod, "add")
	if len(fn.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1\n", len(fn.Blocks))
	}
	blk := fn.Blocks[0]
	if countInstr(fn, mir.InstrBin) != 1 {
		t.Fatalf("expected exactly one binary op")
	}
	if blk.Term.Kind != mir.TermRet || !blk.Term.Ret.HasValue {
		t.Fatalf("terminator = %+v, want ret with value", blk.Term)
	}
	if fn.Params != 2 || len(fn.Locals) != 2 {
		t.Fatalf("params/locals = %d/%d, want 2/2", fn.Params, len(fn.Locals))
	}
}

func TestLowerEntryFunction(t *testing.T) {
	mod, _ := lower(t, src("x: int = 1", "y: int = x + 2"))
	entry := mod.Func(mod.Entry)
	if entry == nil || entry.Name != mir.EntryName {
		t.Fatalf("missing synthetic entry function")
	}
	if len(mod.Globals) != 2 {
		t.Fatalf("globals = %d, want 2", len(mod.Globals))
	}
	if countInstr(entry, mir.InstrStoreGlobal) != 2 {
		t.Fatalf("expected two global stores\n")
	}
	if countInstr(entry, mir.InstrLoadGlobal) != 1 {
		t.Fatalf("expected one global load")
	}
}

func TestLowerGlobalReadFromFunction(t *testing.T) {
	mod, _ := lower(t,
		src("base: int = 10",
			"",
			"def bump(n: int) -> int:",
			"    return base + n"))
	fn := findFunc(t, mod, "bump")
	if countInstr(fn, mir.InstrLoadGlobal) != 1 {
		t.Fatalf("function must read the module variable as a global")
	}
	if countInstr(fn, mir.InstrStoreGlobal) != 0 {
		t.Fatalf("only the entry function may write globals")
	}
}

func TestLowerIfElseJoin(t *testing.T) {
	mod, _ := lower(t,
		src("def pick(b: bool) -> int:",
			"    r: int = 0",
			"    if b:",
			"        r = 1",
			"    else:",
			"        r = 2",
			"    return r"))
	fn := findFunc(t, mod, "pick")
	// entry + then + else + join
	if len(fn.Blocks) != 4 {
		t.Fatalf("blocks = %d, want 4", len(fn.Blocks))
	}
	if fn.Blocks[0].Term.Kind != mir.TermCondBr {
		t.Fatalf("entry must end in condbr")
	}
}

func TestLowerIfBothArmsReturn(t *testing.T) {
	mod, _ := lower(t,
		src("def pick(b: bool) -> int:",
			"    if b:",
			"        return 1",
			"    else:",
			"        return 2"))
	fn := findFunc(t, mod, "pick")
	// No join block: entry + then + else.
	if len(fn.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(fn.Blocks))
	}
	for _, blk := range fn.Blocks {
		if blk.Term.Kind == mir.TermNone {
			t.Fatalf("unterminated block bb%d", blk.ID)
		}
	}
}

func TestLowerWhileShape(t *testing.T) {
	mod, _ := lower(t,
		src("def spin(n: int) -> int:",
			"    total: int = 0",
			"    while total < n:",
			"        total = total + 1",
			"    return total"))
	fn := findFunc(t, mod, "spin")
	// entry + header + body + exit
	if len(fn.Blocks) != 4 {
		t.Fatalf("blocks = %d, want 4", len(fn.Blocks))
	}
	header := fn.Blocks[1]
	if header.Term.Kind != mir.TermCondBr {
		t.Fatalf("header must end in condbr")
	}
	body := fn.Blocks[2]
	if body.Term.Kind != mir.TermBr || body.Term.Br.Target != header.ID {
		t.Fatalf("body must branch back to the header")
	}
}

func TestLowerForLoop(t *testing.T) {
	mod, _ := lower(t,
		src("def total() -> int:",
			"    acc: int = 0",
			"    for i in range(1, 10, 2):",
			"        acc = acc + i",
			"    return acc"))
	fn := findFunc(t, mod, "total")
	// entry + header + body + latch + exit
	if len(fn.Blocks) != 5 {
		t.Fatalf("blocks = %d, want 5", len(fn.Blocks))
	}
	if countInstr(fn, mir.InstrCmp) != 1 {
		t.Fatalf("expected one comparison in the header")
	}
	// i and acc plus the hidden stop slot.
	if len(fn.Locals) != 3 {
		t.Fatalf("locals = %d, want 3", len(fn.Locals))
	}
}

func TestLowerForNegativeStepFlipsComparison(t *testing.T) {
	mod, _ := lower(t,
		src("def down() -> None:",
			"    for i in range(10, 0, -1):",
			"        pass"))
	fn := findFunc(t, mod, "down")
	for _, blk := range fn.Blocks {
		for _, in := range blk.Instrs {
			if in.Kind == mir.InstrCmp {
				if in.Cmp.Op != mir.CmpGt {
					t.Fatalf("negative step must compare with gt, got %s", in.Cmp.Op)
				}
				return
			}
		}
	}
	t.Fatalf("no comparison found")
}

func TestLowerShortCircuit(t *testing.T) {
	mod, _ := lower(t,
		src("def both(a: bool, b: bool) -> bool:",
			"    return a and b"))
	fn := findFunc(t, mod, "both")
	// entry + rhs + join
	if len(fn.Blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(fn.Blocks))
	}
	if fn.Blocks[0].Term.Kind != mir.TermCondBr {
		t.Fatalf("short-circuit must branch on the lhs")
	}
	// The temp slot joins both paths.
	if len(fn.Locals) != 3 {
		t.Fatalf("locals = %d, want params + temp", len(fn.Locals))
	}
}

func TestLowerBreakContinue(t *testing.T) {
	mod, _ := lower(t,
		src("def scan(n: int) -> int:",
			"    hits: int = 0",
			"    for i in range(n):",
			"        if i == 3:",
			"            continue",
			"        if i == 7:",
			"            break",
			"        hits = hits + 1",
			"    return hits"))
	fn := findFunc(t, mod, "scan")
	for _, blk := range fn.Blocks {
		if blk.Term.Kind == mir.TermNone {
			t.Fatalf("unterminated block bb%d\n", blk.ID)
		}
	}
}

func TestLowerListAndBuiltins(t *testing.T) {
	mod, _ := lower(t,
		src("xs: list[int] = [1, 2, 3]",
			"n: int = len(xs)",
			"print(n)",
			"print(xs)",
			"xs[0] = 9",
			"y: int = xs[1]"))
	entry := mod.Func(mod.Entry)
	names := map[string]int{}
	for _, blk := range entry.Blocks {
		for _, in := range blk.Instrs {
			if in.Kind == mir.InstrCall && in.Call.Callee.Kind == mir.CalleeRuntime {
				names[in.Call.Callee.Name]++
			}
		}
	}
	want := map[string]int{
		mir.RuntimeListNew:   1,
		mir.RuntimeListPush:  3,
		mir.RuntimeLenList:   1,
		mir.RuntimePrintInt:  1,
		mir.RuntimePrintList: 1,
		mir.RuntimeListSet:   1,
		mir.RuntimeListGet:   1,
	}
	for name, count := range want {
		if names[name] != count {
			t.Fatalf("runtime call %s count = %d, want %d (all: %v)", name, names[name], count, names)
		}
	}
}

func TestLowerUserCall(t *testing.T) {
	mod, _ := lower(t,
		src("def add(a: int, b: int) -> int:",
			"    return a + b",
			"",
			"r: int = add(1, 2)"))
	entry := mod.Func(mod.Entry)
	found := false
	for _, blk := range entry.Blocks {
		for _, in := range blk.Instrs {
			if in.Kind == mir.InstrCall && in.Call.Callee.Kind == mir.CalleeFunc {
				if in.Call.Callee.Name != "add" || len(in.Call.Args) != 2 || in.Result == mir.NoValueID {
					t.Fatalf("bad lowered call: %+v", in.Call)
				}
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("no call to add in entry")
	}
}

func TestLowerDeterministic(t *testing.T) {
	input := src(
		"def fib(n: int) -> int:",
		"    if n < 2:",
		"        return n",
		"    a: int = 0",
		"    b: int = 1",
		"    for i in range(2, n + 1):",
		"        t: int = a + b",
		"        a = b",
		"        b = t",
		"    return b",
		"",
		"print(fib(10))")
	mod1, types1 := lower(t, input)
	mod2, types2 := lower(t, input)
	d1 := mir.Dump(mod1, types1.Types)
	d2 := mir.Dump(mod2, types2.Types)
	if d1 != d2 {
		t.Fatalf("lowering is not deterministic:\n%s\n---\n%s", d1, d2)
	}
	if !strings.Contains(d1, "func @fib") || !strings.Contains(d1, "func @__main__") {
		t.Fatalf("dump missing functions:\n%s", d1)
	}
}
