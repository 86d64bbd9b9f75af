package mir_test

import (
	"strings"
	"testing"

	"pyrsc/internal/mir"
	"pyrsc/internal/types"
)

// skeleton builds a module with a single empty function ready for
// hand-assembled blocks.
func skeleton() (*mir.Module, *mir.Func, *types.Interner) {
	in := types.NewInterner()
	fn := &mir.Func{ID: 0, Name: "f", Result: in.Builtins().None}
	mod := &mir.Module{Funcs: []*mir.Func{fn}}
	return mod, fn, in
}

func wantError(t *testing.T, mod *mir.Module, fragment string) {
	t.Helper()
	err := mir.Validate(mod)
	if err == nil {
		t.Fatalf("Validate passed, want error containing %q", fragment)
	}
	if !strings.Contains(err.Error(), fragment) {
		t.Fatalf("error = %q, want it to contain %q", err, fragment)
	}
}

func TestValidateMissingTerminator(t *testing.T) {
	mod, fn, _ := skeleton()
	fn.Entry = fn.NewBlock()
	wantError(t, mod, "missing terminator")
}

func TestValidateBadEntry(t *testing.T) {
	mod, fn, _ := skeleton()
	fn.Entry = 3
	wantError(t, mod, "invalid entry")
}

func TestValidateBranchTarget(t *testing.T) {
	mod, fn, _ := skeleton()
	fn.Entry = fn.NewBlock()
	fn.Block(fn.Entry).Term = mir.Br(7)
	wantError(t, mod, "missing block")
}

func TestValidateUndefinedCondition(t *testing.T) {
	mod, fn, _ := skeleton()
	entry := fn.NewBlock()
	then := fn.NewBlock()
	els := fn.NewBlock()
	fn.Entry = entry
	fn.Block(then).Term = mir.Ret(mir.NoValueID)
	fn.Block(els).Term = mir.Ret(mir.NoValueID)
	fn.Block(entry).Term = mir.CondBr(5, then, els)
	wantError(t, mod, "condbr on undefined value")
}

func TestValidateDoubleDefinition(t *testing.T) {
	mod, fn, in := skeleton()
	entry := fn.NewBlock()
	fn.Entry = entry
	v := fn.NewValue(in.Builtins().Int)
	blk := fn.Block(entry)
	one := mir.Instr{Kind: mir.InstrConst, Result: v, Const: mir.ConstInstr{Kind: mir.ConstInt, Int: 1}}
	blk.Instrs = append(blk.Instrs, one, one)
	blk.Term = mir.Ret(mir.NoValueID)
	wantError(t, mod, "defined twice")
}

func TestValidateOperandRange(t *testing.T) {
	mod, fn, in := skeleton()
	entry := fn.NewBlock()
	fn.Entry = entry
	v := fn.NewValue(in.Builtins().Int)
	blk := fn.Block(entry)
	blk.Instrs = append(blk.Instrs, mir.Instr{
		Kind:   mir.InstrBin,
		Result: v,
		Bin:    mir.BinInstr{Op: mir.BinAdd, LHS: 4, RHS: 5},
	})
	blk.Term = mir.Ret(mir.NoValueID)
	if err := mir.Validate(mod); err == nil {
		t.Fatalf("Validate passed with out-of-range operands")
	}
}

func TestValidateRuntimeCallNeedsName(t *testing.T) {
	mod, fn, _ := skeleton()
	entry := fn.NewBlock()
	fn.Entry = entry
	blk := fn.Block(entry)
	blk.Instrs = append(blk.Instrs, mir.Instr{
		Kind:   mir.InstrCall,
		Result: mir.NoValueID,
		Call:   mir.CallInstr{Callee: mir.Callee{Kind: mir.CalleeRuntime, Func: mir.NoFuncID}},
	})
	blk.Term = mir.Ret(mir.NoValueID)
	if err := mir.Validate(mod); err == nil {
		t.Fatalf("Validate passed with unnamed runtime call")
	}
}

func TestValidateWellFormed(t *testing.T) {
	mod, fn, in := skeleton()
	entry := fn.NewBlock()
	fn.Entry = entry
	v := fn.NewValue(in.Builtins().Int)
	blk := fn.Block(entry)
	blk.Instrs = append(blk.Instrs, mir.Instr{
		Kind: mir.InstrConst, Result: v,
		Const: mir.ConstInstr{Kind: mir.ConstInt, Int: 42},
	})
	blk.Term = mir.Ret(mir.NoValueID)
	if err := mir.Validate(mod); err != nil {
		t.Fatalf("Validate failed on a well-formed module: %v", err)
	}
}
