package mir

import (
	"fmt"
)

// Validate checks the module's structural invariants: every block carries
// exactly one terminator, every branch target exists, every value is
// defined by exactly one instruction, and every operand refers to a
// defined value. Lowering output must always pass.
func Validate(m *Module) error {
	for _, fn := range m.Funcs {
		if err := validateFunc(m, fn); err != nil {
			return err
		}
	}
	return nil
}

func validateFunc(m *Module, fn *Func) error {
	if fn.Block(fn.Entry) == nil {
		return fmt.Errorf("func '%s': invalid entry block %d", fn.Name, fn.Entry)
	}

	defined := make([]bool, len(fn.Values))
	for bi := range fn.Blocks {
		blk := &fn.Blocks[bi]
		for ii := range blk.Instrs {
			in := &blk.Instrs[ii]
			if err := validateOperands(m, fn, in); err != nil {
				return fmt.Errorf("func '%s' bb%d: %w", fn.Name, blk.ID, err)
			}
			if in.Result != NoValueID {
				if !validValue(fn, in.Result) {
					return fmt.Errorf("func '%s' bb%d: result %%%d out of range", fn.Name, blk.ID, in.Result)
				}
				if defined[in.Result] {
					return fmt.Errorf("func '%s' bb%d: value %%%d defined twice", fn.Name, blk.ID, in.Result)
				}
				defined[in.Result] = true
			}
		}
		if err := validateTerm(fn, blk); err != nil {
			return err
		}
	}
	return nil
}

func validateTerm(fn *Func, blk *Block) error {
	switch blk.Term.Kind {
	case TermNone:
		return fmt.Errorf("func '%s' bb%d: missing terminator", fn.Name, blk.ID)
	case TermRet:
		if blk.Term.Ret.HasValue && !validValue(fn, blk.Term.Ret.Value) {
			return fmt.Errorf("func '%s' bb%d: ret of undefined value", fn.Name, blk.ID)
		}
	case TermBr:
		if fn.Block(blk.Term.Br.Target) == nil {
			return fmt.Errorf("func '%s' bb%d: br to missing block %d", fn.Name, blk.ID, blk.Term.Br.Target)
		}
	case TermCondBr:
		t := blk.Term.CondBr
		if !validValue(fn, t.Cond) {
			return fmt.Errorf("func '%s' bb%d: condbr on undefined value", fn.Name, blk.ID)
		}
		if fn.Block(t.Then) == nil || fn.Block(t.Else) == nil {
			return fmt.Errorf("func '%s' bb%d: condbr to missing block", fn.Name, blk.ID)
		}
	default:
		return fmt.Errorf("func '%s' bb%d: unknown terminator kind %d", fn.Name, blk.ID, blk.Term.Kind)
	}
	return nil
}

func validValue(fn *Func, id ValueID) bool {
	return id >= 0 && int(id) < len(fn.Values)
}

func validLocal(fn *Func, id LocalID) bool {
	return id >= 0 && int(id) < len(fn.Locals)
}

func validGlobal(m *Module, id GlobalID) bool {
	return id >= 0 && int(id) < len(m.Globals)
}

func validateOperands(m *Module, fn *Func, in *Instr) error {
	switch in.Kind {
	case InstrConst:
	case InstrBin:
		if !validValue(fn, in.Bin.LHS) || !validValue(fn, in.Bin.RHS) {
			return fmt.Errorf("%s with undefined operand", in.Bin.Op)
		}
	case InstrUn:
		if !validValue(fn, in.Un.Operand) {
			return fmt.Errorf("%s with undefined operand", in.Un.Op)
		}
	case InstrCmp:
		if !validValue(fn, in.Cmp.LHS) || !validValue(fn, in.Cmp.RHS) {
			return fmt.Errorf("cmp.%s with undefined operand", in.Cmp.Op)
		}
	case InstrLoadLocal:
		if !validLocal(fn, in.LoadLocal.Local) {
			return fmt.Errorf("load_local of missing slot %d", in.LoadLocal.Local)
		}
	case InstrStoreLocal:
		if !validLocal(fn, in.StoreLocal.Local) || !validValue(fn, in.StoreLocal.Value) {
			return fmt.Errorf("store_local with missing slot or value")
		}
	case InstrLoadGlobal:
		if !validGlobal(m, in.LoadGlobal.Global) {
			return fmt.Errorf("load_global of missing global %d", in.LoadGlobal.Global)
		}
	case InstrStoreGlobal:
		if !validGlobal(m, in.StoreGlobal.Global) || !validValue(fn, in.StoreGlobal.Value) {
			return fmt.Errorf("store_global with missing global or value")
		}
	case InstrCall:
		if in.Call.Callee.Kind == CalleeFunc && m.Func(in.Call.Callee.Func) == nil {
			return fmt.Errorf("call to missing function %d", in.Call.Callee.Func)
		}
		if in.Call.Callee.Kind == CalleeRuntime && in.Call.Callee.Name == "" {
			return fmt.Errorf("runtime call without a symbol name")
		}
		for _, arg := range in.Call.Args {
			if !validValue(fn, arg) {
				return fmt.Errorf("call with undefined argument")
			}
		}
	default:
		return fmt.Errorf("unknown instruction kind %d", in.Kind)
	}
	return nil
}
