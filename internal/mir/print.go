package mir

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"pyrsc/internal/types"
)

// DumpModule writes a deterministic human-readable listing of a module.
// Running the pipeline twice on identical input yields identical dumps.
func DumpModule(w io.Writer, m *Module, typesIn *types.Interner) error {
	if w == nil || m == nil {
		return nil
	}

	for i := range m.Globals {
		g := &m.Globals[i]
		if _, err := fmt.Fprintf(w, "global g%d %s: %s\n", i, g.Name, typesIn.String(g.Type)); err != nil {
			return err
		}
	}

	// Funcs carry their creation order: defs in source order, then the
	// synthetic entry.
	for _, fn := range m.Funcs {
		if err := dumpFunc(w, m, fn, typesIn); err != nil {
			return err
		}
	}
	return nil
}

// Dump renders the module to a string.
func Dump(m *Module, typesIn *types.Interner) string {
	var sb strings.Builder
	_ = DumpModule(&sb, m, typesIn)
	return sb.String()
}

func dumpFunc(w io.Writer, m *Module, fn *Func, typesIn *types.Interner) error {
	var sb strings.Builder

	sb.WriteString("\nfunc @")
	sb.WriteString(fn.Name)
	sb.WriteByte('(')
	for i := 0; i < fn.Params; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", fn.Locals[i].Name, typesIn.String(fn.Locals[i].Type))
	}
	fmt.Fprintf(&sb, ") -> %s {\n", typesIn.String(fn.Result))

	for i := range fn.Locals {
		l := &fn.Locals[i]
		name := l.Name
		if name == "" {
			name = "_"
		}
		fmt.Fprintf(&sb, "  local l%d %s: %s\n", i, name, typesIn.String(l.Type))
	}

	for bi := range fn.Blocks {
		blk := &fn.Blocks[bi]
		fmt.Fprintf(&sb, "bb%d:\n", blk.ID)
		for ii := range blk.Instrs {
			sb.WriteString("  ")
			sb.WriteString(formatInstr(&blk.Instrs[ii], typesIn, fn))
			sb.WriteByte('\n')
		}
		sb.WriteString("  ")
		sb.WriteString(formatTerm(&blk.Term))
		sb.WriteByte('\n')
	}
	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func formatInstr(in *Instr, typesIn *types.Interner, fn *Func) string {
	var sb strings.Builder
	if in.Result != NoValueID {
		fmt.Fprintf(&sb, "%%%d = ", in.Result)
	}
	switch in.Kind {
	case InstrConst:
		switch in.Const.Kind {
		case ConstInt:
			fmt.Fprintf(&sb, "const.int %d", in.Const.Int)
		case ConstFloat:
			fmt.Fprintf(&sb, "const.float %s", strconv.FormatFloat(in.Const.Float, 'g', -1, 64))
		case ConstBool:
			fmt.Fprintf(&sb, "const.bool %t", in.Const.Bool)
		case ConstStr:
			fmt.Fprintf(&sb, "const.str %s", strconv.Quote(in.Const.Str))
		case ConstNone:
			sb.WriteString("const.none")
		}
	case InstrBin:
		fmt.Fprintf(&sb, "%s %%%d, %%%d: %s", in.Bin.Op, in.Bin.LHS, in.Bin.RHS,
			typesIn.String(fn.ValueType(in.Result)))
	case InstrUn:
		fmt.Fprintf(&sb, "%s %%%d", in.Un.Op, in.Un.Operand)
	case InstrCmp:
		fmt.Fprintf(&sb, "cmp.%s %%%d, %%%d", in.Cmp.Op, in.Cmp.LHS, in.Cmp.RHS)
	case InstrLoadLocal:
		fmt.Fprintf(&sb, "load_local l%d", in.LoadLocal.Local)
	case InstrStoreLocal:
		fmt.Fprintf(&sb, "store_local l%d, %%%d", in.StoreLocal.Local, in.StoreLocal.Value)
	case InstrLoadGlobal:
		fmt.Fprintf(&sb, "load_global g%d", in.LoadGlobal.Global)
	case InstrStoreGlobal:
		fmt.Fprintf(&sb, "store_global g%d, %%%d", in.StoreGlobal.Global, in.StoreGlobal.Value)
	case InstrCall:
		if in.Call.Callee.Kind == CalleeFunc {
			fmt.Fprintf(&sb, "call @%s(", in.Call.Callee.Name)
		} else {
			fmt.Fprintf(&sb, "call %s(", in.Call.Callee.Name)
		}
		for i, arg := range in.Call.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%%%d", arg)
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

func formatTerm(t *Terminator) string {
	switch t.Kind {
	case TermRet:
		if t.Ret.HasValue {
			return fmt.Sprintf("ret %%%d", t.Ret.Value)
		}
		return "ret"
	case TermBr:
		return fmt.Sprintf("br bb%d", t.Br.Target)
	case TermCondBr:
		return fmt.Sprintf("condbr %%%d, bb%d, bb%d", t.CondBr.Cond, t.CondBr.Then, t.CondBr.Else)
	default:
		return "<no terminator>"
	}
}
