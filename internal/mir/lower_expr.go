package mir

import (
	"strconv"

	"pyrsc/internal/ast"
	"pyrsc/internal/symbols"
	"pyrsc/internal/types"
)

// lowerExpr lowers an expression and returns the value holding its result.
func (l *lowerer) lowerExpr(exprID ast.ExprID) ValueID {
	expr := l.builder.Exprs.Get(exprID)
	switch expr.Kind {
	case ast.ExprIdent:
		return l.lowerIdent(exprID)
	case ast.ExprLit:
		return l.lowerLiteral(exprID)
	case ast.ExprUnary:
		data, _ := l.builder.Exprs.Unary(exprID)
		operand := l.lowerExpr(data.Operand)
		result := l.fn.NewValue(l.exprType(exprID))
		op := UnNeg
		if data.Op == ast.UnaryNot {
			op = UnNot
		}
		l.emit(Instr{Kind: InstrUn, Result: result, Un: UnInstr{Op: op, Operand: operand}})
		return result
	case ast.ExprBinary:
		return l.lowerBinary(exprID)
	case ast.ExprBoolOp:
		return l.lowerBoolOp(exprID)
	case ast.ExprCall:
		return l.lowerCall(exprID, true)
	case ast.ExprList:
		return l.lowerList(exprID)
	case ast.ExprIndex:
		data, _ := l.builder.Exprs.Index(exprID)
		base := l.lowerExpr(data.Base)
		index := l.lowerExpr(data.Index)
		result := l.fn.NewValue(l.exprType(exprID))
		l.emit(Instr{Kind: InstrCall, Result: result, Call: CallInstr{
			Callee: Callee{Kind: CalleeRuntime, Func: NoFuncID, Name: RuntimeListGet},
			Args:   []ValueID{base, index},
		}})
		return result
	default:
		l.failf("unexpected expression kind %d", expr.Kind)
		return NoValueID
	}
}

// lowerExprDiscard lowers an expression statement; a call's unused result
// is simply not materialized.
func (l *lowerer) lowerExprDiscard(exprID ast.ExprID) {
	if l.builder.Exprs.Get(exprID).Kind == ast.ExprCall {
		l.lowerCall(exprID, false)
		return
	}
	l.lowerExpr(exprID)
}

func (l *lowerer) lowerIdent(exprID ast.ExprID) ValueID {
	symID, ok := l.syms.ExprBindings[exprID]
	if !ok {
		l.failf("unresolved identifier reached lowering")
	}
	return l.loadSlot(l.slotFor(symID), l.exprType(exprID))
}

func (l *lowerer) lowerLiteral(exprID ast.ExprID) ValueID {
	data, _ := l.builder.Exprs.Literal(exprID)
	result := l.fn.NewValue(l.exprType(exprID))
	switch data.Kind {
	case ast.LitInt:
		value, err := strconv.ParseInt(data.Text, 10, 64)
		if err != nil {
			l.failf("bad int literal %q: %v", data.Text, err)
		}
		l.emit(Instr{Kind: InstrConst, Result: result, Const: ConstInstr{Kind: ConstInt, Int: value}})
	case ast.LitFloat:
		value, err := strconv.ParseFloat(data.Text, 64)
		if err != nil {
			l.failf("bad float literal %q: %v", data.Text, err)
		}
		l.emit(Instr{Kind: InstrConst, Result: result, Const: ConstInstr{Kind: ConstFloat, Float: value}})
	case ast.LitString:
		l.emit(Instr{Kind: InstrConst, Result: result, Const: ConstInstr{Kind: ConstStr, Str: data.Text}})
	case ast.LitTrue:
		l.emit(Instr{Kind: InstrConst, Result: result, Const: ConstInstr{Kind: ConstBool, Bool: true}})
	case ast.LitFalse:
		l.emit(Instr{Kind: InstrConst, Result: result, Const: ConstInstr{Kind: ConstBool, Bool: false}})
	case ast.LitNone:
		l.emit(Instr{Kind: InstrConst, Result: result, Const: ConstInstr{Kind: ConstNone}})
	default:
		l.failf("unexpected literal kind %d", data.Kind)
	}
	return result
}

func (l *lowerer) lowerBinary(exprID ast.ExprID) ValueID {
	data, _ := l.builder.Exprs.Binary(exprID)
	lhs := l.lowerExpr(data.Left)
	rhs := l.lowerExpr(data.Right)
	result := l.fn.NewValue(l.exprType(exprID))

	if data.Op.IsComparison() {
		var op CmpOp
		switch data.Op {
		case ast.BinEq:
			op = CmpEq
		case ast.BinNe:
			op = CmpNe
		case ast.BinLt:
			op = CmpLt
		case ast.BinLe:
			op = CmpLe
		case ast.BinGt:
			op = CmpGt
		case ast.BinGe:
			op = CmpGe
		}
		l.emit(Instr{Kind: InstrCmp, Result: result, Cmp: CmpInstr{Op: op, LHS: lhs, RHS: rhs}})
		return result
	}

	var op BinOp
	switch data.Op {
	case ast.BinAdd:
		op = BinAdd
	case ast.BinSub:
		op = BinSub
	case ast.BinMul:
		op = BinMul
	case ast.BinDiv:
		op = BinDiv
	case ast.BinFloorDiv:
		op = BinFloorDiv
	case ast.BinMod:
		op = BinMod
	default:
		l.failf("unexpected binary operator %s", data.Op)
	}
	l.emit(Instr{Kind: InstrBin, Result: result, Bin: BinInstr{Op: op, LHS: lhs, RHS: rhs}})
	return result
}

// lowerBoolOp lowers and/or through a temporary bool slot and control
// flow, preserving short-circuit evaluation without phi nodes.
func (l *lowerer) lowerBoolOp(exprID ast.ExprID) ValueID {
	data, _ := l.builder.Exprs.BoolOp(exprID)

	tmp := slotRef{local: l.newTemp("bool.tmp", l.b.Bool)}
	lhs := l.lowerExpr(data.Left)
	l.storeSlot(tmp, lhs)

	rhsBlk := l.fn.NewBlock()
	join := l.fn.NewBlock()
	if data.Op == ast.BoolAnd {
		l.terminate(CondBr(lhs, rhsBlk, join))
	} else {
		l.terminate(CondBr(lhs, join, rhsBlk))
	}

	l.cur = rhsBlk
	rhs := l.lowerExpr(data.Right)
	l.storeSlot(tmp, rhs)
	l.terminate(Br(join))

	l.cur = join
	return l.loadSlot(tmp, l.b.Bool)
}

func (l *lowerer) lowerCall(exprID ast.ExprID, needValue bool) ValueID {
	data, _ := l.builder.Exprs.Call(exprID)

	if sym := l.builtinCallee(data.Callee); sym != nil {
		return l.lowerBuiltinCall(exprID, sym, data, needValue)
	}

	calleeSym, ok := l.syms.ExprBindings[data.Callee]
	if !ok {
		l.failf("unresolved callee reached lowering")
	}
	funcID, ok := l.mod.FuncBySym[calleeSym]
	if !ok {
		l.failf("call to '%s' which is not a module function", l.syms.Table.SymbolName(calleeSym))
	}
	fn := l.mod.Funcs[funcID]

	args := make([]ValueID, len(data.Args))
	for i, arg := range data.Args {
		args[i] = l.lowerExpr(arg)
	}

	result := NoValueID
	if fn.Result != l.b.None {
		result = l.fn.NewValue(fn.Result)
	}
	l.emit(Instr{Kind: InstrCall, Result: result, Call: CallInstr{
		Callee: Callee{Kind: CalleeFunc, Func: funcID, Name: fn.Name},
		Args:   args,
	}})
	if result == NoValueID && needValue {
		return l.constNone()
	}
	return result
}

func (l *lowerer) builtinCallee(callee ast.ExprID) *symbols.Symbol {
	if l.builder.Exprs.Get(callee).Kind != ast.ExprIdent {
		return nil
	}
	sym := l.syms.Table.Symbols.Get(l.syms.ExprBindings[callee])
	if sym == nil || !sym.IsBuiltin() {
		return nil
	}
	return sym
}

func (l *lowerer) lowerBuiltinCall(exprID ast.ExprID, sym *symbols.Symbol, data *ast.ExprCallData, needValue bool) ValueID {
	switch sym.Builtin {
	case symbols.BuiltinPrint:
		if len(data.Args) != 1 {
			l.failf("print with %d arguments reached lowering", len(data.Args))
		}
		arg := l.lowerExpr(data.Args[0])
		l.emit(Instr{Kind: InstrCall, Result: NoValueID, Call: CallInstr{
			Callee: Callee{Kind: CalleeRuntime, Func: NoFuncID, Name: l.printRuntime(data.Args[0])},
			Args:   []ValueID{arg},
		}})
		if needValue {
			return l.constNone()
		}
		return NoValueID

	case symbols.BuiltinLen:
		if len(data.Args) != 1 {
			l.failf("len with %d arguments reached lowering", len(data.Args))
		}
		name := RuntimeLenList
		if l.types.Kind(l.exprType(data.Args[0])) == types.KindStr {
			name = RuntimeLenStr
		}
		arg := l.lowerExpr(data.Args[0])
		result := l.fn.NewValue(l.b.Int)
		l.emit(Instr{Kind: InstrCall, Result: result, Call: CallInstr{
			Callee: Callee{Kind: CalleeRuntime, Func: NoFuncID, Name: name},
			Args:   []ValueID{arg},
		}})
		return result

	default:
		l.failf("builtin '%s' reached lowering outside a for header", sym.Builtin)
		return NoValueID
	}
}

func (l *lowerer) printRuntime(arg ast.ExprID) string {
	switch l.types.Kind(l.exprType(arg)) {
	case types.KindInt:
		return RuntimePrintInt
	case types.KindFloat:
		return RuntimePrintFloat
	case types.KindBool:
		return RuntimePrintBool
	case types.KindStr:
		return RuntimePrintStr
	case types.KindList:
		return RuntimePrintList
	default:
		l.failf("unprintable type reached lowering")
		return ""
	}
}

// lowerList materializes a list literal through the runtime: a fresh list
// followed by one push per element.
func (l *lowerer) lowerList(exprID ast.ExprID) ValueID {
	data, _ := l.builder.Exprs.List(exprID)

	result := l.fn.NewValue(l.exprType(exprID))
	l.emit(Instr{Kind: InstrCall, Result: result, Call: CallInstr{
		Callee: Callee{Kind: CalleeRuntime, Func: NoFuncID, Name: RuntimeListNew},
	}})
	for _, elem := range data.Elems {
		value := l.lowerExpr(elem)
		l.emit(Instr{Kind: InstrCall, Result: NoValueID, Call: CallInstr{
			Callee: Callee{Kind: CalleeRuntime, Func: NoFuncID, Name: RuntimeListPush},
			Args:   []ValueID{result, value},
		}})
	}
	return result
}

func (l *lowerer) constNone() ValueID {
	result := l.fn.NewValue(l.b.None)
	l.emit(Instr{Kind: InstrConst, Result: result, Const: ConstInstr{Kind: ConstNone}})
	return result
}
