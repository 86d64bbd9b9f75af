package mir

import (
	"strconv"

	"pyrsc/internal/ast"
)

// lowerStmts lowers statements until the list ends or the current block
// gains a terminator; statements after a terminator are unreachable and
// dropped.
func (l *lowerer) lowerStmts(stmts []ast.StmtID) {
	for _, stmtID := range stmts {
		if l.block().Terminated() {
			return
		}
		l.lowerStmt(stmtID)
	}
}

func (l *lowerer) lowerStmt(stmtID ast.StmtID) {
	stmt := l.builder.Stmts.Get(stmtID)
	switch stmt.Kind {
	case ast.StmtAssign:
		data, _ := l.builder.Stmts.Assign(stmtID)
		value := l.lowerExpr(data.Value)
		symID := l.syms.AssignTargets[stmtID]
		if !symID.IsValid() {
			l.failf("assignment to unresolved '%s'", l.builder.Name(data.Name))
		}
		l.storeSlot(l.slotFor(symID), value)

	case ast.StmtIndexAssign:
		data, _ := l.builder.Stmts.IndexAssign(stmtID)
		base := l.lowerExpr(data.Base)
		index := l.lowerExpr(data.Index)
		value := l.lowerExpr(data.Value)
		l.emit(Instr{Kind: InstrCall, Result: NoValueID, Call: CallInstr{
			Callee: Callee{Kind: CalleeRuntime, Func: NoFuncID, Name: RuntimeListSet},
			Args:   []ValueID{base, index, value},
		}})

	case ast.StmtExpr:
		data, _ := l.builder.Stmts.Expr(stmtID)
		l.lowerExprDiscard(data.Value)

	case ast.StmtReturn:
		data, _ := l.builder.Stmts.Return(stmtID)
		if data.Value.IsValid() {
			l.terminate(Ret(l.lowerExpr(data.Value)))
		} else {
			l.terminate(Ret(NoValueID))
		}

	case ast.StmtIf:
		l.lowerIf(stmtID)
	case ast.StmtWhile:
		l.lowerWhile(stmtID)
	case ast.StmtFor:
		l.lowerFor(stmtID)

	case ast.StmtPass:
	case ast.StmtBreak:
		if len(l.loops) == 0 {
			l.failf("break outside a loop reached lowering")
		}
		l.terminate(Br(l.loops[len(l.loops)-1].exit))
	case ast.StmtContinue:
		if len(l.loops) == 0 {
			l.failf("continue outside a loop reached lowering")
		}
		l.terminate(Br(l.loops[len(l.loops)-1].cont))
	default:
		l.failf("unexpected statement kind %d", stmt.Kind)
	}
}

// lowerIf builds then/else blocks and a join block. The join is created
// only when at least one arm falls through, so every allocated block stays
// reachable.
func (l *lowerer) lowerIf(stmtID ast.StmtID) {
	data, _ := l.builder.Stmts.If(stmtID)
	cond := l.lowerExpr(data.Cond)

	thenBlk := l.fn.NewBlock()
	var elseBlk BlockID
	hasElse := len(data.Else) > 0
	if hasElse {
		elseBlk = l.fn.NewBlock()
	}

	join := NoBlockID
	joinBlock := func() BlockID {
		if join == NoBlockID {
			join = l.fn.NewBlock()
		}
		return join
	}

	if hasElse {
		l.terminate(CondBr(cond, thenBlk, elseBlk))
	} else {
		l.terminate(CondBr(cond, thenBlk, joinBlock()))
	}

	l.cur = thenBlk
	l.lowerStmts(data.Then)
	if !l.block().Terminated() {
		l.terminate(Br(joinBlock()))
	}

	if hasElse {
		l.cur = elseBlk
		l.lowerStmts(data.Else)
		if !l.block().Terminated() {
			l.terminate(Br(joinBlock()))
		}
	}

	if join != NoBlockID {
		l.cur = join
		return
	}
	// Both arms terminated: stay on the terminated block so the caller
	// drops the rest of the statement list.
	l.cur = thenBlk
}

func (l *lowerer) lowerWhile(stmtID ast.StmtID) {
	data, _ := l.builder.Stmts.While(stmtID)

	header := l.fn.NewBlock()
	l.terminate(Br(header))

	l.cur = header
	cond := l.lowerExpr(data.Cond)
	body := l.fn.NewBlock()
	exit := l.fn.NewBlock()
	l.terminate(CondBr(cond, body, exit))

	l.loops = append(l.loops, loopFrame{cont: header, exit: exit})
	l.cur = body
	l.lowerStmts(data.Body)
	if !l.block().Terminated() {
		l.terminate(Br(header))
	}
	l.loops = l.loops[:len(l.loops)-1]

	l.cur = exit
}

// lowerFor builds the counted loop: the loop variable is a real slot
// initialized to start, the header compares it against a cached stop
// value, and a latch block advances it by the literal step. A negative
// step flips the exit comparison.
func (l *lowerer) lowerFor(stmtID ast.StmtID) {
	data, _ := l.builder.Stmts.For(stmtID)

	var startV ValueID
	var stopExpr ast.ExprID
	step := int64(1)
	switch len(data.Args) {
	case 1:
		startV = l.constInt(0)
		stopExpr = data.Args[0]
	case 2:
		startV = l.lowerExpr(data.Args[0])
		stopExpr = data.Args[1]
	case 3:
		startV = l.lowerExpr(data.Args[0])
		stopExpr = data.Args[1]
		value, ok := intLiteral(l.builder, data.Args[2])
		if !ok || value == 0 {
			l.failf("non-literal range step reached lowering")
		}
		step = value
	default:
		l.failf("range with %d arguments reached lowering", len(data.Args))
	}

	symID := l.syms.ForVars[stmtID]
	if !symID.IsValid() {
		l.failf("for loop variable '%s' is unresolved", l.builder.Name(data.Var))
	}
	varSlot := l.slotFor(symID)
	l.storeSlot(varSlot, startV)

	stopSlot := slotRef{local: l.newTemp("range.stop", l.b.Int)}
	l.storeSlot(stopSlot, l.lowerExpr(stopExpr))

	header := l.fn.NewBlock()
	l.terminate(Br(header))

	l.cur = header
	iv := l.loadSlot(varSlot, l.b.Int)
	sv := l.loadSlot(stopSlot, l.b.Int)
	op := CmpLt
	if step < 0 {
		op = CmpGt
	}
	cond := l.fn.NewValue(l.b.Bool)
	l.emit(Instr{Kind: InstrCmp, Result: cond, Cmp: CmpInstr{Op: op, LHS: iv, RHS: sv}})

	body := l.fn.NewBlock()
	latch := l.fn.NewBlock()
	exit := l.fn.NewBlock()
	l.terminate(CondBr(cond, body, exit))

	l.loops = append(l.loops, loopFrame{cont: latch, exit: exit})
	l.cur = body
	l.lowerStmts(data.Body)
	if !l.block().Terminated() {
		l.terminate(Br(latch))
	}
	l.loops = l.loops[:len(l.loops)-1]

	l.cur = latch
	iv2 := l.loadSlot(varSlot, l.b.Int)
	stepV := l.constInt(step)
	next := l.fn.NewValue(l.b.Int)
	l.emit(Instr{Kind: InstrBin, Result: next, Bin: BinInstr{Op: BinAdd, LHS: iv2, RHS: stepV}})
	l.storeSlot(varSlot, next)
	l.terminate(Br(header))

	l.cur = exit
}

func (l *lowerer) constInt(value int64) ValueID {
	result := l.fn.NewValue(l.b.Int)
	l.emit(Instr{Kind: InstrConst, Result: result, Const: ConstInstr{Kind: ConstInt, Int: value}})
	return result
}

// intLiteral evaluates an integer literal expression, possibly under a
// leading minus.
func intLiteral(builder *ast.Builder, exprID ast.ExprID) (int64, bool) {
	expr := builder.Exprs.Get(exprID)
	switch expr.Kind {
	case ast.ExprLit:
		data, _ := builder.Exprs.Literal(exprID)
		if data.Kind != ast.LitInt {
			return 0, false
		}
		value, err := strconv.ParseInt(data.Text, 10, 64)
		if err != nil {
			return 0, false
		}
		return value, true
	case ast.ExprUnary:
		data, _ := builder.Exprs.Unary(exprID)
		if data.Op != ast.UnaryNeg {
			return 0, false
		}
		value, ok := intLiteral(builder, data.Operand)
		if !ok {
			return 0, false
		}
		return -value, true
	default:
		return 0, false
	}
}
