package sema

import (
	"fmt"
	"strconv"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/types"
)

func (tc *typeChecker) checkStmts(stmts []ast.StmtID) {
	for _, stmtID := range stmts {
		tc.checkStmt(stmtID)
	}
}

func (tc *typeChecker) checkStmt(stmtID ast.StmtID) {
	stmt := tc.builder.Stmts.Get(stmtID)
	switch stmt.Kind {
	case ast.StmtAssign:
		tc.checkAssign(stmtID)
	case ast.StmtIndexAssign:
		tc.checkIndexAssign(stmtID)
	case ast.StmtExpr:
		data, _ := tc.builder.Stmts.Expr(stmtID)
		tc.typeExpr(data.Value, types.NoTypeID)
	case ast.StmtReturn:
		tc.checkReturn(stmtID)
	case ast.StmtIf:
		data, _ := tc.builder.Stmts.If(stmtID)
		tc.checkCondition(data.Cond, "if")
		tc.checkStmts(data.Then)
		tc.checkStmts(data.Else)
	case ast.StmtWhile:
		data, _ := tc.builder.Stmts.While(stmtID)
		tc.checkCondition(data.Cond, "while")
		tc.checkStmts(data.Body)
	case ast.StmtFor:
		tc.checkFor(stmtID)
	case ast.StmtPass, ast.StmtBreak, ast.StmtContinue:
	}
}

func (tc *typeChecker) checkAssign(stmtID ast.StmtID) {
	data, _ := tc.builder.Stmts.Assign(stmtID)
	name := tc.builder.Name(data.Name)
	sym := tc.symbol(tc.syms.AssignTargets[stmtID])

	if data.Ann.IsValid() {
		declared := tc.types.ResolveAnnotation(tc.builder, data.Ann, tc.reporter)
		if sym != nil && sym.Type == types.NoTypeID {
			sym.Type = declared
		}
		value := tc.typeExpr(data.Value, declared)
		if !tc.isErr(declared) && !tc.isErr(value) && value != declared {
			diag.ReportError(tc.reporter, diag.TypeMismatchAssign,
				tc.builder.Exprs.Get(data.Value).Span,
				fmt.Sprintf("cannot assign %s to '%s' of type %s",
					tc.types.String(value), name, tc.types.String(declared)))
		}
		return
	}

	var target types.TypeID
	if sym != nil {
		target = sym.Type
	}
	value := tc.typeExpr(data.Value, target)
	if sym != nil && !tc.isErr(target) && !tc.isErr(value) && value != target {
		diag.ReportErrorNote(tc.reporter, diag.TypeMismatchAssign,
			tc.builder.Exprs.Get(data.Value).Span,
			fmt.Sprintf("cannot assign %s to '%s' of type %s",
				tc.types.String(value), name, tc.types.String(target)),
			sym.Span, "declared here")
	}
}

func (tc *typeChecker) checkIndexAssign(stmtID ast.StmtID) {
	data, _ := tc.builder.Stmts.IndexAssign(stmtID)
	base := tc.typeExpr(data.Base, types.NoTypeID)
	index := tc.typeExpr(data.Index, types.NoTypeID)
	value := tc.typeExpr(data.Value, types.NoTypeID)

	if !tc.isErr(index) && index != tc.b.Int {
		diag.ReportError(tc.reporter, diag.TypeMismatchIndex,
			tc.builder.Exprs.Get(data.Index).Span,
			fmt.Sprintf("list index has type %s, expected int", tc.types.String(index)))
	}
	if tc.isErr(base) {
		return
	}
	bt := tc.types.MustLookup(base)
	if bt.Kind != types.KindList {
		diag.ReportError(tc.reporter, diag.TypeMismatchIndex,
			tc.builder.Exprs.Get(data.Base).Span,
			fmt.Sprintf("type %s cannot be indexed", tc.types.String(base)))
		return
	}
	if !tc.isErr(value) && value != bt.Elem {
		diag.ReportError(tc.reporter, diag.TypeMismatchAssign,
			tc.builder.Exprs.Get(data.Value).Span,
			fmt.Sprintf("cannot assign %s to an element of %s",
				tc.types.String(value), tc.types.String(base)))
	}
}

func (tc *typeChecker) checkReturn(stmtID ast.StmtID) {
	data, _ := tc.builder.Stmts.Return(stmtID)
	stmt := tc.builder.Stmts.Get(stmtID)

	if tc.fnName == "" {
		diag.ReportError(tc.reporter, diag.TypeMismatchReturn, stmt.Span,
			"'return' is not allowed at module level")
		if data.Value.IsValid() {
			tc.typeExpr(data.Value, types.NoTypeID)
		}
		return
	}

	if !data.Value.IsValid() {
		if !tc.isErr(tc.fnResult) && tc.fnResult != tc.b.None {
			diag.ReportError(tc.reporter, diag.TypeMismatchReturn, stmt.Span,
				fmt.Sprintf("missing return value: '%s' returns %s",
					tc.fnName, tc.types.String(tc.fnResult)))
		}
		return
	}

	value := tc.typeExpr(data.Value, tc.fnResult)
	if !tc.isErr(tc.fnResult) && !tc.isErr(value) && value != tc.fnResult {
		diag.ReportError(tc.reporter, diag.TypeMismatchReturn,
			tc.builder.Exprs.Get(data.Value).Span,
			fmt.Sprintf("cannot return %s from '%s' (declared %s)",
				tc.types.String(value), tc.fnName, tc.types.String(tc.fnResult)))
	}
}

func (tc *typeChecker) checkCondition(cond ast.ExprID, ctx string) {
	t := tc.typeExpr(cond, tc.b.Bool)
	if !tc.isErr(t) && t != tc.b.Bool {
		diag.ReportError(tc.reporter, diag.TypeMismatchCondition,
			tc.builder.Exprs.Get(cond).Span,
			fmt.Sprintf("%s condition has type %s, expected bool", ctx, tc.types.String(t)))
	}
}

func (tc *typeChecker) checkFor(stmtID ast.StmtID) {
	data, _ := tc.builder.Stmts.For(stmtID)

	for i, arg := range data.Args {
		t := tc.typeExpr(arg, tc.b.Int)
		if !tc.isErr(t) && t != tc.b.Int {
			diag.ReportError(tc.reporter, diag.TypeMismatchArgument,
				tc.builder.Exprs.Get(arg).Span,
				fmt.Sprintf("range argument %d has type %s, expected int", i+1, tc.types.String(t)))
		}
	}
	// A symbolic step would leave the loop's exit comparison undecidable,
	// so the step is pinned to a literal at check time.
	if len(data.Args) == 3 {
		tc.checkRangeStep(data.Args[2])
	}

	if sym := tc.symbol(tc.syms.ForVars[stmtID]); sym != nil {
		if sym.Type == types.NoTypeID {
			sym.Type = tc.b.Int
		} else if !tc.isErr(sym.Type) && sym.Type != tc.b.Int {
			diag.ReportError(tc.reporter, diag.TypeMismatchAssign, data.VarSpan,
				fmt.Sprintf("loop variable '%s' has type %s, expected int",
					tc.builder.Name(data.Var), tc.types.String(sym.Type)))
		}
	}

	tc.checkStmts(data.Body)
}

func (tc *typeChecker) checkRangeStep(arg ast.ExprID) {
	if value, ok := intLiteralValue(tc.builder, arg); !ok || value == 0 {
		diag.ReportError(tc.reporter, diag.TypeMismatchArgument,
			tc.builder.Exprs.Get(arg).Span,
			"range step must be a non-zero integer literal")
	}
}

// intLiteralValue evaluates an integer literal, possibly under a leading
// minus.
func intLiteralValue(builder *ast.Builder, exprID ast.ExprID) (int64, bool) {
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
		value, ok := intLiteralValue(builder, data.Operand)
		if !ok {
			return 0, false
		}
		return -value, true
	default:
		return 0, false
	}
}
