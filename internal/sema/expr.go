package sema

import (
	"fmt"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/symbols"
	"pyrsc/internal/types"
)

// typeExpr types one expression bottom-up. want is a hint used only where
// the syntax alone is ambiguous (the empty list literal); it never
// overrides the computed type. Results are memoized so an expression is
// annotated exactly once.
func (tc *typeChecker) typeExpr(exprID ast.ExprID, want types.TypeID) types.TypeID {
	if t, ok := tc.result.ExprTypes[exprID]; ok {
		return t
	}
	t := tc.typeExprUncached(exprID, want)
	tc.result.ExprTypes[exprID] = t
	return t
}

func (tc *typeChecker) typeExprUncached(exprID ast.ExprID, want types.TypeID) types.TypeID {
	expr := tc.builder.Exprs.Get(exprID)
	switch expr.Kind {
	case ast.ExprIdent:
		return tc.typeIdent(exprID)
	case ast.ExprLit:
		return tc.typeLiteral(exprID)
	case ast.ExprUnary:
		return tc.typeUnary(exprID)
	case ast.ExprBinary:
		return tc.typeBinary(exprID)
	case ast.ExprBoolOp:
		return tc.typeBoolOp(exprID)
	case ast.ExprCall:
		return tc.typeCall(exprID)
	case ast.ExprList:
		return tc.typeList(exprID, want)
	case ast.ExprIndex:
		return tc.typeIndex(exprID)
	default:
		return tc.b.Error
	}
}

func (tc *typeChecker) typeIdent(exprID ast.ExprID) types.TypeID {
	sym := tc.symbol(tc.syms.ExprBindings[exprID])
	if sym == nil {
		// The resolver already reported this reference.
		return tc.b.Error
	}
	if sym.IsBuiltin() {
		diag.ReportError(tc.reporter, diag.TypeMismatchNotCallable,
			tc.builder.Exprs.Get(exprID).Span,
			fmt.Sprintf("builtin '%s' can only be used as a call", sym.Builtin))
		return tc.b.Error
	}
	if sym.Type == types.NoTypeID {
		return tc.b.Error
	}
	return sym.Type
}

func (tc *typeChecker) typeLiteral(exprID ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Literal(exprID)
	switch data.Kind {
	case ast.LitInt:
		return tc.b.Int
	case ast.LitFloat:
		return tc.b.Float
	case ast.LitString:
		return tc.b.Str
	case ast.LitTrue, ast.LitFalse:
		return tc.b.Bool
	case ast.LitNone:
		return tc.b.None
	default:
		return tc.b.Error
	}
}

func (tc *typeChecker) typeUnary(exprID ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Unary(exprID)
	operand := tc.typeExpr(data.Operand, types.NoTypeID)
	if tc.isErr(operand) {
		return tc.b.Error
	}
	result, ok := tc.types.UnaryResult(data.Op, operand)
	if !ok {
		diag.ReportError(tc.reporter, diag.TypeMismatchOperands,
			tc.builder.Exprs.Get(exprID).Span,
			fmt.Sprintf("operator '%s' is not defined for %s", data.Op, tc.types.String(operand)))
		return tc.b.Error
	}
	return result
}

func (tc *typeChecker) typeBinary(exprID ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Binary(exprID)
	left := tc.typeExpr(data.Left, types.NoTypeID)
	right := tc.typeExpr(data.Right, types.NoTypeID)
	if tc.isErr(left) || tc.isErr(right) {
		return tc.b.Error
	}
	result, ok := tc.types.BinaryResult(data.Op, left, right)
	if !ok {
		diag.ReportError(tc.reporter, diag.TypeMismatchOperands,
			tc.builder.Exprs.Get(exprID).Span,
			fmt.Sprintf("operator '%s' is not defined for %s and %s",
				data.Op, tc.types.String(left), tc.types.String(right)))
		return tc.b.Error
	}
	return result
}

func (tc *typeChecker) typeBoolOp(exprID ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.BoolOp(exprID)
	left := tc.typeExpr(data.Left, tc.b.Bool)
	right := tc.typeExpr(data.Right, tc.b.Bool)
	if tc.isErr(left) || tc.isErr(right) {
		return tc.b.Error
	}
	if left != tc.b.Bool || right != tc.b.Bool {
		diag.ReportError(tc.reporter, diag.TypeMismatchOperands,
			tc.builder.Exprs.Get(exprID).Span,
			fmt.Sprintf("operator '%s' requires bool operands, got %s and %s",
				data.Op, tc.types.String(left), tc.types.String(right)))
		return tc.b.Error
	}
	return tc.b.Bool
}

func (tc *typeChecker) typeCall(exprID ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Call(exprID)

	if sym := tc.builtinCallee(data.Callee); sym != nil {
		return tc.typeBuiltinCall(exprID, sym, data)
	}

	callee := tc.typeExpr(data.Callee, types.NoTypeID)
	args := make([]types.TypeID, len(data.Args))
	for i, arg := range data.Args {
		args[i] = tc.typeExpr(arg, types.NoTypeID)
	}
	if tc.isErr(callee) {
		return tc.b.Error
	}

	info, ok := tc.types.FnInfo(callee)
	if !ok {
		diag.ReportError(tc.reporter, diag.TypeMismatchNotCallable,
			tc.builder.Exprs.Get(data.Callee).Span,
			fmt.Sprintf("expression of type %s is not callable", tc.types.String(callee)))
		return tc.b.Error
	}

	name := tc.calleeName(data.Callee)
	if len(args) != len(info.Params) {
		diag.ReportError(tc.reporter, diag.ArityMismatch,
			tc.builder.Exprs.Get(exprID).Span,
			fmt.Sprintf("%s expects %d argument(s), got %d", name, len(info.Params), len(args)))
		return info.Result
	}
	for i, at := range args {
		if tc.isErr(at) || tc.isErr(info.Params[i]) {
			continue
		}
		if at != info.Params[i] {
			diag.ReportError(tc.reporter, diag.TypeMismatchArgument,
				tc.builder.Exprs.Get(data.Args[i]).Span,
				fmt.Sprintf("argument %d to %s has type %s, expected %s",
					i+1, name, tc.types.String(at), tc.types.String(info.Params[i])))
		}
	}
	return info.Result
}

// builtinCallee returns the prelude symbol when the callee is a direct
// reference to a builtin.
func (tc *typeChecker) builtinCallee(callee ast.ExprID) *symbols.Symbol {
	if tc.builder.Exprs.Get(callee).Kind != ast.ExprIdent {
		return nil
	}
	sym := tc.symbol(tc.syms.ExprBindings[callee])
	if sym == nil || !sym.IsBuiltin() {
		return nil
	}
	return sym
}

func (tc *typeChecker) calleeName(callee ast.ExprID) string {
	if data, ok := tc.builder.Exprs.Ident(callee); ok {
		return "'" + tc.builder.Name(data.Name) + "'"
	}
	return "the callee"
}

func (tc *typeChecker) typeBuiltinCall(exprID ast.ExprID, sym *symbols.Symbol, data *ast.ExprCallData) types.TypeID {
	args := make([]types.TypeID, len(data.Args))
	for i, arg := range data.Args {
		args[i] = tc.typeExpr(arg, types.NoTypeID)
	}
	span := tc.builder.Exprs.Get(exprID).Span

	switch sym.Builtin {
	case symbols.BuiltinPrint:
		if len(args) != 1 {
			diag.ReportError(tc.reporter, diag.ArityMismatch, span,
				fmt.Sprintf("print expects 1 argument, got %d", len(args)))
			return tc.b.None
		}
		if t := args[0]; !tc.isErr(t) && !tc.printable(t) {
			diag.ReportError(tc.reporter, diag.TypeMismatchArgument,
				tc.builder.Exprs.Get(data.Args[0]).Span,
				fmt.Sprintf("cannot print a value of type %s", tc.types.String(t)))
		}
		return tc.b.None

	case symbols.BuiltinLen:
		if len(args) != 1 {
			diag.ReportError(tc.reporter, diag.ArityMismatch, span,
				fmt.Sprintf("len expects 1 argument, got %d", len(args)))
			return tc.b.Int
		}
		if t := args[0]; !tc.isErr(t) {
			kind := tc.types.Kind(t)
			if kind != types.KindList && kind != types.KindStr {
				diag.ReportError(tc.reporter, diag.TypeMismatchArgument,
					tc.builder.Exprs.Get(data.Args[0]).Span,
					fmt.Sprintf("len expects a list or str, got %s", tc.types.String(t)))
			}
		}
		return tc.b.Int

	case symbols.BuiltinRange:
		// The parser folds `for x in range(...)` headers into the for
		// statement, so any call reaching the checker is misplaced.
		diag.ReportError(tc.reporter, diag.TypeMismatchNotCallable, span,
			"range(...) may only appear as a for-loop iterable")
		return tc.b.Error

	default:
		return tc.b.Error
	}
}

func (tc *typeChecker) printable(t types.TypeID) bool {
	switch tc.types.Kind(t) {
	case types.KindInt, types.KindFloat, types.KindBool, types.KindStr, types.KindList:
		return true
	default:
		return false
	}
}

func (tc *typeChecker) typeList(exprID ast.ExprID, want types.TypeID) types.TypeID {
	data, _ := tc.builder.Exprs.List(exprID)

	if len(data.Elems) == 0 {
		if want != types.NoTypeID && tc.types.Kind(want) == types.KindList {
			return want
		}
		diag.ReportError(tc.reporter, diag.TypeMismatchListElem,
			tc.builder.Exprs.Get(exprID).Span,
			"cannot infer the element type of an empty list")
		return tc.b.Error
	}

	var elemWant types.TypeID
	if want != types.NoTypeID && tc.types.Kind(want) == types.KindList {
		elemWant = tc.types.MustLookup(want).Elem
	}

	first := tc.typeExpr(data.Elems[0], elemWant)
	for i, elem := range data.Elems[1:] {
		t := tc.typeExpr(elem, first)
		if tc.isErr(first) || tc.isErr(t) {
			continue
		}
		if t != first {
			diag.ReportError(tc.reporter, diag.TypeMismatchListElem,
				tc.builder.Exprs.Get(elem).Span,
				fmt.Sprintf("list element %d has type %s, expected %s",
					i+2, tc.types.String(t), tc.types.String(first)))
		}
	}
	if tc.isErr(first) {
		return tc.b.Error
	}
	return tc.types.RegisterList(first)
}

func (tc *typeChecker) typeIndex(exprID ast.ExprID) types.TypeID {
	data, _ := tc.builder.Exprs.Index(exprID)
	base := tc.typeExpr(data.Base, types.NoTypeID)
	index := tc.typeExpr(data.Index, types.NoTypeID)

	if !tc.isErr(index) && index != tc.b.Int {
		diag.ReportError(tc.reporter, diag.TypeMismatchIndex,
			tc.builder.Exprs.Get(data.Index).Span,
			fmt.Sprintf("list index has type %s, expected int", tc.types.String(index)))
	}
	if tc.isErr(base) {
		return tc.b.Error
	}
	bt := tc.types.MustLookup(base)
	if bt.Kind != types.KindList {
		diag.ReportError(tc.reporter, diag.TypeMismatchIndex,
			tc.builder.Exprs.Get(data.Base).Span,
			fmt.Sprintf("type %s cannot be indexed", tc.types.String(base)))
		return tc.b.Error
	}
	return bt.Elem
}
