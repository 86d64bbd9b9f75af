package types

import (
	"pyrsc/internal/ast"
)

// BinaryResult applies the strict-mode operator table. The allowed pairs
// are exactly:
//
//	int  (+ - * // %) int   -> int
//	float (+ - * /)  float  -> float
//	str  +           str    -> str
//	== != on equal primitive types      -> bool
//	< <= > >= on int/int, float/float, str/str -> bool
//
// There is no implicit widening: int+float is a mismatch. Lists and
// functions support no operators.
func (in *Interner) BinaryResult(op ast.BinaryOp, left, right TypeID) (TypeID, bool) {
	lk := in.Kind(left)
	rk := in.Kind(right)

	if op.IsComparison() {
		return in.comparisonResult(op, lk, rk)
	}

	if left != right {
		return in.builtins.Error, false
	}

	switch lk {
	case KindInt:
		switch op {
		case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinFloorDiv, ast.BinMod:
			return in.builtins.Int, true
		}
	case KindFloat:
		switch op {
		case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv:
			return in.builtins.Float, true
		}
	case KindStr:
		if op == ast.BinAdd {
			return in.builtins.Str, true
		}
	}
	return in.builtins.Error, false
}

func (in *Interner) comparisonResult(op ast.BinaryOp, lk, rk Kind) (TypeID, bool) {
	if lk != rk {
		return in.builtins.Error, false
	}
	switch op {
	case ast.BinEq, ast.BinNe:
		if lk.IsPrimitive() {
			return in.builtins.Bool, true
		}
	case ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		if lk == KindInt || lk == KindFloat || lk == KindStr {
			return in.builtins.Bool, true
		}
	}
	return in.builtins.Error, false
}

// UnaryResult types `-x` and `not x`.
func (in *Interner) UnaryResult(op ast.UnaryOp, operand TypeID) (TypeID, bool) {
	k := in.Kind(operand)
	switch op {
	case ast.UnaryNeg:
		if k == KindInt {
			return in.builtins.Int, true
		}
		if k == KindFloat {
			return in.builtins.Float, true
		}
	case ast.UnaryNot:
		if k == KindBool {
			return in.builtins.Bool, true
		}
	}
	return in.builtins.Error, false
}
