package ast

import (
	"pyrsc/internal/source"
)

// ExprKind enumerates expression categories.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLit
	ExprUnary
	ExprBinary
	ExprBoolOp
	ExprCall
	ExprList
	ExprIndex
)

// ExprLitKind distinguishes literal payloads.
type ExprLitKind uint8

const (
	LitInt ExprLitKind = iota
	LitFloat
	LitString
	LitTrue
	LitFalse
	LitNone
)

// UnaryOp enumerates unary operators.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota // -x
	UnaryNot                // not x
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "not"
	}
	return "?"
}

// BinaryOp enumerates arithmetic and comparison operators.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota // +
	BinSub                 // -
	BinMul                 // *
	BinDiv                 // /
	BinFloorDiv            // //
	BinMod                 // %
	BinEq                  // ==
	BinNe                  // !=
	BinLt                  // <
	BinLe                  // <=
	BinGt                  // >
	BinGe                  // >=
)

func (op BinaryOp) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinFloorDiv:
		return "//"
	case BinMod:
		return "%"
	case BinEq:
		return "=="
	case BinNe:
		return "!="
	case BinLt:
		return "<"
	case BinLe:
		return "<="
	case BinGt:
		return ">"
	case BinGe:
		return ">="
	}
	return "?"
}

// IsComparison reports whether the operator yields a bool.
func (op BinaryOp) IsComparison() bool {
	return op >= BinEq
}

// BoolOp enumerates the short-circuit boolean operators.
type BoolOp uint8

const (
	BoolAnd BoolOp = iota
	BoolOr
)

func (op BoolOp) String() string {
	if op == BoolAnd {
		return "and"
	}
	return "or"
}

// Expr is an expression node; the payload lives in the per-kind arena.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprLitData struct {
	Kind ExprLitKind
	// Text is the literal's source text for numbers and the decoded value
	// for strings; empty for True/False/None.
	Text string
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprBoolOpData struct {
	Op    BoolOp
	Left  ExprID
	Right ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprListData struct {
	Elems []ExprID
}

type ExprIndexData struct {
	Base  ExprID
	Index ExprID
}
