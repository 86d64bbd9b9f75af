package types

import "fmt"

// TypeID uniquely identifies a type inside the interner. Two structurally
// equal types always share one TypeID, so equality is an integer compare.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types. The set is closed: Phase A
// has no user-defined or boxed types.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindError is the sentinel type assigned to expressions that already
	// produced a diagnostic; it suppresses cascading errors upward.
	KindError
	KindNone
	KindBool
	KindInt
	KindFloat
	KindStr
	KindList
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindError:
		return "<error>"
	case KindNone:
		return "None"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindList:
		return "list"
	case KindFunc:
		return "function"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact structural descriptor. Elem is set for lists; Payload
// indexes the function info table for KindFunc.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
}

// MakeList describes list[elem].
func MakeList(elem TypeID) Type {
	return Type{Kind: KindList, Elem: elem}
}

// IsNumeric reports whether the kind is int or float.
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

// IsPrimitive reports whether the kind is a scalar value type.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindNone, KindBool, KindInt, KindFloat, KindStr:
		return true
	default:
		return false
	}
}
