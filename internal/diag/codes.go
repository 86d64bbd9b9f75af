package diag

import (
	"fmt"
)

// Code identifies a concrete diagnostic. Codes are grouped into bands of a
// thousand; each band maps to one user-facing kind (see Kind).
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar        Code = 1001
	LexBadNumber          Code = 1002
	LexUnterminatedString Code = 1003
	LexInconsistentIndent Code = 1004

	// Syntactic
	SynUnexpectedToken    Code = 2001
	SynExpectedIndent     Code = 2002
	SynExpectedInit       Code = 2003
	SynBreakOutsideLoop   Code = 2004
	SynNestedDef          Code = 2005
	SynBadForIterable     Code = 2006

	// Name resolution
	NameUndefined    Code = 3001
	NameUseBeforeDef Code = 3002
	NameWriteToOuter Code = 3003
	NameRedeclared   Code = 3004

	// Type annotation syntax
	TypeSyntaxUnknownName Code = 4001
	TypeSyntaxBadArity    Code = 4002
	TypeSyntaxBadForm     Code = 4003

	// Type mismatches
	TypeMismatchOperands    Code = 5001
	TypeMismatchCondition   Code = 5002
	TypeMismatchArgument    Code = 5003
	TypeMismatchReturn      Code = 5004
	TypeMismatchAssign      Code = 5005
	TypeMismatchIndex       Code = 5006
	TypeMismatchListElem    Code = 5007
	TypeMismatchNotCallable Code = 5008

	// Call arity
	ArityMismatch Code = 6001

	// Missing annotations
	MissingVarAnnotation    Code = 7001
	MissingParamAnnotation  Code = 7002
	MissingReturnAnnotation Code = 7003

	// Return-path analysis
	UnreachableReturn Code = 8001

	// Driver I/O
	IOLoadFileError Code = 9001
)

// Kind returns the user-facing diagnostic kind for the code's band.
func (c Code) Kind() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return "LexError"
	case ic >= 2000 && ic < 3000:
		return "SyntaxError"
	case ic >= 3000 && ic < 4000:
		return "NameError"
	case ic >= 4000 && ic < 5000:
		return "TypeSyntaxError"
	case ic >= 5000 && ic < 6000:
		return "TypeMismatchError"
	case ic >= 6000 && ic < 7000:
		return "ArityError"
	case ic >= 7000 && ic < 8000:
		return "MissingAnnotationError"
	case ic >= 8000 && ic < 9000:
		return "UnreachableReturnError"
	case ic >= 9000 && ic < 10000:
		return "IOError"
	}
	return "Error"
}

// ID renders the stable short identifier used in output, e.g. "TYP5001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("NAM%04d", ic)
	case ic >= 4000 && ic < 6000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("ARG%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("ANN%04d", ic)
	case ic >= 8000 && ic < 9000:
		return fmt.Sprintf("RET%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("IOE%04d", ic)
	}
	return "E0000"
}

func (c Code) String() string {
	return fmt.Sprintf("[%s] %s", c.ID(), c.Kind())
}
