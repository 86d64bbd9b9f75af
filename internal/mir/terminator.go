package mir

// TermKind enumerates block terminators.
type TermKind uint8

const (
	TermNone TermKind = iota
	TermRet
	TermBr
	TermCondBr
)

type Terminator struct {
	Kind TermKind

	Ret    RetTerm
	Br     BrTerm
	CondBr CondBrTerm
}

type RetTerm struct {
	HasValue bool
	Value    ValueID
}

type BrTerm struct {
	Target BlockID
}

type CondBrTerm struct {
	Cond ValueID
	Then BlockID
	Else BlockID
}

// Ret builds a return terminator; pass NoValueID for a bare return.
func Ret(value ValueID) Terminator {
	return Terminator{Kind: TermRet, Ret: RetTerm{HasValue: value != NoValueID, Value: value}}
}

// Br builds an unconditional branch.
func Br(target BlockID) Terminator {
	return Terminator{Kind: TermBr, Br: BrTerm{Target: target}}
}

// CondBr builds a conditional branch.
func CondBr(cond ValueID, then, els BlockID) Terminator {
	return Terminator{Kind: TermCondBr, CondBr: CondBrTerm{Cond: cond, Then: then, Else: els}}
}
