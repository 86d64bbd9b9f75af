package mir

// InstrKind enumerates the closed instruction set. Every instruction
// produces at most one value.
type InstrKind uint8

const (
	InstrConst InstrKind = iota
	InstrBin
	InstrUn
	InstrCmp
	InstrLoadLocal
	InstrStoreLocal
	InstrLoadGlobal
	InstrStoreGlobal
	InstrCall
)

// Instr is one instruction; the payload matching Kind is valid. Result is
// NoValueID for stores and calls to None-returning functions.
type Instr struct {
	Kind   InstrKind
	Result ValueID

	Const       ConstInstr
	Bin         BinInstr
	Un          UnInstr
	Cmp         CmpInstr
	LoadLocal   LoadLocalInstr
	StoreLocal  StoreLocalInstr
	LoadGlobal  LoadGlobalInstr
	StoreGlobal StoreGlobalInstr
	Call        CallInstr
}

// ConstKind selects the literal payload of a constant load.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBool
	ConstStr
	ConstNone
)

type ConstInstr struct {
	Kind  ConstKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

// BinOp enumerates arithmetic binary operators.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinFloorDiv
	BinMod
)

func (op BinOp) String() string {
	switch op {
	case BinAdd:
		return "add"
	case BinSub:
		return "sub"
	case BinMul:
		return "mul"
	case BinDiv:
		return "div"
	case BinFloorDiv:
		return "floordiv"
	case BinMod:
		return "mod"
	default:
		return "bin?"
	}
}

type BinInstr struct {
	Op  BinOp
	LHS ValueID
	RHS ValueID
}

// UnOp enumerates unary operators.
type UnOp uint8

const (
	UnNeg UnOp = iota
	UnNot
)

func (op UnOp) String() string {
	if op == UnNeg {
		return "neg"
	}
	return "not"
}

type UnInstr struct {
	Op      UnOp
	Operand ValueID
}

// CmpOp enumerates comparison operators; a compare always yields bool.
type CmpOp uint8

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

func (op CmpOp) String() string {
	switch op {
	case CmpEq:
		return "eq"
	case CmpNe:
		return "ne"
	case CmpLt:
		return "lt"
	case CmpLe:
		return "le"
	case CmpGt:
		return "gt"
	default:
		return "ge"
	}
}

type CmpInstr struct {
	Op  CmpOp
	LHS ValueID
	RHS ValueID
}

type LoadLocalInstr struct {
	Local LocalID
}

type StoreLocalInstr struct {
	Local LocalID
	Value ValueID
}

type LoadGlobalInstr struct {
	Global GlobalID
}

type StoreGlobalInstr struct {
	Global GlobalID
	Value ValueID
}

// CalleeKind distinguishes module functions from runtime ABI symbols.
type CalleeKind uint8

const (
	// CalleeFunc targets a function lowered from this module.
	CalleeFunc CalleeKind = iota
	// CalleeRuntime targets a runtime symbol referenced by name only.
	CalleeRuntime
)

type Callee struct {
	Kind CalleeKind
	Func FuncID
	Name string
}

type CallInstr struct {
	Callee Callee
	Args   []ValueID
}
