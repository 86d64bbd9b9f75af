package ast

import (
	"pyrsc/internal/source"
)

// StmtKind enumerates statement categories of the strict subset.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtAssign
	StmtIndexAssign
	StmtExpr
	StmtReturn
	StmtIf
	StmtWhile
	StmtFor
	StmtPass
	StmtBreak
	StmtContinue
)

// Stmt is a statement node; the payload lives in the per-kind arena.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// StmtAssignData covers both `x: T = e` and plain `x = e`. The annotated
// form (Ann valid) declares a new binding; the plain form re-assigns an
// existing one.
type StmtAssignData struct {
	Name     source.StringID
	NameSpan source.Span
	Ann      TypeExprID
	Value    ExprID
}

// StmtIndexAssignData covers `base[index] = value`.
type StmtIndexAssignData struct {
	Base  ExprID
	Index ExprID
	Value ExprID
}

// StmtExprData is a bare expression evaluated for effect.
type StmtExprData struct {
	Value ExprID
}

// StmtReturnData carries the optional return value.
type StmtReturnData struct {
	Value ExprID // NoExprID for a bare `return`
}

// StmtIfData represents if/elif/else; elif chains are desugared by the
// parser into a nested if inside Else.
type StmtIfData struct {
	Cond ExprID
	Then []StmtID
	Else []StmtID // empty when there is no else branch
}

// StmtWhileData is a while loop.
type StmtWhileData struct {
	Cond ExprID
	Body []StmtID
}

// StmtForData is a counted `for var in range(args):` loop. Args holds the
// 1..3 range arguments as written.
type StmtForData struct {
	Var     source.StringID
	VarSpan source.Span
	Args    []ExprID
	Body    []StmtID
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena        *Arena[Stmt]
	Assigns      *Arena[StmtAssignData]
	IndexAssigns *Arena[StmtIndexAssignData]
	Exprs        *Arena[StmtExprData]
	Returns      *Arena[StmtReturnData]
	Ifs          *Arena[StmtIfData]
	Whiles       *Arena[StmtWhileData]
	Fors         *Arena[StmtForData]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena:        NewArena[Stmt](capHint),
		Assigns:      NewArena[StmtAssignData](capHint),
		IndexAssigns: NewArena[StmtIndexAssignData](capHint / 4),
		Exprs:        NewArena[StmtExprData](capHint / 2),
		Returns:      NewArena[StmtReturnData](capHint / 2),
		Ifs:          NewArena[StmtIfData](capHint / 2),
		Whiles:       NewArena[StmtWhileData](capHint / 4),
		Fors:         NewArena[StmtForData](capHint / 4),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: payload}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewAssign(span source.Span, data StmtAssignData) StmtID {
	return s.new(StmtAssign, span, PayloadID(s.Assigns.Allocate(data)))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtAssign {
		return nil, false
	}
	return s.Assigns.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewIndexAssign(span source.Span, data StmtIndexAssignData) StmtID {
	return s.new(StmtIndexAssign, span, PayloadID(s.IndexAssigns.Allocate(data)))
}

func (s *Stmts) IndexAssign(id StmtID) (*StmtIndexAssignData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtIndexAssign {
		return nil, false
	}
	return s.IndexAssigns.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, value ExprID) StmtID {
	return s.new(StmtExpr, span, PayloadID(s.Exprs.Allocate(StmtExprData{Value: value})))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, PayloadID(s.Returns.Allocate(StmtReturnData{Value: value})))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewIf(span source.Span, data StmtIfData) StmtID {
	return s.new(StmtIf, span, PayloadID(s.Ifs.Allocate(data)))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewWhile(span source.Span, data StmtWhileData) StmtID {
	return s.new(StmtWhile, span, PayloadID(s.Whiles.Allocate(data)))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.new(StmtFor, span, PayloadID(s.Fors.Allocate(data)))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewPass(span source.Span) StmtID {
	return s.new(StmtPass, span, NoPayloadID)
}

func (s *Stmts) NewBreak(span source.Span) StmtID {
	return s.new(StmtBreak, span, NoPayloadID)
}

func (s *Stmts) NewContinue(span source.Span) StmtID {
	return s.new(StmtContinue, span, NoPayloadID)
}
