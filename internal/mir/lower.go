package mir

import (
	"fmt"

	"pyrsc/internal/ast"
	"pyrsc/internal/sema"
	"pyrsc/internal/symbols"
	"pyrsc/internal/types"
)

// Lower converts a fully checked module into MIR. It runs only when the
// pipeline produced zero diagnostics and never fails on well-typed input;
// a returned error means a checker/lowering mismatch, which is an internal
// bug, not a user diagnostic.
func Lower(builder *ast.Builder, fileID ast.FileID, syms *symbols.Result, checked *sema.Result) (mod *Module, err error) {
	l := &lowerer{
		builder: builder,
		syms:    syms,
		checked: checked,
		types:   checked.Types,
		b:       checked.Types.Builtins(),
		mod: &Module{
			FuncBySym:   make(map[symbols.SymbolID]FuncID),
			GlobalBySym: make(map[symbols.SymbolID]GlobalID),
			Entry:       NoFuncID,
		},
	}
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(internalError)
			if !ok {
				panic(r)
			}
			mod = nil
			err = ie.err
		}
	}()

	file := builder.Files.Get(fileID)
	l.declareGlobals()
	l.declareFuncs(file)
	for _, itemID := range file.Items {
		l.lowerFuncBody(itemID)
	}
	l.lowerEntry(file)
	return l.mod, nil
}

type internalError struct{ err error }

type loopFrame struct {
	cont BlockID // target of continue: while header or for latch
	exit BlockID // target of break
}

// slotRef is either a local or a global storage slot.
type slotRef struct {
	global bool
	local  LocalID
	gid    GlobalID
}

type lowerer struct {
	builder *ast.Builder
	syms    *symbols.Result
	checked *sema.Result
	types   *types.Interner
	b       types.Builtins
	mod     *Module

	fn     *Func
	cur    BlockID
	locals map[symbols.SymbolID]LocalID
	loops  []loopFrame
}

func (l *lowerer) failf(format string, args ...any) {
	panic(internalError{fmt.Errorf("mir: "+format, args...)})
}

// declareGlobals creates one Global per module-scope variable binding.
func (l *lowerer) declareGlobals() {
	tbl := l.syms.Table
	scope := tbl.Scopes.Get(l.syms.ModuleScope)
	for _, symID := range scope.Symbols {
		sym := tbl.Symbols.Get(symID)
		if sym.Kind != symbols.SymbolGlobal {
			continue
		}
		id := GlobalID(len(l.mod.Globals))
		l.mod.Globals = append(l.mod.Globals, Global{
			Sym:  symID,
			Name: tbl.Strings.MustLookup(sym.Name),
			Type: sym.Type,
			Span: sym.Span,
		})
		l.mod.GlobalBySym[symID] = id
	}
}

// declareFuncs allocates a Func per def, in source order, so calls can
// reference functions regardless of definition order.
func (l *lowerer) declareFuncs(file *ast.File) {
	for _, itemID := range file.Items {
		item := l.builder.Items.Get(itemID)
		if item.Kind != ast.ItemFunc {
			continue
		}
		symID := l.syms.FuncSymbols[itemID]
		info, ok := l.types.FnInfo(l.checked.FuncTypes[itemID])
		if !ok {
			l.failf("def '%s' has no function type", l.builder.Name(item.Fn.Name))
		}
		id := FuncID(len(l.mod.Funcs))
		l.mod.Funcs = append(l.mod.Funcs, &Func{
			ID:     id,
			Sym:    symID,
			Name:   l.builder.Name(item.Fn.Name),
			Span:   item.Span,
			Params: len(item.Fn.Params),
			Result: info.Result,
			Entry:  NoBlockID,
		})
		l.mod.FuncBySym[symID] = id
	}
}

func (l *lowerer) lowerFuncBody(itemID ast.ItemID) {
	item := l.builder.Items.Get(itemID)
	if item.Kind != ast.ItemFunc {
		return
	}
	fn := l.mod.Funcs[l.mod.FuncBySym[l.syms.FuncSymbols[itemID]]]
	l.beginFunc(fn)

	for _, paramID := range item.Fn.Params {
		param := l.builder.Items.Param(paramID)
		symID := l.syms.ParamSymbols[paramID]
		sym := l.syms.Table.Symbols.Get(symID)
		local := fn.NewLocal(Local{
			Sym:  symID,
			Name: l.builder.Name(param.Name),
			Type: sym.Type,
			Span: param.Span,
		})
		l.locals[symID] = local
	}

	l.lowerStmts(item.Fn.Body)
	l.finishFunc(fn)
}

// lowerEntry builds the synthetic __main__ function from the module-level
// statement list. Module variables are globals; __main__ is their only
// writer.
func (l *lowerer) lowerEntry(file *ast.File) {
	id := FuncID(len(l.mod.Funcs))
	fn := &Func{
		ID:     id,
		Sym:    symbols.NoSymbolID,
		Name:   EntryName,
		Span:   file.Span,
		Result: l.b.None,
		Entry:  NoBlockID,
	}
	l.mod.Funcs = append(l.mod.Funcs, fn)
	l.mod.Entry = id

	l.beginFunc(fn)
	l.lowerStmts(file.Body)
	l.finishFunc(fn)
}

func (l *lowerer) beginFunc(fn *Func) {
	l.fn = fn
	l.locals = make(map[symbols.SymbolID]LocalID)
	l.loops = nil
	fn.Entry = fn.NewBlock()
	l.cur = fn.Entry
}

// finishFunc seals the fall-through exit. A non-None function arriving
// here unterminated means the checker's return-path analysis and lowering
// disagree.
func (l *lowerer) finishFunc(fn *Func) {
	if !l.block().Terminated() {
		if fn.Result != l.b.None {
			l.failf("function '%s' falls off the end without a return", fn.Name)
		}
		l.terminate(Ret(NoValueID))
	}
	l.fn = nil
}

func (l *lowerer) block() *Block {
	return l.fn.Block(l.cur)
}

func (l *lowerer) emit(in Instr) {
	blk := l.block()
	if blk.Terminated() {
		l.failf("emit into terminated block bb%d of '%s'", l.cur, l.fn.Name)
	}
	blk.Instrs = append(blk.Instrs, in)
}

func (l *lowerer) terminate(t Terminator) {
	blk := l.block()
	if blk.Terminated() {
		l.failf("second terminator for bb%d of '%s'", l.cur, l.fn.Name)
	}
	blk.Term = t
}

// slotFor resolves the storage slot of a variable binding, creating the
// local slot on its declaring store.
func (l *lowerer) slotFor(symID symbols.SymbolID) slotRef {
	sym := l.syms.Table.Symbols.Get(symID)
	if sym == nil {
		l.failf("unresolved binding in '%s'", l.fn.Name)
	}
	if sym.Kind == symbols.SymbolGlobal {
		gid, ok := l.mod.GlobalBySym[symID]
		if !ok {
			l.failf("global '%s' was not declared", l.syms.Table.SymbolName(symID))
		}
		return slotRef{global: true, gid: gid}
	}
	if local, ok := l.locals[symID]; ok {
		return slotRef{local: local}
	}
	local := l.fn.NewLocal(Local{
		Sym:  symID,
		Name: l.syms.Table.SymbolName(symID),
		Type: sym.Type,
		Span: sym.Span,
	})
	l.locals[symID] = local
	return slotRef{local: local}
}

func (l *lowerer) loadSlot(slot slotRef, t types.TypeID) ValueID {
	result := l.fn.NewValue(t)
	if slot.global {
		l.emit(Instr{Kind: InstrLoadGlobal, Result: result, LoadGlobal: LoadGlobalInstr{Global: slot.gid}})
	} else {
		l.emit(Instr{Kind: InstrLoadLocal, Result: result, LoadLocal: LoadLocalInstr{Local: slot.local}})
	}
	return result
}

func (l *lowerer) storeSlot(slot slotRef, value ValueID) {
	if slot.global {
		l.emit(Instr{Kind: InstrStoreGlobal, Result: NoValueID, StoreGlobal: StoreGlobalInstr{Global: slot.gid, Value: value}})
	} else {
		l.emit(Instr{Kind: InstrStoreLocal, Result: NoValueID, StoreLocal: StoreLocalInstr{Local: slot.local, Value: value}})
	}
}

// newTemp creates a compiler temporary slot, used by short-circuit
// lowering.
func (l *lowerer) newTemp(name string, t types.TypeID) LocalID {
	return l.fn.NewLocal(Local{Sym: symbols.NoSymbolID, Name: name, Type: t})
}

func (l *lowerer) exprType(exprID ast.ExprID) types.TypeID {
	t, ok := l.checked.ExprTypes[exprID]
	if !ok {
		l.failf("expression %d has no type", exprID)
	}
	return t
}
