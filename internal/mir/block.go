package mir

// Block is one basic block: straight-line instructions closed by exactly
// one terminator. Instrs never contains anything past the terminator.
type Block struct {
	ID     BlockID
	Instrs []Instr
	Term   Terminator
}

// Terminated reports whether the block already carries its terminator.
// A nil block counts as terminated so lowering can treat pruned paths
// uniformly.
func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}
