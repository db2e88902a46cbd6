package ast

// Move is `mov Rd Rs`: copy register Src into Dst.
type Move struct {
	Dst, Src Register
	Line     int
}

func (i *Move) instructionNode() {}
func (i *Move) InstrLine() int   { return i.Line }

// SetImmediate is `set Rd k`: load immediate k into Dst.
type SetImmediate struct {
	Dst   Register
	Value int32
	Line  int
}

func (i *SetImmediate) instructionNode() {}
func (i *SetImmediate) InstrLine() int   { return i.Line }

// Load is `load a`: R0 <- MEM[a + Offset].
type Load struct {
	Addr int32
	Line int
}

func (i *Load) instructionNode() {}
func (i *Load) InstrLine() int   { return i.Line }

// Store is `store a`: MEM[a + Offset] <- R0.
type Store struct {
	Addr int32
	Line int
}

func (i *Store) instructionNode() {}
func (i *Store) InstrLine() int   { return i.Line }

// Swap is `swap a`: MEM[a + Offset] <-> R0 (supplemented from
// original_source/src/bootstrap/mod.rs, which generates a swap dispatch
// tree alongside load/store; see SPEC_FULL.md §3.1).
type Swap struct {
	Addr int32
	Line int
}

func (i *Swap) instructionNode() {}
func (i *Swap) InstrLine() int   { return i.Line }
