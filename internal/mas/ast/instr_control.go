package ast

// Branch is `b L`: unconditional branch to label L.
type Branch struct {
	Label string
	Line  int
}

func (i *Branch) instructionNode() {}
func (i *Branch) InstrLine() int   { return i.Line }

// BranchIf is `bi L`: branch to L if R0 != 0.
type BranchIf struct {
	Label string
	Line  int
}

func (i *BranchIf) instructionNode() {}
func (i *BranchIf) InstrLine() int   { return i.Line }

// BranchIfNot is `bn L`: branch to L if R0 == 0.
type BranchIfNot struct {
	Label string
	Line  int
}

func (i *BranchIfNot) instructionNode() {}
func (i *BranchIfNot) InstrLine() int   { return i.Line }

// Call is `call k L`: call L with frame-offset shift k, saving a return
// continuation (spec.md §4.4).
type Call struct {
	OffsetShift int32
	Label       string
	Line        int
}

func (i *Call) instructionNode() {}
func (i *Call) InstrLine() int   { return i.Line }

// Return is `ret`: return to the saved continuation.
type Return struct {
	Line int
}

func (i *Return) instructionNode() {}
func (i *Return) InstrLine() int   { return i.Line }

// Yield is `yield`: cooperative suspension until the scheduler's next tick.
type Yield struct {
	Line int
}

func (i *Yield) instructionNode() {}
func (i *Yield) InstrLine() int   { return i.Line }
