package ast

// Calculate is `calc OP`: R0 <- R0 OP R1 ("<"/">" are min/max).
type Calculate struct {
	Op   CalcOp
	Line int
}

func (i *Calculate) instructionNode() {}
func (i *Calculate) InstrLine() int   { return i.Line }
