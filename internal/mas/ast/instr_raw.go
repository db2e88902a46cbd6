package ast

// RawCommand is `cmd "s"`: emit s verbatim into the output script, after
// backslash-stripping at emission time (spec.md §4.5).
type RawCommand struct {
	Text string
	Line int
}

func (i *RawCommand) instructionNode() {}
func (i *RawCommand) InstrLine() int   { return i.Line }
