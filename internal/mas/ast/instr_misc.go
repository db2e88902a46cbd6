package ast

// Random is `rand Rd lo hi`: Dst <- uniform random in [lo, hi]. Takes an
// explicit destination register per the current-revision semantics
// (spec.md §9, Open Questions).
type Random struct {
	Dst    Register
	Lo, Hi int32
	Line   int
}

func (i *Random) instructionNode() {}
func (i *Random) InstrLine() int   { return i.Line }

// Log is `log "s"`: emit a host print command.
type Log struct {
	Text string
	Line int
}

func (i *Log) instructionNode() {}
func (i *Log) InstrLine() int   { return i.Line }

// Debug is `debug "s"`: like Log, but prepends the source line (spec.md §3,
// §8 "Line-number fidelity").
type Debug struct {
	Text string
	Line int
}

func (i *Debug) instructionNode() {}
func (i *Debug) InstrLine() int   { return i.Line }
