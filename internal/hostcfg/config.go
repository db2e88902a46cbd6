// Package hostcfg groups the process-wide constants describing the host
// runtime's scoreboard namespace into one configuration record, instead of
// scattering them as free functions or package-level globals (spec.md §9,
// "Global state"). A Config is immutable after construction and safe to
// share across the parser, dispatch generator, memory module, and code
// generator without synchronisation.
package hostcfg

import (
	"fmt"

	"github.com/pkg/errors"
)

// Prefix is the scoreboard namespace every mcvm-managed scoreboard lives
// under (spec.md §6, "MCVM_Memory"). It is a compile-time constant of the
// host convention, not something a single compilation can override, so it
// stays a package const rather than a Config field.
const Prefix = "MCVM_Memory"

// Holder is the scoreboard-player name every mcvm scoreboard value is
// stored against. The host runtime has no notion of global variables, only
// per-player scores, so mcvm follows original_source/src/bootstrap/mod.rs's
// convention of using the bare namespace prefix itself as that player name
// (spec.md §8 scenario 2: "scoreboard players set MCVM_Memory R0 42").
const Holder = Prefix

// Reserved scoreboard names, relative to Prefix.
const (
	ScoreboardPointer = Prefix + "_Pointer" // memory index for load/store/swap
	ScoreboardOffset  = Prefix + "_Offset"  // frame base pointer
	ScoreboardPc      = Prefix + "_Pc"      // program counter / next block id
)

// Dispatcher entry-point names (spec.md §6).
const (
	FuncLoad  = "load"
	FuncStore = "store"
	FuncSwap  = "swap"
	FuncExec  = "exec"
	FuncInit  = "init"
)

// nonexistenceBlock is the literal block mcvm emits for exec index 0
// (spec.md §4.3; supplemented from original_source/src/mas/generate/ctx.rs,
// which dispatches this index to a function named "{PREFIX}_nonexistence_fn"
// rather than leaving it abstractly "mapped to nonexistence").
const nonexistenceBlock = Prefix + "_nonexistence"

// Config bundles the memory size and the derived register/memory-cell
// scoreboard names used throughout the generator. Construct it with New,
// which validates the power-of-two precondition from spec.md §6.
type Config struct {
	// MemSize is the number of addressable memory cells (N in spec.md §3).
	// It must be a power of two (§6); New rejects anything else.
	MemSize int
}

// New validates memSize and returns a Config. memSize must be a power of
// two (spec.md §6, §7 "Usage" errors); memSize == 0 is accepted (an empty
// memory, per the dispatch-tree generator's size == 0 case in spec.md §4.2).
func New(memSize int) (Config, error) {
	if memSize < 0 || (memSize&(memSize-1)) != 0 {
		return Config{}, errors.Errorf("memory size must be a power of 2, got %d", memSize)
	}
	return Config{MemSize: memSize}, nil
}

// Register returns the scoreboard objective name for general-purpose
// register r (0..3), per spec.md §3 "Registers" and the `{ns} Rd` lowering
// convention in §4.4 (the bare register name, not namespace-prefixed —
// namespacing comes from Holder, the player the objective is read against).
func (c Config) Register(r int) string {
	return fmt.Sprintf("R%d", r)
}

// MemCell returns the scoreboard name for memory cell n (0 <= n < MemSize).
func (c Config) MemCell(n int) string {
	return fmt.Sprintf("%s_Mem%d", Prefix, n)
}

// NonexistenceBlock returns the name of the sentinel block that the exec
// dispatcher routes Pc == 0 to.
func (c Config) NonexistenceBlock() string {
	return nonexistenceBlock
}

// AllScoreboards returns every scoreboard name that init.mcfunction must
// declare: the four registers, Pointer, Offset, Pc, and all memory cells
// (spec.md §6).
func (c Config) AllScoreboards() []string {
	boards := make([]string, 0, c.MemSize+7)
	boards = append(boards, ScoreboardPointer, ScoreboardOffset, ScoreboardPc)
	for r := 0; r < 4; r++ {
		boards = append(boards, c.Register(r))
	}
	for n := 0; n < c.MemSize; n++ {
		boards = append(boards, c.MemCell(n))
	}
	return boards
}
