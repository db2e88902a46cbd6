package codegen

import (
	"github.com/pkg/errors"

	"github.com/fancyflame/mcvm/internal/dispatch"
	"github.com/fancyflame/mcvm/internal/hostcfg"
	"github.com/fancyflame/mcvm/internal/mcfs"
)

// Flush (1) generates the exec dispatcher over every inserted block plus
// the nonexistence sentinel, and (2) writes every block's content buffer to
// "{dir}/{block.FnName}.mcfunction" (spec.md §4.3, "flush(dir)").
//
// The exec dispatcher's size is len(Blocks())+1 rounded up to the next
// power of two (spec.md §8, "Block-ID denseness"): the dispatch-tree
// bisection in package dispatch only covers every real index when the
// total span is a power of two, so indices beyond the real block count up
// to that rounded size are padding and are mapped to nonexistence exactly
// like index 0.
func (c *Context) Flush(w mcfs.Writer, dir string) error {
	blocks := c.Blocks()
	k := len(blocks)
	size := nextPowerOfTwo(k + 1)

	action := func(i int) string {
		if i == 0 || i > k {
			return "function " + c.cfg.NonexistenceBlock()
		}
		return "function " + blocks[i-1].FnName
	}

	if err := dispatch.Generate(w, dir, hostcfg.FuncExec, hostcfg.ScoreboardPc, size, action); err != nil {
		return errors.Wrap(err, "generating exec dispatch")
	}

	nonexistencePath := dir + "/" + c.cfg.NonexistenceBlock() + ".mcfunction"
	if err := w.WriteFile(nonexistencePath, []byte("say mcvm fatal error: jumped to a nonexistent block")); err != nil {
		return errors.Wrap(err, "writing nonexistence block")
	}

	for _, b := range blocks {
		path := dir + "/" + b.FnName + ".mcfunction"
		if err := w.WriteFile(path, []byte(b.Content())); err != nil {
			return errors.Wrapf(err, "writing block %s", b.FnName)
		}
	}
	return nil
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
