// Package dispatch generates the binary-search dispatch trees that give the
// host runtime's flat, non-computed "call script by name" primitive a way to
// switch on an integer: load/store/swap/exec dispatch, the dispatch-tree
// generator is component A (spec.md §4.2). Grounded on
// original_source/src/bootstrap/bin_search.rs, the later of the original's
// two bin_search implementations (the one that takes an explicit pointer
// scoreboard rather than assuming a fixed one).
package dispatch

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/fancyflame/mcvm/internal/hostcfg"
	"github.com/fancyflame/mcvm/internal/mcfs"
)

// ActionFunc returns the single, newline-free host command to run when index
// i is selected. Generate asserts the no-newline precondition (spec.md §4.2).
type ActionFunc func(i int) string

// Generate emits a dispatch tree under dir: an entry script at
// "{dir}/{name}.mcfunction" and, when size > 1, a sibling directory
// "{dir}/{name}/" of search-point scripts. Entering the entry script with
// pointerScoreboard holding value p runs exactly action(p) for 0 <= p <
// size, and a fatal out-of-range message otherwise.
//
// size must be a power of two (the dispatch tree's structural precondition);
// New in package hostcfg is the usual place this is validated before
// Generate is ever called.
func Generate(w mcfs.Writer, dir, name, pointerScoreboard string, size int, action ActionFunc) error {
	searchDir := path.Join(dir, name)
	if err := w.RemoveAll(searchDir); err != nil {
		return errors.Wrapf(err, "clearing dispatch directory %s", searchDir)
	}
	if size > 1 {
		if err := w.MkdirAll(searchDir); err != nil {
			return errors.Wrapf(err, "creating dispatch directory %s", searchDir)
		}
	}

	wrapped := func(i int) string {
		s := action(i)
		if strings.ContainsRune(s, '\n') {
			panic(fmt.Sprintf("dispatch action(%d) produced a multi-line command", i))
		}
		return s
	}

	for nth := 0; nth < size; nth++ {
		if err := writeSearchPoint(w, searchDir, name, pointerScoreboard, nth, wrapped); err != nil {
			return err
		}
	}

	entry := entryScript(name, pointerScoreboard, size, wrapped)
	entryPath := dir + "/" + name + ".mcfunction"
	if err := w.WriteFile(entryPath, []byte(entry)); err != nil {
		return errors.Wrapf(err, "writing dispatch entry %s", entryPath)
	}
	return nil
}

const outOfRangeMessage = "say mcvm fatal error: out of memory, please increase your memory size at compile time"

func entryScript(name, pointerScoreboard string, size int, action func(int) string) string {
	if size == 0 {
		return outOfRangeMessage
	}

	var entryCmd string
	if size == 1 {
		entryCmd = action(0)
	} else {
		entryCmd = "function " + searchPointFnName(name, size>>1)
	}

	upperBound := size - 1
	return fmt.Sprintf(
		"execute if score %s %s matches %d.. run %s\nexecute if score %s %s matches ..%d run %s",
		hostcfg.Holder, pointerScoreboard, size, outOfRangeMessage,
		hostcfg.Holder, pointerScoreboard, upperBound, entryCmd,
	)
}

// searchPointFnName is the mcfunction reference for search-point nth, rooted
// at name's sibling directory (spec.md §4.2, "Script filenames follow
// <entry_name>/SearchPoint_N{k}.mcfunction").
func searchPointFnName(name string, nth int) string {
	return fmt.Sprintf("%s/SearchPoint_N%d", name, nth)
}

// writeSearchPoint emits the script for search point nth, or does nothing
// for nth == 0 (index 0 has no search-point script of its own; it is
// dispatched as the even sibling by SearchPoint_N1, or by the entry itself
// when size == 1).
func writeSearchPoint(w mcfs.Writer, searchDir, name, pointerScoreboard string, nth int, action func(int) string) error {
	if nth == 0 {
		return nil
	}

	zeros := trailingZeros(nth)

	var content string
	if zeros == 0 {
		// nth has the form ...xxx1: an odd leaf. It dispatches directly to
		// its own action and to its even sibling's (nth-1).
		lower := nth &^ 1
		content = fmt.Sprintf(
			"execute if score %s %s matches %d run %s\nexecute if score %s %s matches %d run %s",
			hostcfg.Holder, pointerScoreboard, nth, action(nth),
			hostcfg.Holder, pointerScoreboard, lower, action(lower),
		)
	} else {
		// nth has the form ...xx10..0: an interior node. Bisect into higher
		// and lower children (spec.md §4.2).
		higher := nth | (1 << (zeros - 1))
		lower := higher &^ (1 << zeros)
		upperBound := nth - 1
		content = fmt.Sprintf(
			"execute if score %s %s matches %d.. run function %s\nexecute if score %s %s matches ..%d run function %s",
			hostcfg.Holder, pointerScoreboard, nth, searchPointFnName(name, higher),
			hostcfg.Holder, pointerScoreboard, upperBound, searchPointFnName(name, lower),
		)
	}

	fnPath := searchDir + "/SearchPoint_N" + strconv.Itoa(nth) + ".mcfunction"
	if err := w.WriteFile(fnPath, []byte(content)); err != nil {
		return errors.Wrapf(err, "writing search point %d", nth)
	}
	return nil
}

func trailingZeros(n int) int {
	if n == 0 {
		return 0
	}
	z := 0
	for n&1 == 0 {
		n >>= 1
		z++
	}
	return z
}

