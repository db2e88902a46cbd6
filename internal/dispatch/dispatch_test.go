package dispatch_test

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/fancyflame/mcvm/internal/dispatch"
	"github.com/fancyflame/mcvm/internal/mcfs"
)

// simulate interprets the generated dispatch tree for a single pointer value
// p by walking the written scripts exactly as the host runtime would: start
// at the entry, follow whichever "run ..." clause's matches range contains
// p, and keep following "function X" references until a non-function action
// fires. It returns the index encoded in the selected "action:N" marker, or
// -1 if the fatal out-of-range message fired (or no line matched).
func simulate(t *testing.T, w *mcfs.MemWriter, dir, name string, p int) int {
	t.Helper()
	script, ok := w.Get(dir + "/" + name + ".mcfunction")
	if !ok {
		t.Fatalf("missing entry script %s", name)
	}
	for {
		next, isFunction, matched := step(t, script, p)
		if !matched {
			return -1
		}
		if !isFunction {
			idx, err := strconv.Atoi(strings.TrimPrefix(next, "action:"))
			if err != nil {
				t.Fatalf("unparseable action marker %q", next)
			}
			return idx
		}
		var ok2 bool
		script, ok2 = w.Get(dir + "/" + next + ".mcfunction")
		if !ok2 {
			t.Fatalf("missing referenced script %s", next)
		}
	}
}

// step evaluates one script's two "execute if score ... matches R run CMD"
// lines against p, returning the command reference and whether it is a
// "function X" hop.
func step(t *testing.T, script string, p int) (ref string, isFunction bool, matched bool) {
	t.Helper()
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(line, "say ") {
			continue
		}
		idx := strings.Index(line, "matches ")
		if idx < 0 {
			continue
		}
		rest := line[idx+len("matches "):]
		sp := strings.Index(rest, " run ")
		if sp < 0 {
			continue
		}
		rangeStr := rest[:sp]
		cmd := rest[sp+len(" run "):]
		if !inRange(rangeStr, p) {
			continue
		}
		if strings.HasPrefix(cmd, "function ") {
			return strings.TrimPrefix(cmd, "function "), true, true
		}
		if strings.HasPrefix(cmd, "say ") {
			return "", false, false
		}
		return cmd, false, true
	}
	return "", false, false
}

func inRange(rangeStr string, p int) bool {
	if strings.HasSuffix(rangeStr, "..") {
		lo, _ := strconv.Atoi(strings.TrimSuffix(rangeStr, ".."))
		return p >= lo
	}
	if strings.HasPrefix(rangeStr, "..") {
		hi, _ := strconv.Atoi(strings.TrimPrefix(rangeStr, ".."))
		return p <= hi
	}
	v, _ := strconv.Atoi(rangeStr)
	return p == v
}

func TestGenerate_EveryIndexReachesItsOwnAction(t *testing.T) {
	for h := 0; h <= 6; h++ {
		size := 1 << h
		w := mcfs.NewMemWriter()
		action := func(i int) string { return fmt.Sprintf("action:%d", i) }
		if err := dispatch.Generate(w, "exec", "exec", "Pc", size, action); err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		for p := 0; p < size; p++ {
			got := simulate(t, w, "exec", "exec", p)
			if got != p {
				t.Fatalf("size %d, p=%d: expected action %d, got %d", size, p, p, got)
			}
		}
		if got := simulate(t, w, "exec", "exec", size); got != -1 {
			t.Fatalf("size %d: expected out-of-range at p=size, got %d", size, got)
		}
	}
}

func TestGenerate_ZeroSizeIsAlwaysFatal(t *testing.T) {
	w := mcfs.NewMemWriter()
	action := func(i int) string { return fmt.Sprintf("action:%d", i) }
	if err := dispatch.Generate(w, "exec", "exec", "Pc", 0, action); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := simulate(t, w, "exec", "exec", 0); got != -1 {
		t.Fatalf("expected out-of-range, got %d", got)
	}
}

func TestGenerate_ScriptFileCount(t *testing.T) {
	w := mcfs.NewMemWriter()
	action := func(i int) string { return fmt.Sprintf("action:%d", i) }
	const size = 16
	if err := dispatch.Generate(w, "exec", "exec", "Pc", size, action); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Names()) != size {
		t.Fatalf("expected %d emitted scripts, got %d: %v", size, len(w.Names()), w.Names())
	}
}

func TestGenerate_AtMostTwoExecutableLines(t *testing.T) {
	w := mcfs.NewMemWriter()
	action := func(i int) string { return fmt.Sprintf("action:%d", i) }
	if err := dispatch.Generate(w, "exec", "exec", "Pc", 32, action); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range w.Names() {
		content, _ := w.Get(name)
		lines := strings.Split(content, "\n")
		if len(lines) > 2 {
			t.Fatalf("%s: expected at most 2 lines, got %d", name, len(lines))
		}
	}
}
