package memmodule_test

import (
	"strings"
	"testing"

	"github.com/fancyflame/mcvm/internal/hostcfg"
	"github.com/fancyflame/mcvm/internal/mcfs"
	"github.com/fancyflame/mcvm/internal/memmodule"
)

func TestGenerate_InitDeclaresAllScoreboards(t *testing.T) {
	cfg, err := hostcfg.New(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := mcfs.NewMemWriter()
	if err := memmodule.Generate(w, "functions", cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	init, ok := w.Get("functions/init.mcfunction")
	if !ok {
		t.Fatalf("missing init.mcfunction")
	}

	want := []string{
		hostcfg.ScoreboardPointer, hostcfg.ScoreboardOffset, hostcfg.ScoreboardPc,
		cfg.Register(0), cfg.Register(1), cfg.Register(2), cfg.Register(3),
		cfg.MemCell(0), cfg.MemCell(1), cfg.MemCell(2), cfg.MemCell(3),
	}
	for _, name := range want {
		if !strings.Contains(init, "scoreboard objectives add "+name+" dummy") {
			t.Fatalf("init script missing declaration for %s:\n%s", name, init)
		}
	}
}

func TestGenerate_LoadStoreSwapDispatchersExist(t *testing.T) {
	cfg, err := hostcfg.New(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := mcfs.NewMemWriter()
	if err := memmodule.Generate(w, "functions", cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{hostcfg.FuncLoad, hostcfg.FuncStore, hostcfg.FuncSwap} {
		if _, ok := w.Get("functions/" + name + ".mcfunction"); !ok {
			t.Fatalf("missing dispatcher entry %s", name)
		}
	}
}

func TestGenerate_LoadActionMovesMemIntoR0(t *testing.T) {
	cfg, err := hostcfg.New(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := mcfs.NewMemWriter()
	if err := memmodule.Generate(w, "functions", cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, ok := w.Get("functions/load.mcfunction")
	if !ok {
		t.Fatalf("missing load.mcfunction")
	}
	if !strings.Contains(entry, cfg.Register(0)) {
		t.Fatalf("expected load entry to reference R0: %s", entry)
	}
}

func TestGenerate_RejectsNonPowerOfTwo(t *testing.T) {
	if _, err := hostcfg.New(100); err == nil {
		t.Fatalf("expected power-of-2 error")
	}
}
