// Package memmodule generates the memory-emulation runtime substrate:
// load/store/swap dispatch trees (via package dispatch) and the one-shot
// init script that declares every scoreboard (spec.md §4.2 component B, §6
// "Filesystem output"). Grounded on
// original_source/src/bootstrap/mod.rs (generate_module_memory/init_memory).
package memmodule

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/fancyflame/mcvm/internal/dispatch"
	"github.com/fancyflame/mcvm/internal/hostcfg"
	"github.com/fancyflame/mcvm/internal/mcfs"
)

// Generate emits init.mcfunction plus the load/store/swap dispatch trees
// under dir (spec.md §6, "Filesystem output").
func Generate(w mcfs.Writer, dir string, cfg hostcfg.Config) error {
	if err := dispatch.Generate(w, dir, hostcfg.FuncLoad, hostcfg.ScoreboardPointer, cfg.MemSize, loadAction(cfg)); err != nil {
		return errors.Wrap(err, "generating load dispatch")
	}
	if err := dispatch.Generate(w, dir, hostcfg.FuncStore, hostcfg.ScoreboardPointer, cfg.MemSize, storeAction(cfg)); err != nil {
		return errors.Wrap(err, "generating store dispatch")
	}
	if err := dispatch.Generate(w, dir, hostcfg.FuncSwap, hostcfg.ScoreboardPointer, cfg.MemSize, swapAction(cfg)); err != nil {
		return errors.Wrap(err, "generating swap dispatch")
	}
	if err := generateInit(w, dir, cfg); err != nil {
		return errors.Wrap(err, "generating init script")
	}
	return nil
}

func loadAction(cfg hostcfg.Config) dispatch.ActionFunc {
	return func(nth int) string {
		return fmt.Sprintf("scoreboard players operation %s %s = %s %s",
			hostcfg.Holder, cfg.Register(0), hostcfg.Holder, cfg.MemCell(nth))
	}
}

func storeAction(cfg hostcfg.Config) dispatch.ActionFunc {
	return func(nth int) string {
		return fmt.Sprintf("scoreboard players operation %s %s = %s %s",
			hostcfg.Holder, cfg.MemCell(nth), hostcfg.Holder, cfg.Register(0))
	}
}

func swapAction(cfg hostcfg.Config) dispatch.ActionFunc {
	return func(nth int) string {
		return fmt.Sprintf("scoreboard players operation %s %s >< %s %s",
			hostcfg.Holder, cfg.MemCell(nth), hostcfg.Holder, cfg.Register(0))
	}
}

// generateInit writes the one-time initialization script: reset the
// namespace holder, then declare and zero every scoreboard (spec.md §6).
func generateInit(w mcfs.Writer, dir string, cfg hostcfg.Config) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "scoreboard players reset %s\n", hostcfg.Holder)

	names := []string{hostcfg.ScoreboardPointer, hostcfg.ScoreboardOffset, hostcfg.ScoreboardPc}
	for r := 0; r < 4; r++ {
		names = append(names, cfg.Register(r))
	}
	for n := 0; n < cfg.MemSize; n++ {
		names = append(names, cfg.MemCell(n))
	}

	for _, name := range names {
		fmt.Fprintf(&sb, "scoreboard objectives add %s dummy\n", name)
		fmt.Fprintf(&sb, "scoreboard players set %s %s 0\n", hostcfg.Holder, name)
	}

	content := strings.TrimSuffix(sb.String(), "\n")
	return w.WriteFile(dir+"/"+hostcfg.FuncInit+".mcfunction", []byte(content))
}
