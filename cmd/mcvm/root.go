package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fancyflame/mcvm/internal/diagnostics"
	"github.com/fancyflame/mcvm/internal/driver"
	"github.com/fancyflame/mcvm/internal/hostcfg"
	"github.com/fancyflame/mcvm/internal/mcfs"
)

const defaultMemSize = 128

var rootCmd = &cobra.Command{
	Use:   "mcvm <mas-file> <behavior-pack-dir>",
	Short: "mcvm compiles MAS assembly into a host command-function tree",
	Long: `mcvm translates a register-based assembly dialect into the
scoreboard-driven ".mcfunction" scripts a flat-state, command-driven host
runtime can execute directly.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	masPath, packDir := args[0], args[1]

	memSize := defaultMemSize
	if raw, ok := os.LookupEnv("MCVM_MEM_SIZE"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return errors.Wrapf(err, "malformed MCVM_MEM_SIZE %q", raw)
		}
		memSize = n
	}

	cfg, err := hostcfg.New(memSize)
	if err != nil {
		return errors.Wrap(err, "usage")
	}

	source, err := os.ReadFile(masPath)
	if err != nil {
		return errors.Wrapf(err, "reading %s", masPath)
	}

	functionsRoot := filepath.Join(packDir, "functions")
	if err := os.RemoveAll(functionsRoot); err != nil {
		return errors.Wrapf(err, "clearing %s", functionsRoot)
	}
	if err := os.MkdirAll(packDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", packDir)
	}

	w := &mcfs.DiskWriter{Dir: packDir}
	diag := diagnostics.New(masPath)

	if err := driver.Compile(w, string(source), cfg, diag); err != nil {
		for _, e := range diag.Entries() {
			fmt.Fprintln(cmd.ErrOrStderr(), e.String())
		}
		return err
	}

	return nil
}
