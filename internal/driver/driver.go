// Package driver is the top-level compilation pipeline (component F,
// spec.md §2): parse MAS source, generate the memory module, generate
// every user block, and flush everything to an output tree. Grounded on
// original_source/src/main.rs, generalized from a single hard-coded
// "fibonacci.mas" invocation into a reusable entry point the CLI and tests
// both call.
package driver

import (
	"github.com/pkg/errors"

	"github.com/fancyflame/mcvm/internal/codegen"
	"github.com/fancyflame/mcvm/internal/diagnostics"
	"github.com/fancyflame/mcvm/internal/hostcfg"
	"github.com/fancyflame/mcvm/internal/mas"
	"github.com/fancyflame/mcvm/internal/mcfs"
	"github.com/fancyflame/mcvm/internal/memmodule"
)

// FunctionsDir is the fixed subdirectory of the behavior-pack directory
// every generated script is written under (spec.md §6, "Filesystem
// output").
const FunctionsDir = "functions"

// Compile runs the full pipeline described in spec.md §2's data-flow
// summary: source -> parse -> program AST -> memory module -> user blocks
// -> write. diag, if non-nil, records a trace entry per phase (ambient
// diagnostics; see SPEC_FULL.md §2.3) but never changes control flow —
// every error here is fatal and returned immediately, per spec.md §7's
// "every error is fatal" policy.
func Compile(w mcfs.Writer, source string, cfg hostcfg.Config, diag *diagnostics.Context) error {
	if diag != nil {
		diag.SetPhase("parse")
	}
	trace(diag, "parsing MAS source")
	prog, err := mas.Parse(source)
	if err != nil {
		if diag != nil {
			diag.Error(diag.Loc(0, 0), err.Error())
		}
		return errors.Wrap(err, "parse")
	}

	if diag != nil {
		diag.SetPhase("dispatch")
	}
	trace(diag, "generating memory module")
	if err := memmodule.Generate(w, FunctionsDir, cfg); err != nil {
		return errors.Wrap(err, "generate memory module")
	}

	if diag != nil {
		diag.SetPhase("codegen")
	}
	trace(diag, "translating program blocks")
	ctx := codegen.NewContext(cfg)
	tr := codegen.NewTranslator(ctx, cfg)
	if err := tr.TranslateProgram(prog); err != nil {
		if diag != nil {
			diag.Error(diag.Loc(0, 0), err.Error())
		}
		return errors.Wrap(err, "translate")
	}

	if diag != nil {
		diag.SetPhase("write")
	}
	trace(diag, "flushing generated blocks to disk")
	if err := ctx.Flush(w, FunctionsDir); err != nil {
		return errors.Wrap(err, "flush blocks")
	}

	return nil
}

func trace(diag *diagnostics.Context, msg string) {
	if diag == nil {
		return
	}
	diag.Trace(diag.Loc(0, 0), msg)
}
