package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/fancyflame/mcvm/internal/hostcfg"
	"github.com/fancyflame/mcvm/internal/mas/ast"
)

// SemanticError is a translation-time error: a branch or call target that
// was never defined as a label (spec.md §7, "Semantic").
type SemanticError struct {
	Message string
	Line    int
}

func (e SemanticError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Translator lowers a parsed program into the block context's content
// buffers (spec.md §4.4, component E). It is stateful only through the
// Context it wraps; Translator itself holds no per-function state, since
// "current block" lives entirely in the call stack of TranslateProgram.
type Translator struct {
	ctx *Context
	cfg hostcfg.Config
}

// NewTranslator returns a Translator writing into ctx, using cfg for
// register/memory-cell scoreboard names.
func NewTranslator(ctx *Context, cfg hostcfg.Config) *Translator {
	return &Translator{ctx: ctx, cfg: cfg}
}

// TranslateProgram runs both lifecycle phases from spec.md §3: first, one
// block per user label; second (inside translateFunction), anonymous
// continuation blocks created on demand. Before any lowering happens, every
// branch/call target is validated against the inserted labels so that an
// undefined target surfaces as a SemanticError rather than a panic deep
// inside GetLabel (spec.md §7).
func (t *Translator) TranslateProgram(prog *ast.Program) error {
	for _, fn := range prog.Functions {
		t.ctx.InsertLabel(fn.Name)
	}

	for _, fn := range prog.Functions {
		if err := t.validateTargets(fn); err != nil {
			return err
		}
	}

	for _, fn := range prog.Functions {
		t.translateFunction(fn)
	}
	return nil
}

func (t *Translator) validateTargets(fn *ast.Function) error {
	for _, instr := range fn.Instructions {
		var target string
		switch v := instr.(type) {
		case *ast.Branch:
			target = v.Label
		case *ast.BranchIf:
			target = v.Label
		case *ast.BranchIfNot:
			target = v.Label
		case *ast.Call:
			target = v.Label
		default:
			continue
		}
		if !t.ctx.HasLabel(target) {
			return SemanticError{Message: fmt.Sprintf("branch/call to undefined label %q", target), Line: instr.InstrLine()}
		}
	}
	return nil
}

// translateFunction lowers fn's instructions in source order, following the
// current current-block cursor as it switches across anonymous
// continuations (spec.md §4.4, "Orderings").
func (t *Translator) translateFunction(fn *ast.Function) {
	current := t.ctx.GetLabel(fn.Name)
	for _, instr := range fn.Instructions {
		current = t.translateInstruction(current, instr)
	}
}

const h = hostcfg.Holder

func reg(cfg hostcfg.Config, r ast.Register) string {
	return cfg.Register(int(r))
}

// decodeString strips every backslash byte from a string literal's body at
// emission time (spec.md §4.5): the parser already unescaped \" into a bare
// quote, so any backslash remaining here is escape noise the host command
// language would misinterpret.
func decodeString(s string) string {
	return strings.ReplaceAll(s, `\`, "")
}

// translateInstruction lowers one instruction into block's content buffer
// and returns the block subsequent instructions should append to (the same
// block, unless this instruction switches emission into a fresh anonymous
// continuation).
func (t *Translator) translateInstruction(block *Block, instr ast.Instruction) *Block {
	cfg := t.cfg
	ctx := t.ctx

	switch v := instr.(type) {
	case *ast.RawCommand:
		block.WriteCommand(decodeString(v.Text) + "\n")
		return block

	case *ast.Move:
		block.WriteCommand(fmt.Sprintf("scoreboard players operation %s %s = %s %s\n",
			h, reg(cfg, v.Dst), h, reg(cfg, v.Src)))
		return block

	case *ast.SetImmediate:
		block.WriteCommand(fmt.Sprintf("scoreboard players set %s %s %d\n", h, reg(cfg, v.Dst), v.Value))
		return block

	case *ast.Load:
		block.WriteCommand(loadStoreSwapSequence(v.Addr, hostcfg.FuncLoad))
		return block

	case *ast.Store:
		block.WriteCommand(loadStoreSwapSequence(v.Addr, hostcfg.FuncStore))
		return block

	case *ast.Swap:
		block.WriteCommand(loadStoreSwapSequence(v.Addr, hostcfg.FuncSwap))
		return block

	case *ast.Compare:
		block.WriteCommand(compareSequence(cfg, v.Op))
		return block

	case *ast.CompareIn:
		block.WriteCommand(compareInSequence(cfg, v.Not, v.Range))
		return block

	case *ast.Calculate:
		block.WriteCommand(fmt.Sprintf("scoreboard players operation %s %s %s %s %s\n",
			h, cfg.Register(0), calcOpStr(v.Op), h, cfg.Register(1)))
		return block

	case *ast.Random:
		block.WriteCommand(fmt.Sprintf("scoreboard players random %s %s %d %d\n", h, reg(cfg, v.Dst), v.Lo, v.Hi))
		return block

	case *ast.Log:
		block.WriteCommand(fmt.Sprintf("say %s\n", decodeString(v.Text)))
		return block

	case *ast.Debug:
		block.WriteCommand(fmt.Sprintf("say (at: %d) %s\n", v.Line, decodeString(v.Text)))
		return block

	case *ast.Branch:
		target := ctx.GetLabel(v.Label)
		block.WriteCommand(fmt.Sprintf("scoreboard players set %s %s %d\nfunction %s\n",
			h, hostcfg.ScoreboardPc, target.ID, target.FnName))
		return ctx.GetLabel(ctx.NewAnonymousLabel())

	case *ast.BranchIf:
		target := ctx.GetLabel(v.Label)
		anon := ctx.GetLabel(ctx.NewAnonymousLabel())
		block.WriteCommand(fmt.Sprintf(
			"execute unless score %s %s matches 0 run function %s\nexecute if score %s %s matches 0 run function %s\n",
			h, cfg.Register(0), target.FnName, h, cfg.Register(0), anon.FnName))
		return anon

	case *ast.BranchIfNot:
		target := ctx.GetLabel(v.Label)
		anon := ctx.GetLabel(ctx.NewAnonymousLabel())
		block.WriteCommand(fmt.Sprintf(
			"execute if score %s %s matches 0 run function %s\nexecute unless score %s %s matches 0 run function %s\n",
			h, cfg.Register(0), target.FnName, h, cfg.Register(0), anon.FnName))
		return anon

	case *ast.Call:
		return t.translateCall(block, v)

	case *ast.Return:
		block.WriteCommand(loadStoreSwapSequence(-1, hostcfg.FuncLoad))
		block.WriteCommand(fmt.Sprintf(
			"scoreboard players operation %s %s = %s %s\nfunction %s\n",
			h, hostcfg.ScoreboardPc, h, cfg.Register(0),
			hostcfg.FuncExec))
		return ctx.GetLabel(ctx.NewAnonymousLabel())

	case *ast.Yield:
		anon := ctx.GetLabel(ctx.NewAnonymousLabel())
		// No trailing newline: this is the exact "stop until next tick"
		// shape from original_source, preserved per spec.md §9 Open
		// Questions ("must be preserved").
		block.WriteCommand(fmt.Sprintf("scoreboard players set %s %s %d", h, hostcfg.ScoreboardPc, anon.ID))
		return anon

	default:
		panic(errors.Errorf("codegen: unhandled instruction type %T", instr))
	}
}

func loadStoreSwapSequence(addr int32, dispatchFn string) string {
	return fmt.Sprintf(
		"scoreboard players set %s %s %d\nscoreboard players operation %s %s += %s %s\nfunction %s\n",
		h, hostcfg.ScoreboardPointer, addr,
		h, hostcfg.ScoreboardPointer, h, hostcfg.ScoreboardOffset,
		dispatchFn,
	)
}

// translateCall synthesizes a return record (spec.md §4.4, "call k L").
//
// Correction: original_source/src/mas/generate/mod.rs stores the *callee's*
// own block id into R0 before invoking "store", which would make every
// `ret` jump straight back into the function it just called instead of to
// the saved continuation — an infinite loop. spec.md §4.4 and its worked
// example (§8, scenario 4, "store-of-return-id") both describe storing the
// continuation R's id instead; this implementation follows the spec's
// documented (and only self-consistent) semantics.
func (t *Translator) translateCall(block *Block, call *ast.Call) *Block {
	cfg := t.cfg
	ctx := t.ctx

	target := ctx.GetLabel(call.Label)
	retLabel := ctx.NewAnonymousLabel()
	retBlock := ctx.GetLabel(retLabel)

	retPc := call.OffsetShift
	offsetInc := retPc + 1

	retBlock.WriteCommand(fmt.Sprintf("scoreboard players add %s %s -%d\n", h, hostcfg.ScoreboardOffset, offsetInc))

	block.WriteCommand(fmt.Sprintf(
		"scoreboard players set %s %s %d\nscoreboard players set %s %s %d\nfunction %s\nscoreboard players add %s %s %d\nfunction %s\n",
		h, cfg.Register(0), retBlock.ID,
		h, hostcfg.ScoreboardPointer, retPc,
		hostcfg.FuncStore,
		h, hostcfg.ScoreboardOffset, offsetInc,
		target.FnName,
	))

	return retBlock
}

func calcOpStr(op ast.CalcOp) string {
	switch op {
	case ast.CalcAdd:
		return "+="
	case ast.CalcSub:
		return "-="
	case ast.CalcMul:
		return "*="
	case ast.CalcDiv:
		return "/="
	case ast.CalcRem:
		return "%="
	case ast.CalcMin:
		return "<"
	case ast.CalcMax:
		return ">"
	default:
		panic(fmt.Sprintf("codegen: unknown calc operator %q", op))
	}
}

// compareSequence lowers `cmp OP` into the two-line shape from spec.md
// §4.4: a conditional set to 1, then an unconditional-unless set to 0.
func compareSequence(cfg hostcfg.Config, op ast.CmpOp) string {
	ifWord := "if"
	operand := string(op)
	if op == ast.CmpNe {
		ifWord = "unless"
		operand = "="
	} else if op == ast.CmpEq {
		operand = "="
	}

	r0, r1 := cfg.Register(0), cfg.Register(1)
	return fmt.Sprintf(
		"execute %s score %s %s %s %s %s run scoreboard players set %s %s 1\nexecute unless score %s %s matches 1 run scoreboard players set %s %s 0\n",
		ifWord, h, r0, operand, h, r1,
		h, r0,
		h, r0, h, r0,
	)
}

// compareInSequence lowers `cmpin [not] E`. The "not" flag inverts only the
// first line's if/unless gate; the second line's shape is unchanged, which
// is correct precisely because the second line only ever reacts to the
// first line's effect on R0 (spec.md §9, Open Questions).
func compareInSequence(cfg hostcfg.Config, not bool, re ast.RangeExpr) string {
	ifWord := "if"
	if not {
		ifWord = "unless"
	}

	var matches string
	switch {
	case re.IsValue:
		matches = strconv.FormatInt(int64(re.Value), 10)
	case re.HasLower && re.HasUpper:
		matches = fmt.Sprintf("%d..%d", re.Lower, re.Upper)
	case re.HasLower:
		matches = fmt.Sprintf("%d..", re.Lower)
	case re.HasUpper:
		matches = fmt.Sprintf("..%d", re.Upper)
	default:
		matches = ".."
	}

	r0 := cfg.Register(0)
	return fmt.Sprintf(
		"execute %s score %s %s matches %s run scoreboard players set %s %s 1\nexecute unless score %s %s matches 1 run scoreboard players set %s %s 0\n",
		ifWord, h, r0, matches,
		h, r0,
		h, r0, h, r0,
	)
}
