package mas_test

import (
	"testing"

	"github.com/fancyflame/mcvm/internal/mas"
	"github.com/fancyflame/mcvm/internal/mas/ast"
)

func TestParse_EmptyMain(t *testing.T) {
	prog, err := mas.Parse("main:\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Functions))
	}
	if prog.Functions[0].Name != "main" {
		t.Fatalf("expected main, got %q", prog.Functions[0].Name)
	}
	if len(prog.Functions[0].Instructions) != 0 {
		t.Fatalf("expected no instructions, got %d", len(prog.Functions[0].Instructions))
	}
}

func TestParse_ImmediateHalt(t *testing.T) {
	prog, err := mas.Parse("main:\n  set R0 42\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	instrs := prog.Functions[0].Instructions
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(instrs))
	}
	set, ok := instrs[0].(*ast.SetImmediate)
	if !ok {
		t.Fatalf("expected *ast.SetImmediate, got %T", instrs[0])
	}
	if set.Dst != 0 || set.Value != 42 {
		t.Fatalf("expected R0 = 42, got R%d = %d", set.Dst, set.Value)
	}
}

func TestParse_CommentsAndBlankLinesSkipped(t *testing.T) {
	src := "# a program\n\nmain: # entry point\n  # nothing here yet\n  yield\n"
	prog, err := mas.Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Functions[0].Instructions) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(prog.Functions[0].Instructions))
	}
}

func TestParse_LabelWithParams(t *testing.T) {
	prog, err := mas.Parse("add(a, b):\n  ret\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := prog.Functions[0]
	if fn.Name != "add" {
		t.Fatalf("expected add, got %q", fn.Name)
	}
	if len(fn.Args) != 2 || fn.Args[0] != "a" || fn.Args[1] != "b" {
		t.Fatalf("expected args [a b], got %v", fn.Args)
	}
}

func TestParse_DuplicateLabelIsFatal(t *testing.T) {
	_, err := mas.Parse("main:\n  ret\nmain:\n  ret\n")
	if err == nil {
		t.Fatalf("expected duplicate-label error")
	}
}

func TestParse_InstructionBeforeLabelIsFatal(t *testing.T) {
	_, err := mas.Parse("  set R0 1\nmain:\n  ret\n")
	if err == nil {
		t.Fatalf("expected instruction-before-label error")
	}
}

func TestParse_UnknownOpcodeIsFatal(t *testing.T) {
	_, err := mas.Parse("main:\n  frobnicate R0\n")
	if err == nil {
		t.Fatalf("expected unknown-opcode error")
	}
}

func TestParse_UnterminatedStringIsFatal(t *testing.T) {
	_, err := mas.Parse("main:\n  log \"unterminated\n")
	if err == nil {
		t.Fatalf("expected unterminated-string error")
	}
}

func TestParse_EscapedQuoteSurvives(t *testing.T) {
	prog, err := mas.Parse(`main:
  log "say \"hi\""
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log := prog.Functions[0].Instructions[0].(*ast.Log)
	want := `say "hi"`
	if log.Text != want {
		t.Fatalf("expected %q, got %q", want, log.Text)
	}
}

func TestParse_CmpinRange(t *testing.T) {
	prog, err := mas.Parse("main:\n  cmpin 0..10\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ci := prog.Functions[0].Instructions[0].(*ast.CompareIn)
	if !ci.Range.HasLower || !ci.Range.HasUpper || ci.Range.Lower != 0 || ci.Range.Upper != 10 {
		t.Fatalf("unexpected range: %+v", ci.Range)
	}
}

func TestParse_CmpinOpenRanges(t *testing.T) {
	cases := []struct {
		src                string
		hasLower, hasUpper bool
	}{
		{"main:\n  cmpin 5..\n", true, false},
		{"main:\n  cmpin ..5\n", false, true},
		{"main:\n  cmpin ..\n", false, false},
	}
	for _, c := range cases {
		prog, err := mas.Parse(c.src)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", c.src, err)
		}
		ci := prog.Functions[0].Instructions[0].(*ast.CompareIn)
		if ci.Range.HasLower != c.hasLower || ci.Range.HasUpper != c.hasUpper {
			t.Fatalf("%q: expected hasLower=%v hasUpper=%v, got %+v", c.src, c.hasLower, c.hasUpper, ci.Range)
		}
	}
}

func TestParse_NegativeIntegerOperand(t *testing.T) {
	prog, err := mas.Parse("main:\n  set R0 -7\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set := prog.Functions[0].Instructions[0].(*ast.SetImmediate)
	if set.Value != -7 {
		t.Fatalf("expected -7, got %d", set.Value)
	}
}

func TestParse_CmpOperators(t *testing.T) {
	for _, op := range []string{"==", "!=", "<", "<=", ">", ">="} {
		prog, err := mas.Parse("main:\n  cmp " + op + "\n")
		if err != nil {
			t.Fatalf("unexpected error for op %q: %v", op, err)
		}
		cmp := prog.Functions[0].Instructions[0].(*ast.Compare)
		if string(cmp.Op) != op {
			t.Fatalf("expected op %q, got %q", op, cmp.Op)
		}
	}
}

func TestParse_DebugLineFidelity(t *testing.T) {
	src := "main:\n  yield\n  yield\n  debug \"here\"\n"
	prog, err := mas.Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	instrs := prog.Functions[0].Instructions
	debug := instrs[len(instrs)-1].(*ast.Debug)
	if debug.Line != 4 {
		t.Fatalf("expected line 4, got %d", debug.Line)
	}
}
