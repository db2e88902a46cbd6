package mas_test

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/fancyflame/mcvm/internal/mas"
	"github.com/fancyflame/mcvm/internal/mas/ast"
)

// instrSpec describes the shape of one expected instruction. Only the
// fields relevant to a given op are populated in the fixture; the rest are
// left at their zero value and skipped during comparison.
type instrSpec struct {
	Op    string `yaml:"op"`
	Dst   *int   `yaml:"dst,omitempty"`
	Value *int32 `yaml:"value,omitempty"`
	Label string `yaml:"label,omitempty"`
}

type functionSpec struct {
	Name         string      `yaml:"name"`
	Args         []string    `yaml:"args,omitempty"`
	Instructions []instrSpec `yaml:"instructions"`
}

type caseSpec struct {
	Name      string         `yaml:"name"`
	Input     string         `yaml:"input"`
	Functions []functionSpec `yaml:"functions"`
}

type caseFile struct {
	Cases []caseSpec `yaml:"cases"`
}

func TestParse_GoldenCases(t *testing.T) {
	data, err := os.ReadFile("../../testdata/parse_cases.yaml")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}

	var file caseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}

	for _, c := range file.Cases {
		t.Run(c.Name, func(t *testing.T) {
			prog, err := mas.Parse(c.Input)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if len(prog.Functions) != len(c.Functions) {
				t.Fatalf("expected %d functions, got %d", len(c.Functions), len(prog.Functions))
			}
			for i, wantFn := range c.Functions {
				verifyFunction(t, prog.Functions[i], wantFn)
			}
		})
	}
}

func verifyFunction(t *testing.T, got *ast.Function, want functionSpec) {
	t.Helper()
	if got.Name != want.Name {
		t.Errorf("function name: expected %q, got %q", want.Name, got.Name)
	}
	if len(want.Args) > 0 && len(got.Args) != len(want.Args) {
		t.Errorf("%s: expected %d args, got %d", want.Name, len(want.Args), len(got.Args))
	}
	if len(got.Instructions) != len(want.Instructions) {
		t.Fatalf("%s: expected %d instructions, got %d", want.Name, len(want.Instructions), len(got.Instructions))
	}
	for i, wantInstr := range want.Instructions {
		verifyInstruction(t, got.Instructions[i], wantInstr)
	}
}

func verifyInstruction(t *testing.T, got ast.Instruction, want instrSpec) {
	t.Helper()
	switch want.Op {
	case "set":
		si, ok := got.(*ast.SetImmediate)
		if !ok {
			t.Fatalf("expected *ast.SetImmediate, got %T", got)
		}
		if want.Dst != nil && int(si.Dst) != *want.Dst {
			t.Errorf("set: expected dst %d, got %d", *want.Dst, si.Dst)
		}
		if want.Value != nil && si.Value != *want.Value {
			t.Errorf("set: expected value %d, got %d", *want.Value, si.Value)
		}
	case "b":
		br, ok := got.(*ast.Branch)
		if !ok {
			t.Fatalf("expected *ast.Branch, got %T", got)
		}
		if br.Label != want.Label {
			t.Errorf("b: expected label %q, got %q", want.Label, br.Label)
		}
	case "ret":
		if _, ok := got.(*ast.Return); !ok {
			t.Fatalf("expected *ast.Return, got %T", got)
		}
	default:
		t.Fatalf("golden fixture: unhandled op %q", want.Op)
	}
}
