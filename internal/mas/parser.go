// Package mas implements the lexer and parser for the MAS assembly dialect:
// tokenizing and validating source text into a mas/ast.Program (spec.md §4.1).
package mas

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/fancyflame/mcvm/internal/mas/ast"
)

// opcodes recognized at the start of an instruction line. Multi-character
// branch mnemonics (bi, bn) never collide with b because identifiers are
// lexed maximally — the longest-match tie-break from spec.md §4.4 falls out
// of the lexer rather than needing special-casing here.
const (
	opCmd   = "cmd"
	opMov   = "mov"
	opSet   = "set"
	opLoad  = "load"
	opStore = "store"
	opSwap  = "swap"
	opCmp   = "cmp"
	opCmpIn = "cmpin"
	opCalc  = "calc"
	opB     = "b"
	opBi    = "bi"
	opBn    = "bn"
	opRand  = "rand"
	opCall  = "call"
	opRet   = "ret"
	opYield = "yield"
	opLog   = "log"
	opDebug = "debug"
)

// Parse tokenizes and validates MAS source text, returning the resulting
// program or an accumulated ParseErrors. Parsing proceeds one line at a time
// (spec.md §4.1, "Line-oriented"); a line is either a label definition, an
// instruction, or blank/comment.
func Parse(source string) (*ast.Program, error) {
	p := &parser{prog: &ast.Program{}, labels: map[string]bool{}}

	for lineNo, raw := range strings.Split(source, "\n") {
		line := lineNo + 1
		tokens, err := tokenize(raw)
		if err != nil {
			p.fail(line, 1, err.Error())
			continue
		}
		if len(tokens) == 0 {
			continue
		}
		p.parseLine(line, tokens)
	}

	if len(p.errors) > 0 {
		return nil, ParseErrors(p.errors)
	}
	return p.prog, nil
}

type parser struct {
	prog    *ast.Program
	current *ast.Function
	labels  map[string]bool
	errors  []ParseError
}

func (p *parser) fail(line, col int, format string, args ...interface{}) {
	p.errors = append(p.errors, ParseError{
		Message: errors.Errorf(format, args...).Error(),
		Line:    line,
		Column:  col,
	})
}

// lineParser walks a single line's token slice with current/peek/advance/
// expect helpers, mirroring the teacher's Parser token-consumption shape
// (v0/kasm/parsing.go) but scoped to one line since MAS statements never
// span lines.
type lineParser struct {
	tokens []Token
	pos    int
}

func (lp *lineParser) current() Token {
	if lp.pos >= len(lp.tokens) {
		return Token{Type: TokenEOF}
	}
	return lp.tokens[lp.pos]
}

func (lp *lineParser) peek() Token {
	if lp.pos+1 >= len(lp.tokens) {
		return Token{Type: TokenEOF}
	}
	return lp.tokens[lp.pos+1]
}

func (lp *lineParser) advance() Token {
	tok := lp.current()
	if lp.pos < len(lp.tokens) {
		lp.pos++
	}
	return tok
}

func (lp *lineParser) expect(typ TokenType) (Token, bool) {
	tok := lp.current()
	if tok.Type == typ {
		lp.advance()
		return tok, true
	}
	return tok, false
}

func (p *parser) parseLine(line int, tokens []Token) {
	lp := &lineParser{tokens: tokens}
	first := lp.current()

	if first.Type == TokenIdent && (lp.peek().is(TokenSymbol, ":") || lp.peek().is(TokenSymbol, "(")) {
		p.parseLabel(line, lp)
		return
	}

	if p.current == nil {
		p.fail(line, first.Column, "instructions must be under a label")
		return
	}

	instr := p.parseInstruction(line, lp)
	if instr != nil {
		p.current.Instructions = append(p.current.Instructions, instr)
	}
}

// parseLabel consumes `name:` or `name(a, b, c):`.
func (p *parser) parseLabel(line int, lp *lineParser) {
	nameTok := lp.advance()
	name := nameTok.Literal

	var args []string
	if lp.current().is(TokenSymbol, "(") {
		lp.advance()
		for !lp.current().is(TokenSymbol, ")") {
			if lp.current().Type != TokenIdent {
				p.fail(line, lp.current().Column, "expected parameter name")
				return
			}
			args = append(args, lp.advance().Literal)
			if lp.current().is(TokenSymbol, ",") {
				lp.advance()
			}
		}
		lp.advance() // ")"
	}

	if !lp.current().is(TokenSymbol, ":") {
		p.fail(line, lp.current().Column, "expected ':' after label name")
		return
	}
	lp.advance()

	if p.labels[name] {
		p.fail(line, nameTok.Column, "duplicate label %q", name)
		return
	}
	p.labels[name] = true

	fn := &ast.Function{Name: name, Args: args, Line: line}
	p.prog.Functions = append(p.prog.Functions, fn)
	p.current = fn
}

func (p *parser) parseInstruction(line int, lp *lineParser) ast.Instruction {
	opTok := lp.advance()
	if opTok.Type != TokenIdent {
		p.fail(line, opTok.Column, "expected opcode")
		return nil
	}

	switch opTok.Literal {
	case opCmd:
		return &ast.RawCommand{Text: p.str(line, lp), Line: line}

	case opMov:
		dst := p.reg(line, lp)
		src := p.reg(line, lp)
		return &ast.Move{Dst: dst, Src: src, Line: line}

	case opSet:
		dst := p.reg(line, lp)
		val := p.int32(line, lp)
		return &ast.SetImmediate{Dst: dst, Value: val, Line: line}

	case opLoad:
		return &ast.Load{Addr: p.int32(line, lp), Line: line}

	case opStore:
		return &ast.Store{Addr: p.int32(line, lp), Line: line}

	case opSwap:
		return &ast.Swap{Addr: p.int32(line, lp), Line: line}

	case opCmp:
		return &ast.Compare{Op: ast.CmpOp(p.symbolOrIdent(line, lp)), Line: line}

	case opCmpIn:
		not := false
		if lp.current().is(TokenIdent, "not") {
			lp.advance()
			not = true
		}
		return &ast.CompareIn{Not: not, Range: p.rangeExpr(line, lp), Line: line}

	case opCalc:
		return &ast.Calculate{Op: ast.CalcOp(p.symbolOrIdent(line, lp)), Line: line}

	case opB:
		return &ast.Branch{Label: p.ident(line, lp), Line: line}

	case opBi:
		return &ast.BranchIf{Label: p.ident(line, lp), Line: line}

	case opBn:
		return &ast.BranchIfNot{Label: p.ident(line, lp), Line: line}

	case opRand:
		dst := p.reg(line, lp)
		lo := p.int32(line, lp)
		hi := p.int32(line, lp)
		return &ast.Random{Dst: dst, Lo: lo, Hi: hi, Line: line}

	case opCall:
		shift := p.int32(line, lp)
		label := p.ident(line, lp)
		return &ast.Call{OffsetShift: shift, Label: label, Line: line}

	case opRet:
		return &ast.Return{Line: line}

	case opYield:
		return &ast.Yield{Line: line}

	case opLog:
		return &ast.Log{Text: p.str(line, lp), Line: line}

	case opDebug:
		return &ast.Debug{Text: p.str(line, lp), Line: line}

	default:
		p.fail(line, opTok.Column, "unknown opcode %q", opTok.Literal)
		return nil
	}
}

func (p *parser) reg(line int, lp *lineParser) ast.Register {
	tok, ok := lp.expect(TokenIdent)
	if !ok {
		p.fail(line, lp.current().Column, "expected register operand")
		return 0
	}
	switch tok.Literal {
	case "R0":
		return 0
	case "R1":
		return 1
	case "R2":
		return 2
	case "R3":
		return 3
	default:
		p.fail(line, tok.Column, "invalid register %q", tok.Literal)
		return 0
	}
}

func (p *parser) int32(line int, lp *lineParser) int32 {
	tok, ok := lp.expect(TokenInt)
	if !ok {
		p.fail(line, lp.current().Column, "expected integer operand")
		return 0
	}
	return tok.IntValue
}

func (p *parser) ident(line int, lp *lineParser) string {
	tok, ok := lp.expect(TokenIdent)
	if !ok {
		p.fail(line, lp.current().Column, "expected identifier operand")
		return ""
	}
	return tok.Literal
}

func (p *parser) str(line int, lp *lineParser) string {
	tok, ok := lp.expect(TokenString)
	if !ok {
		p.fail(line, lp.current().Column, "expected string operand")
		return ""
	}
	return tok.Literal
}

// symbolOrIdent reads a cmp/calc operator. Alphabetic-looking operators never
// occur in this grammar, so only a symbol token (e.g. "==", "+") is accepted;
// any other token is reported as "expected operator".
func (p *parser) symbolOrIdent(line int, lp *lineParser) string {
	tok := lp.advance()
	if tok.Type != TokenSymbol {
		p.fail(line, tok.Column, "expected operator")
		return ""
	}
	return tok.Literal
}

// rangeExpr parses the cmpin operand: `v`, `lb..ub`, `lb..`, `..ub`, or `..`.
func (p *parser) rangeExpr(line int, lp *lineParser) ast.RangeExpr {
	var re ast.RangeExpr

	if lp.current().is(TokenSymbol, "..") {
		lp.advance()
		if lp.current().Type == TokenInt {
			re.HasUpper = true
			re.Upper = lp.advance().IntValue
		}
		return re
	}

	if lp.current().Type != TokenInt {
		p.fail(line, lp.current().Column, "expected range expression")
		return re
	}
	first := lp.advance().IntValue

	if lp.current().is(TokenSymbol, "..") {
		lp.advance()
		re.HasLower = true
		re.Lower = first
		if lp.current().Type == TokenInt {
			re.HasUpper = true
			re.Upper = lp.advance().IntValue
		}
		return re
	}

	re.IsValue = true
	re.Value = first
	return re
}
