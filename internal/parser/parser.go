// Package parser implements the hand-written Pratt/precedence-climbing
// parser described in spec §4.2: tokens in, AST out, operator-precedence
// expressions, qualified names, template-argument brackets, lambdas,
// pattern-bearing match arms, and class declarations.
//
// Error recovery is intentionally absent (spec §4.2 "Error recovery:
// none"): the first offending token aborts parsing of the current file with
// a ParseError, unlike the teacher parser's panic-mode synchronize/recover
// machinery (internal/parser/error_recovery.go in the reference front end),
// which this front end has no use for.
package parser

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/diag"
	"github.com/cwbudde/flame/internal/token"
)

// precedence levels, low to high, mirroring spec §4.2's ladder exactly:
// Assign → LogOr → LogAnd → BitOr → BitXor → BitAnd → Range → Equality
// → Comparison → Shift → Additive → Multiplicative → Unary → Postfix
// → Primary.
type precedence int

const (
	LOWEST precedence = iota
	ASSIGN
	LOGOR
	LOGAND
	BITOR
	BITXOR
	BITAND
	RANGE
	EQUALS
	COMPARISON
	SHIFT
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	POSTFIX
	PRIMARY
)

var precedences = map[token.Kind]precedence{
	token.ASSIGN: ASSIGN, token.PLUS_ASSIGN: ASSIGN, token.MINUS_ASSIGN: ASSIGN,
	token.STAR_ASSIGN: ASSIGN, token.SLASH_ASSIGN: ASSIGN,
	token.OR_OR:  LOGOR,
	token.AND_AND: LOGAND,
	token.PIPE:  BITOR,
	token.CARET: BITXOR,
	token.AMP:   BITAND,
	token.DOT_DOT: RANGE,
	token.EQ: EQUALS, token.NE: EQUALS,
	token.LT: COMPARISON, token.LE: COMPARISON, token.GT: COMPARISON, token.GE: COMPARISON,
	token.LSHIFT: SHIFT, token.RSHIFT: SHIFT,
	token.PLUS: ADDITIVE, token.MINUS: ADDITIVE,
	token.STAR: MULTIPLICATIVE, token.SLASH: MULTIPLICATIVE, token.PERCENT: MULTIPLICATIVE,
	token.LPAREN: POSTFIX, token.LBRACKET: POSTFIX, token.DOT: POSTFIX, token.COLON_COLON: POSTFIX,
}

// Parser consumes a fully tokenized source file and produces an *ast.Program.
type Parser struct {
	c        *Cursor
	file     string
	loopDepth int // >0 while parsing a while/for body, guards break/continue

	// splitPending is true when a '>>' token has had its first half consumed
	// as a template/type-argument-list closer but not yet advanced past
	// (spec §4.2 "when closing, >> is split into two > tokens if the depth
	// demands"). See curIsCloseAngle/consumeCloseAngle in expr.go.
	splitPending bool
}

// New creates a Parser over a token slice produced by lexer.Lexer.Tokenize.
func New(file string, toks []token.Token) *Parser {
	return &Parser{c: NewCursor(toks), file: file}
}

func (p *Parser) cur() token.Token  { return p.c.Current() }
func (p *Parser) peek(n int) token.Token { return p.c.Peek(n) }

func (p *Parser) span(start diag.Position) diag.Span {
	return diag.Span{Start: start, End: p.prevEnd()}
}

// prevEnd returns the end position of the token just consumed; used to
// close out a span after advancing past the last token of a construct.
func (p *Parser) prevEnd() diag.Position {
	if p.c.pos == 0 {
		return p.cur().Span.Start
	}
	return p.c.toks[p.c.pos-1].Span.End
}

func (p *Parser) expect(k token.Kind, code, what string) (token.Token, *ParseError) {
	if !p.c.Is(k) {
		return token.Token{}, newError(code, p.cur().Span, "expected %s, got %q", what, p.cur().Literal)
	}
	return p.c.Advance(), nil
}

func (p *Parser) expectKeyword(kw, code string) (token.Token, *ParseError) {
	if !p.c.IsKeyword(kw) {
		return token.Token{}, newError(code, p.cur().Span, "expected keyword %q, got %q", kw, p.cur().Literal)
	}
	return p.c.Advance(), nil
}

// ParseProgram parses the whole token stream into a compilation unit (spec
// §2 "bytes → Lexer → Parser → AST").
func (p *Parser) ParseProgram() (*ast.Program, *ParseError) {
	start := p.cur().Span.Start
	prog := ast.NewProgram(p.file, diag.Span{Start: start})
	for !p.c.IsEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}
