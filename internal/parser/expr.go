package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/token"
)

// parseExpression is the Pratt/precedence-climbing core (spec §4.2): parse
// one prefix term, then keep folding infix/postfix operators in as long as
// their precedence exceeds the caller's floor.
func (p *Parser) parseExpression(prec precedence) (ast.Expr, *ParseError) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for !p.c.IsEOF() && prec < p.curPrecedence() {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) curPrecedence() precedence {
	if pr, ok := precedences[p.cur().Kind]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) parsePrefix() (ast.Expr, *ParseError) {
	t := p.cur()
	switch t.Kind {
	case token.INT, token.HEX, token.BIN, token.FLOAT, token.SIZE, token.CHAR, token.STRING:
		return p.parseLiteral()
	case token.MINUS:
		return p.parseUnary(ast.OpNeg)
	case token.BANG:
		return p.parseUnary(ast.OpNot)
	case token.TILDE:
		return p.parseUnary(ast.OpBitNot)
	case token.LPAREN:
		return p.parseGroupedExpression()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.IDENT:
		switch t.Literal {
		case "true", "false":
			return p.parseBoolLiteral()
		case "lambda":
			return p.parseLambda()
		default:
			return p.parseIdentifierOrScope()
		}
	}
	return nil, newError(ErrNoPrefixParse, t.Span, "no expression can start with %q", t.Literal)
}

func (p *Parser) parseInfix(left ast.Expr) (ast.Expr, *ParseError) {
	t := p.cur()
	switch t.Kind {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN:
		return p.parseAssign(left)
	case token.LPAREN:
		return p.parseCallArgs(left)
	case token.LBRACKET:
		return p.parseIndex(left)
	case token.DOT:
		return p.parseMemberAccess(left)
	default:
		return p.parseBinary(left)
	}
}

func (p *Parser) parseLiteral() (ast.Expr, *ParseError) {
	t := p.c.Advance()
	span := t.Span
	switch t.Kind {
	case token.INT:
		n, err := strconv.ParseInt(t.Literal, 10, 64)
		if err != nil {
			return nil, newError(ErrInvalidSyntax, span, "invalid integer literal %q", t.Literal)
		}
		v := ast.NewValue(span, ast.VInt, t.Literal)
		v.IntVal = n
		return v, nil
	case token.HEX:
		n, err := strconv.ParseInt(strings.TrimPrefix(t.Literal, "0x"), 16, 64)
		if err != nil {
			n, err = strconv.ParseInt(strings.TrimPrefix(t.Literal, "0X"), 16, 64)
		}
		if err != nil {
			return nil, newError(ErrInvalidSyntax, span, "invalid hex literal %q", t.Literal)
		}
		v := ast.NewValue(span, ast.VInt, t.Literal)
		v.IntVal = n
		return v, nil
	case token.BIN:
		n, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimPrefix(t.Literal, "0b"), "0B"), 2, 64)
		if err != nil {
			return nil, newError(ErrInvalidSyntax, span, "invalid binary literal %q", t.Literal)
		}
		v := ast.NewValue(span, ast.VInt, t.Literal)
		v.IntVal = n
		return v, nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(t.Literal, 64)
		if err != nil {
			return nil, newError(ErrInvalidSyntax, span, "invalid float literal %q", t.Literal)
		}
		v := ast.NewValue(span, ast.VFloat, t.Literal)
		v.FloatVal = f
		return v, nil
	case token.SIZE:
		n, err := strconv.ParseInt(strings.TrimSuffix(t.Literal, "u"), 10, 64)
		if err != nil {
			return nil, newError(ErrInvalidSyntax, span, "invalid size literal %q", t.Literal)
		}
		v := ast.NewValue(span, ast.VSize, t.Literal)
		v.IntVal = n
		return v, nil
	case token.CHAR:
		v := ast.NewValue(span, ast.VChar, t.Literal)
		v.StrVal = t.Literal
		return v, nil
	case token.STRING:
		v := ast.NewValue(span, ast.VString, t.Literal)
		v.StrVal = t.Literal
		return v, nil
	}
	return nil, newError(ErrInvalidSyntax, span, "unreachable literal kind")
}

func (p *Parser) parseBoolLiteral() (ast.Expr, *ParseError) {
	t := p.c.Advance()
	v := ast.NewValue(t.Span, ast.VBool, t.Literal)
	v.BoolVal = t.Literal == "true"
	return v, nil
}

func (p *Parser) parseUnary(op ast.UnaryOp) (ast.Expr, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance()
	operand, err := p.parseExpression(UNARY)
	if err != nil {
		return nil, err
	}
	return ast.NewUnary(p.span(start), op, operand), nil
}

func (p *Parser) parseGroupedExpression() (ast.Expr, *ParseError) {
	p.c.Advance() // (
	inner, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ErrMissingRParen, ")"); err != nil {
		return nil, err
	}
	return inner, nil
}

func (p *Parser) parseArrayLiteral() (ast.Expr, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // [
	var elems []ast.Expr
	for !p.c.Is(token.RBRACKET) {
		e, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.c.Is(token.COMMA) {
			p.c.Advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACKET, ErrMissingRBracket, "]"); err != nil {
		return nil, err
	}
	return ast.NewArray(p.span(start), elems), nil
}

func (p *Parser) parseLambda() (ast.Expr, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // lambda
	params, err := p.parseFuncParams()
	if err != nil {
		return nil, err
	}
	var ret *ast.TypeName
	if p.c.Is(token.ARROW) {
		p.c.Advance()
		ret, err = p.parseTypeName()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewLambdaFunc(p.span(start), params, ret, body), nil
}

// parseIdentifierOrScope parses a bare identifier, an explicit template
// argument list (`name@<T1, T2>`), or a qualified name collapsed from
// chained `::` suffixes into a single ScopeResol node (spec §4.2
// "Qualified names").
func (p *Parser) parseIdentifierOrScope() (ast.Expr, *ParseError) {
	start := p.cur().Span.Start
	nameTok := p.c.Advance()

	if p.c.Is(token.AT) && p.peek(1).Kind == token.LT {
		args, err := p.parseExplicitTemplateArgs()
		if err != nil {
			return nil, err
		}
		id := ast.NewIdentifier(p.span(start), nameTok.Literal)
		id.TypeArgs = args
		return id, nil
	}

	if p.c.Is(token.COLON_COLON) {
		parts := []string{nameTok.Literal}
		for p.c.Is(token.COLON_COLON) {
			p.c.Advance()
			part, err := p.expect(token.IDENT, ErrExpectedIdent, "identifier after '::'")
			if err != nil {
				return nil, err
			}
			parts = append(parts, part.Literal)
		}
		sr := ast.NewScopeResol(p.span(start), parts)
		if p.c.IsKeyword("of") {
			p.c.Advance()
			sig, err := p.parseSignature()
			if err != nil {
				return nil, err
			}
			sr.OverloadGuide = sig
		}
		return sr, nil
	}

	return ast.NewIdentifier(p.span(start), nameTok.Literal), nil
}

func (p *Parser) parseCallArgs(callee ast.Expr) (ast.Expr, *ParseError) {
	start := callee.Span().Start
	p.c.Advance() // (
	var args []ast.Argument
	for !p.c.Is(token.RPAREN) {
		name := ""
		if p.c.Is(token.IDENT) && p.peek(1).Kind == token.COLON {
			name = p.c.Advance().Literal
			p.c.Advance() // :
		}
		val, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, ast.Argument{Name: name, Value: val})
		if p.c.Is(token.COMMA) {
			p.c.Advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN, ErrMissingRParen, ")"); err != nil {
		return nil, err
	}
	return ast.NewCallFunc(p.span(start), callee, args), nil
}

func (p *Parser) parseIndex(target ast.Expr) (ast.Expr, *ParseError) {
	start := target.Span().Start
	p.c.Advance() // [
	idx, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACKET, ErrMissingRBracket, "]"); err != nil {
		return nil, err
	}
	return ast.NewIndexRef(p.span(start), target, idx), nil
}

func (p *Parser) parseMemberAccess(target ast.Expr) (ast.Expr, *ParseError) {
	start := target.Span().Start
	p.c.Advance() // .
	member, err := p.expect(token.IDENT, ErrExpectedIdent, "member name after '.'")
	if err != nil {
		return nil, err
	}
	return ast.NewMemberAccess(p.span(start), target, member.Literal), nil
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.OR_OR: ast.OpLogOr, token.AND_AND: ast.OpLogAnd,
	token.PIPE: ast.OpBitOr, token.CARET: ast.OpBitXor, token.AMP: ast.OpBitAnd,
	token.EQ: ast.OpEq, token.NE: ast.OpNe,
	token.LT: ast.OpLt, token.LE: ast.OpLe, token.GT: ast.OpGt, token.GE: ast.OpGe,
	token.LSHIFT: ast.OpShl, token.RSHIFT: ast.OpShr,
	token.PLUS: ast.OpAdd, token.MINUS: ast.OpSub,
	token.STAR: ast.OpMul, token.SLASH: ast.OpDiv, token.PERCENT: ast.OpMod,
	token.DOT_DOT: ast.OpRange,
}

// parseBinary handles every left-associative binary operator: the RHS is
// parsed at the operator's own precedence so a same-precedence operator to
// its right starts a new parseExpression call rather than folding into this
// one (spec §4.2 "everything else is left-associative").
func (p *Parser) parseBinary(left ast.Expr) (ast.Expr, *ParseError) {
	t := p.c.Advance()
	op, ok := binaryOps[t.Kind]
	if !ok {
		return nil, newError(ErrInvalidSyntax, t.Span, "unexpected operator %q", t.Literal)
	}
	prec := precedences[t.Kind]
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	start := left.Span().Start
	return ast.NewBinary(p.span(start), op, left, right), nil
}

var compoundOps = map[token.Kind]string{
	token.PLUS_ASSIGN: "+", token.MINUS_ASSIGN: "-", token.STAR_ASSIGN: "*", token.SLASH_ASSIGN: "/",
}
var compoundBinOps = map[string]ast.BinaryOp{
	"+": ast.OpAdd, "-": ast.OpSub, "*": ast.OpMul, "/": ast.OpDiv,
}

// parseAssign handles `=` and its desugared compound forms (spec §4.2
// "Compound assignments ... desugar to lhs = lhs op rhs at parse time").
// Assignment is right-associative: the RHS is parsed one precedence level
// below ASSIGN so a chained `a = b = c` keeps folding to the right.
func (p *Parser) parseAssign(left ast.Expr) (ast.Expr, *ParseError) {
	t := p.c.Advance()
	start := left.Span().Start
	rhs, err := p.parseExpression(ASSIGN - 1)
	if err != nil {
		return nil, err
	}
	if t.Kind == token.ASSIGN {
		return ast.NewAssign(p.span(start), left, rhs, ""), nil
	}
	sym := compoundOps[t.Kind]
	combined := ast.NewBinary(p.span(start), compoundBinOps[sym], left, rhs)
	return ast.NewAssign(p.span(start), left, combined, sym), nil
}

// --- type names, signatures, and the `@<...>` template-bracket closer ---

// curIsCloseAngle reports whether the cursor is positioned at a token that
// can close a type-argument list: a lone '>', or the first half of a '>>'
// not yet split by a shallower nesting level (spec §4.2 "when closing, >>
// is split into two > tokens if the depth demands").
func (p *Parser) curIsCloseAngle() bool {
	if p.splitPending {
		return true
	}
	return p.c.Is(token.GT) || p.c.Is(token.RSHIFT)
}

// consumeCloseAngle closes exactly one nesting level. Call it once per
// level being closed; two calls against a single '>>' token correctly
// consume both levels without the lexer ever re-scanning.
func (p *Parser) consumeCloseAngle() {
	if p.splitPending {
		p.splitPending = false
		p.c.Advance() // now really past the '>>' token
		return
	}
	if p.c.Is(token.RSHIFT) {
		p.splitPending = true
		return
	}
	if p.c.Is(token.GT) {
		p.c.Advance()
	}
}

// parseExplicitTemplateArgs parses `@<T1, T2, ...>` following an identifier
// (spec §4.2 "Primary admits ... identifier possibly followed by
// @<T1, T2, …> for explicit template arguments").
func (p *Parser) parseExplicitTemplateArgs() ([]*ast.TypeName, *ParseError) {
	p.c.Advance() // @
	if _, err := p.expect(token.LT, ErrExpectedType, "'<' to start @<...> template argument list"); err != nil {
		return nil, err
	}
	var args []*ast.TypeName
	for {
		t, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		if p.c.Is(token.COMMA) {
			p.c.Advance()
			continue
		}
		break
	}
	if !p.curIsCloseAngle() {
		return nil, newError(ErrExpectedType, p.cur().Span,
			"expected '>' to close template argument list, got %q", p.cur().Literal)
	}
	p.consumeCloseAngle()
	return args, nil
}

// parseTypeName parses a type annotation: a bare name, or a name with a
// `<...>` parameter list (`Vector<Int>`, `Dict<String, Int>`). Unlike
// explicit call-site template arguments this never needs the `@` marker —
// a type annotation position has no competing "less-than" reading, so the
// ambiguity spec §4.2 singles out for expression position does not arise
// here.
func (p *Parser) parseTypeName() (*ast.TypeName, *ParseError) {
	start := p.cur().Span.Start
	nameTok, err := p.expect(token.IDENT, ErrExpectedType, "type name")
	if err != nil {
		return nil, err
	}
	var params []*ast.TypeName
	if p.c.Is(token.LT) {
		p.c.Advance()
		for {
			pt, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			params = append(params, pt)
			if p.c.Is(token.COMMA) {
				p.c.Advance()
				continue
			}
			break
		}
		if !p.curIsCloseAngle() {
			return nil, newError(ErrExpectedType, p.cur().Span,
				"expected '>' to close type argument list for %q, got %q (if you meant a template argument, write @<...>)",
				nameTok.Literal, p.cur().Literal)
		}
		p.consumeCloseAngle()
	}
	return ast.NewTypeName(p.span(start), nameTok.Literal, params), nil
}

// parseSignature parses `(T1, T2, ...) -> U`, used both as an `of` overload
// guide (spec §4.2 "Qualified names") and as a function-typed annotation.
func (p *Parser) parseSignature() (*ast.Signature, *ParseError) {
	start := p.cur().Span.Start
	if _, err := p.expect(token.LPAREN, ErrMissingLParen, "("); err != nil {
		return nil, err
	}
	var params []*ast.TypeName
	varArgs := false
	for !p.c.Is(token.RPAREN) {
		t, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		params = append(params, t)
		if p.c.Is(token.DOT_DOT) {
			p.c.Advance()
			varArgs = true
		}
		if p.c.Is(token.COMMA) {
			p.c.Advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN, ErrMissingRParen, ")"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW, ErrMissingArrow, "->"); err != nil {
		return nil, err
	}
	ret, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	return ast.NewSignature(p.span(start), params, ret, varArgs), nil
}
