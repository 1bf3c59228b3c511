package parser

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/token"
)

// parseStatement dispatches on the current token's keyword/shape. There is
// no distinction between "top-level" and "nested" statement grammars (spec
// §4.2's "top-level forms" are just additional statement shapes layered
// onto the general grammar), so ParseProgram and parseBlock both drive
// through this single dispatcher.
func (p *Parser) parseStatement() (ast.Stmt, *ParseError) {
	t := p.cur()
	if t.Kind == token.LBRACE {
		return p.parseBlock()
	}
	if t.Kind == token.IDENT {
		switch t.Literal {
		case "let":
			return p.parseVarDef()
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "for":
			return p.parseFor()
		case "return":
			return p.parseReturn()
		case "break":
			return p.parseBreak()
		case "continue":
			return p.parseContinue()
		case "throw":
			return p.parseThrow()
		case "try":
			return p.parseTryCatch()
		case "match":
			return p.parseMatch()
		case "fn":
			return p.parseFunction()
		case "class":
			return p.parseClass()
		case "enum":
			return p.parseEnum()
		case "namespace":
			return p.parseNamespace()
		case "import":
			return p.parseImport()
		}
	}
	return p.parseExprStatement()
}

func (p *Parser) parseExprStatement() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	x, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI, ErrMissingSemicolon, ";"); err != nil {
		return nil, err
	}
	return ast.NewExprStmt(p.span(start), x), nil
}

func (p *Parser) parseBlock() (*ast.Block, *ParseError) {
	start := p.cur().Span.Start
	if _, err := p.expect(token.LBRACE, ErrMissingLBrace, "{"); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.c.Is(token.RBRACE) {
		if p.c.IsEOF() {
			return nil, newError(ErrMissingRBrace, p.cur().Span, "unterminated block, expected '}'")
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(token.RBRACE, ErrMissingRBrace, "}"); err != nil {
		return nil, err
	}
	return ast.NewBlock(p.span(start), stmts), nil
}

// singleStmtAsBlock wraps one statement into a one-statement block, used for
// the brace-less bodies the grammar allows; `if` and `while` bodies always
// go through parseBlock and need braces.
func (p *Parser) singleStmtAsBlock() (*ast.Block, *ParseError) {
	if p.c.Is(token.LBRACE) {
		return p.parseBlock()
	}
	start := p.cur().Span.Start
	s, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewBlock(p.span(start), []ast.Stmt{s}), nil
}

// parseVarDef parses `let name (: T)? (= init)? ;` (spec §4.2).
func (p *Parser) parseVarDef() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	if _, err := p.expectKeyword("let", ErrInvalidSyntax); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT, ErrExpectedIdent, "variable name")
	if err != nil {
		return nil, err
	}
	var ann *ast.TypeName
	if p.c.Is(token.COLON) {
		p.c.Advance()
		ann, err = p.parseTypeName()
		if err != nil {
			return nil, err
		}
	}
	var init ast.Expr
	if p.c.Is(token.ASSIGN) {
		p.c.Advance()
		init, err = p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMI, ErrMissingSemicolon, ";"); err != nil {
		return nil, err
	}
	vd := ast.NewVarDef(p.span(start), name.Literal, ann, init)
	vd.IsDeducted = ann == nil
	return vd, nil
}

// parseIf parses `if cond { then } else { otherwise }` / `else if ...`
// chains, with no parentheses required around the condition.
func (p *Parser) parseIf() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // if
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var els ast.Stmt
	if p.c.IsKeyword("else") {
		p.c.Advance()
		if p.c.IsKeyword("if") {
			els, err = p.parseIf()
		} else {
			els, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(p.span(start), cond, then, els), nil
}

func (p *Parser) parseWhile() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // while
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	p.loopDepth++
	body, err := p.parseBlock()
	p.loopDepth--
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(p.span(start), cond, body), nil
}

// parseFor desugars `for(init; cond; step) { body }` to
// `{ init; while(cond) { body; step; } }` at parse time (spec §4.2).
func (p *Parser) parseFor() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // for
	if _, err := p.expect(token.LPAREN, ErrMissingLParen, "("); err != nil {
		return nil, err
	}

	var initStmt ast.Stmt
	var err *ParseError
	if p.c.IsKeyword("let") {
		initStmt, err = p.parseVarDef()
	} else {
		initStart := p.cur().Span.Start
		var initExpr ast.Expr
		initExpr, err = p.parseExpression(LOWEST)
		if err == nil {
			if _, err2 := p.expect(token.SEMI, ErrMissingSemicolon, ";"); err2 != nil {
				err = err2
			} else {
				initStmt = ast.NewExprStmt(p.span(initStart), initExpr)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI, ErrMissingSemicolon, ";"); err != nil {
		return nil, err
	}

	stepStart := p.cur().Span.Start
	step, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ErrMissingRParen, ")"); err != nil {
		return nil, err
	}

	p.loopDepth++
	body, err := p.parseBlock()
	p.loopDepth--
	if err != nil {
		return nil, err
	}

	bodyStmts := append(append([]ast.Stmt{}, body.Statements...), ast.NewExprStmt(p.span(stepStart), step))
	loopBody := ast.NewBlock(body.Span(), bodyStmts)
	whileStmt := ast.NewWhile(p.span(start), cond, loopBody)
	return ast.NewBlock(p.span(start), []ast.Stmt{initStmt, whileStmt}), nil
}

func (p *Parser) parseReturn() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // return
	var value ast.Expr
	if !p.c.Is(token.SEMI) {
		var err *ParseError
		value, err = p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMI, ErrMissingSemicolon, ";"); err != nil {
		return nil, err
	}
	return ast.NewReturn(p.span(start), value), nil
}

func (p *Parser) parseBreak() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	t := p.c.Advance()
	if p.loopDepth == 0 {
		return nil, newError(ErrBreakOutsideLoop, t.Span, "'break' outside a loop")
	}
	if _, err := p.expect(token.SEMI, ErrMissingSemicolon, ";"); err != nil {
		return nil, err
	}
	return ast.NewBreak(p.span(start)), nil
}

func (p *Parser) parseContinue() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	t := p.c.Advance()
	if p.loopDepth == 0 {
		return nil, newError(ErrContinueOutsideLoop, t.Span, "'continue' outside a loop")
	}
	if _, err := p.expect(token.SEMI, ErrMissingSemicolon, ";"); err != nil {
		return nil, err
	}
	return ast.NewContinue(p.span(start)), nil
}

func (p *Parser) parseThrow() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // throw
	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI, ErrMissingSemicolon, ";"); err != nil {
		return nil, err
	}
	return ast.NewThrow(p.span(start), value), nil
}

// parseTryCatch parses `try { body } catch v: T { } ...` (spec §4.2).
func (p *Parser) parseTryCatch() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // try
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var catchers []*ast.Catcher
	for p.c.IsKeyword("catch") {
		p.c.Advance()
		name, err := p.expect(token.IDENT, ErrExpectedIdent, "catch binding name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON, ErrMissingColon, ":"); err != nil {
			return nil, err
		}
		ty, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		cbody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		catchers = append(catchers, &ast.Catcher{BindName: name.Literal, Type: ty, Body: cbody})
	}
	return ast.NewTryCatch(p.span(start), body, catchers), nil
}

// parseMatch parses `match scrutinee { pattern => block, ... }` (spec §4.5).
// Each arm's pattern is parsed as a general expression and then classified
// by shape, per the Open Question in spec §9 ("Match-arm variable
// extraction ... unqualified identifiers not already resolvable ... become
// fresh pattern bindings"): a lone `_` is the wildcard, a lone identifier is
// a fresh binding, a two-part ScopeResol is a no-arg enumerator pattern, a
// call on a two-part ScopeResol is an enumerator-with-arguments pattern
// (each argument must itself be a bare identifier, becoming a fresh
// binding), and anything else is an equality pattern.
func (p *Parser) parseMatch() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // match
	scrutinee, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, ErrMissingLBrace, "{"); err != nil {
		return nil, err
	}
	var arms []*ast.MatchArm
	for !p.c.Is(token.RBRACE) {
		arm, err := p.parseMatchArm()
		if err != nil {
			return nil, err
		}
		arms = append(arms, arm)
		if p.c.Is(token.COMMA) {
			p.c.Advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACE, ErrMissingRBrace, "}"); err != nil {
		return nil, err
	}
	return ast.NewMatch(p.span(start), scrutinee, arms), nil
}

func (p *Parser) parseMatchArm() (*ast.MatchArm, *ParseError) {
	start := p.cur().Span.Start

	if p.c.Is(token.IDENT) && p.cur().Literal == "_" {
		p.c.Advance()
		if _, err := p.expect(token.FAT_ARROW, ErrMissingArrow, "=>"); err != nil {
			return nil, err
		}
		body, err := p.singleStmtAsBlock()
		if err != nil {
			return nil, err
		}
		return ast.NewMatchArm(p.span(start), ast.PatWildcard, body), nil
	}

	patExpr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FAT_ARROW, ErrMissingArrow, "=>"); err != nil {
		return nil, err
	}
	body, err := p.singleStmtAsBlock()
	if err != nil {
		return nil, err
	}

	switch e := patExpr.(type) {
	case *ast.Identifier:
		arm := ast.NewMatchArm(p.span(start), ast.PatBindVar, body)
		arm.BindName = e.Name
		return arm, nil
	case *ast.ScopeResol:
		arm := ast.NewMatchArm(p.span(start), ast.PatEnumerator, body)
		arm.Scope = e
		return arm, nil
	case *ast.CallFunc:
		sr, ok := e.Callee.(*ast.ScopeResol)
		if !ok {
			arm := ast.NewMatchArm(p.span(start), ast.PatExpr, body)
			arm.Expr = patExpr
			return arm, nil
		}
		arm := ast.NewMatchArm(p.span(start), ast.PatEnumeratorArgs, body)
		arm.Scope = sr
		for _, a := range e.Args {
			id, ok := a.Value.(*ast.Identifier)
			if !ok {
				return nil, newError(ErrInvalidSyntax, a.Value.Span(),
					"enumerator pattern arguments must be bare identifiers")
			}
			id.IsFreshBind = true
			arm.ArgBindings = append(arm.ArgBindings, id)
		}
		return arm, nil
	default:
		arm := ast.NewMatchArm(p.span(start), ast.PatExpr, body)
		arm.Expr = patExpr
		return arm, nil
	}
}
