package parser

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/token"
)

// parseFuncParams parses a parenthesized parameter list shared by
// functions, lambdas, methods, and constructors: `(self, a: int, b: int)`.
// A parameter followed by `..` is marked variadic (spec §4.5 "arity check
// (with variadic support via is_var_arg — a trailing unspecified tail)");
// the concrete `name..` marker is this front end's resolution of that
// otherwise-unspecified syntax.
func (p *Parser) parseFuncParams() ([]*ast.FuncParam, *ParseError) {
	if _, err := p.expect(token.LPAREN, ErrMissingLParen, "("); err != nil {
		return nil, err
	}
	var params []*ast.FuncParam
	for !p.c.Is(token.RPAREN) {
		name, err := p.expect(token.IDENT, ErrExpectedIdent, "parameter name")
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
		isVarArg := false
		if p.c.Is(token.DOT_DOT) {
			p.c.Advance()
			isVarArg = true
		}
		params = append(params, &ast.FuncParam{Name: name.Literal, Annotation: ann, IsVarArg: isVarArg})
		if p.c.Is(token.COMMA) {
			p.c.Advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN, ErrMissingRParen, ")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseTemplateParams() ([]*ast.TemplateParam, *ParseError) {
	if !p.c.Is(token.LT) {
		return nil, nil
	}
	p.c.Advance()
	var params []*ast.TemplateParam
	for {
		name, err := p.expect(token.IDENT, ErrExpectedIdent, "template parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.TemplateParam{Name: name.Literal})
		if p.c.Is(token.COMMA) {
			p.c.Advance()
			continue
		}
		break
	}
	if !p.curIsCloseAngle() {
		return nil, newError(ErrExpectedType, p.cur().Span, "expected '>' to close template parameter list")
	}
	p.consumeCloseAngle()
	return params, nil
}

// parseFunction parses `fn name<T, U>(args) -> T { body }` (spec §4.2).
func (p *Parser) parseFunction() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // fn
	name, err := p.expect(token.IDENT, ErrExpectedIdent, "function name")
	if err != nil {
		return nil, err
	}
	templateParams, err := p.parseTemplateParams()
	if err != nil {
		return nil, err
	}
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
	fn := ast.NewFunction(p.span(start), name.Literal)
	fn.TemplateParams = templateParams
	fn.Params = params
	fn.RetType = ret
	fn.Body = body
	return fn, nil
}

// parseEnum parses `enum Name { ctor, ctor(T), ctor(a: T, b: U), ... }`.
func (p *Parser) parseEnum() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // enum
	name, err := p.expect(token.IDENT, ErrExpectedIdent, "enum name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, ErrMissingLBrace, "{"); err != nil {
		return nil, err
	}
	var ctors []*ast.EnumCtor
	for !p.c.Is(token.RBRACE) {
		ctorStart := p.cur().Span.Start
		ctorName, err := p.expect(token.IDENT, ErrExpectedIdent, "enum constructor name")
		if err != nil {
			return nil, err
		}
		var fields []*ast.FuncParam
		if p.c.Is(token.LPAREN) {
			p.c.Advance()
			for !p.c.Is(token.RPAREN) {
				field, err := p.parseEnumCtorField()
				if err != nil {
					return nil, err
				}
				fields = append(fields, field)
				if p.c.Is(token.COMMA) {
					p.c.Advance()
					continue
				}
				break
			}
			if _, err := p.expect(token.RPAREN, ErrMissingRParen, ")"); err != nil {
				return nil, err
			}
		}
		ctors = append(ctors, ast.NewEnumCtor(p.span(ctorStart), ctorName.Literal, fields))
		if p.c.Is(token.COMMA) {
			p.c.Advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBRACE, ErrMissingRBrace, "}"); err != nil {
		return nil, err
	}
	e := ast.NewEnum(p.span(start), name.Literal)
	e.Ctors = ctors
	return e, nil
}

// parseEnumCtorField parses one enum constructor field, which may be a bare
// type (`Some(int)`) or a named field (`Point(x: int, y: int)`).
func (p *Parser) parseEnumCtorField() (*ast.FuncParam, *ParseError) {
	if p.c.Is(token.IDENT) && p.peek(1).Kind == token.COLON {
		name := p.c.Advance().Literal
		p.c.Advance() // :
		ty, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		return &ast.FuncParam{Name: name, Annotation: ty}, nil
	}
	ty, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	return &ast.FuncParam{Annotation: ty}, nil
}

// parseClass parses `class Name [: Base] { fields...; ctor; methods... }`
// (spec §4.2, §4.5). A field is `let name: T (= init)?;`; the constructor is
// a method whose name equals the class name; other methods are `fn`
// declarations optionally marked `virtual`/`override`.
func (p *Parser) parseClass() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // class
	name, err := p.expect(token.IDENT, ErrExpectedIdent, "class name")
	if err != nil {
		return nil, err
	}
	cls := ast.NewClass(p.span(start), name.Literal)

	if p.c.Is(token.COLON) {
		p.c.Advance()
		base, err := p.expect(token.IDENT, ErrExpectedIdent, "base class name")
		if err != nil {
			return nil, err
		}
		cls.InheritBaseName = base.Literal
	}
	if p.c.IsKeyword("final") {
		p.c.Advance()
		cls.IsFinal = true
	}

	if _, err := p.expect(token.LBRACE, ErrMissingLBrace, "{"); err != nil {
		return nil, err
	}
	fieldIdx := 0
	for !p.c.Is(token.RBRACE) {
		switch {
		case p.c.IsKeyword("let"):
			field, err := p.parseClassField(fieldIdx)
			if err != nil {
				return nil, err
			}
			fieldIdx++
			cls.Fields = append(cls.Fields, field)

		case p.c.IsKeyword("virtual"), p.c.IsKeyword("override"), p.c.IsKeyword("fn"):
			isVirtual := false
			isOverride := false
			for p.c.IsKeyword("virtual") || p.c.IsKeyword("override") {
				if p.c.IsKeyword("virtual") {
					isVirtual = true
				} else {
					isOverride = true
				}
				p.c.Advance()
			}
			method, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			fn := method.(*ast.Function)
			fn.IsVirtual = isVirtual
			fn.IsOverride = isOverride
			fn.IsMethod = true
			cls.Methods = append(cls.Methods, fn)

		case p.c.Is(token.IDENT) && p.cur().Literal == name.Literal && p.peek(1).Kind == token.LPAREN:
			ctor, err := p.parseConstructor(cls.Name)
			if err != nil {
				return nil, err
			}
			cls.Ctor = ctor

		default:
			return nil, newError(ErrInvalidSyntax, p.cur().Span,
				"expected a field, constructor, or method declaration inside class %q, got %q", cls.Name, p.cur().Literal)
		}
	}
	if _, err := p.expect(token.RBRACE, ErrMissingRBrace, "}"); err != nil {
		return nil, err
	}
	return cls, nil
}

func (p *Parser) parseClassField(index int) (*ast.ClassField, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // let
	name, err := p.expect(token.IDENT, ErrExpectedIdent, "field name")
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
	return ast.NewClassField(p.span(start), name.Literal, ann, init, index), nil
}

// parseConstructor parses `Name(self, ...) { body }`, i.e. a Function whose
// name is the class name, with no explicit return type.
func (p *Parser) parseConstructor(className string) (*ast.Function, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // class name used as constructor name
	params, err := p.parseFuncParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn := ast.NewFunction(p.span(start), className)
	fn.Params = params
	fn.Body = body
	fn.IsCtor = true
	return fn, nil
}

// parseNamespace parses `namespace Name { decls... }`. Sibling namespaces of
// the same name merge at scope-build time (spec §4.4); the parser emits one
// node per textual occurrence.
func (p *Parser) parseNamespace() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // namespace
	name, err := p.expect(token.IDENT, ErrExpectedIdent, "namespace name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, ErrMissingLBrace, "{"); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.c.Is(token.RBRACE) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(token.RBRACE, ErrMissingRBrace, "}"); err != nil {
		return nil, err
	}
	return ast.NewNamespace(p.span(start), name.Literal, stmts), nil
}

// parseImport parses `import a/b/c;`, desugaring to
// `let base = @import("a/b/c.fire");` (spec §4.2, §6). The path is written
// as a `/`-separated chain of identifiers; the local name bound is its last
// segment.
func (p *Parser) parseImport() (ast.Stmt, *ParseError) {
	start := p.cur().Span.Start
	p.c.Advance() // import
	segs := []string{}
	first, err := p.expect(token.IDENT, ErrExpectedIdent, "import path segment")
	if err != nil {
		return nil, err
	}
	segs = append(segs, first.Literal)
	for p.c.Is(token.SLASH) {
		p.c.Advance()
		seg, err := p.expect(token.IDENT, ErrExpectedIdent, "import path segment")
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg.Literal)
	}
	if _, err := p.expect(token.SEMI, ErrMissingSemicolon, ";"); err != nil {
		return nil, err
	}
	path := joinSlash(segs)
	localName := segs[len(segs)-1]
	span := p.span(start)

	pathLit := ast.NewValue(span, ast.VString, path+".fire")
	pathLit.StrVal = path + ".fire"
	importCall := ast.NewCallFunc(span, ast.NewIdentifier(span, "@import"), []ast.Argument{{Value: pathLit}})
	desugared := ast.NewVarDef(span, localName, nil, importCall)
	desugared.IsDeducted = true

	imp := ast.NewImport(span, path, localName)
	imp.Desugared = desugared
	return imp, nil
}

func joinSlash(segs []string) string {
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += "/"
		}
		out += s
	}
	return out
}
