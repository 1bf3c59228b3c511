package parser

import (
	"testing"

	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, lexErrs := lexer.New("t.fire", []byte(src)).Tokenize()
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	prog, err := New("t.fire", toks).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func mustFail(t *testing.T, src string) *ParseError {
	t.Helper()
	toks, _ := lexer.New("t.fire", []byte(src)).Tokenize()
	_, err := New("t.fire", toks).ParseProgram()
	if err == nil {
		t.Fatalf("expected a parse error for %q", src)
	}
	return err
}

func TestParseAddFunction(t *testing.T) {
	prog := mustParse(t, `fn add(a: int, b: int) -> int { return a + b; } fn main() -> int { return add(2, 3); }`)
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 top-level statements, got %d", len(prog.Statements))
	}
	fn, ok := prog.Statements[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected *ast.Function, got %T", prog.Statements[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[0].Annotation.Name != "int" {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if fn.RetType == nil || fn.RetType.Name != "int" {
		t.Fatalf("expected return type int, got %+v", fn.RetType)
	}
	ret, ok := fn.Body.Statements[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected *ast.Return, got %T", fn.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.Binary)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected a + b, got %#v", ret.Value)
	}
}

func TestParseGenericIdentityFunction(t *testing.T) {
	prog := mustParse(t, `fn id<T>(x: T) -> T { return x; } println(id(42)); println(id@<string>("hi"));`)
	fn := prog.Statements[0].(*ast.Function)
	if len(fn.TemplateParams) != 1 || fn.TemplateParams[0].Name != "T" {
		t.Fatalf("expected one template param T, got %+v", fn.TemplateParams)
	}
	// println(id@<string>("hi"));
	exprStmt := prog.Statements[2].(*ast.ExprStmt)
	call := exprStmt.X.(*ast.CallFunc)
	inner := call.Args[0].Value.(*ast.CallFunc)
	innerID := inner.Callee.(*ast.Identifier)
	if innerID.Name != "id" || len(innerID.TypeArgs) != 1 || innerID.TypeArgs[0].Name != "string" {
		t.Fatalf("expected explicit template arg string, got %+v", innerID)
	}
}

func TestParseNestedTemplateArgsSplitsRShift(t *testing.T) {
	// Vec<Vec<Int>> requires the closing ">>" to split into two ">" tokens.
	prog := mustParse(t, `fn f<T>(x: T) -> T { return x; } f@<Vec<Vec<Int>>>(v);`)
	exprStmt := prog.Statements[1].(*ast.ExprStmt)
	call := exprStmt.X.(*ast.CallFunc)
	id := call.Callee.(*ast.Identifier)
	if len(id.TypeArgs) != 1 {
		t.Fatalf("expected one top-level template arg, got %d", len(id.TypeArgs))
	}
	outer := id.TypeArgs[0]
	if outer.Name != "Vec" || len(outer.Params) != 1 {
		t.Fatalf("expected Vec<...>, got %+v", outer)
	}
	inner := outer.Params[0]
	if inner.Name != "Vec" || len(inner.Params) != 1 || inner.Params[0].Name != "Int" {
		t.Fatalf("expected nested Vec<Int>, got %+v", inner)
	}
}

func TestParseEnumAndMatch(t *testing.T) {
	prog := mustParse(t, `
		enum Opt { None, Some(int) }
		fn unwrap(o: Opt) -> int {
			match o {
				Opt::Some(v) => { return v; },
				Opt::None => { throw "none"; },
			}
		}
	`)
	en := prog.Statements[0].(*ast.Enum)
	if en.Name != "Opt" || len(en.Ctors) != 2 || en.Ctors[0].Name != "None" || en.Ctors[1].Name != "Some" {
		t.Fatalf("unexpected enum shape: %+v", en)
	}
	if len(en.Ctors[1].Fields) != 1 || en.Ctors[1].Fields[0].Annotation.Name != "int" {
		t.Fatalf("expected Some(int), got %+v", en.Ctors[1].Fields)
	}

	fn := prog.Statements[1].(*ast.Function)
	match := fn.Body.Statements[0].(*ast.Match)
	if len(match.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(match.Arms))
	}
	arm0 := match.Arms[0]
	if arm0.Pattern != ast.PatEnumeratorArgs || arm0.Scope.String() != "Opt::Some" {
		t.Fatalf("unexpected arm0: %+v", arm0)
	}
	if len(arm0.ArgBindings) != 1 || arm0.ArgBindings[0].Name != "v" {
		t.Fatalf("expected binding v, got %+v", arm0.ArgBindings)
	}
	if _, ok := arm0.Body.Statements[0].(*ast.Return); !ok {
		t.Fatalf("expected return inside arm0 body, got %T", arm0.Body.Statements[0])
	}
	arm1 := match.Arms[1]
	if arm1.Pattern != ast.PatEnumerator || arm1.Scope.String() != "Opt::None" {
		t.Fatalf("unexpected arm1: %+v", arm1)
	}
}

func TestParseClassWithVirtualOverride(t *testing.T) {
	prog := mustParse(t, `
		class Base {
			virtual fn f(self) -> int { return 1; }
		}
		class D : Base {
			override fn f(self) -> int { return 2; }
		}
		let b: Base = D();
		b.f();
	`)
	base := prog.Statements[0].(*ast.Class)
	if len(base.Methods) != 1 || !base.Methods[0].IsVirtual {
		t.Fatalf("expected one virtual method on Base, got %+v", base.Methods)
	}
	derived := prog.Statements[1].(*ast.Class)
	if derived.InheritBaseName != "Base" || !derived.Methods[0].IsOverride {
		t.Fatalf("expected D : Base with an override method, got %+v", derived)
	}

	varDef := prog.Statements[2].(*ast.VarDef)
	ctorCall := varDef.Init.(*ast.CallFunc)
	if ctorCall.Callee.(*ast.Identifier).Name != "D" {
		t.Fatalf("expected constructor call to D, got %+v", ctorCall.Callee)
	}

	exprStmt := prog.Statements[3].(*ast.ExprStmt)
	methodCall := exprStmt.X.(*ast.CallFunc)
	member := methodCall.Callee.(*ast.MemberAccess)
	if member.Member != "f" {
		t.Fatalf("expected b.f(), got %+v", member)
	}
}

func TestParseArrayAssignAndLength(t *testing.T) {
	prog := mustParse(t, `let v = [1, 2, 3]; v = v + 4; v[3]; v.length();`)
	vd := prog.Statements[0].(*ast.VarDef)
	arr := vd.Init.(*ast.Array)
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}

	assign := prog.Statements[1].(*ast.ExprStmt).X.(*ast.Assign)
	if assign.CompoundOp != "" {
		t.Fatalf("expected plain assign, got compound op %q", assign.CompoundOp)
	}
	rhs := assign.Value.(*ast.Binary)
	if rhs.Op != ast.OpAdd {
		t.Fatalf("expected v + 4, got %+v", rhs)
	}

	idx := prog.Statements[2].(*ast.ExprStmt).X.(*ast.IndexRef)
	if idx.Target.(*ast.Identifier).Name != "v" {
		t.Fatalf("expected index into v, got %+v", idx.Target)
	}

	lengthCall := prog.Statements[3].(*ast.ExprStmt).X.(*ast.CallFunc)
	if lengthCall.Callee.(*ast.MemberAccess).Member != "length" {
		t.Fatalf("expected v.length(), got %+v", lengthCall.Callee)
	}
}

func TestParseTryCatch(t *testing.T) {
	prog := mustParse(t, `try { throw "boom"; } catch e: string { println(e); }`)
	tc := prog.Statements[0].(*ast.TryCatch)
	if len(tc.Catchers) != 1 || tc.Catchers[0].BindName != "e" || tc.Catchers[0].Type.Name != "string" {
		t.Fatalf("unexpected catcher: %+v", tc.Catchers)
	}
	if _, ok := tc.Body.Statements[0].(*ast.Throw); !ok {
		t.Fatalf("expected throw inside try body, got %T", tc.Body.Statements[0])
	}
}

func TestParseForDesugarsToInitWhileStep(t *testing.T) {
	prog := mustParse(t, `for (let i = 0; i < 10; i = i + 1) { println(i); }`)
	block := prog.Statements[0].(*ast.Block)
	if len(block.Statements) != 2 {
		t.Fatalf("expected desugared block of 2 statements (init, while), got %d", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.VarDef); !ok {
		t.Fatalf("expected VarDef init, got %T", block.Statements[0])
	}
	while, ok := block.Statements[1].(*ast.While)
	if !ok {
		t.Fatalf("expected While, got %T", block.Statements[1])
	}
	// body gets println(i) plus the appended step statement.
	if len(while.Body.Statements) != 2 {
		t.Fatalf("expected body + step, got %d statements", len(while.Body.Statements))
	}
}

func TestParseCompoundAssignDesugars(t *testing.T) {
	prog := mustParse(t, `let v = 1; v += 2;`)
	assign := prog.Statements[1].(*ast.ExprStmt).X.(*ast.Assign)
	if assign.CompoundOp != "+" {
		t.Fatalf("expected compound op +, got %q", assign.CompoundOp)
	}
	bin := assign.Value.(*ast.Binary)
	if bin.Op != ast.OpAdd {
		t.Fatalf("expected desugared v + 2, got %+v", bin)
	}
}

func TestParseNamedArguments(t *testing.T) {
	prog := mustParse(t, `make(x: 1, y: 2);`)
	call := prog.Statements[0].(*ast.ExprStmt).X.(*ast.CallFunc)
	if len(call.Args) != 2 || call.Args[0].Name != "x" || call.Args[1].Name != "y" {
		t.Fatalf("unexpected named args: %+v", call.Args)
	}
}

func TestParseImportDesugars(t *testing.T) {
	prog := mustParse(t, `import a/b/c;`)
	imp := prog.Statements[0].(*ast.Import)
	if imp.Path != "a/b/c" || imp.LocalName != "c" {
		t.Fatalf("unexpected import: %+v", imp)
	}
	if imp.Desugared == nil || imp.Desugared.Name != "c" {
		t.Fatalf("expected desugared let c = @import(...), got %+v", imp.Desugared)
	}
	call := imp.Desugared.Init.(*ast.CallFunc)
	if call.Callee.(*ast.Identifier).Name != "@import" {
		t.Fatalf("expected @import call, got %+v", call.Callee)
	}
}

func TestParseLambda(t *testing.T) {
	prog := mustParse(t, `let f = lambda(x: int) -> int { return x + 1; };`)
	vd := prog.Statements[0].(*ast.VarDef)
	lam := vd.Init.(*ast.LambdaFunc)
	if len(lam.Params) != 1 || lam.Params[0].Name != "x" || lam.RetType.Name != "int" {
		t.Fatalf("unexpected lambda shape: %+v", lam)
	}
}

func TestParseOverloadGuide(t *testing.T) {
	prog := mustParse(t, `let f = ns::thing of (int, int) -> int;`)
	vd := prog.Statements[0].(*ast.VarDef)
	sr := vd.Init.(*ast.ScopeResol)
	if sr.String() != "ns::thing" || sr.OverloadGuide == nil {
		t.Fatalf("expected overload guide on ns::thing, got %+v", sr)
	}
	if len(sr.OverloadGuide.Params) != 2 || sr.OverloadGuide.Return.Name != "int" {
		t.Fatalf("unexpected overload guide: %+v", sr.OverloadGuide)
	}
}

func TestParseBreakOutsideLoopFails(t *testing.T) {
	err := mustFail(t, `break;`)
	if err.Code != ErrBreakOutsideLoop {
		t.Fatalf("expected %s, got %s", ErrBreakOutsideLoop, err.Code)
	}
}

func TestParseContinueInsideWhileSucceeds(t *testing.T) {
	mustParse(t, `while true { continue; }`)
}

func TestParseUnterminatedBlockFails(t *testing.T) {
	mustFail(t, `fn f() { return 1;`)
}

func TestParseAngleBracketsWithoutAtAreComparisons(t *testing.T) {
	// Without the '@' marker, '<' and '>' are always comparison operators,
	// never a template argument list (spec §4.2 "critical" disambiguation
	// rule): "f < T > (x);" parses as (f < T) > (x), not a call f<T>(x).
	prog := mustParse(t, `f < T > (x);`)
	outer := prog.Statements[0].(*ast.ExprStmt).X.(*ast.Binary)
	if outer.Op != ast.OpGt {
		t.Fatalf("expected outer '>' comparison, got %+v", outer)
	}
	inner, ok := outer.Left.(*ast.Binary)
	if !ok || inner.Op != ast.OpLt {
		t.Fatalf("expected inner 'f < T' comparison, got %+v", outer.Left)
	}
}
