package ast

import (
	"testing"

	"github.com/cwbudde/flame/internal/diag"
)

func sp() diag.Span { return diag.Span{} }

func TestIdentifierConstructedAsNeverChanges(t *testing.T) {
	id := NewIdentifier(sp(), "x")
	if id.ConstructedAs() != KIdentifier {
		t.Fatal("expected KIdentifier")
	}
	id.SetKind(KVariable)
	if id.Kind() != KVariable {
		t.Fatal("expected refined kind KVariable")
	}
	if id.ConstructedAs() != KIdentifier {
		t.Fatal("ConstructedAs must remain KIdentifier after refinement")
	}
}

func TestBinaryString(t *testing.T) {
	b := NewBinary(sp(), OpAdd, NewIdentifier(sp(), "a"), NewIdentifier(sp(), "b"))
	if got := b.String(); got != "a + b" {
		t.Fatalf("got %q", got)
	}
}

func TestCallFuncString(t *testing.T) {
	c := NewCallFunc(sp(), NewIdentifier(sp(), "add"), []Argument{
		{Value: NewIdentifier(sp(), "a")},
		{Name: "b", Value: NewIdentifier(sp(), "b")},
	})
	if got := c.String(); got != "add(a, b: b)" {
		t.Fatalf("got %q", got)
	}
}

func TestCollectReturnsSkipsNestedLambda(t *testing.T) {
	body := NewBlock(sp(), []Stmt{
		NewReturn(sp(), NewIdentifier(sp(), "a")),
		NewExprStmt(sp(), NewLambdaFunc(sp(), nil, nil, NewBlock(sp(), []Stmt{
			NewReturn(sp(), NewIdentifier(sp(), "inner")),
		}))),
	})
	returns := CollectReturns(body)
	if len(returns) != 1 {
		t.Fatalf("expected 1 return, got %d", len(returns))
	}
}

func TestCloneFunctionTemplateHygiene(t *testing.T) {
	body := NewBlock(sp(), []Stmt{
		NewVarDef(sp(), "x", NewTypeName(sp(), "T", nil), nil),
	})
	fn := NewFunction(sp(), "id")
	fn.TemplateParams = []*TemplateParam{{Name: "T"}}
	fn.Params = []*FuncParam{{Name: "x", Annotation: NewTypeName(sp(), "T", nil)}}
	fn.RetType = NewTypeName(sp(), "T", nil)
	fn.Body = body

	clone := CloneFunction(fn)
	clone.IsInstantiated = true
	SubstituteTypeNames(clone, map[string]string{"T": "Int"})

	if clone.RetType.Name != "Int" {
		t.Fatalf("expected substituted return type Int, got %s", clone.RetType.Name)
	}
	if fn.RetType.Name != "T" {
		t.Fatal("substitution must not mutate the original generic declaration")
	}
	vd := clone.Body.Statements[0].(*VarDef)
	if vd.Annotation.Name != "Int" {
		t.Fatalf("expected body TypeName substituted, got %s", vd.Annotation.Name)
	}
}
