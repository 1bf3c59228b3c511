package sema

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/scope"
)

// collect is pass 1: register every enum, class, and function declared at
// top level or inside a namespace (at any nesting depth) so forward
// references resolve regardless of declaration order. Declarations inside
// function bodies and other blocks are not registered here.
func (a *Analyzer) collect(prog *ast.Program, root *scope.Scope) error {
	return a.collectStmts(prog.Statements)
}

func (a *Analyzer) collectStmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		switch t := s.(type) {
		case *ast.Enum:
			if _, dup := a.Enums[t.Name]; dup {
				return a.fail(ErrAmbiguousName, t.Span(), "enum %q already declared", t.Name)
			}
			a.Enums[t.Name] = t
		case *ast.Class:
			if _, dup := a.Classes[t.Name]; dup {
				return a.fail(ErrAmbiguousName, t.Span(), "class %q already declared", t.Name)
			}
			a.Classes[t.Name] = t
		case *ast.Function:
			a.Functions[t.Name] = append(a.Functions[t.Name], t)
		case *ast.Namespace:
			if err := a.collectStmts(t.Statements); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveInheritance implements spec §4.5 pass 1's class-inheritance
// resolution: a class's InheritBaseName must name another known class;
// self-inheritance and inheriting a final class both fail.
func (a *Analyzer) resolveInheritance() error {
	for _, cls := range a.Classes {
		if cls.InheritBaseName == "" {
			continue
		}
		if cls.InheritBaseName == cls.Name {
			return a.fail(ErrInvalidInheritance, cls.Span(), "class %q cannot inherit from itself", cls.Name)
		}
		base, ok := a.Classes[cls.InheritBaseName]
		if !ok {
			return a.fail(ErrUnknownName, cls.Span(), "unknown base class %q", cls.InheritBaseName)
		}
		if base.IsFinal {
			return a.fail(ErrInvalidInheritance, cls.Span(), "cannot inherit from final class %q", base.Name)
		}
		cls.BaseClass = base
	}
	// detect inheritance cycles (A : B : A)
	for _, cls := range a.Classes {
		seen := map[string]bool{cls.Name: true}
		for b := cls.BaseClass; b != nil; b = b.BaseClass {
			if seen[b.Name] {
				return a.fail(ErrInvalidInheritance, cls.Span(), "inheritance cycle involving %q", cls.Name)
			}
			seen[b.Name] = true
		}
	}
	return nil
}

// AncestorVirtuals walks a class's inheritance chain collecting every
// ancestor's recorded virtual functions, used by override matching.
func AncestorVirtuals(cls *ast.Class) []*ast.Function {
	var out []*ast.Function
	for b := cls.BaseClass; b != nil; b = b.BaseClass {
		out = append(out, b.VirtualFunctions...)
	}
	return out
}
