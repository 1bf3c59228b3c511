package sema

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/scope"
	"github.com/cwbudde/flame/internal/types"
)

// checkClass type-checks field initializers, the constructor, and every
// method body, and validates the virtual/override relationship against
// ancestor classes (spec §4.5 "Virtual/override matching").
func (a *Analyzer) checkClass(cls *ast.Class, sc *scope.Scope) *Error {
	classScope := scopeOf(cls.ClassScope)
	if classScope == nil {
		classScope = sc
	}

	for _, f := range cls.Fields {
		declType := a.resolveTypeName(f.Annotation)
		if f.Init != nil {
			initType, err := a.checkExpr(f.Init, classScope)
			if err != nil {
				return err
			}
			if !types.Equal(declType, initType) {
				return a.fail(ErrTypeMismatch, f.Span(), "field %q declared %s but initialized with %s", f.Name, declType, initType)
			}
		}
		if lv := classScope.FindLocal(f.Name); lv != nil {
			lv.DeducedType = declType
		}
	}

	if cls.Ctor != nil {
		cls.Ctor.IsCtor = true
		// A constructor is parsed as `Name(self, ...)` just like a method
		// (parser.parseConstructor), so it needs the same self-stripping
		// treatment in overload resolution and evaluation.
		cls.Ctor.IsMethod = true
		if err := a.checkFunction(cls.Ctor, classScope); err != nil {
			return err
		}
	}

	ancestors := AncestorVirtuals(cls)
	for _, m := range cls.Methods {
		m.IsMethod = true
		if m.IsVirtual {
			cls.VirtualFunctions = append(cls.VirtualFunctions, m)
		}
		if m.IsOverride {
			match := findVirtualMatch(ancestors, m)
			if match == nil {
				return a.fail(ErrBadOverride, m.Span(), "method %q marked override but no matching virtual method found in a base class", m.Name)
			}
		}
		if err := a.checkFunction(m, classScope); err != nil {
			return err
		}
	}
	return nil
}

func findVirtualMatch(ancestors []*ast.Function, m *ast.Function) *ast.Function {
	for _, v := range ancestors {
		if v.Name == m.Name && sameParamShape(v, m) {
			return v
		}
	}
	return nil
}

// sameParamShape compares two methods' parameter counts and annotated type
// names; it is a structural check only, run before types.Info resolution of
// either side is guaranteed complete.
func sameParamShape(a, b *ast.Function) bool {
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		an, bn := a.Params[i].Annotation, b.Params[i].Annotation
		if (an == nil) != (bn == nil) {
			return false
		}
		if an != nil && an.Name != bn.Name {
			return false
		}
	}
	return true
}
