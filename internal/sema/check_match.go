package sema

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/scope"
	"github.com/cwbudde/flame/internal/types"
)

// checkMatch implements spec §4.5 "Match arm binding": each arm's pattern is
// checked against the scrutinee's type and any bound names are given their
// deduced type in the arm's own scope (already allocated by the scope
// builder). An arm following a wildcard is unreachable and only warned
// about, never rejected outright — SPEC_FULL's "unreachable match wildcard
// arms" diagnostic.
func (a *Analyzer) checkMatch(m *ast.Match, sc *scope.Scope) *Error {
	scrutType, err := a.checkExpr(m.Scrutinee, sc)
	if err != nil {
		return err
	}

	sawWildcard := false
	for _, arm := range m.Arms {
		armScope := scopeOf(arm.Body.BlockScope)
		if armScope == nil {
			armScope = sc
		}
		if sawWildcard {
			a.warnf(arm.Span(), "unreachable match arm: a wildcard arm already covers every case")
		}

		switch arm.Pattern {
		case ast.PatWildcard:
			sawWildcard = true

		case ast.PatExpr:
			ty, err := a.checkExpr(arm.Expr, sc)
			if err != nil {
				return err
			}
			if !types.Equal(ty, scrutType) {
				return a.fail(ErrTypeMismatch, arm.Span(), "match arm has type %s, expected %s", ty, scrutType)
			}

		case ast.PatBindVar:
			if lv := armScope.FindLocal(arm.BindName); lv != nil {
				lv.DeducedType = scrutType
			}

		case ast.PatEnumerator, ast.PatEnumeratorArgs:
			if arm.Scope == nil || len(arm.Scope.Parts) != 2 {
				return a.fail(ErrUnknownName, arm.Span(), "invalid enumerator pattern")
			}
			enumName, ctorName := arm.Scope.Parts[0], arm.Scope.Parts[1]
			enum, ok := a.Enums[enumName]
			if !ok {
				return a.fail(ErrUnknownName, arm.Span(), "unknown enum %q", enumName)
			}
			if scrutType.Kind == types.Enumerator && scrutType.Name != "" && scrutType.Name != enum.Name {
				return a.fail(ErrTypeMismatch, arm.Span(), "pattern enum %q does not match scrutinee enum %q", enum.Name, scrutType.Name)
			}
			var ctor *ast.EnumCtor
			for _, c := range enum.Ctors {
				if c.Name == ctorName {
					ctor = c
					break
				}
			}
			if ctor == nil {
				return a.fail(ErrUnknownName, arm.Span(), "enum %q has no constructor %q", enumName, ctorName)
			}
			arm.Scope.SetKind(ast.KEnumerator)
			arm.Scope.Resolved = &EnumeratorRef{Enum: enum, Ctor: ctor}
			if len(arm.ArgBindings) != len(ctor.Fields) {
				return a.fail(ErrMissingArgument, arm.Span(), "pattern %q expects %d field(s), got %d", ctorName, len(ctor.Fields), len(arm.ArgBindings))
			}
			for i, bind := range arm.ArgBindings {
				if lv := armScope.FindLocal(bind.Name); lv != nil {
					lv.DeducedType = a.resolveTypeName(ctor.Fields[i].Annotation)
				}
			}
		}

		for _, stmt := range arm.Body.Statements {
			if err := a.checkStmt(stmt, armScope); err != nil {
				return err
			}
		}
	}
	return nil
}
