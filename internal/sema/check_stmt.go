package sema

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/scope"
	"github.com/cwbudde/flame/internal/types"
)

func scopeOf(s ast.Scope) *scope.Scope {
	if s == nil {
		return nil
	}
	return s.(*scope.Scope)
}

// checkStmt recursively type-checks one statement, refining node kinds and
// populating Resolved fields as it goes (spec §4.5 pass 2).
func (a *Analyzer) checkStmt(s ast.Stmt, sc *scope.Scope) *Error {
	switch t := s.(type) {
	case *ast.ExprStmt:
		_, err := a.checkExpr(t.X, sc)
		return err

	case *ast.Block:
		inner := scopeOf(t.BlockScope)
		if inner == nil {
			inner = sc
		}
		for _, stmt := range t.Statements {
			if err := a.checkStmt(stmt, inner); err != nil {
				return err
			}
		}
		return nil

	case *ast.VarDef:
		var initType *types.Info
		if t.Init != nil {
			ty, err := a.checkExpr(t.Init, sc)
			if err != nil {
				return err
			}
			initType = ty
		}
		declType := initType
		if t.Annotation != nil {
			declType = a.resolveTypeName(t.Annotation)
			if t.Init != nil && !types.Equal(declType, initType) {
				return a.fail(ErrTypeMismatch, t.Span(), "cannot initialize %q of type %s with value of type %s", t.Name, declType, initType)
			}
		}
		if lv := sc.FindLocal(t.Name); lv != nil {
			lv.DeducedType = declType
		}
		return nil

	case *ast.If:
		if _, err := a.checkExpr(t.Cond, sc); err != nil {
			return err
		}
		if err := a.checkStmt(t.Then, sc); err != nil {
			return err
		}
		if t.Else != nil {
			return a.checkStmt(t.Else, sc)
		}
		return nil

	case *ast.While:
		if _, err := a.checkExpr(t.Cond, sc); err != nil {
			return err
		}
		return a.checkStmt(t.Body, sc)

	case *ast.Break, *ast.Continue:
		return nil

	case *ast.Return:
		if t.Value != nil {
			_, err := a.checkExpr(t.Value, sc)
			return err
		}
		return nil

	case *ast.Throw:
		_, err := a.checkExpr(t.Value, sc)
		return err

	case *ast.TryCatch:
		if err := a.checkStmt(t.Body, sc); err != nil {
			return err
		}
		for _, c := range t.Catchers {
			catchScope := scopeOf(c.Body.BlockScope)
			if lv := catchScope.FindLocal(c.BindName); lv != nil {
				lv.DeducedType = a.resolveTypeName(c.Type)
			}
			if err := a.checkStmt(c.Body, sc); err != nil {
				return err
			}
		}
		return nil

	case *ast.Match:
		return a.checkMatch(t, sc)

	case *ast.Function:
		return a.checkFunction(t, sc)

	case *ast.Enum:
		return nil // constructors carry only type annotations, nothing to check

	case *ast.Class:
		return a.checkClass(t, sc)

	case *ast.Namespace:
		inner := scopeOf(t.NsScope)
		for _, stmt := range t.Statements {
			if err := a.checkStmt(stmt, inner); err != nil {
				return err
			}
		}
		return nil

	case *ast.Import:
		if t.Desugared != nil {
			return a.checkStmt(t.Desugared, sc)
		}
		return nil
	}
	return nil
}

// checkFunction type-checks a function body against its declared return
// type, implementing spec §4.5 "Return statements": every collected Return
// must equal the declared type (or None if implicit), and an empty return
// against a non-None declared type fails.
func (a *Analyzer) checkFunction(fn *ast.Function, sc *scope.Scope) *Error {
	if fn.IsTemplate() {
		return nil // generic declarations are only checked once instantiated
	}
	bodyScope := scopeOf(fn.Body.BlockScope)
	funcScope := scopeOf(fn.FuncScope)
	for i, p := range fn.Params {
		if lv := funcScope.FindLocal(p.Name); lv != nil {
			lv.DeducedType = a.resolveTypeName(p.Annotation)
			_ = i
		}
	}

	for _, stmt := range fn.Body.Statements {
		if err := a.checkStmt(stmt, bodyScope); err != nil {
			return err
		}
	}

	declRet := types.Simple(types.None)
	if fn.RetType != nil {
		declRet = a.resolveTypeName(fn.RetType)
	}
	for _, ret := range ast.CollectReturns(fn.Body) {
		if ret.Value == nil {
			if declRet.Kind != types.None {
				return a.fail(ErrEmptyReturn, ret.Span(), "function %q declares return type %s but this return has no value", fn.Name, declRet)
			}
			continue
		}
		got, err := a.checkExpr(ret.Value, bodyScope)
		if err != nil {
			return err
		}
		if !types.Equal(declRet, got) {
			return a.fail(ErrTypeMismatch, ret.Span(), "function %q declares return type %s but returns %s", fn.Name, declRet, got)
		}
	}
	return nil
}
