package sema

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/diag"
	"github.com/cwbudde/flame/internal/scope"
	"github.com/cwbudde/flame/internal/types"
)

// instantiateTemplate implements spec §4.5 "Template instantiation with
// deduction": seed each T_i from any explicit @<...> argument, unify
// remaining formal TypeNames against actual argument types (including
// structural unification into parameterized types), fail on conflicting or
// undeduced parameters, then clone the function body and substitute every
// TypeName naming a T_i with its deduced type's name.
func (a *Analyzer) instantiateTemplate(fn *ast.Function, call *ast.CallFunc, actualTypes []*types.Info, s *scope.Scope) (*ast.Function, *Error) {
	solved := map[string]*types.Info{}
	order := make([]string, 0, len(fn.TemplateParams))
	for _, tp := range fn.TemplateParams {
		order = append(order, tp.Name)
	}

	// Step 1: seed from explicit @<T1, T2, ...>, if the call site supplied
	// one via the callee identifier's TypeArgs.
	if id, ok := call.Callee.(*ast.Identifier); ok {
		for i, ta := range id.TypeArgs {
			if i >= len(order) {
				break
			}
			solved[order[i]] = a.resolveTypeName(ta)
		}
	}

	// Step 2: unify each formal parameter's TypeName against the
	// corresponding actual argument type.
	positional := actualTypes // argument order already matches fn.Params for template deduction purposes
	for i, p := range fn.Params {
		if i >= len(positional) {
			break
		}
		if err := a.unify(p.Annotation, positional[i], solved, call.Span()); err != nil {
			return nil, err
		}
	}

	// Step 3/4: every T_i must be solved by now.
	for _, name := range order {
		if _, ok := solved[name]; !ok {
			return nil, a.fail(ErrDeductCannot, call.Span(), "cannot deduce template parameter %q", name)
		}
	}

	// Step 5: clone, substitute, register for pass-2 checking.
	clone := ast.CloneFunction(fn)
	clone.IsInstantiated = true
	clone.TemplateArgs = map[string]string{}
	subst := map[string]string{}
	for name, t := range solved {
		subst[name] = t.String()
		clone.TemplateArgs[name] = t.String()
	}
	ast.SubstituteTypeNames(clone, subst)

	fnScope := scope.New(scope.KindFunction, clone.Name, s, clone)
	clone.FuncScope = fnScope
	for _, p := range clone.Params {
		fnScope.Declare(p.Name, nil, p.Annotation == nil, true, clone)
	}
	bodyScope := scope.New(scope.KindBlock, "<body>", fnScope, clone.Body)
	clone.Body.BlockScope = bodyScope
	for _, stmt := range clone.Body.Statements {
		scope.NewBuilder().BuildStmtInto(stmt, bodyScope)
	}
	bodyScope.ComputeStackSize()

	a.Pending = append(a.Pending, clone)
	return clone, nil
}

// unify performs structural unification of a formal TypeName against an
// actual TypeInfo, seeding solved[T_i] the first time T_i is seen and
// failing if a later occurrence disagrees (spec §4.5 step 3). It also
// unifies structurally into type parameters, e.g. `Vector<T>` against
// `Vector<Int>` yields `T = Int`, and fails arity mismatches such as
// `T<U, V>` against a non-templated actual or the wrong parameter count.
func (a *Analyzer) unify(formal *ast.TypeName, actual *types.Info, solved map[string]*types.Info, span diag.Span) *Error {
	if formal == nil || actual == nil {
		return nil
	}
	if existing, isParam := solved[formal.Name]; isParam {
		if !types.Equal(existing, actual) {
			return a.fail(ErrDeductMismatch, span, "template parameter %q deduced as both %s and %s", formal.Name, existing, actual)
		}
		return nil
	}
	if len(formal.Params) == 0 {
		if _, known := builtinKindByName[formal.Name]; !known && a.Classes[formal.Name] == nil && a.Enums[formal.Name] == nil {
			// formal.Name is an unsolved template parameter: seed it.
			solved[formal.Name] = actual
			return nil
		}
		// a concrete (non-parameter) formal type needs no deduction here;
		// ordinary type-equality checking during argument matching handles it.
		return nil
	}
	// Parameterized formal, e.g. Vector<T>: actual must carry the same
	// number of structural parameters.
	if len(actual.Params) != len(formal.Params) {
		return a.fail(ErrDeductMismatch, span, "%q expects %d type parameter(s), got %d", formal.Name, len(formal.Params), len(actual.Params))
	}
	for i, fp := range formal.Params {
		if err := a.unify(fp, actual.Params[i], solved, span); err != nil {
			return err
		}
	}
	return nil
}
