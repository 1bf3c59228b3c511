package sema

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/scope"
	"github.com/cwbudde/flame/internal/types"
)

// candidate is one callable thing overload resolution can bind a CallFunc
// to: a user function, a built-in free function, a class constructor, or an
// enumerator used as a constructor.
type candidate struct {
	fn        *ast.Function
	builtin   *BuiltinFree
	ctorClass *ast.Class
	enumCtor  *ast.EnumCtor
	enum      *ast.Enum
}

func (c *candidate) params() ([]*FuncParam, bool) {
	switch {
	case c.fn != nil:
		params := c.fn.Params
		if c.fn.IsMethod && len(params) > 0 && params[0].Name == "self" {
			// self is bound from the call target, not from the positional
			// argument list (spec §4.6 "self argument is supplied for
			// member-function calls").
			params = params[1:]
		}
		out := make([]*FuncParam, len(params))
		for i, p := range params {
			out[i] = &FuncParam{Name: p.Name, Type: nil, Annotation: p.Annotation, VarArg: p.IsVarArg}
		}
		return out, true
	case c.builtin != nil:
		out := make([]*FuncParam, len(c.builtin.Params))
		for i, t := range c.builtin.Params {
			out[i] = &FuncParam{Name: "", Type: t}
		}
		return out, c.builtin.VarArgs
	case c.ctorClass != nil:
		out := make([]*FuncParam, 0)
		if c.ctorClass.Ctor != nil {
			params := c.ctorClass.Ctor.Params
			if len(params) > 0 && params[0].Name == "self" {
				params = params[1:] // bound to the new instance, as for methods
			}
			for _, p := range params {
				out = append(out, &FuncParam{Name: p.Name, Annotation: p.Annotation})
			}
		} else {
			for _, f := range c.ctorClass.Fields {
				out = append(out, &FuncParam{Name: f.Name, Annotation: f.Annotation})
			}
		}
		return out, false
	case c.enumCtor != nil:
		out := make([]*FuncParam, len(c.enumCtor.Fields))
		for i, f := range c.enumCtor.Fields {
			out[i] = &FuncParam{Name: f.Name, Annotation: f.Annotation}
		}
		return out, false
	}
	return nil, false
}

// FuncParam is a normalized formal parameter used purely during argument
// matching, independent of whether it came from a user function, a
// built-in, a constructor, or an enum constructor.
type FuncParam struct {
	Name       string
	Type       *types.Info // set directly for built-ins
	Annotation *ast.TypeName
	VarArg     bool
}

// resolveParamType returns the formal parameter's TypeInfo, resolving an
// Annotation against the current scope's known types when Type isn't
// already set.
func (a *Analyzer) resolveParamType(p *FuncParam, s *scopeLike) *types.Info {
	if p.Type != nil {
		return p.Type
	}
	if p.Annotation == nil {
		return types.Simple(types.Unknown)
	}
	return a.resolveTypeName(p.Annotation)
}

// scopeLike exists only so resolveParamType's signature documents intent;
// the current implementation resolves names against the analyzer's global
// class/enum registries, not lexically, since type annotations only ever
// name global types or template parameters.
type scopeLike struct{}

// argMatch reports whether actual argument types match a candidate's formal
// parameters under spec §4.5 step 3: arity check (with variadic support),
// then pairwise type equivalence; named arguments map by name and must not
// duplicate; missing named arguments after positional filling fail.
type argMatch struct {
	ok      bool
	missing string
	reason  string
}

func (a *Analyzer) matchArgs(params []*FuncParam, varArgs bool, args []ast.Argument, actualTypes []*types.Info) argMatch {
	bound := make([]*types.Info, len(params))
	boundSet := make([]bool, len(params))

	namedUsed := map[string]bool{}
	var positional []*types.Info
	for i, arg := range args {
		if arg.Name == "" {
			positional = append(positional, actualTypes[i])
			continue
		}
		if namedUsed[arg.Name] {
			return argMatch{reason: "duplicate named argument " + arg.Name}
		}
		namedUsed[arg.Name] = true
		idx := -1
		for j, p := range params {
			if p.Name == arg.Name {
				idx = j
				break
			}
		}
		if idx == -1 {
			return argMatch{reason: "no parameter named " + arg.Name}
		}
		bound[idx] = actualTypes[i]
		boundSet[idx] = true
	}

	pi := 0
	for i := range params {
		if boundSet[i] {
			continue
		}
		if pi < len(positional) {
			bound[i] = positional[pi]
			boundSet[i] = true
			pi++
		}
	}

	if varArgs {
		if pi > len(positional) {
			return argMatch{reason: "arity mismatch"}
		}
	} else if pi != len(positional) {
		return argMatch{reason: "too many positional arguments"}
	}

	for i, p := range params {
		if !boundSet[i] {
			return argMatch{missing: p.Name, reason: "missing argument " + p.Name}
		}
	}

	for i, p := range params {
		want := a.resolveParamType(p, nil)
		if !types.Equal(want, bound[i]) {
			return argMatch{reason: "type mismatch for parameter " + p.Name}
		}
	}

	return argMatch{ok: true}
}

// resolveOverload implements spec §4.5 steps 1-5: evaluate args to actual
// types, extract candidates, run argument matching (instantiating templates
// first when needed), and require exactly one surviving candidate.
func (a *Analyzer) resolveOverload(call *ast.CallFunc, candidates []candidate, actualTypes []*types.Info, s *scope.Scope) (candidate, *types.Info, *Error) {
	var survivors []candidate
	var survivorTypes []*types.Info

	for _, c := range candidates {
		c2 := c
		if c2.fn != nil && c2.fn.IsTemplate() {
			inst, err := a.instantiateTemplate(c2.fn, call, actualTypes, s)
			if err != nil {
				continue // deduction failure just drops this candidate
			}
			c2.fn = inst
		}
		params, varArgs := c2.params()
		m := a.matchArgs(params, varArgs, call.Args, actualTypes)
		if !m.ok {
			continue
		}
		survivors = append(survivors, c2)
		survivorTypes = append(survivorTypes, a.candidateReturn(c2))
	}

	if len(survivors) == 0 {
		return candidate{}, nil, a.fail(ErrNoMatch, call.Span(), "no matching overload found")
	}
	if len(survivors) > 1 {
		if sameSpecialization(survivors) {
			return survivors[0], survivorTypes[0], nil
		}
		return candidate{}, nil, a.fail(ErrAmbiguousCall, call.Span(), "call is ambiguous between %d candidates", len(survivors))
	}
	return survivors[0], survivorTypes[0], nil
}

func sameSpecialization(cands []candidate) bool {
	for i := 1; i < len(cands); i++ {
		if cands[i].fn == nil || cands[0].fn == nil {
			return false
		}
		if cands[i].fn.OriginFunc != cands[0].fn.OriginFunc {
			return false
		}
	}
	return true
}

func (a *Analyzer) candidateReturn(c candidate) *types.Info {
	switch {
	case c.fn != nil:
		if c.fn.RetType == nil {
			return types.Simple(types.None)
		}
		return a.resolveTypeName(c.fn.RetType)
	case c.builtin != nil:
		return c.builtin.Return
	case c.ctorClass != nil:
		return types.Named(types.Instance, c.ctorClass.Name)
	case c.enumCtor != nil:
		return types.Named(types.Enumerator, c.enum.Name)
	}
	return types.Simple(types.None)
}
