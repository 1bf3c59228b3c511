package sema

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/scope"
	"github.com/cwbudde/flame/internal/types"
)

// checkCallFunc implements spec §4.5 "Call resolution": evaluate every
// argument to its actual type, gather the candidate set implied by the
// callee's shape (bare name, qualified name, or member access), then defer
// to resolveOverload. A callee that evaluates to a plain Function-typed
// value (stored in a variable, returned from another call) skips overload
// resolution entirely since there is exactly one thing to call.
func (a *Analyzer) checkCallFunc(call *ast.CallFunc, sc *scope.Scope) (*types.Info, *Error) {
	actualTypes := make([]*types.Info, len(call.Args))
	for i, arg := range call.Args {
		ty, err := a.checkExpr(arg.Value, sc)
		if err != nil {
			return nil, err
		}
		actualTypes[i] = ty
	}

	switch callee := call.Callee.(type) {
	case *ast.Identifier:
		return a.checkCallIdentifier(call, callee, actualTypes, sc)
	case *ast.ScopeResol:
		return a.checkCallScopeResol(call, callee, actualTypes, sc)
	case *ast.MemberAccess:
		return a.checkCallMember(call, callee, actualTypes, sc)
	default:
		calleeType, err := a.checkExpr(call.Callee, sc)
		if err != nil {
			return nil, err
		}
		if calleeType.Kind != types.Function {
			return nil, a.fail(ErrNoMatch, call.Span(), "cannot call a value of type %s", calleeType)
		}
		return calleeType.FunctionReturn(), nil
	}
}

func (a *Analyzer) checkCallIdentifier(call *ast.CallFunc, id *ast.Identifier, actualTypes []*types.Info, sc *scope.Scope) (*types.Info, *Error) {
	found, err := a.findName(id.Name, sc, false, id.Span())
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, a.fail(ErrUnknownName, id.Span(), "unknown name %q", id.Name)
	}
	id.SetKind(found.Kind)
	id.Resolved = found.Payload

	var candidates []candidate
	switch ref := found.Payload.(type) {
	case *FuncNameRef:
		for _, fn := range ref.Candidates {
			candidates = append(candidates, candidate{fn: fn})
		}
	case *BuiltinFuncNameRef:
		if b, ok := LookupBuiltinFree(ref.Name); ok {
			candidates = append(candidates, candidate{builtin: b})
		}
	case *ClassNameRef:
		call.SetKind(ast.KCallFuncCtor)
		candidates = append(candidates, candidate{ctorClass: ref.Class})
	case *EnumeratorRef:
		call.SetKind(ast.KCallFuncEnumerator)
		candidates = append(candidates, candidate{enumCtor: ref.Ctor, enum: ref.Enum})
	case *VariableRef:
		if ref.Local.DeducedType != nil && ref.Local.DeducedType.Kind == types.Function {
			call.CalleeDecl = ref
			return ref.Local.DeducedType.FunctionReturn(), nil
		}
		return nil, a.fail(ErrNoMatch, call.Span(), "%q is not callable", id.Name)
	default:
		return nil, a.fail(ErrNoMatch, call.Span(), "%q is not callable", id.Name)
	}

	c, ret, cerr := a.resolveOverload(call, candidates, actualTypes, sc)
	if cerr != nil {
		return nil, cerr
	}
	call.CalleeDecl = calleeDeclFor(c)
	return ret, nil
}

func (a *Analyzer) checkCallScopeResol(call *ast.CallFunc, sr *ast.ScopeResol, actualTypes []*types.Info, sc *scope.Scope) (*types.Info, *Error) {
	if len(sr.Parts) != 2 {
		return nil, a.fail(ErrUnknownName, sr.Span(), "cannot resolve %q", sr.String())
	}
	head, tail := sr.Parts[0], sr.Parts[1]
	if enum, ok := a.Enums[head]; ok {
		for _, c := range enum.Ctors {
			if c.Name == tail {
				sr.SetKind(ast.KEnumerator)
				sr.Resolved = &EnumeratorRef{Enum: enum, Ctor: c}
				call.SetKind(ast.KCallFuncEnumerator)
				candidates := []candidate{{enumCtor: c, enum: enum}}
				cnd, ret, cerr := a.resolveOverload(call, candidates, actualTypes, sc)
				if cerr != nil {
					return nil, cerr
				}
				call.CalleeDecl = calleeDeclFor(cnd)
				return ret, nil
			}
		}
		return nil, a.fail(ErrUnknownName, sr.Span(), "enum %q has no constructor %q", head, tail)
	}
	if cls, ok := a.Classes[head]; ok {
		for cur := cls; cur != nil; cur = cur.BaseClass {
			for _, m := range cur.Methods {
				if m.Name == tail {
					sr.SetKind(ast.KMemberFunction)
					sr.Resolved = &MemberFunctionRef{Class: cur, Method: m}
					candidates := []candidate{{fn: m}}
					cnd, ret, cerr := a.resolveOverload(call, candidates, actualTypes, sc)
					if cerr != nil {
						return nil, cerr
					}
					call.CalleeDecl = calleeDeclFor(cnd)
					return ret, nil
				}
			}
		}
	}
	return nil, a.fail(ErrUnknownName, sr.Span(), "cannot resolve call target %q", sr.String())
}

// checkCallMember implements a method call `target.method(args)`: the
// receiver's declared type supplies exactly one candidate (this front end
// has no multi-method overload sets on a single class name), walked up the
// inheritance chain so an inherited method resolves too.
func (a *Analyzer) checkCallMember(call *ast.CallFunc, ma *ast.MemberAccess, actualTypes []*types.Info, sc *scope.Scope) (*types.Info, *Error) {
	targetType, err := a.checkExpr(ma.Target, sc)
	if err != nil {
		return nil, err
	}
	if targetType.Kind == types.Instance {
		cls := a.Classes[targetType.Name]
		for cur := cls; cur != nil; cur = cur.BaseClass {
			for _, m := range cur.Methods {
				if m.Name == ma.Member {
					ma.SetKind(ast.KMemberFunction)
					ma.Resolved = &MemberFunctionRef{Class: cur, Method: m}
					candidates := []candidate{{fn: m}}
					cnd, ret, cerr := a.resolveOverload(call, candidates, actualTypes, sc)
					if cerr != nil {
						return nil, cerr
					}
					call.CalleeDecl = calleeDeclFor(cnd)
					return ret, nil
				}
			}
		}
		return nil, a.fail(ErrUnknownName, ma.Span(), "class %q has no method %q", targetType.Name, ma.Member)
	}
	if b, ok := LookupBuiltinMember(targetType.Kind, ma.Member); ok {
		ma.SetKind(ast.KBuiltinMember)
		ma.Resolved = &BuiltinMemberRef{TypeKind: targetType.Kind, Name: ma.Member}
		call.CalleeDecl = &BuiltinMemberRef{TypeKind: targetType.Kind, Name: ma.Member}
		return b.Return, nil
	}
	return nil, a.fail(ErrUnknownName, ma.Span(), "%s has no method %q", targetType, ma.Member)
}

func calleeDeclFor(c candidate) ast.CalleeDecl {
	switch {
	case c.fn != nil:
		return c.fn
	case c.builtin != nil:
		return &BuiltinFuncNameRef{Name: c.builtin.Name}
	case c.ctorClass != nil:
		return &CtorRef{Class: c.ctorClass}
	case c.enumCtor != nil:
		return &EnumCtorCallRef{Enum: c.enum, Ctor: c.enumCtor}
	}
	return nil
}
