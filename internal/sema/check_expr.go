package sema

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/scope"
	"github.com/cwbudde/flame/internal/types"
)

// checkExpr infers an expression's type, refining its node Kind/Resolved in
// place as name resolution and overload resolution settle (spec §4.5 pass
// 2). The returned TypeInfo is also stamped onto the node via SetType.
func (a *Analyzer) checkExpr(e ast.Expr, sc *scope.Scope) (*types.Info, *Error) {
	t, err := a.checkExprInner(e, sc)
	if err != nil {
		return nil, err
	}
	e.SetType(t)
	return t, nil
}

func (a *Analyzer) checkExprInner(e ast.Expr, sc *scope.Scope) (*types.Info, *Error) {
	switch t := e.(type) {
	case *ast.Value:
		switch t.ValueKind {
		case ast.VInt, ast.VSize:
			return types.Simple(types.Int), nil
		case ast.VFloat:
			return types.Simple(types.Float), nil
		case ast.VBool:
			return types.Simple(types.Bool), nil
		case ast.VChar:
			return types.Simple(types.Char), nil
		case ast.VString:
			return types.Simple(types.Str), nil
		}
		return types.Simple(types.Unknown), nil

	case *ast.Identifier:
		return a.checkIdentifier(t, sc)

	case *ast.ScopeResol:
		return a.checkScopeResol(t, sc)

	case *ast.Array:
		elemType := types.Simple(types.Unknown)
		for i, el := range t.Elements {
			ty, err := a.checkExpr(el, sc)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				elemType = ty
			} else if !types.Equal(elemType, ty) {
				return nil, a.fail(ErrTypeMismatch, el.Span(), "array element %d has type %s, expected %s", i, ty, elemType)
			}
		}
		return types.Parameterized(types.Vector, elemType), nil

	case *ast.IndexRef:
		targetType, err := a.checkExpr(t.Target, sc)
		if err != nil {
			return nil, err
		}
		if _, err := a.checkExpr(t.Index, sc); err != nil {
			return nil, err
		}
		switch targetType.Kind {
		case types.Vector:
			if len(targetType.Params) == 1 {
				return targetType.Params[0], nil
			}
		case types.Dict:
			if len(targetType.Params) == 2 {
				return targetType.Params[1], nil
			}
		case types.Str:
			return types.Simple(types.Char), nil
		case types.Tuple:
			if len(targetType.Params) > 0 {
				return targetType.Params[0], nil
			}
		}
		return types.Simple(types.Unknown), nil

	case *ast.MemberAccess:
		return a.checkMemberAccess(t, sc)

	case *ast.CallFunc:
		return a.checkCallFunc(t, sc)

	case *ast.Binary:
		return a.checkBinary(t, sc)

	case *ast.Unary:
		operand, err := a.checkExpr(t.Operand, sc)
		if err != nil {
			return nil, err
		}
		if t.Op == ast.OpNot {
			return types.Simple(types.Bool), nil
		}
		return operand, nil

	case *ast.Assign:
		return a.checkAssign(t, sc)

	case *ast.LambdaFunc:
		return a.checkLambda(t, sc)

	case *ast.TypeName, *ast.Signature:
		return types.Simple(types.None), nil
	}
	return types.Simple(types.Unknown), nil
}

func (a *Analyzer) checkIdentifier(id *ast.Identifier, sc *scope.Scope) (*types.Info, *Error) {
	found, err := a.findName(id.Name, sc, false, id.Span())
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, a.fail(ErrUnknownName, id.Span(), "unknown name %q", id.Name)
	}
	id.SetKind(found.Kind)
	id.Resolved = found.Payload

	switch ref := found.Payload.(type) {
	case *VariableRef:
		if ref.Local.DeducedType != nil {
			return ref.Local.DeducedType, nil
		}
		return types.Simple(types.Unknown), nil
	case *FuncNameRef:
		if len(ref.Candidates) == 1 {
			fn := ref.Candidates[0]
			return a.functionTypeOf(fn), nil
		}
		return types.Simple(types.Function), nil
	case *BuiltinFuncNameRef:
		if b, ok := LookupBuiltinFree(ref.Name); ok {
			return types.FunctionType(b.Params, b.Return, b.VarArgs), nil
		}
		return types.Simple(types.Function), nil
	case *EnumeratorRef:
		if len(ref.Ctor.Fields) == 0 {
			return types.Named(types.Enumerator, ref.Enum.Name), nil
		}
		return types.Simple(types.Function), nil
	case *EnumNameRef:
		return types.Named(types.Module, ref.Enum.Name), nil
	case *ClassNameRef:
		return types.Named(types.Module, ref.Class.Name), nil
	case *NamespaceRef:
		return types.Simple(types.Module), nil
	}
	return types.Simple(types.Unknown), nil
}

func (a *Analyzer) functionTypeOf(fn *ast.Function) *types.Info {
	params := make([]*types.Info, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = a.resolveTypeName(p.Annotation)
	}
	ret := types.Simple(types.None)
	if fn.RetType != nil {
		ret = a.resolveTypeName(fn.RetType)
	}
	return types.FunctionType(params, ret, false)
}

// checkScopeResol resolves a two-part qualified name `a::b`: the prefix is
// an enum, a class or a namespace, and the second part resolves within it.
// Names with more than two parts are not resolved and fail with
// UnknownName.
func (a *Analyzer) checkScopeResol(sr *ast.ScopeResol, sc *scope.Scope) (*types.Info, *Error) {
	if len(sr.Parts) == 2 {
		head, tail := sr.Parts[0], sr.Parts[1]
		if enum, ok := a.Enums[head]; ok {
			for _, c := range enum.Ctors {
				if c.Name == tail {
					sr.SetKind(ast.KEnumerator)
					sr.Resolved = &EnumeratorRef{Enum: enum, Ctor: c}
					if len(c.Fields) == 0 {
						return types.Named(types.Enumerator, enum.Name), nil
					}
					return types.Simple(types.Function), nil
				}
			}
			return nil, a.fail(ErrUnknownName, sr.Span(), "enum %q has no constructor %q", head, tail)
		}
		if cls, ok := a.Classes[head]; ok {
			for _, m := range cls.Methods {
				if m.Name == tail {
					sr.SetKind(ast.KMemberFunction)
					sr.Resolved = &MemberFunctionRef{Class: cls, Method: m}
					return a.functionTypeOf(m), nil
				}
			}
		}
		for cur := sc; cur != nil; cur = cur.Parent {
			for _, child := range cur.Children {
				if child.Kind == scope.KindNamespace && child.NodeName == head {
					found, err := a.findName(tail, child, true, sr.Span())
					if err != nil {
						return nil, err
					}
					if found == nil {
						return nil, a.fail(ErrUnknownName, sr.Span(), "namespace %q has no member %q", head, tail)
					}
					sr.SetKind(found.Kind)
					sr.Resolved = found.Payload
					return types.Simple(types.Unknown), nil
				}
			}
		}
	}
	return nil, a.fail(ErrUnknownName, sr.Span(), "cannot resolve %q", sr.String())
}

func (a *Analyzer) checkMemberAccess(m *ast.MemberAccess, sc *scope.Scope) (*types.Info, *Error) {
	targetType, err := a.checkExpr(m.Target, sc)
	if err != nil {
		return nil, err
	}
	if targetType.Kind == types.Instance {
		cls := a.Classes[targetType.Name]
		for cur := cls; cur != nil; cur = cur.BaseClass {
			for _, f := range cur.Fields {
				if f.Name == m.Member {
					m.SetKind(ast.KMemberVariable)
					m.Resolved = &MemberVariableRef{Class: cur, Field: f}
					return a.resolveTypeName(f.Annotation), nil
				}
			}
			for _, fn := range cur.Methods {
				if fn.Name == m.Member {
					m.SetKind(ast.KMemberFunction)
					m.Resolved = &MemberFunctionRef{Class: cur, Method: fn}
					return a.functionTypeOf(fn), nil
				}
			}
		}
		return nil, a.fail(ErrUnknownName, m.Span(), "class %q has no member %q", targetType.Name, m.Member)
	}
	if b, ok := LookupBuiltinMember(targetType.Kind, m.Member); ok {
		m.SetKind(ast.KBuiltinMember)
		m.Resolved = &BuiltinMemberRef{TypeKind: targetType.Kind, Name: m.Member}
		return b.Return, nil
	}
	return nil, a.fail(ErrUnknownName, m.Span(), "%s has no member %q", targetType, m.Member)
}

// checkBinary implements the arithmetic/comparison/logical rules of spec
// §4.6: Int and Float never silently mix, comparisons yield Bool, logical
// operators require Bool operands, `..` builds a range of Ints, and apart
// from `Vector + element`, `String + Char`, `Char + String` and
// `String * Int` both operands of an arithmetic operator must have the same
// type.
func (a *Analyzer) checkBinary(b *ast.Binary, sc *scope.Scope) (*types.Info, *Error) {
	left, err := a.checkExpr(b.Left, sc)
	if err != nil {
		return nil, err
	}
	right, err := a.checkExpr(b.Right, sc)
	if err != nil {
		return nil, err
	}
	switch b.Op {
	case ast.OpLogOr, ast.OpLogAnd:
		if left.Kind != types.Bool || right.Kind != types.Bool {
			return nil, a.fail(ErrTypeMismatch, b.Span(), "operator %s requires Bool operands", b.Op)
		}
		return types.Simple(types.Bool), nil
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if !types.Equal(left, right) {
			return nil, a.fail(ErrTypeMismatch, b.Span(), "cannot compare %s with %s", left, right)
		}
		return types.Simple(types.Bool), nil
	case ast.OpRange:
		if left.Kind != types.Int || right.Kind != types.Int {
			return nil, a.fail(ErrTypeMismatch, b.Span(), "range bounds must be Int")
		}
		return types.Parameterized(types.Vector, types.Simple(types.Int)), nil
	default:
		switch {
		case b.Op == ast.OpAdd && left.Kind == types.Vector && len(left.Params) == 1 && types.Equal(left.Params[0], right):
			return left, nil // Vector + element appends
		case b.Op == ast.OpAdd && left.Kind == types.Str && right.Kind == types.Char:
			return left, nil
		case b.Op == ast.OpAdd && left.Kind == types.Char && right.Kind == types.Str:
			return right, nil
		case b.Op == ast.OpMul && left.Kind == types.Str && right.Kind == types.Int:
			return left, nil
		}
		if !types.Equal(left, right) {
			return nil, a.fail(ErrTypeMismatch, b.Span(), "operator %s: mismatched types %s and %s", b.Op, left, right)
		}
		return left, nil
	}
}

// checkAssign implements the "writable LHS" rule of spec §4.5: the target
// must be a variable, a member-variable access, or an index expression.
func (a *Analyzer) checkAssign(asg *ast.Assign, sc *scope.Scope) (*types.Info, *Error) {
	valType, err := a.checkExpr(asg.Value, sc)
	if err != nil {
		return nil, err
	}
	switch target := asg.Target.(type) {
	case *ast.Identifier:
		targetType, err := a.checkExpr(target, sc)
		if err != nil {
			return nil, err
		}
		if target.Kind() != ast.KVariable {
			return nil, a.fail(ErrNotWritable, asg.Span(), "%q is not an assignable variable", target.Name)
		}
		if targetType.Kind != types.Unknown && !types.Equal(targetType, valType) {
			return nil, a.fail(ErrTypeMismatch, asg.Span(), "cannot assign %s to %q of type %s", valType, target.Name, targetType)
		}
		return valType, nil
	case *ast.MemberAccess:
		targetType, err := a.checkExpr(target, sc)
		if err != nil {
			return nil, err
		}
		if target.Kind() != ast.KMemberVariable {
			return nil, a.fail(ErrNotWritable, asg.Span(), "%q is not an assignable member", target.Member)
		}
		if !types.Equal(targetType, valType) {
			return nil, a.fail(ErrTypeMismatch, asg.Span(), "cannot assign %s to member %q of type %s", valType, target.Member, targetType)
		}
		return valType, nil
	case *ast.IndexRef:
		if _, err := a.checkExpr(target, sc); err != nil {
			return nil, err
		}
		return valType, nil
	}
	return nil, a.fail(ErrNotWritable, asg.Span(), "left-hand side is not assignable")
}

func (a *Analyzer) checkLambda(l *ast.LambdaFunc, sc *scope.Scope) (*types.Info, *Error) {
	bodyScope := scopeOf(l.Body.BlockScope)
	if bodyScope == nil {
		bodyScope = sc
	}
	for _, stmt := range l.Body.Statements {
		if err := a.checkStmt(stmt, bodyScope); err != nil {
			return nil, err
		}
	}
	params := make([]*types.Info, len(l.Params))
	for i, p := range l.Params {
		params[i] = a.resolveTypeName(p.Annotation)
	}
	ret := types.Simple(types.Unknown)
	if l.RetType != nil {
		ret = a.resolveTypeName(l.RetType)
	}
	return types.FunctionType(params, ret, false), nil
}
