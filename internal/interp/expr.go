package interp

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/sema"
)

// evalExpr evaluates one expression to a Value, or returns a non-nil
// exception if evaluation raised one (division by zero, an out-of-range
// index, an uncaught `throw`, ...). It never returns (nil, nil).
func (ip *Interp) evalExpr(e ast.Expr) (Value, *Exception) {
	switch t := e.(type) {
	case *ast.Value:
		return ip.evalLiteral(t), nil

	case *ast.Identifier:
		return ip.evalIdentifier(t)

	case *ast.ScopeResol:
		return ip.evalScopeResol(t)

	case *ast.Array:
		elems := make([]Value, len(t.Elements))
		for i, el := range t.Elements {
			v, exc := ip.evalExpr(el)
			if exc != nil {
				return nil, exc
			}
			elems[i] = v
		}
		return NewVector(elems), nil

	case *ast.IndexRef:
		return ip.evalIndexRef(t)

	case *ast.MemberAccess:
		return ip.evalMemberAccess(t)

	case *ast.CallFunc:
		return ip.evalCall(t)

	case *ast.Binary:
		return ip.evalBinary(t)

	case *ast.Unary:
		return ip.evalUnary(t)

	case *ast.Assign:
		return ip.evalAssign(t)

	case *ast.LambdaFunc:
		return &FunctionValue{Lambda: t, Closure: append([]*Frame(nil), ip.frames...)}, nil
	}
	return nil, runtimeException("InternalError", "unhandled expression node", ip.calls.snapshot())
}

func (ip *Interp) evalLiteral(v *ast.Value) Value {
	switch v.ValueKind {
	case ast.VInt, ast.VSize:
		return IntValue(v.IntVal)
	case ast.VFloat:
		return FloatValue(v.FloatVal)
	case ast.VBool:
		return BoolValue(v.BoolVal)
	case ast.VChar:
		r := rune(0)
		for _, c := range v.StrVal {
			r = c
			break
		}
		return CharValue(uint16(r))
	case ast.VString:
		return StringValue(v.StrVal)
	}
	return NoneValue{}
}

func (ip *Interp) evalIdentifier(id *ast.Identifier) (Value, *Exception) {
	switch ref := id.Resolved.(type) {
	case *sema.VariableRef:
		v := ip.frames.get(ref.Distance, ref.Local.Slot+ref.Local.SlotAdd)
		if _, unset := v.(unassignedValue); unset {
			return nil, runtimeException(errUnassigned, "variable \""+id.Name+"\" read before assignment", ip.calls.snapshot())
		}
		return v, nil
	case *sema.EnumeratorRef:
		return &EnumValue{Enum: ref.Enum, Ctor: ref.Ctor}, nil
	case *sema.FuncNameRef:
		if len(ref.Candidates) > 0 {
			return &FunctionValue{Decl: ref.Candidates[0]}, nil
		}
	case *sema.BuiltinFuncNameRef:
		return &BuiltinValue{Name: ref.Name}, nil
	}
	return nil, runtimeException("InternalError", "identifier "+id.Name+" has no runtime value", ip.calls.snapshot())
}

func (ip *Interp) evalScopeResol(sr *ast.ScopeResol) (Value, *Exception) {
	switch ref := sr.Resolved.(type) {
	case *sema.EnumeratorRef:
		return &EnumValue{Enum: ref.Enum, Ctor: ref.Ctor}, nil
	case *sema.MemberFunctionRef:
		return &FunctionValue{Decl: ref.Method}, nil
	}
	return nil, runtimeException("InternalError", "cannot evaluate "+sr.String()+" as a value", ip.calls.snapshot())
}

func (ip *Interp) evalIndexRef(r *ast.IndexRef) (Value, *Exception) {
	target, exc := ip.evalExpr(r.Target)
	if exc != nil {
		return nil, exc
	}
	idx, exc := ip.evalExpr(r.Index)
	if exc != nil {
		return nil, exc
	}
	switch tv := target.(type) {
	case *VectorValue:
		i, ok := idx.(IntValue)
		if !ok || int(i) < 0 || int(i) >= len(tv.Elements) {
			return nil, runtimeException(errIndexOutOfRange, "vector index out of range", ip.calls.snapshot())
		}
		return tv.Elements[i], nil
	case StringValue:
		i, ok := idx.(IntValue)
		runes := []rune(string(tv))
		if !ok || int(i) < 0 || int(i) >= len(runes) {
			return nil, runtimeException(errIndexOutOfRange, "string index out of range", ip.calls.snapshot())
		}
		return CharValue(uint16(runes[i])), nil
	case *DictValue:
		v, ok := tv.Get(idx)
		if !ok {
			return nil, runtimeException(errIndexOutOfRange, "key not present in dict", ip.calls.snapshot())
		}
		return v, nil
	}
	return nil, runtimeException("TypeError", "value is not indexable", ip.calls.snapshot())
}

func (ip *Interp) evalMemberAccess(m *ast.MemberAccess) (Value, *Exception) {
	switch ref := m.Resolved.(type) {
	case *sema.MemberVariableRef:
		target, exc := ip.evalExpr(m.Target)
		if exc != nil {
			return nil, exc
		}
		inst, ok := target.(*InstanceValue)
		if !ok {
			return nil, runtimeException("InternalError", "member access on a non-instance value", ip.calls.snapshot())
		}
		off := fieldOffset(inst.Class, ref.Class, ref.Field.Index)
		v := inst.Fields[off]
		if _, unset := v.(unassignedValue); unset {
			return nil, runtimeException(errUnassigned, "field \""+m.Member+"\" read before assignment", ip.calls.snapshot())
		}
		return v, nil

	case *sema.MemberFunctionRef:
		self, exc := ip.evalExpr(m.Target)
		if exc != nil {
			return nil, exc
		}
		return &FunctionValue{Decl: ref.Method, Self: self}, nil

	case *sema.BuiltinMemberRef:
		self, exc := ip.evalExpr(m.Target)
		if exc != nil {
			return nil, exc
		}
		if ip.builtins == nil {
			return nil, runtimeException("NotImplemented", "builtin "+ref.Name+" is unavailable", ip.calls.snapshot())
		}
		return ip.builtins.CallMember(ip, ref.Name, self, nil)
	}
	return nil, runtimeException("InternalError", "member access "+m.Member+" has no runtime binding", ip.calls.snapshot())
}
