package interp

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/sema"
)

// evalBinary implements spec §4.6's evaluator-side operator semantics,
// mirroring the type rules sema.checkBinary already enforced statically:
// Int and Float never mix, `..` builds an Int vector, equality/comparison
// delegate to Equal/compare, and everything else requires same-kind operands
// except the String and Vector forms handled by evalStringOp/evalVectorOp.
func (ip *Interp) evalBinary(b *ast.Binary) (Value, *Exception) {
	if b.Op == ast.OpLogAnd {
		l, exc := ip.evalExpr(b.Left)
		if exc != nil {
			return nil, exc
		}
		if !Truthy(l) {
			return BoolValue(false), nil
		}
		r, exc := ip.evalExpr(b.Right)
		if exc != nil {
			return nil, exc
		}
		return BoolValue(Truthy(r)), nil
	}
	if b.Op == ast.OpLogOr {
		l, exc := ip.evalExpr(b.Left)
		if exc != nil {
			return nil, exc
		}
		if Truthy(l) {
			return BoolValue(true), nil
		}
		r, exc := ip.evalExpr(b.Right)
		if exc != nil {
			return nil, exc
		}
		return BoolValue(Truthy(r)), nil
	}

	left, exc := ip.evalExpr(b.Left)
	if exc != nil {
		return nil, exc
	}
	right, exc := ip.evalExpr(b.Right)
	if exc != nil {
		return nil, exc
	}

	switch b.Op {
	case ast.OpEq:
		return BoolValue(Equal(left, right)), nil
	case ast.OpNe:
		return BoolValue(!Equal(left, right)), nil
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return ip.evalCompare(b.Op, left, right)
	case ast.OpRange:
		return ip.evalRange(left, right)
	}
	return ip.evalArith(b.Op, left, right)
}

func (ip *Interp) evalCompare(op ast.BinaryOp, l, r Value) (Value, *Exception) {
	cmp, ok := numericCompare(l, r)
	if !ok {
		if ls, ok1 := l.(StringValue); ok1 {
			if rs, ok2 := r.(StringValue); ok2 {
				cmp = stringCompare(string(ls), string(rs))
				ok = true
			}
		}
	}
	if !ok {
		return nil, runtimeException("TypeError", "values are not comparable", ip.calls.snapshot())
	}
	switch op {
	case ast.OpLt:
		return BoolValue(cmp < 0), nil
	case ast.OpLe:
		return BoolValue(cmp <= 0), nil
	case ast.OpGt:
		return BoolValue(cmp > 0), nil
	default:
		return BoolValue(cmp >= 0), nil
	}
}

func numericCompare(l, r Value) (int, bool) {
	switch lv := l.(type) {
	case IntValue:
		rv, ok := r.(IntValue)
		if !ok {
			return 0, false
		}
		switch {
		case lv < rv:
			return -1, true
		case lv > rv:
			return 1, true
		default:
			return 0, true
		}
	case FloatValue:
		rv, ok := r.(FloatValue)
		if !ok {
			return 0, false
		}
		switch {
		case lv < rv:
			return -1, true
		case lv > rv:
			return 1, true
		default:
			return 0, true
		}
	case CharValue:
		rv, ok := r.(CharValue)
		if !ok {
			return 0, false
		}
		switch {
		case lv < rv:
			return -1, true
		case lv > rv:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func stringCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// evalRange builds the half-open Int vector `[left, right)` (§8 Open
// Question, resolved half-open since original_source showed no contrary
// signal and half-open composes simplest with Vector indexing/length).
func (ip *Interp) evalRange(l, r Value) (Value, *Exception) {
	lo, ok1 := l.(IntValue)
	hi, ok2 := r.(IntValue)
	if !ok1 || !ok2 {
		return nil, runtimeException("TypeError", "range bounds must be Int", ip.calls.snapshot())
	}
	if hi <= lo {
		return NewVector(nil), nil
	}
	elems := make([]Value, 0, hi-lo)
	for i := lo; i < hi; i++ {
		elems = append(elems, i)
	}
	return NewVector(elems), nil
}

func (ip *Interp) evalArith(op ast.BinaryOp, l, r Value) (Value, *Exception) {
	switch lv := l.(type) {
	case IntValue:
		rv, ok := r.(IntValue)
		if !ok {
			return nil, runtimeException("TypeError", "operator requires matching Int operands", ip.calls.snapshot())
		}
		return ip.evalIntOp(op, lv, rv)
	case FloatValue:
		rv, ok := r.(FloatValue)
		if !ok {
			return nil, runtimeException("TypeError", "operator requires matching Float operands", ip.calls.snapshot())
		}
		return ip.evalFloatOp(op, lv, rv)
	case StringValue:
		return ip.evalStringOp(op, lv, r)
	case CharValue:
		return ip.evalCharOp(op, lv, r)
	case *VectorValue:
		return ip.evalVectorOp(op, lv, r)
	}
	return nil, runtimeException("TypeError", "operator not defined for this type", ip.calls.snapshot())
}

func (ip *Interp) evalIntOp(op ast.BinaryOp, l, r IntValue) (Value, *Exception) {
	switch op {
	case ast.OpAdd:
		return l + r, nil
	case ast.OpSub:
		return l - r, nil
	case ast.OpMul:
		return l * r, nil
	case ast.OpDiv:
		if r == 0 {
			return nil, runtimeException(errDividedByZero, "integer division by zero", ip.calls.snapshot())
		}
		return l / r, nil
	case ast.OpMod:
		if r == 0 {
			return nil, runtimeException(errDividedByZero, "integer modulo by zero", ip.calls.snapshot())
		}
		return l % r, nil
	case ast.OpBitOr:
		return l | r, nil
	case ast.OpBitXor:
		return l ^ r, nil
	case ast.OpBitAnd:
		return l & r, nil
	case ast.OpShl:
		return l << uint64(r), nil // unmasked shift amount, spec §6
	case ast.OpShr:
		return l >> uint64(r), nil
	}
	return nil, runtimeException("TypeError", "operator not defined for Int", ip.calls.snapshot())
}

func (ip *Interp) evalFloatOp(op ast.BinaryOp, l, r FloatValue) (Value, *Exception) {
	switch op {
	case ast.OpAdd:
		return l + r, nil
	case ast.OpSub:
		return l - r, nil
	case ast.OpMul:
		return l * r, nil
	case ast.OpDiv:
		if r == 0 {
			return nil, runtimeException(errDividedByZero, "float division by zero", ip.calls.snapshot())
		}
		return l / r, nil
	}
	return nil, runtimeException("TypeError", "operator not defined for Float", ip.calls.snapshot())
}

// evalStringOp supports String+String concatenation and String*Int
// repetition (spec §4.6 "String/Char concatenation rules").
func (ip *Interp) evalStringOp(op ast.BinaryOp, l StringValue, r Value) (Value, *Exception) {
	switch op {
	case ast.OpAdd:
		switch rv := r.(type) {
		case StringValue:
			return l + rv, nil
		case CharValue:
			return l + StringValue(rune(rv)), nil
		}
	case ast.OpMul:
		if n, ok := r.(IntValue); ok {
			out := ""
			for i := IntValue(0); i < n; i++ {
				out += string(l)
			}
			return StringValue(out), nil
		}
	}
	return nil, runtimeException("TypeError", "operator not defined for String", ip.calls.snapshot())
}

func (ip *Interp) evalCharOp(op ast.BinaryOp, l CharValue, r Value) (Value, *Exception) {
	if op == ast.OpAdd {
		switch rv := r.(type) {
		case StringValue:
			return StringValue(rune(l)) + rv, nil
		case CharValue:
			return StringValue(rune(l)) + StringValue(rune(rv)), nil
		}
	}
	return nil, runtimeException("TypeError", "operator not defined for Char", ip.calls.snapshot())
}

// evalVectorOp supports `Vector + element` and `Vector + Vector`, always
// producing a new VectorValue (spec scenario 5: `v = v + 4; v[3];`).
func (ip *Interp) evalVectorOp(op ast.BinaryOp, l *VectorValue, r Value) (Value, *Exception) {
	if op != ast.OpAdd {
		return nil, runtimeException("TypeError", "operator not defined for Vector", ip.calls.snapshot())
	}
	out := make([]Value, len(l.Elements), len(l.Elements)+1)
	copy(out, l.Elements)
	if rv, ok := r.(*VectorValue); ok {
		out = append(out, rv.Elements...)
	} else {
		out = append(out, r)
	}
	return NewVector(out), nil
}

func (ip *Interp) evalUnary(u *ast.Unary) (Value, *Exception) {
	v, exc := ip.evalExpr(u.Operand)
	if exc != nil {
		return nil, exc
	}
	switch u.Op {
	case ast.OpNeg:
		switch n := v.(type) {
		case IntValue:
			return -n, nil
		case FloatValue:
			return -n, nil
		}
	case ast.OpNot:
		return BoolValue(!Truthy(v)), nil
	case ast.OpBitNot:
		if n, ok := v.(IntValue); ok {
			return ^n, nil
		}
	}
	return nil, runtimeException("TypeError", "unary operator not defined for this type", ip.calls.snapshot())
}

func (ip *Interp) evalAssign(a *ast.Assign) (Value, *Exception) {
	val, exc := ip.evalExpr(a.Value)
	if exc != nil {
		return nil, exc
	}
	switch target := a.Target.(type) {
	case *ast.Identifier:
		ref, ok := target.Resolved.(*sema.VariableRef)
		if !ok {
			return nil, runtimeException("InternalError", "assignment target is not a variable", ip.calls.snapshot())
		}
		ip.frames.set(ref.Distance, ref.Local.Slot+ref.Local.SlotAdd, val)
		return val, nil

	case *ast.MemberAccess:
		ref, ok := target.Resolved.(*sema.MemberVariableRef)
		if !ok {
			return nil, runtimeException("InternalError", "assignment target is not a field", ip.calls.snapshot())
		}
		recv, exc := ip.evalExpr(target.Target)
		if exc != nil {
			return nil, exc
		}
		inst, ok := recv.(*InstanceValue)
		if !ok {
			return nil, runtimeException("InternalError", "field assignment on a non-instance value", ip.calls.snapshot())
		}
		inst.Fields[fieldOffset(inst.Class, ref.Class, ref.Field.Index)] = val
		return val, nil

	case *ast.IndexRef:
		recv, exc := ip.evalExpr(target.Target)
		if exc != nil {
			return nil, exc
		}
		idx, exc := ip.evalExpr(target.Index)
		if exc != nil {
			return nil, exc
		}
		switch tv := recv.(type) {
		case *VectorValue:
			i, ok := idx.(IntValue)
			if !ok || int(i) < 0 || int(i) >= len(tv.Elements) {
				return nil, runtimeException(errIndexOutOfRange, "vector index out of range", ip.calls.snapshot())
			}
			tv.Elements[i] = val
			return val, nil
		case *DictValue:
			tv.Set(idx, val)
			return val, nil
		}
		return nil, runtimeException("TypeError", "value does not support index assignment", ip.calls.snapshot())
	}
	return nil, runtimeException("InternalError", "unassignable expression", ip.calls.snapshot())
}
