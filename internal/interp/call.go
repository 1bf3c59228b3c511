package interp

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/diag"
	"github.com/cwbudde/flame/internal/scope"
	"github.com/cwbudde/flame/internal/sema"
)

// evalArguments evaluates every actual argument in source order, left to
// right, before any binding happens — side effects in argument expressions
// must run in call.Args order regardless of how named/positional binding
// later reshuffles the values (spec §4.6 "Call resolution ... evaluate
// every argument").
func (ip *Interp) evalArguments(args []ast.Argument) ([]Value, *Exception) {
	vals := make([]Value, len(args))
	for i, a := range args {
		v, exc := ip.evalExpr(a.Value)
		if exc != nil {
			return nil, exc
		}
		vals[i] = v
	}
	return vals, nil
}

// bindFuncParams maps already-evaluated argument values onto a formal
// parameter list by name (for named arguments) then by position (for the
// rest), mirroring sema's matchArgs binding order exactly. A trailing
// IsVarArg parameter collects every left-over positional argument into a
// Vector.
func bindFuncParams(params []*ast.FuncParam, args []ast.Argument, vals []Value) []Value {
	n := len(params)
	bound := make([]Value, n)
	if n == 0 {
		return bound
	}
	varArg := params[n-1].IsVarArg
	fixed := n
	if varArg {
		fixed = n - 1
	}

	given := make([]bool, fixed)
	var positional []int
	for i, a := range args {
		if a.Name == "" {
			positional = append(positional, i)
			continue
		}
		for pi := 0; pi < fixed; pi++ {
			if params[pi].Name == a.Name && !given[pi] {
				bound[pi] = vals[i]
				given[pi] = true
				break
			}
		}
	}

	pi := 0
	for i := 0; i < fixed; i++ {
		if given[i] {
			continue
		}
		if pi < len(positional) {
			bound[i] = vals[positional[pi]]
			pi++
		}
	}

	if varArg {
		rest := make([]Value, 0, len(positional)-pi)
		for ; pi < len(positional); pi++ {
			rest = append(rest, vals[positional[pi]])
		}
		bound[n-1] = NewVector(rest)
	}
	return bound
}

func (ip *Interp) posOf(n ast.Node) diag.Position {
	return n.Span().Start
}

// evalCall dispatches a CallFunc on the six shapes sema's overload
// resolution can leave in CalleeDecl (spec §3 "Every CallFunc has exactly
// one callee_decl after analysis").
func (ip *Interp) evalCall(c *ast.CallFunc) (Value, *Exception) {
	vals, exc := ip.evalArguments(c.Args)
	if exc != nil {
		return nil, exc
	}

	switch decl := c.CalleeDecl.(type) {
	case *ast.Function:
		return ip.evalFunctionCall(decl, c, vals)

	case *sema.BuiltinFuncNameRef:
		if ip.builtins == nil {
			return nil, runtimeException("NotImplemented", "builtin "+decl.Name+" is unavailable", ip.calls.snapshot())
		}
		return ip.builtins.CallFree(ip, decl.Name, vals, c)

	case *sema.BuiltinMemberRef:
		ma, ok := c.Callee.(*ast.MemberAccess)
		if !ok {
			return nil, runtimeException("InternalError", "builtin member call missing a receiver", ip.calls.snapshot())
		}
		self, exc := ip.evalExpr(ma.Target)
		if exc != nil {
			return nil, exc
		}
		if ip.builtins == nil {
			return nil, runtimeException("NotImplemented", "builtin "+decl.Name+" is unavailable", ip.calls.snapshot())
		}
		return ip.builtins.CallMember(ip, decl.Name, self, vals)

	case *sema.CtorRef:
		return ip.construct(decl.Class, c.Args, vals)

	case *sema.EnumCtorCallRef:
		bound := bindFuncParams(decl.Ctor.Fields, c.Args, vals)
		return &EnumValue{Enum: decl.Enum, Ctor: decl.Ctor, Fields: bound}, nil

	case *sema.VariableRef:
		fv, exc := ip.evalExpr(c.Callee)
		if exc != nil {
			return nil, exc
		}
		return ip.callValue(fv, c, vals)
	}
	return nil, runtimeException("InternalError", "call has no resolved target", ip.calls.snapshot())
}

func (ip *Interp) evalFunctionCall(decl *ast.Function, c *ast.CallFunc, vals []Value) (Value, *Exception) {
	var self Value
	if decl.IsMethod {
		if ma, ok := c.Callee.(*ast.MemberAccess); ok {
			v, exc := ip.evalExpr(ma.Target)
			if exc != nil {
				return nil, exc
			}
			self = v
		}
	}
	params := methodParams(decl)
	bound := bindFuncParams(params, c.Args, vals)
	return ip.callFunction(decl, bound, self, ip.posOf(c))
}

// methodParams strips the literal leading `self` parameter (never bound from
// the positional argument list — it comes from the call's receiver).
func methodParams(fn *ast.Function) []*ast.FuncParam {
	if fn.IsMethod && len(fn.Params) > 0 && fn.Params[0].Name == "self" {
		return fn.Params[1:]
	}
	return fn.Params
}

// callValue invokes a first-class function value (a variable holding a
// function, a lambda literal, or a bound member function).
func (ip *Interp) callValue(fv Value, c *ast.CallFunc, vals []Value) (Value, *Exception) {
	switch fn := fv.(type) {
	case *FunctionValue:
		if fn.Lambda != nil {
			bound := bindFuncParams(fn.Lambda.Params, c.Args, vals)
			return ip.callLambda(fn, bound)
		}
		if fn.Decl != nil {
			bound := bindFuncParams(methodParams(fn.Decl), c.Args, vals)
			return ip.callFunction(fn.Decl, bound, fn.Self, ip.posOf(c))
		}
	case *BuiltinValue:
		if ip.builtins == nil {
			return nil, runtimeException("NotImplemented", "builtin "+fn.Name+" is unavailable", ip.calls.snapshot())
		}
		return ip.builtins.CallFree(ip, fn.Name, vals, c)
	}
	return nil, runtimeException("TypeError", "value is not callable", ip.calls.snapshot())
}

// callFunction runs a user function or method body: push a call-stack frame
// (for recursion-limit enforcement), push a var-stack frame sized to the
// function's own scope (self + params), bind self and the already-matched
// arguments into it, then execute the body (which pushes its own nested
// frame for the body block's own lets, per scope.Builder.buildFunction).
func (ip *Interp) callFunction(fn *ast.Function, args []Value, self Value, pos diag.Position) (Value, *Exception) {
	if err := ip.calls.push(fn.Name, ip.file, pos); err != nil {
		return nil, runtimeException(errStackOverflow, err.Error(), ip.calls.snapshot())
	}
	defer ip.calls.pop()

	fnScope, _ := fn.FuncScope.(*scope.Scope)
	n := len(fn.Params)
	if fnScope != nil {
		n = len(fnScope.Locals)
	}
	f := newFrame(n)
	slot := 0
	if fn.IsMethod && len(fn.Params) > 0 && fn.Params[0].Name == "self" {
		f.Slots[0] = self
		slot = 1
	}
	for _, v := range args {
		if slot >= len(f.Slots) {
			break
		}
		f.Slots[slot] = v
		slot++
	}

	ip.frames.push(f)
	defer ip.frames.pop()

	if fn.Body == nil {
		return NoneValue{}, nil
	}
	sig := ip.execBlock(fn.Body)
	if sig == nil {
		return NoneValue{}, nil
	}
	switch sig.kind {
	case sigReturn:
		return sig.returnVal, nil
	case sigException:
		return nil, sig.exc
	default:
		return NoneValue{}, nil
	}
}

// callLambda runs a lambda literal's body against the frame stack captured
// when the literal was evaluated, with one extra frame for its own
// parameters, so the closure sees the locals alive at its point of
// definition rather than at its point of call.
func (ip *Interp) callLambda(fv *FunctionValue, args []Value) (Value, *Exception) {
	l := fv.Lambda
	saved := ip.frames
	ip.frames = append(stack{}, fv.Closure...)
	defer func() { ip.frames = saved }()

	pf := newFrame(len(l.Params))
	for i, v := range args {
		if i < len(pf.Slots) {
			pf.Slots[i] = v
		}
	}
	ip.frames.push(pf)
	defer ip.frames.pop()

	sig := ip.execBlock(l.Body)
	if sig == nil {
		return NoneValue{}, nil
	}
	switch sig.kind {
	case sigReturn:
		return sig.returnVal, nil
	case sigException:
		return nil, sig.exc
	default:
		return NoneValue{}, nil
	}
}
