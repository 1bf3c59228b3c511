package interp

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/diag"
)

// classChain returns cls and its ancestors root-first, the order instance
// field slots are laid out in (spec §4.6 "allocate one slot per declared
// field" — a derived class's ClassField.Index restarts at 0 within its own
// scope, so a flat instance needs the ancestor chain to compute absolute
// offsets).
func classChain(cls *ast.Class) []*ast.Class {
	var rev []*ast.Class
	for c := cls; c != nil; c = c.BaseClass {
		rev = append(rev, c)
	}
	chain := make([]*ast.Class, len(rev))
	for i, c := range rev {
		chain[len(rev)-1-i] = c
	}
	return chain
}

// fieldOffset returns the absolute slot index of a field declared on
// fieldClass, within an instance whose dynamic class is leaf.
func fieldOffset(leaf *ast.Class, fieldClass *ast.Class, index int) int {
	off := 0
	for _, c := range classChain(leaf) {
		if c == fieldClass {
			return off + index
		}
		off += len(c.Fields)
	}
	return index
}

// construct implements spec §4.6 "Constructor calls ... instantiate the
// class": allocate one slot per declared field across the whole ancestor
// chain, run each field's initializer, then either run the declared
// constructor as an ordinary method bound to the new instance (the common
// case, where the constructor body itself assigns fields from its
// parameters) or, for a class with no declared constructor, fill the leaf
// class's own fields positionally from the call's arguments.
func (ip *Interp) construct(cls *ast.Class, args []ast.Argument, vals []Value) (Value, *Exception) {
	chain := classChain(cls)
	total := 0
	for _, c := range chain {
		total += len(c.Fields)
	}

	inst := &InstanceValue{Class: cls, Fields: make([]Value, total)}
	off := 0
	for _, c := range chain {
		for i, f := range c.Fields {
			if f.Init == nil {
				inst.Fields[off+i] = unassignedValue{}
				continue
			}
			v, exc := ip.evalExpr(f.Init)
			if exc != nil {
				return nil, exc
			}
			inst.Fields[off+i] = v
		}
		off += len(c.Fields)
	}

	if cls.Ctor != nil {
		bound := bindFuncParams(methodParams(cls.Ctor), args, vals)
		if _, exc := ip.callFunction(cls.Ctor, bound, inst, diag.Position{File: ip.file}); exc != nil {
			return nil, exc
		}
		return inst, nil
	}

	leafOff := total - len(cls.Fields)
	for i, v := range vals {
		if i >= len(cls.Fields) {
			break
		}
		inst.Fields[leafOff+i] = v
	}
	return inst, nil
}
