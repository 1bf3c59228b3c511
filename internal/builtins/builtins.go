// Package builtins implements the runtime half of the built-in registry
// internal/sema only type-checks (internal/sema/builtins_registry.go): the
// free functions println/print/assert/@import/@json_encode/@json_decode and
// the per-primitive member functions (Int.abs, String.length, Vector.sort,
// ...). Split by concern the way the teacher's internal/interp/builtins
// package is split by primitive kind (strings.go, strings_compare.go, ...),
// but against this front end's own Value model.
//
// This package depends on internal/interp for the Value model but never the
// reverse (internal/interp.Builtins is the interface this package
// implements), so gjson/sjson/x-text/natural stay out of the evaluator's own
// import graph.
package builtins

import (
	"fmt"

	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/interp"
)

// Registry implements interp.Builtins against the fixed name set
// internal/sema's registry already validated call shapes for. It is
// stateless: every call is self-contained, nothing persists across calls.
type Registry struct{}

// New returns the one built-in implementation this front end ships.
func New() *Registry { return &Registry{} }

var _ interp.Builtins = (*Registry)(nil)

// CallFree dispatches a free built-in function by name.
func (r *Registry) CallFree(ip *interp.Interp, name string, args []interp.Value, call *ast.CallFunc) (interp.Value, *interp.Exception) {
	switch name {
	case "println":
		return callPrint(ip, args, true)
	case "print":
		return callPrint(ip, args, false)
	case "assert":
		return callAssert(args)
	case "@import":
		return callImport(ip, args)
	case "@json_encode":
		return jsonEncode(args)
	case "@json_decode":
		return jsonDecode(args)
	}
	return nil, interp.NewException("NotImplemented", "unknown built-in function "+name)
}

// CallMember dispatches a built-in member function/property bound to self.
func (r *Registry) CallMember(ip *interp.Interp, name string, self interp.Value, args []interp.Value) (interp.Value, *interp.Exception) {
	switch name {
	case "abs":
		return callAbs(self)
	case "length":
		return callLength(self)
	case "upper":
		return callUpper(self)
	case "lower":
		return callLower(self)
	case "display_width":
		return callDisplayWidth(self)
	case "sort":
		return callSort(self)
	}
	return nil, interp.NewException("NotImplemented", "unknown built-in member "+name)
}

func callPrint(ip *interp.Interp, args []interp.Value, newline bool) (interp.Value, *interp.Exception) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	out := ip.Out()
	for i, p := range parts {
		if i > 0 {
			fmt.Fprint(out, " ")
		}
		fmt.Fprint(out, p)
	}
	if newline {
		fmt.Fprintln(out)
	}
	return interp.NoneValue{}, nil
}

// callAssert implements `assert(cond)` (spec §4.5 registry entry
// "assert: (Bool) -> None"): a false condition raises a catchable
// AssertionFailed exception rather than halting unconditionally, so a
// script can wrap assertions in its own try/catch during a test run.
func callAssert(args []interp.Value) (interp.Value, *interp.Exception) {
	if len(args) != 1 {
		return nil, interp.NewException("InternalError", "assert expects exactly one argument")
	}
	cond, ok := args[0].(interp.BoolValue)
	if !ok {
		return nil, interp.NewException("TypeError", "assert expects a Bool argument")
	}
	if !bool(cond) {
		return nil, interp.NewException("AssertionFailed", "assertion failed")
	}
	return interp.NoneValue{}, nil
}

// callImport resolves `@import("path")` through the Importer the driver
// configured (spec §6 "Import"); without one configured, it always fails at
// run time rather than the evaluator silently pretending the module loaded.
func callImport(ip *interp.Interp, args []interp.Value) (interp.Value, *interp.Exception) {
	if len(args) != 1 {
		return nil, interp.NewException("InternalError", "@import expects exactly one argument")
	}
	path, ok := args[0].(interp.StringValue)
	if !ok {
		return nil, interp.NewException("TypeError", "@import expects a String path")
	}
	importer := ip.Importer()
	if importer == nil {
		return nil, interp.NewException("NotImplemented", "this build has no module importer configured")
	}
	mod, err := importer.Import(string(path), ip.File())
	if err != nil {
		return nil, interp.NewException("ImportError", err.Error())
	}
	return mod, nil
}
