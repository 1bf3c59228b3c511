package interp

import "github.com/cwbudde/flame/internal/ast"

// Builtins is the runtime surface internal/builtins implements: the actual
// bodies behind every name internal/sema's builtin registry only type-checks
// (spec §4.5 Open Question, "a small registry of (type_kind, member_name,
// result_type, compute_fn) entries" — this is that registry's evaluation
// half). Keeping it an interface lets internal/builtins depend on interp's
// Value model without interp depending back on gjson/sjson/x-text.
type Builtins interface {
	// CallFree invokes a free built-in function (println, print, assert,
	// @import, @json_encode, @json_decode, ...) with already-evaluated,
	// positionally-ordered arguments.
	CallFree(ip *Interp, name string, args []Value, call *ast.CallFunc) (Value, *Exception)

	// CallMember invokes a built-in member function/property
	// (Int.abs, String.length, Vector.sort, ...) bound to self.
	CallMember(ip *Interp, name string, self Value, args []Value) (Value, *Exception)
}

// Importer resolves and evaluates `import a/b/c;` (spec §6 "Import"),
// supplied by the driver so internal/interp never has to know about the
// filesystem or internal/units directly.
type Importer interface {
	Import(path, fromFile string) (*ModuleValue, error)
}
