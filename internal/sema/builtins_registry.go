package sema

import "github.com/cwbudde/flame/internal/types"

// BuiltinFree describes one built-in free function's call signature, used
// purely for name resolution and type checking; internal/interp and
// internal/builtins supply the matching runtime implementation keyed by the
// same name (spec §4.5 Open Question: "a small registry of (type_kind,
// member_name, result_type, compute_fn) entries" — this is that registry's
// type-checking half).
type BuiltinFree struct {
	Name     string
	Params   []*types.Info
	Return   *types.Info
	VarArgs  bool
}

// BuiltinMember describes one built-in member function/property over a
// primitive TypeKind, e.g. Int.abs() or String.length().
type BuiltinMember struct {
	TypeKind types.Kind
	Name     string
	Params   []*types.Info
	Return   *types.Info
}

var freeFuncs = map[string]*BuiltinFree{
	"println":  {Name: "println", Params: nil, VarArgs: true, Return: types.Simple(types.None)},
	"print":    {Name: "print", Params: nil, VarArgs: true, Return: types.Simple(types.None)},
	"assert":   {Name: "assert", Params: []*types.Info{types.Simple(types.Bool)}, Return: types.Simple(types.None)},
	"@import":  {Name: "@import", Params: []*types.Info{types.Simple(types.Str)}, Return: types.Simple(types.Module)},
	"@json_encode": {Name: "@json_encode", Params: nil, VarArgs: true, Return: types.Simple(types.Str)},
	"@json_decode": {Name: "@json_decode", Params: []*types.Info{types.Simple(types.Str)}, Return: types.Simple(types.Unknown)},
}

var memberFuncs = map[string]*BuiltinMember{
	memberKey(types.Int, "abs"):      {TypeKind: types.Int, Name: "abs", Return: types.Simple(types.Int)},
	memberKey(types.Float, "abs"):    {TypeKind: types.Float, Name: "abs", Return: types.Simple(types.Float)},
	memberKey(types.Str, "length"):   {TypeKind: types.Str, Name: "length", Return: types.Simple(types.Int)},
	memberKey(types.Vector, "length"): {TypeKind: types.Vector, Name: "length", Return: types.Simple(types.Int)},
	memberKey(types.Dict, "length"):  {TypeKind: types.Dict, Name: "length", Return: types.Simple(types.Int)},
	memberKey(types.Str, "upper"):    {TypeKind: types.Str, Name: "upper", Return: types.Simple(types.Str)},
	memberKey(types.Str, "lower"):    {TypeKind: types.Str, Name: "lower", Return: types.Simple(types.Str)},
	memberKey(types.Str, "display_width"): {TypeKind: types.Str, Name: "display_width", Return: types.Simple(types.Int)},
	memberKey(types.Vector, "sort"):  {TypeKind: types.Vector, Name: "sort", Return: types.Simple(types.None)},
}

func memberKey(k types.Kind, name string) string { return k.String() + "." + name }

// LookupBuiltinFree returns the free-function signature for name, if any.
func LookupBuiltinFree(name string) (*BuiltinFree, bool) {
	b, ok := freeFuncs[name]
	return b, ok
}

// LookupBuiltinMember returns the member-function signature for
// (typeKind, name), if any.
func LookupBuiltinMember(k types.Kind, name string) (*BuiltinMember, bool) {
	b, ok := memberFuncs[memberKey(k, name)]
	return b, ok
}
