package sema

import (
	"strings"

	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/types"
)

var builtinKindByName = map[string]types.Kind{
	"int": types.Int, "float": types.Float, "bool": types.Bool,
	"char": types.Char, "string": types.Str, "none": types.None,
}

// resolveTypeName converts a parsed TypeName annotation into a TypeInfo.
// Unrecognized names (neither a built-in, a known class, nor a known enum)
// are treated as an unresolved template-parameter placeholder (Kind
// Unknown, Name set) — deduction or explicit @<...> substitution replaces
// them before the owning function/class is actually checked.
func (a *Analyzer) resolveTypeName(tn *ast.TypeName) *types.Info {
	if tn == nil {
		return types.Simple(types.None)
	}
	if k, ok := builtinKindByName[strings.ToLower(tn.Name)]; ok {
		return types.Simple(k)
	}
	switch tn.Name {
	case "Vector":
		return types.Parameterized(types.Vector, a.resolveTypeNameList(tn.Params)...)
	case "Dict":
		return types.Parameterized(types.Dict, a.resolveTypeNameList(tn.Params)...)
	case "Tuple":
		return types.Parameterized(types.Tuple, a.resolveTypeNameList(tn.Params)...)
	}
	if cls, ok := a.Classes[tn.Name]; ok {
		return &types.Info{Kind: types.Instance, Name: cls.Name, TypeAST: typeASTWrapper{name: cls.Name}}
	}
	if enum, ok := a.Enums[tn.Name]; ok {
		return &types.Info{Kind: types.Enumerator, Name: enum.Name, TypeAST: typeASTWrapper{name: enum.Name}}
	}
	return types.Named(types.Unknown, tn.Name)
}

func (a *Analyzer) resolveTypeNameList(tns []*ast.TypeName) []*types.Info {
	out := make([]*types.Info, len(tns))
	for i, tn := range tns {
		out[i] = a.resolveTypeName(tn)
	}
	return out
}

// typeASTWrapper adapts an ast.Node to types.TypeAST (spec §3's weak
// reference from TypeInfo back to its declaring node).
type typeASTWrapper struct{ name string }

func (w typeASTWrapper) TypeName() string { return w.name }
