// Package types defines the static type model shared by the semantic
// analyzer and the evaluator.
package types

import "strings"

// Kind enumerates the primitive and structural type categories a TypeInfo
// can carry (spec §3).
type Kind int

const (
	Unknown Kind = iota // placeholder that unifies with anything during template deduction
	None                // unit/void
	Int
	Float
	Bool
	Char
	Str
	Vector
	Tuple
	Dict
	Enumerator
	Instance
	Module
	Function
	TypeName
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "Unknown"
	case None:
		return "None"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Bool:
		return "Bool"
	case Char:
		return "Char"
	case Str:
		return "String"
	case Vector:
		return "Vector"
	case Tuple:
		return "Tuple"
	case Dict:
		return "Dict"
	case Enumerator:
		return "Enumerator"
	case Instance:
		return "Instance"
	case Module:
		return "Module"
	case Function:
		return "Function"
	case TypeName:
		return "TypeName"
	default:
		return "?"
	}
}

// TypeAST is the minimal surface the types package needs from ast.Node: a
// weak reference back to the declaring node for user-defined types, kept as
// an interface to avoid an import cycle between ast and types.
type TypeAST interface {
	TypeName() string
}

// Info is the type of a value or a declared type annotation (spec §3).
// Two Infos are equal iff their Kinds match (Unknown matches anything, used
// during template deduction), their Names match when applicable, and their
// Params are pointwise equal.
type Info struct {
	Kind       Kind
	Params     []*Info // Vector<T>, Dict<K,V>, Function(T...)->U, Tuple(T...)
	Name       string  // Instance/Enumerator/Unknown(template param)/Function-pointer class name
	TypeAST    TypeAST // declaring node for Instance/Enumerator; nil for primitives
	IsConst    bool
	IsFreeArgs bool // variadic function type
}

func Simple(k Kind) *Info { return &Info{Kind: k} }

func Named(k Kind, name string) *Info { return &Info{Kind: k, Name: name} }

func Parameterized(k Kind, params ...*Info) *Info { return &Info{Kind: k, Params: params} }

// FunctionType builds the type of a callable with the given parameter types
// and return type.
func FunctionType(params []*Info, ret *Info, variadic bool) *Info {
	all := append(append([]*Info{}, params...), ret)
	return &Info{Kind: Function, Params: all, IsFreeArgs: variadic}
}

// FunctionParams / FunctionReturn split a Function Info's Params back into
// its parameter list and return type.
func (t *Info) FunctionParams() []*Info {
	if t.Kind != Function || len(t.Params) == 0 {
		return nil
	}
	return t.Params[:len(t.Params)-1]
}

func (t *Info) FunctionReturn() *Info {
	if t.Kind != Function || len(t.Params) == 0 {
		return Simple(None)
	}
	return t.Params[len(t.Params)-1]
}

// Equal implements the equivalence rule from spec §3: kinds must match
// (Unknown matches anything on either side — used during template
// deduction), names must match when either carries one, and params must be
// pointwise equal.
func Equal(a, b *Info) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind == Unknown || b.Kind == Unknown {
		return true
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Name != "" || b.Name != "" {
		if a.Name != b.Name {
			return false
		}
	}
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !Equal(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return true
}

func (t *Info) String() string {
	if t == nil {
		return "<nil>"
	}
	var sb strings.Builder
	switch t.Kind {
	case Function:
		sb.WriteString("(")
		params := t.FunctionParams()
		for i, p := range params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		sb.WriteString(") -> ")
		sb.WriteString(t.FunctionReturn().String())
		return sb.String()
	case Instance, Enumerator, Unknown:
		if t.Name != "" {
			return t.Name
		}
	}
	sb.WriteString(t.Kind.String())
	if len(t.Params) > 0 {
		sb.WriteString("<")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		sb.WriteString(">")
	}
	return sb.String()
}

// IsNumeric reports whether the type is Int or Float — the two kinds never
// silently mix (spec §4.6).
func (t *Info) IsNumeric() bool { return t.Kind == Int || t.Kind == Float }

// Clone makes a deep copy, used when instantiating a template specialization
// so that substitution never mutates the generic declaration's own types.
func (t *Info) Clone() *Info {
	if t == nil {
		return nil
	}
	c := &Info{Kind: t.Kind, Name: t.Name, TypeAST: t.TypeAST, IsConst: t.IsConst, IsFreeArgs: t.IsFreeArgs}
	for _, p := range t.Params {
		c.Params = append(c.Params, p.Clone())
	}
	return c
}
