package sema

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/diag"
	"github.com/cwbudde/flame/internal/scope"
)

// Found is the result of find_name: the refined ast.Kind to apply and the
// resolution payload to store (spec §4.5 "Identifier resolution").
type Found struct {
	Kind    ast.Kind
	Payload interface{}
}

var builtinTypeNames = map[string]bool{
	"int": true, "float": true, "bool": true, "char": true, "string": true,
	"vector": true, "dict": true, "tuple": true, "none": true,
}

// findName walks scopes from innermost out (unless onlyCurrentScope),
// collecting matches in the priority order named in spec §4.5: local
// variable -> local function set -> enumerator -> enum type -> class ->
// namespace -> built-in type name -> built-in function.
func (a *Analyzer) findName(name string, s *scope.Scope, onlyCurrentScope bool, span diag.Span) (*Found, *Error) {
	// 1. local variable, searching from innermost scope outward.
	for cur := s; cur != nil; cur = cur.Parent {
		if lv := cur.FindLocal(name); lv != nil {
			return &Found{Kind: ast.KVariable, Payload: &VariableRef{Local: lv, Distance: s.Depth - lv.Depth}}, nil
		}
		if onlyCurrentScope {
			break
		}
		if cur.Kind == scope.KindFunction {
			// parameters live one level further in; variables do not cross
			// into an enclosing function's locals (each function frame is
			// independent), but the walk still continues past to look for
			// functions/classes/namespaces declared outside.
		}
	}

	// 2. local function overload set (top-level registry; this front end
	// treats all free functions as globally visible once collected).
	if set, ok := a.Functions[name]; ok {
		return &Found{Kind: ast.KFuncName, Payload: &FuncNameRef{Candidates: set}}, nil
	}

	// 3. enumerator: a bare name that uniquely identifies one constructor
	// across all known enums.
	if ctor, enum, ambiguous := a.findEnumerator(name); ambiguous {
		return nil, a.fail(ErrAmbiguousName, span, "%q is ambiguous between multiple enum constructors; qualify with Enum::%s", name, name)
	} else if ctor != nil {
		return &Found{Kind: ast.KEnumerator, Payload: &EnumeratorRef{Enum: enum, Ctor: ctor}}, nil
	}

	// 4. enum type.
	if enum, ok := a.Enums[name]; ok {
		return &Found{Kind: ast.KEnumName, Payload: &EnumNameRef{Enum: enum}}, nil
	}

	// 5. class.
	if cls, ok := a.Classes[name]; ok {
		return &Found{Kind: ast.KClassName, Payload: &ClassNameRef{Class: cls}}, nil
	}

	// 6. namespace: search the scope tree for a namespace child with this
	// name, visible from s outward.
	for cur := s; cur != nil; cur = cur.Parent {
		for _, child := range cur.Children {
			if child.Kind == scope.KindNamespace && child.NodeName == name {
				return &Found{Kind: ast.KIdentifier, Payload: &NamespaceRef{Scope: child}}, nil
			}
		}
		if onlyCurrentScope {
			break
		}
	}

	// 7. built-in type name.
	if builtinTypeNames[name] {
		return &Found{Kind: ast.KIdentifier, Payload: nil}, nil
	}

	// 8. built-in function.
	if _, ok := LookupBuiltinFree(name); ok {
		return &Found{Kind: ast.KBuiltinFuncName, Payload: &BuiltinFuncNameRef{Name: name}}, nil
	}

	return nil, nil
}

func (a *Analyzer) findEnumerator(name string) (*ast.EnumCtor, *ast.Enum, bool) {
	var found *ast.EnumCtor
	var foundEnum *ast.Enum
	for _, enum := range a.Enums {
		for _, c := range enum.Ctors {
			if c.Name == name {
				if found != nil && foundEnum != enum {
					return nil, nil, true
				}
				found, foundEnum = c, enum
			}
		}
	}
	return found, foundEnum, false
}
