package sema

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/scope"
	"github.com/cwbudde/flame/internal/types"
)

// The following types are the concrete payloads the analyzer stores in
// ast.Identifier.Resolved, ast.ScopeResol.Resolved, ast.MemberAccess.Resolved
// and ast.CallFunc.CalleeDecl, refining the node's Kind in lockstep (spec §3
// design note "Identifier rewriting": the evaluator dispatches on this
// resolution, never on ConstructedAs).

// VariableRef resolves an Identifier to a local variable slot.
// Distance is the frame-distance the evaluator subtracts from its current
// depth to find the owning frame (spec §4.6, "Scope-slot law" in §8).
type VariableRef struct {
	Local    *scope.LocalVar
	Distance int
}

// FuncNameRef resolves an Identifier/ScopeResol to a user function or
// overload set (pre-call-site; CallFunc.CalleeDecl narrows to exactly one).
type FuncNameRef struct {
	Candidates []*ast.Function
}

// BuiltinFuncNameRef resolves to a built-in free function by name.
type BuiltinFuncNameRef struct {
	Name string
}

// EnumeratorRef resolves an Identifier/ScopeResol to one constructor of an
// enum type (a bare value if Ctor has no fields, otherwise used via
// CallFunc_Enumerator).
type EnumeratorRef struct {
	Enum *ast.Enum
	Ctor *ast.EnumCtor
}

// EnumNameRef resolves to the enum type itself (used as a ScopeResol
// prefix, e.g. `Opt::Some`).
type EnumNameRef struct {
	Enum *ast.Enum
}

// ClassNameRef resolves to a class type (used as a constructor callee or a
// static qualifier).
type ClassNameRef struct {
	Class *ast.Class
}

// MemberVariableRef resolves a MemberAccess to a class field.
type MemberVariableRef struct {
	Class *ast.Class
	Field *ast.ClassField
}

// MemberFunctionRef resolves a MemberAccess/CallFunc callee to a method.
type MemberFunctionRef struct {
	Class  *ast.Class
	Method *ast.Function
}

// BuiltinMemberRef resolves a MemberAccess to a built-in member (e.g. `abs`
// on Int, `length` on String/Vector) — spec §4.5 Open Question, "a small
// registry of (type_kind, member_name, result_type, compute_fn) entries".
type BuiltinMemberRef struct {
	TypeKind types.Kind
	Name     string
}

// NamespaceRef resolves a ScopeResol prefix to a namespace scope.
type NamespaceRef struct {
	Scope *scope.Scope
}

// CtorRef is CallFunc.CalleeDecl for a `CallFunc_Ctor` constructor call.
type CtorRef struct {
	Class *ast.Class
}

// EnumCtorCallRef is CallFunc.CalleeDecl for a `CallFunc_Enumerator` call
// (an enumerator invoked with constructor-style arguments).
type EnumCtorCallRef struct {
	Enum *ast.Enum
	Ctor *ast.EnumCtor
}
