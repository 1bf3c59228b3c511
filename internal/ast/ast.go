// Package ast defines the abstract syntax tree produced by the parser,
// mutated in place by the semantic analyzer, and walked by the evaluator.
//
// Every node carries both a ConstructedAs kind (fixed forever at parse time)
// and a current Kind, which the analyzer refines in place — e.g. an
// Identifier's Kind becomes Variable once name resolution finds it — while
// ConstructedAs keeps remembering that the node began life as an Identifier,
// so pretty-printing can still round-trip the original source shape
// (spec §3, design note "Identifier rewriting").
package ast

import (
	"github.com/cwbudde/flame/internal/diag"
	"github.com/cwbudde/flame/internal/token"
	"github.com/cwbudde/flame/internal/types"
)

// Kind discriminates the ~60 node variants named in spec §3.
type Kind int

const (
	KValue Kind = iota
	KIdentifier
	KScopeResol
	KArray
	KIndexRef
	KMemberAccess
	KCallFunc
	KBinary
	KUnary
	KAssign
	KBlock
	KVarDef
	KIf
	KMatch
	KMatchArm
	KWhile
	KBreak
	KContinue
	KReturn
	KThrow
	KTryCatch
	KArgument
	KFunction
	KEnum
	KEnumCtor
	KClass
	KClassField
	KNamespace
	KTypeName
	KSignature
	KLambdaFunc
	KImport

	// Sema-internal refinements of KIdentifier / KScopeResol / KCallFunc.
	KVariable
	KFuncName
	KBuiltinFuncName
	KEnumerator
	KEnumName
	KClassName
	KMemberVariable
	KMemberFunction
	KBuiltinMember
	KCallFuncCtor
	KCallFuncEnumerator
)

// Node is the common interface every AST node satisfies.
type Node interface {
	Kind() Kind
	ConstructedAs() Kind
	SetKind(Kind)
	Span() diag.Span
	Type() *types.Info
	SetType(*types.Info)
	Scope() Scope
	SetScope(Scope)
	String() string
}

// Scope is the minimal surface ast needs from the scope package, kept as an
// interface to avoid an import cycle (scope nodes reference the ast nodes
// that own them, and ast nodes reference the scope node that owns them).
type Scope interface {
	Name() string
}

// base is embedded by every concrete node and implements the bookkeeping
// fields common to all of them.
type base struct {
	kind          Kind
	constructedAs Kind
	span          diag.Span
	typ           *types.Info
	scope         Scope
}

func newBase(k Kind, span diag.Span) base {
	return base{kind: k, constructedAs: k, span: span}
}

func (b *base) Kind() Kind             { return b.kind }
func (b *base) ConstructedAs() Kind    { return b.constructedAs }
func (b *base) SetKind(k Kind)         { b.kind = k }
func (b *base) Span() diag.Span        { return b.span }
func (b *base) Type() *types.Info      { return b.typ }
func (b *base) SetType(t *types.Info)  { b.typ = t }
func (b *base) Scope() Scope           { return b.scope }
func (b *base) SetScope(s Scope)       { b.scope = s }

// Expr marks nodes that produce a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt marks nodes that perform an action.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed compilation unit.
type Program struct {
	base
	Statements []Stmt
	File       string
}

func NewProgram(file string, span diag.Span) *Program {
	return &Program{base: newBase(KBlock, span), File: file}
}

func (p *Program) String() string { return printNode(p) }

// Token wraps a lexer token plus the span it occupied, reused by nodes that
// need to remember their originating/ending tokens verbatim (spec §3).
type TokenRef = token.Token
