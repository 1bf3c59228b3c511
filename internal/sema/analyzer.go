// Package sema implements name resolution, type checking, overload
// resolution, and template instantiation over a parsed AST (spec §4.5).
//
// It runs in two passes: Collect (pass 1) registers every top-level enum,
// class, and function and resolves class inheritance; Check (pass 2)
// recursively type-checks every statement and expression, refining each
// node's Kind and Resolved fields in place.
package sema

import (
	"fmt"

	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/diag"
	"github.com/cwbudde/flame/internal/scope"
)

func sprintf(format string, args ...interface{}) string { return fmt.Sprintf(format, args...) }

// Analyzer holds the registries and scope tree built for one compilation
// unit (plus any units merged in via import).
type Analyzer struct {
	Root      *scope.Scope
	Classes   map[string]*ast.Class
	Enums     map[string]*ast.Enum
	Functions map[string][]*ast.Function // name -> overload set
	Pending   []*ast.Function            // instantiated template clones awaiting pass 2

	errs []*Error
	warn []*diag.Diagnostic
	sm   *diag.SourceMap
}

func New(sm *diag.SourceMap) *Analyzer {
	return &Analyzer{
		Classes:   map[string]*ast.Class{},
		Enums:     map[string]*ast.Enum{},
		Functions: map[string][]*ast.Function{},
		sm:        sm,
	}
}

func (a *Analyzer) pos(span diag.Span) diag.Position { return span.Start }

func (a *Analyzer) fail(tag Tag, span diag.Span, format string, args ...interface{}) *Error {
	e := newErr(tag, a.pos(span), format, args...)
	a.errs = append(a.errs, e)
	return e
}

func (a *Analyzer) warnf(span diag.Span, format string, args ...interface{}) {
	a.warn = append(a.warn, &diag.Diagnostic{
		Severity: diag.SeverityWarning, Pos: a.pos(span), Message: sprintf(format, args...),
	})
}

// Errors / Warnings expose everything accumulated so far. Run stops at the
// first Error and returns it, but callers inspecting partial state
// (tooling) can still read everything collected up to that point here.
func (a *Analyzer) Errors() []*Error            { return a.errs }
func (a *Analyzer) Warnings() []*diag.Diagnostic { return a.warn }

// Run builds the scope tree, then performs both analysis passes. It returns
// the first error encountered; the evaluator must not run if err != nil
// (spec §7).
func Run(prog *ast.Program, sm *diag.SourceMap) (*Analyzer, error) {
	a := New(sm)
	b := scope.NewBuilder()
	a.Root = b.Build(prog)

	if err := a.collect(prog, a.Root); err != nil {
		return a, err
	}
	if err := a.resolveInheritance(); err != nil {
		return a, err
	}
	for _, s := range prog.Statements {
		if err := a.checkStmt(s, a.Root); err != nil {
			return a, err
		}
	}
	for len(a.Pending) > 0 {
		fn := a.Pending[0]
		a.Pending = a.Pending[1:]
		parent := fn.FuncScope.(*scope.Scope).Parent
		if err := a.checkStmt(fn, parent); err != nil {
			return a, err
		}
	}
	return a, nil
}
