package interp

import (
	"io"
	"strings"

	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/diag"
	"github.com/cwbudde/flame/internal/errors"
	"github.com/cwbudde/flame/internal/scope"
	"github.com/cwbudde/flame/internal/sema"
)

// unassignedValue marks a slot that was declared without an initializer and
// has not yet been assigned (spec §8 "scope-slot law" only guarantees the
// slot is in range, not that it holds a value).
type unassignedValue struct{}

func (unassignedValue) Type() string   { return "Unassigned" }
func (unassignedValue) String() string { return "<unassigned>" }

// Interp holds the two runtime stacks (variable frames and the call stack)
// and the ambient
// services (output sink, built-in implementations, module importer) a
// running program needs.
type Interp struct {
	frames stack
	calls  *callStack

	sm   *diag.SourceMap
	file string
	out  io.Writer

	builtins Builtins
	importer Importer

	topFuncs map[string]*ast.Function
}

// New creates an interpreter for one compilation unit. builtins and importer
// may be nil; calling a built-in or `import` then fails with a runtime
// exception instead of panicking, so a lex/parse-only driver mode never
// needs to supply them.
func New(sm *diag.SourceMap, file string, out io.Writer, builtins Builtins, importer Importer) *Interp {
	return &Interp{
		calls:    newCallStack(defaultMaxCallDepth),
		sm:       sm,
		file:     file,
		out:      out,
		builtins: builtins,
		importer: importer,
		topFuncs: map[string]*ast.Function{},
	}
}

// Run executes every top-level statement of prog in order against root, the
// scope tree the analyzer built for it. It returns the value of the last
// top-level expression statement that ran (None if the program has none),
// or the rendered uncaught exception as an error (spec §7
// "every failure renders a single primary message ... then exits with a
// non-zero status").
func (ip *Interp) Run(prog *ast.Program, root *scope.Scope) (Value, error) {
	ip.frames.push(newFrame(len(root.Locals)))
	defer ip.frames.pop()

	var last Value = NoneValue{}
	for _, s := range prog.Statements {
		if fn, ok := s.(*ast.Function); ok {
			ip.topFuncs[fn.Name] = fn
		}
		if es, ok := s.(*ast.ExprStmt); ok {
			v, exc := ip.evalExpr(es.X)
			if exc != nil {
				return nil, ip.renderException(exc)
			}
			last = v
			continue
		}
		sig := ip.exec(s)
		if sig != nil && sig.kind == sigException {
			return nil, ip.renderException(sig.exc)
		}
	}
	return last, nil
}

// LookupFunction finds a top-level function declaration by name, for a
// driver that wants to invoke e.g. `main` after loading a script.
func (ip *Interp) LookupFunction(name string) (*ast.Function, bool) {
	fn, ok := ip.topFuncs[name]
	return fn, ok
}

// Out exposes the output sink given to New, for a Builtins implementation
// outside this package to write println/print output to.
func (ip *Interp) Out() io.Writer { return ip.out }

// File returns the path of the compilation unit being run, for a Builtins
// implementation that needs it to resolve a relative `@import` path.
func (ip *Interp) File() string { return ip.file }

// Importer exposes the module importer given to New (nil if none was
// configured), for the "@import" built-in function.
func (ip *Interp) Importer() Importer { return ip.importer }

// CallFunction invokes a user function with already-evaluated arguments and
// no bound self, surfacing an uncaught exception as a rendered error exactly
// like Run does.
func (ip *Interp) CallFunction(fn *ast.Function, args []Value) (Value, error) {
	v, exc := ip.callFunction(fn, args, nil, diag.Position{File: ip.file})
	if exc != nil {
		return nil, ip.renderException(exc)
	}
	return v, nil
}

func (ip *Interp) renderException(exc *Exception) error {
	re := errors.NewRuntimeError(diag.Position{File: ip.file}, exceptionMessage(exc), "", ip.file)
	re.Stack = exc.Stack
	return re
}

func exceptionMessage(exc *Exception) string {
	switch exc.TypeName {
	case errDividedByZero, errStackOverflow, errIndexOutOfRange, errUnassigned:
		return exc.TypeName + ": " + exc.Value.String()
	default:
		return "uncaught exception: " + exc.Value.String()
	}
}

func blockScopeOf(s ast.Scope) *scope.Scope {
	if s == nil {
		return nil
	}
	return s.(*scope.Scope)
}

// execBlockWithBinding pushes a frame sized to b's own scope, optionally lets
// the caller bind slots before running (used by catch clauses to bind the
// caught value into slot 0), runs every statement until a non-nil signal, and
// pops the frame again regardless of outcome.
func (ip *Interp) execBlockWithBinding(b *ast.Block, bind func(*Frame)) *signal {
	sc := blockScopeOf(b.BlockScope)
	n := 0
	if sc != nil {
		n = len(sc.Locals)
	}
	f := newFrame(n)
	if bind != nil {
		bind(f)
	}
	ip.frames.push(f)
	defer ip.frames.pop()

	for _, s := range b.Statements {
		if sig := ip.exec(s); sig != nil {
			return sig
		}
	}
	return nil
}

func (ip *Interp) execBlock(b *ast.Block) *signal {
	return ip.execBlockWithBinding(b, nil)
}

// exec runs one statement, returning a non-nil signal only for a non-local
// control transfer (break/continue/return/exception); a nil return means
// "fall through to the next statement" (spec §4.6 loop-stack/call-stack
// design).
func (ip *Interp) exec(s ast.Stmt) *signal {
	switch t := s.(type) {
	case *ast.ExprStmt:
		if _, exc := ip.evalExpr(t.X); exc != nil {
			return &signal{kind: sigException, exc: exc}
		}
		return nil

	case *ast.Block:
		return ip.execBlock(t)

	case *ast.VarDef:
		var val Value = unassignedValue{}
		if t.Init != nil {
			v, exc := ip.evalExpr(t.Init)
			if exc != nil {
				return &signal{kind: sigException, exc: exc}
			}
			val = v
		}
		ip.frames.set(0, t.Slot+t.SlotAdd, val)
		return nil

	case *ast.If:
		cond, exc := ip.evalExpr(t.Cond)
		if exc != nil {
			return &signal{kind: sigException, exc: exc}
		}
		if Truthy(cond) {
			return ip.execBlock(t.Then)
		}
		if t.Else != nil {
			return ip.exec(t.Else)
		}
		return nil

	case *ast.While:
		for {
			cond, exc := ip.evalExpr(t.Cond)
			if exc != nil {
				return &signal{kind: sigException, exc: exc}
			}
			if !Truthy(cond) {
				return nil
			}
			sig := ip.execBlock(t.Body)
			if sig == nil {
				continue
			}
			switch sig.kind {
			case sigBreak:
				return nil
			case sigContinue:
				continue
			default:
				return sig
			}
		}

	case *ast.Break:
		return &signal{kind: sigBreak}

	case *ast.Continue:
		return &signal{kind: sigContinue}

	case *ast.Return:
		var val Value = NoneValue{}
		if t.Value != nil {
			v, exc := ip.evalExpr(t.Value)
			if exc != nil {
				return &signal{kind: sigException, exc: exc}
			}
			val = v
		}
		return &signal{kind: sigReturn, returnVal: val}

	case *ast.Throw:
		v, exc := ip.evalExpr(t.Value)
		if exc != nil {
			return &signal{kind: sigException, exc: exc}
		}
		return &signal{kind: sigException, exc: userException(v, ip.calls.snapshot())}

	case *ast.TryCatch:
		return ip.execTryCatch(t)

	case *ast.Match:
		return ip.execMatch(t)

	case *ast.Function, *ast.Enum, *ast.Class:
		return nil // declarations only; nothing to execute

	case *ast.Namespace:
		for _, inner := range t.Statements {
			if sig := ip.exec(inner); sig != nil {
				return sig
			}
		}
		return nil

	case *ast.Import:
		if t.Desugared != nil {
			return ip.exec(t.Desugared)
		}
		return nil
	}
	return nil
}

func (ip *Interp) execTryCatch(t *ast.TryCatch) *signal {
	sig := ip.execBlock(t.Body)
	if sig == nil || sig.kind != sigException {
		return sig
	}
	for _, c := range t.Catchers {
		if c.Type == nil || !strings.EqualFold(c.Type.Name, sig.exc.TypeName) {
			continue
		}
		exc := sig.exc
		return ip.execBlockWithBinding(c.Body, func(f *Frame) {
			f.Slots[0] = exc.Value
		})
	}
	return sig // no catcher matched; keep propagating
}

func (ip *Interp) execMatch(m *ast.Match) *signal {
	scrut, exc := ip.evalExpr(m.Scrutinee)
	if exc != nil {
		return &signal{kind: sigException, exc: exc}
	}

	for _, arm := range m.Arms {
		switch arm.Pattern {
		case ast.PatWildcard:
			return ip.runMatchArm(arm, nil)

		case ast.PatBindVar:
			v := scrut
			return ip.runMatchArm(arm, func(f *Frame) { f.Slots[0] = v })

		case ast.PatExpr:
			av, exc := ip.evalExpr(arm.Expr)
			if exc != nil {
				return &signal{kind: sigException, exc: exc}
			}
			if Equal(scrut, av) {
				return ip.runMatchArm(arm, nil)
			}

		case ast.PatEnumerator, ast.PatEnumeratorArgs:
			ev, ok := scrut.(*EnumValue)
			if !ok {
				continue
			}
			ref, ok := arm.Scope.Resolved.(*sema.EnumeratorRef)
			if !ok || ref.Ctor != ev.Ctor {
				continue
			}
			fields := ev.Fields
			return ip.runMatchArm(arm, func(f *Frame) {
				for i := range arm.ArgBindings {
					if i < len(fields) {
						f.Slots[i] = fields[i]
					}
				}
			})
		}
	}
	return &signal{kind: sigException, exc: runtimeException("MatchFailure", "no match arm matched the scrutinee value", ip.calls.snapshot())}
}

func (ip *Interp) runMatchArm(arm *ast.MatchArm, bind func(*Frame)) *signal {
	return ip.execBlockWithBinding(arm.Body, bind)
}
