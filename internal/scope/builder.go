package scope

import (
	"github.com/cwbudde/flame/internal/ast"
)

// Builder constructs the scope tree for a completed Program in a single
// bottom-up walk (spec §4.4). Once built, the tree is immutable for the
// rest of analysis; template instantiation attaches new scopes rather than
// mutating existing ones.
type Builder struct {
	root       *Scope
	namespaces map[string]*Scope // per-parent-scope namespace name -> merged scope
}

func NewBuilder() *Builder {
	return &Builder{namespaces: map[string]*Scope{}}
}

// Build walks prog and returns the root scope, with every Block/Function/
// Class/Enum/Namespace node's scope stored in that node's own typed field
// (Block.BlockScope, Function.FuncScope, and so on).
func (b *Builder) Build(prog *ast.Program) *Scope {
	b.root = New(KindBlock, "<root>", nil, prog)
	for _, s := range prog.Statements {
		b.buildStmt(s, b.root)
	}
	b.root.computeStackSize()
	return b.root
}

// BuildStmtInto builds scope structure for a single statement directly into
// an already-created parent scope. Used when attaching a freshly cloned
// template-instantiation body to a scope built outside the normal top-down
// Build walk.
func (b *Builder) BuildStmtInto(s ast.Stmt, parent *Scope) {
	b.buildStmt(s, parent)
}

func (b *Builder) buildStmt(s ast.Stmt, parent *Scope) {
	switch t := s.(type) {
	case *ast.VarDef:
		lv := parent.Declare(t.Name, nil, t.Annotation == nil, false, t)
		t.Depth = lv.Depth
		t.Slot = lv.Slot
		t.SlotAdd = lv.SlotAdd
	case *ast.ExprStmt:
		// no declarations
	case *ast.If:
		b.buildBlockAsChild(t.Then, parent)
		if t.Else != nil {
			b.buildStmt(t.Else, parent)
		}
	case *ast.While:
		b.buildBlockAsChild(t.Body, parent)
	case *ast.Match:
		for _, arm := range t.Arms {
			armScope := New(KindBlock, "<match-arm>", parent, arm)
			arm.Body.BlockScope = armScope
			if arm.Pattern == ast.PatBindVar {
				armScope.Declare(arm.BindName, nil, true, false, arm)
			}
			for _, bind := range arm.ArgBindings {
				armScope.Declare(bind.Name, nil, true, false, bind)
			}
			for _, inner := range arm.Body.Statements {
				b.buildStmt(inner, armScope)
			}
			armScope.computeStackSize()
		}
	case *ast.TryCatch:
		b.buildBlockAsChild(t.Body, parent)
		for _, c := range t.Catchers {
			catchScope := New(KindBlock, "<catch>", parent, c.Body)
			c.Body.BlockScope = catchScope
			// Catcher blocks pre-allocate one argument-like slot for the
			// exception binding (spec §4.4).
			catchScope.Declare(c.BindName, nil, false, true, c.Body)
			for _, inner := range c.Body.Statements {
				b.buildStmt(inner, catchScope)
			}
			catchScope.computeStackSize()
		}
	case *ast.Block:
		b.buildBlockAsChild(t, parent)
	case *ast.Function:
		b.buildFunction(t, parent)
	case *ast.Enum:
		enumScope := New(KindEnum, t.Name, parent, t)
		t.EnumScope = enumScope
	case *ast.Class:
		b.buildClass(t, parent)
	case *ast.Namespace:
		b.buildNamespace(t, parent)
	case *ast.Import:
		if t.Desugared != nil {
			b.buildStmt(t.Desugared, parent)
		}
	}
}

func (b *Builder) buildBlockAsChild(blk *ast.Block, parent *Scope) {
	if blk == nil {
		return
	}
	child := New(KindBlock, "<block>", parent, blk)
	blk.BlockScope = child
	for _, s := range blk.Statements {
		b.buildStmt(s, child)
	}
	child.computeStackSize()
}

func (b *Builder) buildFunction(fn *ast.Function, parent *Scope) {
	fnScope := New(KindFunction, fn.Name, parent, fn)
	fn.FuncScope = fnScope
	for _, p := range fn.Params {
		fnScope.Declare(p.Name, nil, p.Annotation == nil, true, fn)
	}
	if fn.Body != nil {
		bodyScope := New(KindBlock, "<body>", fnScope, fn.Body)
		fn.Body.BlockScope = bodyScope
		for _, s := range fn.Body.Statements {
			b.buildStmt(s, bodyScope)
		}
		bodyScope.computeStackSize()
	}
}

func (b *Builder) buildClass(cls *ast.Class, parent *Scope) {
	classScope := New(KindClass, cls.Name, parent, cls)
	cls.ClassScope = classScope
	for i, f := range cls.Fields {
		classScope.Declare(f.Name, nil, f.Annotation == nil, false, f)
		f.Index = i
	}
	if cls.Ctor != nil {
		b.buildFunction(cls.Ctor, classScope)
	}
	for _, m := range cls.Methods {
		b.buildFunction(m, classScope)
	}
}

// buildNamespace merges a namespace declaration with any earlier sibling of
// the same name under the same parent: new variables are appended with
// their index_add set to the prior running count (spec §4.4).
func (b *Builder) buildNamespace(ns *ast.Namespace, parent *Scope) {
	key := nsKey(parent, ns.Name)
	nsScope, exists := b.namespaces[key]
	if !exists {
		nsScope = New(KindNamespace, ns.Name, parent, ns)
		b.namespaces[key] = nsScope
	}
	nsScope.indexAdd = len(nsScope.Locals)
	ns.NsScope = nsScope
	for _, s := range ns.Statements {
		b.buildStmt(s, nsScope)
	}
}

func nsKey(parent *Scope, name string) string {
	return ptrID(parent) + "::" + name
}

func ptrID(s *Scope) string {
	if s == nil {
		return "<nil>"
	}
	// Identity keyed by scope depth + node name chain is sufficient here
	// since namespaces only merge among true siblings under one parent.
	chain := s.NodeName
	for cur := s.Parent; cur != nil; cur = cur.Parent {
		chain = cur.NodeName + "/" + chain
	}
	return chain
}
