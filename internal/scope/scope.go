// Package scope builds and represents the hierarchical name-environment
// tree that the semantic analyzer resolves identifiers against and the
// evaluator indexes call frames by (spec §3 "Scope node", §4.4).
package scope

import (
	"github.com/cwbudde/flame/internal/ast"
	"github.com/cwbudde/flame/internal/types"
)

// Kind distinguishes the scope variants named in spec §3.
type Kind int

const (
	KindBlock Kind = iota
	KindFunction
	KindClass
	KindEnum
	KindNamespace
)

// LocalVar is one declared name inside a Block or Function scope (spec §3).
type LocalVar struct {
	Name         string
	DeducedType  *types.Info
	IsDeducted   bool
	IsArgument   bool
	Declaring    ast.Node
	Depth        int
	Slot         int
	SlotAdd      int // offset contributed by earlier namespace merges
}

// Scope is the common shape of every scope-tree node.
type Scope struct {
	Kind     Kind
	NodeName string
	Parent   *Scope
	Children []*Scope
	Locals   []*LocalVar
	Depth    int

	// Block/Function only.
	StackSize int

	// Owning declaration, kept as ast.Node so diagnostics can point back at
	// the source. nil for the implicit root scope.
	Owner ast.Node

	// indexAdd is the running slot offset contributed by namespace merges;
	// only meaningful on KindNamespace scopes, zero elsewhere.
	indexAdd int
}

func (s *Scope) Name() string { return s.NodeName }

// New creates a scope node of the given kind as a child of parent (nil for
// the root). Depth is parent's depth + 1, or 0 for the root.
func New(kind Kind, name string, parent *Scope, owner ast.Node) *Scope {
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}
	s := &Scope{Kind: kind, NodeName: name, Parent: parent, Depth: depth, Owner: owner}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Declare allocates one slot for name in this scope. index is the 0-based
// position among this scope's own definitions; indexAdd is the running
// offset contributed by earlier namespace merges (spec §4.4).
func (s *Scope) Declare(name string, typ *types.Info, deducted, isArg bool, owner ast.Node) *LocalVar {
	lv := &LocalVar{
		Name: name, DeducedType: typ, IsDeducted: deducted, IsArgument: isArg,
		Declaring: owner, Depth: s.Depth, Slot: len(s.Locals), SlotAdd: s.indexAdd,
	}
	s.Locals = append(s.Locals, lv)
	return lv
}

// FindLocal looks up name among this scope's own locals only (no walking to
// parents); used by find_name's "local variable" priority tier.
func (s *Scope) FindLocal(name string) *LocalVar {
	for _, lv := range s.Locals {
		if lv.Name == name {
			return lv
		}
	}
	return nil
}

// EnclosingFunction walks up to the nearest Function scope, or nil at the
// root.
func (s *Scope) EnclosingFunction() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind == KindFunction {
			return cur
		}
	}
	return nil
}

// ComputeStackSize recomputes StackSize per spec §4.4 and returns it; exposed
// for callers (template instantiation) that attach scopes outside the
// normal Builder.Build walk.
func (s *Scope) ComputeStackSize() int { return s.computeStackSize() }

// computeStackSize implements spec §4.4: a block's stack_size is its own
// variable count plus the sum of every nested non-namespace block's
// stack_size.
func (s *Scope) computeStackSize() int {
	total := len(s.Locals)
	for _, c := range s.Children {
		if c.Kind == KindNamespace {
			continue
		}
		if c.Kind == KindBlock {
			total += c.computeStackSize()
		}
	}
	s.StackSize = total
	return total
}
