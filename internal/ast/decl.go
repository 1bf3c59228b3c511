package ast

import "github.com/cwbudde/flame/internal/diag"

func (*Function) stmtNode()  {}
func (*Enum) stmtNode()      {}
func (*Class) stmtNode()     {}
func (*Namespace) stmtNode() {}
func (*Import) stmtNode()    {}

// FuncParam is one formal parameter of a function/lambda/method.
type FuncParam struct {
	Name       string
	Annotation *TypeName
	IsVarArg   bool // trailing unspecified tail (spec §4.5 "arity check ... variadic support")
}

// TemplateParam is one `<T>` formal type parameter.
type TemplateParam struct {
	Name string
}

// Function is `fn name<T, U>(args) -> T { body }`.
type Function struct {
	base
	Name           string
	TemplateParams []*TemplateParam
	Params         []*FuncParam
	RetType        *TypeName
	Body           *Block
	FuncScope      Scope

	// Populated by the semantic analyzer.
	IsInstantiated bool              // true for a template specialization clone
	TemplateArgs   map[string]string // substitution map recorded with the clone (design note)
	OriginFunc     *Function         // the generic declaration this was cloned from

	// Class-member-only flags (zero value elsewhere).
	IsVirtual  bool
	IsOverride bool
	IsMethod   bool
	IsCtor     bool
}

func NewFunction(span diag.Span, name string) *Function {
	return &Function{base: newBase(KFunction, span), Name: name}
}

func (f *Function) IsTemplate() bool { return len(f.TemplateParams) > 0 && !f.IsInstantiated }

func (f *Function) String() string { return printNode(f) }

// EnumCtor is one enum constructor, e.g. `None`, `Some(int)`, or
// `Point(x: int, y: int)`.
type EnumCtor struct {
	base
	Name   string
	Fields []*FuncParam // empty for a no-data constructor
}

func NewEnumCtor(span diag.Span, name string, fields []*FuncParam) *EnumCtor {
	return &EnumCtor{base: newBase(KEnumCtor, span), Name: name, Fields: fields}
}

func (e *EnumCtor) String() string { return printNode(e) }

// Enum is `enum Name { ctor, ctor(T), ... }`.
type Enum struct {
	base
	Name       string
	Ctors      []*EnumCtor
	EnumScope  Scope
}

func NewEnum(span diag.Span, name string) *Enum {
	return &Enum{base: newBase(KEnum, span), Name: name}
}

func (e *Enum) String() string { return printNode(e) }

// ClassField is one `let field: T (= init)?;` member-variable declaration.
type ClassField struct {
	base
	Name       string
	Annotation *TypeName
	Init       Expr
	Index      int // declaration order, used for constructor slot layout
}

func NewClassField(span diag.Span, name string, ann *TypeName, init Expr, index int) *ClassField {
	return &ClassField{base: newBase(KClassField, span), Name: name, Annotation: ann, Init: init, Index: index}
}

func (f *ClassField) String() string { return printNode(f) }

// Class is `class Name : Base { fields...; ctor; methods... }`.
type Class struct {
	base
	Name              string
	InheritBaseName   string
	BaseClass         *Class // resolved by sema pass 1
	IsFinal           bool
	Fields            []*ClassField
	Ctor              *Function // nil if implicit default ctor
	Methods           []*Function
	VirtualFunctions  []*Function // recorded virtuals, for override matching
	ClassScope        Scope
}

func NewClass(span diag.Span, name string) *Class {
	return &Class{base: newBase(KClass, span), Name: name}
}

func (c *Class) String() string { return printNode(c) }

// Namespace is `namespace Name { decls... }`. Sibling namespaces of the same
// name merge at scope-build time (spec §4.4); this node only represents one
// textual occurrence.
type Namespace struct {
	base
	Name       string
	Statements []Stmt
	NsScope    Scope
}

func NewNamespace(span diag.Span, name string, stmts []Stmt) *Namespace {
	return &Namespace{base: newBase(KNamespace, span), Name: name, Statements: stmts}
}

func (n *Namespace) String() string { return printNode(n) }

// Import is `import a/b/c;`, desugared at parse time to
// `let base = @import("a/b/c.fire");` per spec §4.2/§6.
type Import struct {
	base
	Path      string // "a/b/c"
	LocalName string // "c"
	Desugared *VarDef
}

func NewImport(span diag.Span, path, localName string) *Import {
	return &Import{base: newBase(KImport, span), Path: path, LocalName: localName}
}

func (i *Import) String() string { return "import " + i.Path + ";" }
