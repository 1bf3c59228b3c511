package ast

import "github.com/cwbudde/flame/internal/diag"

func (*Value) exprNode()        {}
func (*Identifier) exprNode()   {}
func (*ScopeResol) exprNode()   {}
func (*Array) exprNode()        {}
func (*IndexRef) exprNode()     {}
func (*MemberAccess) exprNode() {}
func (*CallFunc) exprNode()     {}
func (*Binary) exprNode()       {}
func (*Unary) exprNode()        {}
func (*Assign) exprNode()       {}
func (*LambdaFunc) exprNode()   {}
func (*TypeName) exprNode()     {}
func (*Signature) exprNode()    {}

// ValueKind distinguishes the literal kinds a Value node can carry.
type ValueKind int

const (
	VInt ValueKind = iota
	VFloat
	VSize
	VBool
	VChar
	VString
)

// Value is a literal: int, float, size, bool, char, or string.
type Value struct {
	base
	ValueKind ValueKind
	Lexeme    string // original source text, preserved for pretty-printing
	IntVal    int64
	FloatVal  float64
	BoolVal   bool
	StrVal    string
}

func NewValue(span diag.Span, vk ValueKind, lexeme string) *Value {
	return &Value{base: newBase(KValue, span), ValueKind: vk, Lexeme: lexeme}
}

func (v *Value) String() string { return v.Lexeme }

// Identifier is a bare name reference. Name resolution refines Kind to one
// of KVariable/KFuncName/KBuiltinFuncName/KEnumerator/KEnumName/KClassName/
// KMemberVariable/KMemberFunction/KBuiltinMember and populates Resolved.
type Identifier struct {
	base
	Name        string
	TypeArgs    []*TypeName // explicit @<T1, T2, ...> if present
	Resolved    interface{} // populated by sema; see internal/sema for concrete payload types
	IsFreshBind bool        // true for match-arm pattern variables introduced at this node
}

func NewIdentifier(span diag.Span, name string) *Identifier {
	return &Identifier{base: newBase(KIdentifier, span), Name: name}
}

func (i *Identifier) String() string { return i.Name }

// ScopeResol is a qualified name `a::b::c`, collapsed from chained `::`
// suffixes at parse time (spec §4.2). OverloadGuide holds an optional
// trailing `of (T1, T2) -> U` disambiguator.
type ScopeResol struct {
	base
	Parts         []string
	OverloadGuide *Signature
	Resolved      interface{}
}

func NewScopeResol(span diag.Span, parts []string) *ScopeResol {
	return &ScopeResol{base: newBase(KScopeResol, span), Parts: parts}
}

func (s *ScopeResol) String() string {
	out := ""
	for i, p := range s.Parts {
		if i > 0 {
			out += "::"
		}
		out += p
	}
	return out
}

// Array is an array literal `[a, b, c]`.
type Array struct {
	base
	Elements []Expr
}

func NewArray(span diag.Span, elems []Expr) *Array {
	return &Array{base: newBase(KArray, span), Elements: elems}
}

func (a *Array) String() string { return printNode(a) }

// IndexRef is `base[index]`.
type IndexRef struct {
	base
	Target Expr
	Index  Expr
}

func NewIndexRef(span diag.Span, target, index Expr) *IndexRef {
	return &IndexRef{base: newBase(KIndexRef, span), Target: target, Index: index}
}

func (r *IndexRef) String() string { return printNode(r) }

// MemberAccess is `base.member`.
type MemberAccess struct {
	base
	Target   Expr
	Member   string
	Resolved interface{}
}

func NewMemberAccess(span diag.Span, target Expr, member string) *MemberAccess {
	return &MemberAccess{base: newBase(KMemberAccess, span), Target: target, Member: member}
}

func (m *MemberAccess) String() string { return printNode(m) }

// Argument is one actual argument in a call: either positional (Name=="")
// or named (`name: expr`).
type Argument struct {
	Name  string
	Value Expr
}

// CalleeDecl is populated by the analyzer once overload resolution binds a
// CallFunc to exactly one candidate (spec §3 invariant).
type CalleeDecl = interface{}

// CallFunc is `callee(args...)`. After analysis Kind may be refined to
// KCallFuncCtor or KCallFuncEnumerator, and CalleeDecl is always set.
type CallFunc struct {
	base
	Callee     Expr
	Args       []Argument
	CalleeDecl CalleeDecl
}

func NewCallFunc(span diag.Span, callee Expr, args []Argument) *CallFunc {
	return &CallFunc{base: newBase(KCallFunc, span), Callee: callee, Args: args}
}

func (c *CallFunc) String() string { return printNode(c) }

// BinaryOp enumerates binary operators, precedence-ordered low to high to
// mirror the parser's ladder (spec §4.2).
type BinaryOp int

const (
	OpLogOr BinaryOp = iota
	OpLogAnd
	OpBitOr
	OpBitXor
	OpBitAnd
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpShl
	OpShr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpRange // `..`
)

var binaryOpText = map[BinaryOp]string{
	OpLogOr: "||", OpLogAnd: "&&", OpBitOr: "|", OpBitXor: "^", OpBitAnd: "&",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpShl: "<<", OpShr: ">>", OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
	OpMod: "%", OpRange: "..",
}

func (o BinaryOp) String() string { return binaryOpText[o] }

// Binary is a binary-operator expression.
type Binary struct {
	base
	Op          BinaryOp
	Left, Right Expr
}

func NewBinary(span diag.Span, op BinaryOp, l, r Expr) *Binary {
	return &Binary{base: newBase(KBinary, span), Op: op, Left: l, Right: r}
}

func (b *Binary) String() string { return printNode(b) }

// UnaryOp enumerates prefix unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
)

// Unary is a prefix unary-operator expression.
type Unary struct {
	base
	Op      UnaryOp
	Operand Expr
}

func NewUnary(span diag.Span, op UnaryOp, operand Expr) *Unary {
	return &Unary{base: newBase(KUnary, span), Op: op, Operand: operand}
}

func (u *Unary) String() string { return printNode(u) }

// Assign is `lhs = rhs`. Compound assignments desugar to this at parse time
// (spec §4.2); CompoundOp remembers the original operator for pretty-print
// fidelity even though evaluation always sees a plain Assign.
type Assign struct {
	base
	Target      Expr
	Value       Expr
	CompoundOp  string // "", "+", "-", "*", "/" — desugar provenance only
}

func NewAssign(span diag.Span, target, value Expr, compoundOp string) *Assign {
	return &Assign{base: newBase(KAssign, span), Target: target, Value: value, CompoundOp: compoundOp}
}

func (a *Assign) String() string { return printNode(a) }

// TypeName is a type annotation such as `int`, `Vector<T>`, or a bare
// template-parameter name.
type TypeName struct {
	base
	Name   string
	Params []*TypeName
}

func NewTypeName(span diag.Span, name string, params []*TypeName) *TypeName {
	return &TypeName{base: newBase(KTypeName, span), Name: name, Params: params}
}

func (t *TypeName) TypeNameStr() string { return t.String() }
func (t *TypeName) String() string      { return printNode(t) }

// Signature is `(T1, T2) -> U`, used both for lambda/function type
// annotations and as an overload-resolution guide after `of`.
type Signature struct {
	base
	Params  []*TypeName
	Return  *TypeName
	VarArgs bool
}

func NewSignature(span diag.Span, params []*TypeName, ret *TypeName, varArgs bool) *Signature {
	return &Signature{base: newBase(KSignature, span), Params: params, Return: ret, VarArgs: varArgs}
}

func (s *Signature) String() string { return printNode(s) }

// LambdaFunc is an anonymous function literal.
type LambdaFunc struct {
	base
	Params  []*FuncParam
	RetType *TypeName
	Body    *Block
}

func NewLambdaFunc(span diag.Span, params []*FuncParam, ret *TypeName, body *Block) *LambdaFunc {
	return &LambdaFunc{base: newBase(KLambdaFunc, span), Params: params, RetType: ret, Body: body}
}

func (l *LambdaFunc) String() string { return printNode(l) }
