package ast

// CloneFunction deep-copies a Function's signature and body, for template
// instantiation. The clone gets a fresh base (no scope, no resolved Kind)
// so re-analysis treats it as an independent declaration; OriginFunc keeps
// a trail back to the generic declaration for diagnostics (spec §4.5).
func CloneFunction(f *Function) *Function {
	clone := &Function{
		base:       newBase(KFunction, f.span),
		Name:       f.Name,
		RetType:    cloneTypeName(f.RetType),
		IsVirtual:  f.IsVirtual,
		IsOverride: f.IsOverride,
		IsMethod:   f.IsMethod,
		IsCtor:     f.IsCtor,
		OriginFunc: f,
	}
	for _, p := range f.Params {
		clone.Params = append(clone.Params, &FuncParam{
			Name: p.Name, Annotation: cloneTypeName(p.Annotation), IsVarArg: p.IsVarArg,
		})
	}
	clone.Body = cloneBlock(f.Body)
	return clone
}

func cloneTypeName(t *TypeName) *TypeName {
	if t == nil {
		return nil
	}
	c := &TypeName{base: newBase(KTypeName, t.span), Name: t.Name}
	for _, p := range t.Params {
		c.Params = append(c.Params, cloneTypeName(p))
	}
	return c
}

func cloneBlock(b *Block) *Block {
	if b == nil {
		return nil
	}
	c := &Block{base: newBase(KBlock, b.span)}
	for _, s := range b.Statements {
		c.Statements = append(c.Statements, cloneStmt(s))
	}
	return c
}

func cloneExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	switch t := e.(type) {
	case *Value:
		c := *t
		return &c
	case *Identifier:
		c := &Identifier{base: newBase(KIdentifier, t.span), Name: t.Name}
		for _, ta := range t.TypeArgs {
			c.TypeArgs = append(c.TypeArgs, cloneTypeName(ta))
		}
		return c
	case *ScopeResol:
		c := &ScopeResol{base: newBase(KScopeResol, t.span), Parts: append([]string{}, t.Parts...)}
		return c
	case *Array:
		c := &Array{base: newBase(KArray, t.span)}
		for _, el := range t.Elements {
			c.Elements = append(c.Elements, cloneExpr(el))
		}
		return c
	case *IndexRef:
		return &IndexRef{base: newBase(KIndexRef, t.span), Target: cloneExpr(t.Target), Index: cloneExpr(t.Index)}
	case *MemberAccess:
		return &MemberAccess{base: newBase(KMemberAccess, t.span), Target: cloneExpr(t.Target), Member: t.Member}
	case *CallFunc:
		c := &CallFunc{base: newBase(KCallFunc, t.span), Callee: cloneExpr(t.Callee)}
		for _, a := range t.Args {
			c.Args = append(c.Args, Argument{Name: a.Name, Value: cloneExpr(a.Value)})
		}
		return c
	case *Binary:
		return &Binary{base: newBase(KBinary, t.span), Op: t.Op, Left: cloneExpr(t.Left), Right: cloneExpr(t.Right)}
	case *Unary:
		return &Unary{base: newBase(KUnary, t.span), Op: t.Op, Operand: cloneExpr(t.Operand)}
	case *Assign:
		return &Assign{base: newBase(KAssign, t.span), Target: cloneExpr(t.Target), Value: cloneExpr(t.Value), CompoundOp: t.CompoundOp}
	case *LambdaFunc:
		c := &LambdaFunc{base: newBase(KLambdaFunc, t.span), RetType: cloneTypeName(t.RetType), Body: cloneBlock(t.Body)}
		for _, p := range t.Params {
			c.Params = append(c.Params, &FuncParam{Name: p.Name, Annotation: cloneTypeName(p.Annotation), IsVarArg: p.IsVarArg})
		}
		return c
	case *TypeName:
		return cloneTypeName(t)
	case *Signature:
		c := &Signature{base: newBase(KSignature, t.span), Return: cloneTypeName(t.Return), VarArgs: t.VarArgs}
		for _, p := range t.Params {
			c.Params = append(c.Params, cloneTypeName(p))
		}
		return c
	default:
		return e
	}
}

func cloneStmt(s Stmt) Stmt {
	if s == nil {
		return nil
	}
	switch t := s.(type) {
	case *ExprStmt:
		return &ExprStmt{base: newBase(KBlock, t.span), X: cloneExpr(t.X)}
	case *Block:
		return cloneBlock(t)
	case *VarDef:
		return &VarDef{base: newBase(KVarDef, t.span), Name: t.Name, Annotation: cloneTypeName(t.Annotation), Init: cloneExpr(t.Init)}
	case *If:
		var els Stmt
		if t.Else != nil {
			els = cloneStmt(t.Else)
		}
		return &If{base: newBase(KIf, t.span), Cond: cloneExpr(t.Cond), Then: cloneBlock(t.Then), Else: els}
	case *Match:
		c := &Match{base: newBase(KMatch, t.span), Scrutinee: cloneExpr(t.Scrutinee)}
		for _, a := range t.Arms {
			arm := &MatchArm{base: newBase(KMatchArm, a.span), Pattern: a.Pattern, BindName: a.BindName, Body: cloneBlock(a.Body)}
			if a.Expr != nil {
				arm.Expr = cloneExpr(a.Expr)
			}
			if a.Scope != nil {
				sr := cloneExpr(a.Scope).(*ScopeResol)
				arm.Scope = sr
			}
			for _, b := range a.ArgBindings {
				arm.ArgBindings = append(arm.ArgBindings, &Identifier{base: newBase(KIdentifier, b.span), Name: b.Name, IsFreshBind: b.IsFreshBind})
			}
			c.Arms = append(c.Arms, arm)
		}
		return c
	case *While:
		return &While{base: newBase(KWhile, t.span), Cond: cloneExpr(t.Cond), Body: cloneBlock(t.Body)}
	case *Break:
		return &Break{newBase(KBreak, t.span)}
	case *Continue:
		return &Continue{newBase(KContinue, t.span)}
	case *Return:
		return &Return{base: newBase(KReturn, t.span), Value: cloneExpr(t.Value)}
	case *Throw:
		return &Throw{base: newBase(KThrow, t.span), Value: cloneExpr(t.Value)}
	case *TryCatch:
		c := &TryCatch{base: newBase(KTryCatch, t.span), Body: cloneBlock(t.Body)}
		for _, ct := range t.Catchers {
			c.Catchers = append(c.Catchers, &Catcher{BindName: ct.BindName, Type: cloneTypeName(ct.Type), Body: cloneBlock(ct.Body)})
		}
		return c
	default:
		return s
	}
}

// SubstituteTypeNames walks a cloned template function replacing every
// TypeName whose root identifier matches an entry in subst with the deduced
// type's name: the return type, parameter annotations and `let` annotations,
// together with their nested type parameters (spec §4.5 step 5, template
// hygiene property in spec §8). TypeNames in lambda signatures, catch
// clauses and explicit @<...> arguments are left unchanged.
func SubstituteTypeNames(n Node, subst map[string]string) {
	Walk(n, &typeNameSubstitutor{subst: subst})
}

type typeNameSubstitutor struct{ subst map[string]string }

func (s *typeNameSubstitutor) Begin(n Node) bool {
	switch t := n.(type) {
	case *TypeName:
		s.substituteTypeName(t)
	case *Function:
		s.substituteTypeName(t.RetType)
		for _, p := range t.Params {
			s.substituteTypeName(p.Annotation)
		}
	case *VarDef:
		s.substituteTypeName(t.Annotation)
	}
	return true
}

func (s *typeNameSubstitutor) substituteTypeName(tn *TypeName) {
	if tn == nil {
		return
	}
	if repl, found := s.subst[tn.Name]; found {
		tn.Name = repl
	}
	for _, p := range tn.Params {
		s.substituteTypeName(p)
	}
}

func (s *typeNameSubstitutor) End(Node) {}
