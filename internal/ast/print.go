package ast

import (
	"fmt"
	"strings"
)

// printNode renders a node's original (constructed-as) shape, independent
// of any kind refinement the analyzer later applied, so the printer never
// needs to know about Variable/FuncName/etc. (spec design note on
// preserving the pretty-printing round-trip).
func printNode(n Node) string {
	var sb strings.Builder
	printInto(&sb, n, 0)
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("    ", depth))
}

func printInto(sb *strings.Builder, n Node, depth int) {
	switch t := n.(type) {
	case *Program:
		for _, s := range t.Statements {
			printInto(sb, s, depth)
			sb.WriteString("\n")
		}
	case *ExprStmt:
		indent(sb, depth)
		sb.WriteString(t.X.String())
		sb.WriteString(";")
	case *Value:
		sb.WriteString(t.Lexeme)
	case *Identifier:
		sb.WriteString(t.Name)
		if len(t.TypeArgs) > 0 {
			sb.WriteString("@<")
			for i, ta := range t.TypeArgs {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(ta.String())
			}
			sb.WriteString(">")
		}
	case *ScopeResol:
		sb.WriteString(strings.Join(t.Parts, "::"))
	case *Array:
		sb.WriteString("[")
		for i, e := range t.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.String())
		}
		sb.WriteString("]")
	case *IndexRef:
		sb.WriteString(t.Target.String())
		sb.WriteString("[")
		sb.WriteString(t.Index.String())
		sb.WriteString("]")
	case *MemberAccess:
		sb.WriteString(t.Target.String())
		sb.WriteString(".")
		sb.WriteString(t.Member)
	case *CallFunc:
		sb.WriteString(t.Callee.String())
		sb.WriteString("(")
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			if a.Name != "" {
				sb.WriteString(a.Name)
				sb.WriteString(": ")
			}
			sb.WriteString(a.Value.String())
		}
		sb.WriteString(")")
	case *Binary:
		sb.WriteString(t.Left.String())
		sb.WriteString(" ")
		sb.WriteString(t.Op.String())
		sb.WriteString(" ")
		sb.WriteString(t.Right.String())
	case *Unary:
		switch t.Op {
		case OpNeg:
			sb.WriteString("-")
		case OpNot:
			sb.WriteString("!")
		case OpBitNot:
			sb.WriteString("~")
		}
		sb.WriteString(t.Operand.String())
	case *Assign:
		sb.WriteString(t.Target.String())
		sb.WriteString(" = ")
		sb.WriteString(t.Value.String())
	case *LambdaFunc:
		sb.WriteString("lambda(")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
		}
		sb.WriteString(") ")
		sb.WriteString(t.Body.String())
	case *TypeName:
		sb.WriteString(t.Name)
		if len(t.Params) > 0 {
			sb.WriteString("<")
			for i, p := range t.Params {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(p.String())
			}
			sb.WriteString(">")
		}
	case *Signature:
		sb.WriteString("(")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		sb.WriteString(") -> ")
		if t.Return != nil {
			sb.WriteString(t.Return.String())
		}
	case *Block:
		sb.WriteString("{\n")
		for _, s := range t.Statements {
			printInto(sb, s, depth+1)
			sb.WriteString("\n")
		}
		indent(sb, depth)
		sb.WriteString("}")
	case *VarDef:
		indent(sb, depth)
		sb.WriteString("let ")
		sb.WriteString(t.Name)
		if t.Annotation != nil {
			sb.WriteString(": ")
			sb.WriteString(t.Annotation.String())
		}
		if t.Init != nil {
			sb.WriteString(" = ")
			sb.WriteString(t.Init.String())
		}
		sb.WriteString(";")
	case *If:
		indent(sb, depth)
		sb.WriteString("if ")
		sb.WriteString(t.Cond.String())
		sb.WriteString(" ")
		sb.WriteString(t.Then.String())
		if t.Else != nil {
			sb.WriteString(" else ")
			sb.WriteString(strings.TrimLeft(t.Else.String(), " \t"))
		}
	case *Match:
		indent(sb, depth)
		sb.WriteString("match ")
		sb.WriteString(t.Scrutinee.String())
		sb.WriteString(" {\n")
		for _, arm := range t.Arms {
			indent(sb, depth+1)
			sb.WriteString(arm.String())
			sb.WriteString(",\n")
		}
		indent(sb, depth)
		sb.WriteString("}")
	case *MatchArm:
		switch t.Pattern {
		case PatWildcard:
			sb.WriteString("_")
		case PatExpr:
			sb.WriteString(t.Expr.String())
		case PatBindVar:
			sb.WriteString(t.BindName)
		case PatEnumerator, PatEnumeratorArgs:
			sb.WriteString(t.Scope.String())
			if t.Pattern == PatEnumeratorArgs {
				sb.WriteString("(")
				for i, b := range t.ArgBindings {
					if i > 0 {
						sb.WriteString(", ")
					}
					sb.WriteString(b.Name)
				}
				sb.WriteString(")")
			}
		}
		sb.WriteString(" => ")
		sb.WriteString(t.Body.String())
	case *While:
		indent(sb, depth)
		sb.WriteString("while ")
		sb.WriteString(t.Cond.String())
		sb.WriteString(" ")
		sb.WriteString(t.Body.String())
	case *Break:
		indent(sb, depth)
		sb.WriteString("break;")
	case *Continue:
		indent(sb, depth)
		sb.WriteString("continue;")
	case *Return:
		indent(sb, depth)
		sb.WriteString("return")
		if t.Value != nil {
			sb.WriteString(" ")
			sb.WriteString(t.Value.String())
		}
		sb.WriteString(";")
	case *Throw:
		indent(sb, depth)
		sb.WriteString("throw ")
		sb.WriteString(t.Value.String())
		sb.WriteString(";")
	case *TryCatch:
		indent(sb, depth)
		sb.WriteString("try ")
		sb.WriteString(t.Body.String())
		for _, c := range t.Catchers {
			sb.WriteString(" catch ")
			sb.WriteString(c.BindName)
			sb.WriteString(": ")
			sb.WriteString(c.Type.String())
			sb.WriteString(" ")
			sb.WriteString(c.Body.String())
		}
	case *Function:
		indent(sb, depth)
		sb.WriteString("fn ")
		sb.WriteString(t.Name)
		if len(t.TemplateParams) > 0 {
			sb.WriteString("<")
			for i, tp := range t.TemplateParams {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(tp.Name)
			}
			sb.WriteString(">")
		}
		sb.WriteString("(")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
			if p.Annotation != nil {
				sb.WriteString(": ")
				sb.WriteString(p.Annotation.String())
			}
		}
		sb.WriteString(")")
		if t.RetType != nil {
			sb.WriteString(" -> ")
			sb.WriteString(t.RetType.String())
		}
		sb.WriteString(" ")
		sb.WriteString(t.Body.String())
	case *EnumCtor:
		sb.WriteString(t.Name)
		if len(t.Fields) > 0 {
			sb.WriteString("(")
			for i, f := range t.Fields {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(f.Annotation.String())
			}
			sb.WriteString(")")
		}
	case *Enum:
		indent(sb, depth)
		fmt.Fprintf(sb, "enum %s { ", t.Name)
		for i, c := range t.Ctors {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.String())
		}
		sb.WriteString(" }")
	case *ClassField:
		indent(sb, depth)
		sb.WriteString("let ")
		sb.WriteString(t.Name)
		if t.Annotation != nil {
			sb.WriteString(": ")
			sb.WriteString(t.Annotation.String())
		}
		sb.WriteString(";")
	case *Class:
		indent(sb, depth)
		fmt.Fprintf(sb, "class %s", t.Name)
		if t.InheritBaseName != "" {
			sb.WriteString(" : " + t.InheritBaseName)
		}
		sb.WriteString(" { ... }")
	case *Namespace:
		indent(sb, depth)
		fmt.Fprintf(sb, "namespace %s { ... }", t.Name)
	case *Import:
		indent(sb, depth)
		sb.WriteString(t.String())
	default:
		sb.WriteString(fmt.Sprintf("<%T>", n))
	}
}
