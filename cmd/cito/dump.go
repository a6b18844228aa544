package main

import (
	"fmt"
	"strings"

	"github.com/Marco012/cito/internal/compiler/ast"
	"github.com/Marco012/cito/internal/compiler/token"
)

// dumpProgram renders a parsed program as an indented outline, used by the
// -d flag and the REPL.
func dumpProgram(program *ast.Program) string {
	var b strings.Builder
	for i, native := range program.TopLevelNatives {
		fmt.Fprintf(&b, "native #%d: %d bytes\n", i, len(native))
	}
	for _, t := range program.Types {
		switch decl := t.(type) {
		case *ast.Enum:
			dumpEnum(&b, decl)
		case *ast.Class:
			dumpClass(&b, decl)
		}
	}
	return b.String()
}

func dumpEnum(b *strings.Builder, enum *ast.Enum) {
	star := ""
	if enum.Flags {
		star = "*"
	}
	fmt.Fprintf(b, "enum%s %s (%s)\n", star, enum.Name, enum.Visibility)
	for _, c := range enum.Constants {
		if c.Value != nil {
			fmt.Fprintf(b, "\t%s = %s\n", c.Name, dumpExpr(c.Value))
		} else {
			fmt.Fprintf(b, "\t%s\n", c.Name)
		}
	}
}

func dumpClass(b *strings.Builder, klass *ast.Class) {
	fmt.Fprintf(b, "%s class %s", klass.Visibility, klass.Name)
	if klass.CallKind != ast.CallNormal {
		fmt.Fprintf(b, " [%s]", klass.CallKind)
	}
	if klass.BaseClassName != "" {
		fmt.Fprintf(b, " : %s", klass.BaseClassName)
	}
	b.WriteString("\n")
	for _, c := range klass.Consts {
		fmt.Fprintf(b, "\tconst %s %s = %s (%s)\n", dumpExpr(c.TypeExpr), c.Name, dumpExpr(c.Value), c.Visibility)
	}
	for _, f := range klass.Fields {
		fmt.Fprintf(b, "\tfield %s %s (%s)\n", dumpExpr(f.TypeExpr), f.Name, f.Visibility)
	}
	if klass.Constructor != nil {
		fmt.Fprintf(b, "\tconstructor (%s)\n", klass.Constructor.Visibility)
	}
	for _, m := range klass.Methods {
		dumpMethod(b, m)
	}
}

func dumpMethod(b *strings.Builder, m *ast.Method) {
	ret := "void"
	if m.ReturnType != nil {
		ret = dumpExpr(m.ReturnType)
	}
	var params []string
	for _, p := range m.Params {
		params = append(params, dumpExpr(p.TypeExpr)+" "+p.Name)
	}
	fmt.Fprintf(b, "\tmethod %s %s(%s)", ret, m.Name, strings.Join(params, ", "))
	if m.CallKind != ast.CallNormal {
		fmt.Fprintf(b, " [%s]", m.CallKind)
	}
	if m.IsMutator {
		b.WriteString(" !")
	}
	if m.Throws {
		b.WriteString(" throws")
	}
	fmt.Fprintf(b, " (%s)\n", m.Visibility)
}

func dumpExpr(expr ast.Expr) string {
	switch e := expr.(type) {
	case nil:
		return "<nil>"
	case *ast.IntLit:
		return fmt.Sprintf("%d", e.Value)
	case *ast.FloatLit:
		return fmt.Sprintf("%g", e.Value)
	case *ast.StringLit:
		return fmt.Sprintf("%q", e.Value)
	case *ast.BoolLit:
		return fmt.Sprintf("%t", e.Value)
	case *ast.NullLit:
		return "null"
	case *ast.InterpolatedString:
		return fmt.Sprintf("$\"...%d parts...\"", len(e.Parts))
	case *ast.SymbolRef:
		name := e.Name
		if len(e.TypeArgs) > 0 {
			var args []string
			for _, a := range e.TypeArgs {
				args = append(args, dumpExpr(a))
			}
			name += "<" + strings.Join(args, ", ") + ">"
		}
		if e.Left != nil {
			return dumpExpr(e.Left) + "." + name
		}
		return name
	case *ast.PrefixExpr:
		return fmt.Sprintf("(%s %s)", e.Op, dumpExpr(e.Inner))
	case *ast.PostfixExpr:
		return fmt.Sprintf("(%s %s)", dumpExpr(e.Inner), e.Op)
	case *ast.BinaryExpr:
		if e.Op == token.LBRACKET {
			if e.Right == nil {
				return dumpExpr(e.Left) + "[]"
			}
			return fmt.Sprintf("%s[%s]", dumpExpr(e.Left), dumpExpr(e.Right))
		}
		return fmt.Sprintf("(%s %s %s)", dumpExpr(e.Left), e.Op, dumpExpr(e.Right))
	case *ast.CallExpr:
		var args []string
		for _, a := range e.Args {
			args = append(args, dumpExpr(a))
		}
		return fmt.Sprintf("%s(%s)", dumpExpr(e.Method), strings.Join(args, ", "))
	case *ast.SelectExpr:
		return fmt.Sprintf("(%s ? %s : %s)", dumpExpr(e.Cond), dumpExpr(e.OnTrue), dumpExpr(e.OnFalse))
	case *ast.AggregateInitializer:
		var items []string
		for _, item := range e.Items {
			items = append(items, dumpExpr(item))
		}
		return "{ " + strings.Join(items, ", ") + " }"
	case *ast.VarDecl:
		return dumpExpr(e.TypeExpr) + " " + e.Name
	}
	return fmt.Sprintf("%T", expr)
}
