package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Marco012/cito/internal/compiler/ast"
	"github.com/Marco012/cito/internal/compiler/token"
)

// builtinCollections maps the CI collection classes to their JS construction.
var builtinCollections = map[string]string{
	"List":             "[]",
	"Stack":            "[]",
	"HashSet":          "new Set()",
	"Dictionary":       "{}",
	"SortedDictionary": "{}",
}

func (g *Generator) genExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.IntLit:
		g.write(strconv.FormatInt(e.Value, 10))
	case *ast.FloatLit:
		g.write(strconv.FormatFloat(e.Value, 'g', -1, 64))
	case *ast.StringLit:
		g.write(strconv.Quote(e.Value))
	case *ast.BoolLit:
		g.write(strconv.FormatBool(e.Value))
	case *ast.NullLit:
		g.write("null")
	case *ast.InterpolatedString:
		g.genInterpolatedString(e)
	case *ast.SymbolRef:
		g.genSymbolRef(e)
	case *ast.PrefixExpr:
		g.genPrefix(e)
	case *ast.PostfixExpr:
		g.genPostfix(e)
	case *ast.BinaryExpr:
		g.genBinary(e)
	case *ast.CallExpr:
		g.genCall(e)
	case *ast.SelectExpr:
		g.genExpr(e.Cond)
		g.write(" ? ")
		g.genExpr(e.OnTrue)
		g.write(" : ")
		g.genExpr(e.OnFalse)
	case *ast.AggregateInitializer:
		g.genAggregate(e)
	case *ast.VarDecl:
		// `is T id` bindings reach here; JS has no expression binding
		g.write(e.Name)
	}
}

func (g *Generator) genSymbolRef(ref *ast.SymbolRef) {
	if ref.Left != nil {
		g.genExpr(ref.Left)
		g.write(".")
		g.write(ref.Name)
		return
	}
	g.write(g.memberPrefix(ref.Name))
	g.write(ref.Name)
}

func (g *Generator) genPrefix(e *ast.PrefixExpr) {
	switch e.Op {
	case token.NEW:
		g.genNew(e.Inner)
	case token.RESOURCE:
		// resources degrade to their path expression
		g.genExpr(e.Inner)
	default:
		g.write(string(e.Op))
		g.genExpr(e.Inner)
	}
}

func (g *Generator) genPostfix(e *ast.PostfixExpr) {
	switch e.Op {
	case token.INCREMENT, token.DECREMENT:
		g.genExpr(e.Inner)
		g.write(string(e.Op))
	default:
		// mutator `!` and ownership `#` have no JS meaning
		g.genExpr(e.Inner)
	}
}

func (g *Generator) genNew(inner ast.Expr) {
	switch e := inner.(type) {
	case *ast.CallExpr:
		if js, ok := builtinCollections[e.Method.Name]; ok && e.Method.Left == nil {
			g.write(js)
			return
		}
		g.write("new ")
		g.genCall(e)
	case *ast.SymbolRef:
		if js, ok := builtinCollections[e.Name]; ok && e.Left == nil {
			g.write(js)
			return
		}
		g.write("new ")
		g.write(e.Name)
		g.write("()")
	case *ast.BinaryExpr:
		if e.Op == token.LBRACKET && e.Right != nil {
			if elem, ok := e.Left.(*ast.SymbolRef); ok && elem.Name == "byte" {
				g.write("new Uint8Array(")
			} else {
				g.write("new Array(")
			}
			g.genExpr(e.Right)
			g.write(")")
			return
		}
		g.genExpr(e)
	default:
		g.write("new ")
		g.genExpr(inner)
	}
}

func (g *Generator) genBinary(e *ast.BinaryExpr) {
	switch e.Op {
	case token.LBRACKET:
		g.genExpr(e.Left)
		if e.Right != nil {
			g.write("[")
			g.genExpr(e.Right)
			g.write("]")
		}
	case token.IS:
		g.genExpr(e.Left)
		g.write(" instanceof ")
		if v, ok := e.Right.(*ast.VarDecl); ok {
			g.genExpr(v.TypeExpr)
		} else {
			g.genExpr(e.Right)
		}
	case token.RANGE:
		// range types carry no runtime representation
		g.genExpr(e.Left)
	default:
		g.genExpr(e.Left)
		g.write(" ")
		g.write(string(e.Op))
		g.write(" ")
		g.genExpr(e.Right)
	}
}

func (g *Generator) genCall(e *ast.CallExpr) {
	g.genSymbolRef(e.Method)
	g.write("(")
	for i, arg := range e.Args {
		if i > 0 {
			g.write(", ")
		}
		g.genExpr(arg)
	}
	g.write(")")
}

func (g *Generator) genAggregate(e *ast.AggregateInitializer) {
	fields := len(e.Items) > 0
	for _, item := range e.Items {
		assign, ok := item.(*ast.BinaryExpr)
		if !ok || assign.Op != token.ASSIGN {
			fields = false
			break
		}
		if _, ok := assign.Left.(*ast.SymbolRef); !ok {
			fields = false
			break
		}
	}
	if fields {
		g.write("{ ")
		for i, item := range e.Items {
			if i > 0 {
				g.write(", ")
			}
			assign := item.(*ast.BinaryExpr)
			g.write(assign.Left.(*ast.SymbolRef).Name)
			g.write(": ")
			g.genExpr(assign.Right)
		}
		g.write(" }")
		return
	}
	g.write("[ ")
	for i, item := range e.Items {
		if i > 0 {
			g.write(", ")
		}
		g.genExpr(item)
	}
	g.write(" ]")
}

func (g *Generator) genInterpolatedString(e *ast.InterpolatedString) {
	g.write("`")
	for _, part := range e.Parts {
		g.write(escapeTemplate(part.Prefix))
		g.write("${")
		g.genInterpolatedArg(part)
		g.write("}")
	}
	g.write(escapeTemplate(e.Suffix))
	g.write("`")
}

// exprString renders an expression into a fresh buffer, keeping the member
// lookup context of this generator.
func (g *Generator) exprString(expr ast.Expr) string {
	sub := &Generator{program: g.program, klass: g.klass, method: g.method, locals: g.locals}
	sub.genExpr(expr)
	return sub.b.String()
}

// genInterpolatedArg applies the hole's format and width to the argument.
func (g *Generator) genInterpolatedArg(part ast.InterpPart) {
	js := "(" + g.exprString(part.Arg) + ")"
	switch part.Format {
	case 'x':
		js += ".toString(16)"
	case 'X':
		js += ".toString(16).toUpperCase()"
	case 'e', 'E':
		if part.Precision >= 0 {
			js += fmt.Sprintf(".toExponential(%d)", part.Precision)
		} else {
			js += ".toExponential()"
		}
	case 'f', 'F':
		if part.Precision >= 0 {
			js += fmt.Sprintf(".toFixed(%d)", part.Precision)
		}
	case 'd', 'D':
		if part.Precision >= 0 {
			js = fmt.Sprintf("String(%s).padStart(%d, \"0\")", js, part.Precision)
		}
	}
	if part.Width != nil {
		js = fmt.Sprintf("String(%s).padStart(%s)", js, g.exprString(part.Width))
	}
	g.write(js)
}

func escapeTemplate(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}
