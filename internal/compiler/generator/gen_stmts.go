package generator

import (
	"strings"

	"github.com/Marco012/cito/internal/compiler/ast"
)

func (g *Generator) genStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		g.writeLine("{")
		g.indent++
		for _, inner := range s.Stmts {
			g.genStmt(inner)
		}
		g.indent--
		g.writeLine("}")
	case *ast.Assert:
		g.writeIndent()
		g.write("console.assert(")
		g.genExpr(s.Cond)
		if s.Message != nil {
			g.write(", ")
			g.genExpr(s.Message)
		}
		g.write(");\n")
	case *ast.Break:
		g.writeLine("break;")
	case *ast.Continue:
		g.writeLine("continue;")
	case *ast.Const:
		g.writeIndent()
		g.write("const ")
		g.write(s.Name)
		g.write(" = ")
		g.genExpr(s.Value)
		g.write(";\n")
	case *ast.VarDecl:
		g.locals[s.Name] = true
		g.writeIndent()
		g.write("let ")
		g.write(s.Name)
		if s.Value != nil {
			g.write(" = ")
			g.genExpr(s.Value)
		}
		g.write(";\n")
	case *ast.DoWhile:
		g.writeLine("do")
		g.genStmt(s.Body)
		g.writeIndent()
		g.write("while (")
		g.genExpr(s.Cond)
		g.write(");\n")
	case *ast.For:
		g.genFor(s)
	case *ast.Foreach:
		g.genForeach(s)
	case *ast.If:
		g.genIf(s)
	case *ast.Lock:
		// JS is single-threaded; the lock degrades to its body
		g.genStmt(s.Body)
	case *ast.Native:
		for _, line := range strings.Split(strings.TrimSpace(s.Content), "\n") {
			g.writeLine(strings.TrimSpace(line))
		}
	case *ast.Return:
		g.writeIndent()
		g.write("return")
		if s.Value != nil {
			g.write(" ")
			g.genExpr(s.Value)
		}
		g.write(";\n")
	case *ast.Switch:
		g.genSwitch(s)
	case *ast.Throw:
		g.writeIndent()
		g.write("throw new Error(")
		g.genExpr(s.Message)
		g.write(");\n")
	case *ast.While:
		g.writeIndent()
		g.write("while (")
		g.genExpr(s.Cond)
		g.write(")\n")
		g.genStmt(s.Body)
	case *ast.ExprStmt:
		g.writeIndent()
		g.genExpr(s.Expr)
		g.write(";\n")
	}
}

func (g *Generator) genFor(s *ast.For) {
	g.writeIndent()
	g.write("for (")
	if decl, ok := s.Init.(*ast.VarDecl); ok {
		g.locals[decl.Name] = true
		g.write("let ")
		g.write(decl.Name)
		if decl.Value != nil {
			g.write(" = ")
			g.genExpr(decl.Value)
		}
	} else if s.Init != nil {
		g.genExpr(s.Init)
	}
	g.write("; ")
	if s.Cond != nil {
		g.genExpr(s.Cond)
	}
	g.write("; ")
	if s.Advance != nil {
		g.genExpr(s.Advance)
	}
	g.write(")\n")
	g.genStmt(s.Body)
}

func (g *Generator) genForeach(s *ast.Foreach) {
	g.locals[s.First.Name] = true
	g.writeIndent()
	if s.Second != nil {
		g.locals[s.Second.Name] = true
		g.write("for (const [")
		g.write(s.First.Name)
		g.write(", ")
		g.write(s.Second.Name)
		g.write("] of Object.entries(")
		g.genExpr(s.Collection)
		g.write("))\n")
	} else {
		g.write("for (const ")
		g.write(s.First.Name)
		g.write(" of ")
		g.genExpr(s.Collection)
		g.write(")\n")
	}
	g.genStmt(s.Body)
}

func (g *Generator) genIf(s *ast.If) {
	g.writeIndent()
	g.write("if (")
	g.genExpr(s.Cond)
	g.write(")\n")
	g.genStmt(s.Then)
	if s.Else != nil {
		g.writeLine("else")
		g.genStmt(s.Else)
	}
}

func (g *Generator) genSwitch(s *ast.Switch) {
	g.writeIndent()
	g.write("switch (")
	g.genExpr(s.Value)
	g.write(") {\n")
	for _, kase := range s.Cases {
		for _, value := range kase.Values {
			g.writeIndent()
			g.write("case ")
			g.genExpr(value)
			g.write(":\n")
		}
		g.indent++
		for _, inner := range kase.Body {
			g.genStmt(inner)
		}
		g.writeLine("break;")
		g.indent--
	}
	if s.Default != nil {
		g.writeLine("default:")
		g.indent++
		for _, inner := range s.Default {
			g.genStmt(inner)
		}
		g.writeLine("break;")
		g.indent--
	}
	g.writeLine("}")
}
