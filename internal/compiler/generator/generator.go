// Package generator lowers a parsed CI program into JavaScript source.
package generator

import (
	"fmt"
	"strings"

	"github.com/Marco012/cito/internal/compiler/ast"
)

type Generator struct {
	b      strings.Builder
	indent int

	program *ast.Program
	klass   *ast.Class      // class currently being generated
	method  *ast.Method     // method currently being generated
	locals  map[string]bool // parameters and local variables of the method
}

func New() *Generator {
	return &Generator{}
}

// Generate produces complete JavaScript source for the program.
func (g *Generator) Generate(program *ast.Program) (string, error) {
	if program == nil {
		return "", fmt.Errorf("generator: nil program")
	}
	g.b.Reset()
	g.program = program

	for _, native := range program.TopLevelNatives {
		g.writeLine(strings.TrimSpace(native))
	}
	if len(program.TopLevelNatives) > 0 {
		g.writeLine("")
	}
	for _, t := range program.Types {
		switch decl := t.(type) {
		case *ast.Enum:
			g.genEnum(decl)
		case *ast.Class:
			g.genClass(decl)
		}
		g.writeLine("")
	}
	return g.b.String(), nil
}

func (g *Generator) write(s string) {
	g.b.WriteString(s)
}

func (g *Generator) writeIndent() {
	for i := 0; i < g.indent; i++ {
		g.b.WriteString("\t")
	}
}

func (g *Generator) writeLine(s string) {
	g.writeIndent()
	g.b.WriteString(s)
	g.b.WriteString("\n")
}

func (g *Generator) genEnum(enum *ast.Enum) {
	g.writeLine(fmt.Sprintf("const %s = Object.freeze({", enum.Name))
	g.indent++
	for i, constant := range enum.Constants {
		g.writeIndent()
		g.write(constant.Name)
		g.write(": ")
		if constant.Value != nil {
			g.genExpr(constant.Value)
		} else {
			g.write(fmt.Sprintf("%d", i))
		}
		g.write(",\n")
	}
	g.indent--
	g.writeLine("});")
}

func (g *Generator) genClass(klass *ast.Class) {
	g.klass = klass
	defer func() { g.klass = nil }()

	g.writeIndent()
	g.write("class ")
	g.write(klass.Name)
	if klass.Base != nil {
		g.write(" extends ")
		g.write(klass.Base.Name)
	} else if klass.BaseClassName != "" {
		g.write(" extends ")
		g.write(klass.BaseClassName)
	}
	g.write(" {\n")
	g.indent++

	for _, konst := range klass.Consts {
		g.writeIndent()
		g.write("static ")
		g.write(konst.Name)
		g.write(" = ")
		g.genExpr(konst.Value)
		g.write(";\n")
	}
	g.genConstructor(klass)
	for _, method := range klass.Methods {
		if method.CallKind == ast.CallAbstract {
			continue
		}
		g.genMethod(method)
	}

	g.indent--
	g.writeLine("}")
}

// genConstructor merges field initializers with the class constructor body.
func (g *Generator) genConstructor(klass *ast.Class) {
	if len(klass.Fields) == 0 && klass.Constructor == nil {
		return
	}
	g.locals = make(map[string]bool)
	g.writeLine("constructor() {")
	g.indent++
	if klass.Base != nil || klass.BaseClassName != "" {
		g.writeLine("super();")
	}
	for _, field := range klass.Fields {
		g.writeIndent()
		g.write("this.")
		g.write(field.Name)
		g.write(" = ")
		if field.Value != nil {
			g.genExpr(field.Value)
		} else {
			g.write("null")
		}
		g.write(";\n")
	}
	if klass.Constructor != nil {
		if body, ok := klass.Constructor.Body.(*ast.Block); ok {
			for _, stmt := range body.Stmts {
				g.genStmt(stmt)
			}
		}
	}
	g.indent--
	g.writeLine("}")
}

func (g *Generator) genMethod(method *ast.Method) {
	g.method = method
	g.locals = make(map[string]bool)
	defer func() { g.method = nil }()

	g.writeIndent()
	if method.CallKind == ast.CallStatic {
		g.write("static ")
	}
	g.write(method.Name)
	g.write("(")
	for i, param := range method.Params {
		if i > 0 {
			g.write(", ")
		}
		g.write(param.Name)
		g.locals[param.Name] = true
		if param.Value != nil {
			g.write(" = ")
			g.genExpr(param.Value)
		}
	}
	g.write(") {\n")
	g.indent++
	switch body := method.Body.(type) {
	case *ast.Block:
		for _, stmt := range body.Stmts {
			g.genStmt(stmt)
		}
	case *ast.Return:
		g.genStmt(body)
	}
	g.indent--
	g.writeLine("}")
}

// memberPrefix returns the qualifier an unqualified name needs inside the
// current class, or "" when the name is a local or not a member.
func (g *Generator) memberPrefix(name string) string {
	if g.klass == nil || g.locals[name] {
		return ""
	}
	for klass := g.klass; klass != nil; klass = klass.Base {
		for _, konst := range klass.Consts {
			if konst.Name == name {
				return klass.Name + "."
			}
		}
		for _, field := range klass.Fields {
			if field.Name == name {
				return "this."
			}
		}
		for _, method := range klass.Methods {
			if method.Name == name {
				if method.CallKind == ast.CallStatic {
					return klass.Name + "."
				}
				return "this."
			}
		}
	}
	return ""
}
