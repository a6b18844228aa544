package parser

import (
	"github.com/Marco012/cito/internal/compiler/ast"
	"github.com/Marco012/cito/internal/compiler/doc"
	"github.com/Marco012/cito/internal/compiler/errors"
	"github.com/Marco012/cito/internal/compiler/token"
)

// parseProgram reads the top-level items of one source file: classes, enums
// and bare native blocks.
func (p *Parser) parseProgram() {
	for !p.See(token.EOF) {
		documentation := p.parseDoc()
		line := p.Line
		if p.See(token.NATIVE) {
			p.NextToken()
			p.program.TopLevelNatives = append(p.program.TopLevelNatives, p.captureNativeBlock())
			continue
		}
		visibility := ast.VisInternal
		if p.Eat(token.PUBLIC) {
			visibility = ast.VisPublic
		}
		switch p.Token {
		case token.ENUM:
			p.parseEnum(line, visibility, documentation)
		case token.CLASS, token.STATIC, token.ABSTRACT, token.SEALED, token.VIRTUAL, token.OVERRIDE:
			callKind := p.parseCallKind()
			switch callKind {
			case ast.CallNormal, ast.CallStatic, ast.CallAbstract, ast.CallSealed:
			default:
				p.reportf(errors.Contextual, "Class cannot be %s", callKind)
			}
			p.parseClass(line, callKind, visibility, documentation)
		default:
			p.reportf(errors.Structural, "Expected class or enum")
		}
	}
}

func (p *Parser) parseClass(line int, callKind ast.CallKind, visibility ast.Visibility, documentation *doc.Comment) {
	p.Expect(token.CLASS)
	klass := &ast.Class{
		Line:          line,
		File:          p.File,
		Name:          p.parseIdent(),
		CallKind:      callKind,
		Visibility:    visibility,
		Documentation: documentation,
		Parent:        p.program,
	}
	if p.Eat(token.COLON) {
		klass.BaseClassName = p.parseIdent()
	}
	p.Expect(token.LBRACE)
	for !p.See(token.RBRACE) {
		if p.See(token.EOF) {
			p.reportf(errors.Structural, "Expected '}'")
		}
		p.parseMember(klass)
	}
	p.NextToken()
	p.program.Add(klass)
}

// checkMemberKind enforces the class/member call-kind legality matrix.
func (p *Parser) checkMemberKind(klass *ast.Class, callKind ast.CallKind) {
	switch klass.CallKind {
	case ast.CallStatic:
		if callKind != ast.CallStatic {
			p.reportf(errors.Contextual, "Only static members allowed in a static class")
		}
	case ast.CallNormal:
		if callKind == ast.CallAbstract {
			p.reportf(errors.Contextual, "Abstract member in a non-abstract class")
		}
	case ast.CallSealed:
		if callKind == ast.CallAbstract || callKind == ast.CallVirtual {
			p.reportf(errors.Contextual, "%s member in a sealed class", callKind)
		}
	}
}

func (p *Parser) parseMember(klass *ast.Class) {
	documentation := p.parseDoc()
	line := p.Line
	visibility := ast.VisPrivate
	switch {
	case p.Eat(token.INTERNAL):
		visibility = ast.VisInternal
	case p.Eat(token.PROTECTED):
		visibility = ast.VisProtected
	case p.Eat(token.PUBLIC):
		visibility = ast.VisPublic
	}

	if p.See(token.CONST) {
		konst := p.parseConst()
		konst.Line = line
		konst.Visibility = visibility
		konst.Documentation = documentation
		klass.Consts = append(klass.Consts, konst)
		return
	}

	callKind := p.parseCallKind()
	p.checkMemberKind(klass, callKind)
	if visibility == ast.VisPrivate && callKind != ast.CallStatic && callKind != ast.CallNormal {
		// private is only legal with static or normal dispatch; members that
		// take part in inheritance become internal
		visibility = ast.VisInternal
	}

	var returnType ast.Expr // nil is the void marker
	if !p.Eat(token.VOID) {
		returnType = p.parseType()
	}

	if call, ok := returnType.(*ast.CallExpr); ok && p.See(token.LBRACE) && call.Method.Left == nil {
		if call.Method.Name != klass.Name {
			p.reportf(errors.Contextual, "Constructor name does not match class name")
		}
		if len(call.Args) > 0 {
			p.reportf(errors.Contextual, "Constructor cannot have parameters")
		}
		if klass.Constructor != nil {
			p.reportf(errors.Contextual, "Duplicate constructor")
		}
		if callKind != ast.CallNormal {
			p.reportf(errors.Contextual, "Constructor cannot be %s", callKind)
		}
		if visibility == ast.VisPrivate {
			// TODO: keep private constructors private once the resolver
			// understands construction access
			visibility = ast.VisInternal
		}
		klass.Constructor = &ast.Method{
			Line:          line,
			CallKind:      ast.CallNormal,
			Name:          klass.Name,
			Body:          p.parseBlock(),
			Visibility:    visibility,
			Documentation: documentation,
			Class:         klass,
		}
		return
	}

	name := p.parseIdent()
	if p.See(token.LPAREN) || p.See(token.BANG) {
		p.parseMethod(klass, line, callKind, returnType, name, visibility, documentation)
		return
	}

	// field
	if callKind != ast.CallNormal {
		p.reportf(errors.Contextual, "Field cannot be %s", callKind)
	}
	if returnType == nil {
		p.reportf(errors.Contextual, "Field cannot be void")
	}
	if visibility == ast.VisPublic {
		p.reportf(errors.Contextual, "Field cannot be public")
	}
	field := &ast.Field{
		Line:          line,
		TypeExpr:      returnType,
		Name:          name,
		Visibility:    visibility,
		Documentation: documentation,
	}
	if p.Eat(token.ASSIGN) {
		field.Value = p.parseInitializer()
	}
	p.Expect(token.SEMICOLON)
	klass.Fields = append(klass.Fields, field)
}

func (p *Parser) parseMethod(klass *ast.Class, line int, callKind ast.CallKind,
	returnType ast.Expr, name string, visibility ast.Visibility, documentation *doc.Comment) {
	method := &ast.Method{
		Line:          line,
		CallKind:      callKind,
		ReturnType:    returnType,
		Name:          name,
		Visibility:    visibility,
		Documentation: documentation,
		Class:         klass,
	}
	method.IsMutator = p.Eat(token.BANG)
	p.Expect(token.LPAREN)
	if !p.See(token.RPAREN) {
		for {
			method.Params = append(method.Params, p.parseParam())
			if !p.Eat(token.COMMA) {
				break
			}
		}
	}
	p.Expect(token.RPAREN)
	method.Throws = p.Eat(token.THROWS)
	switch {
	case callKind == ast.CallAbstract:
		p.Expect(token.SEMICOLON)
	case p.See(token.FAT_ARROW):
		ret := &ast.Return{Line: p.Line}
		p.NextToken()
		ret.Value = p.parseExpr()
		p.Expect(token.SEMICOLON)
		method.Body = ret
	default:
		method.Body = p.parseBlock()
	}
	klass.Methods = append(klass.Methods, method)
}

// parseParam parses one `[doc] Type name [= default]` method parameter.
// Default values are accepted at this layer and left to the resolver.
func (p *Parser) parseParam() *ast.VarDecl {
	documentation := p.parseDoc()
	typeExpr := p.parseType()
	param := &ast.VarDecl{
		Line:          typeExpr.Pos(),
		TypeExpr:      typeExpr,
		Name:          p.parseIdent(),
		Documentation: documentation,
	}
	if p.Eat(token.ASSIGN) {
		param.Value = p.parseExpr()
	}
	return param
}

// parseConst parses `const Type NAME = initializer ;`. Member position
// fixes up line, visibility and documentation afterwards.
func (p *Parser) parseConst() *ast.Const {
	konst := &ast.Const{Line: p.Line, Visibility: ast.VisPrivate}
	p.Expect(token.CONST)
	konst.TypeExpr = p.parseType()
	konst.Name = p.parseIdent()
	p.Expect(token.ASSIGN)
	konst.Value = p.parseInitializer()
	p.Expect(token.SEMICOLON)
	return konst
}

func (p *Parser) parseEnum(line int, visibility ast.Visibility, documentation *doc.Comment) {
	p.Expect(token.ENUM)
	enum := &ast.Enum{
		Line:          line,
		File:          p.File,
		Flags:         p.Eat(token.ASTERISK),
		Visibility:    visibility,
		Documentation: documentation,
		Parent:        p.program,
	}
	enum.Name = p.parseIdent()
	p.Expect(token.LBRACE)
	for {
		constant := &ast.EnumConst{Documentation: p.parseDoc(), Line: p.Line}
		constant.Name = p.parseIdent()
		if p.Eat(token.ASSIGN) {
			constant.Value = p.parseExpr()
		} else if enum.Flags {
			p.reportf(errors.Contextual, "enum* constant %s must have an explicit value", constant.Name)
		}
		enum.Constants = append(enum.Constants, constant)
		if !p.Eat(token.COMMA) {
			break
		}
	}
	p.Expect(token.RBRACE)
	p.program.Add(enum)
}
