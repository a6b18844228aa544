package parser

import (
	"strings"

	"github.com/Marco012/cito/internal/compiler/ast"
	"github.com/Marco012/cito/internal/compiler/errors"
	"github.com/Marco012/cito/internal/compiler/token"
)

func (p *Parser) parseStatement() ast.Stmt {
	switch p.Token {
	case token.LBRACE:
		return p.parseBlock()
	case token.ASSERT:
		return p.parseAssert()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.CONST:
		return p.parseConst()
	case token.DO:
		return p.parseDoWhile()
	case token.FOR:
		return p.parseFor()
	case token.FOREACH:
		return p.parseForeach()
	case token.IF:
		return p.parseIf()
	case token.LOCK:
		return p.parseLock()
	case token.NATIVE:
		return p.parseNativeStatement()
	case token.RETURN:
		return p.parseReturn()
	case token.SWITCH:
		return p.parseSwitch()
	case token.THROW:
		return p.parseThrow()
	case token.WHILE:
		return p.parseWhile()
	}
	line := p.Line
	expr := p.parseAssign(true)
	p.Expect(token.SEMICOLON)
	if v, ok := expr.(*ast.VarDecl); ok {
		return v
	}
	if !isStatementExpr(expr) {
		errors.Throw(p.File, expr.Pos(), errors.Contextual, "Expected assignment or method call")
	}
	return &ast.ExprStmt{Line: line, Expr: expr}
}

// isStatementExpr reports whether an expression may stand as a statement:
// assignments, calls and ++/-- only.
func isStatementExpr(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.CallExpr:
		return true
	case *ast.BinaryExpr:
		return token.IsAssign(e.Op)
	case *ast.PrefixExpr:
		return token.IsCrement(e.Op)
	case *ast.PostfixExpr:
		return token.IsCrement(e.Op)
	}
	return false
}

// parseAssign parses a type-or-expression and then decides: a variable
// declaration when allowVar and an identifier follows, an assignment when an
// assignment operator follows, otherwise the expression itself.
func (p *Parser) parseAssign(allowVar bool) ast.Expr {
	left := p.parseExpr()
	if allowVar && p.See(token.IDENT) {
		return p.parseVar(left)
	}
	if token.IsAssign(p.Token) {
		op := p.Token
		p.NextToken()
		return &ast.BinaryExpr{Line: left.Pos(), Left: left, Op: op, Right: p.parseAssign(false)}
	}
	return left
}

func (p *Parser) parseVar(typeExpr ast.Expr) *ast.VarDecl {
	v := &ast.VarDecl{Line: typeExpr.Pos(), TypeExpr: typeExpr, Name: p.parseIdent()}
	if p.Eat(token.ASSIGN) {
		v.Value = p.parseInitializer()
	}
	return v
}

// parseInitializer parses the right-hand side of `=`: an expression or an
// aggregate `{ ... }` (array items or `field = expr` pairs).
func (p *Parser) parseInitializer() ast.Expr {
	if !p.See(token.LBRACE) {
		return p.parseExpr()
	}
	agg := &ast.AggregateInitializer{Line: p.Line}
	p.NextToken()
	if !p.See(token.RBRACE) {
		agg.Items = append(agg.Items, p.parseAssign(false))
		for p.Eat(token.COMMA) {
			agg.Items = append(agg.Items, p.parseAssign(false))
		}
	}
	p.Expect(token.RBRACE)
	return agg
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Line: p.Line}
	p.Expect(token.LBRACE)
	for !p.See(token.RBRACE) {
		if p.See(token.EOF) {
			p.reportf(errors.Structural, "Expected '}'")
		}
		block.Stmts = append(block.Stmts, p.parseStatement())
	}
	p.NextToken()
	return block
}

func (p *Parser) parseAssert() *ast.Assert {
	stmt := &ast.Assert{Line: p.Line}
	p.NextToken()
	stmt.Cond = p.parseExpr()
	if p.Eat(token.COMMA) {
		stmt.Message = p.parseExpr()
	}
	p.Expect(token.SEMICOLON)
	return stmt
}

func (p *Parser) parseBreak() *ast.Break {
	line := p.Line
	if p.currentLoopOrSwitch == nil {
		p.reportf(errors.Contextual, "'break' outside loop or switch")
	}
	p.NextToken()
	p.Expect(token.SEMICOLON)
	if loop, ok := p.currentLoopOrSwitch.(ast.Loop); ok {
		loop.SetHasBreak()
	}
	return &ast.Break{Line: line, Target: p.currentLoopOrSwitch}
}

func (p *Parser) parseContinue() *ast.Continue {
	line := p.Line
	if p.currentLoop == nil {
		p.reportf(errors.Contextual, "'continue' outside loop")
	}
	p.NextToken()
	p.Expect(token.SEMICOLON)
	return &ast.Continue{Line: line, Loop: p.currentLoop}
}

// parseLoopBody installs the loop as the innermost loop and loop-or-switch
// for the span of its body.
func (p *Parser) parseLoopBody(loop ast.Loop) ast.Stmt {
	savedLoop, savedLoopOrSwitch := p.currentLoop, p.currentLoopOrSwitch
	p.currentLoop, p.currentLoopOrSwitch = loop, loop
	body := p.parseStatement()
	p.currentLoop, p.currentLoopOrSwitch = savedLoop, savedLoopOrSwitch
	return body
}

func (p *Parser) parseDoWhile() *ast.DoWhile {
	stmt := &ast.DoWhile{Line: p.Line}
	p.NextToken()
	stmt.Body = p.parseLoopBody(stmt)
	p.Expect(token.WHILE)
	p.Expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	p.Expect(token.RPAREN)
	p.Expect(token.SEMICOLON)
	return stmt
}

func (p *Parser) parseFor() *ast.For {
	stmt := &ast.For{Line: p.Line}
	p.NextToken()
	p.Expect(token.LPAREN)
	if !p.See(token.SEMICOLON) {
		stmt.Init = p.parseAssign(true)
	}
	p.Expect(token.SEMICOLON)
	if !p.See(token.SEMICOLON) {
		stmt.Cond = p.parseExpr()
	}
	p.Expect(token.SEMICOLON)
	if !p.See(token.RPAREN) {
		stmt.Advance = p.parseAssign(false)
	}
	p.Expect(token.RPAREN)
	stmt.Body = p.parseLoopBody(stmt)
	return stmt
}

// parseIterVar parses one `Type name` iterator variable of a foreach.
func (p *Parser) parseIterVar() *ast.VarDecl {
	typeExpr := p.parseType()
	return &ast.VarDecl{Line: typeExpr.Pos(), TypeExpr: typeExpr, Name: p.parseIdent()}
}

func (p *Parser) parseForeach() *ast.Foreach {
	stmt := &ast.Foreach{Line: p.Line}
	p.NextToken()
	p.Expect(token.LPAREN)
	if p.Eat(token.LPAREN) {
		// two-variable dictionary form
		stmt.First = p.parseIterVar()
		p.Expect(token.COMMA)
		stmt.Second = p.parseIterVar()
		p.Expect(token.RPAREN)
	} else {
		stmt.First = p.parseIterVar()
	}
	p.Expect(token.IN)
	stmt.Collection = p.parseExpr()
	p.Expect(token.RPAREN)
	stmt.Body = p.parseLoopBody(stmt)
	return stmt
}

func (p *Parser) parseIf() *ast.If {
	stmt := &ast.If{Line: p.Line}
	p.NextToken()
	p.Expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	p.Expect(token.RPAREN)
	stmt.Then = p.parseStatement()
	if p.Eat(token.ELSE) {
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseLock() *ast.Lock {
	stmt := &ast.Lock{Line: p.Line}
	p.NextToken()
	p.Expect(token.LPAREN)
	stmt.On = p.parseExpr()
	p.Expect(token.RPAREN)
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseReturn() *ast.Return {
	stmt := &ast.Return{Line: p.Line}
	p.NextToken()
	if !p.See(token.SEMICOLON) {
		stmt.Value = p.parseExpr()
	}
	p.Expect(token.SEMICOLON)
	return stmt
}

func (p *Parser) parseThrow() *ast.Throw {
	stmt := &ast.Throw{Line: p.Line}
	p.NextToken()
	stmt.Message = p.parseExpr()
	p.Expect(token.SEMICOLON)
	return stmt
}

func (p *Parser) parseWhile() *ast.While {
	stmt := &ast.While{Line: p.Line}
	p.NextToken()
	p.Expect(token.LPAREN)
	stmt.Cond = p.parseExpr()
	p.Expect(token.RPAREN)
	stmt.Body = p.parseLoopBody(stmt)
	return stmt
}

func (p *Parser) parseSwitch() *ast.Switch {
	stmt := &ast.Switch{Line: p.Line}
	p.NextToken()
	p.Expect(token.LPAREN)
	stmt.Value = p.parseExpr()
	p.Expect(token.RPAREN)
	p.Expect(token.LBRACE)

	saved := p.currentLoopOrSwitch
	p.currentLoopOrSwitch = stmt
	if !p.See(token.CASE) {
		p.reportf(errors.Structural, "Expected 'case'")
	}
	for p.See(token.CASE) {
		var kase ast.SwitchCase
		for p.Eat(token.CASE) {
			kase.Values = append(kase.Values, p.parseExpr())
			p.Expect(token.COLON)
		}
		if p.See(token.DEFAULT) {
			p.reportf(errors.Contextual, "Please remove case before default")
		}
		for !p.See(token.CASE) && !p.See(token.DEFAULT) && !p.See(token.RBRACE) {
			kase.Body = append(kase.Body, p.parseStatement())
		}
		if len(kase.Body) == 0 {
			p.reportf(errors.Structural, "Expected statement")
		}
		stmt.Cases = append(stmt.Cases, kase)
	}
	if p.Eat(token.DEFAULT) {
		p.Expect(token.COLON)
		for !p.See(token.RBRACE) {
			if p.See(token.CASE) {
				p.reportf(errors.Contextual, "'case' after 'default'")
			}
			stmt.Default = append(stmt.Default, p.parseStatement())
		}
		if len(stmt.Default) == 0 {
			p.reportf(errors.Structural, "Expected statement")
		}
	}
	p.currentLoopOrSwitch = saved
	p.Expect(token.RBRACE)
	return stmt
}

func (p *Parser) parseNativeStatement() *ast.Native {
	line := p.Line
	p.NextToken()
	return &ast.Native{Line: line, Content: p.captureNativeBlock()}
}

// captureNativeBlock records the verbatim text between the braces of a
// native block. The current token must be the opening brace; tokens are
// still lexed normally inside, so braces within string literals do not
// count towards nesting.
func (p *Parser) captureNativeBlock() string {
	p.Check(token.LBRACE)
	p.BeginCapture()
	defer p.EndCapture() // detach on the error path too
	nesting := 1
	for {
		p.NextToken()
		switch p.Token {
		case token.EOF:
			p.reportf(errors.Lexical, "Native block not terminated")
		case token.LBRACE:
			nesting++
		case token.RBRACE:
			nesting--
			if nesting == 0 {
				content := strings.TrimSuffix(p.EndCapture(), "}")
				p.NextToken()
				return content
			}
		}
	}
}
