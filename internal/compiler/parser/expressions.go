package parser

import (
	"strconv"
	"strings"

	"github.com/Marco012/cito/internal/compiler/ast"
	"github.com/Marco012/cito/internal/compiler/errors"
	"github.com/Marco012/cito/internal/compiler/token"
)

// parseExpr is the entry level: the right-associative select operator.
func (p *Parser) parseExpr() ast.Expr {
	cond := p.parseCondOr()
	if !p.See(token.QUESTION) {
		return cond
	}
	p.checkNoXcrement(cond, "?")
	saved := p.xcrementParent
	p.xcrementParent = "?"
	p.NextToken()
	onTrue := p.parseExpr()
	p.Expect(token.COLON)
	onFalse := p.parseExpr()
	p.xcrementParent = saved
	return &ast.SelectExpr{Line: cond.Pos(), Cond: cond, OnTrue: onTrue, OnFalse: onFalse}
}

// parseCondOp handles `&&` and `||`, the two short-circuit levels that
// forbid ++/-- on their operands.
func (p *Parser) parseCondOp(op token.Type, operand func() ast.Expr) ast.Expr {
	left := operand()
	for p.See(op) {
		p.checkNoXcrement(left, string(op))
		saved := p.xcrementParent
		p.xcrementParent = string(op)
		p.NextToken()
		right := operand()
		p.xcrementParent = saved
		left = &ast.BinaryExpr{Line: left.Pos(), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseCondOr() ast.Expr {
	return p.parseCondOp(token.COND_OR, p.parseCondAnd)
}

func (p *Parser) parseCondAnd() ast.Expr {
	return p.parseCondOp(token.COND_AND, p.parseOr)
}

// parseBinary handles one left-associative level of ordinary operators.
func (p *Parser) parseBinary(operand func() ast.Expr, ops ...token.Type) ast.Expr {
	left := operand()
	for {
		matched := false
		for _, op := range ops {
			if p.See(op) {
				p.NextToken()
				left = &ast.BinaryExpr{Line: left.Pos(), Left: left, Op: op, Right: operand()}
				matched = true
				break
			}
		}
		if !matched {
			return left
		}
	}
}

func (p *Parser) parseOr() ast.Expr {
	return p.parseBinary(p.parseXor, token.OR)
}

func (p *Parser) parseXor() ast.Expr {
	return p.parseBinary(p.parseAnd, token.XOR)
}

func (p *Parser) parseAnd() ast.Expr {
	return p.parseBinary(p.parseEquality, token.AND)
}

func (p *Parser) parseEquality() ast.Expr {
	return p.parseBinary(p.parseRel, token.EQ, token.NOT_EQ)
}

func (p *Parser) parseRel() ast.Expr {
	left := p.parseShift()
	for {
		switch p.Token {
		case token.LT, token.LT_EQ, token.GT, token.GT_EQ:
			op := p.Token
			p.NextToken()
			left = &ast.BinaryExpr{Line: left.Pos(), Left: left, Op: op, Right: p.parseShift()}
		case token.IS:
			p.NextToken()
			right := p.parseType()
			if p.See(token.IDENT) {
				// `is T id` names a binding variable
				right = &ast.VarDecl{Line: right.Pos(), TypeExpr: right, Name: p.StringValue}
				p.NextToken()
			}
			left = &ast.BinaryExpr{Line: left.Pos(), Left: left, Op: token.IS, Right: right}
		default:
			return left
		}
	}
}

func (p *Parser) parseShift() ast.Expr {
	return p.parseBinary(p.parseAdditive, token.SHL, token.SHR)
}

func (p *Parser) parseAdditive() ast.Expr {
	return p.parseBinary(p.parseMul, token.PLUS, token.MINUS)
}

func (p *Parser) parseMul() ast.Expr {
	return p.parseBinary(p.parseUnary, token.ASTERISK, token.SLASH, token.PERCENT)
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.Token {
	case token.MINUS, token.TILDE, token.BANG, token.INCREMENT, token.DECREMENT:
		line := p.Line
		op := p.Token
		if token.IsCrement(op) && p.xcrementParent != "" {
			p.reportf(errors.Contextual, "%s not allowed in %s", op, p.xcrementParent)
		}
		p.NextToken()
		return &ast.PrefixExpr{Line: line, Op: op, Inner: p.parseUnary()}
	case token.NEW:
		line := p.Line
		p.NextToken()
		return &ast.PrefixExpr{Line: line, Op: token.NEW, Inner: p.parseType()}
	case token.RESOURCE:
		return p.parseResource()
	}
	return p.parsePostfix()
}

// parseResource accepts the single legal form resource<byte[]>(path).
func (p *Parser) parseResource() ast.Expr {
	line := p.Line
	p.NextToken()
	p.Expect(token.LT)
	if !p.See(token.IDENT) || p.StringValue != "byte" {
		p.reportf(errors.Structural, "Expected 'byte'")
	}
	p.NextToken()
	p.Expect(token.LBRACKET)
	p.Expect(token.RBRACKET)
	p.Expect(token.GT)
	p.Expect(token.LPAREN)
	inner := p.parseExpr()
	p.Expect(token.RPAREN)
	return &ast.PrefixExpr{Line: line, Op: token.RESOURCE, Inner: inner}
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.Token {
		case token.DOT:
			p.NextToken()
			expr = &ast.SymbolRef{Line: expr.Pos(), Left: expr, Name: p.parseIdent()}
		case token.LPAREN:
			method, ok := expr.(*ast.SymbolRef)
			if !ok {
				p.reportf(errors.Structural, "Expected method name")
			}
			p.NextToken()
			var args []ast.Expr
			if !p.See(token.RPAREN) {
				args = append(args, p.parseExpr())
				for p.Eat(token.COMMA) {
					args = append(args, p.parseExpr())
				}
			}
			p.Expect(token.RPAREN)
			expr = &ast.CallExpr{Line: expr.Pos(), Method: method, Args: args}
		case token.LBRACKET:
			p.NextToken()
			var index ast.Expr // nil means the empty [] of an array type
			if !p.See(token.RBRACKET) {
				index = p.parseExpr()
			}
			p.Expect(token.RBRACKET)
			expr = &ast.BinaryExpr{Line: expr.Pos(), Left: expr, Op: token.LBRACKET, Right: index}
		case token.INCREMENT, token.DECREMENT:
			if p.xcrementParent != "" {
				p.reportf(errors.Contextual, "%s not allowed in %s", p.Token, p.xcrementParent)
			}
			expr = &ast.PostfixExpr{Line: expr.Pos(), Inner: expr, Op: p.Token}
			p.NextToken()
		case token.BANG, token.HASH:
			expr = &ast.PostfixExpr{Line: expr.Pos(), Inner: expr, Op: p.Token}
			p.NextToken()
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	line := p.Line
	switch p.Token {
	case token.INT:
		value := p.IntValue
		p.NextToken()
		return &ast.IntLit{Line: line, Value: value}
	case token.FLOAT:
		value := p.FloatValue
		p.NextToken()
		return &ast.FloatLit{Line: line, Value: value}
	case token.STRING:
		value := p.StringValue
		p.NextToken()
		return &ast.StringLit{Line: line, Value: value}
	case token.INTERP:
		return p.parseInterpolatedString()
	case token.TRUE, token.FALSE:
		value := p.See(token.TRUE)
		p.NextToken()
		return &ast.BoolLit{Line: line, Value: value}
	case token.NULL:
		p.NextToken()
		return &ast.NullLit{Line: line}
	case token.LPAREN:
		p.NextToken()
		expr := p.parseExpr()
		p.Expect(token.RPAREN)
		return expr
	case token.IDENT:
		name := p.StringValue
		p.NextToken()
		if p.See(token.LT) {
			if klass := p.genericClass(name); klass != nil {
				return p.parseCollectionType(klass, name, line)
			}
		}
		return &ast.SymbolRef{Line: line, Name: name}
	}
	p.reportf(errors.Structural, "Expected expression, got %s", p.Token)
	return nil
}

// parseCollectionType parses the <...> argument list of a built-in generic
// class, enforcing its arity. An optional () directly after > denotes a
// no-argument construction call.
func (p *Parser) parseCollectionType(klass *ast.Class, name string, line int) ast.Expr {
	saved := p.ParsingTypeArg
	p.ParsingTypeArg = true
	p.NextToken()
	args := []ast.Expr{p.parseType()}
	for p.Eat(token.COMMA) {
		args = append(args, p.parseType())
	}
	p.ParsingTypeArg = saved
	if len(args) != klass.TypeParamCount {
		p.reportf(errors.Contextual, "Expected %d type arguments for %s, got %d",
			klass.TypeParamCount, name, len(args))
	}
	p.Expect(token.GT)
	ref := &ast.SymbolRef{Line: line, Name: name, TypeArgs: args}
	if p.See(token.LPAREN) {
		p.NextToken()
		p.Expect(token.RPAREN)
		return &ast.CallExpr{Line: line, Method: ref}
	}
	return ref
}

// parseType parses a type expression: a unary expression (a primary with its
// prefix and postfix operators), optionally followed by `..` forming an
// integer range type.
func (p *Parser) parseType() ast.Expr {
	left := p.parseUnary()
	if p.See(token.RANGE) {
		p.NextToken()
		return &ast.BinaryExpr{Line: left.Pos(), Left: left, Op: token.RANGE, Right: p.parseUnary()}
	}
	return left
}

func (p *Parser) parseInterpolatedString() ast.Expr {
	expr := &ast.InterpolatedString{Line: p.Line}
	for p.See(token.INTERP) {
		part := ast.InterpPart{Prefix: p.StringValue, Precision: -1}
		p.NextToken()
		part.Arg = p.parseExpr()
		if p.Eat(token.COMMA) {
			part.Width = p.parseExpr()
		}
		if p.See(token.COLON) {
			p.NextToken()
			part.Format, part.Precision = p.parseFormatSpecifier()
		}
		p.Check(token.RBRACE)
		p.ReadInterpolatedString()
		expr.Parts = append(expr.Parts, part)
	}
	p.Check(token.STRING)
	expr.Suffix = p.StringValue
	p.NextToken()
	return expr
}

// parseFormatSpecifier reads the `Xn` after the colon of an interpolation
// hole: one format character from DdEeFfGgXx and an optional 1- or 2-digit
// precision.
func (p *Parser) parseFormatSpecifier() (byte, int) {
	p.Check(token.IDENT)
	spec := p.StringValue
	if !strings.ContainsRune("DdEeFfGgXx", rune(spec[0])) {
		p.reportf(errors.Structural, "Invalid format specifier %q", spec)
	}
	precision := -1
	if len(spec) > 1 {
		value, err := strconv.Atoi(spec[1:])
		if err != nil || len(spec) > 3 {
			p.reportf(errors.Structural, "Invalid format precision in %q", spec)
		}
		precision = value
	}
	p.NextToken()
	return spec[0], precision
}

// checkNoXcrement rejects ++/-- anywhere in an operand that a short-circuit
// or select context is about to capture. The xcrementParent flag guards
// operands parsed after the context operator is seen; this walk covers the
// operand parsed before it.
func (p *Parser) checkNoXcrement(expr ast.Expr, context string) {
	fail := func(line int, op token.Type) {
		errors.Throw(p.File, line, errors.Contextual, "%s not allowed in %s", op, context)
	}
	switch e := expr.(type) {
	case *ast.PrefixExpr:
		if token.IsCrement(e.Op) {
			fail(e.Line, e.Op)
		}
		p.checkNoXcrement(e.Inner, context)
	case *ast.PostfixExpr:
		if token.IsCrement(e.Op) {
			fail(e.Line, e.Op)
		}
		p.checkNoXcrement(e.Inner, context)
	case *ast.BinaryExpr:
		p.checkNoXcrement(e.Left, context)
		if e.Right != nil {
			p.checkNoXcrement(e.Right, context)
		}
	case *ast.SelectExpr:
		p.checkNoXcrement(e.Cond, context)
		p.checkNoXcrement(e.OnTrue, context)
		p.checkNoXcrement(e.OnFalse, context)
	case *ast.CallExpr:
		p.checkNoXcrement(e.Method, context)
		for _, arg := range e.Args {
			p.checkNoXcrement(arg, context)
		}
	case *ast.SymbolRef:
		if e.Left != nil {
			p.checkNoXcrement(e.Left, context)
		}
	case *ast.InterpolatedString:
		for _, part := range e.Parts {
			p.checkNoXcrement(part.Arg, context)
			if part.Width != nil {
				p.checkNoXcrement(part.Width, context)
			}
		}
	case *ast.AggregateInitializer:
		for _, item := range e.Items {
			p.checkNoXcrement(item, context)
		}
	}
}
