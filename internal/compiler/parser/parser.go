// Package parser implements the recursive-descent parser for the CI
// language. One token of lookahead; the first syntactic or contextual
// violation aborts the parse with a positioned error.
package parser

import (
	"io"

	"github.com/Marco012/cito/internal/compiler/ast"
	"github.com/Marco012/cito/internal/compiler/doc"
	"github.com/Marco012/cito/internal/compiler/errors"
	"github.com/Marco012/cito/internal/compiler/lexer"
	"github.com/Marco012/cito/internal/compiler/token"
)

type Parser struct {
	*lexer.Lexer

	program *ast.Program

	// per-parse context, saved and restored at each introducing production
	currentLoop         ast.Loop
	currentLoopOrSwitch ast.Stmt
	xcrementParent      string // "&&", "||" or "?" when ++/-- are forbidden
}

func New() *Parser {
	return &Parser{Lexer: lexer.New(), program: ast.NewProgram()}
}

// Program returns the accumulating root.
func (p *Parser) Program() *ast.Program {
	return p.program
}

// Parse reads one CI source file and appends its declarations to the
// program. The same parser may be reused for further files.
func (p *Parser) Parse(filename string, r io.Reader) error {
	return errors.Guard(func() {
		p.Open(filename, r)
		p.parseProgram()
	})
}

func (p *Parser) reportf(kind errors.Kind, format string, args ...any) {
	errors.Throw(p.File, p.Line, kind, format, args...)
}

// parseIdent consumes the current identifier and returns its name.
func (p *Parser) parseIdent() string {
	p.Check(token.IDENT)
	name := p.StringValue
	p.NextToken()
	return name
}

// parseDoc consumes a documentation comment when one is current.
func (p *Parser) parseDoc() *doc.Comment {
	if !p.See(token.DOC) {
		return nil
	}
	text := p.StringValue
	p.NextToken()
	return doc.Parse(text)
}

func (p *Parser) parseCallKind() ast.CallKind {
	switch {
	case p.Eat(token.STATIC):
		return ast.CallStatic
	case p.Eat(token.ABSTRACT):
		return ast.CallAbstract
	case p.Eat(token.VIRTUAL):
		return ast.CallVirtual
	case p.Eat(token.OVERRIDE):
		return ast.CallOverride
	case p.Eat(token.SEALED):
		return ast.CallSealed
	}
	return ast.CallNormal
}

// genericClass returns the built-in generic class the name refers to, or nil.
func (p *Parser) genericClass(name string) *ast.Class {
	if klass, ok := p.program.TryLookup(name).(*ast.Class); ok && klass.TypeParamCount > 0 {
		return klass
	}
	return nil
}
