// Package resolver performs the structural post-pass over a parsed program:
// duplicate names, base-class binding and inheritance cycles. Type checking
// is deliberately absent.
package resolver

import (
	"github.com/Marco012/cito/internal/compiler/ast"
	"github.com/Marco012/cito/internal/compiler/errors"
)

type Resolver struct {
	program *ast.Program
}

func New(program *ast.Program) *Resolver {
	return &Resolver{program: program}
}

// Resolve checks the whole program and binds base-class references.
func (r *Resolver) Resolve() error {
	return errors.Guard(func() {
		r.checkDuplicateTypes()
		for _, t := range r.program.Types {
			if klass, ok := t.(*ast.Class); ok {
				r.resolveClass(klass)
			}
		}
		for _, t := range r.program.Types {
			if klass, ok := t.(*ast.Class); ok {
				r.checkCycle(klass)
			}
		}
	})
}

func (r *Resolver) checkDuplicateTypes() {
	seen := make(map[string]ast.TypeDecl)
	for _, t := range r.program.Types {
		if first, ok := seen[t.TypeName()]; ok {
			file, line := declSite(t)
			_, firstLine := declSite(first)
			errors.Throw(file, line, errors.Contextual,
				"Duplicate type %s, first declared at line %d", t.TypeName(), firstLine)
		}
		seen[t.TypeName()] = t
	}
}

func (r *Resolver) resolveClass(klass *ast.Class) {
	r.checkDuplicateMembers(klass)
	if klass.BaseClassName == "" {
		return
	}
	base := r.program.TryLookup(klass.BaseClassName)
	baseClass, ok := base.(*ast.Class)
	if base == nil || !ok || baseClass.TypeParamCount > 0 {
		errors.Throw(klass.File, klass.Line, errors.Contextual,
			"Unknown base class %s of %s", klass.BaseClassName, klass.Name)
	}
	if baseClass.CallKind == ast.CallSealed || baseClass.CallKind == ast.CallStatic {
		errors.Throw(klass.File, klass.Line, errors.Contextual,
			"Cannot inherit from %s class %s", baseClass.CallKind, baseClass.Name)
	}
	klass.Base = baseClass
}

func (r *Resolver) checkCycle(klass *ast.Class) {
	seen := make(map[*ast.Class]bool)
	for c := klass; c != nil; c = c.Base {
		if seen[c] {
			errors.Throw(klass.File, klass.Line, errors.Contextual,
				"Class inheritance cycle involving %s", c.Name)
		}
		seen[c] = true
	}
}

func (r *Resolver) checkDuplicateMembers(klass *ast.Class) {
	seen := make(map[string]int)
	report := func(name string, line int) {
		if first, ok := seen[name]; ok {
			errors.Throw(klass.File, line, errors.Contextual,
				"Duplicate member %s in class %s, first declared at line %d", name, klass.Name, first)
		}
		seen[name] = line
	}
	for _, c := range klass.Consts {
		report(c.Name, c.Line)
	}
	for _, f := range klass.Fields {
		report(f.Name, f.Line)
	}
	for _, m := range klass.Methods {
		report(m.Name, m.Line)
	}
}

func declSite(t ast.TypeDecl) (string, int) {
	switch d := t.(type) {
	case *ast.Class:
		return d.File, d.Line
	case *ast.Enum:
		return d.File, d.Line
	}
	return "", t.Pos()
}
