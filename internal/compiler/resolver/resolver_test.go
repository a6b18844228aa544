package resolver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marco012/cito/internal/compiler/ast"
	cierrors "github.com/Marco012/cito/internal/compiler/errors"
	"github.com/Marco012/cito/internal/compiler/parser"
)

func parse(t *testing.T, sources ...string) *ast.Program {
	t.Helper()
	p := parser.New()
	for i, src := range sources {
		require.NoError(t, p.Parse("test.ci", strings.NewReader(src)), "file %d", i)
	}
	return p.Program()
}

func TestBindsBaseClass(t *testing.T) {
	program := parse(t, "class Base {}", "class Derived : Base {}")
	require.NoError(t, New(program).Resolve())
	derived := program.Types[1].(*ast.Class)
	require.NotNil(t, derived.Base)
	assert.Equal(t, "Base", derived.Base.Name)
}

func TestUnknownBaseClass(t *testing.T) {
	program := parse(t, "class Derived : Missing {}")
	err := New(program).Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown base class Missing")
}

func TestCannotInheritFromCollection(t *testing.T) {
	program := parse(t, "class Derived : List {}")
	err := New(program).Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown base class")
}

func TestCannotInheritFromSealedOrStatic(t *testing.T) {
	program := parse(t, "sealed class S {}", "class D : S {}")
	err := New(program).Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot inherit from sealed class S")

	program = parse(t, "static class S {}", "class D : S {}")
	err = New(program).Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot inherit from static class S")
}

func TestInheritanceCycle(t *testing.T) {
	program := parse(t, "class A : B {}", "class B : A {}")
	err := New(program).Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestDuplicateType(t *testing.T) {
	program := parse(t, "class A {}", "class A {}")
	err := New(program).Resolve()
	require.Error(t, err)
	ce := err.(*cierrors.CompileError)
	assert.Equal(t, cierrors.Contextual, ce.Kind)
	assert.Contains(t, ce.Message, "Duplicate type A")
}

func TestDuplicateMember(t *testing.T) {
	program := parse(t, "class C { int x; void x() {} }")
	err := New(program).Resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Duplicate member x")
}

func TestCleanProgram(t *testing.T) {
	program := parse(t, `
abstract class Shape {
	int size;
	abstract int Area();
}
class Square : Shape {
	override int Area() => size * size;
}
enum Color { Red, Green }
`)
	require.NoError(t, New(program).Resolve())
}
