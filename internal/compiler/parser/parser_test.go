package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marco012/cito/internal/compiler/ast"
	cierrors "github.com/Marco012/cito/internal/compiler/errors"
	"github.com/Marco012/cito/internal/compiler/token"
)

// ---- end-to-end scenarios ----

func TestEmptyPublicClass(t *testing.T) {
	program := parseSource(t, "public class A {}")
	require.Len(t, program.Types, 1)
	klass := firstClass(t, program)
	assert.Equal(t, "A", klass.Name)
	assert.Equal(t, ast.VisPublic, klass.Visibility)
	assert.Equal(t, ast.CallNormal, klass.CallKind)
	assert.Empty(t, klass.Fields)
	assert.Empty(t, klass.Methods)
	assert.Nil(t, klass.Constructor)
}

func TestFlagsEnum(t *testing.T) {
	program := parseSource(t, "enum* F { A = 1, B = 2 }")
	enum, ok := program.Types[0].(*ast.Enum)
	require.True(t, ok)
	assert.Equal(t, "F", enum.Name)
	assert.True(t, enum.Flags)
	require.Len(t, enum.Constants, 2)
	assert.Equal(t, int64(1), enum.Constants[0].Value.(*ast.IntLit).Value)
	assert.Equal(t, int64(2), enum.Constants[1].Value.(*ast.IntLit).Value)
}

func TestFieldAndMethod(t *testing.T) {
	program := parseSource(t, "class C { int x; public int Get() { return x; } }")
	klass := firstClass(t, program)

	require.Len(t, klass.Fields, 1)
	field := klass.Fields[0]
	assert.Equal(t, "x", field.Name)
	assert.Equal(t, ast.VisPrivate, field.Visibility)
	symbol(t, field.TypeExpr, "int")

	require.Len(t, klass.Methods, 1)
	method := klass.Methods[0]
	assert.Equal(t, "Get", method.Name)
	assert.Equal(t, ast.VisPublic, method.Visibility)
	assert.Equal(t, ast.CallNormal, method.CallKind)
	symbol(t, method.ReturnType, "int")
	assert.Same(t, klass, method.Class)

	block := method.Body.(*ast.Block)
	require.Len(t, block.Stmts, 1)
	ret := block.Stmts[0].(*ast.Return)
	symbol(t, ret.Value, "x")
}

func TestAbstractClassAndMethod(t *testing.T) {
	program := parseSource(t, "abstract class B { abstract void F(); }")
	klass := firstClass(t, program)
	assert.Equal(t, ast.CallAbstract, klass.CallKind)
	require.Len(t, klass.Methods, 1)
	method := klass.Methods[0]
	assert.Equal(t, ast.CallAbstract, method.CallKind)
	assert.Nil(t, method.ReturnType)
	assert.Nil(t, method.Body)
}

func TestConstructor(t *testing.T) {
	program := parseSource(t, "class E { E() {} }")
	klass := firstClass(t, program)
	require.NotNil(t, klass.Constructor)
	assert.Equal(t, ast.CallNormal, klass.Constructor.CallKind)
	// the private default is promoted to internal
	assert.Equal(t, ast.VisInternal, klass.Constructor.Visibility)
	assert.Empty(t, klass.Constructor.Body.(*ast.Block).Stmts)
	assert.Empty(t, klass.Methods)
}

func TestForLoopWithIncrementAdvance(t *testing.T) {
	program := parseSource(t, "class L { void M() { for (int i = 0; i < 10; i++) { } } }")
	klass := firstClass(t, program)
	block := klass.Methods[0].Body.(*ast.Block)
	require.Len(t, block.Stmts, 1)
	loop := block.Stmts[0].(*ast.For)

	init := loop.Init.(*ast.VarDecl)
	assert.Equal(t, "i", init.Name)
	symbol(t, init.TypeExpr, "int")
	assert.Equal(t, int64(0), init.Value.(*ast.IntLit).Value)

	cond := binary(t, loop.Cond, token.LT)
	symbol(t, cond.Left, "i")

	advance := loop.Advance.(*ast.PostfixExpr)
	assert.Equal(t, token.INCREMENT, advance.Op)

	assert.Empty(t, loop.Body.(*ast.Block).Stmts)
	assert.False(t, loop.Broken())
}

// ---- line numbers ----

func TestNodeLineNumbers(t *testing.T) {
	program := parseSource(t, `class C {
	int x;
	void M() {
		x =
			1 + 2;
	}
}`)
	klass := firstClass(t, program)
	assert.Equal(t, 1, klass.Line)
	assert.Equal(t, 2, klass.Fields[0].Line)
	method := klass.Methods[0]
	assert.Equal(t, 3, method.Line)
	block := method.Body.(*ast.Block)
	assert.Equal(t, 3, block.Line)
	stmt := block.Stmts[0].(*ast.ExprStmt)
	assert.Equal(t, 4, stmt.Line)
	assign := stmt.Expr.(*ast.BinaryExpr)
	// a node's line is the line of its first token
	assert.Equal(t, 4, assign.Pos())
	sum := assign.Right.(*ast.BinaryExpr)
	assert.Equal(t, 5, sum.Pos())
}

func TestErrorCarriesFileAndLine(t *testing.T) {
	ce := parseFail(t, "class C {\n\tint x\n}")
	assert.Equal(t, "test.ci", ce.File)
	assert.Equal(t, 3, ce.Line)
}

// ---- statements ----

func TestBreakContinueScoping(t *testing.T) {
	ce := parseFail(t, "class T { void M() { break; } }")
	assert.Contains(t, ce.Message, "break")
	ce = parseFail(t, "class T { void M() { continue; } }")
	assert.Contains(t, ce.Message, "continue")
	// continue is not legal directly inside a switch
	ce = parseFail(t, "class T { void M(int x) { switch (x) { case 1: continue; } } }")
	assert.Contains(t, ce.Message, "continue")
}

func TestBreakTargetsInnermostLoop(t *testing.T) {
	stmts := methodStmts(t, "while (a) { while (b) { break; } }")
	outer := stmts[0].(*ast.While)
	inner := outer.Body.(*ast.Block).Stmts[0].(*ast.While)
	brk := inner.Body.(*ast.Block).Stmts[0].(*ast.Break)
	assert.Same(t, ast.Stmt(inner), brk.Target)
	assert.True(t, inner.Broken())
	assert.False(t, outer.Broken())
}

func TestBreakInsideSwitchMarksNoLoop(t *testing.T) {
	stmts := methodStmts(t, "while (a) { switch (x) { case 1: break; } }")
	loop := stmts[0].(*ast.While)
	sw := loop.Body.(*ast.Block).Stmts[0].(*ast.Switch)
	brk := sw.Cases[0].Body[0].(*ast.Break)
	assert.Same(t, ast.Stmt(sw), brk.Target)
	assert.False(t, loop.Broken())
}

func TestContinueInSwitchInsideLoopTargetsLoop(t *testing.T) {
	stmts := methodStmts(t, "while (a) { switch (x) { case 1: continue; } }")
	loop := stmts[0].(*ast.While)
	sw := loop.Body.(*ast.Block).Stmts[0].(*ast.Switch)
	cont := sw.Cases[0].Body[0].(*ast.Continue)
	assert.Same(t, ast.Loop(loop), cont.Loop)
}

func TestSwitch(t *testing.T) {
	stmts := methodStmts(t, `switch (x) {
		case 1:
		case 2:
			f();
			break;
		case 3:
			g();
			break;
		default:
			h();
			break;
	}`)
	sw := stmts[0].(*ast.Switch)
	require.Len(t, sw.Cases, 2)
	assert.Len(t, sw.Cases[0].Values, 2)
	assert.Len(t, sw.Cases[0].Body, 2)
	assert.Len(t, sw.Cases[1].Values, 1)
	require.NotNil(t, sw.Default)
	assert.Len(t, sw.Default, 2)
}

func TestSwitchErrors(t *testing.T) {
	ce := parseFail(t, "class T { void M(int x) { switch (x) { } } }")
	assert.Contains(t, ce.Message, "case")

	ce = parseFail(t, "class T { void M(int x) { switch (x) { case 1: default: f(); } } }")
	assert.Equal(t, "Please remove case before default", ce.Message)

	ce = parseFail(t, "class T { void M(int x) { switch (x) { case 1: f(); default: g(); case 2: h(); } } }")
	assert.Contains(t, ce.Message, "'case' after 'default'")
}

func TestNativeCapture(t *testing.T) {
	stmts := methodStmts(t, `native { {} { "}" } }`)
	native := stmts[0].(*ast.Native)
	assert.Equal(t, ` {} { "}" } `, native.Content)
}

func TestNativeUnterminated(t *testing.T) {
	ce := parseFail(t, "class T { void M() { native { ")
	assert.Contains(t, ce.Message, "Native block")
}

func TestTopLevelNative(t *testing.T) {
	program := parseSource(t, "native { const FOO = 1; }\nclass A {}")
	require.Len(t, program.TopLevelNatives, 1)
	assert.Equal(t, " const FOO = 1; ", program.TopLevelNatives[0])
	require.Len(t, program.Types, 1)
}

func TestStatementForms(t *testing.T) {
	stmts := methodStmts(t, `
		assert x > 0, "positive";
		const int N = 3;
		do { f(); } while (x < N);
		if (a) f(); else g();
		lock (mutex) { f(); }
		throw "boom";
		return;
	`)
	require.Len(t, stmts, 7)
	asrt := stmts[0].(*ast.Assert)
	require.NotNil(t, asrt.Message)
	konst := stmts[1].(*ast.Const)
	assert.Equal(t, "N", konst.Name)
	_ = stmts[2].(*ast.DoWhile)
	ifStmt := stmts[3].(*ast.If)
	require.NotNil(t, ifStmt.Else)
	_ = stmts[4].(*ast.Lock)
	throw := stmts[5].(*ast.Throw)
	assert.Equal(t, "boom", throw.Message.(*ast.StringLit).Value)
	ret := stmts[6].(*ast.Return)
	assert.Nil(t, ret.Value)
}

func TestForeachForms(t *testing.T) {
	stmts := methodStmts(t, "foreach (int x in list) { f(); }")
	fe := stmts[0].(*ast.Foreach)
	assert.Equal(t, "x", fe.First.Name)
	assert.Nil(t, fe.Second)
	symbol(t, fe.Collection, "list")

	stmts = methodStmts(t, "foreach ((string k, int v) in map) { f(); }")
	fe = stmts[0].(*ast.Foreach)
	assert.Equal(t, "k", fe.First.Name)
	require.NotNil(t, fe.Second)
	assert.Equal(t, "v", fe.Second.Name)
}

// ---- declarations ----

func TestClassBase(t *testing.T) {
	program := parseSource(t, "class Base {}\nclass Derived : Base {}")
	derived := program.Types[1].(*ast.Class)
	assert.Equal(t, "Base", derived.BaseClassName)
}

func TestClassCallKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.CallKind
	}{
		{"class A {}", ast.CallNormal},
		{"static class A { static void F() {} }", ast.CallStatic},
		{"abstract class A {}", ast.CallAbstract},
		{"sealed class A {}", ast.CallSealed},
	}
	for _, tt := range tests {
		klass := firstClass(t, parseSource(t, tt.src))
		assert.Equal(t, tt.kind, klass.CallKind, tt.src)
	}
}

func TestMemberLegalityMatrix(t *testing.T) {
	// rejected combinations
	for _, src := range []string{
		"static class S { void F() {} }",
		"static class S { int x; }",
		"static class S { virtual void F() {} }",
		"class C { abstract void F(); }",
		"sealed class S { abstract void F(); }",
		"sealed class S { virtual void F() {} }",
	} {
		p := New()
		err := p.Parse("test.ci", strings.NewReader(src))
		require.Error(t, err, src)
		assert.Equal(t, cierrors.Contextual, err.(*cierrors.CompileError).Kind, src)
	}
	// accepted combinations
	for _, src := range []string{
		"static class S { static void F() {} }",
		"class C { static void F() {} void G() {} virtual void H() {} override void I() {} sealed void J() {} }",
		"abstract class A { abstract void F(); virtual void G() {} }",
		"sealed class S { override void F() {} sealed void G() {} }",
	} {
		parseSource(t, src)
	}
}

func TestVirtualClassRejected(t *testing.T) {
	ce := parseFail(t, "virtual class C {}")
	assert.Contains(t, ce.Message, "virtual")
}

func TestConstructorErrors(t *testing.T) {
	ce := parseFail(t, "class E { E() {} E() {} }")
	assert.Contains(t, ce.Message, "Duplicate constructor")

	ce = parseFail(t, "class E { F() {} }")
	assert.Contains(t, ce.Message, "Constructor name")

	ce = parseFail(t, "class E { E(5) {} }")
	assert.Contains(t, ce.Message, "Constructor cannot have parameters")

	ce = parseFail(t, "class E { static E() {} }")
	assert.Contains(t, ce.Message, "Constructor cannot be static")
}

func TestFieldErrors(t *testing.T) {
	ce := parseFail(t, "class C { public int x; }")
	assert.Contains(t, ce.Message, "Field cannot be public")

	ce = parseFail(t, "class C { void x; }")
	assert.Contains(t, ce.Message, "Field cannot be void")

	ce = parseFail(t, "class C { static int x; }")
	assert.Contains(t, ce.Message, "Field cannot be static")
}

func TestMethodShapes(t *testing.T) {
	program := parseSource(t, `class C {
	int Twice(int x) => x * 2;
	void Mutate!() throws {}
	internal void Defaulted(int n = 1) {}
}`)
	klass := firstClass(t, program)
	require.Len(t, klass.Methods, 3)

	twice := klass.Methods[0]
	ret, ok := twice.Body.(*ast.Return)
	require.True(t, ok)
	binary(t, ret.Value, token.ASTERISK)

	mutate := klass.Methods[1]
	assert.True(t, mutate.IsMutator)
	assert.True(t, mutate.Throws)

	defaulted := klass.Methods[2]
	assert.Equal(t, ast.VisInternal, defaulted.Visibility)
	require.Len(t, defaulted.Params, 1)
	require.NotNil(t, defaulted.Params[0].Value)
}

func TestConstMemberWithArrayAggregate(t *testing.T) {
	program := parseSource(t, "class C { const int[] A = { 1, 2, 3 }; }")
	klass := firstClass(t, program)
	require.Len(t, klass.Consts, 1)
	agg := klass.Consts[0].Value.(*ast.AggregateInitializer)
	assert.Len(t, agg.Items, 3)
}

func TestEnumFlagsRequiresExplicitValues(t *testing.T) {
	ce := parseFail(t, "enum* F { A }")
	assert.Contains(t, ce.Message, "explicit value")

	program := parseSource(t, "enum Plain { A, B, C = 4 }")
	enum := program.Types[0].(*ast.Enum)
	assert.False(t, enum.Flags)
	assert.Nil(t, enum.Constants[0].Value)
	require.NotNil(t, enum.Constants[2].Value)
}

func TestDocComments(t *testing.T) {
	program := parseSource(t, `/// Keeps things.
class C {
	/// The count of things.
	int n;
	/// Does `+"`work`"+`.
	public void F() {}
}`)
	klass := firstClass(t, program)
	require.NotNil(t, klass.Documentation)
	require.NotNil(t, klass.Fields[0].Documentation)
	require.NotNil(t, klass.Methods[0].Documentation)
}

func TestTopLevelGarbageRejected(t *testing.T) {
	ce := parseFail(t, "int x;")
	assert.Contains(t, ce.Message, "Expected class or enum")
}

func TestProgramAccumulatesAcrossFiles(t *testing.T) {
	p := New()
	require.NoError(t, p.Parse("a.ci", strings.NewReader("public class A {}")))
	require.NoError(t, p.Parse("b.ci", strings.NewReader("class B : A {}")))
	require.Len(t, p.Program().Types, 2)
	assert.NotNil(t, p.Program().TryLookup("A"))
	assert.NotNil(t, p.Program().TryLookup("B"))
	assert.Nil(t, p.Program().TryLookup("C"))
}
