package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marco012/cito/internal/compiler/parser"
	"github.com/Marco012/cito/internal/compiler/resolver"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	p := parser.New()
	require.NoError(t, p.Parse("test.ci", strings.NewReader(src)))
	require.NoError(t, resolver.New(p.Program()).Resolve())
	code, err := New().Generate(p.Program())
	require.NoError(t, err)
	return code
}

func TestGenerateClass(t *testing.T) {
	code := generate(t, `class Counter {
	int n = 0;
	public void Add(int d) { n += d; }
	public int Get() => n;
}`)
	assert.Contains(t, code, "class Counter {")
	assert.Contains(t, code, "constructor() {")
	assert.Contains(t, code, "this.n = 0;")
	assert.Contains(t, code, "Add(d) {")
	assert.Contains(t, code, "this.n += d;")
	assert.Contains(t, code, "return this.n;")
}

func TestGenerateInheritance(t *testing.T) {
	code := generate(t, "class Base { int x; }\nclass Derived : Base { int y; void F() {} }")
	assert.Contains(t, code, "class Derived extends Base {")
	assert.Contains(t, code, "super();")
	assert.Contains(t, code, "this.y = null;")
}

func TestGenerateEnum(t *testing.T) {
	code := generate(t, "enum Color { Red, Green, Blue = 9 }")
	assert.Contains(t, code, "const Color = Object.freeze({")
	assert.Contains(t, code, "Red: 0,")
	assert.Contains(t, code, "Green: 1,")
	assert.Contains(t, code, "Blue: 9,")
}

func TestGenerateStatic(t *testing.T) {
	code := generate(t, `static class MathUtil {
	const int Two = 2;
	static int Double(int x) { return x * Two; }
}`)
	assert.Contains(t, code, "static Two = 2;")
	assert.Contains(t, code, "static Double(x) {")
	assert.Contains(t, code, "MathUtil.Two")
}

func TestGenerateControlFlow(t *testing.T) {
	code := generate(t, `class C {
	void F(int n) {
		for (int i = 0; i < n; i++) {
			if (i % 2 == 0)
				continue;
		}
		while (n > 0)
			n--;
		switch (n) {
			case 0:
				n = 1;
				break;
			default:
				n = 2;
				break;
		}
	}
}`)
	assert.Contains(t, code, "for (let i = 0; i < n; i++)")
	assert.Contains(t, code, "continue;")
	assert.Contains(t, code, "while (n > 0)")
	assert.Contains(t, code, "switch (n) {")
	assert.Contains(t, code, "case 0:")
	assert.Contains(t, code, "default:")
}

func TestGenerateForeach(t *testing.T) {
	code := generate(t, `class C {
	void F() {
		List<int> items = new List<int>();
		foreach (int x in items) { G(x); }
		Dictionary<string, int> ages = new Dictionary<string, int>();
		foreach ((string name, int age) in ages) { G(age); }
	}
	void G(int x) {}
}`)
	assert.Contains(t, code, "let items = [];")
	assert.Contains(t, code, "for (const x of items)")
	assert.Contains(t, code, "let ages = {};")
	assert.Contains(t, code, "for (const [name, age] of Object.entries(ages))")
	assert.Contains(t, code, "this.G(x);")
}

func TestGenerateInterpolatedString(t *testing.T) {
	code := generate(t, `class C {
	string F(int x) => $"value {x,3:X2} end";
}`)
	assert.Contains(t, code, "`value ${")
	assert.Contains(t, code, "toString(16).toUpperCase()")
	assert.Contains(t, code, "padStart(3)")
	assert.Contains(t, code, "} end`")
}

func TestGenerateNative(t *testing.T) {
	code := generate(t, `native { import fs from "fs"; }
class C {
	void F() {
		native { console.log("hi"); }
	}
}`)
	assert.Contains(t, code, `import fs from "fs";`)
	assert.Contains(t, code, `console.log("hi");`)
}

func TestGenerateThrowAndAssert(t *testing.T) {
	code := generate(t, `class C {
	void F(int n) {
		assert n > 0, "n must be positive";
		if (n > 99)
			throw "too big";
	}
}`)
	assert.Contains(t, code, `console.assert(n > 0, "n must be positive");`)
	assert.Contains(t, code, `throw new Error("too big");`)
}

func TestAbstractMethodsSkipped(t *testing.T) {
	code := generate(t, "abstract class A { abstract void F(); void G() {} }")
	assert.NotContains(t, code, "F()")
	assert.Contains(t, code, "G() {")
}
