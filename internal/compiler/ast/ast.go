package ast

import (
	"github.com/Marco012/cito/internal/compiler/doc"
	"github.com/Marco012/cito/internal/compiler/token"
)

// Expr is the closed set of expression variants the parser emits.
type Expr interface {
	Pos() int
	exprNode()
}

// Stmt is the closed set of statement variants the parser emits.
type Stmt interface {
	Pos() int
	stmtNode()
}

// Loop is implemented by the four loop statements. Continue nodes point back
// at the innermost enclosing loop, break nodes at the innermost enclosing
// loop or switch; both are captured at parse time.
type Loop interface {
	Stmt
	SetHasBreak()
}

// ============ EXPRESSIONS ============

// IntLit: 42, 0x2A, 0b101010, 'x'
type IntLit struct {
	Line  int
	Value int64
}

func (e *IntLit) Pos() int  { return e.Line }
func (e *IntLit) exprNode() {}

// FloatLit: 3.14
type FloatLit struct {
	Line  int
	Value float64
}

func (e *FloatLit) Pos() int  { return e.Line }
func (e *FloatLit) exprNode() {}

// StringLit: "hello" (decoded)
type StringLit struct {
	Line  int
	Value string
}

func (e *StringLit) Pos() int  { return e.Line }
func (e *StringLit) exprNode() {}

// BoolLit: true, false
type BoolLit struct {
	Line  int
	Value bool
}

func (e *BoolLit) Pos() int  { return e.Line }
func (e *BoolLit) exprNode() {}

// NullLit: null
type NullLit struct {
	Line int
}

func (e *NullLit) Pos() int  { return e.Line }
func (e *NullLit) exprNode() {}

// InterpPart is one `{arg[,width][:fmt[prec]]}` hole together with the
// literal text preceding it.
type InterpPart struct {
	Prefix    string
	Arg       Expr
	Width     Expr // nil when absent
	Format    byte // one of DdEeFfGgXx, 0 when absent
	Precision int  // 0..99, -1 when absent
}

// InterpolatedString: $"a{x}b{y}c" — len(Parts) holes plus one final suffix.
type InterpolatedString struct {
	Line   int
	Parts  []InterpPart
	Suffix string
}

func (e *InterpolatedString) Pos() int  { return e.Line }
func (e *InterpolatedString) exprNode() {}

// SymbolRef: name or qualifier.name. TypeArgs is non-nil for references to
// the built-in generic classes (List<int> etc.). Symbol is filled by the
// resolver.
type SymbolRef struct {
	Line     int
	Left     Expr // nil for an unqualified reference
	Name     string
	TypeArgs []Expr
	Symbol   any
}

func (e *SymbolRef) Pos() int  { return e.Line }
func (e *SymbolRef) exprNode() {}

// PrefixExpr: -x, ~x, !x, ++x, --x, new T, resource<byte[]>(path)
type PrefixExpr struct {
	Line  int
	Op    token.Type
	Inner Expr
}

func (e *PrefixExpr) Pos() int  { return e.Line }
func (e *PrefixExpr) exprNode() {}

// PostfixExpr: x++, x--, x!, x#
type PostfixExpr struct {
	Line  int
	Inner Expr
	Op    token.Type
}

func (e *PostfixExpr) Pos() int  { return e.Line }
func (e *PostfixExpr) exprNode() {}

// BinaryExpr covers arithmetic, bitwise, shift, comparison, equality,
// logical, assignment, `is`, range `..` and member index. The index form
// uses Op == token.LBRACKET; a nil Right there means the empty `[]` of an
// array type.
type BinaryExpr struct {
	Line  int
	Left  Expr
	Op    token.Type
	Right Expr
}

func (e *BinaryExpr) Pos() int  { return e.Line }
func (e *BinaryExpr) exprNode() {}

// CallExpr: method(args). The callee is always a symbol reference.
type CallExpr struct {
	Line   int
	Method *SymbolRef
	Args   []Expr
}

func (e *CallExpr) Pos() int  { return e.Line }
func (e *CallExpr) exprNode() {}

// SelectExpr: cond ? onTrue : onFalse
type SelectExpr struct {
	Line    int
	Cond    Expr
	OnTrue  Expr
	OnFalse Expr
}

func (e *SelectExpr) Pos() int  { return e.Line }
func (e *SelectExpr) exprNode() {}

// AggregateInitializer: { e1, e2, ... } or { field = expr, ... }
type AggregateInitializer struct {
	Line  int
	Items []Expr
}

func (e *AggregateInitializer) Pos() int  { return e.Line }
func (e *AggregateInitializer) exprNode() {}

// VarDecl: Type name [= value]. Appears as an expression in declaration
// positions (for-init, foreach iterators, `is T id`), as a statement at
// block level, and as a method parameter. Documentation is only set on
// parameters.
type VarDecl struct {
	Line          int
	TypeExpr      Expr
	Name          string
	Value         Expr
	Documentation *doc.Comment
}

func (e *VarDecl) Pos() int  { return e.Line }
func (e *VarDecl) exprNode() {}
func (e *VarDecl) stmtNode() {}

// ============ STATEMENTS ============

// Block: { stmts }
type Block struct {
	Line  int
	Stmts []Stmt
}

func (s *Block) Pos() int  { return s.Line }
func (s *Block) stmtNode() {}

// Assert: assert cond [, message];
type Assert struct {
	Line    int
	Cond    Expr
	Message Expr // nil when absent
}

func (s *Assert) Pos() int  { return s.Line }
func (s *Assert) stmtNode() {}

// Break: target is the enclosing loop or switch, never nil.
type Break struct {
	Line   int
	Target Stmt
}

func (s *Break) Pos() int  { return s.Line }
func (s *Break) stmtNode() {}

// Continue: loop is the enclosing loop, never nil.
type Continue struct {
	Line int
	Loop Loop
}

func (s *Continue) Pos() int  { return s.Line }
func (s *Continue) stmtNode() {}

// loopBase carries the break marker shared by all loops.
type loopBase struct {
	HasBreak bool
}

func (l *loopBase) SetHasBreak() { l.HasBreak = true }

// Broken reports whether a break statement targets this loop.
func (l *loopBase) Broken() bool { return l.HasBreak }

// DoWhile: do body while (cond);
type DoWhile struct {
	loopBase
	Line int
	Body Stmt
	Cond Expr
}

func (s *DoWhile) Pos() int  { return s.Line }
func (s *DoWhile) stmtNode() {}

// For: for (init; cond; advance) body — all three headers optional.
type For struct {
	loopBase
	Line    int
	Init    Expr
	Cond    Expr
	Advance Expr
	Body    Stmt
}

func (s *For) Pos() int  { return s.Line }
func (s *For) stmtNode() {}

// Foreach: foreach (T x in coll) body, or the two-variable dictionary form
// foreach ((K k, V v) in coll) body where Second is non-nil.
type Foreach struct {
	loopBase
	Line       int
	First      *VarDecl
	Second     *VarDecl
	Collection Expr
	Body       Stmt
}

func (s *Foreach) Pos() int  { return s.Line }
func (s *Foreach) stmtNode() {}

// If: if (cond) then [else els]
type If struct {
	Line int
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

func (s *If) Pos() int  { return s.Line }
func (s *If) stmtNode() {}

// Lock: lock (on) body
type Lock struct {
	Line int
	On   Expr
	Body Stmt
}

func (s *Lock) Pos() int  { return s.Line }
func (s *Lock) stmtNode() {}

// Native: native { ... } — content captured verbatim for the back end.
type Native struct {
	Line    int
	Content string
}

func (s *Native) Pos() int  { return s.Line }
func (s *Native) stmtNode() {}

// Return: return [value];
type Return struct {
	Line  int
	Value Expr // nil for a bare return
}

func (s *Return) Pos() int  { return s.Line }
func (s *Return) stmtNode() {}

// SwitchCase: one or more case values sharing a body.
type SwitchCase struct {
	Values []Expr
	Body   []Stmt
}

// Switch: switch (value) { cases... [default: ...] }
type Switch struct {
	Line    int
	Value   Expr
	Cases   []SwitchCase
	Default []Stmt // nil when absent
}

func (s *Switch) Pos() int  { return s.Line }
func (s *Switch) stmtNode() {}

// Throw: throw message;
type Throw struct {
	Line    int
	Message Expr
}

func (s *Throw) Pos() int  { return s.Line }
func (s *Throw) stmtNode() {}

// While: while (cond) body
type While struct {
	loopBase
	Line int
	Cond Expr
	Body Stmt
}

func (s *While) Pos() int  { return s.Line }
func (s *While) stmtNode() {}

// ExprStmt: an assignment, call or ++/-- used as a statement.
type ExprStmt struct {
	Line int
	Expr Expr
}

func (s *ExprStmt) Pos() int  { return s.Line }
func (s *ExprStmt) stmtNode() {}

// ============ DECLARATIONS ============

// Visibility of a type or member.
type Visibility int

const (
	VisPrivate Visibility = iota
	VisInternal
	VisProtected
	VisPublic
)

func (v Visibility) String() string {
	switch v {
	case VisInternal:
		return "internal"
	case VisProtected:
		return "protected"
	case VisPublic:
		return "public"
	}
	return "private"
}

// CallKind is the dispatch manner of a class or method.
type CallKind int

const (
	CallNormal CallKind = iota
	CallStatic
	CallAbstract
	CallVirtual
	CallOverride
	CallSealed
)

func (k CallKind) String() string {
	switch k {
	case CallStatic:
		return "static"
	case CallAbstract:
		return "abstract"
	case CallVirtual:
		return "virtual"
	case CallOverride:
		return "override"
	case CallSealed:
		return "sealed"
	}
	return "normal"
}

// TypeDecl is a top-level class or enum.
type TypeDecl interface {
	Pos() int
	TypeName() string
	typeDecl()
}

// Const: const Type NAME = value; — a class member or a block statement.
type Const struct {
	Line          int
	TypeExpr      Expr
	Name          string
	Value         Expr
	Visibility    Visibility
	Documentation *doc.Comment
}

func (c *Const) Pos() int  { return c.Line }
func (c *Const) stmtNode() {}

// Field: Type name [= value];
type Field struct {
	Line          int
	TypeExpr      Expr
	Name          string
	Value         Expr // nil when absent
	Visibility    Visibility
	Documentation *doc.Comment
}

func (f *Field) Pos() int { return f.Line }

// Method: a class method or constructor. ReturnType nil means void.
// Body is a *Block, a *Return for `=>` bodies, or nil for abstract methods.
// Class points back at the owning class for later resolution.
type Method struct {
	Line          int
	CallKind      CallKind
	ReturnType    Expr
	Name          string
	Params        []*VarDecl
	IsMutator     bool
	Throws        bool
	Body          Stmt
	Visibility    Visibility
	Documentation *doc.Comment
	Class         *Class
}

func (m *Method) Pos() int { return m.Line }

// Class declaration.
type Class struct {
	Line           int
	File           string
	Name           string
	CallKind       CallKind
	BaseClassName  string // "" when the class has no base
	Base           *Class // filled by the resolver
	Constructor    *Method
	Consts         []*Const
	Fields         []*Field
	Methods        []*Method
	Visibility     Visibility
	Documentation  *doc.Comment
	Parent         *Program
	TypeParamCount int // non-zero only for the built-in generic classes
}

func (c *Class) Pos() int         { return c.Line }
func (c *Class) TypeName() string { return c.Name }
func (c *Class) typeDecl()        {}

// EnumConst: one named constant of an enum.
type EnumConst struct {
	Line          int
	Name          string
	Value         Expr // nil when implicit
	Documentation *doc.Comment
}

// Enum declaration. Flags marks the enum* variant, whose constants must all
// carry explicit values.
type Enum struct {
	Line          int
	File          string
	Name          string
	Flags         bool
	Constants     []*EnumConst
	Visibility    Visibility
	Documentation *doc.Comment
	Parent        *Program
}

func (e *Enum) Pos() int         { return e.Line }
func (e *Enum) TypeName() string { return e.Name }
func (e *Enum) typeDecl()        {}

// Program is the accumulating root: one parser instance may parse several
// files in sequence into the same program.
type Program struct {
	Types           []TypeDecl
	TopLevelNatives []string
	byName          map[string]TypeDecl
}

// NewProgram returns a program pre-seeded with the built-in generic classes
// the parser recognises as type constructors.
func NewProgram() *Program {
	p := &Program{byName: make(map[string]TypeDecl)}
	for name, arity := range map[string]int{
		"List":             1,
		"Stack":            1,
		"HashSet":          1,
		"Dictionary":       2,
		"SortedDictionary": 2,
	} {
		p.byName[name] = &Class{Name: name, Visibility: VisPublic, TypeParamCount: arity, Parent: p}
	}
	return p
}

// Add appends a class or enum. The first type of a given name wins the
// lookup slot; duplicates are reported by the resolver.
func (p *Program) Add(t TypeDecl) {
	p.Types = append(p.Types, t)
	if _, exists := p.byName[t.TypeName()]; !exists {
		p.byName[t.TypeName()] = t
	}
}

// TryLookup locates a type by simple name, or returns nil.
func (p *Program) TryLookup(name string) TypeDecl {
	return p.byName[name]
}
