// Package ast defines the Crystal syntax tree and its source printer.
package ast

// Node is the base interface for all AST nodes. Nodes are immutable:
// nothing in this package writes a node field after construction.
type Node interface {
	Location() *Location
	DocComment() string
	implASTNode()
}

// NodeInfo carries the metadata every node has: an optional source
// location and an optional documentation comment. Embed it in every
// node variant.
type NodeInfo struct {
	Loc *Location
	Doc string
}

func (n *NodeInfo) Location() *Location { return n.Loc }
func (n *NodeInfo) DocComment() string  { return n.Doc }
func (n *NodeInfo) implASTNode()        {}

// Meta exposes the metadata struct to constructors (parsers, fixture
// decoders) that attach a location or doc comment after building a node.
func (n *NodeInfo) Meta() *NodeInfo { return n }

// NumberKind identifies the numeric type of a NumberLiteral.
type NumberKind int

const (
	KindI8 NumberKind = iota
	KindI16
	KindI32
	KindI64
	KindI128
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindF32
	KindF64
)

func (k NumberKind) String() string {
	names := []string{"i8", "i16", "i32", "i64", "i128", "u8", "u16", "u32", "u64", "u128", "f32", "f64"}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// RegexFlags is a bit set of regular expression modifiers.
type RegexFlags int

const (
	RegexIgnoreCase RegexFlags = 1 << iota
	RegexMultiline
	RegexExtended
)

// BlockKeyword selects the framing of an Expressions sequence.
type BlockKeyword int

const (
	KeywordNone  BlockKeyword = iota // plain statement sequence
	KeywordParen                     // ( ... ) expression group
	KeywordBegin                     // begin ... end
)

// Visibility is the modifier carried by a VisibilityModifier node.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityProtected
)

func (v Visibility) String() string {
	if v == VisibilityProtected {
		return "protected"
	}
	return "private"
}

// Nop is the empty statement. It prints nothing.
type Nop struct {
	NodeInfo
}

// NilLiteral is the nil literal.
type NilLiteral struct {
	NodeInfo
}

// BoolLiteral is true or false.
type BoolLiteral struct {
	NodeInfo
	Value bool
}

// NumberLiteral keeps the raw decimal spelling from the source plus the
// numeric kind; the printer decides whether a suffix is required.
type NumberLiteral struct {
	NodeInfo
	Value string
	Kind  NumberKind
}

// CharLiteral is a single code point.
type CharLiteral struct {
	NodeInfo
	Value rune
}

// StringLiteral is a plain string with no interpolation.
type StringLiteral struct {
	NodeInfo
	Value string
}

// StringInterpolation alternates StringLiteral segments with arbitrary
// expression segments.
type StringInterpolation struct {
	NodeInfo
	Expressions []Node
}

// SymbolLiteral is :name.
type SymbolLiteral struct {
	NodeInfo
	Value string
}

// RegexLiteral wraps either a StringLiteral or a StringInterpolation.
// Any other value is a parser bug.
type RegexLiteral struct {
	NodeInfo
	Value Node
	Flags RegexFlags
}

// RangeLiteral is from..to or from...to. Beginless and endless ranges
// use Nop endpoints.
type RangeLiteral struct {
	NodeInfo
	From      Node
	To        Node
	Exclusive bool
}

// ArrayLiteral is [a, b], optionally with an `of T` element type, or a
// receiver form like `Set {1, 2}`.
type ArrayLiteral struct {
	NodeInfo
	Elements []Node
	Of       Node
	Name     Node
}

// HashEntry is one key => value pair of a HashLiteral; it doubles as the
// key/value type pair of an `of K => V` clause.
type HashEntry struct {
	Key   Node
	Value Node
}

// HashLiteral is {k => v}, optionally with an `of K => V` type clause,
// or a receiver form like `MyHash {"a" => 1}`.
type HashLiteral struct {
	NodeInfo
	Entries []HashEntry
	Of      *HashEntry
	Name    Node
}

// TupleLiteral is {a, b}.
type TupleLiteral struct {
	NodeInfo
	Elements []Node
}

// NamedTupleEntry is one key: value pair of a NamedTupleLiteral.
type NamedTupleEntry struct {
	Key   string
	Value Node
}

// NamedTupleLiteral is {k: v}.
type NamedTupleLiteral struct {
	NodeInfo
	Entries []NamedTupleEntry
}

// Var is a local variable or block parameter reference. Synthesized
// marks parameters the parser invented (not written by the user); the
// printer uses it to detect the &.method block shorthand.
type Var struct {
	NodeInfo
	Name        string
	Synthesized bool
}

// InstanceVar is @name (the sigil is part of Name).
type InstanceVar struct {
	NodeInfo
	Name string
}

// ClassVar is @@name (the sigil is part of Name).
type ClassVar struct {
	NodeInfo
	Name string
}

// Global is $name (the sigil is part of Name).
type Global struct {
	NodeInfo
	Name string
}

// Underscore is the _ pattern.
type Underscore struct {
	NodeInfo
}

// Self is the self reference, in expression or type position.
type Self struct {
	NodeInfo
}

// Path is a constant lookup like Foo::Bar, optionally rooted (::Foo).
type Path struct {
	NodeInfo
	Names  []string
	Global bool
}

// Generic is a generic type instantiation like Array(Int32). Inside a
// lib body, Pointer and StaticArray render with C-like sugar.
type Generic struct {
	NodeInfo
	Name      Node
	TypeVars  []Node
	NamedArgs []*NamedArgument
}

// Union is a type union A | B.
type Union struct {
	NodeInfo
	Types []Node
}

// Metaclass is T.class.
type Metaclass struct {
	NodeInfo
	Name Node
}

// ProcNotation is the (A, B -> R) type notation.
type ProcNotation struct {
	NodeInfo
	Inputs []Node
	Output Node
}

// ImplicitObj is the elided receiver in `case x; when .foo?`.
type ImplicitObj struct {
	NodeInfo
}

// MagicConstant is __LINE__, __FILE__, __DIR__ or __END_LINE__.
type MagicConstant struct {
	NodeInfo
	Name string
}

// Expressions is a statement sequence, optionally framed by parentheses
// or a begin/end block.
type Expressions struct {
	NodeInfo
	Expressions []Node
	Keyword     BlockKeyword
}

// Call is a method call. Name alone decides whether it renders as an
// operator, an index access, a setter assignment or a plain call.
type Call struct {
	NodeInfo
	Obj            Node
	Name           string
	Args           []Node
	NamedArgs      []*NamedArgument
	BlockArg       Node
	Block          *Block
	Global         bool
	HasParentheses bool
}

// NamedArgument is name: value in a call or generic instantiation.
type NamedArgument struct {
	NodeInfo
	Name  string
	Value Node
}

// Block is the do |params| ... end attached to a call. SplatIndex is
// the position of a splat parameter, or -1.
type Block struct {
	NodeInfo
	Args       []*Var
	Body       Node
	SplatIndex int
}

// And is the short-circuit && operator.
type And struct {
	NodeInfo
	Left  Node
	Right Node
}

// Or is the short-circuit || operator.
type Or struct {
	NodeInfo
	Left  Node
	Right Node
}

// Not is the ! operator.
type Not struct {
	NodeInfo
	Expr Node
}

// Assign is target = value.
type Assign struct {
	NodeInfo
	Target Node
	Value  Node
}

// OpAssign is target op= value.
type OpAssign struct {
	NodeInfo
	Target Node
	Op     string
	Value  Node
}

// MultiAssign is a, b = 1, 2.
type MultiAssign struct {
	NodeInfo
	Targets []Node
	Values  []Node
}

// Splat is *exp.
type Splat struct {
	NodeInfo
	Expr Node
}

// DoubleSplat is **exp.
type DoubleSplat struct {
	NodeInfo
	Expr Node
}

// IsA is obj.is_a?(Const), or obj.nil? when NilCheck is set.
type IsA struct {
	NodeInfo
	Obj      Node
	Const    Node
	NilCheck bool
}

// RespondsTo is obj.responds_to?(:name).
type RespondsTo struct {
	NodeInfo
	Obj  Node
	Name string
}

// Cast is obj.as(T).
type Cast struct {
	NodeInfo
	Obj Node
	To  Node
}

// NilableCast is obj.as?(T).
type NilableCast struct {
	NodeInfo
	Obj Node
	To  Node
}

// TypeOf is typeof(exprs).
type TypeOf struct {
	NodeInfo
	Expressions []Node
}

// PointerOf is pointerof(exp).
type PointerOf struct {
	NodeInfo
	Expr Node
}

// SizeOf is sizeof(T).
type SizeOf struct {
	NodeInfo
	Expr Node
}

// InstanceSizeOf is instance_sizeof(T).
type InstanceSizeOf struct {
	NodeInfo
	Expr Node
}

// OffsetOf is offsetof(T, @field).
type OffsetOf struct {
	NodeInfo
	Type   Node
	Offset Node
}

// ReadInstanceVar is obj.@ivar.
type ReadInstanceVar struct {
	NodeInfo
	Obj  Node
	Name string
}

// UninitializedVar is var = uninitialized T.
type UninitializedVar struct {
	NodeInfo
	Var          Node
	DeclaredType Node
}

// Out is the out modifier on a lib call argument.
type Out struct {
	NodeInfo
	Expr Node
}

// If is the if expression. The printer always emits the multi-line
// form; a ternary source re-parses to the same tree.
type If struct {
	NodeInfo
	Cond Node
	Then Node
	Else Node
}

// Unless is the unless expression.
type Unless struct {
	NodeInfo
	Cond Node
	Then Node
	Else Node
}

// While is the while loop.
type While struct {
	NodeInfo
	Cond Node
	Body Node
}

// Until is the until loop.
type Until struct {
	NodeInfo
	Cond Node
	Body Node
}

// Case is the case expression. Exhaustive selects `in` branches.
type Case struct {
	NodeInfo
	Cond       Node
	Whens      []*When
	Else       Node
	Exhaustive bool
}

// When is one branch of a Case or Select.
type When struct {
	NodeInfo
	Conds []Node
	Body  Node
}

// Select is the select expression over channel operations.
type Select struct {
	NodeInfo
	Whens []*When
	Else  Node
}

// ExceptionHandler is begin/rescue/else/ensure/end.
type ExceptionHandler struct {
	NodeInfo
	Body    Node
	Rescues []*Rescue
	Else    Node
	Ensure  Node
}

// Rescue is one rescue clause.
type Rescue struct {
	NodeInfo
	Body  Node
	Types []Node
	Name  string
}

// Return is return, with an optional value.
type Return struct {
	NodeInfo
	Expr Node
}

// Break is break, with an optional value.
type Break struct {
	NodeInfo
	Expr Node
}

// Next is next, with an optional value.
type Next struct {
	NodeInfo
	Expr Node
}

// Yield is yield, optionally `with scope yield args`.
type Yield struct {
	NodeInfo
	Exprs []Node
	Scope Node
}

// Def is a method definition. SplatIndex is the position of the splat
// parameter, or -1.
type Def struct {
	NodeInfo
	Name        string
	Args        []*Arg
	Body        Node
	Receiver    Node
	BlockArg    *Arg
	ReturnType  Node
	SplatIndex  int
	DoubleSplat *Arg
	FreeVars    []string
	Abstract    bool
}

// Arg is a method/fun parameter, or an enum member when it carries only
// a name and default value.
type Arg struct {
	NodeInfo
	Name         string
	ExternalName string
	DefaultValue Node
	Restriction  Node
}

// ClassDef is a class or struct definition.
type ClassDef struct {
	NodeInfo
	Name       Node
	Body       Node
	Superclass Node
	TypeVars   []string
	Abstract   bool
	Struct     bool
}

// ModuleDef is a module definition.
type ModuleDef struct {
	NodeInfo
	Name     Node
	Body     Node
	TypeVars []string
}

// EnumDef is an enum definition; members are Arg (name = value), Def,
// or other declarations.
type EnumDef struct {
	NodeInfo
	Name     Node
	Members  []Node
	BaseType Node
}

// AnnotationDef is an annotation declaration.
type AnnotationDef struct {
	NodeInfo
	Name Node
}

// Annotation is an @[...] application.
type Annotation struct {
	NodeInfo
	Path      Node
	Args      []Node
	NamedArgs []*NamedArgument
}

// Alias is alias Name = Type.
type Alias struct {
	NodeInfo
	Name  Node
	Value Node
}

// Include is include Mod.
type Include struct {
	NodeInfo
	Name Node
}

// Extend is extend Mod.
type Extend struct {
	NodeInfo
	Name Node
}

// Require is require "path".
type Require struct {
	NodeInfo
	Path string
}

// VisibilityModifier is private/protected applied to a definition.
type VisibilityModifier struct {
	NodeInfo
	Modifier Visibility
	Expr     Node
}

// ProcLiteral is ->(x : T) do ... end. The signature and body live in
// an anonymous Def.
type ProcLiteral struct {
	NodeInfo
	Def *Def
}

// ProcPointer is ->obj.method(ArgTypes).
type ProcPointer struct {
	NodeInfo
	Obj    Node
	Name   string
	Args   []Node
	Global bool
}

// LibDef is a lib declaration block. While its body prints, Pointer and
// StaticArray generics use C-like sugar.
type LibDef struct {
	NodeInfo
	Name string
	Body Node
}

// FunDef is a fun declaration, inside a lib or at the top level (where
// it may carry a body).
type FunDef struct {
	NodeInfo
	Name       string
	RealName   string
	Args       []*Arg
	ReturnType Node
	Varargs    bool
	Body       Node
}

// TypeDef is type Name = T inside a lib.
type TypeDef struct {
	NodeInfo
	Name     string
	TypeSpec Node
}

// CStructOrUnionDef is a struct/union declaration inside a lib.
type CStructOrUnionDef struct {
	NodeInfo
	Name  string
	Body  Node
	Union bool
}

// ExternalVar is $name : T inside a lib (Name carries no sigil).
type ExternalVar struct {
	NodeInfo
	Name     string
	RealName string
	TypeSpec Node
}

// Macro is a macro definition. Its body is compile-time template text.
type Macro struct {
	NodeInfo
	Name        string
	Args        []*Arg
	Body        Node
	SplatIndex  int
	DoubleSplat *Arg
	BlockArg    *Arg
}

// MacroExpression is {{ exp }} when Output is set, {% exp %} otherwise.
type MacroExpression struct {
	NodeInfo
	Exp    Node
	Output bool
}

// MacroIf is {% if cond %} ... {% else %} ... {% end %}.
type MacroIf struct {
	NodeInfo
	Cond Node
	Then Node
	Else Node
}

// MacroFor is {% for vars in exp %} ... {% end %}.
type MacroFor struct {
	NodeInfo
	Vars []*Var
	Exp  Node
	Body Node
}

// MacroVar is %name or %name{exp1, exp2}.
type MacroVar struct {
	NodeInfo
	Name string
	Exps []Node
}

// MacroLiteral is a verbatim text fragment of a macro body.
type MacroLiteral struct {
	NodeInfo
	Value string
}

// MacroVerbatim is {% verbatim do %} ... {% end %}.
type MacroVerbatim struct {
	NodeInfo
	Exp Node
}

// Asm is an inline assembly expression.
type Asm struct {
	NodeInfo
	Text       string
	Outputs    []*AsmOperand
	Inputs     []*AsmOperand
	Clobbers   []string
	Volatile   bool
	AlignStack bool
	Intel      bool
	CanThrow   bool
}

// AsmOperand is one "constraint"(exp) operand of an Asm node.
type AsmOperand struct {
	NodeInfo
	Constraint string
	Exp        Node
}

// IsNop reports whether the node is absent or a Nop.
func IsNop(n Node) bool {
	if n == nil {
		return true
	}
	_, ok := n.(*Nop)
	return ok
}
