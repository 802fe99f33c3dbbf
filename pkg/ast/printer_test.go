package ast

import (
	"strings"
	"testing"
)

// small builders to keep the tables readable
func v(name string) *Var              { return &Var{Name: name} }
func num(s string) *NumberLiteral     { return &NumberLiteral{Value: s, Kind: KindI32} }
func str(s string) *StringLiteral     { return &StringLiteral{Value: s} }
func path(names ...string) *Path      { return &Path{Names: names} }
func call(obj Node, name string, args ...Node) *Call {
	return &Call{Obj: obj, Name: name, Args: args}
}
func body(nodes ...Node) *Expressions { return &Expressions{Expressions: nodes} }

func TestPrintLiterals(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"nil", &NilLiteral{}, "nil"},
		{"true", &BoolLiteral{Value: true}, "true"},
		{"false", &BoolLiteral{}, "false"},

		{"default int has no suffix", num("42"), "42"},
		{"i64 gets suffix", &NumberLiteral{Value: "42", Kind: KindI64}, "42_i64"},
		{"u8 gets suffix", &NumberLiteral{Value: "255", Kind: KindU8}, "255_u8"},
		{"f64 with dot has no suffix", &NumberLiteral{Value: "1.5", Kind: KindF64}, "1.5"},
		{"f64 with exponent has no suffix", &NumberLiteral{Value: "1e10", Kind: KindF64}, "1e10"},
		{"f64 without dot gets suffix", &NumberLiteral{Value: "1", Kind: KindF64}, "1_f64"},
		{"f32 always gets suffix", &NumberLiteral{Value: "1.5", Kind: KindF32}, "1.5_f32"},

		{"char", &CharLiteral{Value: 'a'}, "'a'"},
		{"char newline", &CharLiteral{Value: '\n'}, `'\n'`},
		{"char quote", &CharLiteral{Value: '\''}, `'\''`},
		{"char backslash", &CharLiteral{Value: '\\'}, `'\\'`},
		{"char non-printable", &CharLiteral{Value: 1}, `'\u{1}'`},

		{"string", str("hello"), `"hello"`},
		{"string escapes", str("a\"b\nc"), `"a\"b\nc"`},
		{"string interpolation start escaped", str("#{x}"), `"\#{x}"`},
		{"string plain hash kept", str("#x"), `"#x"`},

		{"symbol", &SymbolLiteral{Value: "foo"}, ":foo"},
		{"symbol predicate", &SymbolLiteral{Value: "empty?"}, ":empty?"},
		{"symbol operator", &SymbolLiteral{Value: "+"}, ":+"},
		{"symbol quoted", &SymbolLiteral{Value: "foo bar"}, `:"foo bar"`},

		{"range inclusive", &RangeLiteral{From: num("1"), To: num("5")}, "1..5"},
		{"range exclusive", &RangeLiteral{From: num("1"), To: num("5"), Exclusive: true}, "1...5"},
		{"endless range", &RangeLiteral{From: num("1"), To: &Nop{}}, "1.."},
		{"beginless range", &RangeLiteral{From: &Nop{}, To: num("5")}, "..5"},
		{
			"range parenthesizes operator endpoint",
			&RangeLiteral{From: call(v("a"), "+", v("b")), To: num("3")},
			"(a + b)..3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSource(tt.node); got != tt.want {
				t.Errorf("ToSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintStringInterpolation(t *testing.T) {
	node := &StringInterpolation{Expressions: []Node{
		str("sum: "),
		call(v("a"), "+", v("b")),
	}}
	want := `"sum: #{a + b}"`
	if got := ToSource(node); got != want {
		t.Errorf("ToSource() = %q, want %q", got, want)
	}
}

func TestPrintRegex(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"plain", &RegexLiteral{Value: str("foo")}, "/foo/"},
		{"empty source uses percent form", &RegexLiteral{Value: str("")}, "%r()"},
		{"slash escaped", &RegexLiteral{Value: str("a/b")}, `/a\/b/`},
		{"leading space escaped", &RegexLiteral{Value: str(" x")}, `/\ x/`},
		{
			"flags in fixed order",
			&RegexLiteral{Value: str("foo"), Flags: RegexExtended | RegexIgnoreCase | RegexMultiline},
			"/foo/imx",
		},
		{
			"interpolated",
			&RegexLiteral{Value: &StringInterpolation{Expressions: []Node{str("a"), v("x")}}},
			"/a#{x}/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSource(tt.node); got != tt.want {
				t.Errorf("ToSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintRegexPanicsOnBadValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for regex wrapping a number literal")
		}
	}()
	ToSource(&RegexLiteral{Value: num("1")})
}

func TestPrintContainers(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"empty array", &ArrayLiteral{}, "[]"},
		{"array", &ArrayLiteral{Elements: []Node{num("1"), num("2")}}, "[1, 2]"},
		{
			"array of type",
			&ArrayLiteral{Of: path("Int32")},
			"[] of Int32",
		},
		{
			"array receiver form",
			&ArrayLiteral{Name: path("Set"), Elements: []Node{num("1"), num("2")}},
			"Set {1, 2}",
		},
		{
			"hash",
			&HashLiteral{Entries: []HashEntry{{Key: str("a"), Value: num("1")}}},
			`{"a" => 1}`,
		},
		{
			"empty hash of types",
			&HashLiteral{Of: &HashEntry{Key: path("String"), Value: path("Int32")}},
			"{} of String => Int32",
		},
		{
			"hash with brace-starting key gets spaces",
			&HashLiteral{Entries: []HashEntry{
				{Key: &TupleLiteral{Elements: []Node{num("1")}}, Value: num("2")},
			}},
			"{ {1} => 2 }",
		},
		{"tuple", &TupleLiteral{Elements: []Node{num("1"), num("2")}}, "{1, 2}"},
		{
			"tuple starting with tuple gets spaces",
			&TupleLiteral{Elements: []Node{&TupleLiteral{Elements: []Node{num("1")}}}},
			"{ {1} }",
		},
		{
			"named tuple",
			&NamedTupleLiteral{Entries: []NamedTupleEntry{
				{Key: "a", Value: num("1")},
				{Key: "b c", Value: num("2")},
			}},
			`{a: 1, "b c": 2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSource(tt.node); got != tt.want {
				t.Errorf("ToSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintCallShapes(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"binary operator", call(v("x"), "+", v("y")), "x + y"},
		{"unary operator", call(v("x"), "+"), "+x"},
		{"unary minus", call(v("x"), "-"), "-x"},
		{"unary tilde", call(v("x"), "~"), "~x"},
		{"comparison", call(v("a"), "<=>", v("b")), "a <=> b"},
		{"wrapping operator", call(v("a"), "&+", v("b")), "a &+ b"},

		{"index", call(v("a"), "[]", num("0")), "a[0]"},
		{"nilable index", call(v("a"), "[]?", num("0")), "a[0]?"},
		{"index assign", call(v("a"), "[]=", num("0"), v("v")), "a[0] = v"},
		{
			"multi-index assign",
			call(v("a"), "[]=", num("0"), num("1"), v("v")),
			"a[0, 1] = v",
		},

		{"setter", call(v("a"), "name=", str("x")), `a.name = "x"`},
		{"plain call no args", call(v("a"), "size"), "a.size"},
		{"predicate call", call(v("a"), "empty?"), "a.empty?"},
		{"call with args", call(v("a"), "push", num("1"), num("2")), "a.push(1, 2)"},
		{"receiverless call", call(nil, "puts", str("hi")), `puts("hi")`},
		{"receiverless no args", call(nil, "exit"), "exit"},
		{
			"forced parentheses",
			&Call{Name: "exit", HasParentheses: true},
			"exit()",
		},
		{"global call", &Call{Name: "raise", Args: []Node{str("x")}, Global: true}, `::raise("x")`},

		{
			"operator receiver parenthesized",
			call(call(v("a"), "+", v("b")), "abs"),
			"(a + b).abs",
		},
		{
			"comparison receiver stays bare",
			call(call(v("a"), "<", v("b")), "to_s"),
			"a < b.to_s",
		},
		{
			"operator argument parenthesized",
			call(v("a"), "*", call(v("b"), "+", v("c"))),
			"a * (b + c)",
		},
		{
			"typed array literal receiver parenthesized",
			call(&ArrayLiteral{Of: path("Int32")}, "size"),
			"([] of Int32).size",
		},
		{
			"named argument",
			&Call{Obj: v("io"), Name: "print", NamedArgs: []*NamedArgument{
				{Name: "flush", Value: &BoolLiteral{Value: true}},
			}},
			"io.print(flush: true)",
		},
		{
			"block argument",
			&Call{Obj: v("a"), Name: "map", BlockArg: v("f")},
			"a.map(&f)",
		},
		{
			"splat argument",
			call(nil, "foo", &Splat{Expr: v("args")}),
			"foo(*args)",
		},
		{
			"double splat argument",
			call(nil, "foo", &DoubleSplat{Expr: v("opts")}),
			"foo(**opts)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSource(tt.node); got != tt.want {
				t.Errorf("ToSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintBlocks(t *testing.T) {
	t.Run("full block", func(t *testing.T) {
		node := &Call{Obj: v("items"), Name: "each", Block: &Block{
			Args:       []*Var{{Name: "x"}},
			Body:       call(nil, "puts", v("x")),
			SplatIndex: -1,
		}}
		want := "items.each do |x|\n  puts(x)\nend"
		if got := ToSource(node); got != want {
			t.Errorf("ToSource() = %q, want %q", got, want)
		}
	})

	t.Run("block splat parameter", func(t *testing.T) {
		node := &Call{Obj: v("t"), Name: "each", Block: &Block{
			Args:       []*Var{{Name: "k"}, {Name: "rest"}},
			Body:       v("k"),
			SplatIndex: 1,
		}}
		want := "t.each do |k, *rest|\n  k\nend"
		if got := ToSource(node); got != want {
			t.Errorf("ToSource() = %q, want %q", got, want)
		}
	})

	t.Run("synthesized single parameter prints shorthand", func(t *testing.T) {
		node := &Call{Obj: v("words"), Name: "map", Block: &Block{
			Args:       []*Var{{Name: "__arg0", Synthesized: true}},
			Body:       call(&Var{Name: "__arg0"}, "upcase"),
			SplatIndex: -1,
		}}
		want := "words.map &.upcase"
		if got := ToSource(node); got != want {
			t.Errorf("ToSource() = %q, want %q", got, want)
		}
	})

	t.Run("user-written parameter keeps do form", func(t *testing.T) {
		node := &Call{Obj: v("words"), Name: "map", Block: &Block{
			Args:       []*Var{{Name: "w"}},
			Body:       call(v("w"), "upcase"),
			SplatIndex: -1,
		}}
		want := "words.map do |w|\n  w.upcase\nend"
		if got := ToSource(node); got != want {
			t.Errorf("ToSource() = %q, want %q", got, want)
		}
	})

	t.Run("shorthand with operator body", func(t *testing.T) {
		node := &Call{Obj: v("nums"), Name: "map", Block: &Block{
			Args:       []*Var{{Name: "__arg0", Synthesized: true}},
			Body:       call(&Var{Name: "__arg0"}, "+", num("1")),
			SplatIndex: -1,
		}}
		want := "nums.map &.+(1)"
		if got := ToSource(node); got != want {
			t.Errorf("ToSource() = %q, want %q", got, want)
		}
	})
}

func TestPrintAssignAndOperators(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"assign", &Assign{Target: v("x"), Value: num("1")}, "x = 1"},
		{"op assign", &OpAssign{Target: v("x"), Op: "+", Value: num("1")}, "x += 1"},
		{"or assign", &OpAssign{Target: v("x"), Op: "||", Value: num("1")}, "x ||= 1"},
		{
			"multi assign",
			&MultiAssign{Targets: []Node{v("a"), v("b")}, Values: []Node{num("1"), num("2")}},
			"a, b = 1, 2",
		},
		{"and", &And{Left: v("a"), Right: v("b")}, "a && b"},
		{"or", &Or{Left: v("a"), Right: v("b")}, "a || b"},
		{"not", &Not{Expr: v("a")}, "!a"},
		{
			"not parenthesizes operator operand",
			&Not{Expr: call(v("a"), "==", v("b"))},
			"!(a == b)",
		},
		{"is_a?", &IsA{Obj: v("x"), Const: path("Int32")}, "x.is_a?(Int32)"},
		{"nil?", &IsA{Obj: v("x"), NilCheck: true}, "x.nil?"},
		{"responds_to?", &RespondsTo{Obj: v("x"), Name: "each"}, "x.responds_to?(:each)"},
		{"cast", &Cast{Obj: v("x"), To: path("Int32")}, "x.as(Int32)"},
		{"nilable cast", &NilableCast{Obj: v("x"), To: path("Int32")}, "x.as?(Int32)"},
		{"typeof", &TypeOf{Expressions: []Node{v("a"), v("b")}}, "typeof(a, b)"},
		{"pointerof", &PointerOf{Expr: v("x")}, "pointerof(x)"},
		{"sizeof", &SizeOf{Expr: path("Int32")}, "sizeof(Int32)"},
		{"instance_sizeof", &InstanceSizeOf{Expr: path("Foo")}, "instance_sizeof(Foo)"},
		{
			"offsetof",
			&OffsetOf{Type: path("Foo"), Offset: &InstanceVar{Name: "@x"}},
			"offsetof(Foo, @x)",
		},
		{
			"read instance var",
			&ReadInstanceVar{Obj: v("obj"), Name: "@x"},
			"obj.@x",
		},
		{
			"uninitialized",
			&UninitializedVar{Var: v("x"), DeclaredType: path("Int32")},
			"x = uninitialized Int32",
		},
		{"out", &Out{Expr: v("x")}, "out x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSource(tt.node); got != tt.want {
				t.Errorf("ToSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintAssignMultiStatementValue(t *testing.T) {
	node := &Assign{Target: v("x"), Value: body(call(nil, "prepare"), num("1"))}
	want := "x = begin\n  prepare\n  1\nend"
	if got := ToSource(node); got != want {
		t.Errorf("ToSource() = %q, want %q", got, want)
	}
}

func TestPrintControlFlow(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"if",
			&If{Cond: v("x"), Then: v("y")},
			"if x\n  y\nend",
		},
		{
			"if else",
			&If{Cond: v("x"), Then: v("y"), Else: v("z")},
			"if x\n  y\nelse\n  z\nend",
		},
		{
			"unless",
			&Unless{Cond: v("x"), Then: v("y")},
			"unless x\n  y\nend",
		},
		{
			"nested if indents",
			&If{Cond: v("a"), Then: &If{Cond: v("b"), Then: v("c")}},
			"if a\n  if b\n    c\n  end\nend",
		},
		{
			"while",
			&While{Cond: v("x"), Body: call(nil, "work")},
			"while x\n  work\nend",
		},
		{
			"until",
			&Until{Cond: v("x"), Body: call(nil, "work")},
			"until x\n  work\nend",
		},
		{
			"case",
			&Case{Cond: v("x"), Whens: []*When{
				{Conds: []Node{num("1")}, Body: v("a")},
				{Conds: []Node{num("2"), num("3")}, Body: v("b")},
			}, Else: v("c")},
			"case x\nwhen 1\n  a\nwhen 2, 3\n  b\nelse\n  c\nend",
		},
		{
			"exhaustive case",
			&Case{Cond: v("x"), Whens: []*When{
				{Conds: []Node{path("Int32")}, Body: v("a")},
			}, Exhaustive: true},
			"case x\nin Int32\n  a\nend",
		},
		{
			"condless case",
			&Case{Whens: []*When{
				{Conds: []Node{call(v("x"), ">", num("0"))}, Body: v("a")},
			}},
			"case\nwhen x > 0\n  a\nend",
		},
		{
			"select",
			&Select{Whens: []*When{
				{Conds: []Node{&Assign{Target: v("m"), Value: call(v("ch"), "receive")}}, Body: v("m")},
			}},
			"select\nwhen m = ch.receive\n  m\nend",
		},
		{"return", &Return{}, "return"},
		{"return value", &Return{Expr: num("1")}, "return 1"},
		{"break", &Break{Expr: v("x")}, "break x"},
		{"next", &Next{}, "next"},
		{"yield", &Yield{}, "yield"},
		{"yield args", &Yield{Exprs: []Node{v("a"), v("b")}}, "yield a, b"},
		{"scoped yield", &Yield{Exprs: []Node{v("a")}, Scope: v("obj")}, "with obj yield a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSource(tt.node); got != tt.want {
				t.Errorf("ToSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintExceptionHandler(t *testing.T) {
	node := &ExceptionHandler{
		Body: call(nil, "work"),
		Rescues: []*Rescue{
			{Name: "ex", Types: []Node{path("IO", "Error")}, Body: call(nil, "log", v("ex"))},
			{Body: call(nil, "fallback")},
		},
		Else:   call(nil, "celebrate"),
		Ensure: call(nil, "cleanup"),
	}
	want := strings.Join([]string{
		"begin",
		"  work",
		"rescue ex : IO::Error",
		"  log(ex)",
		"rescue",
		"  fallback",
		"else",
		"  celebrate",
		"ensure",
		"  cleanup",
		"end",
	}, "\n")
	if got := ToSource(node); got != want {
		t.Errorf("ToSource() = %q, want %q", got, want)
	}
}

func TestPrintExpressions(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"plain sequence",
			body(call(nil, "a"), call(nil, "b")),
			"a\nb\n",
		},
		{
			"nop statements skipped",
			body(&Nop{}, call(nil, "a"), &Nop{}),
			"a\n",
		},
		{
			"begin framing",
			&Expressions{Keyword: KeywordBegin, Expressions: []Node{call(nil, "a"), call(nil, "b")}},
			"begin\n  a\n  b\nend",
		},
		{
			"paren framing",
			&Expressions{Keyword: KeywordParen, Expressions: []Node{call(nil, "a"), call(nil, "b")}},
			"(a\nb)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSource(tt.node); got != tt.want {
				t.Errorf("ToSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintDefinitions(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"def",
			&Def{Name: "add", SplatIndex: -1,
				Args: []*Arg{{Name: "x"}, {Name: "y"}},
				Body: call(v("x"), "+", v("y"))},
			"def add(x, y)\n  x + y\nend",
		},
		{
			"def no args",
			&Def{Name: "run", SplatIndex: -1},
			"def run\nend",
		},
		{
			"def with types and default",
			&Def{Name: "greet", SplatIndex: -1,
				Args:       []*Arg{{Name: "name", Restriction: path("String"), DefaultValue: str("world")}},
				ReturnType: path("Nil")},
			`def greet(name : String = "world") : Nil` + "\nend",
		},
		{
			"def external name",
			&Def{Name: "move", SplatIndex: -1,
				Args: []*Arg{{Name: "dir", ExternalName: "to"}}},
			"def move(to dir)\nend",
		},
		{
			"def splat and block params",
			&Def{Name: "go", SplatIndex: 0,
				Args:        []*Arg{{Name: "rest"}},
				DoubleSplat: &Arg{Name: "opts"},
				BlockArg:    &Arg{Name: "blk"}},
			"def go(*rest, **opts, &blk)\nend",
		},
		{
			"def receiver",
			&Def{Name: "build", SplatIndex: -1, Receiver: &Self{}},
			"def self.build\nend",
		},
		{
			"def forall",
			&Def{Name: "id", SplatIndex: -1,
				Args:     []*Arg{{Name: "x", Restriction: path("T")}},
				FreeVars: []string{"T"}},
			"def id(x : T) forall T\nend",
		},
		{
			"abstract def",
			&Def{Name: "area", SplatIndex: -1, Abstract: true, ReturnType: path("Float64")},
			"abstract def area : Float64",
		},
		{
			"class",
			&ClassDef{Name: path("Point"), Superclass: path("Base"),
				Body: &InstanceVar{Name: "@x"}},
			"class Point < Base\n  @x\nend",
		},
		{
			"generic struct",
			&ClassDef{Name: path("Pair"), Struct: true, TypeVars: []string{"K", "V"}},
			"struct Pair(K, V)\nend",
		},
		{
			"abstract class",
			&ClassDef{Name: path("Shape"), Abstract: true},
			"abstract class Shape\nend",
		},
		{
			"module",
			&ModuleDef{Name: path("Enumerable"), TypeVars: []string{"T"}},
			"module Enumerable(T)\nend",
		},
		{
			"enum",
			&EnumDef{Name: path("Color"), BaseType: path("UInt8"), Members: []Node{
				&Arg{Name: "Red"},
				&Arg{Name: "Green", DefaultValue: num("4")},
			}},
			"enum Color : UInt8\n  Red\n  Green = 4\nend",
		},
		{
			"annotation def",
			&AnnotationDef{Name: path("MyFlag")},
			"annotation MyFlag\nend",
		},
		{
			"annotation",
			&Annotation{Path: path("JSON", "Field"), NamedArgs: []*NamedArgument{
				{Name: "key", Value: str("id")},
			}},
			`@[JSON::Field(key: "id")]`,
		},
		{"alias", &Alias{Name: path("Num"), Value: &Union{Types: []Node{path("Int32"), path("Float64")}}}, "alias Num = Int32 | Float64"},
		{"include", &Include{Name: path("Comparable")}, "include Comparable"},
		{"extend", &Extend{Name: &Self{}}, "extend self"},
		{"require", &Require{Path: "json"}, `require "json"`},
		{
			"private def",
			&VisibilityModifier{Modifier: VisibilityPrivate, Expr: &Def{Name: "helper", SplatIndex: -1}},
			"private def helper\nend",
		},
		{
			"protected def",
			&VisibilityModifier{Modifier: VisibilityProtected, Expr: &Def{Name: "helper", SplatIndex: -1}},
			"protected def helper\nend",
		},
		{
			"proc literal",
			&ProcLiteral{Def: &Def{SplatIndex: -1,
				Args: []*Arg{{Name: "x", Restriction: path("Int32")}},
				Body: call(v("x"), "+", num("1"))}},
			"->(x : Int32) do\n  x + 1\nend",
		},
		{
			"proc pointer",
			&ProcPointer{Obj: v("obj"), Name: "method", Args: []Node{path("Int32")}},
			"->obj.method(Int32)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSource(tt.node); got != tt.want {
				t.Errorf("ToSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintTypes(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"path", path("Foo", "Bar"), "Foo::Bar"},
		{"global path", &Path{Names: []string{"Foo"}, Global: true}, "::Foo"},
		{"generic", &Generic{Name: path("Array"), TypeVars: []Node{path("Int32")}}, "Array(Int32)"},
		{
			"generic named args",
			&Generic{Name: path("Proc"), NamedArgs: []*NamedArgument{
				{Name: "beta", Value: path("Int32")},
			}},
			"Proc(beta: Int32)",
		},
		{"union", &Union{Types: []Node{path("Int32"), &NilLiteral{}}}, "Int32 | nil"},
		{"metaclass", &Metaclass{Name: path("Int32")}, "Int32.class"},
		{
			"proc notation",
			&ProcNotation{Inputs: []Node{path("Int32")}, Output: path("String")},
			"(Int32 -> String)",
		},
		{"proc notation no output", &ProcNotation{Inputs: []Node{path("Int32")}}, "(Int32 ->)"},
		{"underscore", &Underscore{}, "_"},
		{"self type", &Self{}, "self"},
		{"magic constant", &MagicConstant{Name: "__LINE__"}, "__LINE__"},
		{"instance var", &InstanceVar{Name: "@x"}, "@x"},
		{"class var", &ClassVar{Name: "@@x"}, "@@x"},
		{"global var", &Global{Name: "$x"}, "$x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSource(tt.node); got != tt.want {
				t.Errorf("ToSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintLib(t *testing.T) {
	t.Run("fun with pointer sugar", func(t *testing.T) {
		node := &LibDef{Name: "LibC", Body: body(
			&FunDef{Name: "printf",
				Args: []*Arg{{Name: "format",
					Restriction: &Generic{Name: path("Pointer"), TypeVars: []Node{path("UInt8")}}}},
				ReturnType: path("Int32"),
				Varargs:    true},
		)}
		want := "lib LibC\n  fun printf(format : UInt8*, ...) : Int32\nend"
		if got := ToSource(node); got != want {
			t.Errorf("ToSource() = %q, want %q", got, want)
		}
	})

	t.Run("static array sugar", func(t *testing.T) {
		node := &LibDef{Name: "LibFoo", Body: body(
			&TypeDef{Name: "Buf", TypeSpec: &Generic{Name: path("StaticArray"),
				TypeVars: []Node{path("UInt8"), num("16")}}},
		)}
		want := "lib LibFoo\n  type Buf = UInt8[16]\nend"
		if got := ToSource(node); got != want {
			t.Errorf("ToSource() = %q, want %q", got, want)
		}
	})

	t.Run("sugar only applies inside lib", func(t *testing.T) {
		node := &Generic{Name: path("Pointer"), TypeVars: []Node{path("UInt8")}}
		if got := ToSource(node); got != "Pointer(UInt8)" {
			t.Errorf("ToSource() = %q, want %q", got, "Pointer(UInt8)")
		}
	})

	t.Run("struct union and external var", func(t *testing.T) {
		node := &LibDef{Name: "LibX", Body: body(
			&CStructOrUnionDef{Name: "Event", Body: v("dummy")},
			&CStructOrUnionDef{Name: "Value", Union: true, Body: v("dummy")},
			&ExternalVar{Name: "errno", TypeSpec: path("Int32")},
			&ExternalVar{Name: "timezone", RealName: "__timezone", TypeSpec: path("LongInt")},
		)}
		want := strings.Join([]string{
			"lib LibX",
			"  struct Event",
			"    dummy",
			"  end",
			"  union Value",
			"    dummy",
			"  end",
			"  $errno : Int32",
			"  $timezone = __timezone : LongInt",
			"end",
		}, "\n")
		if got := ToSource(node); got != want {
			t.Errorf("ToSource() = %q, want %q", got, want)
		}
	})

	t.Run("fun real name", func(t *testing.T) {
		node := &FunDef{Name: "sleep", RealName: "SleepEx", ReturnType: path("Void")}
		want := "fun sleep = SleepEx : Void"
		if got := ToSource(node); got != want {
			t.Errorf("ToSource() = %q, want %q", got, want)
		}
	})

	t.Run("top-level fun with body", func(t *testing.T) {
		node := &FunDef{Name: "run", Body: num("1")}
		want := "fun run\n  1\nend"
		if got := ToSource(node); got != want {
			t.Errorf("ToSource() = %q, want %q", got, want)
		}
	})
}

func TestPrintMacros(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"macro body is verbatim",
			&Macro{Name: "getter", SplatIndex: -1,
				Args: []*Arg{{Name: "name"}},
				Body: &MacroLiteral{Value: "\n  def {{name}}; @{{name}}; end\n"}},
			"macro getter(name)\n\n  def {{name}}; @{{name}}; end\nend",
		},
		{
			"macro expression output",
			&MacroExpression{Exp: v("x"), Output: true},
			"{{ x }}",
		},
		{
			"macro expression statement",
			&MacroExpression{Exp: &Assign{Target: v("x"), Value: num("1")}},
			"{% x = 1 %}",
		},
		{
			"macro if",
			&MacroIf{Cond: v("flag"),
				Then: &MacroLiteral{Value: "a"},
				Else: &MacroLiteral{Value: "b"}},
			"{% if flag %}a{% else %}b{% end %}",
		},
		{
			"macro for",
			&MacroFor{Vars: []*Var{{Name: "x"}}, Exp: v("items"),
				Body: &MacroLiteral{Value: "{{x}} "}},
			"{% for x in items %}{{x}} {% end %}",
		},
		{
			"macro var",
			&MacroVar{Name: "tmp"},
			"%tmp",
		},
		{
			"macro var with exps",
			&MacroVar{Name: "tmp", Exps: []Node{v("x")}},
			"%tmp{x}",
		},
		{
			"open brace literal escaped",
			&MacroLiteral{Value: "{"},
			`\{`,
		},
		{
			"control prefix literal escaped",
			&MacroLiteral{Value: "{% raw %}"},
			`\{% raw %}`,
		},
		{
			"plain literal not escaped",
			&MacroLiteral{Value: "text {here}"},
			"text {here}",
		},
		{
			"verbatim",
			&MacroVerbatim{Exp: &MacroLiteral{Value: "{{ x }}"}},
			"{% verbatim do %}{{ x }}{% end %}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSource(tt.node); got != tt.want {
				t.Errorf("ToSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintMacroBodySuppressesStatementFraming(t *testing.T) {
	// Inside a macro body the fragments glue together with no
	// indentation or newlines of their own.
	node := &Macro{Name: "twice", SplatIndex: -1, Body: body(
		&MacroLiteral{Value: "a"},
		&MacroExpression{Exp: v("x"), Output: true},
		&MacroLiteral{Value: "b\n"},
	)}
	want := "macro twice\na{{ x }}b\nend"
	if got := ToSource(node); got != want {
		t.Errorf("ToSource() = %q, want %q", got, want)
	}
}

func TestPrintMacroControlExpressionEscapesBody(t *testing.T) {
	// The for-loop's collection expression is ordinary code even while
	// the surrounding macro body is verbatim, so a nested literal
	// inside it must not leak macro framing.
	node := &Macro{Name: "gen", SplatIndex: -1, Body: body(
		&MacroFor{Vars: []*Var{{Name: "m"}}, Exp: call(v("list"), "sort"),
			Body: &MacroLiteral{Value: "{{m}}"}},
	)}
	want := "macro gen\n{% for m in list.sort %}{{m}}{% end %}end"
	if got := ToSource(node); got != want {
		t.Errorf("ToSource() = %q, want %q", got, want)
	}
}

func TestPrintMacroVarExpsEscapeBody(t *testing.T) {
	// A fresh-variable's expressions are ordinary code: even inside a
	// verbatim macro body they keep their statement framing instead of
	// gluing together.
	node := &Macro{Name: "gen", SplatIndex: -1, Body: body(
		&MacroVar{Name: "tmp", Exps: []Node{body(v("a"), v("b"))}},
	)}
	want := "macro gen\n%tmp{a\nb\n}end"
	if got := ToSource(node); got != want {
		t.Errorf("ToSource() = %q, want %q", got, want)
	}
}

func TestPrintAsm(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"bare", &Asm{Text: "nop"}, `asm("nop")`},
		{
			"volatile only",
			&Asm{Text: "nop", Volatile: true},
			`asm("nop" : : : : "volatile")`,
		},
		{
			"outputs and inputs",
			&Asm{Text: "addl $2, $0",
				Outputs: []*AsmOperand{{Constraint: "=r", Exp: v("dst")}},
				Inputs:  []*AsmOperand{{Constraint: "r", Exp: v("a")}, {Constraint: "r", Exp: v("b")}}},
			`asm("addl $2, $0" : "=r"(dst) : "r"(a), "r"(b))`,
		},
		{
			"clobbers",
			&Asm{Text: "cpuid", Clobbers: []string{"eax", "ebx"}},
			`asm("cpuid" : : : "eax", "ebx")`,
		},
		{
			"can throw renders unwind",
			&Asm{Text: "call foo", CanThrow: true},
			`asm("call foo" : : : : "unwind")`,
		},
		{
			"volatile and unwind together",
			&Asm{Text: "nop", Volatile: true, CanThrow: true},
			`asm("nop" : : : : "volatile", "unwind")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSource(tt.node); got != tt.want {
				t.Errorf("ToSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintUnknownNodePanics(t *testing.T) {
	type rogue struct{ NodeInfo }
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a node type the printer does not know")
		}
	}()
	ToSource(&rogue{})
}

func TestEmitDocs(t *testing.T) {
	def := &Def{Name: "add", SplatIndex: -1, Body: num("1")}
	def.Doc = "Adds things.\nSlowly."
	node := &ClassDef{Name: path("Calc"), Body: body(def)}

	t.Run("off by default", func(t *testing.T) {
		got := ToSource(node)
		if strings.Contains(got, "#") {
			t.Errorf("ToSource() = %q, docs should be omitted", got)
		}
	})

	t.Run("emitted at the node's indent", func(t *testing.T) {
		var b strings.Builder
		NewPrinterWith(&b, Options{EmitDocs: true}).PrintNode(node)
		want := strings.Join([]string{
			"class Calc",
			"  # Adds things.",
			"  # Slowly.",
			"  def add",
			"    1",
			"  end",
			"end",
		}, "\n")
		if got := b.String(); got != want {
			t.Errorf("PrintNode() = %q, want %q", got, want)
		}
	})
}

func TestPragmaCollection(t *testing.T) {
	loc := func(line, col int) *Location {
		return &Location{Filename: "calc.cr", Line: line, Column: col}
	}

	target := v("x")
	target.Loc = loc(1, 1)
	value := num("1")
	value.Loc = loc(1, 5)
	assign := &Assign{Target: target, Value: value}
	assign.Loc = loc(1, 1)

	var b strings.Builder
	p := NewPrinterWith(&b, Options{CollectPragmas: true})
	p.PrintNode(assign)

	if got := b.String(); got != "x = 1" {
		t.Fatalf("PrintNode() = %q, want %q", got, "x = 1")
	}

	table := p.Pragmas()
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	// assign and its target share offset 0
	if got := len(table.At(0)); got != 2 {
		t.Errorf("At(0) has %d pragmas, want 2", got)
	}
	ps := table.At(4)
	if len(ps) != 1 || ps[0].Line != 1 || ps[0].Column != 5 {
		t.Errorf("At(4) = %+v, want the value's location 1:5", ps)
	}
}

func TestPragmaSkipsSyntheticNodes(t *testing.T) {
	value := num("1")
	value.Loc = &Location{Line: 3, Column: 1} // no filename: synthetic
	assign := &Assign{Target: v("x"), Value: value}

	var b strings.Builder
	p := NewPrinterWith(&b, Options{CollectPragmas: true})
	p.PrintNode(assign)

	if p.Pragmas().Len() != 0 {
		t.Errorf("Len() = %d, want 0 for synthetic locations", p.Pragmas().Len())
	}
}

func TestPragmasNilWithoutCollection(t *testing.T) {
	var b strings.Builder
	p := NewPrinter(&b)
	p.PrintNode(v("x"))
	if p.Pragmas() != nil {
		t.Error("Pragmas() should be nil when collection is off")
	}
}

func TestIndentRestoredAcrossSiblings(t *testing.T) {
	node := body(
		&If{Cond: v("a"), Then: &If{Cond: v("b"), Then: v("c")}},
		call(nil, "after"),
	)
	want := "if a\n  if b\n    c\n  end\nend\nafter\n"
	if got := ToSource(node); got != want {
		t.Errorf("ToSource() = %q, want %q", got, want)
	}
}
