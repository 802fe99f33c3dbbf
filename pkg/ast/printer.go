package ast

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/billiam105/crystal/pkg/lexer"
)

// Options configures a Printer.
type Options struct {
	// EmitDocs prints each node's documentation comment before the node.
	EmitDocs bool
	// CollectPragmas records a source pragma per printed node that has a
	// concrete location, keyed by output byte offset.
	CollectPragmas bool
}

// Printer renders an AST back to Crystal source text. The output is one
// canonical form: feeding it through the parser reconstructs a tree
// structurally equal to the input.
//
// A Printer is single-use state for one traversal and must not be
// shared between goroutines. It never mutates the tree.
type Printer struct {
	w      io.Writer
	offset int

	indent    int
	macro     int // nesting depth of macro bodies
	insideLib bool

	opts    Options
	pragmas *PragmaTable
}

// NewPrinter creates a printer with default options.
func NewPrinter(w io.Writer) *Printer {
	return NewPrinterWith(w, Options{})
}

// NewPrinterWith creates a printer with the given options.
func NewPrinterWith(w io.Writer, opts Options) *Printer {
	p := &Printer{w: w, opts: opts}
	if opts.CollectPragmas {
		p.pragmas = NewPragmaTable()
	}
	return p
}

// Pragmas returns the collected pragma table, or nil when collection
// was not requested.
func (p *Printer) Pragmas() *PragmaTable {
	return p.pragmas
}

// PrintNode renders the tree rooted at n.
func (p *Printer) PrintNode(n Node) {
	p.printNode(n)
}

// ToSource renders a node to a string with default options.
func ToSource(n Node) string {
	var b strings.Builder
	NewPrinter(&b).PrintNode(n)
	return b.String()
}

/* ---------- low-level emission ---------- */

const indentUnit = "  "

func (p *Printer) write(s string) {
	n, _ := io.WriteString(p.w, s)
	p.offset += n
}

func (p *Printer) writef(format string, args ...any) {
	p.write(fmt.Sprintf(format, args...))
}

func (p *Printer) newline() { p.write("\n") }

func (p *Printer) pad() {
	for i := 0; i < p.indent; i++ {
		p.write(indentUnit)
	}
}

// withIndent brackets fn one indent level deeper. The decrement is
// deferred so the depth is restored even when fn panics.
func (p *Printer) withIndent(fn func()) {
	p.indent++
	defer func() { p.indent-- }()
	fn()
}

// insideMacro brackets fn inside one more level of macro body.
func (p *Printer) insideMacro(fn func()) {
	p.macro++
	defer func() { p.macro-- }()
	fn()
}

// outsideMacro suspends macro-body emission while fn renders a macro
// construct's control expression, which is ordinary code.
func (p *Printer) outsideMacro(fn func()) {
	saved := p.macro
	p.macro = 0
	defer func() { p.macro = saved }()
	fn()
}

// withLib brackets fn inside a lib body, where Pointer/StaticArray
// generics render with C-like sugar.
func (p *Printer) withLib(fn func()) {
	saved := p.insideLib
	p.insideLib = true
	defer func() { p.insideLib = saved }()
	fn()
}

/* ---------- dispatch ---------- */

// previsit runs on every printed node: documentation comment first,
// then a pragma at the offset of the node's first own byte.
func (p *Printer) previsit(n Node) {
	if p.opts.EmitDocs {
		if doc := n.DocComment(); doc != "" {
			for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
				p.write("# ")
				p.write(line)
				p.newline()
				p.pad()
			}
		}
	}
	if p.pragmas != nil {
		if loc := n.Location(); loc.Concrete() {
			p.pragmas.add(p.offset, Pragma{Filename: loc.Filename, Line: loc.Line, Column: loc.Column})
		}
	}
}

func (p *Printer) printNode(n Node) {
	if IsNop(n) {
		return
	}
	p.previsit(n)

	switch n := n.(type) {
	case *NilLiteral:
		p.write("nil")
	case *BoolLiteral:
		if n.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *NumberLiteral:
		p.printNumber(n)
	case *CharLiteral:
		p.printChar(n.Value)
	case *StringLiteral:
		p.write("\"")
		p.writeQuotedContents(n.Value)
		p.write("\"")
	case *StringInterpolation:
		p.write("\"")
		for _, e := range n.Expressions {
			if s, ok := e.(*StringLiteral); ok {
				p.writeQuotedContents(s.Value)
			} else {
				p.write("#{")
				p.printNode(e)
				p.write("}")
			}
		}
		p.write("\"")
	case *SymbolLiteral:
		p.write(":")
		if lexer.SymbolNeedsQuotes(n.Value) {
			p.write("\"")
			p.writeQuotedContents(n.Value)
			p.write("\"")
		} else {
			p.write(n.Value)
		}
	case *RegexLiteral:
		p.printRegex(n)
	case *RangeLiteral:
		p.inParens(n.From)
		if n.Exclusive {
			p.write("...")
		} else {
			p.write("..")
		}
		p.inParens(n.To)
	case *ArrayLiteral:
		p.printArray(n)
	case *HashLiteral:
		p.printHash(n)
	case *TupleLiteral:
		space := len(n.Elements) > 0 && startsWithBrace(n.Elements[0])
		p.write("{")
		p.maybeSpace(space)
		p.joinNodes(n.Elements)
		p.maybeSpace(space)
		p.write("}")
	case *NamedTupleLiteral:
		p.write("{")
		for i, e := range n.Entries {
			if i > 0 {
				p.write(", ")
			}
			p.writeNamedArgName(e.Key)
			p.write(": ")
			p.printNode(e.Value)
		}
		p.write("}")

	case *Var:
		p.write(n.Name)
	case *InstanceVar:
		p.write(n.Name)
	case *ClassVar:
		p.write(n.Name)
	case *Global:
		p.write(n.Name)
	case *Underscore:
		p.write("_")
	case *Self:
		p.write("self")
	case *Path:
		if n.Global {
			p.write("::")
		}
		p.write(strings.Join(n.Names, "::"))
	case *Generic:
		p.printGeneric(n)
	case *Union:
		for i, t := range n.Types {
			if i > 0 {
				p.write(" | ")
			}
			p.printNode(t)
		}
	case *Metaclass:
		p.printNode(n.Name)
		p.write(".class")
	case *ProcNotation:
		p.write("(")
		p.joinNodes(n.Inputs)
		p.write(" ->")
		if n.Output != nil {
			p.write(" ")
			p.printNode(n.Output)
		}
		p.write(")")
	case *ImplicitObj:
		// the receiver dot is emitted by the enclosing call
	case *MagicConstant:
		p.write(n.Name)

	case *Expressions:
		p.printExpressions(n)
	case *Call:
		p.printCall(n, false)
	case *NamedArgument:
		p.writeNamedArgName(n.Name)
		p.write(": ")
		p.printNode(n.Value)
	case *Block:
		p.printBlock(n)
	case *And:
		p.inParens(n.Left)
		p.write(" && ")
		p.inParens(n.Right)
	case *Or:
		p.inParens(n.Left)
		p.write(" || ")
		p.inParens(n.Right)
	case *Not:
		p.write("!")
		p.inParens(n.Expr)
	case *Assign:
		p.printNode(n.Target)
		p.write(" = ")
		p.printAssignValue(n.Value)
	case *OpAssign:
		p.printNode(n.Target)
		p.write(" ")
		p.write(n.Op)
		p.write("= ")
		p.printNode(n.Value)
	case *MultiAssign:
		p.joinNodes(n.Targets)
		p.write(" = ")
		p.joinNodes(n.Values)
	case *Splat:
		p.write("*")
		p.printNode(n.Expr)
	case *DoubleSplat:
		p.write("**")
		p.printNode(n.Expr)
	case *IsA:
		p.inParens(n.Obj)
		if n.NilCheck {
			p.write(".nil?")
		} else {
			p.write(".is_a?(")
			p.printNode(n.Const)
			p.write(")")
		}
	case *RespondsTo:
		p.inParens(n.Obj)
		p.write(".responds_to?(:")
		p.write(n.Name)
		p.write(")")
	case *Cast:
		p.inParens(n.Obj)
		p.write(".as(")
		p.printNode(n.To)
		p.write(")")
	case *NilableCast:
		p.inParens(n.Obj)
		p.write(".as?(")
		p.printNode(n.To)
		p.write(")")
	case *TypeOf:
		p.write("typeof(")
		p.joinNodes(n.Expressions)
		p.write(")")
	case *PointerOf:
		p.write("pointerof(")
		p.printNode(n.Expr)
		p.write(")")
	case *SizeOf:
		p.write("sizeof(")
		p.printNode(n.Expr)
		p.write(")")
	case *InstanceSizeOf:
		p.write("instance_sizeof(")
		p.printNode(n.Expr)
		p.write(")")
	case *OffsetOf:
		p.write("offsetof(")
		p.printNode(n.Type)
		p.write(", ")
		p.printNode(n.Offset)
		p.write(")")
	case *ReadInstanceVar:
		p.printNode(n.Obj)
		p.write(".")
		p.write(n.Name)
	case *UninitializedVar:
		p.printNode(n.Var)
		p.write(" = uninitialized ")
		p.printNode(n.DeclaredType)
	case *Out:
		p.write("out ")
		p.printNode(n.Expr)

	case *If:
		p.printIfLike("if", n.Cond, n.Then, n.Else)
	case *Unless:
		p.printIfLike("unless", n.Cond, n.Then, n.Else)
	case *While:
		p.printLoop("while", n.Cond, n.Body)
	case *Until:
		p.printLoop("until", n.Cond, n.Body)
	case *Case:
		p.printCase(n)
	case *When:
		p.printWhen(n, false)
	case *Select:
		p.printSelect(n)
	case *ExceptionHandler:
		p.printExceptionHandler(n)
	case *Rescue:
		p.printRescue(n)
	case *Return:
		p.printControl("return", n.Expr)
	case *Break:
		p.printControl("break", n.Expr)
	case *Next:
		p.printControl("next", n.Expr)
	case *Yield:
		if n.Scope != nil {
			p.write("with ")
			p.printNode(n.Scope)
			p.write(" ")
		}
		p.write("yield")
		if len(n.Exprs) > 0 {
			p.write(" ")
			p.joinNodes(n.Exprs)
		}

	case *Def:
		p.printDef(n)
	case *Arg:
		p.printArg(n)
	case *ClassDef:
		p.printClassDef(n)
	case *ModuleDef:
		p.write("module ")
		p.printNode(n.Name)
		p.printTypeVars(n.TypeVars)
		p.newline()
		p.printIndented(n.Body)
		p.pad()
		p.write("end")
	case *EnumDef:
		p.printEnumDef(n)
	case *AnnotationDef:
		p.write("annotation ")
		p.printNode(n.Name)
		p.newline()
		p.pad()
		p.write("end")
	case *Annotation:
		p.printAnnotation(n)
	case *Alias:
		p.write("alias ")
		p.printNode(n.Name)
		p.write(" = ")
		p.printNode(n.Value)
	case *Include:
		p.write("include ")
		p.printNode(n.Name)
	case *Extend:
		p.write("extend ")
		p.printNode(n.Name)
	case *Require:
		p.write("require \"")
		p.writeQuotedContents(n.Path)
		p.write("\"")
	case *VisibilityModifier:
		p.write(n.Modifier.String())
		p.write(" ")
		p.printNode(n.Expr)
	case *ProcLiteral:
		p.printProcLiteral(n)
	case *ProcPointer:
		p.printProcPointer(n)

	case *LibDef:
		p.write("lib ")
		p.write(n.Name)
		p.newline()
		p.withLib(func() { p.printIndented(n.Body) })
		p.pad()
		p.write("end")
	case *FunDef:
		p.printFunDef(n)
	case *TypeDef:
		p.write("type ")
		p.write(n.Name)
		p.write(" = ")
		p.printNode(n.TypeSpec)
	case *CStructOrUnionDef:
		if n.Union {
			p.write("union ")
		} else {
			p.write("struct ")
		}
		p.write(n.Name)
		p.newline()
		p.printIndented(n.Body)
		p.pad()
		p.write("end")
	case *ExternalVar:
		p.write("$")
		p.write(n.Name)
		if n.RealName != "" {
			p.write(" = ")
			p.write(n.RealName)
		}
		p.write(" : ")
		p.printNode(n.TypeSpec)

	case *Macro:
		p.printMacro(n)
	case *MacroExpression:
		if n.Output {
			p.write("{{ ")
		} else {
			p.write("{% ")
		}
		p.outsideMacro(func() { p.printNode(n.Exp) })
		if n.Output {
			p.write(" }}")
		} else {
			p.write(" %}")
		}
	case *MacroIf:
		p.write("{% if ")
		p.outsideMacro(func() { p.printNode(n.Cond) })
		p.write(" %}")
		p.insideMacro(func() { p.printNode(n.Then) })
		if !IsNop(n.Else) {
			p.write("{% else %}")
			p.insideMacro(func() { p.printNode(n.Else) })
		}
		p.write("{% end %}")
	case *MacroFor:
		p.write("{% for ")
		for i, v := range n.Vars {
			if i > 0 {
				p.write(", ")
			}
			p.write(v.Name)
		}
		p.write(" in ")
		p.outsideMacro(func() { p.printNode(n.Exp) })
		p.write(" %}")
		p.insideMacro(func() { p.printNode(n.Body) })
		p.write("{% end %}")
	case *MacroVar:
		p.write("%")
		p.write(n.Name)
		if len(n.Exps) > 0 {
			p.write("{")
			p.outsideMacro(func() { p.joinNodes(n.Exps) })
			p.write("}")
		}
	case *MacroLiteral:
		// a lone "{" or a "{%" prefix would lex as a macro escape
		if n.Value == "{" || strings.HasPrefix(n.Value, "{%") {
			p.write("\\")
		}
		p.write(n.Value)
	case *MacroVerbatim:
		p.write("{% verbatim do %}")
		p.insideMacro(func() { p.printNode(n.Exp) })
		p.write("{% end %}")

	case *Asm:
		p.printAsm(n)
	case *AsmOperand:
		p.printAsmOperand(n)

	default:
		panic(fmt.Sprintf("ast: no rendering for node type %T", n))
	}
}

/* ---------- statement framing ---------- */

func (p *Printer) printExpressions(n *Expressions) {
	if p.macro > 0 {
		for _, e := range n.Expressions {
			p.printNode(e)
		}
		return
	}

	last := len(n.Expressions) - 1
	emit := func() {
		for i, e := range n.Expressions {
			if IsNop(e) {
				continue
			}
			if !(n.Keyword == KeywordParen && i == 0) {
				p.pad()
			}
			p.printNode(e)
			if !(n.Keyword == KeywordParen && i == last) {
				p.newline()
			}
		}
	}

	switch n.Keyword {
	case KeywordParen:
		p.write("(")
		emit()
		p.write(")")
	case KeywordBegin:
		p.write("begin")
		p.newline()
		p.withIndent(emit)
		p.pad()
		p.write("end")
	default:
		emit()
	}
}

// printIndented renders a block body one level deeper. A plain
// Expressions sequence frames its own statements; anything else is a
// single indented statement line.
func (p *Printer) printIndented(body Node) {
	if IsNop(body) {
		return
	}
	if exprs, ok := body.(*Expressions); ok && exprs.Keyword == KeywordNone {
		p.withIndent(func() { p.printNode(exprs) })
		return
	}
	p.withIndent(func() {
		p.pad()
		p.printNode(body)
	})
	p.newline()
}

// printAssignValue frames a multi-statement value in begin/end so the
// result re-parses as a single expression.
func (p *Printer) printAssignValue(v Node) {
	if exprs, ok := v.(*Expressions); ok && exprs.Keyword == KeywordNone {
		p.write("begin")
		p.newline()
		p.printIndented(exprs)
		p.pad()
		p.write("end")
		return
	}
	p.printNode(v)
}

/* ---------- literals ---------- */

func (p *Printer) printNumber(n *NumberLiteral) {
	p.write(n.Value)
	// i32 is the default integer kind; a f64 spelling with a dot or
	// exponent is already unambiguously a float
	if n.Kind == KindI32 {
		return
	}
	if n.Kind == KindF64 && strings.ContainsAny(n.Value, ".e") {
		return
	}
	p.write("_")
	p.write(n.Kind.String())
}

func (p *Printer) printChar(r rune) {
	p.write("'")
	switch r {
	case '\'':
		p.write(`\'`)
	case '\\':
		p.write(`\\`)
	case '\a':
		p.write(`\a`)
	case '\b':
		p.write(`\b`)
	case 0x1b:
		p.write(`\e`)
	case '\f':
		p.write(`\f`)
	case '\n':
		p.write(`\n`)
	case '\r':
		p.write(`\r`)
	case '\t':
		p.write(`\t`)
	case '\v':
		p.write(`\v`)
	case 0:
		p.write(`\0`)
	default:
		if unicode.IsPrint(r) {
			p.write(string(r))
		} else {
			p.writef(`\u{%x}`, r)
		}
	}
	p.write("'")
}

func (p *Printer) writeQuotedContents(s string) {
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch r {
		case '\\':
			p.write(`\\`)
		case '"':
			p.write(`\"`)
		case '\a':
			p.write(`\a`)
		case '\b':
			p.write(`\b`)
		case 0x1b:
			p.write(`\e`)
		case '\f':
			p.write(`\f`)
		case '\n':
			p.write(`\n`)
		case '\r':
			p.write(`\r`)
		case '\t':
			p.write(`\t`)
		case '\v':
			p.write(`\v`)
		case 0:
			p.write(`\0`)
		case '#':
			if i+1 < len(rs) && rs[i+1] == '{' {
				p.write(`\#`)
			} else {
				p.write("#")
			}
		default:
			if r < 0x20 || r == 0x7f {
				p.writef(`\u{%x}`, r)
			} else {
				p.write(string(r))
			}
		}
	}
}

func (p *Printer) printRegex(n *RegexLiteral) {
	switch v := n.Value.(type) {
	case *StringLiteral:
		if v.Value == "" {
			// // would lex as an empty regex or a pair of divisions
			p.write("%r()")
		} else {
			p.write("/")
			p.writeRegexSource(v.Value, true)
			p.write("/")
		}
	case *StringInterpolation:
		p.write("/")
		for i, e := range v.Expressions {
			if s, ok := e.(*StringLiteral); ok {
				p.writeRegexSource(s.Value, i == 0)
			} else {
				p.write("#{")
				p.printNode(e)
				p.write("}")
			}
		}
		p.write("/")
	default:
		panic(fmt.Sprintf("ast: regex wraps %T, expected string or interpolation", n.Value))
	}
	if n.Flags&RegexIgnoreCase != 0 {
		p.write("i")
	}
	if n.Flags&RegexMultiline != 0 {
		p.write("m")
	}
	if n.Flags&RegexExtended != 0 {
		p.write("x")
	}
}

func (p *Printer) writeRegexSource(s string, first bool) {
	for i, r := range s {
		// a bare leading space is lexically significant
		if first && i == 0 && unicode.IsSpace(r) {
			p.write("\\")
		}
		if r == '/' {
			p.write(`\/`)
		} else {
			p.write(string(r))
		}
	}
}

/* ---------- containers ---------- */

// startsWithBrace reports whether the node's rendering opens with '{',
// which would collide with the enclosing literal's own brace.
func startsWithBrace(n Node) bool {
	switch n.(type) {
	case *TupleLiteral, *NamedTupleLiteral, *HashLiteral:
		return true
	}
	return false
}

func (p *Printer) maybeSpace(space bool) {
	if space {
		p.write(" ")
	}
}

func (p *Printer) printArray(n *ArrayLiteral) {
	if n.Name != nil {
		p.printNode(n.Name)
		p.write(" {")
		p.joinNodes(n.Elements)
		p.write("}")
	} else {
		p.write("[")
		p.joinNodes(n.Elements)
		p.write("]")
	}
	if n.Of != nil {
		p.write(" of ")
		p.printNode(n.Of)
	}
}

func (p *Printer) printHash(n *HashLiteral) {
	entries := func() {
		for i, e := range n.Entries {
			if i > 0 {
				p.write(", ")
			}
			p.printNode(e.Key)
			p.write(" => ")
			p.printNode(e.Value)
		}
	}
	if n.Name != nil {
		p.printNode(n.Name)
		p.write(" {")
		entries()
		p.write("}")
	} else {
		space := len(n.Entries) > 0 && startsWithBrace(n.Entries[0].Key)
		p.write("{")
		p.maybeSpace(space)
		entries()
		p.maybeSpace(space)
		p.write("}")
	}
	if n.Of != nil {
		p.write(" of ")
		p.printNode(n.Of.Key)
		p.write(" => ")
		p.printNode(n.Of.Value)
	}
}

/* ---------- calls and operators ---------- */

// needParens classifies whether a node must be parenthesized when used
// as a receiver or operand. One rule, applied uniformly, keeps the
// output re-parseable.
func needParens(obj Node) bool {
	switch o := obj.(type) {
	case *Call:
		if len(o.Args) == 0 {
			return !lexer.IsIdentStart(o.Name)
		}
		switch o.Name {
		case "[]", "[]?", "<", "<=", ">", ">=":
			return false
		}
		return true
	case *Var, *NilLiteral, *BoolLiteral, *CharLiteral, *NumberLiteral,
		*StringLiteral, *StringInterpolation, *Path, *Generic,
		*InstanceVar, *ClassVar, *Global, *ImplicitObj, *TupleLiteral,
		*NamedTupleLiteral, *IsA, *Nop:
		return false
	case *ArrayLiteral:
		return o.Of != nil
	case *HashLiteral:
		return o.Of != nil
	default:
		return true
	}
}

// inParens prints n, parenthesized when the classifier requires it.
func (p *Printer) inParens(n Node) {
	if IsNop(n) {
		return
	}
	p.printObj(n, needParens(n))
}

func (p *Printer) printObj(obj Node, parens bool) {
	if parens {
		p.write("(")
		p.printNode(obj)
		p.write(")")
	} else {
		p.printNode(obj)
	}
}

func isUnaryOperator(name string) bool {
	switch name {
	case "+", "-", "~", "&+", "&-":
		return true
	}
	return false
}

func (p *Printer) printCall(node *Call, ignoreObj bool) {
	var obj Node
	if !ignoreObj {
		obj = node.Obj
	}
	if node.Global {
		p.write("::")
	}
	objParens := obj != nil && needParens(obj)
	bare := len(node.NamedArgs) == 0 && node.BlockArg == nil && node.Block == nil

	switch {
	case obj != nil && (node.Name == "[]" || node.Name == "[]?") && node.Block == nil:
		p.printObj(obj, objParens)
		p.write("[")
		p.printCallArgs(node, len(node.Args))
		if node.Name == "[]" {
			p.write("]")
		} else {
			p.write("]?")
		}

	case obj != nil && node.Name == "[]=" && len(node.Args) > 0 && node.Block == nil:
		p.printObj(obj, objParens)
		p.write("[")
		p.joinNodes(node.Args[:len(node.Args)-1])
		p.write("] = ")
		p.printNode(node.Args[len(node.Args)-1])

	case obj != nil && isUnaryOperator(node.Name) && len(node.Args) == 0 && bare:
		p.write(node.Name)
		p.printObj(obj, objParens)

	case obj != nil && !lexer.IsIdentStart(node.Name) && node.Name != "~" &&
		len(node.Args) == 1 && bare:
		p.printObj(obj, objParens)
		p.write(" ")
		p.write(node.Name)
		p.write(" ")
		p.inParens(node.Args[0])

	default:
		if obj != nil {
			p.printObj(obj, objParens)
			p.write(".")
		}
		if lexer.IsSetter(node.Name) && bare {
			p.write(strings.TrimSuffix(node.Name, "="))
			p.write(" = ")
			p.joinNodes(node.Args)
		} else {
			p.write(node.Name)
			argParens := node.HasParentheses || len(node.Args) > 0 ||
				node.BlockArg != nil || len(node.NamedArgs) > 0
			if argParens {
				p.write("(")
			}
			p.printCallArgs(node, len(node.Args))
			if argParens {
				p.write(")")
			}
		}
	}

	if node.Block != nil {
		if body := shortBlockBody(node.Block); body != nil {
			p.write(" &.")
			p.printCall(body, true)
		} else {
			p.write(" ")
			p.printBlock(node.Block)
		}
	}
}

// printCallArgs prints the first nargs positional arguments, then named
// arguments and the block argument.
func (p *Printer) printCallArgs(node *Call, nargs int) {
	printed := false
	for i := 0; i < nargs; i++ {
		if printed {
			p.write(", ")
		}
		p.printNode(node.Args[i])
		printed = true
	}
	for _, na := range node.NamedArgs {
		if printed {
			p.write(", ")
		}
		p.printNode(na)
		printed = true
	}
	if node.BlockArg != nil {
		if printed {
			p.write(", ")
		}
		p.write("&")
		p.printNode(node.BlockArg)
	}
}

// shortBlockBody returns the call a block forwards to when the block is
// the parser-synthesized one-parameter shorthand, else nil. The rewrite
// only fires when the single parameter is synthesized and the body is
// exactly one call whose receiver is that parameter.
func shortBlockBody(block *Block) *Call {
	if len(block.Args) != 1 {
		return nil
	}
	arg := block.Args[0]
	if !arg.Synthesized {
		return nil
	}
	call, ok := block.Body.(*Call)
	if !ok {
		return nil
	}
	recv, ok := call.Obj.(*Var)
	if !ok || recv.Name != arg.Name {
		return nil
	}
	return call
}

func (p *Printer) printBlock(n *Block) {
	p.write("do")
	if len(n.Args) > 0 {
		p.write(" |")
		for i, a := range n.Args {
			if i > 0 {
				p.write(", ")
			}
			if i == n.SplatIndex {
				p.write("*")
			}
			p.write(a.Name)
		}
		p.write("|")
	}
	p.newline()
	p.printIndented(n.Body)
	p.pad()
	p.write("end")
}

func (p *Printer) writeNamedArgName(name string) {
	if lexer.NamedArgumentNeedsQuotes(name) {
		p.write("\"")
		p.writeQuotedContents(name)
		p.write("\"")
	} else {
		p.write(name)
	}
}

/* ---------- control flow ---------- */

func (p *Printer) printIfLike(keyword string, cond, then, els Node) {
	p.write(keyword)
	p.write(" ")
	p.printNode(cond)
	p.newline()
	p.printIndented(then)
	if !IsNop(els) {
		p.pad()
		p.write("else")
		p.newline()
		p.printIndented(els)
	}
	p.pad()
	p.write("end")
}

func (p *Printer) printLoop(keyword string, cond, body Node) {
	p.write(keyword)
	p.write(" ")
	p.printNode(cond)
	p.newline()
	p.printIndented(body)
	p.pad()
	p.write("end")
}

func (p *Printer) printCase(n *Case) {
	p.write("case")
	if !IsNop(n.Cond) {
		p.write(" ")
		p.printNode(n.Cond)
	}
	p.newline()
	for _, w := range n.Whens {
		p.pad()
		p.printWhen(w, n.Exhaustive)
	}
	if !IsNop(n.Else) {
		p.pad()
		p.write("else")
		p.newline()
		p.printIndented(n.Else)
	}
	p.pad()
	p.write("end")
}

func (p *Printer) printWhen(w *When, exhaustive bool) {
	if exhaustive {
		p.write("in ")
	} else {
		p.write("when ")
	}
	p.joinNodes(w.Conds)
	p.newline()
	p.printIndented(w.Body)
}

func (p *Printer) printSelect(n *Select) {
	p.write("select")
	p.newline()
	for _, w := range n.Whens {
		p.pad()
		p.printWhen(w, false)
	}
	if !IsNop(n.Else) {
		p.pad()
		p.write("else")
		p.newline()
		p.printIndented(n.Else)
	}
	p.pad()
	p.write("end")
}

func (p *Printer) printExceptionHandler(n *ExceptionHandler) {
	p.write("begin")
	p.newline()
	p.printIndented(n.Body)
	for _, r := range n.Rescues {
		p.pad()
		p.printRescue(r)
	}
	if !IsNop(n.Else) {
		p.pad()
		p.write("else")
		p.newline()
		p.printIndented(n.Else)
	}
	if !IsNop(n.Ensure) {
		p.pad()
		p.write("ensure")
		p.newline()
		p.printIndented(n.Ensure)
	}
	p.pad()
	p.write("end")
}

func (p *Printer) printRescue(n *Rescue) {
	p.write("rescue")
	if n.Name != "" {
		p.write(" ")
		p.write(n.Name)
	}
	if len(n.Types) > 0 {
		p.write(" : ")
		for i, t := range n.Types {
			if i > 0 {
				p.write(" | ")
			}
			p.printNode(t)
		}
	}
	p.newline()
	p.printIndented(n.Body)
}

func (p *Printer) printControl(keyword string, expr Node) {
	p.write(keyword)
	if !IsNop(expr) {
		p.write(" ")
		p.printNode(expr)
	}
}

/* ---------- definitions ---------- */

func (p *Printer) printDef(n *Def) {
	if n.Abstract {
		p.write("abstract ")
	}
	p.write("def ")
	if n.Receiver != nil {
		p.printNode(n.Receiver)
		p.write(".")
	}
	p.write(n.Name)
	p.printDefSignature(n.Args, n.SplatIndex, n.DoubleSplat, n.BlockArg)
	if n.ReturnType != nil {
		p.write(" : ")
		p.printNode(n.ReturnType)
	}
	if len(n.FreeVars) > 0 {
		p.write(" forall ")
		p.write(strings.Join(n.FreeVars, ", "))
	}
	if n.Abstract {
		return
	}
	p.newline()
	p.printIndented(n.Body)
	p.pad()
	p.write("end")
}

func (p *Printer) printDefSignature(args []*Arg, splatIndex int, doubleSplat, blockArg *Arg) {
	if len(args) == 0 && doubleSplat == nil && blockArg == nil {
		return
	}
	p.write("(")
	printed := false
	for i, a := range args {
		if printed {
			p.write(", ")
		}
		if i == splatIndex {
			p.write("*")
		}
		p.printArg(a)
		printed = true
	}
	if doubleSplat != nil {
		if printed {
			p.write(", ")
		}
		p.write("**")
		p.printArg(doubleSplat)
		printed = true
	}
	if blockArg != nil {
		if printed {
			p.write(", ")
		}
		p.write("&")
		p.printArg(blockArg)
	}
	p.write(")")
}

func (p *Printer) printArg(n *Arg) {
	if n.ExternalName != "" && n.ExternalName != n.Name {
		p.writeNamedArgName(n.ExternalName)
		p.write(" ")
	}
	p.write(n.Name)
	if n.Restriction != nil {
		p.write(" : ")
		p.printNode(n.Restriction)
	}
	if n.DefaultValue != nil {
		p.write(" = ")
		p.printNode(n.DefaultValue)
	}
}

func (p *Printer) printClassDef(n *ClassDef) {
	if n.Abstract {
		p.write("abstract ")
	}
	if n.Struct {
		p.write("struct ")
	} else {
		p.write("class ")
	}
	p.printNode(n.Name)
	p.printTypeVars(n.TypeVars)
	if n.Superclass != nil {
		p.write(" < ")
		p.printNode(n.Superclass)
	}
	p.newline()
	p.printIndented(n.Body)
	p.pad()
	p.write("end")
}

func (p *Printer) printTypeVars(vars []string) {
	if len(vars) == 0 {
		return
	}
	p.write("(")
	p.write(strings.Join(vars, ", "))
	p.write(")")
}

func (p *Printer) printEnumDef(n *EnumDef) {
	p.write("enum ")
	p.printNode(n.Name)
	if n.BaseType != nil {
		p.write(" : ")
		p.printNode(n.BaseType)
	}
	p.newline()
	p.withIndent(func() {
		for _, m := range n.Members {
			if IsNop(m) {
				continue
			}
			p.pad()
			p.printNode(m)
			p.newline()
		}
	})
	p.pad()
	p.write("end")
}

func (p *Printer) printAnnotation(n *Annotation) {
	p.write("@[")
	p.printNode(n.Path)
	if len(n.Args) > 0 || len(n.NamedArgs) > 0 {
		p.write("(")
		printed := false
		for _, a := range n.Args {
			if printed {
				p.write(", ")
			}
			p.printNode(a)
			printed = true
		}
		for _, na := range n.NamedArgs {
			if printed {
				p.write(", ")
			}
			p.printNode(na)
			printed = true
		}
		p.write(")")
	}
	p.write("]")
}

func (p *Printer) printProcLiteral(n *ProcLiteral) {
	p.write("->")
	d := n.Def
	if len(d.Args) > 0 {
		p.write("(")
		for i, a := range d.Args {
			if i > 0 {
				p.write(", ")
			}
			p.printArg(a)
		}
		p.write(")")
	}
	if d.ReturnType != nil {
		p.write(" : ")
		p.printNode(d.ReturnType)
	}
	p.write(" do")
	p.newline()
	p.printIndented(d.Body)
	p.pad()
	p.write("end")
}

func (p *Printer) printProcPointer(n *ProcPointer) {
	p.write("->")
	if n.Global {
		p.write("::")
	}
	if n.Obj != nil {
		p.printNode(n.Obj)
		p.write(".")
	}
	p.write(n.Name)
	if len(n.Args) > 0 {
		p.write("(")
		p.joinNodes(n.Args)
		p.write(")")
	}
}

func (p *Printer) printFunDef(n *FunDef) {
	p.write("fun ")
	p.write(n.Name)
	if n.RealName != "" && n.RealName != n.Name {
		p.write(" = ")
		p.writeNamedArgName(n.RealName)
	}
	if len(n.Args) > 0 || n.Varargs {
		p.write("(")
		for i, a := range n.Args {
			if i > 0 {
				p.write(", ")
			}
			p.printArg(a)
		}
		if n.Varargs {
			if len(n.Args) > 0 {
				p.write(", ")
			}
			p.write("...")
		}
		p.write(")")
	}
	if n.ReturnType != nil {
		p.write(" : ")
		p.printNode(n.ReturnType)
	}
	if n.Body != nil {
		p.newline()
		p.printIndented(n.Body)
		p.pad()
		p.write("end")
	}
}

/* ---------- generics & lib sugar ---------- */

func (p *Printer) printGeneric(n *Generic) {
	if p.insideLib && len(n.NamedArgs) == 0 {
		if path, ok := n.Name.(*Path); ok && !path.Global && len(path.Names) == 1 {
			switch path.Names[0] {
			case "Pointer":
				if len(n.TypeVars) == 1 {
					p.printNode(n.TypeVars[0])
					p.write("*")
					return
				}
			case "StaticArray":
				if len(n.TypeVars) == 2 {
					p.printNode(n.TypeVars[0])
					p.write("[")
					p.printNode(n.TypeVars[1])
					p.write("]")
					return
				}
			}
		}
	}
	p.printNode(n.Name)
	p.write("(")
	printed := false
	for _, t := range n.TypeVars {
		if printed {
			p.write(", ")
		}
		p.printNode(t)
		printed = true
	}
	for _, na := range n.NamedArgs {
		if printed {
			p.write(", ")
		}
		p.printNode(na)
		printed = true
	}
	p.write(")")
}

/* ---------- macros ---------- */

func (p *Printer) printMacro(n *Macro) {
	p.write("macro ")
	p.write(n.Name)
	p.printDefSignature(n.Args, n.SplatIndex, n.DoubleSplat, n.BlockArg)
	p.newline()
	p.insideMacro(func() { p.printNode(n.Body) })
	p.write("end")
}

/* ---------- inline assembly ---------- */

func (p *Printer) printAsm(n *Asm) {
	p.write("asm(\"")
	p.writeQuotedContents(n.Text)
	p.write("\"")

	var flags []string
	if n.Volatile {
		flags = append(flags, "volatile")
	}
	if n.AlignStack {
		flags = append(flags, "alignstack")
	}
	if n.Intel {
		flags = append(flags, "intel")
	}
	if n.CanThrow {
		flags = append(flags, "unwind")
	}

	sections := 0
	switch {
	case len(flags) > 0:
		sections = 4
	case len(n.Clobbers) > 0:
		sections = 3
	case len(n.Inputs) > 0:
		sections = 2
	case len(n.Outputs) > 0:
		sections = 1
	}

	for i := 1; i <= sections; i++ {
		p.write(" :")
		switch i {
		case 1:
			if len(n.Outputs) > 0 {
				p.write(" ")
				for j, o := range n.Outputs {
					if j > 0 {
						p.write(", ")
					}
					p.printAsmOperand(o)
				}
			}
		case 2:
			if len(n.Inputs) > 0 {
				p.write(" ")
				for j, o := range n.Inputs {
					if j > 0 {
						p.write(", ")
					}
					p.printAsmOperand(o)
				}
			}
		case 3:
			if len(n.Clobbers) > 0 {
				p.write(" ")
				for j, c := range n.Clobbers {
					if j > 0 {
						p.write(", ")
					}
					p.write("\"")
					p.writeQuotedContents(c)
					p.write("\"")
				}
			}
		case 4:
			p.write(" ")
			for j, f := range flags {
				if j > 0 {
					p.write(", ")
				}
				p.write("\"")
				p.write(f)
				p.write("\"")
			}
		}
	}
	p.write(")")
}

func (p *Printer) printAsmOperand(n *AsmOperand) {
	p.write("\"")
	p.writeQuotedContents(n.Constraint)
	p.write("\"(")
	p.printNode(n.Exp)
	p.write(")")
}

/* ---------- shared helpers ---------- */

func (p *Printer) joinNodes(nodes []Node) {
	for i, n := range nodes {
		if i > 0 {
			p.write(", ")
		}
		p.printNode(n)
	}
}
