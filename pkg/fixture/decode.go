// Package fixture decodes YAML descriptions of syntax trees into ast
// nodes. Fixtures drive the golden tests and the command line tool;
// they are a construction surface, not a parser.
//
// Every node is a mapping with a "node" kind plus kind-specific fields:
//
//	node: call
//	name: upcase
//	obj: {node: var, name: x}
//
// Any node may carry "loc: {file, line, col}" and "doc: text".
package fixture

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/billiam105/crystal/pkg/ast"
)

// Decode parses a YAML document into a syntax tree.
func Decode(data []byte) (ast.Node, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	d := &decoder{}
	n := d.node(raw)
	if d.err != nil {
		return nil, d.err
	}
	return n, nil
}

// decoder accumulates the first error and lets the field helpers stay
// expression-shaped instead of threading an error through every call.
type decoder struct {
	err error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("fixture: "+format, args...)
	}
}

/* ---------- field helpers ---------- */

func (d *decoder) str(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail("field %q: expected string, got %T", key, v)
		return ""
	}
	return s
}

func (d *decoder) strReq(m map[string]any, key string) string {
	if _, ok := m[key]; !ok {
		d.fail("missing field %q", key)
		return ""
	}
	return d.str(m, key)
}

func (d *decoder) boolean(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		d.fail("field %q: expected bool, got %T", key, v)
		return false
	}
	return b
}

func (d *decoder) integer(m map[string]any, key string, def int) int {
	v, ok := m[key]
	if !ok {
		return def
	}
	i, ok := v.(int)
	if !ok {
		d.fail("field %q: expected int, got %T", key, v)
		return def
	}
	return i
}

func (d *decoder) strings(m map[string]any, key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		d.fail("field %q: expected list, got %T", key, v)
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		s, ok := e.(string)
		if !ok {
			d.fail("field %q: expected string element, got %T", key, e)
			return nil
		}
		out = append(out, s)
	}
	return out
}

// child decodes an optional node field; absent means nil.
func (d *decoder) child(m map[string]any, key string) ast.Node {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	return d.node(v)
}

func (d *decoder) childReq(m map[string]any, key string) ast.Node {
	if _, ok := m[key]; !ok {
		d.fail("missing field %q", key)
		return nil
	}
	return d.child(m, key)
}

func (d *decoder) children(m map[string]any, key string) []ast.Node {
	v, ok := m[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		d.fail("field %q: expected list, got %T", key, v)
		return nil
	}
	out := make([]ast.Node, 0, len(list))
	for _, e := range list {
		out = append(out, d.node(e))
	}
	return out
}

func (d *decoder) mapping(raw any, what string) map[string]any {
	m, ok := raw.(map[string]any)
	if !ok {
		d.fail("%s: expected mapping, got %T", what, raw)
		return nil
	}
	return m
}

func (d *decoder) meta(m map[string]any, n ast.Node) {
	info := n.(interface{ Meta() *ast.NodeInfo }).Meta()
	if v, ok := m["loc"]; ok {
		lm := d.mapping(v, "loc")
		if lm != nil {
			info.Loc = &ast.Location{
				Filename: d.str(lm, "file"),
				Line:     d.integer(lm, "line", 0),
				Column:   d.integer(lm, "col", 0),
			}
		}
	}
	info.Doc = d.str(m, "doc")
}

/* ---------- composite helpers ---------- */

func numberKind(s string) (ast.NumberKind, bool) {
	kinds := map[string]ast.NumberKind{
		"i8": ast.KindI8, "i16": ast.KindI16, "i32": ast.KindI32,
		"i64": ast.KindI64, "i128": ast.KindI128,
		"u8": ast.KindU8, "u16": ast.KindU16, "u32": ast.KindU32,
		"u64": ast.KindU64, "u128": ast.KindU128,
		"f32": ast.KindF32, "f64": ast.KindF64,
	}
	k, ok := kinds[s]
	return k, ok
}

func (d *decoder) regexFlags(m map[string]any) ast.RegexFlags {
	var flags ast.RegexFlags
	for _, f := range d.strings(m, "flags") {
		switch f {
		case "i":
			flags |= ast.RegexIgnoreCase
		case "m":
			flags |= ast.RegexMultiline
		case "x":
			flags |= ast.RegexExtended
		default:
			d.fail("regex flag %q: expected i, m or x", f)
		}
	}
	return flags
}

func (d *decoder) hashEntry(raw any) ast.HashEntry {
	m := d.mapping(raw, "hash entry")
	if m == nil {
		return ast.HashEntry{}
	}
	return ast.HashEntry{Key: d.childReq(m, "key"), Value: d.childReq(m, "value")}
}

func (d *decoder) hashEntries(m map[string]any, key string) []ast.HashEntry {
	v, ok := m[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		d.fail("field %q: expected list, got %T", key, v)
		return nil
	}
	out := make([]ast.HashEntry, 0, len(list))
	for _, e := range list {
		out = append(out, d.hashEntry(e))
	}
	return out
}

// blockVar accepts either a bare name or a full var mapping.
func (d *decoder) blockVar(raw any) *ast.Var {
	if s, ok := raw.(string); ok {
		return &ast.Var{Name: s}
	}
	m := d.mapping(raw, "block parameter")
	if m == nil {
		return &ast.Var{}
	}
	return &ast.Var{Name: d.strReq(m, "name"), Synthesized: d.boolean(m, "synthesized")}
}

func (d *decoder) blockVars(m map[string]any, key string) []*ast.Var {
	v, ok := m[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		d.fail("field %q: expected list, got %T", key, v)
		return nil
	}
	out := make([]*ast.Var, 0, len(list))
	for _, e := range list {
		out = append(out, d.blockVar(e))
	}
	return out
}

func (d *decoder) arg(raw any) *ast.Arg {
	m := d.mapping(raw, "parameter")
	if m == nil {
		return &ast.Arg{}
	}
	return &ast.Arg{
		Name:         d.strReq(m, "name"),
		ExternalName: d.str(m, "external_name"),
		DefaultValue: d.child(m, "default"),
		Restriction:  d.child(m, "restriction"),
	}
}

func (d *decoder) optArg(m map[string]any, key string) *ast.Arg {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	return d.arg(v)
}

func (d *decoder) args(m map[string]any, key string) []*ast.Arg {
	v, ok := m[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		d.fail("field %q: expected list, got %T", key, v)
		return nil
	}
	out := make([]*ast.Arg, 0, len(list))
	for _, e := range list {
		out = append(out, d.arg(e))
	}
	return out
}

func (d *decoder) namedArgs(m map[string]any, key string) []*ast.NamedArgument {
	v, ok := m[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		d.fail("field %q: expected list, got %T", key, v)
		return nil
	}
	out := make([]*ast.NamedArgument, 0, len(list))
	for _, e := range list {
		em := d.mapping(e, "named argument")
		if em == nil {
			return nil
		}
		out = append(out, &ast.NamedArgument{
			Name:  d.strReq(em, "name"),
			Value: d.childReq(em, "value"),
		})
	}
	return out
}

func (d *decoder) block(m map[string]any, key string) *ast.Block {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	bm := d.mapping(v, "block")
	if bm == nil {
		return nil
	}
	return &ast.Block{
		Args:       d.blockVars(bm, "args"),
		Body:       d.childReq(bm, "body"),
		SplatIndex: d.integer(bm, "splat_index", -1),
	}
}

func (d *decoder) whens(m map[string]any, key string) []*ast.When {
	v, ok := m[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		d.fail("field %q: expected list, got %T", key, v)
		return nil
	}
	out := make([]*ast.When, 0, len(list))
	for _, e := range list {
		wm := d.mapping(e, "when clause")
		if wm == nil {
			return nil
		}
		out = append(out, &ast.When{
			Conds: d.children(wm, "conds"),
			Body:  d.childReq(wm, "body"),
		})
	}
	return out
}

func (d *decoder) rescues(m map[string]any, key string) []*ast.Rescue {
	v, ok := m[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		d.fail("field %q: expected list, got %T", key, v)
		return nil
	}
	out := make([]*ast.Rescue, 0, len(list))
	for _, e := range list {
		rm := d.mapping(e, "rescue clause")
		if rm == nil {
			return nil
		}
		out = append(out, &ast.Rescue{
			Body:  d.childReq(rm, "body"),
			Types: d.children(rm, "types"),
			Name:  d.str(rm, "name"),
		})
	}
	return out
}

func (d *decoder) asmOperand(raw any) *ast.AsmOperand {
	m := d.mapping(raw, "asm operand")
	if m == nil {
		return &ast.AsmOperand{}
	}
	return &ast.AsmOperand{
		Constraint: d.strReq(m, "constraint"),
		Exp:        d.childReq(m, "exp"),
	}
}

func (d *decoder) asmOperands(m map[string]any, key string) []*ast.AsmOperand {
	v, ok := m[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		d.fail("field %q: expected list, got %T", key, v)
		return nil
	}
	out := make([]*ast.AsmOperand, 0, len(list))
	for _, e := range list {
		out = append(out, d.asmOperand(e))
	}
	return out
}

func (d *decoder) def(m map[string]any) *ast.Def {
	return &ast.Def{
		Name:        d.str(m, "name"),
		Args:        d.args(m, "args"),
		Body:        d.child(m, "body"),
		Receiver:    d.child(m, "receiver"),
		BlockArg:    d.optArg(m, "block_arg"),
		ReturnType:  d.child(m, "return_type"),
		SplatIndex:  d.integer(m, "splat_index", -1),
		DoubleSplat: d.optArg(m, "double_splat"),
		FreeVars:    d.strings(m, "free_vars"),
		Abstract:    d.boolean(m, "abstract"),
	}
}

/* ---------- the kind switch ---------- */

func (d *decoder) node(raw any) ast.Node {
	if d.err != nil {
		return nil
	}
	m := d.mapping(raw, "node")
	if m == nil {
		return nil
	}
	kind := d.strReq(m, "node")

	var n ast.Node
	switch kind {
	case "nop":
		n = &ast.Nop{}
	case "nil":
		n = &ast.NilLiteral{}
	case "bool":
		n = &ast.BoolLiteral{Value: d.boolean(m, "value")}
	case "number":
		k := ast.KindI32
		if s := d.str(m, "kind"); s != "" {
			var ok bool
			if k, ok = numberKind(s); !ok {
				d.fail("number kind %q: unknown", s)
			}
		}
		n = &ast.NumberLiteral{Value: d.strReq(m, "value"), Kind: k}
	case "char":
		s := []rune(d.strReq(m, "value"))
		if len(s) != 1 {
			d.fail("char value %q: expected one rune", string(s))
			s = []rune{0}
		}
		n = &ast.CharLiteral{Value: s[0]}
	case "string":
		n = &ast.StringLiteral{Value: d.str(m, "value")}
	case "string_interpolation":
		n = &ast.StringInterpolation{Expressions: d.children(m, "expressions")}
	case "symbol":
		n = &ast.SymbolLiteral{Value: d.strReq(m, "value")}
	case "regex":
		n = &ast.RegexLiteral{Value: d.childReq(m, "value"), Flags: d.regexFlags(m)}
	case "range":
		n = &ast.RangeLiteral{
			From:      d.childReq(m, "from"),
			To:        d.childReq(m, "to"),
			Exclusive: d.boolean(m, "exclusive"),
		}
	case "array":
		n = &ast.ArrayLiteral{
			Elements: d.children(m, "elements"),
			Of:       d.child(m, "of"),
			Name:     d.child(m, "name"),
		}
	case "hash":
		var of *ast.HashEntry
		if v, ok := m["of"]; ok {
			e := d.hashEntry(v)
			of = &e
		}
		n = &ast.HashLiteral{
			Entries: d.hashEntries(m, "entries"),
			Of:      of,
			Name:    d.child(m, "name"),
		}
	case "tuple":
		n = &ast.TupleLiteral{Elements: d.children(m, "elements")}
	case "named_tuple":
		var entries []ast.NamedTupleEntry
		if v, ok := m["entries"]; ok {
			list, ok := v.([]any)
			if !ok {
				d.fail("field \"entries\": expected list, got %T", v)
			}
			for _, e := range list {
				em := d.mapping(e, "named tuple entry")
				if em == nil {
					break
				}
				entries = append(entries, ast.NamedTupleEntry{
					Key:   d.strReq(em, "key"),
					Value: d.childReq(em, "value"),
				})
			}
		}
		n = &ast.NamedTupleLiteral{Entries: entries}

	case "var":
		n = &ast.Var{Name: d.strReq(m, "name"), Synthesized: d.boolean(m, "synthesized")}
	case "instance_var":
		n = &ast.InstanceVar{Name: d.strReq(m, "name")}
	case "class_var":
		n = &ast.ClassVar{Name: d.strReq(m, "name")}
	case "global":
		n = &ast.Global{Name: d.strReq(m, "name")}
	case "underscore":
		n = &ast.Underscore{}
	case "self":
		n = &ast.Self{}
	case "path":
		n = &ast.Path{Names: d.strings(m, "names"), Global: d.boolean(m, "global")}
	case "generic":
		n = &ast.Generic{
			Name:      d.childReq(m, "name"),
			TypeVars:  d.children(m, "type_vars"),
			NamedArgs: d.namedArgs(m, "named_args"),
		}
	case "union":
		n = &ast.Union{Types: d.children(m, "types")}
	case "metaclass":
		n = &ast.Metaclass{Name: d.childReq(m, "name")}
	case "proc_notation":
		n = &ast.ProcNotation{Inputs: d.children(m, "inputs"), Output: d.child(m, "output")}
	case "implicit_obj":
		n = &ast.ImplicitObj{}
	case "magic_constant":
		n = &ast.MagicConstant{Name: d.strReq(m, "name")}

	case "expressions":
		keyword := ast.KeywordNone
		switch s := d.str(m, "keyword"); s {
		case "":
		case "paren":
			keyword = ast.KeywordParen
		case "begin":
			keyword = ast.KeywordBegin
		default:
			d.fail("expressions keyword %q: expected paren or begin", s)
		}
		n = &ast.Expressions{Expressions: d.children(m, "expressions"), Keyword: keyword}
	case "call":
		n = &ast.Call{
			Obj:            d.child(m, "obj"),
			Name:           d.strReq(m, "name"),
			Args:           d.children(m, "args"),
			NamedArgs:      d.namedArgs(m, "named_args"),
			BlockArg:       d.child(m, "block_arg"),
			Block:          d.block(m, "block"),
			Global:         d.boolean(m, "global"),
			HasParentheses: d.boolean(m, "parens"),
		}
	case "named_argument":
		n = &ast.NamedArgument{Name: d.strReq(m, "name"), Value: d.childReq(m, "value")}
	case "block":
		n = &ast.Block{
			Args:       d.blockVars(m, "args"),
			Body:       d.childReq(m, "body"),
			SplatIndex: d.integer(m, "splat_index", -1),
		}
	case "and":
		n = &ast.And{Left: d.childReq(m, "left"), Right: d.childReq(m, "right")}
	case "or":
		n = &ast.Or{Left: d.childReq(m, "left"), Right: d.childReq(m, "right")}
	case "not":
		n = &ast.Not{Expr: d.childReq(m, "expr")}
	case "assign":
		n = &ast.Assign{Target: d.childReq(m, "target"), Value: d.childReq(m, "value")}
	case "op_assign":
		n = &ast.OpAssign{
			Target: d.childReq(m, "target"),
			Op:     d.strReq(m, "op"),
			Value:  d.childReq(m, "value"),
		}
	case "multi_assign":
		n = &ast.MultiAssign{Targets: d.children(m, "targets"), Values: d.children(m, "values")}
	case "splat":
		n = &ast.Splat{Expr: d.childReq(m, "expr")}
	case "double_splat":
		n = &ast.DoubleSplat{Expr: d.childReq(m, "expr")}
	case "is_a":
		n = &ast.IsA{
			Obj:      d.childReq(m, "obj"),
			Const:    d.child(m, "const"),
			NilCheck: d.boolean(m, "nil_check"),
		}
	case "responds_to":
		n = &ast.RespondsTo{Obj: d.childReq(m, "obj"), Name: d.strReq(m, "name")}
	case "cast":
		n = &ast.Cast{Obj: d.childReq(m, "obj"), To: d.childReq(m, "to")}
	case "nilable_cast":
		n = &ast.NilableCast{Obj: d.childReq(m, "obj"), To: d.childReq(m, "to")}
	case "typeof":
		n = &ast.TypeOf{Expressions: d.children(m, "expressions")}
	case "pointerof":
		n = &ast.PointerOf{Expr: d.childReq(m, "expr")}
	case "sizeof":
		n = &ast.SizeOf{Expr: d.childReq(m, "expr")}
	case "instance_sizeof":
		n = &ast.InstanceSizeOf{Expr: d.childReq(m, "expr")}
	case "offsetof":
		n = &ast.OffsetOf{Type: d.childReq(m, "type"), Offset: d.childReq(m, "offset")}
	case "read_instance_var":
		n = &ast.ReadInstanceVar{Obj: d.childReq(m, "obj"), Name: d.strReq(m, "name")}
	case "uninitialized":
		n = &ast.UninitializedVar{
			Var:          d.childReq(m, "var"),
			DeclaredType: d.childReq(m, "type"),
		}
	case "out":
		n = &ast.Out{Expr: d.childReq(m, "expr")}

	case "if":
		n = &ast.If{Cond: d.childReq(m, "cond"), Then: d.child(m, "then"), Else: d.child(m, "else")}
	case "unless":
		n = &ast.Unless{Cond: d.childReq(m, "cond"), Then: d.child(m, "then"), Else: d.child(m, "else")}
	case "while":
		n = &ast.While{Cond: d.childReq(m, "cond"), Body: d.child(m, "body")}
	case "until":
		n = &ast.Until{Cond: d.childReq(m, "cond"), Body: d.child(m, "body")}
	case "case":
		n = &ast.Case{
			Cond:       d.child(m, "cond"),
			Whens:      d.whens(m, "whens"),
			Else:       d.child(m, "else"),
			Exhaustive: d.boolean(m, "exhaustive"),
		}
	case "when":
		n = &ast.When{Conds: d.children(m, "conds"), Body: d.childReq(m, "body")}
	case "select":
		n = &ast.Select{Whens: d.whens(m, "whens"), Else: d.child(m, "else")}
	case "exception_handler":
		n = &ast.ExceptionHandler{
			Body:    d.childReq(m, "body"),
			Rescues: d.rescues(m, "rescues"),
			Else:    d.child(m, "else"),
			Ensure:  d.child(m, "ensure"),
		}
	case "rescue":
		n = &ast.Rescue{
			Body:  d.childReq(m, "body"),
			Types: d.children(m, "types"),
			Name:  d.str(m, "name"),
		}
	case "return":
		n = &ast.Return{Expr: d.child(m, "expr")}
	case "break":
		n = &ast.Break{Expr: d.child(m, "expr")}
	case "next":
		n = &ast.Next{Expr: d.child(m, "expr")}
	case "yield":
		n = &ast.Yield{Exprs: d.children(m, "exprs"), Scope: d.child(m, "scope")}

	case "def":
		n = d.def(m)
	case "arg":
		n = d.arg(raw)
	case "class":
		n = &ast.ClassDef{
			Name:       d.childReq(m, "name"),
			Body:       d.child(m, "body"),
			Superclass: d.child(m, "superclass"),
			TypeVars:   d.strings(m, "type_vars"),
			Abstract:   d.boolean(m, "abstract"),
			Struct:     d.boolean(m, "struct"),
		}
	case "module":
		n = &ast.ModuleDef{
			Name:     d.childReq(m, "name"),
			Body:     d.child(m, "body"),
			TypeVars: d.strings(m, "type_vars"),
		}
	case "enum":
		n = &ast.EnumDef{
			Name:     d.childReq(m, "name"),
			Members:  d.children(m, "members"),
			BaseType: d.child(m, "base_type"),
		}
	case "annotation_def":
		n = &ast.AnnotationDef{Name: d.childReq(m, "name")}
	case "annotation":
		n = &ast.Annotation{
			Path:      d.childReq(m, "path"),
			Args:      d.children(m, "args"),
			NamedArgs: d.namedArgs(m, "named_args"),
		}
	case "alias":
		n = &ast.Alias{Name: d.childReq(m, "name"), Value: d.childReq(m, "value")}
	case "include":
		n = &ast.Include{Name: d.childReq(m, "name")}
	case "extend":
		n = &ast.Extend{Name: d.childReq(m, "name")}
	case "require":
		n = &ast.Require{Path: d.strReq(m, "path")}
	case "visibility":
		var vis ast.Visibility
		switch s := d.strReq(m, "modifier"); s {
		case "private":
			vis = ast.VisibilityPrivate
		case "protected":
			vis = ast.VisibilityProtected
		default:
			d.fail("visibility %q: expected private or protected", s)
		}
		n = &ast.VisibilityModifier{Modifier: vis, Expr: d.childReq(m, "expr")}
	case "proc_literal":
		n = &ast.ProcLiteral{Def: d.def(m)}
	case "proc_pointer":
		n = &ast.ProcPointer{
			Obj:    d.child(m, "obj"),
			Name:   d.strReq(m, "name"),
			Args:   d.children(m, "args"),
			Global: d.boolean(m, "global"),
		}

	case "lib":
		n = &ast.LibDef{Name: d.strReq(m, "name"), Body: d.child(m, "body")}
	case "fun":
		n = &ast.FunDef{
			Name:       d.strReq(m, "name"),
			RealName:   d.str(m, "real_name"),
			Args:       d.args(m, "args"),
			ReturnType: d.child(m, "return_type"),
			Varargs:    d.boolean(m, "varargs"),
			Body:       d.child(m, "body"),
		}
	case "type":
		n = &ast.TypeDef{Name: d.strReq(m, "name"), TypeSpec: d.childReq(m, "type")}
	case "c_struct":
		n = &ast.CStructOrUnionDef{Name: d.strReq(m, "name"), Body: d.child(m, "body")}
	case "c_union":
		n = &ast.CStructOrUnionDef{Name: d.strReq(m, "name"), Body: d.child(m, "body"), Union: true}
	case "external_var":
		n = &ast.ExternalVar{
			Name:     d.strReq(m, "name"),
			RealName: d.str(m, "real_name"),
			TypeSpec: d.childReq(m, "type"),
		}

	case "macro":
		def := d.def(m)
		n = &ast.Macro{
			Name:        def.Name,
			Args:        def.Args,
			Body:        d.childReq(m, "body"),
			SplatIndex:  def.SplatIndex,
			DoubleSplat: def.DoubleSplat,
			BlockArg:    def.BlockArg,
		}
	case "macro_expression":
		n = &ast.MacroExpression{Exp: d.childReq(m, "exp"), Output: d.boolean(m, "output")}
	case "macro_if":
		n = &ast.MacroIf{
			Cond: d.childReq(m, "cond"),
			Then: d.child(m, "then"),
			Else: d.child(m, "else"),
		}
	case "macro_for":
		n = &ast.MacroFor{
			Vars: d.blockVars(m, "vars"),
			Exp:  d.childReq(m, "exp"),
			Body: d.childReq(m, "body"),
		}
	case "macro_var":
		n = &ast.MacroVar{Name: d.strReq(m, "name"), Exps: d.children(m, "exps")}
	case "macro_literal":
		n = &ast.MacroLiteral{Value: d.strReq(m, "value")}
	case "macro_verbatim":
		n = &ast.MacroVerbatim{Exp: d.childReq(m, "exp")}

	case "asm":
		n = &ast.Asm{
			Text:       d.strReq(m, "text"),
			Outputs:    d.asmOperands(m, "outputs"),
			Inputs:     d.asmOperands(m, "inputs"),
			Clobbers:   d.strings(m, "clobbers"),
			Volatile:   d.boolean(m, "volatile"),
			AlignStack: d.boolean(m, "alignstack"),
			Intel:      d.boolean(m, "intel"),
			CanThrow:   d.boolean(m, "can_throw"),
		}
	case "asm_operand":
		n = d.asmOperand(raw)

	default:
		d.fail("node kind %q: unknown", kind)
		return nil
	}

	if n != nil {
		d.meta(m, n)
	}
	return n
}
