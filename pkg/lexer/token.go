// Package lexer holds the lexical classification rules the printer
// relies on: which names are bare identifiers, which are operator
// method names, and which symbols or named-argument keys need quoting.
package lexer

import "unicode"

// operators is the closed set of operator method names.
var operators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "//": true,
	"%": true, "&": true, "|": true, "^": true, "**": true,
	">>": true, "<<": true, "==": true, "!=": true, "<": true,
	"<=": true, ">": true, ">=": true, "<=>": true, "===": true,
	"[]": true, "[]?": true, "[]=": true, "!": true, "~": true,
	"!~": true, "=~": true, "&+": true, "&-": true, "&*": true,
	"&**": true,
}

// IsOperator reports whether name is an operator method name.
func IsOperator(name string) bool {
	return operators[name]
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// IsIdentStart reports whether name begins like an identifier.
func IsIdentStart(name string) bool {
	for _, r := range name {
		return isIdentStart(r)
	}
	return false
}

// IsIdent reports whether name is a bare identifier: a letter or
// underscore, then letters, digits or underscores, with at most one
// trailing ?, ! or =.
func IsIdent(name string) bool {
	rs := []rune(name)
	if len(rs) == 0 || !isIdentStart(rs[0]) {
		return false
	}
	last := len(rs) - 1
	if rs[last] == '?' || rs[last] == '!' || rs[last] == '=' {
		rs = rs[:last]
		if len(rs) == 1 && !isIdentStart(rs[0]) {
			return false
		}
	}
	for _, r := range rs[1:] {
		if !isIdentPart(r) {
			return false
		}
	}
	return len(rs) > 0
}

// IsSetter reports whether name is a setter-style method name: a bare
// identifier ending in = (but not an operator like == or []=).
func IsSetter(name string) bool {
	return len(name) > 1 && name[len(name)-1] == '=' &&
		IsIdentStart(name) && IsIdent(name)
}

// SymbolNeedsQuotes reports whether :name must render as :"name".
// Operator method names and identifiers (with an optional trailing
// ? or !) stay bare.
func SymbolNeedsQuotes(name string) bool {
	if name == "" {
		return true
	}
	if IsOperator(name) {
		return false
	}
	rs := []rune(name)
	if !isIdentStart(rs[0]) {
		return true
	}
	for i, r := range rs[1:] {
		if r == '?' || r == '!' {
			if i != len(rs)-2 {
				return true
			}
			continue
		}
		if !isIdentPart(r) {
			return true
		}
	}
	return false
}

// NamedArgumentNeedsQuotes reports whether a named-argument or
// named-tuple key must be quoted. Keys allow only letters, digits and
// underscores, must not start with a digit, and "_" alone is not a key.
func NamedArgumentNeedsQuotes(name string) bool {
	if name == "" || name == "_" {
		return true
	}
	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			return true
		}
		if !isIdentPart(r) {
			return true
		}
	}
	return false
}
