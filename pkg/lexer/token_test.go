package lexer

import "testing"

func TestIsOperator(t *testing.T) {
	for _, op := range []string{"+", "<=>", "===", "[]?", "&+", "&**"} {
		if !IsOperator(op) {
			t.Errorf("IsOperator(%q) = false, want true", op)
		}
	}
	for _, name := range []string{"foo", "+=", ""} {
		if IsOperator(name) {
			t.Errorf("IsOperator(%q) = true, want false", name)
		}
	}
}

func TestIsIdent(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"foo", true},
		{"_private", true},
		{"foo_bar2", true},
		{"empty?", true},
		{"save!", true},
		{"name=", true},
		{"", false},
		{"2fast", false},
		{"a-b", false},
		{"+", false},
		{"foo?!", false},
	}
	for _, tt := range tests {
		if got := IsIdent(tt.name); got != tt.want {
			t.Errorf("IsIdent(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsIdentStart(t *testing.T) {
	if !IsIdentStart("foo") || !IsIdentStart("_x") {
		t.Error("identifier starts should be accepted")
	}
	if IsIdentStart("+") || IsIdentStart("2x") || IsIdentStart("") {
		t.Error("non-identifier starts should be rejected")
	}
}

func TestIsSetter(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"name=", true},
		{"x=", true},
		{"==", false},
		{"[]=", false},
		{"<=", false},
		{"name", false},
		{"=", false},
	}
	for _, tt := range tests {
		if got := IsSetter(tt.name); got != tt.want {
			t.Errorf("IsSetter(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSymbolNeedsQuotes(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"foo", false},
		{"empty?", false},
		{"save!", false},
		{"+", false},
		{"<=>", false},
		{"[]?", false},
		{"", true},
		{"foo bar", true},
		{"2x", true},
		{"a?b", true},
		{"+=", true},
	}
	for _, tt := range tests {
		if got := SymbolNeedsQuotes(tt.name); got != tt.want {
			t.Errorf("SymbolNeedsQuotes(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNamedArgumentNeedsQuotes(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"key", false},
		{"key_2", false},
		{"Key", false},
		{"", true},
		{"_", true},
		{"2key", true},
		{"a b", true},
		{"a?", true},
	}
	for _, tt := range tests {
		if got := NamedArgumentNeedsQuotes(tt.name); got != tt.want {
			t.Errorf("NamedArgumentNeedsQuotes(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
