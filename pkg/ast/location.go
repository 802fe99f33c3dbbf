package ast

import "fmt"

// Location is a position in a source file. A Location with an empty
// Filename is synthetic: it belongs to generated or macro-expanded code
// and has no concrete file behind it.
type Location struct {
	Filename string
	Line     int
	Column   int
}

// Concrete reports whether the location points into a real file.
func (l *Location) Concrete() bool {
	return l != nil && l.Filename != ""
}

func (l *Location) String() string {
	if l == nil {
		return "?"
	}
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
}

// Pragma records where a printed node came from, for mapping diagnostics
// on the printed text back to the original source.
type Pragma struct {
	Filename string
	Line     int
	Column   int
}

// PragmaTable maps byte offsets in the printed output to the source
// locations of the nodes first emitted at that offset.
type PragmaTable struct {
	entries map[int][]Pragma
	offsets []int
}

// NewPragmaTable returns an empty table.
func NewPragmaTable() *PragmaTable {
	return &PragmaTable{entries: make(map[int][]Pragma)}
}

func (t *PragmaTable) add(offset int, p Pragma) {
	if _, seen := t.entries[offset]; !seen {
		t.offsets = append(t.offsets, offset)
	}
	t.entries[offset] = append(t.entries[offset], p)
}

// At returns the pragmas recorded at the given output byte offset.
func (t *PragmaTable) At(offset int) []Pragma {
	return t.entries[offset]
}

// Offsets returns the byte offsets with at least one pragma, in the
// order they were emitted.
func (t *PragmaTable) Offsets() []int {
	return t.offsets
}

// Len returns the number of recorded pragmas across all offsets.
func (t *PragmaTable) Len() int {
	n := 0
	for _, ps := range t.entries {
		n += len(ps)
	}
	return n
}
