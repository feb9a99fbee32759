package ast

import "fmt"

// Location points at the source text a node was parsed from. The parser
// fills it in; the analysis passes only carry it through for diagnostics.
type Location struct {
	FilePath string
	Line     uint32
	Column   uint32
}

func NewLocation(filePath string, line, column uint32) Location {
	return Location{FilePath: filePath, Line: line, Column: column}
}

func (loc Location) EqualsTo(other Location) bool {
	return loc.FilePath == other.FilePath && loc.Line == other.Line && loc.Column == other.Column
}

func (loc Location) IsEmpty() bool {
	return loc.FilePath == ""
}

func (loc Location) CursorString() string {
	if loc.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", loc.FilePath, loc.Line, loc.Column)
}
