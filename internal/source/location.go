package source

import "fmt"

// Location is a resolved position in a unit description file.
// The zero value means "no location" (e.g. loader-internal resolution).
type Location struct {
	File   string
	Line   int
	Column int
}

// None marks the absence of a location.
var None = Location{}

func (l Location) IsValid() bool { return l.Line > 0 }

func (l Location) String() string {
	if !l.IsValid() {
		return "<unknown>"
	}
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Before orders locations by file, then line, then column.
// Used for deterministic diagnostic output.
func (l Location) Before(other Location) bool {
	if l.File != other.File {
		return l.File < other.File
	}
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}
