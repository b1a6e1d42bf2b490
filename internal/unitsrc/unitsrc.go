// Package unitsrc defines the line-based unit description format the
// checker consumes: one file per compilation unit, declaring names and
// cross-unit imports. It is the fixture frontend for the CLI and tests.
package unitsrc

import "github.com/funvibe/funcheck/internal/source"

// DeclKind enumerates unit directives.
type DeclKind uint8

const (
	// DeclFn declares a function: "fn name/2".
	DeclFn DeclKind = iota
	// DeclVar declares a runtime variable: "var name".
	DeclVar
	// DeclNamespace declares a namespace: "ns name".
	DeclNamespace
	// DeclImport binds a name exported by another unit:
	// "import unit.name as local" (the alias is optional).
	DeclImport
	// DeclUse consumes a previously bound name: "use name".
	DeclUse
	// DeclExport adds a declared name to the unit's exports: "export name".
	DeclExport
)

func (k DeclKind) String() string {
	switch k {
	case DeclFn:
		return "fn"
	case DeclVar:
		return "var"
	case DeclNamespace:
		return "ns"
	case DeclImport:
		return "import"
	case DeclUse:
		return "use"
	case DeclExport:
		return "export"
	default:
		return "unknown"
	}
}

// Decl is one parsed directive.
type Decl struct {
	Kind DeclKind
	// Name is the local name declared, consumed or exported.
	Name string
	// ParamCount is the arity of a fn declaration.
	ParamCount int
	// FromUnit and FromName locate the target of an import directive.
	FromUnit string
	FromName string
	Loc      source.Location
}

// Unit is one parsed compilation unit description. Source keeps the raw
// text for export-cache fingerprinting.
type Unit struct {
	Name   string
	File   string
	Decls  []Decl
	Loc    source.Location
	Source []byte
}

// SourceFile is a named unit description, typically one txtar archive entry.
type SourceFile struct {
	Name string
	Data []byte
}
