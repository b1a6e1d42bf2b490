package semir

// InstID identifies an instruction in a file's arena.
type InstID uint32

const (
	// NoInstID marks the absence of an instruction reference.
	NoInstID InstID = 0
)

// IsValid reports whether the ID refers to an allocated instruction.
func (id InstID) IsValid() bool { return id != NoInstID }

// ImportIRInstID identifies the cross-unit origin of an import reference:
// which unit and which exported name produced it.
type ImportIRInstID uint32

const (
	// NoImportIRInstID marks a declaration with no originating import.
	NoImportIRInstID ImportIRInstID = 0
)

// IsValid reports whether the ID refers to a recorded import origin.
func (id ImportIRInstID) IsValid() bool { return id != NoImportIRInstID }

// NameID identifies an interned name.
type NameID uint32

const (
	// NoNameID marks the absence of a name.
	NoNameID NameID = 0
)

// IsValid reports whether the ID refers to an interned name.
func (id NameID) IsValid() bool { return id != NoNameID }

// ScopeID identifies a name scope.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// FuncID identifies an entry in the function table.
type FuncID uint32

const (
	// NoFuncID marks the absence of a function reference.
	NoFuncID FuncID = 0
)

// IsValid reports whether the ID refers to a registered function.
func (id FuncID) IsValid() bool { return id != NoFuncID }

// UnitID identifies a compilation unit within a check session.
type UnitID uint32

const (
	// NoUnitID marks the absence of a unit reference.
	NoUnitID UnitID = 0
)

// IsValid reports whether the ID refers to a known unit.
func (id UnitID) IsValid() bool { return id != NoUnitID }
