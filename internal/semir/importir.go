package semir

import "github.com/funvibe/funcheck/internal/ice"

// ImportIRInst records the cross-unit origin of an import reference: the
// unit it came from and the exported name it refers to.
type ImportIRInst struct {
	Unit UnitID
	Name NameID
}

// ImportIRTable is the arena of import origins for one checked unit.
type ImportIRTable struct {
	insts []ImportIRInst
}

func NewImportIRTable() *ImportIRTable {
	return &ImportIRTable{}
}

// Add records an import origin and returns its ID.
func (t *ImportIRTable) Add(inst ImportIRInst) ImportIRInstID {
	t.insts = append(t.insts, inst)
	return ImportIRInstID(len(t.insts))
}

// Get returns the origin for the given ID.
func (t *ImportIRTable) Get(id ImportIRInstID) ImportIRInst {
	if !id.IsValid() || int(id) > len(t.insts) {
		ice.Panicf("import origin id %d out of range (table size %d)", id, len(t.insts))
	}
	return t.insts[id-1]
}
