package semir

import "github.com/funvibe/funcheck/internal/ice"

// ConstantResolution is the result of constant evaluation for an
// instruction: either "not a compile-time constant" or the ID of the
// canonical instruction the value designates.
type ConstantResolution struct {
	inst InstID
}

// NonConstant marks an instruction whose value is only known at runtime.
var NonConstant = ConstantResolution{}

// Resolved builds a resolution designating the given canonical instruction.
func Resolved(id InstID) ConstantResolution {
	if !id.IsValid() {
		ice.Panicf("Resolved called with invalid instruction id")
	}
	return ConstantResolution{inst: id}
}

// IsConstant reports whether the instruction evaluates to a compile-time
// constant.
func (r ConstantResolution) IsConstant() bool { return r.inst.IsValid() }

// InstID returns the designated canonical instruction; the resolution must
// be constant.
func (r ConstantResolution) InstID() InstID {
	if !r.IsConstant() {
		ice.Panicf("InstID on non-constant resolution")
	}
	return r.inst
}

// ConstantValueTable maps instruction IDs to their constant resolutions.
// Entries are populated lazily (on import load) and are immutable once
// written.
type ConstantValueTable struct {
	entries map[InstID]ConstantResolution
}

func NewConstantValueTable() *ConstantValueTable {
	return &ConstantValueTable{entries: make(map[InstID]ConstantResolution)}
}

// Get returns the resolution for the given instruction. An instruction with
// no entry is not a compile-time constant.
func (t *ConstantValueTable) Get(id InstID) ConstantResolution {
	return t.entries[id]
}

// Has reports whether an entry was explicitly populated.
func (t *ConstantValueTable) Has(id InstID) bool {
	_, ok := t.entries[id]
	return ok
}

// Set populates the entry for an instruction. Entries are write-once:
// re-populating with the same resolution is a no-op, a conflicting write is
// an internal error.
func (t *ConstantValueTable) Set(id InstID, res ConstantResolution) {
	if prev, ok := t.entries[id]; ok {
		if prev != res {
			ice.Panicf("conflicting constant resolution for instruction %d", id)
		}
		return
	}
	t.entries[id] = res
}
