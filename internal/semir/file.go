package semir

import (
	"github.com/funvibe/funcheck/internal/ice"
	"github.com/funvibe/funcheck/internal/source"
)

// File is the instruction arena for one compilation unit, with a parallel
// location arena. IDs are 1-based and stable: the arena is monotonic and
// never reuses a slot.
//
// Mutation is confined to Add and the two import-reference state
// transitions (SetLoaded, SetUsed); everything else is read-only.
type File struct {
	insts []Inst
	locs  []source.Location
}

func NewFile() *File {
	return &File{}
}

// Add appends an instruction and returns its ID.
func (f *File) Add(inst Inst, loc source.Location) InstID {
	f.insts = append(f.insts, inst)
	f.locs = append(f.locs, loc)
	return InstID(len(f.insts))
}

// Get returns the instruction for the given ID.
func (f *File) Get(id InstID) Inst {
	f.check(id)
	return f.insts[id-1]
}

// Loc returns the source location recorded for the given instruction.
func (f *File) Loc(id InstID) source.Location {
	f.check(id)
	return f.locs[id-1]
}

// Len returns the number of allocated instructions.
func (f *File) Len() int { return len(f.insts) }

// SetLoaded transitions an unloaded import reference to the loaded state.
// Calling it on an already-loaded or used reference is a no-op; calling it
// on a non-import instruction is an internal error.
func (f *File) SetLoaded(id InstID) {
	f.check(id)
	inst := &f.insts[id-1]
	switch inst.Kind {
	case KindImportRefUnloaded:
		inst.Kind = KindImportRefLoaded
	case KindImportRefLoaded, KindImportRefUsed:
		// Idempotent.
	default:
		ice.Panicf("SetLoaded on %s instruction %d", inst.Kind, id)
	}
}

// SetUsed transitions a loaded import reference to the used state and
// records the use site. The recorded location is write-once: a second call
// keeps the original.
func (f *File) SetUsed(id InstID, loc source.Location) {
	f.check(id)
	inst := &f.insts[id-1]
	switch inst.Kind {
	case KindImportRefLoaded:
		inst.Kind = KindImportRefUsed
		inst.ImportRef.Used = loc
	case KindImportRefUsed:
		// First use wins.
	default:
		ice.Panicf("SetUsed on %s instruction %d", inst.Kind, id)
	}
}

func (f *File) check(id InstID) {
	if !id.IsValid() || int(id) > len(f.insts) {
		ice.Panicf("instruction id %d out of range (arena size %d)", id, len(f.insts))
	}
}
