package semir

import (
	"github.com/funvibe/funcheck/internal/ice"
	"github.com/funvibe/funcheck/internal/source"
)

// Function is one entry in the function table.
type Function struct {
	Name       NameID
	ParamCount int
	// Definition is true when the declaration carries a body.
	Definition bool
	// Imported is set when the declaration was materialized from another
	// unit rather than declared locally.
	Imported bool
	DeclLoc  source.Location

	// mergedInto points at the canonical function this one was unified
	// with, or NoFuncID if it is itself canonical.
	mergedInto FuncID
}

// FunctionTable is the arena of functions for one checked unit.
type FunctionTable struct {
	funcs []Function
}

func NewFunctionTable() *FunctionTable {
	return &FunctionTable{}
}

// Add registers a function and returns its ID.
func (t *FunctionTable) Add(fn Function) FuncID {
	t.funcs = append(t.funcs, fn)
	return FuncID(len(t.funcs))
}

// Get returns the function for the given ID.
func (t *FunctionTable) Get(id FuncID) Function {
	return *t.get(id)
}

// Redirect records that from was merged into to: both now denote the same
// logical function, with to's entry as the canonical one.
func (t *FunctionTable) Redirect(from, to FuncID) {
	canonical := t.Canonical(to)
	if canonical == t.Canonical(from) {
		return
	}
	t.get(from).mergedInto = canonical
}

// SetDefinition marks a function as carrying a body.
func (t *FunctionTable) SetDefinition(id FuncID) {
	t.get(id).Definition = true
}

// Canonical follows merge redirects to the representative function ID.
func (t *FunctionTable) Canonical(id FuncID) FuncID {
	seen := 0
	for {
		next := t.get(id).mergedInto
		if !next.IsValid() {
			return id
		}
		id = next
		if seen++; seen > len(t.funcs) {
			ice.Panicf("merge redirect cycle at function %d", id)
		}
	}
}

// Len returns the number of registered functions.
func (t *FunctionTable) Len() int { return len(t.funcs) }

func (t *FunctionTable) get(id FuncID) *Function {
	if !id.IsValid() || int(id) > len(t.funcs) {
		ice.Panicf("function id %d out of range (table size %d)", id, len(t.funcs))
	}
	return &t.funcs[id-1]
}
