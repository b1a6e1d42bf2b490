package check

import (
	"github.com/funvibe/funcheck/internal/diagnostics"
	"github.com/funvibe/funcheck/internal/semir"
	"github.com/funvibe/funcheck/internal/source"
)

// The merge logic depends on narrow collaborator interfaces instead of one
// shared session object, so each piece can be exercised in isolation.

// InstReader is read access to a unit's instruction arena.
type InstReader interface {
	Get(semir.InstID) semir.Inst
	Loc(semir.InstID) source.Location
}

// ConstantValues is read access to the constant-value table.
type ConstantValues interface {
	Get(semir.InstID) semir.ConstantResolution
}

// ImportLoader materializes unloaded import references. EnsureLoaded is
// idempotent and may recursively force further references; load failures
// are reported by the loader itself through the diagnostic emitter.
type ImportLoader interface {
	EnsureLoaded(id semir.InstID, loc source.Location)
}

// FunctionMerger performs signature comparison and unification when two
// function declarations merge. Its outcome is authoritative: it emits its
// own diagnostics and the caller does not re-validate.
type FunctionMerger interface {
	MergeFunctionRedecl(loc source.Location, newFunc semir.FuncID,
		newIsImport, newIsDefinition bool,
		prevFunc semir.FuncID, prevImport semir.ImportIRInstID)
}

// Deps bundles the collaborators for one unit's merge decisions.
type Deps struct {
	Insts     InstReader
	Constants ConstantValues
	Loader    ImportLoader
	Functions FunctionMerger
	Emitter   diagnostics.Emitter
}
