package check

import (
	"fmt"

	"github.com/funvibe/funcheck/internal/diagnostics"
	"github.com/funvibe/funcheck/internal/ice"
	"github.com/funvibe/funcheck/internal/semir"
	"github.com/funvibe/funcheck/internal/source"
)

// InstForMerge pairs a canonical instruction with the import that supplied
// it. ImportIRInst is invalid for purely local declarations.
type InstForMerge struct {
	Inst         semir.Inst
	ImportIRInst semir.ImportIRInstID
}

// ResolvePrevDeclForMerge produces the instruction a new declaration should
// be compared against when a name is redeclared: the previous binding
// itself when it is local, or the canonical instruction behind it when it
// is an import reference.
//
// If the reference was already consumed before this redeclaration arrived,
// an error with a note at the recorded use site is emitted: consumers may
// hold assumptions derived from the old resolution. The diagnostic is
// advisory; resolution proceeds regardless.
func ResolvePrevDeclForMerge(deps Deps, loc source.Location, prevID semir.InstID) InstForMerge {
	prev := deps.Insts.Get(prevID)
	if !prev.Kind.IsImportRef() {
		return InstForMerge{Inst: prev}
	}

	if prev.Kind == semir.KindImportRefUsed {
		deps.Emitter.Emit(diagnostics.NewError(diagnostics.ErrC001, loc,
			"redeclaration of an imported entity that was previously used").
			WithNote(prev.ImportRef.Used, "import used here"))
	}

	// Follow the reference to its canonical instruction. A reference to a
	// runtime value has no constant resolution; hand the reference back
	// unchanged rather than failing.
	origin := prev.ImportRef.ImportIRInst
	res := deps.Constants.Get(prevID)
	if !res.IsConstant() {
		return InstForMerge{Inst: prev, ImportIRInst: origin}
	}
	return InstForMerge{Inst: deps.Insts.Get(res.InstID()), ImportIRInst: origin}
}

// resolveMergeableInst canonicalizes an instruction for merge
// consideration. The reported bool is false when the instruction is not a
// compile-time entity; that outcome is silent, the caller picks the
// diagnostic. Only import-reference and namespace instructions may be
// passed in; anything else is an internal error.
func resolveMergeableInst(deps Deps, id semir.InstID) (InstForMerge, bool) {
	inst := deps.Insts.Get(id)
	switch inst.Kind {
	case semir.KindImportRefUnloaded:
		// Load before merging.
		deps.Loader.EnsureLoaded(id, source.None)
		inst = deps.Insts.Get(id)
	case semir.KindImportRefLoaded, semir.KindImportRefUsed:
		// Already materialized.
	case semir.KindNamespace:
		// Namespaces merge by identity; constant evaluation never applies.
		return InstForMerge{Inst: inst}, true
	default:
		ice.Panicf("unexpected %s instruction passed to resolveMergeableInst", inst.Kind)
	}

	res := deps.Constants.Get(id)
	// TODO: function and type declarations are constant, but var
	// declarations are non-constant and should eventually merge too.
	if !res.IsConstant() {
		return InstForMerge{}, false
	}
	return InstForMerge{
		Inst:         deps.Insts.Get(res.InstID()),
		ImportIRInst: inst.AsImportRef().ImportIRInst,
	}, true
}

// RebindName points an existing binding at a new instruction once a
// keep/replace decision has been made. A name with no binding in the scope
// is left alone: rebinding never inserts.
func RebindName(scopes *semir.NameScopes, scope semir.ScopeID, name semir.NameID, newInst semir.InstID) {
	scopes.Rebind(scope, name, newInst)
}

// MergeImportRedecl decides what to do when a declaration arriving via
// import collides with an existing binding. Both sides must be import
// references or namespaces. Either side failing to canonicalize, or the
// canonical kinds differing, degrades to the duplicate-name diagnostic;
// otherwise the kind-specific merge runs. Scope rebinding is the caller's
// responsibility.
func MergeImportRedecl(deps Deps, newID, prevID semir.InstID) {
	newInst, newOK := resolveMergeableInst(deps, newID)
	prevInst, prevOK := resolveMergeableInst(deps, prevID)
	if !newOK || !prevOK {
		// Covers var redeclaration until runtime values learn to merge.
		DiagnoseDuplicateName(deps, newID, prevID)
		return
	}

	if newInst.Inst.Kind != prevInst.Inst.Kind {
		DiagnoseDuplicateName(deps, newID, prevID)
		return
	}

	switch newInst.Inst.Kind {
	case semir.KindFunctionDecl:
		newDecl := newInst.Inst.AsFunctionDecl()
		prevDecl := prevInst.Inst.AsFunctionDecl()
		deps.Functions.MergeFunctionRedecl(deps.Insts.Loc(newID), newDecl.Func,
			true /* newIsImport */, false, /* newIsDefinition */
			prevDecl.Func, prevInst.ImportIRInst)
	case semir.KindNamespace:
		// Namespaces canonicalize but have no merge rule yet.
		diagnoseUnsupportedMerge(deps, newID, newInst.Inst.Kind)
	case semir.KindVarDecl:
		// Unreachable today (vars are non-constant), kept as a visible
		// decision point for when they become mergeable.
		diagnoseUnsupportedMerge(deps, newID, newInst.Inst.Kind)
	case semir.KindImportRefUnloaded, semir.KindImportRefLoaded, semir.KindImportRefUsed:
		ice.Panicf("%s instruction survived mergeable-instruction resolution", newInst.Inst.Kind)
	default:
		ice.Panicf("unhandled %s instruction in merge dispatch", newInst.Inst.Kind)
	}
}

// MergeLocalRedecl decides what to do when a new local declaration collides
// with an existing binding: resolve the previous binding through any import
// indirection, then merge or diagnose. Scope rebinding is the caller's
// responsibility.
func MergeLocalRedecl(deps Deps, newID, prevID semir.InstID) {
	loc := deps.Insts.Loc(newID)
	if deps.Insts.Get(prevID).Kind == semir.KindImportRefUnloaded {
		deps.Loader.EnsureLoaded(prevID, loc)
	}

	newInst := deps.Insts.Get(newID)
	prev := ResolvePrevDeclForMerge(deps, loc, prevID)
	if newInst.Kind != prev.Inst.Kind {
		DiagnoseDuplicateName(deps, newID, prevID)
		return
	}

	switch newInst.Kind {
	case semir.KindFunctionDecl:
		deps.Functions.MergeFunctionRedecl(loc, newInst.AsFunctionDecl().Func,
			false /* newIsImport */, true, /* newIsDefinition */
			prev.Inst.AsFunctionDecl().Func, prev.ImportIRInst)
	default:
		DiagnoseDuplicateName(deps, newID, prevID)
	}
}

// DiagnoseDuplicateName emits the standard two-location conflict report.
func DiagnoseDuplicateName(deps Deps, newID, prevID semir.InstID) {
	deps.Emitter.Emit(diagnostics.NewError(diagnostics.ErrC002, deps.Insts.Loc(newID),
		"duplicate name being declared in the same scope").
		WithNote(deps.Insts.Loc(prevID), "name is previously declared here"))
}

func diagnoseUnsupportedMerge(deps Deps, newID semir.InstID, kind semir.InstKind) {
	deps.Emitter.Emit(diagnostics.NewError(diagnostics.ErrC003, deps.Insts.Loc(newID),
		fmt.Sprintf("merging %s declarations is not yet supported", kind)))
}
