// Package loader materializes cross-unit import references: it resolves an
// unloaded reference to the canonical declaration it names, imports that
// declaration into the local unit's arena, and populates the constant-value
// table entry the merge logic consults.
package loader

import (
	"fmt"

	"github.com/funvibe/funcheck/internal/diagnostics"
	"github.com/funvibe/funcheck/internal/ice"
	"github.com/funvibe/funcheck/internal/semir"
	"github.com/funvibe/funcheck/internal/source"
)

// UnitProvider is read access to the other units of a check session.
type UnitProvider interface {
	UnitByName(name string) (semir.UnitID, bool)
	UnitName(id semir.UnitID) string
	UnitExports(id semir.UnitID) Exports
}

// Loader resolves import references for one checked unit. All loading is
// synchronous and single-threaded; recursion happens only through
// re-export chains.
type Loader struct {
	File      *semir.File
	Constants *semir.ConstantValueTable
	Scopes    *semir.NameScopes
	Funcs     *semir.FunctionTable
	ImportIRs *semir.ImportIRTable
	Names     *semir.NameTable
	Units     UnitProvider
	Emitter   diagnostics.Emitter
}

// EnsureLoaded materializes an unloaded import reference. It is idempotent:
// a loaded or used reference is left untouched. A reference that cannot be
// resolved gets a non-constant entry and an error diagnostic, so merge
// decisions degrade to duplicate-name reporting instead of crashing.
// Calling it on a non-import instruction is an internal error.
func (l *Loader) EnsureLoaded(id semir.InstID, loc source.Location) {
	inst := l.File.Get(id)
	switch inst.Kind {
	case semir.KindImportRefLoaded, semir.KindImportRefUsed:
		return
	case semir.KindImportRefUnloaded:
	default:
		ice.Panicf("EnsureLoaded on %s instruction %d", inst.Kind, id)
	}

	// Transition first: resolution below may recurse through re-exports
	// and must observe this reference as in progress, not unloaded.
	l.File.SetLoaded(id)

	origin := l.ImportIRs.Get(inst.ImportRef.ImportIRInst)
	sum, ok := l.resolveExport(origin.Unit, l.Names.String(origin.Name), loc, make(map[string]bool))
	if !ok {
		l.Constants.Set(id, semir.NonConstant)
		return
	}

	switch sum.Kind {
	case ExportFunc:
		fn := l.Funcs.Add(semir.Function{
			Name:       origin.Name,
			ParamCount: sum.ParamCount,
			Imported:   true,
		})
		canonical := l.File.Add(semir.MakeFunctionDecl(fn), source.None)
		l.Constants.Set(id, semir.Resolved(canonical))
	case ExportNamespace:
		scope := l.Scopes.NewScope()
		canonical := l.File.Add(semir.MakeNamespace(origin.Name, scope), source.None)
		l.Constants.Set(id, semir.Resolved(canonical))
	case ExportVar:
		// Runtime value: materialized, but not a compile-time constant.
		l.Constants.Set(id, semir.NonConstant)
	default:
		ice.Panicf("unexpected export kind %q for %s.%s",
			sum.Kind, l.Units.UnitName(origin.Unit), l.Names.String(origin.Name))
	}
}

// MarkUsed records the first consumption of an import reference, loading it
// if needed. The recorded use site is write-once.
func (l *Loader) MarkUsed(id semir.InstID, loc source.Location) {
	l.EnsureLoaded(id, loc)
	l.File.SetUsed(id, loc)
}

// resolveExport follows re-export chains to a concrete export summary.
func (l *Loader) resolveExport(unit semir.UnitID, name string, loc source.Location, visited map[string]bool) (ExportSummary, bool) {
	for {
		key := l.Units.UnitName(unit) + "." + name
		if visited[key] {
			l.Emitter.Emit(diagnostics.NewError(diagnostics.ErrL001, loc,
				fmt.Sprintf("re-export cycle while resolving '%s'", key)))
			return ExportSummary{}, false
		}
		visited[key] = true

		sum, ok := l.Units.UnitExports(unit)[name]
		if !ok {
			l.Emitter.Emit(diagnostics.NewError(diagnostics.ErrL001, loc,
				fmt.Sprintf("unit '%s' does not export '%s'", l.Units.UnitName(unit), name)))
			return ExportSummary{}, false
		}
		if sum.Kind != ExportReExport {
			return sum, true
		}

		next, ok := l.Units.UnitByName(sum.FromUnit)
		if !ok {
			l.Emitter.Emit(diagnostics.NewError(diagnostics.ErrL001, loc,
				fmt.Sprintf("unknown unit '%s' in re-export of '%s'", sum.FromUnit, key)))
			return ExportSummary{}, false
		}
		unit, name = next, sum.FromName
	}
}
