package check

import (
	"fmt"

	"github.com/funvibe/funcheck/internal/diagnostics"
	"github.com/funvibe/funcheck/internal/loader"
	"github.com/funvibe/funcheck/internal/semir"
	"github.com/funvibe/funcheck/internal/unitsrc"
)

// CheckedUnit is the semantic state built for one unit.
type CheckedUnit struct {
	File      *semir.File
	Funcs     *semir.FunctionTable
	Scopes    *semir.NameScopes
	Constants *semir.ConstantValueTable
	FileScope semir.ScopeID
}

// CheckUnit processes a unit's declarations in source order, routing every
// name collision through the merge resolver. Declarations are sequential
// and each merge decision completes before the next declaration is seen.
func CheckUnit(u *unitsrc.Unit, session *Session, emitter diagnostics.Emitter) *CheckedUnit {
	file := semir.NewFile()
	funcs := semir.NewFunctionTable()
	scopes := semir.NewNameScopes()
	consts := semir.NewConstantValueTable()
	importIRs := semir.NewImportIRTable()
	fileScope := scopes.NewScope()

	ld := &loader.Loader{
		File:      file,
		Constants: consts,
		Scopes:    scopes,
		Funcs:     funcs,
		ImportIRs: importIRs,
		Names:     session.Names,
		Units:     session,
		Emitter:   emitter,
	}
	deps := Deps{
		Insts:     file,
		Constants: consts,
		Loader:    ld,
		Functions: &FuncMerger{Funcs: funcs, Emitter: emitter},
		Emitter:   emitter,
	}

	for _, d := range u.Decls {
		switch d.Kind {
		case unitsrc.DeclFn:
			name := session.Names.Intern(d.Name)
			fn := funcs.Add(semir.Function{
				Name:       name,
				ParamCount: d.ParamCount,
				Definition: true,
				DeclLoc:    d.Loc,
			})
			inst := file.Add(semir.MakeFunctionDecl(fn), d.Loc)
			prev, bound := scopes.Lookup(fileScope, name)
			if !bound {
				scopes.Bind(fileScope, name, inst)
				continue
			}
			MergeLocalRedecl(deps, inst, prev)
			// A successful merge makes the new declaration the visible one.
			if funcs.Canonical(fn) != fn {
				RebindName(scopes, fileScope, name, inst)
			}

		case unitsrc.DeclVar:
			name := session.Names.Intern(d.Name)
			inst := file.Add(semir.MakeVarDecl(name), d.Loc)
			bindOrMergeLocal(deps, scopes, fileScope, name, inst)

		case unitsrc.DeclNamespace:
			name := session.Names.Intern(d.Name)
			inst := file.Add(semir.MakeNamespace(name, scopes.NewScope()), d.Loc)
			bindOrMergeLocal(deps, scopes, fileScope, name, inst)

		case unitsrc.DeclImport:
			fromUnit, ok := session.UnitByName(d.FromUnit)
			if !ok {
				emitter.Emit(diagnostics.NewError(diagnostics.ErrU002, d.Loc,
					fmt.Sprintf("import from unknown unit '%s'", d.FromUnit)))
				continue
			}
			origin := importIRs.Add(semir.ImportIRInst{
				Unit: fromUnit,
				Name: session.Names.Intern(d.FromName),
			})
			inst := file.Add(semir.MakeImportRef(origin), d.Loc)
			name := session.Names.Intern(d.Name)
			prev, bound := scopes.Lookup(fileScope, name)
			if !bound {
				scopes.Bind(fileScope, name, inst)
				continue
			}
			prevInst := file.Get(prev)
			if prevInst.Kind.IsImportRef() || prevInst.Kind == semir.KindNamespace {
				// Import arrival keeps the previous binding either way.
				MergeImportRedecl(deps, inst, prev)
			} else {
				DiagnoseDuplicateName(deps, inst, prev)
			}

		case unitsrc.DeclUse:
			name, known := session.Names.Lookup(d.Name)
			var bound semir.InstID
			if known {
				bound, known = scopes.Lookup(fileScope, name)
			}
			if !known {
				emitter.Emit(diagnostics.NewError(diagnostics.ErrU002, d.Loc,
					fmt.Sprintf("use of undeclared name '%s'", d.Name)))
				continue
			}
			if file.Get(bound).Kind.IsImportRef() {
				ld.MarkUsed(bound, d.Loc)
			}

		case unitsrc.DeclExport:
			// Handled during export derivation.
		}
	}

	return &CheckedUnit{
		File:      file,
		Funcs:     funcs,
		Scopes:    scopes,
		Constants: consts,
		FileScope: fileScope,
	}
}

// bindOrMergeLocal binds a fresh name or routes the collision through the
// local-redeclaration path. Non-function collisions keep the previous
// binding.
func bindOrMergeLocal(deps Deps, scopes *semir.NameScopes, scope semir.ScopeID, name semir.NameID, inst semir.InstID) {
	if prev, bound := scopes.Lookup(scope, name); bound {
		MergeLocalRedecl(deps, inst, prev)
		return
	}
	scopes.Bind(scope, name, inst)
}
