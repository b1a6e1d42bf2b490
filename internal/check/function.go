package check

import (
	"fmt"

	"github.com/funvibe/funcheck/internal/diagnostics"
	"github.com/funvibe/funcheck/internal/semir"
	"github.com/funvibe/funcheck/internal/source"
)

// FuncMerger is the default FunctionMerger: it compares signatures and, on
// success, unifies the redeclaration with the previous canonical function.
type FuncMerger struct {
	Funcs   *semir.FunctionTable
	Emitter diagnostics.Emitter
}

func (m *FuncMerger) MergeFunctionRedecl(loc source.Location, newFunc semir.FuncID,
	newIsImport, newIsDefinition bool,
	prevFunc semir.FuncID, prevImport semir.ImportIRInstID) {
	canonical := m.Funcs.Canonical(prevFunc)
	prev := m.Funcs.Get(canonical)
	cur := m.Funcs.Get(newFunc)

	if cur.ParamCount != prev.ParamCount {
		err := diagnostics.NewError(diagnostics.ErrC005, loc,
			fmt.Sprintf("function redeclared with %d parameter(s), previous declaration has %d",
				cur.ParamCount, prev.ParamCount))
		m.notePrev(err, prev, prevImport)
		m.Emitter.Emit(err)
		return
	}

	if newIsDefinition && prev.Definition {
		err := diagnostics.NewError(diagnostics.ErrC004, loc,
			"function is already defined")
		m.notePrev(err, prev, prevImport)
		m.Emitter.Emit(err)
		return
	}

	m.Funcs.Redirect(newFunc, canonical)
	if newIsDefinition {
		m.Funcs.SetDefinition(canonical)
	}
}

func (m *FuncMerger) notePrev(err *diagnostics.DiagnosticError, prev semir.Function, prevImport semir.ImportIRInstID) {
	switch {
	case prev.DeclLoc.IsValid():
		err.WithNote(prev.DeclLoc, "previous declaration here")
	case prevImport.IsValid():
		err.WithNote(source.None, "previous declaration was imported from another unit")
	}
}
