package check

import (
	"testing"

	"github.com/funvibe/funcheck/internal/diagnostics"
	"github.com/funvibe/funcheck/internal/ice"
	"github.com/funvibe/funcheck/internal/semir"
	"github.com/funvibe/funcheck/internal/source"
)

func loc(line int) source.Location {
	return source.Location{File: "main.unit", Line: line, Column: 1}
}

// fakeLoader records EnsureLoaded calls and runs an optional hook so tests
// can materialize references on demand.
type fakeLoader struct {
	calls  []semir.InstID
	onLoad func(id semir.InstID, loc source.Location)
}

func (l *fakeLoader) EnsureLoaded(id semir.InstID, loc source.Location) {
	l.calls = append(l.calls, id)
	if l.onLoad != nil {
		l.onLoad(id, loc)
	}
}

type mergeCall struct {
	loc             source.Location
	newFunc         semir.FuncID
	newIsImport     bool
	newIsDefinition bool
	prevFunc        semir.FuncID
	prevImport      semir.ImportIRInstID
}

// fakeMerger records function-merge collaborator invocations.
type fakeMerger struct {
	calls []mergeCall
}

func (m *fakeMerger) MergeFunctionRedecl(loc source.Location, newFunc semir.FuncID,
	newIsImport, newIsDefinition bool,
	prevFunc semir.FuncID, prevImport semir.ImportIRInstID) {
	m.calls = append(m.calls, mergeCall{loc, newFunc, newIsImport, newIsDefinition, prevFunc, prevImport})
}

// failingConstants fails the test on any lookup. Used to prove namespace
// resolution never consults the constant-value table.
type failingConstants struct {
	t *testing.T
}

func (c failingConstants) Get(id semir.InstID) semir.ConstantResolution {
	c.t.Fatalf("constant-value table queried for instruction %d", id)
	return semir.NonConstant
}

type env struct {
	file      *semir.File
	consts    *semir.ConstantValueTable
	importIRs *semir.ImportIRTable
	funcs     *semir.FunctionTable
	scopes    *semir.NameScopes
	names     *semir.NameTable
	diags     *diagnostics.Collector
	loader    *fakeLoader
	merger    *fakeMerger
}

func newEnv() *env {
	return &env{
		file:      semir.NewFile(),
		consts:    semir.NewConstantValueTable(),
		importIRs: semir.NewImportIRTable(),
		funcs:     semir.NewFunctionTable(),
		scopes:    semir.NewNameScopes(),
		names:     semir.NewNameTable(),
		diags:     diagnostics.NewCollector(),
		loader:    &fakeLoader{},
		merger:    &fakeMerger{},
	}
}

func (e *env) deps() Deps {
	return Deps{
		Insts:     e.file,
		Constants: e.consts,
		Loader:    e.loader,
		Functions: e.merger,
		Emitter:   e.diags,
	}
}

// localFunc adds a locally declared function instruction.
func (e *env) localFunc(name string, params int, at source.Location) (semir.InstID, semir.FuncID) {
	fn := e.funcs.Add(semir.Function{
		Name:       e.names.Intern(name),
		ParamCount: params,
		Definition: true,
		DeclLoc:    at,
	})
	return e.file.Add(semir.MakeFunctionDecl(fn), at), fn
}

// importedFuncRef adds a loaded import reference whose constant resolution
// is a canonical function declaration.
func (e *env) importedFuncRef(name string, params int, at source.Location) (ref semir.InstID, origin semir.ImportIRInstID, canonical semir.InstID) {
	origin = e.importIRs.Add(semir.ImportIRInst{Unit: 1, Name: e.names.Intern(name)})
	ref = e.file.Add(semir.MakeImportRef(origin), at)
	fn := e.funcs.Add(semir.Function{Name: e.names.Intern(name), ParamCount: params, Imported: true})
	canonical = e.file.Add(semir.MakeFunctionDecl(fn), source.None)
	e.file.SetLoaded(ref)
	e.consts.Set(ref, semir.Resolved(canonical))
	return ref, origin, canonical
}

// importedVarRef adds a loaded import reference to a runtime value: its
// constant resolution is non-constant.
func (e *env) importedVarRef(name string, at source.Location) semir.InstID {
	origin := e.importIRs.Add(semir.ImportIRInst{Unit: 1, Name: e.names.Intern(name)})
	ref := e.file.Add(semir.MakeImportRef(origin), at)
	e.file.SetLoaded(ref)
	e.consts.Set(ref, semir.NonConstant)
	return ref
}

func (e *env) namespace(name string, at source.Location) semir.InstID {
	return e.file.Add(semir.MakeNamespace(e.names.Intern(name), e.scopes.NewScope()), at)
}

// expectDiags asserts the exact sequence of emitted codes.
func expectDiags(t *testing.T, diags *diagnostics.Collector, codes ...diagnostics.ErrorCode) []*diagnostics.DiagnosticError {
	t.Helper()
	errs := diags.Errors()
	if len(errs) != len(codes) {
		for _, err := range errs {
			t.Log(err)
		}
		t.Fatalf("got %d diagnostic(s), want %d", len(errs), len(codes))
	}
	for i, err := range errs {
		if err.Code != codes[i] {
			t.Fatalf("diagnostic %d has code %s, want %s", i, err.Code, codes[i])
		}
	}
	return errs
}

func expectICE(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected internal error, got none")
		} else if _, ok := r.(ice.Error); !ok {
			t.Fatalf("expected ice.Error, got %v", r)
		}
	}()
	fn()
}

func TestResolvePrevDeclLocalIsReturnedUnchanged(t *testing.T) {
	e := newEnv()
	inst, fn := e.localFunc("f", 1, loc(1))

	got := ResolvePrevDeclForMerge(e.deps(), loc(5), inst)
	if got.Inst.Kind != semir.KindFunctionDecl || got.Inst.AsFunctionDecl().Func != fn {
		t.Fatalf("resolved inst = %+v, want the local declaration", got.Inst)
	}
	if got.ImportIRInst.IsValid() {
		t.Fatal("local declaration reported an originating import")
	}
	expectDiags(t, e.diags)
}

func TestResolvePrevDeclFollowsLoadedImport(t *testing.T) {
	e := newEnv()
	ref, origin, canonical := e.importedFuncRef("f", 1, loc(1))

	got := ResolvePrevDeclForMerge(e.deps(), loc(5), ref)
	if got.Inst != e.file.Get(canonical) {
		t.Fatalf("resolved inst = %+v, want canonical function decl", got.Inst)
	}
	if got.ImportIRInst != origin {
		t.Fatalf("originating import = %d, want %d", got.ImportIRInst, origin)
	}
	expectDiags(t, e.diags)
}

func TestResolvePrevDeclUsedImportHazard(t *testing.T) {
	e := newEnv()
	ref, origin, canonical := e.importedFuncRef("g", 1, loc(1))
	e.file.SetUsed(ref, loc(10))

	got := ResolvePrevDeclForMerge(e.deps(), loc(20), ref)

	// Exactly one error with one note pointing at the recorded use site.
	errs := expectDiags(t, e.diags, diagnostics.ErrC001)
	if len(errs[0].Notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(errs[0].Notes))
	}
	if errs[0].Notes[0].Loc != loc(10) {
		t.Fatalf("note location = %s, want %s", errs[0].Notes[0].Loc, loc(10))
	}
	if errs[0].Loc != loc(20) {
		t.Fatalf("error location = %s, want %s", errs[0].Loc, loc(20))
	}

	// The hazard is advisory: resolution proceeded anyway.
	if got.Inst != e.file.Get(canonical) || got.ImportIRInst != origin {
		t.Fatal("hazard diagnostic blocked resolution")
	}
}

func TestResolvePrevDeclNonConstantImport(t *testing.T) {
	e := newEnv()
	ref := e.importedVarRef("v", loc(1))

	got := ResolvePrevDeclForMerge(e.deps(), loc(5), ref)
	if !got.Inst.Kind.IsImportRef() {
		t.Fatalf("resolved inst kind = %s, want the reference itself", got.Inst.Kind)
	}
	if !got.ImportIRInst.IsValid() {
		t.Fatal("originating import lost on non-constant reference")
	}
	expectDiags(t, e.diags)
}

func TestResolveMergeableNamespaceNeverQueriesConstants(t *testing.T) {
	e := newEnv()
	ns := e.namespace("util", loc(1))

	deps := e.deps()
	deps.Constants = failingConstants{t: t}

	got, ok := resolveMergeableInst(deps, ns)
	if !ok {
		t.Fatal("namespace reported not mergeable")
	}
	if got.Inst.Kind != semir.KindNamespace {
		t.Fatalf("resolved kind = %s, want namespace", got.Inst.Kind)
	}
	if got.ImportIRInst.IsValid() {
		t.Fatal("namespace reported an originating import")
	}
}

func TestResolveMergeableLoadsUnloadedRef(t *testing.T) {
	e := newEnv()
	origin := e.importIRs.Add(semir.ImportIRInst{Unit: 1, Name: e.names.Intern("f")})
	ref := e.file.Add(semir.MakeImportRef(origin), loc(1))
	fn := e.funcs.Add(semir.Function{Name: e.names.Intern("f"), ParamCount: 2, Imported: true})
	canonical := e.file.Add(semir.MakeFunctionDecl(fn), source.None)

	e.loader.onLoad = func(id semir.InstID, _ source.Location) {
		e.file.SetLoaded(id)
		e.consts.Set(id, semir.Resolved(canonical))
	}

	got, ok := resolveMergeableInst(e.deps(), ref)
	if !ok {
		t.Fatal("loaded function reference reported not mergeable")
	}
	if len(e.loader.calls) != 1 || e.loader.calls[0] != ref {
		t.Fatalf("loader calls = %v, want exactly [%d]", e.loader.calls, ref)
	}
	if got.Inst != e.file.Get(canonical) || got.ImportIRInst != origin {
		t.Fatalf("resolved = %+v, want canonical decl from origin %d", got, origin)
	}
}

func TestResolveMergeableAlreadyLoadedSkipsLoader(t *testing.T) {
	e := newEnv()
	ref, _, _ := e.importedFuncRef("f", 0, loc(1))

	if _, ok := resolveMergeableInst(e.deps(), ref); !ok {
		t.Fatal("loaded reference reported not mergeable")
	}
	if len(e.loader.calls) != 0 {
		t.Fatalf("loader invoked %d time(s) on a loaded reference", len(e.loader.calls))
	}
}

func TestResolveMergeableNonConstantIsSilent(t *testing.T) {
	e := newEnv()
	ref := e.importedVarRef("v", loc(1))

	if _, ok := resolveMergeableInst(e.deps(), ref); ok {
		t.Fatal("runtime-value reference reported mergeable")
	}
	// A silent outcome, not an error.
	expectDiags(t, e.diags)
}

func TestResolveMergeableContractViolation(t *testing.T) {
	e := newEnv()
	fnInst, _ := e.localFunc("f", 0, loc(1))
	varInst := e.file.Add(semir.MakeVarDecl(e.names.Intern("v")), loc(2))

	expectICE(t, func() { resolveMergeableInst(e.deps(), fnInst) })
	expectICE(t, func() { resolveMergeableInst(e.deps(), varInst) })
}

func TestMergeImportRedeclNotMergeableSide(t *testing.T) {
	e := newEnv()
	prev := e.importedVarRef("v", loc(1))
	newRef, _, _ := e.importedFuncRef("v", 0, loc(5))

	MergeImportRedecl(e.deps(), newRef, prev)

	expectDiags(t, e.diags, diagnostics.ErrC002)
	if len(e.merger.calls) != 0 {
		t.Fatal("kind dispatch ran despite a not-mergeable side")
	}
}

func TestMergeImportRedeclKindMismatch(t *testing.T) {
	e := newEnv()
	// prev resolves to a namespace, new to a function.
	prevOrigin := e.importIRs.Add(semir.ImportIRInst{Unit: 1, Name: e.names.Intern("x")})
	prev := e.file.Add(semir.MakeImportRef(prevOrigin), loc(1))
	canonicalNS := e.namespace("x", source.None)
	e.file.SetLoaded(prev)
	e.consts.Set(prev, semir.Resolved(canonicalNS))

	newRef, _, _ := e.importedFuncRef("x", 0, loc(5))

	MergeImportRedecl(e.deps(), newRef, prev)

	expectDiags(t, e.diags, diagnostics.ErrC002)
	if len(e.merger.calls) != 0 {
		t.Fatal("kind-specific handler invoked on kind mismatch")
	}
}

func TestMergeImportRedeclFunctions(t *testing.T) {
	e := newEnv()
	prev, prevOrigin, prevCanonical := e.importedFuncRef("f", 2, loc(1))
	newRef, _, newCanonical := e.importedFuncRef("f", 2, loc(5))

	MergeImportRedecl(e.deps(), newRef, prev)

	expectDiags(t, e.diags)
	if len(e.merger.calls) != 1 {
		t.Fatalf("merger invoked %d time(s), want 1", len(e.merger.calls))
	}
	call := e.merger.calls[0]
	if !call.newIsImport || call.newIsDefinition {
		t.Fatalf("merge flags = import:%v definition:%v, want import:true definition:false",
			call.newIsImport, call.newIsDefinition)
	}
	if call.prevImport != prevOrigin {
		t.Fatalf("prev import id = %d, want %d", call.prevImport, prevOrigin)
	}
	if call.newFunc != e.file.Get(newCanonical).AsFunctionDecl().Func {
		t.Fatal("merger got the wrong new function")
	}
	if call.prevFunc != e.file.Get(prevCanonical).AsFunctionDecl().Func {
		t.Fatal("merger got the wrong previous function")
	}
	if call.loc != loc(5) {
		t.Fatalf("merge location = %s, want the new declaration's", call.loc)
	}
}

func TestMergeImportRedeclNamespacesUnsupported(t *testing.T) {
	e := newEnv()
	prev := e.namespace("util", loc(1))
	newNS := e.namespace("util", loc(5))

	MergeImportRedecl(e.deps(), newNS, prev)

	// Namespaces resolve individually but have no merge rule.
	expectDiags(t, e.diags, diagnostics.ErrC003)
	if len(e.merger.calls) != 0 {
		t.Fatal("function merger invoked for namespaces")
	}
}

func TestMergeLocalRedeclFunctions(t *testing.T) {
	e := newEnv()
	prev, prevFn := e.localFunc("f", 1, loc(1))
	newInst, newFn := e.localFunc("f", 1, loc(5))

	MergeLocalRedecl(e.deps(), newInst, prev)

	expectDiags(t, e.diags)
	if len(e.merger.calls) != 1 {
		t.Fatalf("merger invoked %d time(s), want 1", len(e.merger.calls))
	}
	call := e.merger.calls[0]
	if call.newIsImport {
		t.Fatal("local redeclaration marked as import-sourced")
	}
	if !call.newIsDefinition {
		t.Fatal("local redeclaration not marked as a definition")
	}
	if call.prevImport.IsValid() {
		t.Fatal("local previous declaration reported an originating import")
	}
	if call.newFunc != newFn || call.prevFunc != prevFn {
		t.Fatalf("merged %d into %d, want %d into %d", call.newFunc, call.prevFunc, newFn, prevFn)
	}
}

func TestMergeLocalRedeclOverUsedImport(t *testing.T) {
	e := newEnv()
	prev, prevOrigin, _ := e.importedFuncRef("g", 1, loc(1))
	e.file.SetUsed(prev, loc(10))
	newInst, _ := e.localFunc("g", 1, loc(20))

	MergeLocalRedecl(e.deps(), newInst, prev)

	// One hazard report, and the merge still proceeds.
	errs := expectDiags(t, e.diags, diagnostics.ErrC001)
	if len(errs[0].Notes) != 1 || errs[0].Notes[0].Loc != loc(10) {
		t.Fatalf("hazard note = %+v, want one note at %s", errs[0].Notes, loc(10))
	}
	if len(e.merger.calls) != 1 {
		t.Fatalf("merger invoked %d time(s), want 1", len(e.merger.calls))
	}
	if got := e.merger.calls[0].prevImport; got != prevOrigin {
		t.Fatalf("prev import id = %d, want %d", got, prevOrigin)
	}
}

func TestMergeLocalRedeclKindMismatch(t *testing.T) {
	e := newEnv()
	prev := e.file.Add(semir.MakeVarDecl(e.names.Intern("x")), loc(1))
	newInst, _ := e.localFunc("x", 0, loc(5))

	MergeLocalRedecl(e.deps(), newInst, prev)

	expectDiags(t, e.diags, diagnostics.ErrC002)
	if len(e.merger.calls) != 0 {
		t.Fatal("merger invoked on kind mismatch")
	}
}

func TestRebindNameAbsentIsNoOp(t *testing.T) {
	e := newEnv()
	scope := e.scopes.NewScope()
	name := e.names.Intern("f")

	RebindName(e.scopes, scope, name, 3)
	if e.scopes.Len(scope) != 0 {
		t.Fatal("rebinding an absent name inserted a binding")
	}

	e.scopes.Bind(scope, name, 1)
	RebindName(e.scopes, scope, name, 3)
	if got, _ := e.scopes.Lookup(scope, name); got != 3 {
		t.Fatalf("binding = %d, want 3", got)
	}
}
