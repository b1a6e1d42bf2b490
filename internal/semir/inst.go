package semir

import (
	"github.com/funvibe/funcheck/internal/ice"
	"github.com/funvibe/funcheck/internal/source"
)

// InstKind enumerates instruction kinds in the semantic IR.
// The set is closed: merge dispatch switches over it with an explicit arm
// per kind, so extending it forces a decision at every dispatch site.
type InstKind uint8

const (
	// KindInvalid is the zero kind; it never appears in a populated arena.
	KindInvalid InstKind = iota
	// KindFunctionDecl declares a function backed by a function-table entry.
	KindFunctionDecl
	// KindNamespace declares a namespace owning its own name scope.
	KindNamespace
	// KindVarDecl declares a runtime variable. Variables are never
	// compile-time constants and therefore never merge.
	KindVarDecl
	// KindImportRefUnloaded is a cross-unit reference that has not been
	// materialized yet.
	KindImportRefUnloaded
	// KindImportRefLoaded is a materialized cross-unit reference that no
	// code has consumed yet.
	KindImportRefLoaded
	// KindImportRefUsed is a materialized cross-unit reference whose value
	// has been consumed at least once; the first use site is recorded.
	KindImportRefUsed
)

func (k InstKind) String() string {
	switch k {
	case KindFunctionDecl:
		return "function_decl"
	case KindNamespace:
		return "namespace"
	case KindVarDecl:
		return "var_decl"
	case KindImportRefUnloaded:
		return "import_ref_unloaded"
	case KindImportRefLoaded:
		return "import_ref_loaded"
	case KindImportRefUsed:
		return "import_ref_used"
	default:
		return "invalid"
	}
}

// IsImportRef reports whether the kind is any import-reference state.
func (k InstKind) IsImportRef() bool {
	switch k {
	case KindImportRefUnloaded, KindImportRefLoaded, KindImportRefUsed:
		return true
	default:
		return false
	}
}

// FunctionDeclInst is the payload of KindFunctionDecl.
type FunctionDeclInst struct {
	Func FuncID
}

// NamespaceInst is the payload of KindNamespace.
type NamespaceInst struct {
	Name  NameID
	Scope ScopeID
}

// VarDeclInst is the payload of KindVarDecl.
type VarDeclInst struct {
	Name NameID
}

// ImportRefInst is the payload shared by the three import-reference kinds.
// Used is the location of the first consumption; it is set exactly once,
// when the reference transitions to KindImportRefUsed.
type ImportRefInst struct {
	ImportIRInst ImportIRInstID
	Used         source.Location
}

// Inst is a tagged instruction. Kind selects which payload field is live;
// payload accessors enforce the tag.
type Inst struct {
	Kind InstKind

	FunctionDecl FunctionDeclInst
	Namespace    NamespaceInst
	VarDecl      VarDeclInst
	ImportRef    ImportRefInst
}

// MakeFunctionDecl builds a function declaration instruction.
func MakeFunctionDecl(fn FuncID) Inst {
	return Inst{Kind: KindFunctionDecl, FunctionDecl: FunctionDeclInst{Func: fn}}
}

// MakeNamespace builds a namespace instruction.
func MakeNamespace(name NameID, scope ScopeID) Inst {
	return Inst{Kind: KindNamespace, Namespace: NamespaceInst{Name: name, Scope: scope}}
}

// MakeVarDecl builds a variable declaration instruction.
func MakeVarDecl(name NameID) Inst {
	return Inst{Kind: KindVarDecl, VarDecl: VarDeclInst{Name: name}}
}

// MakeImportRef builds an unloaded import reference.
func MakeImportRef(origin ImportIRInstID) Inst {
	return Inst{Kind: KindImportRefUnloaded, ImportRef: ImportRefInst{ImportIRInst: origin}}
}

// AsFunctionDecl returns the function payload; the kind must match.
func (i Inst) AsFunctionDecl() FunctionDeclInst {
	if i.Kind != KindFunctionDecl {
		ice.Panicf("AsFunctionDecl on %s instruction", i.Kind)
	}
	return i.FunctionDecl
}

// AsNamespace returns the namespace payload; the kind must match.
func (i Inst) AsNamespace() NamespaceInst {
	if i.Kind != KindNamespace {
		ice.Panicf("AsNamespace on %s instruction", i.Kind)
	}
	return i.Namespace
}

// AsImportRef returns the import-reference payload; the kind must be one of
// the three import-reference states.
func (i Inst) AsImportRef() ImportRefInst {
	if !i.Kind.IsImportRef() {
		ice.Panicf("AsImportRef on %s instruction", i.Kind)
	}
	return i.ImportRef
}
