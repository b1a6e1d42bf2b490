package loader

import (
	"fmt"

	"github.com/funvibe/funcheck/internal/diagnostics"
	"github.com/funvibe/funcheck/internal/unitsrc"
)

// Export kinds as stored in the cache.
const (
	ExportFunc      = "func"
	ExportVar       = "var"
	ExportNamespace = "namespace"
	ExportReExport  = "reexport"
)

// ExportSummary describes one exported declaration, in just enough detail
// for another unit to materialize it.
type ExportSummary struct {
	Kind       string `yaml:"kind"`
	ParamCount int    `yaml:"param_count,omitempty"`
	FromUnit   string `yaml:"from_unit,omitempty"`
	FromName   string `yaml:"from_name,omitempty"`
}

// Exports is a unit's public surface: exported name -> summary.
type Exports map[string]ExportSummary

// DeriveExports computes a unit's export surface from its parsed
// directives. Exporting an undeclared name is reported and skipped.
func DeriveExports(u *unitsrc.Unit) (Exports, []*diagnostics.DiagnosticError) {
	declared := make(map[string]ExportSummary)
	for _, d := range u.Decls {
		switch d.Kind {
		case unitsrc.DeclFn:
			declared[d.Name] = ExportSummary{Kind: ExportFunc, ParamCount: d.ParamCount}
		case unitsrc.DeclVar:
			declared[d.Name] = ExportSummary{Kind: ExportVar}
		case unitsrc.DeclNamespace:
			declared[d.Name] = ExportSummary{Kind: ExportNamespace}
		case unitsrc.DeclImport:
			declared[d.Name] = ExportSummary{Kind: ExportReExport, FromUnit: d.FromUnit, FromName: d.FromName}
		}
	}

	exports := make(Exports)
	var errs []*diagnostics.DiagnosticError
	for _, d := range u.Decls {
		if d.Kind != unitsrc.DeclExport {
			continue
		}
		sum, ok := declared[d.Name]
		if !ok {
			errs = append(errs, diagnostics.NewError(diagnostics.ErrU002, d.Loc,
				fmt.Sprintf("export of undeclared name '%s'", d.Name)))
			continue
		}
		exports[d.Name] = sum
	}
	return exports, errs
}

// CachedExports derives a unit's exports, going through the cache when one
// is available. Cache trouble is reported as a warning and never blocks the
// check.
func CachedExports(cache *Cache, u *unitsrc.Unit, src []byte, emitter diagnostics.Emitter) Exports {
	if cache == nil {
		exports, errs := DeriveExports(u)
		emitAll(emitter, errs)
		return exports
	}

	fp, err := Fingerprint(src)
	if err != nil {
		emitter.Emit(diagnostics.NewWarning(diagnostics.ErrL002, u.Loc,
			fmt.Sprintf("export cache disabled for unit '%s': %v", u.Name, err)))
		exports, errs := DeriveExports(u)
		emitAll(emitter, errs)
		return exports
	}

	if exports, ok, err := cache.Lookup(u.Name, fp); err == nil && ok {
		return exports
	} else if err != nil {
		emitter.Emit(diagnostics.NewWarning(diagnostics.ErrL002, u.Loc,
			fmt.Sprintf("export cache lookup failed for unit '%s': %v", u.Name, err)))
	}

	exports, errs := DeriveExports(u)
	emitAll(emitter, errs)
	// Only clean derivations are worth caching.
	if len(errs) == 0 {
		if err := cache.Store(u.Name, fp, exports); err != nil {
			emitter.Emit(diagnostics.NewWarning(diagnostics.ErrL002, u.Loc,
				fmt.Sprintf("export cache store failed for unit '%s': %v", u.Name, err)))
		}
	}
	return exports
}

func emitAll(emitter diagnostics.Emitter, errs []*diagnostics.DiagnosticError) {
	for _, err := range errs {
		emitter.Emit(err)
	}
}
