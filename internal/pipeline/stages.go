package pipeline

import (
	"fmt"

	"github.com/funvibe/funcheck/internal/check"
	"github.com/funvibe/funcheck/internal/diagnostics"
	"github.com/funvibe/funcheck/internal/loader"
	"github.com/funvibe/funcheck/internal/unitsrc"
)

// ParseStage turns unit description files into parsed units. Files whose
// header line is broken are diagnosed and dropped.
type ParseStage struct{}

func (ParseStage) Process(ctx *Context) *Context {
	for _, f := range ctx.Files {
		unit, errs := unitsrc.Parse(f.Name, f.Data)
		for _, err := range errs {
			ctx.Diags.Emit(err)
		}
		if unit.Name != "" {
			ctx.Units = append(ctx.Units, unit)
		}
	}
	return ctx
}

// SessionStage derives every unit's export surface (through the cache when
// one is open) and registers the units with a fresh session.
type SessionStage struct{}

func (SessionStage) Process(ctx *Context) *Context {
	ctx.Session = check.NewSession()
	for _, unit := range ctx.Units {
		exports := loader.CachedExports(ctx.Cache, unit, unit.Source, ctx.Diags)
		if _, ok := ctx.Session.AddUnit(unit.Name, exports); !ok {
			ctx.Diags.Emit(diagnostics.NewError(diagnostics.ErrU003, unit.Loc,
				fmt.Sprintf("duplicate unit name '%s'", unit.Name)))
		}
	}
	return ctx
}

// CheckStage runs the merge resolver over each registered unit in order.
type CheckStage struct{}

func (CheckStage) Process(ctx *Context) *Context {
	if ctx.Session == nil {
		return ctx
	}
	ctx.Checked = make(map[string]*check.CheckedUnit, len(ctx.Units))
	for _, unit := range ctx.Units {
		if _, dup := ctx.Checked[unit.Name]; dup {
			// Duplicate unit names were already diagnosed.
			continue
		}
		ctx.Checked[unit.Name] = check.CheckUnit(unit, ctx.Session, ctx.Diags)
	}
	return ctx
}

// Default returns the standard stage order.
func Default() *Pipeline {
	return New(ParseStage{}, SessionStage{}, CheckStage{})
}
