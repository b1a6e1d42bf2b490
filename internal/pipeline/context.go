package pipeline

import (
	"github.com/funvibe/funcheck/internal/check"
	"github.com/funvibe/funcheck/internal/config"
	"github.com/funvibe/funcheck/internal/diagnostics"
	"github.com/funvibe/funcheck/internal/loader"
	"github.com/funvibe/funcheck/internal/unitsrc"
)

// Context flows through the stages of one check run.
type Context struct {
	// Inputs.
	Files  []unitsrc.SourceFile
	Config *config.Config
	Cache  *loader.Cache // nil when caching is disabled

	// Populated by stages.
	Units   []*unitsrc.Unit
	Session *check.Session
	Checked map[string]*check.CheckedUnit

	Diags *diagnostics.Collector
}

// NewContext prepares a context for the given inputs.
func NewContext(cfg *config.Config, files []unitsrc.SourceFile) *Context {
	return &Context{
		Files:  files,
		Config: cfg,
		Diags:  diagnostics.NewCollector(),
	}
}

// Processor is a single pipeline stage.
type Processor interface {
	Process(*Context) *Context
}
