package diagnostics

import (
	"fmt"
	"sort"
)

// Collector is the standard Emitter: it accumulates diagnostics,
// deduplicating by position and code so repeated analysis of the same
// declaration does not multiply identical reports.
type Collector struct {
	set   map[string]*DiagnosticError
	order []string // insertion order, for stable iteration before sorting
}

func NewCollector() *Collector {
	return &Collector{set: make(map[string]*DiagnosticError)}
}

func (c *Collector) Emit(err *DiagnosticError) {
	if err == nil {
		return
	}
	key := fmt.Sprintf("%s:%d:%d:%s", err.Loc.File, err.Loc.Line, err.Loc.Column, err.Code)
	if _, seen := c.set[key]; !seen {
		c.order = append(c.order, key)
	}
	c.set[key] = err
}

// Errors returns all unique diagnostics sorted by position.
func (c *Collector) Errors() []*DiagnosticError {
	result := make([]*DiagnosticError, 0, len(c.order))
	for _, key := range c.order {
		result = append(result, c.set[key])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Loc.Before(result[j].Loc)
	})
	return result
}

func (c *Collector) Count() int { return len(c.set) }

// HasErrors reports whether any error-severity diagnostic was emitted.
func (c *Collector) HasErrors() bool {
	for _, err := range c.set {
		if err.Severity == SeverityError {
			return true
		}
	}
	return false
}
