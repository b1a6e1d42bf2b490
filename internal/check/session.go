package check

import (
	"github.com/funvibe/funcheck/internal/ice"
	"github.com/funvibe/funcheck/internal/loader"
	"github.com/funvibe/funcheck/internal/semir"
)

// Session holds the cross-unit state of one check run: the shared name
// interner and every unit's export surface. It is the loader's view of
// "the rest of the program".
type Session struct {
	Names *semir.NameTable

	units  []sessionUnit
	byName map[string]semir.UnitID
}

type sessionUnit struct {
	name    string
	exports loader.Exports
}

func NewSession() *Session {
	return &Session{
		Names:  semir.NewNameTable(),
		byName: make(map[string]semir.UnitID),
	}
}

// AddUnit registers a unit's export surface. Reports false when the unit
// name is already taken.
func (s *Session) AddUnit(name string, exports loader.Exports) (semir.UnitID, bool) {
	if _, dup := s.byName[name]; dup {
		return semir.NoUnitID, false
	}
	s.units = append(s.units, sessionUnit{name: name, exports: exports})
	id := semir.UnitID(len(s.units))
	s.byName[name] = id
	return id, true
}

func (s *Session) UnitByName(name string) (semir.UnitID, bool) {
	id, ok := s.byName[name]
	return id, ok
}

func (s *Session) UnitName(id semir.UnitID) string {
	return s.get(id).name
}

func (s *Session) UnitExports(id semir.UnitID) loader.Exports {
	return s.get(id).exports
}

func (s *Session) get(id semir.UnitID) *sessionUnit {
	if !id.IsValid() || int(id) > len(s.units) {
		ice.Panicf("unit id %d out of range (session has %d units)", id, len(s.units))
	}
	return &s.units[id-1]
}
