package semir

import "github.com/funvibe/funcheck/internal/ice"

// Scope is one lexical or namespace scope's visible bindings: at most one
// instruction bound per name at any time.
type Scope struct {
	Names map[NameID]InstID
}

// NameScopes is the arena of scopes for a check session.
type NameScopes struct {
	scopes []Scope
}

func NewNameScopes() *NameScopes {
	return &NameScopes{}
}

// NewScope allocates an empty scope.
func (s *NameScopes) NewScope() ScopeID {
	s.scopes = append(s.scopes, Scope{Names: make(map[NameID]InstID)})
	return ScopeID(len(s.scopes))
}

// Lookup returns the instruction currently bound to the name, if any.
func (s *NameScopes) Lookup(scope ScopeID, name NameID) (InstID, bool) {
	id, ok := s.get(scope).Names[name]
	return id, ok
}

// Bind sets the name's binding unconditionally, inserting if absent.
func (s *NameScopes) Bind(scope ScopeID, name NameID, inst InstID) {
	s.get(scope).Names[name] = inst
}

// Rebind overwrites the name's binding only if one exists. A name with no
// binding is left alone: rebinding never inserts.
func (s *NameScopes) Rebind(scope ScopeID, name NameID, inst InstID) {
	names := s.get(scope).Names
	if _, ok := names[name]; ok {
		names[name] = inst
	}
}

// Len returns the number of bindings in a scope.
func (s *NameScopes) Len(scope ScopeID) int {
	return len(s.get(scope).Names)
}

func (s *NameScopes) get(scope ScopeID) *Scope {
	if !scope.IsValid() || int(scope) > len(s.scopes) {
		ice.Panicf("scope id %d out of range (arena size %d)", scope, len(s.scopes))
	}
	return &s.scopes[scope-1]
}
