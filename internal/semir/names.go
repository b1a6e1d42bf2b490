package semir

import "github.com/funvibe/funcheck/internal/ice"

// NameTable interns identifier strings for a whole check session, so names
// compare as integers across units.
type NameTable struct {
	byName map[string]NameID
	names  []string
}

func NewNameTable() *NameTable {
	return &NameTable{byName: make(map[string]NameID)}
}

// Intern returns the ID for the given name, allocating one if needed.
func (t *NameTable) Intern(name string) NameID {
	if id, ok := t.byName[name]; ok {
		return id
	}
	t.names = append(t.names, name)
	id := NameID(len(t.names))
	t.byName[name] = id
	return id
}

// Lookup returns the ID for a name without allocating.
func (t *NameTable) Lookup(name string) (NameID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// String returns the text of an interned name.
func (t *NameTable) String(id NameID) string {
	if !id.IsValid() || int(id) > len(t.names) {
		ice.Panicf("name id %d out of range (table size %d)", id, len(t.names))
	}
	return t.names[id-1]
}
