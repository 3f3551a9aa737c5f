package transition

import (
	"sort"

	"github.com/roach88/sems/internal/fact"
)

// idSet is a set of fact identities.
type idSet map[fact.ID]struct{}

func (s idSet) has(id fact.ID) bool {
	_, ok := s[id]
	return ok
}

func (s idSet) add(id fact.ID) {
	s[id] = struct{}{}
}

func (s idSet) clone() idSet {
	out := make(idSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// sorted returns the set's members ordered by name, for deterministic
// accessor output and error messages.
func (s idSet) sorted() []fact.ID {
	ids := make([]fact.ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
