package fact

import (
	"fmt"
	"sort"
)

// Store holds the current facts, at most one value per fact type.
//
// A Store is exclusively owned by one state machine and is not safe for
// concurrent use. It is mutated only by inserts (overwrite by identity) and
// takes (remove by identity); the transition machinery never iterates it
// except to test membership.
type Store struct {
	values map[ID]any
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{values: make(map[ID]any)}
}

// Set stores v under the given identity, overwriting any prior value.
//
// INVARIANT: the caller must pair id with a value of the identified type.
// The generic accessors and the transition binding layer maintain this;
// direct callers that break it will trip the fatal mismatch check on Take.
func (s *Store) Set(id ID, v any) {
	s.values[id] = v
}

// Insert stores v under its own dynamic type and returns that identity.
func (s *Store) Insert(v any) ID {
	id := TypeID(typeOf(v))
	s.values[id] = v
	return id
}

// Remove deletes and returns the value stored under id.
// The second result is false when no value is present.
func (s *Store) Remove(id ID) (any, bool) {
	v, ok := s.values[id]
	if ok {
		delete(s.values, id)
	}
	return v, ok
}

// Has reports whether a value is stored under id.
func (s *Store) Has(id ID) bool {
	_, ok := s.values[id]
	return ok
}

// Len returns the number of stored facts.
func (s *Store) Len() int {
	return len(s.values)
}

// IDs returns the identities of all stored facts, sorted by name for
// deterministic output.
func (s *Store) IDs() []ID {
	ids := make([]ID, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// Peek returns the value stored under id without removing it.
// Used for display only; transitions must go through Remove.
func (s *Store) Peek(id ID) (any, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Put stores v under IDOf[T], overwriting any prior value for that type.
func Put[T any](s *Store, v T) {
	s.Set(IDOf[T](), v)
}

// Take removes and returns the fact of type T.
//
// Take panics if the store does not contain the fact or if the stored value
// has the wrong dynamic type. Both indicate an invariant violation - a bug
// in requirement bookkeeping or misuse of an unchecked path - and the
// contract is to fail loudly, never to continue with corrupted state.
func Take[T any](s *Store) T {
	id := IDOf[T]()
	v, ok := s.Remove(id)
	if !ok {
		panic(fmt.Sprintf("fact: store does not contain required fact %s", id))
	}
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("fact: wrong dynamic type %T stored for fact %s", v, id))
	}
	return t
}

// TakeOptional removes and returns the fact of type T if present.
// Unlike Take it never panics on absence.
func TakeOptional[T any](s *Store) (T, bool) {
	id := IDOf[T]()
	v, ok := s.Remove(id)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("fact: wrong dynamic type %T stored for fact %s", v, id))
	}
	return t, true
}

// Contains reports whether the store holds a fact of type T, without
// removing it.
func Contains[T any](s *Store) bool {
	return s.Has(IDOf[T]())
}
