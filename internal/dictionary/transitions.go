package dictionary

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/sems/internal/machine"
	"github.com/roach88/sems/internal/transition"
)

// PathSeparator separates folder names in a transition path,
// e.g. "math/add_one".
const PathSeparator = "/"

// TransitionDictionary stores named transitions hierarchically.
//
// Names are slash-separated paths; every segment but the last is a folder.
// Segments are normalized to NFC on insert and lookup, so a name registered
// in one Unicode representation is found in any equivalent one.
type TransitionDictionary struct {
	dict *Dictionary[string, *transition.TransitionMut]
}

// NotFoundError reports a lookup for a transition path with no entry.
type NotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no transition registered under %q", e.Path)
}

// NewTransitions creates an empty transition dictionary.
func NewTransitions() *TransitionDictionary {
	return &TransitionDictionary{dict: New[string, *transition.TransitionMut]()}
}

// Add converts fn into a stateful transition and stores it under path,
// creating intermediate folders as needed. An existing transition under the
// same path is replaced.
//
// Conversion errors (duplicate requirement/production, unsupported shape)
// surface here, before the transition is ever stored.
func (d *TransitionDictionary) Add(path string, fn any) error {
	t, err := transition.NewMut(fn)
	if err != nil {
		return fmt.Errorf("add transition %q: %w", path, err)
	}
	return d.Insert(path, t)
}

// Insert stores an already-built transition under path, creating
// intermediate folders as needed.
func (d *TransitionDictionary) Insert(path string, t *transition.TransitionMut) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}
	level := d.dict
	for _, folder := range segments[:len(segments)-1] {
		next, ok := level.GetFolder(folder)
		if !ok {
			next = New[string, *transition.TransitionMut]()
			level.InsertFolder(folder, next)
		}
		level = next
	}
	level.Insert(segments[len(segments)-1], t)
	return nil
}

// Get returns the transition stored under path.
func (d *TransitionDictionary) Get(path string) (*transition.TransitionMut, bool) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, false
	}
	return d.dict.GetDeep(segments...)
}

// Has reports whether a transition is stored under path.
func (d *TransitionDictionary) Has(path string) bool {
	_, ok := d.Get(path)
	return ok
}

// Remove deletes and returns the transition stored under path.
func (d *TransitionDictionary) Remove(path string) (*transition.TransitionMut, bool) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, false
	}
	return d.dict.RemoveDeep(segments...)
}

// Tree returns the underlying dictionary for read-only traversal.
func (d *TransitionDictionary) Tree() *Dictionary[string, *transition.TransitionMut] {
	return d.dict
}

// Runnable returns a dictionary of references to every transition that can
// run against the machine's current facts, recursing through folders and
// pruning branches with nothing runnable.
func (d *TransitionDictionary) Runnable(m *machine.Machine) *Dictionary[string, *transition.TransitionMut] {
	return runnableSubset(d.dict, m)
}

// Run executes the transition stored under path on the machine.
//
// Returns a NotFoundError when no transition is registered under path, or
// the machine's MissingRequirementError when the facts are not in place.
func (d *TransitionDictionary) Run(path string, m *machine.Machine) error {
	t, ok := d.Get(path)
	if !ok {
		return &NotFoundError{Path: path}
	}
	if err := m.Run(t); err != nil {
		return fmt.Errorf("run %q: %w", path, err)
	}
	return nil
}

// Walk visits every transition in the dictionary in sorted path order.
func (d *TransitionDictionary) Walk(visit func(path string, t *transition.TransitionMut)) {
	WalkTransitions(d.dict, visit)
}

// WalkTransitions visits every transition in a transition tree in sorted
// path order. Works on any tree of transitions, including the reference
// trees returned by Runnable.
func WalkTransitions(tree *Dictionary[string, *transition.TransitionMut], visit func(path string, t *transition.TransitionMut)) {
	walk(tree, nil, visit)
}

func walk(level *Dictionary[string, *transition.TransitionMut], prefix []string, visit func(string, *transition.TransitionMut)) {
	values, folders := level.SortedKeys(func(a, b string) bool { return a < b })
	for _, key := range values {
		t, _ := level.Get(key)
		visit(strings.Join(append(prefix, key), PathSeparator), t)
	}
	for _, key := range folders {
		folder, _ := level.GetFolder(key)
		sub := make([]string, len(prefix)+1)
		copy(sub, prefix)
		sub[len(prefix)] = key
		walk(folder, sub, visit)
	}
}

func runnableSubset(level *Dictionary[string, *transition.TransitionMut], m *machine.Machine) *Dictionary[string, *transition.TransitionMut] {
	out := New[string, *transition.TransitionMut]()

	for key, t := range level.Entries() {
		if m.CanRun(t) {
			out.Insert(key, t)
		}
	}

	for key, folder := range level.Folders() {
		sub := runnableSubset(folder, m)
		if sub.NoValues() && sub.NoFolders() {
			continue
		}
		out.InsertFolder(key, sub)
	}

	return out
}

// splitPath splits a slash-separated path into NFC-normalized segments.
func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("transition path is empty")
	}
	segments := strings.Split(path, PathSeparator)
	for i, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("transition path %q has an empty segment", path)
		}
		segments[i] = norm.NFC.String(seg)
	}
	return segments, nil
}
