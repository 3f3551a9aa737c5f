// Package dictionary organizes named transitions into a hierarchical
// namespace.
//
// Dictionary is a generic tree of entries and folders with path-based deep
// access. TransitionDictionary specializes it to string-named transitions,
// normalizes names to NFC so Unicode-equivalent spellings resolve to the
// same entry, and filters by runnability against a state machine.
package dictionary

import (
	"iter"
	"sort"
)

// Dictionary stores values and sub-dictionaries ("folders") under keys,
// forming a tree where values can live at any level.
type Dictionary[K comparable, V any] struct {
	entries map[K]V
	folders map[K]*Dictionary[K, V]
}

// New creates an empty dictionary.
func New[K comparable, V any]() *Dictionary[K, V] {
	return &Dictionary[K, V]{
		entries: make(map[K]V),
		folders: make(map[K]*Dictionary[K, V]),
	}
}

// Insert stores a value under key, returning the previous value if one was
// replaced.
func (d *Dictionary[K, V]) Insert(key K, value V) (V, bool) {
	old, ok := d.entries[key]
	d.entries[key] = value
	return old, ok
}

// InsertFolder stores a sub-dictionary under key, returning the previous
// folder if one was replaced.
func (d *Dictionary[K, V]) InsertFolder(key K, folder *Dictionary[K, V]) (*Dictionary[K, V], bool) {
	old, ok := d.folders[key]
	d.folders[key] = folder
	return old, ok
}

// Get returns the value stored under key.
func (d *Dictionary[K, V]) Get(key K) (V, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// GetFolder returns the sub-dictionary stored under key.
func (d *Dictionary[K, V]) GetFolder(key K) (*Dictionary[K, V], bool) {
	f, ok := d.folders[key]
	return f, ok
}

// GetDeep returns the value at the given key path, descending through
// folders for every key but the last.
func (d *Dictionary[K, V]) GetDeep(keys ...K) (V, bool) {
	if len(keys) == 0 {
		var zero V
		return zero, false
	}
	if len(keys) == 1 {
		return d.Get(keys[0])
	}
	folder, ok := d.folders[keys[0]]
	if !ok {
		var zero V
		return zero, false
	}
	return folder.GetDeep(keys[1:]...)
}

// Remove deletes and returns the value stored under key.
func (d *Dictionary[K, V]) Remove(key K) (V, bool) {
	v, ok := d.entries[key]
	if ok {
		delete(d.entries, key)
	}
	return v, ok
}

// RemoveFolder deletes and returns the sub-dictionary stored under key.
func (d *Dictionary[K, V]) RemoveFolder(key K) (*Dictionary[K, V], bool) {
	f, ok := d.folders[key]
	if ok {
		delete(d.folders, key)
	}
	return f, ok
}

// RemoveDeep deletes and returns the value at the given key path.
func (d *Dictionary[K, V]) RemoveDeep(keys ...K) (V, bool) {
	if len(keys) == 0 {
		var zero V
		return zero, false
	}
	if len(keys) == 1 {
		return d.Remove(keys[0])
	}
	folder, ok := d.folders[keys[0]]
	if !ok {
		var zero V
		return zero, false
	}
	return folder.RemoveDeep(keys[1:]...)
}

// Has reports whether a value is stored under key.
func (d *Dictionary[K, V]) Has(key K) bool {
	_, ok := d.entries[key]
	return ok
}

// HasFolder reports whether a sub-dictionary is stored under key.
func (d *Dictionary[K, V]) HasFolder(key K) bool {
	_, ok := d.folders[key]
	return ok
}

// HasDeep reports whether a value exists at the given key path.
func (d *Dictionary[K, V]) HasDeep(keys ...K) bool {
	if len(keys) == 0 {
		return false
	}
	if len(keys) == 1 {
		return d.Has(keys[0])
	}
	folder, ok := d.folders[keys[0]]
	if !ok {
		return false
	}
	return folder.HasDeep(keys[1:]...)
}

// ValueCount returns the number of values stored at this level.
func (d *Dictionary[K, V]) ValueCount() int {
	return len(d.entries)
}

// FolderCount returns the number of sub-dictionaries at this level.
func (d *Dictionary[K, V]) FolderCount() int {
	return len(d.folders)
}

// NoValues reports whether this level stores no values.
func (d *Dictionary[K, V]) NoValues() bool {
	return len(d.entries) == 0
}

// NoFolders reports whether this level stores no sub-dictionaries.
func (d *Dictionary[K, V]) NoFolders() bool {
	return len(d.folders) == 0
}

// Entries iterates over the values stored at this level.
// Iteration order is unspecified; use SortedKeys for deterministic walks.
func (d *Dictionary[K, V]) Entries() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, v := range d.entries {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Folders iterates over the sub-dictionaries stored at this level.
func (d *Dictionary[K, V]) Folders() iter.Seq2[K, *Dictionary[K, V]] {
	return func(yield func(K, *Dictionary[K, V]) bool) {
		for k, f := range d.folders {
			if !yield(k, f) {
				return
			}
		}
	}
}

// SortedKeys returns this level's value keys and folder keys, each sorted
// with the given ordering. Used for deterministic rendering.
func (d *Dictionary[K, V]) SortedKeys(less func(a, b K) bool) (values, folders []K) {
	for k := range d.entries {
		values = append(values, k)
	}
	for k := range d.folders {
		folders = append(folders, k)
	}
	sort.Slice(values, func(i, j int) bool { return less(values[i], values[j]) })
	sort.Slice(folders, func(i, j int) bool { return less(folders[i], folders[j]) })
	return values, folders
}
