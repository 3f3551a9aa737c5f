package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionary_InsertGet(t *testing.T) {
	d := New[string, int]()

	_, replaced := d.Insert("a", 1)
	assert.False(t, replaced)

	old, replaced := d.Insert("a", 2)
	assert.True(t, replaced)
	assert.Equal(t, 1, old)

	v, ok := d.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = d.Get("missing")
	assert.False(t, ok)
}

func TestDictionary_Folders(t *testing.T) {
	d := New[string, int]()
	sub := New[string, int]()
	sub.Insert("x", 10)

	_, replaced := d.InsertFolder("math", sub)
	assert.False(t, replaced)

	got, ok := d.GetFolder("math")
	require.True(t, ok)
	assert.Same(t, sub, got)

	// A value and a folder can share a key.
	d.Insert("math", 1)
	assert.True(t, d.Has("math"))
	assert.True(t, d.HasFolder("math"))
}

func TestDictionary_DeepAccess(t *testing.T) {
	d := New[string, int]()
	inner := New[string, int]()
	inner.Insert("leaf", 42)
	mid := New[string, int]()
	mid.InsertFolder("inner", inner)
	d.InsertFolder("mid", mid)

	v, ok := d.GetDeep("mid", "inner", "leaf")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	assert.True(t, d.HasDeep("mid", "inner", "leaf"))
	assert.False(t, d.HasDeep("mid", "inner", "nope"))
	assert.False(t, d.HasDeep("nope", "inner", "leaf"))

	_, ok = d.GetDeep()
	assert.False(t, ok, "empty path resolves to nothing")

	v, ok = d.RemoveDeep("mid", "inner", "leaf")
	require.True(t, ok)
	assert.Equal(t, 42, v)
	assert.False(t, d.HasDeep("mid", "inner", "leaf"))
}

func TestDictionary_Remove(t *testing.T) {
	d := New[string, int]()
	d.Insert("a", 1)
	sub := New[string, int]()
	d.InsertFolder("f", sub)

	v, ok := d.Remove("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = d.Remove("a")
	assert.False(t, ok)

	f, ok := d.RemoveFolder("f")
	require.True(t, ok)
	assert.Same(t, sub, f)
	_, ok = d.RemoveFolder("f")
	assert.False(t, ok)
}

func TestDictionary_Counts(t *testing.T) {
	d := New[string, int]()
	assert.True(t, d.NoValues())
	assert.True(t, d.NoFolders())

	d.Insert("a", 1)
	d.Insert("b", 2)
	d.InsertFolder("f", New[string, int]())

	assert.Equal(t, 2, d.ValueCount())
	assert.Equal(t, 1, d.FolderCount())
	assert.False(t, d.NoValues())
	assert.False(t, d.NoFolders())
}

func TestDictionary_Iteration(t *testing.T) {
	d := New[string, int]()
	d.Insert("a", 1)
	d.Insert("b", 2)
	d.InsertFolder("f", New[string, int]())

	seen := map[string]int{}
	for k, v := range d.Entries() {
		seen[k] = v
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, seen)

	folders := 0
	for range d.Folders() {
		folders++
	}
	assert.Equal(t, 1, folders)
}

func TestDictionary_SortedKeys(t *testing.T) {
	d := New[string, int]()
	d.Insert("b", 2)
	d.Insert("a", 1)
	d.InsertFolder("z", New[string, int]())
	d.InsertFolder("y", New[string, int]())

	values, folders := d.SortedKeys(func(a, b string) bool { return a < b })
	assert.Equal(t, []string{"a", "b"}, values)
	assert.Equal(t, []string{"y", "z"}, folders)
}
