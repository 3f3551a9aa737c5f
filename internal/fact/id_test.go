package fact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type idFixtureA struct{ n int }
type idFixtureB struct{ n int }

func TestIDOf_DistinctTypes(t *testing.T) {
	// Structurally identical but distinct types must not collide.
	assert.NotEqual(t, IDOf[idFixtureA](), IDOf[idFixtureB]())
	assert.NotEqual(t, IDOf[int](), IDOf[int64]())
	assert.NotEqual(t, IDOf[idFixtureA](), IDOf[int]())
}

func TestIDOf_Idempotent(t *testing.T) {
	first := IDOf[idFixtureA]()
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, IDOf[idFixtureA]())
	}
}

func TestIDOf_UsableAsMapKey(t *testing.T) {
	seen := map[ID]int{
		IDOf[idFixtureA](): 1,
		IDOf[idFixtureB](): 2,
	}
	assert.Equal(t, 1, seen[IDOf[idFixtureA]()])
	assert.Equal(t, 2, seen[IDOf[idFixtureB]()])
}

func TestID_Zero(t *testing.T) {
	var zero ID
	assert.True(t, zero.IsZero())
	assert.Equal(t, "<none>", zero.String())
	assert.False(t, IDOf[idFixtureA]().IsZero())
}

func TestID_String(t *testing.T) {
	assert.Equal(t, "fact.idFixtureA", IDOf[idFixtureA]().String())
	assert.Equal(t, "int", IDOf[int]().String())
}
