package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sems/internal/fact"
)

func pure(t *testing.T, fn any) *Transition {
	t.Helper()
	tr, err := New(fn)
	require.NoError(t, err)
	return tr
}

func TestAndThen_ProducerFeedsConsumer(t *testing.T) {
	// () -> A composed with (A) -> B needs nothing and yields B.
	first := pure(t, func() bindA { return bindA{N: 10} })
	second := pure(t, func(a bindA) bindB { return bindB{N: a.N * 2} })

	chained, err := first.AndThen(second)
	require.NoError(t, err)

	assert.Empty(t, chained.Requires())
	assert.Equal(t, ids(fact.IDOf[bindB]()), chained.Produces())

	s := fact.NewStore()
	chained.Apply(s)
	assert.Equal(t, bindB{N: 20}, fact.Take[bindB](s))
	assert.False(t, fact.Contains[bindA](s), "intermediate fact consumed")
}

func TestAndThen_UnsatisfiableReorder(t *testing.T) {
	// Both halves consume A and the first does not replace it.
	first := pure(t, func(bindA) bindB { return bindB{} })
	second := pure(t, func(bindA) bindC { return bindC{} })

	_, err := first.AndThen(second)
	require.Error(t, err)
	assert.True(t, IsUnsatisfiableReorder(err))

	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, fact.IDOf[bindA](), be.Fact)
}

func TestAndThen_SharedRequirementSatisfiedByFirst(t *testing.T) {
	// Both halves consume A but the first produces it back, so the
	// second finds its input in place.
	first := pure(t, func(a bindA) bindA { return bindA{N: a.N + 1} })
	second := pure(t, func(a bindA) bindB { return bindB{N: a.N} })

	chained, err := first.AndThen(second)
	require.NoError(t, err)
	assert.Equal(t, ids(fact.IDOf[bindA]()), chained.Requires())
	assert.Equal(t, ids(fact.IDOf[bindB]()), chained.Produces())

	s := fact.NewStore()
	fact.Put(s, bindA{N: 1})
	chained.Apply(s)
	assert.Equal(t, bindB{N: 2}, fact.Take[bindB](s))
}

func TestAndThen_ProducerIntoIdentity(t *testing.T) {
	// () -> A then (A) -> A: the intermediate requirement cancels out.
	first := pure(t, func() bindA { return bindA{N: 1} })
	second := pure(t, func(a bindA) bindA { return bindA{N: a.N + 1} })

	chained, err := first.AndThen(second)
	require.NoError(t, err)
	assert.Empty(t, chained.Requires())
	assert.Equal(t, ids(fact.IDOf[bindA]()), chained.Produces())
}

func TestAndThen_SurvivingProduction(t *testing.T) {
	// The first half's B is untouched by the second half and survives.
	first := pure(t, func() (bindA, bindB) { return bindA{}, bindB{} })
	second := pure(t, func(bindA) bindC { return bindC{} })

	chained, err := first.AndThen(second)
	require.NoError(t, err)
	assert.Empty(t, chained.Requires())
	assert.Equal(t, ids(fact.IDOf[bindB](), fact.IDOf[bindC]()), chained.Produces())
}

func TestAndThen_RevalidatedPerComposition(t *testing.T) {
	// (A) -> B then (B) -> A is fine, but chaining a second A consumer
	// onto it must fail: the composite produces A, requires A, and the
	// new half requires A without the composite producing it first.
	first := pure(t, func(bindA) bindB { return bindB{} })
	second := pure(t, func(bindB) bindA { return bindA{} })
	roundTrip, err := first.AndThen(second)
	require.NoError(t, err)

	again := pure(t, func(bindA) bindC { return bindC{} })
	chained, err := roundTrip.AndThen(again)
	require.NoError(t, err)
	assert.Equal(t, ids(fact.IDOf[bindA]()), chained.Requires())
	assert.Equal(t, ids(fact.IDOf[bindC]()), chained.Produces())

	s := fact.NewStore()
	fact.Put(s, bindA{N: 1})
	chained.Apply(s)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, bindC{}, fact.Take[bindC](s))
}

func TestAndThen_Mut(t *testing.T) {
	calls := 0
	first, err := NewMut(func() bindA {
		calls++
		return bindA{N: calls}
	})
	require.NoError(t, err)
	second, err := NewMut(func(a bindA) bindB { return bindB{N: a.N} })
	require.NoError(t, err)

	chained, err := first.AndThen(second)
	require.NoError(t, err)

	s := fact.NewStore()
	chained.Apply(s)
	assert.Equal(t, bindB{N: 1}, fact.Take[bindB](s))
	chained.Apply(s)
	assert.Equal(t, bindB{N: 2}, fact.Take[bindB](s))
}

func TestAndThen_OnceConsumesOperands(t *testing.T) {
	first, err := NewOnce(func() bindA { return bindA{} })
	require.NoError(t, err)
	second, err := NewOnce(func(bindA) bindB { return bindB{} })
	require.NoError(t, err)

	chained, err := first.AndThen(second)
	require.NoError(t, err)

	assert.True(t, first.Spent(), "composition consumes the first operand")
	assert.True(t, second.Spent(), "composition consumes the second operand")
	assert.False(t, chained.Spent())

	s := fact.NewStore()
	chained.Apply(s)
	assert.True(t, chained.Spent())
	assert.Equal(t, bindB{}, fact.Take[bindB](s))
}

func TestAndThen_OnceFailureLeavesOperandsUsable(t *testing.T) {
	first, err := NewOnce(func(bindA) bindB { return bindB{} })
	require.NoError(t, err)
	second, err := NewOnce(func(bindA) bindC { return bindC{} })
	require.NoError(t, err)

	_, composeErr := first.AndThen(second)
	require.Error(t, composeErr)
	assert.True(t, IsUnsatisfiableReorder(composeErr))

	// A failed composition must not spend either operand.
	assert.False(t, first.Spent())
	assert.False(t, second.Spent())

	s := fact.NewStore()
	fact.Put(s, bindA{})
	first.Apply(s)
	assert.Equal(t, bindB{}, fact.Take[bindB](s))
}

func TestAndThen_LongChain(t *testing.T) {
	start := pure(t, func() bindA { return bindA{N: 0} })
	inc := pure(t, func(a bindA) bindA { return bindA{N: a.N + 1} })

	chained := start
	var err error
	for i := 0; i < 4; i++ {
		chained, err = chained.AndThen(inc)
		require.NoError(t, err)
	}

	assert.Empty(t, chained.Requires())

	s := fact.NewStore()
	chained.Apply(s)
	assert.Equal(t, bindA{N: 4}, fact.Take[bindA](s))
}
