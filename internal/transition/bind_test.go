package transition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sems/internal/fact"
)

type bindA struct{ N int }
type bindB struct{ N int }
type bindC struct{ S string }

func ids(ids ...fact.ID) []fact.ID { return ids }

func TestBindFunc_DerivesSets(t *testing.T) {
	tests := []struct {
		name     string
		fn       any
		requires []fact.ID
		produces []fact.ID
	}{
		{
			name:     "no params no results",
			fn:       func() {},
			requires: nil,
			produces: nil,
		},
		{
			name:     "producer",
			fn:       func() bindA { return bindA{} },
			requires: nil,
			produces: ids(fact.IDOf[bindA]()),
		},
		{
			name:     "consumer",
			fn:       func(bindA) {},
			requires: ids(fact.IDOf[bindA]()),
			produces: nil,
		},
		{
			name:     "transformer",
			fn:       func(bindA) bindB { return bindB{} },
			requires: ids(fact.IDOf[bindA]()),
			produces: ids(fact.IDOf[bindB]()),
		},
		{
			name:     "multiple params and results",
			fn:       func(bindA, bindB) (bindC, bindA) { return bindC{}, bindA{} },
			requires: ids(fact.IDOf[bindA](), fact.IDOf[bindB]()),
			produces: ids(fact.IDOf[bindA](), fact.IDOf[bindC]()),
		},
		{
			name:     "optional param contributes no requirement",
			fn:       func(*bindA) bindB { return bindB{} },
			requires: nil,
			produces: ids(fact.IDOf[bindB]()),
		},
		{
			name:     "optional result contributes no production",
			fn:       func(bindA) *bindB { return nil },
			requires: ids(fact.IDOf[bindA]()),
			produces: nil,
		},
		{
			name:     "optional duplicate of a concrete param is allowed",
			fn:       func(bindA, *bindA) {},
			requires: ids(fact.IDOf[bindA]()),
			produces: nil,
		},
		{
			name:     "two optionals of the same type are allowed",
			fn:       func(*bindA, *bindA) {},
			requires: nil,
			produces: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := bindFunc(tt.fn)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.requires, b.requires.sorted())
			assert.ElementsMatch(t, tt.produces, b.produces.sorted())
		})
	}
}

func TestBindFunc_DuplicateRequirement(t *testing.T) {
	_, err := bindFunc(func(bindA, bindA) {})
	require.Error(t, err)
	assert.True(t, IsDuplicateRequirement(err))

	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, fact.IDOf[bindA](), be.Fact)
}

func TestBindFunc_DuplicateProduction(t *testing.T) {
	_, err := bindFunc(func() (bindA, bindA) { return bindA{}, bindA{} })
	require.Error(t, err)
	assert.True(t, IsDuplicateProduction(err))
}

func TestBindFunc_DuplicateAmongEight(t *testing.T) {
	// The duplicate sits at the arity ceiling.
	fn := func(a bindA, b bindB, c bindC, d int, e string, f bool, g int64, h bindA) {}
	_, err := bindFunc(fn)
	assert.True(t, IsDuplicateRequirement(err))
}

func TestBindFunc_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   any
	}{
		{"not a function", 42},
		{"nil", nil},
		{"nil function", (func())(nil)},
		{"variadic", func(...bindA) {}},
		{"nine parameters", func(int, int8, int16, int32, int64, uint, uint8, uint16, uint32) {}},
		{"nine results", func() (int, int8, int16, int32, int64, uint, uint8, uint16, uint32) {
			return 0, 0, 0, 0, 0, 0, 0, 0, 0
		}},
		{"pointer to pointer parameter", func(**bindA) {}},
		{"pointer to pointer result", func() **bindA { return nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bindFunc(tt.fn)
			require.Error(t, err)
			assert.True(t, IsUnsupportedShape(err), "got %v", err)
		})
	}
}

func TestBindFunc_EightParamsSupported(t *testing.T) {
	fn := func(int, int8, int16, int32, int64, uint, uint8, uint16) {}
	_, err := bindFunc(fn)
	assert.NoError(t, err)
}

func TestBinding_ExtractionOrderLeftToRight(t *testing.T) {
	var order []string
	b, err := bindFunc(func(a bindA, c bindC) {
		order = append(order, "call")
		_ = a
		_ = c
	})
	require.NoError(t, err)

	s := fact.NewStore()
	fact.Put(s, bindA{N: 1})
	fact.Put(s, bindC{S: "x"})
	b.proc(s)

	assert.Equal(t, []string{"call"}, order)
	assert.Equal(t, 0, s.Len(), "both params taken")
}

func TestBinding_OptionalParamNilWhenAbsent(t *testing.T) {
	var got *bindA
	b, err := bindFunc(func(a *bindA) { got = a })
	require.NoError(t, err)

	s := fact.NewStore()
	b.proc(s)
	assert.Nil(t, got)

	fact.Put(s, bindA{N: 3})
	b.proc(s)
	require.NotNil(t, got)
	assert.Equal(t, bindA{N: 3}, *got)
	assert.Equal(t, 0, s.Len(), "optional extraction still takes")
}

func TestBinding_OptionalResultInsertedOnlyWhenPresent(t *testing.T) {
	give := false
	b, err := bindFunc(func() *bindA {
		if give {
			return &bindA{N: 5}
		}
		return nil
	})
	require.NoError(t, err)

	s := fact.NewStore()
	b.proc(s)
	assert.False(t, fact.Contains[bindA](s))

	give = true
	b.proc(s)
	assert.True(t, fact.Contains[bindA](s))
	assert.Equal(t, bindA{N: 5}, fact.Take[bindA](s))
}

func TestBinding_MissingRequiredFactPanics(t *testing.T) {
	b, err := bindFunc(func(bindA) {})
	require.NoError(t, err)

	s := fact.NewStore()
	assert.Panics(t, func() { b.proc(s) })
}

func TestBinding_ResultsInsertedInOrder(t *testing.T) {
	// Later results overwrite earlier ones of the same optional type;
	// here distinct types simply both land.
	b, err := bindFunc(func() (bindA, bindB) { return bindA{N: 1}, bindB{N: 2} })
	require.NoError(t, err)

	s := fact.NewStore()
	b.proc(s)
	assert.Equal(t, bindA{N: 1}, fact.Take[bindA](s))
	assert.Equal(t, bindB{N: 2}, fact.Take[bindB](s))
}
