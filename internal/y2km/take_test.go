package y2km

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTake(t *testing.T) {
	s := mustStrings(t, "2000-01", "1999-12", "2001-06")

	out, err := s.Take([]int{2, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []int16{17, 0, 0}, out.Values())

	out, err = s.Take([]int{-1, -3})
	require.NoError(t, err)
	assert.Equal(t, []int16{17, 0}, out.Values())
}

func TestTakeSingleIndexStaysSequence(t *testing.T) {
	s := mustStrings(t, "2000-01", "1999-12")

	out, err := s.Take([]int{1})
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, Month(-1), out.Value(0))
}

func TestTakeOutOfRange(t *testing.T) {
	s := mustStrings(t, "2000-01", "1999-12", "2001-06")

	_, err := s.Take([]int{3})
	assert.True(t, IsIndexError(err))

	_, err = s.Take([]int{-4})
	assert.True(t, IsIndexError(err))

	_, err = mustAny(t).Take([]int{0})
	assert.True(t, IsIndexError(err))
}

func TestTakeEmptyIndices(t *testing.T) {
	out, err := mustStrings(t, "2000-01").Take(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestTakeWithFill(t *testing.T) {
	s := mustStrings(t, "2000-01", "1999-12", "2001-06")
	fill := Month(7)

	out, err := s.TakeWithFill([]int{-1}, FillWith(fill))
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, fill, out.Value(0))
	assert.False(t, out.IsNull(0))

	out, err = s.TakeWithFill([]int{0, -1, 2}, FillMissing)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false}, out.IsMissing())
	assert.Equal(t, Month(17), out.Value(2))
}

func TestTakeWithFillErrors(t *testing.T) {
	s := mustStrings(t, "2000-01", "1999-12")

	_, err := s.TakeWithFill([]int{-2}, FillMissing)
	assert.True(t, IsIndexError(err))

	_, err = s.TakeWithFill([]int{2}, FillMissing)
	assert.True(t, IsIndexError(err))
}

func TestTakePreservesMissing(t *testing.T) {
	s := mustAny(t, nil, "2001-06")

	out, err := s.Take([]int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, out.IsMissing())

	out, err = s.TakeWithFill([]int{1, 0}, FillWith(3))
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, out.IsMissing())
}

func TestFillAccessors(t *testing.T) {
	assert.True(t, FillMissing.IsMissing())
	f := FillWith(17)
	assert.False(t, f.IsMissing())
	assert.Equal(t, Month(17), f.Month())
}
