package y2km

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/y2km/internal/column"
)

func TestDTypeDescriptor(t *testing.T) {
	assert.Equal(t, "y2km", DType.Name())
	assert.Equal(t, column.KindSignedInt, DType.Kind())
	assert.True(t, DType.IsNumeric())
	assert.False(t, DType.IsBoolean())
	assert.NotNil(t, DType.ArrayFactory())
}

func TestRegisterAndLookup(t *testing.T) {
	reg := column.NewRegistry()
	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))

	dt, ok := reg.Lookup(TypeName)
	require.True(t, ok)

	arr, err := dt.ArrayFactory().FromStrings([]string{"2000-01", "1999-12", "2001-06"})
	require.NoError(t, err)
	assert.Equal(t, 3, arr.Len())
	assert.Equal(t, TypeName, arr.DType().Name())

	s, ok := SequenceOf(arr)
	require.True(t, ok)
	assert.Equal(t, []int16{0, -1, 17}, s.Values())
}

func TestFactoryConstructors(t *testing.T) {
	f := DType.ArrayFactory()

	arr, err := f.FromValues([]int64{0, 17})
	require.NoError(t, err)
	assert.Equal(t, []string{"2000-01", "2001-06"}, arr.ToText())

	_, err = f.FromValues([]int64{1 << 20})
	assert.True(t, IsRangeOverflow(err))

	arr, err = f.FromAny([]any{"2000-01", nil})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, arr.IsMissing())

	arr, err = f.FromStorage([]int64{17, 99, -1}, []bool{true, false, true})
	require.NoError(t, err)
	assert.Equal(t, []string{"2001-06", "", "1999-12"}, arr.ToText())

	arr, err = f.FromStorage([]int64{0}, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, arr.IsMissing())

	_, err = f.FromStorage([]int64{0, 1}, []bool{true})
	assert.True(t, IsLengthMismatch(err))

	_, err = f.FromStorage([]int64{1 << 20}, nil)
	assert.True(t, IsRangeOverflow(err))

	_, err = f.FromStrings([]string{"bad"})
	assert.True(t, IsParseError(err))

	re, err := f.FromFactorized([]int64{5}, arr)
	require.NoError(t, err)
	assert.Equal(t, []string{"2000-06"}, re.ToText())
}

func TestFactoryConcat(t *testing.T) {
	f := DType.ArrayFactory()
	a, err := f.FromStrings([]string{"2000-01"})
	require.NoError(t, err)
	b, err := f.FromStrings([]string{"2001-06"})
	require.NoError(t, err)

	out, err := f.Concat([]column.Array{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"2000-01", "2001-06"}, out.ToText())

	out, err = f.Concat(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())

	_, err = f.Concat([]column.Array{a, foreignArray{}})
	assert.True(t, IsTypeMismatch(err))
}

func TestArrayOperations(t *testing.T) {
	arr := AsArray(mustAny(t, "2000-01", nil, "2001-06"))

	v, err := arr.Get(0)
	require.NoError(t, err)
	assert.Equal(t, Month(0), v)

	v, err = arr.Get(1)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = arr.Get(3)
	assert.True(t, IsIndexError(err))

	sub, err := arr.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "2001-06"}, sub.ToText())

	filtered, err := arr.Filter([]bool{true, false, true})
	require.NoError(t, err)
	assert.Equal(t, []string{"2000-01", "2001-06"}, filtered.ToText())

	assert.Equal(t, arr.ByteSize(), arr.Copy().ByteSize())
}

func TestArrayTake(t *testing.T) {
	arr := AsArray(mustStrings(t, "2000-01", "1999-12"))

	out, err := arr.Take([]int{-1}, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1999-12"}, out.ToText())

	out, err = arr.Take([]int{-1, 0}, true, nil)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, out.IsMissing())

	out, err = arr.Take([]int{-1}, true, Month(17))
	require.NoError(t, err)
	assert.Equal(t, []string{"2001-06"}, out.ToText())

	out, err = arr.Take([]int{-1}, true, "2001-06")
	require.NoError(t, err)
	assert.Equal(t, []string{"2001-06"}, out.ToText())

	_, err = arr.Take([]int{-1}, true, 3.5)
	assert.True(t, IsTypeMismatch(err))

	_, err = arr.Take([]int{5}, false, nil)
	assert.True(t, IsIndexError(err))
}

// foreignArray is a column.Array of some other type.
type foreignArray struct{ column.Array }
