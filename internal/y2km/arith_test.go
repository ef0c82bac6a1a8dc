package y2km

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubDatesYieldsDeltas(t *testing.T) {
	a := mustStrings(t, "2001-01")
	b := mustStrings(t, "2000-01")

	res, err := a.Sub(b)
	require.NoError(t, err)

	deltas, ok := res.(Deltas)
	require.True(t, ok, "date - date must be a duration, got %T", res)
	assert.Equal(t, []int32{12}, deltas.Values())
}

func TestSubTextYieldsDeltas(t *testing.T) {
	res, err := mustStrings(t, "2001-06", "1999-12").Sub(Text("2000-01"))
	require.NoError(t, err)
	assert.Equal(t, []int32{17, -1}, res.(Deltas).Values())
}

func TestSubIntegerYieldsSequence(t *testing.T) {
	res, err := mustStrings(t, "2000-01").Sub(Int(1))
	require.NoError(t, err)

	s, ok := res.(*Sequence)
	require.True(t, ok, "date - integer must be a date, got %T", res)
	assert.Equal(t, []string{"1999-12"}, s.ToText())

	res, err = mustStrings(t, "2000-01", "2000-01").Sub(Ints{1, 12})
	require.NoError(t, err)
	assert.Equal(t, []string{"1999-12", "1999-01"}, res.(*Sequence).ToText())
}

func TestAddInteger(t *testing.T) {
	s, err := mustStrings(t, "2000-01").Add(Int(14))
	require.NoError(t, err)
	assert.Equal(t, []string{"2001-03"}, s.ToText())

	s, err = mustStrings(t, "2000-01", "2000-06").Add(Ints{1, -6})
	require.NoError(t, err)
	assert.Equal(t, []string{"2000-02", "1999-12"}, s.ToText())
}

func TestAddDatesRejected(t *testing.T) {
	pairs := [][2][]string{
		{{"2000-01"}, {"2000-01"}},
		{{"2000-01", "2001-06"}, {"1999-12", "1999-12"}},
		{{"2000-01", "2001-06"}, {"1999-12"}},
	}
	for _, p := range pairs {
		a := mustStrings(t, p[0]...)
		b := mustStrings(t, p[1]...)
		_, err := a.Add(b)
		assert.True(t, IsInvalidOperation(err), "%v + %v: %v", a, b, err)
	}

	_, err := mustStrings(t, "2000-01").Add(Text("2000-01"))
	assert.True(t, IsInvalidOperation(err))
}

func TestArithmeticIdentities(t *testing.T) {
	a := mustStrings(t, "2000-01", "1999-12", "2001-06", "1970-01")
	for _, n := range []int{0, 1, -1, 14, -240, 1000} {
		shifted, err := a.Add(Int(n))
		require.NoError(t, err)

		back, err := shifted.Sub(Int(n))
		require.NoError(t, err)
		assert.Equal(t, a.Values(), back.(*Sequence).Values(), "(a+%d)-%d", n, n)

		delta, err := shifted.Sub(a)
		require.NoError(t, err)
		for _, d := range delta.(Deltas).Values() {
			assert.Equal(t, int32(n), d)
		}
	}
}

func TestArithmeticLengthMismatch(t *testing.T) {
	s := mustStrings(t, "2000-01", "2000-02")

	_, err := s.Add(Ints{1, 2, 3})
	assert.True(t, IsLengthMismatch(err))

	_, err = s.Sub(Ints{})
	assert.True(t, IsLengthMismatch(err))

	_, err = s.Sub(mustStrings(t, "2000-01", "2000-01", "2000-01"))
	assert.True(t, IsLengthMismatch(err))
}

func TestArithmeticUnsupportedOperand(t *testing.T) {
	s := mustStrings(t, "2000-01")

	_, err := s.Add(nil)
	assert.True(t, IsTypeMismatch(err))

	_, err = s.Sub(nil)
	assert.True(t, IsTypeMismatch(err))
}

func TestShiftRangePolicy(t *testing.T) {
	s := FromMonths([]Month{MaxMonth})
	_, err := s.Add(Int(1))
	assert.True(t, IsRangeOverflow(err))

	_, err = FromMonths([]Month{MinMonth}).Sub(Int(1))
	assert.True(t, IsRangeOverflow(err))

	sat := FromMonths([]Month{MaxMonth, MinMonth}, WithRangePolicy(RangeSaturate))
	out, err := sat.Add(Ints{1 << 30, -(1 << 30)})
	require.NoError(t, err)
	assert.Equal(t, []Month{MaxMonth, MinMonth}, out.Months())
	assert.Equal(t, RangeSaturate, out.Policy())
}

func TestArithmeticPropagatesMissing(t *testing.T) {
	s := mustAny(t, "2000-01", nil)

	shifted, err := s.Add(Int(1))
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true}, shifted.IsMissing())

	res, err := s.Sub(mustStrings(t, "1999-01"))
	require.NoError(t, err)
	d := res.(Deltas)
	assert.Equal(t, int32(12), d.Value(0))
	assert.True(t, d.IsNull(1))
	assert.Equal(t, 1, d.NullCount())
}

func TestDiffAndShift(t *testing.T) {
	a := mustStrings(t, "2001-01", "2000-01")
	b := mustStrings(t, "2000-01")

	d, err := a.Diff(b)
	require.NoError(t, err)
	assert.Equal(t, []int32{12, 0}, d.Values())

	s, err := a.Shift(-12)
	require.NoError(t, err)
	assert.Equal(t, []string{"2000-01", "1999-01"}, s.ToText())
}
