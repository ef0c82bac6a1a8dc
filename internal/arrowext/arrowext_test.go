package arrowext

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/y2km/internal/column"
	"github.com/roach88/y2km/internal/y2km"
)

func testTypes(t *testing.T) *column.Registry {
	t.Helper()
	reg := column.NewRegistry()
	require.NoError(t, y2km.Register(reg))
	return reg
}

// decodeSequence decodes arr as a y2km column and unwraps the Sequence.
func decodeSequence(t *testing.T, arr arrow.Array) *y2km.Sequence {
	t.Helper()
	col, err := Decode(y2km.DType, arr)
	require.NoError(t, err)
	seq, ok := y2km.SequenceOf(col)
	require.True(t, ok, "got %T", col)
	return seq
}

func mustSequence(t *testing.T, values ...any) *y2km.Sequence {
	t.Helper()
	s, err := y2km.FromAny(values)
	require.NoError(t, err)
	return s
}

func TestMonthTypeMetadata(t *testing.T) {
	typ := NewMonthType()
	assert.Equal(t, "y2km", typ.ExtensionName())
	assert.Equal(t, "extension<y2km>", typ.String())
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int16, typ.StorageType()))
	assert.True(t, typ.ExtensionEquals(NewMonthType()))

	got, err := typ.Deserialize(arrow.PrimitiveTypes.Int16, serializedEpoch)
	require.NoError(t, err)
	assert.Equal(t, "y2km", got.ExtensionName())

	_, err = typ.Deserialize(arrow.PrimitiveTypes.Int16, "")
	require.NoError(t, err)

	_, err = typ.Deserialize(arrow.PrimitiveTypes.Int32, serializedEpoch)
	assert.Error(t, err)

	_, err = typ.Deserialize(arrow.PrimitiveTypes.Int16, "epoch=1970-01")
	assert.Error(t, err)
}

func TestRegisterIsIdempotent(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())
	assert.NotNil(t, arrow.GetExtensionType("y2km"))
}

func TestToArrowDecodeRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	seq := mustSequence(t, "2000-01", nil, "1999-12", "2001-06")
	arr := ToArrow(mem, seq)
	defer arr.Release()

	require.Equal(t, 4, arr.Len())
	assert.Equal(t, 1, arr.NullN())

	months, ok := arr.(*MonthArray)
	require.True(t, ok, "got %T", arr)
	assert.Equal(t, "2001-06", months.ValueStr(3))
	assert.Equal(t, y2km.Month(17), months.Month(3))
	assert.Equal(t, nullStr, months.ValueStr(1))
	assert.Equal(t, y2km.Month(-1), months.Month(2))
	assert.Equal(t, "[2000-01 (null) 1999-12 2001-06]", months.String())

	back := decodeSequence(t, arr)
	assert.Equal(t, seq.Values(), back.Values())
	assert.Equal(t, seq.IsMissing(), back.IsMissing())
}

func TestDecodePlainStorage(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewInt16Builder(mem)
	defer b.Release()
	b.AppendValues([]int16{0, 17}, nil)
	arr := b.NewArray()
	defer arr.Release()

	assert.Equal(t, []string{"2000-01", "2001-06"}, decodeSequence(t, arr).ToText())
}

func TestDecodeWidensSignedStorage(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewInt32Builder(mem)
	defer b.Release()
	b.AppendValues([]int32{-1, 0, 12}, []bool{true, false, true})
	arr := b.NewArray()
	defer arr.Release()

	seq := decodeSequence(t, arr)
	assert.Equal(t, []string{"1999-12", "", "2001-01"}, seq.ToText())

	big := array.NewInt32Builder(mem)
	defer big.Release()
	big.Append(1 << 20)
	overflow := big.NewArray()
	defer overflow.Release()

	_, err := Decode(y2km.DType, overflow)
	assert.True(t, y2km.IsRangeOverflow(err))
}

func TestDecodeRejectsOtherTypes(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.Append(1)
	arr := b.NewArray()
	defer arr.Release()

	_, err := Decode(y2km.DType, arr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a signed integer")

	months := ToArrow(mem, mustSequence(t, "2000-01"))
	defer months.Release()

	_, err = Decode(flagType{}, months)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `extension "y2km" is not flag`)
}

func TestIPCRoundTrip(t *testing.T) {
	seq := mustSequence(t, "2000-01", nil, "-731-05", "4730-08")

	var buf bytes.Buffer
	require.NoError(t, WriteIPC(&buf, "start_month", seq))

	name, col, err := ReadIPC(&buf, testTypes(t), y2km.TypeName)
	require.NoError(t, err)
	assert.Equal(t, "start_month", name)
	assert.Equal(t, y2km.TypeName, col.DType().Name())

	back, ok := y2km.SequenceOf(col)
	require.True(t, ok)
	assert.Equal(t, seq.Values(), back.Values())
	assert.Equal(t, seq.IsMissing(), back.IsMissing())
}

func TestIPCEmptyColumn(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIPC(&buf, "empty", mustSequence(t)))

	name, col, err := ReadIPC(&buf, testTypes(t), y2km.TypeName)
	require.NoError(t, err)
	assert.Equal(t, "empty", name)
	assert.Equal(t, 0, col.Len())
}

func TestReadIPCUnknownType(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIPC(&buf, "start", mustSequence(t, "2000-01")))

	_, _, err := ReadIPC(&buf, testTypes(t), "int16")
	assert.ErrorIs(t, err, column.ErrUnknownType)

	_, _, err = ReadIPC(&buf, column.NewRegistry(), y2km.TypeName)
	assert.ErrorIs(t, err, column.ErrUnknownType)
}

func TestReadIPCGarbage(t *testing.T) {
	_, _, err := ReadIPC(bytes.NewReader([]byte("not arrow")), testTypes(t), y2km.TypeName)
	assert.Error(t, err)
}

// flagType is a registered type that is not a signed integer column.
type flagType struct{}

func (flagType) Name() string                 { return "flag" }
func (flagType) Kind() column.Kind            { return column.KindBool }
func (flagType) IsNumeric() bool              { return false }
func (flagType) IsBoolean() bool              { return true }
func (flagType) ArrayFactory() column.Factory { return nil }
