package arrowext

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/roach88/y2km/internal/column"
	"github.com/roach88/y2km/internal/y2km"
)

// ToArrow copies s into a new MonthArray allocated from mem.
// The caller owns the result and must Release it.
func ToArrow(mem memory.Allocator, s *y2km.Sequence) arrow.Array {
	b := array.NewInt16Builder(mem)
	defer b.Release()

	b.Reserve(s.Len())
	for i := 0; i < s.Len(); i++ {
		if s.IsNull(i) {
			b.AppendNull()
			continue
		}
		b.Append(int16(s.Value(i)))
	}

	storage := b.NewArray()
	defer storage.Release()
	return array.NewExtensionArrayWithStorage(NewMonthType(), storage)
}

// Decode copies an Arrow column into an array of ct, built through
// ct.ArrayFactory(). arr may be bare signed-integer storage, or an extension
// array whose extension name must match ct.Name().
func Decode(ct column.DType, arr arrow.Array) (column.Array, error) {
	storage := arr
	if ext, ok := arr.(array.ExtensionArray); ok {
		if name := ext.ExtensionType().ExtensionName(); name != ct.Name() {
			return nil, fmt.Errorf("decode: extension %q is not %s", name, ct.Name())
		}
		storage = ext.Storage()
	}
	if ct.Kind() != column.KindSignedInt {
		return nil, fmt.Errorf("decode: %s has kind %s, not a signed integer", ct.Name(), ct.Kind())
	}

	values, valid, err := signedValues(storage)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ct.ArrayFactory().FromStorage(values, valid)
}

// signedValues widens signed-integer storage to int64. valid is nil when the
// array has no nulls.
func signedValues(arr arrow.Array) ([]int64, []bool, error) {
	var at func(int) int64
	switch a := arr.(type) {
	case *array.Int8:
		at = func(i int) int64 { return int64(a.Value(i)) }
	case *array.Int16:
		at = func(i int) int64 { return int64(a.Value(i)) }
	case *array.Int32:
		at = func(i int) int64 { return int64(a.Value(i)) }
	case *array.Int64:
		at = a.Value
	default:
		return nil, nil, fmt.Errorf("storage type %s is not a signed integer", arr.DataType())
	}

	values := make([]int64, arr.Len())
	var valid []bool
	if arr.NullN() > 0 {
		valid = make([]bool, arr.Len())
	}
	for i := range values {
		if valid != nil {
			valid[i] = arr.IsValid(i)
			if !valid[i] {
				continue
			}
		}
		values[i] = at(i)
	}
	return values, valid, nil
}
