package y2km

import (
	"github.com/roach88/y2km/internal/column"
)

// TypeName is the logical type name, also persisted as column metadata.
const TypeName = "y2km"

// DType describes the y2km type to a column host.
var DType column.DType = dtype{}

type dtype struct{}

func (dtype) Name() string                 { return TypeName }
func (dtype) Kind() column.Kind            { return column.KindSignedInt }
func (dtype) IsNumeric() bool              { return true }
func (dtype) IsBoolean() bool              { return false }
func (dtype) ArrayFactory() column.Factory { return factory{} }
func (dtype) String() string               { return TypeName }

// Register adds DType to reg.
func Register(reg *column.Registry) error {
	return reg.Register(DType)
}

// AsArray exposes s through the host column contract.
func AsArray(s *Sequence) column.Array {
	return array{seq: s}
}

// SequenceOf returns the Sequence behind a y2km column.Array.
func SequenceOf(a column.Array) (*Sequence, bool) {
	arr, ok := a.(array)
	if !ok {
		return nil, false
	}
	return arr.seq, true
}

type factory struct{}

func (factory) FromValues(values []int64) (column.Array, error) {
	s, err := FromInts(values)
	if err != nil {
		return nil, err
	}
	return AsArray(s), nil
}

func (factory) FromStorage(values []int64, valid []bool) (column.Array, error) {
	if valid != nil && len(valid) != len(values) {
		return nil, newLengthMismatch(len(values), len(valid))
	}
	s := newSequence(len(values), nil)
	for i, v := range values {
		if valid != nil && !valid[i] {
			s.setMissing(i)
			continue
		}
		m, err := fitInteger(v, s.policy)
		if err != nil {
			return nil, err
		}
		s.values[i] = int16(m)
	}
	return AsArray(s), nil
}

func (factory) FromStrings(values []string) (column.Array, error) {
	s, err := FromStrings(values)
	if err != nil {
		return nil, err
	}
	return AsArray(s), nil
}

func (factory) FromAny(values []any) (column.Array, error) {
	s, err := FromAny(values)
	if err != nil {
		return nil, err
	}
	return AsArray(s), nil
}

func (factory) FromFactorized(values []int64, original column.Array) (column.Array, error) {
	orig, _ := SequenceOf(original)
	s, err := FromFactorized(values, orig)
	if err != nil {
		return nil, err
	}
	return AsArray(s), nil
}

func (factory) Concat(arrays []column.Array) (column.Array, error) {
	seqs := make([]*Sequence, len(arrays))
	for i, a := range arrays {
		s, ok := SequenceOf(a)
		if !ok {
			return nil, newTypeMismatch("concat: array %d is %T, not %s", i, a, TypeName)
		}
		seqs[i] = s
	}
	return AsArray(Concat(seqs...)), nil
}

// array adapts *Sequence to column.Array.
type array struct {
	seq *Sequence
}

func (a array) DType() column.DType { return DType }
func (a array) Len() int            { return a.seq.Len() }
func (a array) ByteSize() int       { return a.seq.ByteSize() }
func (a array) Copy() column.Array  { return array{seq: a.seq.Copy()} }
func (a array) IsMissing() []bool   { return a.seq.IsMissing() }
func (a array) ToText() []string    { return a.seq.ToText() }

func (a array) Get(i int) (any, error) {
	m, ok, err := a.seq.Get(i)
	if err != nil || !ok {
		return nil, err
	}
	return m, nil
}

func (a array) Slice(i, j int) (column.Array, error) {
	s, err := a.seq.Slice(i, j)
	if err != nil {
		return nil, err
	}
	return array{seq: s}, nil
}

func (a array) Filter(mask []bool) (column.Array, error) {
	s, err := a.seq.Filter(mask)
	if err != nil {
		return nil, err
	}
	return array{seq: s}, nil
}

func (a array) Take(indices []int, allowFill bool, fill any) (column.Array, error) {
	var (
		s   *Sequence
		err error
	)
	if allowFill {
		var f Fill
		f, err = a.fillFrom(fill)
		if err != nil {
			return nil, err
		}
		s, err = a.seq.TakeWithFill(indices, f)
	} else {
		s, err = a.seq.Take(indices)
	}
	if err != nil {
		return nil, err
	}
	return array{seq: s}, nil
}

// fillFrom converts a boxed host fill value. nil means missing.
func (a array) fillFrom(fill any) (Fill, error) {
	if fill == nil {
		return FillMissing, nil
	}
	s, err := FromAny([]any{fill}, WithRangePolicy(a.seq.policy))
	if err != nil {
		return Fill{}, err
	}
	if s.IsNull(0) {
		return FillMissing, nil
	}
	return FillWith(s.Value(0)), nil
}
