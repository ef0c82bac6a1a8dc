package y2km

import (
	"math"
	"strings"

	"golang.org/x/exp/constraints"
)

// overheadBytes is the fixed per-array overhead reported by ByteSize.
const overheadBytes = 32

// Sequence is an immutable column of Months.
//
// Every operation that derives a sequence (slicing, gathering, concatenation,
// arithmetic) returns a new one with its own buffer; nothing aliases.
type Sequence struct {
	values []int16
	valid  []bool // nil when every element is present
	policy RangePolicy
}

// Option configures sequence construction.
type Option func(*Sequence)

// WithRangePolicy sets the policy for values outside the 16-bit range. The
// policy is inherited by every sequence derived from this one.
func WithRangePolicy(p RangePolicy) Option {
	return func(s *Sequence) {
		s.policy = p
	}
}

func newSequence(n int, opts []Option) *Sequence {
	s := &Sequence{values: make([]int16, n)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// derive allocates an empty sequence of length n sharing s's policy.
func (s *Sequence) derive(n int) *Sequence {
	return &Sequence{values: make([]int16, n), policy: s.policy}
}

// setMissing marks element i missing, allocating the mask on first use.
func (s *Sequence) setMissing(i int) {
	if s.valid == nil {
		s.valid = make([]bool, len(s.values))
		for j := range s.valid {
			s.valid[j] = true
		}
	}
	s.valid[i] = false
	s.values[i] = 0
}

// FromInts wraps raw month-counts. Values outside the 16-bit range are
// rejected or clamped according to the range policy; they never wrap.
func FromInts[T constraints.Integer](values []T, opts ...Option) (*Sequence, error) {
	s := newSequence(len(values), opts)
	for i, v := range values {
		m, err := fitInteger(v, s.policy)
		if err != nil {
			return nil, err
		}
		s.values[i] = int16(m)
	}
	return s, nil
}

// FromInt wraps a single month-count as a length-1 sequence.
func FromInt[T constraints.Integer](v T, opts ...Option) (*Sequence, error) {
	return FromInts([]T{v}, opts...)
}

// FromMonths wraps Months, which are in range by construction.
func FromMonths(months []Month, opts ...Option) *Sequence {
	s := newSequence(len(months), opts)
	for i, m := range months {
		s.values[i] = int16(m)
	}
	return s
}

// FromStorage copies a host buffer of month-counts with its presence mask.
// A nil valid means every element is present.
func FromStorage(values []int16, valid []bool, opts ...Option) (*Sequence, error) {
	if valid != nil && len(valid) != len(values) {
		return nil, newLengthMismatch(len(values), len(valid))
	}
	s := newSequence(len(values), opts)
	copy(s.values, values)
	for i := range valid {
		if !valid[i] {
			s.setMissing(i)
		}
	}
	return s, nil
}

// FromStrings parses each YYYY-MM string. The first unparseable string fails
// the whole construction.
func FromStrings(strs []string, opts ...Option) (*Sequence, error) {
	s := newSequence(len(strs), opts)
	for i, str := range strs {
		m, err := parseMonth(str, s.policy)
		if err != nil {
			return nil, err
		}
		s.values[i] = int16(m)
	}
	return s, nil
}

// FromAny builds a sequence from boxed scalars, dispatching on the first
// present element: text elements are parsed, integer elements are wrapped.
// nil elements are missing. An empty slice yields an empty sequence.
func FromAny(values []any, opts ...Option) (*Sequence, error) {
	s := newSequence(len(values), opts)

	textual := false
	for _, v := range values {
		if v == nil {
			continue
		}
		switch v.(type) {
		case string, Text:
			textual = true
		}
		break
	}

	for i, v := range values {
		if v == nil {
			s.setMissing(i)
			continue
		}
		var (
			m   Month
			err error
		)
		if textual {
			m, err = s.boxedText(i, v)
		} else {
			m, err = s.boxedInteger(i, v)
		}
		if err != nil {
			return nil, err
		}
		s.values[i] = int16(m)
	}
	return s, nil
}

func (s *Sequence) boxedText(i int, v any) (Month, error) {
	switch t := v.(type) {
	case string:
		return parseMonth(t, s.policy)
	case Text:
		return parseMonth(string(t), s.policy)
	default:
		return 0, newTypeMismatch("element %d: expected text, got %T", i, v)
	}
}

func (s *Sequence) boxedInteger(i int, v any) (Month, error) {
	switch n := v.(type) {
	case Month:
		return n, nil
	case Int:
		return fitInteger(int(n), s.policy)
	case int:
		return fitInteger(n, s.policy)
	case int8:
		return fitInteger(n, s.policy)
	case int16:
		return fitInteger(n, s.policy)
	case int32:
		return fitInteger(n, s.policy)
	case int64:
		return fitInteger(n, s.policy)
	case uint:
		return fitInteger(n, s.policy)
	case uint8:
		return fitInteger(n, s.policy)
	case uint16:
		return fitInteger(n, s.policy)
	case uint32:
		return fitInteger(n, s.policy)
	case uint64:
		return fitInteger(n, s.policy)
	default:
		return 0, newTypeMismatch("element %d: expected integer, got %T", i, v)
	}
}

// FromFactorized rebuilds a sequence from values produced by factorizing
// original. The values are month-counts already; no decoding is needed.
func FromFactorized[T constraints.Integer](values []T, original *Sequence) (*Sequence, error) {
	var opts []Option
	if original != nil {
		opts = append(opts, WithRangePolicy(original.policy))
	}
	return FromInts(values, opts...)
}

func fitInteger[T constraints.Integer](v T, policy RangePolicy) (Month, error) {
	if v < 0 {
		return policy.fit(int64(v))
	}
	if uint64(v) > math.MaxInt64 {
		return policy.fit(math.MaxInt64)
	}
	return policy.fit(int64(v))
}

// Policy returns the range policy of s.
func (s *Sequence) Policy() RangePolicy {
	return s.policy
}

// Len returns the number of elements.
func (s *Sequence) Len() int {
	return len(s.values)
}

// Value returns the stored month-count at i. It panics if i is out of range,
// like slice indexing. A missing element reads as 0; check IsNull.
func (s *Sequence) Value(i int) Month {
	return Month(s.values[i])
}

// IsNull reports whether element i is missing.
func (s *Sequence) IsNull(i int) bool {
	return s.valid != nil && !s.valid[i]
}

// Get returns element i and whether it is present.
func (s *Sequence) Get(i int) (Month, bool, error) {
	if i < 0 || i >= len(s.values) {
		return 0, false, newIndexError(i, len(s.values))
	}
	if s.IsNull(i) {
		return 0, false, nil
	}
	return Month(s.values[i]), true, nil
}

// NullCount returns the number of missing elements.
func (s *Sequence) NullCount() int {
	return countMissing(s.valid)
}

// Values returns a copy of the raw stored month-counts.
func (s *Sequence) Values() []int16 {
	out := make([]int16, len(s.values))
	copy(out, s.values)
	return out
}

// Months returns a copy of the stored values as Months.
func (s *Sequence) Months() []Month {
	out := make([]Month, len(s.values))
	for i, v := range s.values {
		out[i] = Month(v)
	}
	return out
}

// ByteSize returns the value buffer size plus a fixed 32-byte overhead. The
// presence mask is not included; see MaskByteSize.
func (s *Sequence) ByteSize() int {
	return 2*len(s.values) + overheadBytes
}

// MaskByteSize returns the size of the presence mask as a bitmap, one bit per
// element rounded up to whole bytes, or 0 when every element is present.
func (s *Sequence) MaskByteSize() int {
	if s.valid == nil {
		return 0
	}
	return (len(s.values) + 7) / 8
}

// Slice returns a copy of elements [i, j).
func (s *Sequence) Slice(i, j int) (*Sequence, error) {
	if i < 0 || i > len(s.values) {
		return nil, newIndexError(i, len(s.values))
	}
	if j < i || j > len(s.values) {
		return nil, newIndexError(j, len(s.values))
	}

	out := s.derive(j - i)
	copy(out.values, s.values[i:j])
	if s.valid != nil {
		out.valid = compactMask(cloneMask(s.valid[i:j]))
	}
	return out, nil
}

// Filter returns the elements whose mask entry is true, in order.
func (s *Sequence) Filter(mask []bool) (*Sequence, error) {
	if len(mask) != len(s.values) {
		return nil, newLengthMismatch(len(s.values), len(mask))
	}

	n := 0
	for _, keep := range mask {
		if keep {
			n++
		}
	}

	out := s.derive(n)
	k := 0
	for i, keep := range mask {
		if !keep {
			continue
		}
		if s.IsNull(i) {
			out.setMissing(k)
		} else {
			out.values[k] = s.values[i]
		}
		k++
	}
	return out, nil
}

// With returns a copy of s reconfigured by opts, e.g. WithRangePolicy.
func (s *Sequence) With(opts ...Option) *Sequence {
	out := s.Copy()
	for _, opt := range opts {
		opt(out)
	}
	return out
}

// Copy returns a deep copy of s.
func (s *Sequence) Copy() *Sequence {
	out := s.derive(len(s.values))
	copy(out.values, s.values)
	out.valid = cloneMask(s.valid)
	return out
}

// Concat joins sequences in order. The result takes the range policy of the
// first sequence. No sequences yields an empty sequence.
func Concat(seqs ...*Sequence) *Sequence {
	n := 0
	for _, s := range seqs {
		if s != nil {
			n += len(s.values)
		}
	}

	out := &Sequence{values: make([]int16, 0, n)}
	if len(seqs) > 0 && seqs[0] != nil {
		out.policy = seqs[0].policy
	}

	hasMissing := false
	for _, s := range seqs {
		if s != nil && s.valid != nil {
			hasMissing = true
			break
		}
	}
	if hasMissing {
		out.valid = make([]bool, 0, n)
	}

	for _, s := range seqs {
		if s == nil {
			continue
		}
		out.values = append(out.values, s.values...)
		if !hasMissing {
			continue
		}
		for i := range s.values {
			out.valid = append(out.valid, !s.IsNull(i))
		}
	}
	return out
}

// IsMissing reports, per element, whether it holds no value.
func (s *Sequence) IsMissing() []bool {
	out := make([]bool, len(s.values))
	for i := range out {
		out[i] = s.IsNull(i)
	}
	return out
}

// ToText formats every element as YYYY-MM. Missing elements become "".
func (s *Sequence) ToText() []string {
	return s.ToTextNA("")
}

// ToTextNA formats every element as YYYY-MM, rendering missing elements as na.
func (s *Sequence) ToTextNA(na string) []string {
	out := make([]string, len(s.values))
	for i, v := range s.values {
		if s.IsNull(i) {
			out[i] = na
			continue
		}
		out[i] = FormatMonth(Month(v))
	}
	return out
}

// String renders s for debugging, e.g. [2000-01 1999-12 <NA>].
func (s *Sequence) String() string {
	return "[" + strings.Join(s.ToTextNA("<NA>"), " ") + "]"
}
