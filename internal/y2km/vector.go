package y2km

// Vector is an immutable element-wise result with per-element presence.
type Vector[T any] struct {
	values []T
	valid  []bool // nil when every element is present
}

// Len returns the number of elements.
func (v Vector[T]) Len() int {
	return len(v.values)
}

// Value returns element i. The value of a missing element is the zero value.
func (v Vector[T]) Value(i int) T {
	return v.values[i]
}

// IsNull reports whether element i is missing.
func (v Vector[T]) IsNull(i int) bool {
	return v.valid != nil && !v.valid[i]
}

// NullCount returns the number of missing elements.
func (v Vector[T]) NullCount() int {
	return countMissing(v.valid)
}

// Values returns a copy of the element values.
func (v Vector[T]) Values() []T {
	out := make([]T, len(v.values))
	copy(out, v.values)
	return out
}

// Bools is the result of a comparison.
type Bools struct {
	Vector[bool]
}

// All reports whether every element is present and true.
func (b Bools) All() bool {
	for i, v := range b.values {
		if !v || b.IsNull(i) {
			return false
		}
	}
	return true
}

// Any reports whether some present element is true.
func (b Bools) Any() bool {
	for i, v := range b.values {
		if v && !b.IsNull(i) {
			return true
		}
	}
	return false
}

// Not negates every present element. Missing stays missing.
func (b Bools) Not() Bools {
	out := make([]bool, len(b.values))
	for i, v := range b.values {
		out[i] = !v && !b.IsNull(i)
	}
	return Bools{Vector[bool]{values: out, valid: cloneMask(b.valid)}}
}

// Or combines two equal-length results. An element is missing when it is
// missing on either side.
func (b Bools) Or(other Bools) Bools {
	out := make([]bool, len(b.values))
	for i := range b.values {
		out[i] = b.values[i] || other.values[i]
	}
	valid := andMasks(b.valid, other.valid, len(out))
	for i := range out {
		if valid != nil && !valid[i] {
			out[i] = false
		}
	}
	return Bools{Vector[bool]{values: out, valid: valid}}
}

// Deltas is a count of months between two dates. It is a duration, not a date.
type Deltas struct {
	Vector[int32]
}

func (Deltas) result() {}

// Result is the outcome of Sub: a *Sequence for date minus duration, or
// Deltas for date minus date.
type Result interface {
	result() // Sealed - only *Sequence and Deltas implement it
}

func countMissing(valid []bool) int {
	n := 0
	for _, ok := range valid {
		if !ok {
			n++
		}
	}
	return n
}

func cloneMask(valid []bool) []bool {
	if valid == nil {
		return nil
	}
	out := make([]bool, len(valid))
	copy(out, valid)
	return out
}

// andMasks intersects presence masks; nil means all present.
func andMasks(a, b []bool, n int) []bool {
	if a == nil && b == nil {
		return nil
	}
	out := make([]bool, n)
	for i := range out {
		out[i] = (a == nil || a[i]) && (b == nil || b[i])
	}
	return compactMask(out)
}

// compactMask returns nil when every element is present.
func compactMask(valid []bool) []bool {
	for _, ok := range valid {
		if !ok {
			return valid
		}
	}
	return nil
}
