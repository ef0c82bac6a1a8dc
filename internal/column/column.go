package column

// Kind identifies the primitive kind backing a column type.
// Values follow the single-letter convention used by array libraries.
type Kind byte

const (
	KindSignedInt   Kind = 'i'
	KindUnsignedInt Kind = 'u'
	KindFloat       Kind = 'f'
	KindBool        Kind = 'b'
	KindText        Kind = 'U'
)

// String returns the single-letter kind code.
func (k Kind) String() string {
	return string(rune(k))
}

// DType describes a logical column type to the host.
// Implementations are stateless and safe for concurrent use.
type DType interface {
	// Name is the stable logical type name used for lookup and persisted metadata.
	Name() string

	// Kind is the primitive kind of the backing buffer.
	Kind() Kind

	IsNumeric() bool
	IsBoolean() bool

	// ArrayFactory returns the constructor set for arrays of this type.
	ArrayFactory() Factory
}

// Factory builds arrays of one DType.
type Factory interface {
	// FromValues wraps raw backing integers.
	FromValues(values []int64) (Array, error)

	// FromStorage copies a persisted backing buffer. A nil valid means every
	// element is present; otherwise valid[i] false marks element i missing.
	FromStorage(values []int64, valid []bool) (Array, error)

	// FromStrings parses the textual form of each element.
	FromStrings(values []string) (Array, error)

	// FromAny dispatches on the dynamic type of the elements. A nil element is missing.
	FromAny(values []any) (Array, error)

	// FromFactorized rebuilds an array from values previously produced by the host's
	// factorization of original.
	FromFactorized(values []int64, original Array) (Array, error)

	// Concat joins arrays of this type in order.
	Concat(arrays []Array) (Array, error)
}

// Array is the operation set the host delegates to a column type.
// Arrays are immutable: every method that returns an Array returns a new,
// independently owned one.
type Array interface {
	DType() DType
	Len() int

	// ByteSize reports the memory accounted to the array, including fixed overhead.
	ByteSize() int

	// Get returns the boxed element at i, or nil when the element is missing.
	Get(i int) (any, error)

	Slice(i, j int) (Array, error)
	Filter(mask []bool) (Array, error)

	// Take gathers elements by position. With allowFill, index -1 selects fill
	// (nil means missing) instead of failing.
	Take(indices []int, allowFill bool, fill any) (Array, error)

	Copy() Array
	IsMissing() []bool
	ToText() []string
}
