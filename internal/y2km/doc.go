// Package y2km implements the "months since Y2K" column type.
//
// A Month is a signed 16-bit count of calendar months elapsed since January
// 2000, so 2000-01 is 0, 1999-12 is -1 and 2001-06 is 17. The representable
// range runs from -731-05 (MinMonth) to 4730-08 (MaxMonth).
//
// A Sequence is an immutable column of Months with an explicit presence mask
// for missing elements. It supports the operations a columnar host delegates
// to a custom type (see package column): positional access, slicing, gather
// with fill, concatenation, missing-value queries and text casts, plus
// comparisons and a restricted arithmetic:
//
//	date - date     -> Deltas (months, plain integers)
//	date - integer  -> Sequence
//	date + integer  -> Sequence
//	date + date     -> INVALID_OPERATION
//
// Right-hand operands are passed as an Operand, a closed set of variants
// (*Sequence, Int, Ints, Text), so the date-versus-duration meaning of every
// operation is fixed by the variant rather than guessed from the value.
//
// # Textual form
//
// The wire form is YYYY-MM: four-digit zero-padded year, two-digit month, '-'
// separator. Formatting is canonical. Parsing is lenient: extra trailing
// '-' fields are ignored and the month field is not checked against 1..12.
// ParseMonth(FormatMonth(v)) == v holds for every representable v.
//
// # Range policy
//
// Values that do not fit in 16 bits are never wrapped. A Sequence either
// rejects them with RANGE_OVERFLOW (RangeReject, the default) or clamps them to
// [MinMonth, MaxMonth] (RangeSaturate). Derived sequences inherit the policy.
package y2km
