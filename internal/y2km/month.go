package y2km

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Epoch is the calendar year of month-count 0 (January of this year).
const Epoch = 2000

// Month is a count of months since January 2000.
type Month int16

const (
	// MinMonth is the earliest representable month, -731-05.
	MinMonth Month = math.MinInt16

	// MaxMonth is the latest representable month, 4730-08.
	MaxMonth Month = math.MaxInt16
)

// NewMonth returns the Month for a calendar year and month.
// The month is not checked against 1..12; month 13 rolls into the next year.
func NewMonth(year int, month time.Month) (Month, error) {
	return RangeReject.fit(monthCount(int64(year), int64(month)))
}

// monthCount maps (year, month) to months since the epoch.
func monthCount(year, month int64) int64 {
	return (year-Epoch)*12 + month - 1
}

// floorDiv divides rounding toward negative infinity, so -1 months is
// year 1999 rather than 2000.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Year returns the calendar year of m.
func (m Month) Year() int {
	return floorDiv(int(m), 12) + Epoch
}

// Month returns the calendar month of m.
func (m Month) Month() time.Month {
	return time.Month(int(m) - floorDiv(int(m), 12)*12 + 1)
}

// AddMonths returns m shifted by n months, rejecting results outside the 16-bit range.
func (m Month) AddMonths(n int) (Month, error) {
	return RangeReject.fit(int64(m) + clampOffset(int64(n)))
}

// String formats m as YYYY-MM.
func (m Month) String() string {
	return FormatMonth(m)
}

// MarshalText implements encoding.TextMarshaler.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(FormatMonth(m)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Month) UnmarshalText(text []byte) error {
	v, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// FormatMonth renders m in canonical YYYY-MM form. Years are zero-padded to
// four digits; years before 0 keep their sign ("-731-05").
func FormatMonth(m Month) string {
	return fmt.Sprintf("%04d-%02d", m.Year(), int(m.Month()))
}

// ParseMonth parses a YYYY-MM string under RangeReject.
//
// Only the first two '-' separated fields are read; anything after them is
// ignored, so "2001-06-15" parses as 2001-06. A leading '-' marks a negative
// year. Both fields must be non-empty runs of ASCII digits.
func ParseMonth(s string) (Month, error) {
	return parseMonth(s, RangeReject)
}

func parseMonth(s string, policy RangePolicy) (Month, error) {
	v, err := parseCount(s)
	if err != nil {
		return 0, err
	}
	m, err := policy.fit(v)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Input = s
		}
		return 0, err
	}
	return m, nil
}

// parseCount decodes s into an unbounded month-count.
func parseCount(s string) (int64, error) {
	body := s
	negative := strings.HasPrefix(body, "-")
	if negative {
		body = body[1:]
	}

	fields := strings.SplitN(body, "-", 3)
	if len(fields) < 2 {
		return 0, newParseError(s, "expected YYYY-MM: missing '-' separator")
	}

	year, err := parseDigits(fields[0])
	if err != nil {
		return 0, newParseError(s, "year: "+err.Error())
	}
	month, err := parseDigits(fields[1])
	if err != nil {
		return 0, newParseError(s, "month: "+err.Error())
	}

	if negative {
		year = -year
	}
	return monthCount(year, month), nil
}

// maxFieldDigits bounds field width so the month-count cannot overflow int64.
const maxFieldDigits = 12

func parseDigits(field string) (int64, error) {
	if field == "" {
		return 0, fmt.Errorf("empty field")
	}
	if len(field) > maxFieldDigits {
		return 0, fmt.Errorf("%q has too many digits", field)
	}
	for i := 0; i < len(field); i++ {
		if field[i] < '0' || field[i] > '9' {
			return 0, fmt.Errorf("%q is not numeric", field)
		}
	}
	return strconv.ParseInt(field, 10, 64)
}

// RangePolicy decides what happens to month-counts outside [MinMonth, MaxMonth].
type RangePolicy int

const (
	// RangeReject fails with RANGE_OVERFLOW.
	RangeReject RangePolicy = iota

	// RangeSaturate clamps to MinMonth or MaxMonth.
	RangeSaturate
)

// String returns the config name of the policy.
func (p RangePolicy) String() string {
	switch p {
	case RangeReject:
		return "reject"
	case RangeSaturate:
		return "saturate"
	default:
		return fmt.Sprintf("RangePolicy(%d)", int(p))
	}
}

// ParseRangePolicy maps a config name to its RangePolicy.
func ParseRangePolicy(name string) (RangePolicy, error) {
	switch name {
	case "reject", "":
		return RangeReject, nil
	case "saturate":
		return RangeSaturate, nil
	default:
		return RangeReject, fmt.Errorf("unknown range policy %q: must be reject or saturate", name)
	}
}

// fit narrows v to a Month under the policy.
func (p RangePolicy) fit(v int64) (Month, error) {
	if v >= int64(MinMonth) && v <= int64(MaxMonth) {
		return Month(v), nil
	}
	if p == RangeSaturate {
		if v < int64(MinMonth) {
			return MinMonth, nil
		}
		return MaxMonth, nil
	}
	return 0, newRangeOverflow(v)
}

// offsetLimit exceeds the width of the whole range, so clamping an offset to it
// never changes whether or in which direction a shift overflows.
const offsetLimit = 1 << 20

func clampOffset(n int64) int64 {
	switch {
	case n > offsetLimit:
		return offsetLimit
	case n < -offsetLimit:
		return -offsetLimit
	default:
		return n
	}
}
