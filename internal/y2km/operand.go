package y2km

// Operand is the right-hand side of a comparison or arithmetic operation.
// Only *Sequence, Int, Ints and Text implement it.
//
//   - *Sequence: dates, compared by month and subtracted to a duration
//   - Int, Ints: raw month-counts when compared, month offsets in arithmetic
//   - Text: a single YYYY-MM date, parsed before use
type Operand interface {
	operand() // Sealed
}

// Int is a scalar integer operand, broadcast across the left sequence.
type Int int

// Ints is an element-wise integer operand.
type Ints []int

// Text is a scalar YYYY-MM operand, broadcast across the left sequence.
type Text string

func (*Sequence) operand() {}
func (Int) operand()       {}
func (Ints) operand()      {}
func (Text) operand()      {}

// operandView is an operand resolved against a left-hand sequence of length n.
// Scalars and length-1 operands broadcast.
type operandView struct {
	values []int64
	valid  []bool // nil when every element is present
}

func (v operandView) at(i int) (int64, bool) {
	if len(v.values) == 1 {
		i = 0
	}
	return v.values[i], v.valid == nil || v.valid[i]
}

// resolve converts op to a view, checking that it broadcasts against s.
func (s *Sequence) resolve(op Operand) (operandView, error) {
	var view operandView

	switch o := op.(type) {
	case *Sequence:
		if o == nil {
			return view, newTypeMismatch("nil sequence operand")
		}
		view.values = make([]int64, len(o.values))
		for i, v := range o.values {
			view.values[i] = int64(v)
		}
		view.valid = o.valid
	case Int:
		view.values = []int64{int64(o)}
	case Ints:
		view.values = make([]int64, len(o))
		for i, v := range o {
			view.values[i] = int64(v)
		}
	case Text:
		m, err := parseMonth(string(o), s.policy)
		if err != nil {
			return view, err
		}
		view.values = []int64{int64(m)}
	default:
		return view, newTypeMismatch("unsupported operand %T", op)
	}

	if n := len(view.values); n != 1 && n != len(s.values) {
		return view, newLengthMismatch(len(s.values), n)
	}
	return view, nil
}

// presence returns the combined presence of s[i] and the operand at i.
func (s *Sequence) presence(view operandView, i int) (int64, bool) {
	rhs, ok := view.at(i)
	return rhs, ok && !s.IsNull(i)
}
