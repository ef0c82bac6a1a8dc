package y2km

func (*Sequence) result() {}

// Sub subtracts op from s.
//
// Subtracting dates (*Sequence or Text) yields Deltas, the month difference.
// Subtracting integers (Int or Ints) yields a *Sequence shifted back by that
// many months.
func (s *Sequence) Sub(op Operand) (Result, error) {
	switch o := op.(type) {
	case *Sequence, Text:
		view, err := s.resolve(o)
		if err != nil {
			return nil, err
		}
		return s.diff(view), nil
	case Int, Ints:
		view, err := s.resolve(o)
		if err != nil {
			return nil, err
		}
		return s.shift(view, -1)
	default:
		return nil, newTypeMismatch("unsupported operand %T", op)
	}
}

// Add shifts s forward by an integer operand. Adding two dates has no meaning
// and fails with INVALID_OPERATION.
func (s *Sequence) Add(op Operand) (*Sequence, error) {
	switch o := op.(type) {
	case *Sequence, Text:
		return nil, &Error{
			Code:    ErrCodeInvalidOperation,
			Message: "cannot add two dates; add an integer month offset instead",
		}
	case Int, Ints:
		view, err := s.resolve(o)
		if err != nil {
			return nil, err
		}
		return s.shift(view, 1)
	default:
		return nil, newTypeMismatch("unsupported operand %T", op)
	}
}

// Diff returns the months elapsed from other to s, element-wise.
func (s *Sequence) Diff(other *Sequence) (Deltas, error) {
	view, err := s.resolve(other)
	if err != nil {
		return Deltas{}, err
	}
	return s.diff(view), nil
}

// Shift returns s moved by n months. Results outside the 16-bit range follow
// the range policy of s.
func (s *Sequence) Shift(n int) (*Sequence, error) {
	return s.shift(operandView{values: []int64{int64(n)}}, 1)
}

func (s *Sequence) diff(view operandView) Deltas {
	out := make([]int32, len(s.values))
	var valid []bool
	for i, v := range s.values {
		rhs, ok := s.presence(view, i)
		if !ok {
			if valid == nil {
				valid = make([]bool, len(out))
				for j := range valid {
					valid[j] = true
				}
			}
			valid[i] = false
			continue
		}
		out[i] = int32(v) - int32(rhs)
	}
	return Deltas{Vector[int32]{values: out, valid: valid}}
}

// shift adds sign*offset to each element under the range policy.
func (s *Sequence) shift(view operandView, sign int64) (*Sequence, error) {
	out := s.derive(len(s.values))
	for i, v := range s.values {
		offset, ok := s.presence(view, i)
		if !ok {
			out.setMissing(i)
			continue
		}
		m, err := s.policy.fit(int64(v) + sign*clampOffset(offset))
		if err != nil {
			return nil, err
		}
		out.values[i] = int16(m)
	}
	return out, nil
}
