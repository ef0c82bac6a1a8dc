package y2km

// compare applies pred element-wise. Missing on either side gives a missing result.
func (s *Sequence) compare(op Operand, pred func(a, b int64) bool) (Bools, error) {
	view, err := s.resolve(op)
	if err != nil {
		return Bools{}, err
	}

	out := make([]bool, len(s.values))
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
		out[i] = pred(int64(v), rhs)
	}
	return Bools{Vector[bool]{values: out, valid: valid}}, nil
}

// Equal compares element-wise for equality. Text operands are parsed as
// months; integer operands compare against the raw month-counts.
func (s *Sequence) Equal(op Operand) (Bools, error) {
	return s.compare(op, func(a, b int64) bool { return a == b })
}

// Less reports element-wise whether s is earlier than op.
func (s *Sequence) Less(op Operand) (Bools, error) {
	return s.compare(op, func(a, b int64) bool { return a < b })
}

// LessEqual is Less OR Equal.
func (s *Sequence) LessEqual(op Operand) (Bools, error) {
	lt, err := s.Less(op)
	if err != nil {
		return Bools{}, err
	}
	eq, err := s.Equal(op)
	if err != nil {
		return Bools{}, err
	}
	return lt.Or(eq), nil
}

// Greater is NOT LessEqual.
func (s *Sequence) Greater(op Operand) (Bools, error) {
	le, err := s.LessEqual(op)
	if err != nil {
		return Bools{}, err
	}
	return le.Not(), nil
}

// GreaterEqual is NOT Less.
func (s *Sequence) GreaterEqual(op Operand) (Bools, error) {
	lt, err := s.Less(op)
	if err != nil {
		return Bools{}, err
	}
	return lt.Not(), nil
}

// NotEqual is NOT Equal.
func (s *Sequence) NotEqual(op Operand) (Bools, error) {
	eq, err := s.Equal(op)
	if err != nil {
		return Bools{}, err
	}
	return eq.Not(), nil
}
