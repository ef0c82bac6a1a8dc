package y2km

// Fill is the value substituted for index -1 by TakeWithFill.
type Fill struct {
	month   Month
	missing bool
}

// FillMissing fills with a missing element.
var FillMissing = Fill{missing: true}

// FillWith fills with m.
func FillWith(m Month) Fill {
	return Fill{month: m}
}

// IsMissing reports whether the fill is a missing element.
func (f Fill) IsMissing() bool {
	return f.missing
}

// Month returns the fill month. Meaningless when IsMissing.
func (f Fill) Month() Month {
	return f.month
}

// Take gathers elements by position. Negative indices count from the end, so
// -1 is the last element. Any index outside [-Len, Len) fails with INDEX_ERROR.
// The result is always a sequence, even for a single index.
func (s *Sequence) Take(indices []int) (*Sequence, error) {
	n := len(s.values)
	out := s.derive(len(indices))
	for k, idx := range indices {
		i := idx
		if i < 0 {
			i += n
		}
		if i < 0 || i >= n {
			return nil, newIndexError(idx, n)
		}
		out.copyElem(k, s, i)
	}
	return out, nil
}

// TakeWithFill gathers elements by position, placing fill wherever the index
// is -1. Other negative indices and indices >= Len fail with INDEX_ERROR.
func (s *Sequence) TakeWithFill(indices []int, fill Fill) (*Sequence, error) {
	n := len(s.values)
	out := s.derive(len(indices))
	for k, idx := range indices {
		switch {
		case idx == -1:
			if fill.missing {
				out.setMissing(k)
			} else {
				out.values[k] = int16(fill.month)
			}
		case idx < -1 || idx >= n:
			return nil, newIndexError(idx, n)
		default:
			out.copyElem(k, s, idx)
		}
	}
	return out, nil
}

// copyElem copies src[i] into s[k], including its presence.
func (s *Sequence) copyElem(k int, src *Sequence, i int) {
	if src.IsNull(i) {
		s.setMissing(k)
		return
	}
	s.values[k] = src.values[i]
}
