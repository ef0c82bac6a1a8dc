package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/roach88/y2km/internal/store"
	"github.com/roach88/y2km/internal/testutil"
	"github.com/roach88/y2km/internal/y2km"
)

// missing renders a missing element.
const missing = "NA"

// Harness executes scenario steps against the codec and an in-memory store.
type Harness struct {
	policy y2km.RangePolicy
	store  *store.Store // opened on first put/get
	ids    *testutil.SequentialIDs
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Step failures and mismatched expectations are recorded in the Result; the
// returned error is reserved for infrastructure failures such as the store
// failing to open.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.Default())
}

// RunWithLogger is Run with an explicit logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	policy, err := y2km.ParseRangePolicy(scenario.RangePolicy)
	if err != nil {
		return nil, err
	}
	h := &Harness{
		policy: policy,
		ids:    testutil.NewSequentialIDs(""),
		logger: logger,
	}
	defer h.close()

	ctx := context.Background()
	result := NewResult()
	for i, step := range scenario.Flow {
		output, err := h.exec(ctx, step)

		sr := StepResult{Step: i + 1, Op: step.Op, Output: output}
		if err != nil {
			code, ok := errorCode(err)
			if !ok {
				return nil, fmt.Errorf("step %d (%s): %w", sr.Step, step.Op, err)
			}
			sr.Output = nil
			sr.Error = code
		}
		result.Trace = append(result.Trace, sr)
		h.logger.Debug("scenario step", "scenario", scenario.Name, "step", sr.Step, "op", sr.Op, "error", sr.Error)

		checkExpect(result, step, sr)
	}
	return result, nil
}

// errorCode maps an expected step failure to its code. Other errors are
// infrastructure failures that abort the run.
func errorCode(err error) (string, bool) {
	if code := y2km.CodeOf(err); code != "" {
		return string(code), true
	}
	if errors.Is(err, store.ErrNotFound) {
		return "NOT_FOUND", true
	}
	return "", false
}

func checkExpect(result *Result, step Step, sr StepResult) {
	label := fmt.Sprintf("step %d (%s)", sr.Step, sr.Op)

	if step.Expect == nil || step.Expect.Error == "" {
		if sr.Error != "" {
			result.AddError(fmt.Sprintf("%s: unexpected error %s", label, sr.Error))
			return
		}
	}
	if step.Expect == nil {
		return
	}
	if step.Expect.Error != "" {
		if sr.Error != step.Expect.Error {
			result.AddError(fmt.Sprintf("%s: expected error %s, got %q", label, step.Expect.Error, sr.Error))
		}
		return
	}
	if step.Expect.Output != nil && !slices.Equal(step.Expect.Output, sr.Output) {
		result.AddError(fmt.Sprintf("%s: expected output %v, got %v", label, step.Expect.Output, sr.Output))
	}
}

func (h *Harness) close() {
	if h.store != nil {
		h.store.Close()
	}
}

func (h *Harness) exec(ctx context.Context, step Step) ([]string, error) {
	switch step.Op {
	case OpParse:
		seq, err := h.months(step.Values)
		if err != nil {
			return nil, err
		}
		return offsets(seq), nil

	case OpFormat:
		seq, err := h.counts(step.Values)
		if err != nil {
			return nil, err
		}
		return seq.ToTextNA(missing), nil

	case OpDiff:
		left, right, err := h.pair(step)
		if err != nil {
			return nil, err
		}
		deltas, err := left.Diff(right)
		if err != nil {
			return nil, err
		}
		return render(deltas.Vector), nil

	case OpShift, OpUnshift:
		seq, err := h.months(step.Values)
		if err != nil {
			return nil, err
		}
		var shifted *y2km.Sequence
		if step.Op == OpShift {
			shifted, err = seq.Add(y2km.Int(step.By))
		} else {
			shifted, err = subMonths(seq, step.By)
		}
		if err != nil {
			return nil, err
		}
		return shifted.ToTextNA(missing), nil

	case OpAddDates:
		left, right, err := h.pair(step)
		if err != nil {
			return nil, err
		}
		sum, err := left.Add(right)
		if err != nil {
			return nil, err
		}
		return sum.ToTextNA(missing), nil

	case OpEqual, OpNotEqual, OpLess, OpLessEq, OpGreater, OpGreaterEq:
		left, right, err := h.pair(step)
		if err != nil {
			return nil, err
		}
		bools, err := compare(step.Op, left, right)
		if err != nil {
			return nil, err
		}
		return render(bools.Vector), nil

	case OpConcat:
		left, right, err := h.pair(step)
		if err != nil {
			return nil, err
		}
		return y2km.Concat(left, right).ToTextNA(missing), nil

	case OpTake:
		return h.take(step)

	case OpPut:
		seq, err := h.months(step.Values)
		if err != nil {
			return nil, err
		}
		st, err := h.openStore()
		if err != nil {
			return nil, err
		}
		v, err := st.WriteColumn(ctx, step.Column, seq)
		if err != nil {
			return nil, err
		}
		return []string{v.ID, "v" + strconv.FormatInt(v.Seq, 10)}, nil

	case OpGet:
		st, err := h.openStore()
		if err != nil {
			return nil, err
		}
		seq, _, err := st.ReadColumn(ctx, step.Column)
		if err != nil {
			return nil, err
		}
		return seq.ToTextNA(missing), nil
	}
	return nil, fmt.Errorf("unknown op %q", step.Op)
}

func (h *Harness) take(step Step) ([]string, error) {
	seq, err := h.months(step.Values)
	if err != nil {
		return nil, err
	}

	var taken *y2km.Sequence
	switch step.Fill {
	case "":
		taken, err = seq.Take(step.Indices)
	case missing:
		taken, err = seq.TakeWithFill(step.Indices, y2km.FillMissing)
	default:
		m, parseErr := y2km.ParseMonth(step.Fill)
		if parseErr != nil {
			return nil, parseErr
		}
		taken, err = seq.TakeWithFill(step.Indices, y2km.FillWith(m))
	}
	if err != nil {
		return nil, err
	}
	return taken.ToTextNA(missing), nil
}

func (h *Harness) openStore() (*store.Store, error) {
	if h.store != nil {
		return h.store, nil
	}
	st, err := store.Open(":memory:", store.WithIDGenerator(h.ids), store.WithRangePolicy(h.policy))
	if err != nil {
		return nil, err
	}
	h.store = st
	return st, nil
}

// months parses YYYY-MM elements, NA for missing.
func (h *Harness) months(values []string) (*y2km.Sequence, error) {
	boxed := make([]any, len(values))
	for i, v := range values {
		if v != missing {
			boxed[i] = v
		}
	}
	return y2km.FromAny(boxed, y2km.WithRangePolicy(h.policy))
}

// counts parses decimal month-count elements, NA for missing.
func (h *Harness) counts(values []string) (*y2km.Sequence, error) {
	boxed := make([]any, len(values))
	for i, v := range values {
		if v == missing {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid month-count %q: %w", v, err)
		}
		boxed[i] = n
	}
	return y2km.FromAny(boxed, y2km.WithRangePolicy(h.policy))
}

func (h *Harness) pair(step Step) (*y2km.Sequence, *y2km.Sequence, error) {
	left, err := h.months(step.Values)
	if err != nil {
		return nil, nil, err
	}
	right, err := h.months(step.Other)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func subMonths(seq *y2km.Sequence, by int) (*y2km.Sequence, error) {
	res, err := seq.Sub(y2km.Int(by))
	if err != nil {
		return nil, err
	}
	shifted, ok := res.(*y2km.Sequence)
	if !ok {
		return nil, fmt.Errorf("date - integer returned %T", res)
	}
	return shifted, nil
}

func compare(op string, left, right *y2km.Sequence) (y2km.Bools, error) {
	switch op {
	case OpEqual:
		return left.Equal(right)
	case OpNotEqual:
		return left.NotEqual(right)
	case OpLess:
		return left.Less(right)
	case OpLessEq:
		return left.LessEqual(right)
	case OpGreater:
		return left.Greater(right)
	default:
		return left.GreaterEqual(right)
	}
}

func offsets(seq *y2km.Sequence) []string {
	out := make([]string, seq.Len())
	for i := range out {
		out[i] = missing
		if !seq.IsNull(i) {
			out[i] = strconv.Itoa(int(seq.Value(i)))
		}
	}
	return out
}

// render formats a nullable vector with %v, NA for missing.
func render[T int32 | bool](v y2km.Vector[T]) []string {
	out := make([]string, v.Len())
	for i := range out {
		out[i] = missing
		if !v.IsNull(i) {
			out[i] = fmt.Sprint(v.Value(i))
		}
	}
	return out
}
