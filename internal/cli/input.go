package cli

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/y2km/internal/y2km"
)

// MissingToken marks a missing element on the command line and in text output.
const MissingToken = "NA"

// normalizeArg folds compatibility characters so that full-width digits and
// hyphens typed on CJK keyboards read as ASCII.
func normalizeArg(arg string) string {
	return strings.TrimSpace(norm.NFKC.String(arg))
}

// splitList splits a comma-separated argument into normalized fields.
func splitList(arg string) []string {
	fields := strings.Split(normalizeArg(arg), ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// monthsFromArgs parses YYYY-MM arguments into a sequence.
func monthsFromArgs(args []string, policy y2km.RangePolicy) (*y2km.Sequence, error) {
	boxed := make([]any, len(args))
	for i, arg := range args {
		arg = normalizeArg(arg)
		if arg == MissingToken {
			continue
		}
		boxed[i] = arg
	}
	return y2km.FromAny(boxed, y2km.WithRangePolicy(policy))
}

// offsetsFromArgs parses integer month-count arguments into a sequence.
func offsetsFromArgs(args []string, policy y2km.RangePolicy) (*y2km.Sequence, error) {
	boxed := make([]any, len(args))
	for i, arg := range args {
		arg = normalizeArg(arg)
		if arg == MissingToken {
			continue
		}
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, ErrCodeInput, fmt.Errorf("invalid month offset %q", arg))
		}
		boxed[i] = n
	}
	return y2km.FromAny(boxed, y2km.WithRangePolicy(policy))
}

// textLines renders a sequence one element per line, MissingToken for missing.
func textLines(seq *y2km.Sequence) []string {
	return seq.ToTextNA(MissingToken)
}

// nullableText renders a sequence for JSON output, nil for missing.
func nullableText(seq *y2km.Sequence) []*string {
	text := seq.ToText()
	out := make([]*string, len(text))
	for i := range text {
		if !seq.IsNull(i) {
			out[i] = &text[i]
		}
	}
	return out
}
