package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/y2km/internal/y2km"
)

// ParseResult is the JSON payload of the parse command.
type ParseResult struct {
	Offsets []*int `json:"offsets"`
}

// MonthsResult is the JSON payload of the format and shift commands.
type MonthsResult struct {
	Values []*string `json:"values"`
}

// DiffResult is the JSON payload of the diff command.
type DiffResult struct {
	Deltas []*int32 `json:"deltas"`
}

// NewFormatCommand creates the format command.
func NewFormatCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "format <offset>...",
		Short: "Render month-counts as YYYY-MM",
		Long: `Render month-counts as YYYY-MM text. NA marks a missing value.
Use -- before negative offsets so they are not read as flags.

Examples:
  y2km format 0 18
  y2km format -- -1 NA 18`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(rootOpts, cmd, args)
		},
	}
}

func runFormat(opts *RootOptions, cmd *cobra.Command, args []string) error {
	f := opts.formatter(cmd)
	policy, err := opts.policy()
	if err != nil {
		return f.Fail(err)
	}

	seq, err := offsetsFromArgs(args, policy)
	if err != nil {
		return f.Fail(err)
	}
	f.VerboseLog("formatting %d value(s), %d missing", seq.Len(), seq.NullCount())

	text := textLines(seq)
	lines := make([]string, seq.Len())
	for i := range lines {
		offset := MissingToken
		if !seq.IsNull(i) {
			offset = strconv.Itoa(int(seq.Value(i)))
		}
		lines[i] = offset + "\t" + text[i]
	}
	return f.Success(MonthsResult{Values: nullableText(seq)}, lines...)
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <YYYY-MM>...",
		Short: "Convert YYYY-MM text to month-counts",
		Long: `Convert YYYY-MM text to month-counts since 2000-01. NA marks a missing value.
Extra trailing fields are ignored, so 2001-06-15 parses as 2001-06.

Examples:
  y2km parse 2000-01 1999-12 2001-06
  y2km parse --format json 2001-06 NA`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, cmd, args)
		},
	}
}

func runParse(opts *RootOptions, cmd *cobra.Command, args []string) error {
	f := opts.formatter(cmd)
	policy, err := opts.policy()
	if err != nil {
		return f.Fail(err)
	}

	seq, err := monthsFromArgs(args, policy)
	if err != nil {
		return f.Fail(err)
	}

	result := ParseResult{Offsets: make([]*int, seq.Len())}
	lines := make([]string, seq.Len())
	for i := range lines {
		offset := MissingToken
		if !seq.IsNull(i) {
			v := int(seq.Value(i))
			result.Offsets[i] = &v
			offset = strconv.Itoa(v)
		}
		lines[i] = normalizeArg(args[i]) + "\t" + offset
	}
	return f.Success(result, lines...)
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Months between two lists of YYYY-MM values",
		Long: `Compute left - right in months, element-wise. Each argument is a
comma-separated list of YYYY-MM values; a single value is broadcast.

Examples:
  y2km diff 2001-01 2000-01
  y2km diff 2001-01,2001-06,NA 2000-01`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(rootOpts, cmd, args)
		},
	}
}

func runDiff(opts *RootOptions, cmd *cobra.Command, args []string) error {
	f := opts.formatter(cmd)
	policy, err := opts.policy()
	if err != nil {
		return f.Fail(err)
	}

	left, err := monthsFromArgs(splitList(args[0]), policy)
	if err != nil {
		return f.Fail(err)
	}
	right, err := monthsFromArgs(splitList(args[1]), policy)
	if err != nil {
		return f.Fail(err)
	}
	deltas, err := left.Diff(right)
	if err != nil {
		return f.Fail(err)
	}

	result := DiffResult{Deltas: make([]*int32, deltas.Len())}
	lines := make([]string, deltas.Len())
	for i := range lines {
		lines[i] = MissingToken
		if !deltas.IsNull(i) {
			v := deltas.Value(i)
			result.Deltas[i] = &v
			lines[i] = strconv.Itoa(int(v))
		}
	}
	return f.Success(result, lines...)
}

// ShiftOptions holds flags for the shift command.
type ShiftOptions struct {
	*RootOptions
	By int
}

// NewShiftCommand creates the shift command.
func NewShiftCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShiftOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "shift <YYYY-MM>...",
		Short: "Add a number of months to YYYY-MM values",
		Long: `Add --by months to every value. Results outside -731-05..4730-08 are
rejected unless the config sets range_policy: saturate.

Examples:
  y2km shift --by 14 2000-01
  y2km shift --by=-1 2000-01 NA`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShift(opts, cmd, args)
		},
	}

	cmd.Flags().IntVar(&opts.By, "by", 0, "number of months to add (may be negative)")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

func runShift(opts *ShiftOptions, cmd *cobra.Command, args []string) error {
	f := opts.formatter(cmd)
	policy, err := opts.policy()
	if err != nil {
		return f.Fail(err)
	}

	seq, err := monthsFromArgs(args, policy)
	if err != nil {
		return f.Fail(err)
	}
	shifted, err := seq.Add(y2km.Int(opts.By))
	if err != nil {
		return f.Fail(err)
	}
	return f.Success(MonthsResult{Values: nullableText(shifted)}, textLines(shifted)...)
}
