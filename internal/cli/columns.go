package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/y2km/internal/store"
	"github.com/roach88/y2km/internal/y2km"
)

// ColumnOptions holds flags shared by the column commands.
type ColumnOptions struct {
	*RootOptions
	Database string
	Seq      int64
}

// ColumnResult is the JSON payload of the get command.
type ColumnResult struct {
	Version store.Version `json:"version"`
	Values  []*string     `json:"values"`
}

// openStore opens the database named by --db, the config file or the default.
func (o *ColumnOptions) openStore() (*store.Store, error) {
	policy, err := o.policy()
	if err != nil {
		return nil, err
	}
	path := o.database(o.Database)
	st, err := store.Open(path, store.WithRangePolicy(policy))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeStore, fmt.Errorf("open %s: %w", path, err))
	}
	return st, nil
}

func addDatabaseFlag(cmd *cobra.Command, opts *ColumnOptions) {
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config, else y2km.db)")
}

// NewPutCommand creates the put command.
func NewPutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ColumnOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "put <name> <YYYY-MM>...",
		Short: "Store a new version of a column",
		Long: `Store YYYY-MM values as a new version of the named column.
Earlier versions are kept and remain readable with get --seq.

Examples:
  y2km put --db ./cols.db start 2000-01 1999-12 NA`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPut(opts, cmd, args[0], args[1:])
		},
	}
	addDatabaseFlag(cmd, opts)

	return cmd
}

func runPut(opts *ColumnOptions, cmd *cobra.Command, name string, values []string) error {
	f := opts.formatter(cmd)
	policy, err := opts.policy()
	if err != nil {
		return f.Fail(err)
	}
	seq, err := monthsFromArgs(values, policy)
	if err != nil {
		return f.Fail(err)
	}

	st, err := opts.openStore()
	if err != nil {
		return f.Fail(err)
	}
	defer st.Close()

	v, err := st.WriteColumn(cmd.Context(), name, seq)
	if err != nil {
		return f.Fail(WrapExitError(ExitCommandError, ErrCodeStore, err))
	}
	f.VerboseLog("stored %s as version %s", v.Name, v.ID)
	return f.Success(v, fmt.Sprintf("%s\tv%d\t%s", v.Name, v.Seq, describeVersion(v)))
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ColumnOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Print a stored column",
		Long: `Print the values of a stored column, one per line. Prints the
latest version unless --seq is given.

Examples:
  y2km get --db ./cols.db start
  y2km get --db ./cols.db start --seq 1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, cmd, args[0])
		},
	}
	addDatabaseFlag(cmd, opts)
	cmd.Flags().Int64Var(&opts.Seq, "seq", 0, "version to read (default latest)")

	return cmd
}

func runGet(opts *ColumnOptions, cmd *cobra.Command, name string) error {
	f := opts.formatter(cmd)
	st, err := opts.openStore()
	if err != nil {
		return f.Fail(err)
	}
	defer st.Close()

	var (
		seq *y2km.Sequence
		v   store.Version
	)
	if opts.Seq > 0 {
		seq, v, err = st.ReadVersion(cmd.Context(), name, opts.Seq)
	} else {
		seq, v, err = st.ReadColumn(cmd.Context(), name)
	}
	if err != nil {
		return f.Fail(err)
	}
	f.VerboseLog("read %s version %d (%s)", v.Name, v.Seq, v.ID)
	return f.Success(ColumnResult{Version: v, Values: nullableText(seq)}, textLines(seq)...)
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ColumnOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored columns",
		Long: `List the latest version of every stored column, ordered by name.

Examples:
  y2km list --db ./cols.db
  y2km list --db ./cols.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}
	addDatabaseFlag(cmd, opts)

	return cmd
}

func runList(opts *ColumnOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	st, err := opts.openStore()
	if err != nil {
		return f.Fail(err)
	}
	defer st.Close()

	versions, err := st.ListColumns(cmd.Context())
	if err != nil {
		return f.Fail(WrapExitError(ExitCommandError, ErrCodeStore, err))
	}

	lines := make([]string, len(versions))
	for i, v := range versions {
		lines[i] = fmt.Sprintf("%s\tv%d\t%s", v.Name, v.Seq, describeVersion(v))
	}
	if len(lines) == 0 {
		lines = []string{"No columns stored"}
	}
	return f.Success(versions, lines...)
}

// describeVersion summarizes presence as "present/length present".
func describeVersion(v store.Version) string {
	return fmt.Sprintf("%d/%d present", v.Length-v.NullCount, v.Length)
}
