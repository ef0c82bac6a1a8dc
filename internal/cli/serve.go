package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/y2km/internal/api"
	"github.com/roach88/y2km/internal/config"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	ColumnOptions
	Listen string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{ColumnOptions: ColumnOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve month conversion and the column store over HTTP until
interrupted.

Examples:
  y2km serve --db ./cols.db --listen :8080`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}
	addDatabaseFlag(cmd, &opts.ColumnOptions)
	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address (default from config, else "+config.DefaultListen+")")

	return cmd
}

func (o *ServeOptions) listenAddr() string {
	if o.Listen != "" {
		return o.Listen
	}
	if o.Settings.Listen != "" {
		return o.Settings.Listen
	}
	return config.DefaultListen
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	policy, err := opts.policy()
	if err != nil {
		return f.Fail(err)
	}
	st, err := opts.openStore()
	if err != nil {
		return f.Fail(err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := opts.listenAddr()
	slog.Info("serving", "addr", addr, "db", opts.database(opts.Database), "range_policy", policy.String())
	if err := api.NewServer(st, policy, slog.Default()).Start(ctx, addr); err != nil {
		return f.Fail(err)
	}
	slog.Info("shutdown complete")
	return nil
}
