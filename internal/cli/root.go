package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/y2km/internal/config"
	"github.com/roach88/y2km/internal/y2km"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Settings is loaded from ConfigPath before any subcommand runs.
	// The zero value behaves like config.Default().
	Settings config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the y2km CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "y2km",
		Short: "y2km - months since Y2K",
		Long: `Convert, compare and store calendar months encoded as signed 16-bit
counts of months since January 2000 (2000-01 is 0, 1999-12 is -1).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.DefaultFormat, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a .yaml or .toml config file")

	// Add subcommands
	cmd.AddCommand(NewFormatCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewShiftCommand(opts))
	cmd.AddCommand(NewPutCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setup loads the config file, applies it under explicit flags and installs
// the default slog logger.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	settings := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error [%s]: %v\n", ErrCodeConfig, err)
			return WrapExitError(ExitCommandError, ErrCodeConfig, err)
		}
		settings = loaded
	}
	o.Settings = settings

	if !cmd.Flags().Changed("format") {
		o.Format = settings.Format
	}
	if !isValidFormat(o.Format) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error [%s]: invalid format %q\n", ErrCodeInput, o.Format)
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// formatter builds the output formatter for a running command.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// policy returns the configured range policy (reject when unset).
func (o *RootOptions) policy() (y2km.RangePolicy, error) {
	return y2km.ParseRangePolicy(o.Settings.RangePolicy)
}

// database resolves the database path: flag, then config, then default.
func (o *RootOptions) database(flag string) string {
	if flag != "" {
		return flag
	}
	if o.Settings.DB != "" {
		return o.Settings.DB
	}
	return config.DefaultDB
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
