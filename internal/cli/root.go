package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/ndtool/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is the merged configuration, set before any command runs.
	Config config.Config

	// TraceIDs stamps each run. Defaults to UUIDv7Generator.
	TraceIDs TraceIDGenerator

	traceID string
	logger  *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{config.FormatText, config.FormatJSON}

// NewRootCommand creates the root command for the ndtool CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ndtool",
		Short: "ndtool - intersect and add N-dimensional arrays",
		Long: `Set intersection and broadcasting addition over N-dimensional arrays.

Operands are array literals such as "[[1, 2], [3, 4]]" or files:
.npy (NumPy), .cue (CUE document with dtype? and data) or .ndb
(SQLite archive; select an entry with path.ndb#name).

Run without a subcommand to see a demonstration.

Exit codes:
  0 - Success
  1 - Operation failed (shape or type mismatch, failing cases)
  2 - Command error (invalid input, missing flags)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.FormatText, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")

	cmd.AddCommand(NewIntersectCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// prepare merges the config file with flags, validates the format and sets
// up logging. Flags given on the command line win over the file.
func (opts *RootOptions) prepare(cmd *cobra.Command) error {
	cfg, path, err := config.Discover(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = opts.Format
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}
	if !isValidFormat(cfg.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", cfg.Format, ValidFormats))
	}
	opts.Config = cfg
	opts.Format = cfg.Format
	opts.Verbose = cfg.Verbose

	if opts.TraceIDs == nil {
		opts.TraceIDs = UUIDv7Generator{}
	}
	opts.traceID = opts.TraceIDs.Generate()
	opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose).With("run_id", opts.traceID)
	slog.SetDefault(opts.logger)

	if path != "" {
		opts.logger.Debug("config loaded", "path", path)
	}
	return nil
}

// newLogger writes text logs to w: debug and up when verbose, otherwise
// warnings and errors only.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// log returns the run logger, or slog.Default() before prepare has run.
func (opts *RootOptions) log() *slog.Logger {
	if opts.logger != nil {
		return opts.logger
	}
	return slog.Default()
}

// formatter builds the output formatter for a command run.
func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   opts.traceID,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// Execute runs the command line and returns the process exit code.
// Errors from commands carry their own exit code and have already been
// reported; anything else is a usage error from flag or argument parsing.
func Execute(args []string, stdout, stderr io.Writer) int {
	return execute(&RootOptions{}, args, stdout, stderr)
}

func execute(opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if !exitErr.Reported {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return GetExitCode(err)
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
	return ExitCommandError
}
