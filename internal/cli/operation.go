package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ndtool/internal/array"
	"github.com/roach88/ndtool/internal/input"
)

// OperationOptions holds the operand flags shared by intersect and add.
type OperationOptions struct {
	*RootOptions
	A string
	B string
}

type operation func(a, b *array.Array) (*array.Array, error)

func newOperationCommand(rootOpts *RootOptions, use, short, long string, op operation) *cobra.Command {
	opts := &OperationOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(opts, cmd, op)
		},
	}

	cmd.Flags().StringVar(&opts.A, "a", "", "first operand: array literal or .npy/.cue/.ndb file (required)")
	cmd.Flags().StringVar(&opts.B, "b", "", "second operand: array literal or .npy/.cue/.ndb file (required)")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")

	return cmd
}

// runOperation resolves both operands, applies op and prints the result.
// Nothing is printed on stdout until the whole operation has succeeded.
func runOperation(opts *OperationOptions, cmd *cobra.Command, op operation) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()
	logger := opts.log()
	resolver := input.NewResolver(logger)

	a, err := resolver.ResolveContext(ctx, opts.A)
	if err != nil {
		return failOperand(formatter, cmd, err)
	}
	b, err := resolver.ResolveContext(ctx, opts.B)
	if err != nil {
		return failOperand(formatter, cmd, err)
	}

	logger.Debug("running operation",
		"op", cmd.Name(),
		"a_shape", a.Shape().String(),
		"b_shape", b.Shape().String())

	result, err := op(a, b)
	if err != nil {
		logger.Debug("operation failed", "op", cmd.Name(), "error", err)
		return formatter.Fail(err)
	}

	logger.Debug("operation done",
		"op", cmd.Name(),
		"dtype", result.DType(),
		"shape", result.Shape().String())

	if formatter.Format == "json" {
		return formatter.Success(NewArrayPayload(result))
	}
	return formatter.Success(result.Format(opts.Config.PrintOptions()))
}

// failOperand reports an operand that could not be resolved, followed in
// text mode by a pointer to the command's usage.
func failOperand(f *OutputFormatter, cmd *cobra.Command, err error) error {
	exitErr := f.Fail(err)
	if f.Format != "json" {
		fmt.Fprintf(f.GetErrWriter(), "Run '%s --help' for usage.\n", cmd.CommandPath())
	}
	return exitErr
}
