package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/ndtool/internal/ops"
)

// NewIntersectCommand creates the intersect command.
func NewIntersectCommand(rootOpts *RootOptions) *cobra.Command {
	return newOperationCommand(rootOpts,
		"intersect --a <array> --b <array>",
		"Print the sorted unique elements present in both arrays",
		`Flatten both operands and print the ascending, duplicate-free 1-D array
of elements they have in common. Numeric dtypes are promoted to a common
type first; strings compare byte-wise and only with strings.

Examples:
  ndtool intersect --a "[[1, 2], [3, 4]]" --b "[4, 1, 9]"
  ndtool intersect --a names.npy --b "['joe', 'Joe']"`,
		ops.Intersect)
}
