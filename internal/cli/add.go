package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/ndtool/internal/ops"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return newOperationCommand(rootOpts,
		"add --a <array> --b <array>",
		"Print the element-wise sum of two broadcast-compatible arrays",
		`Add two arrays with NumPy broadcasting: shapes are right-aligned and
each dimension pair must be equal or contain a 1.

Examples:
  ndtool add --a "[[33, 59, 24], [16, 12, 18]]" --b "[13, 16, 47]"
  ndtool add --a data.ndb#matrix --b 0.5 --format json`,
		ops.BroadcastAdd)
}
