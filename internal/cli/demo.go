package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ndtool/internal/array"
	"github.com/roach88/ndtool/internal/ops"
)

// DemoResult is the JSON payload of demo mode.
type DemoResult struct {
	Intersection ArrayPayload `json:"intersection"`
	Sum          ArrayPayload `json:"sum"`
}

// NewDemoCommand creates the demo command. Running ndtool with no
// subcommand does the same.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run both operations on built-in sample data",
		Long: `Intersect two 3x3 grids of names and add a (3,) row to a (2, 3) matrix.
This is also what ndtool does when run without a subcommand.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(rootOpts, cmd)
		},
	}
}

func runDemo(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	if err := RunDemo(formatter, opts.Config.PrintOptions()); err != nil {
		return formatter.Fail(err)
	}
	return nil
}

// DemoNameGrids returns the two 3x3 name grids intersected by demo mode.
func DemoNameGrids() (*array.Array, *array.Array) {
	a := array.Must(array.Shape{3, 3}, []string{
		"joe", "Joe", "harry",
		"frank", "alice", "jim",
		"Will", "sam", "tom",
	})
	b := array.Must(array.Shape{3, 3}, []string{
		"joe", "Joe", "heather",
		"frank", "alice", "frank",
		"Will", "bill", "martha",
	})
	return a, b
}

// DemoAddends returns the (2, 3) matrix and (3,) row added by demo mode.
func DemoAddends() (*array.Array, *array.Array) {
	a := array.Must(array.Shape{2, 3}, []int64{33, 59, 24, 16, 12, 18})
	b := array.Vector[int64](13, 16, 47)
	return a, b
}

// RunDemo computes both demo results and writes them through f. In text
// format the output is
//
//	Intersection (unique sorted 1-D):
//	['Joe' 'Will' 'alice' 'frank' 'joe']
//
//	Broadcast addition result:
//	[[46 75 71]
//	 [29 28 65]]
func RunDemo(f *OutputFormatter, popts array.PrintOptions) error {
	names1, names2 := DemoNameGrids()
	common, err := ops.Intersect(names1, names2)
	if err != nil {
		return err
	}

	m, row := DemoAddends()
	sum, err := ops.BroadcastAdd(m, row)
	if err != nil {
		return err
	}

	if f.Format == "json" {
		return f.Success(DemoResult{
			Intersection: NewArrayPayload(common),
			Sum:          NewArrayPayload(sum),
		})
	}

	fmt.Fprintln(f.Writer, "Intersection (unique sorted 1-D):")
	fmt.Fprintln(f.Writer, common.Format(popts))
	fmt.Fprintln(f.Writer)
	fmt.Fprintln(f.Writer, "Broadcast addition result:")
	fmt.Fprintln(f.Writer, sum.Format(popts))
	return nil
}
