package harness

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/ndtool/internal/array"
)

// Render formats a suite result as stable text: one block per case with
// the printed result array or the error code and message.
func Render(result *Result) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "# %s\n", result.Suite)
	for _, c := range result.Cases {
		fmt.Fprintf(&buf, "\n== %s (%s) ==\n", c.Name, c.Op)
		if c.Err != nil {
			code := array.CodeOf(c.Err)
			if code == "" {
				code = "ERROR"
			}
			fmt.Fprintf(&buf, "error %s\n", code)
			continue
		}
		fmt.Fprintf(&buf, "%s %s\n%s\n", c.Output.DType(), c.Output.Shape(), c.Output)
	}
	return buf.String()
}

// RunWithGolden runs a suite and compares its rendering against
// testdata/golden/{suite.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the suite could not run. Expectation failures and
// golden mismatches fail t.
func RunWithGolden(t *testing.T, suite *Suite) error {
	t.Helper()

	result, err := Run(context.Background(), suite)
	if err != nil {
		return err
	}
	for _, c := range result.Cases {
		for _, f := range c.Failures {
			t.Error(f)
		}
	}
	AssertGolden(t, suite.Name, result)
	return nil
}

// AssertGolden compares an existing result against its golden file
// without re-running the suite.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(Render(result)))
}
