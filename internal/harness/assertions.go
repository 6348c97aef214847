package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/ndtool/internal/array"
)

// AssertionError describes one unmet expectation.
type AssertionError struct {
	Case     string
	Field    string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "case %q: %s mismatch\n", e.Case, e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", indent(e.Expected))
	fmt.Fprintf(&buf, "  Actual: %s", indent(e.Actual))
	return buf.String()
}

// indent aligns continuation lines of multi-line array output.
func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n            ")
}

// evaluate checks a case's outcome against its expectations and returns
// the failure messages.
func evaluate(ctx context.Context, h *Harness, dir string, c Case, out *array.Array, opErr error) []string {
	var failures []string
	fail := func(field, expected, actual string) {
		failures = append(failures, (&AssertionError{
			Case: c.Name, Field: field, Expected: expected, Actual: actual,
		}).Error())
	}

	if c.ExpectError != "" {
		if opErr == nil {
			fail("error", c.ExpectError, "success: "+out.String())
		} else if code := array.CodeOf(opErr); string(code) != c.ExpectError {
			fail("error", c.ExpectError, opErr.Error())
		}
		return failures
	}

	if opErr != nil {
		return []string{fmt.Sprintf("case %q: unexpected error: %v", c.Name, opErr)}
	}

	if c.Expect != nil && c.Expect.IsSet() {
		want, err := h.operand(ctx, dir, *c.Expect)
		switch {
		case err != nil:
			failures = append(failures, fmt.Sprintf("case %q: invalid expect: %v", c.Name, err))
		case want.DType() != out.DType():
			fail("dtype", want.DType().String(), out.DType().String())
		case !want.Shape().Equal(out.Shape()):
			fail("shape", want.Shape().String(), out.Shape().String())
		case !want.Equal(out):
			fail("result", want.String(), out.String())
		}
	}
	if c.ExpectDType != "" {
		if want, _ := array.ParseDType(c.ExpectDType); want != out.DType() {
			fail("dtype", want.String(), out.DType().String())
		}
	}
	if c.ExpectShape != "" && c.ExpectShape != out.Shape().String() {
		fail("shape", c.ExpectShape, out.Shape().String())
	}
	return failures
}
