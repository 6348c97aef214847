package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/roach88/ndtool/internal/array"
	"github.com/roach88/ndtool/internal/input"
	"github.com/roach88/ndtool/internal/literal"
	"github.com/roach88/ndtool/internal/ops"
)

// Operation is a binary array operation a case can name.
type Operation func(a, b *array.Array) (*array.Array, error)

// Operations maps case-file op names to the engines.
var Operations = map[string]Operation{
	OpIntersect: ops.Intersect,
	OpAdd:       ops.BroadcastAdd,
}

// Harness runs suites. The zero value is not usable; use New.
type Harness struct {
	resolver *input.Resolver
	logger   *slog.Logger
}

// New creates a harness that logs to logger. A nil logger discards logs.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{
		resolver: input.NewResolver(logger),
		logger:   logger,
	}
}

// Run executes every case of a suite. Case failures are reported in the
// Result; the returned error is reserved for cancellation.
func Run(ctx context.Context, suite *Suite) (*Result, error) {
	return New(nil).Run(ctx, suite)
}

// Run executes every case of a suite in order.
func (h *Harness) Run(ctx context.Context, suite *Suite) (*Result, error) {
	result := &Result{Suite: suite.Name, Cases: make([]CaseResult, 0, len(suite.Cases))}
	for _, c := range suite.Cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cr := h.runCase(ctx, suite.Dir, c)
		h.logger.Debug("case finished",
			"suite", suite.Name,
			"case", c.Name,
			"op", c.Op,
			"pass", cr.Pass())
		result.Cases = append(result.Cases, cr)
	}
	return result, nil
}

func (h *Harness) runCase(ctx context.Context, dir string, c Case) CaseResult {
	cr := CaseResult{Name: c.Name, Op: c.Op}

	op, ok := Operations[c.Op]
	if !ok {
		cr.Failures = append(cr.Failures, fmt.Sprintf("unknown op %q", c.Op))
		return cr
	}

	a, err := h.operand(ctx, dir, c.A)
	if err == nil {
		var b *array.Array
		if b, err = h.operand(ctx, dir, c.B); err == nil {
			cr.Output, err = op(a, b)
		}
	}
	cr.Err = err

	cr.Failures = evaluate(ctx, h, dir, c, cr.Output, cr.Err)
	return cr
}

// operand builds the array an operand denotes.
func (h *Harness) operand(ctx context.Context, dir string, o Operand) (*array.Array, error) {
	if token, ok := o.Token(); ok {
		if path, isFile := input.FilePath(token); isFile && !filepath.IsAbs(path) && dir != "" {
			token = filepath.Join(dir, token)
		}
		return h.resolver.ResolveContext(ctx, token)
	}

	var native any
	if err := o.node.Decode(&native); err != nil {
		return nil, array.NewInvalidInputError("invalid operand", err)
	}
	v, err := literal.FromNative(native)
	if err != nil {
		return nil, array.NewInvalidInputError("invalid operand", err)
	}
	arr, err := literal.ToArray(v)
	if err != nil {
		return nil, array.NewInvalidInputError("invalid operand", err)
	}
	return arr, nil
}
