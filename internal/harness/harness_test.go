package harness

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ndtool/internal/array"
	"github.com/roach88/ndtool/internal/testutil"
)

const scenariosFile = "../../testdata/cases/scenarios.yaml"

func TestRun_Scenarios(t *testing.T) {
	suite, err := LoadSuite(scenariosFile)
	require.NoError(t, err)

	result, err := Run(context.Background(), suite)
	require.NoError(t, err)

	for _, c := range result.Cases {
		assert.Empty(t, c.Failures, c.Name)
	}
	assert.True(t, result.Pass())
	assert.Zero(t, result.Failed())
}

func TestRunWithGolden_Scenarios(t *testing.T) {
	suite, err := LoadSuite(scenariosFile)
	require.NoError(t, err)
	require.NoError(t, RunWithGolden(t, suite))
}

func TestRun_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, "wrong.yaml", `
name: wrong
cases:
  - name: wrong sum
    op: add
    a: [1, 2]
    b: [1, 1]
    expect: [2, 4]
  - name: wrong dtype
    op: add
    a: [1, 2]
    b: [1, 1]
    expect: [2.0, 3.0]
  - name: missing error
    op: add
    a: [1, 2]
    b: 1
    expect_error: SHAPE_MISMATCH
  - name: unexpected error
    op: add
    a: [1, 2]
    b: [1, 2, 3]
    expect_shape: "(2,)"
  - name: wrong code
    op: add
    a: ["a"]
    b: ["b"]
    expect_error: SHAPE_MISMATCH
  - name: fine
    op: intersect
    a: [3, 1, 3]
    b: [3]
    expect: [3]
`)
	suite, err := LoadSuite(path)
	require.NoError(t, err)

	result, err := Run(context.Background(), suite)
	require.NoError(t, err)
	require.Len(t, result.Cases, 6)

	assert.False(t, result.Pass())
	assert.Equal(t, 5, result.Failed())

	byName := map[string]CaseResult{}
	for _, c := range result.Cases {
		byName[c.Name] = c
	}
	assert.Contains(t, strings.Join(byName["wrong sum"].Failures, "\n"), "result mismatch")
	assert.Contains(t, strings.Join(byName["wrong dtype"].Failures, "\n"), "dtype mismatch")
	assert.Contains(t, strings.Join(byName["missing error"].Failures, "\n"), "success")
	assert.Contains(t, strings.Join(byName["unexpected error"].Failures, "\n"), "unexpected error")
	assert.Contains(t, strings.Join(byName["wrong code"].Failures, "\n"), "TYPE_MISMATCH")
	assert.True(t, byName["fine"].Pass())
}

func TestRun_FileOperands(t *testing.T) {
	dir := t.TempDir()
	a, b := testutil.DemoOperands()
	testutil.WriteNPY(t, dir, "a.npy", a)
	testutil.WriteArchive(t, dir, "ops.ndb", map[string]*array.Array{"a": a, "b": b})

	path := writeSuite(t, dir, "files.yaml", `
name: files
cases:
  - name: npy and archive
    op: add
    a: a.npy
    b: ops.ndb#b
    expect: [[46, 75, 71], [29, 28, 65]]
  - name: missing file
    op: add
    a: missing.npy
    b: ops.ndb#b
    expect_error: INVALID_INPUT
`)
	suite, err := LoadSuite(path)
	require.NoError(t, err)

	result, err := Run(context.Background(), suite)
	require.NoError(t, err)
	for _, c := range result.Cases {
		assert.Empty(t, c.Failures, c.Name)
	}
}

func TestRun_Cancelled(t *testing.T) {
	suite, err := LoadSuite(scenariosFile)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, suite)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender_UnknownError(t *testing.T) {
	out := Render(&Result{Suite: "x", Cases: []CaseResult{{Name: "c", Op: "add", Err: assert.AnError}}})
	assert.Equal(t, "# x\n\n== c (add) ==\nerror ERROR\n", out)
}
