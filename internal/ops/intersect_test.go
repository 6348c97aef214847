package ops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ndtool/internal/array"
)

func nameGrids() (*array.Array, *array.Array) {
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

func TestIntersectNameGrids(t *testing.T) {
	a, b := nameGrids()

	got, err := Intersect(a, b)
	require.NoError(t, err)

	want := array.Vector("Joe", "Will", "alice", "frank", "joe")
	assert.True(t, want.Equal(got), "got %s", got)
	assert.Equal(t, array.Shape{5}, got.Shape())
}

func TestIntersectEmpty(t *testing.T) {
	got, err := Intersect(array.Vector[float64](), array.Vector[int64](1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Size())
	assert.Equal(t, array.Shape{0}, got.Shape())
	assert.Equal(t, "[]", got.String())
}

func TestIntersectNoCommonElements(t *testing.T) {
	got, err := Intersect(array.Vector[int64](1, 2), array.Vector[int64](3, 4))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Size())
}

func TestIntersectCaseSensitive(t *testing.T) {
	got, err := Intersect(array.Vector("Joe"), array.Vector("joe"))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Size())
}

func TestIntersectDuplicatesAndShapes(t *testing.T) {
	a := array.Must(array.Shape{2, 2, 2}, []int64{5, 1, 5, 3, 3, 9, 1, 1})
	b := array.Must(array.Shape{4}, []int64{9, 9, 3, 7})

	got, err := Intersect(a, b)
	require.NoError(t, err)
	assert.True(t, array.Vector[int64](3, 9).Equal(got), "got %s", got)
}

func TestIntersectPromotesNumeric(t *testing.T) {
	got, err := Intersect(array.Vector[int64](1, 2, 3), array.Vector(2.0, 3.5, 1.0))
	require.NoError(t, err)
	assert.Equal(t, array.Float64, got.DType())
	assert.True(t, array.Vector(1.0, 2.0).Equal(got), "got %s", got)

	got, err = Intersect(array.Vector(true, true), array.Vector[int64](0, 1))
	require.NoError(t, err)
	assert.True(t, array.Vector[int64](1).Equal(got), "got %s", got)
}

func TestIntersectNaNNeverMatches(t *testing.T) {
	got, err := Intersect(array.Vector(math.NaN(), 1.0), array.Vector(math.NaN(), 1.0))
	require.NoError(t, err)
	assert.True(t, array.Vector(1.0).Equal(got), "got %s", got)
}

func TestIntersectSignedZero(t *testing.T) {
	got, err := Intersect(array.Vector(math.Copysign(0, -1)), array.Vector(0.0))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Size())
}

func TestIntersectEmptyWithStrings(t *testing.T) {
	got, err := Intersect(array.Vector[float64](), array.Vector("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, array.String, got.DType())
	assert.Equal(t, array.Shape{0}, got.Shape())
	assert.Equal(t, "[]", got.String())

	grid := array.Must(array.Shape{2, 2}, []string{"a", "b", "c", "d"})
	got, err = Intersect(grid, array.Vector[int64]())
	require.NoError(t, err)
	assert.Equal(t, array.String, got.DType())
	assert.Equal(t, 0, got.Size())
}

func TestIntersectTypeMismatch(t *testing.T) {
	_, err := Intersect(array.Vector("1"), array.Vector[int64](1))
	require.Error(t, err)
	assert.True(t, array.IsTypeMismatch(err))
}

func TestIntersectDoesNotMutateInputs(t *testing.T) {
	a := array.Vector[int64](3, 1, 2, 1)
	b := array.Vector[int64](2, 3)
	_, err := Intersect(a, b)
	require.NoError(t, err)

	vals, _ := array.Values[int64](a)
	assert.Equal(t, []int64{3, 1, 2, 1}, vals)
}

func TestUnique(t *testing.T) {
	got, err := Unique(array.Must(array.Shape{2, 3}, []string{"b", "a", "b", "c", "a", "B"}))
	require.NoError(t, err)
	assert.True(t, array.Vector("B", "a", "b", "c").Equal(got), "got %s", got)

	got, err = Unique(array.Vector(false, true, false))
	require.NoError(t, err)
	assert.True(t, array.Vector(false, true).Equal(got), "got %s", got)
}
