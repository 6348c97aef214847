package ops

import (
	"cmp"
	"math"
	"slices"

	"github.com/roach88/ndtool/internal/array"
)

// Intersect returns the unique, sorted intersection of a and b.
//
// Both inputs are flattened first, so their shapes are irrelevant. The
// dtypes are promoted to a common type (bool -> int64 -> float64); str only
// intersects with str. NaN never matches, and strings compare byte-wise so
// "Joe" and "joe" are distinct. An empty operand yields an empty result
// whatever the other dtype is.
func Intersect(a, b *array.Array) (*array.Array, error) {
	a, b = a.Flatten(), b.Flatten()

	dt, err := array.Promote(a.DType(), b.DType())
	if err != nil {
		switch {
		case a.Size() == 0:
			return array.Empty(b.DType(), array.Shape{0})
		case b.Size() == 0:
			return array.Empty(a.DType(), array.Shape{0})
		}
		return nil, err
	}
	a, b, err = promoteBoth(a, b, dt)
	if err != nil {
		return nil, err
	}

	switch dt {
	case array.Bool:
		return intersectAs[bool](a, b, compareBool)
	case array.Int64:
		return intersectAs[int64](a, b, cmp.Compare[int64])
	case array.Float64:
		return intersectAs[float64](a, b, cmp.Compare[float64])
	default:
		return intersectAs[string](a, b, cmp.Compare[string])
	}
}

// Unique returns the sorted, duplicate-free flattening of a.
func Unique(a *array.Array) (*array.Array, error) {
	a = a.Flatten()
	switch a.DType() {
	case array.Bool:
		return uniqueAs[bool](a, compareBool)
	case array.Int64:
		return uniqueAs[int64](a, cmp.Compare[int64])
	case array.Float64:
		return uniqueAs[float64](a, cmp.Compare[float64])
	default:
		return uniqueAs[string](a, cmp.Compare[string])
	}
}

func intersectAs[T array.Element](a, b *array.Array, compare func(x, y T) int) (*array.Array, error) {
	xs, err := array.Values[T](a)
	if err != nil {
		return nil, err
	}
	ys, err := array.Values[T](b)
	if err != nil {
		return nil, err
	}
	return array.Vector(intersectSorted(sortedUnique(xs, compare), sortedUnique(ys, compare), compare)...), nil
}

func uniqueAs[T array.Element](a *array.Array, compare func(x, y T) int) (*array.Array, error) {
	xs, err := array.Values[T](a)
	if err != nil {
		return nil, err
	}
	return array.Vector(sortedUnique(xs, compare)...), nil
}

// sortedUnique sorts xs in place and drops duplicates. NaN values are
// removed for float64 since they never compare equal to anything.
func sortedUnique[T array.Element](xs []T, compare func(x, y T) int) []T {
	xs = slices.DeleteFunc(xs, isNaN[T])
	slices.SortFunc(xs, compare)
	return slices.CompactFunc(xs, func(x, y T) bool { return compare(x, y) == 0 })
}

// intersectSorted merges two sorted, duplicate-free slices keeping the
// common elements.
func intersectSorted[T any](xs, ys []T, compare func(x, y T) int) []T {
	out := make([]T, 0, min(len(xs), len(ys)))
	i, j := 0, 0
	for i < len(xs) && j < len(ys) {
		switch c := compare(xs[i], ys[j]); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			out = append(out, xs[i])
			i++
			j++
		}
	}
	return out
}

func isNaN[T array.Element](v T) bool {
	f, ok := any(v).(float64)
	return ok && math.IsNaN(f)
}

func compareBool(x, y bool) int {
	switch {
	case x == y:
		return 0
	case !x:
		return -1
	default:
		return 1
	}
}

// promoteBoth converts a and b to dt.
func promoteBoth(a, b *array.Array, dt array.DType) (*array.Array, *array.Array, error) {
	pa, err := a.AsType(dt)
	if err != nil {
		return nil, nil, err
	}
	pb, err := b.AsType(dt)
	if err != nil {
		return nil, nil, err
	}
	return pa, pb, nil
}
