package ops

import (
	"github.com/roach88/ndtool/internal/array"
)

// BroadcastAdd returns a + b under NumPy broadcasting rules.
//
// The result has the broadcast shape of the operands. Its dtype is the
// promotion of both: bool+bool stays bool (logical or), anything with int64
// is int64, anything with float64 is float64. int64 sums wrap on overflow.
// str operands fail with TYPE_MISMATCH; incompatible shapes fail with
// SHAPE_MISMATCH.
func BroadcastAdd(a, b *array.Array) (*array.Array, error) {
	if !a.DType().IsNumeric() || !b.DType().IsNumeric() {
		return nil, array.NewTypeMismatchError(a.DType(), b.DType())
	}
	shape, err := array.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}
	dt, err := array.Promote(a.DType(), b.DType())
	if err != nil {
		return nil, err
	}
	a, b, err = promoteBoth(a, b, dt)
	if err != nil {
		return nil, err
	}

	switch dt {
	case array.Bool:
		return broadcastAs(a, b, shape, func(x, y bool) bool { return x || y })
	case array.Int64:
		return broadcastAs(a, b, shape, func(x, y int64) int64 { return x + y })
	default:
		return broadcastAs(a, b, shape, func(x, y float64) float64 { return x + y })
	}
}

// broadcastAs applies fn element-wise over the broadcast shape out. Each
// output index is decomposed into coordinates, and the operands are read
// through strides that are zero along replicated dimensions.
func broadcastAs[T array.Element](a, b *array.Array, out array.Shape, fn func(x, y T) T) (*array.Array, error) {
	xs, err := array.Values[T](a)
	if err != nil {
		return nil, err
	}
	ys, err := array.Values[T](b)
	if err != nil {
		return nil, err
	}

	aStrides := array.BroadcastStrides(a.Shape(), out)
	bStrides := array.BroadcastStrides(b.Shape(), out)
	outStrides := out.Strides()

	result := make([]T, out.NumElements())
	for i := range result {
		rem, aOff, bOff := i, 0, 0
		for d, stride := range outStrides {
			coord := rem / stride
			rem %= stride
			aOff += coord * aStrides[d]
			bOff += coord * bStrides[d]
		}
		result[i] = fn(xs[aOff], ys[bOff])
	}
	return array.New(out, result)
}
