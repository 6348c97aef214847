package array

import (
	"fmt"
	"strconv"
	"strings"
)

// Shape is the size of each dimension, outermost first. Shape{} is a scalar.
type Shape []int

// NumElements returns the product of the dimensions. A scalar has one
// element; any zero dimension yields zero.
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate checks that no dimension is negative.
func (s Shape) Validate() error {
	for i, d := range s {
		if d < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, d)
		}
	}
	return nil
}

// Equal reports whether two shapes have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// Strides returns row-major element strides: the last axis has stride 1.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

// String renders the shape as a tuple: (), (3,), (2, 3).
func (s Shape) String() string {
	if len(s) == 1 {
		return "(" + strconv.Itoa(s[0]) + ",)"
	}
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// BroadcastShapes computes the broadcast of a and b.
//
// Shapes are right-aligned and the shorter one is padded with 1s on the
// left. Each dimension pair must be equal or contain a 1; the result takes
// the other value. Anything else is a SHAPE_MISMATCH error.
func BroadcastShapes(a, b Shape) (Shape, error) {
	rank := max(len(a), len(b))
	out := make(Shape, rank)
	for i := range rank {
		da, db := 1, 1
		if j := i - (rank - len(a)); j >= 0 {
			da = a[j]
		}
		if j := i - (rank - len(b)); j >= 0 {
			db = b[j]
		}
		switch {
		case da == db, db == 1:
			out[i] = da
		case da == 1:
			out[i] = db
		default:
			return nil, NewShapeMismatchError(a, b)
		}
	}
	return out, nil
}

// BroadcastStrides returns element strides that map an index in out back to
// an array of shape in. Padded and size-1 dimensions get stride 0 so the
// same element is replicated along that axis.
func BroadcastStrides(in, out Shape) []int {
	offset := len(out) - len(in)
	src := in.Strides()
	strides := make([]int, len(out))
	for i := range out {
		j := i - offset
		if j < 0 || in[j] == 1 {
			continue
		}
		strides[i] = src[j]
	}
	return strides
}
