package array

import (
	"fmt"
	"math"
	"slices"
)

// Element is the set of Go types an Array can hold.
type Element interface {
	bool | int64 | float64 | string
}

// Array is an immutable N-dimensional array stored in row-major order.
// The zero value is not usable; build arrays with New, Must, Vector or Scalar.
type Array struct {
	dtype DType
	shape Shape
	data  any // []bool | []int64 | []float64 | []string
}

// DTypeOf returns the DType matching the Go type T.
func DTypeOf[T Element]() DType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case int64:
		return Int64
	case float64:
		return Float64
	default:
		return String
	}
}

// New creates an array of the given shape from a copy of data.
// len(data) must equal shape.NumElements().
func New[T Element](shape Shape, data []T) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, NewInvalidInputError("invalid shape", err)
	}
	if want := shape.NumElements(); len(data) != want {
		return nil, NewInvalidInputError(
			fmt.Sprintf("shape %s needs %d elements, got %d", shape, want, len(data)), nil)
	}
	return &Array{dtype: DTypeOf[T](), shape: shape.Clone(), data: cloneData(data)}, nil
}

// Must is like New but panics on error.
// Use only in tests or for fixed data known to be valid.
func Must[T Element](shape Shape, data []T) *Array {
	a, err := New(shape, data)
	if err != nil {
		panic(err)
	}
	return a
}

// Vector creates a 1-D array from values.
func Vector[T Element](values ...T) *Array {
	return Must(Shape{len(values)}, values)
}

// Scalar creates a 0-d array holding v.
func Scalar[T Element](v T) *Array {
	return Must(Shape{}, []T{v})
}

// Empty creates an array of dtype dt with no elements. shape must contain
// a zero dimension.
func Empty(dt DType, shape Shape) (*Array, error) {
	switch dt {
	case Bool:
		return New(shape, []bool{})
	case Int64:
		return New(shape, []int64{})
	case Float64:
		return New(shape, []float64{})
	default:
		return New(shape, []string{})
	}
}

// Values returns a copy of the elements of a in row-major order.
// Returns a TYPE_MISMATCH error if T does not match a's dtype.
func Values[T Element](a *Array) ([]T, error) {
	data, ok := a.data.([]T)
	if !ok {
		return nil, NewTypeMismatchError(a.dtype, DTypeOf[T]())
	}
	return cloneData(data), nil
}

// cloneData copies s, keeping a non-nil slice so empty arrays still carry
// their element type.
func cloneData[T Element](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// DType returns the element type.
func (a *Array) DType() DType {
	return a.dtype
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() Shape {
	return a.shape.Clone()
}

// Size returns the number of elements.
func (a *Array) Size() int {
	return a.shape.NumElements()
}

// Flatten returns a 1-D array with the same elements in row-major order.
// Storage is shared; neither array is ever mutated.
func (a *Array) Flatten() *Array {
	return &Array{dtype: a.dtype, shape: Shape{a.Size()}, data: a.data}
}

// AsType converts a to dtype to. Only widening conversions along
// bool -> int64 -> float64 are allowed; everything else is a TYPE_MISMATCH.
func (a *Array) AsType(to DType) (*Array, error) {
	if a.dtype == to {
		return a, nil
	}
	if a.dtype == String || to == String || to < a.dtype {
		return nil, NewTypeMismatchError(a.dtype, to)
	}

	n := a.Size()
	switch to {
	case Int64:
		src := a.data.([]bool)
		out := make([]int64, n)
		for i, v := range src {
			if v {
				out[i] = 1
			}
		}
		return &Array{dtype: Int64, shape: a.shape, data: out}, nil
	default:
		out := make([]float64, n)
		switch src := a.data.(type) {
		case []bool:
			for i, v := range src {
				if v {
					out[i] = 1
				}
			}
		case []int64:
			for i, v := range src {
				out[i] = float64(v)
			}
		}
		return &Array{dtype: Float64, shape: a.shape, data: out}, nil
	}
}

// Equal reports whether a and b have the same dtype, shape and elements.
// NaN values in the same position compare equal.
func (a *Array) Equal(b *Array) bool {
	if a.dtype != b.dtype || !a.shape.Equal(b.shape) {
		return false
	}
	switch x := a.data.(type) {
	case []bool:
		return slices.Equal(x, b.data.([]bool))
	case []int64:
		return slices.Equal(x, b.data.([]int64))
	case []string:
		return slices.Equal(x, b.data.([]string))
	case []float64:
		return slices.EqualFunc(x, b.data.([]float64), func(p, q float64) bool {
			return p == q || (math.IsNaN(p) && math.IsNaN(q))
		})
	}
	return false
}

// Nested returns the elements as nested []any following the shape.
// A 0-d array returns its single element.
func (a *Array) Nested() any {
	if len(a.shape) == 0 {
		return a.at(0)
	}
	strides := a.shape.Strides()
	var build func(dim, offset int) []any
	build = func(dim, offset int) []any {
		out := make([]any, a.shape[dim])
		for i := range out {
			pos := offset + i*strides[dim]
			if dim == len(a.shape)-1 {
				out[i] = a.at(pos)
			} else {
				out[i] = build(dim+1, pos)
			}
		}
		return out
	}
	return build(0, 0)
}

// at returns the element at flat index i.
func (a *Array) at(i int) any {
	switch x := a.data.(type) {
	case []bool:
		return x[i]
	case []int64:
		return x[i]
	case []float64:
		return x[i]
	case []string:
		return x[i]
	}
	return nil
}
