package literal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/ndtool/internal/array"
)

// ParseArray parses text and builds an array from it. Every failure is an
// INVALID_INPUT *array.Error wrapping the cause.
func ParseArray(text string) (*array.Array, error) {
	v, err := Parse(text)
	if err != nil {
		return nil, array.NewInvalidInputError("invalid array literal", err)
	}
	arr, err := ToArray(v)
	if err != nil {
		return nil, array.NewInvalidInputError("invalid array literal", err)
	}
	return arr, nil
}

// ToArray converts a Value tree into an array. Lists and tuples are
// dimensions; everything else must be a leaf of a single element kind.
func ToArray(v Value) (*array.Array, error) {
	shape, err := shapeOf(v, "")
	if err != nil {
		return nil, err
	}

	var leaves []Value
	collect(v, &leaves)

	dt, err := leafDType(leaves)
	if err != nil {
		return nil, err
	}

	switch dt {
	case array.Bool:
		return array.New(shape, convertLeaves(leaves, func(v Value) bool { return bool(v.(Bool)) }))
	case array.Int64:
		return array.New(shape, convertLeaves(leaves, func(v Value) int64 { return int64(v.(Int)) }))
	case array.String:
		return array.New(shape, convertLeaves(leaves, func(v Value) string { return string(v.(Str)) }))
	default:
		return array.New(shape, convertLeaves(leaves, func(v Value) float64 {
			if i, ok := v.(Int); ok {
				return float64(i)
			}
			return float64(v.(Float))
		}))
	}
}

// shapeOf computes the shape of v and checks that every sibling has the
// same shape. path names the position for error messages, e.g. "[1][0]".
func shapeOf(v Value, path string) (array.Shape, error) {
	switch v.(type) {
	case None:
		return nil, fmt.Errorf("None at %s is not an array element", displayPath(path))
	case Dict:
		return nil, fmt.Errorf("dict at %s is not an array element", displayPath(path))
	}

	elems, ok := items(v)
	if !ok {
		return array.Shape{}, nil
	}
	if len(elems) == 0 {
		return array.Shape{0}, nil
	}

	first, err := shapeOf(elems[0], path+"[0]")
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(elems); i++ {
		sub := fmt.Sprintf("%s[%d]", path, i)
		s, err := shapeOf(elems[i], sub)
		if err != nil {
			return nil, err
		}
		if !s.Equal(first) {
			return nil, fmt.Errorf("ragged nesting: %s has shape %s but %s has shape %s",
				displayPath(path+"[0]"), first, sub, s)
		}
	}
	return append(array.Shape{len(elems)}, first...), nil
}

func displayPath(path string) string {
	if path == "" {
		return "top level"
	}
	return path
}

// collect appends the leaves of v in row-major order.
func collect(v Value, out *[]Value) {
	if elems, ok := items(v); ok {
		for _, e := range elems {
			collect(e, out)
		}
		return
	}
	*out = append(*out, v)
}

// leafDType picks the dtype for a set of leaves. Mixing kinds is rejected
// except int with float, which promotes to float64. No leaves at all gives
// float64.
func leafDType(leaves []Value) (array.DType, error) {
	seen := map[array.DType]bool{}
	for _, l := range leaves {
		switch l.(type) {
		case Bool:
			seen[array.Bool] = true
		case Int:
			seen[array.Int64] = true
		case Float:
			seen[array.Float64] = true
		case Str:
			seen[array.String] = true
		}
	}

	switch {
	case len(seen) == 0:
		return array.Float64, nil
	case len(seen) == 1:
		for dt := range seen {
			return dt, nil
		}
	case len(seen) == 2 && seen[array.Int64] && seen[array.Float64]:
		return array.Float64, nil
	}

	kinds := make([]string, 0, len(seen))
	for dt := range seen {
		kinds = append(kinds, dt.String())
	}
	sort.Strings(kinds)
	return 0, fmt.Errorf("heterogeneous elements: cannot mix %s", strings.Join(kinds, " and "))
}

func convertLeaves[T array.Element](leaves []Value, conv func(Value) T) []T {
	out := make([]T, len(leaves))
	for i, l := range leaves {
		out[i] = conv(l)
	}
	return out
}
