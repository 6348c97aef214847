package array

import "fmt"

// DType identifies the element type of an Array.
type DType uint8

const (
	Bool DType = iota
	Int64
	Float64
	String
)

// String returns the name used in CLI output and CUE documents.
func (d DType) String() string {
	switch d {
	case Bool:
		return "bool"
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case String:
		return "str"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
}

// IsNumeric reports whether values of d can take part in arithmetic.
// Bool counts as numeric the way NumPy treats it (False=0, True=1).
func (d DType) IsNumeric() bool {
	return d == Bool || d == Int64 || d == Float64
}

// ParseDType converts a dtype name back to a DType.
func ParseDType(s string) (DType, error) {
	switch s {
	case "bool":
		return Bool, nil
	case "int64", "int":
		return Int64, nil
	case "float64", "float":
		return Float64, nil
	case "str", "string":
		return String, nil
	default:
		return 0, fmt.Errorf("unknown dtype %q", s)
	}
}

// Promote returns the common dtype of a and b.
//
// Numeric types promote along bool -> int64 -> float64. String only
// combines with String; any other pairing is a TYPE_MISMATCH error.
func Promote(a, b DType) (DType, error) {
	if a == b {
		return a, nil
	}
	if a == String || b == String {
		return 0, NewTypeMismatchError(a, b)
	}
	return max(a, b), nil
}
