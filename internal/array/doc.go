// Package array provides the N-dimensional array model shared by every other
// ndtool package.
//
// An Array is an immutable, row-major container of a single DType with a
// Shape. Constructors copy their input and accessors return copies, so
// operations never observe each other's storage.
//
// Key constraints:
//   - The DType set is closed: bool, int64, float64, str
//   - Shape () is a 0-d scalar with exactly one element
//   - A Shape containing 0 has no elements
//   - array imports nothing internal; all other packages import array
package array
