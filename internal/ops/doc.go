// Package ops implements the two array operations ndtool exposes:
// set intersection and broadcasting addition.
//
// Both are pure functions. They never mutate their operands and return a
// freshly allocated result or an *array.Error:
//   - Intersect returns a sorted, duplicate-free 1-D array of the elements
//     present in both flattened inputs
//   - BroadcastAdd returns the element-wise sum over the broadcast shape
//
// Integer addition wraps on overflow (two's complement int64), matching
// NumPy's behaviour for int64 arrays.
package ops
