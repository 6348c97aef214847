// Package literal parses nested-list array literals such as
//
//	[[1, 2], [3, 4]]
//	[['joe', 'Joe'], ["frank", 'alice']]
//
// into arrays. Parsing happens in two stages: a recursive-descent parser
// turns text into a Value tree (lists, tuples, dicts, numbers, strings,
// booleans, None), and ToArray turns a Value into an *array.Array while
// enforcing the array rules:
//   - nesting must be rectangular; ragged lists are rejected
//   - str cannot be mixed with numbers or bools, bool cannot be mixed with
//     numbers; int mixed with float promotes to float64
//   - None and dicts are not array elements
//   - [] is an empty float64 array of shape (0,); a bare scalar is 0-d
//
// Dicts exist so the same parser can read NPY headers.
package literal
