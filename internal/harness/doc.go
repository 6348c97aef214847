// Package harness runs array operation cases described in YAML files.
//
// # Case File Format
//
//	name: demo
//	description: "What these cases check"
//	cases:
//	  - name: row broadcast
//	    op: add
//	    a: [[33, 59, 24], [16, 12, 18]]
//	    b: [13, 16, 47]
//	    expect: [[46, 75, 71], [29, 28, 65]]
//	  - name: incompatible shapes
//	    op: add
//	    a: "[[1, 2, 3], [4, 5, 6]]"
//	    b: fixtures/four.npy
//	    expect_error: SHAPE_MISMATCH
//
// An operand written as a YAML sequence or number is the array itself. An
// operand written as a YAML string is an input token, either literal text
// or a file path; relative paths are resolved against the case file's
// directory.
//
// Each case needs at least one expectation: expect (exact result, dtype
// included), expect_dtype, expect_shape (as printed, e.g. "(2, 3)") or
// expect_error (an error code).
//
// # Golden Files
//
// RunWithGolden renders every case outcome as text and compares it with
// testdata/golden/<suite>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
