package harness

import "github.com/roach88/ndtool/internal/array"

// CaseResult is the outcome of running one case.
type CaseResult struct {
	Name string
	Op   string

	// Output is the operation result; nil if the operation failed.
	Output *array.Array

	// Err is the operation error, if any.
	Err error

	// Failures lists expectation mismatches. Empty if the case passed.
	Failures []string
}

// Pass reports whether every expectation held.
func (r *CaseResult) Pass() bool {
	return len(r.Failures) == 0
}

// Result is the outcome of running a suite.
type Result struct {
	Suite string
	Cases []CaseResult
}

// Pass reports whether every case passed.
func (r *Result) Pass() bool {
	for i := range r.Cases {
		if !r.Cases[i].Pass() {
			return false
		}
	}
	return true
}

// Failed returns the number of failing cases.
func (r *Result) Failed() int {
	n := 0
	for i := range r.Cases {
		if !r.Cases[i].Pass() {
			n++
		}
	}
	return n
}
