package array

import (
	"math"
	"strconv"
	"strings"
)

// PrintOptions controls text rendering of arrays.
type PrintOptions struct {
	// Precision is the maximum number of fractional digits for floats.
	// Zero means the shortest representation that round-trips.
	Precision int

	// Separator is placed between elements on the innermost axis.
	Separator string
}

// DefaultPrintOptions mirrors NumPy's str() output.
var DefaultPrintOptions = PrintOptions{Precision: 8, Separator: " "}

// String renders a with DefaultPrintOptions.
func (a *Array) String() string {
	return a.Format(DefaultPrintOptions)
}

// Format renders a in NumPy's bracketed layout:
//
//	[[46 75 71]
//	 [29 28 65]]
//
// Numbers are padded to a common width, strings are quoted, and blocks of
// rank k are separated by k newlines. Empty arrays print as [].
func (a *Array) Format(opts PrintOptions) string {
	if opts.Separator == "" {
		opts.Separator = " "
	}
	if len(a.shape) == 0 {
		return a.formatScalar(opts)
	}
	if a.Size() == 0 {
		return "[]"
	}

	cells := a.cells(opts)
	strides := a.shape.Strides()
	ndim := len(a.shape)

	var b strings.Builder
	var write func(dim, offset int)
	write = func(dim, offset int) {
		b.WriteByte('[')
		for i := 0; i < a.shape[dim]; i++ {
			pos := offset + i*strides[dim]
			if dim == ndim-1 {
				if i > 0 {
					b.WriteString(opts.Separator)
				}
				b.WriteString(cells[pos])
				continue
			}
			if i > 0 {
				b.WriteString(strings.Repeat("\n", ndim-dim-1))
				b.WriteString(strings.Repeat(" ", dim+1))
			}
			write(dim+1, pos)
		}
		b.WriteByte(']')
	}
	write(0, 0)
	return b.String()
}

// formatScalar renders a 0-d array the way NumPy prints a bare element.
func (a *Array) formatScalar(opts PrintOptions) string {
	switch v := a.at(0).(type) {
	case string:
		return v
	case bool:
		return formatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v, opts.Precision)
	}
	return ""
}

// cells renders every element to a string padded to a common width.
func (a *Array) cells(opts PrintOptions) []string {
	n := a.Size()
	cells := make([]string, n)
	switch x := a.data.(type) {
	case []string:
		for i, v := range x {
			cells[i] = quote(v)
		}
		return cells
	case []bool:
		for i, v := range x {
			cells[i] = formatBool(v)
		}
		return padLeft(cells)
	case []int64:
		for i, v := range x {
			cells[i] = strconv.FormatInt(v, 10)
		}
		return padLeft(cells)
	case []float64:
		return alignFloats(x, opts.Precision)
	}
	return cells
}

func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// formatFloat renders v with at most precision fractional digits and
// NumPy's trailing dot for integral values ("2.").
func formatFloat(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if precision > 0 {
		if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > precision {
			s = strconv.FormatFloat(v, 'f', precision, 64)
			s = strings.TrimRight(s, "0")
		}
	}
	if !strings.Contains(s, ".") {
		s += "."
	}
	return s
}

// alignFloats pads integer parts on the left and fractions on the right so
// decimal points line up.
func alignFloats(values []float64, precision int) []string {
	ints := make([]string, len(values))
	fracs := make([]string, len(values))
	intWidth, fracWidth := 0, 0
	for i, v := range values {
		s := formatFloat(v, precision)
		if dot := strings.IndexByte(s, '.'); dot >= 0 {
			ints[i], fracs[i] = s[:dot+1], s[dot+1:]
		} else {
			ints[i] = s
		}
		intWidth = max(intWidth, len(ints[i]))
		fracWidth = max(fracWidth, len(fracs[i]))
	}
	out := make([]string, len(values))
	for i := range values {
		out[i] = strings.Repeat(" ", intWidth-len(ints[i])) + ints[i] +
			fracs[i] + strings.Repeat(" ", fracWidth-len(fracs[i]))
	}
	return out
}

func padLeft(cells []string) []string {
	width := 0
	for _, c := range cells {
		width = max(width, len(c))
	}
	for i, c := range cells {
		cells[i] = strings.Repeat(" ", width-len(c)) + c
	}
	return cells
}

// quote renders s as a Python string literal: single quotes unless s
// contains a single quote and no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			b.WriteString(`\x`)
			b.WriteString(strconv.FormatInt(int64(r)|0x100, 16)[1:])
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
