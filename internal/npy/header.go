package npy

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/ndtool/internal/array"
	"github.com/roach88/ndtool/internal/literal"
)

// Magic is the byte prefix of every .npy file.
const Magic = "\x93NUMPY"

// maxHeaderLen bounds the header dict so a corrupt length cannot trigger a
// huge allocation.
const maxHeaderLen = 1 << 20

// maxStringChars bounds the character count of S and U dtypes so the item
// size of a U element still fits in an int32.
const maxStringChars = math.MaxInt32 / 4

// headerAlign is the alignment NumPy pads the preamble plus header to.
const headerAlign = 64

// ErrBadMagic is returned when data does not start with Magic.
var ErrBadMagic = errors.New("npy: missing \\x93NUMPY magic")

// Header is the decoded header dict of an .npy file.
type Header struct {
	Descr        Descr
	FortranOrder bool
	Shape        array.Shape
}

// Descr is a parsed dtype descriptor such as '<i8' or '<U5'.
type Descr struct {
	ByteOrder byte // '<', '>' or '|'
	Kind      byte // 'b', 'i', 'u', 'f', 'S', 'U'
	Size      int  // bytes per item for numeric kinds; characters for S and U
}

// ItemSize returns the number of bytes one element occupies.
func (d Descr) ItemSize() int {
	if d.Kind == 'U' {
		return d.Size * 4
	}
	return d.Size
}

// String renders the descriptor in NumPy notation.
func (d Descr) String() string {
	return string(d.ByteOrder) + string(d.Kind) + strconv.Itoa(d.Size)
}

// ParseDescr parses a NumPy dtype string.
func ParseDescr(s string) (Descr, error) {
	if len(s) < 3 {
		return Descr{}, fmt.Errorf("npy: unsupported dtype %q", s)
	}
	d := Descr{ByteOrder: s[0], Kind: s[1]}
	switch d.ByteOrder {
	case '<', '>', '|':
	case '=':
		d.ByteOrder = '<'
	default:
		return Descr{}, fmt.Errorf("npy: unsupported byte order in dtype %q", s)
	}
	size, err := strconv.Atoi(s[2:])
	if err != nil || size <= 0 {
		return Descr{}, fmt.Errorf("npy: unsupported dtype %q", s)
	}
	d.Size = size

	valid := false
	switch d.Kind {
	case 'b':
		valid = size == 1
	case 'i', 'u':
		valid = size == 1 || size == 2 || size == 4 || size == 8
	case 'f':
		valid = size == 4 || size == 8
	case 'S', 'U':
		valid = size <= maxStringChars
	}
	if !valid {
		return Descr{}, fmt.Errorf("npy: unsupported dtype %q", s)
	}
	return d, nil
}

// DType returns the array dtype a descriptor decodes to.
func (d Descr) DType() array.DType {
	switch d.Kind {
	case 'b':
		return array.Bool
	case 'i', 'u':
		return array.Int64
	case 'f':
		return array.Float64
	default:
		return array.String
	}
}

// parseHeader decodes the header dict text.
func parseHeader(text string) (Header, error) {
	v, err := literal.Parse(strings.TrimRight(text, " \n\x00"))
	if err != nil {
		return Header{}, fmt.Errorf("npy: malformed header: %w", err)
	}
	dict, ok := v.(literal.Dict)
	if !ok {
		return Header{}, fmt.Errorf("npy: header is not a dict")
	}

	var h Header
	seen := map[string]bool{}
	for _, e := range dict {
		key, ok := e.Key.(literal.Str)
		if !ok {
			return Header{}, fmt.Errorf("npy: non-string header key")
		}
		seen[string(key)] = true

		switch key {
		case "descr":
			s, ok := e.Value.(literal.Str)
			if !ok {
				return Header{}, fmt.Errorf("npy: structured dtypes are not supported")
			}
			if h.Descr, err = ParseDescr(string(s)); err != nil {
				return Header{}, err
			}
		case "fortran_order":
			b, ok := e.Value.(literal.Bool)
			if !ok {
				return Header{}, fmt.Errorf("npy: fortran_order must be a bool")
			}
			h.FortranOrder = bool(b)
		case "shape":
			if h.Shape, err = parseShape(e.Value); err != nil {
				return Header{}, err
			}
		default:
			return Header{}, fmt.Errorf("npy: unexpected header key %q", key)
		}
	}
	for _, k := range []string{"descr", "fortran_order", "shape"} {
		if !seen[k] {
			return Header{}, fmt.Errorf("npy: header is missing %q", k)
		}
	}
	return h, nil
}

func parseShape(v literal.Value) (array.Shape, error) {
	var elems []literal.Value
	switch s := v.(type) {
	case literal.Tuple:
		elems = s
	case literal.List:
		elems = s
	default:
		return nil, fmt.Errorf("npy: shape must be a tuple")
	}
	shape := make(array.Shape, len(elems))
	for i, e := range elems {
		n, ok := e.(literal.Int)
		if !ok || n < 0 {
			return nil, fmt.Errorf("npy: invalid shape dimension %v", e)
		}
		shape[i] = int(n)
	}
	return shape, nil
}

// formatHeader renders the header dict the way NumPy does, padded with
// spaces and a trailing newline so that preambleLen+len(result) is a
// multiple of headerAlign.
func formatHeader(h Header, preambleLen int) string {
	fortran := "False"
	if h.FortranOrder {
		fortran = "True"
	}
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }", h.Descr, fortran, h.Shape)
	total := preambleLen + len(dict) + 1
	pad := (headerAlign - total%headerAlign) % headerAlign
	return dict + strings.Repeat(" ", pad) + "\n"
}
