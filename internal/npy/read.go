package npy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/roach88/ndtool/internal/array"
)

// ReadFile reads a single array from an .npy file. The file is closed
// before ReadFile returns, on success and on every error path.
func ReadFile(path string) (*array.Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("npy: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes one array from r.
func Read(r io.Reader) (*array.Array, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	count, err := elementCount(h.Shape, h.Descr.ItemSize())
	if err != nil {
		return nil, err
	}
	raw, err := readData(r, count*h.Descr.ItemSize())
	if err != nil {
		return nil, fmt.Errorf("npy: reading %d elements of %s: %w", count, h.Descr, err)
	}

	switch h.Descr.DType() {
	case array.Bool:
		return build(h, decodeBools(raw))
	case array.Int64:
		vals, err := decodeInts(raw, h.Descr)
		if err != nil {
			return nil, err
		}
		return build(h, vals)
	case array.Float64:
		return build(h, decodeFloats(raw, h.Descr))
	default:
		vals, err := decodeStrings(raw, h.Descr)
		if err != nil {
			return nil, err
		}
		return build(h, vals)
	}
}

// ReadHeader reads the magic, version and header dict from r, leaving r
// positioned at the start of the element data.
func ReadHeader(r io.Reader) (Header, error) {
	preamble := make([]byte, len(Magic)+2)
	if _, err := io.ReadFull(r, preamble); err != nil {
		return Header{}, fmt.Errorf("npy: reading preamble: %w", err)
	}
	if !bytes.Equal(preamble[:len(Magic)], []byte(Magic)) {
		return Header{}, ErrBadMagic
	}

	major, minor := preamble[len(Magic)], preamble[len(Magic)+1]
	var headerLen int
	switch major {
	case 1:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Header{}, fmt.Errorf("npy: reading header length: %w", err)
		}
		headerLen = int(binary.LittleEndian.Uint16(buf[:]))
	case 2, 3:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Header{}, fmt.Errorf("npy: reading header length: %w", err)
		}
		n := binary.LittleEndian.Uint32(buf[:])
		if n > maxHeaderLen {
			return Header{}, fmt.Errorf("npy: header length %d exceeds limit %d", n, maxHeaderLen)
		}
		headerLen = int(n)
	default:
		return Header{}, fmt.Errorf("npy: unsupported format version %d.%d", major, minor)
	}

	text := make([]byte, headerLen)
	if _, err := io.ReadFull(r, text); err != nil {
		return Header{}, fmt.Errorf("npy: reading header: %w", err)
	}
	return parseHeader(string(text))
}

// HasMagic reports whether prefix starts with the .npy magic.
func HasMagic(prefix []byte) bool {
	return bytes.HasPrefix(prefix, []byte(Magic))
}

// readChunk caps the up-front allocation for element data. Larger payloads
// grow the buffer as bytes actually arrive, so a header claiming more data
// than the file holds fails without allocating the claimed size.
const readChunk = 1 << 20

func readData(r io.Reader, size int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(min(size, readChunk))
	if _, err := buf.ReadFrom(io.LimitReader(r, int64(size))); err != nil {
		return nil, err
	}
	if buf.Len() < size {
		return nil, io.ErrUnexpectedEOF
	}
	return buf.Bytes(), nil
}

func elementCount(shape array.Shape, itemSize int) (int, error) {
	if itemSize <= 0 {
		return 0, fmt.Errorf("npy: invalid item size %d", itemSize)
	}
	n := 1
	for _, d := range shape {
		if d != 0 && n > math.MaxInt32/d {
			return 0, fmt.Errorf("npy: shape %s is too large", shape)
		}
		n *= d
	}
	if n > math.MaxInt32/itemSize {
		return 0, fmt.Errorf("npy: shape %s is too large", shape)
	}
	return n, nil
}

func build[T array.Element](h Header, data []T) (*array.Array, error) {
	if h.FortranOrder && len(h.Shape) > 1 {
		data = fortranToC(data, h.Shape)
	}
	return array.New(h.Shape, data)
}

// fortranToC reorders column-major data into row-major order.
func fortranToC[T array.Element](data []T, shape array.Shape) []T {
	fStrides := make([]int, len(shape))
	acc := 1
	for i, d := range shape {
		fStrides[i] = acc
		acc *= d
	}
	cStrides := shape.Strides()

	out := make([]T, len(data))
	for i := range out {
		rem, off := i, 0
		for d, stride := range cStrides {
			coord := rem / stride
			rem %= stride
			off += coord * fStrides[d]
		}
		out[i] = data[off]
	}
	return out
}

func byteOrder(d Descr) binary.ByteOrder {
	if d.ByteOrder == '>' {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func decodeBools(raw []byte) []bool {
	out := make([]bool, len(raw))
	for i, b := range raw {
		out[i] = b != 0
	}
	return out
}

func decodeInts(raw []byte, d Descr) ([]int64, error) {
	order := byteOrder(d)
	out := make([]int64, len(raw)/d.Size)
	for i := range out {
		b := raw[i*d.Size : (i+1)*d.Size]
		switch {
		case d.Size == 1 && d.Kind == 'i':
			out[i] = int64(int8(b[0]))
		case d.Size == 1:
			out[i] = int64(b[0])
		case d.Size == 2 && d.Kind == 'i':
			out[i] = int64(int16(order.Uint16(b)))
		case d.Size == 2:
			out[i] = int64(order.Uint16(b))
		case d.Size == 4 && d.Kind == 'i':
			out[i] = int64(int32(order.Uint32(b)))
		case d.Size == 4:
			out[i] = int64(order.Uint32(b))
		case d.Kind == 'i':
			out[i] = int64(order.Uint64(b))
		default:
			u := order.Uint64(b)
			if u > math.MaxInt64 {
				return nil, fmt.Errorf("npy: uint64 value %d at index %d does not fit in int64", u, i)
			}
			out[i] = int64(u)
		}
	}
	return out, nil
}

func decodeFloats(raw []byte, d Descr) []float64 {
	order := byteOrder(d)
	out := make([]float64, len(raw)/d.Size)
	for i := range out {
		b := raw[i*d.Size : (i+1)*d.Size]
		if d.Size == 4 {
			out[i] = float64(math.Float32frombits(order.Uint32(b)))
		} else {
			out[i] = math.Float64frombits(order.Uint64(b))
		}
	}
	return out
}

// decodeStrings decodes fixed-width S (bytes) and U (UTF-32) items. NumPy
// pads short items with NULs, which are stripped.
func decodeStrings(raw []byte, d Descr) ([]string, error) {
	itemSize := d.ItemSize()
	out := make([]string, len(raw)/itemSize)

	endian := utf32.LittleEndian
	if d.ByteOrder == '>' {
		endian = utf32.BigEndian
	}
	dec := utf32.UTF32(endian, utf32.IgnoreBOM).NewDecoder()

	for i := range out {
		item := raw[i*itemSize : (i+1)*itemSize]
		if d.Kind == 'S' {
			out[i] = string(bytes.TrimRight(item, "\x00"))
			continue
		}
		item = trimUTF32Padding(item)
		s, err := dec.Bytes(item)
		if err != nil {
			return nil, fmt.Errorf("npy: decoding %s item %d: %w", d, i, err)
		}
		out[i] = string(s)
	}
	return out, nil
}

// trimUTF32Padding drops trailing all-zero code units.
func trimUTF32Padding(item []byte) []byte {
	for len(item) >= 4 && item[len(item)-1] == 0 && item[len(item)-2] == 0 &&
		item[len(item)-3] == 0 && item[len(item)-4] == 0 {
		item = item[:len(item)-4]
	}
	return item
}
