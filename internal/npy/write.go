package npy

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/roach88/ndtool/internal/array"
)

// WriteFile writes a to path in .npy format, replacing any existing file.
func WriteFile(path string, a *array.Array) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("npy: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("npy: %w", cerr)
		}
	}()
	return Write(f, a)
}

// Write encodes a to w in .npy format.
func Write(w io.Writer, a *array.Array) error {
	payload, descr, err := encodeData(a)
	if err != nil {
		return err
	}
	h := Header{Descr: descr, Shape: a.Shape()}

	bw := bufio.NewWriter(w)
	if err := writePreamble(bw, h); err != nil {
		return err
	}
	if _, err := bw.Write(payload); err != nil {
		return fmt.Errorf("npy: writing data: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("npy: writing data: %w", err)
	}
	return nil
}

// Marshal returns the .npy encoding of a.
func Marshal(a *array.Array) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePreamble(w io.Writer, h Header) error {
	// v1.0 preamble is magic + 2 version bytes + uint16 length.
	v1Len := len(Magic) + 2 + 2
	text := formatHeader(h, v1Len)
	version := []byte{1, 0}
	if len(text) > math.MaxUint16 {
		text = formatHeader(h, v1Len+2)
		version = []byte{2, 0}
	}

	if _, err := io.WriteString(w, Magic); err != nil {
		return fmt.Errorf("npy: writing preamble: %w", err)
	}
	if _, err := w.Write(version); err != nil {
		return fmt.Errorf("npy: writing preamble: %w", err)
	}
	var err error
	if version[0] == 1 {
		err = binary.Write(w, binary.LittleEndian, uint16(len(text)))
	} else {
		err = binary.Write(w, binary.LittleEndian, uint32(len(text)))
	}
	if err != nil {
		return fmt.Errorf("npy: writing header length: %w", err)
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("npy: writing header: %w", err)
	}
	return nil
}

func encodeData(a *array.Array) ([]byte, Descr, error) {
	switch a.DType() {
	case array.Bool:
		vals, err := array.Values[bool](a)
		if err != nil {
			return nil, Descr{}, err
		}
		out := make([]byte, len(vals))
		for i, v := range vals {
			if v {
				out[i] = 1
			}
		}
		return out, Descr{ByteOrder: '|', Kind: 'b', Size: 1}, nil

	case array.Int64:
		vals, err := array.Values[int64](a)
		if err != nil {
			return nil, Descr{}, err
		}
		out := make([]byte, 8*len(vals))
		for i, v := range vals {
			binary.LittleEndian.PutUint64(out[8*i:], uint64(v))
		}
		return out, Descr{ByteOrder: '<', Kind: 'i', Size: 8}, nil

	case array.Float64:
		vals, err := array.Values[float64](a)
		if err != nil {
			return nil, Descr{}, err
		}
		out := make([]byte, 8*len(vals))
		for i, v := range vals {
			binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(v))
		}
		return out, Descr{ByteOrder: '<', Kind: 'f', Size: 8}, nil

	default:
		vals, err := array.Values[string](a)
		if err != nil {
			return nil, Descr{}, err
		}
		return encodeStrings(vals)
	}
}

func encodeStrings(vals []string) ([]byte, Descr, error) {
	width := 1
	for _, s := range vals {
		if !utf8.ValidString(s) {
			return nil, Descr{}, fmt.Errorf("npy: string %q is not valid UTF-8", s)
		}
		width = max(width, utf8.RuneCountInString(s))
	}
	descr := Descr{ByteOrder: '<', Kind: 'U', Size: width}

	enc := utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewEncoder()
	itemSize := descr.ItemSize()
	out := make([]byte, itemSize*len(vals))
	for i, s := range vals {
		b, err := enc.Bytes([]byte(s))
		if err != nil {
			return nil, Descr{}, fmt.Errorf("npy: encoding string %q: %w", s, err)
		}
		copy(out[i*itemSize:], b)
	}
	return out, descr, nil
}
