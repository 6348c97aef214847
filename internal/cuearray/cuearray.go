// Package cuearray decodes arrays from CUE documents of the form
//
//	dtype: "float64"
//	data: [[1, 2, 3], [4, 5, 6]]
//
// The document is unified with an embedded #Array definition before its
// data is built with the same strict rules as literal arrays.
package cuearray

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/ndtool/internal/array"
	"github.com/roach88/ndtool/internal/literal"
)

//go:embed schema.cue
var schemaSource string

// DocumentError reports a problem with a CUE array document.
type DocumentError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *DocumentError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DecodeFile reads and decodes the CUE document at path.
func DecodeFile(path string) (*array.Array, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, src)
}

// Decode builds an array from CUE source. filename is used in positions.
func Decode(filename string, src []byte) (*array.Array, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling array schema: %w", err)
	}

	doc := ctx.CompileBytes(src, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Array")).Unify(doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	dataVal := v.LookupPath(cue.ParsePath("data"))
	lv, err := toLiteral(dataVal)
	if err != nil {
		return nil, err
	}
	arr, err := literal.ToArray(lv)
	if err != nil {
		return nil, &DocumentError{Field: "data", Message: err.Error(), Pos: dataVal.Pos()}
	}

	dtypeVal := v.LookupPath(cue.ParsePath("dtype"))
	if !dtypeVal.Exists() {
		return arr, nil
	}
	name, err := dtypeVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	dt, err := array.ParseDType(name)
	if err != nil {
		return nil, &DocumentError{Field: "dtype", Message: err.Error(), Pos: dtypeVal.Pos()}
	}
	return cast(arr, dt, dtypeVal.Pos())
}

// cast applies a declared dtype. Only int64 data may be widened to float64;
// an empty array takes whatever dtype is declared.
func cast(arr *array.Array, dt array.DType, pos token.Pos) (*array.Array, error) {
	switch {
	case arr.DType() == dt:
		return arr, nil
	case arr.Size() == 0:
		return array.Empty(dt, arr.Shape())
	case arr.DType() == array.Int64 && dt == array.Float64:
		return arr.AsType(dt)
	}
	return nil, &DocumentError{
		Field:   "dtype",
		Message: fmt.Sprintf("data of dtype %s cannot be declared as %s", arr.DType(), dt),
		Pos:     pos,
	}
}

// toLiteral converts a concrete CUE value into a literal tree so arrays
// from both sources go through one builder.
func toLiteral(v cue.Value) (literal.Value, error) {
	switch v.Kind() {
	case cue.NullKind:
		return literal.None{}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return literal.Bool(b), nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, &DocumentError{Field: "data", Message: fmt.Sprintf("integer out of int64 range: %v", v), Pos: v.Pos()}
		}
		return literal.Int(n), nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return literal.Float(f), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return literal.Str(s), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out := literal.List{}
		for iter.Next() {
			item, err := toLiteral(iter.Value())
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out := literal.Dict{}
		for iter.Next() {
			item, err := toLiteral(iter.Value())
			if err != nil {
				return nil, err
			}
			out = append(out, literal.DictEntry{Key: literal.Str(iter.Selector().String()), Value: item})
		}
		return out, nil
	default:
		return nil, &DocumentError{Field: "data", Message: fmt.Sprintf("unsupported value of kind %s", v.Kind()), Pos: v.Pos()}
	}
}

// formatCUEError keeps the first CUE error together with its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &DocumentError{Field: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return err
}
