// Package input turns command-line operand tokens into arrays.
//
// A token naming an existing file with a known extension is loaded from
// that file; anything else is parsed as an array literal.
//
//	a.npy          NumPy binary file
//	a.cue          CUE document with dtype? and data fields
//	arrays.ndb     SQLite archive holding exactly one array
//	arrays.ndb#b   the array named b in an archive
//	[[1, 2], [3]]  literal (rejected: ragged)
package input

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/ndtool/internal/array"
	"github.com/roach88/ndtool/internal/cuearray"
	"github.com/roach88/ndtool/internal/literal"
	"github.com/roach88/ndtool/internal/npy"
	"github.com/roach88/ndtool/internal/store"
)

// Source identifies where a resolved array came from.
type Source string

const (
	SourceLiteral Source = "literal"
	SourceNPY     Source = "npy"
	SourceCUE     Source = "cue"
	SourceArchive Source = "archive"
)

var extensions = map[string]Source{
	".npy": SourceNPY,
	".cue": SourceCUE,
	".ndb": SourceArchive,
}

// Resolver loads arrays from operand tokens.
// The zero value is ready to use and logs to slog.Default().
type Resolver struct {
	Logger *slog.Logger
}

// NewResolver returns a Resolver that logs to logger.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{Logger: logger}
}

// Resolve is ResolveContext with a background context.
func (r *Resolver) Resolve(token string) (*array.Array, error) {
	return r.ResolveContext(context.Background(), token)
}

// ResolveContext loads the array a token denotes. Every failure is an
// INVALID_INPUT error wrapping the cause.
func (r *Resolver) ResolveContext(ctx context.Context, token string) (*array.Array, error) {
	path, entry := splitArchiveRef(token)
	source, ok := extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		source = SourceLiteral
	}

	var (
		arr *array.Array
		err error
	)
	switch source {
	case SourceLiteral:
		arr, err = literal.ParseArray(token)
	default:
		arr, err = r.loadFile(ctx, source, path, entry)
	}
	if err != nil {
		r.logger().Debug("input rejected", "token", token, "source", source, "error", err)
		return nil, err
	}

	r.logger().Debug("input resolved",
		"token", token,
		"source", source,
		"dtype", arr.DType(),
		"shape", arr.Shape().String())
	return arr, nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Resolver) loadFile(ctx context.Context, source Source, path, entry string) (*array.Array, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, array.NewInvalidInputError(fmt.Sprintf("cannot read %s", path), err)
	}
	if !info.Mode().IsRegular() {
		return nil, array.NewInvalidInputError(fmt.Sprintf("%s is not a regular file", path), nil)
	}

	var arr *array.Array
	switch source {
	case SourceNPY:
		arr, err = readNPY(path)
	case SourceCUE:
		arr, err = cuearray.DecodeFile(path)
	case SourceArchive:
		arr, err = readArchive(ctx, path, entry)
	}
	if err != nil {
		return nil, array.NewInvalidInputError(fmt.Sprintf("cannot load %s", path), err)
	}
	return arr, nil
}

func readNPY(path string) (*array.Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if prefix, _ := br.Peek(len(npy.Magic)); !npy.HasMagic(prefix) {
		return nil, npy.ErrBadMagic
	}
	return npy.Read(br)
}

func readArchive(ctx context.Context, path, entry string) (*array.Array, error) {
	s, err := store.OpenReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if entry == "" {
		names, err := s.Names(ctx)
		if err != nil {
			return nil, err
		}
		if len(names) != 1 {
			return nil, fmt.Errorf("archive holds %d arrays %v; select one with %s#<name>", len(names), names, path)
		}
		entry = names[0]
	}
	return s.Get(ctx, entry)
}

// FilePath returns the file a token names, with any #entry suffix
// removed, and reports whether the token names a file at all.
func FilePath(token string) (string, bool) {
	path, _ := splitArchiveRef(token)
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return path, ok
}

// splitArchiveRef splits "path.ndb#name" into its path and entry name.
// Tokens without an archive reference come back unchanged with no entry.
func splitArchiveRef(token string) (path, entry string) {
	i := strings.LastIndex(token, "#")
	if i < 0 || !strings.EqualFold(filepath.Ext(token[:i]), ".ndb") {
		return token, ""
	}
	return token[:i], token[i+1:]
}
