package sheetconv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
)

// Source supplies the bytes of a document to import.
type Source interface {
	ReadAll(ctx context.Context) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]byte, error)

// ReadAll calls fn.
func (fn SourceFunc) ReadAll(ctx context.Context) ([]byte, error) { return fn(ctx) }

type bytesSource []byte

// FromBytes returns a Source over data. A nil slice reports ErrNoFile.
func FromBytes(data []byte) Source { return bytesSource(data) }

func (b bytesSource) ReadAll(context.Context) ([]byte, error) {
	if b == nil {
		return nil, ErrNoFile
	}
	return bytes.Clone(b), nil
}

type readerSource struct{ r io.Reader }

// FromReader returns a Source that reads r to the end. A nil reader
// reports ErrNoFile.
func FromReader(r io.Reader) Source { return readerSource{r: r} }

func (s readerSource) ReadAll(context.Context) ([]byte, error) {
	if s.r == nil {
		return nil, ErrNoFile
	}
	data, err := io.ReadAll(s.r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

type fileSource struct{ path string }

// FromFile returns a Source that reads the file at path. An empty path or
// a missing file reports ErrNoFile.
func FromFile(path string) Source { return fileSource{path: path} }

func (s fileSource) ReadAll(context.Context) ([]byte, error) {
	if s.path == "" {
		return nil, ErrNoFile
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoFile, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return data, nil
}

type uploadSource struct {
	r         *http.Request
	field     string
	maxMemory int64
}

// FromUpload returns a Source that reads the multipart form file named
// field from r. A request without that file reports ErrNoFile.
func FromUpload(r *http.Request, field string, maxMemory int64) Source {
	return uploadSource{r: r, field: field, maxMemory: maxMemory}
}

func (s uploadSource) ReadAll(context.Context) ([]byte, error) {
	if s.r == nil {
		return nil, ErrNoFile
	}
	if err := s.r.ParseMultipartForm(s.maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("parse upload: %w", err)
	}

	file, _, err := s.r.FormFile(s.field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, ErrNoFile
	}
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}
