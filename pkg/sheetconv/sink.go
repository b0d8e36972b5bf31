package sheetconv

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// Sink receives an exported document.
type Sink interface {
	Deliver(ctx context.Context, filename string, data []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, filename string, data []byte) error

// Deliver calls fn.
func (fn SinkFunc) Deliver(ctx context.Context, filename string, data []byte) error {
	return fn(ctx, filename, data)
}

type dirSink struct{ dir string }

// ToDir returns a Sink that writes documents into dir, creating it if
// needed.
func ToDir(dir string) Sink { return dirSink{dir: dir} }

func (s dirSink) Deliver(_ context.Context, filename string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

type writerSink struct{ w io.Writer }

// ToWriter returns a Sink that writes documents to w.
func ToWriter(w io.Writer) Sink { return writerSink{w: w} }

func (s writerSink) Deliver(_ context.Context, _ string, data []byte) error {
	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

type responseSink struct{ w http.ResponseWriter }

// ToResponse returns a Sink that sends documents as an HTTP attachment.
func ToResponse(w http.ResponseWriter) Sink { return responseSink{w: w} }

func (s responseSink) Deliver(_ context.Context, filename string, data []byte) error {
	h := s.w.Header().Set

	h("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	h("Content-Description", "File Transfer")
	h("Content-Type", ContentType)
	h("Content-Length", strconv.Itoa(len(data)))
	h("Content-Transfer-Encoding", "binary")
	h("Expires", "0")
	h("Cache-Control", "must-revalidate")
	h("Pragma", "public")

	s.w.WriteHeader(http.StatusOK)
	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
