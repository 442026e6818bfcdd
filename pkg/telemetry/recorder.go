package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Recorder appends samples as CSV rows. The header is written with the first row.
type Recorder struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
	rows          int
}

// NewRecorder writes CSV rows to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// CreateRecorder creates (or truncates) the CSV file at path.
// Returns nil if path is empty (recording disabled).
func CreateRecorder(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating telemetry directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &Recorder{w: f, closer: f}, nil
}

// Write appends one sample. A nil Recorder discards it.
func (r *Recorder) Write(s Sample) error {
	if r == nil {
		return nil
	}

	records := []Sample{s}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}
	r.rows++
	return nil
}

// Rows returns the number of samples written so far.
func (r *Recorder) Rows() int {
	if r == nil {
		return 0
	}
	return r.rows
}

// Close closes the underlying file, if the Recorder owns one.
func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
