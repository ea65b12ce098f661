package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/pbp-scores/internal/event"
)

// Stdout is the output path that selects standard output
const Stdout = "-"

// Format specifies the file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'csv' or 'json')", s)
	}
}

// Exporter writes events to a single destination
type Exporter struct {
	path   string
	format Format
	stdout io.Writer
}

// Option configures an Exporter
type Option func(*Exporter)

// WithStdout sets the writer used for the "-" path. Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(e *Exporter) {
		e.stdout = w
	}
}

// New creates an Exporter for path. The parent directory is created if it
// doesn't exist.
func New(path string, format Format, opts ...Option) (*Exporter, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, fmt.Errorf("output path is empty")
	}

	e := &Exporter{
		path:   path,
		format: format,
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}
	if path == Stdout {
		return e, nil
	}

	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		e.path = filepath.Join(home, path[2:])
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return e, nil
}

// Path returns the resolved output path
func (e *Exporter) Path() string {
	return e.path
}

// Write replaces the destination with events
func (e *Exporter) Write(events []*event.GameEvent) error {
	if e.path == Stdout {
		return e.encode(e.stdout, events)
	}

	f, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := e.encode(f, events); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	return nil
}

func (e *Exporter) encode(w io.Writer, events []*event.GameEvent) error {
	switch e.format {
	case FormatJSON:
		return WriteJSON(w, events)
	default:
		return WriteCSV(w, events)
	}
}

// WriteCSV writes a header row followed by one row per event
func WriteCSV(w io.Writer, events []*event.GameEvent) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(event.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, evt := range events {
		if err := cw.Write(evt.Record()); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}

// WriteJSON writes events as an indented JSON array. No events encode as [].
func WriteJSON(w io.Writer, events []*event.GameEvent) error {
	if events == nil {
		events = []*event.GameEvent{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(events); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
