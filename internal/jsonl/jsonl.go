// Package jsonl reads and writes line-delimited JSON files: one compact
// JSON object per line, each line terminated by a newline, no surrounding
// array brackets.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"stride/internal/services"
)

// Writer streams JSON values to a file, one compact object per line, in the
// order given. Creating a writer truncates any previous file at the path.
// Close must run on every exit path so the handle is released; a failed
// write leaves the partial file on disk rather than deleting evidence.
type Writer struct {
	path   string
	file   *os.File
	buffer *bufio.Writer
	enc    *json.Encoder
	count  int
	closed bool
}

// Create opens path for writing, replacing any existing file.
func Create(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, services.Wrap(services.ErrWrite, "", "create output file", path, err)
	}
	buffer := bufio.NewWriter(file)
	enc := json.NewEncoder(buffer)
	enc.SetEscapeHTML(false)
	return &Writer{path: path, file: file, buffer: buffer, enc: enc}, nil
}

// Write appends one value as a single JSON line.
func (w *Writer) Write(v any) error {
	if w.closed {
		return services.Wrap(services.ErrWrite, "", "write record", "writer already closed", nil)
	}
	if err := w.enc.Encode(v); err != nil {
		return services.Wrap(services.ErrWrite, "", "write record", fmt.Sprintf("record %d of %s", w.count+1, w.path), err)
	}
	w.count++
	return nil
}

// Count reports how many records have been written so far.
func (w *Writer) Count() int {
	return w.count
}

// Path returns the output file location.
func (w *Writer) Path() string {
	return w.path
}

// Close flushes buffered lines and releases the file handle. Closing twice
// is harmless.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	flushErr := w.buffer.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return services.Wrap(services.ErrWrite, "", "flush output", w.path, flushErr)
	}
	if closeErr != nil {
		return services.Wrap(services.ErrWrite, "", "close output", w.path, closeErr)
	}
	return nil
}

// ReadAll returns every non-blank line of a JSONL file. Lines are returned
// verbatim; callers decode into their own record types.
func ReadAll(path string) ([]json.RawMessage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open jsonl file: %w", err)
	}
	defer file.Close()

	var lines []json.RawMessage
	scanner := bufio.NewScanner(file)
	// Allow large lines (long activities produce wide CSV rows)
	scanner.Buffer(make([]byte, 0, 256*1024), 8*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		lines = append(lines, json.RawMessage(bytes.Clone(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan jsonl file: %w", err)
	}
	return lines, nil
}
