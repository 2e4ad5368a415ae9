// Package export writes resolved roster rows to tabular files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/vilaca/contributor-roster/internal/domain"
)

// RowWriter writes roster rows in order.
// Follows Interface Segregation Principle - the exporter only needs these three calls.
type RowWriter interface {
	// WriteHeader writes the fixed header row.
	WriteHeader() error
	// Write appends one row and flushes it.
	Write(row domain.Row) error
	// Close flushes remaining data and releases the destination.
	Close() error
}

// CSVWriter writes rows as RFC 4180 CSV.
type CSVWriter struct {
	w      *csv.Writer
	closer io.Closer
}

// NewCSVWriter wraps w. If w is an io.Closer, Close closes it.
func NewCSVWriter(w io.Writer) *CSVWriter {
	cw := &CSVWriter{w: csv.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		cw.closer = c
	}
	return cw
}

// Create truncates or creates the file at path and returns a writer for it.
func Create(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return NewCSVWriter(f), nil
}

// WriteHeader writes username,first_name,last_name.
func (c *CSVWriter) WriteHeader() error {
	return c.writeRecord(domain.Header())
}

// Write appends one row. Rows are flushed as they are written, so an
// interrupted run leaves every row written so far on disk.
func (c *CSVWriter) Write(row domain.Row) error {
	return c.writeRecord(row.Record())
}

// Close flushes and closes the underlying destination.
func (c *CSVWriter) Close() error {
	c.w.Flush()
	flushErr := c.w.Error()
	if c.closer != nil {
		if err := c.closer.Close(); err != nil && flushErr == nil {
			return fmt.Errorf("failed to close output: %w", err)
		}
	}
	if flushErr != nil {
		return fmt.Errorf("failed to flush output: %w", flushErr)
	}
	return nil
}

func (c *CSVWriter) writeRecord(record []string) error {
	if err := c.w.Write(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("failed to flush record: %w", err)
	}
	return nil
}
