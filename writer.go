package swifttab

import (
	"bufio"
	"errors"
	"io"
)

var (
	errNilWriter      = errors.New("swifttab: writer is nil")
	errWriterNoTarget = errors.New("swifttab: writer destination cannot be nil")
)

// Writer emits rows in the same dialect the Tokenizer reads: fields are
// quoted on demand, embedded quotes are doubled. A field written through
// Writer and read back through Tokenizer round-trips exactly.
type Writer struct {
	dst *bufio.Writer

	// Comma is the field delimiter. Default is ','.
	Comma byte
	// Quote is the quote character. Default is '"'.
	Quote byte
	// UseCRLF terminates rows with \r\n when set.
	UseCRLF bool
	// AlwaysQuote forces quoting for all fields when enabled.
	AlwaysQuote bool

	scratch []byte
	err     error
}

// NewWriter creates a Writer with internal buffering tuned for bulk writes,
// panicking if w is nil.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:   bufio.NewWriterSize(w, defaultChunkSize),
		Comma: ',',
		Quote: '"',
	}
}

// Reset points the writer at a new destination, preserving the configuration
// flags and clearing any stored error.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultChunkSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Write emits a single row. The row is assembled in a reused scratch buffer
// and handed to the destination in one call.
func (w *Writer) Write(row []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	comma := w.Comma
	if comma == 0 {
		comma = ','
	}
	quote := w.Quote
	if quote == 0 {
		quote = '"'
	}

	w.scratch = w.scratch[:0]
	for i, field := range row {
		if i > 0 {
			w.scratch = append(w.scratch, comma)
		}
		w.appendField(field, comma, quote)
	}
	if w.UseCRLF {
		w.scratch = append(w.scratch, '\r', '\n')
	} else {
		w.scratch = append(w.scratch, '\n')
	}

	if _, err := w.dst.Write(w.scratch); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteAll writes multiple rows, stopping at the first error.
func (w *Writer) WriteAll(rows [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func (w *Writer) appendField(field string, comma, quote byte) {
	if !w.AlwaysQuote && !fieldNeedsQuote(field, comma, quote) {
		w.scratch = append(w.scratch, field...)
		return
	}
	w.scratch = append(w.scratch, quote)
	for i := 0; i < len(field); i++ {
		if field[i] == quote {
			w.scratch = append(w.scratch, quote)
		}
		w.scratch = append(w.scratch, field[i])
	}
	w.scratch = append(w.scratch, quote)
}

func fieldNeedsQuote(field string, comma, quote byte) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case quote, comma, '\n', '\r':
			return true
		}
	}
	return false
}
