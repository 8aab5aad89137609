package swifttab

import (
	"io"
	"strings"
)

// RecordReader supplies the caller half of the extraction pipeline: which
// columns to retain, what to substitute when one is missing, and how to turn
// a filtered row into a typed record.
type RecordReader[T any] interface {
	// UsedColumns lists the column names to retain, in the order BuildRecord
	// will see them. Consulted once, before the first row.
	UsedColumns() []string
	// DefaultValue supplies the value for a used column that is absent from
	// the header or from a short row.
	DefaultValue(column string) string
	// BuildRecord maps one filtered row to a record. Conversion failures must
	// land in the record's validity flag; they never abort the stream.
	BuildRecord(row FilteredRow) T
}

// FilteredRow holds the used-column values of one row, in declared order.
// It is valid only until BuildRecord returns.
type FilteredRow struct {
	columns []string
	values  []string
}

// Len reports the number of used columns.
func (r FilteredRow) Len() int { return len(r.values) }

// Value returns the field at position i of the declared used-column order.
func (r FilteredRow) Value(i int) string { return r.values[i] }

// Get returns the field for a used column by name.
func (r FilteredRow) Get(name string) (string, bool) {
	for i, c := range r.columns {
		if c == name {
			return r.values[i], true
		}
	}
	return "", false
}

// Pipeline streams typed records out of tabular input, one row per Next call:
// lazy, finite, forward-only. Restarting means reopening the underlying
// source. A Pipeline owns its tokenizer and header and shares nothing, so
// independent sessions may run on separate goroutines.
type Pipeline[T any] struct {
	// Comma, Quote and Strict configure the tokenizer; Duplicates configures
	// header construction. All are applied on the first Next call and ignored
	// afterwards.
	Comma      byte
	Quote      byte
	Strict     bool
	Duplicates DuplicatePolicy

	tok       *Tokenizer
	reader    RecordReader[T]
	header    HeaderIndex
	columns   []string
	positions []int
	values    []string
	started   bool
	startErr  error
}

// NewPipeline creates a pipeline over src driven by reader, panicking if
// either is nil.
func NewPipeline[T any](src io.Reader, reader RecordReader[T]) *Pipeline[T] {
	if src == nil {
		panic("swifttab: pipeline source cannot be nil")
	}
	if reader == nil {
		panic("swifttab: pipeline record reader cannot be nil")
	}
	return &Pipeline[T]{tok: NewTokenizer(src), reader: reader}
}

// Header returns the header index, reading the header row first if no row has
// been consumed yet.
func (p *Pipeline[T]) Header() (HeaderIndex, error) {
	if err := p.start(); err != nil {
		return nil, err
	}
	return p.header, nil
}

// Next tokenizes one row, projects it to the used columns and returns the
// constructed record. The first call builds the header index. io.EOF signals
// clean end of stream; ErrEmptyStream means no header row existed.
func (p *Pipeline[T]) Next() (T, error) {
	var zero T
	if err := p.start(); err != nil {
		return zero, err
	}

	row, err := p.tok.ReadRow()
	if err != nil {
		return zero, err
	}

	for i, pos := range p.positions {
		if pos >= 0 && pos < len(row) {
			// Copy only the retained value; the tokenizer reuses the row's
			// backing storage on the next read.
			p.values[i] = strings.Clone(row[pos])
		} else {
			p.values[i] = p.reader.DefaultValue(p.columns[i])
		}
	}

	return p.reader.BuildRecord(FilteredRow{columns: p.columns, values: p.values}), nil
}

// All drains the pipeline, collecting records until io.EOF.
func (p *Pipeline[T]) All() ([]T, error) {
	var out []T
	for {
		rec, err := p.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// start applies the dialect configuration, reads the header row and
// precomputes the raw-row position of every used column. Missing columns map
// to -1 and resolve through DefaultValue on every row.
func (p *Pipeline[T]) start() error {
	if p.started {
		return p.startErr
	}
	p.started = true

	p.tok.Comma = p.Comma
	p.tok.Quote = p.Quote
	p.tok.Strict = p.Strict
	p.tok.ReuseRecord = true

	header, err := ReadHeader(p.tok, p.Duplicates)
	if err != nil {
		p.startErr = err
		return err
	}
	p.header = header

	cols := p.reader.UsedColumns()
	p.columns = make([]string, len(cols))
	copy(p.columns, cols)

	p.positions = make([]int, len(p.columns))
	for i, name := range p.columns {
		pos, ok := header.PositionOf(name)
		if !ok {
			pos = -1
		}
		p.positions[i] = pos
	}
	p.values = make([]string, len(p.columns))
	return nil
}
