package swifttab

import (
	"errors"
	"fmt"
	"io"
	"unsafe"
)

var (
	// ErrBareQuote is returned in strict mode when a quote appears where the
	// quoting grammar does not allow one.
	ErrBareQuote = errors.New("swifttab: bare quote in non-quoted field")
	// ErrUnterminatedQuote is returned in strict mode when a quoted field is
	// still open at end of stream.
	ErrUnterminatedQuote = errors.New("swifttab: unterminated quoted field")
	// ErrFieldCount is returned when FieldsPerRecord is set and a row has a
	// different width.
	ErrFieldCount = errors.New("swifttab: wrong number of fields")
)

// RowError carries location information for structural tokenizer failures.
type RowError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the failure with the stored line, column, and Err values.
func (e *RowError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("swifttab: row error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying Err so RowError participates in errors.Unwrap.
func (e *RowError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Quoting states. Scoped to assembling a single row, never observable outside
// ReadRow.
type quoteState uint8

const (
	stateUnquoted quoteState = iota
	stateQuoted
	stateQuotePending // quote seen inside a quoted field, not yet resolved
)

// Tokenizer assembles raw rows from a byte stream, one row per ReadRow call,
// in stream order, holding at most one row of state at a time.
type Tokenizer struct {
	src *Source

	// Comma is the field delimiter. Default is ','.
	Comma byte
	// Quote is the quote character. Default is '"'.
	Quote byte
	// Strict rejects malformed quoting with ErrBareQuote or
	// ErrUnterminatedQuote. The default lenient mode recovers: a quote inside
	// an unquoted field opens quoting, a stray byte after a closing quote
	// starts a new field, and an unterminated quote at end of stream closes
	// the field.
	Strict bool
	// ReuseRecord indicates whether ReadRow may reuse the backing storage of
	// the returned slice. Reused values are valid only until the next call.
	ReuseRecord bool
	// FieldsPerRecord, when positive, requires every row to have exactly this
	// many fields. Zero permits ragged rows so a later stage can substitute
	// defaults for missing columns.
	FieldsPerRecord int

	row         []string
	dataBuf     []byte
	fieldBounds []int
	line        int
	finished    bool
}

// NewTokenizer creates a Tokenizer reading from r through an internally owned
// Source, panicking if r is nil.
func NewTokenizer(r io.Reader) *Tokenizer {
	if r == nil {
		panic("swifttab: tokenizer source cannot be nil")
	}
	return NewTokenizerSource(NewSource(r))
}

// NewTokenizerSource creates a Tokenizer consuming an existing Source,
// panicking if src is nil.
func NewTokenizerSource(src *Source) *Tokenizer {
	if src == nil {
		panic(errNilSource.Error())
	}
	return &Tokenizer{
		src:         src,
		Comma:       ',',
		Quote:       '"',
		row:         make([]string, 0, 16),
		dataBuf:     make([]byte, 0, 512),
		fieldBounds: make([]int, 0, 32),
		line:        1,
	}
}

// ReadRow parses the next row from the stream. io.EOF signals clean
// termination: zero fields and zero bytes consumed. A final row lacking a
// trailing line terminator is still emitted. When ReuseRecord is set the
// returned slice and its strings share storage with the next call.
func (t *Tokenizer) ReadRow() ([]string, error) {
	if t == nil || t.src == nil {
		return nil, io.EOF
	}
	if t.finished {
		return nil, io.EOF
	}

	comma := t.Comma
	if comma == 0 {
		comma = ','
	}
	quote := t.Quote
	if quote == 0 {
		quote = '"'
	}

	if t.ReuseRecord {
		t.row = t.row[:0]
	} else {
		t.row = nil
	}
	t.dataBuf = t.dataBuf[:0]
	t.fieldBounds = t.fieldBounds[:0]

	state := stateUnquoted
	fieldStart := 0
	column := 1
	consumed := false

	for {
		b, err := t.src.Consume()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			t.finished = true
			if state == stateQuoted && t.Strict {
				return nil, t.rowError(column, ErrUnterminatedQuote)
			}
			if !consumed {
				return nil, io.EOF
			}
			t.fieldBounds = append(t.fieldBounds, fieldStart, len(t.dataBuf))
			return t.buildRow()
		}
		consumed = true

		switch state {
		case stateUnquoted:
			switch b {
			case comma:
				t.fieldBounds = append(t.fieldBounds, fieldStart, len(t.dataBuf))
				fieldStart = len(t.dataBuf)
				column++
			case quote:
				if t.Strict && len(t.dataBuf) > fieldStart {
					return nil, t.rowError(column, ErrBareQuote)
				}
				state = stateQuoted
				column++
			case '\n':
				return t.endRow(fieldStart)
			case '\r':
				t.skipLF()
				return t.endRow(fieldStart)
			default:
				t.dataBuf = append(t.dataBuf, b)
				column++
			}

		case stateQuoted:
			switch b {
			case quote:
				state = stateQuotePending
				column++
			case '\n':
				// Embedded line terminators are literal data.
				t.dataBuf = append(t.dataBuf, b)
				t.line++
				column = 1
			default:
				t.dataBuf = append(t.dataBuf, b)
				column++
			}

		case stateQuotePending:
			switch b {
			case quote:
				// Doubled quote resolves to one literal quote.
				t.dataBuf = append(t.dataBuf, quote)
				state = stateQuoted
				column++
			case comma:
				t.fieldBounds = append(t.fieldBounds, fieldStart, len(t.dataBuf))
				fieldStart = len(t.dataBuf)
				state = stateUnquoted
				column++
			case '\n':
				return t.endRow(fieldStart)
			case '\r':
				t.skipLF()
				return t.endRow(fieldStart)
			default:
				if t.Strict {
					return nil, t.rowError(column, ErrBareQuote)
				}
				// Lenient recovery: the quoted part closes its field and this
				// byte opens the next one.
				t.fieldBounds = append(t.fieldBounds, fieldStart, len(t.dataBuf))
				fieldStart = len(t.dataBuf)
				t.dataBuf = append(t.dataBuf, b)
				state = stateUnquoted
				column++
			}
		}
	}
}

// ReadAllRows exhausts the tokenizer, collecting rows until io.EOF.
func (t *Tokenizer) ReadAllRows() (rows [][]string, err error) {
	for {
		row, err := t.ReadRow()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

func (t *Tokenizer) endRow(fieldStart int) ([]string, error) {
	t.fieldBounds = append(t.fieldBounds, fieldStart, len(t.dataBuf))
	t.line++
	return t.buildRow()
}

// skipLF folds a CRLF pair into one terminator. A non-EOF peek failure is
// left in the Source and surfaces on the next read.
func (t *Tokenizer) skipLF() {
	if b, err := t.src.Peek(); err == nil && b == '\n' {
		t.src.Consume()
	}
}

// buildRow maps the accumulated field bounds onto the data buffer. With
// ReuseRecord the fields share one backing string built without copying.
func (t *Tokenizer) buildRow() ([]string, error) {
	n := len(t.fieldBounds) / 2

	var backing string
	if t.ReuseRecord {
		if len(t.dataBuf) > 0 {
			backing = unsafe.String(unsafe.SliceData(t.dataBuf), len(t.dataBuf))
		}
		if cap(t.row) < n {
			t.row = make([]string, n)
		}
		t.row = t.row[:n]
	} else {
		backing = string(t.dataBuf)
		t.row = make([]string, n)
	}

	for i := 0; i < n; i++ {
		t.row[i] = backing[t.fieldBounds[2*i]:t.fieldBounds[2*i+1]]
	}

	if t.FieldsPerRecord > 0 && n != t.FieldsPerRecord {
		return t.row, ErrFieldCount
	}
	return t.row, nil
}

func (t *Tokenizer) rowError(column int, err error) error {
	return &RowError{Line: t.line, Column: column, Err: err}
}
