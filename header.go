package swifttab

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEmptyStream is returned when a stream ends before a header row.
	ErrEmptyStream = errors.New("swifttab: empty stream, no header row")
	// ErrDuplicateHeader is returned under DuplicateReject when a column name
	// repeats in the header row.
	ErrDuplicateHeader = errors.New("swifttab: duplicate column name in header")
)

// DuplicatePolicy controls how repeated column names in a header row resolve.
type DuplicatePolicy uint8

const (
	// DuplicateLastWins maps a repeated name to its last position.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateReject fails header construction with ErrDuplicateHeader.
	DuplicateReject
)

// HeaderIndex maps column names to their position in a raw row. It is built
// exactly once per stream from the first row and never changes afterwards.
type HeaderIndex map[string]int

// NewHeaderIndex builds an index from a header row's field values.
func NewHeaderIndex(fields []string, policy DuplicatePolicy) (HeaderIndex, error) {
	h := make(HeaderIndex, len(fields))
	for i, name := range fields {
		if _, ok := h[name]; ok && policy == DuplicateReject {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateHeader, name)
		}
		h[name] = i
	}
	return h, nil
}

// PositionOf returns the column position of name. The answer is stable for
// the lifetime of the index.
func (h HeaderIndex) PositionOf(name string) (int, bool) {
	i, ok := h[name]
	return i, ok
}

// ReadHeader consumes the next row from t and treats its fields as column
// names. A clean end of stream becomes ErrEmptyStream.
func ReadHeader(t *Tokenizer, policy DuplicatePolicy) (HeaderIndex, error) {
	row, err := t.ReadRow()
	if err == io.EOF {
		return nil, ErrEmptyStream
	}
	if err != nil {
		return nil, err
	}
	return NewHeaderIndex(row, policy)
}
