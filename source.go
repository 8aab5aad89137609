package swifttab

import (
	"errors"
	"io"
)

const defaultChunkSize = 1 << 14 // 16 KiB

var errNilSource = errors.New("swifttab: source reader cannot be nil")

// Source wraps an io.Reader with a fixed-size read-ahead buffer and exposes
// single-byte peek/consume primitives without a read call per byte. Refills
// are transparent; a read error is served only after every buffered byte has
// been consumed. A Source is single-owner state for one parse session and is
// not safe for concurrent use.
type Source struct {
	src io.Reader
	buf []byte
	pos int
	n   int
	err error
}

// NewSource returns a Source with the default chunk size.
func NewSource(r io.Reader) *Source {
	return NewSourceSize(r, defaultChunkSize)
}

// NewSourceSize returns a Source reading from r in chunks of size bytes,
// panicking if r is nil. Non-positive sizes fall back to the default.
func NewSourceSize(r io.Reader, size int) *Source {
	if r == nil {
		panic(errNilSource.Error())
	}
	if size <= 0 {
		size = defaultChunkSize
	}
	return &Source{src: r, buf: make([]byte, size)}
}

// Peek returns the next unconsumed byte without advancing. It refills from
// the underlying reader when the buffer is exhausted and returns io.EOF at
// end of stream. Once an error has been returned it is sticky.
func (s *Source) Peek() (byte, error) {
	if s.pos >= s.n {
		if err := s.refill(); err != nil {
			return 0, err
		}
	}
	return s.buf[s.pos], nil
}

// Consume returns the next byte and advances the position by one, with the
// same refill and end-of-stream behavior as Peek.
func (s *Source) Consume() (byte, error) {
	b, err := s.Peek()
	if err != nil {
		return 0, err
	}
	s.pos++
	return b, nil
}

// refill pulls the next chunk from the underlying reader. Readers may return
// data alongside an error; the error is stashed and surfaces once the data
// drains.
func (s *Source) refill() error {
	if s.err != nil {
		return s.err
	}
	for {
		n, err := s.src.Read(s.buf)
		if n == 0 {
			if err != nil {
				s.err = err
				return err
			}
			continue
		}
		s.pos = 0
		s.n = n
		s.err = err
		return nil
	}
}
