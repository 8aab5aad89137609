package swifttab

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestTokenizerReadRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		comma  byte
		quote  byte
		strict bool
		reuse  bool
		want   [][]string
	}{
		{
			name:  "basicRows",
			input: "one,two\nthree,four\n",
			want: [][]string{
				{"one", "two"},
				{"three", "four"},
			},
		},
		{
			name:  "finalRowWithoutTerminator",
			input: "alpha,beta,gamma",
			want: [][]string{
				{"alpha", "beta", "gamma"},
			},
		},
		{
			name:  "windowsLineEndings",
			input: "a,b\r\nc,d\r\n",
			want: [][]string{
				{"a", "b"},
				{"c", "d"},
			},
		},
		{
			name:  "quotedComma",
			input: "a,\"b,b\",c\n",
			want: [][]string{
				{"a", "b,b", "c"},
			},
		},
		{
			name:  "escapedQuote",
			input: "a,\"b\"\"c\",d\n",
			want: [][]string{
				{"a", "b\"c", "d"},
			},
		},
		{
			name:  "embeddedNewline",
			input: "a,\"b\nc\",d\n",
			want: [][]string{
				{"a", "b\nc", "d"},
			},
		},
		{
			name:  "emptyFields",
			input: ",,\n",
			want: [][]string{
				{"", "", ""},
			},
		},
		{
			name:  "raggedRows",
			input: "a,b,c\n1,2\n",
			want: [][]string{
				{"a", "b", "c"},
				{"1", "2"},
			},
		},
		{
			name:  "customComma",
			input: "left;right\nup;down\n",
			comma: ';',
			want: [][]string{
				{"left", "right"},
				{"up", "down"},
			},
		},
		{
			name:  "customQuote",
			input: "alpha,'beta''gamma',delta\n",
			quote: '\'',
			want: [][]string{
				{"alpha", "beta'gamma", "delta"},
			},
		},
		{
			name:  "reuseRow",
			input: "left,right\nup,down\n",
			reuse: true,
			want: [][]string{
				{"left", "right"},
				{"up", "down"},
			},
		},
		{
			name:  "quotedEOF",
			input: "\"quoted\"",
			want: [][]string{
				{"quoted"},
			},
		},
		{
			name:  "emptyQuotedField",
			input: "\"\"",
			want: [][]string{
				{""},
			},
		},
		{
			name:  "carriageReturnEOF",
			input: "one\rtwo",
			want: [][]string{
				{"one"},
				{"two"},
			},
		},
		{
			name:  "lenientQuoteInsideField",
			input: "a\"b,c\n",
			want: [][]string{
				{"ab,c\n"},
			},
		},
		{
			name:  "lenientStrayAfterClosingQuote",
			input: "\"abc\"def,2\n",
			want: [][]string{
				{"abc", "def", "2"},
			},
		},
		{
			name:  "lenientUnterminatedQuote",
			input: "\"value",
			want: [][]string{
				{"value"},
			},
		},
		{
			name:   "strictQuotedRows",
			input:  "a,\"b,b\",c\n\"d\"\"e\",f\n",
			strict: true,
			want: [][]string{
				{"a", "b,b", "c"},
				{"d\"e", "f"},
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tok := NewTokenizer(strings.NewReader(tc.input))
			if tc.comma != 0 {
				tok.Comma = tc.comma
			}
			if tc.quote != 0 {
				tok.Quote = tc.quote
			}
			tok.Strict = tc.strict
			tok.ReuseRecord = tc.reuse

			var rows [][]string
			for {
				row, err := tok.ReadRow()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("ReadRow() returned unexpected error: %v", err)
				}
				rows = append(rows, cloneRow(row))
			}

			if !reflect.DeepEqual(rows, tc.want) {
				t.Fatalf("ReadRow() rows mismatch:\n got: %#v\nwant: %#v", rows, tc.want)
			}
		})
	}
}

func TestTokenizerStrictErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		err    error
		line   int
		column int
	}{
		{
			name:   "bareQuote",
			input:  "a\"b,c\n",
			err:    ErrBareQuote,
			line:   1,
			column: 2,
		},
		{
			name:   "strayAfterClosingQuote",
			input:  "\"abc\"d,e\n",
			err:    ErrBareQuote,
			line:   1,
			column: 6,
		},
		{
			name:   "unterminatedQuoteSameLine",
			input:  "\"value",
			err:    ErrUnterminatedQuote,
			line:   1,
			column: 7,
		},
		{
			name:   "unterminatedQuoteMultiLine",
			input:  "\"alpha\nbeta",
			err:    ErrUnterminatedQuote,
			line:   2,
			column: 5,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tok := NewTokenizer(strings.NewReader(tc.input))
			tok.Strict = true

			_, err := tok.ReadRow()
			if err == nil {
				t.Fatalf("ReadRow() expected error %v, got nil", tc.err)
			}

			var rerr *RowError
			if !errors.As(err, &rerr) {
				t.Fatalf("ReadRow() returned error %T, want *RowError", err)
			}
			if !errors.Is(rerr.Err, tc.err) {
				t.Fatalf("RowError.Err = %v, want %v", rerr.Err, tc.err)
			}
			if rerr.Line != tc.line || rerr.Column != tc.column {
				t.Fatalf("RowError location = line %d column %d, want line %d column %d", rerr.Line, rerr.Column, tc.line, tc.column)
			}
		})
	}
}

func TestTokenizerTrailingTerminatorEquivalence(t *testing.T) {
	t.Parallel()

	with := NewTokenizer(strings.NewReader("h1,h2\n1,2\n"))
	without := NewTokenizer(strings.NewReader("h1,h2\n1,2"))

	rowsWith, err := with.ReadAllRows()
	if err != nil {
		t.Fatalf("ReadAllRows() error = %v", err)
	}
	rowsWithout, err := without.ReadAllRows()
	if err != nil {
		t.Fatalf("ReadAllRows() error = %v", err)
	}

	if !reflect.DeepEqual(rowsWith, rowsWithout) {
		t.Fatalf("trailing terminator changed rows:\n with: %#v\nwithout: %#v", rowsWith, rowsWithout)
	}
}

func TestTokenizerCleanEOFAfterTrailingTerminator(t *testing.T) {
	t.Parallel()

	tok := NewTokenizer(strings.NewReader("only,row\n"))
	if _, err := tok.ReadRow(); err != nil {
		t.Fatalf("ReadRow() error = %v", err)
	}
	if _, err := tok.ReadRow(); !errors.Is(err, io.EOF) {
		t.Fatalf("ReadRow() after last row = %v, want io.EOF", err)
	}
	if _, err := tok.ReadRow(); !errors.Is(err, io.EOF) {
		t.Fatalf("ReadRow() repeated at EOF = %v, want io.EOF", err)
	}
}

func TestTokenizerReuseRow(t *testing.T) {
	t.Parallel()

	tok := NewTokenizer(strings.NewReader("alpha\nbeta\n"))
	tok.ReuseRecord = true

	first, err := tok.ReadRow()
	if err != nil {
		t.Fatalf("ReadRow() error = %v", err)
	}
	second, err := tok.ReadRow()
	if err != nil {
		t.Fatalf("ReadRow() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("unexpected slice lengths: first=%d second=%d", len(first), len(second))
	}
	if &first[0] != &second[0] {
		t.Fatalf("expected backing slice to be reused")
	}
	if second[0] != "beta" {
		t.Fatalf("expected latest row, got %q", second[0])
	}
}

func TestTokenizerFreshRowsWithoutReuse(t *testing.T) {
	t.Parallel()

	tok := NewTokenizer(strings.NewReader("alpha\nbeta\n"))

	first, err := tok.ReadRow()
	if err != nil {
		t.Fatalf("ReadRow() error = %v", err)
	}
	second, err := tok.ReadRow()
	if err != nil {
		t.Fatalf("ReadRow() error = %v", err)
	}

	if &first[0] == &second[0] {
		t.Fatalf("expected distinct backing slices when ReuseRecord is disabled")
	}
	if first[0] != "alpha" || second[0] != "beta" {
		t.Fatalf("unexpected row values: first=%q second=%q", first[0], second[0])
	}
}

func TestTokenizerFieldsPerRecord(t *testing.T) {
	t.Parallel()

	t.Run("zeroAllowsRaggedRows", func(t *testing.T) {
		t.Parallel()

		tok := NewTokenizer(strings.NewReader("a,b\nc\n"))
		if _, err := tok.ReadRow(); err != nil {
			t.Fatalf("ReadRow() first row error = %v", err)
		}
		if _, err := tok.ReadRow(); err != nil {
			t.Fatalf("ReadRow() ragged row error = %v, want nil", err)
		}
	})

	t.Run("mismatchReturnsError", func(t *testing.T) {
		t.Parallel()

		tok := NewTokenizer(strings.NewReader("x,y\n1,2,3\n"))
		tok.FieldsPerRecord = 2

		if _, err := tok.ReadRow(); err != nil {
			t.Fatalf("ReadRow() first row error = %v", err)
		}

		row, err := tok.ReadRow()
		if !errors.Is(err, ErrFieldCount) {
			t.Fatalf("ReadRow() error = %v, want ErrFieldCount", err)
		}
		if len(row) != 3 {
			t.Fatalf("ReadRow() row length = %d, want 3", len(row))
		}
	})
}

func TestTokenizerPropagatesReadFailure(t *testing.T) {
	t.Parallel()

	readFailure := errors.New("stream reset")
	tok := NewTokenizer(&dataErrReader{data: "a,b\nc,", err: readFailure})

	if _, err := tok.ReadRow(); err != nil {
		t.Fatalf("ReadRow() first row error = %v", err)
	}
	if _, err := tok.ReadRow(); !errors.Is(err, readFailure) {
		t.Fatalf("ReadRow() error = %v, want %v", err, readFailure)
	}
}

func TestRowErrorMethods(t *testing.T) {
	t.Parallel()

	err := &RowError{Line: 3, Column: 7, Err: ErrBareQuote}
	if got := err.Error(); got == "" || !strings.Contains(got, "line 3") || !strings.Contains(got, "column 7") {
		t.Fatalf("Error() returned %q, want descriptive output", got)
	}
	if !errors.Is(err, ErrBareQuote) {
		t.Fatalf("RowError should unwrap to ErrBareQuote")
	}

	var nilErr *RowError
	if nilErr.Error() != "" {
		t.Fatalf("nil RowError should return empty string")
	}
	if nilErr.Unwrap() != nil {
		t.Fatalf("nil RowError should return nil from Unwrap")
	}
}

func TestNewTokenizerNilPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("NewTokenizer should panic on nil reader")
		}
	}()
	NewTokenizer(nil)
}

func cloneRow(row []string) []string {
	out := make([]string, len(row))
	for i, s := range row {
		out[i] = strings.Clone(s)
	}
	return out
}
