// Package records provides typed readers for the city datasets consumed by
// the extraction pipeline: population counts, property values, and service
// requests, all keyed by zip code. Each reader declares the columns it needs,
// a default-value policy for columns missing from a row, and a field mapping
// that marks a record invalid instead of failing when a required field is
// absent or malformed. Callers filter on the Valid flag; one bad row never
// aborts a stream.
package records

import (
	"io"
	"strings"

	"github.com/oleg578/swifttab"
)

// Population is one zip code's population count.
type Population struct {
	ZipCode string
	Total   int
	Valid   bool
}

// PopulationReader supplies the used columns and mapping for population data.
type PopulationReader struct{}

// UsedColumns returns the columns retained from population rows.
func (PopulationReader) UsedColumns() []string {
	return []string{"zip code", "total population"}
}

// DefaultValue returns the substitute for a missing column. Empty values fail
// the numeric parse and mark the record invalid.
func (PopulationReader) DefaultValue(string) string { return "" }

// BuildRecord maps a filtered row to a Population, setting Valid to false
// when the zip code is empty or the count does not parse.
func (PopulationReader) BuildRecord(row swifttab.FilteredRow) Population {
	rec := Population{ZipCode: strings.TrimSpace(row.Value(0))}
	rec.Total, rec.Valid = parseInt(row.Value(1))
	if rec.ZipCode == "" {
		rec.Valid = false
	}
	return rec
}

// Populations opens a population pipeline over src.
func Populations(src io.Reader) *swifttab.Pipeline[Population] {
	return swifttab.NewPipeline[Population](src, PopulationReader{})
}
