package records

import (
	"io"
	"strings"

	"github.com/oleg578/swifttab"
)

// Property is one zip code's property valuation summary.
type Property struct {
	ZipCode     string
	MedianValue float64
	TotalUnits  int
	Valid       bool
}

// PropertyReader supplies the used columns and mapping for property data.
type PropertyReader struct{}

// UsedColumns returns the columns retained from property rows.
func (PropertyReader) UsedColumns() []string {
	return []string{"zip code", "median value", "total units"}
}

// DefaultValue substitutes "0" for a missing unit count; the other columns
// default to empty, which marks the record invalid downstream.
func (PropertyReader) DefaultValue(column string) string {
	if column == "total units" {
		return "0"
	}
	return ""
}

// BuildRecord maps a filtered row to a Property. The median value and unit
// count tolerate spreadsheet formatting ("$1,234.50", "(42)").
func (PropertyReader) BuildRecord(row swifttab.FilteredRow) Property {
	rec := Property{ZipCode: strings.TrimSpace(row.Value(0))}

	median, okMedian := parseFloat(row.Value(1))
	units, okUnits := parseInt(row.Value(2))

	rec.MedianValue = median
	rec.TotalUnits = units
	rec.Valid = okMedian && okUnits && rec.ZipCode != ""
	return rec
}

// Properties opens a property pipeline over src.
func Properties(src io.Reader) *swifttab.Pipeline[Property] {
	return swifttab.NewPipeline[Property](src, PropertyReader{})
}
