package records

import (
	"io"
	"strings"
	"time"

	"github.com/oleg578/swifttab"
)

// ServiceRequest is one citizen service request.
type ServiceRequest struct {
	ZipCode string
	Type    string
	Status  string
	Created time.Time
	Valid   bool
}

// ServiceRequestReader supplies the used columns and mapping for
// service-request data.
type ServiceRequestReader struct{}

// UsedColumns returns the columns retained from service-request rows.
func (ServiceRequestReader) UsedColumns() []string {
	return []string{"zip code", "type of service request", "status", "creation date"}
}

// DefaultValue returns the substitute for a missing column. Status is the
// only optional field and defaults to empty without invalidating the record.
func (ServiceRequestReader) DefaultValue(string) string { return "" }

// BuildRecord maps a filtered row to a ServiceRequest. Zip code, request type
// and a parseable creation date are required; status is carried as-is.
func (ServiceRequestReader) BuildRecord(row swifttab.FilteredRow) ServiceRequest {
	rec := ServiceRequest{
		ZipCode: strings.TrimSpace(row.Value(0)),
		Type:    strings.TrimSpace(row.Value(1)),
		Status:  strings.TrimSpace(row.Value(2)),
	}

	created, okDate := parseDate(row.Value(3))
	rec.Created = created
	rec.Valid = okDate && rec.ZipCode != "" && rec.Type != ""
	return rec
}

// ServiceRequests opens a service-request pipeline over src.
func ServiceRequests(src io.Reader) *swifttab.Pipeline[ServiceRequest] {
	return swifttab.NewPipeline[ServiceRequest](src, ServiceRequestReader{})
}
