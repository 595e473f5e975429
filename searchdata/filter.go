package searchdata

import "time"

// Dimension names accepted by the search analytics endpoint.
const (
	DimensionDate  = "date"
	DimensionPage  = "page"
	DimensionQuery = "query"
)

// DateFormat is the calendar-date layout used by the query date range.
const DateFormat = "2006-01-02"

// Filter is a single dimension predicate, passed through to the remote
// endpoint unmodified.
type Filter struct {
	Dimension  string `json:"dimension"`
	Operator   string `json:"operator,omitempty"`
	Expression string `json:"expression"`
}

// FilterGroup groups dimension predicates. The core never interprets these.
type FilterGroup struct {
	GroupType string   `json:"groupType,omitempty"`
	Filters   []Filter `json:"filters,omitempty"`
}

// QueryFilter describes one search analytics query: an inclusive calendar
// date range, an ordered list of dimensions, and optional pass-through
// dimension filter groups. It is immutable once constructed for one fetch.
type QueryFilter struct {
	StartDate             string
	EndDate               string
	Dimensions            []string
	DimensionFilterGroups []FilterGroup
}

// NewQueryFilter builds a filter for the inclusive [start, end] range with the
// given dimension order.
func NewQueryFilter(start, end time.Time, dimensions ...string) QueryFilter {
	return QueryFilter{
		StartDate:  start.Format(DateFormat),
		EndDate:    end.Format(DateFormat),
		Dimensions: dimensions,
	}
}

// DimensionIndex returns the position of the named dimension in the filter's
// dimension order, or -1 when absent.
func (f QueryFilter) DimensionIndex(name string) int {
	for i, d := range f.Dimensions {
		if d == name {
			return i
		}
	}
	return -1
}

// Columns returns the full table schema: the dimensions followed by the four
// metric columns.
func (f QueryFilter) Columns() []string {
	columns := make([]string, 0, len(f.Dimensions)+4)
	columns = append(columns, f.Dimensions...)
	return append(columns, "clicks", "impressions", "ctr", "position")
}
