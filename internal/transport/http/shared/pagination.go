package shared

import (
	"net/http"
	"strconv"
)

// PageLimits bound ?limit= for one listing.
type PageLimits struct {
	Default int
	Max     int
}

var (
	// A year of monthly payslips per page.
	PayslipPages = PageLimits{Default: 12, Max: 120}
	AuditPages   = PageLimits{Default: 50, Max: 500}
)

type Pagination struct {
	Limit  int
	Offset int
}

// Parse reads ?limit= and ?offset=. Malformed or negative values fall back to
// the defaults instead of failing the request.
func (l PageLimits) Parse(r *http.Request) Pagination {
	query := r.URL.Query()
	page := Pagination{Limit: l.Default}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		page.Limit = v
	}
	if l.Max > 0 && page.Limit > l.Max {
		page.Limit = l.Max
	}
	if v, err := strconv.Atoi(query.Get("offset")); err == nil && v >= 0 {
		page.Offset = v
	}
	return page
}
