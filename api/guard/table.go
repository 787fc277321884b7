package guard

import "github.com/pulsemark/clientcore/domain"

// Table maps navigation paths to their access requirements. It is
// built once at startup and never mutated afterwards.
type Table map[string]domain.RouteAccess

// NewTable builds a lookup table from a static route set.
func NewTable(routes []domain.Route) Table {
	t := make(Table, len(routes))
	for _, r := range routes {
		t[r.Path] = r.Access
	}
	return t
}

// Access returns the requirement attached to path. Paths absent from
// the table are public; gating a destination requires listing it.
func (t Table) Access(path string) domain.RouteAccess {
	return t[path]
}
