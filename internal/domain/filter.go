package domain

import "strings"

// Listing defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// OrderFilter is the typed query specification for delivery listings.
// CourierID is always set by the caller's identity and cannot be
// widened through query parameters.
type OrderFilter struct {
	CourierID string
	Status    *OrderStatus // nil means no status restriction
	Search    string       // case-insensitive, ORed over id and customer contact fields
	Page      int
	Limit     int
}

// Normalize fills page/limit defaults and trims the search string.
func (f OrderFilter) Normalize() OrderFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// Offset returns the row offset for the requested page.
func (f OrderFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pages returns the page count for the given total, never below 1 page
// semantics: 0 totals yield 0 pages.
func (f OrderFilter) Pages(total int64) int64 {
	if f.Limit <= 0 {
		return 0
	}
	return (total + int64(f.Limit) - 1) / int64(f.Limit)
}
