// Package pagination slices ordered result sets into fixed-size pages.
// A requested page number is never an error: anything invalid resolves to
// the first page and anything past the end clamps to the last, so every
// request yields a valid page unless the source itself is empty.
package pagination

// PageSize is the fixed number of items per page across all feeds.
const PageSize = 10

// Page is a bounded slice of an ordered sequence plus its metadata.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"current_page"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	HasNext    bool `json:"has_next_page"`
	HasPrev    bool `json:"has_previous_page"`
}

// Resolve clamps a requested page number against the total item count and
// returns the effective page number, the query offset and the page count.
// An empty sequence resolves to a single empty page.
func Resolve(totalItems, requested int) (number, offset, totalPages int) {
	totalPages = (totalItems + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	number = requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	return number, (number - 1) * PageSize, totalPages
}

// NewPage assembles a page from an already-sliced item window.
// number must be the resolved page number from Resolve.
func NewPage[T any](items []T, totalItems, number int) Page[T] {
	_, _, totalPages := Resolve(totalItems, number)
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Number:     number,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}
