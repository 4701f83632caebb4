// Package pagination splits ordered result sets into fixed-size pages.
//
// Requested page numbers arrive as raw query values and are never rejected:
// a missing or non-integer value selects the first page and an integer that
// falls outside the available pages selects the last one.
package pagination

import (
	"strconv"
	"strings"
)

// Page is one slice of a paginated result set.
type Page[T any] struct {
	Items    []T `json:"items"`
	Number   int `json:"number"`
	NumPages int `json:"num_pages"`
	Count    int `json:"count"`
	PerPage  int `json:"per_page"`
}

// HasPrevious reports whether a page precedes this one.
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool { return p.Number < p.NumPages }

// PreviousPageNumber returns the number of the preceding page.
func (p Page[T]) PreviousPageNumber() int { return p.Number - 1 }

// NextPageNumber returns the number of the following page.
func (p Page[T]) NextPageNumber() int { return p.Number + 1 }

// NumPages returns how many pages count items fill at pageSize per page.
// An empty set still has one (empty) page.
func NumPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if count == 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// Resolve maps a raw page value onto a valid page number in [1, numPages].
func Resolve(requested string, numPages int) int {
	n, err := strconv.Atoi(strings.TrimSpace(requested))
	if err != nil {
		return 1
	}
	if n < 1 || n > numPages {
		return numPages
	}
	return n
}

// Paginate returns the page of items selected by requested.
func Paginate[T any](items []T, pageSize int, requested string) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	numPages := NumPages(len(items), pageSize)
	number := Resolve(requested, numPages)

	start := (number - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:    items[start:end],
		Number:   number,
		NumPages: numPages,
		Count:    len(items),
		PerPage:  pageSize,
	}
}
