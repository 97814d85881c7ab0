package pagination

import "github.com/SscSPs/expense_tracker/internal/core/domain"

// DefaultPageSize is the number of rows shown per page in list and statement views.
const DefaultPageSize = 10

// TotalPages returns ceil(n/size). An empty sequence still has one (empty) page.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Bounds returns the half-open index range [start, end) of a 1-indexed page,
// clamped to a sequence of length n.
func Bounds(n, page, size int) (int, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start > n {
		start = n
	}
	end := start + size
	if end > n {
		end = n
	}
	return start, end
}

// Paginate returns the items on the given 1-indexed page together with the
// page metadata. Pages past the end yield an empty slice.
func Paginate[T any](items []T, page, size int) ([]T, domain.PageInfo) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := TotalPages(len(items), size)
	start, end := Bounds(len(items), page, size)

	out := make([]T, end-start)
	copy(out, items[start:end])

	return out, domain.PageInfo{
		Page:       page,
		PageSize:   size,
		TotalItems: len(items),
		TotalPages: total,
		HasPrev:    page > 1,
		HasNext:    page < total,
	}
}
