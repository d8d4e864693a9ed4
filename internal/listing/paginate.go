// Package listing orders filtered records and slices them into pages.
package listing

// DefaultPageSize applies when a caller passes a size below 1.
const DefaultPageSize = 10

// Page is one slice of a sorted, filtered set.
type Page[T any] struct {
	Items         []T  `json:"items"`
	Page          int  `json:"page"`
	RequestedPage int  `json:"requested_page"`
	PageSize      int  `json:"page_size"`
	TotalPages    int  `json:"total_pages"`
	TotalCount    int  `json:"total_count"`
	Clamped       bool `json:"clamped"`
}

// TotalPages is max(1, ceil(count/size)).
func TotalPages(count, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// Paginate returns page (1-based) of items. A page past the end is clamped
// to the last page and reported through Clamped so the caller can re-render.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	requested := page
	if page < 1 {
		page = 1
	}
	total := TotalPages(len(items), size)
	clamped := false
	if page > total {
		page = total
		clamped = true
	}

	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{
		Items:         out,
		Page:          page,
		RequestedPage: requested,
		PageSize:      size,
		TotalPages:    total,
		TotalCount:    len(items),
		Clamped:       clamped,
	}
}
